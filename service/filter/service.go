package filter

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/yugabyte/cloud-resource-cleanup/model"
)

// retentionTag, when present on a record, overrides the configured age
// threshold for that record. The value is a number of days.
const retentionTag = "retention_age"

func NewService() *service {
	return &service{}
}

// Matches decides whether a single record qualifies for the run. All rules
// are conjunctive, except that exception rules suppress an otherwise-included
// match: exclusion always wins over inclusion.
func (s *service) Matches(record model.ResourceRecord, spec model.FilterSpec, now time.Time) Decision {
	if record.Tags == nil {
		// Kinds without a tagging model (AWS keypairs, GCP reserved IPs,
		// Azure NICs) are matched by name patterns instead.
		if !anyPatternMatches(spec.NameRegex, record.Name, true) {
			return Decision{Reason: "name does not match any name_regex"}
		}
		if anyPatternMatches(spec.ExceptionRegex, record.Name, false) {
			return Decision{Reason: "name matches exception_regex"}
		}
	} else {
		if !anyTagMatches(spec.FilterTags, record.Tags, true) {
			return Decision{Reason: "no filter_tags match"}
		}
		if anyTagMatches(spec.ExceptionTags, record.Tags, false) {
			return Decision{Reason: "matches exception_tags"}
		}
		if allTagsMatch(spec.NoTags, record.Tags) {
			return Decision{Reason: "matches all notags groups"}
		}
	}

	if record.Kind == model.KindVM {
		if !stateAllowed(record.State, spec.States()) {
			return Decision{Reason: fmt.Sprintf("state %q not in resource_states", record.State)}
		}
	}

	if record.Kind != model.KindIP {
		threshold := effectiveAge(record, spec)
		if threshold == nil {
			// Validation rejects missing thresholds before any provider
			// call; a nil here means the kind does not require one.
			return Decision{Match: true}
		}
		if !record.CreatedAt.Before(now.Add(-threshold.Duration())) {
			return Decision{Reason: "not older than age threshold"}
		}
	}

	return Decision{Match: true}
}

// anyTagMatches reports whether any key in the rule set is present on the
// record with a listed value, or with any value when the list is empty.
// emptyRuleResult is returned for an empty rule set: true for filter tags
// (match-all) and false for exception tags (nothing excluded).
func anyTagMatches(rules map[string][]string, tags map[string]string, emptyRuleResult bool) bool {
	if len(rules) == 0 {
		return emptyRuleResult
	}
	for key, values := range rules {
		have, ok := tags[key]
		if !ok {
			continue
		}
		if len(values) == 0 {
			return true
		}
		for _, v := range values {
			if have == v {
				return true
			}
		}
	}
	return false
}

// allTagsMatch implements the notags rule: exclusion requires every listed
// key group to be satisfied. An empty rule set excludes nothing.
func allTagsMatch(rules map[string][]string, tags map[string]string) bool {
	if len(rules) == 0 {
		return false
	}
	for key, values := range rules {
		have, ok := tags[key]
		if !ok {
			return false
		}
		if len(values) == 0 {
			continue
		}
		found := false
		for _, v := range values {
			if have == v {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func anyPatternMatches(patterns []string, name string, emptyResult bool) bool {
	if len(patterns) == 0 {
		return emptyResult
	}
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			continue
		}
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

func stateAllowed(state string, states []string) bool {
	for _, s := range states {
		if state == s {
			return true
		}
	}
	return false
}

// effectiveAge resolves the threshold for a record, honoring a retention_age
// tag override when the record carries one.
func effectiveAge(record model.ResourceRecord, spec model.FilterSpec) *model.Age {
	if v, ok := record.Tags[retentionTag]; ok {
		if days, err := strconv.Atoi(v); err == nil && days >= 0 {
			return &model.Age{Days: days}
		}
	}
	return spec.AgeFor(record.Kind)
}
