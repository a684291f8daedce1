package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/yugabyte/cloud-resource-cleanup/model"
)

var now = time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)

func vmRecord(tags map[string]string, age time.Duration) model.ResourceRecord {
	return model.ResourceRecord{
		ID:        "i-123",
		Kind:      model.KindVM,
		Name:      "test-vm",
		Tags:      tags,
		CreatedAt: now.Add(-age),
		State:     "running",
	}
}

func days(n int) time.Duration { return time.Duration(n) * 24 * time.Hour }

func TestEmptyFilterTagsMatchesAll(t *testing.T) {
	svc := NewService()
	spec := model.FilterSpec{Age: &model.Age{Days: 10}}

	for _, tags := range []map[string]string{
		{},
		{"env": "prod"},
		{"unrelated": "value"},
	} {
		d := svc.Matches(vmRecord(tags, days(11)), spec, now)
		assert.True(t, d.Match, "tags %v should match an empty filter", tags)
	}
}

func TestFilterTagsAnySemantics(t *testing.T) {
	svc := NewService()
	spec := model.FilterSpec{
		FilterTags: map[string][]string{
			"test_task": {"test", "stress-test"},
			"team":      {},
		},
		Age: &model.Age{Days: 1},
	}

	assert.True(t, svc.Matches(vmRecord(map[string]string{"test_task": "test"}, days(2)), spec, now).Match)
	// empty value list means any value qualifies
	assert.True(t, svc.Matches(vmRecord(map[string]string{"team": "whatever"}, days(2)), spec, now).Match)
	assert.False(t, svc.Matches(vmRecord(map[string]string{"test_task": "keep"}, days(2)), spec, now).Match)
	assert.False(t, svc.Matches(vmRecord(map[string]string{"other": "test"}, days(2)), spec, now).Match)
}

func TestExceptionTagsOverrideInclusion(t *testing.T) {
	svc := NewService()
	spec := model.FilterSpec{
		FilterTags:    map[string][]string{"env": {"qa"}},
		ExceptionTags: map[string][]string{"env": {"qa"}},
		Age:           &model.Age{Days: 10},
	}

	d := svc.Matches(vmRecord(map[string]string{"env": "qa"}, days(11)), spec, now)
	assert.False(t, d.Match)
	assert.Equal(t, "matches exception_tags", d.Reason)
}

func TestNoTagsRequiresAllGroups(t *testing.T) {
	svc := NewService()
	spec := model.FilterSpec{
		NoTags: map[string][]string{
			"test_task":  {"test"},
			"test_owner": {},
		},
		Age: &model.Age{Days: 1},
	}

	// both groups satisfied: excluded
	excluded := vmRecord(map[string]string{"test_task": "test", "test_owner": "alice"}, days(2))
	assert.False(t, svc.Matches(excluded, spec, now).Match)

	// one group missing: not excluded by notags
	kept := vmRecord(map[string]string{"test_task": "test"}, days(2))
	assert.True(t, svc.Matches(kept, spec, now).Match)

	// value mismatch on one group: not excluded
	kept = vmRecord(map[string]string{"test_task": "other", "test_owner": "alice"}, days(2))
	assert.True(t, svc.Matches(kept, spec, now).Match)
}

func TestAgeBoundaryIsExclusive(t *testing.T) {
	svc := NewService()
	spec := model.FilterSpec{Age: &model.Age{Days: 10}}

	older := vmRecord(nil, days(10)+time.Second)
	older.Tags = map[string]string{}
	assert.True(t, svc.Matches(older, spec, now).Match)

	exact := vmRecord(nil, days(10))
	exact.Tags = map[string]string{}
	assert.False(t, svc.Matches(exact, spec, now).Match)
}

func TestAgeSkippedForIPs(t *testing.T) {
	svc := NewService()
	spec := model.FilterSpec{Age: &model.Age{Days: 30}}

	ip := model.ResourceRecord{
		ID:   "eipalloc-1",
		Kind: model.KindIP,
		Name: "52.10.0.1",
		Tags: map[string]string{},
		// zero CreatedAt: listing never records one for IPs
	}
	assert.True(t, svc.Matches(ip, spec, now).Match)
}

func TestRetentionAgeTagOverridesThreshold(t *testing.T) {
	svc := NewService()
	spec := model.FilterSpec{Age: &model.Age{Days: 10}}

	rec := vmRecord(map[string]string{"retention_age": "20"}, days(11))
	assert.False(t, svc.Matches(rec, spec, now).Match, "record-level retention keeps it")

	rec = vmRecord(map[string]string{"retention_age": "5"}, days(6))
	assert.True(t, svc.Matches(rec, spec, now).Match)

	// unparseable override falls back to the configured threshold
	rec = vmRecord(map[string]string{"retention_age": "forever"}, days(11))
	assert.True(t, svc.Matches(rec, spec, now).Match)
}

func TestStateFilter(t *testing.T) {
	svc := NewService()
	spec := model.FilterSpec{Age: &model.Age{Days: 1}}

	stopped := vmRecord(map[string]string{}, days(2))
	stopped.State = "stopped"
	assert.False(t, svc.Matches(stopped, spec, now).Match, "default states only cover running")

	spec.ResourceStates = []string{"running", "stopped"}
	assert.True(t, svc.Matches(stopped, spec, now).Match)
}

func TestNameRegexForUntaggedKinds(t *testing.T) {
	svc := NewService()
	keypair := func(name string) model.ResourceRecord {
		return model.ResourceRecord{
			ID:        "key-1",
			Kind:      model.KindKeypair,
			Name:      name,
			CreatedAt: now.Add(-days(5)),
		}
	}

	spec := model.FilterSpec{
		NameRegex:      []string{"^perftest_", "^qa_"},
		ExceptionRegex: []string{"keep_resources"},
		Age:            &model.Age{Days: 3},
	}

	assert.True(t, svc.Matches(keypair("perftest_runner"), spec, now).Match)
	assert.True(t, svc.Matches(keypair("qa_runner"), spec, now).Match)
	assert.False(t, svc.Matches(keypair("prod_runner"), spec, now).Match)
	assert.False(t, svc.Matches(keypair("perftest_keep_resources"), spec, now).Match,
		"exception_regex wins over name_regex")

	// no patterns given means match-all for untagged kinds
	assert.True(t, svc.Matches(keypair("anything"), model.FilterSpec{Age: &model.Age{Days: 3}}, now).Match)
}

func TestQAScenario(t *testing.T) {
	svc := NewService()
	rec := vmRecord(map[string]string{"env": "qa"}, days(11))

	spec := model.FilterSpec{
		FilterTags: map[string][]string{"env": {"qa"}},
		Age:        &model.Age{Days: 10},
	}
	assert.True(t, svc.Matches(rec, spec, now).Match)

	spec.ExceptionTags = map[string][]string{"env": {"qa"}}
	assert.False(t, svc.Matches(rec, spec, now).Match)
}

func TestDetachAgePreferredForDisks(t *testing.T) {
	svc := NewService()
	disk := model.ResourceRecord{
		ID:        "disk-1",
		Kind:      model.KindDisk,
		Name:      "scratch",
		Tags:      map[string]string{},
		CreatedAt: now.Add(-days(4)), // adapters record last-detach time here
	}

	spec := model.FilterSpec{Age: &model.Age{Days: 10}, DetachAge: &model.Age{Days: 3}}
	assert.True(t, svc.Matches(disk, spec, now).Match)

	spec.DetachAge = &model.Age{Days: 7}
	assert.False(t, svc.Matches(disk, spec, now).Match)
}
