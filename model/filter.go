package model

import "time"

// Age is a cleanup threshold expressed in days and hours, decoded from the
// CLI's JSON form, e.g. {"days": 3, "hours": 12}.
type Age struct {
	Days  int `json:"days"`
	Hours int `json:"hours"`
}

// Duration converts the threshold to a time.Duration.
func (a Age) Duration() time.Duration {
	return time.Duration(a.Days)*24*time.Hour + time.Duration(a.Hours)*time.Hour
}

// FilterSpec holds every criterion a run evaluates resources against. It is
// constructed once per invocation and read-only thereafter.
type FilterSpec struct {
	// FilterTags includes a record when any key is present with any listed
	// value (any value at all if the list is empty). Empty map matches all.
	FilterTags map[string][]string
	// ExceptionTags excludes a record on any match, overriding inclusion.
	ExceptionTags map[string][]string
	// NoTags excludes a record only when every listed key group matches.
	NoTags map[string][]string

	// Name patterns apply only to kinds without a tagging model.
	NameRegex      []string
	ExceptionRegex []string

	// Age is the minimum age for deletable kinds; nil means not configured.
	Age *Age
	// DetachAge, when set, replaces Age for disks and is measured from the
	// disk's last detach time rather than its creation time.
	DetachAge *Age

	// ResourceStates restricts which VM states are acted on.
	ResourceStates []string
}

// DefaultResourceStates is used when no --resource_states are given.
var DefaultResourceStates = []string{"running"}

// States returns the configured VM states or the default.
func (s FilterSpec) States() []string {
	if len(s.ResourceStates) == 0 {
		return DefaultResourceStates
	}
	return s.ResourceStates
}

// AgeFor resolves the effective age threshold for a resource kind.
// Disks prefer DetachAge when it is configured.
func (s FilterSpec) AgeFor(kind ResourceKind) *Age {
	if kind == KindDisk && s.DetachAge != nil {
		return s.DetachAge
	}
	return s.Age
}
