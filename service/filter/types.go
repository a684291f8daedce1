package filter

import (
	"time"

	"github.com/yugabyte/cloud-resource-cleanup/model"
)

type service struct{}

// Decision is the outcome of evaluating one record against a spec. Reason is
// set when the record is excluded, naming the rule that excluded it.
type Decision struct {
	Match  bool
	Reason string
}

type MatcherService interface {
	Matches(record model.ResourceRecord, spec model.FilterSpec, now time.Time) Decision
}
