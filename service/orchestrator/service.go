package orchestrator

import (
	"context"
	"time"

	"github.com/yugabyte/cloud-resource-cleanup/model"
	svc "github.com/yugabyte/cloud-resource-cleanup/service"
	"github.com/yugabyte/cloud-resource-cleanup/service/filter"
)

func NewService(matcher filter.MatcherService) *service {
	return &service{
		matcher: matcher,
		clock:   time.Now,
	}
}

// Run lists one kind of resource, evaluates every record against the filter
// spec and applies the operation to the matches. A listing failure aborts the
// whole pass; a failure on an individual resource is recorded and the pass
// continues. In dry-run mode matched resources are reported as skipped and no
// provider mutation happens.
func (s *service) Run(ctx context.Context, provider svc.ResourceService, kind model.ResourceKind, op model.OperationType, spec model.FilterSpec, dryRun bool) ([]model.OperationResult, error) {
	records, err := provider.List(ctx, kind)
	if err != nil {
		return nil, &model.ListingError{Provider: provider.Provider(), Kind: kind, Err: err}
	}

	now := s.clock()
	var results []model.OperationResult
	for _, record := range records {
		decision := s.matcher.Matches(record, spec, now)
		if !decision.Match {
			continue
		}
		results = append(results, s.operate(ctx, provider, record, op, dryRun)...)
	}
	return results, nil
}

// operate applies the operation to one matched record. Deleting a VM also
// removes its attachments, so each attachment gets its own result line; a
// stop touches the VM alone, and its dry run reports the VM alone.
func (s *service) operate(ctx context.Context, provider svc.ResourceService, record model.ResourceRecord, op model.OperationType, dryRun bool) []model.OperationResult {
	targets := []model.ResourceRecord{record}
	if op == model.OperationDelete {
		targets = append(targets, record.Attachments...)
	}

	if dryRun {
		results := make([]model.OperationResult, 0, len(targets))
		for _, target := range targets {
			results = append(results, model.OperationResult{
				Resource: target,
				Outcome:  model.OutcomeSkipped,
				Reason:   "dry-run",
			})
		}
		return results
	}

	if op == model.OperationStop {
		if err := provider.Stop(ctx, record); err != nil {
			return []model.OperationResult{{Resource: record, Outcome: model.OutcomeFailed, Reason: err.Error()}}
		}
		return []model.OperationResult{{Resource: record, Outcome: model.OutcomeStopped}}
	}

	if err := provider.Delete(ctx, record); err != nil {
		results := make([]model.OperationResult, 0, len(targets))
		for _, target := range targets {
			results = append(results, model.OperationResult{
				Resource: target,
				Outcome:  model.OutcomeFailed,
				Reason:   err.Error(),
			})
		}
		return results
	}
	results := make([]model.OperationResult, 0, len(targets))
	for _, target := range targets {
		results = append(results, model.OperationResult{Resource: target, Outcome: model.OutcomeDeleted})
	}
	return results
}
