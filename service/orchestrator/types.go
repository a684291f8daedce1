package orchestrator

import (
	"context"
	"time"

	"github.com/yugabyte/cloud-resource-cleanup/model"
	svc "github.com/yugabyte/cloud-resource-cleanup/service"
	"github.com/yugabyte/cloud-resource-cleanup/service/filter"
)

type service struct {
	matcher filter.MatcherService
	clock   func() time.Time
}

// OrchestratorService drives one provider/kind/operation pass:
// list, match, then delete or stop every matched resource.
type OrchestratorService interface {
	Run(ctx context.Context, provider svc.ResourceService, kind model.ResourceKind, op model.OperationType, spec model.FilterSpec, dryRun bool) ([]model.OperationResult, error)
}
