package reporter

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/yugabyte/cloud-resource-cleanup/model"
	svc "github.com/yugabyte/cloud-resource-cleanup/service"
)

type service struct {
	logger   zerolog.Logger
	notifier svc.Notifier
	summary  model.RunSummary
}

// ReporterService records per-resource outcomes as they arrive and keeps a
// running summary for the end-of-run table.
type ReporterService interface {
	Report(ctx context.Context, report model.RunReport)
	Summary() model.RunSummary
}
