package service

import (
	"context"

	"github.com/yugabyte/cloud-resource-cleanup/model"
)

// IdentityService provides cloud account/project identity information
type IdentityService interface {
	GetAccountInfo(ctx context.Context) (*model.AccountInfo, error)
}

// ResourceService lists normalized resource records for one provider and
// executes delete/stop calls against them. Provider quirks (state naming,
// tagging APIs, region iteration, cascade mechanics) stay behind this
// interface and never leak into the predicate evaluator.
type ResourceService interface {
	Provider() string
	Kinds() []model.ResourceKind
	List(ctx context.Context, kind model.ResourceKind) ([]model.ResourceRecord, error)
	// Delete removes the record and its exclusively-owned attachments.
	Delete(ctx context.Context, record model.ResourceRecord) error
	// Stop powers off a VM record. Only KindVM is stoppable.
	Stop(ctx context.Context, record model.ResourceRecord) error
}

// Notifier forwards a run summary to an external sink. Delivery failures are
// the caller's to log; they never change recorded outcomes.
type Notifier interface {
	Notify(ctx context.Context, report model.RunReport) error
}
