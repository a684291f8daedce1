package orchestrator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yugabyte/cloud-resource-cleanup/model"
	"github.com/yugabyte/cloud-resource-cleanup/service/filter"
)

var now = time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)

type fakeProvider struct {
	records []model.ResourceRecord
	listErr error
	failIDs map[string]bool
	deleted []string
	stopped []string
}

func (f *fakeProvider) Provider() string            { return "aws" }
func (f *fakeProvider) Kinds() []model.ResourceKind { return model.ResourceKinds }

func (f *fakeProvider) List(ctx context.Context, kind model.ResourceKind) ([]model.ResourceRecord, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.records, nil
}

func (f *fakeProvider) Delete(ctx context.Context, record model.ResourceRecord) error {
	if f.failIDs[record.ID] {
		return errors.New("api throttled")
	}
	f.deleted = append(f.deleted, record.ID)
	return nil
}

func (f *fakeProvider) Stop(ctx context.Context, record model.ResourceRecord) error {
	if f.failIDs[record.ID] {
		return errors.New("api throttled")
	}
	f.stopped = append(f.stopped, record.ID)
	return nil
}

func newOrchestrator() *service {
	s := NewService(filter.NewService())
	s.clock = func() time.Time { return now }
	return s
}

func vm(id string, age time.Duration) model.ResourceRecord {
	return model.ResourceRecord{
		ID:        id,
		Kind:      model.KindVM,
		Name:      id,
		Tags:      map[string]string{},
		CreatedAt: now.Add(-age),
		State:     "running",
		Provider:  "aws",
	}
}

func days(n int) time.Duration { return time.Duration(n) * 24 * time.Hour }

func TestRunDeletesMatchesOnly(t *testing.T) {
	provider := &fakeProvider{records: []model.ResourceRecord{
		vm("i-old", days(5)),
		vm("i-young", days(1)),
	}}
	spec := model.FilterSpec{Age: &model.Age{Days: 3}}

	results, err := newOrchestrator().Run(context.Background(), provider, model.KindVM, model.OperationDelete, spec, false)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "i-old", results[0].Resource.ID)
	assert.Equal(t, model.OutcomeDeleted, results[0].Outcome)
	assert.Equal(t, []string{"i-old"}, provider.deleted)
}

func TestRunListingFailureIsFatalForThePass(t *testing.T) {
	provider := &fakeProvider{listErr: errors.New("permission denied")}

	_, err := newOrchestrator().Run(context.Background(), provider, model.KindVM, model.OperationDelete, model.FilterSpec{}, false)
	require.Error(t, err)
	var lerr *model.ListingError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, "aws", lerr.Provider)
	assert.Equal(t, model.KindVM, lerr.Kind)
}

func TestRunToleratesIndividualFailures(t *testing.T) {
	provider := &fakeProvider{
		records: []model.ResourceRecord{vm("i-1", days(5)), vm("i-2", days(5)), vm("i-3", days(5))},
		failIDs: map[string]bool{"i-2": true},
	}
	spec := model.FilterSpec{Age: &model.Age{Days: 3}}

	results, err := newOrchestrator().Run(context.Background(), provider, model.KindVM, model.OperationDelete, spec, false)
	require.NoError(t, err)
	require.Len(t, results, 3)

	var summary model.RunSummary
	summary.Add(results)
	assert.Equal(t, 2, summary.Deleted)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, []string{"i-1", "i-3"}, provider.deleted)
}

func TestRunCascadesAttachmentsOfMatchedVMs(t *testing.T) {
	owner := vm("i-owner", days(5))
	owner.Attachments = []model.ResourceRecord{
		{ID: "vol-1", Kind: model.KindDisk, Provider: "aws"},
		{ID: "eni-1", Kind: model.KindNIC, Provider: "aws"},
	}
	provider := &fakeProvider{records: []model.ResourceRecord{owner}}
	spec := model.FilterSpec{Age: &model.Age{Days: 3}}

	results, err := newOrchestrator().Run(context.Background(), provider, model.KindVM, model.OperationDelete, spec, false)
	require.NoError(t, err)
	require.Len(t, results, 3, "owner plus both attachments")
	for _, r := range results {
		assert.Equal(t, model.OutcomeDeleted, r.Outcome)
	}
	// the provider is called once, on the owner
	assert.Equal(t, []string{"i-owner"}, provider.deleted)
}

func TestRunDryRunMutatesNothing(t *testing.T) {
	owner := vm("i-owner", days(5))
	owner.Attachments = []model.ResourceRecord{{ID: "vol-1", Kind: model.KindDisk}}
	provider := &fakeProvider{records: []model.ResourceRecord{owner}}
	spec := model.FilterSpec{Age: &model.Age{Days: 3}}

	results, err := newOrchestrator().Run(context.Background(), provider, model.KindVM, model.OperationDelete, spec, true)
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.Equal(t, model.OutcomeSkipped, r.Outcome)
		assert.Equal(t, "dry-run", r.Reason)
	}
	assert.Empty(t, provider.deleted)
	assert.Empty(t, provider.stopped)
}

func TestRunDryRunStopReportsOnlyTheVM(t *testing.T) {
	owner := vm("i-owner", days(5))
	owner.Attachments = []model.ResourceRecord{
		{ID: "vol-1", Kind: model.KindDisk},
		{ID: "eni-1", Kind: model.KindNIC},
	}
	provider := &fakeProvider{records: []model.ResourceRecord{owner}}
	spec := model.FilterSpec{Age: &model.Age{Days: 3}}

	results, err := newOrchestrator().Run(context.Background(), provider, model.KindVM, model.OperationStop, spec, true)
	require.NoError(t, err)
	// a real stop issues one call and one result, so its preview must too
	require.Len(t, results, 1)
	assert.Equal(t, "i-owner", results[0].Resource.ID)
	assert.Equal(t, model.OutcomeSkipped, results[0].Outcome)
	assert.Empty(t, provider.stopped)
}

func TestRunStopOperation(t *testing.T) {
	provider := &fakeProvider{records: []model.ResourceRecord{vm("i-1", days(5))}}
	spec := model.FilterSpec{Age: &model.Age{Days: 3}}

	results, err := newOrchestrator().Run(context.Background(), provider, model.KindVM, model.OperationStop, spec, false)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, model.OutcomeStopped, results[0].Outcome)
	assert.Equal(t, []string{"i-1"}, provider.stopped)
}
