package reporter

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yugabyte/cloud-resource-cleanup/model"
)

type fakeNotifier struct {
	reports []model.RunReport
	err     error
}

func (f *fakeNotifier) Notify(ctx context.Context, report model.RunReport) error {
	f.reports = append(f.reports, report)
	return f.err
}

func report() model.RunReport {
	return model.RunReport{
		Provider:  "azure",
		Kind:      model.KindDisk,
		Operation: model.OperationDelete,
		Results: []model.OperationResult{
			{Resource: model.ResourceRecord{ID: "disk-1", Kind: model.KindDisk}, Outcome: model.OutcomeDeleted},
			{Resource: model.ResourceRecord{ID: "disk-2", Kind: model.KindDisk}, Outcome: model.OutcomeFailed, Reason: "disk is attached"},
		},
	}
}

func TestReportLogsAndAccumulates(t *testing.T) {
	var buf bytes.Buffer
	notifier := &fakeNotifier{}
	svc := NewService(zerolog.New(&buf), notifier)

	svc.Report(context.Background(), report())
	svc.Report(context.Background(), model.RunReport{
		Provider:  "azure",
		Kind:      model.KindVM,
		Operation: model.OperationStop,
		Results: []model.OperationResult{
			{Resource: model.ResourceRecord{ID: "vm-1", Kind: model.KindVM}, Outcome: model.OutcomeStopped},
		},
	})

	summary := svc.Summary()
	assert.Equal(t, 1, summary.Deleted)
	assert.Equal(t, 1, summary.Stopped)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 3, summary.Total())

	out := buf.String()
	assert.Contains(t, out, "disk-1")
	assert.Contains(t, out, `"level":"error"`)
	assert.Contains(t, out, "disk is attached")
	assert.Len(t, notifier.reports, 2)
}

func TestReportToleratesNotifierFailure(t *testing.T) {
	var buf bytes.Buffer
	svc := NewService(zerolog.New(&buf), &fakeNotifier{err: errors.New("webhook down")})

	svc.Report(context.Background(), report())

	assert.Equal(t, 1, svc.Summary().Deleted, "outcomes recorded despite delivery failure")
	assert.Contains(t, buf.String(), "notification delivery failed")
}

func TestNewLoggerAppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cleanup.log")

	logger, closer, err := NewLogger(path)
	require.NoError(t, err)
	logger.Info().Str("resource", "i-123").Msg("resource processed")
	require.NoError(t, closer.Close())

	logger, closer, err = NewLogger(path)
	require.NoError(t, err)
	logger.Info().Str("resource", "i-456").Msg("resource processed")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "i-123")
	assert.Contains(t, string(data), "i-456")
}
