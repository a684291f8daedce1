package reporter

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/yugabyte/cloud-resource-cleanup/model"
	svc "github.com/yugabyte/cloud-resource-cleanup/service"
)

func NewService(logger zerolog.Logger, notifier svc.Notifier) *service {
	return &service{
		logger:   logger,
		notifier: notifier,
	}
}

// NewLogger builds the run logger. With a path it tees structured lines into
// an append-only file next to the console output, so repeated scheduled runs
// accumulate in one audit log.
func NewLogger(path string) (zerolog.Logger, io.Closer, error) {
	console := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	if path == "" {
		return zerolog.New(console).With().Timestamp().Logger(), io.NopCloser(nil), nil
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Logger{}, nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	writer := zerolog.MultiLevelWriter(console, file)
	return zerolog.New(writer).With().Timestamp().Logger(), file, nil
}

// Report logs every outcome in the batch, folds it into the summary and
// forwards the batch to the notifier. Notifier failures are logged and
// swallowed: delivery problems never change recorded outcomes.
func (s *service) Report(ctx context.Context, report model.RunReport) {
	for _, result := range report.Results {
		event := s.logger.Info()
		if result.Outcome == model.OutcomeFailed {
			event = s.logger.Error()
		}
		event = event.
			Str("provider", report.Provider).
			Str("kind", string(result.Resource.Kind)).
			Str("operation", string(report.Operation)).
			Str("resource", result.Resource.ID).
			Str("name", result.Resource.Name).
			Str("outcome", string(result.Outcome))
		if result.Reason != "" {
			event = event.Str("reason", result.Reason)
		}
		event.Msg("resource processed")
	}
	s.summary.Add(report.Results)

	if s.notifier != nil {
		if err := s.notifier.Notify(ctx, report); err != nil {
			s.logger.Warn().Err(err).Msg("notification delivery failed")
		}
	}
}

func (s *service) Summary() model.RunSummary {
	return s.summary
}
