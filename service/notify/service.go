package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/yugabyte/cloud-resource-cleanup/model"
)

func NewService(webhookURL string) *service {
	return &service{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 30 * time.Second},
		attempts:   3,
		backoff:    2 * time.Second,
	}
}

// Notify posts a run summary to the Slack-compatible webhook. Transient
// failures are retried a few times; the final error is informational only
// and never changes recorded outcomes.
func (s *service) Notify(ctx context.Context, report model.RunReport) error {
	if s.webhookURL == "" {
		return nil
	}

	body, err := json.Marshal(Payload{Text: formatMessage(report)})
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < s.attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(s.backoff):
			}
		}
		lastErr = s.post(ctx, body)
		if lastErr == nil {
			return nil
		}
	}
	return fmt.Errorf("webhook delivery failed after %d attempts: %w", s.attempts, lastErr)
}

func (s *service) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

func formatMessage(report model.RunReport) string {
	var summary model.RunSummary
	summary.Add(report.Results)

	mode := ""
	if report.DryRun {
		mode = " (dry run)"
	}
	return fmt.Sprintf("cloud-resource-cleanup: %s %s %s%s: %d deleted, %d stopped, %d skipped, %d failed",
		report.Provider, report.Kind, report.Operation, mode,
		summary.Deleted, summary.Stopped, summary.Skipped, summary.Failed)
}
