package notify

import (
	"net/http"
	"time"
)

type service struct {
	webhookURL string
	client     *http.Client
	attempts   int
	backoff    time.Duration
}

// Payload is the Slack-compatible message body posted to the webhook.
type Payload struct {
	Text string `json:"text"`
}
