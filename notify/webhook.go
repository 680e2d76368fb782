package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"tennis-watch/logger"
)

// Notifier delivers one run's summary and result to a chat channel.
type Notifier interface {
	Notify(summary string, result interface{}) error
}

// WebhookNotifier posts the summary and the raw result JSON to a chat
// webhook.
type WebhookNotifier struct {
	url    string
	client *http.Client
	log    logger.Logger
}

func NewWebhookNotifier(url string, log logger.Logger) *WebhookNotifier {
	return &WebhookNotifier{
		url:    url,
		client: &http.Client{Timeout: 15 * time.Second},
		log:    log,
	}
}

type webhookPayload struct {
	Text   string          `json:"text"`
	Result json.RawMessage `json:"result,omitempty"`
}

func (n *WebhookNotifier) Notify(summary string, result interface{}) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	body, err := json.Marshal(webhookPayload{Text: summary, Result: resultJSON})
	if err != nil {
		return fmt.Errorf("encoding webhook payload: %w", err)
	}

	resp, err := n.client.Post(n.url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("posting to webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	n.log.Info("webhook notification sent", "bytes", len(body))
	return nil
}
