package notify

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/aliouned/propfin/internal/config"
	"github.com/aliouned/propfin/internal/domain/models"
)

// Client delivers batch-cycle summaries to an operations channel.
type Client interface {
	NotifyCycle(ctx context.Context, summary models.CycleSummary) error
}

// WebhookClient is a resty-backed implementation of Client posting JSON to
// a configured webhook.
type WebhookClient struct {
	httpClient *resty.Client
	webhookURL string
}

// NewWebhookClient builds a notifier from the provided configuration.
func NewWebhookClient(cfg config.NotifyConfig) *WebhookClient {
	restyClient := resty.New()
	restyClient.
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &WebhookClient{
		httpClient: restyClient,
		webhookURL: cfg.WebhookURL,
	}
}

// NotifyCycle posts the cycle summary to the webhook.
func (c *WebhookClient) NotifyCycle(ctx context.Context, summary models.CycleSummary) error {
	payload := map[string]any{
		"event":             "analytics_cycle_completed",
		"snapshots_created": summary.SnapshotsCreated,
		"snapshot_errors":   summary.SnapshotErrors,
		"goals_updated":     summary.GoalsUpdated,
		"completed_at":      time.Now().UTC().Format(time.RFC3339),
	}

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(payload).
		Post(c.webhookURL)
	if err != nil {
		return fmt.Errorf("post cycle notification: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("notification webhook error: status=%d, body=%s", resp.StatusCode(), resp.String())
	}

	return nil
}
