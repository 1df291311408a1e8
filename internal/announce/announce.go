// Package announce carries successful status transitions out to the front
// end, which owns the visible side effect (Discord role swap). Announce
// failures are reported to the user but never roll back the transition that
// already committed.
package announce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/lunareth/FarfinderBot_Go/internal/domain"
	"github.com/lunareth/FarfinderBot_Go/internal/logger"
)

// Announcer is the capability the registry calls after a status transition
// has been persisted.
type Announcer interface {
	Announce(ctx context.Context, actorID string, status domain.Status) error
}

// Nop is an Announcer that does nothing. Used when no webhook is configured.
type Nop struct{}

func (Nop) Announce(context.Context, string, domain.Status) error { return nil }

// Webhook posts announcements to the Discord gateway's webhook server.
type Webhook struct {
	url    string
	client *http.Client
}

// NewWebhook creates a webhook announcer targeting url.
func NewWebhook(url string) *Webhook {
	return &Webhook{
		url: url,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// Payload is the webhook request body.
type Payload struct {
	ActorID string `json:"actor_id"`
	Status  string `json:"status"`
}

func (w *Webhook) Announce(ctx context.Context, actorID string, status domain.Status) error {
	log := logger.FromContext(ctx)

	body, err := json.Marshal(Payload{ActorID: actorID, Status: string(status)})
	if err != nil {
		return fmt.Errorf("failed to encode announcement: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create announcement request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("announcement failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("announcement rejected: status %d", resp.StatusCode)
	}

	log.Debug("Status announced", "actor_id", actorID, "status", status)
	return nil
}
