package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"agentgram/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type WebhookRepositoryImpl struct {
	db *sqlx.DB
}

func NewWebhookRepository(db *sqlx.DB) *WebhookRepositoryImpl {
	return &WebhookRepositoryImpl{db: db}
}

// Upsert keeps one registration per agent. Registering again replaces
// URL, event set and secret.
func (r *WebhookRepositoryImpl) Upsert(ctx context.Context, webhook *models.Webhook) error {
	query := `
		INSERT INTO webhooks (agent_id, url, events, secret, created_at, updated_at)
		VALUES (:agent_id, :url, :events, :secret, :created_at, :updated_at)
		ON CONFLICT (agent_id) DO UPDATE SET
			url = EXCLUDED.url,
			events = EXCLUDED.events,
			secret = EXCLUDED.secret,
			updated_at = EXCLUDED.updated_at
	`

	now := time.Now()
	if webhook.CreatedAt.IsZero() {
		webhook.CreatedAt = now
	}
	webhook.UpdatedAt = now

	_, err := r.db.NamedExecContext(ctx, query, webhook)
	if err != nil {
		return fmt.Errorf("failed to upsert webhook: %w", err)
	}

	return nil
}

func (r *WebhookRepositoryImpl) GetByAgentID(ctx context.Context, agentID string) (*models.Webhook, error) {
	query := `SELECT * FROM webhooks WHERE agent_id = $1`

	var webhook models.Webhook
	err := r.db.GetContext(ctx, &webhook, query, agentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("webhook for agent %s not found", agentID)
		}
		return nil, fmt.Errorf("failed to get webhook: %w", err)
	}

	return &webhook, nil
}

func (r *WebhookRepositoryImpl) Delete(ctx context.Context, agentID string) error {
	query := `DELETE FROM webhooks WHERE agent_id = $1`

	_, err := r.db.ExecContext(ctx, query, agentID)
	if err != nil {
		return fmt.Errorf("failed to delete webhook: %w", err)
	}

	return nil
}

// ListSubscribed returns registrations whose event set contains eventType.
func (r *WebhookRepositoryImpl) ListSubscribed(ctx context.Context, eventType string) ([]models.Webhook, error) {
	query := `SELECT * FROM webhooks WHERE $1 = ANY(string_to_array(events, ','))`

	var webhooks []models.Webhook
	err := r.db.SelectContext(ctx, &webhooks, query, eventType)
	if err != nil {
		return nil, fmt.Errorf("failed to list webhook subscribers: %w", err)
	}

	return webhooks, nil
}

func (r *WebhookRepositoryImpl) Enqueue(ctx context.Context, event *models.WebhookEvent) error {
	query := `
		INSERT INTO webhook_events (event_id, agent_id, event_type, payload, attempts, created_at)
		VALUES (:event_id, :agent_id, :event_type, :payload, :attempts, :created_at)
	`

	if event.EventID == "" {
		event.EventID = uuid.New().String()
	}

	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	_, err := r.db.NamedExecContext(ctx, query, event)
	if err != nil {
		return fmt.Errorf("failed to enqueue webhook event: %w", err)
	}

	return nil
}

// ClaimPending returns entries eligible for delivery, oldest first.
// Exhausted entries (attempts at the ceiling) are skipped forever but
// never deleted.
func (r *WebhookRepositoryImpl) ClaimPending(ctx context.Context, limit, maxAttempts int) ([]models.WebhookEvent, error) {
	query := `
		SELECT * FROM webhook_events
		WHERE completed_at IS NULL AND attempts < $2
		ORDER BY created_at
		LIMIT $1
	`

	var events []models.WebhookEvent
	err := r.db.SelectContext(ctx, &events, query, limit, maxAttempts)
	if err != nil {
		return nil, fmt.Errorf("failed to claim pending webhook events: %w", err)
	}

	return events, nil
}

func (r *WebhookRepositoryImpl) MarkDelivered(ctx context.Context, eventID string) error {
	query := `
		UPDATE webhook_events SET
			attempts = attempts + 1,
			last_attempt_at = CURRENT_TIMESTAMP,
			completed_at = CURRENT_TIMESTAMP
		WHERE event_id = $1
	`

	_, err := r.db.ExecContext(ctx, query, eventID)
	if err != nil {
		return fmt.Errorf("failed to mark webhook event delivered: %w", err)
	}

	return nil
}

func (r *WebhookRepositoryImpl) MarkFailed(ctx context.Context, eventID string) error {
	query := `
		UPDATE webhook_events SET
			attempts = attempts + 1,
			last_attempt_at = CURRENT_TIMESTAMP
		WHERE event_id = $1
	`

	_, err := r.db.ExecContext(ctx, query, eventID)
	if err != nil {
		return fmt.Errorf("failed to mark webhook event failed: %w", err)
	}

	return nil
}
