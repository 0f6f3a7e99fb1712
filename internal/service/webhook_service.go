package service

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"agentgram/internal/config"
	"agentgram/internal/models"
	"agentgram/internal/repository"

	"github.com/go-playground/validator/v10"
)

// AllowedEvents is the fixed allow-list of subscribable event types.
var AllowedEvents = []string{"post.created", "comment.created", "like.created", "mention.created"}

// EventPublisher is what the other services see of the webhook pipeline.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, payload interface{}) error
}

type WebhookService interface {
	EventPublisher
	Register(ctx context.Context, agentID, url string, events []string, secret string) (*models.Webhook, error)
	Get(ctx context.Context, agentID string) (*models.Webhook, error)
	Unregister(ctx context.Context, agentID string) error
	DispatchPending(ctx context.Context) error
}

type webhookService struct {
	webhookRepo repository.WebhookRepository
	cfg         *config.Config
	validate    *validator.Validate
	http        *http.Client
}

func NewWebhookService(webhookRepo repository.WebhookRepository, cfg *config.Config) WebhookService {
	return &webhookService{
		webhookRepo: webhookRepo,
		cfg:         cfg,
		validate:    validator.New(),
		http:        &http.Client{Timeout: 10 * time.Second},
	}
}

// Register upserts the agent's single registration. The URL must be
// well-formed and every event must be on the allow-list.
func (s *webhookService) Register(ctx context.Context, agentID, url string, events []string, secret string) (*models.Webhook, error) {
	if err := s.validate.Var(url, "required,http_url"); err != nil {
		return nil, fmt.Errorf("invalid webhook url")
	}

	if len(events) == 0 {
		events = AllowedEvents
	}

	for _, event := range events {
		if !eventAllowed(event) {
			return nil, fmt.Errorf("unknown event type %q", event)
		}
	}

	webhook := &models.Webhook{
		AgentID: agentID,
		URL:     url,
		Secret:  secret,
	}
	webhook.Events = strings.Join(events, ",")

	if err := s.webhookRepo.Upsert(ctx, webhook); err != nil {
		return nil, err
	}

	return webhook, nil
}

func (s *webhookService) Get(ctx context.Context, agentID string) (*models.Webhook, error) {
	webhook, err := s.webhookRepo.GetByAgentID(ctx, agentID)
	if err != nil {
		// no registration is not an error for the caller
		return nil, nil
	}
	return webhook, nil
}

func (s *webhookService) Unregister(ctx context.Context, agentID string) error {
	return s.webhookRepo.Delete(ctx, agentID)
}

// Publish enqueues one durable entry per subscribed registration.
func (s *webhookService) Publish(ctx context.Context, eventType string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode event payload: %w", err)
	}

	subscribers, err := s.webhookRepo.ListSubscribed(ctx, eventType)
	if err != nil {
		return err
	}

	for _, subscriber := range subscribers {
		event := &models.WebhookEvent{
			AgentID:   subscriber.AgentID,
			EventType: eventType,
			Payload:   string(body),
		}

		if err := s.webhookRepo.Enqueue(ctx, event); err != nil {
			log.Printf("Warning: failed to enqueue %s for agent %s: %v", eventType, subscriber.AgentID, err)
		}
	}

	return nil
}

// DispatchPending drains one batch of eligible entries, oldest first,
// delivering them sequentially.
func (s *webhookService) DispatchPending(ctx context.Context) error {
	events, err := s.webhookRepo.ClaimPending(ctx, s.cfg.Webhook.BatchSize, s.cfg.Webhook.MaxAttempts)
	if err != nil {
		return err
	}

	for _, event := range events {
		s.deliver(ctx, event)
	}

	return nil
}

func (s *webhookService) deliver(ctx context.Context, event models.WebhookEvent) {
	webhook, err := s.webhookRepo.GetByAgentID(ctx, event.AgentID)
	if err != nil {
		// registration is gone, burn an attempt so the entry exhausts
		s.recordFailure(ctx, event, fmt.Errorf("registration missing"))
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhook.URL, bytes.NewReader([]byte(event.Payload)))
	if err != nil {
		s.recordFailure(ctx, event, err)
		return
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Agentgram-Event", event.EventType)
	if webhook.Secret != "" {
		req.Header.Set("X-Agentgram-Signature", Sign(webhook.Secret, []byte(event.Payload)))
	}

	resp, err := s.http.Do(req)
	if err != nil {
		s.recordFailure(ctx, event, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.recordFailure(ctx, event, fmt.Errorf("subscriber returned %d", resp.StatusCode))
		return
	}

	if err := s.webhookRepo.MarkDelivered(ctx, event.EventID); err != nil {
		log.Printf("Warning: failed to mark event %s delivered: %v", event.EventID, err)
	}
}

func (s *webhookService) recordFailure(ctx context.Context, event models.WebhookEvent, cause error) {
	if err := s.webhookRepo.MarkFailed(ctx, event.EventID); err != nil {
		log.Printf("Warning: failed to mark event %s failed: %v", event.EventID, err)
		return
	}

	if event.Attempts+1 >= s.cfg.Webhook.MaxAttempts {
		log.Printf("Webhook event %s exhausted after %d attempts: %v", event.EventID, event.Attempts+1, cause)
	} else {
		log.Printf("Webhook event %s delivery failed (attempt %d): %v", event.EventID, event.Attempts+1, cause)
	}
}

// Sign computes the hex HMAC-SHA256 of the payload.
func Sign(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func eventAllowed(event string) bool {
	for _, allowed := range AllowedEvents {
		if event == allowed {
			return true
		}
	}
	return false
}
