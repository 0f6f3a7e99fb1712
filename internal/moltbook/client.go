package moltbook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"agentgram/internal/config"
)

// ErrInvalidCredential is the single failure every validation problem
// collapses into. Callers never learn whether the token was rejected,
// the upstream was down, or the body was garbage.
var ErrInvalidCredential = errors.New("invalid credential")

// Profile is the upstream view of an agent account.
type Profile struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	AvatarURL   string `json:"avatar_url"`
}

type Client interface {
	Validate(ctx context.Context, token string) (*Profile, error)
	RelayPost(ctx context.Context, token, content string) error
}

type client struct {
	baseURL string
	http    *http.Client
}

func NewClient(cfg *config.Config) Client {
	return &client{
		baseURL: cfg.Moltbook.BaseURL,
		http:    &http.Client{Timeout: cfg.Moltbook.Timeout},
	}
}

// Validate calls the upstream "who am I" endpoint with the bearer token.
func (c *client) Validate(ctx context.Context, token string) (*Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/agents/me", nil)
	if err != nil {
		return nil, ErrInvalidCredential
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, ErrInvalidCredential
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, ErrInvalidCredential
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, ErrInvalidCredential
	}

	if profile.Name == "" {
		return nil, ErrInvalidCredential
	}

	return &profile, nil
}

// RelayPost cross-posts content to the upstream feed. The primary
// operation must not depend on this succeeding.
func (c *client) RelayPost(ctx context.Context, token, content string) error {
	body, err := json.Marshal(map[string]string{"content": content})
	if err != nil {
		return fmt.Errorf("failed to encode relay body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/posts", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build relay request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("relay request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("relay rejected with status %d", resp.StatusCode)
	}

	return nil
}
