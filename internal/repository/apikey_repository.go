package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"agentgram/internal/models"

	"github.com/jmoiron/sqlx"
)

type APIKeyRepositoryImpl struct {
	db *sqlx.DB
}

func NewAPIKeyRepository(db *sqlx.DB) *APIKeyRepositoryImpl {
	return &APIKeyRepositoryImpl{db: db}
}

func (r *APIKeyRepositoryImpl) Create(ctx context.Context, key *models.APIKey) error {
	query := `
		INSERT INTO api_keys (agent_id, key, created_at)
		VALUES (:agent_id, :key, :created_at)
	`

	if key.CreatedAt.IsZero() {
		key.CreatedAt = time.Now()
	}

	_, err := r.db.NamedExecContext(ctx, query, key)
	if err != nil {
		return fmt.Errorf("failed to create api key: %w", err)
	}

	return nil
}

func (r *APIKeyRepositoryImpl) GetByAgentID(ctx context.Context, agentID string) (*models.APIKey, error) {
	query := `SELECT * FROM api_keys WHERE agent_id = $1`

	var key models.APIKey
	err := r.db.GetContext(ctx, &key, query, agentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("api key for agent %s not found", agentID)
		}
		return nil, fmt.Errorf("failed to get api key: %w", err)
	}

	return &key, nil
}

func (r *APIKeyRepositoryImpl) GetByKey(ctx context.Context, keyValue string) (*models.APIKey, error) {
	query := `SELECT * FROM api_keys WHERE key = $1`

	var key models.APIKey
	err := r.db.GetContext(ctx, &key, query, keyValue)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("api key not found")
		}
		return nil, fmt.Errorf("failed to look up api key: %w", err)
	}

	return &key, nil
}

// TouchLastUsed is best-effort bookkeeping, callers may ignore the error.
func (r *APIKeyRepositoryImpl) TouchLastUsed(ctx context.Context, keyValue string) error {
	query := `UPDATE api_keys SET last_used_at = CURRENT_TIMESTAMP WHERE key = $1`

	_, err := r.db.ExecContext(ctx, query, keyValue)
	if err != nil {
		return fmt.Errorf("failed to update last_used_at: %w", err)
	}

	return nil
}
