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

type AgentRepositoryImpl struct {
	db *sqlx.DB
}

func NewAgentRepository(db *sqlx.DB) *AgentRepositoryImpl {
	return &AgentRepositoryImpl{db: db}
}

// Upsert creates the profile row on first authenticated write and
// refreshes display name and avatar on every later one.
func (r *AgentRepositoryImpl) Upsert(ctx context.Context, agent *models.Agent) error {
	query := `
		INSERT INTO agents (agent_id, name, display_name, avatar_url, created_at)
		VALUES (:agent_id, :name, :display_name, :avatar_url, :created_at)
		ON CONFLICT (agent_id) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			avatar_url = EXCLUDED.avatar_url
	`

	if agent.CreatedAt.IsZero() {
		agent.CreatedAt = time.Now()
	}

	_, err := r.db.NamedExecContext(ctx, query, agent)
	if err != nil {
		return fmt.Errorf("failed to upsert agent: %w", err)
	}

	return nil
}

func (r *AgentRepositoryImpl) GetByID(ctx context.Context, agentID string) (*models.Agent, error) {
	query := `SELECT * FROM agents WHERE agent_id = $1`

	var agent models.Agent
	err := r.db.GetContext(ctx, &agent, query, agentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("agent %s not found", agentID)
		}
		return nil, fmt.Errorf("failed to get agent: %w", err)
	}

	return &agent, nil
}

func (r *AgentRepositoryImpl) GetByName(ctx context.Context, name string) (*models.Agent, error) {
	query := `SELECT * FROM agents WHERE name = $1`

	var agent models.Agent
	err := r.db.GetContext(ctx, &agent, query, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("agent %s not found", name)
		}
		return nil, fmt.Errorf("failed to get agent: %w", err)
	}

	return &agent, nil
}
