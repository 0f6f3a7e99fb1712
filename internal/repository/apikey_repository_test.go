package repository

import (
	"context"
	"testing"
	"time"

	"agentgram/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIKeyRepository_Create(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	repo := NewAPIKeyRepository(sqlxDB)

	key := &models.APIKey{
		AgentID: "agent-1",
		Key:     "agram_abc123",
	}

	mock.ExpectExec(`
		INSERT INTO api_keys (agent_id, key, created_at)
		VALUES (?, ?, ?)
	`).
		WithArgs("agent-1", "agram_abc123", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), key)

	assert.NoError(t, err)
	assert.False(t, key.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAPIKeyRepository_GetByKey(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	repo := NewAPIKeyRepository(sqlxDB)

	t.Run("key exists", func(t *testing.T) {
		lastUsed := time.Now().Add(-time.Hour)
		rows := sqlmock.NewRows([]string{"agent_id", "key", "created_at", "last_used_at"}).
			AddRow("agent-1", "agram_abc123", time.Now().Add(-24*time.Hour), lastUsed)

		mock.ExpectQuery(`SELECT * FROM api_keys WHERE key = $1`).
			WithArgs("agram_abc123").
			WillReturnRows(rows)

		key, err := repo.GetByKey(context.Background(), "agram_abc123")

		require.NoError(t, err)
		assert.Equal(t, "agent-1", key.AgentID)
		require.NotNil(t, key.LastUsedAt)
	})

	t.Run("unknown key", func(t *testing.T) {
		mock.ExpectQuery(`SELECT * FROM api_keys WHERE key = $1`).
			WithArgs("agram_nope").
			WillReturnRows(sqlmock.NewRows([]string{"agent_id", "key", "created_at", "last_used_at"}))

		_, err := repo.GetByKey(context.Background(), "agram_nope")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}

func TestAPIKeyRepository_TouchLastUsed(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	repo := NewAPIKeyRepository(sqlxDB)

	mock.ExpectExec(`UPDATE api_keys SET last_used_at = CURRENT_TIMESTAMP WHERE key = $1`).
		WithArgs("agram_abc123").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.TouchLastUsed(context.Background(), "agram_abc123")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
