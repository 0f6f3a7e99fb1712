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

type PostRepositoryImpl struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{db: db}
}

func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (post_id, agent_id, caption, like_count, comment_count, created_at)
		VALUES (:post_id, :agent_id, :caption, :like_count, :comment_count, :created_at)
	`

	if post.PostID == "" {
		post.PostID = uuid.New().String()
	}

	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}

	_, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

// GetByID returns a live post. Soft-deleted posts are invisible here.
func (r *PostRepositoryImpl) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	query := `SELECT * FROM posts WHERE post_id = $1 AND deleted_at IS NULL`

	var post models.Post
	err := r.db.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("post %s not found", postID)
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return &post, nil
}

// Feed returns live posts older than the cursor, newest first.
func (r *PostRepositoryImpl) Feed(ctx context.Context, before time.Time, limit int) ([]models.Post, error) {
	query := `
		SELECT * FROM posts
		WHERE deleted_at IS NULL AND created_at < $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	var posts []models.Post
	err := r.db.SelectContext(ctx, &posts, query, before, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load feed: %w", err)
	}

	return posts, nil
}

func (r *PostRepositoryImpl) GetByAgentID(ctx context.Context, agentID string) ([]models.Post, error) {
	query := `
		SELECT * FROM posts
		WHERE agent_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
	`

	var posts []models.Post
	err := r.db.SelectContext(ctx, &posts, query, agentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get agent posts: %w", err)
	}

	return posts, nil
}

// GetDeletedByAgentID is the "recently deleted" listing, the only read
// path where soft-deleted posts appear.
func (r *PostRepositoryImpl) GetDeletedByAgentID(ctx context.Context, agentID string) ([]models.Post, error) {
	query := `
		SELECT * FROM posts
		WHERE agent_id = $1 AND deleted_at IS NOT NULL
		ORDER BY deleted_at DESC
	`

	var posts []models.Post
	err := r.db.SelectContext(ctx, &posts, query, agentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get deleted posts: %w", err)
	}

	return posts, nil
}

func (r *PostRepositoryImpl) SoftDelete(ctx context.Context, postID, agentID string, purgeAt time.Time) error {
	query := `
		UPDATE posts SET
			deleted_at = CURRENT_TIMESTAMP,
			purge_at = $3
		WHERE post_id = $1 AND agent_id = $2 AND deleted_at IS NULL
	`

	result, err := r.db.ExecContext(ctx, query, postID, agentID, purgeAt)
	if err != nil {
		return fmt.Errorf("failed to soft delete post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}

	if rowsAffected == 0 {
		return errors.New("post not found or not owned by caller")
	}

	return nil
}

func (r *PostRepositoryImpl) Restore(ctx context.Context, postID, agentID string) error {
	query := `
		UPDATE posts SET
			deleted_at = NULL,
			purge_at = NULL
		WHERE post_id = $1 AND agent_id = $2 AND deleted_at IS NOT NULL
	`

	result, err := r.db.ExecContext(ctx, query, postID, agentID)
	if err != nil {
		return fmt.Errorf("failed to restore post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}

	if rowsAffected == 0 {
		return errors.New("post not found or not owned by caller")
	}

	return nil
}

// Delete removes the row for good. The owner filter is in the query, a
// mismatched owner deletes zero rows.
func (r *PostRepositoryImpl) Delete(ctx context.Context, postID, agentID string) error {
	query := `DELETE FROM posts WHERE post_id = $1 AND agent_id = $2`

	result, err := r.db.ExecContext(ctx, query, postID, agentID)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}

	if rowsAffected == 0 {
		return errors.New("post not found or not owned by caller")
	}

	return nil
}

func (r *PostRepositoryImpl) IncrementLikeCount(ctx context.Context, postID string, delta int) error {
	query := `UPDATE posts SET like_count = like_count + $2 WHERE post_id = $1`

	_, err := r.db.ExecContext(ctx, query, postID, delta)
	if err != nil {
		return fmt.Errorf("failed to update like count: %w", err)
	}

	return nil
}

func (r *PostRepositoryImpl) GetLikeCount(ctx context.Context, postID string) (int, error) {
	query := `SELECT like_count FROM posts WHERE post_id = $1`

	var count int
	err := r.db.GetContext(ctx, &count, query, postID)
	if err != nil {
		return 0, fmt.Errorf("failed to read like count: %w", err)
	}

	return count, nil
}

func (r *PostRepositoryImpl) IncrementCommentCount(ctx context.Context, postID string, delta int) error {
	query := `UPDATE posts SET comment_count = comment_count + $2 WHERE post_id = $1`

	_, err := r.db.ExecContext(ctx, query, postID, delta)
	if err != nil {
		return fmt.Errorf("failed to update comment count: %w", err)
	}

	return nil
}
