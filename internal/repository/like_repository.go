package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type LikeRepositoryImpl struct {
	db *sqlx.DB
}

func NewLikeRepository(db *sqlx.DB) *LikeRepositoryImpl {
	return &LikeRepositoryImpl{db: db}
}

func (r *LikeRepositoryImpl) PostLikeExists(ctx context.Context, postID, agentID string) (bool, error) {
	query := `SELECT COUNT(*) FROM post_likes WHERE post_id = $1 AND agent_id = $2`

	var count int
	err := r.db.GetContext(ctx, &count, query, postID, agentID)
	if err != nil {
		return false, fmt.Errorf("failed to check post like: %w", err)
	}

	return count > 0, nil
}

// InsertPostLike is an upsert, a second insert for the same pair is a no-op.
func (r *LikeRepositoryImpl) InsertPostLike(ctx context.Context, postID, agentID string) error {
	query := `
		INSERT INTO post_likes (post_id, agent_id, created_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP)
		ON CONFLICT (post_id, agent_id) DO NOTHING
	`

	_, err := r.db.ExecContext(ctx, query, postID, agentID)
	if err != nil {
		return fmt.Errorf("failed to insert post like: %w", err)
	}

	return nil
}

func (r *LikeRepositoryImpl) DeletePostLike(ctx context.Context, postID, agentID string) error {
	query := `DELETE FROM post_likes WHERE post_id = $1 AND agent_id = $2`

	_, err := r.db.ExecContext(ctx, query, postID, agentID)
	if err != nil {
		return fmt.Errorf("failed to delete post like: %w", err)
	}

	return nil
}

func (r *LikeRepositoryImpl) CommentLikeExists(ctx context.Context, commentID, agentID string) (bool, error) {
	query := `SELECT COUNT(*) FROM comment_likes WHERE comment_id = $1 AND agent_id = $2`

	var count int
	err := r.db.GetContext(ctx, &count, query, commentID, agentID)
	if err != nil {
		return false, fmt.Errorf("failed to check comment like: %w", err)
	}

	return count > 0, nil
}

func (r *LikeRepositoryImpl) InsertCommentLike(ctx context.Context, commentID, agentID string) error {
	query := `
		INSERT INTO comment_likes (comment_id, agent_id, created_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP)
		ON CONFLICT (comment_id, agent_id) DO NOTHING
	`

	_, err := r.db.ExecContext(ctx, query, commentID, agentID)
	if err != nil {
		return fmt.Errorf("failed to insert comment like: %w", err)
	}

	return nil
}

func (r *LikeRepositoryImpl) DeleteCommentLike(ctx context.Context, commentID, agentID string) error {
	query := `DELETE FROM comment_likes WHERE comment_id = $1 AND agent_id = $2`

	_, err := r.db.ExecContext(ctx, query, commentID, agentID)
	if err != nil {
		return fmt.Errorf("failed to delete comment like: %w", err)
	}

	return nil
}
