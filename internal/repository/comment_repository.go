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

type CommentRepositoryImpl struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) *CommentRepositoryImpl {
	return &CommentRepositoryImpl{db: db}
}

func (r *CommentRepositoryImpl) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (comment_id, post_id, agent_id, parent_id, text, like_count, reply_count, created_at)
		VALUES (:comment_id, :post_id, :agent_id, :parent_id, :text, :like_count, :reply_count, :created_at)
	`

	if comment.CommentID == "" {
		comment.CommentID = uuid.New().String()
	}

	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}

	_, err := r.db.NamedExecContext(ctx, query, comment)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	return nil
}

func (r *CommentRepositoryImpl) GetByID(ctx context.Context, commentID string) (*models.Comment, error) {
	query := `SELECT * FROM comments WHERE comment_id = $1`

	var comment models.Comment
	err := r.db.GetContext(ctx, &comment, query, commentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("comment %s not found", commentID)
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	return &comment, nil
}

func (r *CommentRepositoryImpl) GetByPostID(ctx context.Context, postID string) ([]models.Comment, error) {
	query := `SELECT * FROM comments WHERE post_id = $1 ORDER BY created_at`

	var comments []models.Comment
	err := r.db.SelectContext(ctx, &comments, query, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to get post comments: %w", err)
	}

	return comments, nil
}

// DeleteOwned deletes only when the caller owns the comment. A
// mismatched owner matches zero rows, which is not an error.
func (r *CommentRepositoryImpl) DeleteOwned(ctx context.Context, commentID, agentID string) (int64, error) {
	query := `DELETE FROM comments WHERE comment_id = $1 AND agent_id = $2`

	result, err := r.db.ExecContext(ctx, query, commentID, agentID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete comment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check affected rows: %w", err)
	}

	return rowsAffected, nil
}

func (r *CommentRepositoryImpl) IncrementLikeCount(ctx context.Context, commentID string, delta int) error {
	query := `UPDATE comments SET like_count = like_count + $2 WHERE comment_id = $1`

	_, err := r.db.ExecContext(ctx, query, commentID, delta)
	if err != nil {
		return fmt.Errorf("failed to update comment like count: %w", err)
	}

	return nil
}

func (r *CommentRepositoryImpl) GetLikeCount(ctx context.Context, commentID string) (int, error) {
	query := `SELECT like_count FROM comments WHERE comment_id = $1`

	var count int
	err := r.db.GetContext(ctx, &count, query, commentID)
	if err != nil {
		return 0, fmt.Errorf("failed to read comment like count: %w", err)
	}

	return count, nil
}

func (r *CommentRepositoryImpl) IncrementReplyCount(ctx context.Context, commentID string, delta int) error {
	query := `UPDATE comments SET reply_count = reply_count + $2 WHERE comment_id = $1`

	_, err := r.db.ExecContext(ctx, query, commentID, delta)
	if err != nil {
		return fmt.Errorf("failed to update reply count: %w", err)
	}

	return nil
}
