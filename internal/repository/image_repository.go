package repository

import (
	"context"
	"fmt"
	"time"

	"agentgram/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type ImageRepositoryImpl struct {
	db *sqlx.DB
}

func NewImageRepository(db *sqlx.DB) *ImageRepositoryImpl {
	return &ImageRepositoryImpl{db: db}
}

func (r *ImageRepositoryImpl) Create(ctx context.Context, image *models.Image) error {
	query := `
		INSERT INTO post_images (image_id, post_id, image_url, sort_order, created_at)
		VALUES (:image_id, :post_id, :image_url, :sort_order, :created_at)
	`

	if image.ImageID == "" {
		image.ImageID = uuid.New().String()
	}

	if image.CreatedAt.IsZero() {
		image.CreatedAt = time.Now()
	}

	_, err := r.db.NamedExecContext(ctx, query, image)
	if err != nil {
		return fmt.Errorf("failed to create image row: %w", err)
	}

	return nil
}

func (r *ImageRepositoryImpl) GetByPostID(ctx context.Context, postID string) ([]models.Image, error) {
	query := `SELECT * FROM post_images WHERE post_id = $1 ORDER BY sort_order`

	var images []models.Image
	err := r.db.SelectContext(ctx, &images, query, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to get post images: %w", err)
	}

	return images, nil
}

func (r *ImageRepositoryImpl) DeleteByPostID(ctx context.Context, postID string) error {
	query := `DELETE FROM post_images WHERE post_id = $1`

	_, err := r.db.ExecContext(ctx, query, postID)
	if err != nil {
		return fmt.Errorf("failed to delete post images: %w", err)
	}

	return nil
}
