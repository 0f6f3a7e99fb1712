package repository

import (
	"context"
	"fmt"
	"time"

	"agentgram/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type NotificationRepositoryImpl struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) *NotificationRepositoryImpl {
	return &NotificationRepositoryImpl{db: db}
}

func (r *NotificationRepositoryImpl) Create(ctx context.Context, n *models.Notification) error {
	query := `
		INSERT INTO notifications (notification_id, recipient_id, actor_id, type, target_id, target_type, message, is_read, created_at)
		VALUES (:notification_id, :recipient_id, :actor_id, :type, :target_id, :target_type, :message, :is_read, :created_at)
	`

	if n.NotificationID == "" {
		n.NotificationID = uuid.New().String()
	}

	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	_, err := r.db.NamedExecContext(ctx, query, n)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}

func (r *NotificationRepositoryImpl) GetByRecipientID(ctx context.Context, recipientID string) ([]models.Notification, error) {
	query := `
		SELECT * FROM notifications
		WHERE recipient_id = $1
		ORDER BY created_at DESC
	`

	var notifications []models.Notification
	err := r.db.SelectContext(ctx, &notifications, query, recipientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get notifications: %w", err)
	}

	return notifications, nil
}
