package repository

import (
	"context"
	"time"

	"agentgram/internal/models"

	"github.com/jmoiron/sqlx"
)

type AgentRepository interface {
	Upsert(ctx context.Context, agent *models.Agent) error
	GetByID(ctx context.Context, agentID string) (*models.Agent, error)
	GetByName(ctx context.Context, name string) (*models.Agent, error)
}

type APIKeyRepository interface {
	Create(ctx context.Context, key *models.APIKey) error
	GetByAgentID(ctx context.Context, agentID string) (*models.APIKey, error)
	GetByKey(ctx context.Context, key string) (*models.APIKey, error)
	TouchLastUsed(ctx context.Context, key string) error
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID string) (*models.Post, error)
	Feed(ctx context.Context, before time.Time, limit int) ([]models.Post, error)
	GetByAgentID(ctx context.Context, agentID string) ([]models.Post, error)
	GetDeletedByAgentID(ctx context.Context, agentID string) ([]models.Post, error)
	SoftDelete(ctx context.Context, postID, agentID string, purgeAt time.Time) error
	Restore(ctx context.Context, postID, agentID string) error
	Delete(ctx context.Context, postID, agentID string) error
	IncrementLikeCount(ctx context.Context, postID string, delta int) error
	GetLikeCount(ctx context.Context, postID string) (int, error)
	IncrementCommentCount(ctx context.Context, postID string, delta int) error
}

type ImageRepository interface {
	Create(ctx context.Context, image *models.Image) error
	GetByPostID(ctx context.Context, postID string) ([]models.Image, error)
	DeleteByPostID(ctx context.Context, postID string) error
}

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, commentID string) (*models.Comment, error)
	GetByPostID(ctx context.Context, postID string) ([]models.Comment, error)
	DeleteOwned(ctx context.Context, commentID, agentID string) (int64, error)
	IncrementLikeCount(ctx context.Context, commentID string, delta int) error
	GetLikeCount(ctx context.Context, commentID string) (int, error)
	IncrementReplyCount(ctx context.Context, commentID string, delta int) error
}

type LikeRepository interface {
	PostLikeExists(ctx context.Context, postID, agentID string) (bool, error)
	InsertPostLike(ctx context.Context, postID, agentID string) error
	DeletePostLike(ctx context.Context, postID, agentID string) error
	CommentLikeExists(ctx context.Context, commentID, agentID string) (bool, error)
	InsertCommentLike(ctx context.Context, commentID, agentID string) error
	DeleteCommentLike(ctx context.Context, commentID, agentID string) error
}

type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	GetByRecipientID(ctx context.Context, recipientID string) ([]models.Notification, error)
}

type WebhookRepository interface {
	Upsert(ctx context.Context, webhook *models.Webhook) error
	GetByAgentID(ctx context.Context, agentID string) (*models.Webhook, error)
	Delete(ctx context.Context, agentID string) error
	ListSubscribed(ctx context.Context, eventType string) ([]models.Webhook, error)
	Enqueue(ctx context.Context, event *models.WebhookEvent) error
	ClaimPending(ctx context.Context, limit, maxAttempts int) ([]models.WebhookEvent, error)
	MarkDelivered(ctx context.Context, eventID string) error
	MarkFailed(ctx context.Context, eventID string) error
}

type Repository struct {
	Agent        AgentRepository
	APIKey       APIKeyRepository
	Post         PostRepository
	Image        ImageRepository
	Comment      CommentRepository
	Like         LikeRepository
	Notification NotificationRepository
	Webhook      WebhookRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		Agent:        NewAgentRepository(db),
		APIKey:       NewAPIKeyRepository(db),
		Post:         NewPostRepository(db),
		Image:        NewImageRepository(db),
		Comment:      NewCommentRepository(db),
		Like:         NewLikeRepository(db),
		Notification: NewNotificationRepository(db),
		Webhook:      NewWebhookRepository(db),
	}
}
