package service

import (
	"context"
	"io"
	"time"

	"agentgram/internal/models"
	"agentgram/internal/moltbook"

	"github.com/stretchr/testify/mock"
)

type MockAgentRepository struct {
	mock.Mock
}

func (m *MockAgentRepository) Upsert(ctx context.Context, agent *models.Agent) error {
	args := m.Called(ctx, agent)
	return args.Error(0)
}

func (m *MockAgentRepository) GetByID(ctx context.Context, agentID string) (*models.Agent, error) {
	args := m.Called(ctx, agentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Agent), args.Error(1)
}

func (m *MockAgentRepository) GetByName(ctx context.Context, name string) (*models.Agent, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Agent), args.Error(1)
}

type MockAPIKeyRepository struct {
	mock.Mock
}

func (m *MockAPIKeyRepository) Create(ctx context.Context, key *models.APIKey) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockAPIKeyRepository) GetByAgentID(ctx context.Context, agentID string) (*models.APIKey, error) {
	args := m.Called(ctx, agentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.APIKey), args.Error(1)
}

func (m *MockAPIKeyRepository) GetByKey(ctx context.Context, key string) (*models.APIKey, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.APIKey), args.Error(1)
}

func (m *MockAPIKeyRepository) TouchLastUsed(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) Feed(ctx context.Context, before time.Time, limit int) ([]models.Post, error) {
	args := m.Called(ctx, before, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostRepository) GetByAgentID(ctx context.Context, agentID string) ([]models.Post, error) {
	args := m.Called(ctx, agentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostRepository) GetDeletedByAgentID(ctx context.Context, agentID string) ([]models.Post, error) {
	args := m.Called(ctx, agentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostRepository) SoftDelete(ctx context.Context, postID, agentID string, purgeAt time.Time) error {
	args := m.Called(ctx, postID, agentID, purgeAt)
	return args.Error(0)
}

func (m *MockPostRepository) Restore(ctx context.Context, postID, agentID string) error {
	args := m.Called(ctx, postID, agentID)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(ctx context.Context, postID, agentID string) error {
	args := m.Called(ctx, postID, agentID)
	return args.Error(0)
}

func (m *MockPostRepository) IncrementLikeCount(ctx context.Context, postID string, delta int) error {
	args := m.Called(ctx, postID, delta)
	return args.Error(0)
}

func (m *MockPostRepository) GetLikeCount(ctx context.Context, postID string) (int, error) {
	args := m.Called(ctx, postID)
	return args.Int(0), args.Error(1)
}

func (m *MockPostRepository) IncrementCommentCount(ctx context.Context, postID string, delta int) error {
	args := m.Called(ctx, postID, delta)
	return args.Error(0)
}

type MockImageRepository struct {
	mock.Mock
}

func (m *MockImageRepository) Create(ctx context.Context, image *models.Image) error {
	args := m.Called(ctx, image)
	return args.Error(0)
}

func (m *MockImageRepository) GetByPostID(ctx context.Context, postID string) ([]models.Image, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Image), args.Error(1)
}

func (m *MockImageRepository) DeleteByPostID(ctx context.Context, postID string) error {
	args := m.Called(ctx, postID)
	return args.Error(0)
}

type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) GetByID(ctx context.Context, commentID string) (*models.Comment, error) {
	args := m.Called(ctx, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) GetByPostID(ctx context.Context, postID string) ([]models.Comment, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *MockCommentRepository) DeleteOwned(ctx context.Context, commentID, agentID string) (int64, error) {
	args := m.Called(ctx, commentID, agentID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCommentRepository) IncrementLikeCount(ctx context.Context, commentID string, delta int) error {
	args := m.Called(ctx, commentID, delta)
	return args.Error(0)
}

func (m *MockCommentRepository) GetLikeCount(ctx context.Context, commentID string) (int, error) {
	args := m.Called(ctx, commentID)
	return args.Int(0), args.Error(1)
}

func (m *MockCommentRepository) IncrementReplyCount(ctx context.Context, commentID string, delta int) error {
	args := m.Called(ctx, commentID, delta)
	return args.Error(0)
}

type MockLikeRepository struct {
	mock.Mock
}

func (m *MockLikeRepository) PostLikeExists(ctx context.Context, postID, agentID string) (bool, error) {
	args := m.Called(ctx, postID, agentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLikeRepository) InsertPostLike(ctx context.Context, postID, agentID string) error {
	args := m.Called(ctx, postID, agentID)
	return args.Error(0)
}

func (m *MockLikeRepository) DeletePostLike(ctx context.Context, postID, agentID string) error {
	args := m.Called(ctx, postID, agentID)
	return args.Error(0)
}

func (m *MockLikeRepository) CommentLikeExists(ctx context.Context, commentID, agentID string) (bool, error) {
	args := m.Called(ctx, commentID, agentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLikeRepository) InsertCommentLike(ctx context.Context, commentID, agentID string) error {
	args := m.Called(ctx, commentID, agentID)
	return args.Error(0)
}

func (m *MockLikeRepository) DeleteCommentLike(ctx context.Context, commentID, agentID string) error {
	args := m.Called(ctx, commentID, agentID)
	return args.Error(0)
}

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepository) GetByRecipientID(ctx context.Context, recipientID string) ([]models.Notification, error) {
	args := m.Called(ctx, recipientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Notification), args.Error(1)
}

type MockWebhookRepository struct {
	mock.Mock
}

func (m *MockWebhookRepository) Upsert(ctx context.Context, webhook *models.Webhook) error {
	args := m.Called(ctx, webhook)
	return args.Error(0)
}

func (m *MockWebhookRepository) GetByAgentID(ctx context.Context, agentID string) (*models.Webhook, error) {
	args := m.Called(ctx, agentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Webhook), args.Error(1)
}

func (m *MockWebhookRepository) Delete(ctx context.Context, agentID string) error {
	args := m.Called(ctx, agentID)
	return args.Error(0)
}

func (m *MockWebhookRepository) ListSubscribed(ctx context.Context, eventType string) ([]models.Webhook, error) {
	args := m.Called(ctx, eventType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Webhook), args.Error(1)
}

func (m *MockWebhookRepository) Enqueue(ctx context.Context, event *models.WebhookEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockWebhookRepository) ClaimPending(ctx context.Context, limit, maxAttempts int) ([]models.WebhookEvent, error) {
	args := m.Called(ctx, limit, maxAttempts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.WebhookEvent), args.Error(1)
}

func (m *MockWebhookRepository) MarkDelivered(ctx context.Context, eventID string) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}

func (m *MockWebhookRepository) MarkFailed(ctx context.Context, eventID string) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Upload(ctx context.Context, agentID, ext, contentType string, file io.Reader, size int64) (string, string, error) {
	args := m.Called(ctx, agentID, ext, contentType, file, size)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockStorage) Delete(ctx context.Context, objectName string) error {
	args := m.Called(ctx, objectName)
	return args.Error(0)
}

func (m *MockStorage) ObjectNameFromURL(imageURL string) string {
	args := m.Called(imageURL)
	return args.String(0)
}

type MockMoltbookClient struct {
	mock.Mock
}

func (m *MockMoltbookClient) Validate(ctx context.Context, token string) (*moltbook.Profile, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*moltbook.Profile), args.Error(1)
}

func (m *MockMoltbookClient) RelayPost(ctx context.Context, token, content string) error {
	args := m.Called(ctx, token, content)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, eventType string, payload interface{}) error {
	args := m.Called(ctx, eventType, payload)
	return args.Error(0)
}
