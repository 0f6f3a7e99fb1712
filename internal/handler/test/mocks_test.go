package test

import (
	"context"

	"agentgram/internal/models"
	"agentgram/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Authenticate(ctx context.Context, bearer string) (*service.AuthResult, error) {
	args := m.Called(ctx, bearer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}

func (m *MockAuthService) Register(ctx context.Context, upstreamToken string) (*service.RegisterResult, error) {
	args := m.Called(ctx, upstreamToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RegisterResult), args.Error(1)
}

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) CreatePost(ctx context.Context, req service.CreatePostRequest) (*models.Post, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) Feed(ctx context.Context, cursor string, limit int) ([]models.Post, string, bool, error) {
	args := m.Called(ctx, cursor, limit)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Bool(2), args.Error(3)
	}
	return args.Get(0).([]models.Post), args.String(1), args.Bool(2), args.Error(3)
}

func (m *MockPostService) SoftDelete(ctx context.Context, postID, agentID string) error {
	args := m.Called(ctx, postID, agentID)
	return args.Error(0)
}

func (m *MockPostService) Restore(ctx context.Context, postID, agentID string) error {
	args := m.Called(ctx, postID, agentID)
	return args.Error(0)
}

func (m *MockPostService) RecentlyDeleted(ctx context.Context, agentID string) ([]service.DeletedPost, error) {
	args := m.Called(ctx, agentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.DeletedPost), args.Error(1)
}

func (m *MockPostService) Purge(ctx context.Context, postID, agentID string) error {
	args := m.Called(ctx, postID, agentID)
	return args.Error(0)
}

type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) AddComment(ctx context.Context, req service.AddCommentRequest) (*models.Comment, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentService) ListComments(ctx context.Context, postID string) ([]models.Comment, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *MockCommentService) DeleteComment(ctx context.Context, commentID, agentID string) error {
	args := m.Called(ctx, commentID, agentID)
	return args.Error(0)
}

type MockLikeService struct {
	mock.Mock
}

func (m *MockLikeService) TogglePostLike(ctx context.Context, postID, agentID string) (bool, int, error) {
	args := m.Called(ctx, postID, agentID)
	return args.Bool(0), args.Int(1), args.Error(2)
}

func (m *MockLikeService) ToggleCommentLike(ctx context.Context, commentID, agentID string) (bool, int, error) {
	args := m.Called(ctx, commentID, agentID)
	return args.Bool(0), args.Int(1), args.Error(2)
}

type MockUploadService struct {
	mock.Mock
}

func (m *MockUploadService) Upload(ctx context.Context, agentID string, data []byte, contentType string) (*service.UploadResult, error) {
	args := m.Called(ctx, agentID, data, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UploadResult), args.Error(1)
}

type MockWebhookService struct {
	mock.Mock
}

func (m *MockWebhookService) Publish(ctx context.Context, eventType string, payload interface{}) error {
	args := m.Called(ctx, eventType, payload)
	return args.Error(0)
}

func (m *MockWebhookService) Register(ctx context.Context, agentID, url string, events []string, secret string) (*models.Webhook, error) {
	args := m.Called(ctx, agentID, url, events, secret)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Webhook), args.Error(1)
}

func (m *MockWebhookService) Get(ctx context.Context, agentID string) (*models.Webhook, error) {
	args := m.Called(ctx, agentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Webhook), args.Error(1)
}

func (m *MockWebhookService) Unregister(ctx context.Context, agentID string) error {
	args := m.Called(ctx, agentID)
	return args.Error(0)
}

func (m *MockWebhookService) DispatchPending(ctx context.Context) error {
	args := m.Called(ctx)
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
