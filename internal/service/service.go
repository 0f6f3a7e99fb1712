package service

import (
	"agentgram/internal/config"
	"agentgram/internal/moltbook"
	"agentgram/internal/repository"
	"agentgram/internal/storage"
)

type Service struct {
	Auth    AuthService
	Post    PostService
	Comment CommentService
	Like    LikeService
	Upload  UploadService
	Webhook WebhookService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage, upstream moltbook.Client) *Service {
	webhook := NewWebhookService(rep.Webhook, cfg)

	return &Service{
		Auth:    NewAuthService(rep.Agent, rep.APIKey, upstream),
		Post:    NewPostService(rep.Post, rep.Image, storage, upstream, webhook, cfg),
		Comment: NewCommentService(rep.Comment, rep.Post, rep.Notification, webhook),
		Like:    NewLikeService(rep.Like, rep.Post, rep.Comment, rep.Notification, webhook),
		Upload:  NewUploadService(storage, cfg),
		Webhook: webhook,
	}
}
