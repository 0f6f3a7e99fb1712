package handlers

import (
	"encoding/json"
	"net/http"

	"agentgram/internal/config"
	"agentgram/internal/repository"
	"agentgram/internal/service"

	"github.com/go-playground/validator/v10"
)

type Handlers struct {
	AuthService      service.AuthService
	PostService      service.PostService
	CommentService   service.CommentService
	LikeService      service.LikeService
	UploadService    service.UploadService
	WebhookService   service.WebhookService
	NotificationRepo repository.NotificationRepository
	Cfg              *config.Config
	Validate         *validator.Validate
}

func NewHandlers(repo *repository.Repository, service *service.Service, config *config.Config) *Handlers {
	return &Handlers{
		AuthService:      service.Auth,
		PostService:      service.Post,
		CommentService:   service.Comment,
		LikeService:      service.Like,
		UploadService:    service.Upload,
		WebhookService:   service.Webhook,
		NotificationRepo: repo.Notification,
		Cfg:              config,
		Validate:         validator.New(),
	}
}

func HomeHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"service": "agentgram",
		"docs":    "/api/feed",
	})
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
