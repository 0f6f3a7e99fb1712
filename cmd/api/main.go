package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"agentgram/cmd/app"
	"agentgram/internal/config"
	"agentgram/internal/database"
	handlers "agentgram/internal/handler"
	"agentgram/internal/middleware"
	"agentgram/internal/service"

	"github.com/gorilla/mux"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	db, repo, services := app.App(cfg)
	defer database.MethodsDB.CloseDB(db)

	handler := handlers.NewHandlers(repo, services, cfg)

	router := mux.NewRouter()

	// setting up routes
	router.HandleFunc("/", handlers.HomeHandler)
	router.HandleFunc("/health", handlers.HealthHandler)

	router.HandleFunc("/api/feed", handler.GetFeed)

	router.HandleFunc("/api/posts", handler.CreatePost).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc("/api/posts", handler.DeletePost).Methods(http.MethodDelete)
	router.HandleFunc("/api/posts/deleted", handler.GetDeletedPosts)
	router.HandleFunc("/api/posts/restore", handler.RestorePost)
	router.HandleFunc("/api/posts/purge", handler.PurgePost)

	router.HandleFunc("/api/comments", handler.GetComments).Methods(http.MethodGet, http.MethodOptions)
	router.HandleFunc("/api/comments", handler.AddComment).Methods(http.MethodPost)
	router.HandleFunc("/api/comments", handler.DeleteComment).Methods(http.MethodDelete)

	router.HandleFunc("/api/likes", handler.ToggleLike)
	router.HandleFunc("/api/upload", handler.Upload)
	router.HandleFunc("/api/webhooks", handler.Webhooks)
	router.HandleFunc("/api/notifications", handler.GetNotifications)

	router.HandleFunc("/api/agents/register", handler.RegisterAgent)

	handlerChain := middleware.Chain(
		router,
		middleware.AuthMiddleware(services.Auth),
		middleware.CORSMiddleware,
		middleware.LoggingMiddleware,
	)

	// periodic webhook delivery
	go runDispatcher(services.Webhook, cfg)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	log.Printf("Server listening on %s", addr)
	log.Printf("Database: %s", cfg.DB.DbNAME)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func runDispatcher(webhooks service.WebhookService, cfg *config.Config) {
	ticker := time.NewTicker(cfg.Webhook.Interval)
	defer ticker.Stop()

	for range ticker.C {
		if err := webhooks.DispatchPending(context.Background()); err != nil {
			log.Printf("Warning: webhook dispatch pass failed: %v", err)
		}
	}
}
