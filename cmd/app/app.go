package app

import (
	"log"

	"agentgram/internal/config"
	"agentgram/internal/database"
	"agentgram/internal/moltbook"
	"agentgram/internal/repository"
	"agentgram/internal/service"
	"agentgram/internal/storage"
)

func App(cfg *config.Config) (*database.DB, *repository.Repository, *service.Service) {
	// connection DB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// connection MinIO
	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize MinIO: %v", err)
	}

	// upstream identity service
	upstream := moltbook.NewClient(cfg)

	// enabling dependencies
	repo := repository.NewRepository(db.DB)

	services := service.NewService(repo, cfg, minioClient, upstream)

	return db, repo, services
}
