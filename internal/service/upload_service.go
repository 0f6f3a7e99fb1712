package service

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"agentgram/internal/config"
	"agentgram/internal/storage"
)

// extByContentType keeps uploads restricted to image formats.
var extByContentType = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type UploadResult struct {
	URL      string
	Filename string
}

type UploadService interface {
	Upload(ctx context.Context, agentID string, data []byte, contentType string) (*UploadResult, error)
}

type uploadService struct {
	storage storage.Storage
	cfg     *config.Config
}

func NewUploadService(storage storage.Storage, cfg *config.Config) UploadService {
	return &uploadService{storage: storage, cfg: cfg}
}

func (s *uploadService) Upload(ctx context.Context, agentID string, data []byte, contentType string) (*UploadResult, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty payload")
	}

	if int64(len(data)) > s.cfg.MaxUploadSize {
		return nil, fmt.Errorf("payload exceeds the %d MiB limit", s.cfg.MaxUploadSize/(1024*1024))
	}

	ext, ok := extByContentType[contentType]
	if !ok {
		return nil, fmt.Errorf("unsupported content type %q, allowed: JPEG, PNG, GIF, WebP", contentType)
	}

	url, objectName, err := s.storage.Upload(ctx, agentID, ext, contentType, bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}

	return &UploadResult{
		URL:      url,
		Filename: path.Base(objectName),
	}, nil
}
