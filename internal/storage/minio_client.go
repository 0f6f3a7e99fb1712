package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"agentgram/internal/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type Storage interface {
	Upload(ctx context.Context, agentID, ext, contentType string, file io.Reader, size int64) (string, string, error)
	Delete(ctx context.Context, objectName string) error
	ObjectNameFromURL(imageURL string) string
}

type MinIOClient struct {
	client *minio.Client
	cfg    *config.Config
}

func NewMinIOClient(cfg *config.Config) (*MinIOClient, error) {
	client, err := minio.New(cfg.MinIO.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
		Secure: cfg.MinIO.UseSSL,
		Region: cfg.MinIO.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.MinIO.BucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}

	if !exists {
		err = client.MakeBucket(ctx, cfg.MinIO.BucketName, minio.MakeBucketOptions{Region: cfg.MinIO.Region})
		if err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &MinIOClient{client: client, cfg: cfg}, nil
}

// Upload writes the blob under a path namespaced by the agent id with a
// random suffix and returns the public URL and the object name.
func (m *MinIOClient) Upload(ctx context.Context, agentID, ext, contentType string, file io.Reader, size int64) (string, string, error) {
	if ext == "" {
		ext = ".jpg"
	}

	if contentType == "" {
		contentType = "application/octet-stream"
	}

	objectName := fmt.Sprintf("agents/%s/%s%s", agentID, uuid.New().String(), ext)

	_, err := m.client.PutObject(ctx, m.cfg.MinIO.BucketName, objectName, file, size,
		minio.PutObjectOptions{
			ContentType: contentType,
			UserMetadata: map[string]string{
				"agent-id":    agentID,
				"uploaded-at": time.Now().Format(time.RFC3339),
			},
		})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload to MinIO: %w", err)
	}

	imageURL := fmt.Sprintf("%s/%s/%s", m.cfg.MinIO.PublicURL, m.cfg.MinIO.BucketName, objectName)

	return imageURL, objectName, nil
}

func (m *MinIOClient) Delete(ctx context.Context, objectName string) error {
	err := m.client.RemoveObject(ctx, m.cfg.MinIO.BucketName, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete from MinIO: %w", err)
	}
	return nil
}

// ObjectNameFromURL maps a public URL back to the stored object name.
// Returns "" for URLs that do not point into our bucket.
func (m *MinIOClient) ObjectNameFromURL(imageURL string) string {
	prefix := fmt.Sprintf("%s/%s/", m.cfg.MinIO.PublicURL, m.cfg.MinIO.BucketName)
	if !strings.HasPrefix(imageURL, prefix) {
		return ""
	}
	return strings.TrimPrefix(imageURL, prefix)
}
