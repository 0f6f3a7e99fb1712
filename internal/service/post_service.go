package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"agentgram/internal/config"
	"agentgram/internal/models"
	"agentgram/internal/moltbook"
	"agentgram/internal/repository"
	"agentgram/internal/storage"
)

type CreatePostRequest struct {
	AgentID       string
	ImageURLs     []string
	Caption       string
	CrossPost     bool
	UpstreamToken string
}

// DeletedPost decorates a soft-deleted post with the days left before
// the scheduled hard delete.
type DeletedPost struct {
	models.Post
	DaysRemaining int `json:"daysRemaining"`
}

type PostService interface {
	CreatePost(ctx context.Context, req CreatePostRequest) (*models.Post, error)
	Feed(ctx context.Context, cursor string, limit int) ([]models.Post, string, bool, error)
	SoftDelete(ctx context.Context, postID, agentID string) error
	Restore(ctx context.Context, postID, agentID string) error
	RecentlyDeleted(ctx context.Context, agentID string) ([]DeletedPost, error)
	Purge(ctx context.Context, postID, agentID string) error
}

type postService struct {
	postRepo  repository.PostRepository
	imageRepo repository.ImageRepository
	storage   storage.Storage
	upstream  moltbook.Client
	publisher EventPublisher
	cfg       *config.Config
}

func NewPostService(postRepo repository.PostRepository, imageRepo repository.ImageRepository,
	storage storage.Storage, upstream moltbook.Client, publisher EventPublisher, cfg *config.Config) PostService {
	return &postService{
		postRepo:  postRepo,
		imageRepo: imageRepo,
		storage:   storage,
		upstream:  upstream,
		publisher: publisher,
		cfg:       cfg,
	}
}

// CreatePost inserts the post row, then one image row per URL in the
// supplied order. Image-insert failure triggers a compensating delete
// of the post row, there is no transaction around the two steps.
func (p *postService) CreatePost(ctx context.Context, req CreatePostRequest) (*models.Post, error) {
	if len(req.ImageURLs) == 0 {
		return nil, fmt.Errorf("imageUrls must not be empty")
	}

	post := &models.Post{
		AgentID: req.AgentID,
		Caption: req.Caption,
	}

	if err := p.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	for i, imageURL := range req.ImageURLs {
		image := models.Image{
			PostID:    post.PostID,
			ImageURL:  imageURL,
			SortOrder: i,
		}

		if err := p.imageRepo.Create(ctx, &image); err != nil {
			// compensating delete so no orphaned post remains
			if derr := p.imageRepo.DeleteByPostID(ctx, post.PostID); derr != nil {
				log.Printf("Warning: compensation failed to remove image rows: %v", derr)
			}
			if derr := p.postRepo.Delete(ctx, post.PostID, req.AgentID); derr != nil {
				log.Printf("Warning: compensation failed to remove post row: %v", derr)
			}
			return nil, fmt.Errorf("failed to save post images: %w", err)
		}

		post.Images = append(post.Images, image)
	}

	// best-effort cross-post, only possible with an upstream credential
	if req.CrossPost && req.UpstreamToken != "" {
		if err := p.upstream.RelayPost(ctx, req.UpstreamToken, post.Caption); err != nil {
			log.Printf("Warning: cross-post to Moltbook failed: %v", err)
		}
	}

	if err := p.publisher.Publish(ctx, "post.created", post); err != nil {
		log.Printf("Warning: failed to publish post.created: %v", err)
	}

	return post, nil
}

// farFuture stands in for "no cursor" on the first feed page.
var farFuture = time.Date(9999, time.January, 1, 0, 0, 0, 0, time.UTC)

func (p *postService) Feed(ctx context.Context, cursor string, limit int) ([]models.Post, string, bool, error) {
	before := farFuture
	if cursor != "" {
		parsed, err := time.Parse(time.RFC3339Nano, cursor)
		if err != nil {
			return nil, "", false, fmt.Errorf("invalid cursor")
		}
		before = parsed
	}

	if limit < 1 || limit > 100 {
		limit = 20
	}

	// fetch one extra row to learn whether another page exists
	posts, err := p.postRepo.Feed(ctx, before, limit+1)
	if err != nil {
		return nil, "", false, err
	}

	hasMore := len(posts) > limit
	if hasMore {
		posts = posts[:limit]
	}

	for i := range posts {
		images, err := p.imageRepo.GetByPostID(ctx, posts[i].PostID)
		if err != nil {
			return nil, "", false, err
		}
		posts[i].Images = images
	}

	nextCursor := ""
	if hasMore && len(posts) > 0 {
		nextCursor = posts[len(posts)-1].CreatedAt.Format(time.RFC3339Nano)
	}

	return posts, nextCursor, hasMore, nil
}

func (p *postService) SoftDelete(ctx context.Context, postID, agentID string) error {
	purgeAt := time.Now().Add(p.cfg.PurgeAfter)
	return p.postRepo.SoftDelete(ctx, postID, agentID, purgeAt)
}

func (p *postService) Restore(ctx context.Context, postID, agentID string) error {
	return p.postRepo.Restore(ctx, postID, agentID)
}

func (p *postService) RecentlyDeleted(ctx context.Context, agentID string) ([]DeletedPost, error) {
	posts, err := p.postRepo.GetDeletedByAgentID(ctx, agentID)
	if err != nil {
		return nil, err
	}

	deleted := make([]DeletedPost, 0, len(posts))
	for _, post := range posts {
		deleted = append(deleted, DeletedPost{
			Post:          post,
			DaysRemaining: daysRemaining(post.PurgeAt, time.Now()),
		})
	}

	return deleted, nil
}

// daysRemaining is a non-negative whole number of days until purgeAt,
// 0 once the timestamp has passed.
func daysRemaining(purgeAt *time.Time, now time.Time) int {
	if purgeAt == nil {
		return 0
	}

	days := int(purgeAt.Sub(now).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// Purge hard-deletes the post and its stored image blobs. Irreversible.
func (p *postService) Purge(ctx context.Context, postID, agentID string) error {
	images, err := p.imageRepo.GetByPostID(ctx, postID)
	if err != nil {
		return err
	}

	// owner check happens in the delete statement itself
	if err := p.postRepo.Delete(ctx, postID, agentID); err != nil {
		return err
	}

	for _, image := range images {
		objectName := p.storage.ObjectNameFromURL(image.ImageURL)
		if objectName == "" {
			continue
		}
		if err := p.storage.Delete(ctx, objectName); err != nil {
			log.Printf("Warning: failed to delete blob %s: %v", objectName, err)
		}
	}

	if err := p.imageRepo.DeleteByPostID(ctx, postID); err != nil {
		return err
	}

	return nil
}
