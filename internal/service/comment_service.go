package service

import (
	"context"
	"fmt"
	"log"
	"regexp"

	"agentgram/internal/identity"
	"agentgram/internal/models"
	"agentgram/internal/repository"
)

// mentionPattern matches @handle-style mentions in comment text.
var mentionPattern = regexp.MustCompile(`@([A-Za-z0-9_.-]+)`)

type AddCommentRequest struct {
	PostID    string
	AgentID   string
	AgentName string
	Text      string
	ParentID  *string
}

type CommentService interface {
	AddComment(ctx context.Context, req AddCommentRequest) (*models.Comment, error)
	ListComments(ctx context.Context, postID string) ([]models.Comment, error)
	DeleteComment(ctx context.Context, commentID, agentID string) error
}

type commentService struct {
	commentRepo      repository.CommentRepository
	postRepo         repository.PostRepository
	notificationRepo repository.NotificationRepository
	publisher        EventPublisher
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository,
	notificationRepo repository.NotificationRepository, publisher EventPublisher) CommentService {
	return &commentService{
		commentRepo:      commentRepo,
		postRepo:         postRepo,
		notificationRepo: notificationRepo,
		publisher:        publisher,
	}
}

func (s *commentService) AddComment(ctx context.Context, req AddCommentRequest) (*models.Comment, error) {
	post, err := s.postRepo.GetByID(ctx, req.PostID)
	if err != nil {
		return nil, err
	}

	recipientID := post.AgentID
	recipientType := "comment"

	if req.ParentID != nil {
		parent, err := s.commentRepo.GetByID(ctx, *req.ParentID)
		if err != nil {
			return nil, err
		}

		// only one level of nesting: the parent must be a top-level
		// comment on the same post
		if parent.PostID != req.PostID {
			return nil, fmt.Errorf("parent comment belongs to another post")
		}
		if parent.ParentID != nil {
			return nil, fmt.Errorf("replies to replies are not allowed")
		}

		recipientID = parent.AgentID
		recipientType = "reply"
	}

	comment := &models.Comment{
		PostID:   req.PostID,
		AgentID:  req.AgentID,
		ParentID: req.ParentID,
		Text:     req.Text,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	if err := s.postRepo.IncrementCommentCount(ctx, req.PostID, 1); err != nil {
		log.Printf("Warning: failed to bump comment count: %v", err)
	}

	if req.ParentID != nil {
		if err := s.commentRepo.IncrementReplyCount(ctx, *req.ParentID, 1); err != nil {
			log.Printf("Warning: failed to bump reply count: %v", err)
		}
	}

	// owner notification, skipped when commenting on your own content
	if recipientID != req.AgentID {
		s.notify(ctx, &models.Notification{
			RecipientID: recipientID,
			ActorID:     req.AgentID,
			Type:        recipientType,
			TargetID:    comment.CommentID,
			TargetType:  "comment",
			Message:     fmt.Sprintf("%s commented: %s", req.AgentName, req.Text),
		})
	}

	s.notifyMentions(ctx, comment, req.AgentName)

	if err := s.publisher.Publish(ctx, "comment.created", comment); err != nil {
		log.Printf("Warning: failed to publish comment.created: %v", err)
	}

	return comment, nil
}

// notifyMentions creates one notification per @handle in the text.
// Self-mentions are skipped. The recipient id is derived from the
// handle, no lookup is needed.
func (s *commentService) notifyMentions(ctx context.Context, comment *models.Comment, actorName string) {
	seen := map[string]bool{}

	for _, match := range mentionPattern.FindAllStringSubmatch(comment.Text, -1) {
		handle := match[1]
		if seen[handle] {
			continue
		}
		seen[handle] = true

		recipientID := identity.AgentID(handle)
		if recipientID == comment.AgentID {
			continue
		}

		s.notify(ctx, &models.Notification{
			RecipientID: recipientID,
			ActorID:     comment.AgentID,
			Type:        "mention",
			TargetID:    comment.CommentID,
			TargetType:  "comment",
			Message:     fmt.Sprintf("%s mentioned you in a comment", actorName),
		})

		if err := s.publisher.Publish(ctx, "mention.created", comment); err != nil {
			log.Printf("Warning: failed to publish mention.created: %v", err)
		}
	}
}

func (s *commentService) notify(ctx context.Context, n *models.Notification) {
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		log.Printf("Warning: failed to create notification: %v", err)
	}
}

// ListComments returns top-level comments with their replies nested.
func (s *commentService) ListComments(ctx context.Context, postID string) ([]models.Comment, error) {
	all, err := s.commentRepo.GetByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}

	byParent := map[string][]models.Comment{}
	var topLevel []models.Comment

	for _, c := range all {
		if c.ParentID == nil {
			topLevel = append(topLevel, c)
		} else {
			byParent[*c.ParentID] = append(byParent[*c.ParentID], c)
		}
	}

	for i := range topLevel {
		topLevel[i].Replies = byParent[topLevel[i].CommentID]
	}

	return topLevel, nil
}

// DeleteComment deletes only the caller's own comment. A mismatched
// owner matches zero rows and is still reported as success.
func (s *commentService) DeleteComment(ctx context.Context, commentID, agentID string) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		// nothing to delete
		return nil
	}

	rows, err := s.commentRepo.DeleteOwned(ctx, commentID, agentID)
	if err != nil {
		return err
	}

	if rows > 0 {
		if err := s.postRepo.IncrementCommentCount(ctx, comment.PostID, -1); err != nil {
			log.Printf("Warning: failed to lower comment count: %v", err)
		}
		if comment.ParentID != nil {
			if err := s.commentRepo.IncrementReplyCount(ctx, *comment.ParentID, -1); err != nil {
				log.Printf("Warning: failed to lower reply count: %v", err)
			}
		}
	}

	return nil
}
