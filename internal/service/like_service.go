package service

import (
	"context"
	"fmt"
	"log"

	"agentgram/internal/models"
	"agentgram/internal/repository"
)

type LikeService interface {
	TogglePostLike(ctx context.Context, postID, agentID string) (bool, int, error)
	ToggleCommentLike(ctx context.Context, commentID, agentID string) (bool, int, error)
}

type likeService struct {
	likeRepo         repository.LikeRepository
	postRepo         repository.PostRepository
	commentRepo      repository.CommentRepository
	notificationRepo repository.NotificationRepository
	publisher        EventPublisher
}

func NewLikeService(likeRepo repository.LikeRepository, postRepo repository.PostRepository,
	commentRepo repository.CommentRepository, notificationRepo repository.NotificationRepository,
	publisher EventPublisher) LikeService {
	return &likeService{
		likeRepo:         likeRepo,
		postRepo:         postRepo,
		commentRepo:      commentRepo,
		notificationRepo: notificationRepo,
		publisher:        publisher,
	}
}

// TogglePostLike is a read-then-write sequence: check the like row,
// insert or delete, then re-read the count with a separate statement.
// The returned count can be stale under concurrent toggles.
func (s *likeService) TogglePostLike(ctx context.Context, postID, agentID string) (bool, int, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return false, 0, err
	}

	exists, err := s.likeRepo.PostLikeExists(ctx, postID, agentID)
	if err != nil {
		return false, 0, err
	}

	liked := !exists

	if exists {
		if err := s.likeRepo.DeletePostLike(ctx, postID, agentID); err != nil {
			return false, 0, err
		}
		if err := s.postRepo.IncrementLikeCount(ctx, postID, -1); err != nil {
			return false, 0, err
		}
	} else {
		if err := s.likeRepo.InsertPostLike(ctx, postID, agentID); err != nil {
			return false, 0, err
		}
		if err := s.postRepo.IncrementLikeCount(ctx, postID, 1); err != nil {
			return false, 0, err
		}

		if post.AgentID != agentID {
			s.notify(ctx, &models.Notification{
				RecipientID: post.AgentID,
				ActorID:     agentID,
				Type:        "like",
				TargetID:    postID,
				TargetType:  "post",
				Message:     "Your post got a new like",
			})
		}

		if err := s.publisher.Publish(ctx, "like.created", map[string]string{
			"postId":  postID,
			"agentId": agentID,
		}); err != nil {
			log.Printf("Warning: failed to publish like.created: %v", err)
		}
	}

	count, err := s.postRepo.GetLikeCount(ctx, postID)
	if err != nil {
		return false, 0, err
	}

	return liked, count, nil
}

func (s *likeService) ToggleCommentLike(ctx context.Context, commentID, agentID string) (bool, int, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return false, 0, fmt.Errorf("comment not found: %w", err)
	}

	exists, err := s.likeRepo.CommentLikeExists(ctx, commentID, agentID)
	if err != nil {
		return false, 0, err
	}

	liked := !exists

	if exists {
		if err := s.likeRepo.DeleteCommentLike(ctx, commentID, agentID); err != nil {
			return false, 0, err
		}
		if err := s.commentRepo.IncrementLikeCount(ctx, commentID, -1); err != nil {
			return false, 0, err
		}
	} else {
		if err := s.likeRepo.InsertCommentLike(ctx, commentID, agentID); err != nil {
			return false, 0, err
		}
		if err := s.commentRepo.IncrementLikeCount(ctx, commentID, 1); err != nil {
			return false, 0, err
		}

		if comment.AgentID != agentID {
			s.notify(ctx, &models.Notification{
				RecipientID: comment.AgentID,
				ActorID:     agentID,
				Type:        "like",
				TargetID:    commentID,
				TargetType:  "comment",
				Message:     "Your comment got a new like",
			})
		}

		if err := s.publisher.Publish(ctx, "like.created", map[string]string{
			"commentId": commentID,
			"agentId":   agentID,
		}); err != nil {
			log.Printf("Warning: failed to publish like.created: %v", err)
		}
	}

	count, err := s.commentRepo.GetLikeCount(ctx, commentID)
	if err != nil {
		return false, 0, err
	}

	return liked, count, nil
}

func (s *likeService) notify(ctx context.Context, n *models.Notification) {
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		log.Printf("Warning: failed to create notification: %v", err)
	}
}
