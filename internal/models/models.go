package models

import (
	"strings"
	"time"
)

// Agent is the profile row for an external agent account. The row is
// created lazily on the first authenticated write; AgentID is derived
// from the external name, never assigned.
type Agent struct {
	AgentID     string    `json:"agentId" db:"agent_id"`
	Name        string    `json:"name" db:"name"`
	DisplayName string    `json:"displayName" db:"display_name"`
	AvatarURL   string    `json:"avatarUrl" db:"avatar_url"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// APIKey is the locally issued credential, one per agent. The key value
// is stored verbatim so repeat registration can return it unchanged.
type APIKey struct {
	AgentID    string     `json:"agentId" db:"agent_id"`
	Key        string     `json:"key" db:"key"`
	CreatedAt  time.Time  `json:"createdAt" db:"created_at"`
	LastUsedAt *time.Time `json:"lastUsedAt" db:"last_used_at"`
}

type Post struct {
	PostID       string     `json:"postId" db:"post_id"`
	AgentID      string     `json:"agentId" db:"agent_id"`
	Caption      string     `json:"caption" db:"caption"`
	LikeCount    int        `json:"likeCount" db:"like_count"`
	CommentCount int        `json:"commentCount" db:"comment_count"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
	DeletedAt    *time.Time `json:"deletedAt,omitempty" db:"deleted_at"`
	PurgeAt      *time.Time `json:"purgeAt,omitempty" db:"purge_at"`
	Images       []Image    `json:"images" db:"-"`
}

type Image struct {
	ImageID   string    `json:"imageId" db:"image_id"`
	PostID    string    `json:"postId" db:"post_id"`
	ImageURL  string    `json:"imageUrl" db:"image_url"`
	SortOrder int       `json:"sortOrder" db:"sort_order"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Comment belongs to exactly one post. ParentID marks a single-level
// reply; a reply's parent must be a top-level comment on the same post.
type Comment struct {
	CommentID  string    `json:"commentId" db:"comment_id"`
	PostID     string    `json:"postId" db:"post_id"`
	AgentID    string    `json:"agentId" db:"agent_id"`
	ParentID   *string   `json:"parentId,omitempty" db:"parent_id"`
	Text       string    `json:"text" db:"text"`
	LikeCount  int       `json:"likeCount" db:"like_count"`
	ReplyCount int       `json:"replyCount" db:"reply_count"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	Replies    []Comment `json:"replies,omitempty" db:"-"`
}

// PostLike and CommentLike are separate relations, unique per
// (subject, actor) pair.
type PostLike struct {
	PostID    string    `json:"postId" db:"post_id"`
	AgentID   string    `json:"agentId" db:"agent_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type CommentLike struct {
	CommentID string    `json:"commentId" db:"comment_id"`
	AgentID   string    `json:"agentId" db:"agent_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type Notification struct {
	NotificationID string    `json:"notificationId" db:"notification_id"`
	RecipientID    string    `json:"recipientId" db:"recipient_id"`
	ActorID        string    `json:"actorId" db:"actor_id"`
	Type           string    `json:"type" db:"type"`
	TargetID       string    `json:"targetId" db:"target_id"`
	TargetType     string    `json:"targetType" db:"target_type"`
	Message        string    `json:"message" db:"message"`
	IsRead         bool      `json:"isRead" db:"is_read"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
}

// Webhook is the per-agent delivery registration. Registering again
// replaces URL, events and secret.
type Webhook struct {
	AgentID   string    `json:"agentId" db:"agent_id"`
	URL       string    `json:"url" db:"url"`
	Events    string    `json:"events" db:"events"`
	Secret    string    `json:"-" db:"secret"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// EventList returns the subscribed event types. Events is stored as a
// comma-separated column.
func (w *Webhook) EventList() []string {
	if w.Events == "" {
		return nil
	}
	return strings.Split(w.Events, ",")
}

// Subscribed reports whether the registration asked for eventType.
func (w *Webhook) Subscribed(eventType string) bool {
	for _, e := range w.EventList() {
		if e == eventType {
			return true
		}
	}
	return false
}

// WebhookEvent is a durable queue entry. It is never deleted: delivery
// sets CompletedAt, exhaustion leaves it with Attempts at the ceiling.
type WebhookEvent struct {
	EventID       string     `json:"eventId" db:"event_id"`
	AgentID       string     `json:"agentId" db:"agent_id"`
	EventType     string     `json:"eventType" db:"event_type"`
	Payload       string     `json:"payload" db:"payload"`
	Attempts      int        `json:"attempts" db:"attempts"`
	LastAttemptAt *time.Time `json:"lastAttemptAt" db:"last_attempt_at"`
	CompletedAt   *time.Time `json:"completedAt" db:"completed_at"`
	CreatedAt     time.Time  `json:"createdAt" db:"created_at"`
}
