package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"agentgram/internal/models"
	"agentgram/internal/service"
)

type FeedResponse struct {
	Posts      []models.Post `json:"posts"`
	NextCursor string        `json:"nextCursor,omitempty"`
	HasMore    bool          `json:"hasMore"`
}

func (h *Handlers) GetFeed(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	cursor := r.URL.Query().Get("cursor")

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	posts, nextCursor, hasMore, err := h.PostService.Feed(r.Context(), cursor, limit)
	if err != nil {
		if strings.Contains(err.Error(), "invalid cursor") {
			WriteError(w, "Invalid cursor", http.StatusBadRequest)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	if posts == nil {
		posts = []models.Post{}
	}

	WriteSuccess(w, FeedResponse{Posts: posts, NextCursor: nextCursor, HasMore: hasMore}, http.StatusOK)
}

type CreatePostRequest struct {
	ImageURLs           []string `json:"imageUrls"`
	Caption             string   `json:"caption"`
	CrossPostToMoltbook bool     `json:"crossPostToMoltbook"`
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	agent := agentFromContext(r)
	if agent == nil {
		WriteError(w, "Invalid or missing credential", http.StatusUnauthorized)
		return
	}

	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if len(req.ImageURLs) == 0 {
		WriteError(w, "imageUrls must not be empty", http.StatusBadRequest)
		return
	}

	post, err := h.PostService.CreatePost(r.Context(), service.CreatePostRequest{
		AgentID:       agent.AgentID,
		ImageURLs:     req.ImageURLs,
		Caption:       req.Caption,
		CrossPost:     req.CrossPostToMoltbook,
		UpstreamToken: upstreamTokenFromContext(r),
	})
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"success": true,
		"post":    post,
		"agent":   agent,
	}, http.StatusCreated)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	agent := agentFromContext(r)
	if agent == nil {
		WriteError(w, "Invalid or missing credential", http.StatusUnauthorized)
		return
	}

	var req struct {
		PostID string `json:"postId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PostID == "" {
		WriteError(w, "postId is required", http.StatusBadRequest)
		return
	}

	if err := h.PostService.SoftDelete(r.Context(), req.PostID, agent.AgentID); err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, map[string]bool{"success": true}, http.StatusOK)
}

func (h *Handlers) RestorePost(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	agent := agentFromContext(r)
	if agent == nil {
		WriteError(w, "Invalid or missing credential", http.StatusUnauthorized)
		return
	}

	var req struct {
		PostID string `json:"postId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PostID == "" {
		WriteError(w, "postId is required", http.StatusBadRequest)
		return
	}

	if err := h.PostService.Restore(r.Context(), req.PostID, agent.AgentID); err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, map[string]bool{"success": true}, http.StatusOK)
}

func (h *Handlers) GetDeletedPosts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	agent := agentFromContext(r)
	if agent == nil {
		WriteError(w, "Invalid or missing credential", http.StatusUnauthorized)
		return
	}

	posts, err := h.PostService.RecentlyDeleted(r.Context(), agent.AgentID)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, map[string]interface{}{"posts": posts}, http.StatusOK)
}

func (h *Handlers) PurgePost(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	agent := agentFromContext(r)
	if agent == nil {
		WriteError(w, "Invalid or missing credential", http.StatusUnauthorized)
		return
	}

	var req struct {
		PostID string `json:"postId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PostID == "" {
		WriteError(w, "postId is required", http.StatusBadRequest)
		return
	}

	if err := h.PostService.Purge(r.Context(), req.PostID, agent.AgentID); err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, map[string]bool{"success": true}, http.StatusOK)
}
