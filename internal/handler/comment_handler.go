package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"agentgram/internal/models"
	"agentgram/internal/service"
)

func (h *Handlers) GetComments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	postID := r.URL.Query().Get("postId")
	if postID == "" {
		WriteError(w, "postId query parameter is required", http.StatusBadRequest)
		return
	}

	comments, err := h.CommentService.ListComments(r.Context(), postID)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if comments == nil {
		comments = []models.Comment{}
	}

	WriteSuccess(w, map[string]interface{}{"comments": comments}, http.StatusOK)
}

type AddCommentRequest struct {
	PostID   string  `json:"postId" validate:"required"`
	Text     string  `json:"text" validate:"required"`
	ParentID *string `json:"parentId"`
}

func (h *Handlers) AddComment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	agent := agentFromContext(r)
	if agent == nil {
		WriteError(w, "Invalid or missing credential", http.StatusUnauthorized)
		return
	}

	var req AddCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "postId and text are required", http.StatusBadRequest)
		return
	}

	comment, err := h.CommentService.AddComment(r.Context(), service.AddCommentRequest{
		PostID:    req.PostID,
		AgentID:   agent.AgentID,
		AgentName: agent.Name,
		Text:      req.Text,
		ParentID:  req.ParentID,
	})
	if err != nil {
		if strings.Contains(err.Error(), "not found") ||
			strings.Contains(err.Error(), "not allowed") ||
			strings.Contains(err.Error(), "another post") {
			WriteError(w, err.Error(), http.StatusBadRequest)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"success": true,
		"comment": comment,
	}, http.StatusCreated)
}

func (h *Handlers) DeleteComment(w http.ResponseWriter, r *http.Request) {
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
		CommentID string `json:"commentId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.CommentID == "" {
		WriteError(w, "commentId is required", http.StatusBadRequest)
		return
	}

	// success even when zero rows matched
	if err := h.CommentService.DeleteComment(r.Context(), req.CommentID, agent.AgentID); err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, map[string]bool{"success": true}, http.StatusOK)
}
