package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
)

type ToggleLikeRequest struct {
	PostID    string `json:"postId"`
	CommentID string `json:"commentId"`
}

// ToggleLike serves POST and DELETE identically: both toggle the like
// for the calling agent.
func (h *Handlers) ToggleLike(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost && r.Method != http.MethodDelete {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	agent := agentFromContext(r)
	if agent == nil {
		WriteError(w, "Invalid or missing credential", http.StatusUnauthorized)
		return
	}

	var req ToggleLikeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.PostID == "" && req.CommentID == "" {
		WriteError(w, "postId or commentId is required", http.StatusBadRequest)
		return
	}

	var liked bool
	var count int
	var err error

	if req.PostID != "" {
		liked, count, err = h.LikeService.TogglePostLike(r.Context(), req.PostID, agent.AgentID)
	} else {
		liked, count, err = h.LikeService.ToggleCommentLike(r.Context(), req.CommentID, agent.AgentID)
	}

	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			WriteError(w, err.Error(), http.StatusBadRequest)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"success": true,
		"liked":   liked,
		"count":   count,
	}, http.StatusOK)
}
