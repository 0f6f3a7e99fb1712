package handlers

import (
	"net/http"
	"strings"

	"agentgram/internal/service"
)

// RegisterAgent issues the local api key. Only an upstream credential
// is accepted here, and registering twice returns the key already
// issued.
func (h *Handlers) RegisterAgent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	authHeader := r.Header.Get("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		WriteError(w, "Invalid or missing credential", http.StatusUnauthorized)
		return
	}

	token := parts[1]
	if strings.HasPrefix(token, service.APIKeyPrefix) {
		// local keys cannot mint more local keys
		WriteError(w, "Invalid or missing credential", http.StatusUnauthorized)
		return
	}

	result, err := h.AuthService.Register(r.Context(), token)
	if err != nil {
		WriteError(w, "Invalid or missing credential", http.StatusUnauthorized)
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}

	WriteSuccess(w, map[string]interface{}{
		"success": true,
		"apiKey":  result.Key.Key,
		"agent":   result.Agent,
		"usage":   "Pass the key as Authorization: Bearer <apiKey> on every request",
	}, status)
}
