package handlers

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"strings"
)

type uploadEnvelope struct {
	Image       string `json:"image"`
	ContentType string `json:"contentType"`
}

// Upload accepts either a JSON envelope with a base64 payload (a data
// URL prefix is tolerated) or a raw binary body with an image
// content-type.
func (h *Handlers) Upload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	agent := agentFromContext(r)
	if agent == nil {
		WriteError(w, "Invalid or missing credential", http.StatusUnauthorized)
		return
	}

	contentType := r.Header.Get("Content-Type")

	var data []byte
	var imageType string

	switch {
	case strings.HasPrefix(contentType, "application/json"):
		var envelope uploadEnvelope
		// one extra byte over the ceiling is enough to detect oversize
		body := http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize*2)
		if err := json.NewDecoder(body).Decode(&envelope); err != nil {
			WriteError(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		raw := envelope.Image
		imageType = envelope.ContentType

		// data URL form: data:image/png;base64,....
		if strings.HasPrefix(raw, "data:") {
			parts := strings.SplitN(raw, ",", 2)
			if len(parts) != 2 {
				WriteError(w, "Malformed data URL", http.StatusBadRequest)
				return
			}
			meta := strings.TrimPrefix(parts[0], "data:")
			imageType = strings.TrimSuffix(strings.SplitN(meta, ";", 2)[0], ";")
			raw = parts[1]
		}

		if raw == "" {
			WriteError(w, "image payload is required", http.StatusBadRequest)
			return
		}

		decoded, err := base64.StdEncoding.DecodeString(raw)
		if err != nil {
			WriteError(w, "Invalid base64 payload", http.StatusBadRequest)
			return
		}
		data = decoded

	case strings.HasPrefix(contentType, "image/"):
		body := http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize+1)
		raw, err := io.ReadAll(body)
		if err != nil {
			WriteError(w, "Payload too large", http.StatusBadRequest)
			return
		}
		data = raw
		imageType = strings.SplitN(contentType, ";", 2)[0]

	default:
		WriteError(w, "Unsupported content type", http.StatusBadRequest)
		return
	}

	result, err := h.UploadService.Upload(r.Context(), agent.AgentID, data, imageType)
	if err != nil {
		if strings.Contains(err.Error(), "limit") ||
			strings.Contains(err.Error(), "unsupported") ||
			strings.Contains(err.Error(), "empty") {
			WriteError(w, err.Error(), http.StatusBadRequest)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"success":  true,
		"url":      result.URL,
		"filename": result.Filename,
	}, http.StatusCreated)
}
