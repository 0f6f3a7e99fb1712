package test

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"agentgram/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestUploadHandler_JSONEnvelope(t *testing.T) {
	payload := []byte{0x89, 'P', 'N', 'G'}
	encoded := base64.StdEncoding.EncodeToString(payload)

	tests := []struct {
		name           string
		body           map[string]string
		mockSetup      func(*MockUploadService)
		expectedStatus int
	}{
		{
			name: "plain base64 with explicit content type",
			body: map[string]string{"image": encoded, "contentType": "image/png"},
			mockSetup: func(uploads *MockUploadService) {
				uploads.On("Upload", mock.Anything, "agent-1", payload, "image/png").
					Return(&service.UploadResult{
						URL:      "http://minio/uploads/agents/agent-1/abc.png",
						Filename: "abc.png",
					}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "data URL carries its own content type",
			body: map[string]string{"image": "data:image/png;base64," + encoded},
			mockSetup: func(uploads *MockUploadService) {
				uploads.On("Upload", mock.Anything, "agent-1", payload, "image/png").
					Return(&service.UploadResult{
						URL:      "http://minio/uploads/agents/agent-1/abc.png",
						Filename: "abc.png",
					}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "empty image field",
			body:           map[string]string{"image": "", "contentType": "image/png"},
			mockSetup:      func(uploads *MockUploadService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "broken base64",
			body:           map[string]string{"image": "!!not base64!!", "contentType": "image/png"},
			mockSetup:      func(uploads *MockUploadService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "unsupported format",
			body: map[string]string{"image": encoded, "contentType": "application/pdf"},
			mockSetup: func(uploads *MockUploadService) {
				uploads.On("Upload", mock.Anything, "agent-1", payload, "application/pdf").
					Return(nil, errors.New(`unsupported content type "application/pdf", allowed: JPEG, PNG, GIF, WebP`))
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "oversize payload",
			body: map[string]string{"image": encoded, "contentType": "image/jpeg"},
			mockSetup: func(uploads *MockUploadService) {
				uploads.On("Upload", mock.Anything, "agent-1", payload, "image/jpeg").
					Return(nil, errors.New("payload exceeds the 10 MiB limit"))
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUploadService := new(MockUploadService)
			tt.mockSetup(mockUploadService)

			handler := newTestHandlers()
			handler.UploadService = mockUploadService

			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/api/upload", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			req = authedRequest(req, testAgent(), "")

			rr := httptest.NewRecorder()
			handler.Upload(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			mockUploadService.AssertExpectations(t)
		})
	}
}

func TestUploadHandler_RawBinary(t *testing.T) {
	payload := []byte{0xff, 0xd8, 0xff, 0xe0}

	mockUploadService := new(MockUploadService)
	mockUploadService.On("Upload", mock.Anything, "agent-1", payload, "image/jpeg").
		Return(&service.UploadResult{
			URL:      "http://minio/uploads/agents/agent-1/raw.jpg",
			Filename: "raw.jpg",
		}, nil)

	handler := newTestHandlers()
	handler.UploadService = mockUploadService

	req := httptest.NewRequest(http.MethodPost, "/api/upload", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "image/jpeg")
	req = authedRequest(req, testAgent(), "")

	rr := httptest.NewRecorder()
	handler.Upload(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)

	var response map[string]interface{}
	json.Unmarshal(rr.Body.Bytes(), &response)
	assert.Equal(t, "raw.jpg", response["filename"])
	mockUploadService.AssertExpectations(t)
}

func TestUploadHandler_UnsupportedBodyType(t *testing.T) {
	handler := newTestHandlers()
	handler.UploadService = new(MockUploadService)

	req := httptest.NewRequest(http.MethodPost, "/api/upload", bytes.NewReader([]byte("<xml/>")))
	req.Header.Set("Content-Type", "text/xml")
	req = authedRequest(req, testAgent(), "")

	rr := httptest.NewRecorder()
	handler.Upload(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
