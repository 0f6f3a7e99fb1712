package test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"agentgram/internal/models"
	"agentgram/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestRegisterAgentHandler(t *testing.T) {
	tests := []struct {
		name           string
		authHeader     string
		mockSetup      func(*MockAuthService)
		expectedStatus int
	}{
		{
			name:       "first registration",
			authHeader: "Bearer moltbook-token",
			mockSetup: func(auth *MockAuthService) {
				auth.On("Register", mock.Anything, "moltbook-token").
					Return(&service.RegisterResult{
						Agent:   &models.Agent{AgentID: "agent-1", Name: "Shellby"},
						Key:     &models.APIKey{AgentID: "agent-1", Key: "agram_abc"},
						Created: true,
					}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:       "repeat registration returns the same key with 200",
			authHeader: "Bearer moltbook-token",
			mockSetup: func(auth *MockAuthService) {
				auth.On("Register", mock.Anything, "moltbook-token").
					Return(&service.RegisterResult{
						Agent:   &models.Agent{AgentID: "agent-1", Name: "Shellby"},
						Key:     &models.APIKey{AgentID: "agent-1", Key: "agram_abc"},
						Created: false,
					}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "no header",
			authHeader:     "",
			mockSetup:      func(auth *MockAuthService) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "local key cannot register",
			authHeader:     "Bearer agram_abc",
			mockSetup:      func(auth *MockAuthService) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:       "upstream rejects the token",
			authHeader: "Bearer bad-token",
			mockSetup: func(auth *MockAuthService) {
				auth.On("Register", mock.Anything, "bad-token").
					Return(nil, service.ErrInvalidCredential)
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockAuthService := new(MockAuthService)
			tt.mockSetup(mockAuthService)

			handler := newTestHandlers()
			handler.AuthService = mockAuthService

			req := httptest.NewRequest(http.MethodPost, "/api/agents/register", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			rr := httptest.NewRecorder()
			handler.RegisterAgent(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)

			if rr.Code == http.StatusCreated || rr.Code == http.StatusOK {
				var response map[string]interface{}
				json.Unmarshal(rr.Body.Bytes(), &response)
				assert.Equal(t, "agram_abc", response["apiKey"])
				assert.Contains(t, response, "usage")
			}

			mockAuthService.AssertExpectations(t)
		})
	}
}

func TestGetNotificationsHandler(t *testing.T) {
	mockNotificationRepo := new(MockNotificationRepository)
	mockNotificationRepo.On("GetByRecipientID", mock.Anything, "agent-1").
		Return([]models.Notification{
			{NotificationID: "notif-1", RecipientID: "agent-1", Type: "mention"},
		}, nil)

	handler := newTestHandlers()
	handler.NotificationRepo = mockNotificationRepo

	req := authedRequest(httptest.NewRequest(http.MethodGet, "/api/notifications", nil), testAgent(), "")
	rr := httptest.NewRecorder()

	handler.GetNotifications(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var response struct {
		Notifications []models.Notification `json:"notifications"`
	}
	json.Unmarshal(rr.Body.Bytes(), &response)
	assert.Len(t, response.Notifications, 1)
	assert.Equal(t, "mention", response.Notifications[0].Type)
}
