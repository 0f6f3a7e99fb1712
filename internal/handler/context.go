package handlers

import (
	"net/http"

	"agentgram/internal/models"
)

// Context keys set by the auth middleware.
const (
	CtxAgent         = "agent"
	CtxUpstreamToken = "upstreamToken"
)

// agentFromContext returns the authenticated agent, or nil when the
// request went through an unauthenticated route.
func agentFromContext(r *http.Request) *models.Agent {
	agent, _ := r.Context().Value(CtxAgent).(*models.Agent)
	return agent
}

func upstreamTokenFromContext(r *http.Request) string {
	token, _ := r.Context().Value(CtxUpstreamToken).(string)
	return token
}
