package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	handlers "agentgram/internal/handler"
	"agentgram/internal/service"
)

type Middleware func(http.Handler) http.Handler

// publicRoutes maps paths that skip credential resolution to the
// methods allowed through. An empty list means every method.
var publicRoutes = map[string][]string{
	"/":                    nil,
	"/health":              nil,
	"/api/feed":            nil,
	"/api/comments":        {http.MethodGet, http.MethodOptions},
	"/api/agents/register": nil, // validates its own upstream credential
}

func isPublic(r *http.Request) bool {
	methods, ok := publicRoutes[r.URL.Path]
	if !ok {
		return false
	}
	if methods == nil {
		return true
	}
	for _, m := range methods {
		if r.Method == m {
			return true
		}
	}
	return false
}

// AuthMiddleware resolves the bearer token (local api key or upstream
// credential) and adds the agent to the request context.
func AuthMiddleware(authService service.AuthService) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublic(r) {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				handlers.WriteError(w, "Invalid or missing credential", http.StatusUnauthorized)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				handlers.WriteError(w, "Invalid or missing credential", http.StatusUnauthorized)
				return
			}

			result, err := authService.Authenticate(r.Context(), parts[1])
			if err != nil {
				// one generic message for every credential failure
				handlers.WriteError(w, "Invalid or missing credential", http.StatusUnauthorized)
				return
			}

			ctx := r.Context()
			ctx = context.WithValue(ctx, handlers.CtxAgent, result.Agent)
			ctx = context.WithValue(ctx, handlers.CtxUpstreamToken, result.UpstreamToken)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("%s %s %s", r.Method, r.RequestURI, r.RemoteAddr)
		next.ServeHTTP(w, r)
	})
}

func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for _, m := range middlewares {
		h = m(h)
	}
	return h
}
