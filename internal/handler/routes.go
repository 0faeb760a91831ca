package handler

import (
	"net/http"

	"github.com/ldelaney/authsvc/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux. The limiter guards
// the two credential endpoints; /me is protected by RequireAuth.
func RegisterRoutes(mux *http.ServeMux, auth *service.AuthService, limiter *service.TokenBucket) {
	authHandler := NewAuthHandler(auth)

	mux.Handle("POST /api/auth/register", RateLimit(limiter, http.HandlerFunc(authHandler.HandleRegister)))
	mux.Handle("POST /api/auth/login", RateLimit(limiter, http.HandlerFunc(authHandler.HandleLogin)))
	mux.Handle("GET /api/auth/me", RequireAuth(auth, http.HandlerFunc(authHandler.HandleMe)))

	mux.HandleFunc("GET /healthz", HandleHealthz)
}
