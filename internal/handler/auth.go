package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ldelaney/authsvc/internal/domain"
	"github.com/ldelaney/authsvc/internal/service"
)

// AuthHandler handles authentication-related HTTP requests.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// HandleRegister processes a JSON registration request.
// POST /api/auth/register
// Request:  {"email":"...","password":"...","name":"..."}
// Response: 201 {"success":true,"data":{"user":{...},"token":"..."}}
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "All fields are required")
		return
	}

	user, token, err := h.auth.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "All fields are required")
			return
		}
		if errors.Is(err, domain.ErrDuplicateEmail) {
			writeError(w, http.StatusBadRequest, "User already exists")
			return
		}
		slog.Error("register user", "error", err)
		writeInternalError(w, "Error registering user", err)
		return
	}

	writeSuccess(w, http.StatusCreated, map[string]any{
		"user":  toUserDTO(user),
		"token": token,
	})
}

// HandleLogin processes a JSON login request.
// POST /api/auth/login
// Request:  {"email":"...","password":"..."}
// Response: 200 {"success":true,"data":{"user":{...},"token":"..."}}
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, token, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "Email and password are required")
			return
		}
		if errors.Is(err, domain.ErrInvalidCredentials) {
			// Same message whether the email is unknown or the password is
			// wrong, so responses cannot be used to enumerate accounts.
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		slog.Error("login user", "error", err)
		writeInternalError(w, "Error logging in", err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{
		"user":  toUserDTO(user),
		"token": token,
	})
}

// HandleMe returns the currently authenticated user.
// GET /api/auth/me
// Response: 200 {"success":true,"data":{...}} or 401
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	writeSuccess(w, http.StatusOK, toUserDTO(user))
}
