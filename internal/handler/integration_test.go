package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ldelaney/authsvc/internal/handler"
	"github.com/ldelaney/authsvc/internal/service"
)

func TestIntegration_RegisterLoginMe(t *testing.T) {
	auth := newTestAuthService(t)
	limiter := service.NewTokenBucket(1, 100)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, auth, limiter)

	srv := httptest.NewServer(handler.SecurityHeaders(mux))
	defer srv.Close()

	client := srv.Client()

	// 1. Register a new user.
	resp, err := client.Post(srv.URL+"/api/auth/register", "application/json",
		strings.NewReader(`{"email":"a@x.com","password":"secret123","name":"Ann"}`))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode, "body: %s", body)

	var registered struct {
		Success bool `json:"success"`
		Data    struct {
			User  map[string]any `json:"user"`
			Token string         `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &registered))
	require.True(t, registered.Success)
	require.Equal(t, "a@x.com", registered.Data.User["email"])
	require.NotContains(t, registered.Data.User, "password")
	require.NotEmpty(t, registered.Data.Token)

	// The raw response must never contain the plaintext or a bcrypt digest.
	require.NotContains(t, string(body), "secret123")
	require.False(t, bytes.Contains(body, []byte("$2a$")), "response leaks a bcrypt digest")

	// 2. Login with the same credentials.
	resp, err = client.Post(srv.URL+"/api/auth/login", "application/json",
		strings.NewReader(`{"email":"a@x.com","password":"secret123"}`))
	require.NoError(t, err)
	body, err = io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode, "body: %s", body)

	var loggedIn struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &loggedIn))
	require.NotEmpty(t, loggedIn.Data.Token)

	// 3. Fetch the profile with the bearer token.
	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/auth/me", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+loggedIn.Data.Token)

	resp, err = client.Do(req)
	require.NoError(t, err)
	body, err = io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode, "body: %s", body)

	var me struct {
		Success bool           `json:"success"`
		Data    map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &me))
	require.True(t, me.Success)
	require.Equal(t, "a@x.com", me.Data["email"])
	require.Equal(t, "Ann", me.Data["name"])
	require.NotContains(t, me.Data, "password")

	// Security headers applied to the whole surface.
	require.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))

	// 4. /me without a token is rejected.
	resp, err = client.Get(srv.URL + "/api/auth/me")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestIntegration_LoginRateLimited(t *testing.T) {
	auth := newTestAuthService(t)
	limiter := service.NewTokenBucket(0, 2) // no refill, burst of 2

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, auth, limiter)

	srv := httptest.NewServer(mux)
	defer srv.Close()

	login := func() int {
		resp, err := srv.Client().Post(srv.URL+"/api/auth/login", "application/json",
			strings.NewReader(`{"email":"a@x.com","password":"nope"}`))
		require.NoError(t, err)
		resp.Body.Close()
		return resp.StatusCode
	}

	require.Equal(t, http.StatusUnauthorized, login())
	require.Equal(t, http.StatusUnauthorized, login())
	require.Equal(t, http.StatusTooManyRequests, login())
}
