package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bnema/recruit-chat-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginPostsCredentialsAndReturnsToken(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "hr@example.com", body["email"])
		assert.Equal(t, "s3cret", body["password"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"jwt-abc","token_type":"bearer"}`))
	}))
	t.Cleanup(server.Close)

	adapter := PasswordLoginAdapter{HTTPClient: server.Client()}

	token, err := adapter.Login(context.Background(), server.URL+"/api", " hr@example.com ", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "jwt-abc", token)
}

func TestLoginMapsRejectedCredentialsToUnauthorized(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Incorrect email or password"}`))
	}))
	t.Cleanup(server.Close)

	adapter := PasswordLoginAdapter{HTTPClient: server.Client()}

	_, err := adapter.Login(context.Background(), server.URL, "hr@example.com", "wrong")
	require.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Contains(t, err.Error(), "Incorrect email or password")
}

func TestLoginRejectsMissingAccessToken(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token_type":"bearer"}`))
	}))
	t.Cleanup(server.Close)

	adapter := PasswordLoginAdapter{HTTPClient: server.Client()}

	_, err := adapter.Login(context.Background(), server.URL, "hr@example.com", "pw")
	require.ErrorIs(t, err, domain.ErrInvalid)
	assert.Contains(t, err.Error(), "missing access token")
}

func TestLoginValidatesInputBeforeNetworkCall(t *testing.T) {
	t.Parallel()

	adapter := PasswordLoginAdapter{}

	_, err := adapter.Login(context.Background(), "http://127.0.0.1:1", "", "pw")
	require.ErrorIs(t, err, domain.ErrInvalid)

	_, err = adapter.Login(context.Background(), "http://127.0.0.1:1", "hr@example.com", "")
	require.ErrorIs(t, err, domain.ErrInvalid)

	_, err = adapter.Login(context.Background(), "ftp://example.com", "hr@example.com", "pw")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http or https")
}

func TestLoginTimesOutWithoutCallerDeadline(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		_, _ = w.Write([]byte(`{"access_token":"late"}`))
	}))
	t.Cleanup(server.Close)

	adapter := PasswordLoginAdapter{HTTPClient: server.Client(), RequestTimeout: 20 * time.Millisecond}

	_, err := adapter.Login(context.Background(), server.URL, "hr@example.com", "pw")
	require.ErrorIs(t, err, domain.ErrUnreachable)
}

func TestVerifyReturnsIdentity(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/auth/me", r.URL.Path)
		assert.Equal(t, "Bearer jwt-abc", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":3,"email":"hr@example.com","full_name":"Ada Lovelace","department":"People","role":"hr","is_active":true,"created_at":"2026-01-01T00:00:00"}`))
	}))
	t.Cleanup(server.Close)

	adapter := PasswordLoginAdapter{HTTPClient: server.Client()}

	identity, err := adapter.Verify(context.Background(), server.URL+"/api/", "jwt-abc")
	require.NoError(t, err)
	assert.Equal(t, "3", identity.ID)
	assert.Equal(t, "hr@example.com", identity.Email)
	assert.Equal(t, "Ada Lovelace", identity.FullName)
	assert.True(t, identity.Active)
}

func TestVerifyExpiredTokenIsUnauthorized(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Could not validate credentials"}`))
	}))
	t.Cleanup(server.Close)

	adapter := PasswordLoginAdapter{HTTPClient: server.Client()}

	_, err := adapter.Verify(context.Background(), server.URL, "expired")
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestBuildAPIURLKeepsBasePath(t *testing.T) {
	t.Parallel()

	endpoint, err := buildAPIURL("http://localhost:8080/api", "/auth/login")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/api/auth/login", endpoint)
}
