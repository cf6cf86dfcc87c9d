package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bnema/recruit-chat-cli/internal/domain"
	"github.com/bnema/recruit-chat-cli/internal/ports"
)

const maxAuthResponseBytes = 1 << 20

type API struct {
	LoginPath string
	MePath    string
}

func DefaultAPI() API {
	return API{LoginPath: "auth/login", MePath: "auth/me"}
}

// PasswordLoginAdapter trades an email and password for a bearer token.
type PasswordLoginAdapter struct {
	API            API
	HTTPClient     *http.Client
	RequestTimeout time.Duration
}

var _ ports.Authenticator = PasswordLoginAdapter{}

// Identity is the account the chat backend associates with a token.
type Identity struct {
	ID         string `json:"-"`
	Email      string `json:"email"`
	FullName   string `json:"full_name"`
	Department string `json:"department"`
	Role       string `json:"role"`
	Active     bool   `json:"is_active"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type identityResponse struct {
	Identity
	RawID json.RawMessage `json:"id"`
}

type errorResponse struct {
	Detail json.RawMessage `json:"detail"`
}

func (a PasswordLoginAdapter) Login(ctx context.Context, baseURL, email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", fmt.Errorf("%w: email is required", domain.ErrInvalid)
	}
	if password == "" {
		return "", fmt.Errorf("%w: password is required", domain.ErrInvalid)
	}

	endpoint, err := buildAPIURL(baseURL, a.api().LoginPath)
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		return "", fmt.Errorf("encode login request: %w", err)
	}

	requestCtx, cancel := a.requestContext(ctx)
	defer cancel()
	req, err := http.NewRequestWithContext(requestCtx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient().Do(req)
	if err != nil {
		return "", fmt.Errorf("request token: %w: %w", domain.ErrUnreachable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("request token: %w", statusError(resp))
	}

	var token tokenResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxAuthResponseBytes)).Decode(&token); err != nil {
		return "", fmt.Errorf("decode token response: %w: %w", domain.ErrInvalid, err)
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("token response missing access token: %w", domain.ErrInvalid)
	}
	if token.TokenType != "" && !strings.EqualFold(token.TokenType, "bearer") {
		return "", fmt.Errorf("unsupported token type %q: %w", token.TokenType, domain.ErrInvalid)
	}

	return token.AccessToken, nil
}

// Verify asks the backend who owns token. A rejected or expired token wraps
// domain.ErrUnauthorized.
func (a PasswordLoginAdapter) Verify(ctx context.Context, baseURL, token string) (Identity, error) {
	if strings.TrimSpace(token) == "" {
		return Identity{}, fmt.Errorf("verify token: %w", domain.ErrCredentialNotFound)
	}

	endpoint, err := buildAPIURL(baseURL, a.api().MePath)
	if err != nil {
		return Identity{}, err
	}

	requestCtx, cancel := a.requestContext(ctx)
	defer cancel()
	req, err := http.NewRequestWithContext(requestCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Identity{}, fmt.Errorf("create identity request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := a.httpClient().Do(req)
	if err != nil {
		return Identity{}, fmt.Errorf("request identity: %w: %w", domain.ErrUnreachable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return Identity{}, fmt.Errorf("request identity: %w", statusError(resp))
	}

	var payload identityResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxAuthResponseBytes)).Decode(&payload); err != nil {
		return Identity{}, fmt.Errorf("decode identity response: %w: %w", domain.ErrInvalid, err)
	}
	if payload.Email == "" {
		return Identity{}, fmt.Errorf("identity response missing email: %w", domain.ErrInvalid)
	}

	identity := payload.Identity
	identity.ID = strings.Trim(string(payload.RawID), `"`)
	return identity, nil
}

func (a PasswordLoginAdapter) api() API {
	api := a.API
	defaults := DefaultAPI()
	if api.LoginPath == "" {
		api.LoginPath = defaults.LoginPath
	}
	if api.MePath == "" {
		api.MePath = defaults.MePath
	}
	return api
}

func (a PasswordLoginAdapter) httpClient() *http.Client {
	if a.HTTPClient != nil {
		return a.HTTPClient
	}
	return http.DefaultClient
}

func (a PasswordLoginAdapter) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	requestTimeout := a.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = 30 * time.Second
	}

	return context.WithTimeout(ctx, requestTimeout)
}

func statusError(resp *http.Response) error {
	sentinel := domain.ErrUnreachable
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		sentinel = domain.ErrUnauthorized
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		sentinel = domain.ErrInvalid
	}

	var payload errorResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxAuthResponseBytes)).Decode(&payload); err != nil || len(payload.Detail) == 0 {
		return fmt.Errorf("%w: status %d", sentinel, resp.StatusCode)
	}

	var detail string
	if err := json.Unmarshal(payload.Detail, &detail); err != nil {
		detail = string(payload.Detail)
	}
	return fmt.Errorf("%w: status %d: %s", sentinel, resp.StatusCode, detail)
}

// buildAPIURL appends path to the base url path, so a base of
// http://host/api and a path of auth/login give http://host/api/auth/login.
func buildAPIURL(baseURL string, path string) (string, error) {
	if strings.TrimSpace(baseURL) == "" {
		return "", errors.New("api base url is required")
	}
	if path == "" {
		return "", errors.New("api path is required")
	}

	parsed, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return "", fmt.Errorf("parse api base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("api base url must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("api base url host is required")
	}

	return parsed.JoinPath(strings.Split(strings.Trim(path, "/"), "/")...).String(), nil
}
