package rest

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
	"github.com/google/uuid"
)

const (
	DefaultBaseURL        = "http://localhost:8080/api"
	DefaultRequestTimeout = 30 * time.Second

	maxResponseBytes = 1 << 20
	requestIDHeader  = "X-Request-Id"
)

// Client talks to the chat backend over JSON/HTTP. Every request carries the
// bearer token from Credentials.
type Client struct {
	BaseURL        string
	HTTPClient     *http.Client
	Credentials    ports.CredentialSource
	Clock          ports.Clock
	RequestTimeout time.Duration
}

var _ ports.SessionService = Client{}

func (c Client) CreateAndSend(ctx context.Context, content string, jobID domain.JobID) (domain.Session, domain.Exchange, error) {
	var payload sendResponse
	request := sendRequest{Message: content, JobID: flexibleID(strings.TrimSpace(string(jobID)))}
	if err := c.do(ctx, http.MethodPost, []string{"chat", "send"}, request, &payload); err != nil {
		return domain.Session{}, domain.Exchange{}, err
	}

	now := c.clock().Now()
	if payload.Session == nil {
		return domain.Session{}, domain.Exchange{}, invalidf("send response: session is required")
	}
	session, err := payload.Session.toDomain(now)
	if err != nil {
		return domain.Session{}, domain.Exchange{}, invalidf("send response session: %v", err)
	}
	exchange, err := payload.exchange(now)
	if err != nil {
		return domain.Session{}, domain.Exchange{}, invalidf("send response: %v", err)
	}
	if err := payload.checkSession(session.ID); err != nil {
		return domain.Session{}, domain.Exchange{}, err
	}

	return session, exchange, nil
}

func (c Client) SendToExisting(ctx context.Context, id domain.SessionID, content string) (domain.Exchange, error) {
	if strings.TrimSpace(string(id)) == "" {
		return domain.Exchange{}, invalidf("session id is required")
	}

	var payload sendResponse
	request := sendRequest{Message: content, SessionID: flexibleID(id)}
	if err := c.do(ctx, http.MethodPost, []string{"chat", "send"}, request, &payload); err != nil {
		return domain.Exchange{}, err
	}

	exchange, err := payload.exchange(c.clock().Now())
	if err != nil {
		return domain.Exchange{}, invalidf("send response: %v", err)
	}
	if payload.Session != nil && domain.SessionID(payload.Session.ID) != id {
		return domain.Exchange{}, invalidf("send response: session %s does not match %s", payload.Session.ID, id)
	}
	if err := payload.checkSession(id); err != nil {
		return domain.Exchange{}, err
	}

	return exchange, nil
}

func (c Client) ListSessions(ctx context.Context) ([]domain.Session, error) {
	var payload []sessionSchema
	if err := c.do(ctx, http.MethodGet, []string{"chat", "sessions"}, nil, &payload); err != nil {
		return nil, err
	}

	now := c.clock().Now()
	sessions := make([]domain.Session, 0, len(payload))
	for i, raw := range payload {
		session, err := raw.toDomain(now)
		if err != nil {
			return nil, invalidf("list response entry %d: %v", i, err)
		}
		sessions = append(sessions, session.Summary())
	}

	return sessions, nil
}

func (c Client) FetchSession(ctx context.Context, id domain.SessionID) (domain.Session, error) {
	if strings.TrimSpace(string(id)) == "" {
		return domain.Session{}, invalidf("session id is required")
	}

	var payload sessionSchema
	if err := c.do(ctx, http.MethodGet, []string{"chat", "sessions", string(id)}, nil, &payload); err != nil {
		return domain.Session{}, err
	}

	session, err := payload.toDomain(c.clock().Now())
	if err != nil {
		return domain.Session{}, invalidf("session response: %v", err)
	}
	if session.ID != id {
		return domain.Session{}, invalidf("session response: id %s does not match %s", session.ID, id)
	}
	if session.Messages == nil {
		session.Messages = []domain.Message{}
	}

	return session, nil
}

func (c Client) DeleteSession(ctx context.Context, id domain.SessionID) error {
	if strings.TrimSpace(string(id)) == "" {
		return invalidf("session id is required")
	}

	return c.do(ctx, http.MethodDelete, []string{"chat", "sessions", string(id)}, nil, nil)
}

func (c Client) ClearAllSessions(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, []string{"chat", "sessions"}, nil, nil)
}

func (c Client) do(ctx context.Context, method string, segments []string, body any, out any) error {
	operation := method + " /" + strings.Join(segments, "/")

	if c.Credentials == nil {
		return fmt.Errorf("%s: %w: no credential source", operation, domain.ErrUnauthorized)
	}
	token, err := c.Credentials.Token(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", operation, domain.ErrUnauthorized, err)
	}

	endpoint, err := buildURL(c.baseURL(), segments...)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", operation, domain.ErrInvalid, err)
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: %w: encode request: %w", operation, domain.ErrInvalid, err)
		}
		reader = bytes.NewReader(encoded)
	}

	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()
	req, err := http.NewRequestWithContext(requestCtx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("%s: %w: create request: %w", operation, domain.ErrInvalid, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set(requestIDHeader, newRequestID())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", operation, domain.ErrUnreachable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%s: %w", operation, statusError(resp))
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return nil
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		return fmt.Errorf("%s: %w: decode response: %w", operation, domain.ErrInvalid, err)
	}

	return nil
}

func (c Client) baseURL() string {
	if strings.TrimSpace(c.BaseURL) == "" {
		return DefaultBaseURL
	}
	return c.BaseURL
}

func (c Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c Client) clock() ports.Clock {
	if c.Clock != nil {
		return c.Clock
	}
	return ports.SystemClock{}
}

func (c Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	requestTimeout := c.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = DefaultRequestTimeout
	}

	return context.WithTimeout(ctx, requestTimeout)
}

func (r sendResponse) checkSession(id domain.SessionID) error {
	for _, message := range []*messageSchema{r.UserMessage, r.AIMessage} {
		if message.SessionID != "" && domain.SessionID(message.SessionID) != id {
			return invalidf("send response: %s message belongs to session %s, want %s", message.Role, message.SessionID, id)
		}
	}
	return nil
}

func statusError(resp *http.Response) error {
	sentinel := domain.ErrUnreachable
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		sentinel = domain.ErrUnauthorized
	case http.StatusNotFound:
		sentinel = domain.ErrNotFound
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		sentinel = domain.ErrInvalid
	}

	var payload errorResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&payload); err != nil || payload.text() == "" {
		return fmt.Errorf("%w: status %d", sentinel, resp.StatusCode)
	}
	return fmt.Errorf("%w: status %d: %s", sentinel, resp.StatusCode, payload.text())
}

func buildURL(baseURL string, segments ...string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("base url must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("base url host is required")
	}

	return parsed.JoinPath(segments...).String(), nil
}

func newRequestID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{domain.ErrInvalid}, args...)...)
}
