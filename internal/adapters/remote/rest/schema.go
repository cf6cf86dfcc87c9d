package rest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/recruit-chat-cli/internal/domain"
)

// naiveLayouts are accepted for servers that serialize timestamps without a
// zone. Such values are read as UTC.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// flexibleID accepts a JSON number or string.
type flexibleID string

func (id *flexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		*id = flexibleID(strings.TrimSpace(raw))
		return nil
	}

	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return fmt.Errorf("id must be a string or a number: %w", err)
	}
	if _, err := strconv.ParseInt(number.String(), 10, 64); err != nil {
		return fmt.Errorf("id %s is not an integer", number)
	}
	*id = flexibleID(number.String())
	return nil
}

// MarshalJSON writes integer ids as JSON numbers, which is what the chat
// backend stores, and anything else as a string.
func (id flexibleID) MarshalJSON() ([]byte, error) {
	if value, err := strconv.ParseInt(string(id), 10, 64); err == nil && strconv.FormatInt(value, 10) == string(id) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

type wireTime struct {
	time.Time
}

func (t *wireTime) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		t.Time = time.Time{}
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		t.Time = time.Time{}
		return nil
	}

	if parsed, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		t.Time = parsed.UTC()
		return nil
	}
	for _, layout := range naiveLayouts {
		if parsed, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			t.Time = parsed
			return nil
		}
	}

	return fmt.Errorf("unsupported timestamp %q", raw)
}

type sendRequest struct {
	Message   string     `json:"message"`
	SessionID flexibleID `json:"session_id,omitempty"`
	JobID     flexibleID `json:"job_id,omitempty"`
}

type messageSchema struct {
	ID        flexibleID `json:"id"`
	SessionID flexibleID `json:"session_id"`
	Role      string     `json:"role"`
	Content   *string    `json:"content"`
	CreatedAt wireTime   `json:"created_at"`
}

type sessionSchema struct {
	ID        flexibleID      `json:"id"`
	Title     *string         `json:"title"`
	JobID     flexibleID      `json:"job_id"`
	CreatedAt wireTime        `json:"created_at"`
	UpdatedAt wireTime        `json:"updated_at"`
	Messages  []messageSchema `json:"messages"`
}

type sendResponse struct {
	Session     *sessionSchema `json:"session"`
	UserMessage *messageSchema `json:"user_message"`
	AIMessage   *messageSchema `json:"ai_message"`
}

type errorResponse struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

func (e errorResponse) text() string {
	if len(e.Detail) > 0 {
		var detail string
		if err := json.Unmarshal(e.Detail, &detail); err == nil && detail != "" {
			return detail
		}
		return string(e.Detail)
	}
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

func (m messageSchema) toDomain(fallback time.Time) (domain.Message, error) {
	role := domain.Role(strings.ToLower(strings.TrimSpace(m.Role)))
	if !role.Valid() {
		return domain.Message{}, fmt.Errorf("unsupported message role %q", m.Role)
	}
	if m.Content == nil {
		return domain.Message{}, fmt.Errorf("%s message content is required", role)
	}

	createdAt := m.CreatedAt.Time
	if createdAt.IsZero() && role == domain.RoleUser {
		createdAt = fallback
	}

	message := domain.Message{
		ID:        string(m.ID),
		Role:      role,
		Content:   *m.Content,
		CreatedAt: createdAt,
	}
	if err := message.Validate(); err != nil {
		return domain.Message{}, err
	}

	return message, nil
}

func (s sessionSchema) toDomain(fallback time.Time) (domain.Session, error) {
	session := domain.Session{
		ID:        domain.SessionID(s.ID),
		JobID:     domain.JobID(s.JobID),
		CreatedAt: s.CreatedAt.Time,
		UpdatedAt: s.UpdatedAt.Time,
	}
	if s.Title != nil {
		session.Title = *s.Title
	}
	if session.UpdatedAt.IsZero() {
		session.UpdatedAt = session.CreatedAt
	}

	if s.Messages != nil {
		session.Messages = make([]domain.Message, 0, len(s.Messages))
		for i, raw := range s.Messages {
			message, err := raw.toDomain(fallback)
			if err != nil {
				return domain.Session{}, fmt.Errorf("message %d: %w", i, err)
			}
			session.Messages = append(session.Messages, message)
		}
	}

	if err := session.Validate(); err != nil {
		return domain.Session{}, err
	}

	return session, nil
}

func (r sendResponse) exchange(fallback time.Time) (domain.Exchange, error) {
	if r.UserMessage == nil {
		return domain.Exchange{}, errors.New("user_message is required")
	}
	if r.AIMessage == nil {
		return domain.Exchange{}, errors.New("ai_message is required")
	}

	user, err := r.UserMessage.toDomain(fallback)
	if err != nil {
		return domain.Exchange{}, fmt.Errorf("user_message: %w", err)
	}
	assistant, err := r.AIMessage.toDomain(fallback)
	if err != nil {
		return domain.Exchange{}, fmt.Errorf("ai_message: %w", err)
	}

	exchange := domain.Exchange{User: user, Assistant: assistant}
	if err := exchange.Validate(); err != nil {
		return domain.Exchange{}, err
	}

	return exchange, nil
}
