package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

type SessionID string
type JobID string
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAssistant:
		return true
	default:
		return false
	}
}

type Message struct {
	ID        string
	Role      Role
	Content   string
	CreatedAt time.Time
}

func (m Message) Validate() error {
	if !m.Role.Valid() {
		return fmt.Errorf("unsupported message role %q", m.Role)
	}
	if m.CreatedAt.IsZero() {
		return fmt.Errorf("%s message timestamp is required", m.Role)
	}

	return nil
}

// Exchange is one user message and the assistant reply it produced.
type Exchange struct {
	User      Message
	Assistant Message
}

func (e Exchange) Validate() error {
	if e.User.Role != RoleUser {
		return fmt.Errorf("exchange opens with role %q, want %q", e.User.Role, RoleUser)
	}
	if e.Assistant.Role != RoleAssistant {
		return fmt.Errorf("exchange closes with role %q, want %q", e.Assistant.Role, RoleAssistant)
	}
	if err := e.User.Validate(); err != nil {
		return err
	}

	return e.Assistant.Validate()
}

type Session struct {
	ID        SessionID
	Title     string
	JobID     JobID
	CreatedAt time.Time
	UpdatedAt time.Time
	Messages  []Message
}

func (s Session) Validate() error {
	if strings.TrimSpace(string(s.ID)) == "" {
		return fmt.Errorf("session id is required")
	}
	if s.CreatedAt.IsZero() {
		return fmt.Errorf("session %s: created_at is required", s.ID)
	}
	if !s.UpdatedAt.IsZero() && s.UpdatedAt.Before(s.CreatedAt) {
		return fmt.Errorf("session %s: updated_at precedes created_at", s.ID)
	}
	for i, message := range s.Messages {
		if err := message.Validate(); err != nil {
			return fmt.Errorf("session %s: message %d: %w", s.ID, i, err)
		}
	}

	return nil
}

// Summary returns the session without its message bodies.
func (s Session) Summary() Session {
	s.Messages = nil
	return s
}

// Clone returns a copy that shares no message storage with s.
func (s Session) Clone() Session {
	s.Messages = slices.Clone(s.Messages)
	return s
}

// LastActivity is UpdatedAt, falling back to CreatedAt for sessions that
// never received an exchange.
func (s Session) LastActivity() time.Time {
	if s.UpdatedAt.IsZero() {
		return s.CreatedAt
	}

	return s.UpdatedAt
}

func (s Session) DisplayTitle() string {
	if title := strings.TrimSpace(s.Title); title != "" {
		return title
	}
	if s.JobID != "" {
		return fmt.Sprintf("Chat about job %s", s.JobID)
	}

	return fmt.Sprintf("Chat %s", s.ID)
}
