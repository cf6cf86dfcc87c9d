package sessions

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bnema/recruit-chat-cli/internal/domain"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", raw)
	}
}

type exportDocument struct {
	Sessions []exportSession `json:"sessions" yaml:"sessions"`
}

type exportSession struct {
	ID        string          `json:"id" yaml:"id"`
	Title     string          `json:"title" yaml:"title"`
	JobID     string          `json:"job_id,omitempty" yaml:"job_id,omitempty"`
	CreatedAt time.Time       `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" yaml:"updated_at"`
	Messages  []exportMessage `json:"messages,omitempty" yaml:"messages,omitempty"`
}

type exportMessage struct {
	ID        string    `json:"id,omitempty" yaml:"id,omitempty"`
	Role      string    `json:"role" yaml:"role"`
	Content   string    `json:"content" yaml:"content"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// Export writes sessions to w. Messages are included only when
// withMessages is set; the sessions must already carry them.
func Export(w io.Writer, sessions []domain.Session, format Format, withMessages bool) error {
	doc := exportDocument{Sessions: make([]exportSession, 0, len(sessions))}
	for _, session := range sessions {
		entry := exportSession{
			ID:        string(session.ID),
			Title:     session.Title,
			JobID:     string(session.JobID),
			CreatedAt: session.CreatedAt.UTC(),
			UpdatedAt: session.LastActivity().UTC(),
		}
		if withMessages {
			for _, message := range session.Messages {
				entry.Messages = append(entry.Messages, exportMessage{
					ID:        message.ID,
					Role:      string(message.Role),
					Content:   message.Content,
					CreatedAt: message.CreatedAt.UTC(),
				})
			}
		}
		doc.Sessions = append(doc.Sessions, entry)
	}

	switch format {
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(doc); err != nil {
			return fmt.Errorf("encode yaml export: %w", err)
		}
		return encoder.Close()
	case FormatJSON, "":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(doc); err != nil {
			return fmt.Errorf("encode json export: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}
