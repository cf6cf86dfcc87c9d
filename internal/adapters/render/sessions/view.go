package sessions

import (
	"fmt"
	"strings"
	"time"

	"github.com/bnema/recruit-chat-cli/internal/domain"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

const defaultWrapWidth = 80

type RenderOptions struct {
	Now time.Time
	// ActiveID highlights the session currently open, if any.
	ActiveID domain.SessionID
	// Markdown renders message content through glamour. Raw content is
	// printed as is when false.
	Markdown bool
	// Style is a glamour standard style name. "auto" picks one from the
	// terminal background; empty means plain output without colors.
	Style string
	Width int
}

func renderList(sessions []domain.Session, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Chat Sessions"),
		s.header.Render(fmt.Sprintf("sessions: %d", len(sessions))),
	}

	if len(sessions) == 0 {
		lines = append(lines, s.empty.Render("No chat sessions yet."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, session := range sessions {
		lines = append(lines, renderSummary(session, opts, s))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderSummary(session domain.Session, opts RenderOptions, s styles) string {
	titleStyle := s.session
	marker := "  "
	if opts.ActiveID != "" && session.ID == opts.ActiveID {
		titleStyle = s.active
		marker = "* "
	}

	parts := []string{
		marker + s.sessionID.Render(string(session.ID)),
		titleStyle.Render(session.DisplayTitle()),
	}
	if session.JobID != "" {
		parts = append(parts, s.detail.Render("job "+string(session.JobID)))
	}
	parts = append(parts, s.timestamp.Render(relativeTime(session.LastActivity(), opts.Now)))

	return strings.Join(parts, "  ")
}

func renderSession(session domain.Session, opts RenderOptions, s styles) (string, error) {
	header := []string{s.title.Render(session.DisplayTitle())}
	meta := fmt.Sprintf("id: %s", session.ID)
	if session.JobID != "" {
		meta += fmt.Sprintf("  job: %s", session.JobID)
	}
	meta += fmt.Sprintf("  updated: %s", relativeTime(session.LastActivity(), opts.Now))
	header = append(header, s.header.Render(meta))

	lines := []string{lipgloss.JoinVertical(lipgloss.Left, header...)}
	if len(session.Messages) == 0 {
		lines = append(lines, s.empty.Render("No messages in this session."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...), nil
	}

	var renderer *glamour.TermRenderer
	if opts.Markdown {
		var err error
		renderer, err = newMarkdownRenderer(opts)
		if err != nil {
			return "", err
		}
	}

	for _, message := range session.Messages {
		block, err := renderMessage(message, renderer, opts, s)
		if err != nil {
			return "", err
		}
		lines = append(lines, s.section.Render(block))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...), nil
}

// RenderExchange renders the two messages of a single exchange, as printed
// after a send.
func RenderExchange(exchange domain.Exchange, opts RenderOptions) (string, error) {
	s := newStyles()

	var renderer *glamour.TermRenderer
	if opts.Markdown {
		var err error
		renderer, err = newMarkdownRenderer(opts)
		if err != nil {
			return "", err
		}
	}

	blocks := make([]string, 0, 2)
	for _, message := range []domain.Message{exchange.User, exchange.Assistant} {
		block, err := renderMessage(message, renderer, opts, s)
		if err != nil {
			return "", err
		}
		blocks = append(blocks, block)
	}

	return lipgloss.JoinVertical(lipgloss.Left, blocks...), nil
}

func renderMessage(message domain.Message, renderer *glamour.TermRenderer, opts RenderOptions, s styles) (string, error) {
	label := s.assistant.Render("assistant")
	if message.Role == domain.RoleUser {
		label = s.user.Render("you")
	}
	heading := label + " " + s.timestamp.Render(relativeTime(message.CreatedAt, opts.Now))

	body := strings.TrimRight(message.Content, "\n")
	if renderer != nil {
		rendered, err := renderer.Render(message.Content)
		if err != nil {
			return "", fmt.Errorf("render message %s: %w", message.ID, err)
		}
		body = strings.Trim(rendered, "\n")
	}

	return lipgloss.JoinVertical(lipgloss.Left, heading, body), nil
}

func newMarkdownRenderer(opts RenderOptions) (*glamour.TermRenderer, error) {
	width := opts.Width
	if width <= 0 {
		width = defaultWrapWidth
	}

	styleOpt := glamour.WithStandardStyle("notty")
	switch opts.Style {
	case "":
	case "auto":
		styleOpt = glamour.WithAutoStyle()
	default:
		styleOpt = glamour.WithStandardStyle(opts.Style)
	}

	renderer, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
	if err != nil {
		return nil, fmt.Errorf("create markdown renderer: %w", err)
	}

	return renderer, nil
}

func relativeTime(at, now time.Time) string {
	if at.IsZero() {
		return "n/a"
	}
	if now.IsZero() {
		return at.UTC().Format(time.RFC3339)
	}

	d := now.Sub(at)
	switch {
	case d < 0:
		return at.UTC().Format(time.RFC3339)
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return at.UTC().Format("2006-01-02")
	}
}
