package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	sessionsrender "github.com/bnema/recruit-chat-cli/internal/adapters/render/sessions"
	"github.com/bnema/recruit-chat-cli/internal/domain"
	"github.com/spf13/cobra"
)

const renderWidth = 80

func newSessionCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "session",
		Aliases: []string{"sessions"},
		Short:   "List, show, export and delete chat sessions",
	}

	cmd.AddCommand(
		newSessionListCmd(app),
		newSessionShowCmd(app),
		newSessionDeleteCmd(app),
		newSessionClearCmd(app),
		newSessionExportCmd(app),
	)

	return cmd
}

func newSessionListCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sessions, most recently active first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sessions, err := app.controller.ListSessions(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				return sessionsrender.Export(cmd.OutOrStdout(), sessions, sessionsrender.FormatJSON, false)
			}

			return writeSessionList(cmd, app, sessions)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print sessions as JSON")

	return cmd
}

func newSessionShowCmd(app *app) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "show <session-id>",
		Short: "Show a session with all of its messages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSessionID(args[0])
			if err != nil {
				return err
			}

			session, err := app.controller.OpenSession(cmd.Context(), id)
			if err != nil {
				return err
			}

			return writeSession(cmd, app, session, !raw)
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print message content without markdown rendering")

	return cmd
}

func newSessionDeleteCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <session-id>",
		Short: "Delete one session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSessionID(args[0])
			if err != nil {
				return err
			}

			if err := app.controller.DeleteSession(cmd.Context(), id); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Deleted session %s\n", id)
			return err
		},
	}
}

func newSessionClearCmd(app *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return errors.New("refusing to delete every session without --yes")
			}

			if err := app.controller.ClearAll(cmd.Context()); err != nil {
				return err
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), "Deleted all sessions")
			return err
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm deleting every session")

	return cmd
}

func newSessionExportCmd(app *app) *cobra.Command {
	var format string
	var withMessages bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export sessions as JSON or YAML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			parsed, err := sessionsrender.ParseFormat(format)
			if err != nil {
				return err
			}

			sessions, err := app.controller.ListSessions(cmd.Context())
			if err != nil {
				return err
			}
			if withMessages {
				sessions, err = hydrateSessions(cmd.Context(), app, sessions)
				if err != nil {
					return err
				}
			}

			return sessionsrender.Export(cmd.OutOrStdout(), sessions, parsed, withMessages)
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "Export format (json|yaml)")
	cmd.Flags().BoolVar(&withMessages, "with-messages", false, "Include every message of every session")

	return cmd
}

// hydrateSessions opens each session in turn to collect its messages, then
// closes the view again.
func hydrateSessions(ctx context.Context, app *app, sessions []domain.Session) ([]domain.Session, error) {
	defer app.controller.CloseSession()

	hydrated := make([]domain.Session, 0, len(sessions))
	for _, summary := range sessions {
		session, err := app.controller.OpenSession(ctx, summary.ID)
		if err != nil {
			return nil, err
		}
		hydrated = append(hydrated, session)
	}

	return hydrated, nil
}

func writeSessionList(cmd *cobra.Command, app *app, sessions []domain.Session) error {
	var activeID domain.SessionID
	if active, ok := app.controller.ActiveSession(); ok {
		activeID = active.ID
	}

	rendered, err := sessionsrender.RenderList(sanitizeSessions(sessions), sessionsrender.RenderOptions{
		Now:      app.now(),
		ActiveID: activeID,
	})
	if err != nil {
		return fmt.Errorf("render sessions: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

func writeSession(cmd *cobra.Command, app *app, session domain.Session, markdown bool) error {
	session.Title = sanitizeForTerminal(session.Title)

	rendered, err := sessionsrender.RenderSession(session, renderOptions(app, markdown))
	if err != nil {
		return fmt.Errorf("render session: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

func writeExchange(cmd *cobra.Command, app *app, exchange domain.Exchange, markdown bool) error {
	rendered, err := sessionsrender.RenderExchange(exchange, renderOptions(app, markdown))
	if err != nil {
		return fmt.Errorf("render reply: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

func renderOptions(app *app, markdown bool) sessionsrender.RenderOptions {
	return sessionsrender.RenderOptions{
		Now:      app.now(),
		Markdown: markdown,
		Style:    app.markdownStyle,
		Width:    renderWidth,
	}
}

func parseSessionID(raw string) (domain.SessionID, error) {
	id := strings.TrimSpace(raw)
	if id == "" {
		return "", fmt.Errorf("%w: session id is empty", domain.ErrInvalid)
	}

	return domain.SessionID(id), nil
}

func sanitizeSessions(sessions []domain.Session) []domain.Session {
	sanitized := make([]domain.Session, len(sessions))
	for i, session := range sessions {
		session.Title = sanitizeForTerminal(session.Title)
		sanitized[i] = session
	}

	return sanitized
}

func sanitizeForTerminal(value string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, value)
}
