package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/bnema/recruit-chat-cli/internal/application"
	"github.com/bnema/recruit-chat-cli/internal/domain"
	"github.com/spf13/cobra"
)

const chatHelp = `Commands:
  /list            list sessions
  /open <id>       open a session and show its messages
  /delete <id>     delete a session
  /clear           delete every session
  /new [job-id]    start a new session on the next message
  /close           close the open session
  /logout          forget the stored token and quit
  /quit            quit
Any other line is sent to the assistant.`

const maxChatLineBytes = 64 * 1024

func newChatCmd(app *app) *cobra.Command {
	var sessionID string
	var jobID string
	var raw bool

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Interactive chat with the recruitment assistant",
		RunE: func(cmd *cobra.Command, _ []string) error {
			loop := &chatLoop{
				cmd:      cmd,
				app:      app,
				jobID:    domain.JobID(strings.TrimSpace(jobID)),
				markdown: !raw,
			}

			if !app.credentials.HasToken(cmd.Context()) {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "warning: no token stored for profile %s, run `rc auth login` first\n", app.credentials.ProfileName())
			}

			if strings.TrimSpace(sessionID) != "" {
				loop.open(cmd.Context(), sessionID)
			}

			return loop.run(cmd.Context(), cmd.InOrStdin())
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Open this session first")
	cmd.Flags().StringVar(&jobID, "job", "", "Job posting new sessions are about")
	cmd.Flags().BoolVar(&raw, "raw", false, "Print replies without markdown rendering")

	return cmd
}

type chatLoop struct {
	cmd      *cobra.Command
	app      *app
	jobID    domain.JobID
	markdown bool
}

func (l *chatLoop) run(ctx context.Context, in io.Reader) error {
	out := l.cmd.OutOrStdout()
	if _, err := fmt.Fprintln(out, "Type a message, or /help for commands."); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 4096), maxChatLineBytes)

	for {
		if _, err := fmt.Fprint(out, l.prompt()); err != nil {
			return err
		}
		if !scanner.Scan() {
			_, _ = fmt.Fprintln(out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "/") {
			l.send(ctx, line)
			continue
		}

		quit, err := l.command(ctx, line)
		if err != nil {
			l.report(err)
		}
		if quit {
			return nil
		}
	}
}

func (l *chatLoop) command(ctx context.Context, line string) (bool, error) {
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	out := l.cmd.OutOrStdout()

	switch name {
	case "/quit", "/exit":
		return true, nil
	case "/help":
		_, err := fmt.Fprintln(out, chatHelp)
		return false, err
	case "/list":
		sessions, err := l.app.controller.ListSessions(ctx)
		if err != nil {
			return false, err
		}
		return false, writeSessionList(l.cmd, l.app, sessions)
	case "/open":
		l.open(ctx, arg)
		return false, nil
	case "/delete":
		id, err := parseSessionID(arg)
		if err != nil {
			return false, err
		}
		if err := l.app.controller.DeleteSession(ctx, id); err != nil {
			return false, err
		}
		_, err = fmt.Fprintf(out, "Deleted session %s\n", id)
		return false, err
	case "/clear":
		if err := l.app.controller.ClearAll(ctx); err != nil {
			return false, err
		}
		_, err := fmt.Fprintln(out, "Deleted all sessions")
		return false, err
	case "/new":
		l.app.controller.CloseSession()
		if arg != "" {
			l.jobID = domain.JobID(arg)
		}
		return false, nil
	case "/close":
		l.app.controller.CloseSession()
		return false, nil
	case "/logout":
		if err := l.app.controller.Logout(ctx); err != nil {
			return true, err
		}
		_, err := fmt.Fprintln(out, "Logged out")
		return true, err
	default:
		return false, fmt.Errorf("unknown command %s, try /help", name)
	}
}

func (l *chatLoop) open(ctx context.Context, raw string) {
	id, err := parseSessionID(raw)
	if err != nil {
		l.report(err)
		return
	}

	session, err := l.app.controller.OpenSession(ctx, id)
	if err != nil {
		l.report(err)
		return
	}

	if err := writeSession(l.cmd, l.app, session, l.markdown); err != nil {
		l.report(err)
	}
}

func (l *chatLoop) send(ctx context.Context, content string) {
	var exchange domain.Exchange
	call := func(ctx context.Context) error {
		var err error
		exchange, err = l.app.controller.Send(ctx, content, application.SendOptions{JobID: l.jobID})
		return err
	}

	if err := runWithSpinner(ctx, l.cmd.ErrOrStderr(), waitingLabel, l.app.controller, call); err != nil {
		l.report(err)
		return
	}

	if err := writeExchange(l.cmd, l.app, exchange, l.markdown); err != nil {
		l.report(err)
	}
}

func (l *chatLoop) prompt() string {
	if active, ok := l.app.controller.ActiveSession(); ok {
		return fmt.Sprintf("[%s] > ", active.ID)
	}
	if l.jobID != "" {
		return fmt.Sprintf("[new, job %s] > ", l.jobID)
	}

	return "[new] > "
}

func (l *chatLoop) report(err error) {
	message := fmt.Sprintf("error: %v", err)
	switch domain.KindOf(err) {
	case domain.FailureUnauthorized:
		message += "\nhint: run `rc auth login` first"
	case domain.FailureUnreachable:
		message += "\nhint: check --base-url and that the chat API is running"
	}

	_, _ = fmt.Fprintln(l.cmd.ErrOrStderr(), message)
}
