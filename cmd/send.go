package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/bnema/recruit-chat-cli/internal/application"
	"github.com/bnema/recruit-chat-cli/internal/domain"
	"github.com/spf13/cobra"
)

const waitingLabel = "Waiting for the assistant..."

type sentMessage struct {
	ID        string    `json:"id,omitempty"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type sendOutput struct {
	SessionID string      `json:"session_id"`
	User      sentMessage `json:"user_message"`
	Assistant sentMessage `json:"ai_message"`
}

func newSendCmd(app *app) *cobra.Command {
	var sessionID string
	var jobID string
	var raw bool
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "send [--session id] [--job id] <message>",
		Short: "Send one message and print the assistant reply",
		Long:  "Send one message. Without --session a new session is created, optionally scoped to --job.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content := strings.Join(args, " ")

			if strings.TrimSpace(sessionID) != "" {
				id, err := parseSessionID(sessionID)
				if err != nil {
					return err
				}
				if _, err := app.controller.OpenSession(cmd.Context(), id); err != nil {
					return err
				}
			}

			var exchange domain.Exchange
			call := func(ctx context.Context) error {
				var err error
				exchange, err = app.controller.Send(ctx, content, application.SendOptions{JobID: domain.JobID(strings.TrimSpace(jobID))})
				return err
			}

			if asJSON {
				if err := call(cmd.Context()); err != nil {
					return err
				}
			} else if err := runWithSpinner(cmd.Context(), cmd.ErrOrStderr(), waitingLabel, app.controller, call); err != nil {
				return err
			}

			active, _ := app.controller.ActiveSession()
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(sendOutput{
					SessionID: string(active.ID),
					User:      toSentMessage(exchange.User),
					Assistant: toSentMessage(exchange.Assistant),
				})
			}

			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "session: %s\n", active.ID); err != nil {
				return err
			}
			return writeExchange(cmd, app, exchange, !raw)
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Continue an existing session")
	cmd.Flags().StringVar(&jobID, "job", "", "Job posting the new session is about")
	cmd.Flags().BoolVar(&raw, "raw", false, "Print the reply without markdown rendering")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the exchange as JSON")
	cmd.MarkFlagsMutuallyExclusive("session", "job")

	return cmd
}

func toSentMessage(message domain.Message) sentMessage {
	return sentMessage{
		ID:        message.ID,
		Role:      string(message.Role),
		Content:   message.Content,
		CreatedAt: message.CreatedAt.UTC(),
	}
}
