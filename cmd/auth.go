package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bnema/recruit-chat-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newAuthCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the chat API credential",
	}

	cmd.AddCommand(newAuthLoginCmd(app), newAuthLogoutCmd(app), newAuthStatusCmd(app))

	return cmd
}

func newAuthLoginCmd(app *app) *cobra.Command {
	var email string
	var password string
	var passwordStdin bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with email and password and store the bearer token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if passwordStdin {
				read, err := readPassword(cmd.InOrStdin())
				if err != nil {
					return err
				}
				password = read
			}
			if password == "" {
				return errors.New("a password is required: use --password-stdin or --password")
			}

			profile, err := app.credentials.Login(cmd.Context(), app.baseURL, email, password)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (profile %s, %s)\n", profile.Email, profile.Name, profile.BaseURL)
			return err
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password (prefer --password-stdin)")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "Read the password from stdin")
	cmd.MarkFlagsMutuallyExclusive("password", "password-stdin")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newAuthLogoutCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored bearer token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.controller.Logout(cmd.Context()); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Logged out of profile %s\n", app.credentials.ProfileName())
			return err
		},
	}
}

func newAuthStatusCmd(app *app) *cobra.Command {
	var verify bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the active profile and whether a token is stored",
		RunE: func(cmd *cobra.Command, _ []string) error {
			profile, err := app.credentials.Profile(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			lines := []string{
				fmt.Sprintf("profile: %s", profile.Name),
				fmt.Sprintf("base url: %s", app.baseURL),
			}
			if profile.Email != "" {
				lines = append(lines, fmt.Sprintf("email: %s", profile.Email))
			}
			if !profile.LastLoginAt.IsZero() {
				lines = append(lines, fmt.Sprintf("last login: %s", profile.LastLoginAt.UTC().Format("2006-01-02 15:04:05 MST")))
			}

			token, tokenErr := app.credentials.Token(cmd.Context())
			switch {
			case tokenErr == nil:
				lines = append(lines, "token: stored")
			case errors.Is(tokenErr, domain.ErrCredentialNotFound):
				lines = append(lines, "token: none")
			default:
				return tokenErr
			}

			if verify && tokenErr == nil {
				identity, err := app.authenticator.Verify(cmd.Context(), app.baseURL, token)
				if err != nil {
					return fmt.Errorf("verify token: %w", err)
				}
				lines = append(lines, fmt.Sprintf("verified: %s", identityLabel(identity.FullName, identity.Email)))
			}

			_, err = fmt.Fprintln(out, strings.Join(lines, "\n"))
			return err
		},
	}

	cmd.Flags().BoolVar(&verify, "verify", false, "Check the token against the chat API")

	return cmd
}

func identityLabel(fullName, email string) string {
	fullName = sanitizeForTerminal(strings.TrimSpace(fullName))
	email = sanitizeForTerminal(strings.TrimSpace(email))
	if fullName == "" {
		return email
	}
	if email == "" {
		return fullName
	}

	return fmt.Sprintf("%s <%s>", fullName, email)
}

func readPassword(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password from stdin: %w", err)
	}

	return strings.TrimRight(line, "\r\n"), nil
}
