package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const skipWiringAnnotation = "rc.skip-wiring"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	cfg := viper.New()
	app := &app{}

	rootCmd := &cobra.Command{
		Use:           "rc",
		Short:         "Recruit chat CLI (rc): talk to the recruitment assistant",
		Long:          "rc keeps a local view of your chat sessions with the recruitment assistant: list, open, continue, export and delete sessions from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations[skipWiringAnnotation] == "true" {
				return nil
			}
			return app.wire(cmd, cfg)
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return app.close()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("profile", "", "Server profile name (env RC_PROFILE)")
	flags.String("base-url", "", "Chat API base URL (env RC_BASE_URL)")
	flags.String("log-level", "", "Log level: debug|info|warn|error (env RC_LOG_LEVEL)")
	_ = cfg.BindPFlag(profileKey, flags.Lookup("profile"))
	_ = cfg.BindPFlag(baseURLKey, flags.Lookup("base-url"))
	_ = cfg.BindPFlag(logLevelKey, flags.Lookup("log-level"))

	rootCmd.AddCommand(
		newVersionCmd(),
		newAuthCmd(app),
		newSessionCmd(app),
		newSendCmd(app),
		newChatCmd(app),
	)

	return rootCmd
}
