package main

import (
	"io"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"tophits/internal/config"
)

// commandContext carries the configuration loaded before any subcommand runs
type commandContext struct {
	config *config.Config
}

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "tophits",
		Short:         "Match yearly chart entries to Spotify tracks",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// .env is optional outside local development
			_ = godotenv.Load()

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			ctx.config = cfg

			setupLogging(cmd.ErrOrStderr(), cfg)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.AddCommand(newResolveCommand(ctx))
	rootCmd.AddCommand(newServeCommand(ctx))

	return rootCmd
}

// setupLogging installs the JSON logger at the configured level
func setupLogging(w io.Writer, cfg *config.Config) {
	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)
}
