// Package main implements the entry point for the API server. Without a
// subcommand it serves HTTP; "check" validates the response code catalog and
// "codes" prints it.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/miphreal/drf-tweaks/internal/config"
	"github.com/miphreal/drf-tweaks/internal/platform/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "drf-tweaks-api",
		Short:        "Sample API with uniform response envelopes",
		Long:         "drf-tweaks-api serves the sample client API. Configuration is read from API_* environment variables and the file named by API_CONFIG_FILE.",
		SilenceUsage: true,
		RunE:         runServe,
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Serve the HTTP API (default)",
			RunE:  runServe,
		},
		newCheckCmd(),
		newCodesCmd(),
	)

	return root
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := initializeApp()
	if err != nil {
		return err
	}

	app, err := newApplication(cmd.Context(), cfg, log)
	if err != nil {
		log.Error("failed to initialize application", "error", err)
		return err
	}
	return app.Run(cmd.Context())
}

// initializeApp loads configuration and sets up logging.
func initializeApp() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"default_version", cfg.Versioning.DefaultVersion)
	log.Debug("auth configuration", "users", len(cfg.Auth.Users))

	return cfg, log, nil
}
