package commands

import (
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/funland/funland/internal/config"
	apierrors "github.com/funland/funland/internal/errors"
	"github.com/funland/funland/internal/logging"
	"github.com/funland/funland/internal/server"
)

func newServeCmd(sess *session) *cobra.Command {
	var (
		addr       string
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the chat backend",
		Long: `Run the HTTP backend that answers POST /api/chat.

The provider (openai or gemini), model, prompt and CORS origins come from a
YAML file passed with --config. The API key falls back to OPENAI_API_KEY or
GEMINI_API_KEY. Without a key the server still starts and answers every chat
request with "API key not configured".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadServerConfig(configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}

			logger, err := logging.New(logging.Options{Verbose: sess.verbose()})
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			provider, err := server.NewProvider(ctx, cfg, logger)
			switch {
			case errors.Is(err, apierrors.ErrNotConfigured):
				logger.Warn("no API key configured, chat requests will fail",
					zap.String("provider", cfg.Provider))
				provider = nil
			case err != nil:
				return fmt.Errorf("failed to create provider: %w", err)
			}

			return server.New(cfg, provider, logger).ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config, then localhost:8000)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to the server YAML config")

	return cmd
}
