package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/funland/funland/internal/render"
	"github.com/funland/funland/internal/tui"
)

func newChatCmd(sess *session) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Open the Fun Land page",
		Long: `Open the Fun Land page with the chat panel.

Enter sends, Ctrl+E adds a random emoji, Ctrl+Y copies the last reply,
Esc or Ctrl+C quits. The conversation is not saved.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPage(cmd, sess)
		},
	}
}

func runPage(cmd *cobra.Command, sess *session) error {
	logger := sess.logger(true)
	defer func() { _ = logger.Sync() }()

	baseURL := sess.baseURL()
	client, err := sess.deps.NewClient(baseURL, sess.timeout(cmd), logger)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	defer client.Close()

	logger.Info("page started", zap.String("base_url", baseURL))

	return sess.deps.RunPage(cmd.Context(), client, tui.Options{
		Render: render.OptionsFromConfig(sess.cfg),
		Logger: logger,
		Copy:   sess.deps.CopyToClipboard,
	})
}
