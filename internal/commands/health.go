package commands

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func newHealthCmd(sess *session) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the chat backend is up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := sess.deps.NewClient(sess.baseURL(), sess.timeout(cmd), sess.logger(false))
			if err != nil {
				return fmt.Errorf("failed to create client: %w", err)
			}
			defer client.Close()

			if err := client.Health(cmd.Context()); err != nil {
				return fmt.Errorf("health check failed: %w", err)
			}

			ok := lipgloss.NewStyle().Foreground(colorSuccess).Bold(true).Render("✓")
			fmt.Fprintf(sess.deps.Stdout, "%s %s is up\n", ok, client.BaseURL())
			return nil
		},
	}
}
