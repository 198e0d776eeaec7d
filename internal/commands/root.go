// Package commands provides CLI commands for funland.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/funland/funland/internal/config"
	"github.com/funland/funland/internal/logging"
	"github.com/funland/funland/internal/models"
	"github.com/funland/funland/internal/render"
	"github.com/funland/funland/internal/tui"
)

// BuildTime is set at build time
var BuildTime = "unknown"

// rootOptions holds the global and root flags
type rootOptions struct {
	baseURL string
	timeout time.Duration
	verbose bool

	file    string
	output  string
	version bool
}

// session is the state shared by subcommands after flag parsing
type session struct {
	deps *Dependencies
	opts *rootOptions
	cfg  config.Config
}

func (s *session) baseURL() string {
	return config.ResolveBaseURL(s.opts.baseURL, s.cfg)
}

func (s *session) timeout(cmd *cobra.Command) time.Duration {
	if cmd.Flags().Changed("timeout") {
		return s.opts.timeout
	}
	return s.cfg.Timeout()
}

func (s *session) verbose() bool {
	return s.opts.verbose || s.cfg.Verbose
}

// logger returns a file logger for interactive use, or a stderr logger that
// only speaks when verbose.
func (s *session) logger(interactive bool) *zap.Logger {
	if interactive {
		path, err := config.GetLogPath(s.cfg)
		if err != nil {
			return zap.NewNop()
		}
		return logging.NewOrNop(logging.Options{Verbose: s.verbose(), File: path})
	}
	if !s.verbose() {
		return zap.NewNop()
	}
	return logging.NewOrNop(logging.Options{Verbose: true, Development: true})
}

// NewRootCmd builds the command tree
func NewRootCmd(deps *Dependencies) *cobra.Command {
	opts := &rootOptions{}
	sess := &session{deps: deps, opts: opts, cfg: config.DefaultConfig()}

	cmd := &cobra.Command{
		Use:   "funland [message]",
		Short: "Fun Land: a friendly AI chat for kids",
		Long: `funland is a playful chat page in your terminal. Type a message, get a
friendly answer from your AI friend.

Examples:
  funland                           Open the Fun Land page
  funland "Why is the sky blue?"    Ask a single question
  funland -f question.txt           Read the question from a file
  echo "Tell me a joke" | funland   Read the question from stdin
  funland serve                     Run the chat backend
  funland health                    Check that the backend is up`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				fmt.Fprintf(deps.Stderr, "Warning: %v (using defaults)\n", err)
			}
			sess.cfg = cfg

			if cfg.TUITheme != "" && render.SetTUITheme(cfg.TUITheme) {
				tui.UpdateTheme()
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.version {
				fmt.Fprintf(deps.Stdout, "funland %s (built %s)\n", models.Version, BuildTime)
				return nil
			}

			if opts.file != "" {
				data, err := os.ReadFile(opts.file)
				if err != nil {
					return fmt.Errorf("failed to read file: %w", err)
				}
				return runQuery(cmd, sess, string(data))
			}

			if len(args) > 0 {
				return runQuery(cmd, sess, args[0])
			}

			if !deps.StdinIsTTY() {
				data, err := io.ReadAll(deps.Stdin)
				if err != nil {
					return fmt.Errorf("failed to read stdin: %w", err)
				}
				if strings.TrimSpace(string(data)) != "" {
					return runQuery(cmd, sess, string(data))
				}
			}

			if deps.StdoutIsTTY() {
				return runPage(cmd, sess)
			}

			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&opts.baseURL, "base-url", "", "Chat backend root (default from config, then "+models.DefaultBaseURL+")")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 60*time.Second, "Request timeout (0 disables)")
	cmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "Verbose logging")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Save the reply to a file")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Read the message from a file")
	cmd.Flags().BoolVarP(&opts.version, "version", "v", false, "Show version and exit")

	cmd.SetIn(deps.Stdin)
	cmd.SetOut(deps.Stdout)
	cmd.SetErr(deps.Stderr)

	cmd.AddCommand(newChatCmd(sess))
	cmd.AddCommand(newServeCmd(sess))
	cmd.AddCommand(newHealthCmd(sess))
	cmd.AddCommand(newConfigCmd(sess))

	return cmd
}

// Execute runs the root command
func Execute() {
	deps := NewDependencies()
	if err := NewRootCmd(deps).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(deps.Stderr, tui.FormatError(err))
		os.Exit(1)
	}
}
