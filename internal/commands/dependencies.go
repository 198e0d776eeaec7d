package commands

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/atotto/clipboard"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/funland/funland/internal/api"
	"github.com/funland/funland/internal/chat"
	"github.com/funland/funland/internal/tui"
)

// ChatClient is the part of *api.Client the commands use
type ChatClient interface {
	chat.Sender
	Health(ctx context.Context) error
	BaseURL() string
	Close()
}

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	// NewClient creates the chat endpoint client
	NewClient func(baseURL string, timeout time.Duration, logger *zap.Logger) (ChatClient, error)

	// RunPage runs the interactive page until the user quits
	RunPage func(ctx context.Context, sender chat.Sender, opts tui.Options) error

	// CopyToClipboard writes text to the system clipboard
	CopyToClipboard func(text string) error

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// StdinIsTTY and StdoutIsTTY report whether the streams are terminals
	StdinIsTTY  func() bool
	StdoutIsTTY func() bool

	// TerminalWidth returns the output width in columns
	TerminalWidth func() int
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		NewClient: func(baseURL string, timeout time.Duration, logger *zap.Logger) (ChatClient, error) {
			return api.NewClient(
				api.WithBaseURL(baseURL),
				api.WithTimeout(timeout),
				api.WithLogger(logger),
			)
		},
		RunPage:         tui.RunPage,
		CopyToClipboard: clipboard.WriteAll,
		Stdin:           os.Stdin,
		Stdout:          os.Stdout,
		Stderr:          os.Stderr,
		StdinIsTTY: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
		StdoutIsTTY: func() bool {
			return term.IsTerminal(int(os.Stdout.Fd()))
		},
		TerminalWidth: func() int {
			width, _, err := term.GetSize(int(os.Stdout.Fd()))
			if err != nil || width <= 0 {
				return 80
			}
			return width
		},
	}
}
