package commands

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/funland/funland/internal/render"
)

// Balloon colors for the spinner
var gradientColors = []lipgloss.Color{
	lipgloss.Color("#FF69B4"), // Pink
	lipgloss.Color("#FFD700"), // Gold
	lipgloss.Color("#4CAF50"), // Green
	lipgloss.Color("#87CEEB"), // Sky
	lipgloss.Color("#FF6B6B"), // Coral
	lipgloss.Color("#BA68C8"), // Lilac
}

var (
	colorTextMute = lipgloss.Color("#D9B8C8")
	colorSuccess  = lipgloss.Color("#4CAF50")
	colorPrimary  = lipgloss.Color("#FF69B4")
	colorWarning  = lipgloss.Color("#FF6B6B")
)

var (
	assistantLabelStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	assistantBubbleStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#FFD700")).
				Padding(0, 1).
				MarginBottom(1)
)

// spinner handles the animated loading indicator
type spinner struct {
	out     io.Writer
	message string
	stop    chan struct{}
	done    chan struct{}
	mu      sync.Mutex
	frame   int
	stopped bool
}

func newSpinner(out io.Writer, message string) *spinner {
	return &spinner{
		out:     out,
		message: message,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// start begins the animation
func (s *spinner) start() {
	go func() {
		defer close(s.done)

		ticker := time.NewTicker(120 * time.Millisecond)
		defer ticker.Stop()

		// Hide cursor
		fmt.Fprint(s.out, "\033[?25l")

		for {
			select {
			case <-s.stop:
				// Clear line and show cursor
				fmt.Fprint(s.out, "\r\033[K\033[?25h")
				return
			case <-ticker.C:
				s.mu.Lock()
				s.render()
				s.frame++
				s.mu.Unlock()
			}
		}
	}()
}

// render draws the current animation frame
func (s *spinner) render() {
	frames := []string{"🎈", "🎨", "🎮", "🌟", "🌈", "🦄"}
	icon := frames[s.frame%len(frames)]

	var dots strings.Builder
	numDots := (s.frame / 2) % 4
	for i := 0; i < 3; i++ {
		if i < numDots {
			dotColor := gradientColors[(s.frame+i)%len(gradientColors)]
			dots.WriteString(lipgloss.NewStyle().Foreground(dotColor).Render("●"))
		} else {
			dots.WriteString(lipgloss.NewStyle().Foreground(colorTextMute).Render("○"))
		}
	}

	msg := lipgloss.NewStyle().Foreground(gradientColors[s.frame%len(gradientColors)]).Bold(true).Render(s.message)
	fmt.Fprintf(s.out, "\r\033[K%s %s %s", icon, msg, dots.String())
}

func (s *spinner) stopOnce() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stopped {
		close(s.stop)
		s.stopped = true
	}
}

// stopWithSuccess stops the spinner and shows success message
func (s *spinner) stopWithSuccess(message string) {
	s.stopOnce()
	<-s.done

	checkmark := lipgloss.NewStyle().Foreground(colorSuccess).Bold(true).Render("✓")
	msg := lipgloss.NewStyle().Foreground(colorSuccess).Render(message)
	fmt.Fprintf(s.out, "%s %s\n", checkmark, msg)
}

// stopWithError stops the spinner without a message
func (s *spinner) stopWithError() {
	s.stopOnce()
	<-s.done
}

// runQuery sends one message and prints the reply. When stdout is not a
// terminal only the raw reply text is written.
func runQuery(cmd *cobra.Command, sess *session, message string) error {
	message = strings.TrimSpace(message)
	if message == "" {
		return fmt.Errorf("message cannot be empty")
	}

	deps := sess.deps
	decorated := deps.StdoutIsTTY()
	logger := sess.logger(false)
	defer func() { _ = logger.Sync() }()

	client, err := deps.NewClient(sess.baseURL(), sess.timeout(cmd), logger)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	defer client.Close()

	var spin *spinner
	if decorated {
		spin = newSpinner(deps.Stderr, "Thinking...")
		spin.start()
	}

	start := time.Now()
	reply, err := client.Chat(cmd.Context(), message)
	if err != nil {
		if decorated {
			spin.stopWithError()
		}
		return fmt.Errorf("chat request failed: %w", err)
	}
	if decorated {
		spin.stopWithSuccess("Got an answer!")
	}
	logger.Debug("query finished", zap.Duration("elapsed", time.Since(start)))

	if sess.opts.output != "" {
		if err := os.WriteFile(sess.opts.output, []byte(reply), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		if decorated {
			fmt.Fprintln(deps.Stderr, lipgloss.NewStyle().Foreground(colorSuccess).Render(
				fmt.Sprintf("✓ Reply saved to %s", sess.opts.output)))
		}
		return nil
	}

	if !decorated {
		fmt.Fprint(deps.Stdout, reply)
		return nil
	}

	if sess.cfg.CopyToClipboard && deps.CopyToClipboard != nil {
		if err := deps.CopyToClipboard(reply); err != nil {
			fmt.Fprintln(deps.Stderr, lipgloss.NewStyle().Foreground(colorWarning).Render(
				fmt.Sprintf("⚠ Failed to copy to clipboard: %v", err)))
		} else {
			fmt.Fprintln(deps.Stderr, lipgloss.NewStyle().Foreground(colorSuccess).Render("✓ Copied to clipboard"))
		}
	}

	bubbleWidth := min(max(deps.TerminalWidth()-4, 40), 120)
	contentWidth := bubbleWidth - 4

	fmt.Fprintln(deps.Stdout, assistantLabelStyle.Render("🎈 AI Friend"))
	rendered := render.Reply(reply, render.OptionsFromConfig(sess.cfg).WithWidth(contentWidth))
	fmt.Fprintln(deps.Stdout, assistantBubbleStyle.Width(bubbleWidth).Render(rendered))

	return nil
}
