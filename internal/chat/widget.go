// Package chat holds the chat widget state machine: the transcript, the
// input buffer and the loading flag. Rendering lives in internal/tui.
package chat

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	"go.uber.org/zap"

	apierrors "github.com/funland/funland/internal/errors"
	"github.com/funland/funland/internal/models"
)

// Sender delivers one message to the chat endpoint and returns the reply.
// *api.Client satisfies it.
type Sender interface {
	Chat(ctx context.Context, message string) (string, error)
}

// State is the submission state of the widget
type State int

const (
	// Idle means no request is outstanding
	Idle State = iota
	// Sending means a request is outstanding
	Sending
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Sending:
		return "sending"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Widget is safe for concurrent use
type Widget struct {
	sender Sender
	logger *zap.Logger

	mu       sync.Mutex
	messages []models.Message
	input    string
	loading  bool
}

// Option configures a Widget
type Option func(*Widget)

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(w *Widget) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithoutGreetings starts the widget with an empty transcript
func WithoutGreetings() Option {
	return func(w *Widget) {
		w.messages = nil
	}
}

// New creates a widget that sends through sender
func New(sender Sender, opts ...Option) *Widget {
	w := &Widget{
		sender:   sender,
		logger:   zap.NewNop(),
		messages: models.Greetings(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Messages returns a copy of the transcript in display order
func (w *Widget) Messages() []models.Message {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]models.Message, len(w.messages))
	copy(out, w.messages)
	return out
}

// Input returns the input buffer
func (w *Widget) Input() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.input
}

// SetInput replaces the input buffer
func (w *Widget) SetInput(text string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.input = text
}

// Loading reports whether a request is outstanding
func (w *Widget) Loading() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.loading
}

// State returns Sending while a request is outstanding, Idle otherwise
func (w *Widget) State() State {
	if w.Loading() {
		return Sending
	}
	return Idle
}

// InsertEmoji appends symbol to the input buffer.
// Only the symbols in models.Emojis are accepted.
func (w *Widget) InsertEmoji(symbol string) error {
	if !models.IsEmoji(symbol) {
		return fmt.Errorf("unsupported emoji %q", symbol)
	}
	w.mu.Lock()
	w.input += symbol
	w.mu.Unlock()
	return nil
}

// RandomEmoji appends a uniformly chosen emoji and returns it
func (w *Widget) RandomEmoji() string {
	symbol := models.Emojis[rand.IntN(len(models.Emojis))]
	w.mu.Lock()
	w.input += symbol
	w.mu.Unlock()
	return symbol
}

// Begin starts a submission of the input buffer. It appends the user
// message, clears the buffer and sets loading. ok is false, and nothing
// changes, when the trimmed input is empty or a request is outstanding.
func (w *Widget) Begin() (text string, ok bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.loading {
		w.logger.Debug("submit ignored", zap.String("reason", "busy"))
		return "", false
	}

	text = strings.TrimSpace(w.input)
	if text == "" {
		return "", false
	}

	w.messages = append(w.messages, models.UserMessage(text))
	w.input = ""
	w.loading = true
	return text, true
}

// Finish completes the submission started by Begin. A nil err appends
// reply; otherwise the error is described in one assistant message.
func (w *Widget) Finish(reply string, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch {
	case err != nil:
		w.logger.Warn("chat request failed", zap.Error(err))
		w.messages = append(w.messages, models.AssistantMessage(apierrors.TranscriptText(err)))
	case reply == "":
		w.logger.Warn("chat request returned no reply")
		w.messages = append(w.messages, models.AssistantMessage(apierrors.TranscriptText(apierrors.ErrNoReply)))
	default:
		w.messages = append(w.messages, models.AssistantMessage(reply))
	}
	w.loading = false
}

// Submit sends the input buffer and waits for the reply. It returns false
// when there was nothing to send or a request was already outstanding.
// Failures end up in the transcript, never in the return value.
func (w *Widget) Submit(ctx context.Context) bool {
	text, ok := w.Begin()
	if !ok {
		return false
	}

	var (
		reply string
		err   error
	)
	// Loading is cleared on every exit path, a panicking sender included.
	defer func() { w.Finish(reply, err) }()

	reply, err = w.sender.Chat(ctx, text)
	return true
}

// LastReply returns the text of the latest assistant message, or ""
func (w *Widget) LastReply() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i := len(w.messages) - 1; i >= 0; i-- {
		if !w.messages[i].IsUser {
			return w.messages[i].Text
		}
	}
	return ""
}
