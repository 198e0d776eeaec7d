package tui

import (
	"context"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/funland/funland/internal/chat"
	"github.com/funland/funland/internal/render"
)

// Animation tick message
type animationTickMsg time.Time

// Message types for the TUI
type (
	// replyMsg carries the outcome of one chat request
	replyMsg struct {
		reply string
		err   error
	}
	// noticeClearMsg hides the status notice set at the given frame
	noticeClearMsg struct {
		id int
	}
)

// Layout heights, including borders
const (
	headerHeight = 7
	dotsHeight   = 1
	chatChrome   = 4
	inputHeight  = 3
	statusHeight = 1
)

// Options configures the page
type Options struct {
	// Render configures markdown rendering of replies
	Render render.Options
	// Logger receives request and UI events; nil disables logging
	Logger *zap.Logger
	// Copy writes text to the clipboard; defaults to atotto/clipboard
	Copy func(string) error
}

// Model represents the page state. Transcript, input buffer and loading
// flag live in the chat widget; the model mirrors the input into a
// textinput for editing.
type Model struct {
	ctx    context.Context
	widget *chat.Widget
	sender chat.Sender
	opts   Options
	logger *zap.Logger

	// UI components
	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model

	ready          bool
	animationFrame int
	notice         string
	noticeID       int

	width  int
	height int
}

// NewPageModel creates the page model. Messages are sent through sender
// using ctx.
func NewPageModel(ctx context.Context, sender chat.Sender, opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Copy == nil {
		opts.Copy = clipboard.WriteAll
	}
	if opts.Render.Width == 0 {
		opts.Render = render.DefaultOptions()
	}

	ti := textinput.New()
	ti.Placeholder = Placeholder
	ti.CharLimit = 2000
	ti.Prompt = ""
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(colorTextDim)
	ti.TextStyle = lipgloss.NewStyle().Foreground(colorText)
	ti.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = thinkingStyle

	return Model{
		ctx:     ctx,
		widget:  chat.New(sender, chat.WithLogger(opts.Logger)),
		sender:  sender,
		opts:    opts,
		logger:  opts.Logger,
		input:   ti,
		spinner: s,
	}
}

// Widget returns the chat widget backing the page
func (m Model) Widget() *chat.Widget {
	return m.widget
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		animationTick(),
	)
}

// animationTick drives the floating dots
func animationTick() tea.Cmd {
	return tea.Tick(time.Millisecond*250, func(t time.Time) tea.Msg {
		return animationTickMsg(t)
	})
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		vpHeight := m.height - headerHeight - dotsHeight - chatChrome - inputHeight - statusHeight
		if vpHeight < 3 {
			vpHeight = 3
		}
		contentWidth := max(m.width-4, 10)

		if !m.ready {
			m.viewport = viewport.New(contentWidth, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = contentWidth
			m.viewport.Height = vpHeight
		}
		m.input.Width = max(contentWidth-lipgloss.Width(SendLabel)-8, 5)
		m.updateViewport()
		m.viewport.GotoBottom()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			return m.submit()

		case "ctrl+e":
			symbol := m.widget.RandomEmoji()
			m.input.SetValue(m.widget.Input())
			m.input.CursorEnd()
			m.logger.Debug("emoji inserted", zap.String("emoji", symbol))
			return m, nil

		case "ctrl+y":
			return m.copyLastReply()

		case "pgup", "pgdown":
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

		// Input is disabled while a request is outstanding
		if !m.widget.Loading() {
			m.input, cmd = m.input.Update(msg)
			m.widget.SetInput(m.input.Value())
			cmds = append(cmds, cmd)
		}

	case tea.MouseMsg:
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)

	case replyMsg:
		m.widget.Finish(msg.reply, msg.err)
		m.input.SetValue(m.widget.Input())
		m.input.CursorEnd()
		cmds = append(cmds, m.input.Focus())
		m.updateViewport()
		m.viewport.GotoBottom()

	case spinner.TickMsg:
		if m.widget.Loading() {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
			m.updateViewport()
		}

	case animationTickMsg:
		m.animationFrame++
		cmds = append(cmds, animationTick())

	case noticeClearMsg:
		if msg.id == m.noticeID {
			m.notice = ""
		}

	default:
		if !m.widget.Loading() {
			m.input, cmd = m.input.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

// submit starts sending the input buffer. Empty input and a request
// already in flight are ignored.
func (m Model) submit() (tea.Model, tea.Cmd) {
	m.widget.SetInput(m.input.Value())

	text, ok := m.widget.Begin()
	if !ok {
		return m, nil
	}

	m.input.Reset()
	m.input.Blur()
	m.updateViewport()
	m.viewport.GotoBottom()

	return m, tea.Batch(
		m.sendMessage(text),
		m.spinner.Tick,
	)
}

// sendMessage creates a command that sends text and reports the outcome
func (m Model) sendMessage(text string) tea.Cmd {
	ctx := m.ctx
	sender := m.sender
	logger := m.logger
	return func() tea.Msg {
		start := time.Now()
		reply, err := sender.Chat(ctx, text)
		logger.Debug("chat round trip",
			zap.Duration("elapsed", time.Since(start)),
			zap.Bool("ok", err == nil))
		return replyMsg{reply: reply, err: err}
	}
}

func (m Model) copyLastReply() (tea.Model, tea.Cmd) {
	reply := m.widget.LastReply()
	if reply == "" {
		return m, nil
	}

	if err := m.opts.Copy(reply); err != nil {
		m.logger.Warn("clipboard write failed", zap.Error(err))
		m.notice = "Could not copy 😢"
	} else {
		m.notice = "Copied! 📋"
	}

	m.noticeID++
	id := m.noticeID
	return m, tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return noticeClearMsg{id: id}
	})
}

// View renders the page
func (m Model) View() string {
	if !m.ready {
		return thinkingStyle.Render("  Getting Fun Land ready...")
	}

	width := max(m.width, 20)
	var sections []string

	sections = append(sections, renderHeader(width))
	sections = append(sections, renderDots(width, m.animationFrame))

	chatContent := lipgloss.JoinVertical(
		lipgloss.Left,
		chatTitleStyle.Render(ChatTitle),
		m.viewport.View(),
	)
	sections = append(sections, chatPanelStyle.Width(width-2).Render(chatContent))

	sections = append(sections, inputPanelStyle.Width(width-2).Render(m.renderInputRow()))
	sections = append(sections, renderStatusBar(width, m.notice))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderInputRow renders the emoji button, the input and the send button
func (m Model) renderInputRow() string {
	send := sendButtonStyle.Render(SendLabel)
	if m.widget.Loading() || strings.TrimSpace(m.input.Value()) == "" {
		send = sendDisabledStyle.Render(SendLabel)
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Center,
		emojiButtonStyle.Render("😊"),
		m.input.View(),
		send,
	)
}

// updateViewport refreshes the viewport content with styled messages
func (m *Model) updateViewport() {
	if !m.ready {
		return
	}

	width := m.viewport.Width
	bubbleWidth := max(width*3/4, 10)

	var content strings.Builder
	for i, msg := range m.widget.Messages() {
		if i > 0 {
			content.WriteString("\n")
		}

		if msg.IsUser {
			bubble := userBubbleStyle.MaxWidth(bubbleWidth).Render(wrap(msg.Text, bubbleWidth-4))
			content.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Right, bubble))
		} else {
			opts := m.opts.Render.WithWidth(bubbleWidth - 4)
			bubble := assistantBubbleStyle.MaxWidth(bubbleWidth).Render(render.Reply(msg.Text, opts))
			content.WriteString(bubble)
		}
	}

	if m.widget.Loading() {
		content.WriteString("\n" + m.spinner.View() + thinkingStyle.Render(" "+ThinkingText))
	}

	m.viewport.SetContent(content.String())
}

// wrap word-wraps user text, which is shown verbatim
func wrap(text string, width int) string {
	return lipgloss.NewStyle().Width(max(width, 1)).Render(text)
}

// RunPage starts the page TUI and blocks until the user quits
func RunPage(ctx context.Context, sender chat.Sender, opts Options) error {
	m := NewPageModel(ctx, sender, opts)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	_, err := p.Run()
	return err
}
