package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Page text
const (
	PageTitle    = "Welcome to Fun Land! 🎈"
	PageSubtitle = "A happy place to chat, play and learn"
	ChatTitle    = "Chat with AI Friend! 💬"
	Placeholder  = "Type your message..."
	ThinkingText = "Thinking..."
	SendLabel    = "Send ✨"
)

// PageButtons are the decorative buttons under the title. They do nothing.
var PageButtons = []string{
	"Start Adventure! 🚀",
	"Play Games! 🎮",
	"Learn Stuff! 📚",
}

// renderHeader renders the title box and the decorative buttons
func renderHeader(width int) string {
	title := titleStyle.Render(PageTitle)
	subtitle := subtitleStyle.Render(PageSubtitle)

	buttons := make([]string, len(PageButtons))
	for i, label := range PageButtons {
		buttons[i] = buttonStyles[i%len(buttonStyles)].Render(label)
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, buttons...)

	box := headerStyle.Width(max(width-2, 0)).Render(
		lipgloss.JoinVertical(lipgloss.Center, title, subtitle),
	)

	return lipgloss.JoinVertical(lipgloss.Center, box, lipgloss.PlaceHorizontal(width, lipgloss.Center, row))
}

// renderDots renders one line of floating dots; frame shifts them sideways
func renderDots(width, frame int) string {
	if width <= 0 {
		return ""
	}

	const spacing = 9
	cells := make([]string, width)
	for i := range cells {
		cells[i] = " "
	}

	for i := 0; i*spacing < width; i++ {
		// alternate dots drift in opposite directions
		offset := frame % spacing
		if i%2 == 1 {
			offset = spacing - 1 - offset
		}
		pos := i*spacing + offset
		if pos >= width {
			continue
		}
		color := dotColors[(i+frame/4)%len(dotColors)]
		cells[pos] = lipgloss.NewStyle().Foreground(color).Render("●")
	}

	return strings.Join(cells, "")
}

// renderStatusBar renders the bottom bar with the key bindings
func renderStatusBar(width int, notice string) string {
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Send"},
		{"Ctrl+E", "Emoji"},
		{"Ctrl+Y", "Copy reply"},
		{"PgUp/PgDn", "Scroll"},
		{"Esc", "Quit"},
	}

	var items []string
	for _, s := range shortcuts {
		items = append(items, statusKeyStyle.Render(s.key)+statusDescStyle.Render(" "+s.desc))
	}

	bar := strings.Join(items, statusDescStyle.Render("  │  "))
	if notice != "" {
		bar = noticeStyle.Render(notice) + statusDescStyle.Render("  │  ") + bar
	}
	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(bar)
}
