package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/keinplan-arcade/internal/registry"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	hudStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("4"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("13")).
			Padding(1, 3)
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// menuState is the game picker cursor over the registered games.
type menuState struct {
	items  []registry.GameInfo
	cursor int
}

func newMenuState(r *registry.Registry) menuState {
	if r == nil {
		return menuState{}
	}
	return menuState{items: r.List()}
}

func (m *menuState) up() {
	if m.cursor > 0 {
		m.cursor--
	}
}

func (m *menuState) down() {
	if m.cursor < len(m.items)-1 {
		m.cursor++
	}
}

func (m menuState) selected() (registry.GameInfo, bool) {
	if len(m.items) == 0 {
		return registry.GameInfo{}, false
	}
	return m.items[m.cursor], true
}

func (m Model) menuView() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("K E I N P L A N   A R C A D E"), m.width))
	b.WriteString("\n\n")

	sub := "Select a game"
	if m.opts.User != "" {
		sub = fmt.Sprintf("Welcome, %s. Select a game", m.opts.User)
	}
	b.WriteString(centerText(sub, m.width))
	b.WriteString("\n\n")

	for i, item := range m.menu.items {
		cursor := "  "
		if i == m.menu.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+item.Title, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(fmt.Sprintf("Best score: %d", m.sess.Stats().BestScore), m.width))
	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString(centerText(noticeStyle.Render(m.notice), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(helpStyle.Render("Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit"), m.width))
	b.WriteString("\n")
	return b.String()
}

func (m Model) gameOverView() string {
	res := m.sess.LastResult()

	var b strings.Builder
	b.WriteString(titleStyle.Render("GAME OVER"))
	b.WriteString("\n\n")
	b.WriteString(m.opts.Registry.Title(res.Kind))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Score: %d\n", res.FinalScore)
	fmt.Fprintf(&b, "Level: %d\n", res.Level)
	fmt.Fprintf(&b, "Time:  %s\n", formatDuration(res.Duration))
	if res.NewBest {
		b.WriteString(noticeStyle.Render("NEW BEST!"))
	} else {
		fmt.Fprintf(&b, "Best:  %d", res.BestScore)
	}
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("Enter/R: Again  Esc/B: Menu  Tab: Scores  Q: Quit"))

	box := boxStyle.Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// truncate cuts text to width cells.
func truncate(text string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(text)
	if len(r) <= width {
		return text
	}
	return string(r[:width])
}
