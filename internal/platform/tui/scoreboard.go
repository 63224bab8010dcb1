package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/keinplan-arcade/internal/registry"
	"github.com/vovakirdan/keinplan-arcade/internal/storage"
)

const (
	boardRows      = 100 // history rows loaded per game
	boardSideWidth = 20
	boardWideAt    = 90 // below this width the game list becomes a tab line
)

// ScoreLister reads the score history. Stores that also implement
// Summary get a totals line under the table.
type ScoreLister interface {
	TopScores(gameID string, limit int) ([]storage.ScoreEntry, error)
}

type summarizer interface {
	Summary(gameID string) (storage.GameSummary, error)
}

type boardKeys struct {
	Scroll key.Binding
	Next   key.Binding
	Prev   key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func (k boardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Scroll, k.Prev, k.Next, k.Back, k.Quit}
}

func (k boardKeys) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

var defaultBoardKeys = boardKeys{
	Scroll: key.NewBinding(key.WithKeys("up", "down", "k", "j"), key.WithHelp("↑/↓", "scroll")),
	Next:   key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/→", "next game")),
	Prev:   key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab/←", "prev game")),
	Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	pickStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	tabStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	activeTab  = pickStyle.Background(lipgloss.Color("57")).Padding(0, 1)
	emptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4)
)

// ScoreboardModel shows the score history per game. It runs on its own
// through RunScoreboard or embedded in Model, which watches IsGoingBack and
// IsQuitting instead of waiting for tea.Quit.
type ScoreboardModel struct {
	games      []registry.GameInfo
	pick       int
	store      ScoreLister
	scores     []storage.ScoreEntry
	summary    *storage.GameSummary
	err        error
	table      table.Model
	help       help.Model
	width      int
	height     int
	quitting   bool
	goingBack  bool
	standalone bool
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(store ScoreLister, reg *registry.Registry, width, height int) ScoreboardModel {
	m := ScoreboardModel{store: store, help: help.New(), width: width, height: height}
	if reg != nil {
		m.games = reg.List()
	}
	m.table = m.newTable()
	m.reload()
	return m
}

func (m ScoreboardModel) wide() bool { return m.width >= boardWideAt }

func (m ScoreboardModel) newTable() table.Model {
	dateW := 14
	avail := m.width - 4
	if m.wide() {
		avail -= boardSideWidth + 4
	}
	if extra := avail - 56; extra > 0 {
		dateW += min(extra, 6)
	}

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))

	return table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 5},
			{Title: "Score", Width: 10},
			{Title: "Level", Width: 6},
			{Title: "Time", Width: 8},
			{Title: "Played", Width: dateW},
		}),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
		table.WithStyles(s),
	)
}

// reload fetches the history of the picked game.
func (m *ScoreboardModel) reload() {
	m.scores, m.summary, m.err = nil, nil, nil
	if len(m.games) == 0 || m.store == nil {
		m.table.SetRows(nil)
		return
	}
	id := m.games[m.pick].ID
	m.scores, m.err = m.store.TopScores(id, boardRows)
	if sz, ok := m.store.(summarizer); ok && m.err == nil {
		if sum, err := sz.Summary(id); err == nil {
			m.summary = &sum
		}
	}

	rows := make([]table.Row, 0, len(m.scores))
	for i, e := range m.scores {
		rows = append(rows, table.Row{
			fmt.Sprint(i + 1),
			fmt.Sprint(e.Score),
			fmt.Sprint(e.Level),
			formatDuration(e.Duration),
			e.CreatedAt.Local().Format("Jan 02 15:04"),
		})
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		keys := defaultBoardKeys
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, m.exit()
		case key.Matches(msg, keys.Back):
			m.goingBack = true
			return m, m.exit()
		case key.Matches(msg, keys.Next):
			m.step(1)
			return m, nil
		case key.Matches(msg, keys.Prev):
			m.step(-1)
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.reload()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ScoreboardModel) exit() tea.Cmd {
	if m.standalone {
		return tea.Quit
	}
	return nil
}

func (m *ScoreboardModel) step(d int) {
	if n := len(m.games); n > 0 {
		m.pick = (m.pick + d + n) % n
		m.reload()
	}
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := "HIGH SCORES"
	if len(m.games) > 0 {
		title += " - " + m.games[m.pick].Title
	}

	body := panelStyle.Render(m.tableView())
	if m.wide() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.gameList(), "  ", body)
	} else {
		body = centerText(m.tabLine(), m.width) + "\n\n" + centerText(body, m.width)
	}

	parts := []string{centerText(titleStyle.Render(title), m.width), "", body}
	if m.summary != nil && m.summary.Runs > 0 {
		s := m.summary
		parts = append(parts, fmt.Sprintf("  %d runs  best %d  avg %.0f  top level %d  played %s",
			s.Runs, s.HighScore, s.AvgScore, s.BestLevel, formatDuration(s.TotalTime)))
	}
	parts = append(parts, helpStyle.Render(m.help.View(defaultBoardKeys)))
	return strings.Join(parts, "\n")
}

func (m ScoreboardModel) gameList() string {
	var b strings.Builder
	b.WriteString("Games\n")
	b.WriteString(strings.Repeat("─", boardSideWidth-4))
	for i, g := range m.games {
		name := truncate(g.Title, boardSideWidth-6)
		if i == m.pick {
			b.WriteString("\n" + pickStyle.Render("> "+name))
		} else {
			b.WriteString("\n  " + name)
		}
	}
	return panelStyle.Width(boardSideWidth).Render(b.String())
}

func (m ScoreboardModel) tabLine() string {
	if len(m.games) == 0 {
		return ""
	}
	tabs := make([]string, len(m.games))
	for i, g := range m.games {
		if i == m.pick {
			tabs[i] = activeTab.Render(truncate(g.Title, 12))
		} else {
			tabs[i] = tabStyle.Render(truncate(g.Title, 12))
		}
	}
	line := strings.Join(tabs, " ")
	if lipgloss.Width(line) > m.width-4 {
		line = "< " + m.games[m.pick].Title + " >"
	}
	return line
}

func (m ScoreboardModel) tableView() string {
	switch {
	case m.err != nil:
		return emptyStyle.Render("Could not load scores:\n" + m.err.Error())
	case len(m.scores) == 0:
		return emptyStyle.Render("No scores recorded yet.\nPlay a game to set a high score!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// formatDuration renders a play time as m:ss.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

// RunScoreboard shows the scoreboard on its own until the user leaves.
func RunScoreboard(store ScoreLister, reg *registry.Registry, width, height int) error {
	m := NewScoreboardModel(store, reg, width, height)
	m.standalone = true

	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
