package tui

import (
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/keinplan-arcade/internal/core"
	"github.com/vovakirdan/keinplan-arcade/internal/events"
	"github.com/vovakirdan/keinplan-arcade/internal/input"
	"github.com/vovakirdan/keinplan-arcade/internal/registry"
	"github.com/vovakirdan/keinplan-arcade/internal/scene"
	"github.com/vovakirdan/keinplan-arcade/internal/session"
	"github.com/vovakirdan/keinplan-arcade/internal/storage"
)

// Rows reserved above and below the playfield.
const (
	hudRows    = 1
	footerRows = 1
)

// Store is what the terminal host needs from persistence.
type Store interface {
	session.StatsStore
	TopScores(gameID string, limit int) ([]storage.ScoreEntry, error)
}

// Options configures a terminal host.
type Options struct {
	Config   core.RuntimeConfig
	Registry *registry.Registry
	Store    Store // nil disables persistence
	Logger   *log.Logger
	// Start launches this game right away instead of showing the menu.
	Start string
	// User is shown in the header; set for SSH sessions.
	User       string
	HoldWindow time.Duration
}

// InputMsg carries input produced outside the UI goroutine, such as remote
// pads. It runs against the aggregator on the UI goroutine.
type InputMsg func(*input.Aggregator)

// Model is the Bubble Tea model for one arcade session.
type Model struct {
	opts     Options
	bus      *events.Bus
	graph    *scene.Graph
	agg      *input.Aggregator
	renderer *scene.ScreenRenderer
	sess     *session.Session
	keys     *KeyMapper
	hold     *KeyHold
	menu     menuState
	board    *ScoreboardModel
	logger   *log.Logger

	width    int
	height   int
	notice   string
	quitting bool
}

// NewModel wires a session to a fresh bus, scene and input aggregator and
// loads the stored stats.
func NewModel(opts Options) Model {
	cfg := opts.Config
	if cfg.ScreenW <= 0 || cfg.ScreenH <= 0 {
		d := core.DefaultConfig()
		cfg.ScreenW, cfg.ScreenH = d.ScreenW, d.ScreenH
	}
	opts.Config = cfg
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	bus := events.NewBus()
	graph := scene.NewGraph()
	agg := input.NewAggregator(bus)
	renderer := scene.NewScreenRenderer(cfg.ScreenW, playRows(cfg.ScreenH))

	sopts := session.Options{
		Registry:      opts.Registry,
		Scene:         graph,
		Bus:           bus,
		Input:         agg,
		Renderer:      renderer,
		Logger:        logger,
		Seed:          cfg.Seed,
		MaxFrameDelta: cfg.MaxFrameDelta,
	}
	if opts.Store != nil {
		sopts.Store = opts.Store
	}
	sess := session.New(sopts)
	sess.Load()

	m := Model{
		opts:     opts,
		bus:      bus,
		graph:    graph,
		agg:      agg,
		renderer: renderer,
		sess:     sess,
		keys:     NewKeyMapper(),
		hold:     NewKeyHold(opts.HoldWindow),
		menu:     newMenuState(opts.Registry),
		logger:   logger,
		width:    cfg.ScreenW,
		height:   cfg.ScreenH,
	}
	if opts.Start != "" {
		if err := sess.Start(opts.Start); err != nil {
			m.notice = err.Error()
		}
	}
	return m
}

func playRows(height int) int {
	return max(height-hudRows-footerRows, 1)
}

// Bus exposes the session's event bus so other adapters can subscribe
// before the program starts.
func (m Model) Bus() *events.Bus { return m.bus }

// Session returns the hosted session.
func (m Model) Session() *session.Session { return m.sess }

// Close ends the active game and detaches the session.
func (m Model) Close() { m.sess.Close() }

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return tea.Batch(frameCmd(m.opts.Config.FrameInterval()), tea.SetWindowTitle("keinplan arcade"))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case FrameMsg:
		m.frame(time.Time(msg))
		return m, frameCmd(m.opts.Config.FrameInterval())

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.renderer.Screen.Resize(msg.Width, playRows(msg.Height))
		if m.board != nil {
			b, _ := m.board.Update(msg)
			sb := b.(ScoreboardModel)
			m.board = &sb
		}
		return m, nil

	case tea.FocusMsg:
		m.agg.SetVisible(true)
		return m, nil

	case tea.BlurMsg:
		m.agg.SetVisible(false)
		return m, nil

	case InputMsg:
		msg(m.agg)
		return m, nil

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// frame releases stale keys and runs one session frame.
func (m *Model) frame(now time.Time) {
	for _, k := range m.hold.Expire(now) {
		m.agg.KeyUp(k)
	}
	m.sess.Frame(now)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keys.IsQuit(msg) {
		m.quitting = true
		return m, tea.Quit
	}
	if m.board != nil {
		return m.updateBoard(msg)
	}

	switch m.sess.State() {
	case session.StateMenu:
		return m.menuKey(msg)
	case session.StateGameOver:
		return m.gameOverKey(msg)
	case session.StatePlaying, session.StatePaused:
		m.gameKey(msg, time.Now())
	}
	return m, nil
}

func (m *Model) gameKey(msg tea.KeyMsg, now time.Time) {
	if m.sess.State() == session.StatePaused {
		switch m.keys.MapKeyToMenuAction(msg) {
		case MenuActionBack:
			if msg.String() == "b" {
				m.hold.Reset()
				m.agg.Reset()
				m.bus.Publish(events.BackToMenu{})
				return
			}
		case MenuActionRestart:
			m.hold.Reset()
			m.agg.Reset()
			m.bus.Publish(events.GameRestart{})
			return
		}
	}
	k := m.keys.MapKey(msg)
	if k == input.KeyNone {
		return
	}
	if m.hold.Press(k, now) {
		m.agg.KeyDown(k)
	}
}

func (m Model) menuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		m.menu.up()
	case MenuActionDown:
		m.menu.down()
	case MenuActionSelect:
		if item, ok := m.menu.selected(); ok {
			m.notice = ""
			m.bus.Publish(events.GameStart{Game: item.ID})
		}
	case MenuActionScoreboard:
		m.openBoard()
	}
	return m, nil
}

func (m Model) gameOverKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionSelect, MenuActionRestart:
		m.bus.Publish(events.GameRestart{})
	case MenuActionBack:
		m.bus.Publish(events.BackToMenu{})
	case MenuActionScoreboard:
		m.openBoard()
	}
	return m, nil
}

func (m *Model) openBoard() {
	if m.opts.Store == nil {
		m.notice = "scores are not being saved"
		return
	}
	b := NewScoreboardModel(m.opts.Store, m.opts.Registry, m.width, m.height)
	m.board = &b
}

func (m Model) updateBoard(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.board.Update(msg)
	b := next.(ScoreboardModel)
	switch {
	case b.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case b.IsGoingBack():
		m.board = nil
		return m, nil
	}
	m.board = &b
	return m, cmd
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	m.agg.MouseMove(float64(msg.X), float64(msg.Y-hudRows))
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.agg.MouseDown(input.MouseLeft)
		case tea.MouseButtonMiddle:
			m.agg.MouseDown(input.MouseMiddle)
		case tea.MouseButtonRight:
			m.agg.MouseDown(input.MouseRight)
		}
	case tea.MouseActionRelease:
		// Terminals do not always say which button was released.
		m.agg.MouseUp(input.MouseLeft)
		m.agg.MouseUp(input.MouseMiddle)
		m.agg.MouseUp(input.MouseRight)
	}
}

// View renders the current screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.board != nil {
		return m.board.View()
	}
	switch m.sess.State() {
	case session.StateLoading:
		return "loading..."
	case session.StateMenu:
		return m.menuView()
	case session.StateGameOver:
		return m.gameOverView()
	}
	return m.gameView()
}

func (m Model) gameView() string {
	screen := m.renderer.Screen
	if m.sess.State() == session.StatePaused {
		mid := screen.Height() / 2
		screen.DrawTextCentered(mid-1, " P A U S E D ", core.ColorBrightYellow)
		screen.DrawTextCentered(mid+1, " esc resume  r restart  b menu ", core.ColorGray)
	}
	return m.hud() + "\n" + RenderScreen(screen) + "\n" + m.footer()
}

func (m Model) hud() string {
	st := m.sess.Stats()
	title := m.opts.Registry.Title(m.sess.Kind())
	line := fmt.Sprintf("%s  score %d  level %d  lives %d  best %d", title, st.Score, st.Level, st.Lives, st.BestScore)
	if g := m.sess.Game(); g != nil {
		line += "  " + g.Status()
	}
	return hudStyle.Width(m.width).Render(truncate(line, m.width))
}

func (m Model) footer() string {
	text := "wasd/arrows move  space jump  e/click action  q/e zoom  esc pause  ctrl+c quit"
	return helpStyle.Render(truncate(text, m.width))
}

// NewProgram creates the Bubble Tea program for m with the host options
// every arcade session uses.
func NewProgram(m Model, extra ...tea.ProgramOption) *tea.Program {
	opts := append([]tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	}, extra...)
	return tea.NewProgram(m, opts...)
}
