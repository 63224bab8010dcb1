package session

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/keinplan-arcade/internal/core"
	"github.com/vovakirdan/keinplan-arcade/internal/events"
	"github.com/vovakirdan/keinplan-arcade/internal/game"
	"github.com/vovakirdan/keinplan-arcade/internal/input"
	"github.com/vovakirdan/keinplan-arcade/internal/registry"
	"github.com/vovakirdan/keinplan-arcade/internal/scene"
)

// DefaultMaxFrameDelta caps a single frame delta so a stalled host does not
// teleport the simulation.
const DefaultMaxFrameDelta = 250 * time.Millisecond

var (
	// ErrNotReady is returned by commands issued before Load.
	ErrNotReady = errors.New("session: stats not loaded")
	// ErrNoGame is returned by Restart when nothing was started yet.
	ErrNoGame = errors.New("session: no game to restart")
)

// StatsStore persists the stats record and the score history.
// A nil store disables persistence.
type StatsStore interface {
	LoadStats() (core.Stats, bool, error)
	RecordSession(rec core.SessionRecord) error
}

// Options wires a session to its collaborators. Registry, Scene and Bus are
// required; the rest may be nil.
type Options struct {
	Registry      *registry.Registry
	Scene         *scene.Graph
	Bus           *events.Bus
	Input         *input.Aggregator
	Renderer      scene.Renderer
	Store         StatsStore
	Logger        *log.Logger
	Seed          int64 // 0 derives seeds from the clock
	MaxFrameDelta time.Duration
}

// Result describes the last finished game.
type Result struct {
	Kind       string
	FinalScore int
	Level      int
	BestScore  int
	NewBest    bool
	Duration   time.Duration
}

// Session runs one player's games. It is driven from a single goroutine:
// the host's frame callback.
type Session struct {
	opts   Options
	logger *log.Logger

	state State
	stats core.Stats

	kind     string
	game     game.Variant
	starts   int64
	runID    string
	playTime time.Duration
	recorded bool
	result   Result

	lastFrame time.Time
	hasLast   bool
	pauseKey  game.Edge

	unsubs []func()
}

// New creates a session in the Loading state and subscribes it to the bus.
func New(opts Options) *Session {
	if opts.MaxFrameDelta <= 0 {
		opts.MaxFrameDelta = DefaultMaxFrameDelta
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Session{
		opts:   opts,
		logger: logger,
		state:  StateLoading,
		stats:  core.DefaultStats(),
	}
	s.subscribe()
	return s
}

func (s *Session) subscribe() {
	bus := s.opts.Bus
	s.unsubs = append(s.unsubs,
		bus.Subscribe(events.KindGameStart, func(e events.Event) {
			if err := s.Start(e.(events.GameStart).Game); err != nil {
				s.logger.Warn("start rejected", "err", err)
			}
		}),
		bus.Subscribe(events.KindGamePause, func(events.Event) { s.Pause() }),
		bus.Subscribe(events.KindGameResume, func(events.Event) { s.Resume() }),
		bus.Subscribe(events.KindGameRestart, func(events.Event) {
			if err := s.Restart(); err != nil {
				s.logger.Warn("restart rejected", "err", err)
			}
		}),
		bus.Subscribe(events.KindGameOver, func(e events.Event) {
			s.End(e.(events.GameOver).FinalScore)
		}),
		bus.Subscribe(events.KindBackToMenu, func(events.Event) { s.ReturnToMenu() }),
		bus.Subscribe(events.KindScoreUpdate, func(e events.Event) {
			if s.state.InGame() {
				s.stats.Score = e.(events.ScoreUpdate).Score
			}
		}),
		bus.Subscribe(events.KindLevelUpdate, func(e events.Event) {
			if s.state.InGame() {
				s.stats.Level = e.(events.LevelUpdate).Level
			}
		}),
		bus.Subscribe(events.KindLivesUpdate, func(e events.Event) {
			if s.state.InGame() {
				s.stats.Lives = e.(events.LivesUpdate).Lives
			}
		}),
	)
}

// Close tears down the active game and detaches from the bus.
func (s *Session) Close() {
	s.dispose()
	for _, u := range s.unsubs {
		u()
	}
	s.unsubs = nil
}

func (s *Session) State() State       { return s.state }
func (s *Session) Stats() core.Stats  { return s.stats }
func (s *Session) Kind() string       { return s.kind }
func (s *Session) Game() game.Variant { return s.game }
func (s *Session) LastResult() Result { return s.result }

// View returns the active game's view, or a default top-down view.
func (s *Session) View() scene.View {
	if s.game == nil {
		return scene.TopDown(20)
	}
	return s.game.View()
}

func (s *Session) setState(to State) {
	from := s.state
	s.state = to
	s.logger.Debug("state changed", "from", from, "to", to, "game", s.kind)
	s.opts.Bus.Publish(events.StateChanged{From: from.String(), To: to.String()})
}

// Load reads the persisted stats and moves to the menu. A failing store is
// logged and replaced by defaults.
func (s *Session) Load() {
	if s.state != StateLoading {
		return
	}
	if s.opts.Store != nil {
		stats, found, err := s.opts.Store.LoadStats()
		switch {
		case err != nil:
			s.logger.Warn("cannot load stats, using defaults", "err", err)
			stats = core.DefaultStats()
		case !found:
			stats = core.DefaultStats()
		}
		s.stats = stats
	}
	s.setState(StateMenu)
}

// Start launches a new game of the given kind. Unknown kinds are rejected
// before anything changes.
func (s *Session) Start(kind string) error {
	if s.state == StateLoading {
		return ErrNotReady
	}

	s.starts++
	seed := s.opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	deps := game.Deps{
		Scene:  s.opts.Scene,
		Bus:    s.opts.Bus,
		Rand:   rand.New(rand.NewSource(seed + s.starts - 1)),
		Logger: s.logger.WithPrefix(kind),
	}
	g, err := s.opts.Registry.Create(kind, deps)
	if err != nil {
		s.starts--
		return fmt.Errorf("session: cannot start: %w", err)
	}

	s.dispose()
	s.stats.Reset()
	s.kind = kind
	s.game = g
	s.runID = uuid.NewString()
	s.playTime = 0
	s.recorded = false
	s.hasLast = false
	g.Init()

	s.logger.Info("game started", "game", kind, "run", s.runID)
	s.setState(StatePlaying)
	return nil
}

// Pause stops simulation. It reports whether the state changed.
func (s *Session) Pause() bool {
	if s.state != StatePlaying {
		return false
	}
	s.game.Pause()
	s.setState(StatePaused)
	return true
}

// Resume continues simulation without catching up on paused time.
func (s *Session) Resume() bool {
	if s.state != StatePaused {
		return false
	}
	s.game.Resume()
	s.hasLast = false
	s.setState(StatePlaying)
	return true
}

// Restart starts a fresh instance of the current game.
func (s *Session) Restart() error {
	if s.kind == "" || !(s.state.InGame() || s.state == StateGameOver) {
		return ErrNoGame
	}
	return s.Start(s.kind)
}

// End finishes the current game with finalScore. Only the first call per
// game has any effect.
func (s *Session) End(finalScore int) {
	if !s.state.InGame() || s.recorded {
		return
	}
	s.recorded = true

	s.stats.Score = finalScore
	newBest := finalScore > s.stats.BestScore
	if newBest {
		s.stats.BestScore = finalScore
	}

	s.result = Result{
		Kind:       s.kind,
		FinalScore: finalScore,
		Level:      s.stats.Level,
		BestScore:  s.stats.BestScore,
		NewBest:    newBest,
		Duration:   s.playTime,
	}

	if s.opts.Store != nil {
		rec := core.SessionRecord{
			RunID:      s.runID,
			Kind:       s.kind,
			FinalScore: finalScore,
			Level:      s.stats.Level,
			Duration:   s.playTime,
			Stats:      s.stats,
			NewBest:    newBest,
		}
		if err := s.opts.Store.RecordSession(rec); err != nil {
			s.logger.Warn("cannot record session", "game", s.kind, "err", err)
		}
	}

	s.logger.Info("game over", "game", s.kind, "score", finalScore, "best", s.stats.BestScore)
	s.dispose()
	s.setState(StateGameOver)
}

// ReturnToMenu tears down any game and shows the menu.
func (s *Session) ReturnToMenu() {
	if !s.state.InGame() && s.state != StateGameOver {
		return
	}
	s.dispose()
	s.setState(StateMenu)
}

// dispose cleans up the active game and reports leaked entities.
func (s *Session) dispose() {
	if s.game == nil {
		return
	}
	s.game.Cleanup()
	s.game = nil
	if n := s.opts.Scene.Len(); n > 0 {
		s.logger.Warn("game left entities behind", "game", s.kind, "count", n)
		s.opts.Scene.Clear()
	}
}

// Frame runs one host frame: apply queued commands, sample intent, toggle
// pause, advance the game, deliver its events, render.
func (s *Session) Frame(now time.Time) {
	// Host commands queued since the last frame (visibility pause, menu
	// actions) take effect before the game advances.
	s.opts.Bus.Dispatch()

	var dt time.Duration
	if s.hasLast {
		dt = min(max(now.Sub(s.lastFrame), 0), s.opts.MaxFrameDelta)
	}
	s.lastFrame = now
	s.hasLast = true

	var in core.Intent
	if s.opts.Input != nil {
		in = s.opts.Input.Poll()
	}

	if s.pauseKey.Rise(in.Pause) {
		switch s.state {
		case StatePlaying:
			s.Pause()
		case StatePaused:
			s.Resume()
			s.hasLast = true
			dt = 0
		}
	}

	if s.state == StatePlaying && s.game != nil {
		s.playTime += dt
		s.game.Update(dt, in)
	}

	s.opts.Bus.Dispatch()

	if s.opts.Renderer != nil {
		s.opts.Renderer.Render(s.opts.Scene, s.View())
	}
}
