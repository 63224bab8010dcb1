package session

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/keinplan-arcade/internal/config"
	"github.com/vovakirdan/keinplan-arcade/internal/core"
	"github.com/vovakirdan/keinplan-arcade/internal/events"
	"github.com/vovakirdan/keinplan-arcade/internal/game"
	"github.com/vovakirdan/keinplan-arcade/internal/games"
	"github.com/vovakirdan/keinplan-arcade/internal/input"
	"github.com/vovakirdan/keinplan-arcade/internal/registry"
	"github.com/vovakirdan/keinplan-arcade/internal/scene"
)

const stubKind = "stub"

type stubGame struct {
	game.Base
	elapsed time.Duration
	updates int
}

func (g *stubGame) Init() {
	g.Setup()
	g.Objects.Add(core.KindPlayer, core.Vec3{})
}

func (g *stubGame) Update(dt time.Duration, in core.Intent) {
	if !g.Advance(dt) {
		return
	}
	g.elapsed += dt
	g.updates++
}

func (g *stubGame) Cleanup()         { g.Teardown() }
func (g *stubGame) Kind() string     { return stubKind }
func (g *stubGame) Title() string    { return "Stub" }
func (g *stubGame) View() scene.View { return scene.TopDown(5) }
func (g *stubGame) Status() string   { return "" }

type fakeStore struct {
	stats   core.Stats
	found   bool
	loadErr error
	recErr  error
	records []core.SessionRecord
}

func (f *fakeStore) LoadStats() (core.Stats, bool, error) {
	return f.stats, f.found, f.loadErr
}

func (f *fakeStore) RecordSession(rec core.SessionRecord) error {
	f.records = append(f.records, rec)
	return f.recErr
}

type fixture struct {
	s      *Session
	bus    *events.Bus
	graph  *scene.Graph
	input  *input.Aggregator
	store  *fakeStore
	stub   *stubGame
	logs   *bytes.Buffer
	render *scene.ScreenRenderer
	now    time.Time
}

func newFixture(t *testing.T, store *fakeStore) *fixture {
	t.Helper()
	f := &fixture{
		bus:    events.NewBus(),
		graph:  scene.NewGraph(),
		store:  store,
		logs:   &bytes.Buffer{},
		render: scene.NewScreenRenderer(40, 20),
		now:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	f.input = input.NewAggregator(f.bus)

	reg := games.NewRegistry(config.DefaultGames())
	reg.Register(stubKind, func(d game.Deps) game.Variant {
		f.stub = &stubGame{Base: game.Base{Deps: d}}
		return f.stub
	})

	opts := Options{
		Registry: reg,
		Scene:    f.graph,
		Bus:      f.bus,
		Input:    f.input,
		Renderer: f.render,
		Logger:   log.New(f.logs),
		Seed:     7,
	}
	if store != nil {
		opts.Store = store
	}
	f.s = New(opts)
	t.Cleanup(f.s.Close)
	return f
}

// frame advances the host clock by d and runs one session frame.
func (f *fixture) frame(d time.Duration) {
	f.now = f.now.Add(d)
	f.s.Frame(f.now)
}

func TestLoadUsesStoredStats(t *testing.T) {
	store := &fakeStore{stats: core.Stats{Score: 0, Level: 1, Lives: 3, BestScore: 500}, found: true}
	f := newFixture(t, store)
	f.s.Load()
	if f.s.State() != StateMenu {
		t.Fatalf("state = %v, expected menu", f.s.State())
	}
	if got := f.s.Stats().BestScore; got != 500 {
		t.Errorf("best score = %d, expected 500", got)
	}
}

func TestLoadFailureFallsBackToDefaults(t *testing.T) {
	store := &fakeStore{loadErr: errors.New("disk on fire")}
	f := newFixture(t, store)
	f.s.Load()
	if f.s.State() != StateMenu {
		t.Fatalf("state = %v, expected menu", f.s.State())
	}
	if got := f.s.Stats(); got != core.DefaultStats() {
		t.Errorf("stats = %+v, expected defaults", got)
	}
	if !strings.Contains(f.logs.String(), "cannot load stats") {
		t.Errorf("expected a warning, got %q", f.logs.String())
	}
}

func TestStartBeforeLoad(t *testing.T) {
	f := newFixture(t, nil)
	if err := f.s.Start(stubKind); !errors.Is(err, ErrNotReady) {
		t.Errorf("Start before Load = %v, expected ErrNotReady", err)
	}
}

func TestUnknownKindLeavesMenu(t *testing.T) {
	f := newFixture(t, nil)
	f.s.Load()

	err := f.s.Start("pinball")
	if !errors.Is(err, registry.ErrUnknownKind) {
		t.Fatalf("Start(pinball) = %v, expected ErrUnknownKind", err)
	}
	if f.s.State() != StateMenu || f.s.Kind() != "" || f.s.Game() != nil {
		t.Errorf("session changed: state=%v kind=%q", f.s.State(), f.s.Kind())
	}
	if f.graph.Len() != 0 {
		t.Errorf("scene has %d entities", f.graph.Len())
	}
}

func TestStartEventAndStateChanges(t *testing.T) {
	f := newFixture(t, nil)
	var states []string
	f.bus.Subscribe(events.KindStateChanged, func(e events.Event) {
		states = append(states, e.(events.StateChanged).To)
	})

	f.s.Load()
	f.bus.Publish(events.GameStart{Game: stubKind})
	f.frame(0)
	f.bus.Publish(events.GamePause{})
	f.frame(0)
	f.bus.Publish(events.GameResume{})
	f.frame(0)

	want := []string{"menu", "playing", "paused", "playing"}
	if !reflect.DeepEqual(states, want) {
		t.Errorf("states = %v, expected %v", states, want)
	}
	if f.render.Frames != 3 {
		t.Errorf("rendered %d frames, expected 3", f.render.Frames)
	}
}

func TestBackToMenuLeavesNoEntities(t *testing.T) {
	f := newFixture(t, nil)
	f.s.Load()

	for _, info := range f.s.opts.Registry.List() {
		t.Run(info.ID, func(t *testing.T) {
			f.bus.Publish(events.GameStart{Game: info.ID})
			f.frame(0)
			if f.s.State() != StatePlaying || f.s.Kind() != info.ID {
				t.Fatalf("state=%v kind=%q after start", f.s.State(), f.s.Kind())
			}
			for i := range 120 {
				f.input.KeyDown(input.KeyD)
				if i%10 == 0 {
					f.input.KeyDown(input.KeySpace)
				} else {
					f.input.KeyUp(input.KeySpace)
				}
				f.frame(16 * time.Millisecond)
			}
			f.input.Reset()
			if f.graph.Len() == 0 {
				t.Fatal("game placed nothing in the scene")
			}

			f.bus.Publish(events.BackToMenu{})
			f.frame(16 * time.Millisecond)

			if f.s.State() != StateMenu {
				t.Errorf("state = %v, expected menu", f.s.State())
			}
			if n := f.graph.Len(); n != 0 {
				t.Errorf("%d entities left in the scene", n)
			}
			if strings.Contains(f.logs.String(), "left entities behind") {
				t.Errorf("game leaked entities: %s", f.logs.String())
			}
		})
	}
}

func TestGameOverRecordsOnce(t *testing.T) {
	store := &fakeStore{stats: core.Stats{Level: 1, Lives: 3, BestScore: 100}, found: true}
	f := newFixture(t, store)
	f.s.Load()
	if err := f.s.Start(stubKind); err != nil {
		t.Fatal(err)
	}
	f.bus.Publish(events.LevelUpdate{Level: 4})
	f.frame(0)
	f.frame(time.Second)

	f.bus.Publish(events.GameOver{FinalScore: 700})
	f.bus.Publish(events.GameOver{FinalScore: 900})
	f.frame(16 * time.Millisecond)
	f.s.End(1000)

	if f.s.State() != StateGameOver {
		t.Fatalf("state = %v, expected gameOver", f.s.State())
	}
	if len(store.records) != 1 {
		t.Fatalf("recorded %d sessions, expected 1", len(store.records))
	}
	rec := store.records[0]
	if rec.FinalScore != 700 || rec.Kind != stubKind || rec.Level != 4 || !rec.NewBest || rec.RunID == "" {
		t.Errorf("record = %+v", rec)
	}
	if rec.Stats.BestScore != 700 {
		t.Errorf("stored best = %d, expected 700", rec.Stats.BestScore)
	}
	res := f.s.LastResult()
	if res.FinalScore != 700 || res.BestScore != 700 || !res.NewBest || res.Duration != DefaultMaxFrameDelta {
		t.Errorf("result = %+v", res)
	}
	if f.graph.Len() != 0 {
		t.Errorf("scene has %d entities after game over", f.graph.Len())
	}
}

func TestLowerScoreKeepsBest(t *testing.T) {
	store := &fakeStore{stats: core.Stats{Level: 1, Lives: 3, BestScore: 1000}, found: true}
	f := newFixture(t, store)
	f.s.Load()
	_ = f.s.Start(stubKind)
	f.s.End(10)
	if res := f.s.LastResult(); res.NewBest || res.BestScore != 1000 {
		t.Errorf("result = %+v", res)
	}
}

func TestRecordFailureStillEndsGame(t *testing.T) {
	store := &fakeStore{found: false, recErr: errors.New("read-only")}
	f := newFixture(t, store)
	f.s.Load()
	_ = f.s.Start(stubKind)
	f.s.End(50)
	if f.s.State() != StateGameOver {
		t.Errorf("state = %v, expected gameOver", f.s.State())
	}
	if !strings.Contains(f.logs.String(), "cannot record session") {
		t.Errorf("expected a warning, got %q", f.logs.String())
	}
}

func TestPauseKeyDoesNotCatchUp(t *testing.T) {
	f := newFixture(t, nil)
	f.s.Load()
	_ = f.s.Start(stubKind)

	f.frame(0)
	f.frame(16 * time.Millisecond)

	f.input.KeyDown(input.KeyEscape)
	f.frame(16 * time.Millisecond)
	if f.s.State() != StatePaused {
		t.Fatalf("state = %v, expected paused", f.s.State())
	}
	f.input.KeyUp(input.KeyEscape)
	f.frame(2 * time.Second)

	f.input.KeyDown(input.KeyEscape)
	f.frame(3 * time.Second)
	if f.s.State() != StatePlaying {
		t.Fatalf("state = %v, expected playing", f.s.State())
	}
	f.input.KeyUp(input.KeyEscape)
	f.frame(16 * time.Millisecond)

	if f.stub.elapsed != 32*time.Millisecond {
		t.Errorf("game time = %v, expected 32ms", f.stub.elapsed)
	}
}

func TestHiddenWindowPausesBeforeUpdate(t *testing.T) {
	f := newFixture(t, nil)
	f.s.Load()
	_ = f.s.Start(stubKind)
	f.frame(0)
	f.frame(16 * time.Millisecond)
	updates := f.stub.updates

	f.input.SetVisible(false)
	f.frame(16 * time.Millisecond)
	if f.s.State() != StatePaused {
		t.Fatalf("state = %v, expected paused", f.s.State())
	}
	if f.stub.updates != updates {
		t.Errorf("game ran %d updates after the window was hidden", f.stub.updates-updates)
	}

	f.frame(5 * time.Second)
	f.input.SetVisible(true)
	f.frame(time.Second)
	f.frame(16 * time.Millisecond)
	if f.s.State() != StatePlaying {
		t.Fatalf("state = %v, expected playing", f.s.State())
	}
	if f.stub.elapsed != 32*time.Millisecond {
		t.Errorf("game time = %v, expected 32ms", f.stub.elapsed)
	}
}

func TestFrameDeltaIsClamped(t *testing.T) {
	f := newFixture(t, nil)
	f.s.Load()
	_ = f.s.Start(stubKind)
	f.frame(0)
	f.frame(5 * time.Second)
	if f.stub.elapsed != DefaultMaxFrameDelta {
		t.Errorf("game time = %v, expected %v", f.stub.elapsed, DefaultMaxFrameDelta)
	}
}

func TestStatUpdatesOnlyInGame(t *testing.T) {
	f := newFixture(t, nil)
	f.s.Load()
	f.bus.Publish(events.ScoreUpdate{Score: 99})
	f.frame(0)
	if f.s.Stats().Score != 0 {
		t.Error("score changed in the menu")
	}

	_ = f.s.Start(stubKind)
	f.bus.Publish(events.ScoreUpdate{Score: 120})
	f.bus.Publish(events.LivesUpdate{Lives: 1})
	f.frame(0)
	if st := f.s.Stats(); st.Score != 120 || st.Lives != 1 {
		t.Errorf("stats = %+v", st)
	}
}

func TestRestart(t *testing.T) {
	f := newFixture(t, nil)
	f.s.Load()
	if err := f.s.Restart(); !errors.Is(err, ErrNoGame) {
		t.Fatalf("Restart in menu = %v, expected ErrNoGame", err)
	}

	_ = f.s.Start(stubKind)
	first := f.stub
	f.frame(0)
	f.frame(100 * time.Millisecond)
	f.s.End(5)

	f.bus.Publish(events.GameRestart{})
	f.frame(0)
	if f.s.State() != StatePlaying || f.stub == first || f.stub.elapsed != 0 {
		t.Errorf("restart did not start a fresh game: state=%v", f.s.State())
	}
	if f.graph.Len() != 1 {
		t.Errorf("scene has %d entities, expected 1", f.graph.Len())
	}
}

func TestRealGameOverThroughBus(t *testing.T) {
	store := &fakeStore{}
	f := newFixture(t, store)
	f.s.Load()
	if err := f.s.Start("space-shooter"); err != nil {
		t.Fatal(err)
	}
	f.frame(0)
	f.bus.Publish(events.GameOver{FinalScore: 300})
	f.frame(16 * time.Millisecond)

	if f.s.State() != StateGameOver || len(store.records) != 1 {
		t.Errorf("state=%v records=%d", f.s.State(), len(store.records))
	}
	if f.graph.Len() != 0 {
		t.Errorf("scene has %d entities", f.graph.Len())
	}
}
