package blockpuzzle

import (
	"math/rand"
	"reflect"
	"testing"
	"time"

	"github.com/vovakirdan/keinplan-arcade/internal/config"
	"github.com/vovakirdan/keinplan-arcade/internal/core"
	"github.com/vovakirdan/keinplan-arcade/internal/events"
	"github.com/vovakirdan/keinplan-arcade/internal/game"
	"github.com/vovakirdan/keinplan-arcade/internal/scene"
)

const frame = 10 * time.Millisecond

func newTestGame(seed int64) (*Game, *scene.Graph, *events.Bus) {
	g := scene.NewGraph()
	bus := events.NewBus()
	gm := New(config.DefaultBlockPuzzleConfig(), game.Deps{
		Scene: g,
		Bus:   bus,
		Rand:  rand.New(rand.NewSource(seed)),
	})
	gm.Init()
	return gm, g, bus
}

// setBoard replaces the board. rows[z][x] is '#' for a block.
func setBoard(gm *Game, pattern []Pos, rows ...string) {
	gm.clearBoard()
	n := gm.cfg.Grid.Size
	gm.grid = make([][]*block, n)
	for x := range n {
		gm.grid[x] = make([]*block, n)
	}
	for z, row := range rows {
		for x, c := range row {
			if c != '#' {
				continue
			}
			pos := gm.world(Pos{x, z}, blockY)
			gm.grid[x][z] = &block{h: gm.Objects.Add(core.KindBlockCube, pos), kind: core.KindBlockCube, pos: pos}
		}
	}
	gm.pattern = pattern
}

func settle(gm *Game) {
	for i := 0; i < 200 && len(gm.anims) > 0; i++ {
		gm.Update(frame, core.Intent{})
	}
}

// press taps the action button on cell p and waits for animations.
func press(gm *Game, p Pos) {
	gm.cursor = p
	gm.Update(frame, core.Intent{Action: true})
	gm.Update(frame, core.Intent{})
	settle(gm)
}

// runUntil steps the clock to at, calling fn after every frame.
func runUntil(gm *Game, at time.Duration, fn func()) {
	for gm.Clock.Now() < at {
		gm.Update(frame, core.Intent{})
		if fn != nil {
			fn()
		}
	}
}

func TestCanMove(t *testing.T) {
	gm, _, _ := newTestGame(1)
	setBoard(gm, nil,
		"#..#",
		".#..",
		"....",
		"#.#.",
	)
	tests := []struct {
		name     string
		from, to Pos
		want     bool
	}{
		{"same cell", Pos{0, 0}, Pos{0, 0}, false},
		{"empty source", Pos{1, 0}, Pos{2, 0}, false},
		{"row clear", Pos{0, 0}, Pos{2, 0}, true},
		{"row target occupied", Pos{0, 0}, Pos{3, 0}, false},
		{"column clear", Pos{0, 0}, Pos{0, 2}, true},
		{"column target occupied", Pos{0, 0}, Pos{0, 3}, false},
		{"diagonal", Pos{0, 0}, Pos{1, 1}, false},
		{"long column", Pos{1, 1}, Pos{1, 3}, true},
		{"adjacent", Pos{2, 3}, Pos{3, 3}, true},
		{"path blocked", Pos{0, 3}, Pos{3, 3}, false},
		{"column up", Pos{3, 0}, Pos{3, 3}, true},
		{"out of bounds", Pos{0, 0}, Pos{-1, 0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := gm.CanMove(tt.from, tt.to); got != tt.want {
				t.Errorf("CanMove(%v, %v) = %v, expected %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestCanMoveFullyBlocked(t *testing.T) {
	gm, _, _ := newTestGame(1)
	setBoard(gm, nil,
		"####",
		"####",
		"####",
		"###.",
	)
	for x := range 4 {
		for z := range 4 {
			from := Pos{x, z}
			for _, to := range []Pos{{x + 1, z}, {x - 1, z}, {x, z + 1}, {x, z - 1}, {3, 3}} {
				want := to == (Pos{3, 3}) && from != to && (x == 3 && z == 2 || x == 2 && z == 3)
				if got := gm.CanMove(from, to); got != want {
					t.Errorf("CanMove(%v, %v) = %v, expected %v", from, to, got, want)
				}
			}
		}
	}
}

func TestPatternGeneration(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		gm, _, _ := newTestGame(seed)
		p := gm.Snapshot().Pattern
		if len(p) == 0 || len(p) > 4 {
			t.Fatalf("seed %d: pattern size %d", seed, len(p))
		}
		seen := map[Pos]bool{}
		for _, c := range p {
			if seen[c] || !gm.inBounds(c) {
				t.Errorf("seed %d: bad pattern cell %v in %v", seed, c, p)
			}
			seen[c] = true
		}
	}
}

func TestSelectDeselectAndMove(t *testing.T) {
	gm, _, _ := newTestGame(2)
	setBoard(gm, []Pos{{1, 2}, {2, 2}},
		"#...",
		"....",
	)

	press(gm, Pos{0, 0})
	if s := gm.Snapshot(); !s.HasSelection || s.Selected != (Pos{0, 0}) {
		t.Fatalf("after select: %+v", s)
	}
	press(gm, Pos{0, 0})
	if gm.Snapshot().HasSelection {
		t.Fatal("second press on the same block should deselect")
	}

	press(gm, Pos{0, 0})
	press(gm, Pos{2, 0})
	s := gm.Snapshot()
	if s.Moves != 1 || s.HasSelection {
		t.Errorf("after move: %+v", s)
	}
	if gm.at(Pos{0, 0}) != nil || gm.at(Pos{2, 0}) == nil {
		t.Errorf("board after move: %v", gm.Board())
	}
	if b := gm.at(Pos{2, 0}); b.pos != gm.world(Pos{2, 0}, blockY) {
		t.Errorf("block rests at %v", b.pos)
	}
}

func TestPressOnEmptyCellWithoutSelection(t *testing.T) {
	gm, _, _ := newTestGame(2)
	setBoard(gm, nil, "#...")
	press(gm, Pos{3, 3})
	if gm.Snapshot().HasSelection {
		t.Error("empty cell should not be selectable")
	}
}

func TestInputLockedWhileAnimating(t *testing.T) {
	gm, _, _ := newTestGame(3)
	setBoard(gm, nil, "#...")
	gm.cursor = Pos{0, 0}
	gm.Update(frame, core.Intent{Action: true})
	if !gm.Snapshot().Animating {
		t.Fatal("selection should animate")
	}
	gm.Update(frame, core.Intent{MoveX: 1})
	if c := gm.Snapshot().Cursor; c != (Pos{0, 0}) {
		t.Errorf("cursor moved to %v during animation", c)
	}
}

func TestCursorRepeat(t *testing.T) {
	gm, _, _ := newTestGame(4)
	gm.cursor = Pos{0, 0}
	right := core.Intent{MoveX: 1}
	for range 20 {
		gm.Update(frame, right)
	}
	// Steps at 10ms and 200ms; the next needs more than 180ms after that.
	if c := gm.Snapshot().Cursor; c != (Pos{2, 0}) {
		t.Errorf("cursor after holding 200ms = %v, expected {2 0}", c)
	}
	gm.Update(frame, core.Intent{})
	gm.Update(frame, right)
	if c := gm.Snapshot().Cursor; c != (Pos{3, 0}) {
		t.Errorf("cursor after re-press = %v, expected {3 0}", c)
	}
	for range 30 {
		gm.Update(frame, right)
	}
	if c := gm.Snapshot().Cursor; c != (Pos{3, 0}) {
		t.Errorf("cursor left the board: %v", c)
	}
}

func TestLevelCompleteTiming(t *testing.T) {
	gm, _, bus := newTestGame(5)
	setBoard(gm, []Pos{{2, 0}}, "#...")
	var levels []int
	bus.Subscribe(events.KindLevelUpdate, func(e events.Event) {
		levels = append(levels, e.(events.LevelUpdate).Level)
	})

	press(gm, Pos{0, 0})
	gm.cursor = Pos{2, 0}
	gm.Update(frame, core.Intent{Action: true})
	moved := gm.Clock.Now()

	runUntil(gm, moved+490*time.Millisecond, nil)
	if gm.Snapshot().Level != 1 {
		t.Fatal("pattern checked too early")
	}
	runUntil(gm, moved+500*time.Millisecond, nil)
	bus.Dispatch()

	s := gm.Snapshot()
	if s.Level != 2 || s.Score != 1000+19*50 || s.Moves != 0 || s.MaxMoves != 22 {
		t.Fatalf("after level complete: %+v", s)
	}
	if !s.Regenerating {
		t.Error("board should be waiting to regenerate")
	}
	if !reflect.DeepEqual(levels, []int{2}) {
		t.Errorf("level updates = %v", levels)
	}

	runUntil(gm, moved+2490*time.Millisecond, nil)
	if !gm.Snapshot().Regenerating {
		t.Fatal("board regenerated too early")
	}
	runUntil(gm, moved+2500*time.Millisecond, nil)
	s = gm.Snapshot()
	if s.Regenerating || len(s.Pattern) == 0 {
		t.Errorf("after regenerate: %+v", s)
	}
}

func TestGameOverWhenMovesRunOut(t *testing.T) {
	gm, _, bus := newTestGame(6)
	setBoard(gm, []Pos{{3, 3}}, "#...")
	gm.maxMoves = 1
	overs := 0
	bus.Subscribe(events.KindGameOver, func(events.Event) { overs++ })

	press(gm, Pos{0, 0})
	gm.cursor = Pos{1, 0}
	gm.Update(frame, core.Intent{Action: true})
	moved := gm.Clock.Now()

	runUntil(gm, moved+990*time.Millisecond, nil)
	if gm.Snapshot().Over {
		t.Fatal("game over fired early")
	}
	runUntil(gm, moved+time.Second, nil)
	bus.Dispatch()
	if !gm.Snapshot().Over || overs != 1 {
		t.Errorf("over=%v, GameOver published %d times", gm.Snapshot().Over, overs)
	}
}

func TestLevelCompleteCancelsGameOver(t *testing.T) {
	gm, _, _ := newTestGame(7)
	setBoard(gm, []Pos{{1, 0}}, "#...")
	gm.maxMoves = 1

	press(gm, Pos{0, 0})
	gm.cursor = Pos{1, 0}
	gm.Update(frame, core.Intent{Action: true})
	moved := gm.Clock.Now()

	runUntil(gm, moved+1500*time.Millisecond, nil)
	s := gm.Snapshot()
	if s.Over {
		t.Fatal("game over should be cancelled by the level completion")
	}
	if s.Level != 2 || s.MaxMoves != 3 || s.Score != 1000 {
		t.Errorf("after level complete: %+v", s)
	}
}

func TestCameraZoomIsClamped(t *testing.T) {
	gm, _, _ := newTestGame(8)
	for range 30 {
		gm.Update(frame, core.Intent{Zoom: 1})
	}
	if d := gm.Snapshot().CamDist; d != 5 {
		t.Errorf("zoomed in distance = %v, expected 5", d)
	}
	for range 30 {
		gm.Update(frame, core.Intent{Zoom: -1})
	}
	if d := gm.Snapshot().CamDist; d != 20 {
		t.Errorf("zoomed out distance = %v, expected 20", d)
	}
}

func TestDeterminism(t *testing.T) {
	a, _, _ := newTestGame(31)
	b, _, _ := newTestGame(31)
	for i := range 2000 {
		in := core.Intent{
			MoveX:  float64(i%7-3) / 3,
			MoveY:  float64(i%5-2) / 2,
			Action: i%13 < 2,
		}
		a.Update(frame, in)
		b.Update(frame, in)
	}
	if !reflect.DeepEqual(a.Snapshot(), b.Snapshot()) {
		t.Errorf("snapshots differ:\n%+v\n%+v", a.Snapshot(), b.Snapshot())
	}
	if !reflect.DeepEqual(a.Board(), b.Board()) {
		t.Errorf("boards differ:\n%v\n%v", a.Board(), b.Board())
	}
}

func TestCleanupTwice(t *testing.T) {
	gm, g, _ := newTestGame(9)
	for i := range 500 {
		gm.Update(frame, core.Intent{MoveX: 1, Action: i%20 == 0})
	}
	gm.Cleanup()
	gm.Cleanup()
	if g.Len() != 0 {
		t.Errorf("scene has %d entities after cleanup", g.Len())
	}
	if g.StaleRemovals() != 0 {
		t.Errorf("cleanup removed %d stale handles", g.StaleRemovals())
	}
}
