// Package blockpuzzle implements a sliding block puzzle: blocks move along
// rows and columns of a small board until they cover the target pattern.
package blockpuzzle

import (
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/keinplan-arcade/internal/config"
	"github.com/vovakirdan/keinplan-arcade/internal/core"
	"github.com/vovakirdan/keinplan-arcade/internal/events"
	"github.com/vovakirdan/keinplan-arcade/internal/game"
	"github.com/vovakirdan/keinplan-arcade/internal/registry"
	"github.com/vovakirdan/keinplan-arcade/internal/scene"
)

// Kind is the registry key of this game.
const Kind = "block-puzzle"

const (
	blockY  = 0.5
	raisedY = 0.7
	// Stick deflection needed to move the cursor.
	cursorThreshold = 0.5
)

var shapes = [...]core.EntityKind{
	core.KindBlockCube,
	core.KindBlockSphere,
	core.KindBlockPyramid,
	core.KindBlockCylinder,
}

// Pos is a board cell. X is the column, Z the row.
type Pos struct {
	X, Z int
}

type block struct {
	h    scene.Handle
	kind core.EntityKind
	pos  core.Vec3
}

type anim struct {
	b        *block
	from, to core.Vec3
	dur      time.Duration
	elapsed  time.Duration
}

// Game implements the block puzzle.
type Game struct {
	game.Base
	cfg config.BlockPuzzleConfig

	grid    [][]*block
	cells   []scene.Handle
	pattern []Pos
	marks   []scene.Handle
	anims   []*anim

	cursor    Pos
	cursorH   scene.Handle
	cursorDir Pos
	cursorCD  game.Cooldown
	action    game.Edge

	selected *Pos

	score    int
	level    int
	moves    int
	maxMoves int
	over     bool

	regenerating bool
	overTask     game.TaskID

	camAngle float64
	camDist  float64

	particles *game.Particles
}

// New creates a block puzzle.
func New(cfg config.BlockPuzzleConfig, deps game.Deps) *Game {
	return &Game{Base: game.Base{Deps: deps}, cfg: cfg}
}

// Register adds the game to r.
func Register(r *registry.Registry, cfg config.BlockPuzzleConfig) {
	r.Register(Kind, func(d game.Deps) game.Variant { return New(cfg, d) })
}

func (g *Game) Kind() string  { return Kind }
func (g *Game) Title() string { return "Block Puzzle" }

func (g *Game) View() scene.View {
	return scene.TopDown(float64(g.cfg.Grid.Size)/2*g.cfg.Grid.Spacing + 0.6)
}

func (g *Game) Status() string {
	return fmt.Sprintf("moves %d/%d  pattern %d  cam %.0f°/%.0f",
		g.moves, g.maxMoves, len(g.pattern), math.Mod(g.camAngle*180/math.Pi, 360), g.camDist)
}

// Init deals a fresh board for level 1.
func (g *Game) Init() {
	g.Setup()
	g.particles = game.NewParticles(g.Objects)
	g.score, g.level, g.moves, g.over = 0, 1, 0, false
	g.maxMoves = g.cfg.Moves.Initial
	g.regenerating, g.overTask = false, 0
	g.selected, g.anims = nil, nil
	g.camAngle, g.camDist = 0, g.cfg.Camera.Distance
	g.cursorCD = game.Cooldown{Period: g.cfg.Timing.CursorRepeat}
	g.cursorDir = Pos{}
	g.action = game.Edge{}

	n := g.cfg.Grid.Size
	for z := range n {
		for x := range n {
			g.cells = append(g.cells, g.Objects.Add(core.KindCell, g.world(Pos{x, z}, 0)))
		}
	}
	g.cursor = Pos{n / 2, n / 2}
	g.cursorH = g.Objects.Add(core.KindCursor, g.world(g.cursor, 0))
	g.deal()
}

// world returns the centre of cell p at height y.
func (g *Game) world(p Pos, y float64) core.Vec3 {
	off := float64(g.cfg.Grid.Size-1) / 2
	s := g.cfg.Grid.Spacing
	return core.V3((float64(p.X)-off)*s, y, (float64(p.Z)-off)*s)
}

func (g *Game) inBounds(p Pos) bool {
	n := g.cfg.Grid.Size
	return p.X >= 0 && p.X < n && p.Z >= 0 && p.Z < n
}

func (g *Game) at(p Pos) *block {
	if !g.inBounds(p) {
		return nil
	}
	return g.grid[p.X][p.Z]
}

// deal fills the board and picks a new target pattern.
func (g *Game) deal() {
	n := g.cfg.Grid.Size
	g.grid = make([][]*block, n)
	for x := range n {
		g.grid[x] = make([]*block, n)
		for z := range n {
			if g.Rand.Float64() >= g.cfg.Grid.FillChance {
				continue
			}
			k := shapes[g.Rand.Intn(len(shapes))]
			pos := g.world(Pos{x, z}, blockY)
			g.grid[x][z] = &block{h: g.Objects.Add(k, pos), kind: k, pos: pos}
		}
	}

	g.pattern = g.pattern[:0]
	for range min(3+g.level, n) {
		p := Pos{g.Rand.Intn(n), g.Rand.Intn(n)}
		if g.inPattern(p) {
			continue
		}
		g.pattern = append(g.pattern, p)
		g.marks = append(g.marks, g.Objects.Add(core.KindPatternMark, g.world(p, 0)))
	}
}

func (g *Game) inPattern(p Pos) bool {
	for _, q := range g.pattern {
		if q == p {
			return true
		}
	}
	return false
}

// clearBoard removes blocks and pattern marks.
func (g *Game) clearBoard() {
	for _, col := range g.grid {
		for _, b := range col {
			if b != nil {
				g.Objects.Remove(b.h)
			}
		}
	}
	for _, h := range g.marks {
		g.Objects.Remove(h)
	}
	g.grid, g.marks, g.pattern, g.anims, g.selected = nil, nil, nil, nil, nil
}

// CanMove reports whether the block at from may slide to to: the cells must
// differ, share a row or column, to must be free and every cell strictly
// between them empty.
func (g *Game) CanMove(from, to Pos) bool {
	if from == to || !g.inBounds(from) || !g.inBounds(to) {
		return false
	}
	src := g.at(from)
	if src == nil {
		return false
	}
	if dst := g.at(to); dst != nil && dst != src {
		return false
	}
	if from.X != to.X && from.Z != to.Z {
		return false
	}
	step := Pos{sign(to.X - from.X), sign(to.Z - from.Z)}
	for p := (Pos{from.X + step.X, from.Z + step.Z}); p != to; p = (Pos{p.X + step.X, p.Z + step.Z}) {
		if g.at(p) != nil {
			return false
		}
	}
	return true
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// Update advances the puzzle by dt.
func (g *Game) Update(dt time.Duration, in core.Intent) {
	if g.over || !g.Advance(dt) {
		return
	}
	cam := g.cfg.Camera
	g.camAngle += dt.Seconds() * cam.RotateSpeed
	g.camDist = core.ClampF(g.camDist-float64(in.Zoom), cam.MinDistance, cam.MaxDistance)

	pressed := g.action.Rise(in.Action)
	g.stepAnims(dt)
	g.particles.Update(dt)
	if g.over || g.regenerating || len(g.anims) > 0 {
		return
	}

	g.moveCursor(in)
	if pressed {
		g.activate(g.cursor)
	}
}

func (g *Game) moveCursor(in core.Intent) {
	dir := Pos{}
	switch {
	case in.MoveX > cursorThreshold:
		dir.X = 1
	case in.MoveX < -cursorThreshold:
		dir.X = -1
	}
	switch {
	case in.MoveY > cursorThreshold:
		dir.Z = 1
	case in.MoveY < -cursorThreshold:
		dir.Z = -1
	}
	if dir != g.cursorDir {
		g.cursorDir = dir
		g.cursorCD.Reset()
	}
	if dir == (Pos{}) || !g.cursorCD.Try(g.Clock.Now()) {
		return
	}
	n := g.cfg.Grid.Size
	g.cursor.X = core.Clamp(g.cursor.X+dir.X, 0, n-1)
	g.cursor.Z = core.Clamp(g.cursor.Z+dir.Z, 0, n-1)
	g.Objects.Move(g.cursorH, g.world(g.cursor, 0))
}

// activate applies the action button to cell p: select, deselect or move.
func (g *Game) activate(p Pos) {
	switch {
	case g.selected == nil:
		g.selectAt(p)
	case *g.selected == p:
		g.deselect()
	case g.CanMove(*g.selected, p):
		g.move(*g.selected, p)
	default:
		g.deselect()
		g.selectAt(p)
	}
}

func (g *Game) selectAt(p Pos) {
	b := g.at(p)
	if b == nil {
		return
	}
	sel := p
	g.selected = &sel
	g.animate(b, g.world(p, raisedY), g.cfg.Timing.SelectAnim)
}

func (g *Game) deselect() {
	if g.selected == nil {
		return
	}
	if b := g.at(*g.selected); b != nil {
		g.animate(b, g.world(*g.selected, blockY), g.cfg.Timing.SelectAnim)
	}
	g.selected = nil
}

func (g *Game) move(from, to Pos) {
	b := g.at(from)
	g.grid[from.X][from.Z] = nil
	g.grid[to.X][to.Z] = b
	g.selected = nil
	g.animate(b, g.world(to, blockY), g.cfg.Timing.MoveAnim)

	g.moves++
	t := g.cfg.Timing
	g.After(t.CheckDelay, func(time.Duration) { g.checkPattern() })
	if g.moves >= g.maxMoves && !g.Sched.Pending(g.overTask) {
		g.overTask = g.After(t.GameOverDelay, func(time.Duration) { g.gameOver() })
	}
}

func (g *Game) animate(b *block, to core.Vec3, dur time.Duration) {
	for _, a := range g.anims {
		if a.b == b {
			a.from, a.to, a.dur, a.elapsed = b.pos, to, dur, 0
			return
		}
	}
	g.anims = append(g.anims, &anim{b: b, from: b.pos, to: to, dur: dur})
}

func (g *Game) stepAnims(dt time.Duration) {
	kept := g.anims[:0]
	for _, a := range g.anims {
		a.elapsed += dt
		t := 1.0
		if a.dur > 0 {
			t = min(float64(a.elapsed)/float64(a.dur), 1)
		}
		if t < 1 {
			a.b.pos = a.from.Lerp(a.to, core.EaseInOutCubic(t))
			kept = append(kept, a)
		} else {
			a.b.pos = a.to
		}
		g.Objects.Move(a.b.h, a.b.pos)
	}
	g.anims = kept
}

// PatternComplete reports whether every pattern cell holds a block.
func (g *Game) PatternComplete() bool {
	if len(g.pattern) == 0 {
		return false
	}
	for _, p := range g.pattern {
		if g.at(p) == nil {
			return false
		}
	}
	return true
}

func (g *Game) checkPattern() {
	if g.over || g.regenerating || !g.PatternComplete() {
		return
	}
	g.levelComplete()
}

func (g *Game) levelComplete() {
	s := g.cfg.Scoring
	g.score += s.LevelBonus + (g.maxMoves-g.moves)*s.MoveBonus
	g.level++
	g.moves = 0
	g.maxMoves = min(g.cfg.Moves.Cap, g.maxMoves+g.cfg.Moves.Step)
	g.Sched.Cancel(g.overTask)
	g.overTask = 0

	g.Emit(events.ScoreUpdate{Score: g.score})
	g.Emit(events.LevelUpdate{Level: g.level})
	g.Log().Debug("pattern complete", "level", g.level, "score", g.score)

	pc := g.cfg.Particles
	for _, p := range g.pattern {
		g.particles.Burst(g.Rand, g.world(p, 1), pc.Count, pc.Speed, pc.Lifetime)
	}

	g.regenerating = true
	g.After(g.cfg.Timing.RegenerateDelay, func(time.Duration) {
		g.clearBoard()
		g.deal()
		g.regenerating = false
	})
}

func (g *Game) gameOver() {
	if g.over {
		return
	}
	g.over = true
	g.Emit(events.GameOver{FinalScore: g.score})
}

// Cleanup removes every entity; safe to call twice.
func (g *Game) Cleanup() {
	if g.particles != nil {
		g.particles.Clear()
	}
	g.Teardown()
	g.grid, g.cells, g.marks, g.pattern, g.anims, g.selected = nil, nil, nil, nil, nil, nil
}
