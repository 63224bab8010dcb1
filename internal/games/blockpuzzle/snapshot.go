package blockpuzzle

// Snapshot captures the game state for tests and debugging.
type Snapshot struct {
	Score        int
	Level        int
	Moves        int
	MaxMoves     int
	Over         bool
	Cursor       Pos
	Selected     Pos
	HasSelection bool
	Blocks       int
	Pattern      []Pos
	Animating    bool
	Regenerating bool
	CamDist      float64
}

// Snapshot returns the current state.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Score:        g.score,
		Level:        g.level,
		Moves:        g.moves,
		MaxMoves:     g.maxMoves,
		Over:         g.over,
		Cursor:       g.cursor,
		Pattern:      append([]Pos(nil), g.pattern...),
		Animating:    len(g.anims) > 0,
		Regenerating: g.regenerating,
		CamDist:      g.camDist,
	}
	if g.selected != nil {
		s.Selected, s.HasSelection = *g.selected, true
	}
	for _, col := range g.grid {
		for _, b := range col {
			if b != nil {
				s.Blocks++
			}
		}
	}
	return s
}

// Board renders the grid as rows of '#' (block) and '.' (empty), top row
// first.
func (g *Game) Board() []string {
	n := len(g.grid)
	rows := make([]string, 0, n)
	for z := n - 1; z >= 0; z-- {
		row := make([]byte, n)
		for x := range n {
			row[x] = '.'
			if g.grid[x][z] != nil {
				row[x] = '#'
			}
		}
		rows = append(rows, string(row))
	}
	return rows
}
