// Package session owns the play lifecycle: which minigame is alive, the
// frame clock, the transient stats and the single persistence write per
// finished game.
package session

// State is the session lifecycle phase.
type State uint8

const (
	StateLoading State = iota
	StateMenu
	StatePlaying
	StatePaused
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateMenu:
		return "menu"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "gameOver"
	default:
		return "unknown"
	}
}

// InGame reports whether a minigame instance is alive in this state.
func (s State) InGame() bool {
	return s == StatePlaying || s == StatePaused
}
