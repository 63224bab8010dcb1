package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/keinplan-arcade/internal/input"
)

// KeyMapper translates Bubble Tea key messages to arcade keys.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	bindings map[string]input.Key
}

// NewKeyMapper creates a key mapper with the default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{bindings: map[string]input.Key{
		"w":     input.KeyW,
		"a":     input.KeyA,
		"s":     input.KeyS,
		"d":     input.KeyD,
		"up":    input.KeyUp,
		"down":  input.KeyDown,
		"left":  input.KeyLeft,
		"right": input.KeyRight,
		" ":     input.KeySpace,
		"esc":   input.KeyEscape,
		"p":     input.KeyP,
		"e":     input.KeyE,
		"q":     input.KeyQ,
	}}
}

// MapKey returns the arcade key for msg, or KeyNone.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) input.Key {
	if k, ok := km.bindings[msg.String()]; ok {
		return k
	}
	return input.KeyNone
}

// IsQuit reports whether msg always quits, whatever screen is shown.
func (km *KeyMapper) IsQuit(msg tea.KeyMsg) bool {
	return msg.String() == "ctrl+c"
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionRestart
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "r":
		return MenuActionRestart
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}
