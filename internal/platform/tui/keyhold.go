package tui

import (
	"time"

	"github.com/vovakirdan/keinplan-arcade/internal/input"
)

// DefaultHoldWindow is how long a key counts as held after its last press
// or auto-repeat. Terminals report presses only, never releases.
const DefaultHoldWindow = 120 * time.Millisecond

// KeyHold turns a stream of key presses into held/released state.
type KeyHold struct {
	Window time.Duration
	until  map[input.Key]time.Time
}

// NewKeyHold creates a tracker with the given window.
func NewKeyHold(window time.Duration) *KeyHold {
	if window <= 0 {
		window = DefaultHoldWindow
	}
	return &KeyHold{Window: window, until: map[input.Key]time.Time{}}
}

// Press marks k as held until now+Window. It reports whether k was up.
func (h *KeyHold) Press(k input.Key, now time.Time) bool {
	_, held := h.until[k]
	h.until[k] = now.Add(h.Window)
	return !held
}

// Expire returns the keys whose window ended at or before now, releasing
// them.
func (h *KeyHold) Expire(now time.Time) []input.Key {
	var out []input.Key
	for k, t := range h.until {
		if !now.Before(t) {
			out = append(out, k)
			delete(h.until, k)
		}
	}
	return out
}

// Held reports whether k is currently held.
func (h *KeyHold) Held(k input.Key) bool {
	_, ok := h.until[k]
	return ok
}

// Reset releases every key.
func (h *KeyHold) Reset() {
	clear(h.until)
}
