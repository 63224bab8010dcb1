// Package remote lets a phone or browser act as a gamepad. Clients connect
// over WebSocket, send touch, joystick, gamepad, key and visibility messages,
// and receive every bus event as JSON.
package remote

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vovakirdan/keinplan-arcade/internal/events"
	"github.com/vovakirdan/keinplan-arcade/internal/input"
)

// Message types sent by clients.
const (
	TypeTouch      = "touch"
	TypeJoystick   = "joystick"
	TypeGamepad    = "gamepad"
	TypeKey        = "key"
	TypeVisibility = "visibility"
)

// Touch phases.
const (
	PhaseStart = "start"
	PhaseMove  = "move"
	PhaseEnd   = "end"
)

var ErrUnknownMessage = errors.New("unknown message type")

// Touch is one touch point in client screen coordinates.
type Touch struct {
	ID int     `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// Message is the client-to-server envelope. Only the fields of its Type are
// read.
type Message struct {
	Type string `json:"type"`

	// touch
	Phase   string  `json:"phase,omitempty"`
	Touches []Touch `json:"touches,omitempty"`

	// joystick
	CX     float64 `json:"cx,omitempty"`
	CY     float64 `json:"cy,omitempty"`
	Radius float64 `json:"r,omitempty"`

	// gamepad
	Connected bool      `json:"connected,omitempty"`
	Buttons   []bool    `json:"buttons,omitempty"`
	Axes      []float64 `json:"axes,omitempty"`

	// key
	Key  string `json:"key,omitempty"`
	Down bool   `json:"down,omitempty"`

	// visibility
	Visible bool `json:"visible,omitempty"`
}

// Apply feeds m into the aggregator as the only pad. It must run on the
// frame goroutine. Server merges several pads before applying.
func Apply(m Message, a *input.Aggregator) error {
	switch m.Type {
	case TypeTouch:
		return applyTouches(m.Phase, touchPoints(m.Touches), a)
	case TypeJoystick:
		a.SetJoystickArea(m.CX, m.CY, m.Radius)
	case TypeGamepad:
		a.SetGamepad(input.GamepadState{
			Connected: m.Connected,
			Buttons:   m.Buttons,
			Axes:      m.Axes,
		})
	case TypeKey:
		k := input.ParseKey(m.Key)
		if k == input.KeyNone {
			return fmt.Errorf("remote: unknown key %q", m.Key)
		}
		if m.Down {
			a.KeyDown(k)
		} else {
			a.KeyUp(k)
		}
	case TypeVisibility:
		a.SetVisible(m.Visible)
	default:
		return fmt.Errorf("remote: %q: %w", m.Type, ErrUnknownMessage)
	}
	return nil
}

func touchPoints(ts []Touch) []input.TouchPoint {
	points := make([]input.TouchPoint, len(ts))
	for i, t := range ts {
		points[i] = input.TouchPoint{ID: t.ID, X: t.X, Y: t.Y}
	}
	return points
}

func knownPhase(phase string) bool {
	return phase == PhaseStart || phase == PhaseMove || phase == PhaseEnd
}

func applyTouches(phase string, points []input.TouchPoint, a *input.Aggregator) error {
	switch phase {
	case PhaseStart:
		a.TouchStart(points)
	case PhaseMove:
		a.TouchMove(points)
	case PhaseEnd:
		a.TouchEnd(points)
	default:
		return fmt.Errorf("remote: unknown touch phase %q", phase)
	}
	return nil
}

// Outbound is the server-to-client envelope for a bus event.
type Outbound struct {
	Type string       `json:"type"`
	Data events.Event `json:"data"`
}

// Encode renders a bus event for clients.
func Encode(e events.Event) ([]byte, error) {
	return json.Marshal(Outbound{Type: e.Kind().String(), Data: e})
}
