package game

import "time"

// Cooldown gates a repeated action on the game clock. A fresh cooldown is
// ready immediately; afterwards it is ready once strictly more than Period
// has elapsed since the last trigger.
type Cooldown struct {
	Period time.Duration
	last   time.Duration
	primed bool
}

func (c *Cooldown) Ready(now time.Duration) bool {
	return !c.primed || now-c.last > c.Period
}

func (c *Cooldown) Trigger(now time.Duration) {
	c.last = now
	c.primed = true
}

// Try triggers and returns true when ready.
func (c *Cooldown) Try(now time.Duration) bool {
	if !c.Ready(now) {
		return false
	}
	c.Trigger(now)
	return true
}

func (c *Cooldown) Reset() {
	c.last = 0
	c.primed = false
}

// Edge turns a held button into a one-frame press.
type Edge struct {
	prev bool
}

// Rise returns true on the first frame v becomes true.
func (e *Edge) Rise(v bool) bool {
	r := v && !e.prev
	e.prev = v
	return r
}
