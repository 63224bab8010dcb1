package game

import (
	"sort"
	"time"
)

// Clock is game time: the sum of unpaused frame deltas.
type Clock struct {
	now time.Duration
}

func (c *Clock) Advance(dt time.Duration) { c.now += dt }

func (c *Clock) Now() time.Duration { return c.now }

// TaskID identifies a scheduled deadline.
type TaskID uint64

type task struct {
	id TaskID
	at time.Duration
	fn func(at time.Duration)
}

// Scheduler runs callbacks at game-clock deadlines. Tasks fire in deadline
// order; equal deadlines fire in the order they were scheduled. Each callback
// receives its own deadline, not the current time.
type Scheduler struct {
	tasks []task
	next  TaskID
}

// At schedules fn to run once the clock reaches at.
func (s *Scheduler) At(at time.Duration, fn func(at time.Duration)) TaskID {
	s.next++
	t := task{id: s.next, at: at, fn: fn}
	// Insert after every task with at <= t.at to keep FIFO among equals.
	i := sort.Search(len(s.tasks), func(i int) bool { return s.tasks[i].at > at })
	s.tasks = append(s.tasks, task{})
	copy(s.tasks[i+1:], s.tasks[i:])
	s.tasks[i] = t
	return t.id
}

// Cancel removes a pending task. It reports whether the task was pending.
func (s *Scheduler) Cancel(id TaskID) bool {
	for i, t := range s.tasks {
		if t.id == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return true
		}
	}
	return false
}

// Pending reports whether id is still scheduled.
func (s *Scheduler) Pending(id TaskID) bool {
	for _, t := range s.tasks {
		if t.id == id {
			return true
		}
	}
	return false
}

// Len returns the number of pending tasks.
func (s *Scheduler) Len() int { return len(s.tasks) }

// RunDue fires every task whose deadline is <= now, including tasks that
// become due because a callback scheduled them. It returns the count fired.
func (s *Scheduler) RunDue(now time.Duration) int {
	n := 0
	for len(s.tasks) > 0 && s.tasks[0].at <= now {
		t := s.tasks[0]
		s.tasks = s.tasks[1:]
		n++
		t.fn(t.at)
	}
	return n
}

// Reset drops every pending task.
func (s *Scheduler) Reset() {
	s.tasks = nil
}
