package events

// Handler receives events of the kind it subscribed to.
type Handler func(Event)

// maxDispatch bounds the events delivered in one Dispatch call so a handler
// that republishes unconditionally cannot stall the frame.
const maxDispatch = 4096

type subscription struct {
	id uint64
	fn Handler
}

// Bus is a single-threaded FIFO event bus.
//
// Handlers run in registration order. Events published while a Dispatch is in
// progress are delivered by the same Dispatch, after the events already queued.
type Bus struct {
	handlers map[Kind][]subscription
	any      []subscription
	queue    []Event
	nextID   uint64
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[Kind][]subscription)}
}

// Subscribe registers fn for events of kind k and returns a function that
// removes the subscription. Calling the returned function twice is harmless.
func (b *Bus) Subscribe(k Kind, fn Handler) func() {
	b.nextID++
	id := b.nextID
	b.handlers[k] = append(b.handlers[k], subscription{id: id, fn: fn})
	return func() { b.handlers[k] = remove(b.handlers[k], id) }
}

// SubscribeAll registers fn for every event. All-event handlers run after
// the kind-specific ones.
func (b *Bus) SubscribeAll(fn Handler) func() {
	b.nextID++
	id := b.nextID
	b.any = append(b.any, subscription{id: id, fn: fn})
	return func() { b.any = remove(b.any, id) }
}

func remove(subs []subscription, id uint64) []subscription {
	for i, s := range subs {
		if s.id == id {
			out := make([]subscription, 0, len(subs)-1)
			out = append(out, subs[:i]...)
			return append(out, subs[i+1:]...)
		}
	}
	return subs
}

// Publish queues an event for the next Dispatch. Nil events are ignored.
func (b *Bus) Publish(e Event) {
	if e == nil {
		return
	}
	b.queue = append(b.queue, e)
}

// Pending returns the number of queued events.
func (b *Bus) Pending() int {
	return len(b.queue)
}

// Dispatch delivers queued events in FIFO order and returns how many were
// delivered.
func (b *Bus) Dispatch() int {
	n := 0
	for len(b.queue) > 0 && n < maxDispatch {
		e := b.queue[0]
		b.queue[0] = nil
		b.queue = b.queue[1:]
		n++

		// Copy so handlers may unsubscribe while being called.
		subs := append([]subscription(nil), b.handlers[e.Kind()]...)
		subs = append(subs, b.any...)
		for _, s := range subs {
			s.fn(e)
		}
	}
	if len(b.queue) == 0 {
		b.queue = nil
	}
	return n
}

// Clear drops queued events without delivering them.
func (b *Bus) Clear() {
	b.queue = nil
}
