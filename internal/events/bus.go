package events

// DefaultFlushLimit bounds how many events one Flush dispatches, so handlers that
// keep enqueueing cannot spin forever. Events past the limit stay queued.
const DefaultFlushLimit = 4096

// Bus routes events to per-kind topics and keeps a FIFO queue of deferred events.
type Bus[K comparable, E any] struct {
	kindOf     func(E) K
	topics     map[K]*Topic[E]
	all        Topic[E]
	queue      []E
	onPanic    PanicHandler
	flushLimit int
}

// NewBus creates a bus. kindOf extracts the routing key from an event.
func NewBus[K comparable, E any](kindOf func(E) K) *Bus[K, E] {
	return &Bus[K, E]{
		kindOf:     kindOf,
		topics:     make(map[K]*Topic[E]),
		flushLimit: DefaultFlushLimit,
	}
}

// SetPanicHandler installs h on every current and future topic.
func (b *Bus[K, E]) SetPanicHandler(h PanicHandler) {
	b.onPanic = h
	b.all.SetPanicHandler(h)
	for _, t := range b.topics {
		t.SetPanicHandler(h)
	}
}

// SetFlushLimit changes the per-Flush dispatch bound. Values < 1 restore the default.
func (b *Bus[K, E]) SetFlushLimit(n int) {
	if n < 1 {
		n = DefaultFlushLimit
	}
	b.flushLimit = n
}

func (b *Bus[K, E]) topic(kind K) *Topic[E] {
	t, ok := b.topics[kind]
	if !ok {
		t = &Topic[E]{onPanic: b.onPanic}
		b.topics[kind] = t
	}
	return t
}

// Subscribe registers fn for events of the given kind.
func (b *Bus[K, E]) Subscribe(kind K, fn func(E)) Unsubscribe {
	return b.topic(kind).Subscribe(fn)
}

// SubscribeAll registers fn for every event. It runs after the kind's own subscribers.
func (b *Bus[K, E]) SubscribeAll(fn func(E)) Unsubscribe {
	return b.all.Subscribe(fn)
}

// HasSubscribers reports whether any subscriber would receive an event of kind.
func (b *Bus[K, E]) HasSubscribers(kind K) bool {
	if b.all.Len() > 0 {
		return true
	}
	t, ok := b.topics[kind]
	return ok && t.Len() > 0
}

// Publish dispatches ev immediately.
func (b *Bus[K, E]) Publish(ev E) {
	if t, ok := b.topics[b.kindOf(ev)]; ok {
		t.Publish(ev)
	}
	b.all.Publish(ev)
}

// Enqueue defers ev until the next Flush.
func (b *Bus[K, E]) Enqueue(ev E) {
	b.queue = append(b.queue, ev)
}

// Flush dispatches queued events in FIFO order, including events enqueued by
// handlers during the flush, up to the flush limit. Returns the number dispatched.
func (b *Bus[K, E]) Flush() int {
	n := 0
	for len(b.queue) > 0 && n < b.flushLimit {
		ev := b.queue[0]
		var zero E
		b.queue[0] = zero
		b.queue = b.queue[1:]
		b.Publish(ev)
		n++
	}
	if len(b.queue) == 0 {
		b.queue = nil
	}
	return n
}

// Discard drops every queued event without dispatching and returns how many were dropped.
func (b *Bus[K, E]) Discard() int {
	n := len(b.queue)
	b.queue = nil
	return n
}

// Pending returns the number of queued events.
func (b *Bus[K, E]) Pending() int {
	return len(b.queue)
}
