// Package events provides a typed, single-threaded publish/subscribe bus.
//
// Architecture:
//   - Subscribers of a kind are invoked in registration order
//   - Publish dispatches immediately, Enqueue defers until Flush
//   - A panicking subscriber is recovered and reported; the others still run
//   - Not safe for concurrent use; the owner drives it from one goroutine
package events

// Unsubscribe removes a subscription. Calling it more than once is a no-op.
type Unsubscribe func()

// PanicHandler receives the value recovered from a panicking subscriber.
type PanicHandler func(recovered any)

type subscriber[E any] struct {
	fn     func(E)
	active bool
}

// Topic is an ordered subscriber list for a single event type.
// The zero value is ready to use.
type Topic[E any] struct {
	subs    []*subscriber[E]
	onPanic PanicHandler
}

// SetPanicHandler installs h for recovered subscriber panics. nil swallows them.
func (t *Topic[E]) SetPanicHandler(h PanicHandler) {
	t.onPanic = h
}

// Subscribe appends fn to the subscriber list.
// Subscribing during a dispatch does not deliver the event being dispatched.
func (t *Topic[E]) Subscribe(fn func(E)) Unsubscribe {
	s := &subscriber[E]{fn: fn, active: true}
	t.subs = append(t.subs, s)
	return func() {
		if !s.active {
			return
		}
		s.active = false
		kept := make([]*subscriber[E], 0, len(t.subs))
		for _, other := range t.subs {
			if other != s {
				kept = append(kept, other)
			}
		}
		t.subs = kept
	}
}

// Publish delivers ev to every subscriber in registration order.
// A subscriber removed during the dispatch is not called afterwards.
func (t *Topic[E]) Publish(ev E) {
	if len(t.subs) == 0 {
		return
	}
	snapshot := t.subs
	for _, s := range snapshot {
		if s.active {
			t.invoke(s.fn, ev)
		}
	}
}

// Len returns the number of active subscribers.
func (t *Topic[E]) Len() int {
	return len(t.subs)
}

func (t *Topic[E]) invoke(fn func(E), ev E) {
	defer func() {
		if r := recover(); r != nil && t.onPanic != nil {
			t.onPanic(r)
		}
	}()
	fn(ev)
}
