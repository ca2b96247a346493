package sim

import "sort"

type timerEntry struct {
	due  float64
	gen  uint64
	seq  uint64
	name string
	fn   func()
}

// Timers is a queue of deferred callbacks keyed on the engine clock.
// Each entry remembers the generation it was scheduled under; an entry whose
// generation no longer matches when it comes due is dropped without running.
type Timers struct {
	entries []timerEntry
	seq     uint64
	fired   int
	stale   int
}

// Schedule queues fn to run once the clock reaches due.
// Entries with equal due times run in scheduling order.
func (t *Timers) Schedule(due float64, gen uint64, name string, fn func()) {
	t.seq++
	e := timerEntry{due: due, gen: gen, seq: t.seq, name: name, fn: fn}
	i := sort.Search(len(t.entries), func(i int) bool {
		return t.entries[i].due > due
	})
	t.entries = append(t.entries, timerEntry{})
	copy(t.entries[i+1:], t.entries[i:])
	t.entries[i] = e
}

// Advance runs every entry due at or before now whose generation equals gen.
// Entries scheduled by a callback run in the same call if they are already due.
// Returns the number of callbacks run.
func (t *Timers) Advance(now float64, gen uint64) int {
	ran := 0
	for len(t.entries) > 0 && t.entries[0].due <= now {
		e := t.entries[0]
		t.entries[0] = timerEntry{}
		t.entries = t.entries[1:]
		if e.gen != gen {
			t.stale++
			continue
		}
		e.fn()
		t.fired++
		ran++
	}
	return ran
}

// Len returns the number of queued entries, stale ones included.
func (t *Timers) Len() int {
	return len(t.entries)
}

// NextDue returns the due time of the earliest entry.
func (t *Timers) NextDue() (float64, bool) {
	if len(t.entries) == 0 {
		return 0, false
	}
	return t.entries[0].due, true
}

// Names returns the names of queued entries in firing order.
func (t *Timers) Names() []string {
	out := make([]string, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.name
	}
	return out
}

// Fired returns how many callbacks have run.
func (t *Timers) Fired() int {
	return t.fired
}

// Stale returns how many entries were dropped for a generation mismatch.
func (t *Timers) Stale() int {
	return t.stale
}
