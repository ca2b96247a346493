package sim

import (
	"reflect"
	"testing"
)

func TestTimersFireInOrder(t *testing.T) {
	var tm Timers
	var got []string
	add := func(due float64, name string) {
		tm.Schedule(due, 1, name, func() { got = append(got, name) })
	}
	add(300, "c")
	add(100, "a")
	add(200, "b1")
	add(200, "b2")

	if names := tm.Names(); !reflect.DeepEqual(names, []string{"a", "b1", "b2", "c"}) {
		t.Errorf("queue order = %v", names)
	}
	if due, ok := tm.NextDue(); !ok || due != 100 {
		t.Errorf("NextDue = %v, %v", due, ok)
	}

	if n := tm.Advance(199, 1); n != 1 {
		t.Errorf("expected 1 fired by 199, got %d", n)
	}
	tm.Advance(1000, 1)
	if !reflect.DeepEqual(got, []string{"a", "b1", "b2", "c"}) {
		t.Errorf("fired order = %v", got)
	}
	if tm.Len() != 0 || tm.Fired() != 4 {
		t.Errorf("len=%d fired=%d", tm.Len(), tm.Fired())
	}
}

func TestTimersDropStaleGeneration(t *testing.T) {
	var tm Timers
	ran := false
	tm.Schedule(100, 1, "old", func() { ran = true })

	if n := tm.Advance(100, 2); n != 0 {
		t.Errorf("stale entry must not run, fired %d", n)
	}
	if ran {
		t.Error("stale callback executed")
	}
	if tm.Stale() != 1 || tm.Len() != 0 {
		t.Errorf("stale=%d len=%d", tm.Stale(), tm.Len())
	}
}

func TestTimersNotYetDue(t *testing.T) {
	var tm Timers
	ran := false
	tm.Schedule(500, 3, "later", func() { ran = true })
	tm.Advance(499.9, 3)
	if ran || tm.Len() != 1 {
		t.Error("entry ran early")
	}
	tm.Advance(500, 3)
	if !ran {
		t.Error("entry should run when the clock reaches its due time")
	}
}

func TestTimersNestedSchedule(t *testing.T) {
	var tm Timers
	var got []string
	tm.Schedule(10, 1, "outer", func() {
		got = append(got, "outer")
		tm.Schedule(10, 1, "inner-now", func() { got = append(got, "inner-now") })
		tm.Schedule(50, 1, "inner-later", func() { got = append(got, "inner-later") })
	})

	tm.Advance(20, 1)
	if !reflect.DeepEqual(got, []string{"outer", "inner-now"}) {
		t.Errorf("got %v", got)
	}
	if tm.Len() != 1 {
		t.Errorf("inner-later should stay queued, len=%d", tm.Len())
	}
}
