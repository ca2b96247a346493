package storage

import (
	"testing"
	"time"
)

func openTestSession(t *testing.T) *Session {
	t.Helper()
	s, err := OpenSession()
	if err != nil {
		t.Fatalf("OpenSession() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSessionStartsEmpty(t *testing.T) {
	s := openTestSession(t)

	n, err := s.Count()
	if err != nil {
		t.Fatalf("Count() failed: %v", err)
	}
	if n != 0 {
		t.Errorf("Expected empty session, got %d rounds", n)
	}
	if _, ok, err := s.Best(); err != nil || ok {
		t.Errorf("Best() on empty session = ok %v, err %v", ok, err)
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	a := openTestSession(t)
	b := openTestSession(t)

	if _, err := a.SaveRound(Round{Score: 3, Level: 1, LevelName: "Outer Rim", Outcome: "collision"}); err != nil {
		t.Fatalf("SaveRound() failed: %v", err)
	}
	if n, _ := b.Count(); n != 0 {
		t.Errorf("sessions should not share history, got %d", n)
	}
}

func TestSaveRoundFillsIDAndTime(t *testing.T) {
	s := openTestSession(t)
	fixed := time.UnixMilli(1_700_000_000_000)
	s.now = func() time.Time { return fixed }

	id, err := s.SaveRound(Round{
		Seed: 42, Score: 12, Level: 2, LevelName: "Asteroid Belt",
		Orbs: 6, Passed: 7, Outcome: "time-expired", Duration: 61500 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("SaveRound() failed: %v", err)
	}
	if len(id) != 36 {
		t.Errorf("Expected a UUID, got %q", id)
	}

	rounds, err := s.Recent(1)
	if err != nil || len(rounds) != 1 {
		t.Fatalf("Recent() = %v, %v", rounds, err)
	}
	r := rounds[0]
	if r.ID != id || r.Seed != 42 || r.Score != 12 || r.LevelName != "Asteroid Belt" || r.Orbs != 6 || r.Passed != 7 {
		t.Errorf("Round did not round-trip: %+v", r)
	}
	if r.Duration != 61500*time.Millisecond {
		t.Errorf("Expected duration 61.5s, got %v", r.Duration)
	}
	if !r.CreatedAt.Equal(fixed) {
		t.Errorf("Expected CreatedAt %v, got %v", fixed, r.CreatedAt)
	}
}

func TestSaveRoundDuplicateID(t *testing.T) {
	s := openTestSession(t)
	r := Round{ID: "fixed", Outcome: "collision", LevelName: "Outer Rim", Level: 1}
	if _, err := s.SaveRound(r); err != nil {
		t.Fatalf("SaveRound() failed: %v", err)
	}
	if _, err := s.SaveRound(r); err == nil {
		t.Error("Expected error for duplicate round ID")
	}
}

func TestTopRoundsOrderAndLimit(t *testing.T) {
	s := openTestSession(t)
	base := time.UnixMilli(1_000_000)

	for i, score := range []int{100, 500, 300, 500, 200} {
		_, err := s.SaveRound(Round{
			ID: string(rune('a' + i)), Score: score, Level: 1, LevelName: "Outer Rim",
			Outcome: "collision", CreatedAt: base.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("SaveRound() failed: %v", err)
		}
	}

	top, err := s.TopRounds(3)
	if err != nil {
		t.Fatalf("TopRounds() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 rounds with limit, got %d", len(top))
	}
	// Equal scores keep the earlier round first.
	if top[0].ID != "b" || top[1].ID != "d" || top[2].Score != 300 {
		t.Errorf("Rounds not in expected order: %+v", top)
	}

	best, ok, err := s.Best()
	if err != nil || !ok || best.ID != "b" {
		t.Errorf("Best() = %+v, %v, %v", best, ok, err)
	}

	recent, err := s.Recent(2)
	if err != nil {
		t.Fatalf("Recent() failed: %v", err)
	}
	if len(recent) != 2 || recent[0].ID != "e" || recent[1].ID != "d" {
		t.Errorf("Recent() not newest first: %+v", recent)
	}
}

func TestSessionStatsAndClear(t *testing.T) {
	s := openTestSession(t)

	st, err := s.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if st != (Stats{}) {
		t.Errorf("Expected zero stats, got %+v", st)
	}

	s.SaveRound(Round{Score: 10, Orbs: 4, Outcome: "collision", LevelName: "Outer Rim", Level: 1, Duration: 20 * time.Second})
	s.SaveRound(Round{Score: 30, Orbs: 9, Outcome: VictoryOutcome, LevelName: "Event Horizon", Level: 5, Duration: 90 * time.Second})

	st, err = s.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if st.Rounds != 2 || st.BestScore != 30 || st.AvgScore != 20 || st.TotalOrbs != 13 || st.Victories != 1 {
		t.Errorf("Unexpected stats %+v", st)
	}
	if st.LongestRun != 90*time.Second {
		t.Errorf("Expected longest run 90s, got %v", st.LongestRun)
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}
	if n, _ := s.Count(); n != 0 {
		t.Errorf("Expected 0 rounds after clear, got %d", n)
	}
}
