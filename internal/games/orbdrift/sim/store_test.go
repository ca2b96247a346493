package sim

import (
	"errors"
	"testing"
)

func kindsOf(list []*Entity) []Kind {
	out := make([]Kind, len(list))
	for i, e := range list {
		out[i] = e.Kind
	}
	return out
}

func TestStoreInsertionOrder(t *testing.T) {
	s := NewStore()
	a := &Entity{Kind: KindObstaclePrimary}
	b := &Entity{Kind: KindOrb}
	c := &Entity{Kind: KindObstacleSecondary}
	d := &Entity{Kind: KindObstaclePrimary}
	for _, e := range []*Entity{a, b, c, d} {
		if _, err := s.Add(e); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	all := s.All()
	if len(all) != 4 || all[0] != a || all[1] != b || all[2] != c || all[3] != d {
		t.Errorf("All() not in insertion order: %v", kindsOf(all))
	}
	prim := s.ByKind(KindObstaclePrimary)
	if len(prim) != 2 || prim[0] != a || prim[1] != d {
		t.Errorf("ByKind(primary) wrong: %v", prim)
	}
	obs := s.Obstacles()
	if len(obs) != 3 || obs[0] != a || obs[1] != c || obs[2] != d {
		t.Errorf("Obstacles() wrong: %v", kindsOf(obs))
	}
	if a.ID == 0 || a.ID >= b.ID || b.ID >= c.ID {
		t.Errorf("IDs should increase: %d %d %d", a.ID, b.ID, c.ID)
	}
}

func TestStoreSinglePlayer(t *testing.T) {
	s := NewStore()
	p := &Entity{Kind: KindPlayer}
	if _, err := s.Add(p); err != nil {
		t.Fatalf("first player: %v", err)
	}
	if _, err := s.Add(&Entity{Kind: KindPlayer}); !errors.Is(err, ErrPlayerExists) {
		t.Errorf("expected ErrPlayerExists, got %v", err)
	}
	if s.Player() != p {
		t.Error("Player() should return the first player")
	}
	if _, err := s.Add(nil); !errors.Is(err, ErrNilEntity) {
		t.Errorf("expected ErrNilEntity, got %v", err)
	}
}

func TestStoreClearKeepsPlayer(t *testing.T) {
	s := NewStore()
	p := &Entity{Kind: KindPlayer}
	s.Add(&Entity{Kind: KindOrb})
	s.Add(p)
	s.Add(&Entity{Kind: KindObstaclePrimary})

	removed := s.Clear()
	if len(removed) != 2 {
		t.Errorf("expected 2 removed, got %d", len(removed))
	}
	if s.Len() != 1 || s.Player() != p {
		t.Errorf("player should survive Clear, len=%d", s.Len())
	}

	removed = s.ClearAll()
	if len(removed) != 1 || removed[0] != p {
		t.Errorf("ClearAll should remove the player, got %v", removed)
	}
	if s.Player() != nil || s.Len() != 0 {
		t.Error("store should be empty after ClearAll")
	}
	if _, err := s.Add(&Entity{Kind: KindPlayer}); err != nil {
		t.Errorf("a new player should be accepted after ClearAll: %v", err)
	}
}

func TestStoreSweep(t *testing.T) {
	s := NewStore()
	keep := &Entity{Kind: KindObstaclePrimary}
	gone := &Entity{Kind: KindObstaclePrimary, Expired: true}
	taken := &Entity{Kind: KindOrb, Collected: true}
	s.Add(keep)
	s.Add(gone)
	s.Add(taken)

	removed := s.Sweep()
	if len(removed) != 2 {
		t.Fatalf("expected 2 swept, got %d", len(removed))
	}
	if s.Len() != 1 || s.All()[0] != keep {
		t.Error("only the live obstacle should remain")
	}
	if _, ok := s.Get(gone.ID); ok {
		t.Error("swept entity should not be found by ID")
	}
}

func TestStoreRemove(t *testing.T) {
	s := NewStore()
	a := &Entity{Kind: KindOrb}
	b := &Entity{Kind: KindOrb}
	s.Add(a)
	s.Add(b)

	if !s.Remove(a.ID) {
		t.Fatal("Remove should report success")
	}
	if s.Remove(a.ID) {
		t.Error("second Remove should report false")
	}
	if got, ok := s.Get(b.ID); !ok || got != b {
		t.Error("remaining entity should still be reachable")
	}
	if s.Len() != 1 {
		t.Errorf("expected 1 entity, got %d", s.Len())
	}
}
