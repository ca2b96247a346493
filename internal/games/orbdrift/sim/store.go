package sim

import "errors"

var (
	// ErrPlayerExists is returned when a second player is added.
	ErrPlayerExists = errors.New("sim: player already exists")
	// ErrNilEntity is returned when Add receives nil.
	ErrNilEntity = errors.New("sim: nil entity")
)

// Store owns the live entities. Iteration follows insertion order,
// which is the tie-break for every per-tick pass.
type Store struct {
	nextID ID
	order  []*Entity
	byID   map[ID]*Entity
	player *Entity
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		byID: make(map[ID]*Entity),
	}
}

// Add assigns an ID to e and stores it.
func (s *Store) Add(e *Entity) (ID, error) {
	if e == nil {
		return 0, ErrNilEntity
	}
	if e.Kind == KindPlayer && s.player != nil {
		return 0, ErrPlayerExists
	}
	s.nextID++
	e.ID = s.nextID
	s.order = append(s.order, e)
	s.byID[e.ID] = e
	if e.Kind == KindPlayer {
		s.player = e
	}
	return e.ID, nil
}

// Remove deletes the entity with the given ID. Returns false if it was not stored.
func (s *Store) Remove(id ID) bool {
	e, ok := s.byID[id]
	if !ok {
		return false
	}
	s.filter(func(other *Entity) bool { return other != e })
	return true
}

// Get returns the entity with the given ID.
func (s *Store) Get(id ID) (*Entity, bool) {
	e, ok := s.byID[id]
	return e, ok
}

// Player returns the live player, or nil.
func (s *Store) Player() *Entity {
	return s.player
}

// All returns every entity in insertion order. The slice is a copy; the entities are not.
func (s *Store) All() []*Entity {
	out := make([]*Entity, len(s.order))
	copy(out, s.order)
	return out
}

// ByKind returns the entities of one kind in insertion order.
func (s *Store) ByKind(kind Kind) []*Entity {
	var out []*Entity
	for _, e := range s.order {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// Obstacles returns primary and secondary obstacles in insertion order.
func (s *Store) Obstacles() []*Entity {
	var out []*Entity
	for _, e := range s.order {
		if e.Kind.IsObstacle() {
			out = append(out, e)
		}
	}
	return out
}

// Len returns the number of stored entities.
func (s *Store) Len() int {
	return len(s.order)
}

// Clear removes obstacles and orbs and keeps the player. Returns the removed entities.
func (s *Store) Clear() []*Entity {
	return s.filter(func(e *Entity) bool { return e.Kind == KindPlayer })
}

// ClearAll removes every entity, player included. Returns the removed entities.
func (s *Store) ClearAll() []*Entity {
	return s.filter(func(*Entity) bool { return false })
}

// Sweep removes expired and collected entities. Returns the removed entities.
func (s *Store) Sweep() []*Entity {
	return s.filter(func(e *Entity) bool { return !e.Removable() })
}

// filter keeps the entities for which keep returns true and returns the rest.
func (s *Store) filter(keep func(*Entity) bool) []*Entity {
	var removed []*Entity
	kept := s.order[:0]
	for _, e := range s.order {
		if keep(e) {
			kept = append(kept, e)
			continue
		}
		removed = append(removed, e)
		delete(s.byID, e.ID)
		if e == s.player {
			s.player = nil
		}
	}
	for i := len(kept); i < len(s.order); i++ {
		s.order[i] = nil
	}
	s.order = kept
	return removed
}
