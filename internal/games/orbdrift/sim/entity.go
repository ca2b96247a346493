// Package sim implements the Orb Drift simulation core: the entity store,
// physics, spawner, game state machine and deferred timers, tied together by
// Engine.Update. It has no knowledge of terminals, keys or rendering.
package sim

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/orbdrift/internal/core"
)

// Kind discriminates the entity union.
type Kind int

const (
	KindPlayer Kind = iota
	KindObstaclePrimary
	KindObstacleSecondary
	KindOrb
	kindCount
)

var kindNames = [kindCount]string{
	KindPlayer:            "player",
	KindObstaclePrimary:   "obstacle-primary",
	KindObstacleSecondary: "obstacle-secondary",
	KindOrb:               "orb",
}

func (k Kind) String() string {
	if k.Valid() {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k >= 0 && k < kindCount
}

// IsObstacle reports whether k is a collision-fatal kind.
func (k Kind) IsObstacle() bool {
	return k == KindObstaclePrimary || k == KindObstacleSecondary
}

// Kinds returns every known kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// ID identifies an entity. IDs are never reused within an engine.
type ID uint64

// ErrMalformed marks an entity that fails Validate.
var ErrMalformed = errors.New("sim: malformed entity")

// Entity is the single record type for players, obstacles and orbs.
// Fields that do not apply to a kind stay zero.
type Entity struct {
	ID   ID
	Kind Kind

	// Centre position in world units; y grows downward.
	X, Y float64

	// Player only.
	VX, VY        float64
	Width, Height float64
	Rotation      float64
	Alive         bool

	// Obstacles and orbs.
	Radius float64
	Speed  float64
	Phase  float64 // Orb bob animation, cosmetic

	Passed    bool // Obstacle crossed by the player
	Collected bool // Orb picked up
	Expired   bool // Left the field

	Visual AssetHandle
}

// Bounds returns the visual bounding box.
func (e *Entity) Bounds() core.Box {
	if e.Kind == KindPlayer {
		return core.BoxAround(e.X, e.Y, e.Width/2, e.Height/2)
	}
	return core.BoxAround(e.X, e.Y, e.Radius, e.Radius)
}

// Hitbox returns the collision box, the visual bounds scaled by fraction around the centre.
func (e *Entity) Hitbox(fraction float64) core.Box {
	return e.Bounds().Shrink(fraction)
}

// Removable reports whether the next sweep should drop the entity.
func (e *Entity) Removable() bool {
	return e.Expired || e.Collected
}

// Validate reports whether the entity can be simulated.
func (e *Entity) Validate() error {
	if !e.Kind.Valid() {
		return fmt.Errorf("%w: unknown kind %d", ErrMalformed, int(e.Kind))
	}
	if !core.Finite(e.X, e.Y, e.VX, e.VY, e.Speed, e.Radius, e.Width, e.Height) {
		return fmt.Errorf("%w: non-finite field on %s %d", ErrMalformed, e.Kind, e.ID)
	}
	if e.Kind == KindPlayer {
		if e.Width <= 0 || e.Height <= 0 {
			return fmt.Errorf("%w: player %d has size %gx%g", ErrMalformed, e.ID, e.Width, e.Height)
		}
		return nil
	}
	if e.Radius <= 0 {
		return fmt.Errorf("%w: %s %d has radius %g", ErrMalformed, e.Kind, e.ID, e.Radius)
	}
	return nil
}
