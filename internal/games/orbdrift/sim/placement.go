package sim

import (
	"github.com/vovakirdan/orbdrift/internal/config"
	"github.com/vovakirdan/orbdrift/internal/core"
)

// Placement reports how overlap avoidance went.
type Placement struct {
	Attempts int  // Repositioning moves made
	Resolved bool // No remaining conflict
}

// VerticalBounds limits where a candidate centre may be moved.
type VerticalBounds struct {
	MinY, MaxY float64
}

// clampCentre keeps a circle of radius r fully inside the bounds.
// When the circle does not fit, it is centred in the bounds.
func (b VerticalBounds) clampCentre(y, r float64) float64 {
	lo, hi := b.MinY+r, b.MaxY-r
	if lo > hi {
		return (b.MinY + b.MaxY) / 2
	}
	return core.ClampF(y, lo, hi)
}

// placementSlack is added to every move so rounding cannot leave the
// candidate a hair inside the separation it was moved to.
const placementSlack = 1e-9

// separation is the minimum centre distance between two circles.
func separation(a, b *Entity, buffer float64) float64 {
	return a.Radius + b.Radius + buffer
}

func firstConflict(candidate *Entity, others []*Entity, buffer float64) *Entity {
	for _, o := range others {
		if o == candidate || o.Removable() {
			continue
		}
		if core.Distance(candidate.X, candidate.Y, o.X, o.Y) < separation(candidate, o, buffer) {
			return o
		}
	}
	return nil
}

// ResolveOverlap moves candidate until no other entity lies closer than
// r1 + r2 + buffer, or the attempt budget runs out.
//
// Each attempt takes the first conflicting entity and moves the candidate
// vertically to the required separation: down when the other is higher
// (smaller y), up otherwise. From attempt cfg.NudgeAfter on the candidate is
// also pushed right by cfg.NudgeX. The result is best effort.
func ResolveOverlap(candidate *Entity, others []*Entity, bounds VerticalBounds, cfg config.OverlapConfig) Placement {
	candidate.Y = bounds.clampCentre(candidate.Y, candidate.Radius)

	attempts := 0
	for {
		conflict := firstConflict(candidate, others, cfg.Buffer)
		if conflict == nil {
			return Placement{Attempts: attempts, Resolved: true}
		}
		if attempts >= cfg.MaxAttempts {
			return Placement{Attempts: attempts, Resolved: false}
		}
		attempts++

		sep := separation(candidate, conflict, cfg.Buffer) + placementSlack
		if conflict.Y < candidate.Y {
			candidate.Y = conflict.Y + sep
		} else {
			candidate.Y = conflict.Y - sep
		}
		candidate.Y = bounds.clampCentre(candidate.Y, candidate.Radius)

		if attempts >= cfg.NudgeAfter {
			candidate.X += cfg.NudgeX
		}
	}
}
