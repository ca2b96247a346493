package sim

import (
	"math"

	"github.com/charmbracelet/log"
	"github.com/vovakirdan/orbdrift/internal/config"
	"github.com/vovakirdan/orbdrift/internal/core"
)

// orbBobRate is the cosmetic bob phase advance per reference frame.
const orbBobRate = 0.08

type contactResult int

const (
	contactNone contactResult = iota
	contactCollected
	contactFatal
)

// kindBehavior is one row of the dispatch table.
type kindBehavior struct {
	integrate func(p *Physics, e *Entity, scale float64)
	contact   func(p *Physics, player, e *Entity, debug bool) contactResult
}

var behaviors = [kindCount]kindBehavior{
	KindPlayer:            {integrate: integratePlayer},
	KindObstaclePrimary:   {integrate: integrateDrift, contact: contactObstacle},
	KindObstacleSecondary: {integrate: integrateDrift, contact: contactObstacle},
	KindOrb:               {integrate: integrateOrb, contact: contactOrb},
}

// StepResult summarises one physics step.
type StepResult struct {
	Removed   []*Entity // Swept at the start of the step
	Passed    int
	Collected int
	Died      bool
	Skipped   int // Malformed entities ignored this step
}

// Physics advances entities and detects collisions.
// It reports outcomes only through emitted events and never touches GameState.
type Physics struct {
	phys   config.PhysicsConfig
	player config.PlayerConfig
	field  config.FieldConfig
	emit   func(Event)
	logger *log.Logger
	warned map[ID]struct{}
}

// NewPhysics creates a physics engine. emit receives every semantic event.
func NewPhysics(cfg config.Config, emit func(Event), logger *log.Logger) *Physics {
	return &Physics{
		phys:   cfg.Physics,
		player: cfg.Player,
		field:  cfg.Field,
		emit:   emit,
		logger: logger,
		warned: make(map[ID]struct{}),
	}
}

// ClampDelta bounds a frame delta to [0, max_delta_ms]. NaN becomes 0.
func (p *Physics) ClampDelta(deltaMS float64) float64 {
	if math.IsNaN(deltaMS) || deltaMS < 0 {
		return 0
	}
	return math.Min(deltaMS, p.phys.MaxDeltaMS)
}

// Scale converts a delta into reference frames.
func (p *Physics) Scale(deltaMS float64) float64 {
	return deltaMS / p.phys.ReferenceFrameMS
}

// Forget drops the malformed-entity warning memory, used on round teardown.
func (p *Physics) Forget() {
	clear(p.warned)
}

// Step sweeps removable entities, integrates the rest, resolves contacts and
// then marks passes. A tick the player does not survive scores no passes.
// deltaMS must already be clamped.
func (p *Physics) Step(store *Store, deltaMS float64, debug bool) StepResult {
	res := StepResult{Removed: store.Sweep()}

	player := store.Player()
	if player == nil || !player.Alive {
		return res
	}
	if err := player.Validate(); err != nil {
		p.skip(player, err)
		res.Skipped++
		return res
	}

	scale := p.Scale(deltaMS)
	behaviors[KindPlayer].integrate(p, player, scale)
	if !player.Alive {
		res.Died = true
	}

	all := store.All()
	valid := make([]bool, len(all))
	var passing []*Entity
	for i, e := range all {
		if e == player {
			continue
		}
		if err := e.Validate(); err != nil {
			p.skip(e, err)
			res.Skipped++
			continue
		}
		valid[i] = true
		behaviors[e.Kind].integrate(p, e, scale)

		if e.Kind.IsObstacle() && !e.Passed && e.X+e.Radius < player.X {
			passing = append(passing, e)
		}
		if e.X+e.Radius < 0 {
			e.Expired = true
		}
	}

	if !player.Alive {
		return res
	}

	hitbox := player.Hitbox(p.player.HitboxFraction)
	for i, e := range all {
		if !valid[i] || e.Removable() {
			continue
		}
		if !hitbox.Intersects(e.Bounds()) {
			continue
		}
		switch behaviors[e.Kind].contact(p, player, e, debug) {
		case contactCollected:
			res.Collected++
		case contactFatal:
			res.Died = true
			return res
		}
	}

	for _, e := range passing {
		e.Passed = true
		res.Passed++
		p.emit(Event{Kind: EventObstaclePassed, EntityID: e.ID, EntityKind: e.Kind, X: e.X, Y: e.Y})
	}
	return res
}

func (p *Physics) skip(e *Entity, err error) {
	if _, seen := p.warned[e.ID]; seen {
		return
	}
	p.warned[e.ID] = struct{}{}
	p.logger.Warn("skipping malformed entity", "id", e.ID, "kind", e.Kind, "err", err)
}

func integratePlayer(p *Physics, e *Entity, scale float64) {
	maxV := p.phys.MaxVelocity

	e.VY += p.phys.Gravity * scale
	e.VY = core.ClampF(e.VY, -maxV, maxV)
	e.Y += e.VY * scale

	if e.VX != 0 {
		e.X += e.VX * scale
		e.VX *= math.Pow(p.player.HorizontalDamping, scale)
		if math.Abs(e.VX) < 1e-3 {
			e.VX = 0
		}
	}
	e.X = core.ClampF(e.X, p.player.MinX, p.player.MaxX)

	alpha := 1 - math.Pow(1-p.phys.RotationSmoothing, scale)
	e.Rotation += (e.VY/maxV - e.Rotation) * alpha

	switch {
	case e.Y < 0:
		e.Y = 0
		e.VY = 0
	case e.Y > p.field.Height:
		e.Y = p.field.Height
		e.VY = 0
		e.Alive = false
		p.emit(Event{Kind: EventPlayerDied, EntityID: e.ID, EntityKind: e.Kind, Cause: CauseGround, X: e.X, Y: e.Y})
	}
}

func integrateDrift(_ *Physics, e *Entity, scale float64) {
	e.X -= e.Speed * scale
}

func integrateOrb(_ *Physics, e *Entity, scale float64) {
	e.X -= e.Speed * scale
	e.Phase = math.Mod(e.Phase+orbBobRate*scale, 2*math.Pi)
}

func contactObstacle(p *Physics, player, e *Entity, debug bool) contactResult {
	if debug {
		p.logger.Debug("obstacle contact ignored in debug mode", "id", e.ID, "kind", e.Kind)
		return contactNone
	}
	player.Alive = false
	p.emit(Event{Kind: EventPlayerDied, EntityID: e.ID, EntityKind: e.Kind, Cause: CauseCollision, X: player.X, Y: player.Y})
	return contactFatal
}

func contactOrb(p *Physics, _ *Entity, e *Entity, _ bool) contactResult {
	if e.Collected {
		return contactNone
	}
	e.Collected = true
	p.emit(Event{Kind: EventOrbCollected, EntityID: e.ID, EntityKind: e.Kind, X: e.X, Y: e.Y})
	return contactCollected
}
