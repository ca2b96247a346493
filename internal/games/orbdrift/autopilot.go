package orbdrift

import (
	"math"

	"github.com/vovakirdan/orbdrift/internal/config"
	"github.com/vovakirdan/orbdrift/internal/core"
	"github.com/vovakirdan/orbdrift/internal/games/orbdrift/sim"
)

// Autopilot is a deterministic controller. It steers toward the nearest
// orb ahead and dodges obstacles by flapping whenever its predicted height
// falls below the target.
type Autopilot struct {
	physics config.PhysicsConfig
	player  config.PlayerConfig

	// Lookahead is the horizontal distance in world units the pilot reacts to.
	Lookahead float64
	// Horizon is the number of reference frames used for height prediction.
	Horizon float64
}

// NewAutopilot creates a pilot for cfg.
func NewAutopilot(cfg config.Config) *Autopilot {
	return &Autopilot{
		physics:   cfg.Physics,
		player:    cfg.Player,
		Lookahead: cfg.Field.Width / 2,
		Horizon:   6,
	}
}

// Decide returns the input for the next frame.
func (a *Autopilot) Decide(v View) core.InputFrame {
	in := core.NewInputFrame()
	switch v.State.Status {
	case sim.StatusIdle, sim.StatusGameOver:
		in.Set(core.ActionRequestStart)
		return in
	case sim.StatusLevelComplete:
		return in
	}
	if !v.HasPlayer || !v.Player.Alive {
		return in
	}

	target := a.target(v)
	p := v.Player
	k := a.Horizon
	predicted := p.Y + p.VY*k + 0.5*a.physics.Gravity*k*k
	if predicted > target && p.VY >= 0 {
		in.Set(core.ActionFlap)
	}

	// Drift back toward the start column.
	switch dx := p.X - a.player.StartX; {
	case dx > a.player.HorizontalSpeed*4:
		in.Set(core.ActionMoveLeft)
	case dx < -a.player.HorizontalSpeed*4:
		in.Set(core.ActionMoveRight)
	}
	return in
}

// target picks the height to hold: the nearest orb ahead if it is reachable
// without crossing an obstacle, otherwise the widest free gap around the
// nearest obstacle, otherwise mid-field.
func (a *Autopilot) target(v View) float64 {
	p := v.Player
	mid := v.Field.Height / 2

	var threat, orb *sim.Entity
	for i := range v.Entities {
		e := &v.Entities[i]
		if e.Kind == sim.KindPlayer || e.Removable() {
			continue
		}
		ahead := e.X + e.Radius - (p.X - p.Width/2)
		if ahead < 0 || ahead > a.Lookahead {
			continue
		}
		switch {
		case e.Kind.IsObstacle():
			if threat == nil || e.X < threat.X {
				threat = e
			}
		case e.Kind == sim.KindOrb:
			if orb == nil || e.X < orb.X {
				orb = e
			}
		}
	}

	if threat == nil {
		if orb != nil {
			return orb.Y
		}
		return mid
	}

	clearance := threat.Radius + p.Height/2 + 8
	above := threat.Y - clearance
	below := threat.Y + clearance
	if orb != nil && (orb.Y < above || orb.Y > below) && orb.X < threat.X {
		return orb.Y
	}

	spaceAbove := threat.Y - threat.Radius
	spaceBelow := v.Field.Height - (threat.Y + threat.Radius)
	if spaceAbove > spaceBelow {
		return math.Max(above, p.Height)
	}
	return math.Min(below, v.Field.Height-p.Height)
}

// RunRounds plays rounds back to back with the pilot at a fixed step.
// A round that has not finished after maxTicks frames is abandoned.
func RunRounds(g *Game, pilot *Autopilot, rounds, maxTicks int, deltaMS float64) []RoundSummary {
	var out []RoundSummary
	unsub := g.OnRoundEnd(func(s RoundSummary) { out = append(out, s) })
	defer unsub()

	for r := 0; r < rounds; r++ {
		start := core.NewInputFrame()
		start.Set(core.ActionRequestStart)
		g.Step(start, 0)

		for t := 0; t < maxTicks; t++ {
			st := g.Step(pilot.Decide(g.View()), deltaMS)
			if st.Status == sim.StatusGameOver {
				break
			}
		}
		if g.State().Status != sim.StatusGameOver {
			g.Abandon()
		}
	}
	return out
}
