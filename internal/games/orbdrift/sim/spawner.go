package sim

import (
	"math"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/vovakirdan/orbdrift/internal/config"
	"github.com/vovakirdan/orbdrift/internal/core"
)

// SpawnPlan is what one spawner step decided.
type SpawnPlan struct {
	Obstacles  []*Entity // New obstacles, already placed, not yet stored
	Orb        bool      // An orb should follow after OrbDelayMS
	OrbDelayMS float64
	Unresolved int // Obstacles whose overlap avoidance ran out of attempts
}

// Spawner decides when and where obstacles and orbs appear.
type Spawner struct {
	cfg    config.SpawnerConfig
	field  config.FieldConfig
	rng    *rand.Rand
	logger *log.Logger

	lastObstacleTime float64
	warmupUntil      float64
	warm             bool // First obstacle of the phase has spawned
}

// NewSpawner creates a spawner with its own seeded RNG.
func NewSpawner(cfg config.Config, seed int64, logger *log.Logger) *Spawner {
	s := &Spawner{
		cfg:    cfg.Spawner,
		field:  cfg.Field,
		rng:    rand.New(rand.NewSource(seed)),
		logger: logger,
	}
	s.Reset(0)
	return s
}

// Reset restarts the schedule at elapsed; the next obstacle waits for the warm-up delay.
func (s *Spawner) Reset(elapsed float64) {
	s.lastObstacleTime = elapsed
	s.warmupUntil = elapsed + s.cfg.WarmupMS
	s.warm = false
}

// LastObstacleTime returns the elapsed time of the most recent obstacle spawn.
func (s *Spawner) LastObstacleTime() float64 {
	return s.lastObstacleTime
}

// Due reports whether an obstacle should spawn at elapsed.
func (s *Spawner) Due(elapsed float64, lvl config.LevelConfig) bool {
	if !s.warm {
		return elapsed >= s.warmupUntil
	}
	return elapsed-s.lastObstacleTime > lvl.SpawnIntervalMS
}

// Step spawns obstacles when due. Live obstacles in store are avoided; the
// returned entities are not added to it.
func (s *Spawner) Step(store *Store, level int, lvl config.LevelConfig, elapsed float64) SpawnPlan {
	var plan SpawnPlan
	if !s.Due(elapsed, lvl) {
		return plan
	}
	s.lastObstacleTime = elapsed
	s.warm = true

	others := store.Obstacles()
	bounds := s.bounds()

	primary := s.newObstacle(KindObstaclePrimary, level, lvl.Speed.Primary, s.field.Width)
	if p := ResolveOverlap(primary, others, bounds, s.cfg.Overlap); !p.Resolved {
		plan.Unresolved++
		s.logger.Debug("obstacle placement unresolved", "attempts", p.Attempts, "y", primary.Y)
	}
	plan.Obstacles = append(plan.Obstacles, primary)
	others = append(others, primary)

	if s.rng.Float64() < s.SecondChance(level) {
		secondary := s.newObstacle(KindObstacleSecondary, level, lvl.Speed.Secondary, s.field.Width+s.cfg.Second.OffsetX)
		if p := ResolveOverlap(secondary, others, bounds, s.cfg.Overlap); !p.Resolved {
			plan.Unresolved++
			s.logger.Debug("secondary placement unresolved", "attempts", p.Attempts, "y", secondary.Y)
		}
		plan.Obstacles = append(plan.Obstacles, secondary)
	}

	if s.rng.Float64() < s.cfg.Orb.Chance {
		plan.Orb = true
		plan.OrbDelayMS = s.cfg.Orb.StaggerFraction * lvl.SpawnIntervalMS
	}
	return plan
}

// PlaceOrb creates an orb just beyond the leading edge, clear of live obstacles where possible.
func (s *Spawner) PlaceOrb(store *Store, lvl config.LevelConfig) *Entity {
	r := s.cfg.Orb.Radius
	bounds := s.bounds()
	orb := &Entity{
		Kind:   KindOrb,
		X:      s.field.Width + r,
		Y:      s.uniform(bounds.MinY+r, bounds.MaxY-r),
		Radius: r,
		Speed:  s.cfg.Speed.Orb * lvl.Speed.Orb,
		Phase:  s.rng.Float64() * 2 * math.Pi,
	}
	ResolveOverlap(orb, store.Obstacles(), bounds, s.cfg.Overlap)
	return orb
}

// SecondChance returns the probability of a secondary obstacle at level.
func (s *Spawner) SecondChance(level int) float64 {
	sc := s.cfg.Second
	if level < sc.MinLevel {
		return 0
	}
	return math.Min(sc.MaxChance, float64(level-sc.MinLevel+1)*sc.ChancePerLevel)
}

// Radius returns a level-scaled obstacle radius with jitter, within [min, max].
func (s *Spawner) Radius(level int) float64 {
	rc := s.cfg.Radius
	r := rc.Base + float64(level)*rc.PerLevel
	if rc.Jitter > 0 {
		r += (s.rng.Float64()*2 - 1) * rc.Jitter
	}
	return core.ClampF(r, rc.Min, rc.Max)
}

// SafeZone picks a random navigable band and returns its top and bottom.
func (s *Spawner) SafeZone() (top, bottom float64) {
	h := s.field.Height * s.cfg.SafeZoneFraction
	margin := s.cfg.EdgeMargin
	centre := s.uniform(margin+h/2, s.field.Height-margin-h/2)
	return centre - h/2, centre + h/2
}

func (s *Spawner) newObstacle(kind Kind, level int, multiplier, leadX float64) *Entity {
	r := s.Radius(level)
	top, bottom := s.SafeZone()
	margin := s.cfg.EdgeMargin

	// Above the band: [margin+r, top-r]; below: [bottom+r, H-margin-r].
	aboveLo, aboveHi := margin+r, top-r
	belowLo, belowHi := bottom+r, s.field.Height-margin-r
	above := s.rng.Intn(2) == 0
	if above && aboveLo > aboveHi {
		above = false
	} else if !above && belowLo > belowHi {
		above = true
	}

	var y float64
	if above {
		y = s.uniform(aboveLo, aboveHi)
	} else {
		y = s.uniform(belowLo, belowHi)
	}

	return &Entity{
		Kind:   kind,
		X:      leadX + r,
		Y:      y,
		Radius: r,
		Speed:  s.cfg.Speed.Obstacle * multiplier,
	}
}

func (s *Spawner) bounds() VerticalBounds {
	return VerticalBounds{MinY: s.cfg.EdgeMargin, MaxY: s.field.Height - s.cfg.EdgeMargin}
}

// uniform returns a value in [lo, hi]; an empty range collapses to its midpoint.
func (s *Spawner) uniform(lo, hi float64) float64 {
	if hi <= lo {
		return (lo + hi) / 2
	}
	return lo + s.rng.Float64()*(hi-lo)
}
