package config

import (
	"errors"
	"fmt"
	"math"
)

// FieldError describes one invalid configuration value.
type FieldError struct {
	Path   string
	Reason string
}

func (e *FieldError) Error() string {
	return e.Path + ": " + e.Reason
}

type checker struct {
	errs []error
}

func (c *checker) fail(path, format string, args ...any) {
	c.errs = append(c.errs, &FieldError{Path: path, Reason: fmt.Sprintf(format, args...)})
}

func (c *checker) finite(path string, v float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		c.fail(path, "must be finite")
		return false
	}
	return true
}

func (c *checker) positive(path string, v float64) {
	if c.finite(path, v) && v <= 0 {
		c.fail(path, "must be > 0, got %g", v)
	}
}

func (c *checker) nonNegative(path string, v float64) {
	if c.finite(path, v) && v < 0 {
		c.fail(path, "must be >= 0, got %g", v)
	}
}

func (c *checker) within(path string, v, lo, hi float64) {
	if c.finite(path, v) && (v < lo || v > hi) {
		c.fail(path, "must be within [%g, %g], got %g", lo, hi, v)
	}
}

// Validate checks cfg and returns every problem found, joined.
// Individual problems can be inspected with errors.As and *FieldError.
func Validate(cfg Config) error {
	var c checker

	c.positive("field.width", cfg.Field.Width)
	c.positive("field.height", cfg.Field.Height)

	p := cfg.Physics
	c.finite("physics.gravity", p.Gravity)
	c.finite("physics.flap_impulse", p.FlapImpulse)
	c.nonNegative("physics.nudge_impulse", p.NudgeImpulse)
	c.positive("physics.max_velocity", p.MaxVelocity)
	c.positive("physics.reference_frame_ms", p.ReferenceFrameMS)
	c.positive("physics.max_delta_ms", p.MaxDeltaMS)
	c.within("physics.rotation_smoothing", p.RotationSmoothing, 0, 1)
	if p.RotationSmoothing == 0 {
		c.fail("physics.rotation_smoothing", "must be > 0")
	}

	pl := cfg.Player
	c.positive("player.width", pl.Width)
	c.positive("player.height", pl.Height)
	c.within("player.hitbox_fraction", pl.HitboxFraction, 0.05, 1)
	c.nonNegative("player.horizontal_speed", pl.HorizontalSpeed)
	c.within("player.horizontal_damping", pl.HorizontalDamping, 0, 1)
	if c.finite("player.min_x", pl.MinX) && c.finite("player.max_x", pl.MaxX) && pl.MinX > pl.MaxX {
		c.fail("player.min_x", "must not exceed player.max_x (%g > %g)", pl.MinX, pl.MaxX)
	}
	if cfg.Field.Width > 0 {
		c.within("player.start_x", pl.StartX, 0, cfg.Field.Width)
	}
	if cfg.Field.Height > 0 {
		c.within("player.start_y", pl.StartY, 0, cfg.Field.Height)
	}

	s := cfg.Spawner
	c.nonNegative("spawner.warmup_ms", s.WarmupMS)
	c.within("spawner.safe_zone_fraction", s.SafeZoneFraction, 0, 0.9)
	c.nonNegative("spawner.edge_margin", s.EdgeMargin)
	c.finite("spawner.radius.base", s.Radius.Base)
	c.finite("spawner.radius.per_level", s.Radius.PerLevel)
	c.nonNegative("spawner.radius.jitter", s.Radius.Jitter)
	c.positive("spawner.radius.min", s.Radius.Min)
	c.positive("spawner.radius.max", s.Radius.Max)
	if s.Radius.Min > s.Radius.Max {
		c.fail("spawner.radius.min", "must not exceed spawner.radius.max (%g > %g)", s.Radius.Min, s.Radius.Max)
	}
	if cfg.Field.Height > 0 && s.Radius.Max*2 >= cfg.Field.Height {
		c.fail("spawner.radius.max", "diameter must be smaller than field.height")
	}
	c.nonNegative("spawner.overlap.buffer", s.Overlap.Buffer)
	if s.Overlap.MaxAttempts < 1 {
		c.fail("spawner.overlap.max_attempts", "must be >= 1, got %d", s.Overlap.MaxAttempts)
	}
	if s.Overlap.NudgeAfter < 0 {
		c.fail("spawner.overlap.nudge_after", "must be >= 0, got %d", s.Overlap.NudgeAfter)
	}
	c.nonNegative("spawner.overlap.nudge_x", s.Overlap.NudgeX)
	if s.Second.MinLevel < 1 {
		c.fail("spawner.second.min_level", "must be >= 1, got %d", s.Second.MinLevel)
	}
	c.within("spawner.second.chance_per_level", s.Second.ChancePerLevel, 0, 1)
	c.within("spawner.second.max_chance", s.Second.MaxChance, 0, 1)
	c.nonNegative("spawner.second.offset_x", s.Second.OffsetX)
	c.within("spawner.orb.chance", s.Orb.Chance, 0, 1)
	c.positive("spawner.orb.radius", s.Orb.Radius)
	c.within("spawner.orb.stagger_fraction", s.Orb.StaggerFraction, 0, 1)
	c.positive("spawner.speed.obstacle", s.Speed.Obstacle)
	c.positive("spawner.speed.orb", s.Speed.Orb)

	if cfg.Score.PerObstacle < 0 {
		c.fail("score.per_obstacle", "must be >= 0, got %d", cfg.Score.PerObstacle)
	}
	if cfg.Score.PerOrb < 0 {
		c.fail("score.per_orb", "must be >= 0, got %d", cfg.Score.PerOrb)
	}
	c.nonNegative("timing.level_complete_delay_ms", cfg.Timing.LevelCompleteDelayMS)

	if len(cfg.Levels) == 0 {
		c.fail("levels", "at least one level is required")
	}
	for i, lvl := range cfg.Levels {
		prefix := fmt.Sprintf("levels[%d]", i)
		if lvl.Name == "" {
			c.fail(prefix+".name", "must not be empty")
		}
		if lvl.OrbsRequired < 1 {
			c.fail(prefix+".orbs_required", "must be >= 1, got %d", lvl.OrbsRequired)
		}
		c.positive(prefix+".time_limit_ms", lvl.TimeLimitMS)
		c.positive(prefix+".spawn_interval_ms", lvl.SpawnIntervalMS)
		c.positive(prefix+".speed.primary", lvl.Speed.Primary)
		c.positive(prefix+".speed.secondary", lvl.Speed.Secondary)
		c.positive(prefix+".speed.orb", lvl.Speed.Orb)
	}

	if len(c.errs) == 0 {
		return nil
	}
	return fmt.Errorf("config: invalid configuration: %w", errors.Join(c.errs...))
}
