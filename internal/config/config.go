// Package config provides YAML-based game configuration loading, validation,
// environment overrides and difficulty presets.
package config

// Config contains all tuning for an Orb Drift session.
// Distances are world units, speeds are world units per reference frame,
// times are milliseconds.
type Config struct {
	Field   FieldConfig   `yaml:"field"`
	Physics PhysicsConfig `yaml:"physics"`
	Player  PlayerConfig  `yaml:"player"`
	Spawner SpawnerConfig `yaml:"spawner"`
	Score   ScoreConfig   `yaml:"score"`
	Timing  TimingConfig  `yaml:"timing"`
	Levels  []LevelConfig `yaml:"levels"`
}

// FieldConfig defines the playfield size. The renderer scales it to the terminal.
type FieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PhysicsConfig defines integration parameters.
type PhysicsConfig struct {
	Gravity           float64 `yaml:"gravity"`            // Added to vertical velocity per reference frame
	FlapImpulse       float64 `yaml:"flap_impulse"`       // Vertical velocity set by a flap (negative = up)
	NudgeImpulse      float64 `yaml:"nudge_impulse"`      // Velocity change for moveUp/moveDown
	MaxVelocity       float64 `yaml:"max_velocity"`       // Vertical velocity clamp, both directions
	ReferenceFrameMS  float64 `yaml:"reference_frame_ms"` // Frame length all speeds are expressed in
	MaxDeltaMS        float64 `yaml:"max_delta_ms"`       // Longest step accepted per tick
	RotationSmoothing float64 `yaml:"rotation_smoothing"` // EMA factor per reference frame, (0, 1]
}

// PlayerConfig defines the player body.
type PlayerConfig struct {
	StartX            float64 `yaml:"start_x"`
	StartY            float64 `yaml:"start_y"`
	Width             float64 `yaml:"width"`
	Height            float64 `yaml:"height"`
	HitboxFraction    float64 `yaml:"hitbox_fraction"` // Share of the visual bounds used for collisions
	HorizontalSpeed   float64 `yaml:"horizontal_speed"`
	HorizontalDamping float64 `yaml:"horizontal_damping"` // Velocity kept per reference frame, [0, 1]
	MinX              float64 `yaml:"min_x"`
	MaxX              float64 `yaml:"max_x"`
}

// SpawnerConfig defines obstacle and orb creation.
type SpawnerConfig struct {
	WarmupMS         float64              `yaml:"warmup_ms"`
	SafeZoneFraction float64              `yaml:"safe_zone_fraction"`
	EdgeMargin       float64              `yaml:"edge_margin"`
	Radius           RadiusConfig         `yaml:"radius"`
	Overlap          OverlapConfig        `yaml:"overlap"`
	Second           SecondObstacleConfig `yaml:"second"`
	Orb              OrbConfig            `yaml:"orb"`
	Speed            BaseSpeedConfig      `yaml:"speed"`
}

// RadiusConfig defines how obstacle radius grows with the level.
type RadiusConfig struct {
	Base     float64 `yaml:"base"`
	PerLevel float64 `yaml:"per_level"`
	Jitter   float64 `yaml:"jitter"`
	Min      float64 `yaml:"min"`
	Max      float64 `yaml:"max"`
}

// OverlapConfig bounds the overlap avoidance loop.
type OverlapConfig struct {
	Buffer      float64 `yaml:"buffer"`
	MaxAttempts int     `yaml:"max_attempts"`
	NudgeAfter  int     `yaml:"nudge_after"`
	NudgeX      float64 `yaml:"nudge_x"`
}

// SecondObstacleConfig defines the level-gated secondary obstacle.
type SecondObstacleConfig struct {
	MinLevel       int     `yaml:"min_level"`
	ChancePerLevel float64 `yaml:"chance_per_level"`
	MaxChance      float64 `yaml:"max_chance"`
	OffsetX        float64 `yaml:"offset_x"`
}

// OrbConfig defines pickup spawning.
type OrbConfig struct {
	Chance          float64 `yaml:"chance"`
	Radius          float64 `yaml:"radius"`
	StaggerFraction float64 `yaml:"stagger_fraction"` // Delay as a share of the spawn interval
}

// BaseSpeedConfig holds the speeds the per-level multipliers apply to.
type BaseSpeedConfig struct {
	Obstacle float64 `yaml:"obstacle"`
	Orb      float64 `yaml:"orb"`
}

// ScoreConfig defines points awarded.
type ScoreConfig struct {
	PerObstacle int `yaml:"per_obstacle"`
	PerOrb      int `yaml:"per_orb"`
}

// TimingConfig defines deferred transitions.
type TimingConfig struct {
	LevelCompleteDelayMS float64 `yaml:"level_complete_delay_ms"`
}

// LevelConfig is one entry of the level table.
type LevelConfig struct {
	Name            string     `yaml:"name"`
	OrbsRequired    int        `yaml:"orbs_required"`
	TimeLimitMS     float64    `yaml:"time_limit_ms"`
	SpawnIntervalMS float64    `yaml:"spawn_interval_ms"`
	Speed           SpeedTable `yaml:"speed"`
}

// SpeedTable holds per-level speed multipliers.
type SpeedTable struct {
	Primary   float64 `yaml:"primary"`
	Secondary float64 `yaml:"secondary"`
	Orb       float64 `yaml:"orb"`
}

// LevelCount returns the number of defined levels.
func (c Config) LevelCount() int {
	return len(c.Levels)
}

// Level returns the configuration of the 1-based level n.
func (c Config) Level(n int) (LevelConfig, bool) {
	if n < 1 || n > len(c.Levels) {
		return LevelConfig{}, false
	}
	return c.Levels[n-1], true
}

// IsLastLevel reports whether n is the final level of the table.
func (c Config) IsLastLevel(n int) bool {
	return n >= len(c.Levels)
}

// Clone returns a deep copy, so presets can be applied without aliasing the level table.
func (c Config) Clone() Config {
	out := c
	out.Levels = append([]LevelConfig(nil), c.Levels...)
	return out
}
