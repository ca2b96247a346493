package config

import (
	_ "embed"
)

//go:embed defaults/orbdrift.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration.
// It mirrors defaults/orbdrift.yaml and is the last fallback of Load.
func DefaultConfig() Config {
	return Config{
		Field: FieldConfig{
			Width:  800,
			Height: 600,
		},
		Physics: PhysicsConfig{
			Gravity:           0.35,
			FlapImpulse:       -6.5,
			NudgeImpulse:      2.5,
			MaxVelocity:       9,
			ReferenceFrameMS:  16.667,
			MaxDeltaMS:        50,
			RotationSmoothing: 0.15,
		},
		Player: PlayerConfig{
			StartX:            160,
			StartY:            300,
			Width:             40,
			Height:            30,
			HitboxFraction:    0.7,
			HorizontalSpeed:   4,
			HorizontalDamping: 0.9,
			MinX:              40,
			MaxX:              400,
		},
		Spawner: SpawnerConfig{
			WarmupMS:         1500,
			SafeZoneFraction: 0.35,
			EdgeMargin:       20,
			Radius: RadiusConfig{
				Base:     24,
				PerLevel: 4,
				Jitter:   6,
				Min:      18,
				Max:      60,
			},
			Overlap: OverlapConfig{
				Buffer:      10,
				MaxAttempts: 5,
				NudgeAfter:  3,
				NudgeX:      40,
			},
			Second: SecondObstacleConfig{
				MinLevel:       2,
				ChancePerLevel: 0.15,
				MaxChance:      0.6,
				OffsetX:        180,
			},
			Orb: OrbConfig{
				Chance:          0.6,
				Radius:          12,
				StaggerFraction: 0.5,
			},
			Speed: BaseSpeedConfig{
				Obstacle: 4,
				Orb:      3,
			},
		},
		Score: ScoreConfig{
			PerObstacle: 1,
			PerOrb:      5,
		},
		Timing: TimingConfig{
			LevelCompleteDelayMS: 3000,
		},
		Levels: []LevelConfig{
			{Name: "Outer Rim", OrbsRequired: 5, TimeLimitMS: 45000, SpawnIntervalMS: 1800, Speed: SpeedTable{Primary: 1.0, Secondary: 1.1, Orb: 0.8}},
			{Name: "Asteroid Belt", OrbsRequired: 7, TimeLimitMS: 50000, SpawnIntervalMS: 1600, Speed: SpeedTable{Primary: 1.15, Secondary: 1.25, Orb: 0.9}},
			{Name: "Gas Giants", OrbsRequired: 9, TimeLimitMS: 55000, SpawnIntervalMS: 1450, Speed: SpeedTable{Primary: 1.3, Secondary: 1.4, Orb: 1.0}},
			{Name: "Nebula Drift", OrbsRequired: 11, TimeLimitMS: 60000, SpawnIntervalMS: 1300, Speed: SpeedTable{Primary: 1.45, Secondary: 1.6, Orb: 1.1}},
			{Name: "Event Horizon", OrbsRequired: 13, TimeLimitMS: 65000, SpawnIntervalMS: 1150, Speed: SpeedTable{Primary: 1.6, Secondary: 1.8, Orb: 1.2}},
		},
	}
}

// DefaultYAML returns the embedded default configuration document.
func DefaultYAML() []byte {
	return defaultYAML
}
