package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Presets lists the known presets in display order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard}

// presetScale multiplies the level table.
type presetScale struct {
	timeLimit float64 // > 1 gives more time
	speed     float64 // > 1 moves hazards faster
	interval  float64 // > 1 spawns less often
}

var presetScales = map[DifficultyPreset]presetScale{
	DifficultyEasy:   {timeLimit: 1.25, speed: 0.85, interval: 1.15},
	DifficultyNormal: {timeLimit: 1, speed: 1, interval: 1},
	DifficultyHard:   {timeLimit: 0.8, speed: 1.2, interval: 0.85},
}

// ParsePreset converts a user-supplied name into a preset. Empty means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(name)))
	if p == "" {
		return DifficultyNormal, nil
	}
	if _, ok := presetScales[p]; !ok {
		return DifficultyNormal, fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", name)
	}
	return p, nil
}

// ApplyPreset returns a copy of cfg with the preset applied to every level.
// The input level table is not modified.
func ApplyPreset(cfg Config, preset DifficultyPreset) Config {
	scale, ok := presetScales[preset]
	out := cfg.Clone()
	if !ok || preset == DifficultyNormal {
		return out
	}
	for i := range out.Levels {
		lvl := &out.Levels[i]
		lvl.TimeLimitMS *= scale.timeLimit
		lvl.SpawnIntervalMS *= scale.interval
		lvl.Speed.Primary *= scale.speed
		lvl.Speed.Secondary *= scale.speed
		lvl.Speed.Orb *= scale.speed
	}
	return out
}
