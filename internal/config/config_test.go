package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestEmbeddedMatchesDefaults(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded yaml: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("embedded yaml and DefaultConfig diverged:\nyaml: %+v\ncode: %+v", cfg, DefaultConfig())
	}
}

func TestDefaultConfigValid(t *testing.T) {
	if err := Validate(DefaultConfig()); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestParsePartialOverride(t *testing.T) {
	cfg, err := Parse([]byte("physics:\n  gravity: 0.1\nlevels:\n  - name: Only\n    orbs_required: 1\n    time_limit_ms: 1000\n    spawn_interval_ms: 500\n    speed: {primary: 1, secondary: 1, orb: 1}\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Physics.Gravity != 0.1 {
		t.Errorf("gravity = %g, want 0.1", cfg.Physics.Gravity)
	}
	if cfg.Physics.FlapImpulse != DefaultConfig().Physics.FlapImpulse {
		t.Errorf("unset keys should keep defaults, flap_impulse = %g", cfg.Physics.FlapImpulse)
	}
	if cfg.LevelCount() != 1 || cfg.Levels[0].Name != "Only" {
		t.Errorf("levels should be replaced, got %+v", cfg.Levels)
	}
}

func TestParseEmptyKeepsDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse(nil): %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Error("empty document should yield defaults")
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	if _, err := Parse([]byte("physics:\n  gravityy: 1\n")); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("score:\n  per_orb: 9\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, src, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if src != SourceCustom {
		t.Errorf("source = %s, want custom", src)
	}
	if cfg.Score.PerOrb != 9 {
		t.Errorf("per_orb = %d, want 9", cfg.Score.PerOrb)
	}
}

func TestLoadCustomPathMissing(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing custom config")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error should wrap os.ErrNotExist: %v", err)
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)

	_, src, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if src != SourceEmbedded {
		t.Errorf("no files: source = %s, want embedded", src)
	}

	if err := os.MkdirAll(filepath.Join(work, "configs"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(work, "configs", configFile), []byte("score:\n  per_orb: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, src, _ := Load("")
	if src != SourceLocal || cfg.Score.PerOrb != 2 {
		t.Errorf("local file: source = %s per_orb = %d", src, cfg.Score.PerOrb)
	}

	userDir := filepath.Join(home, ".orbdrift", "configs")
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(userDir, configFile), []byte("score:\n  per_orb: 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, src, _ = Load("")
	if src != SourceUser || cfg.Score.PerOrb != 3 {
		t.Errorf("user file: source = %s per_orb = %d", src, cfg.Score.PerOrb)
	}

	// A broken user file falls through to the next location.
	if err := os.WriteFile(filepath.Join(userDir, configFile), []byte("score: [\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, src, _ = Load("")
	if src != SourceLocal {
		t.Errorf("broken user file: source = %s, want local", src)
	}
}

func TestMarshalRoundTripsDefaults(t *testing.T) {
	data, err := Marshal(DefaultConfig())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Error("marshalled defaults should parse back unchanged")
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Field.Width = 0
	cfg.Physics.ReferenceFrameMS = -1
	cfg.Levels[2].OrbsRequired = 0

	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error")
	}
	var fe *FieldError
	if !errors.As(err, &fe) {
		t.Fatalf("error should contain *FieldError: %v", err)
	}
	for _, path := range []string{"field.width", "physics.reference_frame_ms", "levels[2].orbs_required"} {
		if !strings.Contains(err.Error(), path) {
			t.Errorf("error should mention %s: %v", path, err)
		}
	}
}

func TestValidateRejectsEmptyLevels(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Levels = nil
	if err := Validate(cfg); err == nil || !strings.Contains(err.Error(), "levels") {
		t.Errorf("expected levels error, got %v", err)
	}
}

func TestLevelLookup(t *testing.T) {
	cfg := DefaultConfig()
	if _, ok := cfg.Level(0); ok {
		t.Error("level 0 should not exist")
	}
	lvl, ok := cfg.Level(1)
	if !ok || lvl.Name != "Outer Rim" {
		t.Errorf("level 1 = %+v, %v", lvl, ok)
	}
	if _, ok := cfg.Level(cfg.LevelCount() + 1); ok {
		t.Error("level past the table should not exist")
	}
	if !cfg.IsLastLevel(cfg.LevelCount()) || cfg.IsLastLevel(1) {
		t.Error("IsLastLevel reports wrong level")
	}
}

func TestApplyPreset(t *testing.T) {
	base := DefaultConfig()

	hard := ApplyPreset(base, DifficultyHard)
	if hard.Levels[0].TimeLimitMS >= base.Levels[0].TimeLimitMS {
		t.Error("hard should shorten the time limit")
	}
	if hard.Levels[0].Speed.Primary <= base.Levels[0].Speed.Primary {
		t.Error("hard should speed up hazards")
	}
	if base.Levels[0].TimeLimitMS != DefaultConfig().Levels[0].TimeLimitMS {
		t.Error("ApplyPreset must not modify its input")
	}

	easy := ApplyPreset(base, DifficultyEasy)
	if easy.Levels[0].SpawnIntervalMS <= base.Levels[0].SpawnIntervalMS {
		t.Error("easy should spawn less often")
	}

	normal := ApplyPreset(base, DifficultyNormal)
	if !reflect.DeepEqual(normal, base) {
		t.Error("normal should leave the config unchanged")
	}
	if err := Validate(hard); err != nil {
		t.Errorf("hard preset should validate: %v", err)
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in      string
		want    DifficultyPreset
		wantErr bool
	}{
		{"", DifficultyNormal, false},
		{"easy", DifficultyEasy, false},
		{" HARD ", DifficultyHard, false},
		{"insane", DifficultyNormal, true},
	}
	for _, tt := range tests {
		got, err := ParsePreset(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePreset(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParsePreset(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestLoadEnvFrom(t *testing.T) {
	e, err := LoadEnvFrom(map[string]string{})
	if err != nil {
		t.Fatalf("LoadEnvFrom: %v", err)
	}
	if !reflect.DeepEqual(e, DefaultEnv()) {
		t.Errorf("empty environment = %+v, want %+v", e, DefaultEnv())
	}

	e, err = LoadEnvFrom(map[string]string{
		"ORBDRIFT_FPS":        "30",
		"ORBDRIFT_SEED":       "42",
		"ORBDRIFT_DEBUG":      "true",
		"ORBDRIFT_DIFFICULTY": "hard",
		"ORBDRIFT_LOG_FILE":   "/tmp/orbdrift.log",
	})
	if err != nil {
		t.Fatalf("LoadEnvFrom: %v", err)
	}
	if e.FPS != 30 || e.Seed != 42 || !e.Debug || e.Difficulty != "hard" || e.LogFile != "/tmp/orbdrift.log" {
		t.Errorf("unexpected env: %+v", e)
	}

	if _, err := LoadEnvFrom(map[string]string{"ORBDRIFT_FPS": "fast"}); err == nil {
		t.Error("expected error for non-numeric FPS")
	}
}
