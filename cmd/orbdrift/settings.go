package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/orbdrift/internal/config"
)

// settings is the merged result of environment and flags.
type settings struct {
	env    config.Env
	game   config.Config
	source config.Source
	preset config.DifficultyPreset
}

// loadSettings reads ORBDRIFT_* variables, applies explicitly set flags on
// top, then loads the configuration and applies the difficulty preset.
func loadSettings(cmd *cobra.Command) (settings, error) {
	e, err := config.LoadEnv()
	if err != nil {
		return settings{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("fps") {
		e.FPS = flagFPS
	}
	if flags.Changed("seed") {
		e.Seed = flagSeed
	}
	if flags.Changed("config") {
		e.ConfigPath = flagConfig
	}
	if flags.Changed("difficulty") {
		e.Difficulty = flagDifficulty
	}
	if flags.Changed("log-level") {
		e.LogLevel = flagLogLevel
	}
	if flags.Changed("log-file") {
		e.LogFile = flagLogFile
	}
	if e.FPS <= 0 {
		e.FPS = 60
	}
	if e.Seed == 0 {
		e.Seed = time.Now().UnixNano()
	}

	preset, err := config.ParsePreset(e.Difficulty)
	if err != nil {
		return settings{}, err
	}
	cfg, source, err := config.Load(e.ConfigPath)
	if err != nil {
		return settings{}, err
	}

	return settings{
		env:    e,
		game:   config.ApplyPreset(cfg, preset),
		source: source,
		preset: preset,
	}, nil
}

// newLogger builds the process logger. Logs go to the log file when one is
// set, otherwise to fallback. The returned closer releases the file.
func newLogger(e config.Env, fallback io.Writer) (*log.Logger, func(), error) {
	w := fallback
	closer := func() {}
	if e.LogFile != "" {
		f, err := os.OpenFile(e.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, closer, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closer = func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "orbdrift",
	})
	if e.LogLevel != "" {
		lvl, err := log.ParseLevel(e.LogLevel)
		if err != nil {
			closer()
			return nil, func() {}, fmt.Errorf("log level: %w", err)
		}
		logger.SetLevel(lvl)
	}
	return logger, closer, nil
}
