package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/orbdrift/internal/core"
	"github.com/vovakirdan/orbdrift/internal/games/orbdrift"
	"github.com/vovakirdan/orbdrift/internal/platform/tui"
	"github.com/vovakirdan/orbdrift/internal/registry"
	"github.com/vovakirdan/orbdrift/internal/storage"
)

var (
	flagTheme string
	flagDebug bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Orb Drift",
	Long: `Start playing Orb Drift in the terminal.

Controls:
  Space/W      - Flap (also starts a round)
  A/D, arrows  - Drift left/right, nudge up/down
  Enter        - Start a round
  P/Esc        - Pause
  R            - Restart
  Tab          - Session history
  F3/` + "`" + `         - Debug overlay
  Ctrl+S       - Screenshot
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - More time, slower hazards
  normal - The level table as configured
  hard   - Less time, faster and denser hazards

Examples:
  orbdrift play
  orbdrift play --difficulty easy
  orbdrift play --theme mono --debug
  orbdrift play --config ./my-orbdrift.yaml --log-file orbdrift.log`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagTheme, "theme", "", "Glyph theme (see 'orbdrift themes')")
	playCmd.Flags().BoolVar(&flagDebug, "debug", false, "Start with the debug overlay enabled")
}

func runPlay(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	theme := s.env.Theme
	if cmd.Flags().Changed("theme") {
		theme = flagTheme
	}
	debug := s.env.Debug
	if cmd.Flags().Changed("debug") {
		debug = flagDebug
	}
	if !registry.Exists(theme) {
		fmt.Fprintf(os.Stderr, "Error: unknown theme %q\n", theme)
		fmt.Fprintln(os.Stderr, "Run 'orbdrift themes' to see available themes.")
		os.Exit(1)
	}

	// The TUI owns the terminal, so logs are discarded unless a file is set.
	logger, closeLog, err := newLogger(s.env, io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()
	logger.Info("starting", "config", s.source, "difficulty", s.preset, "theme", theme, "seed", s.env.Seed)

	runtime := core.DefaultConfig()
	runtime.TickRate = s.env.FPS
	runtime.Seed = s.env.Seed
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		runtime.ScreenW = w
		runtime.ScreenH = h
	}

	game, err := orbdrift.New(s.game,
		orbdrift.WithLogger(logger),
		orbdrift.WithSeed(runtime.Seed),
		orbdrift.WithTheme(theme),
		orbdrift.WithDebug(debug),
	)
	if err != nil {
		return err
	}

	session, err := storage.OpenSession()
	if err != nil {
		return err
	}
	defer session.Close()

	if err := tui.Run(game, session, runtime, logger); err != nil {
		return fmt.Errorf("run game: %w", err)
	}

	if best, ok, err := session.Best(); err == nil && ok {
		fmt.Printf("Best this session: %d (level %d %s)\n", best.Score, best.Level, best.LevelName)
	}
	return nil
}
