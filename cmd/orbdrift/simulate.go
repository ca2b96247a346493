package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/orbdrift/internal/games/orbdrift"
	"github.com/vovakirdan/orbdrift/internal/storage"
)

var (
	flagRounds int
	flagTicks  int
	flagDelta  float64
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run rounds headless with the autopilot",
	Long: `Play rounds without a terminal using the built-in autopilot and print
the session history. Runs with the same seed produce the same rounds.

Examples:
  orbdrift simulate
  orbdrift simulate --rounds 10 --seed 7
  orbdrift simulate --difficulty hard --delta 33 --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagRounds, "rounds", 3, "Number of rounds to play")
	simulateCmd.Flags().IntVar(&flagTicks, "ticks", 20000, "Frames per round before it is abandoned")
	simulateCmd.Flags().Float64Var(&flagDelta, "delta", 0, "Frame length in ms (0 = 1000/fps)")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	if flagRounds <= 0 || flagTicks <= 0 || flagDelta < 0 {
		return fmt.Errorf("rounds and ticks must be positive, delta non-negative")
	}
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(s.env, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	delta := flagDelta
	if delta == 0 {
		delta = 1000 / float64(s.env.FPS)
	}

	game, err := orbdrift.New(s.game,
		orbdrift.WithLogger(logger),
		orbdrift.WithSeed(s.env.Seed),
	)
	if err != nil {
		return err
	}

	session, err := storage.OpenSession()
	if err != nil {
		return err
	}
	defer session.Close()

	logger.Info("simulating", "rounds", flagRounds, "seed", s.env.Seed, "delta", delta, "difficulty", s.preset)
	for _, r := range orbdrift.RunRounds(game, orbdrift.NewAutopilot(s.game), flagRounds, flagTicks, delta) {
		if _, err := session.SaveRound(r.Record()); err != nil {
			return err
		}
	}

	return printHistory(session, s.env.Seed)
}

func printHistory(session *storage.Session, seed int64) error {
	rounds, err := session.TopRounds(flagRounds)
	if err != nil {
		return err
	}
	stats, err := session.Stats()
	if err != nil {
		return err
	}

	fmt.Printf("Simulated rounds - seed %d\n", seed)
	fmt.Println()

	if len(rounds) == 0 {
		fmt.Println("No rounds recorded.")
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-6s  %-20s  %-5s  %-6s  %-13s  %s\n", "Rank", "Score", "Level", "Orbs", "Passed", "Outcome", "Time")
	fmt.Printf("  %-4s  %-6s  %-20s  %-5s  %-6s  %-13s  %s\n", "----", "-----", "-----", "----", "------", "-------", "----")

	for i, r := range rounds {
		level := fmt.Sprintf("%d %s", r.Level, r.LevelName)
		fmt.Printf("  %-4d  %-6d  %-20s  %-5d  %-6d  %-13s  %.1fs\n",
			i+1, r.Score, level, r.Orbs, r.Passed, r.Outcome, r.Duration.Seconds())
	}

	fmt.Println()
	fmt.Printf("Rounds: %d  Best: %d  Avg: %.1f  Orbs: %d  Victories: %d  Longest: %.1fs\n",
		stats.Rounds, stats.BestScore, stats.AvgScore, stats.TotalOrbs, stats.Victories, stats.LongestRun.Seconds())
	return nil
}
