// orbdrift is a terminal arcade game: drift between falling hazards and
// collect orbs to clear each level before the clock runs out.
//
// Usage:
//
//	orbdrift play            - Play in the terminal
//	orbdrift simulate        - Run rounds headless with the autopilot
//	orbdrift levels          - Show the effective level table
//	orbdrift config          - Print the effective configuration as YAML
//	orbdrift themes          - List glyph themes
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--config <path>       - Load a custom configuration file
//	--difficulty <name>   - Difficulty preset: easy, normal, hard
//	--log-level <level>   - Log level: debug, info, warn, error
//	--log-file <path>     - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import the game to register its themes
	_ "github.com/vovakirdan/orbdrift/internal/games/orbdrift"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "orbdrift",
	Short: "Orb Drift - dodge hazards and collect orbs in your terminal",
	Long: `Orb Drift is a terminal arcade game. Keep your ship in the air,
avoid the drifting hazards and collect enough orbs to clear each level
before its time runs out.

Available commands:
  play      - Play interactively
  simulate  - Run rounds headless with the built-in autopilot
  levels    - Show the effective level table
  config    - Print the effective configuration
  themes    - List glyph themes

Every global flag can also be set with an ORBDRIFT_* environment variable.
Flags take precedence.

Examples:
  orbdrift play
  orbdrift play --difficulty hard --theme mono
  orbdrift simulate --rounds 5 --seed 42
  orbdrift config --config ./my-orbdrift.yaml`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(themesCmd)
}
