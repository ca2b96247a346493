package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/orbdrift/internal/config"
	"github.com/vovakirdan/orbdrift/internal/registry"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Show the effective level table",
	Long: `Shows every level after the configuration file and difficulty preset
have been applied.

Examples:
  orbdrift levels
  orbdrift levels --difficulty hard`,
	Args: cobra.NoArgs,
	RunE: runLevels,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Long: `Prints the configuration the game would run with. The output is a valid
config file and can be edited and passed back with --config.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List glyph themes",
	Args:  cobra.NoArgs,
	Run:   runThemes,
}

func runLevels(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	fmt.Printf("Levels - %s difficulty (%s config)\n", s.preset, s.source)
	fmt.Println()
	fmt.Printf("  %-3s  %-18s  %-5s  %-7s  %-8s  %s\n", "#", "Name", "Orbs", "Time", "Interval", "Speed")
	fmt.Printf("  %-3s  %-18s  %-5s  %-7s  %-8s  %s\n", "-", "----", "----", "----", "--------", "-----")
	for i, lvl := range s.game.Levels {
		fmt.Printf("  %-3d  %-18s  %-5d  %-7s  %-8s  %.2f/%.2f/%.2f\n",
			i+1, lvl.Name, lvl.OrbsRequired,
			fmt.Sprintf("%.1fs", lvl.TimeLimitMS/1000),
			fmt.Sprintf("%.0fms", lvl.SpawnIntervalMS),
			lvl.Speed.Primary, lvl.Speed.Secondary, lvl.Speed.Orb)
	}
	return nil
}

func runConfig(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	data, err := config.Marshal(s.game)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "# source: %s, difficulty: %s\n", s.source, s.preset)
	_, err = os.Stdout.Write(data)
	return err
}

func runThemes(cmd *cobra.Command, args []string) {
	themes := registry.List()

	if len(themes) == 0 {
		fmt.Println("No themes available.")
		return
	}

	fmt.Println("Available themes:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, t := range themes {
		if len(t.ID) > maxIDLen {
			maxIDLen = len(t.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, t := range themes {
		fmt.Printf("  %-*s  %s\n", maxIDLen, t.ID, t.Title)
	}

	fmt.Println()
	fmt.Println("Run 'orbdrift play --theme <id>' to use a theme.")
}
