// quest is a four-level romantic mini-game for the terminal.
//
// Usage:
//
//	quest                    - Play the quest (same as quest play)
//	quest play               - Play the quest
//	quest serve              - Start SSH server for remote play
//	quest history            - Browse finished runs
//	quest autoplay           - Play a perfect run headlessly and print it
//
// Global flags:
//
//	--config <path>     - Quest config YAML (default: ~/.quest/quest.yaml)
//	--fps <rate>        - Override the frame rate
//	--seed <value>      - Set RNG seed for reproducible target jumps
//	--db <path>         - Set database path (default: ~/.quest/runs.db)
//	--log-file <path>   - Write logs to a file instead of discarding them
//	--log-level <lvl>   - debug, info, warn or error
//	--no-audio          - Disable the buzzer
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-quest/internal/config"
)

var (
	// Global flags
	flagConfig   string
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogFile  string
	flagLogLevel string
	flagNoAudio  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "quest",
	Short: "A little quest - four playful challenges in your terminal",
	Long: `Quest walks the player through four short challenges and ends with a
confetti celebration:

  1. Catch a heart that jumps away when approached
  2. Trace a maze without touching the walls
  3. Type a phrase exactly
  4. Send kisses faster than they fade

Available commands:
  play      - Play the quest (default)
  serve     - Start SSH server for remote play
  history   - Browse finished runs
  autoplay  - Play a perfect run headlessly

Examples:
  quest
  quest play --seed 42
  quest serve --ssh :2222
  quest history --plain`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runPlay,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to quest config YAML")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Frame rate (0 = from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to run history database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&flagNoAudio, "no-audio", false, "Disable the buzzer")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(autoplayCmd)
}

// loadConfig reads the quest config and applies the global flags on top.
// Flags win over environment variables, which win over files.
func loadConfig() (config.Quest, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagFPS > 0 {
		cfg.Display.FPS = flagFPS
	}
	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Logging.Level = flagLogLevel
	}
	if flagNoAudio {
		cfg.Audio.Enabled = false
	}
	return cfg, cfg.Validate()
}
