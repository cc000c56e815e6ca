package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-quest/internal/core"
	"github.com/vovakirdan/tui-quest/internal/feedback"
	"github.com/vovakirdan/tui-quest/internal/platform/tui"
	"github.com/vovakirdan/tui-quest/internal/storage"
)

var flagPlayer string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the quest",
	Long: `Start the quest in this terminal.

Controls:
  Mouse        - Hover, click and drag (levels 1, 2 and 4)
  Keyboard     - Type the phrase (level 3)
  Enter        - Begin
  Space        - Kiss (level 4)
  R            - Play again (after victory)
  Ctrl+R       - Restart from the beginning
  Ctrl+S       - Save a screenshot
  Q/Ctrl+C     - Quit

Examples:
  quest play
  quest play --seed 42
  quest play --no-audio --log-file quest.log`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Name recorded with finished runs (default $USER)")
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg.Logging.Level, false)
	if err != nil {
		return err
	}
	defer closeLog()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	// The quest still plays without storage; runs just aren't recorded
	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run database: %v\n", err)
		logger.Warn("could not open run database", "error", err)
		store = nil
	}

	haptics := feedback.Open(cfg.Audio.Enabled)
	if buzzer, ok := haptics.(*feedback.Buzzer); ok {
		defer buzzer.Close()
	}

	runErr := tui.Run(tui.Options{
		Quest: cfg,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: cfg.Display.FPS,
			Seed:     seed,
		},
		Store:   store,
		Logger:  logger,
		Haptics: haptics,
		Player:  flagPlayer,
	})

	if store != nil {
		store.Close()
	}
	if runErr != nil {
		return fmt.Errorf("running quest: %w", runErr)
	}
	return nil
}
