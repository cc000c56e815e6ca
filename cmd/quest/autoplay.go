package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-quest/internal/core"
	"github.com/vovakirdan/tui-quest/internal/platform/tui"
	"github.com/vovakirdan/tui-quest/internal/quest"
	"github.com/vovakirdan/tui-quest/internal/storage"
)

var (
	flagRecord bool
	flagFrames int
	flagWidth  int
	flagHeight int
)

var autoplayCmd = &cobra.Command{
	Use:   "autoplay",
	Short: "Play a perfect run headlessly",
	Long: `Drive the quest from Start to Victory without a terminal, on a virtual
clock, and print the level splits. Useful for checking that a custom maze
layout can be solved on a terminal of a given size.

Recorded runs are saved as player "autoplay" and never ranked among
the fastest runs or shown as the best time.

Examples:
  quest autoplay
  quest autoplay --config ./my-quest.yaml
  quest autoplay --width 120 --height 40
  quest autoplay --record --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runAutoplay,
}

func init() {
	autoplayCmd.Flags().BoolVar(&flagRecord, "record", false, "Save the run to the history database")
	autoplayCmd.Flags().IntVar(&flagFrames, "frames", 120, "Celebration frames to simulate after victory")
	autoplayCmd.Flags().IntVar(&flagWidth, "width", 80, "Terminal width to lay the levels out for")
	autoplayCmd.Flags().IntVar(&flagHeight, "height", 24, "Terminal height to lay the levels out for")
}

func runAutoplay(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg.Logging.Level, true)
	if err != nil {
		return err
	}
	defer closeLog()

	layouts := tui.QuestLayouts(flagWidth, flagHeight, cfg.Maze)
	arena := layouts.Chase.Arena

	sched := core.NewManualScheduler()
	var (
		splits  [storage.Levels]time.Duration
		levelAt time.Duration
	)
	ctrl := quest.New(quest.Options{
		Rand:      core.NewRand(flagSeed),
		Scheduler: sched,
		Phrase:    cfg.Typing.Phrase,
		Surface: func() (float64, float64) {
			return arena.W * core.DefaultCellW, arena.H * core.DefaultCellH
		},
		OnTransition: func(from, to quest.Level) {
			now := sched.Now()
			if from >= quest.Level1 && from <= quest.Level4 {
				splits[from-quest.Level1] = now - levelAt
			}
			levelAt = now
			logger.Info("level entered", "from", from, "to", to, "at", now)
		},
	})
	defer ctrl.Close()

	if err := quest.Autoplay(ctrl, layouts, sched.Advance); err != nil {
		return err
	}

	recycled := 0
	for i := 0; i < flagFrames; i++ {
		recycled += ctrl.Frame().Count(core.EffectRecycle)
	}
	logger.Debug("celebration simulated", "frames", flagFrames, "recycled", recycled)

	var total time.Duration
	for i, split := range splits {
		fmt.Printf("Level %d  %s\n", i+1, seconds(split))
		total += split
	}
	fmt.Printf("Total    %s\n", seconds(total))

	if !flagRecord {
		return nil
	}

	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("opening run database: %w", err)
	}
	defer store.Close()

	run, err := store.SaveRun(storage.Run{Player: storage.AutoplayPlayer, Duration: total, Splits: splits})
	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}
	fmt.Printf("Recorded run %s\n", run.ID)
	return nil
}
