package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-quest/internal/platform/tui"
	"github.com/vovakirdan/tui-quest/internal/storage"
)

var (
	flagLimit int
	flagPlain bool
	flagClear bool
	flagRun   string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse finished runs",
	Long: `Show finished runs with their total time and per-level splits.

By default an interactive browser opens with Fastest, Recent and Mine
views. With --plain the fastest runs are printed as a table instead.

Examples:
  quest history
  quest history --plain --limit 5
  quest history --run <id>   # one run, e.g. the ID autoplay --record prints
  quest history --clear`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	historyCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print runs instead of opening the browser")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded run")
	historyCmd.Flags().StringVar(&flagRun, "run", "", "Print a single run by ID")
}

func runHistory(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("opening run database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRuns(); err != nil {
			return fmt.Errorf("clearing runs: %w", err)
		}
		fmt.Println("All runs deleted.")
		return nil
	}

	if flagRun != "" {
		return printRun(store, flagRun)
	}

	if !flagPlain {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunHistory(store, os.Getenv("USER"), width, height, flagLimit)
	}

	runs, err := store.FastestRuns(flagLimit)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	fmt.Println("Fastest Runs")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'quest play' to set the first time!")
		return nil
	}

	fmt.Printf("  %-4s  %-12s  %-8s  %-8s  %-8s  %-8s  %-8s  %s\n",
		"Rank", "Player", "Total", "Level 1", "Level 2", "Level 3", "Level 4", "Date")
	fmt.Printf("  %-4s  %-12s  %-8s  %-8s  %-8s  %-8s  %-8s  %s\n",
		"----", "------", "-----", "-------", "-------", "-------", "-------", "----")

	for i, run := range runs {
		fmt.Printf("  %-4d  %-12s  %-8s  %-8s  %-8s  %-8s  %-8s  %s\n",
			i+1, run.Player, seconds(run.Duration),
			seconds(run.Splits[0]), seconds(run.Splits[1]), seconds(run.Splits[2]), seconds(run.Splits[3]),
			run.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.Stats()
	if err == nil {
		fmt.Println()
		fmt.Printf("Runs: %d  Best: %s  Average: %s\n", stats.Count, seconds(stats.Best), seconds(stats.Average))
	}
	return nil
}

func printRun(store *storage.Store, id string) error {
	run, err := store.RunByID(id)
	if err != nil {
		return fmt.Errorf("retrieving run: %w", err)
	}
	if run == nil {
		return fmt.Errorf("no run with ID %s", id)
	}

	fmt.Printf("Run %s by %s on %s\n", run.ID, run.Player, run.CreatedAt.Format("2006-01-02 15:04"))
	for i, split := range run.Splits {
		fmt.Printf("  Level %d  %s\n", i+1, seconds(split))
	}
	fmt.Printf("  Total    %s\n", seconds(run.Duration))
	return nil
}

// seconds renders d the way the plain table prints times.
func seconds(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}
