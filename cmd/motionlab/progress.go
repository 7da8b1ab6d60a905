package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/motion-lab/internal/lab"
	"github.com/vovakirdan/motion-lab/internal/storage"
)

var (
	flagProgressLimit int
	flagProgressClear int
)

var progressCmd = &cobra.Command{
	Use:   "progress [level]",
	Short: "Show fastest completions and recent runs",
	Long: `Display the fastest recorded completions for each level (or one level)
and the most recent play sessions.

Examples:
  motionlab progress
  motionlab progress 4
  motionlab progress --limit 10
  motionlab progress --clear 2`,
	Args: cobra.MaximumNArgs(1),
	Run:  runProgress,
}

func init() {
	progressCmd.Flags().IntVar(&flagProgressLimit, "limit", 3, "Completions to show per level")
	progressCmd.Flags().IntVar(&flagProgressClear, "clear", 0, "Delete all completions of this level")
}

func runProgress(_ *cobra.Command, args []string) {
	levels := lab.Levels()
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 || n > lab.FinalLevel {
			fmt.Fprintf(os.Stderr, "Error: unknown level %q\n", args[0])
			fmt.Fprintln(os.Stderr, "Run 'motionlab levels' to see available levels.")
			os.Exit(1)
		}
		levels = levels[n-1 : n]
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening progress database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagProgressClear != 0 {
		if err := store.ClearCompletions(flagProgressClear); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared completions for level %d.\n", flagProgressClear)
		return
	}

	for _, info := range levels {
		completions, err := store.FastestCompletions(info.Number, flagProgressLimit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving completions: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Level %d - %s\n", info.Number, info.Name)
		if len(completions) == 0 {
			fmt.Println("  No completions recorded yet.")
			fmt.Println()
			continue
		}

		fmt.Printf("  %-4s  %-6s  %-8s  %s\n", "Rank", "Ticks", "Peak v", "Date")
		fmt.Printf("  %-4s  %-6s  %-8s  %s\n", "----", "-----", "------", "----")
		for i, c := range completions {
			fmt.Printf("  %-4d  %-6d  %-8.2f  %s\n", i+1, c.Ticks, c.PeakVelocity, c.CreatedAt.Format("2006-01-02 15:04"))
		}
		fmt.Println()
	}

	runs, err := store.RecentRuns(5)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'motionlab play' to start one!")
		return
	}

	fmt.Println("Recent runs")
	for _, r := range runs {
		finished := "in progress"
		if !r.FinishedAt.IsZero() {
			finished = r.FinishedAt.Format("15:04")
		}
		fmt.Printf("  %s - %-11s  %d level(s) cleared\n", r.StartedAt.Format("2006-01-02 15:04"), finished, r.LevelsCleared)
	}
}
