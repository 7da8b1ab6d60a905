package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/motion-lab/internal/lab"
	"github.com/vovakirdan/motion-lab/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the lab with a level picker",
	Long: `Start the lab in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a level.
Quitting the lab returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  1-5          - Jump to a level
  Enter/Space  - Select level
  Tab          - Progress board
  Q            - Quit

Examples:
  motionlab menu
  motionlab menu --fps 30
  motionlab menu --db ./progress.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	labCfg := loadLabConfig()
	cfg := runtimeConfig(labCfg)

	logger, closeLog := openLogger()
	defer closeLog()

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	for {
		result, err := tui.RunLevelSelector(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}

		if result.WantsProgress {
			goBack, boardErr := tui.RunProgressBoard(store, cfg.ScreenW, cfg.ScreenH)
			if boardErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", boardErr)
			}
			if !goBack {
				return
			}
			continue
		}

		if result.Quit {
			return
		}

		machine := lab.New(labCfg)
		if err := machine.StartAt(result.Level); err != nil {
			fmt.Fprintf(os.Stderr, "Error: level %d: %v\n", result.Level, err)
			continue
		}

		logger.Info("lab started from menu", "level", result.Level)
		runErr := tui.Run(machine, cfg, tui.RunOptions{
			Store:    store,
			Logger:   logger,
			ShowHelp: labCfg.Display.ShowHelp,
		})
		if runErr != nil {
			fmt.Fprintf(os.Stderr, "Error running lab: %v\n", runErr)
			return
		}
	}
}
