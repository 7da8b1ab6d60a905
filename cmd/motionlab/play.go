package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/motion-lab/internal/config"
	"github.com/vovakirdan/motion-lab/internal/lab"
	"github.com/vovakirdan/motion-lab/internal/platform/tui"
	"github.com/vovakirdan/motion-lab/internal/storage"
)

var (
	flagLevel   int
	flagWatch   bool
	flagNoStore bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the lab",
	Long: `Start the lab at level 1, or at the level given with --level.

Controls:
  Up/W, Down/S  - Adjust the level's quantity
  N/Enter       - Next level (once the current one is over)
  R             - Restart from level 1
  P             - Pause
  Ctrl+S        - Save a text screenshot
  Ctrl+Y        - Copy the readout to the clipboard
  Q/Ctrl+C      - Quit

With --watch the configuration file is reloaded whenever it changes,
restarting the current level with the new settings.

Examples:
  motionlab play
  motionlab play --level 4
  motionlab play --config ./lab.yaml --watch
  motionlab play --fps 30 --no-store`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 1, "Starting level (1-5)")
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload the config file when it changes")
	playCmd.Flags().BoolVar(&flagNoStore, "no-store", false, "Do not record progress")
}

func runPlay(_ *cobra.Command, _ []string) {
	labCfg := loadLabConfig()
	machine := lab.New(labCfg)
	if err := machine.StartAt(flagLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Error: level %d: %v\n", flagLevel, err)
		os.Exit(1)
	}

	logger, closeLog := openLogger()
	defer closeLog()

	var store *storage.Store
	if !flagNoStore {
		store = openStore()
	}

	opts := tui.RunOptions{
		Store:    store,
		Logger:   logger,
		ShowHelp: labCfg.Display.ShowHelp,
	}
	if flagWatch {
		opts.WatchPath = config.Locate(flagConfig)
		if opts.WatchPath == "" {
			fmt.Fprintln(os.Stderr, "Warning: using the built-in config, nothing to watch")
		}
	}

	logger.Info("lab started", "level", flagLevel, "watch", opts.WatchPath)
	runErr := tui.Run(machine, runtimeConfig(labCfg), opts)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running lab: %v\n", runErr)
		os.Exit(1)
	}
}
