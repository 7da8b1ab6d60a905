// motionlab is a terminal physics lab: five levels that each demonstrate one
// idea from introductory mechanics by moving a box around an arena.
//
// Usage:
//
//	motionlab play            - Play from level 1 (or --level N)
//	motionlab levels          - List the levels and their controls
//	motionlab menu            - Pick a level interactively
//	motionlab sim             - Run a level headless and print or plot it
//	motionlab progress        - Show fastest completions and recent runs
//	motionlab serve           - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: from config, 60)
//	--config <path>      - Lab configuration YAML
//	--db <path>          - Set database path (default: ~/.motionlab/progress.db)
//	--log-level <level>  - debug, info, warn or error (default: info)
//	--log-file <path>    - Log file (default: $XDG_STATE_HOME/motionlab/motionlab.log)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS      int
	flagConfig   string
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "motionlab",
	Short: "Motion Lab - push a box around and watch the physics",
	Long: `Motion Lab is a terminal physics demo in five levels:

  1. Uniform Force   - hold a force and watch the box accelerate
  2. Momentum        - set a velocity and let the box coast
  3. Spring Energy   - compress a spring, then watch it release
  4. Friction        - give the box a push and let friction stop it
  5. Free Fall       - drop the box and watch gravity take over

Available commands:
  play      - Start the lab
  levels    - Show all levels
  menu      - Interactive level picker
  sim       - Headless run with a scripted input
  progress  - View fastest completions
  serve     - Start SSH server for remote play

Examples:
  motionlab play
  motionlab play --level 3 --watch
  motionlab sim --level 1 --input "0:up x4" --plot velocity
  motionlab serve --ssh :2222`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (frames per second, 0 = from config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to lab config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.motionlab/progress.db", "Path to progress database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file path (default: XDG state directory)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(serveCmd)
}
