package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/motion-lab/internal/lab"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List all levels",
	Long:  `Shows the five levels of the lab with what each demonstrates.`,
	Args:  cobra.NoArgs,
	Run:   runLevels,
}

func runLevels(_ *cobra.Command, _ []string) {
	levels := lab.Levels()

	fmt.Println("Levels:")
	fmt.Println()

	maxNameLen := len("Name")
	for _, l := range levels {
		maxNameLen = max(maxNameLen, len(l.Name))
	}

	fmt.Printf("  %-2s  %-*s  %s\n", "#", maxNameLen, "Name", "Controls")
	fmt.Printf("  %-2s  %-*s  %s\n", "-", maxNameLen, "----", "--------")
	for _, l := range levels {
		fmt.Printf("  %-2d  %-*s  %s\n", l.Number, maxNameLen, l.Name, l.Controls)
		fmt.Printf("  %-2s  %-*s  %s\n", "", maxNameLen, "", l.Summary)
	}

	fmt.Println()
	fmt.Println("Run 'motionlab play --level <n>' to start at a level.")
}
