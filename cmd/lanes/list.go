package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List levels",
	Long:  `Shows every configured level with its obstacle motion, unlock state and best score for the current profile.`,
	RunE:  runList,
}

func runList(_ *cobra.Command, _ []string) error {
	a, err := openApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	fmt.Printf("Levels for %s (coins: %d)\n", flagProfile, a.ledger.TotalCoins())
	fmt.Println()

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, lvl := range a.config.Levels {
		if len(lvl.Name) > maxNameLen {
			maxNameLen = len(lvl.Name)
		}
	}

	fmt.Printf("  %-3s  %-*s  %-8s  %-8s  %s\n", "#", maxNameLen, "Name", "Motion", "Status", "Best")
	fmt.Printf("  %-3s  %-*s  %-8s  %-8s  %s\n", "-", maxNameLen, "----", "------", "------", "----")

	for i, lvl := range a.config.Levels {
		n := i + 1
		status := "locked"
		if a.ledger.IsUnlocked(n) {
			status = "open"
		}
		fmt.Printf("  %-3d  %-*s  %-8s  %-8s  %d\n", n, maxNameLen, lvl.Name, lvl.Motion, status, a.ledger.BestScore(n))
	}

	fmt.Println()
	fmt.Println("Run 'lanes play <level>' to start a level.")
	return nil
}
