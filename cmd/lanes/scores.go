package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var flagLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show run history",
	Long: `Without an argument, shows per-level statistics.
With a level, shows the top runs on that level.

Examples:
  lanes scores
  lanes scores 2 --limit 20`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
}

func runScores(_ *cobra.Command, args []string) error {
	a, err := openApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	if a.history == nil {
		return errors.New("run history unavailable: database could not be opened")
	}

	if len(args) == 0 {
		return printStats(a)
	}

	level, err := parseLevel(args[0], a.config)
	if err != nil {
		return err
	}
	lvl, _ := a.config.Level(level)

	runs, err := a.history.TopRuns(level, flagLimit)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	fmt.Printf("Top runs - Level %d %s\n", level, lvl.Name)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'lanes play %d' to set the first score!\n", level)
		return nil
	}

	fmt.Printf("  %-4s  %-12s  %-8s  %-6s  %-8s  %s\n", "Rank", "Player", "Score", "Coins", "Result", "Date")
	fmt.Printf("  %-4s  %-12s  %-8s  %-6s  %-8s  %s\n", "----", "------", "-----", "-----", "------", "----")
	for i, r := range runs {
		result := "crashed"
		if r.Completed {
			result = "cleared"
		}
		fmt.Printf("  %-4d  %-12s  %-8d  %-6d  %-8s  %s\n",
			i+1, r.Profile, r.Score, r.Coins, result, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func printStats(a *app) error {
	stats, err := a.history.AllLevelStats()
	if err != nil {
		return fmt.Errorf("retrieving stats: %w", err)
	}
	if len(stats) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	fmt.Printf("  %-5s  %-10s  %-5s  %-7s  %-6s  %-6s  %s\n", "Level", "Name", "Runs", "Cleared", "Best", "Avg", "Coins")
	fmt.Printf("  %-5s  %-10s  %-5s  %-7s  %-6s  %-6s  %s\n", "-----", "----", "----", "-------", "----", "---", "-----")
	for _, st := range stats {
		lvl, _ := a.config.Level(st.Level)
		fmt.Printf("  %-5d  %-10s  %-5d  %-7d  %-6d  %-6.0f  %d\n",
			st.Level, lvl.Name, st.Runs, st.Completed, st.HighScore, st.AvgScore, st.TotalCoins)
	}
	return nil
}
