package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/neon-lanes/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start a full session with menu, shop and scoreboard",
	Long: `Start Neon Lanes in interactive session mode.

Use arrow keys or j/k to navigate, Enter to select.
After a run you return to the level menu; Back returns to the main menu.

Examples:
  lanes menu
  lanes menu --fps 30
  lanes menu --store kv --profile ana`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	a, err := openApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	deps := tui.SessionDeps{
		Config:  &a.config,
		Ledger:  a.ledger,
		History: a.history,
		Profile: flagProfile,
		Logger:  a.logger,
	}
	return tui.RunSession(deps, runtimeConfig())
}
