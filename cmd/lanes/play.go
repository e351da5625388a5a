package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/neon-lanes/internal/games/lanes"
	"github.com/vovakirdan/neon-lanes/internal/platform/tui"
	"github.com/vovakirdan/neon-lanes/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play Neon Lanes",
	Long: `Start the game. With a level argument the run starts immediately,
otherwise the level menu is shown.

Controls:
  Left/Right, A/D  - Change lane
  Space/Up/W       - Jump
  P                - Pause / resume
  R                - Restart the level
  B/Esc            - Back to the level menu
  1-9, 0           - Start a level from the menu
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Slower speed ramp, lower unlock thresholds
  normal - Default tuning
  hard   - Faster ramp, more traps, higher unlock thresholds
  fixed  - Obstacles never grow

Examples:
  lanes play
  lanes play 3
  lanes play 1 --difficulty hard
  lanes play --config ./my-lanes.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	a, err := openApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	start := 0
	if len(args) == 1 {
		if start, err = parseLevel(args[0], a.config); err != nil {
			return err
		}
		if !a.ledger.IsUnlocked(start) {
			return fmt.Errorf("level %d is locked for %s", start, flagProfile)
		}
	}

	game, err := registry.Create(lanes.GameID, registry.Env{
		Config:   &a.config,
		Progress: a.ledger,
		Logger:   a.logger,
	})
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}
	if lg, ok := game.(*lanes.Game); ok {
		lg.SetStartLevel(start)
	}

	if err := tui.Run(game, a.history, flagProfile, a.logger, runtimeConfig()); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
