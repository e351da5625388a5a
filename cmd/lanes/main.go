// lanes is the Neon Lanes runner for the terminal and over SSH.
//
// Usage:
//
//	lanes list              - List levels and their unlock state
//	lanes play [level]      - Play, optionally starting a level directly
//	lanes menu              - Full session: levels, shop and scoreboard
//	lanes scores [level]    - Show run history
//	lanes shop [buy|equip]  - List, buy or equip cosmetics
//	lanes serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.arcade/lanes.db)
//	--store <backend>   - Progression backend: sqlite or kv
//	--profile <name>    - Player profile
//	--config <path>     - Custom lanes.yaml
//	--difficulty <name> - easy, normal, hard or fixed
//	--log-level <level> - debug, info, warn or error
//
// A .env file in the working directory may set LANES_DB, LANES_STORE,
// LANES_PROFILE and LANES_SSH_ADDR as flag defaults.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/neon-lanes/internal/games/lanes"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagStore      string
	flagProfile    string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	// Missing .env is the normal case
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lanes",
	Short: "Neon Lanes - a three-lane runner in your terminal",
	Long: `Neon Lanes is a lane runner: dodge or jump obstacles, collect coins,
reach each level's target distance and unlock the next one.

Available commands:
  list     - Show levels and unlock state
  play     - Play directly
  menu     - Levels, shop and scoreboard
  scores   - View run history
  shop     - Buy and equip cosmetics
  serve    - Start SSH server for remote play

Examples:
  lanes list
  lanes play 2
  lanes menu --profile ana
  lanes serve --ssh :2222
  lanes scores 1`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", envOr("LANES_DB", "~/.arcade/lanes.db"), "Path to progression database")
	rootCmd.PersistentFlags().StringVar(&flagStore, "store", envOr("LANES_STORE", storeSQLite), "Progression backend: sqlite or kv")
	rootCmd.PersistentFlags().StringVar(&flagProfile, "profile", envOr("LANES_PROFILE", defaultProfile()), "Player profile")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom lanes config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(shopCmd)
	rootCmd.AddCommand(serveCmd)
}

// envOr returns the environment value for key, or def when unset.
func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func defaultProfile() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "default"
}
