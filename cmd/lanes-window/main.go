// lanes-window runs Neon Lanes in a desktop window.
//
// It shares the database and profiles with the terminal binary, so coins
// and unlocks earned in either frontend carry over.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/neon-lanes/internal/config"
	"github.com/vovakirdan/neon-lanes/internal/platform/window"
	"github.com/vovakirdan/neon-lanes/internal/progress"
	"github.com/vovakirdan/neon-lanes/internal/storage"
)

var (
	flagTPS        int
	flagSeed       int64
	flagDBPath     string
	flagProfile    string
	flagConfig     string
	flagDifficulty string
	flagWidth      int
	flagHeight     int
	flagLogLevel   string
)

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lanes-window",
	Short: "Neon Lanes in a desktop window",
	Long: `Play Neon Lanes in a window.

Controls:
  Left/Right, A/D  - Change lane
  Space/Up/W       - Jump
  P                - Pause / resume
  R                - Restart the level
  B/Esc            - Back to the level menu
  1-9, 0           - Start a level from the menu
  C                - Copy the run summary after a run
  Q                - Quit`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	profile := os.Getenv("LANES_PROFILE")
	if profile == "" {
		profile = storage.DefaultProfile
	}
	dbPath := os.Getenv("LANES_DB")
	if dbPath == "" {
		dbPath = "~/.arcade/lanes.db"
	}

	rootCmd.Flags().IntVar(&flagTPS, "fps", 60, "Tick rate (ticks per second)")
	rootCmd.Flags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.Flags().StringVar(&flagDBPath, "db", dbPath, "Path to progression database")
	rootCmd.Flags().StringVar(&flagProfile, "profile", profile, "Player profile")
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom lanes config YAML")
	rootCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.Flags().IntVar(&flagWidth, "width", 960, "Window width")
	rootCmd.Flags().IntVar(&flagHeight, "height", 640, "Window height")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
}

func run(_ *cobra.Command, _ []string) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "lanes-window",
	})
	if level, err := log.ParseLevel(flagLogLevel); err == nil {
		logger.SetLevel(level)
	}

	cfg, err := config.LoadLanes(flagConfig)
	if err != nil {
		logger.Warn("using default config", "error", err)
	}
	if flagDifficulty != "" {
		config.ApplyLanesPreset(&cfg, config.ParsePreset(flagDifficulty))
	}
	for _, fix := range cfg.Validate() {
		logger.Warn("config repaired", "fix", fix)
	}

	var backend progress.Store = progress.NewMemoryStore()
	history, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open database, progress will not be saved", "error", err)
	} else {
		defer history.Close()
		backend = history.Profile(flagProfile)
	}

	return window.Run(window.Options{
		Config:  &cfg,
		Ledger:  progress.NewLedger(backend, cfg.Cosmetics, logger),
		History: history,
		Profile: flagProfile,
		Logger:  logger,
		Seed:    flagSeed,
		TPS:     flagTPS,
		Width:   flagWidth,
		Height:  flagHeight,
	})
}
