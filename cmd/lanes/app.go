package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/neon-lanes/internal/config"
	"github.com/vovakirdan/neon-lanes/internal/core"
	"github.com/vovakirdan/neon-lanes/internal/progress"
	"github.com/vovakirdan/neon-lanes/internal/storage"
)

const (
	storeSQLite = "sqlite"
	storeKV     = "kv"

	kvAppName = "neon-lanes"
)

// app holds everything one command invocation runs with.
type app struct {
	config  config.LanesConfig
	logger  *log.Logger
	history *storage.Store // Nil when the database cannot be opened
	ledger  *progress.Ledger
	logFile io.Closer
}

// newLogger builds the command logger writing to w.
func newLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "lanes",
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// fileLogger opens ~/.arcade/lanes.log so logs stay off the alt screen.
// Falls back to discarding logs.
func fileLogger() (*log.Logger, io.Closer) {
	path, err := storage.ExpandPath("~/.arcade/lanes.log")
	if err == nil {
		err = os.MkdirAll(filepath.Dir(path), 0o755)
	}
	if err != nil {
		return newLogger(io.Discard), nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return newLogger(io.Discard), nil
	}
	return newLogger(f), f
}

// loadConfig reads, presets and validates the lanes config.
func loadConfig(logger *log.Logger) config.LanesConfig {
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
	return cfg
}

// openApp wires config, history and progression for one command.
// tui selects file logging for commands that take over the terminal.
func openApp(tui bool) (*app, error) {
	a := &app{}
	if tui {
		a.logger, a.logFile = fileLogger()
	} else {
		a.logger = newLogger(os.Stderr)
	}
	a.config = loadConfig(a.logger)

	history, err := storage.Open(flagDBPath)
	if err != nil {
		a.logger.Warn("could not open database, run history disabled", "path", flagDBPath, "error", err)
	}
	a.history = history

	store, err := a.progressStore()
	if err != nil {
		a.Close()
		return nil, err
	}
	a.ledger = progress.NewLedger(store, a.config.Cosmetics, a.logger)
	return a, nil
}

// progressStore picks the progression backend named by --store.
func (a *app) progressStore() (progress.Store, error) {
	switch flagStore {
	case storeSQLite, "":
		if a.history == nil {
			a.logger.Warn("progress will not be saved")
			return progress.NewMemoryStore(), nil
		}
		return a.history.Profile(flagProfile), nil
	case storeKV:
		kv, err := storage.OpenKV(kvAppName, flagProfile)
		if err != nil {
			a.logger.Warn("could not open key-value store, progress will not be saved", "error", err)
			return progress.NewMemoryStore(), nil
		}
		return kv, nil
	default:
		return nil, fmt.Errorf("unknown store %q (want %s or %s)", flagStore, storeSQLite, storeKV)
	}
}

// Close releases the database and log file.
func (a *app) Close() {
	if a.history != nil {
		if err := a.history.Close(); err != nil {
			a.logger.Warn("closing database", "error", err)
		}
	}
	if a.logFile != nil {
		_ = a.logFile.Close()
	}
}

// runtimeConfig builds the simulation config from flags and the terminal size.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// parseLevel validates a level argument against the config.
func parseLevel(arg string, cfg config.LanesConfig) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid level %q", arg)
	}
	if n < 1 || n > cfg.LevelCount() {
		return 0, fmt.Errorf("level %d out of range 1-%d", n, cfg.LevelCount())
	}
	return n, nil
}
