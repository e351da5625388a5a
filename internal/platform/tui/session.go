package tui

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/neon-lanes/internal/config"
	"github.com/vovakirdan/neon-lanes/internal/core"
	"github.com/vovakirdan/neon-lanes/internal/games/lanes"
	"github.com/vovakirdan/neon-lanes/internal/progress"
	"github.com/vovakirdan/neon-lanes/internal/registry"
	"github.com/vovakirdan/neon-lanes/internal/storage"
)

// SessionDeps are the collaborators one player session runs with.
type SessionDeps struct {
	Config  *config.LanesConfig
	Ledger  *progress.Ledger
	History *storage.Store // May be nil
	Profile string
	Logger  *log.Logger
}

// NewGame creates the lanes game wired to the session's progression.
func (d SessionDeps) NewGame() (registry.Game, error) {
	g, err := registry.Create(lanes.GameID, registry.Env{
		Config:   d.Config,
		Progress: d.Ledger,
		Logger:   d.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("cannot create game: %w", err)
	}
	return g, nil
}

func (d SessionDeps) levels() []config.LevelConfig {
	if d.Config == nil {
		return config.DefaultLevels()
	}
	return d.Config.Levels
}

// SessionModel manages the full session flow: menu -> game, shop or
// scoreboard -> menu. It is the top-level model for local and SSH play.
type SessionModel struct {
	deps       SessionDeps
	config     core.RuntimeConfig
	screen     Screen
	menu       MenuModel
	gameModel  *GameModel
	shop       ShopModel
	scoreboard ScoreboardModel
	quitting   bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(deps SessionDeps, cfg core.RuntimeConfig) SessionModel {
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}
	if deps.Ledger == nil {
		var catalog []config.Cosmetic
		if deps.Config != nil {
			catalog = deps.Config.Cosmetics
		}
		deps.Ledger = progress.NewLedger(progress.NewMemoryStore(), catalog, deps.Logger)
	}
	if deps.Profile == "" {
		deps.Profile = storage.DefaultProfile
	}

	return SessionModel{
		deps:   deps,
		config: cfg,
		menu:   NewMenuModel(deps.Ledger, deps.Profile, cfg.ScreenW, cfg.ScreenH),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes messages to the active screen.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case ScreenPlay:
		return m.updateGame(msg)
	case ScreenShop:
		return m.updateShop(msg)
	case ScreenScores:
		return m.updateScores(msg)
	}
	return m.updateMenu(msg)
}

// backToMenu rebuilds the menu so the header shows fresh progression.
func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.screen = ScreenNone
	m.gameModel = nil
	m.menu = NewMenuModel(m.deps.Ledger, m.deps.Profile, m.config.ScreenW, m.config.ScreenH)
	return m, m.menu.Init()
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.menu.Selected() {
	case ScreenPlay:
		game, err := m.deps.NewGame()
		if err != nil {
			m.deps.Logger.Error("could not start game", "error", err)
			return m.backToMenu()
		}
		gm := NewGameModel(game, m.deps.History, m.deps.Profile, m.deps.Logger, m.config)
		m.gameModel = &gm
		m.screen = ScreenPlay
		return m, m.gameModel.Init()

	case ScreenShop:
		m.shop = NewShopModel(m.deps.Ledger, m.config.ScreenW, m.config.ScreenH)
		m.screen = ScreenShop
		return m, m.shop.Init()

	case ScreenScores:
		m.scoreboard = NewScoreboardModel(m.deps.History, m.deps.levels(), m.config.ScreenW, m.config.ScreenH)
		m.screen = ScreenScores
		return m, m.scoreboard.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.gameModel = &gameModel
	}

	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.gameModel.BackToMenu() {
		return m.backToMenu()
	}
	return m, cmd
}

// updateShop handles updates when in the shop.
func (m SessionModel) updateShop(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.shop.Update(msg)
	if shop, ok := newModel.(ShopModel); ok {
		m.shop = shop
	}

	if m.shop.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.shop.IsGoingBack() {
		return m.backToMenu()
	}
	return m, cmd
}

// updateScores handles updates when on the scoreboard.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scoreboard.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scoreboard = sb
	}

	if m.scoreboard.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scoreboard.IsGoingBack() {
		return m.backToMenu()
	}
	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case ScreenPlay:
		if m.gameModel != nil {
			return m.gameModel.View()
		}
	case ScreenShop:
		return m.shop.View()
	case ScreenScores:
		return m.scoreboard.View()
	}
	return m.menu.View()
}

// RunSession runs the full session flow in the local terminal.
func RunSession(deps SessionDeps, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewSessionModel(deps, cfg),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
