package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/neon-lanes/internal/config"
	"github.com/vovakirdan/neon-lanes/internal/core"
	"github.com/vovakirdan/neon-lanes/internal/progress"
)

// ShopKeyMap defines the key bindings for the cosmetics shop.
type ShopKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Buy  key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ShopKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Buy, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ShopKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Buy}, {k.Back, k.Quit}}
}

// DefaultShopKeyMap returns default key bindings.
func DefaultShopKeyMap() ShopKeyMap {
	return ShopKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("down/j", "down"),
		),
		Buy: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "buy/equip"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShopModel is the Bubble Tea model for buying and equipping cosmetics.
type ShopModel struct {
	ledger    *progress.Ledger
	items     []config.Cosmetic
	cursor    int
	message   string
	keys      ShopKeyMap
	help      help.Model
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewShopModel creates a shop over the ledger's catalog.
func NewShopModel(ledger *progress.Ledger, width, height int) ShopModel {
	h := help.New()
	h.Width = width
	return ShopModel{
		ledger: ledger,
		items:  ledger.Catalog(),
		keys:   DefaultShopKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
}

// Init initializes the shop model.
func (m ShopModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the shop.
func (m ShopModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Buy):
			m.activate()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}
	return m, nil
}

// activate buys the highlighted cosmetic, or equips it when already owned.
func (m *ShopModel) activate() {
	if len(m.items) == 0 {
		return
	}
	item := m.items[m.cursor]

	if !m.ledger.Owns(item.ID) {
		err := m.ledger.Purchase(item.ID)
		switch {
		case errors.Is(err, progress.ErrInsufficientCoins):
			m.message = fmt.Sprintf("Need %d more coins for %s", item.Cost-m.ledger.TotalCoins(), item.Name)
			return
		case err != nil:
			m.message = "Purchase failed, try again later"
			return
		}
	}

	if err := m.ledger.Select(item.ID); err != nil {
		m.message = "Could not equip " + item.Name
		return
	}
	m.message = fmt.Sprintf("%s equipped", item.Name)
}

// View renders the shop.
func (m ShopModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("SHOP", m.width)))
	b.WriteString("\n\n")
	b.WriteString(infoStyle.Render(centerText(fmt.Sprintf("Coins %d", m.ledger.TotalCoins()), m.width)))
	b.WriteString("\n\n")

	selected := m.ledger.SelectedCosmetic()
	for i, item := range m.items {
		status := fmt.Sprintf("%d coins", item.Cost)
		switch {
		case item.ID == selected:
			status = "equipped"
		case m.ledger.Owns(item.ID):
			status = "owned"
		}

		marker := "  "
		if i == m.cursor {
			marker = "> "
		}
		face := styleFor(core.ParseColor(item.Color)).Render(fmt.Sprintf("[%s]", item.Face))
		line := fmt.Sprintf("%s%-8s %s %10s", marker, item.Name, face, status)
		if i == m.cursor {
			line = lipgloss.NewStyle().Bold(true).Render(line)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.message != "" {
		b.WriteString(infoStyle.Render(centerText(m.message, m.width)))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ShopModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ShopModel) IsQuitting() bool {
	return m.quitting
}
