package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/neon-lanes/internal/progress"
)

// Screen identifies where the main menu sends the player.
type Screen int

const (
	ScreenNone Screen = iota
	ScreenPlay
	ScreenShop
	ScreenScores
)

// MenuItem represents a selectable entry in the main menu.
type MenuItem struct {
	Label  string
	Target Screen
}

var mainMenuItems = []MenuItem{
	{Label: "Play", Target: ScreenPlay},
	{Label: "Shop", Target: ScreenShop},
	{Label: "Scores", Target: ScreenScores},
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	activeItem = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
)

// MenuModel is the Bubble Tea model for the main menu.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	width     int
	height    int
	profile   string
	ledger    *progress.Ledger
	keyMapper *KeyMapper
	quitting  bool
	selected  Screen
}

// NewMenuModel creates a new menu model. ledger feeds the header line.
func NewMenuModel(ledger *progress.Ledger, profile string, width, height int) MenuModel {
	return MenuModel{
		items:     mainMenuItems,
		width:     width,
		height:    height,
		profile:   profile,
		ledger:    ledger,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		m.selected = m.items[m.cursor].Target
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("N E O N   L A N E S", m.width)))
	b.WriteString("\n\n")

	if m.ledger != nil {
		skin := m.ledger.SelectedCosmetic()
		info := fmt.Sprintf("%s  |  Coins %d  |  Skin %s", m.profile, m.ledger.TotalCoins(), skin)
		b.WriteString(infoStyle.Render(centerText(info, m.width)))
		b.WriteString("\n\n")
	}

	for i, item := range m.items {
		line := "  " + item.Label
		if i == m.cursor {
			line = activeItem.Render(centerText("> "+item.Label, m.width))
		} else {
			line = centerText(line, m.width)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(centerText("Up/Down: Navigate  |  Enter: Select  |  Q: Quit", m.width)))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the chosen screen, or ScreenNone.
func (m MenuModel) Selected() Screen {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}
