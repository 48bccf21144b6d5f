package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/avoronov/gridframe/internal/registry"
	"github.com/avoronov/gridframe/internal/storage"
)

var (
	menuTitleStyle    = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	menuItemStyle     = lipgloss.NewStyle().Padding(0, 2)
	menuSelectedStyle = lipgloss.NewStyle().Padding(0, 2).Bold(true).Foreground(lipgloss.Color("212"))
	menuStatsStyle    = lipgloss.NewStyle().Faint(true)
	menuFooterStyle   = lipgloss.NewStyle().Faint(true).Padding(1, 2)
)

// MenuModel lets an SSH user pick a game from the registry.
type MenuModel struct {
	games    []registry.GameInfo
	cursor   int
	store    *storage.Store
	selected *registry.GameInfo
	quitting bool
}

// NewMenuModel creates a menu over all registered games.
func NewMenuModel(store *storage.Store) MenuModel {
	return MenuModel{
		games: registry.List(),
		store: store,
	}
}

// Init is a no-op; the menu is purely event driven.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles menu navigation.
func (m MenuModel) Update(msg tea.Msg) (MenuModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "ctrl+c", "q":
		m.quitting = true
	case "up", "k", "w":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j", "s":
		if m.cursor < len(m.games)-1 {
			m.cursor++
		}
	case "enter", " ":
		if len(m.games) > 0 {
			info := m.games[m.cursor]
			m.selected = &info
		}
	}

	return m, nil
}

// Selected returns the chosen game, or nil while the user is still browsing.
func (m MenuModel) Selected() *registry.GameInfo {
	return m.selected
}

// IsQuitting reports whether the user asked to leave.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// View renders the game list with per-game play counts when storage is
// available.
func (m MenuModel) View() string {
	var sb strings.Builder
	sb.WriteString(menuTitleStyle.Render("gridframe"))
	sb.WriteString("\n\n")

	if len(m.games) == 0 {
		sb.WriteString(menuItemStyle.Render("no games registered"))
	}

	for i, g := range m.games {
		line := fmt.Sprintf("%s  (%dx%d)", g.Title, g.Rows, g.Cols)
		if m.store != nil {
			if stats, err := m.store.GetGameStats(g.ID); err == nil && stats.Runs > 0 {
				line += menuStatsStyle.Render(fmt.Sprintf("  %d runs", stats.Runs))
			}
		}
		if i == m.cursor {
			sb.WriteString(menuSelectedStyle.Render("> " + line))
		} else {
			sb.WriteString(menuItemStyle.Render("  " + line))
		}
		sb.WriteRune('\n')
	}

	sb.WriteString(menuFooterStyle.Render("up/down move · enter play · q quit"))
	return sb.String()
}
