package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/nikhilr/prepmock/internal/ui/theme"
)

// MenuItem is one entry in a vertical menu. A nil Action renders the
// item but makes Enter a no-op; Disabled items are skipped entirely.
type MenuItem struct {
	Label    string
	Hint     string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical navigation menu with wrap-around selection.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a menu with the first enabled item selected.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	m.Selected = m.next(-1, 1)
	return m
}

// next returns the index of the first enabled item walking from i in
// the given direction, wrapping around. Returns i unchanged when every
// item is disabled.
func (m Menu) next(i, dir int) int {
	for step := 0; step < len(m.Items); step++ {
		i = (i + dir + len(m.Items)) % len(m.Items)
		if !m.Items[i].Disabled {
			return i
		}
	}
	return i
}

func (m Menu) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		m.Selected = m.next(m.Selected, -1)
	case "down", "j":
		m.Selected = m.next(m.Selected, 1)
	case "enter":
		if m.Selected >= 0 && m.Selected < len(m.Items) {
			if item := m.Items[m.Selected]; item.Action != nil && !item.Disabled {
				return m, item.Action()
			}
		}
	}

	return m, nil
}

// View renders the menu.
func (m Menu) View() string {
	var s string
	for i, item := range m.Items {
		line := "    " + item.Label
		switch {
		case item.Disabled:
			line = lipgloss.NewStyle().Foreground(theme.TextDim).Render(line)
		case i == m.Selected:
			line = theme.Selected.Render("  ▸ " + item.Label)
			if item.Hint != "" {
				line += theme.Hint.Render("  " + item.Hint)
			}
		default:
			line = theme.Unselected.Render(line)
		}
		s += line + "\n"
	}
	return s
}
