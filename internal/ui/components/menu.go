package components

import (
	tea "charm.land/bubbletea/v2"
)

// MenuItem is one entry in a navigation menu. Hotkey, when set, selects
// and activates the item in one keystroke.
type MenuItem struct {
	Label    string
	Hotkey   string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu tracks selection in a vertical navigation menu. Rendering is left
// to the screen that owns it.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a menu with the first enabled item selected.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	m.move(1)
	if m.Selected < 0 {
		m.Selected = 0
	}
	return m
}

// move steps the cursor by dir, wrapping around and skipping disabled
// items. It leaves the cursor alone when nothing is enabled.
func (m *Menu) move(dir int) {
	n := len(m.Items)
	for step := 1; step <= n; step++ {
		i := ((m.Selected+dir*step)%n + n) % n
		if !m.Items[i].Disabled {
			m.Selected = i
			return
		}
	}
}

func (m Menu) activate(i int) tea.Cmd {
	item := m.Items[i]
	if item.Disabled || item.Action == nil {
		return nil
	}
	return item.Action()
}

// Update handles keyboard navigation.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		m.move(-1)
	case "down", "j", "tab":
		m.move(1)
	case "enter":
		if m.Selected >= 0 && m.Selected < len(m.Items) {
			return m, m.activate(m.Selected)
		}
	default:
		for i, item := range m.Items {
			if item.Hotkey != "" && item.Hotkey == key && !item.Disabled {
				m.Selected = i
				return m, m.activate(i)
			}
		}
	}
	return m, nil
}
