package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/yutounun/storetracker/internal/core/styles"
	"github.com/yutounun/storetracker/internal/tui/components"
)

const (
	fallbackWidth  = 80
	fallbackHeight = 24
	shopTitle      = "Corner Shop"
)

// View renders the shop screen with the help dialog, tracker panel and
// toasts layered on top, in that order.
func (m *Model) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}

	v := tea.NewView(m.render())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	return v
}

func (m *Model) render() string {
	width, height := m.width, m.height
	if width <= 0 {
		width = fallbackWidth
	}
	if height <= 0 {
		height = fallbackHeight
	}

	content := m.renderShop(width, height)
	if m.showHelp {
		content = m.helpDialog.Overlay(content, width, height)
	}
	content = m.tracker.Overlay(content, width, height)
	return m.toasts.Overlay(content, width, height)
}

// renderShop draws the full-screen background.
func (m *Model) renderShop(width, height int) string {
	user, loggedIn := m.shop.User()
	status := "signed out"
	if loggedIn {
		status = "signed in"
	}

	row := func(label, value string) string {
		return styles.DemoLabelStyle.Render(fmt.Sprintf("%-10s", label)) + styles.DemoValueStyle.Render(value)
	}

	lines := []string{
		"",
		" " + styles.DemoTitleStyle.Render(shopTitle),
		"",
		" " + row("Cart", fmt.Sprintf("%d items · %s", m.shop.Items(), m.shop.Total())),
		" " + row("User", fmt.Sprintf("%s (%s)", user, status)),
		" " + row("Theme", m.cfg.Theme),
	}

	if m.opts.StateFile != "" {
		source := fmt.Sprintf("%s (%d stores)", filepath.Base(m.opts.StateFile), len(m.stateStores()))
		if m.watcher != nil {
			source += " · watching"
		}
		lines = append(lines, " "+row("State", source))
	}

	hint := " + / - cart · l login · shift+z store panel · ? help · q quit"
	lines = append(lines, strings.Split(styles.DemoHintStyle.Render(hint), "\n")...)

	return strings.Join(components.FitLines(lines, width, height), "\n")
}
