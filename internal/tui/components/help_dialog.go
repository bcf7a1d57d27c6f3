// Package components provides reusable TUI components.
package components

import (
	"strings"

	"charm.land/bubbles/v2/key"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/yutounun/storetracker/internal/core/styles"
)

// HelpDialogSection groups related key bindings under a title.
type HelpDialogSection struct {
	Title    string
	Bindings []key.Binding
}

// HelpDialog lists the keyboard shortcuts of a screen.
type HelpDialog struct {
	title     string
	closeHint string
	sections  []HelpDialogSection
}

// NewHelpDialog creates a help dialog. closeHint is shown at the bottom.
func NewHelpDialog(title, closeHint string, sections []HelpDialogSection) *HelpDialog {
	return &HelpDialog{
		title:     title,
		closeHint: closeHint,
		sections:  sections,
	}
}

// View renders the dialog box.
func (h *HelpDialog) View() string {
	title := styles.TextForegroundBoldStyle.Render(h.title)

	var lines []string
	separator := styles.TextMutedStyle.Render("─────────────────────────")

	for i, section := range h.sections {
		if section.Title != "" {
			if i > 0 {
				lines = append(lines, "")
			}
			lines = append(lines, styles.HelpDialogSectionStyle.Render(section.Title))
			lines = append(lines, separator)
		}

		for _, b := range section.Bindings {
			if !b.Enabled() {
				continue
			}
			lines = append(lines, formatKeyDesc(b.Help().Key, b.Help().Desc))
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		strings.Join(lines, "\n"),
	)
	if h.closeHint != "" {
		content = lipgloss.JoinVertical(lipgloss.Left, content, styles.HelpDialogHelpStyle.Render(h.closeHint))
	}

	return styles.HelpDialogModalStyle.Render(content)
}

// Overlay centers the dialog over background.
func (h *HelpDialog) Overlay(background string, width, height int) string {
	modal := h.View()

	bgLayer := lipgloss.NewLayer(background)
	modalLayer := lipgloss.NewLayer(modal)

	centerX := max((width-lipgloss.Width(modal))/2, 0)
	centerY := max((height-lipgloss.Height(modal))/2, 0)
	modalLayer.X(centerX).Y(centerY).Z(1)

	return lipgloss.NewCompositor(bgLayer, modalLayer).Render()
}

// formatKeyDesc aligns a key and its description in two columns.
func formatKeyDesc(k, desc string) string {
	const keyWidth = 12

	paddedKey := k + Pad(keyWidth-lipgloss.Width(k))
	return styles.TextPrimaryBoldStyle.Render(paddedKey) + styles.TextForegroundStyle.Render(desc)
}
