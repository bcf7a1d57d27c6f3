// Package tuitest provides testing utilities for TUI components.
package tuitest

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
)

// StripANSI removes ANSI escape codes and trailing whitespace so rendered
// views can be compared as plain text.
func StripANSI(s string) string {
	s = ansi.Strip(s)
	lines := strings.Split(s, "\n")
	result := make([]string, 0, len(lines))
	for _, line := range lines {
		result = append(result, strings.TrimRight(line, " "))
	}
	return strings.TrimRight(strings.Join(result, "\n"), "\n")
}

// KeyPress creates a key press message carrying printable text.
func KeyPress(text string) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: -1, Text: text}
}

// ShiftZ creates the Shift+Z press a legacy terminal reports.
func ShiftZ() tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: 'z', ShiftedCode: 'Z', Mod: tea.ModShift, Text: "Z"}
}

// KeyCode creates a key press message for a non-printable key.
func KeyCode(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// KeyEnter creates an enter key press message.
func KeyEnter() tea.KeyPressMsg {
	return KeyCode(tea.KeyEnter)
}

// KeyTab creates a tab key press message.
func KeyTab() tea.KeyPressMsg {
	return KeyCode(tea.KeyTab)
}

// Click creates a left click at the given cell.
func Click(x, y int) tea.MouseClickMsg {
	return tea.MouseClickMsg{X: x, Y: y, Button: tea.MouseLeft}
}

// WheelDown creates a wheel-down event at the given cell.
func WheelDown(x, y int) tea.MouseWheelMsg {
	return tea.MouseWheelMsg{X: x, Y: y, Button: tea.MouseWheelDown}
}

// WheelUp creates a wheel-up event at the given cell.
func WheelUp(x, y int) tea.MouseWheelMsg {
	return tea.MouseWheelMsg{X: x, Y: y, Button: tea.MouseWheelUp}
}

// WindowSize creates a window size message.
func WindowSize(w, h int) tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: w, Height: h}
}
