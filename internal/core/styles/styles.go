// Package styles provides shared lipgloss v2 styles for CLI and TUI components.
package styles

import (
	"image/color"

	lipgloss "charm.land/lipgloss/v2"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Exported color aliases for convenience.
var (
	ColorPrimary    color.Color
	ColorSecondary  color.Color
	ColorForeground color.Color
	ColorMuted      color.Color
	ColorBackground color.Color
	ColorSurface    color.Color
	ColorSuccess    color.Color
	ColorWarning    color.Color
	ColorError      color.Color
)

// Style exports.
var (
	// Text styles, one per semantic color.
	TextPrimaryStyle        lipgloss.Style
	TextPrimaryBoldStyle    lipgloss.Style
	TextSecondaryStyle      lipgloss.Style
	TextForegroundStyle     lipgloss.Style
	TextForegroundBoldStyle lipgloss.Style
	TextMutedStyle          lipgloss.Style
	TextSurfaceStyle        lipgloss.Style
	TextSuccessStyle        lipgloss.Style
	TextWarningStyle        lipgloss.Style
	TextErrorStyle          lipgloss.Style

	// CLI styles.
	CommandHeaderStyle lipgloss.Style
	DividerStyle       lipgloss.Style

	// Help dialog styles.
	HelpDialogModalStyle   lipgloss.Style
	HelpDialogSectionStyle lipgloss.Style
	HelpDialogHelpStyle    lipgloss.Style

	// Toast styles.
	ToastInfoStyle    lipgloss.Style
	ToastWarningStyle lipgloss.Style
	ToastErrorStyle   lipgloss.Style

	// Store tracker styles.
	TrackerPanelStyle   lipgloss.Style
	TrackerTitleStyle   lipgloss.Style
	TrackerCloseStyle   lipgloss.Style
	TrackerHeaderStyle  lipgloss.Style
	TrackerCursorStyle  lipgloss.Style
	TrackerBodyStyle    lipgloss.Style
	TrackerErrorStyle   lipgloss.Style
	TrackerFooterStyle  lipgloss.Style
	TrackerEmptyStyle   lipgloss.Style
	TrackerScrollStyle  lipgloss.Style
	TrackerDividerStyle lipgloss.Style

	// Demo host styles.
	DemoTitleStyle lipgloss.Style
	DemoLabelStyle lipgloss.Style
	DemoValueStyle lipgloss.Style
	DemoHintStyle  lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	ColorPrimary = p.Primary
	ColorSecondary = p.Secondary
	ColorForeground = p.Foreground
	ColorMuted = p.Muted
	ColorBackground = p.Background
	ColorSurface = p.Surface
	ColorSuccess = p.Success
	ColorWarning = p.Warning
	ColorError = p.Error

	TextPrimaryStyle = lipgloss.NewStyle().Foreground(ColorPrimary)
	TextPrimaryBoldStyle = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	TextSecondaryStyle = lipgloss.NewStyle().Foreground(ColorSecondary)
	TextForegroundStyle = lipgloss.NewStyle().Foreground(ColorForeground)
	TextForegroundBoldStyle = lipgloss.NewStyle().Foreground(ColorForeground).Bold(true)
	TextMutedStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	TextSurfaceStyle = lipgloss.NewStyle().Foreground(ColorSurface)
	TextSuccessStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	TextWarningStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	TextErrorStyle = lipgloss.NewStyle().Foreground(ColorError)

	CommandHeaderStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	DividerStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	HelpDialogModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2)
	HelpDialogSectionStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	HelpDialogHelpStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		MarginTop(1)

	toastBase := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	ToastInfoStyle = toastBase.
		BorderForeground(ColorPrimary).
		Foreground(ColorForeground)
	ToastWarningStyle = toastBase.
		BorderForeground(ColorWarning).
		Foreground(ColorWarning)
	ToastErrorStyle = toastBase.
		BorderForeground(ColorError).
		Foreground(ColorError)

	// The panel is anchored to a screen edge by the tracker itself; the
	// style only carries the frame and colors.
	TrackerPanelStyle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(ColorSurface).
		Background(ColorBackground).
		Foreground(ColorForeground).
		Padding(1, 2)
	TrackerTitleStyle = lipgloss.NewStyle().
		Foreground(ColorForeground).
		Bold(true)
	TrackerCloseStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)
	TrackerHeaderStyle = lipgloss.NewStyle().
		Foreground(ColorSuccess).
		Bold(true)
	TrackerCursorStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary)
	TrackerBodyStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorSurface).
		Padding(0, 1)
	TrackerErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError)
	TrackerFooterStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	TrackerEmptyStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Italic(true)
	TrackerScrollStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	TrackerDividerStyle = lipgloss.NewStyle().
		Foreground(ColorSurface)

	DemoTitleStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	DemoLabelStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	DemoValueStyle = lipgloss.NewStyle().
		Foreground(ColorForeground).
		Bold(true)
	DemoHintStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		MarginTop(1)
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}
