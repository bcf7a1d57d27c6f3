package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThemeNames_Sorted(t *testing.T) {
	names := ThemeNames()
	require.NotEmpty(t, names)
	assert.IsNonDecreasing(t, names)
	assert.Contains(t, names, DefaultTheme)
}

func TestValidateTheme(t *testing.T) {
	require.NoError(t, ValidateTheme("gruvbox"))

	err := ValidateTheme("solarized-neon")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "solarized-neon")
	assert.Contains(t, err.Error(), DefaultTheme)
}

func TestSetTheme_RebuildsStyles(t *testing.T) {
	t.Cleanup(func() { SetTheme(themes[DefaultTheme]) })

	p, ok := GetPalette("gruvbox")
	require.True(t, ok)

	SetTheme(p)

	assert.Equal(t, p, CurrentPalette)
	assert.Equal(t, p.Success, ColorSuccess)
	assert.Equal(t, p.Success, TrackerHeaderStyle.GetForeground())
	assert.Equal(t, p.Background, TrackerPanelStyle.GetBackground())
}

func TestGlamourStyle_UsesActivePalette(t *testing.T) {
	cfg := GlamourStyle()

	require.NotNil(t, cfg.Document.Margin)
	assert.Equal(t, uint(0), *cfg.Document.Margin)
	require.NotNil(t, cfg.H1.Color)
	assert.Equal(t, *colorHexPtr(ColorPrimary), *cfg.H1.Color)
}
