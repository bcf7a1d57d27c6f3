package components

import (
	"strings"
	"sync"

	"github.com/charmbracelet/x/ansi"
)

// Cache for padding strings to avoid strings.Repeat allocations.
// Supports padding widths from 0 to 200 characters.
var paddingCache [201]string

var paddingOnce sync.Once

func initPaddingCache() {
	for i := 1; i <= 200; i++ {
		paddingCache[i] = strings.Repeat(" ", i)
	}
}

// Pad returns a string of n spaces, using a cache for efficiency.
func Pad(n int) string {
	if n <= 0 {
		return ""
	}
	if n <= 200 {
		paddingOnce.Do(initPaddingCache)
		return paddingCache[n]
	}
	return strings.Repeat(" ", n)
}

// Fit truncates s with an ellipsis or pads it with spaces so its display
// width is exactly width. ANSI sequences are preserved and not counted.
func Fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	w := ansi.StringWidth(s)
	if w > width {
		return ansi.Truncate(s, width, "…")
	}
	return s + Pad(width-w)
}

// FitLines applies Fit to every line and pads the result to height lines.
// A negative height keeps the original line count.
func FitLines(lines []string, width, height int) []string {
	out := make([]string, 0, max(len(lines), height))
	for _, line := range lines {
		if height >= 0 && len(out) == height {
			break
		}
		out = append(out, Fit(line, width))
	}
	blank := Pad(width)
	for len(out) < height {
		out = append(out, blank)
	}
	return out
}
