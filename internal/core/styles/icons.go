package styles

// Glyphs used by the store tracker. They are plain unicode so the panel
// renders without a patched font.
var (
	IconClose     = "✖"
	IconCollapsed = "▶"
	IconExpanded  = "▼"
	IconCursor    = "┃"
	IconWarning   = "⚠"
)

// Toast glyphs.
var (
	IconNotifyInfo    = "●"
	IconNotifyWarning = IconWarning
	IconNotifyError   = "✗"
)
