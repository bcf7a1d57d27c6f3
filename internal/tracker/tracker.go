// Package tracker implements a togglable debug overlay that shows a live,
// collapsible dump of named application stores on top of a Bubble Tea
// program.
//
// The overlay starts hidden. Shift+Z, delivered through a KeySource the
// host publishes every key press to, shows and hides it. Each store is a
// section that starts collapsed and expands to a colorized JSON dump of
// its current value.
package tracker

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/rs/zerolog"

	"github.com/yutounun/storetracker/internal/core/logging"
	"github.com/yutounun/storetracker/internal/core/styles"
	"github.com/yutounun/storetracker/internal/tui/mouse"
)

// HelpSection is the disclosure key of the optional help section. It holds
// a control character, so it cannot clash with a printable store name.
const HelpSection = "\x00help"

// Side selects the screen edge the panel is anchored to.
type Side int

const (
	SideRight Side = iota
	SideLeft
)

// ParseSide maps "right" and "left" to a Side.
func ParseSide(s string) (Side, bool) {
	switch s {
	case "right", "":
		return SideRight, true
	case "left":
		return SideLeft, true
	}
	return SideRight, false
}

func (s Side) String() string {
	if s == SideLeft {
		return "left"
	}
	return "right"
}

// KeySource delivers every key press of the host program.
// keybus.Bus satisfies it.
type KeySource interface {
	Subscribe(fn func(tea.KeyPressMsg)) (release func())
}

const (
	defaultWidthPercent = 50
	defaultBodyPercent  = 30
)

// Option configures a Tracker.
type Option func(*Tracker)

// WithPanelStyle replaces the default panel style. Width and Height set on
// the style take precedence over the percentage defaults.
func WithPanelStyle(s lipgloss.Style) Option {
	return func(t *Tracker) { t.panelStyle = s; t.customStyle = true }
}

// WithHelpSection enables the static usage section.
func WithHelpSection(enabled bool) Option {
	return func(t *Tracker) { t.showHelp = enabled }
}

// WithProvider sets a function consulted on every render. It takes
// precedence over the mapping passed to New.
func WithProvider(fn func() Stores) Option {
	return func(t *Tracker) { t.provider = fn }
}

// WithSide anchors the panel to the left or right edge.
func WithSide(side Side) Option {
	return func(t *Tracker) { t.side = side }
}

// WithWidthPercent sets the panel width as a share of the screen width.
func WithWidthPercent(percent int) Option {
	return func(t *Tracker) {
		if percent > 0 && percent <= 100 {
			t.widthPercent = percent
		}
	}
}

// WithBodyHeight caps an open section body at percent of the screen height.
func WithBodyHeight(percent int) Option {
	return func(t *Tracker) {
		if percent > 0 && percent <= 100 {
			t.bodyPercent = percent
		}
	}
}

// WithLogger sets the component logger.
func WithLogger(l zerolog.Logger) Option {
	return func(t *Tracker) { t.logger = l }
}

// Tracker is the debug overlay. It is not safe for concurrent use; drive
// it from the Bubble Tea Update loop.
type Tracker struct {
	stores      Stores
	provider    func() Stores
	panelStyle  lipgloss.Style
	customStyle bool
	showHelp    bool
	side        Side

	widthPercent int
	bodyPercent  int

	logger zerolog.Logger
	keys   keyMap

	visible bool
	open    map[string]bool
	bodies  map[string]*bodyView
	cursor  int
	scroll  int // first visible content line
	reveal  bool

	width  int
	height int

	release func()
	hits    *mouse.HitMap
	help    helpCache
}

// New creates a hidden tracker for stores. Every store starts collapsed.
func New(stores Stores, opts ...Option) *Tracker {
	t := &Tracker{
		stores:       stores,
		widthPercent: defaultWidthPercent,
		bodyPercent:  defaultBodyPercent,
		logger:       logging.Component("tracker"),
		keys:         defaultKeyMap(),
		open:         make(map[string]bool),
		bodies:       make(map[string]*bodyView),
		hits:         mouse.NewHitMap(),
	}
	for _, opt := range opts {
		opt(t)
	}

	t.seed(t.sections())
	return t
}

// Mount subscribes the Shift+Z handler to src and returns the function
// that releases it. Mounting an already mounted tracker is a no-op. A nil
// source leaves the tracker usable but unreachable by shortcut.
func (t *Tracker) Mount(src KeySource) (release func()) {
	if t.release != nil {
		return t.Unmount
	}

	if src == nil {
		t.logger.Warn().Msg("no key source, shortcut disabled")
		return func() {}
	}

	rel := src.Subscribe(t.handleShortcut)
	if rel == nil {
		t.logger.Warn().Msg("key source refused subscription, shortcut disabled")
		return func() {}
	}

	t.release = rel
	t.logger.Debug().Msg("mounted")
	return t.Unmount
}

// Unmount releases the shortcut subscription. Safe to call repeatedly.
func (t *Tracker) Unmount() {
	if t.release == nil {
		return
	}
	rel := t.release
	t.release = nil
	rel()
	t.logger.Debug().Msg("unmounted")
}

// Mounted reports whether the shortcut handler is subscribed.
func (t *Tracker) Mounted() bool {
	return t.release != nil
}

func (t *Tracker) handleShortcut(msg tea.KeyPressMsg) {
	// Caps Lock alone also yields "Z" on terminals that report it.
	if msg.Mod.Contains(tea.ModCapsLock) && !msg.Mod.Contains(tea.ModShift) {
		return
	}
	if key.Matches(msg, t.keys.Toggle) {
		t.Toggle()
	}
}

// Toggle flips panel visibility.
func (t *Tracker) Toggle() {
	t.visible = !t.visible
	t.logger.Debug().Bool("visible", t.visible).Msg("panel toggled")
}

// Close hides the panel.
func (t *Tracker) Close() {
	if t.visible {
		t.logger.Debug().Msg("panel closed")
	}
	t.visible = false
}

// Visible reports whether the panel is shown.
func (t *Tracker) Visible() bool {
	return t.visible
}

// ToggleSection flips the disclosure flag of one section.
func (t *Tracker) ToggleSection(name string) {
	t.open[name] = !t.open[name]
	t.logger.Debug().Str("section", name).Bool("open", t.open[name]).Msg("section toggled")
}

// SectionOpen reports whether the named section is expanded.
func (t *Tracker) SectionOpen(name string) bool {
	return t.open[name]
}

// Sections returns the section keys in render order. The help section,
// when enabled, comes first under HelpSection.
func (t *Tracker) Sections() []string {
	return t.sections()
}

// SetStores replaces the static mapping.
func (t *Tracker) SetStores(stores Stores) {
	t.stores = stores
}

// Update handles window, mouse, navigation and StoresMsg messages. The
// Shift+Z shortcut is not handled here; it arrives through the KeySource.
func (t *Tracker) Update(msg tea.Msg) (*Tracker, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		t.width, t.height = msg.Width, msg.Height
	case StoresMsg:
		t.SetStores(msg.Stores)
	case tea.MouseClickMsg:
		if t.visible {
			t.handleClick(msg.Mouse())
		}
	case tea.MouseWheelMsg:
		if t.visible {
			t.handleWheel(msg.Mouse())
		}
	case tea.KeyPressMsg:
		if t.visible {
			t.handleKey(msg)
		}
	}
	return t, nil
}

func (t *Tracker) handleKey(msg tea.KeyPressMsg) {
	rows := t.sections()
	if len(rows) == 0 {
		return
	}
	t.cursor = clamp(t.cursor, 0, len(rows)-1)

	switch {
	case key.Matches(msg, t.keys.Next):
		t.cursor = (t.cursor + 1) % len(rows)
		t.reveal = true
	case key.Matches(msg, t.keys.Prev):
		t.cursor = (t.cursor - 1 + len(rows)) % len(rows)
		t.reveal = true
	case key.Matches(msg, t.keys.Expand):
		t.ToggleSection(rows[t.cursor])
		t.reveal = true
	case key.Matches(msg, t.keys.PageDown):
		if bv, ok := t.bodies[rows[t.cursor]]; ok && t.open[rows[t.cursor]] {
			bv.vp.ScrollDown(max(bv.vp.VisibleLineCount()-1, 1))
		}
	case key.Matches(msg, t.keys.PageUp):
		if bv, ok := t.bodies[rows[t.cursor]]; ok && t.open[rows[t.cursor]] {
			bv.vp.ScrollUp(max(bv.vp.VisibleLineCount()-1, 1))
		}
	}
}

func (t *Tracker) handleClick(m tea.Mouse) {
	if m.Button != tea.MouseLeft {
		return
	}

	region := t.hits.Test(m.X, m.Y)
	if region == nil {
		return
	}

	switch region.ID {
	case regionClose:
		t.Close()
	case regionHeader:
		name, _ := region.Data.(string)
		t.focus(name)
		t.ToggleSection(name)
	}
}

func (t *Tracker) handleWheel(m tea.Mouse) {
	region := t.hits.Test(m.X, m.Y)
	if region == nil {
		return
	}

	delta := 1
	switch m.Button {
	case tea.MouseWheelUp:
		delta = -1
	case tea.MouseWheelDown:
	default:
		return
	}

	if region.ID == regionBody {
		name, _ := region.Data.(string)
		if bv, ok := t.bodies[name]; ok {
			if delta < 0 {
				bv.vp.ScrollUp(1)
			} else {
				bv.vp.ScrollDown(1)
			}
			return
		}
	}

	t.scroll = max(t.scroll+delta, 0)
}

func (t *Tracker) focus(name string) {
	for i, s := range t.sections() {
		if s == name {
			t.cursor = i
			return
		}
	}
}

// current returns the mapping to render.
func (t *Tracker) current() Stores {
	if t.provider != nil {
		return t.provider()
	}
	return t.stores
}

// sections lists the disclosure keys in render order.
func (t *Tracker) sections() []string {
	stores := t.current()
	out := make([]string, 0, len(stores)+1)
	if t.showHelp {
		out = append(out, HelpSection)
	}
	return append(out, stores.Names()...)
}

// seed records a closed flag for every section not seen before.
func (t *Tracker) seed(names []string) {
	for _, name := range names {
		if _, ok := t.open[name]; !ok {
			t.open[name] = false
		}
	}
}

func (t *Tracker) defaultStyle() lipgloss.Style {
	if t.customStyle {
		return t.panelStyle
	}
	return styles.TrackerPanelStyle
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}
