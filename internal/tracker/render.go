package tracker

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/viewport"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/yutounun/storetracker/internal/core/styles"
	"github.com/yutounun/storetracker/internal/tui/components"
	"github.com/yutounun/storetracker/internal/tui/jsoncolor"
)

// Hit region IDs. Header and body regions carry the section key as data.
const (
	regionPanel  = "panel"
	regionClose  = "close"
	regionHeader = "header"
	regionBody   = "body"
)

const (
	panelTitle = "Store Debug Panel"
	emptyText  = "No stores to inspect"

	fallbackWidth  = 80
	fallbackHeight = 24

	minInnerWidth = 10
	minBodyLines  = 3
	chromeLines   = 3 // title, divider, footer
	bodyIndent    = 2
)

// placed is a hit region in panel content coordinates.
type placed struct {
	id   string
	name string
	x, y int
	w, h int
}

type bodyView struct {
	vp     viewport.Model
	width  int
	height int
}

// UnserializableMarker formats the text shown in place of a dump that failed.
func UnserializableMarker(err error) string {
	return styles.IconWarning + " unserializable value: " + err.Error()
}

// Dump returns the plain-text dump of value exactly as an open section
// shows it, or the unserializable marker.
func Dump(value any) string {
	text, err := dump(value)
	if err != nil {
		return UnserializableMarker(err)
	}
	return text
}

func dump(value any) (string, error) {
	resolved, err := resolve(value)
	if err != nil {
		return "", err
	}
	return jsoncolor.Dump(resolved)
}

// View renders the panel, or "" when hidden. Mouse regions are recorded
// for the position Overlay places the panel at.
func (t *Tracker) View() string {
	if !t.visible {
		t.hits.Clear()
		return ""
	}
	panel, _ := t.render(t.screen())
	return panel
}

// Overlay composites the panel over background, anchored to the configured
// edge of a width x height screen. Hidden trackers return background as is.
func (t *Tracker) Overlay(background string, width, height int) string {
	if !t.visible {
		t.hits.Clear()
		return background
	}

	t.width, t.height = width, height
	panel, x := t.render(width, height)

	bgLayer := lipgloss.NewLayer(background)
	panelLayer := lipgloss.NewLayer(panel)
	panelLayer.X(x).Y(0).Z(1)

	return lipgloss.NewCompositor(bgLayer, panelLayer).Render()
}

func (t *Tracker) screen() (int, int) {
	w, h := t.width, t.height
	if w <= 0 {
		w = fallbackWidth
	}
	if h <= 0 {
		h = fallbackHeight
	}
	return w, h
}

// render draws the panel for a screen of the given size and returns it with
// its x position. It also rebuilds the hit map.
func (t *Tracker) render(width, height int) (string, int) {
	style := t.defaultStyle()

	outerW := style.GetWidth()
	if outerW <= 0 {
		outerW = width * t.widthPercent / 100
	}
	outerW = min(outerW, width)

	outerH := style.GetHeight()
	if outerH <= 0 {
		outerH = height
	}
	outerH = min(outerH, height)

	innerW := max(outerW-style.GetHorizontalFrameSize(), minInnerWidth)
	innerH := max(outerH-style.GetVerticalFrameSize(), chromeLines+1)

	lines, regions := t.layout(innerW, innerH, height)

	// Content is already sized, so the style only adds its frame.
	panel := style.UnsetWidth().UnsetHeight().Render(strings.Join(lines, "\n"))
	panelW, panelH := lipgloss.Width(panel), lipgloss.Height(panel)

	x := 0
	if t.side == SideRight {
		x = max(width-panelW, 0)
	}
	offX := x + style.GetMarginLeft() + style.GetBorderLeftSize() + style.GetPaddingLeft()
	offY := style.GetMarginTop() + style.GetBorderTopSize() + style.GetPaddingTop()

	t.hits.Clear()
	t.hits.AddRect(regionPanel, x, 0, panelW, panelH, nil)
	for _, r := range regions {
		t.hits.AddRect(r.id, r.x+offX, r.y+offY, r.w, r.h, r.name)
	}

	return panel, x
}

// layout builds exactly innerH lines of innerW cells: a pinned title and
// divider, the scrollable section list, and a pinned footer.
func (t *Tracker) layout(innerW, innerH, screenH int) ([]string, []placed) {
	sections := t.sections()
	t.seed(sections)
	t.pruneBodies(sections)
	stores := t.current()
	t.cursor = clamp(t.cursor, 0, len(sections)-1)

	bodyCap := max(screenH*t.bodyPercent/100, minBodyLines)

	var (
		content    []string
		regions    []placed
		cursorLine = -1
	)
	for i, name := range sections {
		if i > 0 {
			content = append(content, "")
		}
		start := len(content)
		if i == t.cursor {
			cursorLine = start
		}

		content = append(content, t.headerLine(name, i == t.cursor))
		regions = append(regions, placed{id: regionHeader, name: name, w: innerW, y: start, h: 1})

		if t.open[name] {
			body := t.bodyLines(name, stores, innerW, bodyCap)
			regions = append(regions, placed{
				id:   regionBody,
				name: name,
				x:    bodyIndent,
				y:    len(content),
				w:    innerW - bodyIndent,
				h:    len(body),
			})
			content = append(content, body...)
		}
	}
	if len(stores) == 0 {
		if len(content) > 0 {
			content = append(content, "")
		}
		content = append(content, components.Pad(bodyIndent)+styles.TrackerEmptyStyle.Render(emptyText))
	}

	area := innerH - chromeLines
	maxScroll := max(len(content)-area, 0)
	if t.reveal && cursorLine >= 0 {
		if cursorLine < t.scroll {
			t.scroll = cursorLine
		} else if cursorLine >= t.scroll+area {
			t.scroll = cursorLine - area + 1
		}
	}
	t.reveal = false
	t.scroll = clamp(t.scroll, 0, maxScroll)
	end := min(t.scroll+area, len(content))

	lines := make([]string, 0, innerH)
	lines = append(lines, t.titleLine(innerW))
	lines = append(lines, styles.TrackerDividerStyle.Render(strings.Repeat("─", innerW)))
	lines = append(lines, components.FitLines(content[t.scroll:end], innerW, area)...)
	lines = append(lines, t.footerLine(innerW, maxScroll))

	// Translate content regions into panel lines, clipped to the window.
	visible := make([]placed, 0, len(regions)+1)
	for _, r := range regions {
		top := max(r.y, t.scroll)
		bottom := min(r.y+r.h, end)
		if bottom <= top {
			continue
		}
		r.y = top - t.scroll + 2
		r.h = bottom - top
		visible = append(visible, r)
	}
	visible = append(visible, placed{id: regionClose, x: innerW - 2, w: 2, h: 1})

	return lines, visible
}

func (t *Tracker) titleLine(innerW int) string {
	title := lipgloss.PlaceHorizontal(innerW-2, lipgloss.Center, styles.TrackerTitleStyle.Render(panelTitle))
	return components.Fit(title, innerW-2) + " " + styles.TrackerCloseStyle.Render(styles.IconClose)
}

func (t *Tracker) footerLine(innerW, maxScroll int) string {
	parts := make([]string, 0, 4)
	for _, b := range t.keys.footerBindings() {
		parts = append(parts, b.Help().Key+" "+b.Help().Desc)
	}
	footer := styles.TrackerFooterStyle.Render(strings.Join(parts, " · "))
	if maxScroll > 0 {
		footer += styles.TrackerScrollStyle.Render(fmt.Sprintf(" (%d%%)", t.scroll*100/maxScroll))
	}
	return components.Fit(footer, innerW)
}

func (t *Tracker) headerLine(name string, focused bool) string {
	mark := components.Pad(bodyIndent)
	if focused {
		mark = styles.TrackerCursorStyle.Render(styles.IconCursor) + " "
	}

	glyph := styles.IconCollapsed
	if t.open[name] {
		glyph = styles.IconExpanded
	}

	label := name
	if name == HelpSection && t.showHelp {
		label = helpTitle
	}
	return mark + styles.TrackerHeaderStyle.Render(glyph+" "+label)
}

// bodyLines renders the bordered, height-capped body of an open section.
// The dump is recomputed on every call.
func (t *Tracker) bodyLines(name string, stores Stores, innerW, capLines int) []string {
	frame := styles.TrackerBodyStyle.GetHorizontalFrameSize()
	textW := max(innerW-bodyIndent-frame, 1)

	var text []string
	if name == HelpSection && t.showHelp {
		text = t.helpLines(textW)
	} else {
		value, _ := stores.Lookup(name)
		text = dumpLines(value, textW)
	}
	text = components.FitLines(wrapLines(text, textW), textW, -1)

	bv, offset := t.bodyView(name, textW, min(len(text), capLines))
	bv.vp.SetContent(strings.Join(text, "\n"))
	if offset > 0 {
		bv.vp.SetYOffset(offset)
	}

	box := styles.TrackerBodyStyle.Render(bv.vp.View())
	indent := components.Pad(bodyIndent)

	var out []string
	for _, line := range strings.Split(box, "\n") {
		out = append(out, indent+line)
	}
	if bv.vp.TotalLineCount() > bv.vp.VisibleLineCount() {
		out = append(out, indent+styles.TrackerScrollStyle.Render(
			fmt.Sprintf("%.0f%% · wheel or pgdn to scroll", bv.vp.ScrollPercent()*100)))
	}
	return out
}

// bodyView returns the viewport for a section body, recreating it when its
// size changed. The returned offset is the scroll position to restore.
func (t *Tracker) bodyView(name string, width, height int) (*bodyView, int) {
	height = max(height, 1)

	bv, ok := t.bodies[name]
	if ok && bv.width == width && bv.height == height {
		return bv, 0
	}

	offset := 0
	if ok {
		offset = bv.vp.YOffset()
	}
	bv = &bodyView{
		vp:     viewport.New(viewport.WithWidth(width), viewport.WithHeight(height)),
		width:  width,
		height: height,
	}
	t.bodies[name] = bv
	return bv, offset
}

// pruneBodies drops the viewports of sections that no longer exist.
func (t *Tracker) pruneBodies(sections []string) {
	if len(t.bodies) == 0 {
		return
	}
	keep := make(map[string]struct{}, len(sections))
	for _, name := range sections {
		keep[name] = struct{}{}
	}
	for name := range t.bodies {
		if _, ok := keep[name]; !ok {
			delete(t.bodies, name)
		}
	}
}

// wrapLines hard-wraps every line to width so nothing is cut off. Joining
// the pieces of a wrapped line gives back the original.
func wrapLines(lines []string, width int) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if ansi.StringWidth(line) <= width {
			out = append(out, line)
			continue
		}
		out = append(out, strings.Split(ansi.Hardwrap(line, width, true), "\n")...)
	}
	return out
}

func dumpLines(value any, width int) []string {
	text, err := dump(value)
	if err != nil {
		wrapped := strings.Split(ansi.Wrap(UnserializableMarker(err), width, ""), "\n")
		for i, line := range wrapped {
			wrapped[i] = styles.TrackerErrorStyle.Render(line)
		}
		return wrapped
	}
	return strings.Split(jsoncolor.Colorize(text), "\n")
}
