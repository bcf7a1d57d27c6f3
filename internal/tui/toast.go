package tui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/yutounun/storetracker/internal/core/notify"
	"github.com/yutounun/storetracker/internal/core/styles"
)

const (
	defaultToastTTL   = 4 * time.Second
	defaultMaxToasts  = 3
	toastTickInterval = 100 * time.Millisecond
	toastWidth        = 44
)

type toastTickMsg time.Time

func scheduleToastTick() tea.Cmd {
	return tea.Tick(toastTickInterval, func(t time.Time) tea.Msg {
		return toastTickMsg(t)
	})
}

type toast struct {
	notification notify.Notification
	remaining    time.Duration
}

// Toasts holds the short-lived status messages of the demo host, such as
// state file reloads, and draws them in the lower-left corner.
type Toasts struct {
	items   []toast
	ticking bool
}

// Push adds a notification. Past defaultMaxToasts the oldest is evicted.
func (c *Toasts) Push(n notify.Notification) {
	c.items = append(c.items, toast{notification: n, remaining: defaultToastTTL})
	if len(c.items) > defaultMaxToasts {
		c.items = c.items[len(c.items)-defaultMaxToasts:]
	}
}

// Tick ages every toast by d and drops the expired ones.
func (c *Toasts) Tick(d time.Duration) {
	alive := c.items[:0]
	for _, t := range c.items {
		t.remaining -= d
		if t.remaining > 0 {
			alive = append(alive, t)
		}
	}
	c.items = alive
}

// Len returns the number of live toasts.
func (c *Toasts) Len() int {
	return len(c.items)
}

// Messages returns the live messages, oldest first.
func (c *Toasts) Messages() []string {
	out := make([]string, 0, len(c.items))
	for _, t := range c.items {
		out = append(out, t.notification.Message)
	}
	return out
}

// startTicking returns the tick command when toasts are live and no tick
// loop is running yet.
func (c *Toasts) startTicking() tea.Cmd {
	if c.ticking || len(c.items) == 0 {
		return nil
	}
	c.ticking = true
	return scheduleToastTick()
}

// handleTick advances the toasts and keeps the loop alive while any remain.
func (c *Toasts) handleTick() tea.Cmd {
	c.Tick(toastTickInterval)
	if len(c.items) == 0 {
		c.ticking = false
		return nil
	}
	return scheduleToastTick()
}

// View renders the stack, oldest on top.
func (c *Toasts) View() string {
	if len(c.items) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(c.items))
	for _, t := range c.items {
		rendered = append(rendered, renderToast(t.notification))
	}
	return strings.Join(rendered, "\n")
}

func renderToast(n notify.Notification) string {
	icon, style := styles.IconNotifyInfo, styles.ToastInfoStyle
	switch n.Level {
	case notify.LevelError:
		icon, style = styles.IconNotifyError, styles.ToastErrorStyle
	case notify.LevelWarning:
		icon, style = styles.IconNotifyWarning, styles.ToastWarningStyle
	}
	return style.Width(toastWidth).Render(icon + " " + n.Message)
}

// Overlay composites the stack over background in the lower-left corner,
// above the tracker panel.
func (c *Toasts) Overlay(background string, width, height int) string {
	content := c.View()
	if content == "" {
		return background
	}

	layer := lipgloss.NewLayer(content)
	layer.X(1).Y(max(height-lipgloss.Height(content), 0)).Z(2)

	return lipgloss.NewCompositor(lipgloss.NewLayer(background), layer).Render()
}
