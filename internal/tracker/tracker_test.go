package tracker

import (
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yutounun/storetracker/internal/tui/keybus"
	"github.com/yutounun/storetracker/internal/tui/mouse"
	"github.com/yutounun/storetracker/pkg/kv"
	"github.com/yutounun/storetracker/pkg/tuitest"
)

const (
	screenW = 100
	screenH = 40
)

func newTestTracker(t *testing.T, stores Stores, opts ...Option) (*Tracker, *keybus.Bus) {
	t.Helper()

	bus := keybus.New(zerolog.Nop())
	tr := New(stores, append([]Option{WithLogger(zerolog.Nop())}, opts...)...)
	tr.Update(tuitest.WindowSize(screenW, screenH))

	release := tr.Mount(bus)
	t.Cleanup(release)
	return tr, bus
}

// region returns the hit region with id whose data is name.
func region(t *testing.T, tr *Tracker, id, name string) mouse.Region {
	t.Helper()
	for _, r := range tr.hits.Regions() {
		if r.ID == id && (name == "" || r.Data == name) {
			return r
		}
	}
	require.Failf(t, "region not found", "%s %q", id, name)
	return mouse.Region{}
}

func hasRegion(tr *Tracker, id, name string) bool {
	for _, r := range tr.hits.Regions() {
		if r.ID == id && r.Data == name {
			return true
		}
	}
	return false
}

func clickRegion(t *testing.T, tr *Tracker, id, name string) {
	t.Helper()
	tr.Overlay("", screenW, screenH)
	r := region(t, tr, id, name)
	tr.Update(tuitest.Click(r.Rect.X, r.Rect.Y))
}

func TestTracker_InitiallyHidden(t *testing.T) {
	tr, _ := newTestTracker(t, Stores{}.Add("cart", 1))

	assert.False(t, tr.Visible())
	assert.Empty(t, tr.View())
	assert.Equal(t, "background", tr.Overlay("background", screenW, screenH))
}

func TestTracker_ShiftZTogglesVisibility(t *testing.T) {
	tr, bus := newTestTracker(t, nil)

	bus.Publish(tuitest.ShiftZ())
	assert.True(t, tr.Visible())

	bus.Publish(tuitest.ShiftZ())
	assert.False(t, tr.Visible())

	// Terminals with keyboard enhancements report the modifier instead of
	// the shifted text.
	bus.Publish(tea.KeyPressMsg{Code: 'z', Mod: tea.ModShift})
	assert.True(t, tr.Visible())
}

func TestTracker_CapsLockWithoutShiftIsIgnored(t *testing.T) {
	tr, bus := newTestTracker(t, nil)

	bus.Publish(tea.KeyPressMsg{Code: 'z', Text: "Z", Mod: tea.ModCapsLock})
	assert.False(t, tr.Visible())

	bus.Publish(tea.KeyPressMsg{Code: 'z', ShiftedCode: 'Z', Text: "Z", Mod: tea.ModShift | tea.ModCapsLock})
	assert.True(t, tr.Visible())
}

func TestTracker_OtherKeysLeaveVisibilityUnchanged(t *testing.T) {
	keys := []tea.KeyPressMsg{
		tuitest.KeyPress("z"),
		tuitest.KeyPress("a"),
		tuitest.KeyPress("A"),
		tuitest.KeyPress("q"),
		{Code: 'z', Mod: tea.ModCtrl},
		tuitest.KeyEnter(),
		tuitest.KeyTab(),
		tuitest.KeyCode(tea.KeyEscape),
	}

	for _, visible := range []bool{false, true} {
		tr, bus := newTestTracker(t, Stores{}.Add("cart", 1))
		if visible {
			tr.Toggle()
		}

		for _, k := range keys {
			bus.Publish(k)
			tr.Update(k)
			assert.Equal(t, visible, tr.Visible(), "key %q", k.String())
		}
	}
}

func TestTracker_ShortcutIsNotConsumed(t *testing.T) {
	tr, bus := newTestTracker(t, nil)

	var hostSaw []string
	release := bus.Subscribe(func(m tea.KeyPressMsg) { hostSaw = append(hostSaw, m.String()) })
	defer release()

	bus.Publish(tuitest.ShiftZ())

	assert.True(t, tr.Visible())
	assert.Equal(t, []string{"Z"}, hostSaw)
}

type refusingSource struct{}

func (refusingSource) Subscribe(func(tea.KeyPressMsg)) func() { return nil }

func TestTracker_MountLifecycle(t *testing.T) {
	t.Run("unmount stops the shortcut", func(t *testing.T) {
		bus := keybus.New(zerolog.Nop())
		tr := New(nil, WithLogger(zerolog.Nop()))

		release := tr.Mount(bus)
		assert.True(t, tr.Mounted())

		// A second mount keeps the single subscription.
		tr.Mount(bus)
		bus.Publish(tuitest.ShiftZ())
		assert.True(t, tr.Visible())

		release()
		release()
		assert.False(t, tr.Mounted())

		bus.Publish(tuitest.ShiftZ())
		assert.True(t, tr.Visible())
	})

	t.Run("missing or refusing source", func(t *testing.T) {
		for _, src := range []KeySource{nil, refusingSource{}} {
			tr := New(nil, WithLogger(zerolog.Nop()))
			release := tr.Mount(src)
			require.NotNil(t, release)
			release()
			assert.False(t, tr.Mounted())

			tr.Toggle()
			assert.True(t, tr.Visible())
		}
	})
}

func TestTracker_CloseAlwaysHides(t *testing.T) {
	tr, _ := newTestTracker(t, nil)

	tr.Close()
	assert.False(t, tr.Visible())

	tr.Toggle()
	tr.Close()
	assert.False(t, tr.Visible())

	tr.Close()
	assert.False(t, tr.Visible())
}

func TestTracker_CloseGlyphClick(t *testing.T) {
	tr, bus := newTestTracker(t, Stores{}.Add("cart", 1))
	bus.Publish(tuitest.ShiftZ())

	tr.Overlay("", screenW, screenH)
	r := region(t, tr, regionClose, "")
	assert.Equal(t, mouse.Rect{X: 96, Y: 1, W: 2, H: 1}, r.Rect)

	tr.Update(tuitest.Click(r.Rect.X+1, r.Rect.Y))
	assert.False(t, tr.Visible())
}

func TestTracker_SectionsStartClosed(t *testing.T) {
	stores := Stores{}.Add("cart", 1).Add("session", 2).Add("settings", 3)
	tr, _ := newTestTracker(t, stores)

	for _, name := range stores.Names() {
		assert.False(t, tr.SectionOpen(name), name)
	}
	assert.Equal(t, []string{"cart", "session", "settings"}, tr.Sections())
}

func TestTracker_ToggleSectionFlipsOnlyThatSection(t *testing.T) {
	stores := Stores{}.Add("cart", 1).Add("session", 2).Add("settings", 3)
	tr, _ := newTestTracker(t, stores)

	tr.ToggleSection("session")
	assert.False(t, tr.SectionOpen("cart"))
	assert.True(t, tr.SectionOpen("session"))
	assert.False(t, tr.SectionOpen("settings"))

	tr.ToggleSection("session")
	assert.False(t, tr.SectionOpen("session"))
	assert.False(t, tr.Visible())
}

func TestTracker_HidingKeepsSectionFlags(t *testing.T) {
	tr, bus := newTestTracker(t, Stores{}.Add("cart", 1).Add("session", 2))

	bus.Publish(tuitest.ShiftZ())
	clickRegion(t, tr, regionHeader, "cart")
	require.True(t, tr.SectionOpen("cart"))

	bus.Publish(tuitest.ShiftZ())
	assert.False(t, tr.Visible())
	bus.Publish(tuitest.ShiftZ())

	assert.True(t, tr.SectionOpen("cart"))
	assert.False(t, tr.SectionOpen("session"))

	tr.Close()
	tr.Toggle()
	assert.True(t, tr.SectionOpen("cart"))
}

func TestTracker_CartScenario(t *testing.T) {
	tr, bus := newTestTracker(t, Stores{}.Add("cart", map[string]any{"items": 2}))

	assert.False(t, tr.Visible())

	bus.Publish(tuitest.ShiftZ())
	require.True(t, tr.Visible())
	assert.False(t, tr.SectionOpen("cart"))

	view := tuitest.StripANSI(tr.View())
	assert.Contains(t, view, "Store Debug Panel")
	assert.Contains(t, view, "▶ cart")
	assert.NotContains(t, view, `"items"`)

	clickRegion(t, tr, regionHeader, "cart")
	require.True(t, tr.SectionOpen("cart"))

	view = tuitest.StripANSI(tr.View())
	assert.Contains(t, view, "▼ cart")
	assert.Contains(t, view, "{")
	assert.Contains(t, view, `    "items": 2`)
	assert.Contains(t, view, "}")

	bus.Publish(tuitest.ShiftZ())
	assert.False(t, tr.Visible())
	assert.Empty(t, tr.View())

	bus.Publish(tuitest.ShiftZ())
	require.True(t, tr.Visible())
	assert.True(t, tr.SectionOpen("cart"))
	assert.Equal(t, view, tuitest.StripANSI(tr.View()))
}

func TestTracker_LongLinesWrapInsteadOfTruncating(t *testing.T) {
	token := "tok_" + strings.Repeat("a", 80) + "_END"
	tr, _ := newTestTracker(t, Stores{}.Add("session", map[string]any{"token": token}), WithBodyHeight(100))
	tr.Toggle()
	tr.ToggleSection("session")

	view := tuitest.StripANSI(tr.View())
	assert.Contains(t, view, "_END")

	// With borders and padding removed the wrapped pieces join back up.
	flat := strings.Join(strings.Fields(strings.NewReplacer("│", " ", "┃", " ").Replace(view)), "")
	assert.Contains(t, flat, `"token":"`+token+`"`)
}

func TestTracker_DumpIsRecomputedEveryRender(t *testing.T) {
	type session struct {
		User     string `json:"user"`
		LoggedIn bool   `json:"loggedIn"`
	}
	s := &session{User: "guest"}

	tr, _ := newTestTracker(t, Stores{}.Add("session", s))
	tr.Toggle()
	tr.ToggleSection("session")

	assert.Contains(t, tuitest.StripANSI(tr.View()), `"loggedIn": false`)

	s.LoggedIn = true
	assert.Contains(t, tuitest.StripANSI(tr.View()), `"loggedIn": true`)
}

func TestTracker_SnapshotterValues(t *testing.T) {
	cart := kv.New[string, int]()
	cart.Set("items", 2)

	tr, _ := newTestTracker(t, Stores{}.Add("cart", cart))
	tr.Toggle()
	tr.ToggleSection("cart")
	assert.Contains(t, tuitest.StripANSI(tr.View()), `"items": 2`)

	cart.Set("items", 3)
	assert.Contains(t, tuitest.StripANSI(tr.View()), `"items": 3`)
}

func TestTracker_EmptyMapping(t *testing.T) {
	t.Run("nil stores", func(t *testing.T) {
		tr, _ := newTestTracker(t, nil)
		tr.Toggle()

		assert.Empty(t, tr.Sections())
		view := tuitest.StripANSI(tr.View())
		assert.Contains(t, view, "No stores to inspect")
		assert.False(t, hasRegion(tr, regionHeader, HelpSection))
	})

	t.Run("help section still renders", func(t *testing.T) {
		tr, _ := newTestTracker(t, Stores{}, WithHelpSection(true))
		tr.Toggle()

		assert.Equal(t, []string{HelpSection}, tr.Sections())
		view := tuitest.StripANSI(tr.View())
		assert.Contains(t, view, "▶ How to use")
		assert.Contains(t, view, "No stores to inspect")
	})
}

func TestTracker_HelpSection(t *testing.T) {
	tr, _ := newTestTracker(t, Stores{}.Add("cart", 1), WithHelpSection(true), WithBodyHeight(100))
	tr.Toggle()

	assert.Equal(t, []string{HelpSection, "cart"}, tr.Sections())
	assert.False(t, tr.SectionOpen(HelpSection))
	assert.NotContains(t, tuitest.StripANSI(tr.View()), "Shift+Z")

	clickRegion(t, tr, regionHeader, HelpSection)
	require.True(t, tr.SectionOpen(HelpSection))
	assert.False(t, tr.SectionOpen("cart"))

	view := tuitest.StripANSI(tr.View())
	assert.Contains(t, view, "▼ How to use")
	assert.Contains(t, view, "Shift+Z")
	assert.Contains(t, view, "tracker.New")
}

func TestTracker_UnserializableValueIsSectionScoped(t *testing.T) {
	cyclic := map[string]any{"name": "loop"}
	cyclic["self"] = cyclic

	tr, _ := newTestTracker(t, Stores{}.Add("loop", cyclic).Add("cart", map[string]any{"items": 2}))
	tr.Toggle()

	clickRegion(t, tr, regionHeader, "loop")
	require.True(t, tr.SectionOpen("loop"))

	view := tuitest.StripANSI(tr.View())
	assert.Contains(t, view, "unserializable value")

	clickRegion(t, tr, regionHeader, "cart")
	assert.True(t, tr.SectionOpen("cart"))
	assert.Contains(t, tuitest.StripANSI(tr.View()), `"items": 2`)

	clickRegion(t, tr, regionHeader, "cart")
	assert.False(t, tr.SectionOpen("cart"))
	assert.True(t, tr.SectionOpen("loop"))
}

func TestTracker_NewKeysRenderClosed(t *testing.T) {
	stores := Stores{}.Add("cart", 1)
	tr, _ := newTestTracker(t, stores, WithProvider(func() Stores { return stores }))
	tr.Toggle()
	tr.ToggleSection("cart")
	tr.View()

	stores = stores.Add("session", 2)
	view := tuitest.StripANSI(tr.View())

	assert.Contains(t, view, "▶ session")
	assert.Equal(t, []string{"cart", "session"}, tr.Sections())
	assert.False(t, tr.SectionOpen("session"))
	assert.True(t, tr.SectionOpen("cart"))

	flag, seen := tr.open["session"]
	assert.True(t, seen)
	assert.False(t, flag)
}

func TestTracker_StoresMsgReplacesMapping(t *testing.T) {
	tr, _ := newTestTracker(t, Stores{}.Add("cart", 1))
	tr.Toggle()

	tr.Update(StoresMsg{Stores: Stores{}.Add("orders", 4)})

	assert.Equal(t, []string{"orders"}, tr.Sections())
	view := tuitest.StripANSI(tr.View())
	assert.Contains(t, view, "▶ orders")
	assert.NotContains(t, view, "cart")
}

func TestTracker_KeyboardNavigation(t *testing.T) {
	tr, _ := newTestTracker(t, Stores{}.Add("cart", 1).Add("session", 2))

	// Navigation keys do nothing while hidden.
	tr.Update(tuitest.KeyEnter())
	assert.False(t, tr.SectionOpen("cart"))

	tr.Toggle()
	tr.Update(tuitest.KeyEnter())
	assert.True(t, tr.SectionOpen("cart"))

	tr.Update(tuitest.KeyTab())
	tr.Update(tea.KeyPressMsg{Code: tea.KeySpace, Text: " "})
	assert.True(t, tr.SectionOpen("session"))

	tr.Update(tuitest.KeyPress("k"))
	tr.Update(tuitest.KeyEnter())
	assert.False(t, tr.SectionOpen("cart"))
	assert.True(t, tr.SectionOpen("session"))

	assert.True(t, tr.Visible())
}

func TestTracker_BodyScrollsWhenTallerThanCap(t *testing.T) {
	list := make([]int, 100)
	for i := range list {
		list[i] = i
	}

	tr, _ := newTestTracker(t, Stores{}.Add("list", list))
	tr.Toggle()
	clickRegion(t, tr, regionHeader, "list")

	view := tuitest.StripANSI(tr.Overlay("", screenW, screenH))
	assert.Contains(t, view, "wheel or pgdn to scroll")

	body := region(t, tr, regionBody, "list")
	tr.Update(tuitest.WheelDown(body.Rect.X+1, body.Rect.Y+1))
	assert.Equal(t, 1, tr.bodies["list"].vp.YOffset())

	tr.Update(tuitest.WheelUp(body.Rect.X+1, body.Rect.Y+1))
	assert.Equal(t, 0, tr.bodies["list"].vp.YOffset())

	tr.Update(tea.KeyPressMsg{Code: tea.KeyPgDown})
	assert.Positive(t, tr.bodies["list"].vp.YOffset())
}

func TestTracker_PanelScrollAndReveal(t *testing.T) {
	var stores Stores
	for i := range 30 {
		stores = stores.Add(fmt.Sprintf("store%02d", i), i)
	}

	tr, _ := newTestTracker(t, stores)
	tr.Update(tuitest.WindowSize(screenW, 20))
	tr.Toggle()

	tr.View()
	require.True(t, hasRegion(tr, regionHeader, "store00"))
	require.False(t, hasRegion(tr, regionHeader, "store29"))

	panel := region(t, tr, regionPanel, "")
	tr.Update(tuitest.WheelDown(panel.Rect.X+4, panel.Rect.Y+5))
	tr.View()
	assert.False(t, hasRegion(tr, regionHeader, "store00"))

	for range 29 {
		tr.Update(tuitest.KeyTab())
	}
	tr.View()
	assert.True(t, hasRegion(tr, regionHeader, "store29"))

	// Wrapping back to the top reveals the first section again.
	tr.Update(tuitest.KeyTab())
	tr.View()
	assert.True(t, hasRegion(tr, regionHeader, "store00"))
}

func TestTracker_HelpSectionDoesNotClashWithStoreNames(t *testing.T) {
	tr, _ := newTestTracker(t, Stores{}.Add("__help__", map[string]any{"items": 2}),
		WithHelpSection(true), WithBodyHeight(100))
	tr.Toggle()

	assert.Equal(t, []string{HelpSection, "__help__"}, tr.Sections())

	clickRegion(t, tr, regionHeader, "__help__")
	assert.True(t, tr.SectionOpen("__help__"))
	assert.False(t, tr.SectionOpen(HelpSection))

	view := tuitest.StripANSI(tr.View())
	assert.Contains(t, view, "▶ How to use")
	assert.Contains(t, view, "▼ __help__")
	assert.Contains(t, view, `"items": 2`)
}

func TestTracker_DroppedStoresReleaseBodies(t *testing.T) {
	current := Stores{}.Add("a", 1)
	tr, _ := newTestTracker(t, nil, WithProvider(func() Stores { return current }))
	tr.Toggle()
	tr.ToggleSection("a")
	tr.View()
	require.Contains(t, tr.bodies, "a")

	current = Stores{}.Add("b", 2)
	tr.ToggleSection("b")
	tr.View()

	assert.NotContains(t, tr.bodies, "a")
	assert.Contains(t, tr.bodies, "b")
	assert.True(t, tr.SectionOpen("a"))
}
