// Package tui is the demo host: a small shop screen whose state can be
// inspected with the store tracker overlay.
package tui

import (
	"fmt"
	"path/filepath"
	"sync"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/yutounun/storetracker/internal/core/config"
	"github.com/yutounun/storetracker/internal/core/logging"
	"github.com/yutounun/storetracker/internal/core/notify"
	"github.com/yutounun/storetracker/internal/core/statedoc"
	"github.com/yutounun/storetracker/internal/tracker"
	"github.com/yutounun/storetracker/internal/tui/components"
	"github.com/yutounun/storetracker/internal/tui/keybus"
	tuinotify "github.com/yutounun/storetracker/internal/tui/notify"
	"github.com/yutounun/storetracker/internal/tui/statewatch"
)

// Options configures the demo host.
type Options struct {
	StateFile string // optional JSON/YAML document loaded as extra stores
	Watch     bool   // reload StateFile when it changes
}

// Model is the Bubble Tea model of the demo host.
type Model struct {
	cfg    *config.Config
	opts   Options
	logger zerolog.Logger
	keys   keyMap

	shop    *Shop
	filesMu sync.RWMutex
	files   tracker.Stores

	keyBus  *keybus.Bus
	tracker *tracker.Tracker
	release func()

	notifyBus *tuinotify.Bus
	toasts    *Toasts
	watcher   *statewatch.Watcher

	helpDialog *components.HelpDialog
	showHelp   bool

	width    int
	height   int
	quitting bool
}

// New builds the demo host and mounts the tracker on its key bus. The
// caller must Close the model when the program exits.
func New(cfg *config.Config, opts Options) (*Model, error) {
	m := &Model{
		cfg:       cfg,
		opts:      opts,
		logger:    logging.Component("demo"),
		keys:      defaultKeyMap(),
		shop:      NewShop(cfg.Theme, cfg.Tracker.Side),
		keyBus:    keybus.New(logging.Component("keybus")),
		notifyBus: tuinotify.NewBus(logging.Component("notify")),
		toasts:    &Toasts{},
	}

	if opts.StateFile != "" {
		stores, err := statedoc.Load(opts.StateFile)
		if err != nil {
			return nil, err
		}
		m.setStateStores(stores)
	}

	if opts.Watch {
		if opts.StateFile == "" {
			return nil, fmt.Errorf("watch requires a state file")
		}
		w, err := statewatch.New(opts.StateFile, logging.Component("statewatch"))
		if err != nil {
			return nil, err
		}
		m.watcher = w
	}

	side, _ := tracker.ParseSide(cfg.Tracker.Side)
	m.tracker = tracker.New(nil,
		tracker.WithProvider(m.Stores),
		tracker.WithSide(side),
		tracker.WithWidthPercent(cfg.Tracker.WidthPercent),
		tracker.WithBodyHeight(cfg.Tracker.BodyHeightPercent),
		tracker.WithHelpSection(cfg.Tracker.HelpSection),
	)
	m.release = m.tracker.Mount(m.keyBus)

	m.notifyBus.Subscribe(m.toasts.Push)

	m.helpDialog = components.NewHelpDialog("Keyboard shortcuts", "esc or ? to close", []components.HelpDialogSection{
		{Title: "Shop", Bindings: []key.Binding{m.keys.AddItem, m.keys.RemoveItem, m.keys.ToggleLogin, m.keys.Quit}},
		{Title: "Store panel", Bindings: panelBindings()},
	})

	return m, nil
}

// Stores is the tracker's provider: the shop's stores followed by the
// stores of the state file. A file store named like a shop store replaces
// its value. Safe for concurrent use.
func (m *Model) Stores() tracker.Stores {
	out := m.shop.Stores()
	for _, s := range m.stateStores() {
		out = out.Add(s.Name, s.Value)
	}
	return out
}

func (m *Model) stateStores() tracker.Stores {
	m.filesMu.RLock()
	defer m.filesMu.RUnlock()
	return m.files
}

func (m *Model) setStateStores(stores tracker.Stores) {
	m.filesMu.Lock()
	defer m.filesMu.Unlock()
	m.files = stores
}

// Tracker returns the mounted overlay.
func (m *Model) Tracker() *tracker.Tracker {
	return m.tracker
}

// Close releases the tracker subscription and stops the state watcher.
func (m *Model) Close() error {
	if m.release != nil {
		m.release()
		m.release = nil
	}
	if m.watcher != nil {
		return m.watcher.Close()
	}
	return nil
}

// Init starts the state watcher when one is configured.
func (m *Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.watcher != nil {
		cmds = append(cmds, m.watcher.Start())
	}
	if files := m.stateStores(); len(files) > 0 {
		m.notifyBus.Infof("loaded %s (%d stores)", filepath.Base(m.opts.StateFile), len(files))
		cmds = append(cmds, m.toasts.startTicking())
	}
	return tea.Batch(cmds...)
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		_, cmd := m.tracker.Update(msg)
		return m, cmd

	case tea.KeyPressMsg:
		return m, m.handleKey(msg)

	case tea.MouseClickMsg, tea.MouseWheelMsg:
		_, cmd := m.tracker.Update(msg)
		return m, cmd

	case statewatch.ReloadedMsg:
		return m, m.handleReload(msg)

	case toastTickMsg:
		return m, m.toasts.handleTick()
	}

	return m, nil
}

// handleKey publishes every key to the bus before anything else sees it,
// so the tracker shortcut works whatever the screen is doing.
func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	m.keyBus.Publish(msg)

	if msg.String() == "ctrl+c" {
		m.quitting = true
		return tea.Quit
	}

	if m.showHelp {
		if key.Matches(msg, m.keys.CloseHelp) {
			m.showHelp = false
		}
		return nil
	}

	// Navigation keys only act while the panel is shown and never collide
	// with the shop keys below.
	m.tracker.Update(msg)

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return tea.Quit
	case key.Matches(msg, m.keys.AddItem):
		m.shop.AddItem()
	case key.Matches(msg, m.keys.RemoveItem):
		m.shop.RemoveItem()
	case key.Matches(msg, m.keys.ToggleLogin):
		m.shop.ToggleLogin()
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	}
	return nil
}

func (m *Model) handleReload(msg statewatch.ReloadedMsg) tea.Cmd {
	if msg.Err != nil {
		m.notifyBus.Errorf("reload %s: %v", filepath.Base(msg.Path), msg.Err)
	} else {
		m.setStateStores(msg.Stores)
		m.notifyBus.Publish(notify.Notification{
			Level:   notify.LevelInfo,
			Message: fmt.Sprintf("reloaded %s (%d stores)", filepath.Base(msg.Path), len(msg.Stores)),
		})
	}

	cmds := []tea.Cmd{m.toasts.startTicking()}
	if m.watcher != nil {
		cmds = append(cmds, m.watcher.Start())
	}
	return tea.Batch(cmds...)
}
