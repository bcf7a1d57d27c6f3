package tui

import (
	"fmt"

	"github.com/yutounun/storetracker/internal/tracker"
	"github.com/yutounun/storetracker/pkg/kv"
)

// itemPriceCents is the price of every item in the demo shop.
const itemPriceCents = 1250

// Shop is the state of the demo screen. Each part lives in its own kv.Store
// and is handed to the tracker as is; the tracker reads it through
// Snapshot on every render.
type Shop struct {
	cart     *kv.Store[string, int]
	session  *kv.Store[string, any]
	settings *kv.Store[string, string]
}

// NewShop creates a shop with an empty cart and a guest session.
func NewShop(theme, side string) *Shop {
	s := &Shop{
		cart:     kv.New[string, int](),
		session:  kv.New[string, any](),
		settings: kv.New[string, string](),
	}
	s.cart.SetBatch(map[string]int{"items": 0, "total_cents": 0})
	s.session.SetBatch(map[string]any{"user": "guest", "loggedIn": false})
	s.settings.SetBatch(map[string]string{"theme": theme, "panel_side": side})
	return s
}

// AddItem puts one item in the cart.
func (s *Shop) AddItem() {
	items := s.cart.Update("items", func(n int) int { return n + 1 })
	s.cart.Set("total_cents", items*itemPriceCents)
}

// RemoveItem takes one item out of the cart. An empty cart stays empty.
func (s *Shop) RemoveItem() {
	items := s.cart.Update("items", func(n int) int { return max(n-1, 0) })
	s.cart.Set("total_cents", items*itemPriceCents)
}

// ToggleLogin switches between the guest and a signed-in user.
func (s *Shop) ToggleLogin() {
	loggedIn, _ := s.session.Get("loggedIn")
	if in, _ := loggedIn.(bool); in {
		s.session.SetBatch(map[string]any{"user": "guest", "loggedIn": false})
		return
	}
	s.session.SetBatch(map[string]any{"user": "alice", "loggedIn": true})
}

// Items returns the number of items in the cart.
func (s *Shop) Items() int {
	n, _ := s.cart.Get("items")
	return n
}

// Total formats the cart total.
func (s *Shop) Total() string {
	cents, _ := s.cart.Get("total_cents")
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}

// User returns the session user and whether they are signed in.
func (s *Shop) User() (string, bool) {
	user, _ := s.session.Get("user")
	loggedIn, _ := s.session.Get("loggedIn")
	name, _ := user.(string)
	in, _ := loggedIn.(bool)
	return name, in
}

// Stores returns the shop's stores in display order.
func (s *Shop) Stores() tracker.Stores {
	return tracker.Stores{}.
		Add("cart", s.cart).
		Add("session", s.session).
		Add("settings", s.settings)
}
