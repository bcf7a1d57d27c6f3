package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yutounun/storetracker/pkg/kv"
)

func TestStores_Add(t *testing.T) {
	s := Stores{}.Add("cart", 1).Add("session", 2)
	assert.Equal(t, []string{"cart", "session"}, s.Names())

	replaced := s.Add("cart", 3)
	assert.Equal(t, []string{"cart", "session"}, replaced.Names())

	v, ok := replaced.Lookup("cart")
	require.True(t, ok)
	assert.Equal(t, 3, v)

	// The original mapping is untouched by a replacement.
	v, _ = s.Lookup("cart")
	assert.Equal(t, 1, v)
}

func TestStores_NilIsEmpty(t *testing.T) {
	var s Stores
	assert.Empty(t, s.Names())

	_, ok := s.Lookup("cart")
	assert.False(t, ok)
}

func TestFromMap_SortsByName(t *testing.T) {
	s := FromMap(map[string]any{"zeta": 1, "alpha": 2, "mid": 3})
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, s.Names())
}

type panickySnapshot struct{}

func (panickySnapshot) Snapshot() any { panic("boom") }

func TestResolve(t *testing.T) {
	t.Run("plain values pass through", func(t *testing.T) {
		v, err := resolve(map[string]int{"items": 2})
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"items": 2}, v)
	})

	t.Run("snapshotters are asked for a copy", func(t *testing.T) {
		store := kv.New[string, int]()
		store.Set("items", 2)

		v, err := resolve(store)
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"items": 2}, v)
	})

	t.Run("panicking snapshot becomes an error", func(t *testing.T) {
		_, err := resolve(panickySnapshot{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "snapshot panicked: boom")
	})
}

func TestDump(t *testing.T) {
	assert.Equal(t, "{\n    \"items\": 2\n}", Dump(map[string]any{"items": 2}))

	cyclic := map[string]any{}
	cyclic["self"] = cyclic
	assert.Contains(t, Dump(cyclic), "⚠ unserializable value: ")
}
