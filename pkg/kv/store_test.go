package kv

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_GetSet(t *testing.T) {
	s := New[string, int]()

	s.Set("foo", 42)
	val, ok := s.Get("foo")
	assert.True(t, ok)
	assert.Equal(t, 42, val)

	_, ok = s.Get("bar")
	assert.False(t, ok)
}

func TestStore_SetBatch(t *testing.T) {
	s := New[string, int]()

	s.SetBatch(map[string]int{
		"a": 1,
		"b": 2,
		"c": 3,
	})

	assert.Equal(t, 3, s.Len())

	val, _ := s.Get("b")
	assert.Equal(t, 2, val)
}

func TestStore_Update(t *testing.T) {
	s := New[string, int]()

	got := s.Update("items", func(n int) int { return n + 2 })
	assert.Equal(t, 2, got)

	got = s.Update("items", func(n int) int { return n - 1 })
	assert.Equal(t, 1, got)

	val, ok := s.Get("items")
	require.True(t, ok)
	assert.Equal(t, 1, val)
}

func TestStore_CopyIsDetached(t *testing.T) {
	s := New[string, int]()
	s.Set("items", 2)

	snap := s.Copy()
	s.Set("items", 5)
	snap["extra"] = 1

	assert.Equal(t, map[string]int{"items": 2, "extra": 1}, snap)
	assert.Equal(t, 1, s.Len())
}

func TestStore_Snapshot(t *testing.T) {
	s := New[string, any]()
	s.Set("user", "ada")

	snap, ok := s.Snapshot().(map[string]any)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"user": "ada"}, snap)
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := New[int, int]()
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			s.Set(n, n*2)
		}(i)
	}

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			s.Get(n)
			_ = s.Snapshot()
		}(i)
	}

	wg.Wait()

	assert.Equal(t, 100, s.Len())
}
