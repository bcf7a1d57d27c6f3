package notify

import (
	"bytes"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yutounun/storetracker/internal/core/notify"
)

func TestBus_Publish_dispatches_to_subscribers(t *testing.T) {
	bus := NewBus(zerolog.Nop())

	var first, second []notify.Notification
	bus.Subscribe(func(n notify.Notification) { first = append(first, n) })
	bus.Subscribe(func(n notify.Notification) { second = append(second, n) })

	bus.Publish(notify.Notification{Level: notify.LevelInfo, Message: "state reloaded"})

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, "state reloaded", first[0].Message)
	assert.False(t, first[0].CreatedAt.IsZero())
	assert.Len(t, first[0].ID, 36, "a uuid is assigned")
	assert.Equal(t, first[0].ID, second[0].ID, "every subscriber sees the same notification")
}

func TestBus_Publish_keeps_explicit_fields(t *testing.T) {
	bus := NewBus(zerolog.Nop())
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	var got notify.Notification
	bus.Subscribe(func(n notify.Notification) { got = n })
	bus.Publish(notify.Notification{ID: "reload-1", Message: "x", CreatedAt: at})

	assert.Equal(t, at, got.CreatedAt)
	assert.Equal(t, "reload-1", got.ID)
}

func TestBus_Levels(t *testing.T) {
	bus := NewBus(zerolog.Nop())

	var got []notify.Notification
	bus.Subscribe(func(n notify.Notification) { got = append(got, n) })

	bus.Infof("loaded %d stores", 3)
	bus.Warnf("watch %s", "disabled")
	bus.Errorf("reload failed: %v", "boom")

	require.Len(t, got, 3)
	assert.Equal(t, notify.LevelInfo, got[0].Level)
	assert.Equal(t, "loaded 3 stores", got[0].Message)
	assert.Equal(t, notify.LevelWarning, got[1].Level)
	assert.Equal(t, notify.LevelError, got[2].Level)
	assert.Equal(t, "reload failed: boom", got[2].Message)
}

func TestBus_Publish_logs(t *testing.T) {
	var buf bytes.Buffer
	bus := NewBus(zerolog.New(&buf))

	bus.Warnf("careful")

	assert.Contains(t, buf.String(), `"message":"careful"`)
	assert.Contains(t, buf.String(), `"severity":"warning"`)
}

func TestBus_Publish_without_subscribers(t *testing.T) {
	bus := NewBus(zerolog.Nop())
	assert.NotPanics(t, func() { bus.Infof("nobody listening") })
}
