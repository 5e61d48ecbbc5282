package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorTrackerInitializesOnFirstAppend(t *testing.T) {
	kv := newFakeKV()
	tracker := NewCursorTracker(kv, time.Minute)

	page, err := tracker.NextSlot(context.Background(), "cursor", 3)
	require.NoError(t, err)
	assert.Equal(t, 1, page)

	cur, ok, err := tracker.Peek(context.Background(), "cursor")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, PageCursor{CurrentItemAmount: 1, LastPage: 1}, cur)
}

func TestCursorTrackerRollsOverPastPageSize(t *testing.T) {
	kv := newFakeKV()
	tracker := NewCursorTracker(kv, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		page, err := tracker.NextSlot(ctx, "cursor", 3)
		require.NoError(t, err)
		assert.Equal(t, 1, page)
	}

	// The item past the full page opens page 2.
	page, err := tracker.NextSlot(ctx, "cursor", 3)
	require.NoError(t, err)
	assert.Equal(t, 2, page)

	cur, ok, err := tracker.Peek(ctx, "cursor")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, PageCursor{CurrentItemAmount: 1, LastPage: 2}, cur)
}

func TestCursorTrackerResetsAfterExpiry(t *testing.T) {
	kv := newFakeKV()
	tracker := NewCursorTracker(kv, time.Minute)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := tracker.NextSlot(ctx, "cursor", 3)
		require.NoError(t, err)
	}
	// TTL expiry drops the record; the next append starts a fresh count.
	delete(kv.data, "cursor")

	page, err := tracker.NextSlot(ctx, "cursor", 3)
	require.NoError(t, err)
	assert.Equal(t, 1, page)
}

func TestCursorTrackerPeekMissing(t *testing.T) {
	kv := newFakeKV()
	tracker := NewCursorTracker(kv, time.Minute)

	_, ok, err := tracker.Peek(context.Background(), "cursor")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCursorTrackerIgnoresCorruptRecord(t *testing.T) {
	kv := newFakeKV()
	kv.data["cursor"] = "not json"
	tracker := NewCursorTracker(kv, time.Minute)

	page, err := tracker.NextSlot(context.Background(), "cursor", 3)
	require.NoError(t, err)
	assert.Equal(t, 1, page)
}
