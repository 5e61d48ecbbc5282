package cache

import (
	"testing"

	"studyhub/settings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFollowCounter() *FollowCounter {
	InitFollowCounter(&settings.FreeCacheConfig{CacheSize: 1024 * 1024})
	return Follows()
}

func TestFollowCounterApplyMovesBothSides(t *testing.T) {
	c := newTestFollowCounter()
	c.SeedFans(2, 10)

	require.NoError(t, c.Apply(1, 2, 1))
	fans, ok := c.Fans(2)
	require.True(t, ok)
	assert.Equal(t, int64(11), fans)

	// Unfollow walks it back.
	require.NoError(t, c.Apply(1, 2, 0))
	fans, ok = c.Fans(2)
	require.True(t, ok)
	assert.Equal(t, int64(10), fans)
}

func TestFollowCounterFansMissesWithoutSeed(t *testing.T) {
	c := newTestFollowCounter()
	_, ok := c.Fans(999)
	assert.False(t, ok)
}

// The producer moves the counter at send time and the consumer later
// reconciles with the store count. Reconciling must replace the value,
// not stack a second increment for the same event.
func TestFollowCounterSeedReconcilesOptimisticApply(t *testing.T) {
	c := newTestFollowCounter()
	c.SeedFans(2, 10)

	// Send path: optimistic bump.
	require.NoError(t, c.Apply(1, 2, 1))

	// Consumer path: the store now holds 11 fans for user 2.
	c.SeedFans(2, 11)
	fans, ok := c.Fans(2)
	require.True(t, ok)
	assert.Equal(t, int64(11), fans)

	// A replayed reconcile stays put.
	c.SeedFans(2, 11)
	fans, _ = c.Fans(2)
	assert.Equal(t, int64(11), fans)
}

func TestFollowCounterSeedOverwrites(t *testing.T) {
	c := newTestFollowCounter()
	c.SeedFans(7, 5)
	c.SeedFans(7, 3)
	fans, ok := c.Fans(7)
	require.True(t, ok)
	assert.Equal(t, int64(3), fans)
}
