package pricebook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBook(t *testing.T, fastSize, collisionBuckets int, anchor int64) *Book[int64] {
	t.Helper()
	b, err := New[int64](Config{
		TickSize:         IntKey(1),
		FastSize:         fastSize,
		CollisionBuckets: collisionBuckets,
		Anchor:           IntKey(anchor),
	})
	require.NoError(t, err)
	return b
}

func TestNew_RejectsBadConfig(t *testing.T) {
	cases := []Config{
		{TickSize: IntKey(1), FastSize: 0, CollisionBuckets: 2, Anchor: IntKey(0)},
		{TickSize: IntKey(1), FastSize: 3, CollisionBuckets: 2, Anchor: IntKey(0)},
		{TickSize: IntKey(0), FastSize: 10, CollisionBuckets: 2, Anchor: IntKey(0)},
		{TickSize: IntKey(-1), FastSize: 10, CollisionBuckets: 2, Anchor: IntKey(0)},
		{TickSize: IntKey(1), FastSize: 10, CollisionBuckets: -1, Anchor: IntKey(0)},
	}
	for _, c := range cases {
		_, err := New[int64](c)
		assert.Error(t, err)
	}
}

// Scenario 1: construct (N=10, C=2, anchor=110). Insert Bid@110=v, then
// Ask@110=v. Find both returns their values. size == 2.
func TestScenario_InsertBothSidesAtSamePrice(t *testing.T) {
	b := newTestBook(t, 10, 2, 110)

	assert.True(t, b.Insert(Bid, IntKey(110), 1))
	assert.True(t, b.Insert(Ask, IntKey(110), 2))

	v, ok := b.Find(Bid, IntKey(110))
	assert.True(t, ok)
	assert.EqualValues(t, 1, v)

	v, ok = b.Find(Ask, IntKey(110))
	assert.True(t, ok)
	assert.EqualValues(t, 2, v)

	assert.Equal(t, 2, b.Size())
}

// Scenario 3: duplicate insert fails and leaves size unchanged.
func TestScenario_DuplicateInsertFails(t *testing.T) {
	b := newTestBook(t, 10, 2, 110)
	assert.True(t, b.Insert(Bid, IntKey(109), 7))
	assert.False(t, b.Insert(Bid, IntKey(109), 8))
	assert.Equal(t, 1, b.Size())

	v, ok := b.Find(Bid, IntKey(109))
	require.True(t, ok)
	assert.EqualValues(t, 7, v)
}

// Scenario 4: insert at an overflow-tier key, find, erase, find again.
func TestScenario_OverflowRoundTrip(t *testing.T) {
	b := newTestBook(t, 10, 3, 110)

	assert.True(t, b.Insert(Ask, IntKey(135), 42))
	assert.True(t, b.Insert(Bid, IntKey(135), 43))

	v, ok := b.Find(Ask, IntKey(135))
	require.True(t, ok)
	assert.EqualValues(t, 42, v)

	v, ok = b.Find(Bid, IntKey(135))
	require.True(t, ok)
	assert.EqualValues(t, 43, v)

	assert.True(t, b.Erase(Ask, IntKey(135)))
	_, ok = b.Find(Ask, IntKey(135))
	assert.False(t, ok)

	// the node should still carry the bid cell
	v, ok = b.Find(Bid, IntKey(135))
	require.True(t, ok)
	assert.EqualValues(t, 43, v)

	assert.True(t, b.Erase(Bid, IntKey(135)))
	_, ok = b.Find(Bid, IntKey(135))
	assert.False(t, ok)
}

func TestEraseAfterMiss_IsIdempotent(t *testing.T) {
	b := newTestBook(t, 10, 2, 110)
	assert.False(t, b.Erase(Bid, IntKey(100)))
	assert.Equal(t, 0, b.Size())

	assert.True(t, b.Insert(Bid, IntKey(100), 1))
	assert.True(t, b.Erase(Bid, IntKey(100)))
	assert.False(t, b.Erase(Bid, IntKey(100)))
	assert.Equal(t, 0, b.Size())
}

func TestFind_MissingKeyReturnsFalse(t *testing.T) {
	b := newTestBook(t, 10, 2, 110)
	_, ok := b.Find(Ask, IntKey(999))
	assert.False(t, ok)
}

func TestSizeAccounting_InterleavedInsertsAndErases(t *testing.T) {
	b := newTestBook(t, 20, 3, 110)
	keys := []int64{110, 111, 109, 112, 108, 135, 85}
	for i, k := range keys {
		side := Bid
		if i%2 == 0 {
			side = Ask
		}
		assert.True(t, b.Insert(side, IntKey(k), int64(i)))
	}
	assert.Equal(t, len(keys), b.Size())

	assert.True(t, b.Erase(Ask, IntKey(110)))
	assert.True(t, b.Erase(Bid, IntKey(111)))
	assert.Equal(t, len(keys)-2, b.Size())
}

func TestBBO_MonotonicUpdate(t *testing.T) {
	b := newTestBook(t, 20, 3, 110)

	b.Insert(Bid, IntKey(108), 1)
	b.Insert(Bid, IntKey(109), 1)
	b.Insert(Bid, IntKey(107), 1)

	bid, ok := b.BestBid()
	require.True(t, ok)
	assert.Equal(t, IntKey(109), bid)

	b.Insert(Ask, IntKey(112), 1)
	b.Insert(Ask, IntKey(111), 1)
	b.Insert(Ask, IntKey(113), 1)

	offer, ok := b.BestOffer()
	require.True(t, ok)
	assert.Equal(t, IntKey(111), offer)
}

func TestMassiveMidMove_Panics(t *testing.T) {
	b := newTestBook(t, 10, 2, 110)

	// Ask@124 lands in collision tier 1; with no bid yet there is no mid
	// to check.
	b.Insert(Ask, IntKey(124), 1)

	// The first bid then sets the mid to (109+124)/2 = 116, outside the
	// fast ring (tier 0 only spans keys 105-114 here), which is fatal.
	assert.Panics(t, func() {
		b.Insert(Bid, IntKey(109), 1)
	})
}

func TestClear_ResetsBBOAndSize(t *testing.T) {
	b := newTestBook(t, 10, 2, 110)
	b.Insert(Bid, IntKey(109), 1)
	b.Insert(Ask, IntKey(111), 1)

	b.Clear()
	assert.Equal(t, 0, b.Size())
	_, ok := b.BestBid()
	assert.False(t, ok)
	_, ok = b.BestOffer()
	assert.False(t, ok)

	_, ok = b.Find(Bid, IntKey(109))
	assert.False(t, ok)
}

func TestClearWithAnchor_AdoptsNewAnchor(t *testing.T) {
	b := newTestBook(t, 10, 2, 110)
	b.Insert(Bid, IntKey(109), 1)

	b.ClearWithAnchor(IntKey(200))
	assert.Equal(t, 0, b.Size())
	assert.True(t, b.Insert(Bid, IntKey(199), 9))
	v, ok := b.Find(Bid, IntKey(199))
	require.True(t, ok)
	assert.EqualValues(t, 9, v)
}
