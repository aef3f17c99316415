package pricebook

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Exercises the exact vectors the base design's address-arithmetic
// scenario calls out: N=10, C=3, TickSize=1, anchor=110.
func TestAddress_Vectors(t *testing.T) {
	const fastSize = 10
	const collisionBuckets = 3
	anchor := IntKey(110)
	tick := IntKey(1)

	cases := []struct {
		side           Side
		key            int64
		primary        int
		collisionAtLow int // expected collision index when < collisionBuckets
	}{
		{Ask, 110, 5, 0},
		{Ask, 114, 9, 0},
		{Ask, 115, 0, 1},
		{Ask, 124, 9, 1},
		{Ask, 125, 0, 2},
		{Ask, 134, 9, 2},
		{Bid, 105, 0, 0},
		{Bid, 104, 9, 1},
		{Bid, 95, 0, 1},
		{Bid, 94, 9, 2},
	}

	for _, c := range cases {
		p, col := address(c.side, IntKey(c.key), anchor, tick, fastSize, collisionBuckets)
		assert.Equal(t, c.primary, p, "side=%v key=%d primary", c.side, c.key)
		assert.Equal(t, c.collisionAtLow, col, "side=%v key=%d collision", c.side, c.key)
	}
}

func TestAddress_OverflowRouting(t *testing.T) {
	const fastSize = 10
	const collisionBuckets = 3
	anchor := IntKey(110)
	tick := IntKey(1)

	_, col := address(Ask, IntKey(135), anchor, tick, fastSize, collisionBuckets)
	assert.GreaterOrEqual(t, col, collisionBuckets)

	// The tier boundary is symmetric around the anchor: tier k holds a
	// band of fastSize consecutive keys on each side. Ask's third
	// collision tier runs key 125-134 and first overflows at 135; the
	// mirror-image band on the bid side runs key 85-94 (collision 2,
	// still valid) and first overflows one key further out, at 84.
	_, col = address(Bid, IntKey(85), anchor, tick, fastSize, collisionBuckets)
	assert.Less(t, col, collisionBuckets, "85 is still the far edge of tier 2, not overflow")

	_, col = address(Bid, IntKey(84), anchor, tick, fastSize, collisionBuckets)
	assert.GreaterOrEqual(t, col, collisionBuckets)
}

func TestAddress_SideAwareWrapRejection(t *testing.T) {
	const fastSize = 10
	const collisionBuckets = 3
	anchor := IntKey(110)
	tick := IntKey(1)

	// A bid priced far above the ring must not land in a legitimate
	// tier-1/2 slot: it has to be routed to overflow regardless of what
	// calcCollisionBucket alone would say.
	_, col := address(Bid, IntKey(200), anchor, tick, fastSize, collisionBuckets)
	assert.Equal(t, collisionBuckets+1, col)

	// Symmetric case: an ask priced far below the ring.
	_, col = address(Ask, IntKey(20), anchor, tick, fastSize, collisionBuckets)
	assert.Equal(t, collisionBuckets+1, col)
}

func TestPositiveMod(t *testing.T) {
	assert.Equal(t, int64(3), positiveMod(3, 10))
	assert.Equal(t, int64(7), positiveMod(-3, 10))
	assert.Equal(t, int64(0), positiveMod(-10, 10))
}
