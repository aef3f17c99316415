package pricebook

// address resolves (side, key) to a (primaryIndex, collisionIndex) pair
// against the given anchor. It is total: every key maps to some address,
// even ones that end up routed to the overflow tier.
//
// collisionIndex == 0 means the fast ring (tier 1). 1..collisionBuckets-1
// means secondary slot collisionIndex-1 (tier 2). Anything >= collisionBuckets
// means the overflow list (tier 3), including the side-aware wrap cases
// below, which are forced there by setting collisionIndex = collisionBuckets+1.
func address(side Side, key, anchor, tickSize Key, fastSize, collisionBuckets int) (primaryIndex, collisionIndex int) {
	half := int64(fastSize / 2)
	offsetTicks := key.Sub(anchor).Ticks(tickSize)
	rawIndex := half + offsetTicks

	primaryIndex = int(positiveMod(rawIndex, int64(fastSize)))

	// Side-aware wrap rejection: a bid priced absurdly high, or an ask
	// priced absurdly low, would otherwise collide with a legitimate
	// same-tier address on the wrong half of the ring.
	if side == Bid && rawIndex > int64(fastSize) {
		return primaryIndex, collisionBuckets + 1
	}
	if side == Ask && rawIndex < 0 {
		return primaryIndex, collisionBuckets + 1
	}

	collisionIndex = int(calcCollisionBucket(rawIndex, int64(fastSize)))
	return primaryIndex, collisionIndex
}

// positiveMod returns x mod modulus, normalized into [0, modulus).
func positiveMod(x, modulus int64) int64 {
	result := x % modulus
	if result < 0 {
		result += modulus
	}
	return result
}

// calcCollisionBucket maps a raw (possibly negative) ring index to a
// collision tier number. Non-negative indices divide evenly by fastSize.
// Negative indices are shifted by one before taking the magnitude so that
// the range [-fastSize, -1] lands in tier 1 rather than tier 0, reserving
// tier 0 for at-or-above-mid addresses.
func calcCollisionBucket(rawIndex, fastSize int64) int64 {
	if rawIndex >= 0 {
		return rawIndex / fastSize
	}
	abs := rawIndex + 1
	if abs < 0 {
		abs = -abs
	}
	return abs/fastSize + 1
}
