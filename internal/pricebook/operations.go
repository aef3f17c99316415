package pricebook

import "github.com/mattyv/HashOrderBook/pkg/pbkerrors"

// cellAt resolves a tier-1/tier-2 address to its cell. Callers must have
// already established collisionIndex < b.collisionBuckets; anything at
// or beyond that belongs to the overflow tier and has no single cell.
func (b *Book[V]) cellAt(primaryIndex, collisionIndex int, side Side) *cell[V] {
	bucket := &b.buckets[primaryIndex]
	if collisionIndex == 0 {
		return bucket.first.cellFor(side)
	}
	return bucket.secondary[collisionIndex-1].cellFor(side)
}

// Insert writes value at (side, key). It returns false, without
// modifying the book, if that address already holds a value for this
// side — a duplicate insert is an expected outcome, not an error.
func (b *Book[V]) Insert(side Side, key Key, value V) bool {
	primaryIndex, collisionIndex := address(side, key, b.anchor, b.tickSize, b.fastSize, b.collisionBuckets)

	var ok bool
	if collisionIndex < b.collisionBuckets {
		c := b.cellAt(primaryIndex, collisionIndex, side)
		if c.occupied {
			return false
		}
		c.key = key
		c.value = value
		c.occupied = true
		ok = true
	} else {
		ok = b.insertOverflow(&b.buckets[primaryIndex], side, key, value, collisionIndex)
	}
	if !ok {
		return false
	}
	b.size++
	recordSize(b.label, b.size)
	// The source updates BBO unconditionally on any successful tier-1/2
	// insert, not only on tier-0 inserts that could plausibly improve it;
	// this Book follows that behavior as written (base design §9).
	// Overflow-tier inserts leave BBO and the mid index untouched.
	if collisionIndex < b.collisionBuckets {
		b.updateBBOAndMid(side, key)
	}
	return true
}

// insertOverflow scans the bucket's overflow list for a node already
// carrying this key. A match with an empty side-cell is populated in
// place; a match with an occupied side-cell is a duplicate. No match at
// all prepends a fresh node.
func (b *Book[V]) insertOverflow(bucket *primaryBucket[V], side Side, key Key, value V, collisionIndex int) bool {
	for n := bucket.overflow; n != nil; n = n.next {
		if !n.key.Equal(key) {
			continue
		}
		c := n.cellFor(side)
		if c.occupied {
			return false
		}
		c.key = key
		c.value = value
		c.occupied = true
		return true
	}
	node := b.overflowPool.get()
	node.collisionIndex = collisionIndex
	node.key = key
	c := node.cellFor(side)
	c.key = key
	c.value = value
	c.occupied = true
	node.next = bucket.overflow
	bucket.overflow = node
	return true
}

// Find reports the value stored at (side, key), if any.
func (b *Book[V]) Find(side Side, key Key) (V, bool) {
	var zero V
	primaryIndex, collisionIndex := address(side, key, b.anchor, b.tickSize, b.fastSize, b.collisionBuckets)

	if collisionIndex < b.collisionBuckets {
		c := b.cellAt(primaryIndex, collisionIndex, side)
		if !c.occupied {
			return zero, false
		}
		if !c.key.Equal(key) {
			pbkerrors.Panic(pbkerrors.KindKeyMismatch,
				"find: tier cell (primary=%d, collision=%d, side=%s) holds key %v, queried %v",
				primaryIndex, collisionIndex, side, c.key, key)
		}
		return c.value, true
	}

	bucket := &b.buckets[primaryIndex]
	for n := bucket.overflow; n != nil; n = n.next {
		if !n.key.Equal(key) {
			continue
		}
		c := n.cellFor(side)
		if c.occupied {
			return c.value, true
		}
	}
	return zero, false
}

// Erase removes the value stored at (side, key), if any, and reports
// whether a cell was emptied. Erase never adjusts best_bid/best_offer
// even when the erased key was the current best — see the base design's
// BBO-erosion note; callers that need a re-scanned BBO after a cancel
// must do it themselves.
func (b *Book[V]) Erase(side Side, key Key) bool {
	primaryIndex, collisionIndex := address(side, key, b.anchor, b.tickSize, b.fastSize, b.collisionBuckets)

	if collisionIndex < b.collisionBuckets {
		c := b.cellAt(primaryIndex, collisionIndex, side)
		if !c.occupied {
			return false
		}
		if !c.key.Equal(key) {
			pbkerrors.Panic(pbkerrors.KindKeyMismatch,
				"erase: tier cell (primary=%d, collision=%d, side=%s) holds key %v, queried %v",
				primaryIndex, collisionIndex, side, c.key, key)
		}
		c.clear()
		b.size--
		recordSize(b.label, b.size)
		return true
	}

	bucket := &b.buckets[primaryIndex]
	var prev *overflowNode[V]
	for n := bucket.overflow; n != nil; n = n.next {
		if !n.key.Equal(key) {
			prev = n
			continue
		}
		c := n.cellFor(side)
		if !c.occupied {
			return false
		}
		c.clear()
		b.size--
		recordSize(b.label, b.size)
		if n.empty() {
			if prev == nil {
				bucket.overflow = n.next
			} else {
				prev.next = n.next
			}
			b.overflowPool.put(n)
		}
		return true
	}
	return false
}

// updateBBOAndMid applies the monotonic BBO update for a successful
// insert on the triggering side, then re-addresses the mid (or, while
// one side remains unset, the changed side's own best) against the
// current anchor. A newly computed mid whose address falls outside the
// fast ring is a massive mid move and is fatal.
//
// When both sides are set, the mid is re-addressed using the *triggering
// side* of this insert, not a fixed convention — this reproduces the
// original hashed-book's behavior of calling _hash_key with whichever
// side just changed, mid price included, rather than re-deriving a
// side-neutral address for the mid.
func (b *Book[V]) updateBBOAndMid(side Side, key Key) {
	changed := false
	switch side {
	case Bid:
		if b.bestBid == nil || b.bestBid.Less(key) {
			b.bestBid = key
			changed = true
		}
	case Ask:
		if b.bestOffer == nil || key.Less(b.bestOffer) {
			b.bestOffer = key
			changed = true
		}
	}
	if !changed {
		return
	}

	if b.bestBid != nil && b.bestOffer != nil {
		mid := b.bestBid.Mid(b.bestOffer)
		primaryIndex, collisionIndex := address(side, mid, b.anchor, b.tickSize, b.fastSize, b.collisionBuckets)
		if collisionIndex != 0 {
			recordMassiveMidMove(b.label)
			pbkerrors.Panic(pbkerrors.KindMassiveMidMove,
				"mid %v moved outside the fast ring (collision tier %d)", mid, collisionIndex)
		}
		b.midIndex = primaryIndex
		return
	}

	primaryIndex, _ := address(side, key, b.anchor, b.tickSize, b.fastSize, b.collisionBuckets)
	b.midIndex = primaryIndex
}
