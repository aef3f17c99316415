package pricebook

// Iterator walks occupied cells for one side outward from the BBO. It is
// explicitly partial: at each primary bucket it visits the first slot,
// then the collision slots, then the overflow list before moving to the
// next bucket, so price order is strict only within the fast ring and
// within a single bucket's collision array; entries from different tiers
// interleave by bucket, not by price.
// Ask walks primary index increasing (with wrap); Bid walks decreasing.
type Iterator[V any] struct {
	book        *Book[V]
	side        Side
	primary     int
	visited     int
	collision   int
	done        bool
	overflowPos *overflowNode[V]
}

// AskIterator starts at the ask side's mid-index position and walks
// primary indices upward, wrapping at fastSize.
func (b *Book[V]) AskIterator() *Iterator[V] {
	return &Iterator[V]{book: b, side: Ask, primary: b.midIndex}
}

// BidIterator starts at the bid side's mid-index position and walks
// primary indices downward, wrapping at fastSize.
func (b *Book[V]) BidIterator() *Iterator[V] {
	return &Iterator[V]{book: b, side: Bid, primary: b.midIndex}
}

// Next advances to the next occupied cell for this iterator's side,
// returning its key, value, and whether one was found. End-of-iteration
// is reached once a full ring sweep (fast ring plus the scanned
// collision tiers at each bucket) produces no further occupied cell.
func (it *Iterator[V]) Next() (Key, V, bool) {
	var zero V
	if it.done {
		return nil, zero, false
	}
	b := it.book
	for it.visited < b.fastSize {
		bucket := &b.buckets[it.primary]

		if it.collision == 0 {
			if c := bucket.first.cellFor(it.side); c.occupied {
				it.collision = 1
				return c.key, c.value, true
			}
			it.collision = 1
		}
		for it.collision-1 < len(bucket.secondary) {
			idx := it.collision - 1
			it.collision++
			if c := bucket.secondary[idx].cellFor(it.side); c.occupied {
				return c.key, c.value, true
			}
		}
		if it.collision == len(bucket.secondary)+1 {
			it.overflowPos = bucket.overflow
			it.collision++
		}
		for it.overflowPos != nil {
			n := it.overflowPos
			it.overflowPos = n.next
			if c := n.cellFor(it.side); c.occupied {
				return c.key, c.value, true
			}
		}

		it.advanceBucket(b)
	}
	it.done = true
	return nil, zero, false
}

func (it *Iterator[V]) advanceBucket(b *Book[V]) {
	it.visited++
	it.collision = 0
	it.overflowPos = nil
	if it.side == Ask {
		it.primary++
		if it.primary >= b.fastSize {
			it.primary = 0
		}
	} else {
		it.primary--
		if it.primary < 0 {
			it.primary = b.fastSize - 1
		}
	}
}
