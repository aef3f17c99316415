package pricebook

import (
	"time"

	"go.uber.org/zap"

	"github.com/mattyv/HashOrderBook/pkg/pbkerrors"
)

// Rehash migrates every occupied cell into a freshly anchored bucket
// array, then replaces the backing storage. It is the only supported way
// to move the anchor; it is O(size). A reinsert failure mid-migration
// indicates a pre-existing invariant violation in the source structure
// (two cells hashing to the same new address) and is fatal.
func (b *Book[V]) Rehash(newAnchor Key) {
	start := time.Now()
	oldAnchor, oldSize := b.anchor, b.size

	fresh := b.bucketPool.get()
	old := b.buckets
	oldBestBid, oldBestOffer := b.bestBid, b.bestOffer

	b.buckets = fresh
	b.anchor = newAnchor
	b.size = 0

	for i := range old {
		bucket := &old[i]
		b.rawReinsert(Bid, &bucket.first.bid)
		b.rawReinsert(Ask, &bucket.first.ask)
		for j := range bucket.secondary {
			b.rawReinsert(Bid, &bucket.secondary[j].bid)
			b.rawReinsert(Ask, &bucket.secondary[j].ask)
		}
		for n := bucket.overflow; n != nil; {
			next := n.next
			b.rawReinsert(Bid, &n.bid)
			b.rawReinsert(Ask, &n.ask)
			b.overflowPool.put(n)
			n = next
		}
	}
	b.bucketPool.put(old)

	b.bestBid, b.bestOffer = oldBestBid, oldBestOffer
	b.recomputeMidIndex()

	recordSize(b.label, b.size)
	elapsed := time.Since(start)
	recordRehash(b.label, elapsed)
	b.logger.Info("pricebook rehash complete",
		zap.String("book", b.label),
		zap.Any("old_anchor", oldAnchor),
		zap.Any("new_anchor", newAnchor),
		zap.Int("size", oldSize),
		zap.Duration("elapsed", elapsed))
}

// rawReinsert reinserts an occupied cell's (key, value) at its new
// address without touching best_bid/best_offer: rehash preserves the set
// of stored triples and the previously observed BBO verbatim, it does
// not re-derive BBO from scratch.
func (b *Book[V]) rawReinsert(side Side, c *cell[V]) {
	if !c.occupied {
		return
	}
	key, value := c.key, c.value
	primaryIndex, collisionIndex := address(side, key, b.anchor, b.tickSize, b.fastSize, b.collisionBuckets)

	var ok bool
	if collisionIndex < b.collisionBuckets {
		dst := b.cellAt(primaryIndex, collisionIndex, side)
		if dst.occupied {
			ok = false
		} else {
			dst.key, dst.value, dst.occupied = key, value, true
			ok = true
		}
	} else {
		ok = b.insertOverflow(&b.buckets[primaryIndex], side, key, value, collisionIndex)
	}
	if !ok {
		pbkerrors.Panic(pbkerrors.KindRehashFailed,
			"rehash: reinsert of (side=%s, key=%v) collided at its new address", side, key)
	}
	b.size++
}

// recomputeMidIndex re-addresses the current BBO against the current
// anchor without requiring a triggering side, for use after a rehash
// (where no single insert caused the recomputation). When both sides are
// set it hashes the mid on the ask side by convention; a massive mid
// move discovered here is just as fatal as one discovered from an
// insert.
func (b *Book[V]) recomputeMidIndex() {
	switch {
	case b.bestBid != nil && b.bestOffer != nil:
		mid := b.bestBid.Mid(b.bestOffer)
		primaryIndex, collisionIndex := address(Ask, mid, b.anchor, b.tickSize, b.fastSize, b.collisionBuckets)
		if collisionIndex != 0 {
			recordMassiveMidMove(b.label)
			pbkerrors.Panic(pbkerrors.KindMassiveMidMove,
				"mid %v moved outside the fast ring after rehash (collision tier %d)", mid, collisionIndex)
		}
		b.midIndex = primaryIndex
	case b.bestBid != nil:
		primaryIndex, _ := address(Bid, b.bestBid, b.anchor, b.tickSize, b.fastSize, b.collisionBuckets)
		b.midIndex = primaryIndex
	case b.bestOffer != nil:
		primaryIndex, _ := address(Ask, b.bestOffer, b.anchor, b.tickSize, b.fastSize, b.collisionBuckets)
		b.midIndex = primaryIndex
	default:
		b.midIndex = b.fastSize / 2
	}
}
