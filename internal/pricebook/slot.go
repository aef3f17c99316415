package pricebook

// cacheLineSize is the padding target for a primaryBucket, mirroring the
// teacher's zero-copy structures (internal/trading/orderbook/zero_copy_order.go),
// which hand-pad to 64 bytes. The original C++ design targets 128 bytes;
// this port keeps that number since it is a property of the layout, not
// of any particular CPU this was tuned on (platform probing is out of
// scope, per the base spec).
const cacheLineSize = 128

// cell is one optional (Key, Value) slot.
type cell[V any] struct {
	key      Key
	value    V
	occupied bool
}

func (c *cell[V]) clear() {
	var zero V
	c.key = nil
	c.value = zero
	c.occupied = false
}

// slot is a pair of cells, one per side, at a single address.
type slot[V any] struct {
	bid cell[V]
	ask cell[V]
}

func (s *slot[V]) cellFor(side Side) *cell[V] {
	if side == Bid {
		return &s.bid
	}
	return &s.ask
}

func (s *slot[V]) empty() bool { return !s.bid.occupied && !s.ask.occupied }

// overflowNode is one entry in a primary bucket's overflow list. Unlike
// the fast-ring and collision-tier slots, an overflow node knows its own
// collisionIndex so iteration can eventually target a specific tier
// inside the list, and so a bid and an ask at the same extreme key can
// share one node.
type overflowNode[V any] struct {
	collisionIndex int
	key            Key
	bid            cell[V]
	ask            cell[V]
	next           *overflowNode[V]
}

func (n *overflowNode[V]) cellFor(side Side) *cell[V] {
	if side == Bid {
		return &n.bid
	}
	return &n.ask
}

func (n *overflowNode[V]) empty() bool { return !n.bid.occupied && !n.ask.occupied }

// primaryBucket owns one fast-ring slot (tier 1), a fixed-size array of
// collision slots (tier 2), and an overflow list (tier 3). The first slot
// is stored inline so the hot path for collisionIndex == 0 is a single
// indirection through the primary array; secondary and overflow storage
// sit behind their own allocations, as in the source design.
type primaryBucket[V any] struct {
	first     slot[V]
	secondary []slot[V]
	overflow  *overflowNode[V]
	_         [bucketPadding]byte
}

// bucketPadding pads a primaryBucket so that, where possible, a whole
// number of buckets fits evenly into a cache line: random access into the
// ring should never need to fetch a second cache line to read one bucket's
// first slot. sizeofPrimaryBucketCore is a conservative estimate of the
// unpadded struct size on a 64-bit platform (slot{bid,ask cell} plus a
// slice header plus a pointer); it does not need to be exact, only close
// enough that padding keeps buckets from straddling lines in practice.
const sizeofPrimaryBucketCore = 2*(2*(16+16+1)) + 24 + 8

// bucketPadding must be a compile-time constant so it can size the array
// field below; it is kept in lockstep with computeBucketPadding via the
// same per-line/remainder arithmetic, guarded
// against the coreSize >= lineSize and perLine == 0 cases using min/max
// instead of a branch, since const initializers cannot call functions.
const (
	bucketPaddingPerLine        = cacheLineSize / sizeofPrimaryBucketCore
	bucketPaddingGuardedPerLine = max(bucketPaddingPerLine, 1)
	bucketPaddingRemainder      = cacheLineSize - sizeofPrimaryBucketCore*bucketPaddingPerLine
	bucketPaddingHasPerLine     = min(bucketPaddingPerLine, 1)
	bucketPadding               = (bucketPaddingRemainder / bucketPaddingGuardedPerLine) * bucketPaddingHasPerLine
)

func computeBucketPadding(coreSize, lineSize int) int {
	if coreSize >= lineSize {
		return 0
	}
	perLine := lineSize / coreSize
	remainder := lineSize - coreSize*perLine
	return remainder / perLine
}

func newPrimaryBucket[V any](collisionBuckets int) primaryBucket[V] {
	return primaryBucket[V]{
		secondary: make([]slot[V], collisionBuckets),
	}
}

func newBuckets[V any](fastSize, collisionBuckets int) []primaryBucket[V] {
	buckets := make([]primaryBucket[V], fastSize)
	for i := range buckets {
		buckets[i] = newPrimaryBucket[V](collisionBuckets)
	}
	return buckets
}
