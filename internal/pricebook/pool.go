package pricebook

import "sync"

// overflowNodePool pools one Book's overflow-list nodes (each Book builds
// its own pool in New): the hot paths for tiers 1 and 2 allocate nothing,
// but the overflow tier and rehash do, so allocation for those paths goes
// through a sync.Pool with hit/miss counters rather than a bare `new`.
type overflowNodePool[V any] struct {
	pool   sync.Pool
	misses int64
	gets   int64
	puts   int64
}

func newOverflowNodePool[V any]() *overflowNodePool[V] {
	p := &overflowNodePool[V]{}
	p.pool.New = func() any {
		p.misses++
		return new(overflowNode[V])
	}
	return p
}

func (p *overflowNodePool[V]) get() *overflowNode[V] {
	p.gets++
	n := p.pool.Get().(*overflowNode[V])
	return n
}

func (p *overflowNodePool[V]) put(n *overflowNode[V]) {
	if n == nil {
		return
	}
	n.collisionIndex = 0
	n.key = nil
	n.bid.clear()
	n.ask.clear()
	n.next = nil
	p.puts++
	p.pool.Put(n)
}

// poolStats reports pool hit/miss counters for the metrics surface. hits
// is derived rather than tracked directly: every miss runs pool.New, so
// gets-minus-misses is exactly the number of Gets satisfied from the pool.
func (p *overflowNodePool[V]) stats() (gets, puts, hits, misses int64) {
	return p.gets, p.puts, p.gets - p.misses, p.misses
}

// bucketArrayPool pools the fresh []primaryBucket[V] that rehash allocates,
// pooling whole backing arrays rather than just their fields. Pooling is
// keyed by (fastSize,
// collisionBuckets) shape: a book that rehashes repeatedly at a fixed
// shape (the common case — shape is a construction-time parameter) reuses
// the same backing array across rehashes instead of allocating N*(1+C)
// slots every time.
type bucketArrayPool[V any] struct {
	fastSize         int
	collisionBuckets int
	pool             sync.Pool
	misses           int64
	gets             int64
	puts             int64
}

func newBucketArrayPool[V any](fastSize, collisionBuckets int) *bucketArrayPool[V] {
	p := &bucketArrayPool[V]{fastSize: fastSize, collisionBuckets: collisionBuckets}
	p.pool.New = func() any {
		p.misses++
		return newBuckets[V](fastSize, collisionBuckets)
	}
	return p
}

func (p *bucketArrayPool[V]) get() []primaryBucket[V] {
	p.gets++
	buckets := p.pool.Get().([]primaryBucket[V])
	for i := range buckets {
		buckets[i].first.bid.clear()
		buckets[i].first.ask.clear()
		for j := range buckets[i].secondary {
			buckets[i].secondary[j].bid.clear()
			buckets[i].secondary[j].ask.clear()
		}
		buckets[i].overflow = nil
	}
	return buckets
}

func (p *bucketArrayPool[V]) put(buckets []primaryBucket[V]) {
	if len(buckets) != p.fastSize {
		return
	}
	p.puts++
	p.pool.Put(buckets)
}

func (p *bucketArrayPool[V]) stats() (gets, puts, hits, misses int64) {
	return p.gets, p.puts, p.gets - p.misses, p.misses
}
