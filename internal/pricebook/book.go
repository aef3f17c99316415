package pricebook

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Config carries the construction-time parameters of §3 of the base
// design: changing any of these constructs a different container, so
// they are fixed for the lifetime of a Book (short of an explicit
// Rehash or ClearWithAnchor, which only ever change Anchor).
type Config struct {
	TickSize         Key
	FastSize         int
	CollisionBuckets int
	Anchor           Key
}

// validate returns plain errors for caller misconfiguration discoverable
// before any cell exists, never a panic. The fatal panics reserved for
// *pbkerrors.InvariantError are for invariant violations discovered
// mid-operation on an already-built Book, not for bad construction-time
// input.
func (c Config) validate() error {
	if c.FastSize == 0 {
		return fmt.Errorf("pricebook: FastSize must be nonzero")
	}
	if c.FastSize%2 != 0 {
		return fmt.Errorf("pricebook: FastSize must be even, got %d", c.FastSize)
	}
	if c.CollisionBuckets < 0 {
		return fmt.Errorf("pricebook: CollisionBuckets must be non-negative, got %d", c.CollisionBuckets)
	}
	if c.TickSize == nil || c.TickSize.Sign() <= 0 {
		return fmt.Errorf("pricebook: TickSize must be positive")
	}
	if c.Anchor == nil {
		return fmt.Errorf("pricebook: Anchor must be set")
	}
	return nil
}

// Option customizes a Book at construction using the functional-option
// shape common for long-lived components (loggers and pools wired in
// after the zero-value struct is built).
type Option[V any] func(*Book[V])

// WithLogger attaches a *zap.Logger. The hot insert/find/erase paths
// never touch it; only construction, rehash, and recovered-panic paths
// log.
func WithLogger[V any](l *zap.Logger) Option[V] {
	return func(b *Book[V]) { b.logger = l }
}

// WithLabel sets the string used for metrics and log correlation. A
// Registry-minted Book defaults this to its symbol; a standalone Book
// defaults to its uuid.
func WithLabel[V any](label string) Option[V] {
	return func(b *Book[V]) { b.label = label }
}

// Book is a single price-indexed limit order book: one (bid, ask) value
// pair per price, stored in a mid-anchored hashed bucket layout instead
// of a balanced-tree price ladder.
type Book[V any] struct {
	id     uuid.UUID
	label  string
	logger *zap.Logger

	tickSize         Key
	fastSize         int
	collisionBuckets int
	anchor           Key

	buckets   []primaryBucket[V]
	bestBid   Key
	bestOffer Key
	midIndex  int
	size      int

	overflowPool *overflowNodePool[V]
	bucketPool   *bucketArrayPool[V]
}

// New constructs an empty Book. Every tier is eagerly allocated:
// collision arrays and overflow-list heads exist, empty, from the first
// call onward.
func New[V any](cfg Config, opts ...Option[V]) (*Book[V], error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	b := &Book[V]{
		id:               uuid.New(),
		tickSize:         cfg.TickSize,
		fastSize:         cfg.FastSize,
		collisionBuckets: cfg.CollisionBuckets,
		anchor:           cfg.Anchor,
		buckets:          newBuckets[V](cfg.FastSize, cfg.CollisionBuckets),
		overflowPool:     newOverflowNodePool[V](),
		bucketPool:       newBucketArrayPool[V](cfg.FastSize, cfg.CollisionBuckets),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = zap.NewNop()
	}
	if b.label == "" {
		b.label = b.id.String()
	}
	recordConstruction(b.label)
	b.logger.Info("pricebook constructed",
		zap.String("book", b.label),
		zap.Int("fast_size", b.fastSize),
		zap.Int("collision_buckets", b.collisionBuckets))
	return b, nil
}

// Size reports the number of occupied (side, key) cells across all tiers.
func (b *Book[V]) Size() int { return b.size }

// BestBid reports the current best bid, if any.
func (b *Book[V]) BestBid() (Key, bool) {
	if b.bestBid == nil {
		return nil, false
	}
	return b.bestBid, true
}

// BestOffer reports the current best offer, if any.
func (b *Book[V]) BestOffer() (Key, bool) {
	if b.bestOffer == nil {
		return nil, false
	}
	return b.bestOffer, true
}

// ID is the uuid minted for this Book at construction, used to correlate
// its logs and metrics across a process hosting many books.
func (b *Book[V]) ID() uuid.UUID { return b.id }

// Clear empties every cell and resets BBO and size, keeping the current
// anchor.
func (b *Book[V]) Clear() {
	b.clearTo(b.anchor)
}

// ClearWithAnchor empties the book and adopts a new anchor, without
// paying for a rehash (there is nothing to migrate).
func (b *Book[V]) ClearWithAnchor(newAnchor Key) {
	b.clearTo(newAnchor)
}

func (b *Book[V]) clearTo(anchor Key) {
	for i := range b.buckets {
		bucket := &b.buckets[i]
		bucket.first.bid.clear()
		bucket.first.ask.clear()
		for j := range bucket.secondary {
			bucket.secondary[j].bid.clear()
			bucket.secondary[j].ask.clear()
		}
		for n := bucket.overflow; n != nil; {
			next := n.next
			b.overflowPool.put(n)
			n = next
		}
		bucket.overflow = nil
	}
	b.anchor = anchor
	b.bestBid = nil
	b.bestOffer = nil
	b.midIndex = b.fastSize / 2
	b.size = 0
	recordSize(b.label, b.size)
}
