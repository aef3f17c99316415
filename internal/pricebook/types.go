// Package pricebook implements a price-indexed limit order book backed by a
// mid-anchored hashed bucket layout instead of a balanced-tree price ladder.
// It stores one (bid, ask) value pair per price; it is a price-level
// container, not a matching engine.
package pricebook

// Side identifies which book half a key/value belongs to.
type Side uint8

const (
	Bid Side = iota
	Ask
)

func (s Side) String() string {
	if s == Bid {
		return "bid"
	}
	return "ask"
}

// Key is a totally ordered price type. Sub, Sign and Ticks stand in for the
// arithmetic a C++ template would get for free via operator overloading;
// Go has no operator overloading, so any type that wants to be a Key must
// say explicitly how it subtracts, how it compares to its own zero value,
// how a delta converts to a signed tick count, and how two keys combine
// into a midpoint.
type Key interface {
	// Less reports whether k sorts before other.
	Less(other Key) bool
	// Equal reports whether k and other represent the same price.
	Equal(other Key) bool
	// Sub returns k - other.
	Sub(other Key) Key
	// Sign reports -1, 0, or 1 depending on whether k is negative, zero,
	// or positive relative to the concrete type's zero value.
	Sign() int
	// Ticks returns the signed number of tickSize units k represents,
	// i.e. k / tickSize truncated toward zero.
	Ticks(tickSize Key) int64
	// Mid returns the midpoint of k and other: (k + other) / 2.
	Mid(other Key) Key
}

// IntKey is a tick-count Key backed by a plain int64. It is the default
// Key implementation for callers that track price purely in ticks.
type IntKey int64

func (k IntKey) Less(other Key) bool  { return k < other.(IntKey) }
func (k IntKey) Equal(other Key) bool { return k == other.(IntKey) }
func (k IntKey) Sub(other Key) Key    { return k - other.(IntKey) }
func (k IntKey) Sign() int {
	switch {
	case k < 0:
		return -1
	case k > 0:
		return 1
	default:
		return 0
	}
}
func (k IntKey) Ticks(tickSize Key) int64 { return int64(k) / int64(tickSize.(IntKey)) }
func (k IntKey) Mid(other Key) Key        { return (k + other.(IntKey)) / 2 }
