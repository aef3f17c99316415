package pricebook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegistryConfig() Config {
	return Config{
		TickSize:         IntKey(1),
		FastSize:         10,
		CollisionBuckets: 2,
		Anchor:           IntKey(100),
	}
}

func TestRegistry_GetOrCreateIsIdempotent(t *testing.T) {
	r := NewRegistry[int64](testRegistryConfig())

	b1, err := r.GetOrCreate("BTC-USD")
	require.NoError(t, err)
	b2, err := r.GetOrCreate("BTC-USD")
	require.NoError(t, err)

	assert.Same(t, b1, b2)
}

func TestRegistry_DistinctSymbolsGetDistinctBooks(t *testing.T) {
	r := NewRegistry[int64](testRegistryConfig())

	btc, err := r.GetOrCreate("BTC-USD")
	require.NoError(t, err)
	eth, err := r.GetOrCreate("ETH-USD")
	require.NoError(t, err)

	assert.NotSame(t, btc, eth)
	assert.ElementsMatch(t, []string{"BTC-USD", "ETH-USD"}, r.Symbols())
}

func TestRegistry_Remove(t *testing.T) {
	r := NewRegistry[int64](testRegistryConfig())
	_, err := r.GetOrCreate("BTC-USD")
	require.NoError(t, err)

	r.Remove("BTC-USD")
	_, ok := r.Get("BTC-USD")
	assert.False(t, ok)
}

func TestRegistry_BooksAreIndependent(t *testing.T) {
	r := NewRegistry[int64](testRegistryConfig())
	btc, err := r.GetOrCreate("BTC-USD")
	require.NoError(t, err)
	eth, err := r.GetOrCreate("ETH-USD")
	require.NoError(t, err)

	btc.Insert(Bid, IntKey(99), 1)
	assert.Equal(t, 1, btc.Size())
	assert.Equal(t, 0, eth.Size())
}
