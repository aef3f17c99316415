package pricebook

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntKey_Arithmetic(t *testing.T) {
	a, b := IntKey(10), IntKey(3)
	assert.True(t, b.Less(a))
	assert.False(t, a.Less(b))
	assert.True(t, a.Equal(IntKey(10)))
	assert.Equal(t, IntKey(7), a.Sub(b))
	assert.Equal(t, int64(3), a.Ticks(b))
	assert.Equal(t, IntKey(6), a.Mid(IntKey(2)))
}

func TestIntKey_Sign(t *testing.T) {
	assert.Equal(t, 1, IntKey(5).Sign())
	assert.Equal(t, -1, IntKey(-5).Sign())
	assert.Equal(t, 0, IntKey(0).Sign())
}

func TestSide_String(t *testing.T) {
	assert.Equal(t, "bid", Bid.String())
	assert.Equal(t, "ask", Ask.String())
}
