package pricebook

import "github.com/shopspring/decimal"

// DecimalKey is a Key backed by shopspring/decimal, for callers that want
// exact decimal prices ("110.25") rather than raw integer ticks. Ticks
// truncates toward zero the way the integer tick count in the base design
// does; TickSize is itself a DecimalKey, e.g. DecimalKey(decimal.NewFromFloat(0.01)).
type DecimalKey decimal.Decimal

func NewDecimalKey(d decimal.Decimal) DecimalKey { return DecimalKey(d) }

func (k DecimalKey) dec() decimal.Decimal { return decimal.Decimal(k) }

func (k DecimalKey) Less(other Key) bool  { return k.dec().LessThan(other.(DecimalKey).dec()) }
func (k DecimalKey) Equal(other Key) bool { return k.dec().Equal(other.(DecimalKey).dec()) }
func (k DecimalKey) Sub(other Key) Key {
	return DecimalKey(k.dec().Sub(other.(DecimalKey).dec()))
}
func (k DecimalKey) Sign() int { return k.dec().Sign() }
func (k DecimalKey) Ticks(tickSize Key) int64 {
	return k.dec().Div(tickSize.(DecimalKey).dec()).Truncate(0).IntPart()
}
func (k DecimalKey) Mid(other Key) Key {
	sum := k.dec().Add(other.(DecimalKey).dec())
	return DecimalKey(sum.Div(decimal.NewFromInt(2)))
}
