package protocol

import (
	"strings"

	"github.com/quagmt/udecimal"
	"github.com/shopspring/decimal"
)

const (
	// PricePrecision is the number of implied decimal places in a wire price.
	PricePrecision = 4
	// PriceScale is 10^PricePrecision.
	PriceScale = 10000
)

// Price is a fixed-point price exactly as carried on the wire: a signed
// integer count of 1/10000 dollars. 123.45 USD is Price(1234500).
type Price int64

// NewPrice builds a Price from whole dollars and ten-thousandths.
func NewPrice(units int64, frac int64) Price {
	return Price(units*PriceScale + frac)
}

// Raw returns the wire integer.
func (p Price) Raw() int64 {
	return int64(p)
}

// Decimal returns the exact decimal value (raw / 10^4).
func (p Price) Decimal() udecimal.Decimal {
	return udecimal.MustFromInt64(int64(p), PricePrecision)
}

// Float64 converts to floating point. It is lossy and only meant for display
// or charting; use Decimal or Raw for arithmetic.
func (p Price) Float64() float64 {
	return float64(p) / PriceScale
}

// String renders the exact value with trailing zeros dropped, e.g. "123.45".
func (p Price) String() string {
	return decimal.New(int64(p), -PricePrecision).String()
}

// ParsePrice parses a decimal string into a Price. Extra precision beyond
// four places is rejected instead of rounded.
func ParsePrice(s string) (Price, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	scaled := d.Shift(PricePrecision)
	if !scaled.IsInteger() {
		return 0, ErrPricePrecision
	}
	if !scaled.BigInt().IsInt64() {
		return 0, ErrPriceRange
	}
	return Price(scaled.IntPart()), nil
}
