package protocol

import "errors"

var (
	ErrPricePrecision = errors.New("protocol: price has more than 4 decimal places")
	ErrPriceRange     = errors.New("protocol: price out of range")
)
