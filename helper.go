package iextp

import "github.com/quagmt/udecimal"

// SymbolOf returns the symbol a message refers to.
// Note: SystemEvent and Unknown are not tied to a symbol and return false.
func SymbolOf(msg Message) (string, bool) {
	switch m := msg.(type) {
	case *SecurityDirectory:
		return m.Symbol, true
	case *TradingStatus:
		return m.Symbol, true
	case *OperationalHaltStatus:
		return m.Symbol, true
	case *ShortSalePriceTestStatus:
		return m.Symbol, true
	case *SecurityEvent:
		return m.Symbol, true
	case *QuoteUpdate:
		return m.Symbol, true
	case *TradeReport:
		return m.Symbol, true
	case *OfficialPrice:
		return m.Symbol, true
	case *TradeBreak:
		return m.Symbol, true
	case *AuctionInformation:
		return m.Symbol, true
	case *PriceLevelUpdate:
		return m.Symbol, true
	case *SystemEvent, *Unknown:
		return "", false
	}
	return "", false
}

// TimestampOf returns the exchange timestamp of a message.
// Unknown messages have no decodable timestamp and return false.
func TimestampOf(msg Message) (Timestamp, bool) {
	switch m := msg.(type) {
	case *SystemEvent:
		return m.Timestamp, true
	case *SecurityDirectory:
		return m.Timestamp, true
	case *TradingStatus:
		return m.Timestamp, true
	case *OperationalHaltStatus:
		return m.Timestamp, true
	case *ShortSalePriceTestStatus:
		return m.Timestamp, true
	case *SecurityEvent:
		return m.Timestamp, true
	case *QuoteUpdate:
		return m.Timestamp, true
	case *TradeReport:
		return m.Timestamp, true
	case *OfficialPrice:
		return m.Timestamp, true
	case *TradeBreak:
		return m.Timestamp, true
	case *AuctionInformation:
		return m.Timestamp, true
	case *PriceLevelUpdate:
		return m.Timestamp, true
	case *Unknown:
		return 0, false
	}
	return 0, false
}

// PriceOf returns the exact decimal price a message carries: the trade price
// for trades and breaks, the level price for price level updates, the
// official price, the auction reference price and the adjusted POC price of
// a directory entry. Quotes carry two prices and return false, as do
// messages without a price.
func PriceOf(msg Message) (udecimal.Decimal, bool) {
	switch m := msg.(type) {
	case *TradeReport:
		return m.Price.Decimal(), true
	case *TradeBreak:
		return m.Price.Decimal(), true
	case *PriceLevelUpdate:
		return m.Price.Decimal(), true
	case *OfficialPrice:
		return m.Price.Decimal(), true
	case *AuctionInformation:
		return m.ReferencePrice.Decimal(), true
	case *SecurityDirectory:
		return m.AdjustedPOCPrice.Decimal(), true
	}
	return udecimal.Decimal{}, false
}
