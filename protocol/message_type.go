package protocol

// MessageType is the one-byte tag that opens every message frame body.
type MessageType uint8

// Tags are ASCII characters on the wire.
// - Administrative: S, D, H, O, P, E
// - Trading:        Q, T, X, B, A
// - Depth (DEEP):   8, 5
const (
	MessageSystemEvent              MessageType = 'S'
	MessageSecurityDirectory        MessageType = 'D'
	MessageTradingStatus            MessageType = 'H'
	MessageOperationalHaltStatus    MessageType = 'O'
	MessageShortSalePriceTestStatus MessageType = 'P'
	MessageSecurityEvent            MessageType = 'E'
	MessageQuoteUpdate              MessageType = 'Q'
	MessageTradeReport              MessageType = 'T'
	MessageOfficialPrice            MessageType = 'X'
	MessageTradeBreak               MessageType = 'B'
	MessageAuctionInformation       MessageType = 'A'
	MessagePriceLevelUpdateBuy      MessageType = '8'
	MessagePriceLevelUpdateSell     MessageType = '5'
)

// Body sizes, tag byte included.
const (
	SizeSystemEvent              = 10
	SizeSecurityDirectory        = 31
	SizeTradingStatus            = 22
	SizeOperationalHaltStatus    = 18
	SizeShortSalePriceTestStatus = 19
	SizeSecurityEvent            = 18
	SizeQuoteUpdate              = 42
	SizeTradeReport              = 38
	SizeOfficialPrice            = 26
	SizeTradeBreak               = 38
	SizeAuctionInformation       = 80
	SizePriceLevelUpdate         = 30
)

var messageTypeNames = map[MessageType]string{
	MessageSystemEvent:              "system_event",
	MessageSecurityDirectory:        "security_directory",
	MessageTradingStatus:            "trading_status",
	MessageOperationalHaltStatus:    "operational_halt_status",
	MessageShortSalePriceTestStatus: "short_sale_price_test_status",
	MessageSecurityEvent:            "security_event",
	MessageQuoteUpdate:              "quote_update",
	MessageTradeReport:              "trade_report",
	MessageOfficialPrice:            "official_price",
	MessageTradeBreak:               "trade_break",
	MessageAuctionInformation:       "auction_information",
	MessagePriceLevelUpdateBuy:      "price_level_update_buy",
	MessagePriceLevelUpdateSell:     "price_level_update_sell",
}

// Known reports whether t is a tag this package can decode.
func (t MessageType) Known() bool {
	_, ok := messageTypeNames[t]
	return ok
}

func (t MessageType) String() string {
	if name, ok := messageTypeNames[t]; ok {
		return name
	}
	return "unknown"
}
