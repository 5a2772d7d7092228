package iextp

import (
	"time"

	"github.com/0x5487/iextp/protocol"
)

// Message is a decoded market message. The set of implementations is closed:
// one type per known message tag plus Unknown. Use a type switch to handle
// them.
type Message interface {
	MessageType() protocol.MessageType
	isMessage()
}

// Timestamp is a nanosecond Unix epoch time as sent by the exchange.
type Timestamp int64

// Time converts the timestamp without any time zone adjustment.
func (ts Timestamp) Time() time.Time {
	return time.Unix(0, int64(ts)).UTC()
}

// SystemEvent marks a point in the trading day for the whole feed.
type SystemEvent struct {
	Event     protocol.SystemEventCode
	Timestamp Timestamp
}

// SecurityDirectory carries per-symbol reference data, sent for IEX-listed
// securities before the start of system hours.
type SecurityDirectory struct {
	Flags            uint8
	Timestamp        Timestamp
	Symbol           string
	RoundLotSize     uint32
	AdjustedPOCPrice protocol.Price // previous official closing price
	LULDTier         protocol.LULDTier
}

func (m *SecurityDirectory) IsTestSecurity() bool {
	return m.Flags&protocol.DirectoryFlagTestSecurity != 0
}

func (m *SecurityDirectory) IsWhenIssued() bool {
	return m.Flags&protocol.DirectoryFlagWhenIssued != 0
}

func (m *SecurityDirectory) IsETP() bool {
	return m.Flags&protocol.DirectoryFlagETP != 0
}

// TradingStatus reports the trading state of a security.
type TradingStatus struct {
	Status    protocol.TradingStatusCode
	Timestamp Timestamp
	Symbol    string
	Reason    string // trailing spaces trimmed, see protocol.Reason*
}

// OperationalHaltStatus reports an IEX-specific operational halt.
type OperationalHaltStatus struct {
	Status    protocol.OperationalHaltCode
	Timestamp Timestamp
	Symbol    string
}

// ShortSalePriceTestStatus reports the Reg SHO short-sale price test state.
type ShortSalePriceTestStatus struct {
	InEffect  bool
	Timestamp Timestamp
	Symbol    string
	Detail    protocol.ShortSaleDetail
}

// SecurityEvent marks the completion of a security's opening or closing process.
type SecurityEvent struct {
	Event     protocol.SecurityEventCode
	Timestamp Timestamp
	Symbol    string
}

// QuoteUpdate is a change to the top of book. Sizes and prices are zero when
// the side is empty.
type QuoteUpdate struct {
	Flags     uint8
	Timestamp Timestamp
	Symbol    string
	BidSize   uint32
	BidPrice  protocol.Price
	AskPrice  protocol.Price
	AskSize   uint32
}

func (m *QuoteUpdate) IsSymbolHalted() bool {
	return m.Flags&protocol.QuoteFlagSymbolHalted != 0
}

func (m *QuoteUpdate) IsPrePostMarket() bool {
	return m.Flags&protocol.QuoteFlagPrePostMarket != 0
}

// TradeReport is an execution on IEX.
type TradeReport struct {
	Flags     uint8 // sale condition bits, see protocol.TradeFlag*
	Timestamp Timestamp
	Symbol    string
	Size      uint32
	Price     protocol.Price
	TradeID   int64
}

func (m *TradeReport) IsOddLot() bool {
	return m.Flags&protocol.TradeFlagOddLot != 0
}

func (m *TradeReport) IsExtendedHours() bool {
	return m.Flags&protocol.TradeFlagExtendedHours != 0
}

func (m *TradeReport) IsIntermarketSweep() bool {
	return m.Flags&protocol.TradeFlagIntermarketSweep != 0
}

// OfficialPrice is the IEX official opening or closing price of a listed security.
type OfficialPrice struct {
	PriceType protocol.OfficialPriceType
	Timestamp Timestamp
	Symbol    string
	Price     protocol.Price
}

// TradeBreak cancels a previously reported trade, identified by TradeID.
type TradeBreak struct {
	Flags     uint8
	Timestamp Timestamp
	Symbol    string
	Size      uint32
	Price     protocol.Price
	TradeID   int64
}

// AuctionInformation is broadcast once per second ahead of an IEX auction.
type AuctionInformation struct {
	AuctionType              protocol.AuctionType
	Timestamp                Timestamp
	Symbol                   string
	PairedShares             uint32
	ReferencePrice           protocol.Price
	IndicativeClearingPrice  protocol.Price
	ImbalanceShares          uint32
	ImbalanceSide            protocol.ImbalanceSide
	ExtensionNumber          uint8
	ScheduledAuctionTime     uint32 // Unix seconds
	AuctionBookClearingPrice protocol.Price
	CollarReferencePrice     protocol.Price
	LowerAuctionCollar       protocol.Price
	UpperAuctionCollar       protocol.Price
}

// ScheduledAuctionTimeUTC returns the projected auction match time.
func (m *AuctionInformation) ScheduledAuctionTimeUTC() time.Time {
	return time.Unix(int64(m.ScheduledAuctionTime), 0).UTC()
}

// PriceLevelUpdate is an aggregated size change at one price level of the
// DEEP book. A Size of zero removes the level.
type PriceLevelUpdate struct {
	Side      protocol.Side
	Flags     uint8
	Timestamp Timestamp
	Symbol    string
	Size      uint32
	Price     protocol.Price
}

// EventComplete reports whether the book is consistent after this update;
// false means more updates for the same event follow.
func (m *PriceLevelUpdate) EventComplete() bool {
	return m.Flags&protocol.PriceLevelFlagEventComplete != 0
}

// Unknown carries a message with a tag this decoder does not know. Raw is a
// verbatim copy of the whole frame body, tag included.
type Unknown struct {
	Tag uint8
	Raw []byte
}

func (*SystemEvent) MessageType() protocol.MessageType {
	return protocol.MessageSystemEvent
}

func (*SecurityDirectory) MessageType() protocol.MessageType {
	return protocol.MessageSecurityDirectory
}

func (*TradingStatus) MessageType() protocol.MessageType {
	return protocol.MessageTradingStatus
}

func (*OperationalHaltStatus) MessageType() protocol.MessageType {
	return protocol.MessageOperationalHaltStatus
}

func (*ShortSalePriceTestStatus) MessageType() protocol.MessageType {
	return protocol.MessageShortSalePriceTestStatus
}

func (*SecurityEvent) MessageType() protocol.MessageType {
	return protocol.MessageSecurityEvent
}

func (*QuoteUpdate) MessageType() protocol.MessageType {
	return protocol.MessageQuoteUpdate
}

func (*TradeReport) MessageType() protocol.MessageType {
	return protocol.MessageTradeReport
}

func (*OfficialPrice) MessageType() protocol.MessageType {
	return protocol.MessageOfficialPrice
}

func (*TradeBreak) MessageType() protocol.MessageType {
	return protocol.MessageTradeBreak
}

func (*AuctionInformation) MessageType() protocol.MessageType {
	return protocol.MessageAuctionInformation
}

func (m *PriceLevelUpdate) MessageType() protocol.MessageType {
	if m.Side == protocol.SideSell {
		return protocol.MessagePriceLevelUpdateSell
	}
	return protocol.MessagePriceLevelUpdateBuy
}

func (m *Unknown) MessageType() protocol.MessageType {
	return protocol.MessageType(m.Tag)
}

func (*SystemEvent) isMessage() {}

func (*SecurityDirectory) isMessage() {}

func (*TradingStatus) isMessage() {}

func (*OperationalHaltStatus) isMessage() {}

func (*ShortSalePriceTestStatus) isMessage() {}

func (*SecurityEvent) isMessage() {}

func (*QuoteUpdate) isMessage() {}

func (*TradeReport) isMessage() {}

func (*OfficialPrice) isMessage() {}

func (*TradeBreak) isMessage() {}

func (*AuctionInformation) isMessage() {}

func (*PriceLevelUpdate) isMessage() {}

func (*Unknown) isMessage() {}
