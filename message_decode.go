package iextp

import (
	"fmt"
	"strings"

	"github.com/0x5487/iextp/protocol"
	"github.com/0x5487/iextp/wire"
)

var bodySizes = map[protocol.MessageType]int{
	protocol.MessageSystemEvent:              protocol.SizeSystemEvent,
	protocol.MessageSecurityDirectory:        protocol.SizeSecurityDirectory,
	protocol.MessageTradingStatus:            protocol.SizeTradingStatus,
	protocol.MessageOperationalHaltStatus:    protocol.SizeOperationalHaltStatus,
	protocol.MessageShortSalePriceTestStatus: protocol.SizeShortSalePriceTestStatus,
	protocol.MessageSecurityEvent:            protocol.SizeSecurityEvent,
	protocol.MessageQuoteUpdate:              protocol.SizeQuoteUpdate,
	protocol.MessageTradeReport:              protocol.SizeTradeReport,
	protocol.MessageOfficialPrice:            protocol.SizeOfficialPrice,
	protocol.MessageTradeBreak:               protocol.SizeTradeBreak,
	protocol.MessageAuctionInformation:       protocol.SizeAuctionInformation,
	protocol.MessagePriceLevelUpdateBuy:      protocol.SizePriceLevelUpdate,
	protocol.MessagePriceLevelUpdateSell:     protocol.SizePriceLevelUpdate,
}

// BodySize returns the fixed body size of a message tag, tag byte included.
func BodySize(t protocol.MessageType) (int, bool) {
	n, ok := bodySizes[t]
	return n, ok
}

// DecodeMessage decodes one frame body. The first byte selects the variant.
//
// Frames longer than a variant's layout are accepted and the extra bytes
// ignored. Frames shorter than the layout fail with ErrTruncatedData. An
// unrecognised tag is not an error: it decodes to *Unknown with a copy of the
// frame. The returned message owns all of its data.
func DecodeMessage(frame []byte) (Message, error) {
	if len(frame) == 0 {
		return nil, fmt.Errorf("message: empty frame: %w", ErrTruncatedData)
	}

	tag := protocol.MessageType(frame[0])
	size, known := bodySizes[tag]
	if !known {
		raw := make([]byte, len(frame))
		copy(raw, frame)
		return &Unknown{Tag: frame[0], Raw: raw}, nil
	}
	if len(frame) < size {
		return nil, fmt.Errorf("%s: expected %d bytes, got %d: %w", tag, size, len(frame), ErrTruncatedData)
	}

	r := fieldReader{c: wire.NewCursor(frame[1:size])}
	var msg Message
	switch tag {
	case protocol.MessageSystemEvent:
		msg = r.systemEvent()
	case protocol.MessageSecurityDirectory:
		msg = r.securityDirectory()
	case protocol.MessageTradingStatus:
		msg = r.tradingStatus()
	case protocol.MessageOperationalHaltStatus:
		msg = r.operationalHaltStatus()
	case protocol.MessageShortSalePriceTestStatus:
		msg = r.shortSalePriceTestStatus()
	case protocol.MessageSecurityEvent:
		msg = r.securityEvent()
	case protocol.MessageQuoteUpdate:
		msg = r.quoteUpdate()
	case protocol.MessageTradeReport:
		msg = r.tradeReport()
	case protocol.MessageOfficialPrice:
		msg = r.officialPrice()
	case protocol.MessageTradeBreak:
		msg = r.tradeBreak()
	case protocol.MessageAuctionInformation:
		msg = r.auctionInformation()
	case protocol.MessagePriceLevelUpdateBuy:
		msg = r.priceLevelUpdate(protocol.SideBuy)
	case protocol.MessagePriceLevelUpdateSell:
		msg = r.priceLevelUpdate(protocol.SideSell)
	}
	if r.err != nil {
		return nil, fmt.Errorf("%s: %w", tag, r.err)
	}
	return msg, nil
}

// fieldReader keeps the first read error so a variant layout can be read
// field after field and checked once at the end.
type fieldReader struct {
	c   *wire.Cursor
	err error
}

func (r *fieldReader) u8() uint8 {
	if r.err != nil {
		return 0
	}
	v, err := r.c.ReadUint8()
	r.err = err
	return v
}

func (r *fieldReader) u32() uint32 {
	if r.err != nil {
		return 0
	}
	v, err := r.c.ReadUint32()
	r.err = err
	return v
}

func (r *fieldReader) i64() int64 {
	if r.err != nil {
		return 0
	}
	v, err := r.c.ReadInt64()
	r.err = err
	return v
}

func (r *fieldReader) timestamp() Timestamp {
	return Timestamp(r.i64())
}

func (r *fieldReader) price() protocol.Price {
	return protocol.Price(r.i64())
}

func (r *fieldReader) symbol() string {
	if r.err != nil {
		return ""
	}
	b, err := r.c.ReadArray8()
	r.err = err
	return trimPadding(b[:])
}

func (r *fieldReader) ascii(n int) string {
	if r.err != nil {
		return ""
	}
	b, err := r.c.ReadBytes(n)
	r.err = err
	return trimPadding(b)
}

// trimPadding drops the trailing space (and NUL) padding of fixed-width
// ASCII fields. The result is a new string and does not alias the frame.
func trimPadding(b []byte) string {
	return strings.TrimRight(string(b), " \x00")
}

func (r *fieldReader) systemEvent() *SystemEvent {
	return &SystemEvent{
		Event:     protocol.SystemEventCode(r.u8()),
		Timestamp: r.timestamp(),
	}
}

func (r *fieldReader) securityDirectory() *SecurityDirectory {
	return &SecurityDirectory{
		Flags:            r.u8(),
		Timestamp:        r.timestamp(),
		Symbol:           r.symbol(),
		RoundLotSize:     r.u32(),
		AdjustedPOCPrice: r.price(),
		LULDTier:         protocol.LULDTier(r.u8()),
	}
}

func (r *fieldReader) tradingStatus() *TradingStatus {
	return &TradingStatus{
		Status:    protocol.TradingStatusCode(r.u8()),
		Timestamp: r.timestamp(),
		Symbol:    r.symbol(),
		Reason:    r.ascii(4),
	}
}

func (r *fieldReader) operationalHaltStatus() *OperationalHaltStatus {
	return &OperationalHaltStatus{
		Status:    protocol.OperationalHaltCode(r.u8()),
		Timestamp: r.timestamp(),
		Symbol:    r.symbol(),
	}
}

func (r *fieldReader) shortSalePriceTestStatus() *ShortSalePriceTestStatus {
	return &ShortSalePriceTestStatus{
		InEffect:  r.u8() == 1,
		Timestamp: r.timestamp(),
		Symbol:    r.symbol(),
		Detail:    protocol.ShortSaleDetail(r.u8()),
	}
}

func (r *fieldReader) securityEvent() *SecurityEvent {
	return &SecurityEvent{
		Event:     protocol.SecurityEventCode(r.u8()),
		Timestamp: r.timestamp(),
		Symbol:    r.symbol(),
	}
}

func (r *fieldReader) quoteUpdate() *QuoteUpdate {
	return &QuoteUpdate{
		Flags:     r.u8(),
		Timestamp: r.timestamp(),
		Symbol:    r.symbol(),
		BidSize:   r.u32(),
		BidPrice:  r.price(),
		AskPrice:  r.price(),
		AskSize:   r.u32(),
	}
}

func (r *fieldReader) tradeReport() *TradeReport {
	return &TradeReport{
		Flags:     r.u8(),
		Timestamp: r.timestamp(),
		Symbol:    r.symbol(),
		Size:      r.u32(),
		Price:     r.price(),
		TradeID:   r.i64(),
	}
}

func (r *fieldReader) officialPrice() *OfficialPrice {
	return &OfficialPrice{
		PriceType: protocol.OfficialPriceType(r.u8()),
		Timestamp: r.timestamp(),
		Symbol:    r.symbol(),
		Price:     r.price(),
	}
}

func (r *fieldReader) tradeBreak() *TradeBreak {
	return &TradeBreak{
		Flags:     r.u8(),
		Timestamp: r.timestamp(),
		Symbol:    r.symbol(),
		Size:      r.u32(),
		Price:     r.price(),
		TradeID:   r.i64(),
	}
}

func (r *fieldReader) auctionInformation() *AuctionInformation {
	return &AuctionInformation{
		AuctionType:              protocol.AuctionType(r.u8()),
		Timestamp:                r.timestamp(),
		Symbol:                   r.symbol(),
		PairedShares:             r.u32(),
		ReferencePrice:           r.price(),
		IndicativeClearingPrice:  r.price(),
		ImbalanceShares:          r.u32(),
		ImbalanceSide:            protocol.ImbalanceSide(r.u8()),
		ExtensionNumber:          r.u8(),
		ScheduledAuctionTime:     r.u32(),
		AuctionBookClearingPrice: r.price(),
		CollarReferencePrice:     r.price(),
		LowerAuctionCollar:       r.price(),
		UpperAuctionCollar:       r.price(),
	}
}

func (r *fieldReader) priceLevelUpdate(side protocol.Side) *PriceLevelUpdate {
	return &PriceLevelUpdate{
		Side:      side,
		Flags:     r.u8(),
		Timestamp: r.timestamp(),
		Symbol:    r.symbol(),
		Size:      r.u32(),
		Price:     r.price(),
	}
}
