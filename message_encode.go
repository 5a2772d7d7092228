package iextp

import (
	"encoding/binary"
	"fmt"

	"github.com/0x5487/iextp/protocol"
)

const maxBodySize = protocol.SizeAuctionInformation

// AppendMessage appends the wire body of msg (tag byte first, no length
// prefix) to dst. It is the inverse of DecodeMessage.
func AppendMessage(dst []byte, msg Message) ([]byte, error) {
	w := fieldWriter{buf: dst}
	switch m := msg.(type) {
	case *SystemEvent:
		w.u8(uint8(protocol.MessageSystemEvent))
		w.u8(uint8(m.Event))
		w.i64(int64(m.Timestamp))
	case *SecurityDirectory:
		w.u8(uint8(protocol.MessageSecurityDirectory))
		w.u8(m.Flags)
		w.i64(int64(m.Timestamp))
		w.ascii(m.Symbol, 8)
		w.u32(m.RoundLotSize)
		w.i64(m.AdjustedPOCPrice.Raw())
		w.u8(uint8(m.LULDTier))
	case *TradingStatus:
		w.u8(uint8(protocol.MessageTradingStatus))
		w.u8(uint8(m.Status))
		w.i64(int64(m.Timestamp))
		w.ascii(m.Symbol, 8)
		w.ascii(m.Reason, 4)
	case *OperationalHaltStatus:
		w.u8(uint8(protocol.MessageOperationalHaltStatus))
		w.u8(uint8(m.Status))
		w.i64(int64(m.Timestamp))
		w.ascii(m.Symbol, 8)
	case *ShortSalePriceTestStatus:
		w.u8(uint8(protocol.MessageShortSalePriceTestStatus))
		if m.InEffect {
			w.u8(1)
		} else {
			w.u8(0)
		}
		w.i64(int64(m.Timestamp))
		w.ascii(m.Symbol, 8)
		w.u8(uint8(m.Detail))
	case *SecurityEvent:
		w.u8(uint8(protocol.MessageSecurityEvent))
		w.u8(uint8(m.Event))
		w.i64(int64(m.Timestamp))
		w.ascii(m.Symbol, 8)
	case *QuoteUpdate:
		w.u8(uint8(protocol.MessageQuoteUpdate))
		w.u8(m.Flags)
		w.i64(int64(m.Timestamp))
		w.ascii(m.Symbol, 8)
		w.u32(m.BidSize)
		w.i64(m.BidPrice.Raw())
		w.i64(m.AskPrice.Raw())
		w.u32(m.AskSize)
	case *TradeReport:
		w.u8(uint8(protocol.MessageTradeReport))
		w.trade(m.Flags, m.Timestamp, m.Symbol, m.Size, m.Price, m.TradeID)
	case *OfficialPrice:
		w.u8(uint8(protocol.MessageOfficialPrice))
		w.u8(uint8(m.PriceType))
		w.i64(int64(m.Timestamp))
		w.ascii(m.Symbol, 8)
		w.i64(m.Price.Raw())
	case *TradeBreak:
		w.u8(uint8(protocol.MessageTradeBreak))
		w.trade(m.Flags, m.Timestamp, m.Symbol, m.Size, m.Price, m.TradeID)
	case *AuctionInformation:
		w.u8(uint8(protocol.MessageAuctionInformation))
		w.u8(uint8(m.AuctionType))
		w.i64(int64(m.Timestamp))
		w.ascii(m.Symbol, 8)
		w.u32(m.PairedShares)
		w.i64(m.ReferencePrice.Raw())
		w.i64(m.IndicativeClearingPrice.Raw())
		w.u32(m.ImbalanceShares)
		w.u8(uint8(m.ImbalanceSide))
		w.u8(m.ExtensionNumber)
		w.u32(m.ScheduledAuctionTime)
		w.i64(m.AuctionBookClearingPrice.Raw())
		w.i64(m.CollarReferencePrice.Raw())
		w.i64(m.LowerAuctionCollar.Raw())
		w.i64(m.UpperAuctionCollar.Raw())
	case *PriceLevelUpdate:
		w.u8(uint8(m.MessageType()))
		w.u8(m.Flags)
		w.i64(int64(m.Timestamp))
		w.ascii(m.Symbol, 8)
		w.u32(m.Size)
		w.i64(m.Price.Raw())
	case *Unknown:
		if len(m.Raw) == 0 {
			w.u8(m.Tag)
		} else {
			w.buf = append(w.buf, m.Raw...)
		}
	default:
		return dst, fmt.Errorf("encode: unsupported message %T", msg)
	}
	if w.err != nil {
		return dst, w.err
	}
	return w.buf, nil
}

type fieldWriter struct {
	buf []byte
	err error
}

func (w *fieldWriter) u8(v uint8) {
	w.buf = append(w.buf, v)
}

func (w *fieldWriter) u32(v uint32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
}

func (w *fieldWriter) i64(v int64) {
	w.buf = binary.LittleEndian.AppendUint64(w.buf, uint64(v))
}

// ascii writes s space padded to exactly n bytes.
func (w *fieldWriter) ascii(s string, n int) {
	if len(s) > n {
		if w.err == nil {
			w.err = fmt.Errorf("%q exceeds %d bytes: %w", s, n, ErrFieldTooLong)
		}
		s = s[:n]
	}
	w.buf = append(w.buf, s...)
	for i := len(s); i < n; i++ {
		w.buf = append(w.buf, ' ')
	}
}

func (w *fieldWriter) trade(flags uint8, ts Timestamp, symbol string, size uint32, price protocol.Price, tradeID int64) {
	w.u8(flags)
	w.i64(int64(ts))
	w.ascii(symbol, 8)
	w.u32(size)
	w.i64(price.Raw())
	w.i64(tradeID)
}
