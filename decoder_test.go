package iextp

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/0x5487/iextp/protocol"
	"github.com/stretchr/testify/suite"
)

type DecoderTestSuite struct {
	suite.Suite
	decoder *Decoder
}

func TestDecoderTestSuite(t *testing.T) {
	suite.Run(t, new(DecoderTestSuite))
}

func (suite *DecoderTestSuite) SetupTest() {
	suite.decoder = NewDecoder()
}

func (suite *DecoderTestSuite) TestTwoTradeReports() {
	buf := mustSegment(suite.T(), testHeader(500),
		testTrade("ZIEXT", 100, 1234500, 1),
		testTrade("ZIEXT", 200, 1234600, 2),
	)
	captured := time.Date(2017, 11, 4, 11, 30, 46, 0, time.UTC)

	results := collect(suite.decoder.DecodePacket(0, Packet{Payload: buf, CaptureTime: captured}))

	suite.Require().Len(results, 2)
	for i, r := range results {
		suite.Equal(ResultMessage, r.Kind)
		suite.Equal(uint64(500+i), r.Sequence)
		suite.Equal(captured, r.CaptureTime)
		suite.Equal(0, r.PacketIndex)
		suite.IsType(&TradeReport{}, r.Message)
	}
	suite.Equal(int64(1234600), results[1].Message.(*TradeReport).Price.Raw())

	stats := suite.decoder.Stats()
	suite.Equal(int64(2), stats.Messages)
	suite.Equal(int64(0), stats.Anomalies)
	suite.Equal(int64(0), stats.Errors)
}

func (suite *DecoderTestSuite) TestTruncatedHeader() {
	buf := mustSegment(suite.T(), testHeader(1), testTrade("ZIEXT", 1, 1, 1))

	results := collect(suite.decoder.DecodePacket(3, Packet{Payload: buf[:25]}))

	suite.Require().Len(results, 1)
	suite.Equal(ResultError, results[0].Kind)
	suite.Equal(3, results[0].PacketIndex)
	suite.ErrorIs(results[0].Err, ErrTruncatedData)

	var derr *DecodeError
	suite.Require().True(errors.As(results[0].Err, &derr))
	suite.Equal(-1, derr.FrameIndex)
	suite.Equal(int64(0), suite.decoder.Stats().Messages)
}

func (suite *DecoderTestSuite) TestEmptyPacket() {
	results := collect(suite.decoder.DecodePacket(0, Packet{}))
	suite.Require().Len(results, 1)
	suite.ErrorIs(results[0].Err, ErrTruncatedData)
}

func (suite *DecoderTestSuite) TestUnknownTagContinues() {
	h := testHeader(10)
	known, err := AppendMessage(nil, testTrade("ZIEXT", 1, 1, 1))
	suite.Require().NoError(err)
	unknown := []byte{0xff, 0xde, 0xad, 0xbe, 0xef}

	payload := append(rawFrame(unknown), rawFrame(known)...)
	buf := rawSegment(h, uint16(len(payload)), 2, payload)

	results := collect(suite.decoder.DecodePacket(0, Packet{Payload: buf}))

	suite.Require().Len(results, 2)
	u, ok := results[0].Message.(*Unknown)
	suite.Require().True(ok)
	suite.Equal(uint8(0xff), u.Tag)
	suite.Equal(unknown, u.Raw)
	suite.Equal(uint64(10), results[0].Sequence)

	suite.IsType(&TradeReport{}, results[1].Message)
	suite.Equal(uint64(11), results[1].Sequence)
	suite.Equal(int64(1), suite.decoder.Stats().Unknown)
}

func (suite *DecoderTestSuite) TestTruncatedFrame() {
	h := testHeader(1)
	trade, err := AppendMessage(nil, testTrade("ZIEXT", 1, 1, 1))
	suite.Require().NoError(err)

	// declares 3 messages, carries 2 whole frames and a cut third one
	payload := append(rawFrame(trade), rawFrame(trade)...)
	payload = append(payload, rawFrame(trade)[:10]...)
	buf := rawSegment(h, uint16(len(payload)), 3, payload)

	results := collect(suite.decoder.DecodePacket(0, Packet{Payload: buf}))

	suite.Require().Len(results, 3)
	suite.Equal(ResultMessage, results[0].Kind)
	suite.Equal(ResultMessage, results[1].Kind)
	suite.Equal(ResultError, results[2].Kind)
	suite.ErrorIs(results[2].Err, ErrTruncatedFrame)

	var derr *DecodeError
	suite.Require().True(errors.As(results[2].Err, &derr))
	suite.Equal(2, derr.FrameIndex)
	suite.Equal(SegmentHeaderSize+2*(FramePrefixSize+protocol.SizeTradeReport), derr.Offset)
}

func (suite *DecoderTestSuite) TestCaptureShorterThanPayloadLength() {
	buf := mustSegment(suite.T(), testHeader(1),
		testTrade("ZIEXT", 1, 1, 1),
		testTrade("ZIEXT", 1, 1, 2),
	)
	// snap length cut the capture in the middle of the second frame
	results := collect(suite.decoder.DecodePacket(0, Packet{Payload: buf[:len(buf)-5]}))

	suite.Require().Len(results, 2)
	suite.Equal(ResultMessage, results[0].Kind)
	suite.ErrorIs(results[1].Err, ErrTruncatedFrame)
}

func (suite *DecoderTestSuite) TestShortMessageBodySkipsOnlyThatFrame() {
	h := testHeader(1)
	trade, err := AppendMessage(nil, testTrade("ZIEXT", 1, 1, 1))
	suite.Require().NoError(err)

	payload := append(rawFrame(trade[:20]), rawFrame(trade)...)
	buf := rawSegment(h, uint16(len(payload)), 2, payload)

	results := collect(suite.decoder.DecodePacket(0, Packet{Payload: buf}))

	suite.Require().Len(results, 2)
	suite.Equal(ResultError, results[0].Kind)
	suite.ErrorIs(results[0].Err, ErrTruncatedData)
	suite.Equal(ResultMessage, results[1].Kind)
	suite.Equal(uint64(2), results[1].Sequence)
}

func (suite *DecoderTestSuite) TestTrailingBytes() {
	buf := mustSegment(suite.T(), testHeader(1), testTrade("ZIEXT", 1, 1, 1))
	buf = append(buf, 0, 0, 0, 0)

	results := collect(suite.decoder.DecodePacket(0, Packet{Payload: buf}))

	suite.Require().Len(results, 2)
	suite.Equal(ResultMessage, results[0].Kind)
	suite.Equal(ResultAnomaly, results[1].Kind)
	suite.Equal(AnomalyTrailingBytes, results[1].Anomaly.Kind)
	suite.Equal(4, results[1].Anomaly.TrailingBytes)
}

func (suite *DecoderTestSuite) TestTrailingBytesInsidePayload() {
	h := testHeader(1)
	trade, err := AppendMessage(nil, testTrade("ZIEXT", 1, 1, 1))
	suite.Require().NoError(err)

	payload := append(rawFrame(trade), 0, 0, 0)
	buf := rawSegment(h, uint16(len(payload)), 1, payload)

	results := collect(suite.decoder.DecodePacket(0, Packet{Payload: buf}))

	suite.Require().Len(results, 2)
	suite.Equal(3, results[1].Anomaly.TrailingBytes)
}

func (suite *DecoderTestSuite) TestPayloadLengthOverstated() {
	h := testHeader(1)
	trade, err := AppendMessage(nil, testTrade("ZIEXT", 1, 1, 1))
	suite.Require().NoError(err)

	// header claims 200 bytes, the packet ends after the only frame
	framed := rawFrame(trade)
	buf := rawSegment(h, 200, 1, framed)

	results := collect(suite.decoder.DecodePacket(0, Packet{Payload: buf}))

	suite.Require().Len(results, 2)
	suite.Equal(ResultMessage, results[0].Kind)
	suite.Equal(ResultAnomaly, results[1].Kind)
	suite.Equal(AnomalyPayloadLengthMismatch, results[1].Anomaly.Kind)
	suite.Equal(200-len(framed), results[1].Anomaly.MissingBytes)
	suite.Equal(int64(1), suite.decoder.Stats().Anomalies)
}

func (suite *DecoderTestSuite) TestPayloadLengthOverstatedWithTrailingBytes() {
	h := testHeader(1)
	trade, err := AppendMessage(nil, testTrade("ZIEXT", 1, 1, 1))
	suite.Require().NoError(err)

	payload := append(rawFrame(trade), 0, 0)
	buf := rawSegment(h, 100, 1, payload)

	results := collect(suite.decoder.DecodePacket(0, Packet{Payload: buf}))

	suite.Require().Len(results, 3)
	suite.Equal(AnomalyTrailingBytes, results[1].Anomaly.Kind)
	suite.Equal(2, results[1].Anomaly.TrailingBytes)
	suite.Equal(AnomalyPayloadLengthMismatch, results[2].Anomaly.Kind)
	suite.Equal(100-len(payload), results[2].Anomaly.MissingBytes)
}

func (suite *DecoderTestSuite) TestSessionResetLogsWithDecoderID() {
	var buf bytes.Buffer
	decoder := NewDecoderWithOptions(DecoderOptions{
		Logger: slog.New(slog.NewJSONHandler(&buf, nil)),
	})

	next := testHeader(1)
	next.SessionID++
	collect(decoder.Decode(packets(
		mustSegment(suite.T(), testHeader(1), testTrade("A", 1, 1, 1)),
		mustSegment(suite.T(), next, testTrade("A", 1, 1, 2)),
	)))

	suite.Equal(1, decoder.Tracker().Resets())
	suite.Contains(buf.String(), `"msg":"sequence session reset"`)
	suite.Contains(buf.String(), `"decoder_id":"`+decoder.ID()+`"`)
}

func (suite *DecoderTestSuite) TestHeartbeat() {
	buf := mustSegment(suite.T(), testHeader(42))

	results := collect(suite.decoder.DecodePacket(0, Packet{Payload: buf}))

	suite.Empty(results)
	suite.Equal(int64(1), suite.decoder.Stats().Heartbeats)
	_, started := suite.decoder.Tracker().Last()
	suite.False(started)
}

func (suite *DecoderTestSuite) TestInvalidProtocolIsolated() {
	bad := testHeader(1)
	bad.ProtocolID = 0x9999
	good := testHeader(1)

	results := collect(suite.decoder.Decode(packets(
		mustSegment(suite.T(), bad, testTrade("ZIEXT", 1, 1, 1)),
		mustSegment(suite.T(), good, testTrade("ZIEXT", 1, 1, 1)),
	)))

	suite.Require().Len(results, 2)
	suite.ErrorIs(results[0].Err, ErrInvalidProtocol)
	suite.Equal(0, results[0].PacketIndex)
	suite.Equal(ResultMessage, results[1].Kind)
	suite.Equal(1, results[1].PacketIndex)
}

func (suite *DecoderTestSuite) TestCustomProtocols() {
	decoder := NewDecoderWithOptions(DecoderOptions{Protocols: []uint16{ProtocolDEEP}})

	tops := mustSegment(suite.T(), testHeader(1), testTrade("ZIEXT", 1, 1, 1))
	results := collect(decoder.DecodePacket(0, Packet{Payload: tops}))
	suite.Require().Len(results, 1)
	suite.ErrorIs(results[0].Err, ErrInvalidProtocol)

	h := testHeader(1)
	h.ProtocolID = ProtocolDEEP
	deep := mustSegment(suite.T(), h, &PriceLevelUpdate{Side: protocol.SideBuy, Symbol: "ZIEXT", Size: 100, Price: 10000})
	results = collect(decoder.DecodePacket(1, Packet{Payload: deep}))
	suite.Require().Len(results, 1)
	suite.IsType(&PriceLevelUpdate{}, results[0].Message)
}

func (suite *DecoderTestSuite) TestSequenceAcrossPackets() {
	results := collect(suite.decoder.Decode(packets(
		mustSegment(suite.T(), testHeader(100), testTrade("A", 1, 1, 1), testTrade("A", 1, 1, 2)),
		mustSegment(suite.T(), testHeader(104), testTrade("A", 1, 1, 3)),
		mustSegment(suite.T(), testHeader(101), testTrade("A", 1, 1, 4)),
	)))

	suite.Require().Len(results, 6)
	suite.Equal(ResultMessage, results[0].Kind)
	suite.Equal(ResultMessage, results[1].Kind)

	suite.Equal(ResultAnomaly, results[2].Kind)
	suite.Equal(AnomalySequenceGap, results[2].Anomaly.Kind)
	suite.Equal(uint64(2), results[2].Anomaly.Missing)
	suite.Equal(1, results[2].Anomaly.PacketIndex)
	suite.Equal(uint64(104), results[3].Sequence)

	// stray low sequence is reported but still decoded
	suite.Equal(ResultAnomaly, results[4].Kind)
	suite.Equal(AnomalyDuplicateOrOutOfOrder, results[4].Anomaly.Kind)
	suite.Equal(ResultMessage, results[5].Kind)
	suite.Equal(uint64(101), results[5].Sequence)
	last, _ := suite.decoder.Tracker().Last()
	suite.Equal(uint64(104), last)
}

func (suite *DecoderTestSuite) TestSharedTracker() {
	tracker := NewSequenceTracker()
	first := NewDecoderWithOptions(DecoderOptions{Tracker: tracker})
	second := NewDecoderWithOptions(DecoderOptions{Tracker: tracker})

	collect(first.DecodePacket(0, Packet{Payload: mustSegment(suite.T(), testHeader(1), testTrade("A", 1, 1, 1))}))
	results := collect(second.DecodePacket(1, Packet{Payload: mustSegment(suite.T(), testHeader(3), testTrade("A", 1, 1, 2))}))

	suite.Require().Len(results, 2)
	suite.Equal(AnomalySequenceGap, results[0].Anomaly.Kind)
	suite.NotEqual(first.ID(), second.ID())
}

func (suite *DecoderTestSuite) TestEarlyStop() {
	buf := mustSegment(suite.T(), testHeader(1),
		testTrade("A", 1, 1, 1),
		testTrade("A", 1, 1, 2),
		testTrade("A", 1, 1, 3),
	)

	n := 0
	for r := range suite.decoder.Decode(packets(buf, buf)) {
		suite.Equal(ResultMessage, r.Kind)
		n++
		if n == 2 {
			break
		}
	}
	suite.Equal(2, n)
	suite.Equal(int64(1), suite.decoder.Stats().Packets)
}

func (suite *DecoderTestSuite) TestDecodeSource() {
	src := NewPayloadSource(
		mustSegment(suite.T(), testHeader(1), testTrade("A", 1, 1, 1)),
		[]byte{1, 2, 3},
		mustSegment(suite.T(), testHeader(2), testTrade("A", 1, 1, 2)),
	)

	sink := NewMemorySink()
	n := Drain(suite.decoder.DecodeSource(src), sink)

	suite.Equal(3, n)
	suite.Len(sink.Messages(), 2)
	suite.Len(sink.Errors(), 1)
	suite.Empty(sink.Anomalies())
	suite.Equal(1, sink.Get(1).PacketIndex)
	suite.Equal(int64(3), suite.decoder.Stats().Packets)
}

func (suite *DecoderTestSuite) TestDecodeSourceError() {
	boom := errors.New("read failed")
	calls := 0
	src := PacketFunc(func() (Packet, error) {
		calls++
		if calls == 1 {
			return Packet{Payload: mustSegment(suite.T(), testHeader(1), testTrade("A", 1, 1, 1))}, nil
		}
		return Packet{}, boom
	})

	results := collect(suite.decoder.DecodeSource(src))

	suite.Require().Len(results, 2)
	suite.Equal(ResultMessage, results[0].Kind)
	suite.ErrorIs(results[1].Err, boom)
	suite.Equal(2, calls)
}
