package iextp

import (
	"errors"
	"io"
	"iter"
	"log/slog"

	"github.com/rs/xid"
)

// DecoderOptions configures a Decoder. The zero value is ready to use.
type DecoderOptions struct {
	// Protocols lists the accepted message protocol ids.
	// If empty, DefaultProtocols (TOPS and DEEP) are accepted.
	Protocols []uint16

	// Tracker holds the sequence state. If nil, the decoder creates its own,
	// logging through the decoder's logger.
	// Pass a tracker to keep sequence state across decoders or to inspect it.
	Tracker *SequenceTracker

	// Logger overrides the package logger for this decoder.
	Logger *slog.Logger
}

// Decoder turns captured packet payloads of one feed session into a stream
// of results. A Decoder is not safe for concurrent use; packets of one
// capture must be fed in capture order.
type Decoder struct {
	id        string
	protocols []uint16
	tracker   *SequenceTracker
	logger    *slog.Logger
	stats     Stats
}

// NewDecoder creates a decoder with default options.
func NewDecoder() *Decoder {
	return NewDecoderWithOptions(DecoderOptions{})
}

// NewDecoderWithOptions creates a decoder with the given options.
func NewDecoderWithOptions(opts DecoderOptions) *Decoder {
	id := xid.New().String()

	protocols := opts.Protocols
	if len(protocols) == 0 {
		protocols = DefaultProtocols
	}

	l := opts.Logger
	if l == nil {
		l = logger
	}
	l = l.With("decoder_id", id)

	// a caller supplied tracker may be shared, so it keeps its own logger
	tracker := opts.Tracker
	if tracker == nil {
		tracker = NewSequenceTracker()
		tracker.SetLogger(l)
	}

	return &Decoder{
		id:        id,
		protocols: protocols,
		tracker:   tracker,
		logger:    l,
	}
}

// ID returns the unique id of this decoder, attached to all of its log lines.
func (d *Decoder) ID() string {
	return d.id
}

// Tracker returns the sequence tracker used by this decoder.
func (d *Decoder) Tracker() *SequenceTracker {
	return d.tracker
}

// Stats returns the counters accumulated so far.
func (d *Decoder) Stats() Stats {
	return d.stats
}

// DecodePacket decodes a single packet. index is reported back in every
// result as PacketIndex.
func (d *Decoder) DecodePacket(index int, pkt Packet) iter.Seq[Result] {
	return func(yield func(Result) bool) {
		d.decodePacket(index, pkt, yield)
	}
}

// Decode decodes packets in order. Packet indexes continue from the number of
// packets this decoder has already seen. The consumer may stop at any time.
func (d *Decoder) Decode(packets iter.Seq[Packet]) iter.Seq[Result] {
	return func(yield func(Result) bool) {
		for pkt := range packets {
			if !d.decodePacket(int(d.stats.Packets), pkt, yield) {
				return
			}
		}
	}
}

// DecodeSource decodes packets pulled from src until it returns io.EOF.
// Any other source error ends the stream with one error result.
func (d *Decoder) DecodeSource(src PacketSource) iter.Seq[Result] {
	return func(yield func(Result) bool) {
		for {
			pkt, err := src.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				d.stats.Errors++
				d.logger.Error("packet source failed", "packet_index", d.stats.Packets, "error", err)
				yield(Result{
					Kind:        ResultError,
					PacketIndex: int(d.stats.Packets),
					Err:         err,
				})
				return
			}
			if !d.decodePacket(int(d.stats.Packets), pkt, yield) {
				return
			}
		}
	}
}

// decodePacket reports false when the consumer asked to stop.
func (d *Decoder) decodePacket(index int, pkt Packet, yield func(Result) bool) bool {
	d.stats.Packets++

	h, c, err := decodeSegmentHeader(pkt.Payload, d.protocols)
	if err != nil {
		return d.emitError(yield, index, -1, 0, pkt, err)
	}
	if h.IsHeartbeat() {
		d.stats.Heartbeats++
	}

	d.logger.Debug("segment",
		"packet_index", index,
		"protocol_id", h.ProtocolID,
		"channel_id", h.ChannelID,
		"session_id", h.SessionID,
		"payload_length", h.PayloadLength,
		"message_count", h.MessageCount,
		"first_seq", h.FirstSequenceNumber,
	)

	// Frames live in the declared payload; anything after it is trailing.
	payload := c.Rest()
	extra := 0
	if len(payload) > int(h.PayloadLength) {
		extra = len(payload) - int(h.PayloadLength)
		payload = payload[:h.PayloadLength]
	}

	it := NewFrameIterator(payload, h.MessageCount)
	for it.Next() {
		seq, anomaly := d.tracker.Observe(h, it.Index())
		if anomaly != nil {
			anomaly.PacketIndex = index
			if !d.emitAnomaly(yield, pkt, anomaly) {
				return false
			}
		}

		msg, err := DecodeMessage(it.Frame())
		if err != nil {
			if !d.emitError(yield, index, it.Index(), SegmentHeaderSize+it.Offset(), pkt, err) {
				return false
			}
			continue
		}

		d.stats.Messages++
		if _, ok := msg.(*Unknown); ok {
			d.stats.Unknown++
		}
		if !yield(Result{
			Kind:        ResultMessage,
			PacketIndex: index,
			Sequence:    seq,
			CaptureTime: pkt.CaptureTime,
			Message:     msg,
		}) {
			return false
		}
	}

	if err := it.Err(); err != nil {
		return d.emitError(yield, index, it.Index()+1, SegmentHeaderSize+it.Offset(), pkt, err)
	}

	if trailing := it.Trailing() + extra; trailing > 0 {
		if !d.emitAnomaly(yield, pkt, &Anomaly{
			Kind:          AnomalyTrailingBytes,
			PacketIndex:   index,
			SessionID:     h.SessionID,
			TrailingBytes: trailing,
		}) {
			return false
		}
	}

	// every frame parsed, yet the header promised more bytes
	if missing := int(h.PayloadLength) - len(payload); missing > 0 {
		return d.emitAnomaly(yield, pkt, &Anomaly{
			Kind:         AnomalyPayloadLengthMismatch,
			PacketIndex:  index,
			SessionID:    h.SessionID,
			MissingBytes: missing,
		})
	}
	return true
}

func (d *Decoder) emitAnomaly(yield func(Result) bool, pkt Packet, a *Anomaly) bool {
	d.stats.Anomalies++
	d.logger.Warn("feed anomaly",
		"kind", a.Kind.String(),
		"packet_index", a.PacketIndex,
		"session_id", a.SessionID,
		"seq", a.Sequence,
		"expected", a.Expected,
		"missing", a.Missing,
		"trailing_bytes", a.TrailingBytes,
		"missing_bytes", a.MissingBytes,
	)
	return yield(Result{
		Kind:        ResultAnomaly,
		PacketIndex: a.PacketIndex,
		Sequence:    a.Sequence,
		CaptureTime: pkt.CaptureTime,
		Anomaly:     a,
	})
}

func (d *Decoder) emitError(yield func(Result) bool, packetIndex, frameIndex, offset int, pkt Packet, err error) bool {
	d.stats.Errors++
	derr := &DecodeError{
		PacketIndex: packetIndex,
		FrameIndex:  frameIndex,
		Offset:      offset,
		Err:         err,
	}
	d.logger.Warn("decode failed", "packet_index", packetIndex, "frame_index", frameIndex, "offset", offset, "error", err)
	return yield(Result{
		Kind:        ResultError,
		PacketIndex: packetIndex,
		CaptureTime: pkt.CaptureTime,
		Err:         derr,
	})
}
