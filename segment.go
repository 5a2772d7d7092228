package iextp

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/0x5487/iextp/wire"
)

// SegmentHeader is the fixed 40-byte IEX-TP header at the front of every
// packet payload.
type SegmentHeader struct {
	Version             uint8
	Reserved            uint8
	ProtocolID          uint16
	ChannelID           uint32
	SessionID           uint32
	PayloadLength       uint16
	MessageCount        uint16
	StreamOffset        int64
	FirstSequenceNumber uint64
	SendTime            int64 // Unix nano
}

// SendTimeUTC returns the send time as a time.Time in UTC.
func (h SegmentHeader) SendTimeUTC() time.Time {
	return time.Unix(0, h.SendTime).UTC()
}

// IsHeartbeat reports whether the segment carries no messages.
func (h SegmentHeader) IsHeartbeat() bool {
	return h.MessageCount == 0
}

// SequenceAt returns the sequence number of the message at index i.
func (h SegmentHeader) SequenceAt(i int) uint64 {
	return h.FirstSequenceNumber + uint64(i)
}

// DecodeSegmentHeader parses the segment header at the front of buf and
// returns a cursor positioned immediately after it.
//
// The header fields are validated against this decoder's layout
// assumptions: a short buffer yields ErrTruncatedData, a version other than
// TransportVersion, a message protocol outside TOPS/DEEP or a negative first
// sequence number yields ErrInvalidProtocol.
func DecodeSegmentHeader(buf []byte) (SegmentHeader, *wire.Cursor, error) {
	return decodeSegmentHeader(buf, DefaultProtocols)
}

func decodeSegmentHeader(buf []byte, protocols []uint16) (SegmentHeader, *wire.Cursor, error) {
	if len(buf) < SegmentHeaderSize {
		return SegmentHeader{}, nil, fmt.Errorf("segment header: expected %d bytes, got %d: %w", SegmentHeaderSize, len(buf), ErrTruncatedData)
	}

	c := wire.NewCursor(buf)
	var h SegmentHeader
	// lengths were checked above, none of these reads can fail
	h.Version, _ = c.ReadUint8()
	h.Reserved, _ = c.ReadUint8()
	h.ProtocolID, _ = c.ReadUint16()
	h.ChannelID, _ = c.ReadUint32()
	h.SessionID, _ = c.ReadUint32()
	h.PayloadLength, _ = c.ReadUint16()
	h.MessageCount, _ = c.ReadUint16()
	h.StreamOffset, _ = c.ReadInt64()
	first, _ := c.ReadInt64()
	h.SendTime, _ = c.ReadInt64()

	if h.Version != TransportVersion {
		return h, nil, fmt.Errorf("segment header: version %d: %w", h.Version, ErrInvalidProtocol)
	}
	if !acceptsProtocol(protocols, h.ProtocolID) {
		return h, nil, fmt.Errorf("segment header: protocol id 0x%04x: %w", h.ProtocolID, ErrInvalidProtocol)
	}
	if first < 0 {
		return h, nil, fmt.Errorf("segment header: first sequence number %d: %w", first, ErrInvalidProtocol)
	}
	h.FirstSequenceNumber = uint64(first)

	return h, c, nil
}

func acceptsProtocol(protocols []uint16, id uint16) bool {
	for _, p := range protocols {
		if p == id {
			return true
		}
	}
	return false
}

// AppendSegmentHeader appends the 40-byte wire form of h to dst.
func AppendSegmentHeader(dst []byte, h SegmentHeader) []byte {
	dst = append(dst, h.Version, h.Reserved)
	dst = binary.LittleEndian.AppendUint16(dst, h.ProtocolID)
	dst = binary.LittleEndian.AppendUint32(dst, h.ChannelID)
	dst = binary.LittleEndian.AppendUint32(dst, h.SessionID)
	dst = binary.LittleEndian.AppendUint16(dst, h.PayloadLength)
	dst = binary.LittleEndian.AppendUint16(dst, h.MessageCount)
	dst = binary.LittleEndian.AppendUint64(dst, uint64(h.StreamOffset))
	dst = binary.LittleEndian.AppendUint64(dst, h.FirstSequenceNumber)
	dst = binary.LittleEndian.AppendUint64(dst, uint64(h.SendTime))
	return dst
}

// EncodeSegment builds a complete segment from h and msgs. PayloadLength and
// MessageCount are computed from msgs; every other header field is taken
// from h as is.
func EncodeSegment(h SegmentHeader, msgs ...Message) ([]byte, error) {
	payload := make([]byte, 0, len(msgs)*(FramePrefixSize+maxBodySize))
	for i, msg := range msgs {
		start := len(payload)
		payload = append(payload, 0, 0)
		var err error
		payload, err = AppendMessage(payload, msg)
		if err != nil {
			return nil, fmt.Errorf("message %d: %w", i, err)
		}
		bodyLen := len(payload) - start - FramePrefixSize
		if bodyLen > 0xffff {
			return nil, fmt.Errorf("message %d: body of %d bytes does not fit a frame", i, bodyLen)
		}
		binary.LittleEndian.PutUint16(payload[start:], uint16(bodyLen))
	}
	if len(payload) > 0xffff {
		return nil, fmt.Errorf("segment payload of %d bytes exceeds the header limit", len(payload))
	}
	if len(msgs) > 0xffff {
		return nil, fmt.Errorf("segment of %d messages exceeds the header limit", len(msgs))
	}

	h.PayloadLength = uint16(len(payload))
	h.MessageCount = uint16(len(msgs))

	out := make([]byte, 0, SegmentHeaderSize+len(payload))
	out = AppendSegmentHeader(out, h)
	return append(out, payload...), nil
}
