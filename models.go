package iextp

import (
	"fmt"
	"time"
)

// Packet is one captured packet payload, starting exactly at the segment
// header. Transport headers are already stripped by whoever read the capture.
type Packet struct {
	Payload     []byte
	CaptureTime time.Time // zero when the source has no capture timestamps
}

// ResultKind tells which field of a Result is populated.
type ResultKind uint8

const (
	ResultMessage ResultKind = 1
	ResultAnomaly ResultKind = 2
	ResultError   ResultKind = 3
)

func (k ResultKind) String() string {
	switch k {
	case ResultMessage:
		return "message"
	case ResultAnomaly:
		return "anomaly"
	case ResultError:
		return "error"
	}
	return "unknown"
}

// Result is one item of the decoded stream.
//   - ResultMessage: Message and Sequence are set
//   - ResultAnomaly: Anomaly is set, decoding went on
//   - ResultError:   Err is set (a *DecodeError), the rest of the frame or
//     segment it names was skipped
type Result struct {
	Kind        ResultKind
	PacketIndex int
	Sequence    uint64
	CaptureTime time.Time
	Message     Message
	Anomaly     *Anomaly
	Err         error
}

// AnomalyKind classifies non-fatal observations.
type AnomalyKind uint8

const (
	// AnomalyTrailingBytes: unread bytes after the declared messages.
	AnomalyTrailingBytes AnomalyKind = 1
	// AnomalySequenceGap: sequence jumped forward, Missing messages lost.
	AnomalySequenceGap AnomalyKind = 2
	// AnomalyDuplicateOrOutOfOrder: sequence at or below the last accepted one.
	AnomalyDuplicateOrOutOfOrder AnomalyKind = 3
	// AnomalyPayloadLengthMismatch: all declared frames were read but the
	// packet ended before the declared payload length.
	AnomalyPayloadLengthMismatch AnomalyKind = 4
)

func (k AnomalyKind) String() string {
	switch k {
	case AnomalyTrailingBytes:
		return "trailing_bytes"
	case AnomalySequenceGap:
		return "sequence_gap"
	case AnomalyDuplicateOrOutOfOrder:
		return "duplicate_or_out_of_order"
	case AnomalyPayloadLengthMismatch:
		return "payload_length_mismatch"
	}
	return "unknown"
}

// Anomaly is a reported, non-fatal irregularity in the feed.
type Anomaly struct {
	Kind          AnomalyKind
	PacketIndex   int
	SessionID     uint32
	Sequence      uint64 // sequence that triggered it
	Expected      uint64 // sequence that was expected instead
	Missing       uint64 // SequenceGap only
	TrailingBytes int    // TrailingBytes only
	MissingBytes  int    // PayloadLengthMismatch only
}

func (a *Anomaly) String() string {
	switch a.Kind {
	case AnomalySequenceGap:
		return fmt.Sprintf("%s: expected %d got %d (%d missing)", a.Kind, a.Expected, a.Sequence, a.Missing)
	case AnomalyDuplicateOrOutOfOrder:
		return fmt.Sprintf("%s: expected %d got %d", a.Kind, a.Expected, a.Sequence)
	case AnomalyTrailingBytes:
		return fmt.Sprintf("%s: %d bytes in packet %d", a.Kind, a.TrailingBytes, a.PacketIndex)
	case AnomalyPayloadLengthMismatch:
		return fmt.Sprintf("%s: %d bytes missing in packet %d", a.Kind, a.MissingBytes, a.PacketIndex)
	}
	return a.Kind.String()
}

// Stats counts what a Decoder has produced so far.
type Stats struct {
	Packets    int64
	Heartbeats int64
	Messages   int64
	Unknown    int64 // messages with an unrecognised tag, included in Messages
	Anomalies  int64
	Errors     int64
}
