package iextp

const (
	// DecoderVersion is the current version of the decoder.
	DecoderVersion = "v1.0.0"

	// SegmentHeaderSize is the fixed size of an IEX-TP segment header.
	SegmentHeaderSize = 40

	// TransportVersion is the only IEX-TP version this decoder understands.
	TransportVersion = 1

	// FramePrefixSize is the width of the length prefix in front of each message.
	FramePrefixSize = 2
)

// Message protocol ids carried in the segment header.
const (
	ProtocolTOPS uint16 = 0x8003
	ProtocolDEEP uint16 = 0x8004
)

// DefaultProtocols are the message protocols accepted when none are configured.
var DefaultProtocols = []uint16{ProtocolTOPS, ProtocolDEEP}

// RingCapacity is the size of the ring buffer between concurrent decoders
// and the sink. Must be a power of 2.
const RingCapacity = 4096
