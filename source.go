package iextp

import "io"

// PacketSource supplies captured packet payloads in capture order. Next
// returns io.EOF when the capture is exhausted.
//
// Reading capture files (pcap, pcapng) and stripping Ethernet/IP/UDP headers
// is left to implementations of this interface.
type PacketSource interface {
	Next() (Packet, error)
}

// SlicePacketSource serves packets from memory.
type SlicePacketSource struct {
	packets []Packet
	pos     int
}

// NewSlicePacketSource creates a source over packets. The slice is not copied.
func NewSlicePacketSource(packets []Packet) *SlicePacketSource {
	return &SlicePacketSource{packets: packets}
}

// NewPayloadSource creates a source over raw payloads without capture times.
func NewPayloadSource(payloads ...[]byte) *SlicePacketSource {
	packets := make([]Packet, len(payloads))
	for i, p := range payloads {
		packets[i] = Packet{Payload: p}
	}
	return NewSlicePacketSource(packets)
}

// Next returns the next packet or io.EOF.
func (s *SlicePacketSource) Next() (Packet, error) {
	if s.pos >= len(s.packets) {
		return Packet{}, io.EOF
	}
	pkt := s.packets[s.pos]
	s.pos++
	return pkt, nil
}

// Rewind starts serving from the first packet again.
func (s *SlicePacketSource) Rewind() {
	s.pos = 0
}

// PacketFunc adapts a function to PacketSource.
type PacketFunc func() (Packet, error)

func (f PacketFunc) Next() (Packet, error) {
	return f()
}
