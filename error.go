package iextp

import (
	"errors"
	"fmt"

	"github.com/0x5487/iextp/wire"
)

var (
	ErrTruncatedData   = wire.ErrTruncatedData
	ErrTruncatedFrame  = errors.New("frame length exceeds remaining segment bytes")
	ErrInvalidProtocol = errors.New("unsupported protocol or version")
	ErrFieldTooLong    = errors.New("field longer than its fixed width")
)

// DecodeError locates a decode failure inside a capture.
// FrameIndex is -1 when the failure is at segment level.
type DecodeError struct {
	PacketIndex int
	FrameIndex  int
	Offset      int
	Err         error
}

func (e *DecodeError) Error() string {
	if e.FrameIndex < 0 {
		return fmt.Sprintf("packet %d offset %d: %v", e.PacketIndex, e.Offset, e.Err)
	}
	return fmt.Sprintf("packet %d frame %d offset %d: %v", e.PacketIndex, e.FrameIndex, e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
