package iextp

import (
	"fmt"

	"github.com/0x5487/iextp/wire"
)

// FrameIterator walks the length-prefixed message frames of one segment.
//
// It yields exactly the declared number of frames, or fewer followed by
// ErrTruncatedFrame when the payload runs out. Frames are views into the
// payload passed to NewFrameIterator; copy them if they must outlive it.
//
//	it := NewFrameIterator(payload, h.MessageCount)
//	for it.Next() {
//		handle(it.Index(), it.Frame())
//	}
//	if err := it.Err(); err != nil { ... }
type FrameIterator struct {
	c      *wire.Cursor
	count  int
	index  int
	offset int
	frame  []byte
	err    error
}

// NewFrameIterator creates an iterator over payload that expects count frames.
func NewFrameIterator(payload []byte, count uint16) *FrameIterator {
	return &FrameIterator{
		c:     wire.NewCursor(payload),
		count: int(count),
		index: -1,
	}
}

// Next advances to the next frame. It returns false once count frames have
// been produced or a frame could not be read; check Err to tell them apart.
func (it *FrameIterator) Next() bool {
	if it.err != nil || it.index+1 >= it.count {
		it.frame = nil
		return false
	}

	start := it.c.Pos()
	length, err := it.c.ReadUint16()
	if err != nil {
		it.fail(start, fmt.Errorf("frame %d: length prefix at offset %d: %w", it.index+1, start, ErrTruncatedFrame))
		return false
	}
	body, err := it.c.ReadBytes(int(length))
	if err != nil {
		// restore so Offset and Trailing describe the unread frame
		_ = it.c.Seek(start)
		it.fail(start, fmt.Errorf("frame %d: declares %d bytes, %d remain: %w", it.index+1, length, it.c.Remaining()-FramePrefixSize, ErrTruncatedFrame))
		return false
	}

	it.index++
	it.offset = start
	it.frame = body
	return true
}

func (it *FrameIterator) fail(offset int, err error) {
	it.offset = offset
	it.frame = nil
	it.err = err
}

// Frame returns the body of the current frame, tag byte first.
func (it *FrameIterator) Frame() []byte {
	return it.frame
}

// Index returns the zero-based index of the current frame within the segment.
func (it *FrameIterator) Index() int {
	return it.index
}

// Offset returns the payload offset of the current frame's length prefix,
// or of the frame that failed to read.
func (it *FrameIterator) Offset() int {
	return it.offset
}

// Err returns the error that stopped iteration, if any.
func (it *FrameIterator) Err() error {
	return it.err
}

// Done reports whether all declared frames were produced.
func (it *FrameIterator) Done() bool {
	return it.err == nil && it.index+1 >= it.count
}

// Trailing returns the number of unread payload bytes left after all declared
// frames were produced. It is zero until iteration is done.
func (it *FrameIterator) Trailing() int {
	if !it.Done() {
		return 0
	}
	return it.c.Remaining()
}
