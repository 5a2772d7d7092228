package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrTruncatedData is returned when fewer bytes remain than a read requires.
var ErrTruncatedData = errors.New("wire: truncated data")

// Cursor is a bounds-checked little-endian reader over an immutable buffer.
//
// A Cursor never copies the buffer. Slices returned by ReadBytes and Rest are
// views into it and are only valid as long as the caller keeps the buffer
// unchanged. A failed read leaves the position where it was.
type Cursor struct {
	buf []byte
	pos int
}

// NewCursor creates a cursor positioned at the start of buf.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Len returns the total length of the underlying buffer.
func (c *Cursor) Len() int {
	return len(c.buf)
}

// Pos returns the current read offset.
func (c *Cursor) Pos() int {
	return c.pos
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.buf) - c.pos
}

// Seek moves the read position to an absolute offset within the buffer.
func (c *Cursor) Seek(offset int) error {
	if offset < 0 || offset > len(c.buf) {
		return fmt.Errorf("seek to %d of %d: %w", offset, len(c.buf), ErrTruncatedData)
	}
	c.pos = offset
	return nil
}

// Skip advances the position by n bytes.
func (c *Cursor) Skip(n int) error {
	if err := c.need(n); err != nil {
		return err
	}
	c.pos += n
	return nil
}

// Sub returns a cursor bounded to the next n bytes and advances past them.
func (c *Cursor) Sub(n int) (*Cursor, error) {
	b, err := c.ReadBytes(n)
	if err != nil {
		return nil, err
	}
	return NewCursor(b), nil
}

// Rest returns a view of all unread bytes without advancing.
func (c *Cursor) Rest() []byte {
	return c.buf[c.pos:]
}

func (c *Cursor) ReadUint8() (uint8, error) {
	if err := c.need(1); err != nil {
		return 0, err
	}
	v := c.buf[c.pos]
	c.pos++
	return v, nil
}

func (c *Cursor) ReadUint16() (uint16, error) {
	if err := c.need(2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(c.buf[c.pos:])
	c.pos += 2
	return v, nil
}

func (c *Cursor) ReadUint32() (uint32, error) {
	if err := c.need(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(c.buf[c.pos:])
	c.pos += 4
	return v, nil
}

func (c *Cursor) ReadUint64() (uint64, error) {
	if err := c.need(8); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint64(c.buf[c.pos:])
	c.pos += 8
	return v, nil
}

func (c *Cursor) ReadInt64() (int64, error) {
	v, err := c.ReadUint64()
	return int64(v), err
}

// ReadBytes returns a view of the next n bytes.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if err := c.need(n); err != nil {
		return nil, err
	}
	b := c.buf[c.pos : c.pos+n : c.pos+n]
	c.pos += n
	return b, nil
}

// ReadArray8 copies the next 8 bytes into a fixed-size array.
func (c *Cursor) ReadArray8() ([8]byte, error) {
	var out [8]byte
	if err := c.need(8); err != nil {
		return out, err
	}
	copy(out[:], c.buf[c.pos:])
	c.pos += 8
	return out, nil
}

// ReadString reads a 2-byte length prefix followed by that many ASCII bytes.
func (c *Cursor) ReadString() (string, error) {
	start := c.pos
	n, err := c.ReadUint16()
	if err != nil {
		return "", err
	}
	b, err := c.ReadBytes(int(n))
	if err != nil {
		c.pos = start
		return "", err
	}
	return string(b), nil
}

func (c *Cursor) need(n int) error {
	if n < 0 || len(c.buf)-c.pos < n {
		return fmt.Errorf("need %d bytes at offset %d, have %d: %w", n, c.pos, len(c.buf)-c.pos, ErrTruncatedData)
	}
	return nil
}
