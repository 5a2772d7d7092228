package iextp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameIteratorExactCount(t *testing.T) {
	payload := append(rawFrame([]byte{'S', 1, 2}), rawFrame([]byte{'X'})...)

	it := NewFrameIterator(payload, 2)
	require.True(t, it.Next())
	assert.Equal(t, 0, it.Index())
	assert.Equal(t, 0, it.Offset())
	assert.Equal(t, []byte{'S', 1, 2}, it.Frame())

	require.True(t, it.Next())
	assert.Equal(t, 1, it.Index())
	assert.Equal(t, 5, it.Offset())
	assert.Equal(t, []byte{'X'}, it.Frame())

	assert.False(t, it.Next())
	assert.NoError(t, it.Err())
	assert.True(t, it.Done())
	assert.Equal(t, 0, it.Trailing())
}

func TestFrameIteratorStopsAtDeclaredCount(t *testing.T) {
	payload := append(rawFrame([]byte{'A'}), rawFrame([]byte{'B'})...)
	payload = append(payload, 0, 0, 0)

	it := NewFrameIterator(payload, 1)
	n := 0
	for it.Next() {
		n++
	}
	assert.Equal(t, 1, n)
	assert.NoError(t, it.Err())
	assert.Equal(t, 6, it.Trailing())
}

func TestFrameIteratorTruncatedFrame(t *testing.T) {
	// second frame claims 10 bytes, 3 remain
	payload := append(rawFrame([]byte{'A', 'B'}), 10, 0, 1, 2, 3)

	it := NewFrameIterator(payload, 2)
	require.True(t, it.Next())
	assert.False(t, it.Next())
	assert.ErrorIs(t, it.Err(), ErrTruncatedFrame)
	assert.Equal(t, 4, it.Offset())
	assert.Nil(t, it.Frame())
	assert.False(t, it.Done())
	assert.Equal(t, 0, it.Trailing())

	// stays stopped
	assert.False(t, it.Next())
}

func TestFrameIteratorCountExceedsFrames(t *testing.T) {
	payload := append(rawFrame([]byte{'A'}), rawFrame([]byte{'B'})...)

	it := NewFrameIterator(payload, 3)
	n := 0
	for it.Next() {
		n++
	}
	assert.Equal(t, 2, n)
	assert.ErrorIs(t, it.Err(), ErrTruncatedFrame)
}

func TestFrameIteratorHalfLengthPrefix(t *testing.T) {
	it := NewFrameIterator([]byte{5}, 1)
	assert.False(t, it.Next())
	assert.ErrorIs(t, it.Err(), ErrTruncatedFrame)
}

func TestFrameIteratorZeroCount(t *testing.T) {
	it := NewFrameIterator(nil, 0)
	assert.False(t, it.Next())
	assert.NoError(t, it.Err())
	assert.True(t, it.Done())
	assert.Equal(t, 0, it.Trailing())

	it = NewFrameIterator([]byte{0, 0}, 0)
	assert.False(t, it.Next())
	assert.Equal(t, 2, it.Trailing())
}

func TestFrameIteratorEmptyFrame(t *testing.T) {
	it := NewFrameIterator([]byte{0, 0}, 1)
	require.True(t, it.Next())
	assert.Empty(t, it.Frame())
	assert.False(t, it.Next())
	assert.NoError(t, it.Err())
}
