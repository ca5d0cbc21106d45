// Package buffer provides bounds-checked byte access.
package buffer

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is returned for an index outside [0, Len()).
var ErrIndexOutOfRange = errors.New("index out of range")

// Buffer is a read-only view over a byte slice.
type Buffer struct {
	data []byte
}

// New copies b into a Buffer.
func New(b ...byte) *Buffer {
	return &Buffer{data: append([]byte(nil), b...)}
}

// Len returns the number of bytes.
func (b *Buffer) Len() int {
	return len(b.data)
}

// At returns the byte at index i.
func (b *Buffer) At(i int) (byte, error) {
	if i < 0 || i >= len(b.data) {
		return 0, fmt.Errorf("buffer index %d with length %d: %w", i, len(b.data), ErrIndexOutOfRange)
	}
	return b.data[i], nil
}

// Bytes returns a copy of the contents.
func (b *Buffer) Bytes() []byte {
	return append([]byte(nil), b.data...)
}

var sample = []byte{1, 2, 3, 4, 5}

// SampleAt indexes the five byte sample {1, 2, 3, 4, 5}.
func SampleAt(i int) (byte, error) {
	return (&Buffer{data: sample}).At(i)
}
