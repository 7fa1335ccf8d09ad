// Package bin provides bounds-checked little-endian readers over an
// in-memory blob. Every reader is total: a short read returns
// ErrOutOfRange, never a panic.
package bin

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

var ErrOutOfRange = errors.New("read out of range")

// Window is a read-only view over a byte blob.
type Window struct {
	data []byte
}

func NewWindow(data []byte) Window {
	return Window{data: data}
}

func (w Window) Len() int {
	return len(w.data)
}

func (w Window) Bytes() []byte {
	return w.data
}

// Slice returns the n bytes starting at off without copying.
func (w Window) Slice(off, n int) ([]byte, error) {
	if off < 0 || n < 0 || off+n < 0 || off+n > len(w.data) {
		return nil, fmt.Errorf("slice [%d:%d) of %d bytes: %w", off, off+n, len(w.data), ErrOutOfRange)
	}
	return w.data[off : off+n], nil
}

func (w Window) Byte(off int) (byte, error) {
	b, err := w.Slice(off, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (w Window) Uint16(off int) (uint16, error) {
	b, err := w.Slice(off, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (w Window) Uint32(off int) (uint32, error) {
	b, err := w.Slice(off, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (w Window) Uint64(off int) (uint64, error) {
	b, err := w.Slice(off, 8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (w Window) Int32(off int) (int32, error) {
	v, err := w.Uint32(off)
	return int32(v), err
}

func (w Window) Int64(off int) (int64, error) {
	v, err := w.Uint64(off)
	return int64(v), err
}

func (w Window) Float32(off int) (float32, error) {
	v, err := w.Uint32(off)
	return math.Float32frombits(v), err
}

func (w Window) Float64(off int) (float64, error) {
	v, err := w.Uint64(off)
	return math.Float64frombits(v), err
}

// Filetime reads a 64-bit FILETIME value. Interpretation is left to the
// caller; zero means unset.
func (w Window) Filetime(off int) (uint64, error) {
	return w.Uint64(off)
}
