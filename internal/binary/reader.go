// Package binary provides low-level binary I/O operations for Ogawa archive parsing.
package binary

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// ErrInvalidData is the root of every format error: header mismatches,
// truncated structures and offsets that point outside the source.
var ErrInvalidData = errors.New("invalid archive data")

// Reader reads little-endian values from a random-access byte source.
// Every read is checked against the source size, so a dangling offset
// surfaces as ErrInvalidData instead of a short read.
type Reader struct {
	r    io.ReaderAt
	size int64
	pos  int64
}

// NewReader creates a reader over the first size bytes of r.
func NewReader(r io.ReaderAt, size int64) *Reader {
	return &Reader{
		r:    r,
		size: size,
		pos:  0,
	}
}

// FromBytes creates a reader over an in-memory buffer.
func FromBytes(data []byte) *Reader {
	return &Reader{
		r:    bytesReaderAt(data),
		size: int64(len(data)),
	}
}

// At returns a new reader positioned at the given offset.
// The new reader shares the underlying io.ReaderAt but has independent position.
func (r *Reader) At(offset int64) *Reader {
	return &Reader{
		r:    r.r,
		size: r.size,
		pos:  offset,
	}
}

// Pos returns the current read position.
func (r *Reader) Pos() int64 {
	return r.pos
}

// Size returns the size of the underlying source.
func (r *Reader) Size() int64 {
	return r.size
}

// Remaining returns the number of bytes between the position and the end of the source.
func (r *Reader) Remaining() int64 {
	if r.pos >= r.size {
		return 0
	}
	return r.size - r.pos
}

// Check reports whether n bytes can be read from the current position.
func (r *Reader) Check(n int64) error {
	if n < 0 || r.pos < 0 || r.pos > r.size || n > r.size-r.pos {
		return fmt.Errorf("%w: %d bytes at offset %d exceeds source size %d",
			ErrInvalidData, n, r.pos, r.size)
	}
	return nil
}

// ReadBytes reads exactly n bytes from the current position.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}
	if err := r.Check(int64(n)); err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	read, err := r.r.ReadAt(buf, r.pos)
	if read < n {
		if err == nil || err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("reading %d bytes at offset %d: %w", n, r.pos, err)
	}
	r.pos += int64(n)
	return buf, nil
}

// ReadUint8 reads an unsigned 8-bit integer.
func (r *Reader) ReadUint8() (uint8, error) {
	buf, err := r.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return buf[0], nil
}

// ReadUint16 reads an unsigned 16-bit integer.
func (r *Reader) ReadUint16() (uint16, error) {
	buf, err := r.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(buf), nil
}

// ReadUint32 reads an unsigned 32-bit integer.
func (r *Reader) ReadUint32() (uint32, error) {
	buf, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf), nil
}

// ReadUint64 reads an unsigned 64-bit integer.
func (r *Reader) ReadUint64() (uint64, error) {
	buf, err := r.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf), nil
}

// ReadFloat64 reads an IEEE 754 double.
func (r *Reader) ReadFloat64() (float64, error) {
	v, err := r.ReadUint64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// ReadString reads n bytes as a string. No encoding check is done here.
func (r *Reader) ReadString(n int) (string, error) {
	buf, err := r.ReadBytes(n)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// Skip advances the position by n bytes.
func (r *Reader) Skip(n int64) {
	r.pos += n
}

// Peek reads n bytes without advancing the position.
func (r *Reader) Peek(n int) ([]byte, error) {
	saved := r.pos
	buf, err := r.ReadBytes(n)
	r.pos = saved
	return buf, err
}

type bytesReaderAt []byte

func (b bytesReaderAt) ReadAt(p []byte, off int64) (int, error) {
	if off >= int64(len(b)) {
		return 0, io.EOF
	}
	n := copy(p, b[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}
