package binary

import (
	"encoding/binary"
	"math"
)

// Writer appends little-endian values to an in-memory buffer.
// It backs the synthetic archives built by tests.
type Writer struct {
	buf []byte
}

// NewWriter creates an empty writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Pos returns the current write position.
func (w *Writer) Pos() int64 {
	return int64(len(w.buf))
}

// Bytes returns the written bytes.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// WriteBytes appends the given bytes.
func (w *Writer) WriteBytes(data []byte) {
	w.buf = append(w.buf, data...)
}

// WriteString appends the bytes of s.
func (w *Writer) WriteString(s string) {
	w.buf = append(w.buf, s...)
}

// WriteUint8 appends an unsigned 8-bit integer.
func (w *Writer) WriteUint8(v uint8) {
	w.buf = append(w.buf, v)
}

// WriteUint16 appends an unsigned 16-bit integer.
func (w *Writer) WriteUint16(v uint16) {
	w.buf = binary.LittleEndian.AppendUint16(w.buf, v)
}

// WriteUint32 appends an unsigned 32-bit integer.
func (w *Writer) WriteUint32(v uint32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
}

// WriteUint64 appends an unsigned 64-bit integer.
func (w *Writer) WriteUint64(v uint64) {
	w.buf = binary.LittleEndian.AppendUint64(w.buf, v)
}

// WriteFloat64 appends an IEEE 754 double.
func (w *Writer) WriteFloat64(v float64) {
	w.WriteUint64(math.Float64bits(v))
}

// PutUint64At overwrites 8 bytes at pos, which must already be written.
func (w *Writer) PutUint64At(pos int64, v uint64) {
	binary.LittleEndian.PutUint64(w.buf[pos:pos+8], v)
}
