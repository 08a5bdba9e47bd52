package binary

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"
)

func TestReaderReadUint8(t *testing.T) {
	r := FromBytes([]byte{0x42, 0xFF, 0x00})

	v, err := r.ReadUint8()
	if err != nil {
		t.Fatalf("ReadUint8 failed: %v", err)
	}
	if v != 0x42 {
		t.Errorf("expected 0x42, got 0x%02x", v)
	}

	v, err = r.ReadUint8()
	if err != nil {
		t.Fatalf("ReadUint8 failed: %v", err)
	}
	if v != 0xFF {
		t.Errorf("expected 0xFF, got 0x%02x", v)
	}
}

func TestReaderReadUint16(t *testing.T) {
	// Little-endian: 0x0102 stored as [0x02, 0x01]
	r := FromBytes([]byte{0x02, 0x01, 0xFF, 0xFF})

	v, err := r.ReadUint16()
	if err != nil {
		t.Fatalf("ReadUint16 failed: %v", err)
	}
	if v != 0x0102 {
		t.Errorf("expected 0x0102, got 0x%04x", v)
	}

	v, err = r.ReadUint16()
	if err != nil {
		t.Fatalf("ReadUint16 failed: %v", err)
	}
	if v != 0xFFFF {
		t.Errorf("expected 0xFFFF, got 0x%04x", v)
	}
}

func TestReaderReadUint32(t *testing.T) {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, uint32(0x12345678))
	binary.Write(&buf, binary.LittleEndian, uint32(0xDEADBEEF))

	r := FromBytes(buf.Bytes())

	v, err := r.ReadUint32()
	if err != nil {
		t.Fatalf("ReadUint32 failed: %v", err)
	}
	if v != 0x12345678 {
		t.Errorf("expected 0x12345678, got 0x%08x", v)
	}

	v, err = r.ReadUint32()
	if err != nil {
		t.Fatalf("ReadUint32 failed: %v", err)
	}
	if v != 0xDEADBEEF {
		t.Errorf("expected 0xDEADBEEF, got 0x%08x", v)
	}
}

func TestReaderReadUint64(t *testing.T) {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, uint64(0x123456789ABCDEF0))

	r := NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))

	v, err := r.ReadUint64()
	if err != nil {
		t.Fatalf("ReadUint64 failed: %v", err)
	}
	if v != 0x123456789ABCDEF0 {
		t.Errorf("expected 0x123456789ABCDEF0, got 0x%016x", v)
	}
}

func TestReaderReadFloat64(t *testing.T) {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, 24.0)

	v, err := FromBytes(buf.Bytes()).ReadFloat64()
	if err != nil {
		t.Fatalf("ReadFloat64 failed: %v", err)
	}
	if v != 24.0 {
		t.Errorf("expected 24, got %v", v)
	}
}

func TestReaderAt(t *testing.T) {
	r := FromBytes([]byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05})

	// Read from offset 3
	r2 := r.At(3)
	v, err := r2.ReadUint8()
	if err != nil {
		t.Fatalf("ReadUint8 failed: %v", err)
	}
	if v != 0x03 {
		t.Errorf("expected 0x03, got 0x%02x", v)
	}

	// Original reader should be unaffected
	v, err = r.ReadUint8()
	if err != nil {
		t.Fatalf("ReadUint8 failed: %v", err)
	}
	if v != 0x00 {
		t.Errorf("expected 0x00, got 0x%02x", v)
	}
}

func TestReaderSkip(t *testing.T) {
	r := FromBytes([]byte{0x00, 0x01, 0x02, 0x03, 0x04})

	r.Skip(2)
	v, err := r.ReadUint8()
	if err != nil {
		t.Fatalf("ReadUint8 failed: %v", err)
	}
	if v != 0x02 {
		t.Errorf("expected 0x02, got 0x%02x", v)
	}
	if r.Remaining() != 2 {
		t.Errorf("expected 2 remaining bytes, got %d", r.Remaining())
	}
}

func TestReaderPeek(t *testing.T) {
	r := FromBytes([]byte{0x00, 0x01, 0x02, 0x03})

	// Peek should not advance position
	peeked, err := r.Peek(2)
	if err != nil {
		t.Fatalf("Peek failed: %v", err)
	}
	if !bytes.Equal(peeked, []byte{0x00, 0x01}) {
		t.Errorf("expected [0x00, 0x01], got %v", peeked)
	}

	if r.Pos() != 0 {
		t.Errorf("Peek should not advance position, got %d", r.Pos())
	}

	read, err := r.ReadBytes(2)
	if err != nil {
		t.Fatalf("ReadBytes failed: %v", err)
	}
	if !bytes.Equal(read, peeked) {
		t.Errorf("Read after Peek mismatch: %v vs %v", read, peeked)
	}
}

func TestReaderOutOfBounds(t *testing.T) {
	tests := []struct {
		name   string
		offset int64
		n      int
	}{
		{"past end", 10, 1},
		{"straddles end", 2, 4},
		{"negative offset", -1, 1},
		{"huge length", 0, 1 << 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := FromBytes([]byte{0x00, 0x01, 0x02, 0x03}).At(tt.offset)
			_, err := r.ReadBytes(tt.n)
			if !errors.Is(err, ErrInvalidData) {
				t.Errorf("expected ErrInvalidData, got %v", err)
			}
			if r.Pos() != tt.offset {
				t.Errorf("failed read moved position to %d", r.Pos())
			}
		})
	}
}

// shortReaderAt claims a larger size than it can deliver.
type shortReaderAt struct{}

func (shortReaderAt) ReadAt(p []byte, off int64) (int, error) {
	return 0, io.EOF
}

func TestReaderShortSource(t *testing.T) {
	r := NewReader(shortReaderAt{}, 64)
	_, err := r.ReadUint64()
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("expected io.ErrUnexpectedEOF, got %v", err)
	}
}
