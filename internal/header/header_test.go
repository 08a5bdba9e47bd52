package header

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	binpkg "github.com/robert-malhotra/go-alembic/internal/binary"
)

func buildHeader(sig []byte, frozen uint8, version uint16, root uint64) []byte {
	var buf bytes.Buffer
	buf.Write(sig)
	buf.WriteByte(frozen)
	binary.Write(&buf, binary.BigEndian, version)
	binary.Write(&buf, binary.LittleEndian, root)
	return buf.Bytes()
}

func TestSignature(t *testing.T) {
	if !bytes.Equal(Signature, []byte("Ogawa")) {
		t.Errorf("Signature mismatch: got %q", Signature)
	}
}

func TestReadValid(t *testing.T) {
	data := buildHeader(Signature, Frozen, Version, 96)

	h, err := Read(binpkg.FromBytes(data))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if h.Version != 1 {
		t.Errorf("expected version 1, got %d", h.Version)
	}
	if h.RootOffset != 96 {
		t.Errorf("expected root offset 96, got %d", h.RootOffset)
	}
	if h.Frozen != 0xFF {
		t.Errorf("expected frozen flag 0xFF, got 0x%02x", h.Frozen)
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected error
	}{
		{"empty", nil, ErrNotOgawa},
		{"signature only", []byte("Ogawa"), ErrNotOgawa},
		{"wrong signature", buildHeader([]byte("Ogawb"), Frozen, Version, 16), ErrNotOgawa},
		{"hdf5 file", append([]byte{0x89, 'H', 'D', 'F', '\r', '\n', 0x1a, '\n'}, make([]byte, 8)...), ErrNotOgawa},
		{"not frozen", buildHeader(Signature, 0x00, Version, 16), ErrNotFrozen},
		{"future version", buildHeader(Signature, Frozen, 2, 16), ErrUnsupportedVersion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(binpkg.FromBytes(tt.data))
			if !errors.Is(err, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, err)
			}
		})
	}
}

func TestReadFormatErrorsWrapInvalidData(t *testing.T) {
	_, err := Read(binpkg.FromBytes([]byte("garbage-garbage-garbage")))
	if !errors.Is(err, binpkg.ErrInvalidData) {
		t.Errorf("expected error to wrap ErrInvalidData, got %v", err)
	}
}

func TestReadWriterBytes(t *testing.T) {
	data := []byte{'O', 'g', 'a', 'w', 'a', 0xFF, 0x00, 0x01, 16, 0, 0, 0, 0, 0, 0, 0}

	h, err := Read(binpkg.FromBytes(data))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if h.Version != 1 {
		t.Errorf("expected version 1, got %d", h.Version)
	}
	if h.RootOffset != 16 {
		t.Errorf("expected root offset 16, got %d", h.RootOffset)
	}

	// little-endian version bytes decode as 256
	data[6], data[7] = 0x01, 0x00
	if _, err := Read(binpkg.FromBytes(data)); !errors.Is(err, ErrUnsupportedVersion) {
		t.Errorf("expected ErrUnsupportedVersion, got %v", err)
	}
}
