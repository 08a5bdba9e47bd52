package header

import (
	"bytes"
	stdbinary "encoding/binary"
	"fmt"

	"github.com/robert-malhotra/go-alembic/internal/binary"
)

// Signature is the magic at the start of every Ogawa archive.
var Signature = []byte{'O', 'g', 'a', 'w', 'a'}

// Size is the number of bytes occupied by the header.
const Size = 16

// Frozen is the value of the frozen flag in a finalized archive.
const Frozen = 0xFF

// Version is the only format version this package reads.
const Version = 1

// Errors
var (
	ErrNotOgawa           = fmt.Errorf("%w: not an Ogawa archive", binary.ErrInvalidData)
	ErrNotFrozen          = fmt.Errorf("%w: archive was not closed by its writer", binary.ErrInvalidData)
	ErrUnsupportedVersion = fmt.Errorf("%w: unsupported Ogawa version", binary.ErrInvalidData)
)

// Header contains the fields of the archive header.
type Header struct {
	// Frozen is the raw frozen flag.
	Frozen uint8

	// Version is the format version.
	Version uint16

	// RootOffset is the file offset of the root group.
	RootOffset uint64
}

// Read parses the header at the start of the source.
func Read(r *binary.Reader) (*Header, error) {
	hr := r.At(0)
	if hr.Size() < Size {
		return nil, fmt.Errorf("%w: %d bytes is shorter than the header", ErrNotOgawa, hr.Size())
	}

	sig, err := hr.ReadBytes(len(Signature))
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(sig, Signature) {
		return nil, ErrNotOgawa
	}

	h := &Header{}
	if h.Frozen, err = hr.ReadUint8(); err != nil {
		return nil, err
	}
	if h.Frozen != Frozen {
		return nil, ErrNotFrozen
	}

	// the version is the only big-endian field
	v, err := hr.ReadBytes(2)
	if err != nil {
		return nil, err
	}
	h.Version = stdbinary.BigEndian.Uint16(v)
	if h.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, h.Version)
	}

	if h.RootOffset, err = hr.ReadUint64(); err != nil {
		return nil, err
	}
	return h, nil
}
