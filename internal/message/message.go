package message

import (
	"fmt"
	"unicode/utf8"

	"github.com/robert-malhotra/go-alembic/internal/binary"
)

// InlineMetadata is the metadata index marking metadata stored in the header itself.
const InlineMetadata = 0xFF

// readSized reads a size-hinted unsigned integer.
func readSized(r *binary.Reader, hint uint32) (uint32, error) {
	switch hint {
	case 0:
		v, err := r.ReadUint8()
		return uint32(v), err
	case 1:
		v, err := r.ReadUint16()
		return uint32(v), err
	case 2:
		return r.ReadUint32()
	default:
		return 0, fmt.Errorf("%w: invalid size hint %d", binary.ErrInvalidData, hint)
	}
}

// readName reads n bytes and checks they form valid UTF-8.
func readName(r *binary.Reader, n uint32) (string, error) {
	s, err := r.ReadString(int(n))
	if err != nil {
		return "", err
	}
	if !utf8.ValidString(s) {
		return "", fmt.Errorf("%w: invalid UTF-8 in %q", binary.ErrInvalidData, s)
	}
	return s, nil
}

func bits(v uint32, lo, hi uint) uint32 {
	return (v >> lo) & (1<<(hi-lo) - 1)
}
