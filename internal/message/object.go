package message

import (
	"fmt"

	"github.com/robert-malhotra/go-alembic/internal/binary"
)

// DigestSize is the number of trailing digest bytes in an object headers chunk.
const DigestSize = 32

// ObjectHeader describes one child object.
type ObjectHeader struct {
	Name string

	// MetadataIndex indexes the archive metadata table, or is InlineMetadata.
	MetadataIndex uint8
	// Metadata holds the serialized metadata when MetadataIndex is InlineMetadata.
	Metadata string
}

// ParseObjectHeaders decodes the child object headers chunk of an object group.
// The trailing data and child digests are skipped.
func ParseObjectHeaders(data []byte) ([]ObjectHeader, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if len(data) < DigestSize {
		return nil, fmt.Errorf("%w: object headers chunk of %d bytes has no digests",
			binary.ErrInvalidData, len(data))
	}

	r := binary.FromBytes(data[:len(data)-DigestSize])
	var headers []ObjectHeader
	for r.Remaining() > 0 {
		var h ObjectHeader

		nameSize, err := r.ReadUint32()
		if err != nil {
			return nil, fmt.Errorf("object header %d: %w", len(headers), err)
		}
		if h.Name, err = readName(r, nameSize); err != nil {
			return nil, fmt.Errorf("object header %d: %w", len(headers), err)
		}
		if h.Name == "" {
			return nil, fmt.Errorf("%w: object header %d has an empty name", binary.ErrInvalidData, len(headers))
		}

		if h.MetadataIndex, err = r.ReadUint8(); err != nil {
			return nil, fmt.Errorf("object header %q: %w", h.Name, err)
		}
		if h.MetadataIndex == InlineMetadata {
			size, err := r.ReadUint32()
			if err != nil {
				return nil, fmt.Errorf("object header %q: %w", h.Name, err)
			}
			if h.Metadata, err = readName(r, size); err != nil {
				return nil, fmt.Errorf("object header %q: %w", h.Name, err)
			}
		}
		headers = append(headers, h)
	}
	return headers, nil
}
