package message

import (
	"fmt"

	"github.com/robert-malhotra/go-alembic/internal/binary"
	"github.com/robert-malhotra/go-alembic/internal/dtype"
)

// PropertyKind is the structural kind of a property.
type PropertyKind uint8

const (
	KindCompound PropertyKind = 0
	KindScalar   PropertyKind = 1
	KindArray    PropertyKind = 2
)

func (k PropertyKind) String() string {
	switch k {
	case KindCompound:
		return "compound"
	case KindScalar:
		return "scalar"
	case KindArray:
		return "array"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// PropertyHeader describes one sub-property of a compound property.
type PropertyHeader struct {
	Kind     PropertyKind
	Name     string
	DataType dtype.DataType

	// Homogeneous is set on arrays whose samples all have the same length.
	Homogeneous bool

	// MetadataIndex indexes the archive metadata table, or is InlineMetadata.
	MetadataIndex uint8
	// Metadata holds the serialized metadata when MetadataIndex is InlineMetadata.
	Metadata string

	// NextSampleIndex is the number of logical samples.
	NextSampleIndex   uint32
	FirstChangedIndex uint32
	LastChangedIndex  uint32
	TimeSamplingIndex uint32
}

// IsConstant reports whether every logical sample maps to the same stored sample.
func (h *PropertyHeader) IsConstant() bool {
	return h.FirstChangedIndex == 0 && h.LastChangedIndex == 0
}

// StoredSamples returns how many distinct samples are stored on disk.
func (h *PropertyHeader) StoredSamples() int {
	if h.Kind == KindCompound || h.NextSampleIndex == 0 {
		return 0
	}
	if h.IsConstant() {
		return 1
	}
	return int(h.LastChangedIndex) - int(h.FirstChangedIndex) + 2
}

// StoredIndex maps a logical sample index to the stored sample holding its value.
// Samples before the first change share slot 0; samples from the last change
// on share the final slot.
func (h *PropertyHeader) StoredIndex(i uint32) int {
	if i < h.FirstChangedIndex || h.IsConstant() {
		return 0
	}
	if i >= h.LastChangedIndex {
		return int(h.LastChangedIndex) - int(h.FirstChangedIndex) + 1
	}
	return int(i) - int(h.FirstChangedIndex) + 1
}

// ParsePropertyHeaders decodes the property headers chunk of a compound property.
func ParsePropertyHeaders(data []byte) ([]PropertyHeader, error) {
	r := binary.FromBytes(data)
	var headers []PropertyHeader

	for r.Remaining() > 0 {
		h, err := parsePropertyHeader(r)
		if err != nil {
			return nil, fmt.Errorf("property header %d: %w", len(headers), err)
		}
		headers = append(headers, h)
	}
	return headers, nil
}

func parsePropertyHeader(r *binary.Reader) (PropertyHeader, error) {
	var h PropertyHeader

	info, err := r.ReadUint32()
	if err != nil {
		return h, err
	}

	switch bits(info, 0, 2) {
	case 0:
		h.Kind = KindCompound
	case 1:
		h.Kind = KindScalar
	default:
		h.Kind = KindArray
	}
	hint := bits(info, 2, 4)
	h.MetadataIndex = uint8(bits(info, 20, 28))

	if h.Kind != KindCompound {
		pod, err := dtype.ParsePod(uint8(bits(info, 4, 8)))
		if err != nil {
			return h, fmt.Errorf("%w: %v", binary.ErrInvalidData, err)
		}
		h.DataType = dtype.DataType{Pod: pod, Extent: uint8(bits(info, 12, 20))}
		h.Homogeneous = bits(info, 10, 11) == 1

		if h.NextSampleIndex, err = readSized(r, hint); err != nil {
			return h, err
		}

		switch {
		case bits(info, 9, 10) == 1:
			if h.FirstChangedIndex, err = readSized(r, hint); err != nil {
				return h, err
			}
			if h.LastChangedIndex, err = readSized(r, hint); err != nil {
				return h, err
			}
		case bits(info, 11, 12) == 1 || h.NextSampleIndex == 0:
			h.FirstChangedIndex = 0
			h.LastChangedIndex = 0
		default:
			h.FirstChangedIndex = 1
			h.LastChangedIndex = h.NextSampleIndex - 1
		}

		if bits(info, 8, 9) == 1 {
			if h.TimeSamplingIndex, err = readSized(r, hint); err != nil {
				return h, err
			}
		}

		if !h.IsConstant() && (h.LastChangedIndex >= h.NextSampleIndex || h.FirstChangedIndex > h.LastChangedIndex+1) {
			return h, fmt.Errorf("%w: changed range [%d, %d] outside %d samples",
				binary.ErrInvalidData, h.FirstChangedIndex, h.LastChangedIndex, h.NextSampleIndex)
		}
	}

	nameSize, err := readSized(r, hint)
	if err != nil {
		return h, err
	}
	if h.Name, err = readName(r, nameSize); err != nil {
		return h, err
	}
	if h.Name == "" {
		return h, fmt.Errorf("%w: property header has an empty name", binary.ErrInvalidData)
	}

	if h.MetadataIndex == InlineMetadata {
		size, err := readSized(r, hint)
		if err != nil {
			return h, err
		}
		if h.Metadata, err = readName(r, size); err != nil {
			return h, err
		}
	}
	return h, nil
}
