package alembic

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"

	"github.com/robert-malhotra/go-alembic/internal/binary"
)

// Metadata is a string to string mapping attached to archives, objects and
// properties. The zero value is the empty mapping.
type Metadata struct {
	pairs map[string]string
}

// ParseMetadata parses a serialized `key=value;key=value` list. Empty
// segments are skipped. A segment without '=' is a format error. The value
// is everything after the first '='.
func ParseMetadata(s string) (Metadata, error) {
	var m Metadata
	for _, seg := range strings.Split(s, ";") {
		if seg == "" {
			continue
		}
		key, value, ok := strings.Cut(seg, "=")
		if !ok {
			return Metadata{}, fmt.Errorf("%w: metadata segment %q has no '='", ErrInvalidData, seg)
		}
		if m.pairs == nil {
			m.pairs = make(map[string]string)
		}
		m.pairs[key] = value
	}
	return m, nil
}

// NewMetadata builds a mapping from pairs.
func NewMetadata(pairs map[string]string) Metadata {
	if len(pairs) == 0 {
		return Metadata{}
	}
	return Metadata{pairs: maps.Clone(pairs)}
}

// Get returns the value for key.
func (m Metadata) Get(key string) (string, bool) {
	v, ok := m.pairs[key]
	return v, ok
}

// Len returns the number of pairs.
func (m Metadata) Len() int {
	return len(m.pairs)
}

// Keys returns the keys in sorted order.
func (m Metadata) Keys() []string {
	keys := lo.Keys(m.pairs)
	slices.Sort(keys)
	return keys
}

// Equal reports whether both mappings hold the same pairs.
func (m Metadata) Equal(other Metadata) bool {
	return maps.Equal(m.pairs, other.pairs)
}

// Serialize renders the mapping as `key=value;...` with keys sorted.
func (m Metadata) Serialize() string {
	return strings.Join(lo.Map(m.Keys(), func(k string, _ int) string {
		return k + "=" + m.pairs[k]
	}), ";")
}

func (m Metadata) String() string {
	return m.Serialize()
}

// ReadIndexedMetadata decodes the archive metadata table. Entry 0 is always
// the empty mapping. Each following entry is a one-byte length and that many
// bytes of serialized metadata. Any failure discards the whole table.
func ReadIndexedMetadata(b []byte) ([]Metadata, error) {
	table := []Metadata{{}}
	r := binary.FromBytes(b)

	for r.Remaining() > 0 {
		n, err := r.ReadUint8()
		if err != nil {
			return nil, err
		}
		raw, err := r.ReadBytes(int(n))
		if err != nil {
			return nil, fmt.Errorf("metadata entry %d: %w", len(table), err)
		}
		if !utf8.Valid(raw) {
			return nil, fmt.Errorf("%w: metadata entry %d is not valid UTF-8", ErrInvalidData, len(table))
		}
		m, err := ParseMetadata(string(raw))
		if err != nil {
			return nil, fmt.Errorf("metadata entry %d: %w", len(table), err)
		}
		table = append(table, m)
	}
	return table, nil
}
