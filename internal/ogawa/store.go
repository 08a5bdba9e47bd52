package ogawa

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/robert-malhotra/go-alembic/internal/binary"
)

// Store resolves references against an archive's byte source.
type Store struct {
	r      *binary.Reader
	logger *zap.Logger
	cache  bool

	mu     sync.Mutex
	groups map[uint64]*Group
	data   map[uint64][]byte
}

// NewStore creates a store over r. When cache is set, resolved nodes are
// memoized by offset.
func NewStore(r *binary.Reader, logger *zap.Logger, cache bool) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		r:      r,
		logger: logger,
		cache:  cache,
		groups: make(map[uint64]*Group),
		data:   make(map[uint64][]byte),
	}
}

// ResolveGroup reads the group behind ref.
func (s *Store) ResolveGroup(ref Ref) (*Group, error) {
	if ref == EmptyRef {
		return &Group{ref: ref}, nil
	}
	if !ref.IsGroup() {
		return nil, fmt.Errorf("%w: %s is not a group", binary.ErrInvalidData, ref)
	}
	if ref.IsEmpty() {
		return &Group{ref: ref}, nil
	}

	off := ref.Offset()
	if g, ok := s.cachedGroup(off); ok {
		return g, nil
	}

	gr := s.r.At(int64(off))
	count, err := gr.ReadUint64()
	if err != nil {
		return nil, fmt.Errorf("reading group at %d: %w", off, err)
	}
	if count > uint64(gr.Remaining())/8 {
		return nil, fmt.Errorf("%w: group at %d claims %d children past end of archive",
			binary.ErrInvalidData, off, count)
	}

	raw, err := gr.ReadBytes(int(count) * 8)
	if err != nil {
		return nil, fmt.Errorf("reading group at %d: %w", off, err)
	}
	children := make([]Ref, count)
	cr := binary.FromBytes(raw)
	for i := range children {
		v, err := cr.ReadUint64()
		if err != nil {
			return nil, err
		}
		children[i] = Ref(v)
	}

	g := &Group{ref: ref, children: children}
	s.logger.Debug("resolved group", zap.Uint64("offset", off), zap.Int("children", len(children)))
	if s.cache {
		s.mu.Lock()
		s.groups[off] = g
		s.mu.Unlock()
	}
	return g, nil
}

// ResolveData reads the bytes of the data chunk behind ref.
// The returned slice may be shared and must not be modified.
func (s *Store) ResolveData(ref Ref) ([]byte, error) {
	if !ref.IsData() {
		return nil, fmt.Errorf("%w: %s is not a data chunk", binary.ErrInvalidData, ref)
	}
	if ref.IsEmpty() {
		return []byte{}, nil
	}

	off := ref.Offset()
	if b, ok := s.cachedData(off); ok {
		return b, nil
	}

	dr := s.r.At(int64(off))
	size, err := dr.ReadUint64()
	if err != nil {
		return nil, fmt.Errorf("reading data at %d: %w", off, err)
	}
	if size > uint64(dr.Remaining()) {
		return nil, fmt.Errorf("%w: data at %d claims %d bytes past end of archive",
			binary.ErrInvalidData, off, size)
	}

	b, err := dr.ReadBytes(int(size))
	if err != nil {
		return nil, fmt.Errorf("reading data at %d: %w", off, err)
	}
	if b == nil {
		b = []byte{}
	}
	if s.cache {
		s.mu.Lock()
		s.data[off] = b
		s.mu.Unlock()
	}
	s.logger.Debug("resolved data", zap.Uint64("offset", off), zap.Int("bytes", len(b)))
	return b, nil
}

// ChildGroup resolves child i of g as a group.
func (s *Store) ChildGroup(g *Group, i int) (*Group, error) {
	ref, err := g.Child(i)
	if err != nil {
		return nil, err
	}
	return s.ResolveGroup(ref)
}

// ChildData resolves child i of g as a data chunk.
func (s *Store) ChildData(g *Group, i int) ([]byte, error) {
	ref, err := g.Child(i)
	if err != nil {
		return nil, err
	}
	return s.ResolveData(ref)
}

// CacheLen returns the number of memoized nodes.
func (s *Store) CacheLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.groups) + len(s.data)
}

// Reset drops every memoized node.
func (s *Store) Reset() {
	s.mu.Lock()
	s.groups = make(map[uint64]*Group)
	s.data = make(map[uint64][]byte)
	s.mu.Unlock()
}

func (s *Store) cachedGroup(off uint64) (*Group, bool) {
	if !s.cache {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.groups[off]
	return g, ok
}

func (s *Store) cachedData(off uint64) ([]byte, bool) {
	if !s.cache {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.data[off]
	return b, ok
}
