package alembic

import (
	"fmt"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/robert-malhotra/go-alembic/internal/binary"
	"github.com/robert-malhotra/go-alembic/internal/dtype"
	"github.com/robert-malhotra/go-alembic/internal/ogawa"
)

// DigestSize is the length of the digest leading every stored sample.
const DigestSize = 16

// Digest identifies the contents of a stored sample.
type Digest [DigestSize]byte

// Dimensions holds the extent of an array sample along each axis.
type Dimensions []uint64

// NumElements returns the product of the extents.
func (d Dimensions) NumElements() uint64 {
	return lo.Reduce(d, func(acc uint64, v uint64, _ int) uint64 { return acc * v }, uint64(1))
}

// sampled holds what scalar and array properties share.
type sampled struct {
	archive *Archive
	header  *PropertyHeader
	group   *ogawa.Group
	path    string
	ts      *TimeSampling
}

func newSampled(a *Archive, g *ogawa.Group, h *PropertyHeader, path string) (*sampled, error) {
	ts, err := a.TimeSampling(h.TimeSamplingIndex)
	if err != nil {
		return nil, fmt.Errorf("property %s: %w", path, err)
	}

	want := h.msg.StoredSamples()
	if h.Kind == KindArray {
		want *= 2
	}
	if g.Len() < want {
		return nil, fmt.Errorf("%w: property %s stores %d children, want %d",
			ErrInvalidData, path, g.Len(), want)
	}

	return &sampled{
		archive: a,
		header:  h,
		group:   g,
		path:    path,
		ts:      ts,
	}, nil
}

func (s *sampled) isProperty() {}

// Header returns the property header.
func (s *sampled) Header() *PropertyHeader { return s.header }

// Name returns the property name.
func (s *sampled) Name() string { return s.header.Name }

// Metadata returns the property metadata.
func (s *sampled) Metadata() Metadata { return s.header.Metadata }

// Kind returns the structural kind.
func (s *sampled) Kind() PropertyKind { return s.header.Kind }

// Path returns the property path.
func (s *sampled) Path() string { return s.path }

// DataType returns the element type shared by every sample.
func (s *sampled) DataType() DataType { return s.header.DataType }

// SampleCount returns the number of logical samples.
func (s *sampled) SampleCount() int { return s.header.SampleCount }

// IsConstant reports whether every sample holds the same value.
func (s *sampled) IsConstant() bool { return s.header.IsConstant() }

// TimeSampling returns the time sampling of the property.
func (s *sampled) TimeSampling() *TimeSampling { return s.ts }

// SampleTime returns the time of sample i.
func (s *sampled) SampleTime(i int) (float64, error) {
	if err := s.checkIndex(i); err != nil {
		return 0, err
	}
	return s.ts.SampleTime(i)
}

func (s *sampled) checkIndex(i int) error {
	if i < 0 || i >= s.header.SampleCount {
		return fmt.Errorf("%w: sample %d of %s with %d samples",
			ErrSampleOutOfRange, i, s.path, s.header.SampleCount)
	}
	return nil
}

// slot maps logical sample i to its stored slot.
func (s *sampled) slot(i int) (int, error) {
	if err := s.archive.checkOpen(); err != nil {
		return 0, err
	}
	if err := s.checkIndex(i); err != nil {
		return 0, err
	}
	return s.header.msg.StoredIndex(uint32(i)), nil
}

// split separates the digest from a stored sample.
func (s *sampled) split(data []byte) (Digest, []byte, error) {
	var d Digest
	if len(data) < DigestSize {
		return d, nil, fmt.Errorf("%w: sample of %s is %d bytes, shorter than its digest",
			ErrInvalidData, s.path, len(data))
	}
	copy(d[:], data)
	return d, data[DigestSize:], nil
}

func (s *sampled) decodeStrings(payload []byte) ([]string, error) {
	var out []string
	var err error
	switch s.header.DataType.Pod {
	case dtype.String:
		out, err = dtype.DecodeStrings(payload)
	case dtype.WideString:
		out, err = dtype.DecodeWideStrings(payload)
	default:
		return nil, fmt.Errorf("%w: %s of %s is not a string type", ErrUnexpectedDataType, s.header.DataType, s.path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	return out, nil
}

func (s *sampled) decodeFloat64s(payload []byte) ([]float64, error) {
	if !s.header.DataType.Pod.IsNumeric() && s.header.DataType.Pod != dtype.Bool {
		return nil, fmt.Errorf("%w: %s of %s is not numeric", ErrUnexpectedDataType, s.header.DataType, s.path)
	}
	return dtype.ToFloat64(s.header.DataType.Pod, payload)
}

// ScalarProperty is a property holding a fixed number of elements per sample.
type ScalarProperty struct {
	*sampled
}

func (p *ScalarProperty) read(i int) (Digest, []byte, error) {
	k, err := p.slot(i)
	if err != nil {
		return Digest{}, nil, err
	}
	data, err := p.archive.store.ChildData(p.group, k)
	if err != nil {
		return Digest{}, nil, fmt.Errorf("reading sample %d of %s: %w", i, p.path, err)
	}
	d, payload, err := p.split(data)
	if err != nil {
		return d, nil, err
	}
	if size := p.header.DataType.ElementSize(); len(payload) < size {
		return d, nil, fmt.Errorf("%w: sample %d of %s is %d bytes, want %d",
			ErrInvalidData, i, p.path, len(payload), size)
	}
	return d, payload, nil
}

// ReadSample returns the raw bytes of sample i without its digest. The
// returned slice must not be modified.
func (p *ScalarProperty) ReadSample(i int) ([]byte, error) {
	_, payload, err := p.read(i)
	return payload, err
}

// SampleDigest returns the stored digest of sample i. It is not verified.
func (p *ScalarProperty) SampleDigest(i int) (Digest, error) {
	d, _, err := p.read(i)
	return d, err
}

// Strings decodes sample i of a string property.
func (p *ScalarProperty) Strings(i int) ([]string, error) {
	_, payload, err := p.read(i)
	if err != nil {
		return nil, err
	}
	return p.decodeStrings(payload)
}

// Float64s decodes sample i of a numeric property, widening every element.
func (p *ScalarProperty) Float64s(i int) ([]float64, error) {
	_, payload, err := p.read(i)
	if err != nil {
		return nil, err
	}
	return p.decodeFloat64s(payload[:p.header.DataType.ElementSize()])
}

// ArrayProperty is a property holding a variable number of elements per sample.
type ArrayProperty struct {
	*sampled
}

func (p *ArrayProperty) read(i int) (int, Digest, []byte, error) {
	k, err := p.slot(i)
	if err != nil {
		return 0, Digest{}, nil, err
	}
	data, err := p.archive.store.ChildData(p.group, 2*k)
	if err != nil {
		return k, Digest{}, nil, fmt.Errorf("reading sample %d of %s: %w", i, p.path, err)
	}
	if len(data) == 0 {
		return k, Digest{}, []byte{}, nil
	}
	d, payload, err := p.split(data)
	return k, d, payload, err
}

// ReadSample returns the raw bytes of sample i without its digest. An empty
// array yields an empty slice. The returned slice must not be modified.
func (p *ArrayProperty) ReadSample(i int) ([]byte, error) {
	_, _, payload, err := p.read(i)
	return payload, err
}

// SampleDigest returns the stored digest of sample i. It is not verified.
func (p *ArrayProperty) SampleDigest(i int) (Digest, error) {
	_, d, _, err := p.read(i)
	return d, err
}

// Dimensions returns the shape of sample i. Samples stored without explicit
// dimensions are one-dimensional.
func (p *ArrayProperty) Dimensions(i int) (Dimensions, error) {
	k, _, payload, err := p.read(i)
	if err != nil {
		return nil, err
	}
	return p.dimensions(i, k, payload)
}

func (p *ArrayProperty) dimensions(i, k int, payload []byte) (Dimensions, error) {
	raw, err := p.archive.store.ChildData(p.group, 2*k+1)
	if err != nil {
		return nil, fmt.Errorf("reading dimensions of sample %d of %s: %w", i, p.path, err)
	}

	if len(raw) > 0 {
		if len(raw)%8 != 0 {
			return nil, fmt.Errorf("%w: dimensions of sample %d of %s are %d bytes",
				ErrInvalidData, i, p.path, len(raw))
		}
		r := binary.FromBytes(raw)
		dims := make(Dimensions, len(raw)/8)
		for j := range dims {
			if dims[j], err = r.ReadUint64(); err != nil {
				return nil, err
			}
		}
		return dims, nil
	}

	if p.header.DataType.Pod.IsString() {
		strs, err := p.decodeStrings(payload)
		if err != nil {
			return nil, err
		}
		return Dimensions{uint64(len(strs))}, nil
	}

	size := p.header.DataType.ElementSize()
	if size == 0 {
		return nil, fmt.Errorf("%w: %s of %s has zero extent", ErrInvalidData, p.header.DataType, p.path)
	}
	if len(payload)%size != 0 {
		p.archive.logger.Warn("array sample size is not a multiple of the element size",
			zap.String("property", p.path),
			zap.Int("sample", i),
			zap.Int("bytes", len(payload)),
			zap.Int("elementSize", size))
	}
	return Dimensions{uint64(len(payload) / size)}, nil
}

// ElementCount returns the number of elements in sample i.
func (p *ArrayProperty) ElementCount(i int) (int, error) {
	dims, err := p.Dimensions(i)
	if err != nil {
		return 0, err
	}
	return int(dims.NumElements()), nil
}

// Strings decodes sample i of a string array.
func (p *ArrayProperty) Strings(i int) ([]string, error) {
	_, _, payload, err := p.read(i)
	if err != nil {
		return nil, err
	}
	return p.decodeStrings(payload)
}

// Float64s decodes sample i of a numeric array, widening every element.
func (p *ArrayProperty) Float64s(i int) ([]float64, error) {
	_, _, payload, err := p.read(i)
	if err != nil {
		return nil, err
	}
	return p.decodeFloat64s(payload)
}
