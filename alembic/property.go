package alembic

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/robert-malhotra/go-alembic/internal/dtype"
	"github.com/robert-malhotra/go-alembic/internal/message"
	"github.com/robert-malhotra/go-alembic/internal/ogawa"
)

// PropertyKind is the structural kind of a property.
type PropertyKind = message.PropertyKind

const (
	KindCompound = message.KindCompound
	KindScalar   = message.KindScalar
	KindArray    = message.KindArray
)

// DataType describes the element type of a scalar or array property.
type DataType = dtype.DataType

// PropertyHeader describes a property without reading its samples.
type PropertyHeader struct {
	Name     string
	Kind     PropertyKind
	DataType DataType
	Metadata Metadata

	// TimeSamplingIndex indexes the archive time samplings.
	TimeSamplingIndex int
	// SampleCount is the number of logical samples.
	SampleCount int
	// FirstChangedIndex and LastChangedIndex bound the samples stored on disk.
	// Both are zero for constant properties.
	FirstChangedIndex int
	LastChangedIndex  int
	Homogeneous       bool

	msg message.PropertyHeader
}

// IsConstant reports whether every sample holds the same value.
func (h *PropertyHeader) IsConstant() bool {
	return h.msg.IsConstant()
}

// Property is one of *CompoundProperty, *ScalarProperty or *ArrayProperty.
type Property interface {
	Header() *PropertyHeader
	Name() string
	Metadata() Metadata
	Kind() PropertyKind
	// Path returns the object path and property names joined as obj@a/b.
	Path() string

	isProperty()
}

// CompoundProperty is an ordered, named collection of sub-properties.
type CompoundProperty struct {
	archive *Archive
	header  *PropertyHeader
	group   *ogawa.Group
	path    string
	headers []*PropertyHeader
	byName  map[string]int
}

func newCompoundProperty(a *Archive, g *ogawa.Group, h *PropertyHeader, path string) (*CompoundProperty, error) {
	c := &CompoundProperty{
		archive: a,
		header:  h,
		group:   g,
		path:    path,
	}
	if g.Len() == 0 {
		return c, nil
	}

	last := g.Len() - 1
	if !g.IsData(last) {
		return nil, fmt.Errorf("%w: compound %s has no property headers", ErrInvalidData, path)
	}
	data, err := a.store.ChildData(g, last)
	if err != nil {
		return nil, fmt.Errorf("reading property headers of %s: %w", path, err)
	}
	msgs, err := message.ParsePropertyHeaders(data)
	if err != nil {
		return nil, fmt.Errorf("decoding property headers of %s: %w", path, err)
	}
	if len(msgs) != last {
		return nil, fmt.Errorf("%w: compound %s lists %d properties but stores %d",
			ErrInvalidData, path, len(msgs), last)
	}

	c.headers = make([]*PropertyHeader, len(msgs))
	c.byName = make(map[string]int, len(msgs))
	for i, m := range msgs {
		md, err := a.metadataAt(m.MetadataIndex, m.Metadata)
		if err != nil {
			return nil, fmt.Errorf("metadata of property %q in %s: %w", m.Name, path, err)
		}
		if _, dup := c.byName[m.Name]; dup {
			return nil, fmt.Errorf("%w: compound %s has two properties named %q", ErrInvalidData, path, m.Name)
		}
		c.headers[i] = &PropertyHeader{
			Name:              m.Name,
			Kind:              m.Kind,
			DataType:          m.DataType,
			Metadata:          md,
			TimeSamplingIndex: int(m.TimeSamplingIndex),
			SampleCount:       int(m.NextSampleIndex),
			FirstChangedIndex: int(m.FirstChangedIndex),
			LastChangedIndex:  int(m.LastChangedIndex),
			Homogeneous:       m.Homogeneous,
			msg:               m,
		}
		c.byName[m.Name] = i
	}
	return c, nil
}

// NewCompoundProperty reads the compound sub-property name of parent.
func NewCompoundProperty(parent *CompoundProperty, name string) (*CompoundProperty, error) {
	return parent.Compound(name)
}

func (c *CompoundProperty) isProperty() {}

// Header returns the property header. The root compound of an object has an
// empty name.
func (c *CompoundProperty) Header() *PropertyHeader { return c.header }

// Name returns the property name.
func (c *CompoundProperty) Name() string { return c.header.Name }

// Metadata returns the property metadata.
func (c *CompoundProperty) Metadata() Metadata { return c.header.Metadata }

// Kind returns KindCompound.
func (c *CompoundProperty) Kind() PropertyKind { return KindCompound }

// Path returns the property path.
func (c *CompoundProperty) Path() string { return c.path }

// NumProperties returns the number of sub-properties.
func (c *CompoundProperty) NumProperties() int {
	return len(c.headers)
}

// PropertyHeaders returns the headers of every sub-property in stored order.
func (c *CompoundProperty) PropertyHeaders() []*PropertyHeader {
	return c.headers
}

// PropertyNames returns the sub-property names in stored order.
func (c *CompoundProperty) PropertyNames() []string {
	return lo.Map(c.headers, func(h *PropertyHeader, _ int) string { return h.Name })
}

// PropertyHeader returns the header of sub-property i.
func (c *CompoundProperty) PropertyHeader(i int) (*PropertyHeader, error) {
	if i < 0 || i >= len(c.headers) {
		return nil, fmt.Errorf("%w: property %d of %s with %d properties",
			ErrPropertyNotFound, i, c.path, len(c.headers))
	}
	return c.headers[i], nil
}

// Find returns the index of the sub-property with the given name.
func (c *CompoundProperty) Find(name string) (int, error) {
	i, ok := c.byName[name]
	if !ok {
		return -1, fmt.Errorf("%w: %q in %s", ErrPropertyNotFound, name, c.path)
	}
	return i, nil
}

// Has reports whether a sub-property with the given name exists.
func (c *CompoundProperty) Has(name string) bool {
	_, ok := c.byName[name]
	return ok
}

// Property reads the sub-property with the given name.
func (c *CompoundProperty) Property(name string) (Property, error) {
	i, err := c.Find(name)
	if err != nil {
		return nil, err
	}
	return c.PropertyAt(i)
}

// PropertyAt reads sub-property i.
func (c *CompoundProperty) PropertyAt(i int) (Property, error) {
	if err := c.archive.checkOpen(); err != nil {
		return nil, err
	}
	h, err := c.PropertyHeader(i)
	if err != nil {
		return nil, err
	}
	ref, err := c.group.Child(i)
	if err != nil {
		return nil, err
	}
	if !ref.IsGroup() {
		return nil, fmt.Errorf("%w: property %q in %s is %s", ErrInvalidData, h.Name, c.path, ref)
	}
	g, err := c.archive.store.ResolveGroup(ref)
	if err != nil {
		return nil, fmt.Errorf("reading property %q in %s: %w", h.Name, c.path, err)
	}

	path := joinPropertyPath(c.path, h.Name)
	switch h.Kind {
	case KindCompound:
		sub, err := newCompoundProperty(c.archive, g, h, path)
		if err != nil {
			return nil, err
		}
		return sub, nil
	case KindScalar:
		s, err := newSampled(c.archive, g, h, path)
		if err != nil {
			return nil, err
		}
		return &ScalarProperty{sampled: s}, nil
	default:
		s, err := newSampled(c.archive, g, h, path)
		if err != nil {
			return nil, err
		}
		return &ArrayProperty{sampled: s}, nil
	}
}

// lookup finds name and checks its kind before reading it.
func (c *CompoundProperty) lookup(name string, kind PropertyKind) (Property, error) {
	i, err := c.Find(name)
	if err != nil {
		return nil, err
	}
	if k := c.headers[i].Kind; k != kind {
		return nil, fmt.Errorf("%w: %q in %s is %s, not %s", ErrUnexpectedPropertyType, name, c.path, k, kind)
	}
	return c.PropertyAt(i)
}

// Compound reads the compound sub-property with the given name. It fails
// with ErrPropertyNotFound if no such property exists, and with
// ErrUnexpectedPropertyType if it is not a compound.
func (c *CompoundProperty) Compound(name string) (*CompoundProperty, error) {
	p, err := c.lookup(name, KindCompound)
	if err != nil {
		return nil, err
	}
	return p.(*CompoundProperty), nil
}

// Scalar reads the scalar sub-property with the given name.
func (c *CompoundProperty) Scalar(name string) (*ScalarProperty, error) {
	p, err := c.lookup(name, KindScalar)
	if err != nil {
		return nil, err
	}
	return p.(*ScalarProperty), nil
}

// Array reads the array sub-property with the given name.
func (c *CompoundProperty) Array(name string) (*ArrayProperty, error) {
	p, err := c.lookup(name, KindArray)
	if err != nil {
		return nil, err
	}
	return p.(*ArrayProperty), nil
}
