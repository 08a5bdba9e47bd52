package geom

import (
	"fmt"

	"github.com/robert-malhotra/go-alembic/alembic"
)

// GeomParam is a geometry parameter such as uv or N. It is stored either as
// a plain array of values or as a compound holding .vals and an index array
// .indices into them.
type GeomParam[T any] struct {
	name    string
	scope   GeometryScope
	values  *alembic.TypedArray[T]
	indices *alembic.TypedArray[uint32]
}

// NewGeomParam reads the geometry parameter name of parent.
func NewGeomParam[T any](parent *alembic.CompoundProperty, name string) (*GeomParam[T], error) {
	p, err := parent.Property(name)
	if err != nil {
		return nil, err
	}

	switch p := p.(type) {
	case *alembic.ArrayProperty:
		vals, err := alembic.AsTypedArray[T](p)
		if err != nil {
			return nil, err
		}
		return &GeomParam[T]{name: name, scope: ScopeOf(p.Metadata()), values: vals}, nil

	case *alembic.CompoundProperty:
		vals, err := alembic.NewTypedArray[T](p, ".vals")
		if err != nil {
			return nil, fmt.Errorf("geometry parameter %s: %w", p.Path(), err)
		}
		indices, err := alembic.NewTypedArray[uint32](p, ".indices")
		if err != nil {
			return nil, fmt.Errorf("geometry parameter %s: %w", p.Path(), err)
		}
		scope := ScopeOf(p.Metadata())
		if scope == ScopeUnknown {
			scope = ScopeOf(vals.Metadata())
		}
		return &GeomParam[T]{name: name, scope: scope, values: vals, indices: indices}, nil

	default:
		return nil, fmt.Errorf("%w: geometry parameter %s is %s",
			alembic.ErrUnexpectedPropertyType, p.Path(), p.Kind())
	}
}

// Name returns the parameter name.
func (g *GeomParam[T]) Name() string { return g.name }

// Scope returns how values map onto the primitive.
func (g *GeomParam[T]) Scope() GeometryScope { return g.scope }

// IsIndexed reports whether values are addressed through an index array.
func (g *GeomParam[T]) IsIndexed() bool { return g.indices != nil }

// SampleCount returns the number of samples of the values.
func (g *GeomParam[T]) SampleCount() int { return g.values.SampleCount() }

// IsConstant reports whether every sample of the values is the same.
func (g *GeomParam[T]) IsConstant() bool { return g.values.IsConstant() }

// TimeSampling returns the time sampling of the values.
func (g *GeomParam[T]) TimeSampling() *alembic.TimeSampling { return g.values.TimeSampling() }

// Values returns the stored values of sample i without resolving indices.
func (g *GeomParam[T]) Values(i int) ([]T, error) {
	return g.values.Values(i)
}

// Indices returns the index array of sample i, or nil for unindexed
// parameters.
func (g *GeomParam[T]) Indices(i int) ([]uint32, error) {
	if g.indices == nil {
		return nil, nil
	}
	return g.indices.Values(clampSample(i, g.indices.SampleCount()))
}

// Expand returns sample i with indices resolved, one value per index.
func (g *GeomParam[T]) Expand(i int) ([]T, error) {
	vals, err := g.values.Values(i)
	if err != nil || g.indices == nil {
		return vals, err
	}

	idx, err := g.Indices(i)
	if err != nil {
		return nil, err
	}
	out := make([]T, len(idx))
	for j, k := range idx {
		if int(k) >= len(vals) {
			return nil, invalid("index %d of %s is %d, only %d values", j, g.name, k, len(vals))
		}
		out[j] = vals[k]
	}
	return out, nil
}
