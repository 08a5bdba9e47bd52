package geom

import (
	"fmt"

	"github.com/robert-malhotra/go-alembic/alembic"
)

// GeomBase holds the members every geometry schema shares.
type GeomBase struct {
	// SelfBounds bounds the geometry of the object itself.
	SelfBounds *alembic.TypedScalar[[6]float64]

	// ChildBounds bounds the object's descendants. Nil when absent.
	ChildBounds *alembic.TypedScalar[[6]float64]

	// GeomParams holds arbitrary geometry parameters. Nil when absent.
	GeomParams *alembic.CompoundProperty

	// UserProperties holds application defined values. Nil when absent.
	UserProperties *alembic.CompoundProperty
}

// NewGeomBase reads the shared members from a schema compound. Reading
// .selfBnds must succeed; the optional members are nil when they cannot be
// read.
func NewGeomBase(props *alembic.CompoundProperty) (*GeomBase, error) {
	self, err := alembic.NewTypedScalar[[6]float64](props, ".selfBnds")
	if err != nil {
		return nil, err
	}

	g := &GeomBase{SelfBounds: self}
	if c, err := alembic.NewTypedScalar[[6]float64](props, ".childBnds"); err == nil {
		g.ChildBounds = c
	}
	if c, err := props.Compound(".geomParams"); err == nil {
		g.GeomParams = c
	} else if c, err := props.Compound(".arbGeomParams"); err == nil {
		g.GeomParams = c
	}
	if c, err := props.Compound(".userProperties"); err == nil {
		g.UserProperties = c
	}
	return g, nil
}

// Bounds returns the self bounds at sample i. Indices past the last stored
// sample read the last one.
func (g *GeomBase) Bounds(i int) (Box3, error) {
	v, err := g.SelfBounds.Get(clampSample(i, g.SelfBounds.SampleCount()))
	if err != nil {
		return Box3{}, err
	}
	return BoxFromArray(v), nil
}

// ChildBoundsAt returns the child bounds at sample i, or an empty box when
// the schema has none.
func (g *GeomBase) ChildBoundsAt(i int) (Box3, error) {
	if g.ChildBounds == nil {
		return EmptyBox(), nil
	}
	v, err := g.ChildBounds.Get(clampSample(i, g.ChildBounds.SampleCount()))
	if err != nil {
		return Box3{}, err
	}
	return BoxFromArray(v), nil
}

// clampSample maps i onto a property with count samples, repeating the last
// sample of shorter properties.
func clampSample(i, count int) int {
	if count > 0 && i >= count {
		return count - 1
	}
	return i
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", alembic.ErrInvalidData, fmt.Sprintf(format, args...))
}
