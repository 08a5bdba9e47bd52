package ogawa

import (
	"fmt"

	"github.com/robert-malhotra/go-alembic/internal/binary"
)

// Group is an ordered, fixed-length list of child references.
type Group struct {
	ref      Ref
	children []Ref
}

// Ref returns the reference the group was resolved from.
func (g *Group) Ref() Ref {
	return g.ref
}

// Len returns the number of children.
func (g *Group) Len() int {
	return len(g.children)
}

// Child returns the reference of child i.
func (g *Group) Child(i int) (Ref, error) {
	if i < 0 || i >= len(g.children) {
		return 0, fmt.Errorf("%w: child %d of %s with %d children",
			binary.ErrInvalidData, i, g.ref, len(g.children))
	}
	return g.children[i], nil
}

// IsGroup reports whether child i exists and is a group.
func (g *Group) IsGroup(i int) bool {
	ref, err := g.Child(i)
	return err == nil && ref.IsGroup()
}

// IsData reports whether child i exists and is a data chunk.
func (g *Group) IsData(i int) bool {
	ref, err := g.Child(i)
	return err == nil && ref.IsData()
}

// IsEmpty reports whether child i exists and is an empty reference.
func (g *Group) IsEmpty(i int) bool {
	ref, err := g.Child(i)
	return err == nil && ref.IsEmpty()
}

// Children returns a copy of the child references.
func (g *Group) Children() []Ref {
	out := make([]Ref, len(g.children))
	copy(out, g.children)
	return out
}
