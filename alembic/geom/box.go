package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"golang.org/x/exp/constraints"
)

// Box3 is an axis-aligned bounding box.
type Box3 struct {
	Min r3.Vector
	Max r3.Vector
}

// EmptyBox returns a box containing nothing. Extending it with a point
// yields a box around that point.
func EmptyBox() Box3 {
	inf := math.Inf(1)
	return Box3{
		Min: r3.Vector{X: inf, Y: inf, Z: inf},
		Max: r3.Vector{X: -inf, Y: -inf, Z: -inf},
	}
}

// BoxFromArray reads bounds stored as min x, y, z followed by max x, y, z.
func BoxFromArray(v [6]float64) Box3 {
	return Box3{
		Min: r3.Vector{X: v[0], Y: v[1], Z: v[2]},
		Max: r3.Vector{X: v[3], Y: v[4], Z: v[5]},
	}
}

// Array returns the bounds in storage order.
func (b Box3) Array() [6]float64 {
	return [6]float64{b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z}
}

// IsEmpty reports whether the box contains no point.
func (b Box3) IsEmpty() bool {
	return b.Max.X < b.Min.X || b.Max.Y < b.Min.Y || b.Max.Z < b.Min.Z
}

// Center returns the midpoint of the box.
func (b Box3) Center() r3.Vector {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the extent of the box along each axis.
func (b Box3) Size() r3.Vector {
	if b.IsEmpty() {
		return r3.Vector{}
	}
	return b.Max.Sub(b.Min)
}

// Contains reports whether p lies inside the box or on its boundary.
func (b Box3) Contains(p r3.Vector) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Extend returns the smallest box containing b and p.
func (b Box3) Extend(p r3.Vector) Box3 {
	return Box3{
		Min: r3.Vector{X: math.Min(b.Min.X, p.X), Y: math.Min(b.Min.Y, p.Y), Z: math.Min(b.Min.Z, p.Z)},
		Max: r3.Vector{X: math.Max(b.Max.X, p.X), Y: math.Max(b.Max.Y, p.Y), Z: math.Max(b.Max.Z, p.Z)},
	}
}

// Union returns the smallest box containing b and o.
func (b Box3) Union(o Box3) Box3 {
	if o.IsEmpty() {
		return b
	}
	return b.Extend(o.Min).Extend(o.Max)
}

// Transform returns the bounds of b after applying m to each of its corners.
func (b Box3) Transform(m mgl64.Mat4) Box3 {
	if b.IsEmpty() {
		return b
	}
	out := EmptyBox()
	for i := 0; i < 8; i++ {
		c := mgl64.Vec4{b.Min.X, b.Min.Y, b.Min.Z, 1}
		if i&1 != 0 {
			c[0] = b.Max.X
		}
		if i&2 != 0 {
			c[1] = b.Max.Y
		}
		if i&4 != 0 {
			c[2] = b.Max.Z
		}
		p := m.Mul4x1(c)
		out = out.Extend(r3.Vector{X: p[0], Y: p[1], Z: p[2]})
	}
	return out
}

// BoundsOf returns the box around a set of points.
func BoundsOf[T constraints.Float](points [][3]T) Box3 {
	b := EmptyBox()
	for _, p := range points {
		b = b.Extend(vector(p))
	}
	return b
}

func vector[T constraints.Float](p [3]T) r3.Vector {
	return r3.Vector{X: float64(p[0]), Y: float64(p[1]), Z: float64(p[2])}
}
