package geom

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"

	"github.com/robert-malhotra/go-alembic/alembic"
)

func TestBox3(t *testing.T) {
	b := BoxFromArray([6]float64{-1, -2, -3, 1, 2, 3})
	assert.Equal(t, [6]float64{-1, -2, -3, 1, 2, 3}, b.Array())
	assert.False(t, b.IsEmpty())
	assert.Equal(t, r3.Vector{}, b.Center())
	assert.Equal(t, r3.Vector{X: 2, Y: 4, Z: 6}, b.Size())
	assert.True(t, b.Contains(r3.Vector{X: 1, Y: 2, Z: 3}))
	assert.False(t, b.Contains(r3.Vector{X: 1.5}))

	e := EmptyBox()
	assert.True(t, e.IsEmpty())
	assert.Equal(t, r3.Vector{}, e.Size())
	assert.Equal(t, b, b.Union(e))
	assert.Equal(t, b, e.Union(b))

	p := e.Extend(r3.Vector{X: 4, Y: 5, Z: 6})
	assert.Equal(t, p.Min, p.Max)
	assert.Equal(t, [6]float64{-1, -2, -3, 4, 5, 6}, b.Union(p).Array())
}

func TestBox3Transform(t *testing.T) {
	b := BoxFromArray([6]float64{0, 0, 0, 1, 1, 1})

	moved := b.Transform(mgl64.Translate3D(1, 2, 3).Mul4(mgl64.Scale3D(2, 2, 2)))
	assert.Equal(t, [6]float64{1, 2, 3, 3, 4, 5}, moved.Array())

	flipped := b.Transform(mgl64.Scale3D(-1, 1, 1))
	assert.Equal(t, [6]float64{-1, 0, 0, 0, 1, 1}, flipped.Array())

	assert.True(t, EmptyBox().Transform(mgl64.Ident4()).IsEmpty())
}

func TestBoundsOf(t *testing.T) {
	b := BoundsOf([][3]float32{{0, 1, 2}, {-1, 5, 0.5}})
	assert.Equal(t, [6]float64{-1, 1, 0.5, 0, 5, 2}, b.Array())
	assert.True(t, BoundsOf[float64](nil).IsEmpty())
}

func TestScopeOf(t *testing.T) {
	tests := []struct {
		metadata string
		want     GeometryScope
	}{
		{"geoScope=con", ScopeConstant},
		{"geoScope=", ScopeConstant},
		{"geoScope=uni", ScopeUniform},
		{"geoScope=var", ScopeVarying},
		{"geoScope=vtx", ScopeVertex},
		{"geoScope=fvr;isGeomParam=true", ScopeFaceVarying},
		{"geoScope=bogus", ScopeUnknown},
		{"interpretation=point", ScopeUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.metadata, func(t *testing.T) {
			md, err := alembic.ParseMetadata(tt.metadata)
			if err != nil {
				t.Fatalf("ParseMetadata(%q): %v", tt.metadata, err)
			}
			if got := ScopeOf(md); got != tt.want {
				t.Errorf("ScopeOf(%q) = %s, want %s", tt.metadata, got, tt.want)
			}
		})
	}
	assert.Equal(t, "facevarying", ScopeFaceVarying.String())
	assert.Equal(t, "", SchemaOf(alembic.Metadata{}))
}
