package geom

import (
	"github.com/samber/lo"

	"github.com/robert-malhotra/go-alembic/alembic"
)

// TopologyVariance tells which parts of a mesh change over time.
type TopologyVariance uint8

const (
	// TopologyConstant meshes never change.
	TopologyConstant TopologyVariance = iota
	// TopologyHomogeneous meshes move their points but keep their faces.
	TopologyHomogeneous
	// TopologyHeterogeneous meshes change their faces over time.
	TopologyHeterogeneous
)

func (v TopologyVariance) String() string {
	switch v {
	case TopologyConstant:
		return "constant"
	case TopologyHomogeneous:
		return "homogeneous"
	default:
		return "heterogeneous"
	}
}

// PolyMesh is a polygon mesh schema.
type PolyMesh struct {
	*GeomBase

	Positions   *alembic.TypedArray[[3]float32]
	FaceCounts  *alembic.TypedArray[int32]
	FaceIndices *alembic.TypedArray[int32]

	// Optional members are nil when absent.
	UVs        *GeomParam[[2]float32]
	Normals    *GeomParam[[3]float32]
	Velocities *alembic.TypedArray[[3]float32]
}

// PolyMeshSample is a mesh evaluated at one sample.
type PolyMeshSample struct {
	Positions   [][3]float32
	FaceCounts  []int32
	FaceIndices []int32
	Velocities  [][3]float32
	Bounds      Box3
}

// NumFaces returns the number of faces.
func (s *PolyMeshSample) NumFaces() int { return len(s.FaceCounts) }

// NewPolyMesh reads the mesh schema stored in the compound name of parent.
func NewPolyMesh(parent *alembic.CompoundProperty, name string) (*PolyMesh, error) {
	props, err := parent.Compound(name)
	if err != nil {
		return nil, err
	}
	base, err := NewGeomBase(props)
	if err != nil {
		return nil, err
	}

	m := &PolyMesh{GeomBase: base}
	if m.Positions, err = alembic.NewTypedArray[[3]float32](props, "P"); err != nil {
		return nil, err
	}
	if m.FaceCounts, err = alembic.NewTypedArray[int32](props, ".faceCounts"); err != nil {
		return nil, err
	}
	if m.FaceIndices, err = alembic.NewTypedArray[int32](props, ".faceIndices"); err != nil {
		return nil, err
	}

	if uv, err := NewGeomParam[[2]float32](props, "uv"); err == nil {
		m.UVs = uv
	}
	if n, err := NewGeomParam[[3]float32](props, "N"); err == nil {
		m.Normals = n
	}
	if v, err := alembic.NewTypedArray[[3]float32](props, ".velocities"); err == nil {
		m.Velocities = v
	}
	return m, nil
}

// SampleCount returns the number of position samples.
func (m *PolyMesh) SampleCount() int {
	return m.Positions.SampleCount()
}

// TimeSampling returns the time sampling of the positions.
func (m *PolyMesh) TimeSampling() *alembic.TimeSampling {
	return m.Positions.TimeSampling()
}

// TopologyVariance classifies how the mesh changes over its samples.
func (m *PolyMesh) TopologyVariance() TopologyVariance {
	switch {
	case !m.FaceCounts.IsConstant() || !m.FaceIndices.IsConstant():
		return TopologyHeterogeneous
	case !m.Positions.IsConstant():
		return TopologyHomogeneous
	default:
		return TopologyConstant
	}
}

// Sample reads sample i and checks that its faces reference stored points.
// Members with fewer samples than the positions repeat their last sample.
func (m *PolyMesh) Sample(i int) (*PolyMeshSample, error) {
	pos, err := m.Positions.Values(i)
	if err != nil {
		return nil, err
	}
	counts, err := m.FaceCounts.Values(clampSample(i, m.FaceCounts.SampleCount()))
	if err != nil {
		return nil, err
	}
	indices, err := m.FaceIndices.Values(clampSample(i, m.FaceIndices.SampleCount()))
	if err != nil {
		return nil, err
	}

	total := lo.SumBy(counts, func(c int32) int {
		return int(c)
	})
	if lo.SomeBy(counts, func(c int32) bool { return c < 0 }) || total != len(indices) {
		return nil, invalid("mesh sample %d has face counts summing to %d for %d indices", i, total, len(indices))
	}
	for j, k := range indices {
		if k < 0 || int(k) >= len(pos) {
			return nil, invalid("mesh sample %d index %d is %d, only %d points", i, j, k, len(pos))
		}
	}

	s := &PolyMeshSample{
		Positions:   pos,
		FaceCounts:  counts,
		FaceIndices: indices,
		Bounds:      BoundsOf(pos),
	}
	if m.Velocities != nil {
		if s.Velocities, err = m.Velocities.Values(clampSample(i, m.Velocities.SampleCount())); err != nil {
			return nil, err
		}
	}
	return s, nil
}
