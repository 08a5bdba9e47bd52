package abctest

import "github.com/robert-malhotra/go-alembic/internal/dtype"

// Scene returns a small archive exercising every property kind:
//
//	/                 .childBnds, frame
//	/xform            .xform {.inherits, .ops, .vals}
//	/xform/mesh       .geom {.selfBnds, P, .faceCounts, .faceIndices, uv, .geomParams, .userProperties}
//	/empty
//
// Time sampling 1 is uniform at 24 samples per second starting at 1/24.
func Scene() *Archive {
	return &Archive{
		ArchiveVersion: 1,
		LibraryVersion: 10709,
		Metadata:       "_ai_Application=abctest;_ai_Description=unit test scene",
		IndexedMetadata: []string{
			"schema=AbcGeom_PolyMesh_v1;schemaObjTitle=AbcGeom_PolyMesh_v1:.geom",
			"interpretation=box",
			"geoScope=vtx;interpretation=point",
		},
		TimeSamplings: []TimeSampling{
			{MaxSample: 1, TimePerCycle: 1, Times: []float64{0}},
			{MaxSample: 3, TimePerCycle: 1.0 / 24, Times: []float64{1.0 / 24}},
		},
		Top: &Object{
			Name: "ABC",
			Properties: []*Property{
				{
					Name: ".childBnds", Kind: Scalar, Pod: dtype.F64, Extent: 6, MetadataIndex: 2,
					Samples: [][]byte{Pack(-1.0, -1.0, -1.0, 1.0, 1.0, 1.0)},
				},
				{
					Name: "frame", Kind: Scalar, Pod: dtype.I32, Extent: 1, TimeSampling: 1,
					Samples: [][]byte{Pack(int32(1)), Pack(int32(2)), Pack(int32(3))},
				},
			},
			Children: []*Object{sceneXform(), {Name: "empty"}},
		},
	}
}

func sceneXform() *Object {
	return &Object{
		Name:     "xform",
		Metadata: "schema=AbcGeom_Xform_v3;schemaObjTitle=AbcGeom_Xform_v3:.xform",
		Properties: []*Property{{
			Name: ".xform", Kind: Compound, Metadata: "schema=AbcGeom_Xform_v3",
			Properties: []*Property{
				{
					Name: ".inherits", Kind: Scalar, Pod: dtype.Bool, Extent: 1,
					Samples: [][]byte{Pack(true)},
				},
				{
					// translate, then scale
					Name: ".ops", Kind: Scalar, Pod: dtype.U8, Extent: 2,
					Samples: [][]byte{Pack(uint8(0x10), uint8(0x00))},
				},
				{
					Name: ".vals", Kind: Scalar, Pod: dtype.F64, Extent: 6, TimeSampling: 1,
					Samples: [][]byte{
						Pack(1.0, 2.0, 3.0, 1.0, 1.0, 1.0),
						Pack(1.0, 2.0, 3.0, 1.0, 1.0, 1.0),
						Pack(4.0, 5.0, 6.0, 2.0, 2.0, 2.0),
					},
				},
			},
		}},
		Children: []*Object{sceneMesh()},
	}
}

func sceneMesh() *Object {
	quad := func(z float32) []byte {
		return Pack[float32](0, 0, z, 1, 0, z, 1, 1, z, 0, 1, z)
	}
	return &Object{
		Name:          "mesh",
		MetadataIndex: 1,
		Properties: []*Property{{
			Name: ".geom", Kind: Compound, MetadataIndex: 1,
			Properties: []*Property{
				{
					Name: ".selfBnds", Kind: Scalar, Pod: dtype.F64, Extent: 6, MetadataIndex: 2, TimeSampling: 1,
					Samples: [][]byte{
						Pack(0.0, 0.0, 0.0, 1.0, 1.0, 1.0),
						Pack(0.0, 0.0, 0.0, 1.0, 1.0, 1.0),
						Pack(0.0, 0.0, 0.0, 1.0, 1.0, 1.0),
					},
				},
				{
					Name: "P", Kind: Array, Pod: dtype.F32, Extent: 3, MetadataIndex: 3, TimeSampling: 1,
					Homogeneous: true,
					Samples:     [][]byte{quad(0), quad(0), quad(1)},
				},
				{
					Name: ".faceCounts", Kind: Array, Pod: dtype.I32, Extent: 1,
					Samples: [][]byte{Pack(int32(4))},
					Dims:    [][]uint64{{1}},
				},
				{
					Name: ".faceIndices", Kind: Array, Pod: dtype.I32, Extent: 1,
					Samples: [][]byte{Pack[int32](0, 1, 2, 3)},
				},
				{
					Name: "uv", Kind: Compound, Metadata: "geoScope=fvr;isGeomParam=true;podExtent=2",
					Properties: []*Property{
						{
							Name: ".vals", Kind: Array, Pod: dtype.F32, Extent: 2,
							Samples: [][]byte{Pack[float32](0, 0, 1, 0, 1, 1, 0, 1)},
						},
						{
							Name: ".indices", Kind: Array, Pod: dtype.U32, Extent: 1,
							Samples: [][]byte{Pack[uint32](0, 1, 2, 3)},
						},
					},
				},
				{
					Name: ".geomParams", Kind: Compound,
					Properties: []*Property{{
						Name: "Cd", Kind: Array, Pod: dtype.F32, Extent: 3, Metadata: "geoScope=uni",
						Samples: [][]byte{Pack[float32](1, 0, 0)},
					}},
				},
				{
					Name: ".userProperties", Kind: Compound,
					Properties: []*Property{
						{
							Name: "tag", Kind: Scalar, Pod: dtype.String, Extent: 1,
							Samples: [][]byte{Strings("hero")},
						},
						{
							Name: "names", Kind: Array, Pod: dtype.String, Extent: 1,
							Samples: [][]byte{Strings("a", "bb", "ccc")},
						},
					},
				},
			},
		}},
	}
}
