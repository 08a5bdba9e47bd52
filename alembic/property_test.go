package alembic

import (
	"crypto/md5"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-alembic/internal/abctest"
	"github.com/robert-malhotra/go-alembic/internal/dtype"
)

func meshGeom(t *testing.T, a *Archive) *CompoundProperty {
	t.Helper()
	mesh, err := a.OpenObject("/xform/mesh")
	require.NoError(t, err)
	geom, err := NewCompoundProperty(mesh.Properties(), ".geom")
	require.NoError(t, err)
	return geom
}

func TestCompoundProperty(t *testing.T) {
	a := openScene(t)
	geom := meshGeom(t, a)

	assert.Equal(t, ".geom", geom.Name())
	assert.Equal(t, KindCompound, geom.Kind())
	assert.Equal(t, "/xform/mesh@.geom", geom.Path())
	schema, _ := geom.Metadata().Get("schemaObjTitle")
	assert.Equal(t, "AbcGeom_PolyMesh_v1:.geom", schema)

	assert.Equal(t, 7, geom.NumProperties())
	assert.Equal(t, []string{".selfBnds", "P", ".faceCounts", ".faceIndices", "uv", ".geomParams", ".userProperties"}, geom.PropertyNames())

	i, err := geom.Find("P")
	require.NoError(t, err)
	assert.Equal(t, 1, i)
	assert.True(t, geom.Has(".faceIndices"))
	assert.False(t, geom.Has("N"))

	h, err := geom.PropertyHeader(1)
	require.NoError(t, err)
	assert.Equal(t, KindArray, h.Kind)
	assert.Equal(t, DataType{Pod: dtype.F32, Extent: 3}, h.DataType)
	assert.Equal(t, 1, h.TimeSamplingIndex)
	assert.True(t, h.Homogeneous)

	_, err = geom.PropertyHeader(99)
	assert.ErrorIs(t, err, ErrPropertyNotFound)

	p, err := geom.PropertyAt(0)
	require.NoError(t, err)
	_, ok := p.(*ScalarProperty)
	assert.True(t, ok)
}

func TestPropertyLookupErrors(t *testing.T) {
	a := openScene(t)
	geom := meshGeom(t, a)

	_, err := NewCompoundProperty(geom, "missing")
	assert.ErrorIs(t, err, ErrPropertyNotFound)
	assert.NotErrorIs(t, err, ErrUnexpectedPropertyType)

	_, err = NewCompoundProperty(geom, ".selfBnds")
	assert.ErrorIs(t, err, ErrUnexpectedPropertyType)
	assert.NotErrorIs(t, err, ErrPropertyNotFound)

	_, err = geom.Scalar("P")
	assert.ErrorIs(t, err, ErrUnexpectedPropertyType)
	_, err = geom.Array(".selfBnds")
	assert.ErrorIs(t, err, ErrUnexpectedPropertyType)
	_, err = geom.Array("uv")
	assert.ErrorIs(t, err, ErrUnexpectedPropertyType)
	_, err = geom.Scalar("missing")
	assert.ErrorIs(t, err, ErrPropertyNotFound)
	_, err = geom.Property("missing")
	assert.ErrorIs(t, err, ErrPropertyNotFound)
}

func TestPropertySumType(t *testing.T) {
	a := openScene(t)
	geom := meshGeom(t, a)

	for _, name := range geom.PropertyNames() {
		p, err := geom.Property(name)
		require.NoError(t, err)
		assert.Equal(t, name, p.Name())

		switch v := p.(type) {
		case *CompoundProperty:
			assert.Equal(t, KindCompound, p.Kind())
			assert.Contains(t, []string{"uv", ".geomParams", ".userProperties"}, v.Name())
		case *ScalarProperty:
			assert.Equal(t, KindScalar, p.Kind())
		case *ArrayProperty:
			assert.Equal(t, KindArray, p.Kind())
		default:
			t.Fatalf("unexpected property type %T", p)
		}
	}
}

func TestScalarSamples(t *testing.T) {
	a := openScene(t)
	top, err := a.Top()
	require.NoError(t, err)

	frame, err := top.Properties().Scalar("frame")
	require.NoError(t, err)
	assert.Equal(t, "/@frame", frame.Path())
	assert.Equal(t, 3, frame.SampleCount())
	assert.False(t, frame.IsConstant())
	assert.Equal(t, DataType{Pod: dtype.I32, Extent: 1}, frame.DataType())

	for i, want := range []int32{1, 2, 3} {
		raw, err := frame.ReadSample(i)
		require.NoError(t, err)
		assert.Equal(t, abctest.Pack(want), raw)

		vals, err := frame.Float64s(i)
		require.NoError(t, err)
		assert.Equal(t, []float64{float64(want)}, vals)
	}

	tm, err := frame.SampleTime(2)
	require.NoError(t, err)
	assert.InDelta(t, 3.0/24, tm, 1e-12)

	for _, i := range []int{-1, 3} {
		_, err := frame.ReadSample(i)
		assert.ErrorIs(t, err, ErrSampleOutOfRange)
		_, err = frame.SampleTime(i)
		assert.ErrorIs(t, err, ErrSampleOutOfRange)
	}
}

func TestConstantScalar(t *testing.T) {
	a := openScene(t)
	geom := meshGeom(t, a)

	bnds, err := geom.Scalar(".selfBnds")
	require.NoError(t, err)
	assert.True(t, bnds.IsConstant())
	assert.Equal(t, 3, bnds.SampleCount())
	interp, _ := bnds.Metadata().Get("interpretation")
	assert.Equal(t, "box", interp)

	want := abctest.Pack(0.0, 0.0, 0.0, 1.0, 1.0, 1.0)
	for i := 0; i < 3; i++ {
		raw, err := bnds.ReadSample(i)
		require.NoError(t, err)
		assert.Equal(t, want, raw)
	}

	d, err := bnds.SampleDigest(2)
	require.NoError(t, err)
	assert.Equal(t, Digest(md5.Sum(want)), d)
}

func TestArraySamples(t *testing.T) {
	a := openScene(t)
	geom := meshGeom(t, a)

	p, err := geom.Array("P")
	require.NoError(t, err)
	assert.Equal(t, 3, p.SampleCount())
	assert.False(t, p.IsConstant())
	assert.Equal(t, 2, p.Header().FirstChangedIndex)
	assert.Equal(t, 2, p.Header().LastChangedIndex)
	assert.Equal(t, p.TimeSampling(), a.TimeSamplings()[1])

	s0, err := p.ReadSample(0)
	require.NoError(t, err)
	s1, err := p.ReadSample(1)
	require.NoError(t, err)
	s2, err := p.ReadSample(2)
	require.NoError(t, err)
	assert.Equal(t, s0, s1)
	assert.NotEqual(t, s1, s2)
	assert.Len(t, s2, 4*3*4)

	dims, err := p.Dimensions(2)
	require.NoError(t, err)
	assert.Equal(t, Dimensions{4}, dims)

	floats, err := p.Float64s(2)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 1, 1, 0, 1, 1, 1, 1, 0, 1, 1}, floats)

	counts, err := geom.Array(".faceCounts")
	require.NoError(t, err)
	dims, err = counts.Dimensions(0)
	require.NoError(t, err)
	assert.Equal(t, Dimensions{1}, dims)
	n, err := counts.ElementCount(0)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = counts.Dimensions(1)
	assert.ErrorIs(t, err, ErrSampleOutOfRange)
}

func TestStringProperties(t *testing.T) {
	a := openScene(t)
	geom := meshGeom(t, a)
	user, err := geom.Compound(".userProperties")
	require.NoError(t, err)
	assert.Equal(t, "/xform/mesh@.geom/.userProperties", user.Path())

	tag, err := user.Scalar("tag")
	require.NoError(t, err)
	strs, err := tag.Strings(0)
	require.NoError(t, err)
	assert.Equal(t, []string{"hero"}, strs)

	names, err := user.Array("names")
	require.NoError(t, err)
	strs, err = names.Strings(0)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "bb", "ccc"}, strs)
	dims, err := names.Dimensions(0)
	require.NoError(t, err)
	assert.Equal(t, Dimensions{3}, dims)

	_, err = names.Float64s(0)
	assert.ErrorIs(t, err, ErrUnexpectedDataType)

	counts, err := geom.Array(".faceCounts")
	require.NoError(t, err)
	_, err = counts.Strings(0)
	assert.ErrorIs(t, err, ErrUnexpectedDataType)
}

func TestOpenProperty(t *testing.T) {
	a := openScene(t)

	p, err := a.OpenProperty("/xform/mesh@.geom/uv/.vals")
	require.NoError(t, err)
	assert.Equal(t, "/xform/mesh@.geom/uv/.vals", p.Path())
	assert.IsType(t, &ArrayProperty{}, p)

	p, err = a.OpenProperty("/@.childBnds")
	require.NoError(t, err)
	assert.IsType(t, &ScalarProperty{}, p)

	_, err = a.OpenProperty("/xform/mesh@.geom/P/x")
	assert.ErrorIs(t, err, ErrUnexpectedPropertyType)
	_, err = a.OpenProperty("/xform/mesh@.missing")
	assert.ErrorIs(t, err, ErrPropertyNotFound)
	_, err = a.OpenProperty("/nope@.geom")
	assert.ErrorIs(t, err, ErrObjectNotFound)
	_, err = a.OpenProperty("/xform/mesh")
	assert.Error(t, err)
}

// archiveWithTop wraps a hand-built top object group in a minimal archive.
func archiveWithTop(w *abctest.Writer, top uint64) []byte {
	return w.Finish(w.Group(
		w.Data(abctest.Pack(uint32(1))),
		w.Data(abctest.Pack(uint32(1))),
		top,
		abctest.EmptyData,
		abctest.EmptyData,
		abctest.EmptyData,
	))
}

func TestMalformedPropertyGroups(t *testing.T) {
	twoSamples := []*abctest.Property{{
		Name: "x", Kind: abctest.Scalar, Pod: dtype.F64, Extent: 1,
		Samples: [][]byte{abctest.Pack(1.0), abctest.Pack(2.0)},
	}}

	t.Run("missing stored sample", func(t *testing.T) {
		w := abctest.NewWriter()
		short := w.Group(w.Data(abctest.Digested(abctest.Pack(1.0))))
		props := w.Group(short, w.Data(abctest.PropertyHeaders(twoSamples)))
		a := openBytes(t, archiveWithTop(w, w.Group(props, w.Data(abctest.ObjectHeaders(nil)))))

		top, err := a.Top()
		require.NoError(t, err)
		_, err = top.Properties().Scalar("x")
		assert.ErrorIs(t, err, ErrInvalidData)
	})

	t.Run("header count mismatch", func(t *testing.T) {
		w := abctest.NewWriter()
		g := w.Group(
			w.Data(abctest.Digested(abctest.Pack(1.0))),
			w.Data(abctest.Digested(abctest.Pack(2.0))),
		)
		props := w.Group(g, g, w.Data(abctest.PropertyHeaders(twoSamples)))
		a := openBytes(t, archiveWithTop(w, w.Group(props, w.Data(abctest.ObjectHeaders(nil)))))

		_, err := a.Top()
		assert.ErrorIs(t, err, ErrInvalidData)
	})

	t.Run("sample shorter than element", func(t *testing.T) {
		w := abctest.NewWriter()
		g := w.Group(
			w.Data(abctest.Digested(abctest.Pack(float32(1)))),
			w.Data(abctest.Digested(abctest.Pack(2.0))),
		)
		props := w.Group(g, w.Data(abctest.PropertyHeaders(twoSamples)))
		a := openBytes(t, archiveWithTop(w, w.Group(props, w.Data(abctest.ObjectHeaders(nil)))))

		top, err := a.Top()
		require.NoError(t, err)
		x, err := top.Properties().Scalar("x")
		require.NoError(t, err)
		_, err = x.ReadSample(0)
		assert.ErrorIs(t, err, ErrInvalidData)
		raw, err := x.ReadSample(1)
		require.NoError(t, err)
		assert.Equal(t, abctest.Pack(2.0), raw)
	})

	t.Run("sample shorter than digest", func(t *testing.T) {
		w := abctest.NewWriter()
		g := w.Group(w.Data([]byte{1, 2, 3}), w.Data(abctest.Digested(abctest.Pack(2.0))))
		props := w.Group(g, w.Data(abctest.PropertyHeaders(twoSamples)))
		a := openBytes(t, archiveWithTop(w, w.Group(props, w.Data(abctest.ObjectHeaders(nil)))))

		top, err := a.Top()
		require.NoError(t, err)
		x, err := top.Properties().Scalar("x")
		require.NoError(t, err)
		_, err = x.SampleDigest(0)
		assert.ErrorIs(t, err, ErrInvalidData)
	})

	t.Run("property child is data", func(t *testing.T) {
		w := abctest.NewWriter()
		props := w.Group(w.Data([]byte{1}), w.Data(abctest.PropertyHeaders(twoSamples)))
		a := openBytes(t, archiveWithTop(w, w.Group(props, w.Data(abctest.ObjectHeaders(nil)))))

		top, err := a.Top()
		require.NoError(t, err)
		_, err = top.Properties().Scalar("x")
		assert.ErrorIs(t, err, ErrInvalidData)
	})

	t.Run("time sampling out of range", func(t *testing.T) {
		bad := []*abctest.Property{{
			Name: "x", Kind: abctest.Scalar, Pod: dtype.F64, Extent: 1, TimeSampling: 4,
			Samples: [][]byte{abctest.Pack(1.0)},
		}}
		w := abctest.NewWriter()
		g := w.Group(w.Data(abctest.Digested(abctest.Pack(1.0))))
		props := w.Group(g, w.Data(abctest.PropertyHeaders(bad)))
		a := openBytes(t, archiveWithTop(w, w.Group(props, w.Data(abctest.ObjectHeaders(nil)))))

		top, err := a.Top()
		require.NoError(t, err)
		_, err = top.Properties().Scalar("x")
		assert.ErrorIs(t, err, ErrInvalidData)
	})
}

func TestEmptyArraySample(t *testing.T) {
	props := []*abctest.Property{{
		Name: "ids", Kind: abctest.Array, Pod: dtype.I32, Extent: 1,
		Samples: [][]byte{{}},
	}}
	w := abctest.NewWriter()
	g := w.Group(abctest.EmptyData, abctest.EmptyData)
	compound := w.Group(g, w.Data(abctest.PropertyHeaders(props)))
	a := openBytes(t, archiveWithTop(w, w.Group(compound, w.Data(abctest.ObjectHeaders(nil)))))

	top, err := a.Top()
	require.NoError(t, err)
	ids, err := NewTypedArray[int32](top.Properties(), "ids")
	require.NoError(t, err)

	vals, dims, err := ids.Get(0)
	require.NoError(t, err)
	assert.Empty(t, vals)
	assert.Equal(t, Dimensions{0}, dims)
}
