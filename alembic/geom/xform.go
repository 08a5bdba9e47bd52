package geom

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/robert-malhotra/go-alembic/alembic"
	"github.com/robert-malhotra/go-alembic/internal/dtype"
)

// XFormOp is one operation of a transform stack.
type XFormOp uint8

const (
	OpScale XFormOp = iota
	OpTranslate
	OpRotate
	OpMatrix
	OpRotateX
	OpRotateY
	OpRotateZ
)

var opNames = [...]string{
	OpScale:     "scale",
	OpTranslate: "translate",
	OpRotate:    "rotate",
	OpMatrix:    "matrix",
	OpRotateX:   "rotateX",
	OpRotateY:   "rotateY",
	OpRotateZ:   "rotateZ",
}

func (op XFormOp) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return fmt.Sprintf("op(%d)", uint8(op))
}

// Channels returns the number of values op consumes.
func (op XFormOp) Channels() int {
	switch op {
	case OpScale, OpTranslate:
		return 3
	case OpRotate:
		return 4
	case OpMatrix:
		return 16
	default:
		return 1
	}
}

// matrix builds the transform of op from its channel values. Rotation
// angles are in degrees.
func (op XFormOp) matrix(ch []float64) mgl64.Mat4 {
	switch op {
	case OpScale:
		return mgl64.Scale3D(ch[0], ch[1], ch[2])
	case OpTranslate:
		return mgl64.Translate3D(ch[0], ch[1], ch[2])
	case OpRotate:
		axis := mgl64.Vec3{ch[0], ch[1], ch[2]}
		if axis.Len() == 0 {
			return mgl64.Ident4()
		}
		return mgl64.HomogRotate3D(mgl64.DegToRad(ch[3]), axis.Normalize())
	case OpMatrix:
		var m mgl64.Mat4
		copy(m[:], ch)
		return m
	case OpRotateX:
		return mgl64.HomogRotate3DX(mgl64.DegToRad(ch[0]))
	case OpRotateY:
		return mgl64.HomogRotate3DY(mgl64.DegToRad(ch[0]))
	default:
		return mgl64.HomogRotate3DZ(mgl64.DegToRad(ch[0]))
	}
}

// XForm is a transform schema: a stack of operations whose channel values
// are sampled over time.
type XForm struct {
	// ChildBounds bounds the transform's descendants. Nil when absent.
	ChildBounds *alembic.TypedScalar[[6]float64]

	// GeomParams holds arbitrary parameters. Nil when absent.
	GeomParams *alembic.CompoundProperty

	// UserProperties holds application defined values. Nil when absent.
	UserProperties *alembic.CompoundProperty

	props    *alembic.CompoundProperty
	inherits *alembic.TypedScalar[bool]
	ops      []XFormOp
	vals     alembic.Property
	channels int
}

// XFormSample is a transform evaluated at one sample.
type XFormSample struct {
	Time     float64
	Matrix   mgl64.Mat4
	Inherits bool
}

// NewXForm reads the transform schema stored in the compound name of parent.
func NewXForm(parent *alembic.CompoundProperty, name string) (*XForm, error) {
	props, err := parent.Compound(name)
	if err != nil {
		return nil, err
	}

	x := &XForm{props: props}
	if c, err := alembic.NewTypedScalar[[6]float64](props, ".childBnds"); err == nil {
		x.ChildBounds = c
	}
	if c, err := props.Compound(".arbGeomParams"); err == nil {
		x.GeomParams = c
	}
	if c, err := props.Compound(".userProperties"); err == nil {
		x.UserProperties = c
	}
	if b, err := alembic.NewTypedScalar[bool](props, ".inherits"); err == nil {
		x.inherits = b
	}

	if x.ops, err = readOps(props); err != nil {
		return nil, err
	}
	for _, op := range x.ops {
		x.channels += op.Channels()
	}

	if x.channels > 0 {
		vals, err := props.Property(".vals")
		if err != nil {
			return nil, fmt.Errorf("transform %s: %w", props.Path(), err)
		}
		if vals.Kind() == alembic.KindCompound {
			return nil, fmt.Errorf("%w: %s is a compound", alembic.ErrUnexpectedPropertyType, vals.Path())
		}
		x.vals = vals
	}
	return x, nil
}

// readOps decodes the operation stack. Each byte holds the operation in its
// high nibble and a hint in the low nibble.
func readOps(props *alembic.CompoundProperty) ([]XFormOp, error) {
	if !props.Has(".ops") {
		return nil, nil
	}
	p, err := props.Property(".ops")
	if err != nil {
		return nil, err
	}

	var raw []byte
	switch p := p.(type) {
	case *alembic.ScalarProperty:
		if p.DataType().Pod != dtype.U8 {
			return nil, fmt.Errorf("%w: %s is %s", alembic.ErrUnexpectedDataType, p.Path(), p.DataType())
		}
		if p.SampleCount() == 0 {
			return nil, nil
		}
		if raw, err = p.ReadSample(0); err != nil {
			return nil, err
		}
		raw = raw[:p.DataType().Extent]
	case *alembic.ArrayProperty:
		if p.DataType().Pod != dtype.U8 {
			return nil, fmt.Errorf("%w: %s is %s", alembic.ErrUnexpectedDataType, p.Path(), p.DataType())
		}
		if p.SampleCount() == 0 {
			return nil, nil
		}
		if raw, err = p.ReadSample(0); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %s is a compound", alembic.ErrUnexpectedPropertyType, p.Path())
	}

	ops := make([]XFormOp, len(raw))
	for i, b := range raw {
		op := XFormOp(b >> 4)
		if op > OpRotateZ {
			return nil, invalid("operation %d of %s has unknown code %#x", i, p.Path(), b)
		}
		ops[i] = op
	}
	return ops, nil
}

// Ops returns the operation stack, outermost first.
func (x *XForm) Ops() []XFormOp {
	return append([]XFormOp(nil), x.ops...)
}

// SampleCount returns the number of transform samples. A transform without
// animated channels has one.
func (x *XForm) SampleCount() int {
	switch p := x.vals.(type) {
	case *alembic.ScalarProperty:
		return p.SampleCount()
	case *alembic.ArrayProperty:
		return p.SampleCount()
	}
	if x.inherits != nil {
		return x.inherits.SampleCount()
	}
	return 1
}

// TimeSampling returns the time sampling of the channel values, or nil when
// the transform is static.
func (x *XForm) TimeSampling() *alembic.TimeSampling {
	switch p := x.vals.(type) {
	case *alembic.ScalarProperty:
		return p.TimeSampling()
	case *alembic.ArrayProperty:
		return p.TimeSampling()
	}
	if x.inherits != nil {
		return x.inherits.TimeSampling()
	}
	return nil
}

// Channels returns the channel values of sample i.
func (x *XForm) Channels(i int) ([]float64, error) {
	switch p := x.vals.(type) {
	case *alembic.ScalarProperty:
		return p.Float64s(i)
	case *alembic.ArrayProperty:
		return p.Float64s(i)
	}
	if i < 0 || i >= x.SampleCount() {
		return nil, fmt.Errorf("%w: sample %d of static transform %s", alembic.ErrSampleOutOfRange, i, x.props.Path())
	}
	return nil, nil
}

// Matrix composes the operation stack at sample i. A point is transformed by
// the last operation first.
func (x *XForm) Matrix(i int) (mgl64.Mat4, error) {
	ch, err := x.Channels(i)
	if err != nil {
		return mgl64.Mat4{}, err
	}
	if len(ch) < x.channels {
		return mgl64.Mat4{}, invalid("%s sample %d has %d channels, operations need %d",
			x.props.Path(), i, len(ch), x.channels)
	}

	m := mgl64.Ident4()
	for _, op := range x.ops {
		n := op.Channels()
		m = m.Mul4(op.matrix(ch[:n]))
		ch = ch[n:]
	}
	return m, nil
}

// Inherits reports whether sample i composes with the parent transform.
// Transforms without the flag inherit.
func (x *XForm) Inherits(i int) (bool, error) {
	if x.inherits == nil {
		return true, nil
	}
	return x.inherits.Get(clampSample(i, x.inherits.SampleCount()))
}

// Sample evaluates sample i.
func (x *XForm) Sample(i int) (XFormSample, error) {
	m, err := x.Matrix(i)
	if err != nil {
		return XFormSample{}, err
	}
	inherits, err := x.Inherits(i)
	if err != nil {
		return XFormSample{}, err
	}

	var t float64
	if ts := x.TimeSampling(); ts != nil {
		if t, err = ts.SampleTime(i); err != nil {
			return XFormSample{}, err
		}
	}
	return XFormSample{Time: t, Matrix: m, Inherits: inherits}, nil
}

// SampleAt evaluates the last sample at or before time t.
func (x *XForm) SampleAt(t float64) (XFormSample, error) {
	i := 0
	if ts := x.TimeSampling(); ts != nil {
		i, _ = ts.FloorIndex(t, x.SampleCount())
	}
	return x.Sample(i)
}
