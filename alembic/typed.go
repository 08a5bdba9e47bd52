package alembic

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/robert-malhotra/go-alembic/internal/dtype"
)

// checkType verifies that T describes exactly the stored data type.
func checkType[T any](stored DataType, path string) error {
	want, err := dtype.For[T]()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnexpectedDataType, err)
	}
	if want.Pod.IsString() {
		return fmt.Errorf("%w: %s cannot be decoded in place, use Strings", ErrUnexpectedDataType, want)
	}
	if want != stored {
		return fmt.Errorf("%w: %s is %s, not %s", ErrUnexpectedDataType, path, stored, want)
	}
	return nil
}

// TypedScalar reads a scalar property as values of T.
//
// T is a bool, sized integer, float32, float64, dtype.Float16, or a fixed
// array of those; nested arrays flatten. Its element kind and total extent
// must match the stored data type exactly.
type TypedScalar[T any] struct {
	*ScalarProperty
}

// NewTypedScalar reads the scalar sub-property name of parent and checks
// that its stored type matches T.
func NewTypedScalar[T any](parent *CompoundProperty, name string) (*TypedScalar[T], error) {
	p, err := parent.Scalar(name)
	if err != nil {
		return nil, err
	}
	if err := checkType[T](p.DataType(), p.path); err != nil {
		return nil, err
	}
	return &TypedScalar[T]{ScalarProperty: p}, nil
}

// Get decodes sample i.
func (t *TypedScalar[T]) Get(i int) (T, error) {
	var zero T
	payload, err := t.ReadSample(i)
	if err != nil {
		return zero, err
	}
	v, err := dtype.Decode[T](payload)
	if err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	return v, nil
}

// Samples decodes every sample in order.
func (t *TypedScalar[T]) Samples() ([]T, error) {
	out := make([]T, t.SampleCount())
	for i := range out {
		v, err := t.Get(i)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// TypedArray reads an array property as slices of T. T follows the same
// rules as for TypedScalar and describes one element.
type TypedArray[T any] struct {
	*ArrayProperty
}

// NewTypedArray reads the array sub-property name of parent and checks that
// its element type matches T.
func NewTypedArray[T any](parent *CompoundProperty, name string) (*TypedArray[T], error) {
	p, err := parent.Array(name)
	if err != nil {
		return nil, err
	}
	return newTypedArray[T](p)
}

func newTypedArray[T any](p *ArrayProperty) (*TypedArray[T], error) {
	if err := checkType[T](p.DataType(), p.path); err != nil {
		return nil, err
	}
	return &TypedArray[T]{ArrayProperty: p}, nil
}

// AsTypedArray checks that the elements of p are of type T.
func AsTypedArray[T any](p *ArrayProperty) (*TypedArray[T], error) {
	return newTypedArray[T](p)
}

// Get decodes sample i along with its dimensions.
func (t *TypedArray[T]) Get(i int) ([]T, Dimensions, error) {
	k, _, payload, err := t.read(i)
	if err != nil {
		return nil, nil, err
	}
	dims, err := t.dimensions(i, k, payload)
	if err != nil {
		return nil, nil, err
	}

	vals, err := dtype.DecodeSlice[T](payload)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	if n := dims.NumElements(); uint64(len(vals)) != n {
		t.archive.logger.Warn("array sample length does not match its dimensions",
			zap.String("property", t.path),
			zap.Int("sample", i),
			zap.Int("elements", len(vals)),
			zap.Uint64("dimensions", n))
	}
	return vals, dims, nil
}

// Values decodes sample i, discarding its dimensions.
func (t *TypedArray[T]) Values(i int) ([]T, error) {
	vals, _, err := t.Get(i)
	return vals, err
}
