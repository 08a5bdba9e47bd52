package dtype

import (
	"errors"
	"fmt"
	"math"
	"reflect"
)

// ErrNoPOD is returned when a Go type has no Alembic POD equivalent.
var ErrNoPOD = errors.New("type has no POD equivalent")

// PodType is the kind of a plain-old-data value.
type PodType uint8

const (
	Bool PodType = iota
	U8
	I8
	U16
	I16
	U32
	I32
	U64
	I64
	F16
	F32
	F64
	String
	WideString

	Unknown PodType = 127
)

var podNames = [...]string{
	Bool:       "bool",
	U8:         "uint8",
	I8:         "int8",
	U16:        "uint16",
	I16:        "int16",
	U32:        "uint32",
	I32:        "int32",
	U64:        "uint64",
	I64:        "int64",
	F16:        "float16",
	F32:        "float32",
	F64:        "float64",
	String:     "string",
	WideString: "wstring",
}

// ParsePod converts the 4-bit POD field of a property header.
func ParsePod(v uint8) (PodType, error) {
	p := PodType(v)
	if p > WideString {
		return Unknown, fmt.Errorf("invalid POD type %d", v)
	}
	return p, nil
}

func (p PodType) String() string {
	if int(p) < len(podNames) {
		return podNames[p]
	}
	return fmt.Sprintf("pod(%d)", uint8(p))
}

// ByteSize returns the size of one value in bytes, or 0 for variable-length strings.
func (p PodType) ByteSize() int {
	switch p {
	case Bool, U8, I8:
		return 1
	case U16, I16, F16:
		return 2
	case U32, I32, F32:
		return 4
	case U64, I64, F64:
		return 8
	default:
		return 0
	}
}

// IsString reports whether the POD is a narrow or wide string.
func (p PodType) IsString() bool {
	return p == String || p == WideString
}

// IsNumeric reports whether the POD is an integer or float kind.
func (p PodType) IsNumeric() bool {
	return p >= U8 && p <= F64
}

// DataType describes the element type of a property.
type DataType struct {
	Pod    PodType
	Extent uint8
}

// ElementSize returns the number of bytes per element, or 0 for strings.
func (d DataType) ElementSize() int {
	return d.Pod.ByteSize() * int(d.Extent)
}

func (d DataType) String() string {
	if d.Extent == 1 {
		return d.Pod.String()
	}
	return fmt.Sprintf("%s[%d]", d.Pod, d.Extent)
}

// Float16 is an IEEE 754 half-precision value stored as raw bits.
type Float16 uint16

// Float32 widens the half-precision value.
func (h Float16) Float32() float32 {
	sign := uint32(h>>15) << 31
	exp := uint32(h>>10) & 0x1F
	frac := uint32(h) & 0x3FF

	switch {
	case exp == 0 && frac == 0:
		return math.Float32frombits(sign)
	case exp == 0:
		// subnormal: renormalize
		e := uint32(127 - 15 + 1)
		for frac&0x400 == 0 {
			frac <<= 1
			e--
		}
		frac &= 0x3FF
		return math.Float32frombits(sign | e<<23 | frac<<13)
	case exp == 0x1F:
		return math.Float32frombits(sign | 0xFF<<23 | frac<<13)
	default:
		return math.Float32frombits(sign | (exp+127-15)<<23 | frac<<13)
	}
}

var float16Type = reflect.TypeFor[Float16]()

// Of returns the data type described by a Go type.
func Of(t reflect.Type) (DataType, error) {
	if t == float16Type {
		return DataType{Pod: F16, Extent: 1}, nil
	}

	var pod PodType
	switch t.Kind() {
	case reflect.Bool:
		pod = Bool
	case reflect.Uint8:
		pod = U8
	case reflect.Int8:
		pod = I8
	case reflect.Uint16:
		pod = U16
	case reflect.Int16:
		pod = I16
	case reflect.Uint32:
		pod = U32
	case reflect.Int32:
		pod = I32
	case reflect.Uint64:
		pod = U64
	case reflect.Int64:
		pod = I64
	case reflect.Float32:
		pod = F32
	case reflect.Float64:
		pod = F64
	case reflect.String:
		pod = String
	case reflect.Array:
		elem, err := Of(t.Elem())
		if err != nil {
			return DataType{}, err
		}
		if elem.Pod.IsString() {
			return DataType{}, fmt.Errorf("%w: %s", ErrNoPOD, t)
		}
		extent := int(elem.Extent) * t.Len()
		if extent == 0 || extent > math.MaxUint8 {
			return DataType{}, fmt.Errorf("%w: extent %d of %s out of range", ErrNoPOD, extent, t)
		}
		return DataType{Pod: elem.Pod, Extent: uint8(extent)}, nil
	default:
		return DataType{}, fmt.Errorf("%w: %s", ErrNoPOD, t)
	}
	return DataType{Pod: pod, Extent: 1}, nil
}

// For returns the data type described by T.
func For[T any]() (DataType, error) {
	return Of(reflect.TypeFor[T]())
}
