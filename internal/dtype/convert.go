package dtype

import (
	"encoding/binary"
	"fmt"
	"unicode/utf8"

	"golang.org/x/exp/constraints"
)

// Number is any numeric element type a payload can be decoded into.
type Number interface {
	constraints.Integer | constraints.Float
}

// Decode reinterprets the start of payload as a T.
// The payload must hold at least binary.Size(T) bytes.
func Decode[T any](payload []byte) (T, error) {
	var v T
	if _, err := binary.Decode(payload, binary.LittleEndian, &v); err != nil {
		return v, fmt.Errorf("decoding %T from %d bytes: %w", v, len(payload), err)
	}
	return v, nil
}

// DecodeSlice reinterprets payload as consecutive T values. Trailing bytes
// that do not fill a whole T are ignored.
func DecodeSlice[T any](payload []byte) ([]T, error) {
	var zero T
	size := binary.Size(zero)
	if size <= 0 {
		return nil, fmt.Errorf("%w: %T is not fixed-size", ErrNoPOD, zero)
	}
	out := make([]T, len(payload)/size)
	if len(out) == 0 {
		return out, nil
	}
	if _, err := binary.Decode(payload[:len(out)*size], binary.LittleEndian, out); err != nil {
		return nil, fmt.Errorf("decoding []%T: %w", zero, err)
	}
	return out, nil
}

// ToFloat64 decodes a numeric payload of the given POD and widens every value.
func ToFloat64(pod PodType, payload []byte) ([]float64, error) {
	switch pod {
	case U8:
		return widen[uint8](payload)
	case I8:
		return widen[int8](payload)
	case U16:
		return widen[uint16](payload)
	case I16:
		return widen[int16](payload)
	case U32:
		return widen[uint32](payload)
	case I32:
		return widen[int32](payload)
	case U64:
		return widen[uint64](payload)
	case I64:
		return widen[int64](payload)
	case F32:
		return widen[float32](payload)
	case F64:
		return DecodeSlice[float64](payload)
	case F16:
		halves, err := DecodeSlice[Float16](payload)
		if err != nil {
			return nil, err
		}
		out := make([]float64, len(halves))
		for i, h := range halves {
			out[i] = float64(h.Float32())
		}
		return out, nil
	case Bool:
		out := make([]float64, len(payload))
		for i, b := range payload {
			if b != 0 {
				out[i] = 1
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %s is not numeric", ErrNoPOD, pod)
	}
}

func widen[E Number](payload []byte) ([]float64, error) {
	vals, err := DecodeSlice[E](payload)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(vals))
	for i, v := range vals {
		out[i] = float64(v)
	}
	return out, nil
}

// DecodeStrings splits a payload of NUL-terminated UTF-8 strings.
// A missing final terminator is tolerated.
func DecodeStrings(payload []byte) ([]string, error) {
	var out []string
	start := 0
	for i, b := range payload {
		if b != 0 {
			continue
		}
		s := payload[start:i]
		if !utf8.Valid(s) {
			return nil, fmt.Errorf("string %d is not valid UTF-8", len(out))
		}
		out = append(out, string(s))
		start = i + 1
	}
	if start < len(payload) {
		s := payload[start:]
		if !utf8.Valid(s) {
			return nil, fmt.Errorf("string %d is not valid UTF-8", len(out))
		}
		out = append(out, string(s))
	}
	return out, nil
}

// DecodeWideStrings splits a payload of NUL-terminated UTF-32 strings.
func DecodeWideStrings(payload []byte) ([]string, error) {
	if len(payload)%4 != 0 {
		return nil, fmt.Errorf("wide string payload of %d bytes is not a multiple of 4", len(payload))
	}
	units, err := DecodeSlice[uint32](payload)
	if err != nil {
		return nil, err
	}

	var out []string
	var cur []rune
	open := false
	for _, u := range units {
		if u == 0 {
			out = append(out, string(cur))
			cur = cur[:0]
			open = false
			continue
		}
		if !utf8.ValidRune(rune(u)) {
			return nil, fmt.Errorf("invalid code point 0x%x in wide string %d", u, len(out))
		}
		cur = append(cur, rune(u))
		open = true
	}
	if open {
		out = append(out, string(cur))
	}
	return out, nil
}
