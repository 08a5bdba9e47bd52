// Package dtype provides Alembic plain-old-data types and Go type conversion.
//
// Every scalar and array property carries a [DataType]: a POD kind plus an
// extent, the number of POD values that make up one element. A 3D point is
// {F32, 3}, a bounding box {F64, 6}, a 4x4 matrix {F64, 16}. The data type is
// fixed for all samples of a property.
//
// # Type Mapping Strategy
//
// Alembic PODs are mapped to Go types as follows:
//
//	POD          | Go Type
//	-------------|------------------
//	Bool         | bool
//	U8 .. U64    | uint8 .. uint64
//	I8 .. I64    | int8 .. int64
//	F16          | Float16
//	F32, F64     | float32, float64
//	String       | string
//	WideString   | string (decoded from UTF-32)
//
// Fixed-size Go arrays add to the extent, so [6]float64 describes {F64, 6}
// and [4][4]float64 describes {F64, 16}. Use [Of] or [For] to compute the
// descriptor of a Go type.
//
// # Decoding
//
// Sample payloads are little-endian and tightly packed. [Decode] and
// [DecodeSlice] reinterpret a payload as Go values with encoding/binary after
// the caller has checked the descriptor once. Strings are NUL-terminated
// and decoded with [DecodeStrings] and [DecodeWideStrings].
package dtype
