// Package series implements the typed, nullable column vectors that back
// floe dataframes.
//
// A Series holds a name, a data type and a dense vector of values with a
// parallel validity vector marking which slots hold real data. Individual
// cells are surfaced as Value, a small tagged union over the supported
// scalar types.
package series

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
)

// DataType identifies the element type of a Series.
type DataType int

const (
	TypeInt32 DataType = iota
	TypeFloat64
	TypeBool
	TypeString
	TypeDateTime
)

// String returns the lowercase name of the data type.
func (t DataType) String() string {
	switch t {
	case TypeInt32:
		return "int32"
	case TypeFloat64:
		return "float64"
	case TypeBool:
		return "bool"
	case TypeString:
		return "string"
	case TypeDateTime:
		return "datetime"
	default:
		return fmt.Sprintf("datatype(%d)", int(t))
	}
}

// ParseDataType converts a type name as used in schema files back into a
// DataType.
func ParseDataType(name string) (DataType, error) {
	switch name {
	case "int32", "int":
		return TypeInt32, nil
	case "float64", "float":
		return TypeFloat64, nil
	case "bool":
		return TypeBool, nil
	case "string":
		return TypeString, nil
	case "datetime":
		return TypeDateTime, nil
	default:
		return 0, fmt.Errorf("unknown data type %q", name)
	}
}

type valueKind int

const (
	kindNull valueKind = iota
	kindInt32
	kindFloat64
	kindBool
	kindString
	kindDateTime
)

// Value is a single nullable cell: either null or a scalar of one of the
// supported data types. The zero Value is null.
type Value struct {
	kind valueKind
	i    int64 // int32 and datetime payload
	f    float64
	b    bool
	s    string
}

// Null returns the null value.
func Null() Value { return Value{} }

// Int returns an int32 value.
func Int(v int32) Value { return Value{kind: kindInt32, i: int64(v)} }

// Float returns a float64 value.
func Float(v float64) Value { return Value{kind: kindFloat64, f: v} }

// BoolVal returns a boolean value.
func BoolVal(v bool) Value { return Value{kind: kindBool, b: v} }

// Str returns a string value.
func Str(v string) Value { return Value{kind: kindString, s: v} }

// Time returns a datetime value holding seconds since the Unix epoch.
func Time(epoch int64) Value { return Value{kind: kindDateTime, i: epoch} }

// IsNull reports whether the value is null.
func (v Value) IsNull() bool { return v.kind == kindNull }

// Type returns the value's data type. The second result is false for null,
// which has no type.
func (v Value) Type() (DataType, bool) {
	switch v.kind {
	case kindInt32:
		return TypeInt32, true
	case kindFloat64:
		return TypeFloat64, true
	case kindBool:
		return TypeBool, true
	case kindString:
		return TypeString, true
	case kindDateTime:
		return TypeDateTime, true
	default:
		return 0, false
	}
}

// Int32 returns the int32 payload; ok is false if the value is not int32.
func (v Value) Int32() (int32, bool) {
	if v.kind != kindInt32 {
		return 0, false
	}
	return int32(v.i), true
}

// Float64 returns the float64 payload; ok is false if the value is not
// float64.
func (v Value) Float64() (float64, bool) {
	if v.kind != kindFloat64 {
		return 0, false
	}
	return v.f, true
}

// Bool returns the boolean payload; ok is false if the value is not bool.
func (v Value) Bool() (bool, bool) {
	if v.kind != kindBool {
		return false, false
	}
	return v.b, true
}

// String returns a display form of the value. Null renders as "null".
func (v Value) String() string {
	switch v.kind {
	case kindNull:
		return "null"
	case kindInt32:
		return strconv.FormatInt(v.i, 10)
	case kindFloat64:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case kindBool:
		return strconv.FormatBool(v.b)
	case kindString:
		return v.s
	case kindDateTime:
		return strconv.FormatInt(v.i, 10)
	default:
		return "invalid"
	}
}

// Text returns the string payload; ok is false if the value is not a string.
func (v Value) Text() (string, bool) {
	if v.kind != kindString {
		return "", false
	}
	return v.s, true
}

// DateTime returns the epoch-seconds payload; ok is false if the value is
// not a datetime.
func (v Value) DateTime() (int64, bool) {
	if v.kind != kindDateTime {
		return 0, false
	}
	return v.i, true
}

// AsFloat converts numeric payloads (int32, float64, datetime) to float64.
func (v Value) AsFloat() (float64, bool) {
	switch v.kind {
	case kindInt32, kindDateTime:
		return float64(v.i), true
	case kindFloat64:
		return v.f, true
	default:
		return 0, false
	}
}

// Equal reports whether two values are identical. Floats compare by bit
// pattern, so NaN equals NaN and two NaN cells group together.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case kindNull:
		return true
	case kindFloat64:
		return math.Float64bits(v.f) == math.Float64bits(other.f)
	case kindString:
		return v.s == other.s
	case kindBool:
		return v.b == other.b
	default:
		return v.i == other.i
	}
}

// Compare defines a total order over all values: null sorts before
// everything, values of different types order by type tag (int32 < float64 <
// bool < string < datetime), and values of the same type order naturally.
// Floats order by sign-adjusted bit pattern so NaN has a stable position.
// Returns -1, 0 or 1.
func (v Value) Compare(other Value) int {
	if v.kind != other.kind {
		if v.kind < other.kind {
			return -1
		}
		return 1
	}
	switch v.kind {
	case kindNull:
		return 0
	case kindFloat64:
		return compareFloatBits(v.f, other.f)
	case kindBool:
		switch {
		case v.b == other.b:
			return 0
		case !v.b:
			return -1
		default:
			return 1
		}
	case kindString:
		switch {
		case v.s < other.s:
			return -1
		case v.s > other.s:
			return 1
		default:
			return 0
		}
	default:
		switch {
		case v.i < other.i:
			return -1
		case v.i > other.i:
			return 1
		default:
			return 0
		}
	}
}

// compareFloatBits orders floats by their IEEE-754 bit pattern adjusted so
// that negative values order below positive ones. Unlike <, it gives NaN a
// deterministic place in the order.
func compareFloatBits(a, b float64) int {
	ka := math.Float64bits(a)
	kb := math.Float64bits(b)
	// Flip the pattern for negatives so the integer order matches the
	// numeric order.
	if ka&(1<<63) != 0 {
		ka = ^ka
	} else {
		ka |= 1 << 63
	}
	if kb&(1<<63) != 0 {
		kb = ^kb
	} else {
		kb |= 1 << 63
	}
	switch {
	case ka < kb:
		return -1
	case ka > kb:
		return 1
	default:
		return 0
	}
}

// AppendKey appends a canonical binary encoding of the value to dst. The
// encoding starts with the type tag, so distinct values of different types
// never collide, and floats encode their bit pattern, matching Equal.
// It is the hashing key used by group-by and joins.
func (v Value) AppendKey(dst []byte) []byte {
	dst = append(dst, byte(v.kind))
	switch v.kind {
	case kindNull:
		return dst
	case kindFloat64:
		return binary.LittleEndian.AppendUint64(dst, math.Float64bits(v.f))
	case kindBool:
		if v.b {
			return append(dst, 1)
		}
		return append(dst, 0)
	case kindString:
		dst = binary.LittleEndian.AppendUint64(dst, uint64(len(v.s)))
		return append(dst, v.s...)
	default:
		return binary.LittleEndian.AppendUint64(dst, uint64(v.i))
	}
}
