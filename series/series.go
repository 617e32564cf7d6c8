package series

import (
	"sort"
	"strconv"

	"github.com/floedata/floe"
)

// Series is a named, typed column of nullable values. Data is stored in a
// dense vector for the element type plus a parallel validity vector; slot i
// holds real data only when valid[i] is true.
//
// Series values are immutable by convention: every operation returns a new
// Series and callers must not mutate slices passed to the constructors.
type Series struct {
	name  string
	dtype DataType

	i32   []int32
	f64   []float64
	bools []bool
	strs  []string
	dts   []int64 // epoch seconds

	valid []bool
}

// allValid returns a validity vector of n true slots.
func allValid(n int) []bool {
	v := make([]bool, n)
	for i := range v {
		v[i] = true
	}
	return v
}

func normalizeValidity(valid []bool, n int) []bool {
	if valid == nil {
		return allValid(n)
	}
	return valid
}

// NewInt32 builds an int32 series. A nil valid marks every slot valid;
// otherwise valid must have the same length as values.
func NewInt32(name string, values []int32, valid []bool) *Series {
	return &Series{name: name, dtype: TypeInt32, i32: values, valid: normalizeValidity(valid, len(values))}
}

// NewFloat64 builds a float64 series. A nil valid marks every slot valid.
func NewFloat64(name string, values []float64, valid []bool) *Series {
	return &Series{name: name, dtype: TypeFloat64, f64: values, valid: normalizeValidity(valid, len(values))}
}

// NewBool builds a boolean series. A nil valid marks every slot valid.
func NewBool(name string, values []bool, valid []bool) *Series {
	return &Series{name: name, dtype: TypeBool, bools: values, valid: normalizeValidity(valid, len(values))}
}

// NewString builds a string series. A nil valid marks every slot valid.
func NewString(name string, values []string, valid []bool) *Series {
	return &Series{name: name, dtype: TypeString, strs: values, valid: normalizeValidity(valid, len(values))}
}

// NewDateTime builds a datetime series from epoch seconds. A nil valid
// marks every slot valid.
func NewDateTime(name string, values []int64, valid []bool) *Series {
	return &Series{name: name, dtype: TypeDateTime, dts: values, valid: normalizeValidity(valid, len(values))}
}

// fromPtrs splits a pointer slice into a dense vector plus validity, with
// nil pointers as null slots.
func fromPtrs[T any](values []*T) ([]T, []bool) {
	dense := make([]T, len(values))
	valid := make([]bool, len(values))
	for i, p := range values {
		if p != nil {
			dense[i] = *p
			valid[i] = true
		}
	}
	return dense, valid
}

// NewInt32FromPtrs builds an int32 series with nil entries as nulls.
func NewInt32FromPtrs(name string, values []*int32) *Series {
	dense, valid := fromPtrs(values)
	return NewInt32(name, dense, valid)
}

// NewFloat64FromPtrs builds a float64 series with nil entries as nulls.
func NewFloat64FromPtrs(name string, values []*float64) *Series {
	dense, valid := fromPtrs(values)
	return NewFloat64(name, dense, valid)
}

// NewBoolFromPtrs builds a boolean series with nil entries as nulls.
func NewBoolFromPtrs(name string, values []*bool) *Series {
	dense, valid := fromPtrs(values)
	return NewBool(name, dense, valid)
}

// NewStringFromPtrs builds a string series with nil entries as nulls.
func NewStringFromPtrs(name string, values []*string) *Series {
	dense, valid := fromPtrs(values)
	return NewString(name, dense, valid)
}

// NewDateTimeFromPtrs builds a datetime series with nil entries as nulls.
func NewDateTimeFromPtrs(name string, values []*int64) *Series {
	dense, valid := fromPtrs(values)
	return NewDateTime(name, dense, valid)
}

// Empty builds a zero-length series of the given type.
func Empty(name string, dtype DataType) *Series {
	s := &Series{name: name, dtype: dtype, valid: []bool{}}
	switch dtype {
	case TypeInt32:
		s.i32 = []int32{}
	case TypeFloat64:
		s.f64 = []float64{}
	case TypeBool:
		s.bools = []bool{}
	case TypeString:
		s.strs = []string{}
	case TypeDateTime:
		s.dts = []int64{}
	}
	return s
}

// FromValues builds a series of the given type from individual cells.
// Null cells and cells of a different type become null slots.
func FromValues(name string, dtype DataType, values []Value) *Series {
	n := len(values)
	valid := make([]bool, n)
	s := &Series{name: name, dtype: dtype, valid: valid}
	switch dtype {
	case TypeInt32:
		s.i32 = make([]int32, n)
		for i, v := range values {
			if x, ok := v.Int32(); ok {
				s.i32[i] = x
				valid[i] = true
			}
		}
	case TypeFloat64:
		s.f64 = make([]float64, n)
		for i, v := range values {
			if x, ok := v.Float64(); ok {
				s.f64[i] = x
				valid[i] = true
			} else if x, ok := v.Int32(); ok {
				// Int cells widen rather than vanish.
				s.f64[i] = float64(x)
				valid[i] = true
			}
		}
	case TypeBool:
		s.bools = make([]bool, n)
		for i, v := range values {
			if x, ok := v.Bool(); ok {
				s.bools[i] = x
				valid[i] = true
			}
		}
	case TypeString:
		s.strs = make([]string, n)
		for i, v := range values {
			if x, ok := v.Text(); ok {
				s.strs[i] = x
				valid[i] = true
			}
		}
	case TypeDateTime:
		s.dts = make([]int64, n)
		for i, v := range values {
			if x, ok := v.DateTime(); ok {
				s.dts[i] = x
				valid[i] = true
			}
		}
	}
	return s
}

// Name returns the series name.
func (s *Series) Name() string { return s.name }

// Rename returns a shallow copy of the series under a new name.
func (s *Series) Rename(name string) *Series {
	c := *s
	c.name = name
	return &c
}

// DataType returns the element type.
func (s *Series) DataType() DataType { return s.dtype }

// Len returns the number of slots, valid or not.
func (s *Series) Len() int { return len(s.valid) }

// IsEmpty reports whether the series has no slots.
func (s *Series) IsEmpty() bool { return len(s.valid) == 0 }

// Valid reports whether slot i holds real data. Out-of-range indices are
// invalid.
func (s *Series) Valid(i int) bool {
	return i >= 0 && i < len(s.valid) && s.valid[i]
}

// NullCount returns the number of null slots.
func (s *Series) NullCount() int {
	n := 0
	for _, ok := range s.valid {
		if !ok {
			n++
		}
	}
	return n
}

// Get returns the cell at index i as a Value. Null slots and out-of-range
// indices return the null value.
func (s *Series) Get(i int) Value {
	if !s.Valid(i) {
		return Null()
	}
	switch s.dtype {
	case TypeInt32:
		return Int(s.i32[i])
	case TypeFloat64:
		return Float(s.f64[i])
	case TypeBool:
		return BoolVal(s.bools[i])
	case TypeString:
		return Str(s.strs[i])
	case TypeDateTime:
		return Time(s.dts[i])
	default:
		return Null()
	}
}

// Take returns a new series holding the slots at the given indices, in
// order. Indices may repeat. An out-of-range index is an error.
func (s *Series) Take(indices []int) (*Series, error) {
	n := len(indices)
	out := &Series{name: s.name, dtype: s.dtype, valid: make([]bool, n)}
	switch s.dtype {
	case TypeInt32:
		out.i32 = make([]int32, n)
	case TypeFloat64:
		out.f64 = make([]float64, n)
	case TypeBool:
		out.bools = make([]bool, n)
	case TypeString:
		out.strs = make([]string, n)
	case TypeDateTime:
		out.dts = make([]int64, n)
	}
	for j, i := range indices {
		if i < 0 || i >= len(s.valid) {
			return nil, floe.InvalidOperation("take index %d out of range for series %q of length %d", i, s.name, len(s.valid))
		}
		if !s.valid[i] {
			continue
		}
		out.valid[j] = true
		switch s.dtype {
		case TypeInt32:
			out.i32[j] = s.i32[i]
		case TypeFloat64:
			out.f64[j] = s.f64[i]
		case TypeBool:
			out.bools[j] = s.bools[i]
		case TypeString:
			out.strs[j] = s.strs[i]
		case TypeDateTime:
			out.dts[j] = s.dts[i]
		}
	}
	return out, nil
}

// FillNull returns a copy of the series with every null slot replaced by
// value. The value's type must match the series type.
func (s *Series) FillNull(value Value) (*Series, error) {
	vt, ok := value.Type()
	if !ok {
		return nil, floe.InvalidOperation("cannot fill nulls with a null value")
	}
	if vt != s.dtype {
		return nil, floe.DataTypeMismatch("fill value is %s but series %q is %s", vt, s.name, s.dtype)
	}
	out := s.clone()
	for i, valid := range out.valid {
		if valid {
			continue
		}
		out.valid[i] = true
		switch s.dtype {
		case TypeInt32:
			out.i32[i], _ = value.Int32()
		case TypeFloat64:
			out.f64[i], _ = value.Float64()
		case TypeBool:
			out.bools[i], _ = value.Bool()
		case TypeString:
			out.strs[i], _ = value.Text()
		case TypeDateTime:
			out.dts[i], _ = value.DateTime()
		}
	}
	return out, nil
}

// Cast converts the series to another element type. Null slots stay null,
// and slots that cannot be represented in the target type become null:
// casting int32 to float64 is exact, float64 to int32 truncates, string
// parses, and anything cast to string renders its display form.
func (s *Series) Cast(to DataType) (*Series, error) {
	if to == s.dtype {
		return s, nil
	}
	n := s.Len()
	valid := make([]bool, n)
	out := &Series{name: s.name, dtype: to, valid: valid}

	setFloat := func(i int, f float64) {
		out.f64[i] = f
		valid[i] = true
	}

	switch to {
	case TypeInt32:
		out.i32 = make([]int32, n)
		for i := 0; i < n; i++ {
			if !s.valid[i] {
				continue
			}
			switch s.dtype {
			case TypeFloat64:
				out.i32[i] = int32(s.f64[i])
				valid[i] = true
			case TypeDateTime:
				out.i32[i] = int32(s.dts[i])
				valid[i] = true
			case TypeString:
				if x, err := strconv.ParseInt(s.strs[i], 10, 32); err == nil {
					out.i32[i] = int32(x)
					valid[i] = true
				}
			default:
				return nil, floe.Unsupported("cast from %s to %s", s.dtype, to)
			}
		}
	case TypeFloat64:
		out.f64 = make([]float64, n)
		for i := 0; i < n; i++ {
			if !s.valid[i] {
				continue
			}
			switch s.dtype {
			case TypeInt32:
				setFloat(i, float64(s.i32[i]))
			case TypeDateTime:
				setFloat(i, float64(s.dts[i]))
			case TypeString:
				if x, err := strconv.ParseFloat(s.strs[i], 64); err == nil {
					setFloat(i, x)
				}
			default:
				return nil, floe.Unsupported("cast from %s to %s", s.dtype, to)
			}
		}
	case TypeString:
		out.strs = make([]string, n)
		for i := 0; i < n; i++ {
			if !s.valid[i] {
				continue
			}
			out.strs[i] = s.Get(i).String()
			valid[i] = true
		}
	case TypeDateTime:
		out.dts = make([]int64, n)
		for i := 0; i < n; i++ {
			if !s.valid[i] {
				continue
			}
			switch s.dtype {
			case TypeInt32:
				out.dts[i] = int64(s.i32[i])
				valid[i] = true
			case TypeFloat64:
				out.dts[i] = int64(s.f64[i])
				valid[i] = true
			case TypeString:
				if x, err := strconv.ParseInt(s.strs[i], 10, 64); err == nil {
					out.dts[i] = x
					valid[i] = true
				}
			default:
				return nil, floe.Unsupported("cast from %s to %s", s.dtype, to)
			}
		}
	case TypeBool:
		out.bools = make([]bool, n)
		for i := 0; i < n; i++ {
			if !s.valid[i] {
				continue
			}
			switch s.dtype {
			case TypeString:
				if x, err := strconv.ParseBool(s.strs[i]); err == nil {
					out.bools[i] = x
					valid[i] = true
				}
			default:
				return nil, floe.Unsupported("cast from %s to %s", s.dtype, to)
			}
		}
	default:
		return nil, floe.Unsupported("cast to unknown data type %d", int(to))
	}
	return out, nil
}

// Append returns the concatenation of s and other, which must share the
// same element type.
func (s *Series) Append(other *Series) (*Series, error) {
	if s.dtype != other.dtype {
		return nil, floe.DataTypeMismatch("cannot append %s series %q to %s series %q", other.dtype, other.name, s.dtype, s.name)
	}
	out := &Series{name: s.name, dtype: s.dtype}
	out.valid = append(append([]bool{}, s.valid...), other.valid...)
	switch s.dtype {
	case TypeInt32:
		out.i32 = append(append([]int32{}, s.i32...), other.i32...)
	case TypeFloat64:
		out.f64 = append(append([]float64{}, s.f64...), other.f64...)
	case TypeBool:
		out.bools = append(append([]bool{}, s.bools...), other.bools...)
	case TypeString:
		out.strs = append(append([]string{}, s.strs...), other.strs...)
	case TypeDateTime:
		out.dts = append(append([]int64{}, s.dts...), other.dts...)
	}
	return out, nil
}

// Unique returns the distinct valid values of the series in sorted order.
// Null slots are dropped.
func (s *Series) Unique() *Series {
	seen := make(map[string]Value)
	var keys []string
	var buf []byte
	for i := 0; i < s.Len(); i++ {
		if !s.valid[i] {
			continue
		}
		v := s.Get(i)
		buf = v.AppendKey(buf[:0])
		k := string(buf)
		if _, ok := seen[k]; !ok {
			seen[k] = v
			keys = append(keys, k)
		}
	}
	values := make([]Value, 0, len(keys))
	for _, k := range keys {
		values = append(values, seen[k])
	}
	sort.Slice(values, func(i, j int) bool { return values[i].Compare(values[j]) < 0 })
	return FromValues(s.name, s.dtype, values)
}

// Values returns every cell as a Value slice, nulls included.
func (s *Series) Values() []Value {
	out := make([]Value, s.Len())
	for i := range out {
		out[i] = s.Get(i)
	}
	return out
}

func (s *Series) clone() *Series {
	out := &Series{name: s.name, dtype: s.dtype}
	out.valid = append([]bool{}, s.valid...)
	out.i32 = append([]int32{}, s.i32...)
	out.f64 = append([]float64{}, s.f64...)
	out.bools = append([]bool{}, s.bools...)
	out.strs = append([]string{}, s.strs...)
	out.dts = append([]int64{}, s.dts...)
	return out
}
