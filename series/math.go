package series

import (
	"math"

	"github.com/floedata/floe"
)

// Abs returns the slot-wise absolute value of a numeric series, keeping
// its element type.
func (s *Series) Abs() (*Series, error) {
	switch s.dtype {
	case TypeInt32:
		out := make([]int32, s.Len())
		for i, v := range s.i32 {
			if v < 0 {
				v = -v
			}
			out[i] = v
		}
		return NewInt32(s.name, out, append([]bool{}, s.valid...)), nil
	case TypeFloat64:
		out := make([]float64, s.Len())
		for i, v := range s.f64 {
			out[i] = math.Abs(v)
		}
		return NewFloat64(s.name, out, append([]bool{}, s.valid...)), nil
	default:
		return nil, floe.Unsupported("abs on %s series", s.dtype)
	}
}

// Sqrt returns the slot-wise square root of a numeric series as float64.
// Negative slots come out null.
func (s *Series) Sqrt() (*Series, error) {
	switch s.dtype {
	case TypeInt32, TypeFloat64:
	default:
		return nil, floe.Unsupported("sqrt on %s series", s.dtype)
	}
	data, _ := s.floats()
	out := make([]float64, s.Len())
	valid := make([]bool, s.Len())
	for i, v := range data {
		if !s.valid[i] || v < 0 {
			continue
		}
		out[i] = math.Sqrt(v)
		valid[i] = true
	}
	return NewFloat64(s.name, out, valid), nil
}

// Pow raises each slot of a numeric series to the given exponent, as
// float64. Slots where the result is not finite come out null.
func (s *Series) Pow(exp float64) (*Series, error) {
	switch s.dtype {
	case TypeInt32, TypeFloat64:
	default:
		return nil, floe.Unsupported("pow on %s series", s.dtype)
	}
	data, _ := s.floats()
	out := make([]float64, s.Len())
	valid := make([]bool, s.Len())
	for i, v := range data {
		if !s.valid[i] {
			continue
		}
		r := math.Pow(v, exp)
		if math.IsInf(r, 0) || math.IsNaN(r) {
			continue
		}
		out[i] = r
		valid[i] = true
	}
	return NewFloat64(s.name, out, valid), nil
}
