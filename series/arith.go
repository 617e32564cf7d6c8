package series

import (
	"github.com/floedata/floe"
	"golang.org/x/exp/constraints"
)

// Vectorized binary operations. All of them require operands of equal
// length and produce a result slot that is valid only where both input
// slots are valid. Mixing int32 and float64 promotes the int32 side to
// float64; any other type mix is an error.

func (s *Series) checkLen(other *Series, op string) error {
	if s.Len() != other.Len() {
		return floe.InvalidOperation("%s: series %q has length %d but series %q has length %d",
			op, s.name, s.Len(), other.name, other.Len())
	}
	return nil
}

// zipValid returns the slot-wise conjunction of two validity vectors.
func zipValid(a, b []bool) []bool {
	out := make([]bool, len(a))
	for i := range a {
		out[i] = a[i] && b[i]
	}
	return out
}

type numeric interface {
	constraints.Integer | constraints.Float
}

// mapBinary applies f slot-wise where both slots are valid. f may report a
// slot as invalid, which is how division marks zero divisors.
func mapBinary[T numeric](a, b []T, valid []bool, f func(T, T) (T, bool)) ([]T, []bool) {
	out := make([]T, len(a))
	outValid := append([]bool{}, valid...)
	for i := range a {
		if !outValid[i] {
			continue
		}
		v, ok := f(a[i], b[i])
		out[i] = v
		outValid[i] = ok
	}
	return out, outValid
}

// floats widens the series to a float64 vector, keeping validity aside.
// Only int32 and float64 series can widen.
func (s *Series) floats() ([]float64, bool) {
	switch s.dtype {
	case TypeFloat64:
		return s.f64, true
	case TypeInt32:
		out := make([]float64, len(s.i32))
		for i, v := range s.i32 {
			out[i] = float64(v)
		}
		return out, true
	default:
		return nil, false
	}
}

type arithOp int

const (
	opAdd arithOp = iota
	opSub
	opMul
	opDiv
)

func (op arithOp) String() string {
	switch op {
	case opAdd:
		return "add"
	case opSub:
		return "subtract"
	case opMul:
		return "multiply"
	default:
		return "divide"
	}
}

func applyArith[T numeric](op arithOp, a, b T) (T, bool) {
	switch op {
	case opAdd:
		return a + b, true
	case opSub:
		return a - b, true
	case opMul:
		return a * b, true
	default:
		var zero T
		if b == zero {
			// Division by zero yields null rather than a panic or an
			// infinity, for integers and floats alike.
			return zero, false
		}
		return a / b, true
	}
}

func (s *Series) arith(other *Series, op arithOp) (*Series, error) {
	if err := s.checkLen(other, op.String()); err != nil {
		return nil, err
	}
	valid := zipValid(s.valid, other.valid)

	switch {
	case s.dtype == TypeInt32 && other.dtype == TypeInt32:
		data, outValid := mapBinary(s.i32, other.i32, valid, func(a, b int32) (int32, bool) {
			return applyArith(op, a, b)
		})
		return NewInt32(s.name, data, outValid), nil
	case (s.dtype == TypeInt32 || s.dtype == TypeFloat64) && (other.dtype == TypeInt32 || other.dtype == TypeFloat64):
		lf, _ := s.floats()
		rf, _ := other.floats()
		data, outValid := mapBinary(lf, rf, valid, func(a, b float64) (float64, bool) {
			return applyArith(op, a, b)
		})
		return NewFloat64(s.name, data, outValid), nil
	default:
		return nil, floe.Unsupported("%s between %s and %s series", op, s.dtype, other.dtype)
	}
}

// Add returns the slot-wise sum of two numeric series.
func (s *Series) Add(other *Series) (*Series, error) { return s.arith(other, opAdd) }

// Subtract returns the slot-wise difference of two numeric series.
func (s *Series) Subtract(other *Series) (*Series, error) { return s.arith(other, opSub) }

// Multiply returns the slot-wise product of two numeric series.
func (s *Series) Multiply(other *Series) (*Series, error) { return s.arith(other, opMul) }

// Divide returns the slot-wise quotient of two numeric series. Slots with a
// zero divisor come out null.
func (s *Series) Divide(other *Series) (*Series, error) { return s.arith(other, opDiv) }

func compareKernel[T constraints.Ordered](a, b []T, valid []bool, gt bool) []bool {
	out := make([]bool, len(a))
	for i := range a {
		if !valid[i] {
			continue
		}
		if gt {
			out[i] = a[i] > b[i]
		} else {
			out[i] = a[i] == b[i]
		}
	}
	return out
}

func (s *Series) compare(other *Series, gt bool) (*Series, error) {
	opName := "equal"
	if gt {
		opName = "greater-than"
	}
	if err := s.checkLen(other, opName); err != nil {
		return nil, err
	}
	valid := zipValid(s.valid, other.valid)

	switch {
	case s.dtype == TypeInt32 && other.dtype == TypeInt32:
		return NewBool(s.name, compareKernel(s.i32, other.i32, valid, gt), valid), nil
	case (s.dtype == TypeInt32 || s.dtype == TypeFloat64) && (other.dtype == TypeInt32 || other.dtype == TypeFloat64):
		lf, _ := s.floats()
		rf, _ := other.floats()
		return NewBool(s.name, compareKernel(lf, rf, valid, gt), valid), nil
	case s.dtype == TypeString && other.dtype == TypeString:
		return NewBool(s.name, compareKernel(s.strs, other.strs, valid, gt), valid), nil
	case s.dtype == TypeDateTime && other.dtype == TypeDateTime:
		return NewBool(s.name, compareKernel(s.dts, other.dts, valid, gt), valid), nil
	case s.dtype == TypeBool && other.dtype == TypeBool && !gt:
		out := make([]bool, s.Len())
		for i := range out {
			if valid[i] {
				out[i] = s.bools[i] == other.bools[i]
			}
		}
		return NewBool(s.name, out, valid), nil
	default:
		return nil, floe.Unsupported("%s between %s and %s series", opName, s.dtype, other.dtype)
	}
}

// Equal returns a boolean series marking slots where both operands hold the
// same value. Result slots are valid only where both inputs are.
func (s *Series) Equal(other *Series) (*Series, error) { return s.compare(other, false) }

// Gt returns a boolean series marking slots where s is strictly greater
// than other. Defined for numeric, string and datetime operands.
func (s *Series) Gt(other *Series) (*Series, error) { return s.compare(other, true) }

// Lt returns a boolean series marking slots where s is strictly less than
// other. The result keeps the receiver's name, like every binary op.
func (s *Series) Lt(other *Series) (*Series, error) {
	out, err := other.compare(s, true)
	if err != nil {
		return nil, err
	}
	return out.Rename(s.name), nil
}

func (s *Series) logical(other *Series, and bool) (*Series, error) {
	opName := "or"
	if and {
		opName = "and"
	}
	if err := s.checkLen(other, opName); err != nil {
		return nil, err
	}
	if s.dtype != TypeBool || other.dtype != TypeBool {
		return nil, floe.Unsupported("%s between %s and %s series", opName, s.dtype, other.dtype)
	}
	valid := zipValid(s.valid, other.valid)
	out := make([]bool, s.Len())
	for i := range out {
		if !valid[i] {
			continue
		}
		if and {
			out[i] = s.bools[i] && other.bools[i]
		} else {
			out[i] = s.bools[i] || other.bools[i]
		}
	}
	return NewBool(s.name, out, valid), nil
}

// And returns the slot-wise conjunction of two boolean series.
func (s *Series) And(other *Series) (*Series, error) { return s.logical(other, true) }

// Or returns the slot-wise disjunction of two boolean series.
func (s *Series) Or(other *Series) (*Series, error) { return s.logical(other, false) }

// Not returns the slot-wise negation of a boolean series.
func (s *Series) Not() (*Series, error) {
	if s.dtype != TypeBool {
		return nil, floe.Unsupported("not on %s series", s.dtype)
	}
	out := make([]bool, s.Len())
	for i, v := range s.bools {
		if s.valid[i] {
			out[i] = !v
		}
	}
	return NewBool(s.name, out, append([]bool{}, s.valid...)), nil
}
