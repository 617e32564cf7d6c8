package series

import (
	"math"
	"sort"

	"github.com/floedata/floe"
)

// Reductions ignore null slots. A reduction over an empty or all-null
// series returns the null value, which is distinct from an error: asking
// for the sum of a string series fails, asking for the sum of an empty
// int32 series simply has no answer.

// Count returns the number of valid slots.
func (s *Series) Count() int {
	n := 0
	for _, ok := range s.valid {
		if ok {
			n++
		}
	}
	return n
}

// validFloats collects the valid slots of a numeric or datetime series as
// float64s.
func (s *Series) validFloats(op string) ([]float64, error) {
	switch s.dtype {
	case TypeInt32, TypeFloat64, TypeDateTime:
	default:
		return nil, floe.Unsupported("%s on %s series", op, s.dtype)
	}
	out := make([]float64, 0, s.Len())
	for i := 0; i < s.Len(); i++ {
		if !s.valid[i] {
			continue
		}
		f, _ := s.Get(i).AsFloat()
		out = append(out, f)
	}
	return out, nil
}

// Sum returns the sum of all valid slots. Int32 sums stay int32, float64
// sums stay float64 and datetime sums stay datetime.
func (s *Series) Sum() (Value, error) {
	switch s.dtype {
	case TypeInt32:
		var sum int32
		any := false
		for i, v := range s.i32 {
			if s.valid[i] {
				sum += v
				any = true
			}
		}
		if !any {
			return Null(), nil
		}
		return Int(sum), nil
	case TypeFloat64:
		var sum float64
		any := false
		for i, v := range s.f64 {
			if s.valid[i] {
				sum += v
				any = true
			}
		}
		if !any {
			return Null(), nil
		}
		return Float(sum), nil
	case TypeDateTime:
		var sum int64
		any := false
		for i, v := range s.dts {
			if s.valid[i] {
				sum += v
				any = true
			}
		}
		if !any {
			return Null(), nil
		}
		return Time(sum), nil
	default:
		return Null(), floe.Unsupported("sum on %s series", s.dtype)
	}
}

func (s *Series) extreme(min bool) (Value, error) {
	op := "max"
	if min {
		op = "min"
	}
	switch s.dtype {
	case TypeInt32, TypeFloat64, TypeDateTime, TypeString:
	default:
		return Null(), floe.Unsupported("%s on %s series", op, s.dtype)
	}
	best := Null()
	for i := 0; i < s.Len(); i++ {
		if !s.valid[i] {
			continue
		}
		v := s.Get(i)
		if best.IsNull() {
			best = v
			continue
		}
		c := v.Compare(best)
		if (min && c < 0) || (!min && c > 0) {
			best = v
		}
	}
	return best, nil
}

// Min returns the smallest valid value of a numeric, datetime or string
// series, or null when there are none.
func (s *Series) Min() (Value, error) { return s.extreme(true) }

// Max returns the largest valid value of a numeric, datetime or string
// series, or null when there are none.
func (s *Series) Max() (Value, error) { return s.extreme(false) }

// Mean returns the arithmetic mean of the valid slots as a float64, or
// null when there are none.
func (s *Series) Mean() (Value, error) {
	vals, err := s.validFloats("mean")
	if err != nil {
		return Null(), err
	}
	if len(vals) == 0 {
		return Null(), nil
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return Float(sum / float64(len(vals))), nil
}

// Median returns the median of the valid slots, or null when there are
// none. With an odd count of int32 slots the result stays int32; an even
// count averages the two middle values into a float64. Float64 and
// datetime medians are float64.
func (s *Series) Median() (Value, error) {
	vals, err := s.validFloats("median")
	if err != nil {
		return Null(), err
	}
	if len(vals) == 0 {
		return Null(), nil
	}
	sort.Float64s(vals)
	mid := len(vals) / 2
	if len(vals)%2 == 1 {
		if s.dtype == TypeInt32 {
			return Int(int32(vals[mid])), nil
		}
		return Float(vals[mid]), nil
	}
	return Float((vals[mid-1] + vals[mid]) / 2), nil
}

// StdDev returns the sample standard deviation (n-1 denominator) of the
// valid slots as a float64. Fewer than two valid slots has no answer and
// returns null.
func (s *Series) StdDev() (Value, error) {
	vals, err := s.validFloats("standard deviation")
	if err != nil {
		return Null(), err
	}
	if len(vals) < 2 {
		return Null(), nil
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	mean := sum / float64(len(vals))
	var sq float64
	for _, v := range vals {
		d := v - mean
		sq += d * d
	}
	return Float(math.Sqrt(sq / float64(len(vals)-1))), nil
}

// pairedFloats collects the slots where both series are valid, as aligned
// float64 pairs. The series must have equal lengths.
func (s *Series) pairedFloats(other *Series, op string) (xs, ys []float64, err error) {
	if err := s.checkLen(other, op); err != nil {
		return nil, nil, err
	}
	if _, err := s.validFloats(op); err != nil {
		return nil, nil, err
	}
	if _, err := other.validFloats(op); err != nil {
		return nil, nil, err
	}
	for i := 0; i < s.Len(); i++ {
		if !s.valid[i] || !other.valid[i] {
			continue
		}
		x, _ := s.Get(i).AsFloat()
		y, _ := other.Get(i).AsFloat()
		xs = append(xs, x)
		ys = append(ys, y)
	}
	return xs, ys, nil
}

// Covariance returns the sample covariance of two numeric series, pairing
// only slots valid on both sides. Fewer than two pairs returns null.
func (s *Series) Covariance(other *Series) (Value, error) {
	xs, ys, err := s.pairedFloats(other, "covariance")
	if err != nil {
		return Null(), err
	}
	if len(xs) < 2 {
		return Null(), nil
	}
	return Float(sampleCovariance(xs, ys)), nil
}

// Correlation returns the Pearson correlation coefficient of two numeric
// series, pairing only slots valid on both sides. Fewer than two pairs, or
// a side with zero variance, returns null.
func (s *Series) Correlation(other *Series) (Value, error) {
	xs, ys, err := s.pairedFloats(other, "correlation")
	if err != nil {
		return Null(), err
	}
	if len(xs) < 2 {
		return Null(), nil
	}
	cov := sampleCovariance(xs, ys)
	sx := sampleVariance(xs)
	sy := sampleVariance(ys)
	if sx == 0 || sy == 0 {
		return Null(), nil
	}
	return Float(cov / math.Sqrt(sx*sy)), nil
}

func meanOf(vals []float64) float64 {
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

func sampleCovariance(xs, ys []float64) float64 {
	mx := meanOf(xs)
	my := meanOf(ys)
	var sum float64
	for i := range xs {
		sum += (xs[i] - mx) * (ys[i] - my)
	}
	return sum / float64(len(xs)-1)
}

func sampleVariance(vals []float64) float64 {
	m := meanOf(vals)
	var sum float64
	for _, v := range vals {
		d := v - m
		sum += d * d
	}
	return sum / float64(len(vals)-1)
}
