package series

import (
	"fmt"
	"math"

	"github.com/floedata/floe"
)

// Rolling window operations over numeric series. Each result slot i covers
// the window ending at i; the first window-1 slots are null, and nulls
// inside a window are skipped rather than poisoning it.

func (s *Series) windowFloats(window int, op string) ([]float64, []bool, error) {
	if window <= 0 {
		return nil, nil, floe.InvalidOperation("window size must be greater than 0")
	}
	if window > s.Len() {
		return nil, nil, floe.InvalidOperation("window size %d exceeds series length %d", window, s.Len())
	}
	switch s.dtype {
	case TypeInt32, TypeFloat64:
	default:
		return nil, nil, floe.Unsupported("%s on %s series", op, s.dtype)
	}
	f, _ := s.floats()
	return f, s.valid, nil
}

func (s *Series) rolling(window int, op string, agg func(vals []float64) (float64, bool)) (*Series, error) {
	data, valid, err := s.windowFloats(window, op)
	if err != nil {
		return nil, err
	}
	n := len(data)
	out := make([]float64, n)
	outValid := make([]bool, n)
	scratch := make([]float64, 0, window)
	for i := 0; i < n; i++ {
		if i < window-1 {
			continue
		}
		scratch = scratch[:0]
		for j := i + 1 - window; j <= i; j++ {
			if valid[j] {
				scratch = append(scratch, data[j])
			}
		}
		if len(scratch) == 0 {
			continue
		}
		if v, ok := agg(scratch); ok {
			out[i] = v
			outValid[i] = true
		}
	}
	name := fmt.Sprintf("%s_%s_%d", s.name, op, window)
	return NewFloat64(name, out, outValid), nil
}

// RollingMean returns the mean of each trailing window as a float64 series.
func (s *Series) RollingMean(window int) (*Series, error) {
	return s.rolling(window, "rolling_mean", func(vals []float64) (float64, bool) {
		return meanOf(vals), true
	})
}

// RollingSum returns the sum of each trailing window as a float64 series.
func (s *Series) RollingSum(window int) (*Series, error) {
	return s.rolling(window, "rolling_sum", func(vals []float64) (float64, bool) {
		var sum float64
		for _, v := range vals {
			sum += v
		}
		return sum, true
	})
}

// RollingMin returns the minimum of each trailing window.
func (s *Series) RollingMin(window int) (*Series, error) {
	return s.rolling(window, "rolling_min", func(vals []float64) (float64, bool) {
		min := vals[0]
		for _, v := range vals[1:] {
			if v < min {
				min = v
			}
		}
		return min, true
	})
}

// RollingMax returns the maximum of each trailing window.
func (s *Series) RollingMax(window int) (*Series, error) {
	return s.rolling(window, "rolling_max", func(vals []float64) (float64, bool) {
		max := vals[0]
		for _, v := range vals[1:] {
			if v > max {
				max = v
			}
		}
		return max, true
	})
}

// RollingStd returns the sample standard deviation of each trailing window.
// Windows with fewer than two valid slots come out null.
func (s *Series) RollingStd(window int) (*Series, error) {
	return s.rolling(window, "rolling_std", func(vals []float64) (float64, bool) {
		if len(vals) < 2 {
			return 0, false
		}
		return math.Sqrt(sampleVariance(vals)), true
	})
}

// CumSum returns the running total of the series, keeping its element
// type. Null slots stay null and do not contribute to the total.
func (s *Series) CumSum() (*Series, error) {
	name := s.name + "_cumsum"
	switch s.dtype {
	case TypeInt32:
		out := make([]int32, s.Len())
		valid := make([]bool, s.Len())
		var running int32
		for i, v := range s.i32 {
			if !s.valid[i] {
				continue
			}
			running += v
			out[i] = running
			valid[i] = true
		}
		return NewInt32(name, out, valid), nil
	case TypeFloat64:
		out := make([]float64, s.Len())
		valid := make([]bool, s.Len())
		var running float64
		for i, v := range s.f64 {
			if !s.valid[i] {
				continue
			}
			running += v
			out[i] = running
			valid[i] = true
		}
		return NewFloat64(name, out, valid), nil
	default:
		return nil, floe.Unsupported("cumulative sum on %s series", s.dtype)
	}
}

// PctChange returns the relative change between consecutive slots as a
// float64 series. The first slot, slots adjacent to a null and slots whose
// predecessor is zero come out null.
func (s *Series) PctChange() (*Series, error) {
	switch s.dtype {
	case TypeInt32, TypeFloat64:
	default:
		return nil, floe.Unsupported("percentage change on %s series", s.dtype)
	}
	data, _ := s.floats()
	out := make([]float64, s.Len())
	valid := make([]bool, s.Len())
	for i := 1; i < s.Len(); i++ {
		if !s.valid[i-1] || !s.valid[i] || data[i-1] == 0 {
			continue
		}
		out[i] = (data[i] - data[i-1]) / data[i-1]
		valid[i] = true
	}
	return NewFloat64(s.name+"_pct_change", out, valid), nil
}

// InterpolateNulls fills interior null runs of a numeric series by linear
// interpolation between the surrounding valid values. Leading and trailing
// nulls have no anchor on one side and stay null. Int32 series round the
// interpolated values back to int32.
func (s *Series) InterpolateNulls() (*Series, error) {
	switch s.dtype {
	case TypeInt32, TypeFloat64:
	default:
		return nil, floe.Unsupported("interpolation on %s series", s.dtype)
	}
	data, _ := s.floats()
	filled := append([]float64{}, data...)
	valid := append([]bool{}, s.valid...)

	i := 0
	for i < len(filled) {
		if valid[i] {
			i++
			continue
		}
		start := i
		for i < len(filled) && !valid[i] {
			i++
		}
		end := i // first valid slot after the run, or len
		if start == 0 || end == len(filled) {
			continue
		}
		prev := filled[start-1]
		next := filled[end]
		count := float64(end - start + 1)
		for j := start; j < end; j++ {
			filled[j] = prev + (float64(j-start)+1)/count*(next-prev)
			valid[j] = true
		}
	}

	if s.dtype == TypeInt32 {
		out := make([]int32, len(filled))
		for j, v := range filled {
			out[j] = int32(math.Round(v))
		}
		return NewInt32(s.name, out, valid), nil
	}
	return NewFloat64(s.name, filled, valid), nil
}
