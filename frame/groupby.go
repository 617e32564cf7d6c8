package frame

import (
	"fmt"
	"sort"

	"github.com/floedata/floe"
	"github.com/floedata/floe/series"
)

// group is one distinct key tuple and the rows carrying it.
type group struct {
	key  []series.Value
	rows []int
}

// GroupedFrame is the result of DataFrame.GroupBy: rows partitioned by
// their key tuple, ready for aggregation.
type GroupedFrame struct {
	df     *DataFrame
	keys   []string
	groups []*group
}

// GroupBy partitions the frame's rows by the value tuple of the key
// columns. Null is a groupable key value, and two NaN cells land in the
// same group.
func (df *DataFrame) GroupBy(keys ...string) (*GroupedFrame, error) {
	if len(keys) == 0 {
		return nil, floe.InvalidOperation("group-by requires at least one key column")
	}
	keyCols := make([]*series.Series, len(keys))
	for i, name := range keys {
		col, err := df.Column(name)
		if err != nil {
			return nil, err
		}
		keyCols[i] = col
	}

	var hasher rowHasher
	buckets := make(map[uint64][]*group)
	var groups []*group

	for i := 0; i < df.RowCount(); i++ {
		h, tuple := hasher.hashRow(keyCols, i)
		var g *group
		for _, cand := range buckets[h] {
			if tuplesEqual(cand.key, tuple) {
				g = cand
				break
			}
		}
		if g == nil {
			g = &group{key: tuple}
			buckets[h] = append(buckets[h], g)
			groups = append(groups, g)
		}
		g.rows = append(g.rows, i)
	}

	// Deterministic output: order groups by key tuple.
	sort.SliceStable(groups, func(a, b int) bool {
		return compareTuples(groups[a].key, groups[b].key) < 0
	})

	return &GroupedFrame{df: df, keys: append([]string{}, keys...), groups: groups}, nil
}

// Aggregation names a column and the reduction to apply to it within each
// group. Supported functions: sum, mean, median, min, max, std_dev, count.
type Aggregation struct {
	Column   string
	Function string
}

// Agg applies the given aggregations to every group and returns a frame
// with one row per group: the key columns first, then one column per
// aggregation named "{column}_{function}".
func (g *GroupedFrame) Agg(aggs ...Aggregation) (*DataFrame, error) {
	if len(aggs) == 0 {
		return nil, floe.InvalidOperation("aggregation list must not be empty")
	}

	cols := make([]*series.Series, 0, len(g.keys)+len(aggs))

	for k, keyName := range g.keys {
		keyCol, err := g.df.Column(keyName)
		if err != nil {
			return nil, err
		}
		values := make([]series.Value, len(g.groups))
		for gi, grp := range g.groups {
			values[gi] = grp.key[k]
		}
		cols = append(cols, series.FromValues(keyName, keyCol.DataType(), values))
	}

	for _, agg := range aggs {
		col, err := g.df.Column(agg.Column)
		if err != nil {
			return nil, err
		}
		values := make([]series.Value, len(g.groups))
		for gi, grp := range g.groups {
			sub, err := col.Take(grp.rows)
			if err != nil {
				return nil, err
			}
			v, err := applyAggregation(sub, agg.Function)
			if err != nil {
				return nil, err
			}
			values[gi] = v
		}
		name := fmt.Sprintf("%s_%s", agg.Column, agg.Function)
		cols = append(cols, series.FromValues(name, aggResultType(col.DataType(), agg.Function), values))
	}

	return New(cols...)
}

func applyAggregation(s *series.Series, fn string) (series.Value, error) {
	switch fn {
	case "sum":
		return s.Sum()
	case "mean":
		return s.Mean()
	case "median":
		return s.Median()
	case "min":
		return s.Min()
	case "max":
		return s.Max()
	case "std_dev":
		return s.StdDev()
	case "count":
		return series.Int(int32(s.Count())), nil
	default:
		return series.Null(), floe.InvalidOperation("unknown aggregation function %q", fn)
	}
}

// aggResultType returns the element type of an aggregation output column.
// Averaging reductions always widen to float64 so that groups with even
// and odd counts fit one column; count is int32; the rest keep the source
// type.
func aggResultType(src series.DataType, fn string) series.DataType {
	switch fn {
	case "count":
		return series.TypeInt32
	case "mean", "median", "std_dev":
		return series.TypeFloat64
	default:
		return src
	}
}
