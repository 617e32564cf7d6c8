package lazy

import (
	"github.com/floedata/floe"
	"github.com/floedata/floe/frame"
	"github.com/floedata/floe/series"
)

// Plan is a node of the logical plan tree. The tree is immutable: builder
// methods and optimizer rules allocate new nodes, so plans can be shared
// between lazy frames.
type Plan interface {
	isPlan()
}

// ScanPlan is the leaf: an in-memory frame, optionally narrowed to a
// projection and pre-filtered by pushed-down predicates.
type ScanPlan struct {
	Frame *frame.DataFrame
	// Projection, when non-nil, lists the only columns the scan must
	// produce. Nil means all columns.
	Projection []string
	// Filters are predicates pushed down into the scan by the optimizer,
	// applied before any parent node runs.
	Filters []*Expr
}

// FilterPlan keeps input rows where the predicate is valid and true.
type FilterPlan struct {
	Input     Plan
	Predicate *Expr
}

// ProjectPlan evaluates one series per expression against its input.
type ProjectPlan struct {
	Input Plan
	Exprs []*Expr
}

// GroupPlan partitions input rows by key columns and aggregates.
type GroupPlan struct {
	Input Plan
	Keys  []string
	Aggs  []Agg
}

func (*ScanPlan) isPlan()    {}
func (*FilterPlan) isPlan()  {}
func (*ProjectPlan) isPlan() {}
func (*GroupPlan) isPlan()   {}

// Agg names a column and the aggregation applied to it by a group node.
// The output column is named "{column}_{function}".
type Agg struct {
	Column   string
	Function string
}

// Sum aggregates a column by summation.
func Sum(column string) Agg { return Agg{Column: column, Function: "sum"} }

// Mean aggregates a column by arithmetic mean.
func Mean(column string) Agg { return Agg{Column: column, Function: "mean"} }

// Min aggregates a column by minimum.
func Min(column string) Agg { return Agg{Column: column, Function: "min"} }

// Max aggregates a column by maximum.
func Max(column string) Agg { return Agg{Column: column, Function: "max"} }

// Count aggregates a column by its number of valid cells.
func Count(column string) Agg { return Agg{Column: column, Function: "count"} }

// Median aggregates a column by median.
func Median(column string) Agg { return Agg{Column: column, Function: "median"} }

// Std aggregates a column by sample standard deviation.
func Std(column string) Agg { return Agg{Column: column, Function: "std_dev"} }

// LazyFrame is a deferred computation over a dataframe. Operations extend
// the logical plan without touching data; Collect executes it.
type LazyFrame struct {
	plan Plan
}

// From wraps an eager frame as the leaf of a new lazy computation.
func From(df *frame.DataFrame) *LazyFrame {
	return &LazyFrame{plan: &ScanPlan{Frame: df}}
}

// Plan returns the frame's logical plan root.
func (lf *LazyFrame) Plan() Plan { return lf.plan }

// Filter appends a row filter to the plan.
func (lf *LazyFrame) Filter(predicate *Expr) *LazyFrame {
	return &LazyFrame{plan: &FilterPlan{Input: lf.plan, Predicate: predicate}}
}

// Select appends a projection to the plan. Each expression becomes one
// output column.
func (lf *LazyFrame) Select(exprs ...*Expr) *LazyFrame {
	return &LazyFrame{plan: &ProjectPlan{Input: lf.plan, Exprs: exprs}}
}

// GroupBy starts a grouped aggregation; Agg on the result resumes the
// lazy chain.
func (lf *LazyFrame) GroupBy(keys ...string) *LazyGroupBy {
	return &LazyGroupBy{input: lf.plan, keys: keys}
}

// LazyGroupBy is the intermediate builder between GroupBy and Agg.
type LazyGroupBy struct {
	input Plan
	keys  []string
}

// Agg completes the grouped aggregation node.
func (g *LazyGroupBy) Agg(aggs ...Agg) *LazyFrame {
	return &LazyFrame{plan: &GroupPlan{Input: g.input, Keys: append([]string{}, g.keys...), Aggs: aggs}}
}

// Collect optimizes the plan and executes it, returning the materialized
// frame.
func (lf *LazyFrame) Collect() (*frame.DataFrame, error) {
	return execute(NewOptimizer().Optimize(lf.plan))
}

// CollectUnoptimized executes the plan exactly as written, skipping the
// optimizer. It exists so optimized and unoptimized runs can be compared;
// both must produce the same frame.
func (lf *LazyFrame) CollectUnoptimized() (*frame.DataFrame, error) {
	return execute(lf.plan)
}

// execute materializes a plan bottom-up.
func execute(p Plan) (*frame.DataFrame, error) {
	switch node := p.(type) {
	case *ScanPlan:
		df := node.Frame
		var err error
		for _, pred := range node.Filters {
			df, err = applyFilter(df, pred)
			if err != nil {
				return nil, err
			}
		}
		if node.Projection != nil {
			df, err = df.SelectColumns(node.Projection...)
			if err != nil {
				return nil, err
			}
		}
		return df, nil

	case *FilterPlan:
		df, err := execute(node.Input)
		if err != nil {
			return nil, err
		}
		return applyFilter(df, node.Predicate)

	case *ProjectPlan:
		df, err := execute(node.Input)
		if err != nil {
			return nil, err
		}
		cols := make([]*series.Series, len(node.Exprs))
		for i, expr := range node.Exprs {
			col, err := expr.eval(df)
			if err != nil {
				return nil, err
			}
			cols[i] = col.Rename(expr.outputName())
		}
		return frame.New(cols...)

	case *GroupPlan:
		df, err := execute(node.Input)
		if err != nil {
			return nil, err
		}
		grouped, err := df.GroupBy(node.Keys...)
		if err != nil {
			return nil, err
		}
		aggs := make([]frame.Aggregation, len(node.Aggs))
		for i, a := range node.Aggs {
			aggs[i] = frame.Aggregation{Column: a.Column, Function: a.Function}
		}
		return grouped.Agg(aggs...)

	default:
		return nil, floe.InvalidOperation("unknown plan node %T", p)
	}
}

// applyFilter evaluates a predicate to a mask and keeps the rows where it
// is valid and true.
func applyFilter(df *frame.DataFrame, predicate *Expr) (*frame.DataFrame, error) {
	mask, err := predicate.eval(df)
	if err != nil {
		return nil, err
	}
	return df.FilterByMask(mask)
}
