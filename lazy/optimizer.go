package lazy

// Optimizer rewrites logical plans into cheaper equivalent ones. Two rules
// run in order:
//
//  1. predicate pushdown: filters sitting on a chain of filters above a
//     scan collapse into the scan itself, so rows drop out before any
//     other node sees them;
//  2. projection pushdown: a scan below a projection or aggregation only
//     materializes the columns those nodes actually read, plus the
//     columns its own pushed-down filters need.
//
// Neither rule pushes a filter through a projection, since projections may
// rename or compute columns the predicate refers to. Optimized and
// unoptimized executions of the same plan must produce identical frames.
type Optimizer struct{}

// NewOptimizer returns an optimizer with the standard rule set.
func NewOptimizer() *Optimizer { return &Optimizer{} }

// Optimize returns a rewritten plan. The input plan is never mutated.
func (o *Optimizer) Optimize(p Plan) Plan {
	return o.pruneColumns(o.pushPredicates(p), nil)
}

// pushPredicates collapses filter chains into the scan beneath them.
func (o *Optimizer) pushPredicates(p Plan) Plan {
	switch node := p.(type) {
	case *ScanPlan:
		return node
	case *FilterPlan:
		input := o.pushPredicates(node.Input)
		if scan, ok := input.(*ScanPlan); ok {
			filters := append(append([]*Expr{}, scan.Filters...), node.Predicate)
			return &ScanPlan{Frame: scan.Frame, Projection: scan.Projection, Filters: filters}
		}
		return &FilterPlan{Input: input, Predicate: node.Predicate}
	case *ProjectPlan:
		return &ProjectPlan{Input: o.pushPredicates(node.Input), Exprs: node.Exprs}
	case *GroupPlan:
		return &GroupPlan{Input: o.pushPredicates(node.Input), Keys: node.Keys, Aggs: node.Aggs}
	default:
		return p
	}
}

// pruneColumns narrows scans to the columns their ancestors read. needed
// is the set of columns the parent requires; nil means every column.
func (o *Optimizer) pruneColumns(p Plan, needed map[string]bool) Plan {
	switch node := p.(type) {
	case *ScanPlan:
		if needed == nil {
			return node
		}
		// The scan's own filters run before the projection narrows it.
		want := make(map[string]bool, len(needed))
		for name := range needed {
			want[name] = true
		}
		for _, pred := range node.Filters {
			pred.columns(want)
		}
		var projection []string
		for _, name := range node.Frame.ColumnNames() {
			if want[name] {
				projection = append(projection, name)
			}
		}
		return &ScanPlan{Frame: node.Frame, Projection: projection, Filters: node.Filters}

	case *FilterPlan:
		childNeeded := needed
		if needed != nil {
			childNeeded = make(map[string]bool, len(needed))
			for name := range needed {
				childNeeded[name] = true
			}
			node.Predicate.columns(childNeeded)
		}
		return &FilterPlan{Input: o.pruneColumns(node.Input, childNeeded), Predicate: node.Predicate}

	case *ProjectPlan:
		childNeeded := make(map[string]bool)
		for _, expr := range node.Exprs {
			expr.columns(childNeeded)
		}
		return &ProjectPlan{Input: o.pruneColumns(node.Input, childNeeded), Exprs: node.Exprs}

	case *GroupPlan:
		childNeeded := make(map[string]bool)
		for _, key := range node.Keys {
			childNeeded[key] = true
		}
		for _, agg := range node.Aggs {
			childNeeded[agg.Column] = true
		}
		return &GroupPlan{Input: o.pruneColumns(node.Input, childNeeded), Keys: node.Keys, Aggs: node.Aggs}

	default:
		return p
	}
}
