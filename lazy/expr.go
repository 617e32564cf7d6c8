// Package lazy implements deferred query plans over dataframes. A
// LazyFrame records filters, projections and aggregations as a logical
// plan tree; Collect runs the plan through a rule-based optimizer
// (predicate and projection pushdown) and then executes it bottom-up.
package lazy

import (
	"github.com/floedata/floe"
	"github.com/floedata/floe/frame"
	"github.com/floedata/floe/series"
)

// Op is a binary operator usable in lazy expressions.
type Op int

const (
	OpEq Op = iota
	OpNeq
	OpGt
	OpLt
	OpGtEq
	OpLtEq
	OpAnd
	OpOr
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
)

func (op Op) String() string {
	switch op {
	case OpEq:
		return "=="
	case OpNeq:
		return "!="
	case OpGt:
		return ">"
	case OpLt:
		return "<"
	case OpGtEq:
		return ">="
	case OpLtEq:
		return "<="
	case OpAnd:
		return "and"
	case OpOr:
		return "or"
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "*"
	default:
		return "/"
	}
}

type exprKind int

const (
	exprColumn exprKind = iota
	exprLiteral
	exprBinary
)

// Expr is a columnar expression tree: column references and literals
// combined by binary operators. Expressions are immutable; the builder
// methods return new nodes.
type Expr struct {
	kind        exprKind
	name        string // column reference, for exprColumn nodes
	alias       string
	literal     series.Value
	op          Op
	left, right *Expr
}

// Col references a column by name.
func Col(name string) *Expr { return &Expr{kind: exprColumn, name: name} }

// Lit is a constant expression.
func Lit(v series.Value) *Expr { return &Expr{kind: exprLiteral, literal: v} }

func (e *Expr) bin(op Op, other *Expr) *Expr {
	return &Expr{kind: exprBinary, op: op, left: e, right: other}
}

// Eq builds e == other.
func (e *Expr) Eq(other *Expr) *Expr { return e.bin(OpEq, other) }

// Neq builds e != other.
func (e *Expr) Neq(other *Expr) *Expr { return e.bin(OpNeq, other) }

// Gt builds e > other.
func (e *Expr) Gt(other *Expr) *Expr { return e.bin(OpGt, other) }

// Lt builds e < other.
func (e *Expr) Lt(other *Expr) *Expr { return e.bin(OpLt, other) }

// GtEq builds e >= other.
func (e *Expr) GtEq(other *Expr) *Expr { return e.bin(OpGtEq, other) }

// LtEq builds e <= other.
func (e *Expr) LtEq(other *Expr) *Expr { return e.bin(OpLtEq, other) }

// And builds the conjunction of two boolean expressions.
func (e *Expr) And(other *Expr) *Expr { return e.bin(OpAnd, other) }

// Or builds the disjunction of two boolean expressions.
func (e *Expr) Or(other *Expr) *Expr { return e.bin(OpOr, other) }

// Add builds e + other.
func (e *Expr) Add(other *Expr) *Expr { return e.bin(OpAdd, other) }

// Subtract builds e - other.
func (e *Expr) Subtract(other *Expr) *Expr { return e.bin(OpSubtract, other) }

// Multiply builds e * other.
func (e *Expr) Multiply(other *Expr) *Expr { return e.bin(OpMultiply, other) }

// Divide builds e / other. Division by zero evaluates to null.
func (e *Expr) Divide(other *Expr) *Expr { return e.bin(OpDivide, other) }

// Alias returns the expression renamed in the output schema. Only
// meaningful at the top level of a Select expression.
func (e *Expr) Alias(name string) *Expr {
	c := *e
	c.alias = name
	return &c
}

// outputName returns the column name the expression produces: the alias if
// set, the referenced column's name for plain references, otherwise a
// display form of the node.
func (e *Expr) outputName() string {
	if e.alias != "" {
		return e.alias
	}
	if e.kind == exprColumn {
		return e.name
	}
	if e.kind == exprLiteral {
		return e.literal.String()
	}
	return e.op.String()
}

// columns appends the names of every column the expression reads to dst,
// deduplicated.
func (e *Expr) columns(dst map[string]bool) {
	switch e.kind {
	case exprColumn:
		dst[e.name] = true
	case exprBinary:
		e.left.columns(dst)
		e.right.columns(dst)
	}
}

// eval materializes the expression against a frame as a series of the
// frame's row count.
func (e *Expr) eval(df *frame.DataFrame) (*series.Series, error) {
	switch e.kind {
	case exprColumn:
		return df.Column(e.name)
	case exprLiteral:
		values := make([]series.Value, df.RowCount())
		for i := range values {
			values[i] = e.literal
		}
		dtype, ok := e.literal.Type()
		if !ok {
			dtype = series.TypeFloat64
		}
		return series.FromValues(e.outputName(), dtype, values), nil
	case exprBinary:
		left, err := e.left.eval(df)
		if err != nil {
			return nil, err
		}
		right, err := e.right.eval(df)
		if err != nil {
			return nil, err
		}
		return applyOp(e.op, left, right)
	default:
		return nil, floe.InvalidOperation("invalid expression node")
	}
}

func applyOp(op Op, left, right *series.Series) (*series.Series, error) {
	switch op {
	case OpEq:
		return left.Equal(right)
	case OpNeq:
		eq, err := left.Equal(right)
		if err != nil {
			return nil, err
		}
		return eq.Not()
	case OpGt:
		return left.Gt(right)
	case OpLt:
		return left.Lt(right)
	case OpGtEq:
		// a >= b is the negation of a < b.
		lt, err := left.Lt(right)
		if err != nil {
			return nil, err
		}
		return lt.Not()
	case OpLtEq:
		gt, err := left.Gt(right)
		if err != nil {
			return nil, err
		}
		return gt.Not()
	case OpAnd:
		return left.And(right)
	case OpOr:
		return left.Or(right)
	case OpAdd:
		return left.Add(right)
	case OpSubtract:
		return left.Subtract(right)
	case OpMultiply:
		return left.Multiply(right)
	case OpDivide:
		return left.Divide(right)
	default:
		return nil, floe.InvalidOperation("unknown operator %d", int(op))
	}
}
