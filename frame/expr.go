package frame

import (
	"github.com/floedata/floe"
	"github.com/floedata/floe/series"
)

// Expr is a row-level expression evaluated by DataFrame.WithColumn. An
// expression combines column references and literals with the four
// arithmetic operators; any operand that is null makes the result null.
type Expr interface {
	// Eval returns the expression's value for row i of df.
	Eval(df *DataFrame, i int) (series.Value, error)
}

type colExpr struct{ name string }

// Col references the named column's cell in the current row.
func Col(name string) Expr { return &colExpr{name} }

func (e *colExpr) Eval(df *DataFrame, i int) (series.Value, error) {
	col, err := df.Column(e.name)
	if err != nil {
		return series.Null(), err
	}
	return col.Get(i), nil
}

type litExpr struct{ value series.Value }

// Lit is a constant expression.
func Lit(value series.Value) Expr { return &litExpr{value} }

func (e *litExpr) Eval(df *DataFrame, i int) (series.Value, error) {
	return e.value, nil
}

type binExpr struct {
	left, right Expr
	op          string // "add", "subtract", "multiply", "divide"
}

// Add returns left + right.
func Add(left, right Expr) Expr { return &binExpr{left, right, "add"} }

// Subtract returns left - right.
func Subtract(left, right Expr) Expr { return &binExpr{left, right, "subtract"} }

// Multiply returns left * right.
func Multiply(left, right Expr) Expr { return &binExpr{left, right, "multiply"} }

// Divide returns left / right. Division by zero evaluates to null.
func Divide(left, right Expr) Expr { return &binExpr{left, right, "divide"} }

func (e *binExpr) Eval(df *DataFrame, i int) (series.Value, error) {
	l, err := e.left.Eval(df, i)
	if err != nil {
		return series.Null(), err
	}
	r, err := e.right.Eval(df, i)
	if err != nil {
		return series.Null(), err
	}
	if l.IsNull() || r.IsNull() {
		return series.Null(), nil
	}

	lt, _ := l.Type()
	rt, _ := r.Type()
	if !isNumericType(lt) || !isNumericType(rt) {
		return series.Null(), floe.Unsupported("%s between %s and %s values", e.op, lt, rt)
	}

	// Two int32 operands stay int32; any float64 operand widens both.
	if lt == series.TypeInt32 && rt == series.TypeInt32 {
		a, _ := l.Int32()
		b, _ := r.Int32()
		switch e.op {
		case "add":
			return series.Int(a + b), nil
		case "subtract":
			return series.Int(a - b), nil
		case "multiply":
			return series.Int(a * b), nil
		default:
			if b == 0 {
				return series.Null(), nil
			}
			return series.Int(a / b), nil
		}
	}

	a, _ := l.AsFloat()
	b, _ := r.AsFloat()
	switch e.op {
	case "add":
		return series.Float(a + b), nil
	case "subtract":
		return series.Float(a - b), nil
	case "multiply":
		return series.Float(a * b), nil
	default:
		if b == 0 {
			return series.Null(), nil
		}
		return series.Float(a / b), nil
	}
}
