package frame

import (
	"github.com/floedata/floe"
	"github.com/floedata/floe/series"
)

// Condition is a row predicate used by DataFrame.Filter. Comparisons
// against a null cell are false rather than an error, so filters drop null
// rows instead of failing on them.
type Condition interface {
	// Evaluate reports whether row i of df satisfies the condition.
	Evaluate(df *DataFrame, i int) (bool, error)
}

type cmpCondition struct {
	column string
	value  series.Value
	op     string // "eq", "gt", "lt"
}

// Eq matches rows whose cell in the named column equals value. A null cell
// never matches.
func Eq(column string, value series.Value) Condition {
	return &cmpCondition{column: column, value: value, op: "eq"}
}

// Gt matches rows whose cell in the named column is strictly greater than
// value. Defined for numeric, string and datetime operands.
func Gt(column string, value series.Value) Condition {
	return &cmpCondition{column: column, value: value, op: "gt"}
}

// Lt matches rows whose cell in the named column is strictly less than
// value.
func Lt(column string, value series.Value) Condition {
	return &cmpCondition{column: column, value: value, op: "lt"}
}

func (c *cmpCondition) Evaluate(df *DataFrame, i int) (bool, error) {
	col, err := df.Column(c.column)
	if err != nil {
		return false, err
	}
	cell := col.Get(i)
	if cell.IsNull() || c.value.IsNull() {
		return false, nil
	}
	if c.op == "eq" {
		eq, ok := valueEquals(cell, c.value)
		if !ok {
			return false, floe.DataTypeMismatch("cannot compare %s cell in column %q with %v", col.DataType(), c.column, c.value)
		}
		return eq, nil
	}
	cmp, ok := valueOrder(cell, c.value)
	if !ok {
		return false, floe.DataTypeMismatch("cannot order %s cell in column %q against %v", col.DataType(), c.column, c.value)
	}
	if c.op == "gt" {
		return cmp > 0, nil
	}
	return cmp < 0, nil
}

// valueEquals compares two non-null cells for equality, widening int32
// against float64. ok is false when the types are incomparable.
func valueEquals(a, b series.Value) (eq, ok bool) {
	at, _ := a.Type()
	bt, _ := b.Type()
	if at == bt {
		return a.Equal(b), true
	}
	if isNumericType(at) && isNumericType(bt) {
		af, _ := a.AsFloat()
		bf, _ := b.AsFloat()
		return af == bf, true
	}
	return false, false
}

// valueOrder compares two non-null cells, widening int32 against float64.
// Booleans have no order. ok is false when the types are incomparable.
func valueOrder(a, b series.Value) (cmp int, ok bool) {
	at, _ := a.Type()
	bt, _ := b.Type()
	if at == series.TypeBool || bt == series.TypeBool {
		return 0, false
	}
	if at == bt {
		return a.Compare(b), true
	}
	if isNumericType(at) && isNumericType(bt) {
		af, _ := a.AsFloat()
		bf, _ := b.AsFloat()
		switch {
		case af < bf:
			return -1, true
		case af > bf:
			return 1, true
		default:
			return 0, true
		}
	}
	return 0, false
}

func isNumericType(t series.DataType) bool {
	return t == series.TypeInt32 || t == series.TypeFloat64
}

type andCondition struct{ left, right Condition }

// And matches rows satisfying both conditions.
func And(left, right Condition) Condition { return &andCondition{left, right} }

func (c *andCondition) Evaluate(df *DataFrame, i int) (bool, error) {
	l, err := c.left.Evaluate(df, i)
	if err != nil {
		return false, err
	}
	if !l {
		return false, nil
	}
	return c.right.Evaluate(df, i)
}

type orCondition struct{ left, right Condition }

// Or matches rows satisfying either condition.
func Or(left, right Condition) Condition { return &orCondition{left, right} }

func (c *orCondition) Evaluate(df *DataFrame, i int) (bool, error) {
	l, err := c.left.Evaluate(df, i)
	if err != nil {
		return false, err
	}
	if l {
		return true, nil
	}
	return c.right.Evaluate(df, i)
}

type notCondition struct{ inner Condition }

// Not matches rows that do not satisfy the inner condition.
func Not(inner Condition) Condition { return &notCondition{inner} }

func (c *notCondition) Evaluate(df *DataFrame, i int) (bool, error) {
	v, err := c.inner.Evaluate(df, i)
	if err != nil {
		return false, err
	}
	return !v, nil
}
