package frame

import (
	"github.com/floedata/floe"
	"github.com/floedata/floe/series"
)

// JoinType selects the join flavor.
type JoinType int

const (
	InnerJoin JoinType = iota
	LeftJoin
	RightJoin
	OuterJoin
)

func (jt JoinType) String() string {
	switch jt {
	case InnerJoin:
		return "inner"
	case LeftJoin:
		return "left"
	case RightJoin:
		return "right"
	case OuterJoin:
		return "outer"
	default:
		return "join"
	}
}

// joinTable is a hash index over one side's key column: bucket hash to
// key value and the rows carrying it.
type joinEntry struct {
	key  series.Value
	rows []int
}

func buildJoinTable(key *series.Series) map[uint64][]*joinEntry {
	var hasher rowHasher
	table := make(map[uint64][]*joinEntry)
	for i := 0; i < key.Len(); i++ {
		v := key.Get(i)
		// Null keys never participate in matches.
		if v.IsNull() {
			continue
		}
		h, _ := hasher.hashRow([]*series.Series{key}, i)
		var e *joinEntry
		for _, cand := range table[h] {
			if cand.key.Equal(v) {
				e = cand
				break
			}
		}
		if e == nil {
			e = &joinEntry{key: v}
			table[h] = append(table[h], e)
		}
		e.rows = append(e.rows, i)
	}
	return table
}

func probeJoinTable(table map[uint64][]*joinEntry, v series.Value) []int {
	if v.IsNull() {
		return nil
	}
	var hasher rowHasher
	hasher.buf = v.AppendKey(hasher.buf)
	h := siphashSum(hasher.buf)
	for _, e := range table[h] {
		if e.key.Equal(v) {
			return e.rows
		}
	}
	return nil
}

// Join combines two frames on equality of the named key column, which must
// exist in both with the same type. The output schema is the left frame's
// columns followed by the right-only columns; when both sides carry a
// non-key column of the same name, the left one wins and the right one is
// dropped. Rows with a null key never match. Unmatched sides are padded
// with nulls for left, right and outer joins.
func (df *DataFrame) Join(other *DataFrame, on string, how JoinType) (*DataFrame, error) {
	leftKey, err := df.Column(on)
	if err != nil {
		return nil, err
	}
	rightKey, err := other.Column(on)
	if err != nil {
		return nil, err
	}
	if leftKey.DataType() != rightKey.DataType() {
		return nil, floe.DataTypeMismatch("join key %q is %s on the left but %s on the right",
			on, leftKey.DataType(), rightKey.DataType())
	}

	// Output schema: all left columns, then right columns not shadowed by
	// a left column of the same name.
	var rightOnly []string
	for _, name := range other.order {
		if name != on && !df.HasColumn(name) {
			rightOnly = append(rightOnly, name)
		}
	}

	out := newJoinBuilder(df, other, on, rightOnly)
	rightTable := buildJoinTable(rightKey)

	switch how {
	case InnerJoin:
		for i := 0; i < df.RowCount(); i++ {
			for _, j := range probeJoinTable(rightTable, leftKey.Get(i)) {
				out.emit(i, j)
			}
		}
	case LeftJoin:
		for i := 0; i < df.RowCount(); i++ {
			matches := probeJoinTable(rightTable, leftKey.Get(i))
			if len(matches) == 0 {
				out.emit(i, -1)
				continue
			}
			for _, j := range matches {
				out.emit(i, j)
			}
		}
	case RightJoin:
		leftTable := buildJoinTable(leftKey)
		for j := 0; j < other.RowCount(); j++ {
			matches := probeJoinTable(leftTable, rightKey.Get(j))
			if len(matches) == 0 {
				out.emit(-1, j)
				continue
			}
			for _, i := range matches {
				out.emit(i, j)
			}
		}
	case OuterJoin:
		matchedRight := make([]bool, other.RowCount())
		for i := 0; i < df.RowCount(); i++ {
			matches := probeJoinTable(rightTable, leftKey.Get(i))
			if len(matches) == 0 {
				out.emit(i, -1)
				continue
			}
			for _, j := range matches {
				matchedRight[j] = true
				out.emit(i, j)
			}
		}
		for j := 0; j < other.RowCount(); j++ {
			if !matchedRight[j] {
				out.emit(-1, j)
			}
		}
	default:
		return nil, floe.InvalidOperation("unknown join type %d", int(how))
	}

	return out.build()
}

// joinBuilder accumulates output rows cell by cell. emit takes a row index
// per side; -1 marks the side as absent, padding its columns with null.
type joinBuilder struct {
	left, right *DataFrame
	on          string
	rightOnly   []string

	// One value buffer per output column, left columns first.
	names  []string
	types  []series.DataType
	values [][]series.Value
}

func newJoinBuilder(left, right *DataFrame, on string, rightOnly []string) *joinBuilder {
	b := &joinBuilder{left: left, right: right, on: on, rightOnly: rightOnly}
	for _, name := range left.order {
		b.names = append(b.names, name)
		b.types = append(b.types, left.cols[name].DataType())
	}
	for _, name := range rightOnly {
		b.names = append(b.names, name)
		b.types = append(b.types, right.cols[name].DataType())
	}
	b.values = make([][]series.Value, len(b.names))
	return b
}

func (b *joinBuilder) emit(leftRow, rightRow int) {
	nLeft := len(b.left.order)
	for c, name := range b.left.order {
		switch {
		case leftRow >= 0:
			b.values[c] = append(b.values[c], b.left.cols[name].Get(leftRow))
		case name == b.on:
			// Right-origin row: the shared key column takes the right value.
			b.values[c] = append(b.values[c], b.right.cols[name].Get(rightRow))
		default:
			b.values[c] = append(b.values[c], series.Null())
		}
	}
	for c, name := range b.rightOnly {
		if rightRow >= 0 {
			b.values[nLeft+c] = append(b.values[nLeft+c], b.right.cols[name].Get(rightRow))
		} else {
			b.values[nLeft+c] = append(b.values[nLeft+c], series.Null())
		}
	}
}

func (b *joinBuilder) build() (*DataFrame, error) {
	cols := make([]*series.Series, len(b.names))
	for c, name := range b.names {
		values := b.values[c]
		if values == nil {
			values = []series.Value{}
		}
		cols[c] = series.FromValues(name, b.types[c], values)
	}
	return New(cols...)
}
