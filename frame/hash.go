package frame

import (
	"github.com/dchest/siphash"

	"github.com/floedata/floe/series"
)

// Fixed SipHash-2-4 keys. Grouping and join tables are rebuilt per call,
// so the hash only needs to be stable within one operation.
const (
	hashKey0 = 0x736f6d6570736575
	hashKey1 = 0x646f72616e646f6d
)

// rowHasher hashes tuples of cell values into bucket keys, reusing one
// scratch buffer across rows.
type rowHasher struct {
	buf []byte
}

// hashRow returns the hash of the cells at row i of the key columns,
// together with the materialized key tuple.
func (h *rowHasher) hashRow(keys []*series.Series, i int) (uint64, []series.Value) {
	h.buf = h.buf[:0]
	tuple := make([]series.Value, len(keys))
	for k, col := range keys {
		v := col.Get(i)
		tuple[k] = v
		h.buf = v.AppendKey(h.buf)
	}
	return siphashSum(h.buf), tuple
}

func siphashSum(b []byte) uint64 {
	return siphash.Hash(hashKey0, hashKey1, b)
}

// tuplesEqual reports whether two key tuples hold identical values,
// including bit-identical floats.
func tuplesEqual(a, b []series.Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// compareTuples orders key tuples lexicographically under the value total
// order.
func compareTuples(a, b []series.Value) int {
	for i := range a {
		if c := a[i].Compare(b[i]); c != 0 {
			return c
		}
	}
	return 0
}
