package frame

import (
	"errors"
	"testing"

	"github.com/floedata/floe"
	"github.com/floedata/floe/series"
)

func joinFixtures(t *testing.T) (left, right *DataFrame) {
	t.Helper()
	left = mustFrame(t,
		series.NewInt32("id", []int32{1, 2, 2, 0, 5}, []bool{true, true, true, false, true}),
		series.NewString("name", []string{"a", "b", "c", "d", "e"}, nil),
	)
	right = mustFrame(t,
		series.NewInt32("id", []int32{2, 2, 3, 0}, []bool{true, true, true, false}),
		series.NewString("role", []string{"dev", "ops", "qa", "sec"}, nil),
	)
	return left, right
}

func TestInnerJoinCardinality(t *testing.T) {
	left, right := joinFixtures(t)

	out, err := left.Join(right, "id", InnerJoin)
	if err != nil {
		t.Fatalf("Join() error = %v", err)
	}
	// Two left rows with id=2 times two right rows with id=2. Null keys on
	// either side never match.
	if out.RowCount() != 4 {
		t.Fatalf("inner join rows = %d, want 4", out.RowCount())
	}
	checkColumn(t, out, "name", []series.Value{
		series.Str("b"), series.Str("b"), series.Str("c"), series.Str("c"),
	})
	checkColumn(t, out, "role", []series.Value{
		series.Str("dev"), series.Str("ops"), series.Str("dev"), series.Str("ops"),
	})
}

func TestLeftJoinKeepsEveryLeftRow(t *testing.T) {
	left, right := joinFixtures(t)

	out, err := left.Join(right, "id", LeftJoin)
	if err != nil {
		t.Fatalf("Join() error = %v", err)
	}
	// 1 unmatched + 2x2 matched + null key + 5 unmatched.
	if out.RowCount() != 7 {
		t.Fatalf("left join rows = %d, want 7", out.RowCount())
	}
	checkColumn(t, out, "name", []series.Value{
		series.Str("a"),
		series.Str("b"), series.Str("b"),
		series.Str("c"), series.Str("c"),
		series.Str("d"), series.Str("e"),
	})
	checkColumn(t, out, "role", []series.Value{
		series.Null(),
		series.Str("dev"), series.Str("ops"),
		series.Str("dev"), series.Str("ops"),
		series.Null(), series.Null(),
	})
}

func TestRightJoinKeepsEveryRightRow(t *testing.T) {
	left, right := joinFixtures(t)

	out, err := left.Join(right, "id", RightJoin)
	if err != nil {
		t.Fatalf("Join() error = %v", err)
	}
	// 2x2 matched + qa + sec.
	if out.RowCount() != 6 {
		t.Fatalf("right join rows = %d, want 6", out.RowCount())
	}
	// Unmatched right rows carry the right-side key and null left columns.
	checkColumn(t, out, "id", []series.Value{
		series.Int(2), series.Int(2), series.Int(2), series.Int(2),
		series.Int(3), series.Null(),
	})
	checkColumn(t, out, "name", []series.Value{
		series.Str("b"), series.Str("c"), series.Str("b"), series.Str("c"),
		series.Null(), series.Null(),
	})
}

func TestOuterJoinIsUnion(t *testing.T) {
	left, right := joinFixtures(t)

	out, err := left.Join(right, "id", OuterJoin)
	if err != nil {
		t.Fatalf("Join() error = %v", err)
	}
	// Left join rows plus the two unmatched right rows.
	if out.RowCount() != 9 {
		t.Fatalf("outer join rows = %d, want 9", out.RowCount())
	}

	// Every id from both sides appears, including a row per null key.
	idCol, err := out.Column("id")
	if err != nil {
		t.Fatalf("Column(id) error = %v", err)
	}
	counts := map[string]int{}
	for i := 0; i < idCol.Len(); i++ {
		counts[idCol.Get(i).String()]++
	}
	want := map[string]int{"1": 1, "2": 4, "5": 1, "3": 1, "null": 2}
	for k, n := range want {
		if counts[k] != n {
			t.Errorf("id %s appears %d times, want %d", k, counts[k], n)
		}
	}
}

func TestJoinSharedColumnLeftWins(t *testing.T) {
	left := mustFrame(t,
		series.NewInt32("id", []int32{1}, nil),
		series.NewString("note", []string{"left"}, nil),
	)
	right := mustFrame(t,
		series.NewInt32("id", []int32{1}, nil),
		series.NewString("note", []string{"right"}, nil),
	)
	out, err := left.Join(right, "id", InnerJoin)
	if err != nil {
		t.Fatalf("Join() error = %v", err)
	}
	if out.ColumnCount() != 2 {
		t.Fatalf("ColumnCount() = %d, want 2", out.ColumnCount())
	}
	checkColumn(t, out, "note", []series.Value{series.Str("left")})
}

func TestJoinErrors(t *testing.T) {
	left, _ := joinFixtures(t)

	other := mustFrame(t, series.NewString("id", []string{"1"}, nil))
	if _, err := left.Join(other, "id", InnerJoin); !errors.Is(err, floe.ErrDataTypeMismatch) {
		t.Errorf("key type mismatch error = %v, want ErrDataTypeMismatch", err)
	}

	noKey := mustFrame(t, series.NewInt32("x", []int32{1}, nil))
	if _, err := left.Join(noKey, "id", InnerJoin); !errors.Is(err, floe.ErrColumnNotFound) {
		t.Errorf("missing key error = %v, want ErrColumnNotFound", err)
	}
}

func TestJoinEmptyResultKeepsSchema(t *testing.T) {
	left := mustFrame(t,
		series.NewInt32("id", []int32{1}, nil),
		series.NewString("name", []string{"a"}, nil),
	)
	right := mustFrame(t,
		series.NewInt32("id", []int32{2}, nil),
		series.NewString("role", []string{"x"}, nil),
	)
	out, err := left.Join(right, "id", InnerJoin)
	if err != nil {
		t.Fatalf("Join() error = %v", err)
	}
	if out.RowCount() != 0 {
		t.Errorf("RowCount() = %d, want 0", out.RowCount())
	}
	names := out.ColumnNames()
	want := []string{"id", "name", "role"}
	for i, n := range want {
		if names[i] != n {
			t.Errorf("ColumnNames()[%d] = %q, want %q", i, names[i], n)
		}
	}
}
