package dataset

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestGenerate_Deterministic(t *testing.T) {
	a := Generate(100, 42)
	b := Generate(100, 42)

	require.Equal(t, a.Len(), b.Len())
	for i := 0; i < a.Len(); i++ {
		require.Equal(t, a.Row(i), b.Row(i))
	}
}

func TestGenerate_SeedChangesContent(t *testing.T) {
	a := Generate(100, 1)
	b := Generate(100, 2)

	same := true
	for i := 0; i < a.Len(); i++ {
		if a.Row(i) != b.Row(i) {
			same = false
			break
		}
	}
	require.False(t, same)
}

func TestCells_ShapeAndFormatting(t *testing.T) {
	d := Generate(10, 42)
	cells := d.Cells()

	require.Len(t, cells, 10)
	for i, row := range cells {
		require.Len(t, row, len(ColumnKeys()))
		require.Equal(t, formatValue(d.Row(i), 0), row[0])
		require.Regexp(t, `^\d+$`, row[0])
		require.Regexp(t, `^P[1-5]$`, row[3])
		require.Regexp(t, `^\d{4}-\d{2}-\d{2} \d{2}:\d{2}$`, row[4])
		require.Regexp(t, `^\d+\.\d{2}$`, row[5])
	}
}

func TestCells_MemoizedAcrossCalls(t *testing.T) {
	d := Generate(50, 42)
	first := d.Cells()
	second := d.Cells()
	require.Equal(t, first, second)
}

func TestFilterByStatus(t *testing.T) {
	d := Generate(500, 42)
	keep := d.FilterByStatus("done")

	require.NotEmpty(t, keep)
	for _, i := range keep {
		require.Equal(t, "done", d.Row(i).Status)
	}
}

func TestFilterByMaxPriority(t *testing.T) {
	d := Generate(500, 42)
	keep := d.FilterByMaxPriority(2)

	require.NotEmpty(t, keep)
	for _, i := range keep {
		require.LessOrEqual(t, d.Row(i).Priority, 2)
	}
}

func TestFilterByNamePrefix(t *testing.T) {
	d := Generate(500, 42)
	keep := d.FilterByNamePrefix("ada")

	require.NotEmpty(t, keep)
	for _, i := range keep {
		require.Equal(t, "Ada", d.Row(i).Name[:3])
	}
}

func TestComparator_OrdersColumn(t *testing.T) {
	d := Generate(200, 42)

	cmp := d.Comparator("score", false)
	for i := 0; i < d.Len()-1; i++ {
		if cmp(i, i+1) > 0 {
			require.Greater(t, d.Row(i).Score, d.Row(i+1).Score)
		}
	}

	desc := d.Comparator("priority", true)
	require.Equal(t, -d.Comparator("priority", false)(3, 7), desc(3, 7))
}

func TestComparator_PropertyAntisymmetric(t *testing.T) {
	d := Generate(300, 42)
	keys := append(ColumnKeys(), "bogus")

	rapid.Check(t, func(t *rapid.T) {
		key := rapid.SampledFrom(keys).Draw(t, "key")
		a := rapid.IntRange(0, d.Len()-1).Draw(t, "a")
		b := rapid.IntRange(0, d.Len()-1).Draw(t, "b")

		cmp := d.Comparator(key, false)
		ca, cb := cmp(a, b), cmp(b, a)
		if ca < 0 {
			require.Positive(t, cb)
		} else if ca > 0 {
			require.Negative(t, cb)
		} else {
			require.Zero(t, cb)
		}
	})
}
