package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPool_AcquireAssignsCell(t *testing.T) {
	p := New(4)

	el, err := p.Acquire(3, 7)
	require.NoError(t, err)
	require.True(t, el.InUse())
	require.True(t, el.Pooled())
	require.Equal(t, Cell{Row: 3, Col: 7}, el.Cell)
	require.NotEmpty(t, el.ID)
}

func TestPool_ReleaseClearsContent(t *testing.T) {
	p := New(4)

	el, err := p.Acquire(1, 1)
	require.NoError(t, err)
	el.Content = "rendered cell"

	p.Release(el)
	require.False(t, el.InUse())
	require.Empty(t, el.Content)
	require.Equal(t, Cell{}, el.Cell)

	// Reacquiring for a different cell must carry nothing over.
	el2, err := p.Acquire(9, 9)
	require.NoError(t, err)
	require.Same(t, el, el2, "released element is recycled")
	require.Empty(t, el2.Content)
	require.Equal(t, Cell{Row: 9, Col: 9}, el2.Cell)
}

func TestPool_OverflowServesUnpooled(t *testing.T) {
	p := New(2)

	a, _ := p.Acquire(0, 0)
	b, _ := p.Acquire(0, 1)
	c, err := p.Acquire(0, 2)
	require.NoError(t, err, "acquisition never fails")
	require.True(t, a.Pooled())
	require.True(t, b.Pooled())
	require.False(t, c.Pooled(), "beyond maxSize elements are unpooled")

	require.Equal(t, Stats{Active: 3, Pooled: 2, Total: 3}, p.Stats())

	// Unpooled elements are discarded on release, not recycled.
	p.Release(c)
	require.Equal(t, Stats{Active: 2, Pooled: 2, Total: 2}, p.Stats())

	p.Release(a)
	d, _ := p.Acquire(1, 0)
	require.Same(t, a, d, "pooled element is preferred over fresh construction")
}

func TestPool_ReleaseUnknownElementIsNoOp(t *testing.T) {
	p := New(2)
	p.Release(nil)
	p.Release(&Element{ID: "stranger"})
	require.Equal(t, Stats{}, p.Stats())
}

func TestPool_DoubleReleaseDoesNotDuplicateFreeEntry(t *testing.T) {
	p := New(2)

	el, _ := p.Acquire(0, 0)
	p.Release(el)
	p.Release(el)

	a, _ := p.Acquire(1, 0)
	b, _ := p.Acquire(1, 1)
	require.NotSame(t, a, b)
}

func TestPool_Destroy(t *testing.T) {
	p := New(2)

	el, _ := p.Acquire(0, 0)
	el.Content = "x"

	p.Destroy()
	require.True(t, p.Destroyed())
	require.False(t, el.InUse())
	require.Empty(t, el.Content)

	_, err := p.Acquire(0, 0)
	require.ErrorIs(t, err, ErrDestroyed)

	p.Destroy() // no-op, must not panic
}

func TestPool_DefaultMaxSize(t *testing.T) {
	p := New(0)
	for i := 0; i < DefaultMaxSize; i++ {
		el, err := p.Acquire(i, 0)
		require.NoError(t, err)
		require.True(t, el.Pooled())
	}
	el, err := p.Acquire(DefaultMaxSize, 0)
	require.NoError(t, err)
	require.False(t, el.Pooled())
}
