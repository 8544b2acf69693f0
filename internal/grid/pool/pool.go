// Package pool owns the bounded set of reusable visual elements the
// positioner recycles across cells. Acquisition never fails: once the
// pool is at capacity, extra elements are handed out unpooled and
// discarded on release, which bounds steady-state memory while
// tolerating bursts.
package pool

import (
	"errors"

	"github.com/google/uuid"

	"github.com/zjrosen/vgrid/internal/log"
)

// ErrDestroyed is returned when a destroyed pool is used.
var ErrDestroyed = errors.New("pool: destroyed")

// DefaultMaxSize bounds the number of recyclable elements. A viewport
// rarely shows more than a few hundred cells even with overscan.
const DefaultMaxSize = 512

// Cell identifies the grid cell an element is currently assigned to.
type Cell struct {
	Row int
	Col int
}

// Element is a reusable visual unit. Content is whatever the active
// renderer produced; the pool clears it on release so a reacquired
// element never leaks a previous cell's output.
type Element struct {
	ID      string
	Cell    Cell
	Content string

	inUse  bool
	pooled bool
}

// InUse reports whether the element is currently assigned to a cell.
func (e *Element) InUse() bool { return e.inUse }

// Pooled reports whether the element will be recycled on release.
func (e *Element) Pooled() bool { return e.pooled }

// Stats is a point-in-time snapshot of pool occupancy.
type Stats struct {
	Active int // elements currently assigned to cells
	Pooled int // recyclable elements (free + active)
	Total  int // all live elements including unpooled overflow
}

// Pool hands out elements and reclaims them. It is exclusively owned
// and mutated by the positioner; no locking is needed.
type Pool struct {
	maxSize   int
	free      []*Element
	active    map[string]*Element
	pooled    int
	destroyed bool
}

// New creates a pool with the given capacity. Non-positive maxSize
// falls back to DefaultMaxSize.
func New(maxSize int) *Pool {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &Pool{
		maxSize: maxSize,
		active:  make(map[string]*Element),
	}
}

// Acquire returns an element assigned to the given cell. A free pooled
// element is reused when available; otherwise a new element is
// constructed. Construction beyond maxSize still succeeds but the
// element is unpooled and will be discarded rather than recycled.
func (p *Pool) Acquire(row, col int) (*Element, error) {
	if p.destroyed {
		return nil, ErrDestroyed
	}

	var el *Element
	if n := len(p.free); n > 0 {
		el = p.free[n-1]
		p.free = p.free[:n-1]
	} else if p.pooled < p.maxSize {
		el = &Element{ID: uuid.NewString(), pooled: true}
		p.pooled++
	} else {
		// Burst beyond capacity: serve an unpooled element.
		el = &Element{ID: uuid.NewString()}
		log.Debug(log.CatPool, "capacity exceeded, serving unpooled element", "max", p.maxSize)
	}

	el.Cell = Cell{Row: row, Col: col}
	el.inUse = true
	p.active[el.ID] = el
	return el, nil
}

// Release reclaims an element. Pooled elements are cleared and made
// available for reuse; unpooled elements are fully detached. Releasing
// an element the pool does not own is a no-op.
func (p *Pool) Release(el *Element) {
	if p.destroyed || el == nil {
		return
	}
	if _, ok := p.active[el.ID]; !ok {
		return
	}
	delete(p.active, el.ID)

	el.inUse = false
	el.Cell = Cell{}
	el.Content = ""

	if el.pooled {
		p.free = append(p.free, el)
	}
}

// Stats returns current occupancy for observability.
func (p *Pool) Stats() Stats {
	return Stats{
		Active: len(p.active),
		Pooled: p.pooled,
		Total:  len(p.active) + len(p.free),
	}
}

// Destroy releases and discards every entry. The pool is unusable
// afterwards; Destroying again is a no-op.
func (p *Pool) Destroy() {
	if p.destroyed {
		return
	}
	for _, el := range p.active {
		el.inUse = false
		el.Cell = Cell{}
		el.Content = ""
	}
	p.active = nil
	p.free = nil
	p.pooled = 0
	p.destroyed = true
}

// Destroyed reports whether Destroy has been called.
func (p *Pool) Destroyed() bool { return p.destroyed }
