package grid

import (
	"fmt"
	"sync"

	"github.com/zjrosen/vgrid/internal/grid/geometry"
	"github.com/zjrosen/vgrid/internal/grid/pool"
	"github.com/zjrosen/vgrid/internal/grid/rendercache"
)

// CellContext carries everything a renderer needs for one cell: view
// and data coordinates, the resolved value, content-space position,
// and read-only interaction flags supplied by external collaborators.
type CellContext struct {
	ViewRow int
	ViewCol int
	DataRow int
	DataCol int
	Value   string
	Rect    geometry.Rect
	Flags   rendercache.Flags
	Theme   string
}

// CellRenderer produces and maintains a cell's visual content.
type CellRenderer interface {
	// Render produces content for a cell entering the visible range.
	Render(ctx CellContext) string
	// Update refreshes content for a cell that stays in range but
	// whose data, position, or interaction state changed. prev is the
	// previously rendered content.
	Update(ctx CellContext, prev string) string
	// Destroy is invoked when a cell leaves the visible range, before
	// its element is returned to the pool.
	Destroy(el *pool.Element)
}

// RendererRef is the tagged renderer reference a column carries:
// either a registry name or a direct instance. It is resolved once
// when the column set is processed, never re-inspected per render.
type RendererRef struct {
	name string
	inst CellRenderer
}

// Named references a renderer registered under name.
func Named(name string) RendererRef { return RendererRef{name: name} }

// Instance references a renderer directly.
func Instance(r CellRenderer) RendererRef { return RendererRef{inst: r} }

// IsZero reports whether the ref points at nothing; zero refs resolve
// to the default renderer.
func (r RendererRef) IsZero() bool { return r.name == "" && r.inst == nil }

// DefaultRendererName is the registry entry used by columns without an
// explicit renderer.
const DefaultRendererName = "text"

// Registry maps renderer names to implementations.
type Registry struct {
	mu sync.RWMutex
	m  map[string]CellRenderer
}

// NewRegistry creates a registry seeded with the default text renderer.
func NewRegistry() *Registry {
	return &Registry{m: map[string]CellRenderer{
		DefaultRendererName: TextRenderer{},
	}}
}

// Register installs a renderer under name, replacing any previous one.
func (r *Registry) Register(name string, renderer CellRenderer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m[name] = renderer
}

// Resolve turns a renderer reference into an implementation. Unknown
// names are an error: a column pointing at a missing renderer is a
// configuration bug, not something to paper over at render time.
func (r *Registry) Resolve(ref RendererRef) (CellRenderer, error) {
	if ref.inst != nil {
		return ref.inst, nil
	}
	name := ref.name
	if name == "" {
		name = DefaultRendererName
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if cr, ok := r.m[name]; ok {
		return cr, nil
	}
	return nil, fmt.Errorf("grid: unknown renderer %q", name)
}

// TextRenderer is the built-in pass-through renderer; the host view
// applies styling and truncation on top of the raw value.
type TextRenderer struct{}

func (TextRenderer) Render(ctx CellContext) string { return ctx.Value }

func (TextRenderer) Update(ctx CellContext, _ string) string { return ctx.Value }

func (TextRenderer) Destroy(*pool.Element) {}
