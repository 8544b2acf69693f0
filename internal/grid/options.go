package grid

import (
	"errors"
	"fmt"
)

// Defaults applied by Validate when the corresponding option is zero.
const (
	DefaultOverscanRows = 3
	DefaultOverscanCols = 2
)

var (
	// ErrNotInitialized is returned when rendering is attempted before
	// Init succeeded.
	ErrNotInitialized = errors.New("grid: not initialized")
	// ErrDestroyed is returned when a destroyed grid is used.
	ErrDestroyed = errors.New("grid: destroyed")
)

// Column defines one grid column: its identity and how its cells are
// rendered. The renderer reference is resolved against the registry
// once, when the column set is processed, not at every render.
type Column struct {
	Key      string
	Title    string
	Width    int // fixed width; 0 falls back to Options.ColWidth
	Renderer RendererRef
}

// Options configures a Grid.
//
// RowHeight/ColWidth give uniform sizing; RowHeights/ColWidths, when
// non-nil, switch the corresponding axis to per-index sizing and take
// precedence (their length must match the count).
type Options struct {
	RowCount int
	ColCount int

	RowHeight  int
	ColWidth   int
	RowHeights []int
	ColWidths  []int

	OverscanRows int
	OverscanCols int

	// Columns optionally carries per-column config; when set, its
	// length must equal ColCount.
	Columns []Column

	// PoolSize bounds the element pool; zero uses the pool default.
	PoolSize int

	// CacheCapacity/CacheMaxBytes bound the render cache; zero uses
	// the cache defaults.
	CacheCapacity int
	CacheMaxBytes int64

	// Theme participates in cache fingerprints so a theme switch
	// cannot serve stale renders.
	Theme string
}

// Validate checks the options and fills in defaults. Construction
// fails fast on non-positive dimensions so integration bugs surface at
// startup instead of as a silently empty grid.
func (o *Options) Validate() error {
	if o.RowCount <= 0 {
		return fmt.Errorf("grid: rowCount must be positive, got %d", o.RowCount)
	}
	if o.ColCount <= 0 {
		return fmt.Errorf("grid: colCount must be positive, got %d", o.ColCount)
	}
	if o.RowHeights == nil && o.RowHeight <= 0 {
		return fmt.Errorf("grid: rowHeight must be positive, got %d", o.RowHeight)
	}
	if o.ColWidths == nil && o.ColWidth <= 0 {
		return fmt.Errorf("grid: colWidth must be positive, got %d", o.ColWidth)
	}
	if o.RowHeights != nil {
		if len(o.RowHeights) != o.RowCount {
			return fmt.Errorf("grid: rowHeights length %d != rowCount %d", len(o.RowHeights), o.RowCount)
		}
		for i, h := range o.RowHeights {
			if h <= 0 {
				return fmt.Errorf("grid: rowHeights[%d] must be positive, got %d", i, h)
			}
		}
	}
	if o.ColWidths != nil {
		if len(o.ColWidths) != o.ColCount {
			return fmt.Errorf("grid: colWidths length %d != colCount %d", len(o.ColWidths), o.ColCount)
		}
		for i, w := range o.ColWidths {
			if w <= 0 {
				return fmt.Errorf("grid: colWidths[%d] must be positive, got %d", i, w)
			}
		}
	}
	if o.Columns != nil && len(o.Columns) != o.ColCount {
		return fmt.Errorf("grid: columns length %d != colCount %d", len(o.Columns), o.ColCount)
	}
	if o.OverscanRows == 0 {
		o.OverscanRows = DefaultOverscanRows
	}
	if o.OverscanCols == 0 {
		o.OverscanCols = DefaultOverscanCols
	}
	if o.OverscanRows < 0 || o.OverscanCols < 0 {
		return fmt.Errorf("grid: overscan must be non-negative")
	}
	return nil
}
