// Package dataset generates the deterministic synthetic rows the demo
// app feeds the grid. Generation is seeded so a given config always
// produces the same table, which keeps render traces comparable
// between runs.
package dataset

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/zjrosen/vgrid/internal/cachemanager"
	"github.com/zjrosen/vgrid/internal/log"
)

// Status values cycle through the generated rows.
var statuses = []string{"open", "in-progress", "blocked", "review", "done"}

// Statuses returns the status vocabulary in a stable order.
func Statuses() []string {
	return append([]string(nil), statuses...)
}

var firstNames = []string{
	"Ada", "Grace", "Alan", "Edsger", "Barbara", "Donald", "Ken",
	"Dennis", "Bjarne", "Rob", "Russ", "Brian", "Margaret", "Radia",
}

var lastNames = []string{
	"Lovelace", "Hopper", "Turing", "Dijkstra", "Liskov", "Knuth",
	"Thompson", "Ritchie", "Stroustrup", "Pike", "Cox", "Kernighan",
	"Hamilton", "Perlman",
}

// Row is one synthetic record.
type Row struct {
	ID        int
	Name      string
	Status    string
	Priority  int // 1 (highest) .. 5
	UpdatedAt time.Time
	Score     float64
}

// ColumnKeys returns the dataset's column keys in display order.
func ColumnKeys() []string {
	return []string{"id", "name", "status", "priority", "updated", "score"}
}

// ColumnTitles returns header titles aligned with ColumnKeys.
func ColumnTitles() []string {
	return []string{"ID", "Name", "Status", "Pri", "Updated", "Score"}
}

// Dataset holds generated rows plus a memoizing formatter for cell
// values. Formatting 100k timestamps on every data refresh is wasted
// work; the read-through cache keeps the hot rows cheap.
type Dataset struct {
	rows      []Row
	formatted *cachemanager.ReadThroughCache[string, string, formatInput]
}

type formatInput struct {
	row Row
	col int
}

// Generate produces n deterministic rows from seed.
func Generate(n int, seed int64) *Dataset {
	start := time.Now()
	rng := rand.New(rand.NewSource(seed))
	base := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	rows := make([]Row, n)
	for i := range rows {
		rows[i] = Row{
			ID:        i + 1,
			Name:      firstNames[rng.Intn(len(firstNames))] + " " + lastNames[rng.Intn(len(lastNames))],
			Status:    statuses[rng.Intn(len(statuses))],
			Priority:  1 + rng.Intn(5),
			UpdatedAt: base.Add(time.Duration(rng.Intn(365*24)) * time.Hour),
			Score:     float64(rng.Intn(10000)) / 100,
		}
	}

	cache := cachemanager.NewInMemoryCacheManager[string, string]("dataset-format", 10*time.Minute, time.Minute)
	d := &Dataset{rows: rows}
	d.formatted = cachemanager.NewReadThroughCache[string, string, formatInput](
		cache,
		func(_ context.Context, in formatInput) (string, error) {
			return formatValue(in.row, in.col), nil
		},
		false,
	)

	log.Info(log.CatData, "dataset generated",
		"rows", n,
		"seed", seed,
		"duration", time.Since(start).String())
	return d
}

// Len returns the row count.
func (d *Dataset) Len() int { return len(d.rows) }

// Row returns the record at data index i.
func (d *Dataset) Row(i int) Row { return d.rows[i] }

// Cells materializes the full table as formatted strings, one slice
// per row in ColumnKeys order. Values are memoized so repeated calls
// after a data refresh reuse prior formatting.
func (d *Dataset) Cells() [][]string {
	ctx := context.Background()
	cols := len(ColumnKeys())
	out := make([][]string, len(d.rows))
	for i, row := range d.rows {
		cells := make([]string, cols)
		for c := 0; c < cols; c++ {
			key := strconv.Itoa(row.ID) + ":" + strconv.Itoa(c)
			v, err := d.formatted.Get(ctx, key, formatInput{row: row, col: c}, 10*time.Minute)
			if err != nil {
				// The loader cannot fail; guard anyway.
				v = formatValue(row, c)
			}
			cells[c] = v
		}
		out[i] = cells
	}
	return out
}

func formatValue(r Row, col int) string {
	switch col {
	case 0:
		return strconv.Itoa(r.ID)
	case 1:
		return r.Name
	case 2:
		return r.Status
	case 3:
		return "P" + strconv.Itoa(r.Priority)
	case 4:
		return r.UpdatedAt.Format("2006-01-02 15:04")
	case 5:
		return fmt.Sprintf("%.2f", r.Score)
	default:
		return ""
	}
}
