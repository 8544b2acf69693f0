package dataset

import (
	"strings"

	"github.com/zjrosen/vgrid/internal/grid/rowindex"
)

// FilterByStatus returns the data row indices whose status matches.
// The result feeds Grid.SetFilter directly.
func (d *Dataset) FilterByStatus(status string) []int {
	keep := make([]int, 0, len(d.rows)/len(statuses)+1)
	for i, r := range d.rows {
		if r.Status == status {
			keep = append(keep, i)
		}
	}
	return keep
}

// FilterByNamePrefix returns data row indices whose name matches the
// prefix, case-insensitive.
func (d *Dataset) FilterByNamePrefix(prefix string) []int {
	prefix = strings.ToLower(prefix)
	var keep []int
	for i, r := range d.rows {
		if strings.HasPrefix(strings.ToLower(r.Name), prefix) {
			keep = append(keep, i)
		}
	}
	return keep
}

// FilterByMaxPriority returns data row indices at or above the given
// urgency (priority value <= max).
func (d *Dataset) FilterByMaxPriority(max int) []int {
	var keep []int
	for i, r := range d.rows {
		if r.Priority <= max {
			keep = append(keep, i)
		}
	}
	return keep
}

// Comparator builds a sort comparator over data row indices for the
// named column. Unknown keys fall back to ID order.
func (d *Dataset) Comparator(colKey string, descending bool) rowindex.Comparator {
	cmp := d.ascendingComparator(colKey)
	if !descending {
		return cmp
	}
	return func(a, b int) int { return -cmp(a, b) }
}

func (d *Dataset) ascendingComparator(colKey string) rowindex.Comparator {
	switch colKey {
	case "name":
		return func(a, b int) int {
			return strings.Compare(d.rows[a].Name, d.rows[b].Name)
		}
	case "status":
		return func(a, b int) int {
			return strings.Compare(d.rows[a].Status, d.rows[b].Status)
		}
	case "priority":
		return func(a, b int) int {
			return d.rows[a].Priority - d.rows[b].Priority
		}
	case "updated":
		return func(a, b int) int {
			return d.rows[a].UpdatedAt.Compare(d.rows[b].UpdatedAt)
		}
	case "score":
		return func(a, b int) int {
			switch {
			case d.rows[a].Score < d.rows[b].Score:
				return -1
			case d.rows[a].Score > d.rows[b].Score:
				return 1
			default:
				return 0
			}
		}
	default:
		return func(a, b int) int {
			return d.rows[a].ID - d.rows[b].ID
		}
	}
}
