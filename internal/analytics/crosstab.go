package analytics

import "fmt"

type CrossTabCell struct {
	Row   Label `json:"row"`
	Col   Label `json:"col"`
	Count int   `json:"count"`
}

// Table is a 3x3 frequency table indexed by [row label][column label].
type Table struct {
	Counts [3][3]int
}

// CrossTab counts how many positions carry each (rows[i], cols[i]) pair.
// The two sequences are parallel; a length mismatch or an out-of-range label
// is a programming error and panics.
func CrossTab(rows, cols []Label) Table {
	if len(rows) != len(cols) {
		panic(fmt.Sprintf("analytics: cross-tab of unequal sequences (%d rows, %d columns)", len(rows), len(cols)))
	}

	var t Table
	for i := range rows {
		if !rows[i].valid() || !cols[i].valid() {
			panic(fmt.Sprintf("analytics: cross-tab label out of range at %d (%d, %d)", i, int(rows[i]), int(cols[i])))
		}
		t.Counts[rows[i]][cols[i]]++
	}
	return t
}

func (t Table) Count(row, col Label) int {
	return t.Counts[row][col]
}

// Cells lists all nine cells row-major in label order, zeros included.
func (t Table) Cells() []CrossTabCell {
	cells := make([]CrossTabCell, 0, len(Labels)*len(Labels))
	for _, row := range Labels {
		for _, col := range Labels {
			cells = append(cells, CrossTabCell{Row: row, Col: col, Count: t.Counts[row][col]})
		}
	}
	return cells
}

func (t Table) Total() int {
	total := 0
	for _, row := range t.Counts {
		for _, n := range row {
			total += n
		}
	}
	return total
}
