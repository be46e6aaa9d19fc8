// Package render turns cell sets into human readable coordinates. A domain
// value v is the cell at row v/9 and column v%9 of a 9x9 grid, printed
// 1-based as "r<row>c<col>".
package render

import (
	"strconv"
	"strings"

	"cellset/internal/cellset"
)

// GridSize is the number of rows and columns.
const GridSize = 9

// Cell returns the coordinate of domain value v.
func Cell(v int) string {
	return "r" + strconv.Itoa(v/GridSize+1) + "c" + strconv.Itoa(v%GridSize+1)
}

// Cells returns the coordinates of every member, space separated, or "-"
// for an empty set.
func Cells(m cellset.Members) string {
	n := m.Size()
	if n == 0 {
		return "-"
	}
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		parts[i] = Cell(m.Get(i))
	}
	return strings.Join(parts, " ")
}

// Compact groups members that share a row: {0,1,2,80} becomes "r1c123,r9c9".
// It relies on members being enumerated in ascending order.
func Compact(m cellset.Members) string {
	n := m.Size()
	if n == 0 {
		return "-"
	}
	var sb strings.Builder
	row := -1
	for i := 0; i < n; i++ {
		v := m.Get(i)
		if r := v / GridSize; r != row {
			if row >= 0 {
				sb.WriteByte(',')
			}
			row = r
			sb.WriteString("r")
			sb.WriteString(strconv.Itoa(r + 1))
			sb.WriteString("c")
		}
		sb.WriteString(strconv.Itoa(v%GridSize + 1))
	}
	return sb.String()
}
