package img2ascii

import (
	"fmt"
	"strings"

	"github.com/wbrown/img2ascii/imageutil"
)

// CharGrid is a rows x cols grid of glyphs, the output of the analysis
// pipeline and the input to the Renderer.
type CharGrid [][]rune

// NewCharGrid returns a grid of the given size filled with zero runes.
func NewCharGrid(rows, cols int) CharGrid {
	cells := make([]rune, rows*cols)
	grid := make(CharGrid, rows)
	for y := range grid {
		grid[y] = cells[y*cols : (y+1)*cols : (y+1)*cols]
	}
	return grid
}

// CharGridFromStrings builds a grid from equal-length lines.
func CharGridFromStrings(lines ...string) (CharGrid, error) {
	grid := make(CharGrid, len(lines))
	for y, line := range lines {
		grid[y] = []rune(line)
		if len(grid[y]) != len(grid[0]) {
			return nil, fmt.Errorf("%w: line %d has %d cells, want %d",
				imageutil.ErrShapeMismatch, y, len(grid[y]), len(grid[0]))
		}
	}
	return grid, nil
}

// Rows returns the number of rows.
func (g CharGrid) Rows() int { return len(g) }

// Cols returns the number of columns, or 0 for an empty grid.
func (g CharGrid) Cols() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// Clone returns a deep copy of the grid.
func (g CharGrid) Clone() CharGrid {
	out := NewCharGrid(g.Rows(), g.Cols())
	for y, row := range g {
		copy(out[y], row)
	}
	return out
}

// String joins the rows with newlines.
func (g CharGrid) String() string {
	var b strings.Builder
	b.Grow(g.Rows() * (g.Cols() + 1))
	for y, row := range g {
		if y > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(row))
	}
	return b.String()
}

func (g CharGrid) rectangular() bool {
	for _, row := range g {
		if len(row) != g.Cols() {
			return false
		}
	}
	return true
}
