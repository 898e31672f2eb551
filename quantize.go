package img2ascii

import (
	"math"

	"github.com/wbrown/img2ascii/imageutil"
)

// QuantizeIndex maps a normalized intensity x in [0, 1] to a palette
// index floor(x*(n-1)). Values are clamped, so x <= 0 is 0 and x >= 1 is
// n-1.
func QuantizeIndex(x float64, n int) int {
	if n <= 1 || math.IsNaN(x) || x <= 0 {
		return 0
	}
	if x >= 1 {
		return n - 1
	}
	return min(int(math.Floor(x*float64(n-1))), n-1)
}

// QuantizePixel is QuantizeIndex for an 8-bit value v/255, computed with
// integers so that no rounding can push a value into the next bucket.
func QuantizePixel(v uint8, n int) int {
	if n <= 1 {
		return 0
	}
	return int(v) * (n - 1) / 255
}

// Quantize maps every pixel of gray to a tile glyph.
func Quantize(gray *imageutil.GrayImage, cs CharacterSet) CharGrid {
	rows, cols := gray.Height(), gray.Width()
	grid := NewCharGrid(rows, cols)
	n := cs.TileSize()

	imageutil.ParallelRows(rows, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x, v := range gray.Row(y) {
				grid[y][x] = cs.Tile[QuantizePixel(v, n)]
			}
		}
	})
	return grid
}
