package edge

import (
	"fmt"
	"math"

	"github.com/wbrown/img2ascii/imageutil"
)

// Downscale reduces a per-pixel class map to rows x cols cells of
// tileSize x tileSize pixels each.
//
// Each cell takes the most frequent class in its block, scanning row by
// row; on a tie the class that reached the count first wins. The cell is
// only set if the block's density, the number of distinct classes
// divided by tileSize², is at least threshold. Otherwise it stays None.
//
// Pixels beyond rows*tileSize or cols*tileSize are ignored. Output rows
// are split across workers, each writing only its own rows.
func Downscale(m *ClassMap, tileSize int, threshold float64, rows, cols int) (*ClassMap, error) {
	if tileSize < 1 || rows < 0 || cols < 0 {
		return nil, fmt.Errorf("%w: tile size %d, grid %dx%d",
			imageutil.ErrShapeMismatch, tileSize, cols, rows)
	}
	if rows*tileSize > m.Height || cols*tileSize > m.Width {
		return nil, fmt.Errorf("%w: %dx%d cells of %dpx exceed %dx%d class map",
			imageutil.ErrShapeMismatch, cols, rows, tileSize, m.Width, m.Height)
	}
	if math.IsNaN(threshold) || threshold < 0 || threshold > 1 {
		return nil, fmt.Errorf("%w: %g", ErrInvalidThreshold, threshold)
	}

	out := NewClassMap(cols, rows)
	area := float64(tileSize * tileSize)

	err := imageutil.ParallelRowsErr(rows, func(i0, i1 int) error {
		for i := i0; i < i1; i++ {
			for j := 0; j < cols; j++ {
				mode, distinct, err := blockMode(m, j*tileSize, i*tileSize, tileSize)
				if err != nil {
					return err
				}
				if float64(distinct)/area >= threshold {
					out.Pix[i*cols+j] = mode
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// blockMode scans the size x size block at (x0, y0) row-major and returns
// its mode and the number of distinct classes present.
func blockMode(m *ClassMap, x0, y0, size int) (mode Class, distinct int, err error) {
	var hist [NumClasses]int
	best := 0
	for y := y0; y < y0+size; y++ {
		for _, c := range m.Pix[y*m.Width+x0 : y*m.Width+x0+size] {
			if !c.Valid() {
				return None, 0, fmt.Errorf("%w: %d in block at (%d,%d)", ErrInvalidClass, c, x0, y0)
			}
			hist[c]++
			if hist[c] == 1 {
				distinct++
			}
			if hist[c] > best {
				best = hist[c]
				mode = c
			}
		}
	}
	return mode, distinct, nil
}
