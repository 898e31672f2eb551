package imageutil

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// minRowsPerBand keeps tiny images from being split into bands that cost
// more to schedule than to compute.
const minRowsPerBand = 8

// Bands splits [0, n) into at most workers contiguous, disjoint ranges.
// Each range is returned as a [start, end) pair.
func Bands(n, workers int) [][2]int {
	if n <= 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	if limit := (n + minRowsPerBand - 1) / minRowsPerBand; workers > limit {
		workers = limit
	}
	size := (n + workers - 1) / workers
	bands := make([][2]int, 0, workers)
	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}
		bands = append(bands, [2]int{start, end})
	}
	return bands
}

// ParallelRows calls fn once per band of rows in [0, n). Bands are
// disjoint, so fn may write to any output row in [y0, y1) without
// synchronisation. ParallelRows returns once every band is done.
func ParallelRows(n int, fn func(y0, y1 int)) {
	_ = ParallelRowsErr(n, func(y0, y1 int) error {
		fn(y0, y1)
		return nil
	})
}

// ParallelRowsErr is ParallelRows for fallible work. It returns the
// first error reported by any band.
func ParallelRowsErr(n int, fn func(y0, y1 int) error) error {
	bands := Bands(n, runtime.GOMAXPROCS(0))
	if len(bands) == 1 {
		return fn(bands[0][0], bands[0][1])
	}

	var g errgroup.Group
	for _, b := range bands {
		g.Go(func() error {
			return fn(b[0], b[1])
		})
	}
	return g.Wait()
}
