package imageutil

import (
	"fmt"
	"image"
)

// GridSize returns how many whole cells of cellSize pixels fit across and
// down an image of the given dimensions. Partial cells at the right and
// bottom edges are dropped.
func GridSize(width, height, cellSize int) (cols, rows int) {
	if cellSize < 1 {
		return 0, 0
	}
	return width / cellSize, height / cellSize
}

// PrepareCells resizes img to one pixel per output cell and returns both
// the resized color image (used for color sampling) and its grayscale
// version (used for luminance quantization).
//
// Parameters:
//   - img: the decoded source image
//   - cellSize: source pixels per output cell, in both directions
//   - interp: resampling kernel for the downscale
//
// Returns an error wrapping ErrShapeMismatch when not even one cell fits.
func PrepareCells(img image.Image, cellSize int, interp Interpolation) (resized *RGBAImage, gray *GrayImage, err error) {
	bounds := img.Bounds()
	cols, rows := GridSize(bounds.Dx(), bounds.Dy(), cellSize)
	if cols == 0 || rows == 0 {
		return nil, nil, fmt.Errorf("%w: %dx%d image holds no %dpx cells",
			ErrShapeMismatch, bounds.Dx(), bounds.Dy(), cellSize)
	}

	resized = Resize(img, cols, rows, interp)
	return resized, ToGrayscale(resized), nil
}
