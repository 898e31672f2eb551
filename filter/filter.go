// Package filter implements the grayscale transforms that run before
// luminance quantization and edge detection.
//
// Every filter takes a *imageutil.GrayImage and returns a new one; the
// input is never modified. Filters are chained with Chain.
package filter

import (
	"errors"
	"fmt"

	"github.com/wbrown/img2ascii/imageutil"
)

var (
	// ErrInvalidParams reports filter parameters that cannot be applied.
	ErrInvalidParams = errors.New("invalid filter parameters")

	// ErrUnknownFilter reports a Spec whose Kind names no filter.
	ErrUnknownFilter = errors.New("unknown filter")
)

// Filter is a grayscale to grayscale transform.
type Filter interface {
	Apply(img *imageutil.GrayImage) (*imageutil.GrayImage, error)
	Name() string
}

// Chain applies filters in order. The zero value is an empty chain.
type Chain []Filter

// Apply runs every filter in the chain, feeding each the previous
// output. It stops at the first error. An empty chain returns a copy of
// img.
func (c Chain) Apply(img *imageutil.GrayImage) (*imageutil.GrayImage, error) {
	if err := checkInput(img); err != nil {
		return nil, err
	}
	if len(c) == 0 {
		return img.Clone(), nil
	}

	out := img
	for i, f := range c {
		next, err := f.Apply(out)
		if err != nil {
			return nil, fmt.Errorf("filter %d (%s): %w", i, f.Name(), err)
		}
		out = next
	}
	return out, nil
}

// Names lists the filter names in order.
func (c Chain) Names() []string {
	names := make([]string, len(c))
	for i, f := range c {
		names[i] = f.Name()
	}
	return names
}

func checkInput(img *imageutil.GrayImage) error {
	if img.Empty() {
		return fmt.Errorf("%w: empty input buffer", imageutil.ErrShapeMismatch)
	}
	return nil
}

// mapPixels applies fn to every pixel of img, row-parallel.
func mapPixels(img *imageutil.GrayImage, fn func(v uint8) uint8) *imageutil.GrayImage {
	dst := imageutil.NewGrayImage(img.Width(), img.Height())
	imageutil.ParallelRows(img.Height(), func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			src, out := img.Row(y), dst.Row(y)
			for x, v := range src {
				out[x] = fn(v)
			}
		}
	})
	return dst
}

// redChannel reads the first byte of every 4-byte pixel of an
// origin-based RGBA or NRGBA buffer back into a gray image.
func redChannel(pix []uint8, stride, width, height int) *imageutil.GrayImage {
	dst := imageutil.NewGrayImage(width, height)
	for y := 0; y < height; y++ {
		src := pix[y*stride:]
		row := dst.Row(y)
		for x := range row {
			row[x] = src[x*4]
		}
	}
	return dst
}
