package edge

import (
	"fmt"

	"github.com/wbrown/img2ascii/imageutil"
)

// Detector turns a grayscale image into one edge class per pixel.
type Detector interface {
	Detect(img *imageutil.GrayImage) (*ClassMap, error)
}

// Sobel classifies the direction of the 3x3 Sobel gradient at every
// pixel. Flat regions are None.
type Sobel struct{}

func (Sobel) Detect(img *imageutil.GrayImage) (*ClassMap, error) {
	if img.Empty() {
		return nil, fmt.Errorf("%w: empty input buffer", imageutil.ErrShapeMismatch)
	}
	gx, gy := imageutil.SobelGradients(img)
	return classifyGradients(gx, gy, img.Width(), img.Height()), nil
}

func classifyGradients(gx, gy []float64, width, height int) *ClassMap {
	m := NewClassMap(width, height)
	imageutil.ParallelRows(height, func(y0, y1 int) {
		for i := y0 * width; i < y1*width; i++ {
			m.Pix[i] = Classify(ThetaNorm(gx[i], gy[i]))
		}
	})
	return m
}
