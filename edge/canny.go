package edge

import (
	"fmt"

	"github.com/wbrown/img2ascii/imageutil"
)

// CannyGated keeps the Sobel class only on pixels that imageutil.Canny
// marks as edges, giving thin single-pixel contours. Everything else is
// None.
type CannyGated struct {
	Low  float64
	High float64
}

// NewCannyGated returns a CannyGated with thresholds 50 and 150.
func NewCannyGated() CannyGated {
	return CannyGated{Low: 50, High: 150}
}

func (c CannyGated) Detect(img *imageutil.GrayImage) (*ClassMap, error) {
	if img.Empty() {
		return nil, fmt.Errorf("%w: empty input buffer", imageutil.ErrShapeMismatch)
	}
	if c.Low < 0 || c.Low > c.High {
		return nil, fmt.Errorf("canny thresholds %g/%g: low must be in [0, high]", c.Low, c.High)
	}

	m, err := Sobel{}.Detect(img)
	if err != nil {
		return nil, err
	}
	edges := imageutil.Canny(img, c.Low, c.High)
	for i, v := range edges.Pix {
		if v == 0 {
			m.Pix[i] = None
		}
	}
	return m, nil
}
