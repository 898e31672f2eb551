package filter

import (
	"fmt"

	"github.com/anthonynsimon/bild/effect"

	"github.com/wbrown/img2ascii/imageutil"
)

// MedianBlur replaces each pixel with the median of the (2*Radius+1)
// square window around it. Border pixels are replicated.
type MedianBlur struct {
	Radius int
}

// NewMedianBlur returns a MedianBlur with radius 2 (a 5x5 window).
func NewMedianBlur() MedianBlur {
	return MedianBlur{Radius: 2}
}

func (m MedianBlur) Name() string { return "median" }

func (m MedianBlur) Apply(img *imageutil.GrayImage) (*imageutil.GrayImage, error) {
	if err := checkInput(img); err != nil {
		return nil, err
	}
	if m.Radius < 0 {
		return nil, fmt.Errorf("%w: median radius %d is negative", ErrInvalidParams, m.Radius)
	}
	if m.Radius == 0 {
		return img.Clone(), nil
	}

	// bild pads with edge extension and ranks by luminance, which for
	// gray pixels is the value itself.
	rgba := effect.Median(img.Gray, float64(m.Radius))
	return redChannel(rgba.Pix, rgba.Stride, img.Width(), img.Height()), nil
}
