package filter

import (
	"fmt"

	"github.com/wbrown/img2ascii/imageutil"
)

// DoG is a difference of Gaussians band-pass filter:
// out = clamp(blur(Sigma2) - blur(Sigma1)). Sigma1 must be smaller than
// Sigma2.
type DoG struct {
	Sigma1 float64
	Sigma2 float64
}

// NewDoG returns a DoG with sigmas 1 and 3.5.
func NewDoG() DoG {
	return DoG{Sigma1: 1, Sigma2: 3.5}
}

func (d DoG) Name() string { return "dog" }

func (d DoG) Apply(img *imageutil.GrayImage) (*imageutil.GrayImage, error) {
	if err := checkInput(img); err != nil {
		return nil, err
	}
	if !validSigma(d.Sigma1) || !validSigma(d.Sigma2) || d.Sigma1 >= d.Sigma2 {
		return nil, fmt.Errorf("%w: dog needs 0 < sigma1 < sigma2, got %g, %g",
			ErrInvalidParams, d.Sigma1, d.Sigma2)
	}

	narrow := gaussianBlur(img, d.Sigma1)
	wide := gaussianBlur(img, d.Sigma2)

	dst := imageutil.NewGrayImage(img.Width(), img.Height())
	imageutil.ParallelRows(img.Height(), func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			n, w, out := narrow.Row(y), wide.Row(y), dst.Row(y)
			for x := range out {
				out[x] = uint8(imageutil.ClampInt(int(w[x])-int(n[x]), 0, 255))
			}
		}
	})
	return dst, nil
}
