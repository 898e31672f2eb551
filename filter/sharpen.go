package filter

import (
	"fmt"
	"math"

	"github.com/disintegration/imaging"

	"github.com/wbrown/img2ascii/imageutil"
)

// Sharpen is a Gaussian unsharp mask:
// out = clamp(p + Amount*(p - blur(p))).
type Sharpen struct {
	Sigma  float64
	Amount float64
}

// NewSharpen returns a Sharpen with sigma 1 and amount 1.
func NewSharpen() Sharpen {
	return Sharpen{Sigma: 1, Amount: 1}
}

func (s Sharpen) Name() string { return "sharpen" }

func (s Sharpen) Apply(img *imageutil.GrayImage) (*imageutil.GrayImage, error) {
	if err := checkInput(img); err != nil {
		return nil, err
	}
	if !validSigma(s.Sigma) {
		return nil, fmt.Errorf("%w: sharpen sigma %g must be positive", ErrInvalidParams, s.Sigma)
	}

	blurred := gaussianBlur(img, s.Sigma)
	dst := imageutil.NewGrayImage(img.Width(), img.Height())
	imageutil.ParallelRows(img.Height(), func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			src, blur, out := img.Row(y), blurred.Row(y), dst.Row(y)
			for x, p := range src {
				v := float64(p) + s.Amount*(float64(p)-float64(blur[x]))
				out[x] = imageutil.ClampUint8(v)
			}
		}
	})
	return dst, nil
}

// Sharpen3x3 convolves with the 4-neighbour sharpening kernel.
type Sharpen3x3 struct{}

func (Sharpen3x3) Name() string { return "sharpen3x3" }

func (Sharpen3x3) Apply(img *imageutil.GrayImage) (*imageutil.GrayImage, error) {
	if err := checkInput(img); err != nil {
		return nil, err
	}
	return imageutil.ConvolveGray(img, imageutil.Sharpen3x3Kernel()), nil
}

// gaussianBlur blurs img with imaging.Blur. imaging works on NRGBA, so
// the gray buffer is expanded and the red channel read back. The blur is
// therefore rounded to 8 bits before callers difference it.
func gaussianBlur(img *imageutil.GrayImage, sigma float64) *imageutil.GrayImage {
	nrgba := imaging.Blur(img.Gray, sigma)
	return redChannel(nrgba.Pix, nrgba.Stride, img.Width(), img.Height())
}

func validSigma(sigma float64) bool {
	return sigma > 0 && !math.IsInf(sigma, 0) && !math.IsNaN(sigma)
}
