package filter

import (
	"fmt"
	"math"

	"github.com/wbrown/img2ascii/imageutil"
)

// Bilateral is an edge-preserving smoothing filter. Each output pixel is
// the average of its square neighbourhood, weighted by
// exp(-d²/2σs²)·exp(-ΔI²/2σc²) where d is the spatial distance and ΔI the
// intensity difference. The window is clipped at the image border.
type Bilateral struct {
	WindowSize   int
	SigmaColor   float64
	SigmaSpatial float64
}

// NewBilateral returns a Bilateral with window 10, sigma color 2 and
// sigma spatial 5.
func NewBilateral() Bilateral {
	return Bilateral{WindowSize: 10, SigmaColor: 2, SigmaSpatial: 5}
}

func (b Bilateral) Name() string { return "bilateral" }

func (b Bilateral) Apply(img *imageutil.GrayImage) (*imageutil.GrayImage, error) {
	if err := checkInput(img); err != nil {
		return nil, err
	}
	if b.WindowSize < 1 || !validSigma(b.SigmaColor) || !validSigma(b.SigmaSpatial) {
		return nil, fmt.Errorf("%w: bilateral window %d, sigmas %g/%g",
			ErrInvalidParams, b.WindowSize, b.SigmaColor, b.SigmaSpatial)
	}

	width, height := img.Width(), img.Height()
	half := b.WindowSize / 2

	// Both weight terms only depend on small integers, so they are
	// tabulated once.
	spatial := make([]float64, (2*half+1)*(2*half+1))
	for dy := -half; dy <= half; dy++ {
		for dx := -half; dx <= half; dx++ {
			d2 := float64(dx*dx + dy*dy)
			spatial[(dy+half)*(2*half+1)+dx+half] = math.Exp(-d2 / (2 * b.SigmaSpatial * b.SigmaSpatial))
		}
	}
	var color [256]float64
	for d := range color {
		color[d] = math.Exp(-float64(d*d) / (2 * b.SigmaColor * b.SigmaColor))
	}

	dst := imageutil.NewGrayImage(width, height)
	imageutil.ParallelRows(height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			center := img.Row(y)
			out := dst.Row(y)
			for x := range out {
				c := int(center[x])
				var sum, norm float64
				for dy := max(-half, -y); dy <= min(half, height-1-y); dy++ {
					row := img.Row(y + dy)
					for dx := max(-half, -x); dx <= min(half, width-1-x); dx++ {
						v := int(row[x+dx])
						diff := v - c
						if diff < 0 {
							diff = -diff
						}
						w := spatial[(dy+half)*(2*half+1)+dx+half] * color[diff]
						sum += w * float64(v)
						norm += w
					}
				}
				out[x] = imageutil.ClampUint8(sum / norm)
			}
		}
	})
	return dst, nil
}
