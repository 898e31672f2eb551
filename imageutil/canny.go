package imageutil

import "math"

// GaussianKernel5x5 returns a 5x5 Gaussian blur kernel with sigma ~1.4.
func GaussianKernel5x5() *Kernel {
	return NewKernel([][]float64{
		{2.0 / 159, 4.0 / 159, 5.0 / 159, 4.0 / 159, 2.0 / 159},
		{4.0 / 159, 9.0 / 159, 12.0 / 159, 9.0 / 159, 4.0 / 159},
		{5.0 / 159, 12.0 / 159, 15.0 / 159, 12.0 / 159, 5.0 / 159},
		{4.0 / 159, 9.0 / 159, 12.0 / 159, 9.0 / 159, 4.0 / 159},
		{2.0 / 159, 4.0 / 159, 5.0 / 159, 4.0 / 159, 2.0 / 159},
	})
}

// Canny performs Canny edge detection on a grayscale image and returns a
// binary map where edge pixels are 255. Typical thresholds are 50 and 150.
func Canny(gray *GrayImage, lowThreshold, highThreshold float64) *GrayImage {
	width, height := gray.Width(), gray.Height()

	blurred := ConvolveGray(gray, GaussianKernel5x5())
	gx, gy := SobelGradients(blurred)

	magnitude := make([]float64, width*height)
	direction := make([]float64, width*height)
	for i := range gx {
		magnitude[i] = math.Sqrt(gx[i]*gx[i] + gy[i]*gy[i])
		direction[i] = math.Atan2(gy[i], gx[i])
	}

	suppressed := nonMaxSuppression(magnitude, direction, width, height)
	return hysteresis(suppressed, lowThreshold, highThreshold, width, height)
}

// nonMaxSuppression keeps only pixels that are local maxima along the
// gradient direction. Border pixels are always suppressed.
func nonMaxSuppression(magnitude, direction []float64, width, height int) []float64 {
	suppressed := make([]float64, width*height)

	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			i := y*width + x
			angle := direction[i] * 180.0 / math.Pi
			if angle < 0 {
				angle += 180
			}

			var q, r float64
			switch {
			case angle < 22.5 || angle >= 157.5:
				q, r = magnitude[i+1], magnitude[i-1]
			case angle < 67.5:
				q, r = magnitude[i+width+1], magnitude[i-width-1]
			case angle < 112.5:
				q, r = magnitude[i+width], magnitude[i-width]
			default:
				q, r = magnitude[i+width-1], magnitude[i-width+1]
			}

			if magnitude[i] >= q && magnitude[i] >= r {
				suppressed[i] = magnitude[i]
			}
		}
	}

	return suppressed
}

// hysteresis marks strong pixels as edges, then grows edges into weak
// pixels that are 8-connected to an existing edge until nothing changes.
func hysteresis(suppressed []float64, low, high float64, width, height int) *GrayImage {
	edges := NewGrayImage(width, height)

	for i, v := range suppressed {
		if v >= high {
			edges.Pix[i] = 255
		}
	}

	changed := true
	for changed {
		changed = false
		for y := 1; y < height-1; y++ {
			for x := 1; x < width-1; x++ {
				i := y*width + x
				v := suppressed[i]
				if v < low || v >= high || edges.Pix[i] != 0 {
					continue
				}
				if hasEdgeNeighbor(edges, x, y) {
					edges.Pix[i] = 255
					changed = true
				}
			}
		}
	}

	return edges
}

func hasEdgeNeighbor(edges *GrayImage, x, y int) bool {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if edges.Pix[(y+dy)*edges.Stride+(x+dx)] == 255 {
				return true
			}
		}
	}
	return false
}
