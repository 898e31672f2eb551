package imageutil

import (
	"image/color"
	"math"
)

// CreateGradientImage creates a horizontal gradient test image.
func CreateGradientImage(width, height int) *RGBAImage {
	img := NewRGBAImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := uint8(255 * x / (width - 1))
			img.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return img
}

// CreateVerticalGradientImage creates a vertical gradient test image.
func CreateVerticalGradientImage(width, height int) *RGBAImage {
	img := NewRGBAImage(width, height)
	for y := 0; y < height; y++ {
		v := uint8(255 * y / (height - 1))
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return img
}

// CreateCheckerboardImage creates a checkerboard pattern for edge testing.
func CreateCheckerboardImage(width, height, squareSize int) *RGBAImage {
	img := NewRGBAImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if ((x/squareSize)+(y/squareSize))%2 == 0 {
				img.SetRGB(x, y, RGB{R: 255, G: 255, B: 255})
			} else {
				img.SetRGB(x, y, RGB{})
			}
		}
	}
	return img
}

// CreateSolidImage creates a solid color image.
func CreateSolidImage(width, height int, c RGB) *RGBAImage {
	img := NewRGBAImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGB(x, y, c)
		}
	}
	return img
}

// CreateSolidGray creates a grayscale buffer filled with v.
func CreateSolidGray(width, height int, v uint8) *GrayImage {
	img := NewGrayImage(width, height)
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

// CreateStepGray creates a grayscale buffer whose columns left of split
// are lo and whose remaining columns are hi.
func CreateStepGray(width, height, split int, lo, hi uint8) *GrayImage {
	img := NewGrayImage(width, height)
	for y := 0; y < height; y++ {
		row := img.Row(y)
		for x := range row {
			if x < split {
				row[x] = lo
			} else {
				row[x] = hi
			}
		}
	}
	return img
}

// CreateColorBarsImage creates a color bars test pattern.
func CreateColorBarsImage(width, height int) *RGBAImage {
	img := NewRGBAImage(width, height)
	colors := []RGB{
		{255, 255, 255}, // White
		{255, 255, 0},   // Yellow
		{0, 255, 255},   // Cyan
		{0, 255, 0},     // Green
		{255, 0, 255},   // Magenta
		{255, 0, 0},     // Red
		{0, 0, 255},     // Blue
		{0, 0, 0},       // Black
	}

	barWidth := width / len(colors)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			colorIdx := min(x/barWidth, len(colors)-1)
			img.SetRGB(x, y, colors[colorIdx])
		}
	}
	return img
}

// CreateEdgeImage creates an image with a bright rectangle on gray and a
// dark diagonal line, for testing edge detection.
func CreateEdgeImage(width, height int) *RGBAImage {
	img := CreateSolidImage(width, height, RGB{128, 128, 128})

	for y := height / 4; y < 3*height/4; y++ {
		for x := width / 4; x < 3*width/4; x++ {
			img.SetRGB(x, y, RGB{255, 255, 255})
		}
	}

	for i := 0; i < min(width, height)/2; i++ {
		img.SetRGB(i, i, RGB{})
	}

	return img
}

// CalculateMSEGray calculates the Mean Squared Error between two grayscale
// images. Images of different sizes compare as math.MaxFloat64.
func CalculateMSEGray(img1, img2 *GrayImage) float64 {
	if img1.Width() != img2.Width() || img1.Height() != img2.Height() {
		return math.MaxFloat64
	}

	width, height := img1.Width(), img1.Height()
	var sumSq float64

	for y := 0; y < height; y++ {
		r1, r2 := img1.Row(y), img2.Row(y)
		for x := 0; x < width; x++ {
			d := float64(r1[x]) - float64(r2[x])
			sumSq += d * d
		}
	}

	return sumSq / float64(width*height)
}

// CalculateMaxDiffGray returns the largest absolute pixel difference
// between two grayscale images, or 256 if their sizes differ.
func CalculateMaxDiffGray(img1, img2 *GrayImage) int {
	if img1.Width() != img2.Width() || img1.Height() != img2.Height() {
		return 256
	}

	maxDiff := 0
	for y := 0; y < img1.Height(); y++ {
		r1, r2 := img1.Row(y), img2.Row(y)
		for x := range r1 {
			d := int(r1[x]) - int(r2[x])
			if d < 0 {
				d = -d
			}
			maxDiff = max(maxDiff, d)
		}
	}
	return maxDiff
}

// CalculateJaccardIndex calculates the Jaccard similarity between two
// binary edge maps. Returns a value between 0 (no overlap) and 1.
func CalculateJaccardIndex(edges1, edges2 *GrayImage) float64 {
	if edges1.Width() != edges2.Width() || edges1.Height() != edges2.Height() {
		return 0
	}

	var intersection, union int
	for y := 0; y < edges1.Height(); y++ {
		r1, r2 := edges1.Row(y), edges2.Row(y)
		for x := range r1 {
			e1, e2 := r1[x] > 128, r2[x] > 128
			if e1 && e2 {
				intersection++
			}
			if e1 || e2 {
				union++
			}
		}
	}

	if union == 0 {
		return 1.0
	}
	return float64(intersection) / float64(union)
}
