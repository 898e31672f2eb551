package imageutil

import "math"

// Kernel represents a convolution kernel.
type Kernel struct {
	Values [][]float64
	Width  int
	Height int
}

// NewKernel creates a new kernel from a 2D slice.
func NewKernel(values [][]float64) *Kernel {
	height := len(values)
	width := 0
	if height > 0 {
		width = len(values[0])
	}
	return &Kernel{
		Values: values,
		Width:  width,
		Height: height,
	}
}

// Flip returns the kernel rotated by 180 degrees. Applying a flipped
// kernel with ConvolveGray gives the true (mathematical) convolution.
func (k *Kernel) Flip() *Kernel {
	values := make([][]float64, k.Height)
	for y := range values {
		values[y] = make([]float64, k.Width)
		for x := range values[y] {
			values[y][x] = k.Values[k.Height-1-y][k.Width-1-x]
		}
	}
	return NewKernel(values)
}

// Sharpen3x3Kernel returns the 4-neighbour sharpening kernel.
func Sharpen3x3Kernel() *Kernel {
	return NewKernel([][]float64{
		{0, -1, 0},
		{-1, 5, -1},
		{0, -1, 0},
	})
}

// SobelXKernel returns the horizontal Sobel kernel.
func SobelXKernel() *Kernel {
	return NewKernel([][]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	})
}

// SobelYKernel returns the vertical Sobel kernel.
func SobelYKernel() *Kernel {
	return NewKernel([][]float64{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	})
}

// ConvolveGray correlates a grayscale image with kernel, replicating
// border pixels, and clamps the result to [0, 255].
func ConvolveGray(img *GrayImage, kernel *Kernel) *GrayImage {
	width, height := img.Width(), img.Height()
	sums := ConvolveGrayFloat(img, kernel)
	dst := NewGrayImage(width, height)

	ParallelRows(height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			row := dst.Row(y)
			for x := range row {
				row[x] = ClampUint8(sums[y*width+x])
			}
		}
	})

	return dst
}

// ConvolveGrayFloat correlates a grayscale image with kernel, replicating
// border pixels. The unclamped sums are returned row-major.
func ConvolveGrayFloat(img *GrayImage, kernel *Kernel) []float64 {
	width, height := img.Width(), img.Height()
	dst := make([]float64, width*height)

	halfKW := kernel.Width / 2
	halfKH := kernel.Height / 2

	ParallelRows(height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < width; x++ {
				var sum float64

				for ky := 0; ky < kernel.Height; ky++ {
					sy := ClampInt(y+ky-halfKH, 0, height-1)
					row := img.Row(sy)
					for kx := 0; kx < kernel.Width; kx++ {
						sx := ClampInt(x+kx-halfKW, 0, width-1)
						sum += float64(row[sx]) * kernel.Values[ky][kx]
					}
				}

				dst[y*width+x] = sum
			}
		}
	})

	return dst
}

// ClampInt clamps an integer to the given range.
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampUint8 rounds a float64 and clamps it to [0, 255].
func ClampUint8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(math.Round(v))
}
