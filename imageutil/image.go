// Package imageutil provides the pure Go buffer types and image
// primitives shared by the img2ascii filter, edge and rendering stages.
package imageutil

import (
	"fmt"
	"image"
	"image/color"
)

// RGB represents a color in the RGB color space with 8-bit channels.
type RGB struct {
	R, G, B uint8
}

// ToColor converts RGB to an opaque color.RGBA.
func (rgb RGB) ToColor() color.RGBA {
	return color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
}

// RGBAImage wraps image.RGBA with convenience methods for pixel access.
// Bounds always start at the origin.
type RGBAImage struct {
	*image.RGBA
}

// NewRGBAImage creates a new RGBAImage with the specified dimensions.
func NewRGBAImage(width, height int) *RGBAImage {
	return &RGBAImage{
		RGBA: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// RGBAImageFromImage copies any image.Image into an origin-based RGBAImage.
func RGBAImageFromImage(img image.Image) *RGBAImage {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return &RGBAImage{RGBA: rgba}
	}
	bounds := img.Bounds()
	rgba := NewRGBAImage(bounds.Dx(), bounds.Dy())

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			rgba.Set(x-bounds.Min.X, y-bounds.Min.Y, img.At(x, y))
		}
	}
	return rgba
}

// Width returns the image width.
func (img *RGBAImage) Width() int {
	return img.Bounds().Dx()
}

// Height returns the image height.
func (img *RGBAImage) Height() int {
	return img.Bounds().Dy()
}

// GetRGB returns the RGB value at (x, y).
func (img *RGBAImage) GetRGB(x, y int) RGB {
	c := img.RGBAAt(x, y)
	return RGB{R: c.R, G: c.G, B: c.B}
}

// SetRGB sets the RGB value at (x, y).
func (img *RGBAImage) SetRGB(x, y int, c RGB) {
	img.SetRGBA(x, y, c.ToColor())
}

// GrayImage is the grayscale buffer passed between pipeline stages.
// Stages never modify a GrayImage they received; they return a new one.
type GrayImage struct {
	*image.Gray
}

// NewGrayImage creates a zeroed GrayImage with the specified dimensions.
func NewGrayImage(width, height int) *GrayImage {
	return &GrayImage{
		Gray: image.NewGray(image.Rect(0, 0, width, height)),
	}
}

// GrayFromPix builds a GrayImage from a row-major pixel slice. The slice
// length must equal width*height.
func GrayFromPix(width, height int, pix []uint8) (*GrayImage, error) {
	if width < 0 || height < 0 || len(pix) != width*height {
		return nil, fmt.Errorf("%w: %d pixels for %dx%d buffer",
			ErrShapeMismatch, len(pix), width, height)
	}
	img := NewGrayImage(width, height)
	copy(img.Pix, pix)
	return img, nil
}

// GrayFromRows builds a GrayImage from a slice of equally sized rows.
func GrayFromRows(rows [][]uint8) (*GrayImage, error) {
	height := len(rows)
	width := 0
	if height > 0 {
		width = len(rows[0])
	}
	img := NewGrayImage(width, height)
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d",
				ErrShapeMismatch, y, len(row), width)
		}
		copy(img.Pix[y*img.Stride:], row)
	}
	return img, nil
}

// GrayImageFromImage converts any image.Image to an origin-based GrayImage
// using the color.GrayModel conversion.
func GrayImageFromImage(img image.Image) *GrayImage {
	bounds := img.Bounds()
	gray := NewGrayImage(bounds.Dx(), bounds.Dy())

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray.Set(x-bounds.Min.X, y-bounds.Min.Y, img.At(x, y))
		}
	}
	return gray
}

// Width returns the image width.
func (img *GrayImage) Width() int {
	return img.Bounds().Dx()
}

// Height returns the image height.
func (img *GrayImage) Height() int {
	return img.Bounds().Dy()
}

// Empty reports whether the buffer is nil or has no pixels.
func (img *GrayImage) Empty() bool {
	return img == nil || img.Gray == nil || img.Width() == 0 || img.Height() == 0
}

// GetGray returns the intensity at (x, y).
func (img *GrayImage) GetGray(x, y int) uint8 {
	return img.Gray.Pix[y*img.Stride+x]
}

// SetGrayValue sets the intensity at (x, y).
func (img *GrayImage) SetGrayValue(x, y int, v uint8) {
	img.Gray.Pix[y*img.Stride+x] = v
}

// Row returns row y as a slice aliasing the underlying buffer.
func (img *GrayImage) Row(y int) []uint8 {
	start := y * img.Stride
	return img.Gray.Pix[start : start+img.Width()]
}

// Rows copies the buffer into a slice of rows.
func (img *GrayImage) Rows() [][]uint8 {
	rows := make([][]uint8, img.Height())
	for y := range rows {
		rows[y] = append([]uint8(nil), img.Row(y)...)
	}
	return rows
}

// Clone creates a deep copy of the image.
func (img *GrayImage) Clone() *GrayImage {
	clone := NewGrayImage(img.Width(), img.Height())
	for y := 0; y < img.Height(); y++ {
		copy(clone.Row(y), img.Row(y))
	}
	return clone
}
