package imageutil

import "image"

// ToGrayscale converts an RGBA image to grayscale using the Rec. 709
// luma weights: Y = 0.2126*R + 0.7152*G + 0.0722*B, rounded.
func ToGrayscale(img *RGBAImage) *GrayImage {
	width, height := img.Width(), img.Height()
	gray := NewGrayImage(width, height)

	ParallelRows(height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			src := img.Pix[y*img.Stride : y*img.Stride+width*4]
			dst := gray.Row(y)
			for x := range dst {
				dst[x] = luma(src[x*4], src[x*4+1], src[x*4+2])
			}
		}
	})

	return gray
}

// GrayscaleOf converts any decoded image to a grayscale buffer. Images
// that are already gray keep their values; color images go through
// ToGrayscale.
func GrayscaleOf(img image.Image) *GrayImage {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return GrayImageFromImage(img)
	}
	return ToGrayscale(RGBAImageFromImage(img))
}

// luma computes integer Rec. 709 luma scaled by 10000.
func luma(r, g, b uint8) uint8 {
	lum := (2126*int(r) + 7152*int(g) + 722*int(b) + 5000) / 10000
	if lum > 255 {
		lum = 255
	}
	return uint8(lum)
}
