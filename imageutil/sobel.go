package imageutil

// SobelGradients computes the horizontal and vertical Sobel responses of
// img as a true convolution with border replication. A step that gets
// brighter from left to right therefore has a negative gx, and a step
// that gets brighter from top to bottom has a negative gy.
func SobelGradients(img *GrayImage) (gx, gy []float64) {
	gx = ConvolveGrayFloat(img, SobelXKernel().Flip())
	gy = ConvolveGrayFloat(img, SobelYKernel().Flip())
	return gx, gy
}
