package filter

import (
	"errors"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wbrown/img2ascii/imageutil"
)

type countingFilter struct {
	calls *int
	err   error
}

func (c countingFilter) Name() string { return "counting" }

func (c countingFilter) Apply(img *imageutil.GrayImage) (*imageutil.GrayImage, error) {
	*c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return img.Clone(), nil
}

func rowImage(t *testing.T, pix ...uint8) *imageutil.GrayImage {
	t.Helper()
	img, err := imageutil.GrayFromPix(len(pix), 1, pix)
	require.NoError(t, err)
	return img
}

func TestEmptyChainReturnsCopy(t *testing.T) {
	in := imageutil.CreateSolidGray(4, 4, 9)
	out, err := Chain{}.Apply(in)
	require.NoError(t, err)
	assert.Equal(t, in.Pix, out.Pix)

	out.SetGrayValue(0, 0, 1)
	assert.Equal(t, uint8(9), in.GetGray(0, 0), "chain output must not alias input")
}

func TestChainStopsAtFirstError(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	chain := Chain{
		countingFilter{calls: &calls},
		countingFilter{calls: &calls, err: boom},
		countingFilter{calls: &calls},
	}

	_, err := chain.Apply(imageutil.CreateSolidGray(2, 2, 0))
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls)
	assert.Contains(t, err.Error(), "filter 1")
}

func TestFiltersRejectEmptyInput(t *testing.T) {
	for _, f := range append(DefaultEdgeChain(), Sharpen3x3{}) {
		_, err := f.Apply(nil)
		assert.ErrorIs(t, err, imageutil.ErrShapeMismatch, f.Name())

		_, err = f.Apply(imageutil.NewGrayImage(0, 0))
		assert.ErrorIs(t, err, imageutil.ErrShapeMismatch, f.Name())
	}
	_, err := Chain{}.Apply(nil)
	assert.ErrorIs(t, err, imageutil.ErrShapeMismatch)
}

func TestThresholdModes(t *testing.T) {
	in := rowImage(t, 0, 5, 10, 11, 200)

	out, err := Threshold{Value: 10, Mode: ToZeroInverted}.Apply(in)
	require.NoError(t, err)
	assert.Equal(t, []uint8{0, 5, 10, 0, 0}, out.Row(0))

	out, err = Threshold{Value: 10, Mode: ToZero}.Apply(in)
	require.NoError(t, err)
	assert.Equal(t, []uint8{0, 0, 10, 11, 200}, out.Row(0))

	assert.Equal(t, []uint8{0, 5, 10, 11, 200}, in.Row(0), "input must be untouched")

	_, err = Threshold{Mode: ThresholdMode(7)}.Apply(in)
	assert.ErrorIs(t, err, ErrInvalidParams)
}

func TestMedianRemovesImpulse(t *testing.T) {
	in := imageutil.CreateSolidGray(9, 9, 50)
	in.SetGrayValue(4, 4, 255)

	out, err := NewMedianBlur().Apply(in)
	require.NoError(t, err)
	for _, v := range out.Pix {
		assert.Equal(t, uint8(50), v)
	}

	out, err = MedianBlur{Radius: 0}.Apply(in)
	require.NoError(t, err)
	assert.Equal(t, in.Pix, out.Pix)

	_, err = MedianBlur{Radius: -1}.Apply(in)
	assert.ErrorIs(t, err, ErrInvalidParams)
}

func TestMedianRadiusOneWindow(t *testing.T) {
	in, err := imageutil.GrayFromRows([][]uint8{
		{1, 2, 3},
		{4, 5, 6},
		{7, 8, 9},
	})
	require.NoError(t, err)

	out, err := MedianBlur{Radius: 1}.Apply(in)
	require.NoError(t, err)
	assert.Equal(t, uint8(5), out.GetGray(1, 1))
	// Replicated border: window of (0,0) is {1,1,2,1,1,2,4,4,5}.
	assert.Equal(t, uint8(2), out.GetGray(0, 0))
}

// bruteMedian is a direct (2r+1)^2 median with replicated borders.
func bruteMedian(img *imageutil.GrayImage, r int) *imageutil.GrayImage {
	w, h := img.Width(), img.Height()
	dst := imageutil.NewGrayImage(w, h)
	var window []uint8
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			window = window[:0]
			for dy := -r; dy <= r; dy++ {
				for dx := -r; dx <= r; dx++ {
					sx := imageutil.ClampInt(x+dx, 0, w-1)
					sy := imageutil.ClampInt(y+dy, 0, h-1)
					window = append(window, img.GetGray(sx, sy))
				}
			}
			slices.Sort(window)
			dst.SetGrayValue(x, y, window[len(window)/2])
		}
	}
	return dst
}

func TestMedianMatchesDirectWindow(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	in := imageutil.NewGrayImage(23, 17)
	for i := range in.Pix {
		in.Pix[i] = uint8(rng.IntN(256))
	}

	for _, r := range []int{1, 2, 3} {
		out, err := MedianBlur{Radius: r}.Apply(in)
		require.NoError(t, err)
		assert.Equal(t, bruteMedian(in, r).Pix, out.Pix, "radius %d", r)
	}
}

func TestSharpenUsesRoundedBlur(t *testing.T) {
	in := imageutil.CreateStepGray(16, 8, 8, 40, 200)
	s := Sharpen{Sigma: 1.3, Amount: 0.7}

	out, err := s.Apply(in)
	require.NoError(t, err)

	blur := gaussianBlur(in, s.Sigma)
	for i, p := range in.Pix {
		want := imageutil.ClampUint8(float64(p) + s.Amount*(float64(p)-float64(blur.Pix[i])))
		require.Equal(t, want, out.Pix[i], "pixel %d", i)
	}
}

func TestBilateralPreservesHardEdge(t *testing.T) {
	in := imageutil.CreateStepGray(16, 16, 8, 0, 255)
	out, err := NewBilateral().Apply(in)
	require.NoError(t, err)
	assert.Equal(t, in.Pix, out.Pix)
}

func TestBilateralSmoothsSmallNoise(t *testing.T) {
	in := imageutil.CreateSolidGray(11, 11, 100)
	in.SetGrayValue(5, 5, 102)

	out, err := Bilateral{WindowSize: 4, SigmaColor: 10, SigmaSpatial: 5}.Apply(in)
	require.NoError(t, err)
	assert.Less(t, out.GetGray(5, 5), uint8(102))
	assert.GreaterOrEqual(t, out.GetGray(5, 5), uint8(100))

	_, err = Bilateral{WindowSize: 0, SigmaColor: 1, SigmaSpatial: 1}.Apply(in)
	assert.ErrorIs(t, err, ErrInvalidParams)
}

func TestSharpenIncreasesContrast(t *testing.T) {
	in := imageutil.CreateStepGray(16, 4, 8, 50, 200)
	out, err := NewSharpen().Apply(in)
	require.NoError(t, err)

	assert.Less(t, out.GetGray(7, 2), uint8(50))
	assert.Greater(t, out.GetGray(8, 2), uint8(200))
	assert.InDelta(t, 50, int(out.GetGray(0, 2)), 1)
	assert.InDelta(t, 200, int(out.GetGray(15, 2)), 1)

	_, err = Sharpen{Sigma: 0, Amount: 1}.Apply(in)
	assert.ErrorIs(t, err, ErrInvalidParams)
}

func TestSharpen3x3(t *testing.T) {
	in := imageutil.CreateSolidGray(5, 5, 40)
	in.SetGrayValue(2, 2, 60)

	out, err := Sharpen3x3{}.Apply(in)
	require.NoError(t, err)
	assert.Equal(t, uint8(140), out.GetGray(2, 2)) // 5*60 - 4*40
	assert.Equal(t, uint8(20), out.GetGray(2, 1))  // 5*40 - 3*40 - 60
	assert.Equal(t, uint8(40), out.GetGray(0, 0))
}

func TestDoG(t *testing.T) {
	out, err := NewDoG().Apply(imageutil.CreateSolidGray(16, 16, 120))
	require.NoError(t, err)
	for _, v := range out.Pix {
		assert.LessOrEqual(t, v, uint8(1))
	}

	_, err = DoG{Sigma1: 3, Sigma2: 1}.Apply(imageutil.CreateSolidGray(4, 4, 0))
	assert.ErrorIs(t, err, ErrInvalidParams)
	_, err = DoG{Sigma1: 2, Sigma2: 2}.Apply(imageutil.CreateSolidGray(4, 4, 0))
	assert.ErrorIs(t, err, ErrInvalidParams)
}

func TestFiltersAreDeterministic(t *testing.T) {
	in := imageutil.ToGrayscale(imageutil.CreateEdgeImage(48, 40))
	chain := append(DefaultEdgeChain(), Sharpen3x3{})

	first, err := chain.Apply(in)
	require.NoError(t, err)
	second, err := chain.Apply(in)
	require.NoError(t, err)
	assert.Equal(t, first.Pix, second.Pix)
}

func TestDefaultEdgeChain(t *testing.T) {
	assert.Equal(t,
		[]string{"sharpen", "dog", "bilateral", "median", "threshold"},
		DefaultEdgeChain().Names())
}

func TestFromSpec(t *testing.T) {
	zero, ten := 0, 10

	f, err := FromSpec(Spec{Kind: "DoG"})
	require.NoError(t, err)
	assert.Equal(t, DoG{Sigma1: 1, Sigma2: 3.5}, f)

	f, err = FromSpec(Spec{Kind: "median", Radius: &zero})
	require.NoError(t, err)
	assert.Equal(t, MedianBlur{Radius: 0}, f)

	f, err = FromSpec(Spec{Kind: "threshold", Value: &ten, Mode: "to_zero"})
	require.NoError(t, err)
	assert.Equal(t, Threshold{Value: 10, Mode: ToZero}, f)

	f, err = FromSpec(Spec{Kind: "bilateral", WindowSize: 6})
	require.NoError(t, err)
	assert.Equal(t, Bilateral{WindowSize: 6, SigmaColor: 2, SigmaSpatial: 5}, f)

	f, err = FromSpec(Spec{Kind: "sharpen", Amount: 2})
	require.NoError(t, err)
	assert.Equal(t, Sharpen{Sigma: 1, Amount: 2}, f)

	_, err = FromSpec(Spec{Kind: "sobel"})
	assert.ErrorIs(t, err, ErrUnknownFilter)

	_, err = FromSpec(Spec{Kind: "dog", Sigma1: 4})
	assert.ErrorIs(t, err, ErrInvalidParams)

	big := 300
	_, err = FromSpec(Spec{Kind: "threshold", Value: &big})
	assert.ErrorIs(t, err, ErrInvalidParams)

	_, err = FromSpec(Spec{Kind: "threshold", Mode: "binary"})
	assert.ErrorIs(t, err, ErrInvalidParams)
}

func TestChainFromSpecs(t *testing.T) {
	chain, err := ChainFromSpecs([]Spec{{Kind: "sharpen3x3"}, {Kind: "median"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"sharpen3x3", "median"}, chain.Names())

	_, err = ChainFromSpecs([]Spec{{Kind: "median"}, {Kind: "nope"}})
	require.ErrorIs(t, err, ErrUnknownFilter)
	assert.Contains(t, err.Error(), "filter 1")
}
