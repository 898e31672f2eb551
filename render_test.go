package img2ascii

import (
	"errors"
	"image/color"
	"testing"

	"github.com/wbrown/img2ascii/imageutil"
)

func testRenderer(t *testing.T, cell int) *Renderer {
	t.Helper()
	f, err := LoadFont(DefaultFontSettings())
	if err != nil {
		t.Fatal(err)
	}
	return NewRenderer(f, cell)
}

func TestRenderSize(t *testing.T) {
	r := testRenderer(t, 6)
	grid, _ := CharGridFromStrings("abc", "def")

	img, err := r.Render(grid, nil)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if img.Bounds().Dx() != 18 || img.Bounds().Dy() != 12 {
		t.Errorf("Expected 18x12 image, got %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestRenderBlankIsBackground(t *testing.T) {
	r := testRenderer(t, 8)
	r.Background = color.RGBA{R: 10, G: 20, B: 30, A: 255}
	grid, _ := CharGridFromStrings("   ", "   ")

	img, err := r.Render(grid, nil)
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < img.Bounds().Dy(); y++ {
		for x := 0; x < img.Bounds().Dx(); x++ {
			if img.RGBAAt(x, y) != r.Background {
				t.Fatalf("Expected background at (%d,%d), got %v", x, y, img.RGBAAt(x, y))
			}
		}
	}
}

func TestRenderGlyphStaysInCell(t *testing.T) {
	r := testRenderer(t, 12)
	grid, _ := CharGridFromStrings(" @ ")

	img, err := r.Render(grid, nil)
	if err != nil {
		t.Fatal(err)
	}

	lit := func(x0, x1 int) int {
		n := 0
		for y := 0; y < 12; y++ {
			for x := x0; x < x1; x++ {
				if img.RGBAAt(x, y).R > 0 {
					n++
				}
			}
		}
		return n
	}
	if lit(12, 24) == 0 {
		t.Error("Expected '@' to light pixels in its cell")
	}
	if lit(0, 12) != 0 || lit(24, 36) != 0 {
		t.Error("Glyph should be clipped to its own cell")
	}
}

func TestRenderDeterministic(t *testing.T) {
	r := testRenderer(t, 8)
	lines := make([]string, 40)
	for i := range lines {
		lines[i] = "@%&?O Pco:*,."
	}
	grid, _ := CharGridFromStrings(lines...)

	a, err := r.Render(grid, nil)
	if err != nil {
		t.Fatal(err)
	}
	b, err := r.Render(grid, nil)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatalf("Renders differ at byte %d", i)
		}
	}

	// Every row has the same text, so every strip must be the same.
	stride := a.Stride * 8
	for y := 1; y < 40; y++ {
		for i := 0; i < stride; i++ {
			if a.Pix[y*stride+i] != a.Pix[i] {
				t.Fatalf("Row %d differs from row 0", y)
			}
		}
	}
}

func TestRenderSampleColor(t *testing.T) {
	r := testRenderer(t, 12)
	r.SampleColor = true
	grid, _ := CharGridFromStrings("@@")

	sample := imageutil.NewRGBAImage(2, 1)
	sample.SetRGB(0, 0, imageutil.RGB{R: 255})
	sample.SetRGB(1, 0, imageutil.RGB{B: 255})

	img, err := r.Render(grid, sample)
	if err != nil {
		t.Fatal(err)
	}

	var red, blue int
	for y := 0; y < 12; y++ {
		for x := 0; x < 24; x++ {
			c := img.RGBAAt(x, y)
			switch {
			case x < 12 && (c.G != 0 || c.B != 0):
				t.Fatalf("Left cell should only contain red, got %v", c)
			case x >= 12 && (c.R != 0 || c.G != 0):
				t.Fatalf("Right cell should only contain blue, got %v", c)
			}
			red += int(c.R)
			blue += int(c.B)
		}
	}
	if red == 0 || blue == 0 {
		t.Errorf("Expected both sampled colors to appear, red=%d blue=%d", red, blue)
	}

	if _, err := r.Render(grid, imageutil.NewRGBAImage(3, 1)); !errors.Is(err, imageutil.ErrShapeMismatch) {
		t.Errorf("Expected ErrShapeMismatch for wrong sample size, got %v", err)
	}
	if _, err := r.Render(grid, nil); !errors.Is(err, imageutil.ErrShapeMismatch) {
		t.Errorf("Expected ErrShapeMismatch for missing sample, got %v", err)
	}
}

func TestRenderErrors(t *testing.T) {
	r := testRenderer(t, 8)
	ragged := CharGrid{[]rune("ab"), []rune("c")}
	if _, err := r.Render(ragged, nil); !errors.Is(err, imageutil.ErrShapeMismatch) {
		t.Errorf("Expected ErrShapeMismatch for ragged grid, got %v", err)
	}

	if _, err := (&Renderer{CellSize: 8}).Render(CharGrid{}, nil); !errors.Is(err, ErrInvalidFont) {
		t.Errorf("Expected ErrInvalidFont without a font, got %v", err)
	}

	r.CellSize = 0
	if _, err := r.Render(CharGrid{}, nil); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for zero cell size, got %v", err)
	}
}
