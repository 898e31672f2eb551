package img2ascii

import (
	"fmt"
	"image"
	"image/color"
	"runtime"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/sync/errgroup"

	"github.com/wbrown/img2ascii/imageutil"
)

// Renderer draws a CharGrid with a TrueType font, one CellSize square
// per glyph.
type Renderer struct {
	Font        *truetype.Font
	CellSize    int
	Background  color.RGBA
	Foreground  color.RGBA
	SampleColor bool
}

// NewRenderer returns a Renderer drawing white glyphs on black.
func NewRenderer(f *truetype.Font, cellSize int) *Renderer {
	return &Renderer{
		Font:       f,
		CellSize:   cellSize,
		Background: color.RGBA{A: 255},
		Foreground: color.RGBA{R: 255, G: 255, B: 255, A: 255},
	}
}

// Render draws grid into a new cols*CellSize x rows*CellSize image.
//
// With SampleColor set, each glyph is drawn in the color of pixel
// (col, row) of sample, which must be exactly cols x rows. Otherwise
// sample may be nil and Foreground is used.
//
// Each row is drawn into its own strip by a separate worker. Strips are
// copied into the output by row index once all are done, so the result
// does not depend on scheduling.
func (r *Renderer) Render(grid CharGrid, sample *imageutil.RGBAImage) (*image.RGBA, error) {
	if r.Font == nil {
		return nil, fmt.Errorf("%w: renderer has no font", ErrInvalidFont)
	}
	if r.CellSize < 1 {
		return nil, fmt.Errorf("%w: cell size %d", ErrInvalidConfig, r.CellSize)
	}
	if !grid.rectangular() {
		return nil, fmt.Errorf("%w: ragged character grid", imageutil.ErrShapeMismatch)
	}
	rows, cols := grid.Rows(), grid.Cols()
	if r.SampleColor && (sample == nil || sample.Width() != cols || sample.Height() != rows) {
		return nil, fmt.Errorf("%w: color sample does not match %dx%d grid",
			imageutil.ErrShapeMismatch, cols, rows)
	}

	cell := r.CellSize
	face := truetype.NewFace(r.Font, &truetype.Options{
		Size:    float64(cell),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	baseline := face.Metrics().Ascent.Round()
	face.Close()

	strips := make([]*image.RGBA, rows)
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for y := range rows {
		g.Go(func() error {
			strip, err := r.renderRow(grid[y], y, baseline, sample)
			strips[y] = strip
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := image.NewRGBA(image.Rect(0, 0, cols*cell, rows*cell))
	for y, strip := range strips {
		dst := image.Rect(0, y*cell, cols*cell, (y+1)*cell)
		draw.Draw(out, dst, strip, image.Point{}, draw.Src)
	}
	return out, nil
}

// renderRow draws one grid row into a cols*cell x cell strip. Every glyph
// is clipped to its own cell.
func (r *Renderer) renderRow(row []rune, y, baseline int, sample *imageutil.RGBAImage) (*image.RGBA, error) {
	cell := r.CellSize
	strip := image.NewRGBA(image.Rect(0, 0, len(row)*cell, cell))
	draw.Draw(strip, strip.Bounds(), image.NewUniform(r.Background), image.Point{}, draw.Src)

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(r.Font)
	ctx.SetFontSize(float64(cell))
	ctx.SetHinting(font.HintingFull)
	ctx.SetDst(strip)

	fg := image.NewUniform(r.Foreground)
	for x, ch := range row {
		if ch == ' ' || ch == 0 {
			continue
		}
		if r.SampleColor {
			fg = image.NewUniform(sample.RGBAAt(x, y))
		}
		ctx.SetSrc(fg)
		ctx.SetClip(image.Rect(x*cell, 0, (x+1)*cell, cell))
		if _, err := ctx.DrawString(string(ch), freetype.Pt(x*cell, baseline)); err != nil {
			return nil, fmt.Errorf("draw %q at (%d,%d): %w", ch, x, y, err)
		}
	}
	return strip, nil
}
