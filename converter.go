package img2ascii

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/golang/freetype/truetype"
	"golang.org/x/sync/errgroup"

	"github.com/wbrown/img2ascii/edge"
	"github.com/wbrown/img2ascii/filter"
	"github.com/wbrown/img2ascii/imageutil"
)

// Converter runs the full image to character grid to image pipeline. A
// Converter is safe for concurrent use once constructed.
type Converter struct {
	fontSettings FontSettings
	charset      CharacterSet
	tileFilters  filter.Chain
	edgeFilters  filter.Chain
	detector     edge.Detector
	background   color.RGBA
	foreground   color.RGBA
	sampleColor  bool
	resampler    imageutil.Interpolation
	workers      int
	logger       *log.Logger

	fontOnce sync.Once
	font     *truetype.Font
	fontErr  error
}

// Option configures a Converter.
type Option func(*Converter)

// NewConverter creates a Converter with the given options.
// Defaults: 4 pixel cells with the bundled font, the default character
// set, no tile filters, filter.DefaultEdgeChain, a Sobel detector, white
// on black, Catmull-Rom resampling and one batch worker per CPU.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		fontSettings: DefaultFontSettings(),
		charset:      DefaultCharacterSet(),
		edgeFilters:  filter.DefaultEdgeChain(),
		detector:     edge.Sobel{},
		background:   color.RGBA{A: 255},
		foreground:   color.RGBA{R: 255, G: 255, B: 255, A: 255},
		resampler:    imageutil.InterpolationCatmullRom,
		workers:      runtime.GOMAXPROCS(0),
		logger:       log.New(io.Discard),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithFontSettings sets the font and cell size.
func WithFontSettings(fs FontSettings) Option {
	return func(c *Converter) {
		c.fontSettings = fs
	}
}

// WithCharacterSet sets the tile and edge palettes.
func WithCharacterSet(cs CharacterSet) Option {
	return func(c *Converter) {
		c.charset = cs
	}
}

// WithTileFilters sets the chain applied to the resized image before
// quantization. No arguments means no filtering.
func WithTileFilters(filters ...filter.Filter) Option {
	return func(c *Converter) {
		c.tileFilters = filter.Chain(filters)
	}
}

// WithEdgeFilters sets the chain applied to the full resolution image
// before edge detection. No arguments means no filtering.
func WithEdgeFilters(filters ...filter.Filter) Option {
	return func(c *Converter) {
		c.edgeFilters = filter.Chain(filters)
	}
}

// WithEdgeDetector sets the per-pixel edge classifier.
func WithEdgeDetector(d edge.Detector) Option {
	return func(c *Converter) {
		c.detector = d
	}
}

// WithBackground sets the cell background color.
func WithBackground(bg color.Color) Option {
	return func(c *Converter) {
		c.background = color.RGBAModel.Convert(bg).(color.RGBA)
	}
}

// WithForeground sets the glyph color used when color sampling is off.
func WithForeground(fg color.Color) Option {
	return func(c *Converter) {
		c.foreground = color.RGBAModel.Convert(fg).(color.RGBA)
	}
}

// WithSampleColor enables drawing each glyph in the color of its cell in
// the resized source image.
func WithSampleColor(enabled bool) Option {
	return func(c *Converter) {
		c.sampleColor = enabled
	}
}

// WithResampler sets the kernel used to resize the image to the cell
// grid.
func WithResampler(interp imageutil.Interpolation) Option {
	return func(c *Converter) {
		c.resampler = interp
	}
}

// WithWorkers sets how many ConvertBatch jobs run at once.
func WithWorkers(n int) Option {
	return func(c *Converter) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithLogger sets the logger for stage timings. The default discards.
func WithLogger(l *log.Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.logger = l
		}
	}
}

// Result holds the intermediate grids of one analysis.
type Result struct {
	Rows, Cols int

	// Tiles is the quantized luminance grid.
	Tiles CharGrid
	// Edges holds one edge class per cell.
	Edges *edge.ClassMap
	// Grid is Tiles with edge glyphs applied.
	Grid CharGrid
	// Resized is the source image at one pixel per cell.
	Resized *imageutil.RGBAImage
}

// Analyze runs both branches of the pipeline on img and composes the
// final character grid. threshold is the edge density gate in [0, 1]
// passed to edge.Downscale.
func (c *Converter) Analyze(img image.Image, threshold float64) (*Result, error) {
	if math.IsNaN(threshold) || threshold < 0 || threshold > 1 {
		return nil, fmt.Errorf("%w: %g", edge.ErrInvalidThreshold, threshold)
	}
	if err := c.fontSettings.Validate(); err != nil {
		return nil, err
	}
	if err := c.charset.Validate(); err != nil {
		return nil, err
	}
	cell := c.fontSettings.CellSize

	start := time.Now()
	resized, small, err := imageutil.PrepareCells(img, cell, c.resampler)
	if err != nil {
		if errors.Is(err, imageutil.ErrShapeMismatch) {
			b := img.Bounds()
			return nil, fmt.Errorf("%w: %dx%d with %dpx cells", ErrImageTooSmall, b.Dx(), b.Dy(), cell)
		}
		return nil, err
	}
	res := &Result{Rows: small.Height(), Cols: small.Width(), Resized: resized}
	c.logger.Debug("resized", "rows", res.Rows, "cols", res.Cols, "duration", time.Since(start))

	var g errgroup.Group
	g.Go(func() error {
		tiles, err := c.tileBranch(small)
		res.Tiles = tiles
		return err
	})
	g.Go(func() error {
		edges, err := c.edgeBranch(img, cell, threshold, res.Rows, res.Cols)
		res.Edges = edges
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res.Grid, err = Compose(res.Tiles, res.Edges, c.charset)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("composed", "edge_cells", res.Rows*res.Cols-res.Edges.Count(edge.None), "duration", time.Since(start))
	return res, nil
}

func (c *Converter) tileBranch(small *imageutil.GrayImage) (CharGrid, error) {
	start := time.Now()
	filtered, err := c.applyChain("tile", c.tileFilters, small)
	if err != nil {
		return nil, err
	}
	tiles := Quantize(filtered, c.charset)
	c.logger.Debug("quantized", "palette", c.charset.TileSize(), "duration", time.Since(start))
	return tiles, nil
}

func (c *Converter) edgeBranch(img image.Image, cell int, threshold float64, rows, cols int) (*edge.ClassMap, error) {
	start := time.Now()
	filtered, err := c.applyChain("edge", c.edgeFilters, imageutil.GrayscaleOf(img))
	if err != nil {
		return nil, err
	}

	classes, err := c.detector.Detect(filtered)
	if err != nil {
		return nil, fmt.Errorf("edge detection: %w", err)
	}
	c.logger.Debug("detected edges", "width", classes.Width, "height", classes.Height, "duration", time.Since(start))

	cells, err := edge.Downscale(classes, cell, threshold, rows, cols)
	if err != nil {
		return nil, fmt.Errorf("edge downscale: %w", err)
	}
	c.logger.Debug("downscaled edges", "threshold", threshold, "duration", time.Since(start))
	return cells, nil
}

func (c *Converter) applyChain(branch string, chain filter.Chain, img *imageutil.GrayImage) (*imageutil.GrayImage, error) {
	start := time.Now()
	out, err := chain.Apply(img)
	if err != nil {
		return nil, fmt.Errorf("%s filters: %w", branch, err)
	}
	c.logger.Debug("filtered", "branch", branch, "filters", chain.Names(), "duration", time.Since(start))
	return out, nil
}

// Font returns the loaded font, loading it on first use.
func (c *Converter) Font() (*truetype.Font, error) {
	c.fontOnce.Do(func() {
		c.font, c.fontErr = LoadFont(c.fontSettings)
	})
	return c.font, c.fontErr
}

// Renderer returns a Renderer configured like the Converter.
func (c *Converter) Renderer() (*Renderer, error) {
	f, err := c.Font()
	if err != nil {
		return nil, err
	}
	return &Renderer{
		Font:        f,
		CellSize:    c.fontSettings.CellSize,
		Background:  c.background,
		Foreground:  c.foreground,
		SampleColor: c.sampleColor,
	}, nil
}

// ConvertImage analyzes img and renders the resulting grid.
func (c *Converter) ConvertImage(img image.Image, threshold float64) (*image.RGBA, *Result, error) {
	res, err := c.Analyze(img, threshold)
	if err != nil {
		return nil, nil, err
	}
	r, err := c.Renderer()
	if err != nil {
		return nil, nil, err
	}

	start := time.Now()
	out, err := r.Render(res.Grid, res.Resized)
	if err != nil {
		return nil, nil, fmt.Errorf("render: %w", err)
	}
	c.logger.Debug("rendered", "width", out.Bounds().Dx(), "height", out.Bounds().Dy(), "duration", time.Since(start))
	return out, res, nil
}

// Convert reads the image at inputPath, converts it and writes the
// result to outputPath in the format implied by its extension.
func (c *Converter) Convert(inputPath, outputPath string, threshold float64) error {
	_, err := c.ConvertFile(inputPath, outputPath, threshold)
	return err
}

// ConvertFile is Convert that also returns the analysis result.
func (c *Converter) ConvertFile(inputPath, outputPath string, threshold float64) (*Result, error) {
	start := time.Now()
	img, err := imageutil.LoadImage(inputPath)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", inputPath, err)
	}

	out, res, err := c.ConvertImage(img, threshold)
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", inputPath, err)
	}

	if err := imageutil.SaveImage(out, outputPath); err != nil {
		return nil, fmt.Errorf("save %s: %w", outputPath, err)
	}
	c.logger.Info("converted", "input", inputPath, "output", outputPath,
		"rows", res.Rows, "cols", res.Cols, "duration", time.Since(start).Round(time.Millisecond))
	return res, nil
}

// ConvertVideo is not implemented and always returns ErrUnsupported.
func (c *Converter) ConvertVideo(inputPath, outputPath string) error {
	return fmt.Errorf("%w: video conversion of %s", ErrUnsupported, inputPath)
}
