package img2ascii

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/wbrown/img2ascii/edge"
	"github.com/wbrown/img2ascii/filter"
	"github.com/wbrown/img2ascii/imageutil"
)

// Config is the TOML form of a Converter's settings:
//
//	cell_size = 8
//	font = "fonts/mono.ttf"
//	tile_palette = " .:-=+*#%@"
//	background = "#101010"
//	foreground = "#e0e0e0"
//	threshold = 0.1
//
//	[[edge_filters]]
//	kind = "median"
//	radius = 1
//
// When edge_filters is absent the default edge chain is used; an empty
// array disables edge filtering.
type Config struct {
	CellSize     int           `toml:"cell_size"`
	Font         string        `toml:"font"`
	FallbackFont string        `toml:"fallback_font"`
	TilePalette  string        `toml:"tile_palette"`
	Background   string        `toml:"background"`
	Foreground   string        `toml:"foreground"`
	SampleColor  bool          `toml:"sample_color"`
	Threshold    float64       `toml:"threshold"`
	Resampler    string        `toml:"resampler"`
	Detector     string        `toml:"detector"`
	Workers      int           `toml:"workers"`
	TileFilters  []filter.Spec `toml:"tile_filters"`
	EdgeFilters  []filter.Spec `toml:"edge_filters"`

	edgeFiltersSet bool
}

// DefaultConfig returns the settings NewConverter uses with no options.
func DefaultConfig() *Config {
	return &Config{
		CellSize:    DefaultCellSize,
		TilePalette: string(DefaultTilePalette),
		Background:  "#000000",
		Foreground:  "#ffffff",
		Resampler:   imageutil.InterpolationCatmullRom.String(),
		Detector:    "sobel",
	}
}

// LoadConfig reads a TOML config file. Keys missing from the file keep
// their DefaultConfig values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: config: %w", imageutil.ErrFileAccess, err)
	}
	cfg, err := ParseConfig(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes TOML config text. Unknown keys are an error.
func ParseConfig(data string) (*Config, error) {
	cfg := DefaultConfig()
	md, err := toml.Decode(data, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%w: unknown keys %s", ErrInvalidConfig, strings.Join(keys, ", "))
	}
	cfg.edgeFiltersSet = md.IsDefined("edge_filters")
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that decode fine but cannot be used.
func (c *Config) Validate() error {
	if c.CellSize < 1 {
		return fmt.Errorf("%w: cell_size %d must be at least 1", ErrInvalidConfig, c.CellSize)
	}
	if c.TilePalette == "" {
		return fmt.Errorf("%w: tile_palette is empty", ErrInvalidConfig)
	}
	if math.IsNaN(c.Threshold) || c.Threshold < 0 || c.Threshold > 1 {
		return fmt.Errorf("%w: threshold %g outside [0, 1]", ErrInvalidConfig, c.Threshold)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers %d is negative", ErrInvalidConfig, c.Workers)
	}
	return nil
}

// SetEdgeFilters replaces the edge filter list, as if it had been given
// in the file.
func (c *Config) SetEdgeFilters(specs []filter.Spec) {
	c.EdgeFilters = specs
	c.edgeFiltersSet = true
}

// Options converts the config to Converter options.
func (c *Config) Options() ([]Option, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	cs, err := NewCharacterSet([]rune(c.TilePalette))
	if err != nil {
		return nil, err
	}
	bg, err := ParseColor(c.Background)
	if err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}
	fg, err := ParseColor(c.Foreground)
	if err != nil {
		return nil, fmt.Errorf("foreground: %w", err)
	}
	interp, err := imageutil.ParseInterpolation(c.Resampler)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	detector, err := parseDetector(c.Detector)
	if err != nil {
		return nil, err
	}
	tileChain, err := filter.ChainFromSpecs(c.TileFilters)
	if err != nil {
		return nil, fmt.Errorf("tile_filters: %w", err)
	}

	opts := []Option{
		WithFontSettings(FontSettings{
			CellSize:     c.CellSize,
			FontPath:     c.Font,
			FallbackPath: c.FallbackFont,
		}),
		WithCharacterSet(cs),
		WithBackground(bg),
		WithForeground(fg),
		WithSampleColor(c.SampleColor),
		WithResampler(interp),
		WithEdgeDetector(detector),
		WithTileFilters(tileChain...),
		WithWorkers(c.Workers),
	}

	if c.edgeFiltersSet {
		edgeChain, err := filter.ChainFromSpecs(c.EdgeFilters)
		if err != nil {
			return nil, fmt.Errorf("edge_filters: %w", err)
		}
		opts = append(opts, WithEdgeFilters(edgeChain...))
	}
	return opts, nil
}

// ParseColor parses a hex color such as "#ff8800" into an opaque color.
func ParseColor(s string) (color.RGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: color %q: %w", ErrInvalidConfig, s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

func parseDetector(name string) (edge.Detector, error) {
	switch strings.ToLower(name) {
	case "", "sobel":
		return edge.Sobel{}, nil
	case "canny":
		return edge.NewCannyGated(), nil
	}
	return nil, fmt.Errorf("%w: unknown detector %q", ErrInvalidConfig, name)
}
