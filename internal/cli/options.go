package cli

import (
	"github.com/spf13/cobra"

	"github.com/wbrown/img2ascii"
)

// conversionFlags are the settings shared by convert and batch. Flags
// that were set on the command line override the config file.
type conversionFlags struct {
	configPath   string
	threshold    float64
	cellSize     int
	font         string
	fallbackFont string
	palette      string
	background   string
	foreground   string
	sampleColor  bool
	resampler    string
	detector     string
	noEdgeFilter bool
	workers      int
}

func (f *conversionFlags) register(cmd *cobra.Command) {
	def := img2ascii.DefaultConfig()
	fl := cmd.Flags()
	fl.StringVarP(&f.configPath, "config", "c", "", "TOML config file")
	fl.Float64VarP(&f.threshold, "threshold", "t", def.Threshold, "edge density threshold in [0, 1]")
	fl.IntVar(&f.cellSize, "cell-size", def.CellSize, "cell size in pixels")
	fl.StringVar(&f.font, "font", "", "TrueType font file (default: bundled Go Mono)")
	fl.StringVar(&f.fallbackFont, "fallback-font", "", "font used when --font cannot be parsed")
	fl.StringVar(&f.palette, "palette", def.TilePalette, "tile glyphs from emptiest to densest")
	fl.StringVar(&f.background, "bg", def.Background, "background color")
	fl.StringVar(&f.foreground, "fg", def.Foreground, "glyph color")
	fl.BoolVar(&f.sampleColor, "sample-color", false, "color each glyph from the source image")
	fl.StringVar(&f.resampler, "resampler", def.Resampler, "resize kernel: catmullrom, linear or nearest")
	fl.StringVar(&f.detector, "detector", def.Detector, "edge detector: sobel or canny")
	fl.BoolVar(&f.noEdgeFilter, "no-edge-filters", false, "skip edge preprocessing")
}

// config loads the config file, if any, and applies changed flags.
func (f *conversionFlags) config(cmd *cobra.Command) (*img2ascii.Config, error) {
	cfg := img2ascii.DefaultConfig()
	if f.configPath != "" {
		var err error
		if cfg, err = img2ascii.LoadConfig(f.configPath); err != nil {
			return nil, err
		}
	}

	fl := cmd.Flags()
	if fl.Changed("threshold") {
		cfg.Threshold = f.threshold
	}
	if fl.Changed("cell-size") {
		cfg.CellSize = f.cellSize
	}
	if fl.Changed("font") {
		cfg.Font = f.font
	}
	if fl.Changed("fallback-font") {
		cfg.FallbackFont = f.fallbackFont
	}
	if fl.Changed("palette") {
		cfg.TilePalette = f.palette
	}
	if fl.Changed("bg") {
		cfg.Background = f.background
	}
	if fl.Changed("fg") {
		cfg.Foreground = f.foreground
	}
	if fl.Changed("sample-color") {
		cfg.SampleColor = f.sampleColor
	}
	if fl.Changed("resampler") {
		cfg.Resampler = f.resampler
	}
	if fl.Changed("detector") {
		cfg.Detector = f.detector
	}
	if f.noEdgeFilter {
		cfg.SetEdgeFilters(nil)
	}
	if fl.Lookup("workers") != nil && fl.Changed("workers") {
		cfg.Workers = f.workers
	}
	return cfg, cfg.Validate()
}

// converter builds a Converter from cfg that logs to the command logger.
func converter(cmd *cobra.Command, cfg *img2ascii.Config) (*img2ascii.Converter, error) {
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	opts = append(opts, img2ascii.WithLogger(loggerFromContext(cmd.Context())))
	return img2ascii.NewConverter(opts...), nil
}
