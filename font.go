package img2ascii

import (
	"fmt"
	"os"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/wbrown/img2ascii/imageutil"
)

// DefaultCellSize is the default cell edge length in pixels.
const DefaultCellSize = 4

// FontSettings selects the font and cell geometry used for rendering.
// An empty FontPath uses the bundled Go Mono font directly. An empty
// FallbackPath falls back to Go Mono when FontPath cannot be parsed.
type FontSettings struct {
	CellSize     int
	FontPath     string
	FallbackPath string
}

// DefaultFontSettings returns 4 pixel cells with the bundled font.
func DefaultFontSettings() FontSettings {
	return FontSettings{CellSize: DefaultCellSize}
}

// Validate checks the cell size.
func (fs FontSettings) Validate() error {
	if fs.CellSize < 1 {
		return fmt.Errorf("%w: cell size %d must be at least 1", ErrInvalidConfig, fs.CellSize)
	}
	return nil
}

// LoadFont loads the font named by fs. A file that cannot be read is an
// imageutil.ErrFileAccess error. A file that cannot be parsed is retried
// once with the fallback; if that also fails the error is ErrInvalidFont.
func LoadFont(fs FontSettings) (*truetype.Font, error) {
	if fs.FontPath == "" {
		return parseBundled()
	}

	data, err := os.ReadFile(fs.FontPath)
	if err != nil {
		return nil, fmt.Errorf("%w: font %s: %w", imageutil.ErrFileAccess, fs.FontPath, err)
	}
	f, err := freetype.ParseFont(data)
	if err == nil {
		return f, nil
	}
	primaryErr := err

	if fs.FallbackPath == "" {
		f, err = parseBundled()
		if err != nil {
			return nil, fmt.Errorf("%s: %v; %w", fs.FontPath, primaryErr, err)
		}
		return f, nil
	}

	data, err = os.ReadFile(fs.FallbackPath)
	if err == nil {
		f, err = freetype.ParseFont(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v; fallback %s: %v",
			ErrInvalidFont, fs.FontPath, primaryErr, fs.FallbackPath, err)
	}
	return f, nil
}

func parseBundled() (*truetype.Font, error) {
	f, err := freetype.ParseFont(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("%w: bundled font: %v", ErrInvalidFont, err)
	}
	return f, nil
}
