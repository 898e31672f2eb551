package img2ascii

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/gomono"

	"github.com/wbrown/img2ascii/imageutil"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFontBundled(t *testing.T) {
	f, err := LoadFont(DefaultFontSettings())
	if err != nil {
		t.Fatalf("Bundled font should load: %v", err)
	}
	if f.Index('@') == 0 {
		t.Error("Bundled font should have a glyph for '@'")
	}
}

func TestLoadFontFromFile(t *testing.T) {
	path := writeFile(t, "mono.ttf", gomono.TTF)
	if _, err := LoadFont(FontSettings{CellSize: 4, FontPath: path}); err != nil {
		t.Errorf("Expected font file to load, got %v", err)
	}
}

func TestLoadFontFallsBackToBundled(t *testing.T) {
	path := writeFile(t, "broken.ttf", []byte("not a font"))
	f, err := LoadFont(FontSettings{CellSize: 4, FontPath: path})
	if err != nil {
		t.Fatalf("Expected fallback to bundled font, got %v", err)
	}
	if f == nil {
		t.Fatal("Expected a font")
	}
}

func TestLoadFontFallsBackToPath(t *testing.T) {
	broken := writeFile(t, "broken.ttf", []byte("not a font"))
	good := writeFile(t, "good.ttf", gomono.TTF)

	if _, err := LoadFont(FontSettings{FontPath: broken, FallbackPath: good}); err != nil {
		t.Errorf("Expected fallback font to load, got %v", err)
	}
}

func TestLoadFontInvalid(t *testing.T) {
	broken := writeFile(t, "broken.ttf", []byte("not a font"))
	alsoBroken := writeFile(t, "also.ttf", []byte("still not a font"))

	_, err := LoadFont(FontSettings{FontPath: broken, FallbackPath: alsoBroken})
	if !errors.Is(err, ErrInvalidFont) {
		t.Errorf("Expected ErrInvalidFont, got %v", err)
	}
	if KindOf(err) != KindFont {
		t.Errorf("Expected KindFont, got %v", KindOf(err))
	}

	_, err = LoadFont(FontSettings{FontPath: broken, FallbackPath: filepath.Join(t.TempDir(), "missing.ttf")})
	if !errors.Is(err, ErrInvalidFont) {
		t.Errorf("Expected ErrInvalidFont for missing fallback, got %v", err)
	}
}

func TestLoadFontMissingFile(t *testing.T) {
	_, err := LoadFont(FontSettings{FontPath: filepath.Join(t.TempDir(), "missing.ttf")})
	if !errors.Is(err, imageutil.ErrFileAccess) {
		t.Errorf("Expected ErrFileAccess, got %v", err)
	}
}
