package imageutil

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// LoadImage opens and decodes the image at path. Supports PNG, JPEG,
// GIF, BMP, TIFF and WebP.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileAccess, err)
	}
	defer f.Close()

	return DecodeImage(f)
}

// DecodeImage decodes an image in any registered format from r.
func DecodeImage(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrImage, err)
	}
	return img, nil
}

// SaveImage encodes img to path. The format is chosen from the file
// extension (png, jpg/jpeg, gif, bmp, tif/tiff); anything else is PNG.
func SaveImage(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFileAccess, err)
	}

	if err := EncodeImage(f, img, filepath.Ext(path)); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrFileAccess, err)
	}
	return nil
}

// EncodeImage writes img to w in the format named by ext (with or
// without the leading dot).
func EncodeImage(w io.Writer, img image.Image, ext string) error {
	var err error
	switch strings.TrimPrefix(strings.ToLower(ext), ".") {
	case "jpg", "jpeg":
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
	case "gif":
		err = gif.Encode(w, img, nil)
	case "bmp":
		err = bmp.Encode(w, img)
	case "tif", "tiff":
		err = tiff.Encode(w, img, nil)
	default:
		err = png.Encode(w, img)
	}
	if err != nil {
		return fmt.Errorf("%w: encode: %w", ErrImage, err)
	}
	return nil
}
