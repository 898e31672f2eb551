package imageutil

import "errors"

var (
	// ErrImage reports a failure to decode or encode raster data.
	ErrImage = errors.New("image decode or encode failed")

	// ErrFileAccess reports a failure to open, read or create a file.
	ErrFileAccess = errors.New("file access failed")

	// ErrShapeMismatch reports buffers whose dimensions disagree.
	ErrShapeMismatch = errors.New("buffer shape mismatch")
)
