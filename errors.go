package img2ascii

import (
	"errors"
	"fmt"

	"github.com/wbrown/img2ascii/edge"
	"github.com/wbrown/img2ascii/filter"
	"github.com/wbrown/img2ascii/imageutil"
)

var (
	// ErrInvalidFont is returned when neither the configured font nor its
	// fallback can be parsed.
	ErrInvalidFont = errors.New("invalid font")

	// ErrUnsupported is returned by entry points that exist but have no
	// implementation.
	ErrUnsupported = errors.New("unsupported operation")

	// ErrImageTooSmall is returned when the input holds less than one
	// cell. It wraps imageutil.ErrShapeMismatch.
	ErrImageTooSmall = fmt.Errorf("image smaller than one cell: %w", imageutil.ErrShapeMismatch)

	// ErrInvalidConfig is returned for configuration values that cannot be
	// applied.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ErrorKind is the coarse category of a conversion failure.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindImage
	KindFile
	KindShape
	KindFont
	KindConfig
	KindUnsupported
)

func (k ErrorKind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindFile:
		return "file"
	case KindShape:
		return "shape"
	case KindFont:
		return "font"
	case KindConfig:
		return "config"
	case KindUnsupported:
		return "unsupported"
	}
	return "unknown"
}

// KindOf reports the category of err. A nil error is KindUnknown.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrInvalidFont):
		return KindFont
	case errors.Is(err, imageutil.ErrFileAccess):
		return KindFile
	case errors.Is(err, imageutil.ErrImage):
		return KindImage
	case errors.Is(err, imageutil.ErrShapeMismatch), errors.Is(err, edge.ErrInvalidClass):
		return KindShape
	case errors.Is(err, ErrInvalidConfig),
		errors.Is(err, filter.ErrInvalidParams),
		errors.Is(err, filter.ErrUnknownFilter),
		errors.Is(err, edge.ErrInvalidThreshold):
		return KindConfig
	case errors.Is(err, ErrUnsupported):
		return KindUnsupported
	}
	return KindUnknown
}
