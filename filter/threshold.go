package filter

import (
	"fmt"
	"strings"

	"github.com/wbrown/img2ascii/imageutil"
)

// ThresholdMode selects which side of the threshold is zeroed.
type ThresholdMode int

const (
	// ToZeroInverted zeroes pixels above the threshold and keeps the rest.
	ToZeroInverted ThresholdMode = iota

	// ToZero zeroes pixels below the threshold and keeps the rest.
	ToZero
)

func (m ThresholdMode) String() string {
	if m == ToZero {
		return "to_zero"
	}
	return "to_zero_inverted"
}

// ParseThresholdMode maps a configuration name to a ThresholdMode. The
// empty string selects ToZeroInverted.
func ParseThresholdMode(name string) (ThresholdMode, error) {
	switch strings.ToLower(name) {
	case "", "to_zero_inverted", "tozeroinverted", "inverted":
		return ToZeroInverted, nil
	case "to_zero", "tozero":
		return ToZero, nil
	}
	return 0, fmt.Errorf("%w: threshold mode %q", ErrInvalidParams, name)
}

// Threshold zeroes pixels on one side of Value.
//
//	ToZeroInverted: out = 0 if in > Value, else in
//	ToZero:         out = 0 if in < Value, else in
type Threshold struct {
	Value uint8
	Mode  ThresholdMode
}

// NewThreshold returns a ToZeroInverted threshold at 10.
func NewThreshold() Threshold {
	return Threshold{Value: 10, Mode: ToZeroInverted}
}

func (t Threshold) Name() string { return "threshold" }

func (t Threshold) Apply(img *imageutil.GrayImage) (*imageutil.GrayImage, error) {
	if err := checkInput(img); err != nil {
		return nil, err
	}

	switch t.Mode {
	case ToZeroInverted:
		return mapPixels(img, func(v uint8) uint8 {
			if v > t.Value {
				return 0
			}
			return v
		}), nil
	case ToZero:
		return mapPixels(img, func(v uint8) uint8 {
			if v < t.Value {
				return 0
			}
			return v
		}), nil
	}
	return nil, fmt.Errorf("%w: threshold mode %d", ErrInvalidParams, t.Mode)
}
