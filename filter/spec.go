package filter

import (
	"fmt"
	"strings"
)

// Spec is the declarative form of a filter, as read from a config file:
//
//	[[edge_filters]]
//	kind = "dog"
//	sigma1 = 1.0
//	sigma2 = 3.5
//
// Zero-valued float and window fields take the filter's default. Radius
// and Value are pointers because zero is a meaningful setting for them.
type Spec struct {
	Kind         string  `toml:"kind"`
	Sigma        float64 `toml:"sigma"`
	Amount       float64 `toml:"amount"`
	Sigma1       float64 `toml:"sigma1"`
	Sigma2       float64 `toml:"sigma2"`
	Radius       *int    `toml:"radius"`
	WindowSize   int     `toml:"window_size"`
	SigmaColor   float64 `toml:"sigma_color"`
	SigmaSpatial float64 `toml:"sigma_spatial"`
	Value        *int    `toml:"value"`
	Mode         string  `toml:"mode"`
}

// FromSpec builds the filter described by s.
func FromSpec(s Spec) (Filter, error) {
	switch strings.ToLower(s.Kind) {
	case "sharpen":
		f := NewSharpen()
		f.Sigma = orDefault(s.Sigma, f.Sigma)
		f.Amount = orDefault(s.Amount, f.Amount)
		return f, nil

	case "sharpen3x3":
		return Sharpen3x3{}, nil

	case "dog":
		f := NewDoG()
		f.Sigma1 = orDefault(s.Sigma1, f.Sigma1)
		f.Sigma2 = orDefault(s.Sigma2, f.Sigma2)
		if f.Sigma1 >= f.Sigma2 {
			return nil, fmt.Errorf("%w: dog sigma1 %g must be below sigma2 %g",
				ErrInvalidParams, f.Sigma1, f.Sigma2)
		}
		return f, nil

	case "median":
		f := NewMedianBlur()
		if s.Radius != nil {
			if *s.Radius < 0 {
				return nil, fmt.Errorf("%w: median radius %d", ErrInvalidParams, *s.Radius)
			}
			f.Radius = *s.Radius
		}
		return f, nil

	case "bilateral":
		f := NewBilateral()
		if s.WindowSize != 0 {
			f.WindowSize = s.WindowSize
		}
		f.SigmaColor = orDefault(s.SigmaColor, f.SigmaColor)
		f.SigmaSpatial = orDefault(s.SigmaSpatial, f.SigmaSpatial)
		return f, nil

	case "threshold":
		f := NewThreshold()
		if s.Value != nil {
			if *s.Value < 0 || *s.Value > 255 {
				return nil, fmt.Errorf("%w: threshold value %d outside [0,255]",
					ErrInvalidParams, *s.Value)
			}
			f.Value = uint8(*s.Value)
		}
		mode, err := ParseThresholdMode(s.Mode)
		if err != nil {
			return nil, err
		}
		f.Mode = mode
		return f, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFilter, s.Kind)
}

// ChainFromSpecs builds a Chain from specs in order.
func ChainFromSpecs(specs []Spec) (Chain, error) {
	chain := make(Chain, 0, len(specs))
	for i, s := range specs {
		f, err := FromSpec(s)
		if err != nil {
			return nil, fmt.Errorf("filter %d: %w", i, err)
		}
		chain = append(chain, f)
	}
	return chain, nil
}

// DefaultEdgeChain returns the preprocessing applied before edge
// detection: sharpen, difference of Gaussians, bilateral smoothing, a
// 5x5 median and an inverted threshold at 10.
func DefaultEdgeChain() Chain {
	return Chain{
		NewSharpen(),
		NewDoG(),
		NewBilateral(),
		NewMedianBlur(),
		NewThreshold(),
	}
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}
