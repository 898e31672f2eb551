// Package edge classifies gradient orientation per pixel and reduces the
// per-pixel classes to one class per output cell.
package edge

import (
	"errors"
	"fmt"
	"math"

	"github.com/wbrown/img2ascii/imageutil"
)

// ErrInvalidThreshold reports a density threshold outside [0, 1].
var ErrInvalidThreshold = errors.New("density threshold outside [0, 1]")

// ErrInvalidClass reports a class value outside the five known classes.
var ErrInvalidClass = errors.New("invalid edge class")

// Class is the orientation bucket of a gradient.
type Class uint8

const (
	None Class = iota
	Horizontal
	Vertical
	Diagonal1
	Diagonal2

	// NumClasses is the number of distinct classes.
	NumClasses = 5
)

var classNames = [NumClasses]string{"none", "horizontal", "vertical", "diagonal1", "diagonal2"}

func (c Class) String() string {
	if c.Valid() {
		return classNames[c]
	}
	return fmt.Sprintf("Class(%d)", uint8(c))
}

// Valid reports whether c is one of the five classes.
func (c Class) Valid() bool {
	return c < NumClasses
}

// ThetaNorm maps the gradient (gx, gy) to atan2(gy, gx)/π·0.5 + 0.5, a
// value in [0, 1]. A zero gradient maps to exactly 0.5.
func ThetaNorm(gx, gy float64) float64 {
	return math.Atan2(gy, gx)/math.Pi*0.5 + 0.5
}

// Classify buckets a normalized gradient angle. The ranges are tuned to
// the line directions a monospace glyph can draw:
//
//	== 0.5                                   None
//	[0.95, 1.0]                              Vertical
//	[0.25, 0.27) ∪ [0.75, 0.77)              Horizontal
//	[0.0, 0.28) ∪ [0.55, 0.78), not above    Diagonal1
//	[0.28, 0.55) ∪ [0.78, 1.0), not above    Diagonal2
//
// Values outside [0, 1] are None.
func Classify(thetaNorm float64) Class {
	t := thetaNorm
	switch {
	case t == 0.5:
		return None
	case t >= 0.95 && t <= 1.0:
		return Vertical
	case (t >= 0.25 && t < 0.27) || (t >= 0.75 && t < 0.77):
		return Horizontal
	case (t >= 0.0 && t < 0.28) || (t >= 0.55 && t < 0.78):
		return Diagonal1
	case (t >= 0.28 && t < 0.55) || (t >= 0.78 && t < 1.0):
		return Diagonal2
	}
	return None
}

// ClassMap is a row-major grid of edge classes, either one per source
// pixel or one per output cell.
type ClassMap struct {
	Width  int
	Height int
	Pix    []Class
}

// NewClassMap returns a map of the given size filled with None.
func NewClassMap(width, height int) *ClassMap {
	return &ClassMap{
		Width:  width,
		Height: height,
		Pix:    make([]Class, width*height),
	}
}

// ClassMapFromRows builds a ClassMap from equally sized rows.
func ClassMapFromRows(rows [][]Class) (*ClassMap, error) {
	height := len(rows)
	width := 0
	if height > 0 {
		width = len(rows[0])
	}
	m := NewClassMap(width, height)
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d",
				imageutil.ErrShapeMismatch, y, len(row), width)
		}
		for x, c := range row {
			if !c.Valid() {
				return nil, fmt.Errorf("%w: %d at (%d,%d)", ErrInvalidClass, c, x, y)
			}
		}
		copy(m.Pix[y*width:], row)
	}
	return m, nil
}

// At returns the class at (x, y).
func (m *ClassMap) At(x, y int) Class {
	return m.Pix[y*m.Width+x]
}

// Set sets the class at (x, y).
func (m *ClassMap) Set(x, y int, c Class) {
	m.Pix[y*m.Width+x] = c
}

// Row returns row y, aliasing the map.
func (m *ClassMap) Row(y int) []Class {
	return m.Pix[y*m.Width : (y+1)*m.Width]
}

// Rows copies the map into a slice of rows.
func (m *ClassMap) Rows() [][]Class {
	rows := make([][]Class, m.Height)
	for y := range rows {
		rows[y] = append([]Class(nil), m.Row(y)...)
	}
	return rows
}

// Count returns how many entries hold class c.
func (m *ClassMap) Count(c Class) int {
	n := 0
	for _, v := range m.Pix {
		if v == c {
			n++
		}
	}
	return n
}
