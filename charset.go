// Package img2ascii converts raster images to a grid of text characters
// and renders that grid back to a raster image with a TrueType font.
//
// The pipeline has two branches. The tile branch resizes the image to one
// pixel per cell and quantizes luminance to a tile glyph. The edge branch
// classifies gradient direction at full resolution and reduces it to one
// edge class per cell. Compose merges the two, edges winning.
package img2ascii

import (
	"fmt"

	"github.com/wbrown/img2ascii/edge"
)

// DefaultTilePalette orders glyphs from emptiest to densest.
var DefaultTilePalette = []rune{' ', '.', ',', '*', ':', 'c', 'o', 'P', 'O', '?', '%', '&', '@'}

// DefaultEdgePalette is indexed by edge.Class.
var DefaultEdgePalette = [edge.NumClasses]rune{' ', '_', '|', '/', '\\'}

// CharacterSet holds the tile and edge glyph palettes. Tile is ordered by
// increasing visual density. Edge is indexed by edge.Class, so Edge[0] is
// the blank glyph used for edge.None.
type CharacterSet struct {
	Tile []rune
	Edge [edge.NumClasses]rune
}

// DefaultCharacterSet returns the default tile and edge palettes.
func DefaultCharacterSet() CharacterSet {
	return CharacterSet{
		Tile: append([]rune(nil), DefaultTilePalette...),
		Edge: DefaultEdgePalette,
	}
}

// NewCharacterSet returns a CharacterSet with the given tile palette and
// the default edge palette.
func NewCharacterSet(tile []rune) (CharacterSet, error) {
	cs := CharacterSet{
		Tile: append([]rune(nil), tile...),
		Edge: DefaultEdgePalette,
	}
	if err := cs.Validate(); err != nil {
		return CharacterSet{}, err
	}
	return cs, nil
}

// Validate checks that the tile palette is not empty.
func (cs CharacterSet) Validate() error {
	if len(cs.Tile) == 0 {
		return fmt.Errorf("%w: empty tile palette", ErrInvalidConfig)
	}
	return nil
}

// TileSize returns the number of tile glyphs.
func (cs CharacterSet) TileSize() int { return len(cs.Tile) }

// EdgeSize returns the number of edge glyphs.
func (cs CharacterSet) EdgeSize() int { return len(cs.Edge) }

// TileIndex returns the position of r in the tile palette.
func (cs CharacterSet) TileIndex(r rune) (int, bool) {
	for i, t := range cs.Tile {
		if t == r {
			return i, true
		}
	}
	return 0, false
}

// EdgeIndex returns the position of r in the edge palette.
func (cs CharacterSet) EdgeIndex(r rune) (int, bool) {
	for i, e := range cs.Edge {
		if e == r {
			return i, true
		}
	}
	return 0, false
}

// EdgeGlyph returns the glyph for class c.
func (cs CharacterSet) EdgeGlyph(c edge.Class) rune {
	return cs.Edge[c]
}
