package img2ascii

import (
	"fmt"

	"github.com/wbrown/img2ascii/edge"
	"github.com/wbrown/img2ascii/imageutil"
)

// Compose merges a tile grid and a per-cell edge class map. A cell takes
// its edge glyph unless its class is edge.None, in which case it keeps
// the tile glyph. The inputs are not modified.
func Compose(tiles CharGrid, edges *edge.ClassMap, cs CharacterSet) (CharGrid, error) {
	if !tiles.rectangular() || edges.Height != tiles.Rows() || edges.Width != tiles.Cols() {
		return nil, fmt.Errorf("%w: %dx%d tile grid, %dx%d edge map",
			imageutil.ErrShapeMismatch, tiles.Cols(), tiles.Rows(), edges.Width, edges.Height)
	}

	out := NewCharGrid(tiles.Rows(), tiles.Cols())
	for y, row := range tiles {
		for x, r := range row {
			c := edges.At(x, y)
			if !c.Valid() {
				return nil, fmt.Errorf("%w: %d at (%d,%d)", edge.ErrInvalidClass, c, x, y)
			}
			if c == edge.None {
				out[y][x] = r
			} else {
				out[y][x] = cs.EdgeGlyph(c)
			}
		}
	}
	return out, nil
}
