package img2ascii

import (
	"errors"
	"testing"

	"github.com/wbrown/img2ascii/edge"
)

func TestDefaultCharacterSet(t *testing.T) {
	cs := DefaultCharacterSet()
	if cs.TileSize() != 13 {
		t.Errorf("Expected 13 tile glyphs, got %d", cs.TileSize())
	}
	if cs.EdgeSize() != 5 {
		t.Errorf("Expected 5 edge glyphs, got %d", cs.EdgeSize())
	}
	if cs.Tile[0] != ' ' || cs.Tile[12] != '@' {
		t.Errorf("Expected palette from ' ' to '@', got %q", string(cs.Tile))
	}
	if cs.EdgeGlyph(edge.None) != ' ' {
		t.Errorf("Expected blank glyph for None, got %q", cs.EdgeGlyph(edge.None))
	}
	if cs.EdgeGlyph(edge.Horizontal) != '_' || cs.EdgeGlyph(edge.Vertical) != '|' {
		t.Errorf("Unexpected edge glyphs %q", string(cs.Edge[:]))
	}

	// Mutating one set must not leak into the next.
	cs.Tile[0] = 'x'
	if DefaultCharacterSet().Tile[0] != ' ' {
		t.Error("DefaultCharacterSet should return an independent palette")
	}
}

func TestNewCharacterSet(t *testing.T) {
	cs, err := NewCharacterSet([]rune("ab"))
	if err != nil {
		t.Fatalf("NewCharacterSet failed: %v", err)
	}
	if i, ok := cs.TileIndex('b'); !ok || i != 1 {
		t.Errorf("Expected 'b' at index 1, got %d, %v", i, ok)
	}
	if _, ok := cs.TileIndex('z'); ok {
		t.Error("Expected 'z' to be missing")
	}
	if i, ok := cs.EdgeIndex('/'); !ok || i != int(edge.Diagonal1) {
		t.Errorf("Expected '/' at index %d, got %d, %v", edge.Diagonal1, i, ok)
	}

	_, err = NewCharacterSet(nil)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for empty palette, got %v", err)
	}
}
