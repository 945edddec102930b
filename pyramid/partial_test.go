package pyramid

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// TestResolveAncestor mirrors spec.md scenario S4: a single cached ancestor
// substituted for a requested tile one level finer, cropped to the
// requested tile's exact quadrant.
func TestResolveAncestor(t *testing.T) {
	ancestor := NewTileCoord(5, 10, 10)
	target := NewTileCoord(6, 21, 21) // child (1,1) of ancestor
	tile := NewTile(ancestor, "payload")

	r := resolveAncestor(tile, ancestor, target, 256, 0, 0)

	wantUV := UVRect{U: 0.5, V: 0.5, W: 0.5, H: 0.5}
	if !almostEqual(r.UVOffset.U, wantUV.U) || !almostEqual(r.UVOffset.V, wantUV.V) ||
		!almostEqual(r.UVOffset.W, wantUV.W) || !almostEqual(r.UVOffset.H, wantUV.H) {
		t.Errorf("UVOffset = %+v, want %+v", r.UVOffset, wantUV)
	}
	if !almostEqual(r.Scale, 2) {
		t.Errorf("Scale = %f, want 2", r.Scale)
	}
}

// TestResolveAncestorQuarterCrop exercises the exact literal values from
// spec.md scenario S4: target is the ancestor's (3,1) grandchild
// quadrant two levels down, landing UV at (0.75, 0.25, 0.25, 0.25).
func TestResolveAncestorQuarterCrop(t *testing.T) {
	ancestor := NewTileCoord(4, 1, 0)
	target := NewTileCoord(6, 7, 1) // 2 levels down: x=1*4+3=7, y=0*4+1=1
	tile := NewTile(ancestor, "payload")

	r := resolveAncestor(tile, ancestor, target, 256, 0, 0)

	want := UVRect{U: 0.75, V: 0.25, W: 0.25, H: 0.25}
	if !almostEqual(r.UVOffset.U, want.U) || !almostEqual(r.UVOffset.V, want.V) ||
		!almostEqual(r.UVOffset.W, want.W) || !almostEqual(r.UVOffset.H, want.H) {
		t.Errorf("UVOffset = %+v, want %+v", r.UVOffset, want)
	}
	if !almostEqual(r.Scale, 4) {
		t.Errorf("Scale = %f, want 4", r.Scale)
	}
}

// TestResolveDescendant mirrors spec.md scenario S5: four descendant tiles
// one level finer than target, each covering one quadrant at half scale
// with the full tile image (no UV crop).
func TestResolveDescendant(t *testing.T) {
	target := NewTileCoord(5, 10, 10)
	desc := NewTileCoord(6, 20, 20) // target's (0,0) child
	tile := NewTile(desc, "payload")

	r := resolveDescendant(tile, desc, target, 256, 0, 0)

	if !almostEqual(r.Scale, 0.5) {
		t.Errorf("Scale = %f, want 0.5", r.Scale)
	}
	want := fullUV
	if r.UVOffset != want {
		t.Errorf("UVOffset = %+v, want %+v (full)", r.UVOffset, want)
	}
	if !almostEqual(r.TileOffset.X, 2560) || !almostEqual(r.TileOffset.Y, 2560) {
		t.Errorf("TileOffset = %+v, want (2560, 2560)", r.TileOffset)
	}
}

func TestResolveExact(t *testing.T) {
	coord := NewTileCoord(8, 3, 4)
	tile := NewTile(coord, "payload")
	r := resolveExact(tile, 256, 100, 50)

	if r.Scale != 1 {
		t.Errorf("Scale = %f, want 1", r.Scale)
	}
	if r.UVOffset != fullUV {
		t.Errorf("UVOffset = %+v, want full", r.UVOffset)
	}
	wantX := float64(3*256) - 100
	wantY := float64(4*256) - 50
	if !almostEqual(r.TileOffset.X, wantX) || !almostEqual(r.TileOffset.Y, wantY) {
		t.Errorf("TileOffset = %+v, want (%f, %f)", r.TileOffset, wantX, wantY)
	}
}
