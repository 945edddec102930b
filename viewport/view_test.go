package viewport

import (
	"testing"

	"github.com/ottervanger/lumo/pyramid"
)

func testConfig() pyramid.Config {
	cfg := pyramid.DefaultConfig()
	cfg.MinZoom, cfg.MaxZoom = 0, 10
	return cfg
}

func TestTargetVisibleCoordsCoversCenter(t *testing.T) {
	v := NewView(0, 0, 4, 512, 512, testConfig())
	coords := v.TargetVisibleCoords()
	if len(coords) == 0 {
		t.Fatalf("expected at least one visible coord")
	}
	centerX, centerY := int(8), int(8) // zoom 4 center is tile (8,8)
	found := false
	for _, c := range coords {
		if c.Z != 4 {
			t.Errorf("coord %v at wrong zoom, want %d", c, 4)
		}
		if c.X == centerX && c.Y == centerY {
			found = true
		}
	}
	if !found {
		t.Errorf("expected the center tile (%d,%d) among visible coords %v", centerX, centerY, coords)
	}
}

func TestIsInViewRejectsWrongZoom(t *testing.T) {
	v := NewView(0, 0, 4, 512, 512, testConfig())
	if v.IsInView(pyramid.NewTileCoord(5, 16, 16), true) {
		t.Errorf("a coord at a different zoom must never be in view")
	}
}

func TestIsInViewWraparound(t *testing.T) {
	// Centered near the antimeridian at zoom 2 (span 4): the view's right
	// edge pokes past x=4, so tile (0, 1) is only reachable by wrapping.
	v := NewView(0, 179.9, 2, 512, 512, testConfig())
	coord := pyramid.NewTileCoord(2, 0, 1)

	if !v.IsInView(coord, true) {
		t.Errorf("expected %v to be in view once wrapped by +span", coord)
	}
	if v.IsInView(coord, false) {
		t.Errorf("did not expect %v in view with wraparound disabled", coord)
	}
}

func TestPanByMovesCenter(t *testing.T) {
	v := NewView(0, 0, 4, 512, 512, testConfig())
	lat0, lon0 := v.CenterLat, v.CenterLon
	v.PanBy(256, 0)
	if v.CenterLon == lon0 && v.CenterLat == lat0 {
		t.Errorf("expected PanBy to change the view center")
	}
}

func TestZoomInOutRespectsBand(t *testing.T) {
	v := NewView(0, 0, 10, 256, 256, testConfig())
	for i := 0; i < 15; i++ {
		v.ZoomOut()
	}
	if v.Zoom != 0 {
		t.Errorf("Zoom = %d, want clamped at 0", v.Zoom)
	}
	for i := 0; i < 20; i++ {
		v.ZoomIn()
	}
	if v.Zoom != 10 {
		t.Errorf("Zoom = %d, want clamped at MaxZoom 10", v.Zoom)
	}
}
