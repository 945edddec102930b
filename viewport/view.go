// Package viewport adapts a lat/lon-centered screen viewport to the
// pyramid.Viewport interface, generalizing the teacher's TileMap (which
// hard-coded a single fixed tile size and max zoom) into a reusable,
// independently zoom/tile-size-configurable component.
package viewport

import (
	"math"

	"github.com/ottervanger/lumo/proj"
	"github.com/ottervanger/lumo/pyramid"
)

// View tracks the camera: where it's centered, how zoomed in it is, and
// how big the screen is. It implements pyramid.Viewport so a Pyramid can
// ask it what's currently visible.
type View struct {
	CenterLat, CenterLon float64
	Zoom                 int
	ScreenWidth          int
	ScreenHeight         int

	TileSize float64 // pixels per tile side, matches pyramid.Config.TileSize
	MinZoom  int
	MaxZoom  int
}

// NewView constructs a View centered at lat/lon at the given zoom, sized
// to match cfg's tile size and zoom band.
func NewView(lat, lon float64, zoom, screenWidth, screenHeight int, cfg pyramid.Config) *View {
	return &View{
		CenterLat:    lat,
		CenterLon:    lon,
		Zoom:         zoom,
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
		TileSize:     cfg.TileSize,
		MinZoom:      cfg.MinZoom,
		MaxZoom:      cfg.MaxZoom,
	}
}

// centerTile returns the view's center in fractional tile coordinates at
// the current zoom.
func (v *View) centerTile() (x, y float64) {
	return proj.LatLonToTileCoords(v.CenterLat, v.CenterLon, v.Zoom)
}

// bounds returns the fractional tile-space rectangle the screen currently
// covers at the current zoom.
func (v *View) bounds() (minX, minY, maxX, maxY float64) {
	cx, cy := v.centerTile()
	halfW := float64(v.ScreenWidth) / 2 / v.TileSize
	halfH := float64(v.ScreenHeight) / 2 / v.TileSize
	return cx - halfW, cy - halfH, cx + halfW, cy + halfH
}

// TargetVisibleCoords returns every whole tile coord touching the current
// screen bounds at the current zoom, the set a caller should pass to
// Pyramid.RequestTiles each frame.
func (v *View) TargetVisibleCoords() []pyramid.TileCoord {
	minX, minY, maxX, maxY := v.bounds()
	span := 1 << uint(v.Zoom)

	x0, x1 := int(math.Floor(minX)), int(math.Floor(maxX))
	y0, y1 := int(math.Floor(minY)), int(math.Floor(maxY))
	if y0 < 0 {
		y0 = 0
	}
	if y1 > span-1 {
		y1 = span - 1
	}

	out := make([]pyramid.TileCoord, 0, (x1-x0+1)*(y1-y0+1))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			out = append(out, pyramid.NewTileCoord(v.Zoom, x, y))
		}
	}
	return out
}

// IsInView reports whether coord's footprint overlaps the current screen
// bounds. A coord at any zoom other than the view's current zoom is never
// in view. wraparound allows a horizontally-wrapped copy of coord to count
// as in view.
func (v *View) IsInView(coord pyramid.TileCoord, wraparound bool) bool {
	if coord.Z != v.Zoom {
		return false
	}
	minX, minY, maxX, maxY := v.bounds()
	if float64(coord.Y+1) <= minY || float64(coord.Y) >= maxY {
		return false
	}

	span := 1 << uint(v.Zoom)
	if overlapsX(float64(coord.X), minX, maxX) {
		return true
	}
	if wraparound {
		if overlapsX(float64(coord.X+span), minX, maxX) || overlapsX(float64(coord.X-span), minX, maxX) {
			return true
		}
	}
	return false
}

func overlapsX(x, minX, maxX float64) bool {
	return x+1 > minX && x < maxX
}

// PixelOffset returns the world pixel position, at the view's own zoom, of
// the screen's top-left corner — the (vx, vy) the pyramid's LOD positioning
// math subtracts from each tile's native offset (spec.md §4.5), so tile
// (0,0) lands on screen at (-vx, -vy).
func (v *View) PixelOffset() (x, y float64) {
	cx, cy := v.centerTile()
	return cx*v.TileSize - float64(v.ScreenWidth)/2, cy*v.TileSize - float64(v.ScreenHeight)/2
}
