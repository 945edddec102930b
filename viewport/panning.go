package viewport

import (
	"math"

	"github.com/ottervanger/lumo/proj"
)

// PanDirection is a discrete pan direction, driven by e.g. arrow-key input.
type PanDirection int

const (
	PanLeft PanDirection = iota
	PanRight
	PanUp
	PanDown
)

// PanSpeed is the default pan distance in pixels per discrete Pan call.
const PanSpeed = 50

// Pan moves the view center one PanSpeed step in the given direction.
func (v *View) Pan(dir PanDirection) {
	switch dir {
	case PanLeft:
		v.PanBy(PanSpeed, 0)
	case PanRight:
		v.PanBy(-PanSpeed, 0)
	case PanUp:
		v.PanBy(0, PanSpeed)
	case PanDown:
		v.PanBy(0, -PanSpeed)
	}
}

// PanBy moves the view by pixel offsets dx,dy, the way a drag does: positive
// dx moves the center west (the map content moves east, following the
// cursor); positive dy moves the center north. The new center is clamped to the tile grid's valid Y range
// (no wrapping vertically) but, unlike the teacher's original, does not
// clamp X — a wraparound-aware caller is free to pan across the antimeridian.
func (v *View) PanBy(dx, dy float64) {
	pixelsToTiles := 1.0 / v.TileSize
	tileDX := dx * pixelsToTiles
	tileDY := dy * pixelsToTiles

	centerTileX, centerTileY := v.centerTile()
	newCenterTileX := centerTileX - tileDX
	newCenterTileY := centerTileY - tileDY

	maxTileCoord := float64(uint(1) << uint(v.Zoom))
	newCenterTileY = math.Max(0, math.Min(maxTileCoord, newCenterTileY))

	lat, lon := proj.TileCoordsToLatLon(newCenterTileX, newCenterTileY, v.Zoom)
	v.CenterLat = lat
	v.CenterLon = lon
}
