package viewport

import (
	"math"

	"github.com/ottervanger/lumo/proj"
)

// ZoomIn increases the zoom level if not already at the configured MaxZoom.
func (v *View) ZoomIn() {
	if v.Zoom < v.MaxZoom {
		v.Zoom++
	}
}

// ZoomOut decreases the zoom level if not already at the configured MinZoom.
func (v *View) ZoomOut() {
	if v.Zoom > v.MinZoom {
		v.Zoom--
	}
}

// ScreenToWorld converts screen pixel coordinates to fractional tile
// coordinates at the view's current zoom.
func (v *View) ScreenToWorld(screenX, screenY float64) (tileX, tileY float64) {
	centerTileX, centerTileY := v.centerTile()
	pixelsToTiles := 1.0 / v.TileSize
	tileX = centerTileX + (screenX-float64(v.ScreenWidth)/2)*pixelsToTiles
	tileY = centerTileY + (screenY-float64(v.ScreenHeight)/2)*pixelsToTiles
	return tileX, tileY
}

// ZoomAtPoint zooms in or out by one level while keeping the world point
// currently under (screenX, screenY) fixed on screen.
func (v *View) ZoomAtPoint(zoomIn bool, screenX, screenY float64) {
	if (zoomIn && v.Zoom >= v.MaxZoom) || (!zoomIn && v.Zoom <= v.MinZoom) {
		return
	}

	mouseWorldX, mouseWorldY := v.ScreenToWorld(screenX, screenY)

	maxTileCoord := float64(uint(1) << uint(v.Zoom))
	if mouseWorldY < 0 || mouseWorldY > maxTileCoord {
		return
	}

	oldZoom := v.Zoom
	if zoomIn {
		v.Zoom++
	} else {
		v.Zoom--
	}

	scaleFactor := math.Pow(2, float64(v.Zoom-oldZoom))
	mouseWorldXNewZoom := mouseWorldX * scaleFactor
	mouseWorldYNewZoom := mouseWorldY * scaleFactor

	pixelsToTiles := 1.0 / v.TileSize
	screenTileOffsetX := (screenX - float64(v.ScreenWidth)/2) * pixelsToTiles
	screenTileOffsetY := (screenY - float64(v.ScreenHeight)/2) * pixelsToTiles

	newCenterTileX := mouseWorldXNewZoom - screenTileOffsetX
	newCenterTileY := mouseWorldYNewZoom - screenTileOffsetY

	lat, lon := proj.TileCoordsToLatLon(newCenterTileX, newCenterTileY, v.Zoom)
	v.CenterLon = math.Max(-180.0, math.Min(180.0, lon))
	v.CenterLat = math.Max(-85.0511, math.Min(85.0511, lat))
}
