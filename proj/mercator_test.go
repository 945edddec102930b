package proj

import (
	"math"
	"testing"
)

func TestLatLonToTileCoords(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		zoom     int
		wantX    float64
		wantY    float64
	}{
		{
			name:  "Center of map at zoom 1",
			lat:   0,
			lon:   0,
			zoom:  1,
			wantX: 1.0,
			wantY: 1.0,
		},
		{
			name:  "Top-left corner at zoom 1",
			lat:   maxLat,
			lon:   -180,
			zoom:  1,
			wantX: 0.0,
			wantY: 0.0,
		},
		{
			name:  "Bottom-right corner at zoom 1",
			lat:   minLat,
			lon:   180,
			zoom:  1,
			wantX: 2.0,
			wantY: 2.0,
		},
		{
			name:  "Middle of tile (1,1) at zoom 1",
			lat:   0,
			lon:   90,
			zoom:  1,
			wantX: 1.5,
			wantY: 1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotX, gotY := LatLonToTileCoords(tt.lat, tt.lon, tt.zoom)
			if math.Abs(gotX-tt.wantX) > 1e-6 || math.Abs(gotY-tt.wantY) > 1e-6 {
				t.Errorf("got (%f, %f); want (%f, %f)",
					gotX, gotY, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestTileCoordsToLatLon(t *testing.T) {
	tests := []struct {
		name    string
		x, y    float64
		zoom    int
		wantLat float64
		wantLon float64
	}{
		{name: "Center of map at zoom 1", x: 1.0, y: 1.0, zoom: 1, wantLat: 0, wantLon: 0},
		{name: "Top-left corner at zoom 1", x: 0.0, y: 0.0, zoom: 1, wantLat: maxLat, wantLon: -180},
		{name: "Middle of tile (1,1) at zoom 1", x: 1.5, y: 1.0, zoom: 1, wantLat: 0, wantLon: 90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotLat, gotLon := TileCoordsToLatLon(tt.x, tt.y, tt.zoom)
			if math.Abs(gotLat-tt.wantLat) > 1e-3 || math.Abs(gotLon-tt.wantLon) > 1e-6 {
				t.Errorf("got (%f, %f); want (%f, %f)", gotLat, gotLon, tt.wantLat, tt.wantLon)
			}
		})
	}
}

func TestLatLonTileCoordsRoundTrip(t *testing.T) {
	lat, lon, zoom := 45.5231, -122.6765, 11
	x, y := LatLonToTileCoords(lat, lon, zoom)
	gotLat, gotLon := TileCoordsToLatLon(x, y, zoom)
	if math.Abs(gotLat-lat) > 1e-6 || math.Abs(gotLon-lon) > 1e-6 {
		t.Errorf("round trip got (%f, %f); want (%f, %f)", gotLat, gotLon, lat, lon)
	}
}
