// Command lumo-demo is a minimal ebiten viewer exercising the pyramid,
// viewport, and loader packages end to end: it pans and zooms a Web
// Mercator basemap, dispatching tile requests to an HTTPLoader and
// resolving every on-screen tile through Pyramid.GetAvailableLOD (falling
// back to an ancestor crop or a descendant mosaic while the exact tile is
// still loading), in the same Update/Draw/Layout shape as the teacher's
// Goliath game loop.
package main

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"os"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/ottervanger/lumo/loader"
	"github.com/ottervanger/lumo/pyramid"
	"github.com/ottervanger/lumo/viewport"
)

const (
	defaultScreenWidth  = 1024
	defaultScreenHeight = 768
)

// Demo is the ebiten.Game implementation wiring the pyramid to the screen.
type Demo struct {
	view    *viewport.View
	pyramid *pyramid.Pyramid

	screenWidth, screenHeight int
	needRequest               bool

	isDragging   bool
	dragStartX   int
	dragStartY   int
	dragStartLat float64
	dragStartLon float64

	debug bool

	// imagesMu guards images, the GPU-uploaded counterpart of every
	// image.Image the loader has decoded. The pyramid stores plain
	// image.Image payloads (loader-format-agnostic); this cache is purely a
	// render-side convenience so Draw doesn't re-upload a tile every frame.
	imagesMu sync.Mutex
	images   map[pyramid.TileCoord]*ebiten.Image
}

// NewDemo wires a Pyramid backed by an HTTPLoader against OpenStreetMap's
// tile server, and a View centered over the continental US, matching the
// teacher's Initialize defaults.
func NewDemo() *Demo {
	cfg := pyramid.DefaultConfig()
	cfg.MinZoom, cfg.MaxZoom = 0, 19

	d := &Demo{
		screenWidth:  defaultScreenWidth,
		screenHeight: defaultScreenHeight,
		needRequest:  true,
		images:       make(map[pyramid.TileCoord]*ebiten.Image),
	}
	d.view = viewport.NewView(39.8283, -98.5795, 5, d.screenWidth, d.screenHeight, cfg)

	tileLoader := loader.NewHTTPLoader(
		"https://tile.openstreetmap.org/{z}/{x}/{y}.png",
		"lumo-demo/1.0",
	)

	p, err := pyramid.New(cfg, tileLoader.Load, d.view)
	if err != nil {
		log.Fatalf("pyramid.New: %v", err)
	}
	d.pyramid = p

	p.OnAdd(func(tile pyramid.Tile) { d.cacheImage(tile) })
	p.OnRemove(func(tile pyramid.Tile) { d.evictImage(tile.Coord) })
	p.OnLoad(func() { d.needRequest = true })

	return d
}

func (d *Demo) cacheImage(tile pyramid.Tile) {
	img, ok := tile.Payload.(image.Image)
	if !ok {
		return
	}
	ebitenImg := ebiten.NewImageFromImage(img)
	d.imagesMu.Lock()
	d.images[tile.Coord] = ebitenImg
	d.imagesMu.Unlock()
}

func (d *Demo) evictImage(coord pyramid.TileCoord) {
	d.imagesMu.Lock()
	delete(d.images, coord)
	d.imagesMu.Unlock()
}

func (d *Demo) imageFor(coord pyramid.TileCoord) (*ebiten.Image, bool) {
	d.imagesMu.Lock()
	defer d.imagesMu.Unlock()
	img, ok := d.images[coord]
	return img, ok
}

func (d *Demo) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		d.debug = !d.debug
	}

	mouseX, mouseY := ebiten.CursorPosition()
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if !d.isDragging {
			d.isDragging = true
			d.dragStartX, d.dragStartY = mouseX, mouseY
			d.dragStartLat, d.dragStartLon = d.view.CenterLat, d.view.CenterLon
		} else {
			dx := float64(mouseX - d.dragStartX)
			dy := float64(mouseY - d.dragStartY)
			d.view.CenterLat, d.view.CenterLon = d.dragStartLat, d.dragStartLon
			d.view.PanBy(dx, dy)
			d.needRequest = true
		}
	} else {
		d.isDragging = false
	}

	if _, scrollY := ebiten.Wheel(); scrollY != 0 {
		d.view.ZoomAtPoint(scrollY > 0, float64(mouseX), float64(mouseY))
		d.needRequest = true
	}

	if d.needRequest {
		d.pyramid.RequestTiles(d.view.TargetVisibleCoords())
		d.needRequest = false
	}

	return nil
}

func (d *Demo) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 30, G: 30, B: 35, A: 255})

	for _, coord := range d.view.TargetVisibleCoords() {
		for _, r := range d.pyramid.GetAvailableLOD(coord) {
			d.drawRenderable(screen, r)
		}
	}

	if d.debug {
		stats := d.pyramid.Stats()
		ebitenutil.DebugPrint(screen, fmt.Sprintf(
			"zoom=%d center=(%.4f,%.4f)\ncached=%d/%d (persistent=%d volatile=%d)",
			d.view.Zoom, d.view.CenterLat, d.view.CenterLon,
			stats.Count, stats.Capacity, stats.PersistentCount, stats.VolatileCount,
		))
	}
}

// drawRenderable draws one Renderable: the UV rectangle selects the
// sub-image to sample (a crop, for an ancestor substitution), GeoM scales
// it up or down to its target footprint, and translates it to its pixel
// offset on screen.
func (d *Demo) drawRenderable(screen *ebiten.Image, r pyramid.Renderable) {
	img, ok := d.imageFor(r.Tile.Coord)
	if !ok {
		return
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	cropX0 := bounds.Min.X + int(r.UVOffset.U*float64(w))
	cropY0 := bounds.Min.Y + int(r.UVOffset.V*float64(h))
	cropX1 := bounds.Min.X + int((r.UVOffset.U+r.UVOffset.W)*float64(w))
	cropY1 := bounds.Min.Y + int((r.UVOffset.V+r.UVOffset.H)*float64(h))
	if cropX1 <= cropX0 || cropY1 <= cropY0 {
		return
	}
	sub := img.SubImage(image.Rect(cropX0, cropY0, cropX1, cropY1)).(*ebiten.Image)

	// r.Scale is exactly the magnification the crop needs to reach its
	// destination footprint: an ancestor crop is 1/Scale the tile's native
	// size and gets blown back up by Scale to fill one slot; a descendant
	// is drawn at its native size shrunk by Scale to cover its fraction of
	// the slot; an exact match crops nothing and Scale is 1.
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(r.Scale, r.Scale)
	op.GeoM.Translate(r.TileOffset.X, r.TileOffset.Y)
	screen.DrawImage(sub, op)
}

func (d *Demo) Layout(outsideWidth, outsideHeight int) (int, int) {
	if d.screenWidth != outsideWidth || d.screenHeight != outsideHeight {
		d.screenWidth, d.screenHeight = outsideWidth, outsideHeight
		d.view.ScreenWidth, d.view.ScreenHeight = outsideWidth, outsideHeight
		d.needRequest = true
	}
	return outsideWidth, outsideHeight
}

func main() {
	wd, err := os.Getwd()
	if err != nil {
		log.Fatalf("getwd: %v", err)
	}
	log.Printf("running from %s", wd)

	d := NewDemo()

	ebiten.SetWindowSize(d.screenWidth, d.screenHeight)
	ebiten.SetWindowTitle("lumo")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(d); err != nil {
		log.Fatal(err)
	}
}
