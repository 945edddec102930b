package pyramid

// Config controls a Pyramid's cache shape and zoom policy. Like the
// teacher's hard-coded TileSize/MaxZoomLevel constants, everything here
// defaults to a sane value — no flag or config-file layer is warranted for
// a handful of struct fields (see SPEC_FULL.md §8).
type Config struct {
	// CacheSize is the capacity of the volatile LRU region (coords with
	// Z > PersistentLevels). Default 256.
	CacheSize int

	// PersistentLevels is the highest zoom level (inclusive) pinned in the
	// persistent region, never evicted. Default 4.
	PersistentLevels int

	// MinZoom and MaxZoom bound the zoom band requestTiles will dispatch
	// for; coords outside the band are filtered out during request
	// (spec.md §4.3 step 1, §7).
	MinZoom, MaxZoom int

	// MaxDescendantDepth bounds how far getDescendants searches below a
	// requested coord before giving up. Default: requested depth + 3, the
	// practical cap spec.md §9 Open Question (b) suggests and this module
	// locks in (SPEC_FULL.md §12).
	MaxDescendantDepth int

	// TileSize is the pixel size of one tile's image, used to compute
	// on-screen draw offsets in GetAvailableLOD. Default 256, matching the
	// teacher's tilemap.TileSize constant.
	TileSize float64

	// Wraparound reports whether the enclosing viewport repeats
	// horizontally; it is forwarded verbatim to Viewport.IsInView.
	// Default true (the usual slippy-map behavior).
	Wraparound bool
}

// DefaultConfig returns the configuration spec.md §6 names as defaults.
func DefaultConfig() Config {
	return Config{
		CacheSize:          256,
		PersistentLevels:   4,
		MinZoom:            0,
		MaxZoom:            30,
		MaxDescendantDepth: 3,
		TileSize:           256,
		Wraparound:         true,
	}
}

func (c Config) withDefaults() Config {
	if c.CacheSize <= 0 {
		c.CacheSize = 256
	}
	if c.PersistentLevels < 0 {
		c.PersistentLevels = 4
	}
	if c.MaxZoom <= 0 {
		c.MaxZoom = 30
	}
	if c.MaxDescendantDepth <= 0 {
		c.MaxDescendantDepth = 3
	}
	if c.TileSize <= 0 {
		c.TileSize = 256
	}
	return c
}
