// Package pyramid implements the tile pyramid: the caching, scheduling,
// and level-of-detail substitution subsystem at the heart of a tiled-data
// viewer. See SPEC_FULL.md and spec.md for the full behavioral contract.
package pyramid

import (
	"context"
	"sync"
)

// Loader fetches the payload for coord, invoking callback exactly once —
// either synchronously, before Loader itself returns, or later from any
// goroutine. ctx is canceled if the request is superseded by a Clear()
// before the loader responds; a cooperative loader may select on it, but
// the pyramid never depends on that happening.
type Loader func(ctx context.Context, coord TileCoord, callback func(payload any, err error))

// Viewport is the adapter the enclosing plot provides so the pyramid can
// classify a fresh response as add vs discard, and so the enclosing layer
// can ask the pyramid what coords are currently wanted. PixelOffset reports
// the current viewport's pixel offset (vx, vy), used by GetAvailableLOD to
// compute each Renderable's on-screen TileOffset — coordinate projection
// itself stays entirely out of scope (spec.md §1); this is just the one
// number pair the positioning formulas in spec.md §4.5 need.
type Viewport interface {
	IsInView(coord TileCoord, wraparound bool) bool
	TargetVisibleCoords() []TileCoord
	PixelOffset() (x, y float64)
}

// Pyramid is the public tile pyramid. All exported methods are safe to
// call from any goroutine; the loader may resolve its callback from a
// different goroutine than the one that dispatched it.
type Pyramid struct {
	mu sync.Mutex

	cfg      Config
	store    *store
	pending  *pendingRegistry
	stale    *staleRegistry
	events   events
	loader   Loader
	viewport Viewport

	ctx    context.Context
	cancel context.CancelFunc

	freshCompletions int // completions since the pending registry last drained
}

// New constructs a Pyramid. loader must not be nil (spec.md §7,
// "Construction with no layer: fatal, raised immediately"); viewport may be
// nil, in which case every fresh response is treated as in view.
func New(cfg Config, loader Loader, viewport Viewport) (*Pyramid, error) {
	if loader == nil {
		return nil, ErrNoLoader
	}
	cfg = cfg.withDefaults()
	ctx, cancel := context.WithCancel(context.Background())
	return &Pyramid{
		cfg:      cfg,
		store:    newStore(cfg.CacheSize, cfg.PersistentLevels),
		pending:  newPendingRegistry(),
		stale:    newStaleRegistry(),
		loader:   loader,
		viewport: viewport,
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// Close cancels the pyramid's root context, best-effort-signaling any
// cooperative loader still in flight. It does not otherwise mutate state;
// callers that want a clean cache afterward should also call Clear.
func (p *Pyramid) Close() {
	p.cancel()
}

// OnRequest, OnAdd, OnFailure, OnDiscard, OnRemove, and OnLoad register
// callbacks for the named event (spec.md §4.6). Callbacks fire synchronously
// on the goroutine that triggered them, after the pyramid's state has
// already been updated to reflect the change.
func (p *Pyramid) OnRequest(fn func(TileCoord))      { p.events.OnRequest(fn) }
func (p *Pyramid) OnAdd(fn func(Tile))               { p.events.OnAdd(fn) }
func (p *Pyramid) OnFailure(fn func(FailurePayload)) { p.events.OnFailure(fn) }
func (p *Pyramid) OnDiscard(fn func(TileCoord))      { p.events.OnDiscard(fn) }
func (p *Pyramid) OnRemove(fn func(Tile))            { p.events.OnRemove(fn) }
func (p *Pyramid) OnLoad(fn func())                  { p.events.OnLoad(fn) }

// dispatchItem is one coord cleared to dispatch to the loader, along with
// the per-request context that Clear() can cancel.
type dispatchItem struct {
	coord TileCoord
	ctx   context.Context
}

// RequestTiles asks the pyramid to ensure every coord in coords is either
// already cached or on its way from the loader. Coords outside the
// configured zoom band are dropped; duplicates within the batch (including
// duplicates that only differ by horizontal wrap) collapse to one loader
// call; coords already cached or already in flight are skipped entirely
// (spec.md §4.3).
func (p *Pyramid) RequestTiles(coords []TileCoord) {
	items := p.prepareDispatch(coords)
	for _, it := range items {
		p.events.emitRequest(it.coord)
		coord := it.coord
		p.loader(it.ctx, coord, func(payload any, err error) {
			p.handleResponse(coord, payload, err)
		})
	}
}

func (p *Pyramid) prepareDispatch(coords []TileCoord) []dispatchItem {
	p.mu.Lock()
	defer p.mu.Unlock()

	seen := make(map[uint64]bool, len(coords))
	items := make([]dispatchItem, 0, len(coords))

	for _, raw := range coords {
		if !InZoomBand(raw.Z, p.cfg.MinZoom, p.cfg.MaxZoom) {
			continue
		}
		norm := raw.Normalize()
		key := norm.Hash()
		if seen[key] {
			continue
		}
		seen[key] = true

		if p.store.has(norm) || p.pending.has(norm) {
			continue
		}

		reqCtx, cancel := context.WithCancel(p.ctx)
		p.pending.add(norm, cancel)
		items = append(items, dispatchItem{coord: norm, ctx: reqCtx})
	}
	return items
}

// handleResponse processes one loader callback. It first checks the stale
// registry (the callback's request was canceled by a Clear before this
// callback fired) before falling back to the fresh path.
func (p *Pyramid) handleResponse(coord TileCoord, payload any, err error) {
	p.mu.Lock()

	if p.stale.isStale(coord) {
		p.stale.decr(coord)
		p.mu.Unlock()
		p.events.emitDiscard(coord)
		return
	}

	if !p.pending.remove(coord) {
		// No pending record and no stale count: a response for a coord we
		// never asked for, or already handled. Nothing to do.
		p.mu.Unlock()
		return
	}

	var (
		failed      = err != nil
		discarded   bool
		added       bool
		addedTile   Tile
		evictedTile Tile
		didEvict    bool
	)

	if !failed {
		tile := NewTile(coord, payload)
		inView := true
		if p.viewport != nil {
			inView = p.viewport.IsInView(coord, p.cfg.Wraparound)
		}
		if !inView {
			discarded = true
		} else {
			evictedTile, didEvict = p.store.set(coord, tile)
			added = true
			addedTile = tile
		}
	}

	p.freshCompletions++
	emitLoad := false
	if p.pending.len() == 0 && p.freshCompletions > 0 {
		emitLoad = true
		p.freshCompletions = 0
	}

	p.mu.Unlock()

	switch {
	case failed:
		p.events.emitFailure(coord, err)
	case discarded:
		p.events.emitDiscard(coord)
	case added:
		if didEvict {
			p.events.emitRemove(evictedTile)
		}
		p.events.emitAdd(addedTile)
	}
	if emitLoad {
		p.events.emitLoad()
	}
}

// Clear cancels every in-flight request (transferring it to the stale
// registry so its eventual callback is discarded rather than applied) and
// empties the tile store, emitting `remove` for every tile that was
// present. After Clear returns, Has and IsPending are false for every
// coord, even ones whose loader callback has not fired yet (spec.md §4.4).
func (p *Pyramid) Clear() {
	p.mu.Lock()

	drained := p.pending.drain()
	for _, c := range drained {
		p.stale.incr(c)
	}

	var removed []Tile
	p.store.clear(func(t Tile) { removed = append(removed, t) })
	p.freshCompletions = 0

	p.mu.Unlock()

	for _, t := range removed {
		p.events.emitRemove(t)
	}
}

// Get returns the cached tile for coord, normalizing coord first.
func (p *Pyramid) Get(coord TileCoord) (Tile, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.store.get(coord.Normalize())
}

// Has reports whether coord (normalized) is currently cached.
func (p *Pyramid) Has(coord TileCoord) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.store.has(coord.Normalize())
}

// IsPending reports whether coord (normalized) has an outstanding fresh
// request.
func (p *Pyramid) IsPending(coord TileCoord) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pending.has(coord.Normalize())
}

// GetCapacity returns cacheSize + the persistent region's capacity:
// cacheSize + (4^(persistentLevels+1) - 1) / 3.
func (p *Pyramid) GetCapacity() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return capacity(p.cfg.CacheSize, p.cfg.PersistentLevels)
}

// Stats reports current occupancy, a superset of GetCapacity useful for
// diagnostics (SPEC_FULL.md §11).
type Stats struct {
	Count           int
	Capacity        int
	PersistentCount int
	VolatileCount   int
}

// Stats returns current store occupancy.
func (p *Pyramid) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	persistentCount, volatileCount := p.store.count()
	return Stats{
		Count:           persistentCount + volatileCount,
		Capacity:        capacity(p.cfg.CacheSize, p.cfg.PersistentLevels),
		PersistentCount: persistentCount,
		VolatileCount:   volatileCount,
	}
}
