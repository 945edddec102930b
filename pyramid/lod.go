package pyramid

// GetClosestAncestor walks up from coord toward zoom 0, returning the
// nearest cached ancestor and true, or the zero TileCoord and false if
// nothing up to and including zoom 0 is cached (spec.md §4.5 step 2).
func (p *Pyramid) GetClosestAncestor(coord TileCoord) (TileCoord, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.getClosestAncestorLocked(coord)
}

func (p *Pyramid) getClosestAncestorLocked(coord TileCoord) (TileCoord, bool) {
	for z := coord.Z - 1; z >= 0; z-- {
		offset := coord.Z - z
		ancestor := coord.GetAncestor(offset)
		if p.store.has(ancestor) {
			return ancestor, true
		}
	}
	return TileCoord{}, false
}

// GetDescendants returns the cached Tiles for every descendant of coord
// that together with its siblings fully covers coord's footprint,
// searching no deeper than Config.MaxDescendantDepth levels down (spec.md
// §4.5 step 3, §6, §9 Open Question (b)). A covering set is only returned
// once EVERY quadrant at some depth is cached; partial coverage at one
// depth does not stop the search from trying deeper quadrants for the
// uncovered ones — each of coord's four quadrants is searched
// independently, and the result is the union of what each quadrant bottoms
// out on.
func (p *Pyramid) GetDescendants(coord TileCoord) ([]Tile, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	coords, ok := p.getDescendantsLocked(coord)
	if !ok {
		return nil, false
	}
	tiles := make([]Tile, 0, len(coords))
	for _, c := range coords {
		if tile, ok := p.store.get(c); ok {
			tiles = append(tiles, tile)
		}
	}
	return tiles, true
}

func (p *Pyramid) getDescendantsLocked(coord TileCoord) ([]TileCoord, bool) {
	maxDepth := p.cfg.MaxDescendantDepth
	if maxDepth <= 0 {
		maxDepth = 3
	}

	var out []TileCoord
	complete := true
	for _, child := range coord.directChildren() {
		found := p.coverQuadrant(child, 1, maxDepth)
		if found == nil {
			complete = false
			continue
		}
		out = append(out, found...)
	}
	if !complete || len(out) == 0 {
		return nil, false
	}
	return out, true
}

// coverQuadrant returns the cached tiles that cover quadrant's footprint:
// quadrant itself if cached, or else the union of its four children's
// covers, or nil if depth has been exhausted without full coverage.
func (p *Pyramid) coverQuadrant(quadrant TileCoord, depth, maxDepth int) []TileCoord {
	if p.store.has(quadrant) {
		return []TileCoord{quadrant}
	}
	if depth >= maxDepth {
		return nil
	}

	var out []TileCoord
	for _, child := range quadrant.directChildren() {
		found := p.coverQuadrant(child, depth+1, maxDepth)
		if found == nil {
			return nil
		}
		out = append(out, found...)
	}
	return out
}

// GetAvailableLOD resolves coord to whatever's drawable right now, in the
// priority order spec.md §4.5 and §6 specify: an exact cache hit; else the
// closest cached ancestor, cropped to coord's footprint; else a covering
// set of cached descendants; else nil (nothing to draw, caller should have
// already called RequestTiles for coord).
func (p *Pyramid) GetAvailableLOD(coord TileCoord) []Renderable {
	coord = coord.Normalize()

	p.mu.Lock()
	vx, vy := 0.0, 0.0
	if p.viewport != nil {
		p.mu.Unlock()
		vx, vy = p.viewport.PixelOffset()
		p.mu.Lock()
	}
	tileSize := p.cfg.TileSize

	if tile, ok := p.store.get(coord); ok {
		p.mu.Unlock()
		return []Renderable{resolveExact(tile, tileSize, vx, vy)}
	}

	if ancestor, ok := p.getClosestAncestorLocked(coord); ok {
		tile, _ := p.store.get(ancestor)
		p.mu.Unlock()
		return []Renderable{resolveAncestor(tile, ancestor, coord, tileSize, vx, vy)}
	}

	if descendants, ok := p.getDescendantsLocked(coord); ok {
		renderables := make([]Renderable, 0, len(descendants))
		for _, d := range descendants {
			tile, _ := p.store.get(d)
			renderables = append(renderables, resolveDescendant(tile, d, coord, tileSize, vx, vy))
		}
		p.mu.Unlock()
		return renderables
	}

	p.mu.Unlock()
	return nil
}
