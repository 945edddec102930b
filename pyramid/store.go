package pyramid

import "container/list"

// store is the bounded tile cache: every coord with Z <= persistentLevels
// lives in the persistent region and is never evicted; everything else
// lives in a fixed-size LRU (the volatile region), evicting
// least-recently-used on overflow. This split is the generalization of the
// teacher's single-region TileImageCache (container/list LRU over a nested
// zoom/x/y map): low-zoom tiles are pinned so getClosestAncestor always has
// some coarse fallback after heavy churn (spec.md §9).
type store struct {
	persistentLevels int

	persistent map[uint64]Tile

	volatileCap int
	volatile    map[uint64]*list.Element
	lru         *list.List // list.Element.Value is *storeEntry, front = most recently used
}

type storeEntry struct {
	key  uint64
	tile Tile
}

func newStore(cacheSize, persistentLevels int) *store {
	return &store{
		persistentLevels: persistentLevels,
		persistent:       make(map[uint64]Tile),
		volatileCap:      cacheSize,
		volatile:         make(map[uint64]*list.Element),
		lru:              list.New(),
	}
}

func (s *store) isPersistentZoom(z int) bool {
	return z <= s.persistentLevels
}

// get returns the tile for coord (which must already be normalized) and
// whether it was present. A volatile hit promotes the entry to
// most-recently-used; a persistent hit does not (persistent entries are
// never evicted, so recency tracking would be wasted work).
func (s *store) get(coord TileCoord) (Tile, bool) {
	key := coord.Hash()
	if s.isPersistentZoom(coord.Z) {
		t, ok := s.persistent[key]
		return t, ok
	}
	elem, ok := s.volatile[key]
	if !ok {
		return Tile{}, false
	}
	s.lru.MoveToFront(elem)
	return elem.Value.(*storeEntry).tile, true
}

func (s *store) has(coord TileCoord) bool {
	_, ok := s.get(coord)
	return ok
}

// set inserts or replaces tile at coord. Replacing an already-present coord
// (the clear-then-reload race, spec.md §4.2) simply overwrites the payload;
// it is never an error. Returns the tile evicted to make room, if any, so
// the caller can emit a `remove` event for it.
func (s *store) set(coord TileCoord, tile Tile) (evicted Tile, didEvict bool) {
	key := coord.Hash()
	if s.isPersistentZoom(coord.Z) {
		s.persistent[key] = tile
		return Tile{}, false
	}

	if elem, ok := s.volatile[key]; ok {
		elem.Value.(*storeEntry).tile = tile
		s.lru.MoveToFront(elem)
		return Tile{}, false
	}

	elem := s.lru.PushFront(&storeEntry{key: key, tile: tile})
	s.volatile[key] = elem

	if s.lru.Len() > s.volatileCap {
		back := s.lru.Back()
		entry := back.Value.(*storeEntry)
		s.lru.Remove(back)
		delete(s.volatile, entry.key)
		return entry.tile, true
	}
	return Tile{}, false
}

// delete removes coord from the store. A missing coord is a no-op.
func (s *store) delete(coord TileCoord) {
	key := coord.Hash()
	if s.isPersistentZoom(coord.Z) {
		delete(s.persistent, key)
		return
	}
	if elem, ok := s.volatile[key]; ok {
		s.lru.Remove(elem)
		delete(s.volatile, key)
	}
}

// clear empties both regions and invokes onRemove for every tile that was
// present, in no particular order.
func (s *store) clear(onRemove func(Tile)) {
	for _, t := range s.persistent {
		onRemove(t)
	}
	s.persistent = make(map[uint64]Tile)

	for e := s.lru.Front(); e != nil; e = e.Next() {
		onRemove(e.Value.(*storeEntry).tile)
	}
	s.volatile = make(map[uint64]*list.Element)
	s.lru.Init()
}

// capacity returns cacheSize + the number of coords the persistent region
// can hold: sum_{z=0..P} 4^z = (4^(P+1) - 1) / 3.
func capacity(cacheSize, persistentLevels int) int {
	return cacheSize + persistentCapacity(persistentLevels)
}

func persistentCapacity(persistentLevels int) int {
	// (4^(P+1) - 1) / 3, computed iteratively to avoid overflow concerns at
	// the small P values this is ever called with.
	total := 0
	levelSize := 1
	for z := 0; z <= persistentLevels; z++ {
		total += levelSize
		levelSize *= 4
	}
	return total
}

// count returns the number of tiles currently held, persistent + volatile.
func (s *store) count() (persistentCount, volatileCount int) {
	return len(s.persistent), s.lru.Len()
}
