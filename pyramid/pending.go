package pyramid

import "context"

// pendingRecord tracks one in-flight loader call: the normalized target
// coord it was dispatched for, and the cancel func for the context handed
// to the loader (best-effort cancellation on clear — spec.md §5:
// "If the loader supports true cancellation it may be notified"). Presence
// in the pending registry means "a loader call is outstanding and its
// result is still wanted" (spec.md §3).
type pendingRecord struct {
	target TileCoord
	cancel context.CancelFunc
}

// pendingRegistry is the generalization of the teacher's
// TileImageCache.requests nested map / IsRequested / MarkRequested /
// UnmarkRequested trio, keyed by coord hash instead of a zoom/x/y map tree
// so it composes cleanly with the stale registry below.
type pendingRegistry struct {
	records map[uint64]pendingRecord
}

func newPendingRegistry() *pendingRegistry {
	return &pendingRegistry{records: make(map[uint64]pendingRecord)}
}

func (p *pendingRegistry) has(coord TileCoord) bool {
	_, ok := p.records[coord.Hash()]
	return ok
}

func (p *pendingRegistry) add(coord TileCoord, cancel context.CancelFunc) {
	p.records[coord.Hash()] = pendingRecord{target: coord, cancel: cancel}
}

// remove deletes the pending record for coord, reporting whether one was
// present (the fresh-path/stale-path branch point — see pyramid.go).
func (p *pendingRegistry) remove(coord TileCoord) bool {
	key := coord.Hash()
	if _, ok := p.records[key]; !ok {
		return false
	}
	delete(p.records, key)
	return true
}

func (p *pendingRegistry) len() int {
	return len(p.records)
}

// drain cancels and removes every pending record, returning the coords that
// were pending so clear() can transfer them into the stale registry.
func (p *pendingRegistry) drain() []TileCoord {
	out := make([]TileCoord, 0, len(p.records))
	for _, rec := range p.records {
		if rec.cancel != nil {
			rec.cancel()
		}
		out = append(out, rec.target)
	}
	p.records = make(map[uint64]pendingRecord)
	return out
}
