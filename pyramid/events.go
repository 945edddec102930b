package pyramid

// Event names, as used by the teacher's logging call sites and mirrored
// here as the wire-visible identity of each notification (spec.md §6).
const (
	EventRequest = "tile:request"
	EventAdd     = "tile:add"
	EventFailure = "tile:failure"
	EventDiscard = "tile:discard"
	EventRemove  = "tile:remove"
	EventLoad    = "load"
)

// FailurePayload is the payload handed to an OnFailure callback.
type FailurePayload struct {
	Coord TileCoord
	Err   error
}

// events holds the registered callbacks for each named notification. All
// dispatch is synchronous and happens inline with the state change that
// triggers it (spec.md §5: "observers see the post-change pyramid state"),
// so handlers must not block or re-enter the pyramid's exported methods
// expecting new goroutine semantics — they run on the pyramid's own call
// stack, same as the teacher's direct log.Printf calls in fetchAndCacheTile.
type events struct {
	onRequest []func(TileCoord)
	onAdd     []func(Tile)
	onFailure []func(FailurePayload)
	onDiscard []func(TileCoord)
	onRemove  []func(Tile)
	onLoad    []func()
}

func (e *events) OnRequest(fn func(TileCoord))      { e.onRequest = append(e.onRequest, fn) }
func (e *events) OnAdd(fn func(Tile))               { e.onAdd = append(e.onAdd, fn) }
func (e *events) OnFailure(fn func(FailurePayload)) { e.onFailure = append(e.onFailure, fn) }
func (e *events) OnDiscard(fn func(TileCoord))      { e.onDiscard = append(e.onDiscard, fn) }
func (e *events) OnRemove(fn func(Tile))            { e.onRemove = append(e.onRemove, fn) }
func (e *events) OnLoad(fn func())                  { e.onLoad = append(e.onLoad, fn) }

func (e *events) emitRequest(c TileCoord) {
	for _, fn := range e.onRequest {
		fn(c)
	}
}

func (e *events) emitAdd(t Tile) {
	for _, fn := range e.onAdd {
		fn(t)
	}
}

func (e *events) emitFailure(c TileCoord, err error) {
	payload := FailurePayload{Coord: c, Err: err}
	for _, fn := range e.onFailure {
		fn(payload)
	}
}

func (e *events) emitDiscard(c TileCoord) {
	for _, fn := range e.onDiscard {
		fn(c)
	}
}

func (e *events) emitRemove(t Tile) {
	for _, fn := range e.onRemove {
		fn(t)
	}
}

func (e *events) emitLoad() {
	for _, fn := range e.onLoad {
		fn()
	}
}
