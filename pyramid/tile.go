package pyramid

// Tile is an immutable (coord, payload) pair produced by a loader. Payload
// is opaque to the pyramid — it might be an *ebiten.Image, raw bytes, a
// parsed vector layer, or anything else the enclosing renderer understands.
// A Tile is never mutated after construction; replacing cached data means
// constructing and storing a new Tile.
type Tile struct {
	Coord   TileCoord
	Payload any
}

// NewTile constructs a Tile for a normalized coord and its payload.
func NewTile(coord TileCoord, payload any) Tile {
	return Tile{Coord: coord, Payload: payload}
}
