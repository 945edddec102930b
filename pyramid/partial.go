package pyramid

// TilePartial pairs a cached Tile with the coord the caller actually wanted
// (Target) and the coord used to compute the positional offset (Relative).
// For an exact match, Relative == Target == Tile.Coord. For an ancestor
// substitution, Relative == Target (the crop of the ancestor's image is
// sized and positioned to exactly fill Target's slot). For a descendant
// substitution, Relative == Tile.Coord (each descendant positions itself
// within Target's slot by its own coordinate).
type TilePartial struct {
	Tile     Tile
	Target   TileCoord
	Relative TileCoord
}

// UVRect is a normalized sub-rectangle of a tile image: (u, v) is the
// top-left corner and (w, h) the width/height, all in [0, 1].
type UVRect struct {
	U, V, W, H float64
}

// Offset is a 2D pixel offset.
type Offset struct {
	X, Y float64
}

var fullUV = UVRect{U: 0, V: 0, W: 1, H: 1}

// Renderable is what getAvailableLOD hands back to a renderer: the tile to
// draw, the UV sub-rectangle of that tile's image to sample, the scale
// factor to draw it at, and the pixel offset to draw it at.
type Renderable struct {
	Tile       Tile
	Scale      float64
	TileOffset Offset
	UVOffset   UVRect
}

// ancestorUV computes the UV sub-rectangle of ancestor A's tile image that
// corresponds to descendant D, per spec.md §4.5:
//
//	scale = 1 / 2^(D.z - A.z)
//	u = D.x * scale - A.x
//	v = D.y * scale - A.y
func ancestorUV(a, d TileCoord) UVRect {
	scale := 1.0 / float64(int(1)<<uint(d.Z-a.Z))
	return UVRect{
		U: float64(d.X)*scale - float64(a.X),
		V: float64(d.Y)*scale - float64(a.Y),
		W: scale,
		H: scale,
	}
}

// scaledOffset positions coord's tile within the current viewport in pixel
// space, as if coord's (x,y) were first rescaled by scale (bringing it into
// the same zoom-space as the slot being filled), per spec.md §4.5:
//
//	offset = (coord.x * scale * S - vx, coord.y * scale * S - vy)
func scaledOffset(coord TileCoord, scale, tileSize, vx, vy float64) Offset {
	return Offset{
		X: float64(coord.X)*scale*tileSize - vx,
		Y: float64(coord.Y)*scale*tileSize - vy,
	}
}

// resolveExact builds the Renderable for a tile that exactly matches the
// requested coord: full UV rectangle, native scale, natural offset.
func resolveExact(tile Tile, tileSize, vx, vy float64) Renderable {
	return Renderable{
		Tile:       tile,
		Scale:      1,
		TileOffset: scaledOffset(tile.Coord, 1, tileSize, vx, vy),
		UVOffset:   fullUV,
	}
}

// resolveAncestor builds the Renderable substituting ancestor's tile for
// target: the UV rectangle crops ancestor's image down to target's
// footprint, and the render scale (2^(target.z-ancestor.z)) blows that crop
// back up to fill one full tile slot at target's on-screen position.
func resolveAncestor(tile Tile, ancestor, target TileCoord, tileSize, vx, vy float64) Renderable {
	return Renderable{
		Tile:       tile,
		Scale:      float64(int(1) << uint(target.Z-ancestor.Z)),
		TileOffset: scaledOffset(target, 1, tileSize, vx, vy),
		UVOffset:   ancestorUV(ancestor, target),
	}
}

// resolveDescendant builds the Renderable for one descendant tile covering
// part of target's footprint: the descendant's whole image is drawn (full
// UV) shrunk to 1/2^(desc.z-target.z) of a full slot and positioned at its
// own coordinate rescaled into target's zoom space.
func resolveDescendant(tile Tile, desc, target TileCoord, tileSize, vx, vy float64) Renderable {
	scale := 1.0 / float64(int(1)<<uint(desc.Z-target.Z))
	return Renderable{
		Tile:       tile,
		Scale:      scale,
		TileOffset: scaledOffset(desc, scale, tileSize, vx, vy),
		UVOffset:   fullUV,
	}
}
