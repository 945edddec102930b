package pyramid

import "fmt"

// TileCoord identifies a single tile by zoom level and column/row within the
// 2^z by 2^z grid at that zoom. It follows the standard slippy-map
// convention: (0,0) is the top-left tile of the world at a given zoom.
type TileCoord struct {
	Z, X, Y int
}

// NewTileCoord constructs a TileCoord without normalizing it. Callers that
// need a normalized coord should call Normalize.
func NewTileCoord(z, x, y int) TileCoord {
	return TileCoord{Z: z, X: x, Y: y}
}

// Hash returns a key unique for normalized coords (0 <= X, Y < 2^Z) with
// Z <= 30 (far beyond any practical zoom level), suitable for use as a map
// key.
func (c TileCoord) Hash() uint64 {
	// Keys are assigned level by level: the (4^Z - 1) / 3 tiles of all
	// coarser zooms come first, then this zoom's tiles in row-major order.
	// At Z = 30 the largest key is still below 2^61.
	n := uint64(1) << uint(c.Z)
	return (n*n-1)/3 + uint64(c.Y)*n + uint64(c.X)
}

// String renders the coord as "z/x/y", matching the path shape tile URLs
// and the teacher's getQuadKey-adjacent logging use.
func (c TileCoord) String() string {
	return fmt.Sprintf("%d/%d/%d", c.Z, c.X, c.Y)
}

// span returns 2^z, the number of tiles along one axis at this coord's zoom.
func (c TileCoord) span() int {
	return 1 << uint(c.Z)
}

// Normalize reduces X modulo 2^z using Euclidean remainder, so that, e.g.,
// x = -1 maps to 2^z - 1. Y is left untouched: the spec only wraps
// horizontally.
func (c TileCoord) Normalize() TileCoord {
	n := c.span()
	x := c.X % n
	if x < 0 {
		x += n
	}
	return TileCoord{Z: c.Z, X: x, Y: c.Y}
}

// Equals reports whether two coords address the same tile, without
// normalizing either side first.
func (c TileCoord) Equals(other TileCoord) bool {
	return c == other
}

// IsAncestorOf reports whether c is a strict ancestor of child: c.Z <
// child.Z, and child's (x,y) at c's zoom, after integer division by
// 2^(child.Z - c.Z), equals c's (x,y).
func (c TileCoord) IsAncestorOf(child TileCoord) bool {
	if c.Z >= child.Z {
		return false
	}
	shift := uint(child.Z - c.Z)
	return (child.X>>shift) == c.X && (child.Y>>shift) == c.Y
}

// IsDescendantOf reports whether c is a strict descendant of ancestor. It is
// the mirror of IsAncestorOf: IsAncestorOf(a, d) iff IsDescendantOf(d, a).
func (c TileCoord) IsDescendantOf(ancestor TileCoord) bool {
	return ancestor.IsAncestorOf(c)
}

// GetAncestor returns the coord offset levels up the pyramid from c. An
// offset of 1 returns c's immediate parent. Offset must be <= c.Z.
func (c TileCoord) GetAncestor(offset int) TileCoord {
	if offset <= 0 {
		return c
	}
	shift := uint(offset)
	return TileCoord{Z: c.Z - offset, X: c.X >> shift, Y: c.Y >> shift}
}

// GetDescendants returns the 4^offset coords offset levels below c, in
// deterministic row-major (x then y) order. This ordering is observable by
// the LOD substitution algorithm (getDescendants) and by tests; callers
// must not assume any other order is equivalent.
func (c TileCoord) GetDescendants(offset int) []TileCoord {
	if offset <= 0 {
		return []TileCoord{c}
	}
	side := 1 << uint(offset)
	baseX := c.X << uint(offset)
	baseY := c.Y << uint(offset)
	z := c.Z + offset

	out := make([]TileCoord, 0, side*side)
	for dy := 0; dy < side; dy++ {
		for dx := 0; dx < side; dx++ {
			out = append(out, TileCoord{Z: z, X: baseX + dx, Y: baseY + dy})
		}
	}
	return out
}

// directChildren returns c's four immediate children in row-major order:
// (2x,2y), (2x+1,2y), (2x,2y+1), (2x+1,2y+1). This is the building block
// the LOD descendant search (getDescendantsLocked, coverQuadrant) uses to
// descend one level at a time.
func (c TileCoord) directChildren() [4]TileCoord {
	z := c.Z + 1
	x2, y2 := c.X*2, c.Y*2
	return [4]TileCoord{
		{Z: z, X: x2, Y: y2},
		{Z: z, X: x2 + 1, Y: y2},
		{Z: z, X: x2, Y: y2 + 1},
		{Z: z, X: x2 + 1, Y: y2 + 1},
	}
}

// InZoomBand reports whether z falls within [minZ, maxZ] inclusive. z < 0
// is always rejected regardless of band, per spec.md §7 ("invalid coord ...
// treated as filtered out during request").
func InZoomBand(z, minZ, maxZ int) bool {
	return z >= 0 && z >= minZ && z <= maxZ
}
