package microvoxel

// Glyph is a screen-space shading primitive emitted by the visibility
// calculator representing one visible octree node (spec.md 3). Position
// and surface normal are in world space; Material is 0 only for glyphs
// that should never be emitted (empty space is never drawable).
type Glyph struct {
	X, Y, Z float32 // world-space centre
	Size    float32 // world-space side length
	A, B, C float32 // unit surface normal
	D       uint32  // material id
}
