package microvoxel

// TileSize is the side length, in pixels, of one occlusion-mask tile.
const TileSize = 8

// Tile is an 8x8 bit grid packed into a 64-bit word: bit(x,y) =
// 1<<(y*TileSize+x) (spec.md 3, invariant 3). 0 means unwritten, 1 means
// covered.
type Tile uint64

func bitIndex(x, y int) uint { return uint(y*TileSize + x) }

// TestPixel reports whether the bit at (x,y) is set. x and y must satisfy
// 0 <= x,y < TileSize.
func (t Tile) TestPixel(x, y int) bool {
	return t&(1<<bitIndex(x, y)) != 0
}

// SetPixel sets the bit at (x,y). x and y must satisfy 0 <= x,y < TileSize.
func (t *Tile) SetPixel(x, y int) {
	*t |= 1 << bitIndex(x, y)
}

// QuadVertices holds the 4 CCW screen-space vertices of one cube face.
type QuadVertices [4]IVec2

// PolygonVertices holds the 8 screen-space vertices of a projected cube,
// ordered per spec.md invariant 5: v[c] = centre + halfSize *
// ((c&1?+1:-1),(c&2?+1:-1),(c&4?+1:-1)).
type PolygonVertices [8]IVec2

// cubeFaceIndices gives, for each of the 6 cube faces in the fixed order
// {minX,maxX,minY,maxY,minZ,maxZ}, the 4 polygon-vertex indices that form
// its CCW quad in a right-handed coordinate system (spec.md invariant 6).
var cubeFaceIndices = [6][4]int{
	{4, 6, 2, 0}, // minX
	{1, 3, 7, 5}, // maxX
	{4, 0, 1, 5}, // minY
	{6, 7, 3, 2}, // maxY
	{0, 2, 3, 1}, // minZ
	{4, 5, 7, 6}, // maxZ
}

// FrontFaces records, for each of the 6 faces in cubeFaceIndices order,
// whether that face is front-facing from the camera (spec.md 4.2 step 6,
// GLOSSARY "Front face").
type FrontFaces [6]bool

// faceQuad extracts the CCW quad for one face from a polygon's 8 vertices.
func faceQuad(vertices PolygonVertices, face int) QuadVertices {
	idx := cubeFaceIndices[face]
	return QuadVertices{vertices[idx[0]], vertices[idx[1]], vertices[idx[2]], vertices[idx[3]]}
}

// bounds is an inclusive screen-space integer bounding box.
type bounds struct {
	Lower, Upper IVec2
}

func computeBoundsQuad(vertices QuadVertices) bounds {
	b := bounds{Lower: vertices[0], Upper: vertices[0]}
	for _, v := range vertices[1:] {
		if v.X < b.Lower.X {
			b.Lower.X = v.X
		}
		if v.Y < b.Lower.Y {
			b.Lower.Y = v.Y
		}
		if v.X > b.Upper.X {
			b.Upper.X = v.X
		}
		if v.Y > b.Upper.Y {
			b.Upper.Y = v.Y
		}
	}
	return b
}

func computeBoundsPolygon(vertices PolygonVertices) bounds {
	b := bounds{Lower: vertices[0], Upper: vertices[0]}
	for _, v := range vertices[1:] {
		if v.X < b.Lower.X {
			b.Lower.X = v.X
		}
		if v.Y < b.Lower.Y {
			b.Lower.Y = v.Y
		}
		if v.X > b.Upper.X {
			b.Upper.X = v.X
		}
		if v.Y > b.Upper.Y {
			b.Upper.Y = v.Y
		}
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// det computes 2*the signed area of the triangle (v0,v1,p): positive when
// p is left of the directed edge v0->v1. Screen-vertex coordinates must
// stay within +/-16383 (spec.md 7, "Arithmetic overflow") so this product
// cannot overflow a 64-bit int.
func det(v0, v1, p IVec2) int {
	return (v1.X-v0.X)*(p.Y-v0.Y) - (v1.Y-v0.Y)*(p.X-v0.X)
}

// setupQuad computes the edge-function row/column deltas A and B and the
// barycentric-style values w at lowerCorner, for the 4 edges of a CCW
// quad. The element order is shifted by one position relative to the
// "naive" w0,w1,w2 naming in rasterization literature so that array
// indices line up directly (spec.md 4.1, "Algorithm for draw_node").
func setupQuad(vertices QuadVertices, lowerCorner IVec2) (w, A, B [4]int) {
	A[0], B[0] = vertices[1].Y-vertices[2].Y, vertices[2].X-vertices[1].X
	A[1], B[1] = vertices[2].Y-vertices[3].Y, vertices[3].X-vertices[2].X
	A[2], B[2] = vertices[3].Y-vertices[0].Y, vertices[0].X-vertices[3].X
	A[3], B[3] = vertices[0].Y-vertices[1].Y, vertices[1].X-vertices[0].X

	w[0] = det(vertices[1], vertices[2], lowerCorner)
	w[1] = det(vertices[2], vertices[3], lowerCorner)
	w[2] = det(vertices[3], vertices[0], lowerCorner)
	w[3] = det(vertices[0], vertices[1], lowerCorner)
	return
}

// rasterizeTile rasterizes one quad, already set up via setupQuad relative
// to a tile's lower-left corner, into a single Tile. boundsTileSpace
// bounds the quad in tile-local coordinates and is clipped to
// [0,TileSize-1] on both axes.
func rasterizeTile(wTile, A, B [4]int, boundsTileSpace bounds) Tile {
	minX := maxInt(0, boundsTileSpace.Lower.X)
	minY := maxInt(0, boundsTileSpace.Lower.Y)
	maxX := minInt(TileSize-1, boundsTileSpace.Upper.X)
	maxY := minInt(TileSize-1, boundsTileSpace.Upper.Y)

	if minX > maxX || minY > maxY {
		return 0
	}

	wRow := wTile
	for i := range wRow {
		wRow[i] += B[i] * minY
	}

	var out Tile
	for y := minY; y <= maxY; y++ {
		w := wRow
		for i := range w {
			w[i] += A[i] * minX
		}
		for x := minX; x <= maxX; x++ {
			if (w[0] | w[1] | w[2] | w[3]) >= 0 {
				out.SetPixel(x, y)
			}
			for i := range w {
				w[i] += A[i]
			}
		}
		for i := range wRow {
			wRow[i] += B[i]
		}
	}
	return out
}

// signedLeftShift shifts value left by amount when amount is
// non-negative, and right by -amount otherwise. |amount| must be <
// 64 (spec.md 9.4); the cached-tile blit path only ever calls this with
// an offset bounded by 2*TileSize, well inside that limit.
func signedLeftShift(value Tile, amount int) Tile {
	if amount >= 0 {
		return value << uint(amount)
	}
	return value >> uint(-amount)
}

// floorDiv divides a by b, rounding toward negative infinity. Needed
// because bbox lower corners can be negative (off-screen nodes partially
// overlapping the mask).
func floorDiv(a, b int) int {
	if a < 0 {
		return (a - (b - 1)) / b
	}
	return a / b
}
