package microvoxel

import (
	"log/slog"

	lru "github.com/hashicorp/golang-lru"
)

// smallTileCacheHashSeed is the seed used when hashing a small node's
// translated vertices for the tile cache (spec.md 4.1, "implementation-
// defined constant 42").
const smallTileCacheHashSeed = 42

// maskHashSeed is the seed used by Hash() (spec.md 4.1 "hash()").
const maskHashSeed = 42

// defaultTileCacheSize bounds the small-node tile cache. The reference
// implementation's std::unordered_map grows without bound within a frame;
// an LRU cap keeps memory bounded across arbitrarily large scenes while
// still satisfying the memoization contract, since a miss always falls
// back to re-rasterizing (see DESIGN.md).
const defaultTileCacheSize = 4096

// MaskOption configures an OcclusionMask during creation.
type MaskOption func(*maskOptions)

type maskOptions struct {
	tileCacheSize int
}

func defaultMaskOptions() maskOptions {
	return maskOptions{tileCacheSize: defaultTileCacheSize}
}

// WithTileCacheSize overrides the small-node tile cache's capacity.
func WithTileCacheSize(n int) MaskOption {
	return func(o *maskOptions) { o.tileCacheSize = n }
}

// OcclusionMask is a conservative, hierarchical 1-bit-per-pixel occlusion
// buffer over a grid of TileSize x TileSize tiles (spec.md 4.1).
type OcclusionMask struct {
	widthPx, heightPx int
	widthTiles        int
	heightTiles       int
	tiles             []Tile
	cache             *lru.Cache
	borderTile        Tile
}

// NewOcclusionMask creates a mask of the given pixel dimensions, both of
// which must be positive multiples of TileSize.
func NewOcclusionMask(width, height int, opts ...MaskOption) (*OcclusionMask, error) {
	if width <= 0 || height <= 0 || width%TileSize != 0 || height%TileSize != 0 {
		return nil, maskDimensionsError(width, height)
	}

	o := defaultMaskOptions()
	for _, opt := range opts {
		opt(&o)
	}

	cache, err := lru.New(o.tileCacheSize)
	if err != nil {
		return nil, err
	}

	m := &OcclusionMask{
		widthPx:     width,
		heightPx:    height,
		widthTiles:  width / TileSize,
		heightTiles: height / TileSize,
		tiles:       make([]Tile, (width/TileSize)*(height/TileSize)),
		cache:       cache,
	}
	Logger().Debug("occlusion mask created", slog.Int("width", width), slog.Int("height", height))
	return m, nil
}

// Width returns the mask's width in pixels.
func (m *OcclusionMask) Width() int { return m.widthPx }

// Height returns the mask's height in pixels.
func (m *OcclusionMask) Height() int { return m.heightPx }

// Clear zeroes all tiles and empties the small-node tile cache (spec.md 3,
// invariant 4).
func (m *OcclusionMask) Clear() {
	for i := range m.tiles {
		m.tiles[i] = 0
	}
	m.borderTile = 0
	m.cache.Purge()
}

// SetOpaque sets every pixel in the mask (debug aid, spec.md 4.1).
func (m *OcclusionMask) SetOpaque() {
	for i := range m.tiles {
		m.tiles[i] = ^Tile(0)
	}
}

// Hash returns the 32-bit Murmur3 hash of the tile buffer (spec.md 4.1
// "hash()", used by tests to assert bit-exact reproducibility).
func (m *OcclusionMask) Hash() uint32 {
	buf := make([]byte, len(m.tiles)*8)
	for i, t := range m.tiles {
		putUint64LE(buf[i*8:], uint64(t))
	}
	return murmurHash3_32(buf, maskHashSeed)
}

func putUint64LE(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
}

// getTile returns a pointer to the tile at tile coordinates (tx,ty), or
// the border tile if out of range; writes to the border tile are
// discarded every Clear (spec.md 3, "Occlusion Mask": "border tile ...
// out-of-range tile coordinates so writes to it are discarded").
func (m *OcclusionMask) getTile(tx, ty int) *Tile {
	if tx >= 0 && tx < m.widthTiles && ty >= 0 && ty < m.heightTiles {
		return &m.tiles[ty*m.widthTiles+tx]
	}
	return &m.borderTile
}

func (m *OcclusionMask) testPixel(x, y int) bool {
	tx, ty := floorDiv(x, TileSize), floorDiv(y, TileSize)
	tile := m.getTile(tx, ty)
	return tile.TestPixel(x-tx*TileSize, y-ty*TileSize)
}

// TestPixel reports whether pixel (x,y) is covered. Out-of-range
// coordinates report the border tile's state (always false after Clear).
// Exported for debug visualization (cmd/microvoxeldemo); the visibility
// calculator itself only ever writes through DrawNode.
func (m *OcclusionMask) TestPixel(x, y int) bool { return m.testPixel(x, y) }

// DrawNode projects-then-rasterizes the front-facing faces of a cube
// given its 8 screen-space integer vertices, and reports whether any
// pixel inside those faces was previously unset (spec.md 4.1,
// "Operations: draw_node"). When writeEnabled, pixels inside those faces
// are set.
func (m *OcclusionMask) DrawNode(vertices PolygonVertices, front FrontFaces, writeEnabled bool) bool {
	if !writeEnabled {
		for _, v := range vertices {
			if v.X >= 0 && v.X < m.widthPx && v.Y >= 0 && v.Y < m.heightPx {
				if !m.testPixel(v.X, v.Y) {
					return true
				}
			}
		}
	}

	b := computeBoundsPolygon(vertices)
	widthMinusOne := b.Upper.X - b.Lower.X
	heightMinusOne := b.Upper.Y - b.Lower.Y

	if widthMinusOne < TileSize && heightMinusOne < TileSize {
		return m.drawNodeCached(vertices, front, b, writeEnabled)
	}
	return m.drawNodeTiled(vertices, front, writeEnabled)
}

func (m *OcclusionMask) drawNodeTiled(vertices PolygonVertices, front FrontFaces, writeEnabled bool) bool {
	drew := false
	for face := 0; face < 6; face++ {
		if !front[face] {
			continue
		}
		if m.drawQuadTiled(faceQuad(vertices, face), writeEnabled) {
			drew = true
			if !writeEnabled {
				return true
			}
		}
	}
	return drew
}

func (m *OcclusionMask) drawQuadTiled(vertices QuadVertices, writeEnabled bool) bool {
	b := computeBoundsQuad(vertices)
	clippedLower := IVec2{X: maxInt(b.Lower.X, 0), Y: maxInt(b.Lower.Y, 0)}
	clippedUpper := IVec2{X: minInt(b.Upper.X, m.widthPx-1), Y: minInt(b.Upper.Y, m.heightPx-1)}
	if clippedLower.X > clippedUpper.X || clippedLower.Y > clippedUpper.Y {
		return false
	}

	tileXBegin := clippedLower.X / TileSize
	tileXEnd := clippedUpper.X / TileSize
	tileYBegin := clippedLower.Y / TileSize
	tileYEnd := clippedUpper.Y / TileSize

	c := IVec2{X: tileXBegin * TileSize, Y: tileYBegin * TileSize}
	wTileRow, A, B := setupQuad(vertices, c)

	drew := false
	for tileY := tileYBegin; tileY <= tileYEnd; tileY++ {
		wTile := wTileRow
		for tileX := tileXBegin; tileX <= tileXEnd; tileX++ {
			tile := m.getTile(tileX, tileY)
			holes := ^*tile
			if holes != 0 {
				tilePos := IVec2{X: tileX * TileSize, Y: tileY * TileSize}
				boundsTileSpace := bounds{
					Lower: clippedLower.Sub(tilePos),
					Upper: clippedUpper.Sub(tilePos),
				}
				rasterised := rasterizeTile(wTile, A, B, boundsTileSpace)
				if holes&rasterised != 0 {
					drew = true
					if !writeEnabled {
						return true
					}
				}
				if writeEnabled {
					*tile |= rasterised
				}
			}
			for i := range wTile {
				wTile[i] += A[i] * TileSize
			}
		}
		for i := range wTileRow {
			wTileRow[i] += B[i] * TileSize
		}
	}
	return drew
}

func (m *OcclusionMask) drawNodeCached(vertices PolygonVertices, front FrontFaces, nodeBounds bounds, writeEnabled bool) bool {
	var translated PolygonVertices
	for i, v := range vertices {
		translated[i] = v.Sub(nodeBounds.Lower)
	}

	key := murmurHash3_32(encodePolygonVertices(translated), smallTileCacheHashSeed)

	var tile Tile
	if cached, ok := m.cache.Get(key); ok {
		tile = cached.(Tile)
	} else {
		for face := 0; face < 6; face++ {
			if !front[face] {
				continue
			}
			tile |= drawQuadSmall(faceQuad(translated, face))
		}
		m.cache.Add(key, tile)
	}

	return m.blitTile(tile, nodeBounds.Lower, writeEnabled)
}

func drawQuadSmall(vertices QuadVertices) Tile {
	b := computeBoundsQuad(vertices)
	w, A, B := setupQuad(vertices, IVec2{})
	return rasterizeTile(w, A, B, b)
}

func encodePolygonVertices(vertices PolygonVertices) []byte {
	buf := make([]byte, 0, len(vertices)*8)
	for _, v := range vertices {
		buf = append(buf,
			byte(v.X), byte(v.X>>8), byte(v.X>>16), byte(v.X>>24),
			byte(v.Y), byte(v.Y>>8), byte(v.Y>>16), byte(v.Y>>24),
		)
	}
	return buf
}

// blitTile positions a cached tile at a screen-space lower-left corner
// and ORs it into up to four mask tiles, via a signed bit-shift (spec.md
// 4.1, "Blitting"). It reports whether any previously-unset pixel was
// covered.
func (m *OcclusionMask) blitTile(tile Tile, position IVec2, writeEnabled bool) bool {
	lowerLeftTileX := floorDiv(position.X, TileSize)
	lowerLeftTileY := floorDiv(position.Y, TileSize)
	offsetX := position.X - lowerLeftTileX*TileSize
	offsetY := position.Y - lowerLeftTileY*TileSize

	var horzMask [2]Tile
	horzMask[1] = Tile(0x0101010101010101)
	horzMask[1] *= Tile(1)<<uint(offsetX) - 1
	horzMask[0] = ^horzMask[1]

	maxTileX, maxTileY := 0, 0
	if offsetX != 0 {
		maxTileX = 1
	}
	if offsetY != 0 {
		maxTileY = 1
	}

	var drawn Tile
	for ty := 0; ty <= maxTileY; ty++ {
		for tx := 0; tx <= maxTileX; tx++ {
			shift := (offsetY-TileSize*ty)*TileSize + (offsetX - TileSize*tx)

			tileCopy := signedLeftShift(tile, shift)
			tileCopy &= horzMask[tx]

			dst := m.getTile(lowerLeftTileX+tx, lowerLeftTileY+ty)
			drawn |= (^*dst) & tileCopy
			if writeEnabled {
				*dst |= tileCopy
			}
		}
	}
	return drawn != 0
}
