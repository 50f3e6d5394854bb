package microvoxel

import (
	"errors"
	"testing"
)

// fullCoverPolygon builds a PolygonVertices whose minZ face has corners
// at (0,0) and (w,h). Edge functions count points on an edge as inside,
// so the face covers [0,w] x [0,h]; with w,h equal to the mask size the
// mask bounds clip that to exactly [0,w) x [0,h). The bounding box spans
// w x h, which dispatches through the tiled draw path whenever w or h
// reaches TileSize.
func fullCoverPolygon(w, h int) (PolygonVertices, FrontFaces) {
	var poly PolygonVertices
	poly[0] = IVec2{X: 0, Y: 0}
	poly[2] = IVec2{X: w, Y: 0}
	poly[3] = IVec2{X: w, Y: h}
	poly[1] = IVec2{X: 0, Y: h}
	poly[4] = poly[0]
	poly[6] = poly[2]
	poly[7] = poly[3]
	poly[5] = poly[1]

	var front FrontFaces
	front[4] = true // minZ face: indices {0,2,3,1}, see cubeFaceIndices
	return poly, front
}

// smallCoverPolygon is the small-node variant used by spec.md's seed
// scenario 3: corners at (0,0)-(maxX,maxY), inclusive, small enough to
// dispatch through the cached draw path.
func smallCoverPolygon(maxX, maxY int) (PolygonVertices, FrontFaces) {
	var poly PolygonVertices
	poly[0] = IVec2{X: 0, Y: 0}
	poly[2] = IVec2{X: maxX, Y: 0}
	poly[3] = IVec2{X: maxX, Y: maxY}
	poly[1] = IVec2{X: 0, Y: maxY}
	poly[4] = poly[0]
	poly[6] = poly[2]
	poly[7] = poly[3]
	poly[5] = poly[1]

	var front FrontFaces
	front[4] = true
	return poly, front
}

func TestNewOcclusionMaskValidatesDimensions(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantErr       bool
	}{
		{"valid 8x8", 8, 8, false},
		{"valid 16x32", 16, 32, false},
		{"zero width", 0, 8, true},
		{"negative height", 8, -8, true},
		{"width not multiple of tile size", 10, 8, true},
		{"height not multiple of tile size", 8, 10, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewOcclusionMask(tt.width, tt.height)
			if tt.wantErr && err == nil {
				t.Errorf("NewOcclusionMask(%d,%d) should fail", tt.width, tt.height)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("NewOcclusionMask(%d,%d) failed: %v", tt.width, tt.height, err)
			}
			if tt.wantErr && err != nil && !errors.Is(err, ErrMaskDimensions) {
				t.Errorf("error should wrap ErrMaskDimensions, got %v", err)
			}
		})
	}
}

func TestOcclusionMaskClearResetsHash(t *testing.T) {
	m, err := NewOcclusionMask(8, 8)
	if err != nil {
		t.Fatalf("NewOcclusionMask failed: %v", err)
	}
	freshHash := m.Hash()

	poly, front := fullCoverPolygon(8, 8)
	m.DrawNode(poly, front, true)
	if m.Hash() == freshHash {
		t.Fatal("hash should change after drawing")
	}

	m.Clear()
	if m.Hash() != freshHash {
		t.Errorf("hash after Clear() = %d, want %d (same as fresh mask)", m.Hash(), freshHash)
	}
}

func TestOcclusionMaskSetOpaque(t *testing.T) {
	m, err := NewOcclusionMask(8, 8)
	if err != nil {
		t.Fatalf("NewOcclusionMask failed: %v", err)
	}
	m.SetOpaque()
	for _, tile := range m.tiles {
		if tile != ^Tile(0) {
			t.Errorf("tile = %#x after SetOpaque, want all bits set", uint64(tile))
		}
	}
}

// TestMaskTileAlignmentScenario mirrors spec.md's seed scenario 3: an 8x8
// mask and a single quad covering it exactly should mark the lone tile
// fully opaque on first draw, then report no new coverage on a second,
// identical draw.
func TestMaskTileAlignmentScenario(t *testing.T) {
	m, err := NewOcclusionMask(8, 8)
	if err != nil {
		t.Fatalf("NewOcclusionMask failed: %v", err)
	}

	poly, front := smallCoverPolygon(7, 7)

	if drew := m.DrawNode(poly, front, true); !drew {
		t.Fatal("first DrawNode should report new coverage")
	}
	if m.tiles[0] != ^Tile(0) {
		t.Errorf("tile = %#x after full-coverage draw, want all bits set", uint64(m.tiles[0]))
	}

	if drew := m.DrawNode(poly, front, true); drew {
		t.Error("second identical DrawNode should report no new coverage")
	}
}

func TestMaskDrawNodeTiledPathFullCoverageIdempotent(t *testing.T) {
	m, err := NewOcclusionMask(16, 16)
	if err != nil {
		t.Fatalf("NewOcclusionMask failed: %v", err)
	}

	poly, front := fullCoverPolygon(16, 16)

	if drew := m.DrawNode(poly, front, true); !drew {
		t.Fatal("first DrawNode over the tiled path should report new coverage")
	}
	for i, tile := range m.tiles {
		if tile != ^Tile(0) {
			t.Errorf("tile[%d] = %#x, want all bits set", i, uint64(tile))
		}
	}
	if drew := m.DrawNode(poly, front, true); drew {
		t.Error("second identical DrawNode should report no new coverage")
	}
}

func TestOcclusionMaskQueryOnlyDoesNotWrite(t *testing.T) {
	m, err := NewOcclusionMask(8, 8)
	if err != nil {
		t.Fatalf("NewOcclusionMask failed: %v", err)
	}
	poly, front := fullCoverPolygon(8, 8)

	if drew := m.DrawNode(poly, front, false); !drew {
		t.Fatal("query-only DrawNode over an empty mask should report new coverage")
	}
	if m.tiles[0] != 0 {
		t.Errorf("tile = %#x after query-only draw, want untouched (0)", uint64(m.tiles[0]))
	}
}

func TestGetTileOutOfRangeReturnsBorderTile(t *testing.T) {
	m, err := NewOcclusionMask(8, 8)
	if err != nil {
		t.Fatalf("NewOcclusionMask failed: %v", err)
	}
	tile := m.getTile(-1, 0)
	if tile != &m.borderTile {
		t.Error("out-of-range tile coordinates should return the border tile")
	}
	tile.SetPixel(0, 0)
	m.Clear()
	if m.borderTile != 0 {
		t.Error("border tile writes should be discarded on Clear")
	}
}
