package microvoxel

import (
	"log/slog"
	"math"
)

// bitToggles is the near-first octree child-visit permutation (spec.md
// GLOSSARY, "Near-first order"). Element 4 appears before 3: this is not
// a typo, it is required for correct front-to-back order (spec.md 4.2
// step 1, citing the flipcode octree-traversal article).
var bitToggles = [8]uint8{0, 1, 2, 4, 3, 5, 6, 7}

// VisibilityCalculator walks an octree front-to-back from a camera,
// pruning culled and occluded subtrees via an OcclusionMask, and emits a
// Glyph for each node it decides to draw (spec.md 4.2).
type VisibilityCalculator struct {
	mask              *OcclusionMask
	maxFootprintSize  float64
	cubeVerticesWorld [32][8]Vec3
	cubeVerticesView  [32][8]Vec3
}

// NewVisibilityCalculator creates a calculator with its own OcclusionMask,
// sized and tuned by opts.
func NewVisibilityCalculator(opts ...VisibilityOption) (*VisibilityCalculator, error) {
	o := defaultVisibilityOptions()
	for _, opt := range opts {
		opt(&o)
	}

	mask, err := NewOcclusionMask(o.maskWidth, o.maskHeight, WithTileCacheSize(o.tileCacheSize))
	if err != nil {
		return nil, err
	}

	vc := &VisibilityCalculator{
		mask:              mask,
		maxFootprintSize:  o.maxFootprintSize,
		cubeVerticesWorld: precomputeWorldCubeVertices(),
	}
	Logger().Info("visibility calculator created",
		slog.Int("mask_width", o.maskWidth),
		slog.Int("mask_height", o.maskHeight),
		slog.Float64("max_footprint_size", o.maxFootprintSize),
	)
	return vc, nil
}

// Mask returns the calculator's occlusion mask, mainly useful for tests
// and debug visualization.
func (vc *VisibilityCalculator) Mask() *OcclusionMask { return vc.mask }

// cubeCorners returns the 8 corners of a cube given its three half-extent
// axis vectors, in the fixed vertex order required by spec.md invariant 5
// (v[c] = centre + halfSize*((c&1?+1:-1),(c&2?+1:-1),(c&4?+1:-1))).
func cubeCorners(x, y, z Vec3) [8]Vec3 {
	negX, negY, negZ := x.Neg(), y.Neg(), z.Neg()
	return [8]Vec3{
		negX.Add(negY).Add(negZ),
		x.Add(negY).Add(negZ),
		negX.Add(y).Add(negZ),
		x.Add(y).Add(negZ),
		negX.Add(negY).Add(z),
		x.Add(negY).Add(z),
		negX.Add(y).Add(z),
		x.Add(y).Add(z),
	}
}

// precomputeWorldCubeVertices computes, for every octree height in
// [0,32), the 8 world-space corners of a cube of side 2^h centered at the
// origin (spec.md 4.2, "Precomputations per frame": world-space corners
// don't depend on the camera, so this runs once at construction rather
// than per frame).
func precomputeWorldCubeVertices() [32][8]Vec3 {
	var out [32][8]Vec3
	for h := 0; h < 32; h++ {
		halfSize := float64(uint64(1)<<uint(h)) * 0.5
		out[h] = cubeCorners(Vec3{X: halfSize}, Vec3{Y: halfSize}, Vec3{Z: halfSize})
	}
	return out
}

// recomputeViewSpaceCubeVertices recomputes, for every height, the 8
// corners of a cube of side 2^h in view space (spec.md 4.2,
// "cube_vertices_view"). A world-space offset d maps to view space as R*d,
// R being the view matrix's rotation part, so the view-space images of the
// world x, y and z axes are R's columns. This must run once per frame
// since it depends on the current camera orientation.
func (vc *VisibilityCalculator) recomputeViewSpaceCubeVertices(camera Camera) {
	view := camera.ViewMatrix()
	xAxis := Vec3{X: view.M[0][0], Y: view.M[1][0], Z: view.M[2][0]}
	yAxis := Vec3{X: view.M[0][1], Y: view.M[1][1], Z: view.M[2][1]}
	zAxis := Vec3{X: view.M[0][2], Y: view.M[1][2], Z: view.M[2][2]}
	for h := 0; h < 32; h++ {
		halfSize := float64(uint64(1)<<uint(h)) * 0.5
		vc.cubeVerticesView[h] = cubeCorners(xAxis.Mul(halfSize), yAxis.Mul(halfSize), zAxis.Mul(halfSize))
	}
}

// walkState carries the per-call mutable state of a single
// FindVisibleOctreeNodes walk: the caller's glyph buffer, how many slots
// have been used, and the early-unwind flag (spec.md 5, "Cancellation is
// cooperative").
type walkState struct {
	camera    Camera
	volume    *Volume
	glyphs    []Glyph
	count     int
	maxGlyphs int
	done      bool
}

// FindVisibleOctreeNodes walks volume's octree front-to-back from camera,
// writing up to len(glyphs) glyphs and returning the number written
// (spec.md 4.2, 6 "Glyph array contract").
func (vc *VisibilityCalculator) FindVisibleOctreeNodes(camera Camera, volume *Volume, glyphs []Glyph) int {
	vc.mask.Clear()
	vc.recomputeViewSpaceCubeVertices(camera)

	rootHeight := volume.HeightLog2()
	rootCentreWorld := Vec3{}
	rootCentreView := camera.ViewMatrix().TransformPoint(rootCentreWorld)

	w := &walkState{
		camera:    camera,
		volume:    volume,
		glyphs:    glyphs,
		maxGlyphs: len(glyphs),
	}
	if w.maxGlyphs == 0 {
		return 0
	}

	vc.processNode(w, volume.RootNodeIndex(), rootCentreWorld, rootCentreView, rootHeight)
	return w.count
}

// processNode is the recursive octree walk at the heart of the visibility
// calculator (spec.md 4.2). It visits one node's 8 children in near-first
// order, culling, projecting, and either drawing or recursing into each.
func (vc *VisibilityCalculator) processNode(w *walkState, nodeIndex uint32, nodeCentreWorld, nodeCentreView Vec3, nodeHeight int) {
	if w.done {
		return
	}

	store := w.volume.Store()
	childHeight := nodeHeight - 1
	childSize := float64(uint64(1) << uint(childHeight))
	childHalfSize := childSize * 0.5
	childHalfDiagonal := childSize * math.Sqrt(3) * 0.5

	cameraPos := w.camera.Position()
	var nearest uint8
	if cameraPos.X > nodeCentreWorld.X {
		nearest |= 1
	}
	if cameraPos.Y > nodeCentreWorld.Y {
		nearest |= 2
	}
	if cameraPos.Z > nodeCentreWorld.Z {
		nearest |= 4
	}

	// A material leaf has no children to read (spec.md 3, invariant 1).
	// This only matters if a previous level chose to recurse into a
	// material node (visual subdivision of a solid material, spec.md 4.2
	// step 2); with material subdivision disabled that never happens in
	// practice, but the safe fallback below still yields a correct
	// (neutral) glyph normal rather than reading undefined memory.
	isLeafParent := store.IsMaterialLeaf(nodeIndex)
	var node Node
	if !isLeafParent {
		node = store.Children(nodeIndex)
	}

	proj := w.camera.ProjMatrix()
	halfFace := float64(vc.mask.Width()) / 2
	planes := w.camera.SidePlaneNormalsView()

	for _, toggle := range bitToggles {
		if w.done {
			return
		}

		childSlot := nearest ^ toggle
		var childIndex uint32
		if isLeafParent {
			childIndex = nodeIndex
		} else {
			childIndex = node[childSlot]
		}
		if childIndex == 0 {
			continue
		}

		childCentreWorld := nodeCentreWorld.Add(vc.cubeVerticesWorld[childHeight][childSlot])
		childCentreView := nodeCentreView.Add(vc.cubeVerticesView[childHeight][childSlot])

		inFrustum := true
		for _, n := range planes {
			if childCentreView.Dot(n) < -childHalfDiagonal {
				inFrustum = false
				break
			}
		}
		if !inFrustum {
			continue
		}

		var corners PolygonVertices
		for c := 0; c < 8; c++ {
			corner := childCentreView.Add(vc.cubeVerticesView[childHeight][c])
			x := corner.X * proj.M[0][0]
			y := corner.Y * proj.M[1][1]
			invZ := 1 / -corner.Z
			x = x*invZ*halfFace + halfFace
			y = y*invZ*halfFace + halfFace
			corners[c] = IVec2{X: roundHalfAwayFromZero(x), Y: roundHalfAwayFromZero(y)}
		}

		footprint := childSize / childCentreView.Length()

		var front FrontFaces
		front[0] = cameraPos.X < childCentreWorld.X-childHalfSize
		front[1] = cameraPos.X > childCentreWorld.X+childHalfSize
		front[2] = cameraPos.Y < childCentreWorld.Y-childHalfSize
		front[3] = cameraPos.Y > childCentreWorld.Y+childHalfSize
		front[4] = cameraPos.Z < childCentreWorld.Z-childHalfSize
		front[5] = cameraPos.Z > childCentreWorld.Z+childHalfSize

		isChildMaterial := store.IsMaterialLeaf(childIndex)
		drawable := childHeight == 0 || footprint <= vc.maxFootprintSize || isChildMaterial

		straddlesZero := childCentreView.Z >= -childHalfDiagonal
		var visible bool
		if straddlesZero {
			visible = true
		} else {
			visible = vc.mask.DrawNode(corners, front, drawable)
		}

		if !visible {
			continue
		}

		if !drawable {
			vc.processNode(w, childIndex, childCentreWorld, childCentreView, childHeight)
			continue
		}

		if w.count >= w.maxGlyphs {
			w.done = true
			return
		}
		w.glyphs[w.count] = vc.buildGlyph(childCentreWorld, childSize, node, childIndex, w.volume, cameraPos)
		w.count++
		if w.count == w.maxGlyphs {
			w.done = true
			return
		}
	}
}

// buildGlyph assembles the output Glyph for a drawable child. The normal
// is derived from the parent's occupancy pattern (cheaper than sampling
// neighbors) and the material is found by descending toward the nearest
// non-empty leaf (spec.md 4.2, "Glyph construction", "Material lookup").
func (vc *VisibilityCalculator) buildGlyph(centre Vec3, size float64, parentNode Node, nodeIndex uint32, volume *Volume, cameraPos Vec3) Glyph {
	normal := computeNodeNormal(parentNode)
	material := materialForNode(centre, nodeIndex, volume, cameraPos)
	return Glyph{
		X: float32(centre.X), Y: float32(centre.Y), Z: float32(centre.Z),
		Size: float32(size),
		A:    float32(normal.X), B: float32(normal.Y), C: float32(normal.Z),
		D: material,
	}
}

// computeNodeNormal derives a cheap approximate surface normal from a
// node's child-occupancy pattern: sum sign_vector(x,y,z) over every slot
// whose child is empty space, then normalize (spec.md 4.2).
func computeNodeNormal(node Node) Vec3 {
	var sum Vec3
	for z := uint8(0); z < 2; z++ {
		for y := uint8(0); y < 2; y++ {
			for x := uint8(0); x < 2; x++ {
				slot := z<<2 | y<<1 | x
				if node[slot] == 0 {
					sum = sum.Add(Vec3{X: componentSign(x), Y: componentSign(y), Z: componentSign(z)})
				}
			}
		}
	}
	return sum.Normalize()
}

// materialForNode descends from a non-leaf node toward the nearest
// non-empty material leaf, following the near-first permutation order,
// and returns that leaf's index (spec.md 4.2, "Material lookup"). The
// nearest-child bit pattern is computed once from centre rather than
// re-evaluated at each level — a documented, intentional approximation
// (spec.md 9.2) carried over unchanged from the reference implementation.
//
// This assumes the node store is well-formed: every internal node
// reachable here has at least one non-empty child along some branch of
// the near-first permutation (spec.md 7, "the design assumes the Node
// Store is well-formed").
func materialForNode(centre Vec3, nodeIndex uint32, volume *Volume, cameraPos Vec3) uint32 {
	store := volume.Store()

	var nearest uint8
	if cameraPos.X > centre.X {
		nearest |= 1
	}
	if cameraPos.Y > centre.Y {
		nearest |= 2
	}
	if cameraPos.Z > centre.Z {
		nearest |= 4
	}

	for !store.IsMaterialLeaf(nodeIndex) {
		children := store.Children(nodeIndex)
		for _, bt := range bitToggles {
			childID := nearest ^ bt
			if childIdx := children[childID]; childIdx > 0 {
				nodeIndex = childIdx
				break
			}
		}
	}
	return nodeIndex
}
