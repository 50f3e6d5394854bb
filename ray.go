package microvoxel

import "math"

// rayDirNudge replaces an exactly-zero ray-direction component before
// traversal starts. A zero component would otherwise divide the root
// bounds into +/-Inf entry/exit parameters; nudging away from zero keeps
// every downstream comparison finite without special-casing infinities
// (spec.md 9.1).
const rayDirNudge = 1e-12

// Ray3 is a world-space ray.
type Ray3 struct {
	Origin, Dir Vec3
}

// RayVolumeIntersection is the result of RayParameter. Material == 0
// means the ray missed (spec.md 4.3, "material == 0 means no hit").
type RayVolumeIntersection struct {
	Material uint32
	Distance float64
	Normal   Vec3
	Position Vec3
}

// RayParameter finds the first-hit intersection of ray with volume using
// parametric octree traversal (Revelles-Urena-Lastra, spec.md 4.3).
//
// Preprocessing flips any axis with a negative direction component,
// recording the flip mask in a local variable threaded through the
// traversal rather than as package state (spec.md 9, "Global mutable
// state": the reference implementation uses a file-scope byte for this;
// that is an accidental global this implementation does not repeat).
func RayParameter(volume *Volume, ray Ray3) RayVolumeIntersection {
	origin := ray.Origin
	dir := ray.Dir

	if dir.X == 0 {
		dir.X = rayDirNudge
	}
	if dir.Y == 0 {
		dir.Y = rayDirNudge
	}
	if dir.Z == 0 {
		dir.Z = rayDirNudge
	}

	var flipMask uint8
	if dir.X < 0 {
		origin.X = -(origin.X + 0.5) - 0.5
		dir.X = -dir.X
		flipMask |= 1
	}
	if dir.Y < 0 {
		origin.Y = -(origin.Y + 0.5) - 0.5
		dir.Y = -dir.Y
		flipMask |= 2
	}
	if dir.Z < 0 {
		origin.Z = -(origin.Z + 0.5) - 0.5
		dir.Z = -dir.Z
		flipMask |= 4
	}

	const rootLower = float64(math.MinInt32)
	const rootUpper = float64(math.MaxInt32)

	tx0 := (rootLower - 0.5 - origin.X) / dir.X
	tx1 := (rootUpper + 0.5 - origin.X) / dir.X
	ty0 := (rootLower - 0.5 - origin.Y) / dir.Y
	ty1 := (rootUpper + 0.5 - origin.Y) / dir.Y
	tz0 := (rootLower - 0.5 - origin.Z) / dir.Z
	tz1 := (rootUpper + 0.5 - origin.Z) / dir.Z

	var hit RayVolumeIntersection
	if maxFloat3(tx0, ty0, tz0) < minFloat3(tx1, ty1, tz1) {
		hit = procSubtreeIter(volume.Store(), tx0, ty0, tz0, tx1, ty1, tz1, volume.RootNodeIndex(), flipMask)
	}

	hit.Position = ray.Origin.Add(ray.Dir.Mul(hit.Distance))
	return hit
}

// rayState is one frame of the traversal's explicit stack: the entry/exit
// parameters for the node's bounds, its midpoints (computed lazily), the
// node index, and which of the up-to-4 sub-cells is being visited.
// currNode == -1 marks a frame not yet initialized; currNode == 8
// terminates that frame's iteration (spec.md 4.3, "Iterative
// implementation").
type rayState struct {
	tx0, ty0, tz0 float64
	tx1, ty1, tz1 float64
	txm, tym, tzm float64
	nodeIndex     uint32
	currNode      int
}

func (s *rayState) set(tx0, ty0, tz0, tx1, ty1, tz1 float64, nodeIndex uint32) {
	*s = rayState{tx0: tx0, ty0: ty0, tz0: tz0, tx1: tx1, ty1: ty1, tz1: tz1, nodeIndex: nodeIndex, currNode: -1}
}

// procSubtreeIter is the iterative form of the parametric octree walk.
// The stack is bounded to H_root+2 frames; since Volume enforces
// H_root <= 31 (node.go), 33 frames always suffices (spec.md 4.3,
// "an explicit stack of at most H_root + 2 frames is used").
func procSubtreeIter(store NodeStore, tx0, ty0, tz0, tx1, ty1, tz1 float64, rootIndex uint32, flipMask uint8) RayVolumeIntersection {
	var stack [33]rayState
	stack[0].set(tx0, ty0, tz0, tx1, ty1, tz1, rootIndex)
	sp := 0

	for sp >= 0 {
		state := &stack[sp]

		if state.currNode == -1 {
			if state.tx1 < 0 || state.ty1 < 0 || state.tz1 < 0 {
				sp--
				continue
			}

			if store.IsMaterialLeaf(state.nodeIndex) {
				if state.nodeIndex > 0 {
					return buildRayHit(state, flipMask)
				}
				sp--
				continue
			}

			state.txm = 0.5 * (state.tx0 + state.tx1)
			state.tym = 0.5 * (state.ty0 + state.ty1)
			state.tzm = 0.5 * (state.tz0 + state.tz1)
			state.currNode = firstNode(state.tx0, state.ty0, state.tz0, state.txm, state.tym, state.tzm)
		}

		if state.currNode == 8 {
			sp--
			continue
		}

		children := store.Children(state.nodeIndex)
		next := &stack[sp+1]

		// Child-slot indices are XORed by flipMask before lookup (spec.md
		// 4.3, "Case table"), undoing the axis flips applied during
		// preprocessing.
		switch state.currNode {
		case 0:
			next.set(state.tx0, state.ty0, state.tz0, state.txm, state.tym, state.tzm, children[0^flipMask])
			state.currNode = newNode(state.txm, 1, state.tym, 2, state.tzm, 4)
		case 1:
			next.set(state.txm, state.ty0, state.tz0, state.tx1, state.tym, state.tzm, children[1^flipMask])
			state.currNode = newNode(state.tx1, 8, state.tym, 3, state.tzm, 5)
		case 2:
			next.set(state.tx0, state.tym, state.tz0, state.txm, state.ty1, state.tzm, children[2^flipMask])
			state.currNode = newNode(state.txm, 3, state.ty1, 8, state.tzm, 6)
		case 3:
			next.set(state.txm, state.tym, state.tz0, state.tx1, state.ty1, state.tzm, children[3^flipMask])
			state.currNode = newNode(state.tx1, 8, state.ty1, 8, state.tzm, 7)
		case 4:
			next.set(state.tx0, state.ty0, state.tzm, state.txm, state.tym, state.tz1, children[4^flipMask])
			state.currNode = newNode(state.txm, 5, state.tym, 6, state.tz1, 8)
		case 5:
			next.set(state.txm, state.ty0, state.tzm, state.tx1, state.tym, state.tz1, children[5^flipMask])
			state.currNode = newNode(state.tx1, 8, state.tym, 7, state.tz1, 8)
		case 6:
			next.set(state.tx0, state.tym, state.tzm, state.txm, state.ty1, state.tz1, children[6^flipMask])
			state.currNode = newNode(state.txm, 7, state.ty1, 8, state.tz1, 8)
		case 7:
			next.set(state.txm, state.tym, state.tzm, state.tx1, state.ty1, state.tz1, children[7^flipMask])
			state.currNode = 8
		}

		sp++
	}

	return RayVolumeIntersection{}
}

// buildRayHit constructs the intersection record at an occupied material
// leaf: distance is max(t0), and the normal is set on whichever axis
// provided that maximum, then un-flipped by flipMask (spec.md 4.3).
func buildRayHit(state *rayState, flipMask uint8) RayVolumeIntersection {
	hit := RayVolumeIntersection{
		Material: state.nodeIndex,
		Distance: maxFloat3(state.tx0, state.ty0, state.tz0),
	}

	if state.tx0 > state.ty0 && state.tx0 > state.tz0 {
		hit.Normal.X = -1
	}
	if state.ty0 > state.tx0 && state.ty0 > state.tz0 {
		hit.Normal.Y = -1
	}
	if state.tz0 > state.tx0 && state.tz0 > state.ty0 {
		hit.Normal.Z = -1
	}

	if flipMask&1 != 0 {
		hit.Normal.X *= -1
	}
	if flipMask&2 != 0 {
		hit.Normal.Y *= -1
	}
	if flipMask&4 != 0 {
		hit.Normal.Z *= -1
	}

	return hit
}

// firstNode picks the sub-cell a ray enters a node's bounds through, by
// finding the entry plane (the largest of tx0,ty0,tz0) and consulting the
// other two axes' midpoints (spec.md 4.3, "first_node").
func firstNode(tx0, ty0, tz0, txm, tym, tzm float64) int {
	var answer int
	if tx0 > ty0 {
		if tx0 > tz0 { // YZ plane
			if tym < tx0 {
				answer |= 1 << 1
			}
			if tzm < tx0 {
				answer |= 1 << 2
			}
			return answer
		}
	} else if ty0 > tz0 { // XZ plane
		if txm < ty0 {
			answer |= 1 << 0
		}
		if tzm < ty0 {
			answer |= 1 << 2
		}
		return answer
	}
	// XY plane
	if txm < tz0 {
		answer |= 1 << 0
	}
	if tym < tz0 {
		answer |= 1 << 1
	}
	return answer
}

// newNode selects the next sub-cell across an internal face, returning
// whichever axis's exit midpoint is smallest; on a tie the later axis
// wins (z over y and x, y over x) (spec.md 4.3, "new_node"). A return of
// 8 terminates the node's iteration.
func newNode(txm float64, x int, tym float64, y int, tzm float64, z int) int {
	if txm < tym {
		if txm < tzm {
			return x
		}
	} else if tym < tzm {
		return y
	}
	return z
}

func maxFloat3(a, b, c float64) float64 { return math.Max(a, math.Max(b, c)) }
func minFloat3(a, b, c float64) float64 { return math.Min(a, math.Min(b, c)) }
