package microvoxel

// Node is an 8-entry indexable record mapping a child slot c in [0,7] to a
// node-store index. Slot encoding is fixed per spec.md 3 and 9.3: the
// reference implementation (and this one) index children in zyx bit
// order, c = (z<<2)|(y<<1)|x, deliberately not the paper's xyz order the
// parametric ray traversal algorithm was adapted from.
type Node [8]uint32

// NodeStore is the read-only node accessor the visibility calculator and
// ray traverser both depend on (spec.md 6, "Node store contract"). Index 0
// is always a material leaf denoting empty space; IsMaterialLeaf must
// return true for it. Reading Children of a material leaf is undefined.
type NodeStore interface {
	// Children returns the 8 child indices of the internal node at index.
	Children(index uint32) Node

	// IsMaterialLeaf reports whether index is below the store's
	// material-leaf threshold. A material-leaf index is itself the
	// material id (0 meaning empty space, >0 an opaque material).
	IsMaterialLeaf(index uint32) bool
}

// Volume is the immutable octree volume handed to the visibility
// calculator and ray traverser (spec.md 3). Its root is always centered at
// the world-space origin with side length 2^HeightLog2.
type Volume struct {
	root       uint32
	store      NodeStore
	heightLog2 int
}

// NewVolume constructs a Volume. heightLog2 is H_root from spec.md 3: the
// root cube has side length 2^heightLog2, and must satisfy H_root <= 31
// so the full int32 lattice (spec.md 3: bounds [INT32_MIN, INT32_MAX])
// fits along each axis.
func NewVolume(root uint32, store NodeStore, heightLog2 int) (*Volume, error) {
	if heightLog2 < 0 || heightLog2 > 31 {
		return nil, invalidSideLengthError(heightLog2)
	}
	return &Volume{root: root, store: store, heightLog2: heightLog2}, nil
}

// RootNodeIndex returns the volume's root node index.
func (v *Volume) RootNodeIndex() uint32 { return v.root }

// HeightLog2 returns H_root: the root cube has side length 2^HeightLog2.
func (v *Volume) HeightLog2() int { return v.heightLog2 }

// SideLength returns 2^HeightLog2 as a uint64 (it may exceed int32 range
// when HeightLog2 is 31).
func (v *Volume) SideLength() uint64 { return uint64(1) << uint(v.heightLog2) }

// Store returns the volume's node store.
func (v *Volume) Store() NodeStore { return v.store }

// SliceNodeStore is a minimal, in-memory NodeStore backed by a flat slice
// of Node, the Go analogue of original_source/src/library/rendering.cpp's
// Internals::getNodes(volume).nodes() flat-array access (spec.md 9,
// "Cyclic/graph data": represent the node store as an indexed flat array,
// never with owning inter-node references). Indices below
// MaterialThreshold are material leaves; indices at or above it index
// into Nodes.
type SliceNodeStore struct {
	Nodes             []Node
	MaterialThreshold uint32
}

// NewSliceNodeStore creates a SliceNodeStore. Index 0 is reserved for
// empty space and is always a material leaf regardless of threshold.
func NewSliceNodeStore(materialThreshold uint32) *SliceNodeStore {
	return &SliceNodeStore{MaterialThreshold: materialThreshold}
}

// AddNode appends an internal node and returns its index.
func (s *SliceNodeStore) AddNode(n Node) uint32 {
	index := s.MaterialThreshold + uint32(len(s.Nodes))
	s.Nodes = append(s.Nodes, n)
	return index
}

// Children implements NodeStore.
func (s *SliceNodeStore) Children(index uint32) Node {
	return s.Nodes[index-s.MaterialThreshold]
}

// IsMaterialLeaf implements NodeStore.
func (s *SliceNodeStore) IsMaterialLeaf(index uint32) bool {
	return index == 0 || index < s.MaterialThreshold
}
