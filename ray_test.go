package microvoxel

import (
	"math"
	"testing"
)

func TestFirstNode(t *testing.T) {
	tests := []struct {
		name                   string
		tx0, ty0, tz0          float64
		txm, tym, tzm          float64
		want                   int
	}{
		{"YZ plane, both far children", 5, 3, 2, 99, 4, 1, 6},
		{"XZ plane, one far child", 1, 5, 2, 0, 99, 10, 1},
		{"XY plane, one far child", 1, 1, 5, 10, 0, 99, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := firstNode(tt.tx0, tt.ty0, tt.tz0, tt.txm, tt.tym, tt.tzm); got != tt.want {
				t.Errorf("firstNode(...) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewNode(t *testing.T) {
	tests := []struct {
		name string
		txm  float64
		tym  float64
		tzm  float64
		want int
	}{
		{"txm smallest -> x", 1, 2, 3, 1},
		{"tym smallest -> y", 5, 2, 3, 2},
		{"tzm smallest -> z", 5, 5, 1, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := newNode(tt.txm, 1, tt.tym, 2, tt.tzm, 4); got != tt.want {
				t.Errorf("newNode(...) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRayParameterEmptyVolumeMisses(t *testing.T) {
	store := NewSliceNodeStore(1) // index 0 is always a material leaf (empty)
	volume, err := NewVolume(0, store, 10)
	if err != nil {
		t.Fatalf("NewVolume failed: %v", err)
	}

	hit := RayParameter(volume, Ray3{Origin: V3(0, 0, 10), Dir: V3(0, 0, -1)})
	if hit.Material != 0 {
		t.Errorf("Material = %d, want 0 (miss) for an empty volume", hit.Material)
	}
}

func TestRayParameterAllEmptyChildrenMisses(t *testing.T) {
	store := NewSliceNodeStore(1)
	root := store.AddNode(Node{}) // every slot empty
	volume, err := NewVolume(root, store, 10)
	if err != nil {
		t.Fatalf("NewVolume failed: %v", err)
	}

	hit := RayParameter(volume, Ray3{Origin: V3(-5, -5, -5), Dir: V3(1, 1, 1)})
	if hit.Material != 0 {
		t.Errorf("Material = %d, want 0 (miss) when every child is empty", hit.Material)
	}
}

// TestRayParameterHitsUniformRootMaterial exercises a root that is itself
// an occupied material leaf (conceptually, a volume solid everywhere).
// Because no subdivision happens, the entry parameters come directly from
// the fixed root bounds and the ray, so the result is exactly computable.
func TestRayParameterHitsUniformRootMaterial(t *testing.T) {
	store := NewSliceNodeStore(10)
	const material = uint32(5)
	volume, err := NewVolume(material, store, 31)
	if err != nil {
		t.Fatalf("NewVolume failed: %v", err)
	}

	hit := RayParameter(volume, Ray3{Origin: V3(0, 0, 0), Dir: V3(2, 1, 1)})

	if hit.Material != material {
		t.Fatalf("Material = %d, want %d", hit.Material, material)
	}

	rootLower := float64(math.MinInt32)
	wantDistance := (rootLower - 0.5) / 2
	if math.Abs(hit.Distance-wantDistance) > 1e-6 {
		t.Errorf("Distance = %v, want %v", hit.Distance, wantDistance)
	}

	wantNormal := V3(-1, 0, 0)
	if hit.Normal != wantNormal {
		t.Errorf("Normal = %+v, want %+v", hit.Normal, wantNormal)
	}

	wantPosition := V3(0, 0, 0).Add(V3(2, 1, 1).Mul(hit.Distance))
	if hit.Position != wantPosition {
		t.Errorf("Position = %+v, want %+v (origin + dir*distance)", hit.Position, wantPosition)
	}
}

// TestRayParameterFlipMaskNegatesNormal mirrors the previous test's ray
// direction across the origin; the same uniform-material root should
// still report a hit, now through the axis-flip preprocessing path, with
// the x component of the normal negated back to +1.
func TestRayParameterFlipMaskNegatesNormal(t *testing.T) {
	store := NewSliceNodeStore(10)
	const material = uint32(5)
	volume, err := NewVolume(material, store, 31)
	if err != nil {
		t.Fatalf("NewVolume failed: %v", err)
	}

	hit := RayParameter(volume, Ray3{Origin: V3(0, 0, 0), Dir: V3(-2, -1, -1)})

	if hit.Material != material {
		t.Fatalf("Material = %d, want %d", hit.Material, material)
	}
	if hit.Normal.X <= 0 {
		t.Errorf("Normal.X = %v, want positive after the axis flip", hit.Normal.X)
	}
}

// TestRayParameterZeroDirectionComponentDoesNotPanic exercises the nudge
// applied to exactly-zero direction components (spec.md 9.1); it asserts
// the call completes and returns the expected material and normal, but not
// the distance, since the nudge's magnitude makes the exact distance
// impractical to hand-verify.
func TestRayParameterZeroDirectionComponentDoesNotPanic(t *testing.T) {
	store := NewSliceNodeStore(10)
	const material = uint32(7)
	volume, err := NewVolume(material, store, 31)
	if err != nil {
		t.Fatalf("NewVolume failed: %v", err)
	}

	hit := RayParameter(volume, Ray3{Origin: V3(0, 0, 10), Dir: V3(0, 0, -1)})
	if hit.Material != material {
		t.Errorf("Material = %d, want %d", hit.Material, material)
	}
	if hit.Normal.Z != 1 {
		t.Errorf("Normal.Z = %v, want 1 (ray travels in -z, surface faces +z)", hit.Normal.Z)
	}
}

func TestMaxMinFloat3(t *testing.T) {
	if got := maxFloat3(1, 5, 3); got != 5 {
		t.Errorf("maxFloat3 = %v, want 5", got)
	}
	if got := minFloat3(1, 5, 3); got != 1 {
		t.Errorf("minFloat3 = %v, want 1", got)
	}
}
