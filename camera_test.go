package microvoxel

import (
	"math"
	"testing"
)

func TestStaticCameraAccessors(t *testing.T) {
	eye := V3(0, 0, 10)
	cam := NewStaticCamera(eye, V3(0, 0, 0), V3(0, 1, 0), math.Pi/2, 1.0, 0.1, 1000)

	if cam.Position() != eye {
		t.Errorf("Position() = %+v, want %+v", cam.Position(), eye)
	}

	view := cam.ViewMatrix()
	got := view.TransformPoint(V3(0, 0, 0))
	if got.Z >= 0 {
		t.Errorf("world origin should be in front of the camera (negative view-space Z), got %+v", got)
	}
}

func TestStaticCameraSidePlanesPointInward(t *testing.T) {
	cam := NewStaticCamera(V3(0, 0, 10), V3(0, 0, 0), V3(0, 1, 0), math.Pi/2, 1.0, 0.1, 1000)
	planes := cam.SidePlaneNormalsView()
	if len(planes) != 4 {
		t.Fatalf("SidePlaneNormalsView() returned %d planes, want 4", len(planes))
	}

	// A point straight ahead on the view axis should be on the inward side
	// of every plane (dot product >= 0, well away from the plane itself).
	ahead := V3(0, 0, -5)
	for i, n := range planes {
		if got := ahead.Dot(n); got < -1e-9 {
			t.Errorf("plane %d: dot(ahead, normal) = %v, want >= 0", i, got)
		}
	}
}

func TestStaticCameraProjMatrixDiagonal(t *testing.T) {
	cam := NewStaticCamera(V3(0, 0, 10), V3(0, 0, 0), V3(0, 1, 0), math.Pi/2, 1.0, 0.1, 1000)
	proj := cam.ProjMatrix()
	if math.Abs(proj.M[0][0]-1) > 1e-9 {
		t.Errorf("proj.M[0][0] = %v, want 1 for 90deg fov / aspect 1", proj.M[0][0])
	}
}
