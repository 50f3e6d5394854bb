package microvoxel

import "math"

// Camera is the read-only camera contract the visibility calculator
// depends on (spec.md 6). Only ProjMatrix's [0][0] and [1][1] entries are
// consulted.
type Camera interface {
	ViewMatrix() Mat4
	ProjMatrix() Mat4
	Position() Vec3
	SidePlaneNormalsView() [4]Vec3
}

// StaticCamera is a Camera built once from a look-at/perspective pair and
// never mutated afterward — sufficient for the single-threaded,
// session-scoped usage the calculator requires (spec.md 5).
type StaticCamera struct {
	view     Mat4
	proj     Mat4
	position Vec3
	planes   [4]Vec3
}

// NewStaticCamera builds a camera looking from eye toward target with the
// given up direction and vertical field of view (radians), aspect ratio,
// and near/far clip distances. The four side-plane normals are derived
// from the field of view and aspect ratio, expressed in view space
// (spec.md 6, "side_plane_normals_view").
func NewStaticCamera(eye, target, up Vec3, fovYRadians, aspect, near, far float64) *StaticCamera {
	view := LookAt(eye, target, up)
	proj := Perspective(fovYRadians, aspect, near, far)

	halfVFOV := fovYRadians / 2
	halfHFOV := math.Atan(math.Tan(halfVFOV) * aspect)

	cosV, sinV := math.Cos(halfVFOV), math.Sin(halfVFOV)
	cosH, sinH := math.Cos(halfHFOV), math.Sin(halfHFOV)

	// Inward-pointing normals of the 4 side planes of the view frustum,
	// in view space (camera looks down -Z).
	planes := [4]Vec3{
		{X: cosH, Y: 0, Z: -sinH},  // left
		{X: -cosH, Y: 0, Z: -sinH}, // right
		{X: 0, Y: cosV, Z: -sinV},  // bottom
		{X: 0, Y: -cosV, Z: -sinV}, // top
	}

	return &StaticCamera{
		view:     view,
		proj:     proj,
		position: eye,
		planes:   planes,
	}
}

// ViewMatrix implements Camera.
func (c *StaticCamera) ViewMatrix() Mat4 { return c.view }

// ProjMatrix implements Camera.
func (c *StaticCamera) ProjMatrix() Mat4 { return c.proj }

// Position implements Camera.
func (c *StaticCamera) Position() Vec3 { return c.position }

// SidePlaneNormalsView implements Camera.
func (c *StaticCamera) SidePlaneNormalsView() [4]Vec3 { return c.planes }
