package microvoxel

import "math"

// Mat4 represents a 4x4 homogeneous transformation matrix in row-major
// order, stored as four row vectors. The visibility calculator needs real
// view/projection matrices (spec.md 6, Camera contract) rather than the
// 2D affine transform a path-drawing library needs, so this generalizes
// the row-major, builder-function idiom of a 2D affine matrix to 3D.
type Mat4 struct {
	M [4][4]float64
}

// Identity4 returns the 4x4 identity matrix.
func Identity4() Mat4 {
	var m Mat4
	for i := 0; i < 4; i++ {
		m.M[i][i] = 1
	}
	return m
}

// Translate4 creates a translation matrix.
func Translate4(t Vec3) Mat4 {
	m := Identity4()
	m.M[0][3] = t.X
	m.M[1][3] = t.Y
	m.M[2][3] = t.Z
	return m
}

// Multiply multiplies two matrices (m * other).
func (m Mat4) Multiply(other Mat4) Mat4 {
	var out Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m.M[r][k] * other.M[k][c]
			}
			out.M[r][c] = sum
		}
	}
	return out
}

// Row returns the matrix's r-th row as a Vec3, dropping the homogeneous
// fourth component. For a view matrix built by LookAt, rows 0-2 are the
// camera's right, up and backward axes expressed in world space.
func (m Mat4) Row(r int) Vec3 {
	return Vec3{X: m.M[r][0], Y: m.M[r][1], Z: m.M[r][2]}
}

// TransformPoint applies the transformation to a homogeneous point
// (w=1) and returns the resulting xyz, without perspective division.
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	return Vec3{
		X: m.M[0][0]*p.X + m.M[0][1]*p.Y + m.M[0][2]*p.Z + m.M[0][3],
		Y: m.M[1][0]*p.X + m.M[1][1]*p.Y + m.M[1][2]*p.Z + m.M[1][3],
		Z: m.M[2][0]*p.X + m.M[2][1]*p.Y + m.M[2][2]*p.Z + m.M[2][3],
	}
}

// LookAt builds a right-handed view matrix placing the camera at eye,
// looking toward target, with the given world-space up direction.
func LookAt(eye, target, up Vec3) Mat4 {
	forward := target.Sub(eye).Normalize()
	right := Vec3{
		X: forward.Y*up.Z - forward.Z*up.Y,
		Y: forward.Z*up.X - forward.X*up.Z,
		Z: forward.X*up.Y - forward.Y*up.X,
	}.Normalize()
	trueUp := Vec3{
		X: right.Y*forward.Z - right.Z*forward.Y,
		Y: right.Z*forward.X - right.X*forward.Z,
		Z: right.X*forward.Y - right.Y*forward.X,
	}

	// Right-handed, camera looks down -Z in view space.
	var m Mat4
	m.M[0] = [4]float64{right.X, right.Y, right.Z, -right.Dot(eye)}
	m.M[1] = [4]float64{trueUp.X, trueUp.Y, trueUp.Z, -trueUp.Dot(eye)}
	m.M[2] = [4]float64{-forward.X, -forward.Y, -forward.Z, forward.Dot(eye)}
	m.M[3] = [4]float64{0, 0, 0, 1}
	return m
}

// Perspective builds a right-handed perspective projection matrix. Only
// M[0][0] and M[1][1] are consulted by the visibility calculator (spec.md
// 4.2 step 5 and 6, Camera contract), but the full matrix is built for
// completeness and so the camera can be reused by other callers.
func Perspective(fovYRadians, aspect, near, far float64) Mat4 {
	f := 1 / math.Tan(fovYRadians/2)
	var m Mat4
	m.M[0][0] = f / aspect
	m.M[1][1] = f
	m.M[2][2] = (far + near) / (near - far)
	m.M[2][3] = (2 * far * near) / (near - far)
	m.M[3][2] = -1
	return m
}
