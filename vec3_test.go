package microvoxel

import (
	"math"
	"testing"
)

func TestVec3Arithmetic(t *testing.T) {
	a := V3(1, 2, 3)
	b := V3(4, -5, 6)

	tests := []struct {
		name string
		got  Vec3
		want Vec3
	}{
		{"add", a.Add(b), V3(5, -3, 9)},
		{"sub", a.Sub(b), V3(-3, 7, -3)},
		{"mul", a.Mul(2), V3(2, 4, 6)},
		{"neg", a.Neg(), V3(-1, -2, -3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %+v, want %+v", tt.got, tt.want)
			}
		})
	}
}

func TestVec3Dot(t *testing.T) {
	a := V3(1, 0, 0)
	b := V3(0, 1, 0)
	if got := a.Dot(b); got != 0 {
		t.Errorf("orthogonal dot = %v, want 0", got)
	}
	if got := a.Dot(a); got != 1 {
		t.Errorf("unit dot with self = %v, want 1", got)
	}
}

func TestVec3Length(t *testing.T) {
	v := V3(3, 4, 0)
	if got := v.Length(); math.Abs(got-5) > 1e-12 {
		t.Errorf("Length() = %v, want 5", got)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := V3(0, 5, 0)
	n := v.Normalize()
	if math.Abs(n.Length()-1) > 1e-12 {
		t.Errorf("Normalize() length = %v, want 1", n.Length())
	}
	if n.Y <= 0 {
		t.Errorf("Normalize() should preserve direction, got %+v", n)
	}

	zero := Vec3{}.Normalize()
	if zero != (Vec3{}) {
		t.Errorf("Normalize() of zero vector = %+v, want zero vector", zero)
	}
}

func TestComponentSign(t *testing.T) {
	if got := componentSign(0); got != -1 {
		t.Errorf("componentSign(0) = %v, want -1", got)
	}
	if got := componentSign(1); got != 1 {
		t.Errorf("componentSign(1) = %v, want 1", got)
	}
}
