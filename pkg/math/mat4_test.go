package math

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	result := m.Mul(Identity())

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestAtRowCol(t *testing.T) {
	m := Translate(5, 10, 15)

	// Translation lives in the last column
	if m.At(0, 3) != 5 || m.At(1, 3) != 10 || m.At(2, 3) != 15 {
		t.Errorf("At(row, 3): got (%f, %f, %f), want (5, 10, 15)", m.At(0, 3), m.At(1, 3), m.At(2, 3))
	}

	m.Set(3, 0, 7)
	if m[3] != 7 {
		t.Errorf("Set(3, 0) should write element 3, got %f", m[3])
	}
}

func TestMat4FromColumns(t *testing.T) {
	m := Mat4FromColumns([4][4]float32{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{4, 5, 6, 1},
	})
	if m != Translate(4, 5, 6) {
		t.Errorf("Mat4FromColumns: got %v, want %v", m, Translate(4, 5, 6))
	}
}

func TestTransformPoint(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
		p    Vec3
		want Vec3
	}{
		{"translate", Translate(10, 20, 30), Vec3{1, 2, 3}, Vec3{11, 22, 33}},
		{"scale", Scale(2, 2, 2), Vec3{1, 2, 3}, Vec3{2, 4, 6}},
		{"identity", Identity(), Vec3{7, 8, 9}, Vec3{7, 8, 9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.TransformPoint(tt.p)
			if got != tt.want {
				t.Errorf("TransformPoint: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRotateY90(t *testing.T) {
	m := QuatFromAxisAngle(Vec3{0, 1, 0}, float32(math.Pi/2)).ToMat4()
	result := m.TransformPoint(Vec3{1, 0, 0})

	// After 90 degree Y rotation, (1,0,0) should become approximately (0,0,-1)
	if !result.ApproxEqual(Vec3{0, 0, -1}, 0.001) {
		t.Errorf("RotateY 90: got %v, want (0, 0, -1)", result)
	}
}

func TestTranspose(t *testing.T) {
	m := Translate(1, 2, 3)
	tr := m.Transpose()
	if tr.At(3, 0) != 1 || tr.At(3, 1) != 2 || tr.At(3, 2) != 3 {
		t.Errorf("Transpose should move translation into the last row, got %v", tr)
	}
	if tr.Transpose() != m {
		t.Error("Transpose twice should return the original matrix")
	}
}

func TestDeterminant(t *testing.T) {
	if d := Scale(2, 3, 4).Determinant(); d != 24 {
		t.Errorf("Determinant of Scale(2,3,4): got %f, want 24", d)
	}
	if d := QuatFromAxisAngle(Vec3{0, 0, 1}, 0.7).ToMat4().Determinant(); !approx(d, 1, 1e-5) {
		t.Errorf("Determinant of rotation: got %f, want 1", d)
	}
}

func TestInverseMatchesMathgl(t *testing.T) {
	m := Translate(1, -2, 3).
		Mul(QuatFromAxisAngle(Vec3{0, 1, 0}, 0.6).ToMat4()).
		Mul(Scale(2, 0.5, 1.5))

	got := m.Inverse()
	want := mgl32.Mat4(m).Inv()

	if !mgl32.Mat4(got).ApproxEqualThreshold(want, 1e-4) {
		t.Errorf("Inverse mismatch:\ngot  %v\nwant %v", got, want)
	}
	if !m.Mul(got).ApproxEqual(Identity(), 1e-5) {
		t.Errorf("M * M^-1 should be identity, got %v", m.Mul(got))
	}
}

func TestInverseSingularReturnsIdentity(t *testing.T) {
	m := Scale(1, 0, 1)
	if got := m.Inverse(); got != Identity() {
		t.Errorf("singular inverse: got %v, want identity", got)
	}
}

func TestMulMatchesMathgl(t *testing.T) {
	a := Translate(3, 2, 1).Mul(Mat4(mgl32.HomogRotate3DX(0.3)))
	b := Mat4(mgl32.HomogRotate3DZ(1.1)).Mul(Scale(1, 2, 3))

	got := a.Mul(b)
	want := mgl32.Mat4(a).Mul4(mgl32.Mat4(b))
	if !mgl32.Mat4(got).ApproxEqualThreshold(want, 1e-5) {
		t.Errorf("Mul mismatch:\ngot  %v\nwant %v", got, want)
	}
}

func TestToQuatRoundTrip(t *testing.T) {
	axes := []Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {1, 1, 0}, {-1, 2, 0.5}}
	angles := []float32{0.1, 1.2, 2.5, 3.1}

	for _, axis := range axes {
		for _, angle := range angles {
			q := QuatFromAxisAngle(axis, angle)
			got := q.ToMat4().ToQuat()
			if !got.SameRotation(q, 1e-4) {
				t.Errorf("axis %v angle %v: got %v, want %v", axis, angle, got, q)
			}
		}
	}
}
