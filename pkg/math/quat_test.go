package math

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("Identity quaternion should be (0,0,0,1), got (%v,%v,%v,%v)", q.X, q.Y, q.Z, q.W)
	}
}

func TestQuatNormalize(t *testing.T) {
	q := Quat{X: 1, Y: 2, Z: 3, W: 4}
	n := q.Normalize()

	if math.Abs(float64(n.Length()-1.0)) > 0.0001 {
		t.Errorf("Normalized quaternion length should be 1, got %v", n.Length())
	}
	if got := (Quat{}).Normalize(); got != QuatIdentity() {
		t.Errorf("zero quaternion should normalize to identity, got %v", got)
	}
}

func TestQuatMulOrder(t *testing.T) {
	// a.Mul(b) applies b first, then a
	a := QuatFromAxisAngle(Vec3{0, 0, 1}, float32(math.Pi/2))
	b := QuatFromAxisAngle(Vec3{1, 0, 0}, float32(math.Pi/2))

	v := Vec3{0, 1, 0}
	got := a.Mul(b).Rotate(v)
	want := a.Rotate(b.Rotate(v))
	if !got.ApproxEqual(want, 1e-5) {
		t.Errorf("(a*b)v: got %v, want %v", got, want)
	}
}

func TestQuatRotateMatchesMathgl(t *testing.T) {
	axis := Vec3{1, 2, -0.5}
	angle := float32(1.3)

	q := QuatFromAxisAngle(axis, angle)
	ref := mgl32.QuatRotate(angle, mgl32.Vec3{axis.X, axis.Y, axis.Z}.Normalize())

	v := Vec3{0.3, -4, 2}
	got := q.Rotate(v)
	want := ref.Rotate(mgl32.Vec3{v.X, v.Y, v.Z})

	if !got.ApproxEqual(Vec3{want[0], want[1], want[2]}, 1e-4) {
		t.Errorf("Rotate: got %v, want %v", got, want)
	}
}

func TestQuatInverse(t *testing.T) {
	q := Quat{X: 0.2, Y: -0.4, Z: 0.1, W: 2}
	got := q.Mul(q.Inverse())
	if !got.ApproxEqual(QuatIdentity(), 1e-5) {
		t.Errorf("q * q^-1 should be identity, got %v", got)
	}

	unit := QuatFromAxisAngle(Vec3{0, 1, 0}, 0.8)
	if !unit.Inverse().ApproxEqual(unit.Conjugate(), 1e-6) {
		t.Error("inverse of a unit quaternion should equal its conjugate")
	}
}

func TestQuatNlerpShortest(t *testing.T) {
	a := QuatFromAxisAngle(Vec3{0, 1, 0}, 0.2)
	b := QuatFromAxisAngle(Vec3{0, 1, 0}, 0.6).Neg()

	if a.Dot(b) >= 0 {
		t.Fatal("test setup: expected opposite hemispheres")
	}

	mid := a.NlerpShortest(b, 0.5)
	want := QuatFromAxisAngle(Vec3{0, 1, 0}, 0.4)
	if !mid.SameRotation(want, 1e-3) {
		t.Errorf("NlerpShortest midpoint: got %v, want %v", mid, want)
	}

	// Without correction the blend passes near the zero quaternion
	naive := a.Lerp(b, 0.5)
	if naive.Length() > 0.5 {
		t.Errorf("naive lerp should collapse toward zero, length %v", naive.Length())
	}
}

func TestQuatSlerp(t *testing.T) {
	q1 := QuatIdentity()
	q2 := QuatFromAxisAngle(Vec3{X: 0, Y: 1, Z: 0}, float32(math.Pi/2))

	if r := q1.Slerp(q2, 0); !r.ApproxEqual(q1, 0.001) {
		t.Errorf("Slerp at t=0 should equal q1, got %v", r)
	}
	if r := q1.Slerp(q2, 1); !r.ApproxEqual(q2, 0.001) {
		t.Errorf("Slerp at t=1 should equal q2, got %v", r)
	}

	// For 90 degree rotation, halfway should be 45 degrees
	result5 := q1.Slerp(q2, 0.5)
	expectedW := float32(math.Cos(float64(math.Pi / 8)))
	if math.Abs(float64(result5.W-expectedW)) > 0.01 {
		t.Errorf("Slerp at t=0.5: expected W ~%v, got %v", expectedW, result5.W)
	}
}

func TestQuatToMat4(t *testing.T) {
	m := QuatIdentity().ToMat4()
	if !m.ApproxEqual(Identity(), 0.0001) {
		t.Errorf("Identity quat should produce identity matrix, got %v", m)
	}

	q := QuatFromAxisAngle(Vec3{0, 1, 0}, float32(math.Pi/2))
	want := Mat4(mgl32.HomogRotate3DY(float32(math.Pi / 2)))
	if !q.ToMat4().ApproxEqual(want, 1e-5) {
		t.Errorf("ToMat4: got %v, want %v", q.ToMat4(), want)
	}
}

func TestQuatFromAxisAngle(t *testing.T) {
	// 90 degrees around Y axis
	q := QuatFromAxisAngle(Vec3{X: 0, Y: 1, Z: 0}, float32(math.Pi/2))

	expectedW := float32(math.Cos(math.Pi / 4))
	expectedY := float32(math.Sin(math.Pi / 4))

	if math.Abs(float64(q.W-expectedW)) > 0.001 {
		t.Errorf("QuatFromAxisAngle W: expected %v, got %v", expectedW, q.W)
	}
	if math.Abs(float64(q.Y-expectedY)) > 0.001 {
		t.Errorf("QuatFromAxisAngle Y: expected %v, got %v", expectedY, q.Y)
	}
}
