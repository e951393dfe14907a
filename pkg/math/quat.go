package math

import "math"

// Quat represents a quaternion for 3D rotations.
// Components are stored as X, Y, Z, W where W is the scalar part.
// A Quat is not kept normalized; call Normalize where exactness matters.
type Quat struct {
	X, Y, Z, W float32
}

// QuatIdentity returns an identity quaternion (no rotation).
func QuatIdentity() Quat {
	return Quat{X: 0, Y: 0, Z: 0, W: 1}
}

// QuatFromArray builds a quaternion from [x, y, z, w].
func QuatFromArray(a [4]float32) Quat {
	return Quat{X: a[0], Y: a[1], Z: a[2], W: a[3]}
}

// QuatFromAxisAngle creates a quaternion from axis-angle rotation.
// The axis is normalized here, angle is in radians.
func QuatFromAxisAngle(axis Vec3, angle float32) Quat {
	axis = axis.Normalize()
	halfAngle := angle / 2
	s := float32(math.Sin(float64(halfAngle)))
	return Quat{
		X: axis.X * s,
		Y: axis.Y * s,
		Z: axis.Z * s,
		W: float32(math.Cos(float64(halfAngle))),
	}
}

// Array returns [x, y, z, w].
func (q Quat) Array() [4]float32 {
	return [4]float32{q.X, q.Y, q.Z, q.W}
}

// Length returns the quaternion norm.
func (q Quat) Length() float32 {
	return sqrtf(q.Dot(q))
}

// Normalize returns a normalized quaternion.
// Near-zero quaternions collapse to identity.
func (q Quat) Normalize() Quat {
	length := q.Length()
	if length < 0.0001 {
		return QuatIdentity()
	}
	invLen := 1.0 / length
	return Quat{
		X: q.X * invLen,
		Y: q.Y * invLen,
		Z: q.Z * invLen,
		W: q.W * invLen,
	}
}

// Dot returns the dot product of two quaternions.
func (q Quat) Dot(other Quat) float32 {
	return q.X*other.X + q.Y*other.Y + q.Z*other.Z + q.W*other.W
}

// Add returns the component-wise sum.
func (q Quat) Add(other Quat) Quat {
	return Quat{q.X + other.X, q.Y + other.Y, q.Z + other.Z, q.W + other.W}
}

// Sub returns the component-wise difference.
func (q Quat) Sub(other Quat) Quat {
	return Quat{q.X - other.X, q.Y - other.Y, q.Z - other.Z, q.W - other.W}
}

// Scale multiplies every component by s.
func (q Quat) Scale(s float32) Quat {
	return Quat{q.X * s, q.Y * s, q.Z * s, q.W * s}
}

// Neg returns -q, which encodes the same rotation.
func (q Quat) Neg() Quat {
	return Quat{-q.X, -q.Y, -q.Z, -q.W}
}

// Conjugate returns the conjugate (negated vector part).
func (q Quat) Conjugate() Quat {
	return Quat{-q.X, -q.Y, -q.Z, q.W}
}

// Inverse returns the multiplicative inverse.
// Returns identity for a zero quaternion.
func (q Quat) Inverse() Quat {
	lenSq := q.Dot(q)
	if lenSq == 0 {
		return QuatIdentity()
	}
	return q.Conjugate().Scale(1 / lenSq)
}

// Mul multiplies two quaternions (combines rotations).
// The result applies other first, then q.
func (q Quat) Mul(other Quat) Quat {
	return Quat{
		X: q.W*other.X + q.X*other.W + q.Y*other.Z - q.Z*other.Y,
		Y: q.W*other.Y - q.X*other.Z + q.Y*other.W + q.Z*other.X,
		Z: q.W*other.Z + q.X*other.Y - q.Y*other.X + q.Z*other.W,
		W: q.W*other.W - q.X*other.X - q.Y*other.Y - q.Z*other.Z,
	}
}

// Rotate rotates v by q, equivalent to (q * v * q^-1).xyz for a unit q.
func (q Quat) Rotate(v Vec3) Vec3 {
	u := Vec3{q.X, q.Y, q.Z}
	a := u.Scale(2 * u.Dot(v))
	b := v.Scale(q.W*q.W - u.Dot(u))
	c := u.Cross(v).Scale(2 * q.W)
	return a.Add(b).Add(c)
}

// Lerp performs component-wise linear interpolation without normalizing.
func (q Quat) Lerp(other Quat, t float32) Quat {
	return Quat{
		X: q.X + t*(other.X-q.X),
		Y: q.Y + t*(other.Y-q.Y),
		Z: q.Z + t*(other.Z-q.Z),
		W: q.W + t*(other.W-q.W),
	}
}

// Nlerp performs normalized linear interpolation.
// No neighborhood correction is applied; see NlerpShortest.
func (q Quat) Nlerp(other Quat, t float32) Quat {
	return q.Lerp(other, t).Normalize()
}

// NlerpShortest is Nlerp along the shorter arc: other is negated when
// the two quaternions lie in opposite hemispheres.
func (q Quat) NlerpShortest(other Quat, t float32) Quat {
	if q.Dot(other) < 0 {
		other = other.Neg()
	}
	return q.Nlerp(other, t)
}

// Slerp performs spherical linear interpolation between two quaternions.
// t should be in range [0, 1].
func (q Quat) Slerp(other Quat, t float32) Quat {
	dot := q.Dot(other)

	// Shorter path
	if dot < 0 {
		other = other.Neg()
		dot = -dot
	}

	// Nearly parallel: sin(theta) tends to zero
	if dot > 0.9995 {
		return q.Nlerp(other, t)
	}

	theta0 := float32(math.Acos(float64(dot)))
	theta := theta0 * t
	sinTheta := float32(math.Sin(float64(theta)))
	sinTheta0 := float32(math.Sin(float64(theta0)))

	s0 := float32(math.Cos(float64(theta))) - dot*sinTheta/sinTheta0
	s1 := sinTheta / sinTheta0

	return q.Scale(s0).Add(other.Scale(s1))
}

// ToMat4 converts the quaternion to a 4x4 rotation matrix.
func (q Quat) ToMat4() Mat4 {
	q = q.Normalize()

	xx := q.X * q.X
	xy := q.X * q.Y
	xz := q.X * q.Z
	xw := q.X * q.W
	yy := q.Y * q.Y
	yz := q.Y * q.Z
	yw := q.Y * q.W
	zz := q.Z * q.Z
	zw := q.Z * q.W

	return Mat4{
		1 - 2*(yy+zz), 2 * (xy + zw), 2 * (xz - yw), 0,
		2 * (xy - zw), 1 - 2*(xx+zz), 2 * (yz + xw), 0,
		2 * (xz + yw), 2 * (yz - xw), 1 - 2*(xx+yy), 0,
		0, 0, 0, 1,
	}
}

// ApproxEqual compares component-wise. q and -q are NOT considered equal;
// use SameRotation for that.
func (q Quat) ApproxEqual(other Quat, eps float32) bool {
	return approx(q.X, other.X, eps) && approx(q.Y, other.Y, eps) &&
		approx(q.Z, other.Z, eps) && approx(q.W, other.W, eps)
}

// SameRotation reports whether q and other encode the same rotation.
func (q Quat) SameRotation(other Quat, eps float32) bool {
	return q.ApproxEqual(other, eps) || q.ApproxEqual(other.Neg(), eps)
}
