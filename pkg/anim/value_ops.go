package anim

import "github.com/Faultbox/skelanim/pkg/math"

// valueOps carries the per-type pieces of the sampling algorithm.
type valueOps[T Value] interface {
	// scale multiplies every component, used for tangent * frame delta.
	scale(v T, s float32) T
	// interpolate blends a to b by t for linear tracks.
	interpolate(a, b T, t float32) T
	// hermite evaluates the cubic segment p1..p2 with slopes s1, s2.
	hermite(t float32, p1, s1, p2, s2 T) T
}

func opsFor[T Value]() valueOps[T] {
	var zero T
	switch any(zero).(type) {
	case float32:
		return any(scalarOps{}).(valueOps[T])
	case math.Vec3:
		return any(vectorOps{}).(valueOps[T])
	default:
		return any(quatOps{}).(valueOps[T])
	}
}

// hermiteBasis returns h1..h4 for parameter t.
func hermiteBasis(t float32) (h1, h2, h3, h4 float32) {
	tt := t * t
	ttt := tt * t
	h1 = 2*ttt - 3*tt + 1
	h2 = -2*ttt + 3*tt
	h3 = ttt - 2*tt + t
	h4 = ttt - tt
	return h1, h2, h3, h4
}

type scalarOps struct{}

func (scalarOps) scale(v float32, s float32) float32 { return v * s }

func (scalarOps) interpolate(a, b float32, t float32) float32 {
	return a + (b-a)*t
}

func (scalarOps) hermite(t float32, p1, s1, p2, s2 float32) float32 {
	h1, h2, h3, h4 := hermiteBasis(t)
	return p1*h1 + p2*h2 + s1*h3 + s2*h4
}

type vectorOps struct{}

func (vectorOps) scale(v math.Vec3, s float32) math.Vec3 { return v.Scale(s) }

func (vectorOps) interpolate(a, b math.Vec3, t float32) math.Vec3 {
	return a.Lerp(b, t)
}

func (vectorOps) hermite(t float32, p1, s1, p2, s2 math.Vec3) math.Vec3 {
	h1, h2, h3, h4 := hermiteBasis(t)
	return p1.Scale(h1).Add(p2.Scale(h2)).Add(s1.Scale(h3)).Add(s2.Scale(h4))
}

type quatOps struct{}

func (quatOps) scale(v math.Quat, s float32) math.Quat { return v.Scale(s) }

func (quatOps) interpolate(a, b math.Quat, t float32) math.Quat {
	return a.NlerpShortest(b, t)
}

func (quatOps) hermite(t float32, p1, s1, p2, s2 math.Quat) math.Quat {
	// Stay in p1's hemisphere so the spline follows the shorter arc.
	if p1.Dot(p2) < 0 {
		p2 = p2.Neg()
	}
	h1, h2, h3, h4 := hermiteBasis(t)
	result := p1.Scale(h1).Add(p2.Scale(h2)).Add(s1.Scale(h3)).Add(s2.Scale(h4))
	return result.Normalize()
}
