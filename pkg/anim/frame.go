package anim

import "github.com/Faultbox/skelanim/pkg/math"

// Value is the set of channel types a track can carry.
type Value interface {
	float32 | math.Vec3 | math.Quat
}

// Frame is a single keyframe. In and Out are the incoming and outgoing
// tangents, only read by cubic tracks.
type Frame[T Value] struct {
	Time  float32
	Value T
	In    T
	Out   T
}

// Frame aliases for the three channel kinds.
type (
	ScalarFrame = Frame[float32]
	VectorFrame = Frame[math.Vec3]
	QuatFrame   = Frame[math.Quat]
)

// NewFrame returns a keyframe with zero tangents.
func NewFrame[T Value](time float32, value T) Frame[T] {
	return Frame[T]{Time: time, Value: value}
}

// NewCubicFrame returns a keyframe with explicit tangents.
func NewCubicFrame[T Value](time float32, in, value, out T) Frame[T] {
	return Frame[T]{Time: time, Value: value, In: in, Out: out}
}
