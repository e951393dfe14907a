package anim

import (
	"go.uber.org/zap"

	"github.com/Faultbox/skelanim/pkg/math"
)

// TransformTrack animates the local transform of one joint. A channel with
// fewer than two frames is not animated and keeps the reference value.
type TransformTrack struct {
	Joint    int
	Position VectorTrack
	Rotation QuatTrack
	Scale    VectorTrack
}

// NewTransformTrack returns an empty track for joint with linear channels.
func NewTransformTrack(joint int) TransformTrack {
	return TransformTrack{
		Joint:    joint,
		Position: VectorTrack{Interpolation: Linear},
		Rotation: QuatTrack{Interpolation: Linear},
		Scale:    VectorTrack{Interpolation: Linear},
	}
}

// IsValid reports whether at least one channel is animated.
func (tt *TransformTrack) IsValid() bool {
	return tt.Position.Animated() || tt.Rotation.Animated() || tt.Scale.Animated()
}

// StartTime returns the earliest start among animated channels.
func (tt *TransformTrack) StartTime() float32 {
	start, set := float32(0), false
	for _, s := range tt.animatedRanges() {
		if !set || s[0] < start {
			start, set = s[0], true
		}
	}
	return start
}

// EndTime returns the latest end among animated channels.
func (tt *TransformTrack) EndTime() float32 {
	end, set := float32(0), false
	for _, s := range tt.animatedRanges() {
		if !set || s[1] > end {
			end, set = s[1], true
		}
	}
	return end
}

func (tt *TransformTrack) animatedRanges() [][2]float32 {
	ranges := make([][2]float32, 0, 3)
	if tt.Position.Animated() {
		ranges = append(ranges, [2]float32{tt.Position.StartTime(), tt.Position.EndTime()})
	}
	if tt.Rotation.Animated() {
		ranges = append(ranges, [2]float32{tt.Rotation.StartTime(), tt.Rotation.EndTime()})
	}
	if tt.Scale.Animated() {
		ranges = append(ranges, [2]float32{tt.Scale.StartTime(), tt.Scale.EndTime()})
	}
	return ranges
}

// Sample starts from reference and overwrites the animated components.
func (tt *TransformTrack) Sample(reference math.Transform, time float32, looping bool, log *zap.Logger) math.Transform {
	result := reference

	if tt.Position.Animated() {
		if v, err := tt.Position.Sample(time, looping, log); err == nil {
			result.Translation = v
		} else {
			orNop(log).Warn("position sample failed", zap.Int("joint", tt.Joint), zap.Error(err))
		}
	}

	if tt.Rotation.Animated() {
		if q, err := tt.Rotation.Sample(time, looping, log); err == nil {
			result.Rotation = q
		} else {
			orNop(log).Warn("rotation sample failed", zap.Int("joint", tt.Joint), zap.Error(err))
		}
	}

	if tt.Scale.Animated() {
		if v, err := tt.Scale.Sample(time, looping, log); err == nil {
			result.Scale = v
		} else {
			orNop(log).Warn("scale sample failed", zap.Int("joint", tt.Joint), zap.Error(err))
		}
	}

	return result
}
