package anim

import (
	"errors"
	"fmt"
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/skelanim/pkg/math"
)

var (
	ErrEmptyTrack  = errors.New("track has no frames")
	ErrInvalidTime = errors.New("sample time is not a number")
)

// Track is the keyframe sequence of one channel. Frames must be sorted by
// ascending time; tracks are built once and only read afterwards.
type Track[T Value] struct {
	Frames        []Frame[T]
	Interpolation Interpolation
}

// Track aliases for the three channel kinds.
type (
	ScalarTrack = Track[float32]
	VectorTrack = Track[math.Vec3]
	QuatTrack   = Track[math.Quat]
)

// NewTrack builds a track from frames already sorted by time.
func NewTrack[T Value](interp Interpolation, frames ...Frame[T]) Track[T] {
	return Track[T]{Frames: frames, Interpolation: interp}
}

// Len returns the number of frames.
func (tr *Track[T]) Len() int {
	return len(tr.Frames)
}

// Animated reports whether the track has enough frames to interpolate.
func (tr *Track[T]) Animated() bool {
	return len(tr.Frames) > 1
}

// StartTime returns the time of the first frame, 0 for an empty track.
func (tr *Track[T]) StartTime() float32 {
	if len(tr.Frames) == 0 {
		return 0
	}
	return tr.Frames[0].Time
}

// EndTime returns the time of the last frame, 0 for an empty track.
func (tr *Track[T]) EndTime() float32 {
	if len(tr.Frames) == 0 {
		return 0
	}
	return tr.Frames[len(tr.Frames)-1].Time
}

// Duration returns EndTime - StartTime.
func (tr *Track[T]) Duration() float32 {
	return tr.EndTime() - tr.StartTime()
}

// wrapTime maps t into [start, start+duration).
func wrapTime(t, start, duration float32) float32 {
	t = float32(gomath.Mod(float64(t-start), float64(duration)))
	if t < 0 {
		t += duration
	}
	return t + start
}

// FrameIndex returns i such that Frames[i].Time <= t < Frames[i+1].Time for
// the looped or clamped time t. The result always leaves room for a next
// frame when the track has two or more frames.
func (tr *Track[T]) FrameIndex(time float32, looping bool) (int, error) {
	n := len(tr.Frames)
	if n == 0 {
		return 0, ErrEmptyTrack
	}
	if n == 1 {
		return 0, nil
	}

	if looping {
		duration := tr.Duration()
		if duration <= 0 {
			return 0, nil
		}
		time = wrapTime(time, tr.StartTime(), duration)
	} else {
		if time <= tr.StartTime() {
			return 0, nil
		}
		if time >= tr.Frames[n-2].Time {
			return n - 2, nil
		}
	}

	for i := n - 1; i >= 0; i-- {
		if time >= tr.Frames[i].Time {
			return min(i, n-2), nil
		}
	}
	return 0, fmt.Errorf("%w: %v", ErrInvalidTime, time)
}

// AdjustToFitTrack applies the same loop or clamp policy as FrameIndex and
// returns the continuous time used for the interpolation fraction.
// Tracks with fewer than two frames or no duration yield 0.
func (tr *Track[T]) AdjustToFitTrack(time float32, looping bool) float32 {
	if len(tr.Frames) <= 1 {
		return 0
	}
	start, end := tr.StartTime(), tr.EndTime()
	duration := end - start
	if duration <= 0 {
		return 0
	}

	if looping {
		return wrapTime(time, start, duration)
	}
	return min(max(time, start), end)
}

// Sample evaluates the track at time. A single-frame track is constant.
// Malformed data (a non-positive gap between frames) is reported through log
// and sampling continues with whatever value the arithmetic produces.
// log may be nil.
func (tr *Track[T]) Sample(time float32, looping bool, log *zap.Logger) (T, error) {
	var zero T
	switch len(tr.Frames) {
	case 0:
		return zero, ErrEmptyTrack
	case 1:
		return tr.Frames[0].Value, nil
	}

	switch tr.Interpolation {
	case Constant:
		return tr.sampleConstant(time, looping)
	case Linear:
		return tr.sampleLinear(time, looping, log)
	default:
		return tr.sampleCubic(time, looping, log)
	}
}

// sampleConstant returns the located frame's value. FrameIndex never
// selects the last frame, so the final key is never reported.
func (tr *Track[T]) sampleConstant(time float32, looping bool) (T, error) {
	i, err := tr.FrameIndex(time, looping)
	if err != nil {
		var zero T
		return zero, err
	}
	return tr.Frames[i].Value, nil
}

// segment locates the frame pair around time and the fraction between them.
func (tr *Track[T]) segment(time float32, looping bool, log *zap.Logger) (i int, t, delta float32, err error) {
	i, err = tr.FrameIndex(time, looping)
	if err != nil {
		return 0, 0, 0, err
	}

	trackTime := tr.AdjustToFitTrack(time, looping)
	thisTime := tr.Frames[i].Time
	delta = tr.Frames[i+1].Time - thisTime
	if delta <= 0 {
		orNop(log).Warn("malformed track: non-positive frame delta",
			zap.Int("frame", i),
			zap.Float32("delta", delta),
			zap.Stringer("interpolation", tr.Interpolation))
	}

	return i, (trackTime - thisTime) / delta, delta, nil
}

func (tr *Track[T]) sampleLinear(time float32, looping bool, log *zap.Logger) (T, error) {
	i, t, _, err := tr.segment(time, looping, log)
	if err != nil {
		var zero T
		return zero, err
	}
	return opsFor[T]().interpolate(tr.Frames[i].Value, tr.Frames[i+1].Value, t), nil
}

func (tr *Track[T]) sampleCubic(time float32, looping bool, log *zap.Logger) (T, error) {
	i, t, delta, err := tr.segment(time, looping, log)
	if err != nil {
		var zero T
		return zero, err
	}

	ops := opsFor[T]()
	this, next := &tr.Frames[i], &tr.Frames[i+1]
	slope1 := ops.scale(this.Out, delta)
	slope2 := ops.scale(next.In, delta)
	return ops.hermite(t, this.Value, slope1, next.Value, slope2), nil
}

func orNop(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}
