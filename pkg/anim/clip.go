package anim

import (
	"go.uber.org/zap"

	"github.com/Faultbox/skelanim/pkg/math"
)

// Clip is a named, time-ranged set of joint tracks. Its range is the union of
// the valid tracks' ranges and is recomputed whenever tracks change.
//
// Sampling never mutates a clip, so one clip may be shared by several
// controllers.
type Clip struct {
	name      string
	tracks    []TransformTrack
	startTime float32
	endTime   float32
	looping   bool
	log       *zap.Logger
}

// NewClip creates a looping clip from tracks.
func NewClip(name string, tracks []TransformTrack, opts ...Option) *Clip {
	o := applyOptions(opts)
	c := &Clip{
		name:    name,
		looping: true,
		log:     o.log,
	}
	c.SetTracks(tracks)
	return c
}

// Name returns the clip name.
func (c *Clip) Name() string { return c.name }

// SetName renames the clip.
func (c *Clip) SetName(name string) { c.name = name }

// Looping reports whether time wraps around the clip range.
func (c *Clip) Looping() bool { return c.looping }

// SetLooping switches between wrapping and clamping playback time.
func (c *Clip) SetLooping(looping bool) { c.looping = looping }

// SetLogger sets where sampling diagnostics go. nil disables them.
func (c *Clip) SetLogger(log *zap.Logger) { c.log = orNop(log) }

// StartTime returns the earliest keyframe time over valid tracks.
func (c *Clip) StartTime() float32 { return c.startTime }

// EndTime returns the latest keyframe time over valid tracks.
func (c *Clip) EndTime() float32 { return c.endTime }

// Duration returns EndTime - StartTime.
func (c *Clip) Duration() float32 { return c.endTime - c.startTime }

// Tracks returns the clip's tracks. The slice must not be modified; use
// AddTrack or SetTracks so the range stays in sync.
func (c *Clip) Tracks() []TransformTrack { return c.tracks }

// Track returns the track animating joint.
func (c *Clip) Track(joint int) (*TransformTrack, bool) {
	for i := range c.tracks {
		if c.tracks[i].Joint == joint {
			return &c.tracks[i], true
		}
	}
	return nil, false
}

// AddTrack adds a track, replacing any existing track for the same joint.
func (c *Clip) AddTrack(track TransformTrack) {
	if existing, ok := c.Track(track.Joint); ok {
		*existing = track
	} else {
		c.tracks = append(c.tracks, track)
	}
	c.RecalculateDuration()
}

// SetTracks replaces all tracks.
func (c *Clip) SetTracks(tracks []TransformTrack) {
	c.tracks = tracks
	c.RecalculateDuration()
}

// RecalculateDuration rebuilds the clip range from its valid tracks.
func (c *Clip) RecalculateDuration() {
	c.startTime, c.endTime = 0, 0
	startSet, endSet := false, false

	for i := range c.tracks {
		tt := &c.tracks[i]
		if !tt.IsValid() {
			continue
		}
		if start := tt.StartTime(); start < c.startTime || !startSet {
			c.startTime, startSet = start, true
		}
		if end := tt.EndTime(); end > c.endTime || !endSet {
			c.endTime, endSet = end, true
		}
	}
}

// AdjustTimeToFitRange wraps time into [start, end) for looping clips and
// clamps it to [start, end] otherwise.
func (c *Clip) AdjustTimeToFitRange(time float32) float32 {
	if c.looping {
		duration := c.Duration()
		if duration <= 0 {
			return 0
		}
		return wrapTime(time, c.startTime, duration)
	}
	return min(max(time, c.startTime), c.endTime)
}

// Sample writes the clip's joints at time into pose, using the joints already
// in pose as the reference for channels the clip does not animate. It
// returns the adjusted time. A clip without duration leaves pose untouched
// and returns 0.
func (c *Clip) Sample(pose *Pose, time float32) float32 {
	if c.Duration() == 0 || pose == nil {
		return 0
	}

	time = c.AdjustTimeToFitRange(time)

	for i := range c.tracks {
		tt := &c.tracks[i]
		j := tt.Joint
		if j < 0 || j >= len(pose.Joints) {
			c.log.Warn("track joint outside pose",
				zap.String("clip", c.name),
				zap.Int("joint", j),
				zap.Int("joints", len(pose.Joints)))
			continue
		}
		pose.Joints[j] = tt.Sample(pose.Joints[j], time, c.looping, c.log)
	}

	return time
}

// SampleTransform evaluates a single joint at time without a pose, starting
// from reference. Joints the clip does not animate return reference.
func (c *Clip) SampleTransform(joint int, reference math.Transform, time float32) math.Transform {
	tt, ok := c.Track(joint)
	if !ok || c.Duration() == 0 {
		return reference
	}
	return tt.Sample(reference, c.AdjustTimeToFitRange(time), c.looping, c.log)
}
