package anim

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/skelanim/pkg/math"
)

var (
	ErrClipOutOfRange = errors.New("clip index out of range")
	ErrClipNotFound   = errors.New("clip not found")
)

// State is the playback state of a Controller.
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Controller plays clips against one skeleton. Each controller owns its
// working pose; clips may be shared between controllers.
type Controller struct {
	clips       []*Clip
	currentClip int
	currentTime float32
	state       State
	pose        Pose
	skeleton    *Skeleton
	log         *zap.Logger
}

// NewController returns a stopped controller posed at the skeleton's rest
// pose.
func NewController(skeleton *Skeleton, opts ...Option) *Controller {
	o := applyOptions(opts)
	return &Controller{
		currentClip: -1,
		state:       Stopped,
		pose:        skeleton.RestPose.Clone(),
		skeleton:    skeleton,
		log:         o.log,
	}
}

// AddClip registers a clip and returns its index.
func (c *Controller) AddClip(clip *Clip) int {
	c.clips = append(c.clips, clip)
	return len(c.clips) - 1
}

// ClipCount returns the number of registered clips.
func (c *Controller) ClipCount() int { return len(c.clips) }

// Clip returns the clip at index i, or nil.
func (c *Controller) Clip(i int) *Clip {
	if i < 0 || i >= len(c.clips) {
		return nil
	}
	return c.clips[i]
}

// CurrentClip returns the index of the active clip, -1 if none was played.
func (c *Controller) CurrentClip() int { return c.currentClip }

// CurrentTime returns the accumulated playback time in seconds.
func (c *Controller) CurrentTime() float32 { return c.currentTime }

// State returns the playback state.
func (c *Controller) State() State { return c.state }

// IsPlaying reports whether the controller advances on Update.
func (c *Controller) IsPlaying() bool { return c.state == Playing }

// CurrentPose returns the working pose. It is overwritten by Update.
func (c *Controller) CurrentPose() *Pose { return &c.pose }

// Skeleton returns the controlled skeleton.
func (c *Controller) Skeleton() *Skeleton { return c.skeleton }

// Play starts clip index from time zero. An invalid index leaves the
// controller untouched.
func (c *Controller) Play(index int) error {
	if index < 0 || index >= len(c.clips) {
		c.log.Error("clip index out of range",
			zap.Int("index", index),
			zap.Int("clips", len(c.clips)))
		return fmt.Errorf("%w: %d of %d", ErrClipOutOfRange, index, len(c.clips))
	}

	c.currentClip = index
	c.currentTime = 0
	c.state = Playing
	c.resetPose()

	c.log.Debug("play", zap.Int("clip", index), zap.String("name", c.clips[index].Name()))
	return nil
}

// PlayByName starts the first clip called name.
func (c *Controller) PlayByName(name string) error {
	for i, clip := range c.clips {
		if clip.Name() == name {
			return c.Play(i)
		}
	}
	return fmt.Errorf("%w: %q", ErrClipNotFound, name)
}

// Stop rewinds to time zero and restores the rest pose.
func (c *Controller) Stop() {
	c.state = Stopped
	c.currentTime = 0
	c.resetPose()
}

// Pause freezes a playing controller.
func (c *Controller) Pause() {
	if c.state == Playing {
		c.state = Paused
	}
}

// Resume continues a paused controller.
func (c *Controller) Resume() {
	if c.state == Paused {
		c.state = Playing
	}
}

// Update advances playback by dt seconds and re-evaluates the pose.
func (c *Controller) Update(dt float32) {
	if c.state != Playing {
		return
	}
	clip := c.Clip(c.currentClip)
	if clip == nil {
		return
	}

	c.currentTime += dt
	c.resetPose()
	clip.Sample(&c.pose, c.currentTime)
}

// PoseMatrices returns the skinning palette: for every joint, its global
// matrix times its inverse bind matrix. Joints without an inverse bind
// matrix get identity. Unless playing, the controller reports the rest pose.
func (c *Controller) PoseMatrices() Palette {
	pose := &c.pose
	if c.state != Playing {
		pose = &c.skeleton.RestPose
	}

	n := c.skeleton.JointCount()
	palette := make(Palette, n)
	for i := 0; i < n; i++ {
		ibm := c.skeleton.InverseBindPose[i]
		if ibm == nil || i >= pose.Len() {
			palette[i] = math.Identity()
			continue
		}
		palette[i] = pose.GlobalTransform(i).ToMat4().Mul(*ibm)
	}
	return palette
}

func (c *Controller) resetPose() {
	c.pose.CopyFrom(&c.skeleton.RestPose)
}
