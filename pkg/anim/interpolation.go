// Package anim evaluates skeletal animation: keyframe tracks, clips, poses,
// skeleton bindings and the playback controller that turns them into a
// skinning matrix palette.
package anim

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Interpolation selects how a track blends between keyframes.
type Interpolation int

const (
	// Constant holds each keyframe value until the next one.
	Constant Interpolation = iota
	// Linear blends component-wise (nlerp for rotations).
	Linear
	// Cubic uses Hermite splines driven by the frame tangents.
	Cubic
)

// String returns the lowercase name used in config files and reports.
func (i Interpolation) String() string {
	switch i {
	case Constant:
		return "constant"
	case Linear:
		return "linear"
	case Cubic:
		return "cubic"
	default:
		return fmt.Sprintf("Interpolation(%d)", int(i))
	}
}

// ParseInterpolation accepts the names produced by String and the glTF
// sampler names ("step", "cubicspline"), case-insensitively.
func ParseInterpolation(s string) (Interpolation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "constant", "step":
		return Constant, nil
	case "linear":
		return Linear, nil
	case "cubic", "cubicspline":
		return Cubic, nil
	}
	return Constant, fmt.Errorf("unknown interpolation %q", s)
}

// MarshalYAML implements yaml.Marshaler.
func (i Interpolation) MarshalYAML() (interface{}, error) {
	return i.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (i *Interpolation) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseInterpolation(s)
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}
