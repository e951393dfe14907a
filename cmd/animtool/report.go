package main

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/skelanim/pkg/anim"
	"github.com/Faultbox/skelanim/pkg/gltfimport"
)

// PoseReport is the document written by sample -format yaml and dump.
type PoseReport struct {
	Model    string        `yaml:"model"`
	Clip     string        `yaml:"clip"`
	State    string        `yaml:"state"`
	Time     float32       `yaml:"time"`
	ClipTime float32       `yaml:"clip_time"`
	Looping  bool          `yaml:"looping"`
	Joints   []JointReport `yaml:"joints"`
}

// JointReport is one joint of a PoseReport. Skin is the palette matrix in
// column-major order.
type JointReport struct {
	Index       int        `yaml:"index"`
	Name        string     `yaml:"name"`
	Parent      int        `yaml:"parent"`
	Translation [3]float32 `yaml:"translation,flow"`
	Rotation    [4]float32 `yaml:"rotation,flow"`
	Scale       [3]float32 `yaml:"scale,flow"`
	World       [3]float32 `yaml:"world,flow"`
	Skin        []float32  `yaml:"skin,flow,omitempty"`
}

func buildReport(model string, ctrl *anim.Controller, clip *anim.Clip, withSkin bool) PoseReport {
	pose := ctrl.CurrentPose()
	skel := ctrl.Skeleton()

	r := PoseReport{
		Model:    model,
		Clip:     clip.Name(),
		State:    ctrl.State().String(),
		Time:     ctrl.CurrentTime(),
		ClipTime: clip.AdjustTimeToFitRange(ctrl.CurrentTime()),
		Looping:  clip.Looping(),
		Joints:   make([]JointReport, pose.Len()),
	}

	var palette anim.Palette
	if withSkin {
		palette = ctrl.PoseMatrices()
	}

	for i := range r.Joints {
		local := pose.Joints[i]
		j := JointReport{
			Index:       i,
			Name:        skel.JointNames[i],
			Parent:      pose.Parents[i],
			Translation: local.Translation.Array(),
			Rotation:    local.Rotation.Array(),
			Scale:       local.Scale.Array(),
			World:       pose.GlobalTransform(i).Translation.Array(),
		}
		if withSkin {
			j.Skin = append([]float32(nil), palette[i][:]...)
		}
		r.Joints[i] = j
	}
	return r
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return enc.Close()
}

func printInfo(w io.Writer, model string, rig *gltfimport.Result) {
	skel := rig.Skeleton

	fmt.Fprintf(w, "Model:  %s\n", model)
	fmt.Fprintf(w, "Joints: %d\n", skel.JointCount())
	fmt.Fprintf(w, "Clips:  %d\n", len(rig.Clips))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Joints:")
	for i, name := range skel.JointNames {
		skinned := ""
		if skel.InverseBindPose[i] != nil {
			skinned = " [skin]"
		}
		fmt.Fprintf(w, "  %3d  %-24s parent %3d%s\n", i, name, skel.RestPose.Parents[i], skinned)
	}

	if len(rig.Clips) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Clips:")
	for i, c := range rig.Clips {
		fmt.Fprintf(w, "  %3d  %-24s %7.3fs  [%.3f, %.3f]  %d tracks\n",
			i, c.Name(), c.Duration(), c.StartTime(), c.EndTime(), len(c.Tracks()))
		for _, tt := range c.Tracks() {
			fmt.Fprintf(w, "         joint %3d %-20s %s\n", tt.Joint, skel.JointNames[tt.Joint], channelSummary(&tt))
		}
	}
}

func channelSummary(tt *anim.TransformTrack) string {
	s := ""
	if tt.Position.Animated() {
		s += fmt.Sprintf(" T:%s/%d", tt.Position.Interpolation, tt.Position.Len())
	}
	if tt.Rotation.Animated() {
		s += fmt.Sprintf(" R:%s/%d", tt.Rotation.Interpolation, tt.Rotation.Len())
	}
	if tt.Scale.Animated() {
		s += fmt.Sprintf(" S:%s/%d", tt.Scale.Interpolation, tt.Scale.Len())
	}
	return s
}

func printPose(w io.Writer, r PoseReport, prec int) {
	fmt.Fprintf(w, "Clip %s at %.*fs (clip time %.*fs, %s)\n",
		r.Clip, prec, r.Time, prec, r.ClipTime, r.State)
	for _, j := range r.Joints {
		fmt.Fprintf(w, "  %3d %-24s T%s R%s S%s\n", j.Index, j.Name,
			formatFloats(j.Translation[:], prec),
			formatFloats(j.Rotation[:], prec),
			formatFloats(j.Scale[:], prec))
	}
}

func printFrame(w io.Writer, frame int, ctrl *anim.Controller, clip *anim.Clip, prec int) {
	pose := ctrl.CurrentPose()
	lo, hi := worldBounds(pose)
	fmt.Fprintf(w, "%5d  t=%.*f  clip=%.*f  bounds %s - %s\n",
		frame, prec, ctrl.CurrentTime(), prec, clip.AdjustTimeToFitRange(ctrl.CurrentTime()),
		formatFloats(lo[:], prec), formatFloats(hi[:], prec))
}

// worldBounds returns the box enclosing every joint origin.
func worldBounds(pose *anim.Pose) (lo, hi [3]float32) {
	if pose.Len() == 0 {
		return lo, hi
	}
	low := pose.GlobalTransform(0).Translation
	high := low
	for i := 1; i < pose.Len(); i++ {
		p := pose.GlobalTransform(i).Translation
		low = low.Min(p)
		high = high.Max(p)
	}
	return low.Array(), high.Array()
}

func formatFloats(v []float32, prec int) string {
	s := "("
	for i, f := range v {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%.*f", prec, f)
	}
	return s + ")"
}
