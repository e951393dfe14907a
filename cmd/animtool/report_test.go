package main

import (
	"bytes"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/skelanim/pkg/anim"
	"github.com/Faultbox/skelanim/pkg/math"
)

func testRig(t *testing.T) (*anim.Controller, *anim.Clip) {
	t.Helper()
	rest := anim.NewPose(2)
	rest.Parents[1] = 0
	rest.Joints[1].Translation = math.Vec3{Y: 1}

	ibm := math.Identity()
	skel, err := anim.NewSkeleton(rest, []*math.Mat4{&ibm, nil}, []string{"root", "tip"})
	if err != nil {
		t.Fatal(err)
	}

	tt := anim.NewTransformTrack(0)
	tt.Position = anim.NewTrack(anim.Linear,
		anim.NewFrame(0, math.Vec3{}),
		anim.NewFrame(2, math.Vec3{X: 2}),
	)
	clip := anim.NewClip("slide", []anim.TransformTrack{tt})

	ctrl := anim.NewController(skel)
	ctrl.AddClip(clip)
	if err := ctrl.Play(0); err != nil {
		t.Fatal(err)
	}
	return ctrl, clip
}

func TestBuildReport(t *testing.T) {
	ctrl, clip := testRig(t)
	ctrl.Update(2.5)

	r := buildReport("rig.glb", ctrl, clip, true)
	if r.Clip != "slide" || r.State != "playing" {
		t.Errorf("report header = %+v", r)
	}
	if r.Time != 2.5 || r.ClipTime != 0.5 {
		t.Errorf("time = %v, clip time = %v; want 2.5, 0.5", r.Time, r.ClipTime)
	}
	if len(r.Joints) != 2 {
		t.Fatalf("len(Joints) = %d, want 2", len(r.Joints))
	}
	if r.Joints[1].World != [3]float32{0.5, 1, 0} {
		t.Errorf("tip world = %v, want [0.5 1 0]", r.Joints[1].World)
	}
	if len(r.Joints[0].Skin) != 16 || len(r.Joints[1].Skin) != 16 {
		t.Error("every joint should carry a skin matrix")
	}

	var buf bytes.Buffer
	if err := writeYAML(&buf, r); err != nil {
		t.Fatal(err)
	}
	var decoded PoseReport
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("report is not valid YAML: %v", err)
	}
	if decoded.Joints[1].Name != "tip" || decoded.Joints[1].Parent != 0 {
		t.Errorf("decoded joint = %+v", decoded.Joints[1])
	}
}

func TestPrintPose(t *testing.T) {
	ctrl, clip := testRig(t)
	ctrl.Update(1)

	var buf bytes.Buffer
	printPose(&buf, buildReport("rig.glb", ctrl, clip, false), 2)
	out := buf.String()
	if !strings.Contains(out, "root") || !strings.Contains(out, "T(1.00, 0.00, 0.00)") {
		t.Errorf("unexpected pose output:\n%s", out)
	}
}

func TestWorldBounds(t *testing.T) {
	ctrl, _ := testRig(t)
	ctrl.Update(1)
	lo, hi := worldBounds(ctrl.CurrentPose())
	if lo != [3]float32{1, 0, 0} || hi != [3]float32{1, 1, 0} {
		t.Errorf("bounds = %v - %v", lo, hi)
	}
}

func TestFormatFloats(t *testing.T) {
	if got := formatFloats([]float32{1, -0.5}, 3); got != "(1.000, -0.500)" {
		t.Errorf("formatFloats = %q", got)
	}
}
