package anim

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/skelanim/pkg/math"
)

// testSkeleton binds root and spine; head has no inverse bind matrix.
func testSkeleton(t *testing.T) *Skeleton {
	t.Helper()
	rest := chainPose()
	ibm := make([]*math.Mat4, 3)
	for i := 0; i < 2; i++ {
		m := rest.GlobalTransform(i).ToMat4().Inverse()
		ibm[i] = &m
	}
	skel, err := NewSkeleton(rest, ibm, []string{"root", "spine", "head"})
	if err != nil {
		t.Fatalf("NewSkeleton() error = %v", err)
	}
	return skel
}

func testController(t *testing.T) *Controller {
	t.Helper()
	c := NewController(testSkeleton(t))

	nod := NewTransformTrack(1)
	nod.Rotation = NewTrack(Linear,
		NewFrame(0, math.QuatIdentity()),
		NewFrame(1, math.QuatFromAxisAngle(math.Vec3{X: 1}, 1)),
	)
	c.AddClip(NewClip("nod", []TransformTrack{nod}))
	c.AddClip(NewClip("slide", []TransformTrack{slideTrack(0, 0, 2)}))
	return c
}

func TestControllerInitialState(t *testing.T) {
	c := testController(t)
	if c.State() != Stopped || c.IsPlaying() {
		t.Errorf("State() = %v, want stopped", c.State())
	}
	if c.CurrentClip() != -1 {
		t.Errorf("CurrentClip() = %d, want -1", c.CurrentClip())
	}
	if c.ClipCount() != 2 {
		t.Errorf("ClipCount() = %d, want 2", c.ClipCount())
	}
	if c.Clip(5) != nil || c.Clip(-1) != nil {
		t.Error("Clip() out of range should return nil")
	}
}

func TestControllerPlayStopCycle(t *testing.T) {
	c := testController(t)

	if err := c.Play(0); err != nil {
		t.Fatalf("Play(0) error = %v", err)
	}
	c.Update(1.0)
	if c.CurrentTime() != 1 {
		t.Errorf("CurrentTime() = %v, want 1", c.CurrentTime())
	}
	if c.CurrentPose().Equal(&c.Skeleton().RestPose) {
		t.Error("pose should differ from rest while playing")
	}

	c.Stop()
	if c.CurrentTime() != 0 {
		t.Errorf("CurrentTime() after Stop = %v, want 0", c.CurrentTime())
	}
	if c.IsPlaying() {
		t.Error("IsPlaying() after Stop should be false")
	}
	if !c.CurrentPose().Equal(&c.Skeleton().RestPose) {
		t.Error("Stop should restore the rest pose")
	}
}

func TestControllerPlayOutOfRange(t *testing.T) {
	c := testController(t)
	if err := c.Play(1); err != nil {
		t.Fatal(err)
	}
	c.Update(0.5)
	before := c.CurrentPose().Clone()

	err := c.Play(c.ClipCount())
	if !errors.Is(err, ErrClipOutOfRange) {
		t.Errorf("Play(ClipCount) error = %v, want ErrClipOutOfRange", err)
	}
	if c.State() != Playing || c.CurrentClip() != 1 || c.CurrentTime() != 0.5 {
		t.Errorf("state changed: %v clip=%d time=%v", c.State(), c.CurrentClip(), c.CurrentTime())
	}
	if !c.CurrentPose().Equal(&before) {
		t.Error("pose changed after invalid Play")
	}

	if err := c.Play(-1); !errors.Is(err, ErrClipOutOfRange) {
		t.Errorf("Play(-1) error = %v", err)
	}
}

func TestControllerPlayByName(t *testing.T) {
	c := testController(t)
	if err := c.PlayByName("slide"); err != nil {
		t.Fatal(err)
	}
	if c.CurrentClip() != 1 {
		t.Errorf("CurrentClip() = %d, want 1", c.CurrentClip())
	}
	if err := c.PlayByName("jump"); !errors.Is(err, ErrClipNotFound) {
		t.Errorf("PlayByName(jump) error = %v, want ErrClipNotFound", err)
	}
	if c.CurrentClip() != 1 || !c.IsPlaying() {
		t.Error("unknown name should leave playback untouched")
	}
}

func TestControllerPauseResume(t *testing.T) {
	c := testController(t)

	c.Pause()
	if c.State() != Stopped {
		t.Errorf("Pause() while stopped: State() = %v", c.State())
	}
	c.Resume()
	if c.State() != Stopped {
		t.Errorf("Resume() while stopped: State() = %v", c.State())
	}

	c.Play(1)
	c.Update(0.5)
	c.Pause()
	if c.State() != Paused {
		t.Fatalf("State() = %v, want paused", c.State())
	}

	frozen := c.CurrentPose().Clone()
	c.Update(0.5)
	if c.CurrentTime() != 0.5 || !c.CurrentPose().Equal(&frozen) {
		t.Error("Update while paused should not advance")
	}

	// The palette falls back to the rest pose while paused.
	pal := c.PoseMatrices()
	rest := c.Skeleton().RestPose
	want := rest.GlobalTransform(0).ToMat4().Mul(*c.Skeleton().InverseBindPose[0])
	if !pal[0].ApproxEqual(want, tol) {
		t.Errorf("paused palette[0] = %v, want rest %v", pal[0], want)
	}
	if !c.CurrentPose().Equal(&frozen) {
		t.Error("PoseMatrices while paused should not touch the current pose")
	}

	c.Resume()
	c.Update(0.5)
	if c.State() != Playing || c.CurrentTime() != 1 {
		t.Errorf("after Resume: %v time=%v", c.State(), c.CurrentTime())
	}
}

func TestControllerTimeIsMonotonic(t *testing.T) {
	c := testController(t)
	c.Play(0)
	for i := 0; i < 5; i++ {
		c.Update(0.75)
	}
	// Clip time wraps, controller time keeps accumulating.
	if !near(c.CurrentTime(), 3.75) {
		t.Errorf("CurrentTime() = %v, want 3.75", c.CurrentTime())
	}
}

func TestPoseMatricesLength(t *testing.T) {
	c := testController(t)
	n := c.Skeleton().JointCount()

	check := func(stage string) {
		t.Helper()
		if got := len(c.PoseMatrices()); got != n {
			t.Errorf("%s: len(PoseMatrices()) = %d, want %d", stage, got, n)
		}
	}

	check("stopped")
	c.Play(0)
	check("playing")
	c.Update(0.3)
	check("updated")
	c.Pause()
	check("paused")
	c.Stop()
	check("stopped again")
}

func TestPoseMatricesRestIsIdentity(t *testing.T) {
	c := testController(t)
	pal := c.PoseMatrices()
	for i, m := range pal {
		if !m.ApproxEqual(math.Identity(), 1e-4) {
			t.Errorf("rest palette[%d] = %v, want identity", i, m)
		}
	}
}

func TestPoseMatricesMissingInverseBind(t *testing.T) {
	c := testController(t)
	c.Play(0)
	c.Update(0.5)
	pal := c.PoseMatrices()
	if pal[2] != math.Identity() {
		t.Errorf("joint without inverse bind: got %v, want identity", pal[2])
	}
}

func TestPaletteConversions(t *testing.T) {
	c := testController(t)
	c.Play(1)
	c.Update(0.25)
	pal := c.PoseMatrices()

	floats := pal.Floats()
	if len(floats) != len(pal)*16 {
		t.Fatalf("len(Floats()) = %d, want %d", len(floats), len(pal)*16)
	}
	mgl := pal.MGL()
	for i := range pal {
		for row := 0; row < 4; row++ {
			for col := 0; col < 4; col++ {
				want := pal[i].At(row, col)
				if got := mgl[i].At(row, col); got != want {
					t.Errorf("MGL()[%d].At(%d,%d) = %v, want %v", i, row, col, got, want)
				}
				if got := floats[i*16+col*4+row]; got != want {
					t.Errorf("Floats()[%d] (%d,%d) = %v, want %v", i, row, col, got, want)
				}
			}
		}
	}

	// The root is bound at X=1 and the slide clip puts it at X=0.25.
	pos := mgl[0].Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if !mgl32.FloatEqualThreshold(pos.X(), -0.75, 1e-4) {
		t.Errorf("skinned origin X = %v, want -0.75", pos.X())
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		s    State
		want string
	}{
		{Stopped, "stopped"},
		{Playing, "playing"},
		{Paused, "paused"},
		{State(9), "state(9)"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", int(tt.s), got, tt.want)
		}
	}
}
