package anim

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/skelanim/pkg/math"
)

// Palette is one skinning matrix per joint, in joint order.
type Palette []math.Mat4

// Floats flattens the palette into column-major float32s, 16 per joint,
// ready for a uniform or storage buffer.
func (p Palette) Floats() []float32 {
	out := make([]float32, 0, len(p)*16)
	for i := range p {
		out = append(out, p[i][:]...)
	}
	return out
}

// MGL converts the palette to mathgl matrices. Both layouts are column-major
// so entries map one to one.
func (p Palette) MGL() []mgl32.Mat4 {
	out := make([]mgl32.Mat4, len(p))
	for i := range p {
		out[i] = mgl32.Mat4(p[i])
	}
	return out
}
