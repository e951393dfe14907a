package gltfimport

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/skelanim/pkg/math"
)

func accessor(doc *gltf.Document, index int) (*gltf.Accessor, error) {
	if index < 0 || index >= len(doc.Accessors) {
		return nil, fmt.Errorf("%w: index %d of %d", ErrUnsupportedAccessor, index, len(doc.Accessors))
	}
	return doc.Accessors[index], nil
}

func read(doc *gltf.Document, acc *gltf.Accessor) (any, error) {
	data, err := modeler.ReadAccessor(doc, acc, nil)
	if err != nil {
		return nil, fmt.Errorf("reading accessor: %w", err)
	}
	return data, nil
}

func readTimes(doc *gltf.Document, index int) ([]float32, error) {
	acc, err := accessor(doc, index)
	if err != nil {
		return nil, err
	}
	data, err := read(doc, acc)
	if err != nil {
		return nil, err
	}
	times, ok := data.([]float32)
	if !ok {
		return nil, fmt.Errorf("%w: keyframe times are %T", ErrUnsupportedAccessor, data)
	}
	return times, nil
}

func readVec3(doc *gltf.Document, acc *gltf.Accessor) ([]math.Vec3, error) {
	data, err := read(doc, acc)
	if err != nil {
		return nil, err
	}
	raw, ok := data.([][3]float32)
	if !ok {
		return nil, fmt.Errorf("%w: vector output is %T", ErrUnsupportedAccessor, data)
	}
	out := make([]math.Vec3, len(raw))
	for i, v := range raw {
		out[i] = math.Vec3FromArray(v)
	}
	return out, nil
}

// readQuat accepts float rotations and the normalized integer encodings
// allowed by KHR_mesh_quantization.
func readQuat(doc *gltf.Document, acc *gltf.Accessor) ([]math.Quat, error) {
	data, err := read(doc, acc)
	if err != nil {
		return nil, err
	}

	switch raw := data.(type) {
	case [][4]float32:
		return convertQuat(raw, func(c float32) float32 { return c }), nil
	case [][4]int8:
		return convertQuat(raw, func(c int8) float32 { return max(float32(c)/127, -1) }), nil
	case [][4]uint8:
		return convertQuat(raw, func(c uint8) float32 { return float32(c) / 255 }), nil
	case [][4]int16:
		return convertQuat(raw, func(c int16) float32 { return max(float32(c)/32767, -1) }), nil
	case [][4]uint16:
		return convertQuat(raw, func(c uint16) float32 { return float32(c) / 65535 }), nil
	}
	return nil, fmt.Errorf("%w: rotation output is %T", ErrUnsupportedAccessor, data)
}

func convertQuat[C float32 | int8 | uint8 | int16 | uint16](raw [][4]C, f func(C) float32) []math.Quat {
	out := make([]math.Quat, len(raw))
	for i, q := range raw {
		out[i] = math.Quat{X: f(q[0]), Y: f(q[1]), Z: f(q[2]), W: f(q[3])}
	}
	return out
}

func readMatrices(doc *gltf.Document, acc *gltf.Accessor) ([]math.Mat4, error) {
	data, err := read(doc, acc)
	if err != nil {
		return nil, err
	}
	raw, ok := data.([][4][4]float32)
	if !ok {
		return nil, fmt.Errorf("%w: matrix data is %T", ErrUnsupportedAccessor, data)
	}
	out := make([]math.Mat4, len(raw))
	for i, cols := range raw {
		out[i] = math.Mat4FromColumns(cols)
	}
	return out, nil
}
