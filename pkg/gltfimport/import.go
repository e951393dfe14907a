// Package gltfimport builds skeletons and animation clips from glTF 2.0
// documents.
//
// Every node of the document becomes a joint, so node indices and joint
// indices are interchangeable. Joints listed by the selected skin receive
// their inverse bind matrices; all other joints have none.
package gltfimport

import (
	"errors"
	"fmt"

	"github.com/qmuntal/gltf"
	"go.uber.org/zap"

	"github.com/Faultbox/skelanim/pkg/anim"
	"github.com/Faultbox/skelanim/pkg/math"
)

var (
	ErrNoNodes             = errors.New("document has no nodes")
	ErrNodeOutOfRange      = errors.New("node index out of range")
	ErrSkinOutOfRange      = errors.New("skin index out of range")
	ErrUnsupportedAccessor = errors.New("unsupported accessor")
	ErrSamplerMismatch     = errors.New("sampler input and output counts differ")
)

// Result is an imported rig.
type Result struct {
	Skeleton *anim.Skeleton
	Clips    []*anim.Clip
}

// Clip returns the first clip called name.
func (r *Result) Clip(name string) (*anim.Clip, bool) {
	for _, c := range r.Clips {
		if c.Name() == name {
			return c, true
		}
	}
	return nil, false
}

// Option configures an import.
type Option func(*options)

type options struct {
	skin    int
	skinSet bool
	log     *zap.Logger
}

// WithSkin selects which skin provides inverse bind matrices. Without it the
// first skin is used, if any.
func WithSkin(index int) Option {
	return func(o *options) {
		o.skin = index
		o.skinSet = true
	}
}

// WithLogger routes import and sampling diagnostics to log.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}

// Open reads a .gltf or .glb file and imports it.
func Open(path string, opts ...Option) (*Result, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return Import(doc, opts...)
}

// Import converts an in-memory document.
func Import(doc *gltf.Document, opts ...Option) (*Result, error) {
	o := options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = zap.NewNop()
	}

	skel, err := importSkeleton(doc, &o)
	if err != nil {
		return nil, err
	}

	res := &Result{Skeleton: skel}
	for i, a := range doc.Animations {
		clip, err := importClip(doc, i, a, &o)
		if err != nil {
			return nil, fmt.Errorf("animation %d: %w", i, err)
		}
		res.Clips = append(res.Clips, clip)
	}

	o.log.Debug("imported document",
		zap.Int("joints", skel.JointCount()),
		zap.Int("clips", len(res.Clips)))
	return res, nil
}

var identityMatrix = [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

func importSkeleton(doc *gltf.Document, o *options) (*anim.Skeleton, error) {
	n := len(doc.Nodes)
	if n == 0 {
		return nil, ErrNoNodes
	}

	rest := anim.NewPose(n)
	names := make([]string, n)

	for i, node := range doc.Nodes {
		names[i] = node.Name
		if names[i] == "" {
			names[i] = fmt.Sprintf("node_%d", i)
		}
		rest.Joints[i] = nodeTransform(node)

		for _, child := range node.Children {
			if child < 0 || child >= n {
				return nil, fmt.Errorf("%w: node %d lists child %d", ErrNodeOutOfRange, i, child)
			}
			rest.Parents[child] = i
		}
	}

	inverseBind, err := importInverseBind(doc, o)
	if err != nil {
		return nil, err
	}

	skel, err := anim.NewSkeleton(rest, inverseBind, names)
	if err != nil {
		return nil, fmt.Errorf("building skeleton: %w", err)
	}
	return skel, nil
}

func nodeTransform(node *gltf.Node) math.Transform {
	if m := node.MatrixOrDefault(); m != identityMatrix {
		var mat math.Mat4
		for i := range mat {
			mat[i] = float32(m[i])
		}
		return math.TransformFromMat4(mat)
	}

	t := node.TranslationOrDefault()
	r := node.RotationOrDefault()
	s := node.ScaleOrDefault()
	return math.Transform{
		Translation: math.Vec3{X: float32(t[0]), Y: float32(t[1]), Z: float32(t[2])},
		Rotation:    math.Quat{X: float32(r[0]), Y: float32(r[1]), Z: float32(r[2]), W: float32(r[3])}.Normalize(),
		Scale:       math.Vec3{X: float32(s[0]), Y: float32(s[1]), Z: float32(s[2])},
	}
}

func importInverseBind(doc *gltf.Document, o *options) ([]*math.Mat4, error) {
	out := make([]*math.Mat4, len(doc.Nodes))

	if len(doc.Skins) == 0 && !o.skinSet {
		o.log.Debug("document has no skin, palette will be identity")
		return out, nil
	}
	if o.skin < 0 || o.skin >= len(doc.Skins) {
		return nil, fmt.Errorf("%w: %d of %d", ErrSkinOutOfRange, o.skin, len(doc.Skins))
	}
	skin := doc.Skins[o.skin]

	var matrices []math.Mat4
	if skin.InverseBindMatrices != nil {
		acc, err := accessor(doc, *skin.InverseBindMatrices)
		if err != nil {
			return nil, err
		}
		matrices, err = readMatrices(doc, acc)
		if err != nil {
			return nil, fmt.Errorf("inverse bind matrices: %w", err)
		}
		if len(matrices) < len(skin.Joints) {
			return nil, fmt.Errorf("%w: %d inverse bind matrices for %d joints",
				ErrUnsupportedAccessor, len(matrices), len(skin.Joints))
		}
	}

	for i, joint := range skin.Joints {
		if joint < 0 || joint >= len(out) {
			return nil, fmt.Errorf("%w: skin %d joint %d", ErrNodeOutOfRange, o.skin, joint)
		}
		m := math.Identity()
		if matrices != nil {
			m = matrices[i]
		}
		out[joint] = &m
	}
	return out, nil
}

func importClip(doc *gltf.Document, index int, a *gltf.Animation, o *options) (*anim.Clip, error) {
	name := a.Name
	if name == "" {
		name = fmt.Sprintf("animation_%d", index)
	}

	tracks := make(map[int]*anim.TransformTrack)
	var order []int

	for ci, ch := range a.Channels {
		if ch.Target.Node == nil {
			o.log.Debug("skipping channel without target node",
				zap.String("clip", name), zap.Int("channel", ci))
			continue
		}
		switch ch.Target.Path {
		case gltf.TRSTranslation, gltf.TRSRotation, gltf.TRSScale:
		default:
			o.log.Debug("skipping morph weights channel",
				zap.String("clip", name), zap.Int("channel", ci))
			continue
		}
		if ch.Sampler < 0 || ch.Sampler >= len(a.Samplers) {
			return nil, fmt.Errorf("%w: channel %d sampler %d", ErrSamplerMismatch, ci, ch.Sampler)
		}

		joint := *ch.Target.Node
		if joint < 0 || joint >= len(doc.Nodes) {
			return nil, fmt.Errorf("%w: channel %d targets node %d", ErrNodeOutOfRange, ci, joint)
		}

		tt, ok := tracks[joint]
		if !ok {
			t := anim.NewTransformTrack(joint)
			tt = &t
			tracks[joint] = tt
			order = append(order, joint)
		}

		sampler := a.Samplers[ch.Sampler]
		var err error
		switch ch.Target.Path {
		case gltf.TRSTranslation:
			tt.Position, err = vectorTrack(doc, sampler)
		case gltf.TRSScale:
			tt.Scale, err = vectorTrack(doc, sampler)
		case gltf.TRSRotation:
			tt.Rotation, err = rotationTrack(doc, sampler)
		}
		if err != nil {
			return nil, fmt.Errorf("channel %d: %w", ci, err)
		}
	}

	list := make([]anim.TransformTrack, 0, len(order))
	for _, joint := range order {
		list = append(list, *tracks[joint])
	}

	clip := anim.NewClip(name, list, anim.WithLogger(o.log))
	o.log.Debug("imported clip",
		zap.String("clip", name),
		zap.Int("tracks", len(list)),
		zap.Float32("duration", clip.Duration()))
	return clip, nil
}

func interpolation(i gltf.Interpolation) anim.Interpolation {
	switch i {
	case gltf.InterpolationStep:
		return anim.Constant
	case gltf.InterpolationCubicSpline:
		return anim.Cubic
	default:
		return anim.Linear
	}
}

// keyCount checks the output length against the input times. Cubic samplers
// store an in-tangent, value and out-tangent per key.
func keyCount(times int, outputs int, interp anim.Interpolation) error {
	want := times
	if interp == anim.Cubic {
		want *= 3
	}
	if outputs != want {
		return fmt.Errorf("%w: %d inputs, %d outputs, want %d", ErrSamplerMismatch, times, outputs, want)
	}
	return nil
}

func vectorTrack(doc *gltf.Document, s *gltf.AnimationSampler) (anim.VectorTrack, error) {
	interp := interpolation(s.Interpolation)
	times, err := readTimes(doc, s.Input)
	if err != nil {
		return anim.VectorTrack{}, err
	}
	acc, err := accessor(doc, s.Output)
	if err != nil {
		return anim.VectorTrack{}, err
	}
	values, err := readVec3(doc, acc)
	if err != nil {
		return anim.VectorTrack{}, err
	}
	if err := keyCount(len(times), len(values), interp); err != nil {
		return anim.VectorTrack{}, err
	}
	return buildTrack(interp, times, values), nil
}

func rotationTrack(doc *gltf.Document, s *gltf.AnimationSampler) (anim.QuatTrack, error) {
	interp := interpolation(s.Interpolation)
	times, err := readTimes(doc, s.Input)
	if err != nil {
		return anim.QuatTrack{}, err
	}
	acc, err := accessor(doc, s.Output)
	if err != nil {
		return anim.QuatTrack{}, err
	}
	values, err := readQuat(doc, acc)
	if err != nil {
		return anim.QuatTrack{}, err
	}
	if err := keyCount(len(times), len(values), interp); err != nil {
		return anim.QuatTrack{}, err
	}
	return buildTrack(interp, times, values), nil
}

func buildTrack[T anim.Value](interp anim.Interpolation, times []float32, values []T) anim.Track[T] {
	frames := make([]anim.Frame[T], len(times))
	for i, t := range times {
		if interp == anim.Cubic {
			frames[i] = anim.NewCubicFrame(t, values[3*i], values[3*i+1], values[3*i+2])
		} else {
			frames[i] = anim.NewFrame(t, values[i])
		}
	}
	return anim.NewTrack(interp, frames...)
}
