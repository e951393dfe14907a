package math

// Transform is a translation, rotation and scale triple.
// Applied to a point it scales, then rotates, then translates.
type Transform struct {
	Translation Vec3
	Rotation    Quat
	Scale       Vec3
}

// IdentityTransform returns the transform that leaves points unchanged.
func IdentityTransform() Transform {
	return Transform{
		Translation: Vec3{},
		Rotation:    QuatIdentity(),
		Scale:       Vec3One(),
	}
}

// Combine composes parent and child so that the result maps child-local
// space through child and then parent.
func Combine(parent, child Transform) Transform {
	return Transform{
		Scale:       parent.Scale.Mul(child.Scale),
		Rotation:    parent.Rotation.Mul(child.Rotation),
		Translation: parent.Translation.Add(parent.Rotation.Rotate(parent.Scale.Mul(child.Translation))),
	}
}

// Inverse returns the transform u with Combine(t, u) equal to identity.
// Zero scale components invert to zero.
func (t Transform) Inverse() Transform {
	inv := IdentityTransform()
	inv.Rotation = t.Rotation.Inverse()
	inv.Scale = Vec3{recip(t.Scale.X), recip(t.Scale.Y), recip(t.Scale.Z)}
	inv.Translation = inv.Scale.Mul(inv.Rotation.Rotate(t.Translation.Neg()))
	return inv
}

func recip(v float32) float32 {
	if v == 0 {
		return 0
	}
	return 1 / v
}

// TransformPoint applies scale, rotation and translation to p.
func (t Transform) TransformPoint(p Vec3) Vec3 {
	return t.Translation.Add(t.Rotation.Rotate(t.Scale.Mul(p)))
}

// TransformVector applies scale and rotation to v.
func (t Transform) TransformVector(v Vec3) Vec3 {
	return t.Rotation.Rotate(t.Scale.Mul(v))
}

// Lerp blends two transforms; rotation uses shortest-path nlerp.
func (t Transform) Lerp(other Transform, f float32) Transform {
	return Transform{
		Translation: t.Translation.Lerp(other.Translation, f),
		Rotation:    t.Rotation.NlerpShortest(other.Rotation, f),
		Scale:       t.Scale.Lerp(other.Scale, f),
	}
}

// ToMat4 builds the equivalent column-major matrix, translate * rotate * scale.
func (t Transform) ToMat4() Mat4 {
	p, s := t.Translation, t.Scale
	return Translate(p.X, p.Y, p.Z).Mul(t.Rotation.ToMat4()).Mul(Scale(s.X, s.Y, s.Z))
}

// TransformFromMat4 decomposes an affine matrix into a Transform.
// Shear is dropped; a mirrored basis is folded into a negative X scale.
func TransformFromMat4(m Mat4) Transform {
	x := Vec3{m[0], m[1], m[2]}
	y := Vec3{m[4], m[5], m[6]}
	z := Vec3{m[8], m[9], m[10]}

	scale := Vec3{x.Length(), y.Length(), z.Length()}
	if x.Cross(y).Dot(z) < 0 {
		scale.X = -scale.X
	}

	rot := Identity()
	if scale.X != 0 {
		x = x.Scale(1 / scale.X)
	}
	if scale.Y != 0 {
		y = y.Scale(1 / scale.Y)
	}
	if scale.Z != 0 {
		z = z.Scale(1 / scale.Z)
	}
	rot[0], rot[1], rot[2] = x.X, x.Y, x.Z
	rot[4], rot[5], rot[6] = y.X, y.Y, y.Z
	rot[8], rot[9], rot[10] = z.X, z.Y, z.Z

	return Transform{
		Translation: Vec3{m[12], m[13], m[14]},
		Rotation:    rot.ToQuat(),
		Scale:       scale,
	}
}

// ApproxEqual compares all three components; rotations q and -q match.
func (t Transform) ApproxEqual(other Transform, eps float32) bool {
	return t.Translation.ApproxEqual(other.Translation, eps) &&
		t.Scale.ApproxEqual(other.Scale, eps) &&
		t.Rotation.SameRotation(other.Rotation, eps)
}
