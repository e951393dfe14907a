package anim

import "github.com/Faultbox/skelanim/pkg/math"

// Pose holds the local transform and parent index of every joint.
// Joints and Parents are index-parallel; a parent of -1 marks a root.
type Pose struct {
	Joints  []math.Transform
	Parents []int
}

// NewPose returns n root joints at the identity transform.
func NewPose(n int) Pose {
	p := Pose{}
	p.Resize(n)
	return p
}

// Len returns the joint count.
func (p *Pose) Len() int {
	return len(p.Joints)
}

// Resize grows or shrinks the pose to n joints. Existing joints are kept;
// new joints are identity roots.
func (p *Pose) Resize(n int) {
	old := len(p.Joints)
	if n <= old {
		p.Joints = p.Joints[:n]
		p.Parents = p.Parents[:n]
		return
	}

	joints := make([]math.Transform, n)
	parents := make([]int, n)
	copy(joints, p.Joints)
	copy(parents, p.Parents)
	for i := old; i < n; i++ {
		joints[i] = math.IdentityTransform()
		parents[i] = -1
	}
	p.Joints = joints
	p.Parents = parents
}

// Clone returns a deep copy.
func (p *Pose) Clone() Pose {
	c := Pose{
		Joints:  make([]math.Transform, len(p.Joints)),
		Parents: make([]int, len(p.Parents)),
	}
	copy(c.Joints, p.Joints)
	copy(c.Parents, p.Parents)
	return c
}

// CopyFrom overwrites p with src, reusing p's storage when it is large
// enough.
func (p *Pose) CopyFrom(src *Pose) {
	n := len(src.Joints)
	if cap(p.Joints) >= n && cap(p.Parents) >= n {
		p.Joints = p.Joints[:n]
		p.Parents = p.Parents[:n]
	} else {
		p.Joints = make([]math.Transform, n)
		p.Parents = make([]int, n)
	}
	copy(p.Joints, src.Joints)
	copy(p.Parents, src.Parents)
}

// Equal reports whether both poses have the same hierarchy and bit-identical
// local transforms.
func (p *Pose) Equal(other *Pose) bool {
	if len(p.Joints) != len(other.Joints) || len(p.Parents) != len(other.Parents) {
		return false
	}
	for i := range p.Parents {
		if p.Parents[i] != other.Parents[i] {
			return false
		}
	}
	for i := range p.Joints {
		if p.Joints[i] != other.Joints[i] {
			return false
		}
	}
	return true
}

// Parent returns the parent of joint i.
func (p *Pose) Parent(i int) int {
	return p.Parents[i]
}

// SetParent sets the parent of joint i.
func (p *Pose) SetParent(i, parent int) {
	p.Parents[i] = parent
}

// Local returns the local transform of joint i.
func (p *Pose) Local(i int) math.Transform {
	return p.Joints[i]
}

// SetLocal sets the local transform of joint i.
func (p *Pose) SetLocal(i int, t math.Transform) {
	p.Joints[i] = t
}

// GlobalTransform composes joint i with all of its ancestors.
func (p *Pose) GlobalTransform(i int) math.Transform {
	result := p.Joints[i]
	// A well-formed hierarchy reaches a root in fewer than Len steps.
	for steps, parent := 0, p.Parents[i]; parent >= 0 && steps < len(p.Joints); steps++ {
		result = math.Combine(p.Joints[parent], result)
		parent = p.Parents[parent]
	}
	return result
}

// MatrixPalette writes the global matrix of every joint into dst, growing it
// as needed, and returns it.
func (p *Pose) MatrixPalette(dst []math.Mat4) []math.Mat4 {
	n := len(p.Joints)
	if cap(dst) < n {
		dst = make([]math.Mat4, n)
	}
	dst = dst[:n]
	for i := 0; i < n; i++ {
		dst[i] = p.GlobalTransform(i).ToMat4()
	}
	return dst
}
