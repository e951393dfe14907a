package anim

import (
	"errors"
	"fmt"

	"github.com/Faultbox/skelanim/pkg/math"
)

var (
	ErrJointCountMismatch = errors.New("skeleton sequences differ in length")
	ErrParentOutOfRange   = errors.New("parent index out of range")
	ErrCyclicHierarchy    = errors.New("joint hierarchy contains a cycle")
)

// Skeleton is the immutable rest description of a rig. RestPose,
// InverseBindPose and JointNames are index-parallel. A nil inverse bind
// matrix marks a joint without skinning influence.
type Skeleton struct {
	RestPose        Pose
	InverseBindPose []*math.Mat4
	JointNames      []string
}

// NewSkeleton validates and assembles a skeleton.
func NewSkeleton(rest Pose, inverseBind []*math.Mat4, names []string) (*Skeleton, error) {
	n := len(rest.Joints)
	if len(rest.Parents) != n || len(inverseBind) != n || len(names) != n {
		return nil, fmt.Errorf("%w: joints=%d parents=%d inverse_bind=%d names=%d",
			ErrJointCountMismatch, n, len(rest.Parents), len(inverseBind), len(names))
	}

	for i, parent := range rest.Parents {
		if parent < -1 || parent >= n || parent == i {
			return nil, fmt.Errorf("%w: joint %d has parent %d", ErrParentOutOfRange, i, parent)
		}
	}

	if joint, ok := findCycle(rest.Parents); ok {
		return nil, fmt.Errorf("%w: at joint %d", ErrCyclicHierarchy, joint)
	}

	return &Skeleton{
		RestPose:        rest,
		InverseBindPose: inverseBind,
		JointNames:      names,
	}, nil
}

// findCycle walks every joint to its root and reports the first joint whose
// walk revisits a joint.
func findCycle(parents []int) (int, bool) {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make([]uint8, len(parents))
	var path []int

	for start := range parents {
		path = path[:0]
		j := start
		for j >= 0 && state[j] == unvisited {
			state[j] = visiting
			path = append(path, j)
			j = parents[j]
		}
		if j >= 0 && state[j] == visiting {
			return j, true
		}
		for _, p := range path {
			state[p] = done
		}
	}
	return 0, false
}

// JointCount returns the number of joints.
func (s *Skeleton) JointCount() int {
	return len(s.RestPose.Joints)
}

// JointIndex returns the index of the joint called name.
func (s *Skeleton) JointIndex(name string) (int, bool) {
	for i, n := range s.JointNames {
		if n == name {
			return i, true
		}
	}
	return -1, false
}

// BindPose returns the global rest transform of every joint.
func (s *Skeleton) BindPose() []math.Transform {
	out := make([]math.Transform, s.JointCount())
	for i := range out {
		out[i] = s.RestPose.GlobalTransform(i)
	}
	return out
}
