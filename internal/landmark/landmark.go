// Package landmark defines tracked anatomical points and the fixed tracker
// topologies (face mesh, hand, body pose) that the rig solvers read.
package landmark

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// ErrTopology is returned when a landmark list does not match the tracker
// topology a solver expects (wrong tracker, truncated data).
var ErrTopology = errors.New("landmark topology mismatch")

// Landmark is a single tracked point. X and Y are roughly 0-1 in
// normalized space, Z is depth-like. Visibility and Presence are confidence
// scores in [0,1]; a tracker that does not report them leaves them at 0.
type Landmark struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z"`
	Visibility float64 `json:"visibility,omitempty"`
	Presence   float64 `json:"presence,omitempty"`
}

// Vec returns the landmark position as a 3D vector.
func (l Landmark) Vec() r3.Vec {
	return r3.Vec{X: l.X, Y: l.Y, Z: l.Z}
}

// Vec2 returns the landmark position projected onto the image plane.
func (l Landmark) Vec2() r2.Vec {
	return r2.Vec{X: l.X, Y: l.Y}
}

// List is an ordered landmark sequence. Index membership is a contract with
// the producing tracker.
type List []Landmark

// Vec returns the position of landmark i.
func (l List) Vec(i int) r3.Vec {
	return l[i].Vec()
}

// Vec2 returns the image-plane position of landmark i.
func (l List) Vec2(i int) r2.Vec {
	return l[i].Vec2()
}

// RequireExactly returns an ErrTopology error unless the list holds exactly n points.
func (l List) RequireExactly(n int, what string) error {
	if len(l) != n {
		return fmt.Errorf("%w: %s needs %d landmarks, got %d", ErrTopology, what, n, len(l))
	}
	return nil
}

// RequireAtLeast returns an ErrTopology error if the list holds fewer than n points.
func (l List) RequireAtLeast(n int, what string) error {
	if len(l) < n {
		return fmt.Errorf("%w: %s needs at least %d landmarks, got %d", ErrTopology, what, n, len(l))
	}
	return nil
}

// Mirror returns a copy of the list reflected across the vertical center
// line of the image (x -> 1-x). World-space lists should use MirrorWorld.
func (l List) Mirror() List {
	out := make(List, len(l))
	for i, p := range l {
		p.X = 1 - p.X
		out[i] = p
	}
	return out
}

// MirrorWorld returns a copy of the list reflected across the x=0 plane.
func (l List) MirrorWorld() List {
	out := make(List, len(l))
	for i, p := range l {
		p.X = -p.X
		out[i] = p
	}
	return out
}
