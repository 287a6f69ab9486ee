// Package vecmath holds the vector and angle primitives shared by the face,
// hand and pose solvers. Every function is pure.
package vecmath

import (
	"math"

	"golang.org/x/exp/constraints"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Clamp restricts v to [lo, hi].
func Clamp[T constraints.Float](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp interpolates from a to b by t.
func Lerp(a, b, t float64) float64 {
	return (b-a)*t + a
}

// LerpVec interpolates from a to b by t, component-wise.
func LerpVec(a, b r3.Vec, t float64) r3.Vec {
	return r3.Add(a, r3.Scale(t, r3.Sub(b, a)))
}

// Remap clamps v into [min, max] and maps it onto [0, 1]. Out of range
// inputs saturate. A reversed range (min > max) maps descending, so min
// still lands on 0. A degenerate range (min == max) yields 0.
func Remap(v, min, max float64) float64 {
	if max == min {
		return 0
	}
	return (Clamp(v, math.Min(min, max), math.Max(min, max)) - min) / (max - min)
}

// Distance returns the Euclidean distance between two 3D points.
func Distance(a, b r3.Vec) float64 {
	return r3.Norm(r3.Sub(a, b))
}

// Distance2D returns the Euclidean distance between two 2D points.
func Distance2D(a, b r2.Vec) float64 {
	return r2.Norm(r2.Sub(a, b))
}

// Unit returns v scaled to length 1. The zero vector has no direction and
// is returned unchanged.
func Unit(v r3.Vec) r3.Vec {
	n := r3.Norm(v)
	if n == 0 {
		return r3.Vec{}
	}
	return r3.Scale(1/n, v)
}

// Unit2D is the 2D counterpart of Unit.
func Unit2D(v r2.Vec) r2.Vec {
	n := r2.Norm(v)
	if n == 0 {
		return r2.Vec{}
	}
	return r2.Scale(1/n, v)
}

// Find2DAngle returns the angle of the ray from (cx, cy) to (ex, ey), in (-π, π].
func Find2DAngle(cx, cy, ex, ey float64) float64 {
	return math.Atan2(ey-cy, ex-cx)
}
