package hand

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/ayusman/rigkit/internal/landmark"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func fingers(h Hand) map[string]Finger {
	return map[string]Finger{
		"index":  h.Index,
		"middle": h.Middle,
		"ring":   h.Ring,
		"little": h.Little,
	}
}

func joints(f Finger) map[string]r3.Vec {
	return map[string]r3.Vec{
		"proximal":     f.Proximal,
		"intermediate": f.Intermediate,
		"distal":       f.Distal,
	}
}

func TestSolve_Topology(t *testing.T) {
	_, err := Solve(landmark.OpenPalmHand()[:20], landmark.Right)
	if !errors.Is(err, landmark.ErrTopology) {
		t.Errorf("expected ErrTopology, got %v", err)
	}
}

func TestSolve_Mirrored(t *testing.T) {
	fixtures := map[string]landmark.List{
		"open palm": landmark.OpenPalmHand(),
		"thumbs up": landmark.ThumbsUpHand(),
	}

	for name, l := range fixtures {
		t.Run(name, func(t *testing.T) {
			right, err := Solve(l, landmark.Right)
			if err != nil {
				t.Fatalf("Solve(Right) error: %v", err)
			}
			left, err := Solve(l.MirrorWorld(), landmark.Left)
			if err != nil {
				t.Fatalf("Solve(Left) error: %v", err)
			}

			if !almostEqual(right.Wrist.X, -left.Wrist.X) {
				t.Errorf("wrist x: right %v, left %v", right.Wrist.X, left.Wrist.X)
			}

			rf, lf := fingers(right), fingers(left)
			for fname := range rf {
				rj, lj := joints(rf[fname]), joints(lf[fname])
				for jname := range rj {
					if !almostEqual(rj[jname].Z, -lj[jname].Z) {
						t.Errorf("%s %s z: right %v, left %v", fname, jname, rj[jname].Z, lj[jname].Z)
					}
					if rj[jname].X != 0 || rj[jname].Y != 0 {
						t.Errorf("%s %s should only curl on z, got %+v", fname, jname, rj[jname])
					}
				}
			}

			rt, lt := joints(right.Thumb), joints(left.Thumb)
			for jname := range rt {
				r, l := rt[jname], lt[jname]
				if !almostEqual(r.X, l.X) {
					t.Errorf("thumb %s x: right %v, left %v", jname, r.X, l.X)
				}
				if !almostEqual(r.Y, -l.Y) {
					t.Errorf("thumb %s y: right %v, left %v", jname, r.Y, l.Y)
				}
				if !almostEqual(r.Z, -l.Z) {
					t.Errorf("thumb %s z: right %v, left %v", jname, r.Z, l.Z)
				}
			}
		})
	}
}

func TestSolve_Bounds(t *testing.T) {
	for _, side := range []landmark.Side{landmark.Left, landmark.Right} {
		for _, l := range []landmark.List{landmark.OpenPalmHand(), landmark.ThumbsUpHand()} {
			h, err := Solve(l, side)
			if err != nil {
				t.Fatalf("Solve() error: %v", err)
			}

			if h.Wrist.X < -0.3 || h.Wrist.X > 0.3 {
				t.Errorf("%v wrist x = %v, want within ±0.3", side, h.Wrist.X)
			}
			lo, hi := wristYRange(side)
			if h.Wrist.Y < lo || h.Wrist.Y > hi {
				t.Errorf("%v wrist y = %v, want in [%v, %v]", side, h.Wrist.Y, lo, hi)
			}

			for fname, f := range fingers(h) {
				for jname, j := range joints(f) {
					if side == landmark.Right && (j.Z < -math.Pi || j.Z > 0) {
						t.Errorf("right %s %s z = %v, want in [-π, 0]", fname, jname, j.Z)
					}
					if side == landmark.Left && (j.Z < 0 || j.Z > math.Pi) {
						t.Errorf("left %s %s z = %v, want in [0, π]", fname, jname, j.Z)
					}
				}
			}

			for jname, j := range joints(h.Thumb) {
				for _, v := range []float64{j.X, j.Y, j.Z} {
					if v < -2 || v > 2 || math.IsNaN(v) {
						t.Errorf("%v thumb %s = %+v, want within ±2", side, jname, j)
					}
				}
			}

			if q := h.Quaternion.Len(); math.Abs(q-1) > 1e-6 {
				t.Errorf("quaternion length = %v, want 1", q)
			}
		}
	}
}

func TestSolve_CurledFingersBendFurther(t *testing.T) {
	open, err := Solve(landmark.OpenPalmHand(), landmark.Right)
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	fist, err := Solve(landmark.ThumbsUpHand(), landmark.Right)
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}

	if math.Abs(fist.Index.Intermediate.Z) <= math.Abs(open.Index.Intermediate.Z) {
		t.Errorf("curled index %v should bend further than open index %v",
			fist.Index.Intermediate.Z, open.Index.Intermediate.Z)
	}
}

func TestRigJoint(t *testing.T) {
	tests := []struct {
		name string
		flex float64
		side landmark.Side
		want float64
	}{
		{"right quarter", 0.25, landmark.Right, -math.Pi / 4},
		{"left quarter", 0.25, landmark.Left, math.Pi / 4},
		{"right straight", 0, landmark.Right, 0},
		{"right never bends back", -0.2, landmark.Right, 0},
		{"left never bends back", -0.2, landmark.Left, 0},
		{"right saturates", 1.5, landmark.Right, -math.Pi},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rigJoint(r3.Vec{Z: tt.flex}, tt.side)
			if !almostEqual(got.Z, tt.want) {
				t.Errorf("rigJoint(%v, %v) = %v, want %v", tt.flex, tt.side, got.Z, tt.want)
			}
		})
	}
}

func TestRigThumb_Rest(t *testing.T) {
	// zero flexion leaves the thumb at its start angles, within clamps
	got := rigThumbJoint(r3.Vec{}, thumbIntermediate, 1)
	want := r3.Vec{X: -0.2, Y: 0.1, Z: 0.2}
	if !almostEqual(got.X, want.X) || !almostEqual(got.Y, want.Y) || !almostEqual(got.Z, want.Z) {
		t.Errorf("rigThumbJoint() = %+v, want %+v", got, want)
	}

	prox := rigThumbProximal(r3.Vec{}, landmark.Right)
	if !almostEqual(prox.X, 0.3) || !almostEqual(prox.Y, 0.3) || !almostEqual(prox.Z, 0.2) {
		t.Errorf("rigThumbProximal() = %+v, want (0.3, 0.3, 0.2)", prox)
	}
}

func TestResting(t *testing.T) {
	right := Resting(landmark.Right)
	left := Resting(landmark.Left)

	if right.Side != landmark.Right || left.Side != landmark.Left {
		t.Error("resting hands carry the wrong side")
	}
	if right.Index.Proximal.Z != -0.24 || left.Index.Proximal.Z != 0.24 {
		t.Errorf("index proximal: right %v, left %v", right.Index.Proximal.Z, left.Index.Proximal.Z)
	}
	if right.Wrist != left.Wrist {
		t.Errorf("wrists differ: %+v vs %+v", right.Wrist, left.Wrist)
	}

	// fresh copies every call
	right.Wrist.X = 5
	if Resting(landmark.Right).Wrist.X == 5 {
		t.Error("Resting() returned shared state")
	}
}

func TestRigThumb_Limits(t *testing.T) {
	// full flexion drives every clamped axis to its limit
	const flex = 10

	tests := []struct {
		side landmark.Side
		want r3.Vec
	}{
		{landmark.Right, r3.Vec{X: -0.6, Y: -1, Z: -1}},
		{landmark.Left, r3.Vec{X: -0.6, Y: 1, Z: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.side.String(), func(t *testing.T) {
			got := rigThumbProximal(r3.Vec{Z: flex}, tt.side)
			if !almostEqual(got.X, tt.want.X) || !almostEqual(got.Y, tt.want.Y) || !almostEqual(got.Z, tt.want.Z) {
				t.Errorf("rigThumbProximal() = %+v, want %+v", got, tt.want)
			}

			joint := rigThumbJoint(r3.Vec{Z: flex}, thumbDistal, tt.side.Direction())
			if math.Abs(joint.Y) != thumbJointLimit || math.Abs(joint.Z) != thumbJointLimit {
				t.Errorf("rigThumbJoint() = %+v, want Y and Z at ±%v", joint, thumbJointLimit)
			}
		})
	}

	t.Run("left rest mirrors right", func(t *testing.T) {
		right := rigThumbProximal(r3.Vec{}, landmark.Right)
		left := rigThumbProximal(r3.Vec{}, landmark.Left)
		if left.X != right.X || !almostEqual(left.Y, -right.Y) || !almostEqual(left.Z, -right.Z) {
			t.Errorf("left %+v does not mirror right %+v", left, right)
		}
	})
}
