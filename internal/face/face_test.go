package face

import (
	"errors"
	"math"
	"testing"

	"github.com/ayusman/rigkit/internal/landmark"
)

const epsilon = 1e-6

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestSolve_Topology(t *testing.T) {
	_, err := Solve(make(landmark.List, 100), DefaultOptions())
	if !errors.Is(err, landmark.ErrTopology) {
		t.Errorf("expected ErrTopology, got %v", err)
	}
}

func TestSolve_NeutralFace(t *testing.T) {
	f, err := Solve(landmark.NeutralFace(true), DefaultOptions())
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}

	t.Run("head faces the camera", func(t *testing.T) {
		for name, v := range map[string]float64{"x": f.Head.X, "y": f.Head.Y, "z": f.Head.Z} {
			if !almostEqual(v, 0) {
				t.Errorf("head %s = %v, want 0", name, v)
			}
		}
		if !almostEqual(f.Head.Width, 0.3) {
			t.Errorf("head width = %v, want 0.3", f.Head.Width)
		}
		if !almostEqual(f.Head.Height, 0.45) {
			t.Errorf("head height = %v, want 0.45", f.Head.Height)
		}
		if !almostEqual(f.Head.Position.X, 0.5) || !almostEqual(f.Head.Position.Y, 0.525) {
			t.Errorf("head position = %+v, want (0.5, 0.525)", f.Head.Position)
		}
	})

	t.Run("eyes open", func(t *testing.T) {
		if f.Eyes.Left != 1 || f.Eyes.Right != 1 {
			t.Errorf("eyes = %+v, want fully open", f.Eyes)
		}
	})

	t.Run("brow", func(t *testing.T) {
		// outline ratio 1.26 -> 1.26/1.15-1 remapped over [0.07, 0.125]
		want := (1.26/1.15 - 1 - 0.07) / 0.055
		if math.Abs(f.Brow-want) > 1e-3 {
			t.Errorf("brow = %v, want %v", f.Brow, want)
		}
	})

	t.Run("pupils centered", func(t *testing.T) {
		if !almostEqual(f.Pupils.X, 0) || !almostEqual(f.Pupils.Y, 0) {
			t.Errorf("pupils = %+v, want (0, 0)", f.Pupils)
		}
	})

	t.Run("mouth", func(t *testing.T) {
		// open 0.03 over inner eye distance 0.08
		wantY := (0.375 - 0.15) / 0.55
		if !almostEqual(f.Mouth.Y, wantY) {
			t.Errorf("mouth y = %v, want %v", f.Mouth.Y, wantY)
		}
		// width 0.12 over outer eye distance 0.24
		wantX := ((0.5-0.45)/0.45 - 0.3) * 2
		if !almostEqual(f.Mouth.X, wantX) {
			t.Errorf("mouth x = %v, want %v", f.Mouth.X, wantX)
		}
		if f.Mouth.Shape.A <= 0 {
			t.Errorf("open mouth should weigh A, got %+v", f.Mouth.Shape)
		}
	})
}

func TestSolve_WithoutIris(t *testing.T) {
	f, err := Solve(landmark.NeutralFace(false), DefaultOptions())
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	if f.Eyes.Left != 1 || f.Eyes.Right != 1 {
		t.Errorf("eyes = %+v, want fully open", f.Eyes)
	}
	if f.Brow != 0 {
		t.Errorf("brow = %v, want 0", f.Brow)
	}
	if f.Pupils.X != 0 || f.Pupils.Y != 0 {
		t.Errorf("pupils = %+v, want zero", f.Pupils)
	}
}

func TestCalcEyes(t *testing.T) {
	opts := DefaultOptions()

	t.Run("closed", func(t *testing.T) {
		eyes := CalcEyes(landmark.ClosedEyesFace(), opts.BlinkHigh, opts.BlinkLow)
		if eyes.Left != 0 || eyes.Right != 0 {
			t.Errorf("eyes = %+v, want closed", eyes)
		}
	})

	t.Run("half open", func(t *testing.T) {
		l := landmark.NeutralFace(true)
		// lid opening 0.0096 over width 0.08
		for _, i := range []int{160, 159, 158} {
			l[i].Y = 0.42 - 0.0048
		}
		for _, i := range []int{144, 145, 153} {
			l[i].Y = 0.42 + 0.0048
		}
		left := EyeOpen(l, landmark.Left, opts.BlinkHigh, opts.BlinkLow)
		want := (0.0096/0.08/eyeAspectRatio - opts.BlinkLow) / (opts.BlinkHigh - opts.BlinkLow)
		if !almostEqual(left, want) {
			t.Errorf("left eye = %v, want %v", left, want)
		}
		if left <= 0 || left >= 1 {
			t.Errorf("left eye = %v, want strictly between 0 and 1", left)
		}
	})

	t.Run("bounded", func(t *testing.T) {
		l := landmark.NeutralFace(true)
		for _, i := range []int{387, 386, 385} {
			l[i].Y = 0.1
		}
		eyes := CalcEyes(l, opts.BlinkHigh, opts.BlinkLow)
		if eyes.Right < 0 || eyes.Right > 1 {
			t.Errorf("right eye = %v, want in [0, 1]", eyes.Right)
		}
	})
}

func TestStabilizeBlink(t *testing.T) {
	tests := []struct {
		name       string
		eyes       Eyes
		yaw        float64
		enableWink bool
		want       Eyes
	}{
		{
			name: "both open kept",
			eyes: Eyes{Left: 0.9, Right: 0.7},
			want: Eyes{Left: 0.9, Right: 0.7},
		},
		{
			name: "both closing kept",
			eyes: Eyes{Left: 0.1, Right: 0.2},
			want: Eyes{Left: 0.1, Right: 0.2},
		},
		{
			name:       "deliberate wink kept",
			eyes:       Eyes{Left: 0.05, Right: 0.9},
			enableWink: true,
			want:       Eyes{Left: 0.05, Right: 0.9},
		},
		{
			name:       "wink ignored when disabled",
			eyes:       Eyes{Left: 0.05, Right: 0.9},
			enableWink: false,
			want:       Eyes{Left: 0.05 + (0.9-0.05)*0.95, Right: 0.05 + (0.9-0.05)*0.95},
		},
		{
			name:       "small difference collapsed toward open eye",
			eyes:       Eyes{Left: 0.4, Right: 0.5},
			enableWink: true,
			want:       Eyes{Left: 0.495, Right: 0.495},
		},
		{
			name:       "head turned right copies right eye",
			eyes:       Eyes{Left: 0.1, Right: 0.8},
			yaw:        0.6,
			enableWink: true,
			want:       Eyes{Left: 0.8, Right: 0.8},
		},
		{
			name:       "head turned left copies left eye",
			eyes:       Eyes{Left: 0.1, Right: 0.8},
			yaw:        -0.6,
			enableWink: true,
			want:       Eyes{Left: 0.1, Right: 0.1},
		},
		{
			name:       "inputs clamped",
			eyes:       Eyes{Left: 1.4, Right: 1.2},
			enableWink: true,
			want:       Eyes{Left: 1, Right: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StabilizeBlink(tt.eyes, tt.yaw, tt.enableWink, 0.5)
			if !almostEqual(got.Left, tt.want.Left) || !almostEqual(got.Right, tt.want.Right) {
				t.Errorf("StabilizeBlink(%+v) = %+v, want %+v", tt.eyes, got, tt.want)
			}
		})
	}
}

func TestSolve_SmoothBlink(t *testing.T) {
	opts := DefaultOptions()
	opts.SmoothBlink = true

	f, err := Solve(landmark.NeutralFace(true), opts)
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	if f.Eyes.Left != 1 || f.Eyes.Right != 1 {
		t.Errorf("eyes = %+v, want fully open", f.Eyes)
	}
}

func TestVisemes_Bounded(t *testing.T) {
	for x := -1.0; x <= 2.0; x += 0.05 {
		for y := 0.0; y <= 1.0; y += 0.05 {
			s := Visemes(x, y)
			for name, v := range map[string]float64{"A": s.A, "E": s.E, "I": s.I, "O": s.O, "U": s.U} {
				if v < 0 || v > 1 || math.IsNaN(v) {
					t.Fatalf("Visemes(%v, %v).%s = %v, want in [0, 1]", x, y, name, v)
				}
			}
		}
	}
}

func TestVisemes_Closed(t *testing.T) {
	s := Visemes(0.5, 0)
	if s.A != 0 || s.I != 0 || s.O != 0 || s.U != 0 || s.E != 0 {
		t.Errorf("closed mouth shape = %+v, want all zero", s)
	}
}

func TestResting(t *testing.T) {
	f := Resting()
	if f.Eyes.Left != 1 || f.Eyes.Right != 1 {
		t.Errorf("resting eyes = %+v, want open", f.Eyes)
	}
	if f.Mouth.Shape != (Shape{}) {
		t.Errorf("resting mouth = %+v, want closed", f.Mouth.Shape)
	}
}
