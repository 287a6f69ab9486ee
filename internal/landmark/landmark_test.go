package landmark

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestList_Require(t *testing.T) {
	l := make(List, HandLandmarks)

	t.Run("exact count passes", func(t *testing.T) {
		if err := l.RequireExactly(HandLandmarks, "hand"); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("wrong count is a topology error", func(t *testing.T) {
		err := l[:20].RequireExactly(HandLandmarks, "hand")
		if !errors.Is(err, ErrTopology) {
			t.Errorf("expected ErrTopology, got %v", err)
		}
		err = append(l, Landmark{}).RequireExactly(HandLandmarks, "hand")
		if !errors.Is(err, ErrTopology) {
			t.Errorf("expected ErrTopology for extra point, got %v", err)
		}
	})

	t.Run("at least", func(t *testing.T) {
		if err := NeutralFace(true).RequireAtLeast(FaceMeshLandmarks, "face"); err != nil {
			t.Errorf("iris mesh should satisfy base mesh size: %v", err)
		}
		err := l.RequireAtLeast(FaceMeshLandmarks, "face")
		if !errors.Is(err, ErrTopology) {
			t.Errorf("expected ErrTopology, got %v", err)
		}
	})
}

func TestList_Mirror(t *testing.T) {
	l := List{{X: 0.2, Y: 0.3, Z: -0.1, Visibility: 0.7}}

	m := l.Mirror()
	if m[0].X != 0.8 || m[0].Y != 0.3 || m[0].Z != -0.1 || m[0].Visibility != 0.7 {
		t.Errorf("Mirror() = %+v", m[0])
	}
	if l[0].X != 0.2 {
		t.Error("Mirror() modified the source list")
	}

	w := l.MirrorWorld()
	if w[0].X != -0.2 || w[0].Y != 0.3 {
		t.Errorf("MirrorWorld() = %+v", w[0])
	}
}

func TestHasIris(t *testing.T) {
	if HasIris(NeutralFace(false)) {
		t.Error("468 point mesh reported iris points")
	}
	if !HasIris(NeutralFace(true)) {
		t.Error("478 point mesh reported no iris points")
	}
}

func TestSide(t *testing.T) {
	tests := []struct {
		in   string
		want Side
	}{
		{"Left", Left},
		{"left", Left},
		{"L", Left},
		{"Right", Right},
		{" right ", Right},
		{"r", Right},
	}
	for _, tt := range tests {
		got, err := ParseSide(tt.in)
		if err != nil {
			t.Errorf("ParseSide(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSide(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseSide("both"); err == nil {
		t.Error("expected error for invalid side")
	}

	if Right.Direction() != 1 || Left.Direction() != -1 {
		t.Error("unexpected side directions")
	}
	if Left.Opposite() != Right || Right.Opposite() != Left {
		t.Error("unexpected opposite sides")
	}
}

func TestFrame_JSON(t *testing.T) {
	in := `{"hands":[{"handedness":"Right","points":[{"x":0.1,"y":0.2,"z":0.3}],"score":0.9}],"timestamp":42}`

	var f Frame
	if err := json.Unmarshal([]byte(in), &f); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(f.Hands) != 1 || f.Hands[0].Side != Right {
		t.Fatalf("unexpected hands: %+v", f.Hands)
	}
	if f.Hands[0].Points[0].Z != 0.3 {
		t.Errorf("point Z = %v, want 0.3", f.Hands[0].Points[0].Z)
	}
	if !f.Pose.Empty() {
		t.Error("missing pose should be empty")
	}
	if f.Timestamp != 42 {
		t.Errorf("timestamp = %d, want 42", f.Timestamp)
	}
}

func TestFixtures_Topology(t *testing.T) {
	if len(ThumbsUpHand()) != HandLandmarks || len(OpenPalmHand()) != HandLandmarks {
		t.Error("hand fixtures must have 21 points")
	}
	p := StandingPose()
	if len(p.World) != PoseLandmarks || len(p.Normalized) != PoseLandmarks {
		t.Error("pose fixture must have 33 points in both spaces")
	}
	if len(ClosedEyesFace()) != FaceIrisLandmarks {
		t.Error("closed eyes fixture must carry iris points")
	}
}
