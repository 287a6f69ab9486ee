package landmark

import (
	"fmt"
	"strings"
)

// Side tags the left or right half of the body. It drives the mirrored sign
// conventions of the hand and arm rigs.
type Side int

const (
	Left Side = iota
	Right
)

// String returns "Left" or "Right", matching the tracker's handedness labels.
func (s Side) String() string {
	if s == Right {
		return "Right"
	}
	return "Left"
}

// Direction returns 1 for Right and -1 for Left.
func (s Side) Direction() float64 {
	if s == Right {
		return 1
	}
	return -1
}

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == Right {
		return Left
	}
	return Right
}

// ParseSide parses a handedness label ("Left", "right", "L", ...).
func ParseSide(v string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "left", "l":
		return Left, nil
	case "right", "r":
		return Right, nil
	}
	return Left, fmt.Errorf("invalid side %q", v)
}

// MarshalText implements encoding.TextMarshaler.
func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Side) UnmarshalText(text []byte) error {
	parsed, err := ParseSide(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
