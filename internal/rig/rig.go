// Package rig runs the face, hand and pose solvers over one tracked frame
// and assembles the combined avatar descriptor.
package rig

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/ayusman/rigkit/internal/face"
	"github.com/ayusman/rigkit/internal/hand"
	"github.com/ayusman/rigkit/internal/landmark"
	"github.com/ayusman/rigkit/internal/pose"
)

// ErrDuplicateHand is returned when a frame carries two hands with the same
// handedness.
var ErrDuplicateHand = errors.New("duplicate hand in frame")

// Config holds the options for every region solver.
type Config struct {
	Face face.Options `json:"face"`
	Pose pose.Options `json:"pose"`
	// FillResting puts untracked regions in their resting pose instead of
	// leaving them out of the result.
	FillResting bool `json:"fillResting"`
}

// DefaultConfig returns the default solver options with resting fill on.
func DefaultConfig() Config {
	return Config{
		Face:        face.DefaultOptions(),
		Pose:        pose.DefaultOptions(),
		FillResting: true,
	}
}

// Result is the rig descriptor for one frame. A nil region was not tracked
// and FillResting was off.
type Result struct {
	Face      *face.Face `json:"face,omitempty"`
	RightHand *hand.Hand `json:"rightHand,omitempty"`
	LeftHand  *hand.Hand `json:"leftHand,omitempty"`
	Pose      *pose.Pose `json:"pose,omitempty"`
	Timestamp int64      `json:"timestamp"`
}

// Resting returns a result with every region at rest.
func Resting() Result {
	f := face.Resting()
	rh := hand.Resting(landmark.Right)
	lh := hand.Resting(landmark.Left)
	p := pose.Resting()
	return Result{Face: &f, RightHand: &rh, LeftHand: &lh, Pose: &p}
}

// Solver solves frames with a fixed configuration. It holds no per-frame
// state and is safe for concurrent use.
type Solver struct {
	config Config
}

// NewSolver creates a Solver with the given configuration.
func NewSolver(config Config) *Solver {
	return &Solver{config: config}
}

// Config returns the solver configuration.
func (s *Solver) Config() Config {
	return s.config
}

// Solve runs each region solver present in the frame concurrently. Any
// region error fails the whole frame.
func (s *Solver) Solve(ctx context.Context, frame landmark.Frame) (Result, error) {
	res := Result{Timestamp: frame.Timestamp}

	hands := make(map[landmark.Side]landmark.List, 2)
	for _, h := range frame.Hands {
		if _, ok := hands[h.Side]; ok {
			return Result{}, fmt.Errorf("%w: two %s hands", ErrDuplicateHand, h.Side)
		}
		hands[h.Side] = h.Points
	}

	g, ctx := errgroup.WithContext(ctx)

	if len(frame.Face) > 0 {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f, err := face.Solve(frame.Face, s.config.Face)
			if err != nil {
				return err
			}
			res.Face = &f
			return nil
		})
	}

	for side, points := range hands {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			h, err := hand.Solve(points, side)
			if err != nil {
				return fmt.Errorf("%s %w", side, err)
			}
			if side == landmark.Right {
				res.RightHand = &h
			} else {
				res.LeftHand = &h
			}
			return nil
		})
	}

	if !frame.Pose.Empty() {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p, err := pose.Solve(*frame.Pose, s.config.Pose)
			if err != nil {
				return err
			}
			res.Pose = &p
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	if s.config.FillResting {
		res = fillResting(res)
	}
	return res, nil
}

func fillResting(res Result) Result {
	rest := Resting()
	if res.Face == nil {
		res.Face = rest.Face
	}
	if res.RightHand == nil {
		res.RightHand = rest.RightHand
	}
	if res.LeftHand == nil {
		res.LeftHand = rest.LeftHand
	}
	if res.Pose == nil {
		res.Pose = rest.Pose
	}
	return res
}
