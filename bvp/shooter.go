// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bvp shoots a single trajectory across the segments of
// webbing separated by point masses (§4.C), and binary-searches the
// anchor angle / anchor tension needed to hit a target gap length or
// natural length (§4.D).
package bvp

import (
	"math"
	"time"

	"github.com/cpmech/gosl/ode"
	"github.com/cpmech/gosl/utl"

	"github.com/Bubblyworld/slackline/errs"
	"github.com/Bubblyworld/slackline/lagrangian"
	"github.com/Bubblyworld/slackline/material"
)

// samplesPerSegment mirrors the Python original's np.linspace(..., 1000)
// per sub-attempt and spec §4.C's "uniform grid of 1000 per sub-attempt".
const samplesPerSegment = 1000

// Trajectory is the raw output of a single shot: x, y, n, a(=y'), b(=n')
// sampled along the shot, terminating at the right anchor (y crosses
// zero) or failing with SlacklineTooLong/JumpUnsolvable/IntegratorDiverged.
type Trajectory struct {
	X, Y, N, A, B []float64
}

func (t *Trajectory) append(x float64, s lagrangian.State) {
	t.X = append(t.X, x)
	t.Y = append(t.Y, s.Y)
	t.N = append(t.N, s.N)
	t.A = append(t.A, s.A)
	t.B = append(t.B, s.B)
}

func (t *Trajectory) last() lagrangian.State {
	n := len(t.X) - 1
	return lagrangian.State{Y: t.Y[n], N: t.N[n], A: t.A[n], B: t.B[n]}
}

func (t *Trajectory) truncate(n int) {
	t.X, t.Y, t.N, t.A, t.B = t.X[:n], t.Y[:n], t.N[:n], t.A[:n], t.B[:n]
}

// Shooter integrates §4.C's segmented IVP for a given material.
type Shooter struct {
	Material     *material.WebbingMaterial
	LengthCutoff float64 // L_max; defaults to a large constant if zero

	// StepBudget and Deadline implement spec §5's cooperative,
	// coarse-grained cancellation: a long-running grow-and-search final
	// segment checks both on every sub-attempt and returns
	// errs.Cancelled once either is exhausted. Zero values mean
	// unbounded, the default for a bare NewShooter.
	StepBudget int
	Deadline   time.Time

	cache     *lagrangian.RHS
	stepsUsed int
}

// NewShooter returns a Shooter with the spec's default length cutoff
// and no step budget or deadline.
func NewShooter(mat *material.WebbingMaterial) *Shooter {
	return &Shooter{Material: mat, LengthCutoff: 100000}
}

// cancelled reports whether this Shooter's step budget or deadline has
// been exhausted, per spec §5/§7 (errs.Cancelled).
func (s *Shooter) cancelled() error {
	if s.StepBudget > 0 && s.stepsUsed >= s.StepBudget {
		return errs.New(errs.Cancelled, "step budget of %d sub-attempts exhausted", s.StepBudget)
	}
	if !s.Deadline.IsZero() && time.Now().After(s.Deadline) {
		return errs.New(errs.Cancelled, "deadline %v exceeded", s.Deadline)
	}
	return nil
}

func (s *Shooter) rhs() lagrangian.RHS {
	if s.cache == nil {
		c := lagrangian.NewCache()
		r := c.Derive(s.Material)
		s.cache = &r
	}
	return *s.cache
}

// integrateSpan advances state across [x0, x0+span) using gosl/ode's
// Dopri5 adaptive solver, sampling on a uniform grid of
// samplesPerSegment points, exactly as mreten/model.go wraps ode.Solver
// around a single scalar ODE — here applied to the 4-variable system.
func (s *Shooter) integrateSpan(x0 float64, start lagrangian.State, span float64, traj *Trajectory) (crossed bool, err error) {
	if err := s.cancelled(); err != nil {
		return false, err
	}
	s.stepsUsed++
	rhs := s.rhs()
	grid := utl.LinSpace(x0, x0+span, samplesPerSegment)

	fcn := func(f []float64, dx, x float64, y []float64) error {
		out, e := rhs(x, lagrangian.State{Y: y[0], N: y[1], A: y[2], B: y[3]})
		if e != nil {
			return e
		}
		f[0], f[1], f[2], f[3] = out.Y, out.N, out.A, out.B
		return nil
	}

	state := []float64{start.Y, start.N, start.A, start.B}
	for i := 0; i < len(grid)-1; i++ {
		var odesol ode.Solver
		odesol.Init("Dopri5", 4, fcn, nil, nil, nil)
		odesol.SetTol(1e-8, 1e-6)
		if e := odesol.Solve(state, grid[i], grid[i+1], grid[i+1]-grid[i], false); e != nil {
			return false, errs.New(errs.IntegratorDiverged, "adaptive step failed at x=%v: %v", grid[i], e)
		}
		cur := lagrangian.State{Y: state[0], N: state[1], A: state[2], B: state[3]}
		if !isFiniteState(cur) {
			return false, errs.New(errs.IntegratorDiverged, "non-finite state at x=%v", grid[i+1])
		}
		traj.append(grid[i+1], cur)
		if cur.Y >= 0 {
			return true, nil
		}
	}
	return false, nil
}

func isFiniteState(s lagrangian.State) bool {
	for _, v := range []float64{s.Y, s.N, s.A, s.B} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Integrate runs the full §4.C segment loop: anchor tension T0, anchor
// angle theta0 (radians, below horizontal, positive), and the ordered
// loads. It returns the trajectory from x=0 up to (and including) the
// interpolated right-anchor crossing.
func (s *Shooter) Integrate(t0, theta0 float64, loads *material.LoadList) (*Trajectory, error) {
	K := s.Material.K
	a0 := math.Tan(-theta0)
	b0 := math.Sqrt(1+a0*a0) / (t0/K + 1)

	traj := &Trajectory{}
	traj.append(0, lagrangian.State{Y: 0, N: 0, A: a0, B: b0})

	pts := loads.Loads()
	xCur := 0.0
	cutoff := s.LengthCutoff
	if cutoff <= 0 {
		cutoff = 100000
	}

	for i := 0; i <= len(pts); i++ {
		last := traj.last()
		interior := i < len(pts)

		if interior {
			span := pts[i].X - xCur
			if span <= 0 {
				return nil, errs.New(errs.InvalidInput, "load at x=%v is not strictly right of x=%v", pts[i].X, xCur)
			}
			if xCur+span > cutoff {
				span = cutoff - xCur
			}
			crossed, err := s.integrateSpan(xCur, last, span, traj)
			if err != nil {
				return nil, err
			}
			if crossed {
				s.trimToAnchor(traj)
				return traj, nil
			}
			xCur += span
			last = traj.last()
			right, err := lagrangian.JumpSolve(s.Material, last, pts[i].Mass)
			if err != nil {
				return nil, err
			}
			traj.Y[len(traj.Y)-1] = right.Y
			traj.N[len(traj.N)-1] = right.N
			traj.A[len(traj.A)-1] = right.A
			traj.B[len(traj.B)-1] = right.B
			continue
		}

		// final, grow-and-search segment: double the guess until the
		// anchor is crossed or the cutoff is reached. Each failed attempt
		// is rolled back (truncated) before retrying with a larger span,
		// mirroring the Python original's re-integration from last_x with
		// a doubled L rather than continuing from the overshoot.
		guess := 1000.0
		baseLen := len(traj.X)
		startState := last
		for {
			if xCur+guess >= cutoff {
				guess = cutoff - xCur
			}
			if guess <= 0 {
				return nil, errs.New(errs.SlacklineTooLong, "length_cutoff=%v reached without crossing the right anchor", cutoff)
			}
			crossed, err := s.integrateSpan(xCur, startState, guess, traj)
			if err != nil {
				return nil, err
			}
			if crossed {
				s.trimToAnchor(traj)
				return traj, nil
			}
			if xCur+guess >= cutoff {
				return nil, errs.New(errs.SlacklineTooLong, "length_cutoff=%v reached without crossing the right anchor", cutoff)
			}
			traj.truncate(baseLen)
			guess *= 2
		}
	}
	return nil, errs.New(errs.SlacklineTooLong, "segment loop exhausted without crossing the right anchor")
}

// trimToAnchor drops samples after the first y>=0 sample and replaces
// it with a linearly interpolated anchor crossing (spec §4.C step 3).
func (s *Shooter) trimToAnchor(traj *Trajectory) {
	n := len(traj.X)
	last := n - 1
	prev := last - 1
	if prev < 0 || traj.Y[prev] >= 0 {
		// first sample already at/past the anchor: nothing to interpolate.
		traj.Y[last] = 0
		return
	}
	xLast, yLast, aLast, bLast, nLast := traj.X[last], traj.Y[last], traj.A[last], traj.B[last], traj.N[last]
	xStar := xLast - yLast/aLast
	dx := xStar - xLast
	traj.X[last] = xStar
	traj.Y[last] = 0
	traj.N[last] = nLast + dx*bLast
	traj.A[last] = aLast
	traj.B[last] = bLast
}
