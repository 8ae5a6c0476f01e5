// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bvp

import (
	"math"

	"github.com/cpmech/gosl/num"

	"github.com/Bubblyworld/slackline/errs"
	"github.com/Bubblyworld/slackline/material"
)

// defaultMaxIter bounds both binary searches; exceeding it without
// meeting tolerance is a SearchUnconverged failure (spec §7).
const defaultMaxIter = 100

// SolveLengthTension finds the anchor angle theta such that a shot from
// Shooter.Integrate terminates at x ≈ gapLength, by bisecting theta in
// (0.001 rad, pi/4], exactly as spec §4.D describes. The residual
// x_final(theta) - gapLength is monotone in the physical regime (spec
// §9 open question); gosl/num.Bisection is used for the root search
// itself, with the monotonicity assumption enforced by shrinking
// whichever bound SlacklineTooLong (overshoot) or an undershoot
// implicates.
func (s *Shooter) SolveLengthTension(gapLength, anchorTension float64, loads *material.LoadList) (*Trajectory, error) {
	lo, hi := 0.001, math.Pi/4
	const tol = 0.1

	var best *Trajectory
	var divergeErr error
	residual := func(theta float64, args ...interface{}) float64 {
		if err := s.cancelled(); err != nil {
			divergeErr = err
			return math.NaN()
		}
		traj, err := s.Integrate(anchorTension, theta, loads)
		if err != nil {
			if errs.Of(err) == errs.SlacklineTooLong {
				// too shallow an angle: shot ran long before crossing.
				return math.Inf(1)
			}
			divergeErr = err
			return math.NaN()
		}
		best = traj
		return traj.X[len(traj.X)-1] - gapLength
	}

	var bis num.Bisection
	bis.Init(residual)
	bis.Tol = tol
	bis.NumIterMax = defaultMaxIter

	if _, err := bis.Solve(lo, hi, false); err != nil {
		if divergeErr != nil {
			return nil, divergeErr
		}
		return nil, errs.New(errs.SearchUnconverged, "anchor-angle search did not converge for gap_length=%v: %v", gapLength, err)
	}
	if best == nil {
		return nil, errs.New(errs.SearchUnconverged, "anchor-angle search produced no trajectory for gap_length=%v", gapLength)
	}
	return best, nil
}

// SolveNaturalLength finds the standing anchor tension T0 such that,
// after loading, the line's natural length equals targetNaturalLength
// (spec §4.D step 2: natural length is invariant under loading).
// Bisects T0 in [targetNaturalLength*m*g, 50000], the lower bound being
// the minimum tension needed just to support the webbing's own weight.
func (s *Shooter) SolveNaturalLength(gapLength, targetNaturalLength float64, loads *material.LoadList) (*Trajectory, float64, error) {
	lo := targetNaturalLength * s.Material.M * s.Material.G
	hi := 50000.0
	const tol = 0.1

	for i := 0; i < defaultMaxIter; i++ {
		if err := s.cancelled(); err != nil {
			return nil, 0, err
		}
		t0 := (lo + hi) / 2
		traj, err := s.SolveLengthTension(gapLength, t0, loads)
		if err != nil {
			return nil, 0, err
		}
		nFinal := traj.N[len(traj.N)-1]
		if math.Abs(nFinal-targetNaturalLength) < tol {
			return traj, t0, nil
		}
		if nFinal > targetNaturalLength {
			lo = t0
		} else {
			hi = t0
		}
	}
	return nil, 0, errs.New(errs.SearchUnconverged, "anchor-tension search did not converge within %d iterations for natural_length=%v", defaultMaxIter, targetNaturalLength)
}
