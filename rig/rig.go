// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rig assembles a static equilibrium StaticProfile from the
// bvp shooting/search solvers (spec §4.E).
package rig

import (
	"math"
	"sort"

	"github.com/cpmech/gosl/utl"

	"github.com/Bubblyworld/slackline/bvp"
	"github.com/Bubblyworld/slackline/material"
)

// DefaultSamples is the default number of equally spaced points in a
// StaticProfile (spec §3: N >= 2).
const DefaultSamples = 1001

// StaticProfile is a finite, equally spaced sampling over x in [0, L]
// describing the equilibrium curve (spec §3).
type StaticProfile struct {
	X, Y, N, L, T, A []float64
}

// Rig builds StaticProfiles for a single material.
type Rig struct {
	Material *material.WebbingMaterial
	Samples  int // number of output points; defaults to DefaultSamples
}

// NewRig returns a Rig for the given material with DefaultSamples points.
func NewRig(mat *material.WebbingMaterial) *Rig {
	return &Rig{Material: mat, Samples: DefaultSamples}
}

// Build rigs a webbing across gapLength at standing anchor tension
// standingTension, then loads it with loads (spec §4.E):
//
//  1. an unloaded shot fixes the webbing's natural length N,
//  2. if loads are present, a loaded natural-length-invariant shot at N
//     gives the loaded equilibrium,
//  3. arclength, tension and angle are derived pointwise.
func (r *Rig) Build(gapLength, standingTension float64, loads *material.LoadList) (*StaticProfile, error) {
	sh := bvp.NewShooter(r.Material)

	empty, err := material.NewLoadList(gapLength, nil, nil)
	if err != nil {
		return nil, err
	}
	unloaded, err := sh.SolveLengthTension(gapLength, standingTension, empty)
	if err != nil {
		return nil, err
	}
	natural := unloaded.N[len(unloaded.N)-1]

	traj := unloaded
	if loads.Len() > 0 {
		loaded, _, err := sh.SolveNaturalLength(gapLength, natural, loads)
		if err != nil {
			return nil, err
		}
		traj = loaded
	}

	n := r.Samples
	if n < 2 {
		n = DefaultSamples
	}
	return derive(r.Material, traj, gapLength, n), nil
}

// derive resamples a raw, unevenly spaced shooting trajectory onto an
// equally spaced x grid of nSamples points, then computes arclength,
// tension and angle pointwise exactly as api.Constraints.rig does in
// the Python original:
//
//	dl = sqrt(1+y_x^2) * dx ;  l = cumsum(dl)
//	dn = n_x * dx          ;  n = cumsum(dn)
//	T  = K * (dl/dn - 1)
//	A  = |atan(y_x)| * 180/pi
//
// The shot measures y upward, so the profile's Y is its negation: the
// sag, positive downward.
func derive(mat *material.WebbingMaterial, traj *bvp.Trajectory, gapLength float64, nSamples int) *StaticProfile {
	xs := utl.LinSpace(0, gapLength, nSamples)
	ys := interp(traj.X, traj.Y, xs)
	as := interp(traj.X, traj.A, xs)
	bs := interp(traj.X, traj.B, xs)

	p := &StaticProfile{
		X: xs,
		Y: make([]float64, nSamples),
		N: make([]float64, nSamples),
		L: make([]float64, nSamples),
		T: make([]float64, nSamples),
		A: make([]float64, nSamples),
	}

	dx := xs[1] - xs[0]
	cumL, cumN := 0.0, 0.0
	for i := 0; i < nSamples; i++ {
		dl := math.Sqrt(1+as[i]*as[i]) * dx
		dn := bs[i] * dx
		if i > 0 {
			cumL += dl
			cumN += dn
		}
		p.Y[i] = -ys[i]
		p.L[i] = cumL
		p.N[i] = cumN
		if dn > 0 {
			p.T[i] = mat.K * (dl/dn - 1)
		}
		p.A[i] = math.Abs(math.Atan(as[i])) * 180 / math.Pi
	}
	p.Y[0] = 0
	p.Y[nSamples-1] = 0
	return p
}

// interp is a 1-D linear interpolation of (xp, fp) evaluated at x,
// equivalent to numpy.interp. xp must be ascending; x need not be.
func interp(xp, fp, x []float64) []float64 {
	out := make([]float64, len(x))
	for i, xi := range x {
		j := sort.SearchFloat64s(xp, xi)
		switch {
		case j <= 0:
			out[i] = fp[0]
		case j >= len(xp):
			out[i] = fp[len(fp)-1]
		default:
			x0, x1 := xp[j-1], xp[j]
			f0, f1 := fp[j-1], fp[j]
			if x1 == x0 {
				out[i] = f0
				continue
			}
			t := (xi - x0) / (x1 - x0)
			out[i] = f0 + t*(f1-f0)
		}
	}
	return out
}
