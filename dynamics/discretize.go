// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dynamics lumps a StaticProfile onto a node/spring mesh (§4.F),
// integrates it through time (§4.G), and provides the standard
// perturbation/forcing library (§4.H).
package dynamics

import (
	"math"

	"github.com/cpmech/gosl/utl"

	"github.com/Bubblyworld/slackline/errs"
	"github.com/Bubblyworld/slackline/material"
	"github.com/Bubblyworld/slackline/rig"
)

// NodeMesh is the discretized equilibrium used by Integrator: a fixed
// x grid, the equilibrium sag at each node, per-segment natural
// lengths, per-node lumped mass and damping coefficient (spec §4.F).
type NodeMesh struct {
	Material  *material.WebbingMaterial
	X         []float64 // node positions, uniform on [0, L]
	YEq       []float64 // equilibrium sag at each node
	DnEq      []float64 // natural length of segment [i, i+1], length N-1
	Mass      []float64 // lumped mass per node; 0 at boundary nodes
	Damping   []float64 // per-node viscous damping coefficient
	DampRatio float64   // fraction of critical damping used to build Damping
}

// Discretize builds a NodeMesh with nNodes nodes from a static profile,
// at the given damping ratio (fraction of critical, spec default 0.02).
func Discretize(mat *material.WebbingMaterial, profile *rig.StaticProfile, nNodes int, dampRatio float64) (*NodeMesh, error) {
	if nNodes < 2 {
		return nil, errs.New(errs.InvalidInput, "nNodes=%d must be at least 2", nNodes)
	}
	L := profile.X[len(profile.X)-1]
	xs := utl.LinSpace(0, L, nNodes)
	yEq := interp(profile.X, profile.Y, xs)
	nEq := interp(profile.X, profile.N, xs)

	dnEq := make([]float64, nNodes-1)
	for i := 0; i < nNodes-1; i++ {
		dnEq[i] = nEq[i+1] - nEq[i]
		if dnEq[i] <= 0 {
			return nil, errs.New(errs.InvalidInput, "segment [%d,%d] has nonpositive natural length %v", i, i+1, dnEq[i])
		}
	}

	// half the equilibrium arclength of each adjacent segment, lumped
	// onto the shared node; boundary nodes stay massless (anchors are
	// pinned, spec §4.F).
	dlEq := make([]float64, nNodes-1)
	for i := 0; i < nNodes-1; i++ {
		dx := xs[i+1] - xs[i]
		dy := yEq[i+1] - yEq[i]
		dlEq[i] = math.Sqrt(dx*dx + dy*dy)
	}
	mass := make([]float64, nNodes)
	for i := 1; i < nNodes-1; i++ {
		mass[i] = mat.M * (dlEq[i-1]/2 + dlEq[i]/2)
	}

	damping := make([]float64, nNodes)
	for i := 1; i < nNodes-1; i++ {
		dnLocal := (dnEq[i-1] + dnEq[i]) / 2
		damping[i] = dampRatio * 2 * math.Sqrt(mat.K*mass[i]/dnLocal)
	}

	return &NodeMesh{
		Material:  mat,
		X:         xs,
		YEq:       yEq,
		DnEq:      dnEq,
		Mass:      mass,
		Damping:   damping,
		DampRatio: dampRatio,
	}, nil
}

func interp(xp, fp, x []float64) []float64 {
	out := make([]float64, len(x))
	for i, xi := range x {
		out[i] = interpOne(xp, fp, xi)
	}
	return out
}

func interpOne(xp, fp []float64, xi float64) float64 {
	n := len(xp)
	if xi <= xp[0] {
		return fp[0]
	}
	if xi >= xp[n-1] {
		return fp[n-1]
	}
	lo, hi := 0, n-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if xp[mid] <= xi {
			lo = mid
		} else {
			hi = mid
		}
	}
	t := (xi - xp[lo]) / (xp[hi] - xp[lo])
	return fp[lo] + t*(fp[hi]-fp[lo])
}
