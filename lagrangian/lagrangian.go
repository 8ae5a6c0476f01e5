// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lagrangian derives the first-order ODE right-hand side and
// the point-mass jump conditions for the slackline Lagrangian
//
//	L = m*g*y*n' + (K/2)*(1+y'^2)/n' - K*sqrt(1+y'^2) + (K/2)*n'
//
// Rather than deriving the Euler-Lagrange equations symbolically at
// solve time (as the Python original does with sympy), the closed
// forms are derived once, offline, and hard-coded as arithmetic
// kernels (spec §9 design note). A kernel is built and cached per
// (m, g, K) triple so repeated static/dynamic solves over the same
// material reuse the same closure, mirroring the "computed once per
// Lagrangian choice" requirement.
package lagrangian

import (
	"math"

	"github.com/cpmech/gosl/la"

	"github.com/Bubblyworld/slackline/errs"
	"github.com/Bubblyworld/slackline/material"
)

// minJacDet is the smallest Jacobian determinant la.MatInv will accept
// before reporting a singular matrix, the same MINDET role shp.go's
// isoparametric Jacobian inversion plays.
const minJacDet = 1e-14

// State is the 4-variable first-order state (y, n, a, b) with
// a = dy/dx, b = dn/dx.
type State struct {
	Y, N, A, B float64
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// RHS evaluates the derivative of State at horizontal position x. The
// material parameters close over the call; x does not appear in the
// closed form (the Lagrangian is autonomous) but is kept for symmetry
// with gosl/ode's Func signature.
type RHS func(x float64, s State) (State, error)

// cache maps a material's (m, g, K) to its derived RHS closure, read
// concurrently without locking once populated: a solver instance
// fills it lazily and never mutates an existing entry (spec §5).
type cache struct {
	entries map[key]RHS
}

type key struct{ M, G, K float64 }

// NewCache returns an empty, ready-to-use derivation cache. A
// bvp.Shooter creates one on first use; callers sharing a Cache across goroutines must treat it
// as read-only after the first Derive call per key, as gofem's mreten
// model cache is used.
func NewCache() *cache {
	return &cache{entries: make(map[key]RHS)}
}

// Derive returns the cached RHS closure for mat, deriving (and caching)
// it on first use.
func (c *cache) Derive(mat *material.WebbingMaterial) RHS {
	k := key{mat.M, mat.G, mat.K}
	if rhs, ok := c.entries[k]; ok {
		return rhs
	}
	m, g, K := mat.M, mat.G, mat.K
	rhs := func(x float64, s State) (State, error) {
		a, b := s.A, s.B
		if b == 0 {
			return State{}, errs.New(errs.IntegratorDiverged, "n' underflowed to zero at x=%v", x)
		}
		sq := math.Sqrt(1 + a*a)
		denom := sq - b
		if denom == 0 || !isFinite(denom) {
			return State{}, errs.New(errs.IntegratorDiverged, "tension denominator vanished at x=%v (sqrt(1+y'^2)=b, i.e. T=0)", x)
		}
		aPrime := m * g * b * b * sq / (K * denom)
		bPrime := m * g * a * b * b * b * b / (sq * sq * K * denom)
		if !isFinite(aPrime) || !isFinite(bPrime) {
			return State{}, errs.New(errs.IntegratorDiverged, "non-finite derivative at x=%v", x)
		}
		return State{Y: a, N: b, A: aPrime, B: bPrime}, nil
	}
	c.entries[k] = rhs
	return rhs
}

// dLdaDLdb returns (∂L/∂a, ∂L/∂b) at the given material and state,
// used by JumpSolve to build the 2x2 jump residual.
func dLdaDLdb(mat *material.WebbingMaterial, y, a, b float64) (dLda, dLdb float64) {
	K := mat.K
	sq := math.Sqrt(1 + a*a)
	dLda = K*a/b - K*a/sq
	dLdb = mat.M*mat.G*y - (K/2)*(1+a*a)/(b*b) + K/2
	return
}

// JumpSolve applies the §4.B point-mass jump conditions at a load of
// mass M, given the state as it arrives from the left (y, n continuous
// across the jump; only a, b change). It solves the 2x2 nonlinear
// system
//
//	∂L/∂a|R - ∂L/∂a|L = M*g
//	∂L/∂b|R - ∂L/∂b|L = 0
//
// with Newton's method seeded at (a_L, b_L), inverting the 2x2
// Jacobian at each step with la.MatInv (no general sparse solve needed
// for a system this small). The root the iteration converges to is
// returned if it has b_R > 0; other roots are not searched for or
// compared by distance to (a_L, b_L). JumpUnsolvable is returned if
// the iteration does not converge within its budget or ends at b_R <= 0.
func JumpSolve(mat *material.WebbingMaterial, left State, mass float64) (right State, err error) {
	const (
		maxIter = 50
		tol     = 1e-10
		h       = 1e-6
	)
	Mg := mass * mat.G
	dLdaL, dLdbL := dLdaDLdb(mat, left.Y, left.A, left.B)

	residual := func(a, b float64) (r1, r2 float64) {
		dLda, dLdb := dLdaDLdb(mat, left.Y, a, b)
		r1 = dLda - dLdaL - Mg
		r2 = dLdb - dLdbL
		return
	}

	a, b := left.A, left.B
	if b <= 0 {
		b = 1e-3
	}
	jac := la.MatAlloc(2, 2)
	jacInv := la.MatAlloc(2, 2)
	converged := false
	for i := 0; i < maxIter; i++ {
		r1, r2 := residual(a, b)
		if math.Abs(r1) < tol && math.Abs(r2) < tol {
			converged = true
			break
		}
		// Numerical Jacobian via central differences, inverted the same
		// way shp.go inverts an isoparametric Jacobian: la.MatAlloc into
		// a plain matrix, la.MatInv in place.
		r1pa, r2pa := residual(a+h, b)
		r1ma, r2ma := residual(a-h, b)
		r1pb, r2pb := residual(a, b+h)
		r1mb, r2mb := residual(a, b-h)
		jac[0][0] = (r1pa - r1ma) / (2 * h)
		jac[1][0] = (r2pa - r2ma) / (2 * h)
		jac[0][1] = (r1pb - r1mb) / (2 * h)
		jac[1][1] = (r2pb - r2mb) / (2 * h)
		det, err := la.MatInv(jacInv, jac, minJacDet)
		if err != nil || !isFinite(det) {
			break
		}
		da := -(jacInv[0][0]*r1 + jacInv[0][1]*r2)
		db := -(jacInv[1][0]*r1 + jacInv[1][1]*r2)
		a += da
		b += db
		if !isFinite(a) || !isFinite(b) {
			break
		}
	}
	if !converged || b <= 0 {
		return State{}, errs.New(errs.JumpUnsolvable, "no physical root (b_R>0) found for point load M=%v at jump from state %+v", mass, left)
	}
	return State{Y: left.Y, N: left.N, A: a, B: b}, nil
}
