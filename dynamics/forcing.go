// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dynamics

import "math"

// Perturbation computes an initial vertical displacement from
// equilibrium at every node position x (spec §4.H).
type Perturbation func(x []float64) []float64

// Forcing computes the external vertical force at every node, given
// the current time, node positions and current displacements (spec
// §4.H). Implementations zero every node except the one nearest their
// target position.
type Forcing func(t float64, x, y []float64) []float64

// nearest returns the index of the node in x closest to target.
func nearest(x []float64, target float64) int {
	best, bestDist := 0, math.Inf(1)
	for i, xi := range x {
		d := math.Abs(xi - target)
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// Gaussian returns a pluck perturbation: a bump of amplitude d and
// width w centred at x0.
func Gaussian(x0, d, w float64) Perturbation {
	return func(x []float64) []float64 {
		out := make([]float64, len(x))
		for i, xi := range x {
			z := (xi - x0) / w
			out[i] = d * math.Exp(-z*z)
		}
		return out
	}
}

// Impulse returns a half-sine force of magnitude m applied at the node
// nearest x0 for t < tau, zero everywhere else and afterwards.
func Impulse(x0, m, tau float64) Forcing {
	return func(t float64, x, y []float64) []float64 {
		out := make([]float64, len(x))
		if t < tau {
			out[nearest(x, x0)] = m * math.Sin(math.Pi*t/tau)
		}
		return out
	}
}

// Oscillation returns a sinusoidal force of amplitude a, frequency f
// (Hz) and phase phi (radians) applied at the node nearest x0.
func Oscillation(x0, f, a, phi float64) Forcing {
	omega := 2 * math.Pi * f
	return func(t float64, x, y []float64) []float64 {
		out := make([]float64, len(x))
		out[nearest(x, x0)] = a * math.Sin(omega*t+phi)
		return out
	}
}
