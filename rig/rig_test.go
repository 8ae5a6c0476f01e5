// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rig

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/Bubblyworld/slackline/material"
)

// Test_s1 checks scenario S1 from spec §8: an unloaded 25m gap at 2000N
// standing tension should sag 2-8cm at midspan and have a natural
// length within 5cm of the gap.
func Test_s1(tst *testing.T) {

	//verbose()
	chk.PrintTitle("s1. unloaded 25m gap at 2000N")

	mat := material.StandardWebbing()
	r := NewRig(mat)
	empty, _ := material.NewLoadList(25, nil, nil)

	p, err := r.Build(25, 2000, empty)
	if err != nil {
		tst.Errorf("Build failed: %v", err)
		return
	}

	mid := closestIndex(p.X, 12.5)
	if p.Y[mid] < 0.02 || p.Y[mid] > 0.08 {
		tst.Errorf("expected midpoint sag in [0.02, 0.08], got %v", p.Y[mid])
	}
	nFinal := p.N[len(p.N)-1]
	if nFinal < 24.95 || nFinal > 25.00 {
		tst.Errorf("expected natural length in [24.95, 25.00], got %v", nFinal)
	}
	if p.Y[0] != 0 || p.Y[len(p.Y)-1] != 0 {
		tst.Errorf("anchors must be pinned to y=0")
	}
}

// Test_s2 checks scenario S2: adding a single central 80kg load.
func Test_s2(tst *testing.T) {
	chk.PrintTitle("s2. 25m gap, 2000N, central 80kg load")

	mat := material.StandardWebbing()
	r := NewRig(mat)
	loads, _ := material.NewLoadList(25, []material.PointLoad{{X: 12.5, Mass: 80}}, nil)

	p, err := r.Build(25, 2000, loads)
	if err != nil {
		tst.Errorf("Build failed: %v", err)
		return
	}

	mid := closestIndex(p.X, 12.5)
	if p.Y[mid] < 0.6 || p.Y[mid] > 1.0 {
		tst.Errorf("expected midpoint sag in [0.6, 1.0], got %v", p.Y[mid])
	}

	maxT := 0.0
	for _, t := range p.T {
		if t > maxT {
			maxT = t
		}
	}
	if maxT < 2*2000 || maxT > 4*2000 {
		tst.Errorf("expected max tension in [2*T0, 4*T0], got %v", maxT)
	}

	// mirror symmetry about x=L/2, within 1cm.
	n := len(p.X)
	for i := 0; i < n; i++ {
		j := n - 1 - i
		if math.Abs(p.Y[i]-p.Y[j]) > 1e-2 {
			tst.Errorf("profile should be symmetric about x=L/2: y[%d]=%v y[%d]=%v", i, p.Y[i], j, p.Y[j])
			break
		}
	}
}

func Test_invariants01(tst *testing.T) {
	chk.PrintTitle("invariants01. monotone natural length and tautness")

	mat := material.StandardWebbing()
	r := NewRig(mat)
	empty, _ := material.NewLoadList(25, nil, nil)
	p, err := r.Build(25, 2000, empty)
	if err != nil {
		tst.Errorf("Build failed: %v", err)
		return
	}
	for i := 1; i < len(p.N); i++ {
		if p.N[i] < p.N[i-1] {
			tst.Errorf("natural length must be nondecreasing at i=%d", i)
		}
	}
	for i := range p.T {
		if p.T[i] > 0 && p.L[i] < p.N[i]-1e-3 {
			tst.Errorf("taut line must have l>=n at i=%d", i)
		}
	}
}

func closestIndex(xs []float64, target float64) int {
	best, bestDist := 0, math.Inf(1)
	for i, x := range xs {
		d := math.Abs(x - target)
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
