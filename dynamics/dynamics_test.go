// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dynamics

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/Bubblyworld/slackline/material"
	"github.com/Bubblyworld/slackline/rig"
)

func buildUnloadedProfile(tst *testing.T) *rig.StaticProfile {
	mat := material.StandardWebbing()
	r := rig.NewRig(mat)
	empty, _ := material.NewLoadList(25, nil, nil)
	p, err := r.Build(25, 2000, empty)
	if err != nil {
		tst.Fatalf("Build failed: %v", err)
	}
	return p
}

func Test_discretize01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("discretize01. mesh preserves anchors and monotone dn")

	mat := material.StandardWebbing()
	p := buildUnloadedProfile(tst)
	mesh, err := Discretize(mat, p, 30, 0.02)
	if err != nil {
		tst.Errorf("Discretize failed: %v", err)
		return
	}
	if mesh.Mass[0] != 0 || mesh.Mass[len(mesh.Mass)-1] != 0 {
		tst.Errorf("boundary nodes must be massless")
	}
	if mesh.YEq[0] != 0 || mesh.YEq[len(mesh.YEq)-1] != 0 {
		tst.Errorf("boundary nodes must sit at y=0")
	}
	for _, dn := range mesh.DnEq {
		if dn <= 0 {
			tst.Errorf("segment natural lengths must be positive, got %v", dn)
		}
	}
}

func Test_fixedpoint01(tst *testing.T) {
	chk.PrintTitle("fixedpoint01. zero perturbation stays near equilibrium")

	mat := material.StandardWebbing()
	p := buildUnloadedProfile(tst)
	mesh, err := Discretize(mat, p, 20, 0.05)
	if err != nil {
		tst.Errorf("Discretize failed: %v", err)
		return
	}
	integ := NewIntegrator(mesh)
	dyn, yEq, err := integ.Simulate(0, 2, nil, nil, 20)
	if err != nil {
		tst.Errorf("Simulate failed: %v", err)
		return
	}
	L := mesh.X[len(mesh.X)-1]
	for f := range dyn.Y {
		for i := range dyn.Y[f] {
			if math.Abs(dyn.Y[f][i]-yEq[i]) > 1e-3*L {
				tst.Errorf("frame %d node %d drifted from equilibrium: %v vs %v", f, i, dyn.Y[f][i], yEq[i])
			}
		}
	}
}

func Test_pluck01(tst *testing.T) {
	chk.PrintTitle("pluck01. Gaussian pluck decays under damping")

	mat := material.StandardWebbing()
	p := buildUnloadedProfile(tst)
	mesh, err := Discretize(mat, p, 30, 0.05)
	if err != nil {
		tst.Errorf("Discretize failed: %v", err)
		return
	}
	integ := NewIntegrator(mesh)
	pluck := Gaussian(12.5, 0.2, 1.5)
	dyn, yEq, err := integ.Simulate(0, 2, pluck, nil, 60)
	if err != nil {
		tst.Errorf("Simulate failed: %v", err)
		return
	}

	maxDevFirst := maxDeviation(dyn.Y[:10], yEq)
	maxDevLast := maxDeviation(dyn.Y[len(dyn.Y)-10:], yEq)
	if maxDevLast > maxDevFirst {
		tst.Errorf("expected amplitude decay under damping: first=%v last=%v", maxDevFirst, maxDevLast)
	}
}

func maxDeviation(frames [][]float64, yEq []float64) float64 {
	max := 0.0
	for _, frame := range frames {
		for i, y := range frame {
			d := math.Abs(y - yEq[i])
			if d > max {
				max = d
			}
		}
	}
	return max
}
