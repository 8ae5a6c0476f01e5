// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bvp

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/Bubblyworld/slackline/errs"
	"github.com/Bubblyworld/slackline/material"
)

func Test_shoot01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("shoot01. unloaded shot crosses the right anchor")

	mat := material.StandardWebbing()
	sh := NewShooter(mat)
	empty, _ := material.NewLoadList(25, nil, nil)

	traj, err := sh.SolveLengthTension(25, 2000, empty)
	if err != nil {
		tst.Errorf("SolveLengthTension failed: %v", err)
		return
	}
	n := len(traj.X) - 1
	if math.Abs(traj.X[n]-25) > 0.1 {
		tst.Errorf("expected x_final close to 25, got %v", traj.X[n])
	}
	if math.Abs(traj.Y[n]) > 1e-6 {
		tst.Errorf("expected y_final == 0 at the anchor, got %v", traj.Y[n])
	}
}

func Test_shoot02(tst *testing.T) {
	chk.PrintTitle("shoot02. single central load is accepted by the shooter")

	mat := material.StandardWebbing()
	sh := NewShooter(mat)
	loads, err := material.NewLoadList(25, []material.PointLoad{{X: 12.5, Mass: 80}}, nil)
	if err != nil {
		tst.Errorf("NewLoadList failed: %v", err)
		return
	}

	N, err := unloadedNaturalLength(sh, 25, 2000)
	if err != nil {
		tst.Errorf("unloaded solve failed: %v", err)
		return
	}
	traj, _, err := sh.SolveNaturalLength(25, N, loads)
	if err != nil {
		tst.Errorf("SolveNaturalLength failed: %v", err)
		return
	}
	n := len(traj.X) - 1
	if math.Abs(traj.X[n]-25) > 0.2 {
		tst.Errorf("expected x_final close to 25, got %v", traj.X[n])
	}
}

func unloadedNaturalLength(sh *Shooter, gapLength, anchorTension float64) (float64, error) {
	empty, _ := material.NewLoadList(gapLength, nil, nil)
	traj, err := sh.SolveLengthTension(gapLength, anchorTension, empty)
	if err != nil {
		return 0, err
	}
	return traj.N[len(traj.N)-1], nil
}

func Test_shoot03(tst *testing.T) {
	chk.PrintTitle("shoot03. an exhausted step budget is reported as Cancelled")

	mat := material.StandardWebbing()
	sh := NewShooter(mat)
	sh.StepBudget = 1
	empty, _ := material.NewLoadList(25, nil, nil)

	_, err := sh.SolveLengthTension(25, 2000, empty)
	if errs.Of(err) != errs.Cancelled {
		tst.Errorf("expected errs.Cancelled with a step budget of 1, got %v", err)
	}
}
