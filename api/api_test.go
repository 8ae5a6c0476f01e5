// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package api

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/Bubblyworld/slackline/errs"
	"github.com/Bubblyworld/slackline/material"
)

func Test_build01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("build01. gap_length and anchor_tension are validated")

	mat := material.StandardWebbing()
	if _, err := BuildConstraints(mat, 0, 2000); errs.Of(err) != errs.InvalidInput {
		tst.Errorf("expected InvalidInput for gap_length<=0, got %v", err)
	}
	if _, err := BuildConstraints(mat, 25, -1); errs.Of(err) != errs.InvalidInput {
		tst.Errorf("expected InvalidInput for anchor_tension<=0, got %v", err)
	}
}

// Test_load01 checks scenario S6: boundary loads are filtered with a
// diagnostic, not rejected, while a nonpositive mass is InvalidInput.
func Test_load01(tst *testing.T) {
	chk.PrintTitle("load01. boundary loads filtered, nonpositive mass rejected")

	mat := material.StandardWebbing()
	c, err := BuildConstraints(mat, 25, 2000)
	if err != nil {
		tst.Fatalf("BuildConstraints failed: %v", err)
	}
	var diagnostics int
	c.SetLogger(func(format string, args ...interface{}) { diagnostics++ })

	if err := c.AddLoad(0, 80); err != nil {
		tst.Errorf("boundary load at x=0 should be filtered, not rejected: %v", err)
	}
	if err := c.AddLoad(25, 80); err != nil {
		tst.Errorf("boundary load at x=gap_length should be filtered, not rejected: %v", err)
	}
	if diagnostics != 2 {
		tst.Errorf("expected 2 diagnostics for the filtered boundary loads, got %d", diagnostics)
	}
	if c.Loads() != nil && len(c.Loads()) != 0 {
		tst.Errorf("boundary loads must not appear in the kept list, got %v", c.Loads())
	}

	if err := c.AddLoad(12.5, 0); errs.Of(err) != errs.InvalidInput {
		tst.Errorf("expected InvalidInput for nonpositive mass, got %v", err)
	}
	if err := c.AddLoad(12.5, 80); err != nil {
		tst.Errorf("interior load should be accepted: %v", err)
	}
	if len(c.Loads()) != 1 {
		tst.Errorf("expected exactly one kept load, got %v", c.Loads())
	}
}

func Test_rig01(tst *testing.T) {
	chk.PrintTitle("rig01. Constraints.Rig assembles a pinned profile")

	mat := material.StandardWebbing()
	c, err := BuildConstraints(mat, 25, 2000)
	if err != nil {
		tst.Fatalf("BuildConstraints failed: %v", err)
	}
	p, err := c.Rig()
	if err != nil {
		tst.Errorf("Rig failed: %v", err)
		return
	}
	if p.Y[0] != 0 || p.Y[len(p.Y)-1] != 0 {
		tst.Errorf("anchors must be pinned to y=0")
	}
}

func Test_dynamics01(tst *testing.T) {
	chk.PrintTitle("dynamics01. WithDynamics.SimulatePluck returns a pinned DynamicProfile")

	mat := material.StandardWebbing()
	c, err := BuildConstraints(mat, 25, 2000)
	if err != nil {
		tst.Fatalf("BuildConstraints failed: %v", err)
	}
	dyn := c.WithDynamics(20, 0.05)
	profile, yEq, err := dyn.SimulatePluck(12.5, 0.2, 1.5, 1.0, 10)
	if err != nil {
		tst.Errorf("SimulatePluck failed: %v", err)
		return
	}
	n := len(profile.X)
	for f := range profile.Y {
		if profile.Y[f][0] != yEq[0] || profile.Y[f][n-1] != yEq[n-1] {
			tst.Errorf("frame %d anchors should stay pinned to the equilibrium boundary value", f)
		}
	}
}

// Test_json01 checks property #10 from spec §8: Constraints round-trips
// through JSON field-by-field.
func Test_json01(tst *testing.T) {
	chk.PrintTitle("json01. Constraints round-trips through JSON")

	mat := material.StandardWebbing()
	c, err := BuildConstraints(mat, 25, 2000)
	if err != nil {
		tst.Fatalf("BuildConstraints failed: %v", err)
	}
	c.MaterialName = "standard-25mm"
	if err := c.AddLoad(12.5, 80); err != nil {
		tst.Fatalf("AddLoad failed: %v", err)
	}

	data, err := c.MarshalJSON()
	if err != nil {
		tst.Errorf("MarshalJSON failed: %v", err)
		return
	}

	var back Constraints
	if err := back.UnmarshalJSON(data); err != nil {
		tst.Errorf("UnmarshalJSON failed: %v", err)
		return
	}
	if back.GapLength != c.GapLength || back.AnchorTension != c.AnchorTension {
		tst.Errorf("gap_length/anchor_tension did not round-trip: got %v/%v want %v/%v",
			back.GapLength, back.AnchorTension, c.GapLength, c.AnchorTension)
	}
	if back.Material.M != c.Material.M || back.Material.G != c.Material.G || back.Material.K != c.Material.K {
		tst.Errorf("material did not round-trip: got %+v want %+v", back.Material, c.Material)
	}
	if back.MaterialName != c.MaterialName {
		tst.Errorf("material name did not round-trip: got %q want %q", back.MaterialName, c.MaterialName)
	}
	if len(back.Loads()) != len(c.Loads()) {
		tst.Errorf("loads did not round-trip: got %v want %v", back.Loads(), c.Loads())
		return
	}
	for i, ld := range c.Loads() {
		if back.Loads()[i] != ld {
			tst.Errorf("load %d did not round-trip: got %v want %v", i, back.Loads()[i], ld)
		}
	}
}

func Test_json02(tst *testing.T) {
	chk.PrintTitle("json02. StaticProfile round-trips through JSON")

	mat := material.StandardWebbing()
	c, err := BuildConstraints(mat, 25, 2000)
	if err != nil {
		tst.Fatalf("BuildConstraints failed: %v", err)
	}
	p, err := c.Rig()
	if err != nil {
		tst.Fatalf("Rig failed: %v", err)
	}

	data, err := EncodeStaticProfile(p)
	if err != nil {
		tst.Errorf("EncodeStaticProfile failed: %v", err)
		return
	}
	back, err := DecodeStaticProfile(data)
	if err != nil {
		tst.Errorf("DecodeStaticProfile failed: %v", err)
		return
	}
	if len(back.X) != len(p.X) {
		tst.Errorf("length mismatch after round-trip: got %d want %d", len(back.X), len(p.X))
		return
	}
	for i := range p.X {
		if back.X[i] != p.X[i] || back.Y[i] != p.Y[i] || back.T[i] != p.T[i] {
			tst.Errorf("sample %d did not round-trip exactly", i)
			break
		}
	}
}

func Test_json03(tst *testing.T) {
	chk.PrintTitle("json03. DynamicProfile round-trips through JSON")

	mat := material.StandardWebbing()
	c, err := BuildConstraints(mat, 25, 2000)
	if err != nil {
		tst.Fatalf("BuildConstraints failed: %v", err)
	}
	dyn := c.WithDynamics(15, 0.05)
	profile, _, err := dyn.SimulatePluck(12.5, 0.2, 1.5, 0.5, 5)
	if err != nil {
		tst.Fatalf("SimulatePluck failed: %v", err)
	}

	data, err := EncodeDynamicProfile(profile)
	if err != nil {
		tst.Errorf("EncodeDynamicProfile failed: %v", err)
		return
	}
	back, err := DecodeDynamicProfile(data)
	if err != nil {
		tst.Errorf("DecodeDynamicProfile failed: %v", err)
		return
	}
	if len(back.X) != len(profile.X) || len(back.Y) != len(profile.Y) {
		tst.Errorf("shape mismatch after round-trip: got %dx%d want %dx%d",
			len(back.Y), len(back.X), len(profile.Y), len(profile.X))
		return
	}
	for f := range profile.Y {
		for i := range profile.Y[f] {
			if back.Y[f][i] != profile.Y[f][i] {
				tst.Errorf("frame %d node %d did not round-trip exactly", f, i)
			}
		}
	}
}
