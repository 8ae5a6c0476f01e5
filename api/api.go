// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package api is the concept-level entry point described in spec §6:
// Constraints assembles a static rig, DynamicConstraints layers a
// time-domain simulation on top of it, and both round-trip through the
// JSON schema implemented in json.go.
package api

import (
	"github.com/Bubblyworld/slackline/dynamics"
	"github.com/Bubblyworld/slackline/errs"
	"github.com/Bubblyworld/slackline/material"
	"github.com/Bubblyworld/slackline/rig"
)

// Constraints is the caller-facing description of a rigged line: a
// material, a gap, an anchor tension and zero or more point loads.
type Constraints struct {
	Material      *material.WebbingMaterial
	MaterialName  string // carried through JSON only; not used by the solver
	GapLength     float64
	AnchorTension float64

	loads []material.PointLoad
	log   func(format string, args ...interface{})
}

// BuildConstraints validates gapLength and anchorTension and returns an
// empty (unloaded) Constraints over mat.
func BuildConstraints(mat *material.WebbingMaterial, gapLength, anchorTension float64) (*Constraints, error) {
	if gapLength <= 0 {
		return nil, errs.New(errs.InvalidInput, "gap_length=%v must be positive", gapLength)
	}
	if anchorTension <= 0 {
		return nil, errs.New(errs.InvalidInput, "anchor_tension=%v must be positive", anchorTension)
	}
	return &Constraints{Material: mat, GapLength: gapLength, AnchorTension: anchorTension}, nil
}

// SetLogger routes load-filtering diagnostics (spec §7: boundary loads
// are warnings, not errors) to log instead of discarding them.
func (c *Constraints) SetLogger(log func(format string, args ...interface{})) {
	c.log = log
}

// AddLoad appends a point load, re-validating the whole list: a
// nonpositive mass, a duplicate position or a position beyond an anchor
// is rejected, while a load exactly on an anchor is filtered with a
// diagnostic per spec §3/§7.
func (c *Constraints) AddLoad(position, mass float64) error {
	next := append(append([]material.PointLoad{}, c.loads...), material.PointLoad{X: position, Mass: mass})
	ll, err := material.NewLoadList(c.GapLength, next, c.log)
	if err != nil {
		return err
	}
	c.loads = ll.Loads()
	return nil
}

// Loads returns the currently validated point loads.
func (c *Constraints) Loads() []material.PointLoad {
	out := make([]material.PointLoad, len(c.loads))
	copy(out, c.loads)
	return out
}

func (c *Constraints) loadList() (*material.LoadList, error) {
	return material.NewLoadList(c.GapLength, c.loads, c.log)
}

// Rig assembles the static equilibrium profile (spec §4.E).
func (c *Constraints) Rig() (*rig.StaticProfile, error) {
	ll, err := c.loadList()
	if err != nil {
		return nil, err
	}
	r := rig.NewRig(c.Material)
	return r.Build(c.GapLength, c.AnchorTension, ll)
}

// WithDynamics layers a time-domain simulation over this rig, lumping
// it onto nNodes nodes at the given fraction of critical damping (spec
// §4.F).
func (c *Constraints) WithDynamics(nNodes int, dampingRatio float64) *DynamicConstraints {
	return &DynamicConstraints{Constraints: c, NNodes: nNodes, DampingRatio: dampingRatio}
}

// DynamicConstraints adds a node count and damping ratio to a
// Constraints, enabling time-domain simulation (spec §4.F/§4.G).
type DynamicConstraints struct {
	*Constraints
	NNodes       int
	DampingRatio float64
}

// Simulate rigs, discretizes and time-marches this line from tStart to
// tEnd, sampling nFrames frames, under an optional initial perturbation
// and/or external forcing (spec §4.G, §6 dyn.simulate).
func (d *DynamicConstraints) Simulate(tStart, tEnd float64, perturb dynamics.Perturbation, forcing dynamics.Forcing, nFrames int) (*dynamics.DynamicProfile, []float64, error) {
	profile, err := d.Rig()
	if err != nil {
		return nil, nil, err
	}
	mesh, err := dynamics.Discretize(d.Material, profile, d.NNodes, d.DampingRatio)
	if err != nil {
		return nil, nil, err
	}
	integ := dynamics.NewIntegrator(mesh)
	return integ.Simulate(tStart, tEnd, perturb, forcing, nFrames)
}

// SimulatePluck releases the line from a Gaussian initial displacement
// at x0 (spec §4.H), with no ongoing forcing.
func (d *DynamicConstraints) SimulatePluck(x0, amplitude, width, tEnd float64, nFrames int) (*dynamics.DynamicProfile, []float64, error) {
	return d.Simulate(0, tEnd, dynamics.Gaussian(x0, amplitude, width), nil, nFrames)
}

// SimulateImpulse drives the line from rest with a half-sine impulse of
// the given magnitude and duration tau at x0 (spec §4.H).
func (d *DynamicConstraints) SimulateImpulse(x0, magnitude, tau, tEnd float64, nFrames int) (*dynamics.DynamicProfile, []float64, error) {
	return d.Simulate(0, tEnd, nil, dynamics.Impulse(x0, magnitude, tau), nFrames)
}

// SimulateBounce drives the line from rest with a sustained sinusoidal
// force at x0 (spec §4.H), modelling a bouncing rider.
func (d *DynamicConstraints) SimulateBounce(x0, freq, amplitude, phase, tEnd float64, nFrames int) (*dynamics.DynamicProfile, []float64, error) {
	return d.Simulate(0, tEnd, nil, dynamics.Oscillation(x0, freq, amplitude, phase), nFrames)
}
