// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package api

import (
	"encoding/json"
	"math"

	"github.com/Bubblyworld/slackline/dynamics"
	"github.com/Bubblyworld/slackline/errs"
	"github.com/Bubblyworld/slackline/material"
	"github.com/Bubblyworld/slackline/rig"
)

// constraintsWire is the on-the-wire shape from spec §6:
//
//	{ material: { name, m, g, K }, gap_length, anchor_tension, loads: [[x, M], ...] }
type constraintsWire struct {
	Material struct {
		Name string  `json:"name"`
		M    float64 `json:"m"`
		G    float64 `json:"g"`
		K    float64 `json:"K"`
	} `json:"material"`
	GapLength     float64      `json:"gap_length"`
	AnchorTension float64      `json:"anchor_tension"`
	Loads         [][2]float64 `json:"loads"`
}

// MarshalJSON encodes c per spec §6, rejecting NaN/Infinity.
func (c *Constraints) MarshalJSON() ([]byte, error) {
	var w constraintsWire
	w.Material.Name = c.MaterialName
	w.Material.M = c.Material.M
	w.Material.G = c.Material.G
	w.Material.K = c.Material.K
	w.GapLength = c.GapLength
	w.AnchorTension = c.AnchorTension
	for _, ld := range c.loads {
		w.Loads = append(w.Loads, [2]float64{ld.X, ld.Mass})
	}
	if err := requireFinite(w.Material.M, w.Material.G, w.Material.K, w.GapLength, w.AnchorTension); err != nil {
		return nil, err
	}
	for _, ld := range w.Loads {
		if err := requireFinite(ld[0], ld[1]); err != nil {
			return nil, err
		}
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes data per spec §6 into c, rebuilding and
// re-validating the material, gap, tension and loads.
func (c *Constraints) UnmarshalJSON(data []byte) error {
	var w constraintsWire
	if err := json.Unmarshal(data, &w); err != nil {
		return errs.New(errs.InvalidInput, "malformed constraints JSON: %v", err)
	}
	mat, err := material.NewMaterial(w.Material.M, w.Material.G, w.Material.K)
	if err != nil {
		return err
	}
	built, err := BuildConstraints(mat, w.GapLength, w.AnchorTension)
	if err != nil {
		return err
	}
	built.MaterialName = w.Material.Name
	for _, ld := range w.Loads {
		if err := built.AddLoad(ld[0], ld[1]); err != nil {
			return err
		}
	}
	*c = *built
	return nil
}

// staticProfileWire is the on-the-wire shape for a StaticProfile: the
// six named arrays x, y, n, l, T, A (spec §6).
type staticProfileWire struct {
	X []float64 `json:"x"`
	Y []float64 `json:"y"`
	N []float64 `json:"n"`
	L []float64 `json:"l"`
	T []float64 `json:"T"`
	A []float64 `json:"A"`
}

// EncodeStaticProfile marshals p per spec §6, rejecting NaN/Infinity.
func EncodeStaticProfile(p *rig.StaticProfile) ([]byte, error) {
	w := staticProfileWire{X: p.X, Y: p.Y, N: p.N, L: p.L, T: p.T, A: p.A}
	for _, arr := range [][]float64{w.X, w.Y, w.N, w.L, w.T, w.A} {
		for _, v := range arr {
			if err := requireFinite(v); err != nil {
				return nil, err
			}
		}
	}
	return json.Marshal(w)
}

// DecodeStaticProfile unmarshals data per spec §6 into a StaticProfile.
func DecodeStaticProfile(data []byte) (*rig.StaticProfile, error) {
	var w staticProfileWire
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, errs.New(errs.InvalidInput, "malformed profile JSON: %v", err)
	}
	return &rig.StaticProfile{X: w.X, Y: w.Y, N: w.N, L: w.L, T: w.T, A: w.A}, nil
}

// dynamicProfileWire is the on-the-wire shape for a DynamicProfile:
// the node grid x, the time vector t, and y[frame][node] (spec §3).
type dynamicProfileWire struct {
	X []float64   `json:"x"`
	T []float64   `json:"t"`
	Y [][]float64 `json:"y"`
}

// EncodeDynamicProfile marshals p, rejecting NaN/Infinity.
func EncodeDynamicProfile(p *dynamics.DynamicProfile) ([]byte, error) {
	w := dynamicProfileWire{X: p.X, T: p.T, Y: p.Y}
	if err := requireFinite(w.X...); err != nil {
		return nil, err
	}
	if err := requireFinite(w.T...); err != nil {
		return nil, err
	}
	for _, frame := range w.Y {
		if err := requireFinite(frame...); err != nil {
			return nil, err
		}
	}
	return json.Marshal(w)
}

// DecodeDynamicProfile unmarshals data into a DynamicProfile.
func DecodeDynamicProfile(data []byte) (*dynamics.DynamicProfile, error) {
	var w dynamicProfileWire
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, errs.New(errs.InvalidInput, "malformed dynamic profile JSON: %v", err)
	}
	return &dynamics.DynamicProfile{X: w.X, T: w.T, Y: w.Y}, nil
}

func requireFinite(vs ...float64) error {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errs.New(errs.InvalidInput, "value %v is not finite; NaN/Infinity are not permitted in serialized output", v)
		}
	}
	return nil
}
