// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package material holds the immutable webbing material and point-load
// value types shared by every solver package.
package material

import (
	"sort"

	"github.com/cpmech/gosl/fun"

	"github.com/Bubblyworld/slackline/errs"
)

// WebbingMaterial is the immutable physical description of a webbing:
// linear mass density M (kg/m), gravitational acceleration G (m/s^2),
// and elastic constant K (N per 100% strain). Tension at strain ε is
// K*ε. Equality is by field value; there is no mutation after
// construction.
type WebbingMaterial struct {
	M float64
	G float64
	K float64
}

// NewMaterial validates and constructs a WebbingMaterial.
func NewMaterial(m, g, k float64) (*WebbingMaterial, error) {
	if m <= 0 {
		return nil, errs.New(errs.InvalidInput, "linear mass density m=%v must be positive", m)
	}
	if g <= 0 {
		return nil, errs.New(errs.InvalidInput, "gravitational acceleration g=%v must be positive", g)
	}
	if k <= 0 {
		return nil, errs.New(errs.InvalidInput, "elastic constant K=%v must be positive", k)
	}
	return &WebbingMaterial{M: m, G: g, K: k}, nil
}

// NewMaterialFromPrms builds a WebbingMaterial from a gosl/fun parameter
// list, following the msolid.Model.Init(prms fun.Prms) convention: each
// recognised name (m, g, K) overwrites the corresponding field, and
// missing ones fail validation in NewMaterial.
func NewMaterialFromPrms(prms fun.Prms) (*WebbingMaterial, error) {
	var m, g, k float64
	for _, p := range prms {
		switch p.N {
		case "m":
			m = p.V
		case "g":
			g = p.V
		case "K":
			k = p.V
		}
	}
	return NewMaterial(m, g, k)
}

// GetPrms returns this material's parameters in fun.Prms form, mirroring
// msolid.Model.GetPrms()'s "an example of parameters" convention.
func (w *WebbingMaterial) GetPrms() fun.Prms {
	return fun.Prms{
		&fun.Prm{N: "m", V: w.M},
		&fun.Prm{N: "g", V: w.G},
		&fun.Prm{N: "K", V: w.K},
	}
}

// StandardWebbing is a representative 25mm nylon/polyester webbing,
// used as a default in tests.
func StandardWebbing() *WebbingMaterial {
	return &WebbingMaterial{M: 0.088, G: 9.81, K: 250000}
}

// NarrowWebbing is a lighter, narrower webbing commonly used for
// rodeo/trick lines.
func NarrowWebbing() *WebbingMaterial {
	return &WebbingMaterial{M: 0.045, G: 9.81, K: 120000}
}

// PointLoad is a discrete slackliner: a mass M at horizontal position X.
type PointLoad struct {
	X    float64
	Mass float64
}

// LoadList is an ordered, validated collection of point loads. Positions
// are strictly increasing; loads must lie strictly inside (0, gapLength).
type LoadList struct {
	loads []PointLoad
}

// NewLoadList validates and sorts loads by position, dropping any load
// that lands exactly on an anchor (x=0 or x=gapLength) and reporting it
// through log as a diagnostic rather than an error, per spec §3/§7.
func NewLoadList(gapLength float64, loads []PointLoad, log func(format string, args ...interface{})) (*LoadList, error) {
	kept := make([]PointLoad, 0, len(loads))
	for _, ld := range loads {
		if ld.Mass <= 0 {
			return nil, errs.New(errs.InvalidInput, "load at x=%v has nonpositive mass %v", ld.X, ld.Mass)
		}
		if ld.X < 0 || ld.X > gapLength {
			return nil, errs.New(errs.InvalidInput, "load at x=%v lies outside (0, gap_length=%v)", ld.X, gapLength)
		}
		if ld.X == 0 || ld.X == gapLength {
			if log != nil {
				log("load at x=%v lies on an anchor (gap_length=%v); filtered\n", ld.X, gapLength)
			}
			continue
		}
		kept = append(kept, ld)
	}
	sort.Slice(kept, func(i, j int) bool { return kept[i].X < kept[j].X })
	for i := 1; i < len(kept); i++ {
		if kept[i].X == kept[i-1].X {
			return nil, errs.New(errs.InvalidInput, "duplicate load position x=%v", kept[i].X)
		}
	}
	return &LoadList{loads: kept}, nil
}

// Loads returns the validated, ordered loads.
func (l *LoadList) Loads() []PointLoad {
	if l == nil {
		return nil
	}
	return l.loads
}

// Len is the number of loads.
func (l *LoadList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.loads)
}
