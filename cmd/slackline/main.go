// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command slackline rigs and, optionally, time-marches a webbing
// described by a JSON Constraints file (spec §6), writing the
// resulting StaticProfile or DynamicProfile to stdout as JSON.
package main

import (
	"flag"
	"os"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/Bubblyworld/slackline/api"
	"github.com/Bubblyworld/slackline/diag"
	"github.com/Bubblyworld/slackline/dynamics"
)

func main() {

	verbose := flag.Bool("verbose", false, "set the Verbose flag of the stderr diagnostics logger")
	dynamic := flag.Bool("dynamic", false, "run a time-domain simulation instead of a static rig")
	nodes := flag.Int("nodes", 30, "node count for the dynamics mesh")
	damping := flag.Float64("damping", 0.02, "fraction of critical damping")
	tEnd := flag.Float64("tend", 2.0, "simulated duration in seconds")
	frames := flag.Int("frames", 60, "number of output frames")
	pluck := flag.String("pluck", "", "Gaussian pluck: x0,amplitude,width")
	bounce := flag.String("bounce", "", "sustained bounce: x0,freq,amplitude,phase")
	impulse := flag.String("impulse", "", "half-sine impulse: x0,magnitude,tau")
	flag.Parse()

	log := diag.NewLogger(*verbose)

	defer func() {
		if err := recover(); err != nil {
			io.Pfred("ERROR: %v\n", err)
			os.Exit(1)
		}
	}()

	if len(flag.Args()) < 1 {
		chk.Panic("please provide a constraints filename. Ex.: rig.json")
	}
	fnamepath := flag.Arg(0)
	if io.FnExt(fnamepath) == "" {
		fnamepath += ".json"
	}

	log.Pf("slackline: reading %s\n", fnamepath)
	buf, err := io.ReadFile(fnamepath)
	if err != nil {
		chk.Panic("cannot read %s: %v", fnamepath, err)
	}

	var c api.Constraints
	if err := c.UnmarshalJSON(buf); err != nil {
		chk.Panic("cannot parse constraints: %v", err)
	}
	c.SetLogger(log.Pfyel)

	if !*dynamic {
		profile, err := c.Rig()
		if err != nil {
			chk.Panic("rig failed: %v", err)
		}
		out, err := api.EncodeStaticProfile(profile)
		if err != nil {
			chk.Panic("cannot encode profile: %v", err)
		}
		io.Pf("%s\n", string(out))
		return
	}

	dyn := c.WithDynamics(*nodes, *damping)

	var dp *dynamics.DynamicProfile
	switch {
	case *pluck != "":
		x0, amplitude, width := parseTriple(*pluck)
		dp, _, err = dyn.SimulatePluck(x0, amplitude, width, *tEnd, *frames)
	case *bounce != "":
		x0, freq, amplitude, phase := parseQuad(*bounce)
		dp, _, err = dyn.SimulateBounce(x0, freq, amplitude, phase, *tEnd, *frames)
	case *impulse != "":
		x0, magnitude, tau := parseTriple(*impulse)
		dp, _, err = dyn.SimulateImpulse(x0, magnitude, tau, *tEnd, *frames)
	default:
		dp, _, err = dyn.Simulate(0, *tEnd, nil, nil, *frames)
	}
	if err != nil {
		chk.Panic("simulate failed: %v", err)
	}

	out, err := api.EncodeDynamicProfile(dp)
	if err != nil {
		chk.Panic("cannot encode dynamic profile: %v", err)
	}
	io.Pf("%s\n", string(out))
}

func parseTriple(s string) (a, b, c float64) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		chk.Panic("expected 3 comma-separated numbers, got %q", s)
	}
	return io.Atof(parts[0]), io.Atof(parts[1]), io.Atof(parts[2])
}

func parseQuad(s string) (a, b, c, d float64) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		chk.Panic("expected 4 comma-separated numbers, got %q", s)
	}
	return io.Atof(parts[0]), io.Atof(parts[1]), io.Atof(parts[2]), io.Atof(parts[3])
}
