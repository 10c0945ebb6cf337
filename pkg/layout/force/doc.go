// Package force places nodes with an iterative force-directed simulation.
//
// # Overview
//
// Each step of a [Simulation] applies pairwise inverse-square repulsion,
// spring attraction along edges and a weak pull toward the canvas center,
// all scaled by the cooling temperature alpha. Velocities are integrated and
// damped, positions are clamped into the padded canvas, and alpha decays
// geometrically. The run ends after Options.Iterations steps or once alpha
// drops below 0.001.
//
// [Layout] drives a Simulation one step at a time, yielding between steps and
// honouring context cancellation and [Layout.Stop] at every step boundary. A
// stopped run returns a CANCELLED error and discards its partial state.
//
// # Determinism
//
// Unplaced nodes start at random positions. Set Options.Seed to a non-zero
// value to make runs reproducible; identical inputs and seed give identical
// results.
//
// # Usage
//
//	opts := force.DefaultOptions()
//	opts.Seed = 42
//	res, err := force.New(force.WithOptions(opts)).Execute(ctx, nodes, edges)
//
// Hosts that schedule steps themselves can use [NewSimulation] directly:
//
//	sim := force.NewSimulation(nodes, edges, opts, rng)
//	for sim.Step() {
//	    // interleave other work
//	}
//	positions := sim.Positions()
package force
