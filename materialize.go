package main

import "github.com/nextmv-io/sdk/mip"

// Materialize builds a fresh model and variable family and applies the
// first limit constraints of the deterministic plan (PlanConstraints) to
// it. A negative limit (or one that is at least the plan length) applies
// every constraint. The objective is constant (minimize 0): this is a pure
// feasibility problem with no preference ranking among valid schedules.
//
// Every call builds brand-new mip.Bool variables bound to the returned
// model; this is what lets the diagnoser re-run the same deterministic
// plan against a shrinking prefix without mutating or reusing state from
// a previous solve.
func Materialize(c Catalog, internCount, externalCap int, bigM float64, limit int) (mip.Model, *Variables, []NamedConstraint) {
	m := mip.NewModel()
	m.Objective().SetMinimize()

	v := NewVariables(m, internCount, len(c.Rotations))
	plan := PlanConstraints(c, internCount, externalCap, bigM)

	n := limit
	if n < 0 || n > len(plan) {
		n = len(plan)
	}
	for _, nc := range plan[:n] {
		nc.Add(m, v)
	}

	return m, v, plan
}
