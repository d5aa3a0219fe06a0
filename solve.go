package main

import (
	"github.com/google/uuid"
	"github.com/nextmv-io/sdk/mip"
	"go.uber.org/zap"
)

// Status classifies the outcome of a finished solve.
type Status int

const (
	// StatusOptimal means the solver produced a feasible (optimal, given
	// the constant objective any feasible point is optimal) assignment.
	StatusOptimal Status = iota
	// StatusInfeasible means the solver proved no assignment satisfies
	// every constraint in the model.
	StatusInfeasible
	// StatusOther covers any other outcome: a solver error, or a status
	// that is neither a feasible solution nor a proof of infeasibility.
	StatusOther
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusInfeasible:
		return "infeasible"
	default:
		return "other"
	}
}

// infeasibilityReporter is implemented by mip.Solution when the solver
// backend can distinguish a proven-infeasible outcome from one that
// merely lacks an incumbent (e.g. a solver error or exhausted time
// budget with nothing found). A solution that does not implement it and
// has no incumbent falls back to StatusInfeasible in classify below.
type infeasibilityReporter interface {
	Infeasible() bool
}

// classify interprets a solver outcome into a three-way status: optimal,
// infeasible, or other.
func classify(sol mip.Solution, solveErr error) Status {
	if solveErr != nil || sol == nil {
		return StatusOther
	}
	if sol.IsOptimal() || sol.IsSubOptimal() {
		return StatusOptimal
	}
	if reporter, ok := sol.(infeasibilityReporter); ok {
		if reporter.Infeasible() {
			return StatusInfeasible
		}
		return StatusOther
	}
	// No infeasibility signal available from this solver backend: a
	// binary model this small that doesn't report an incumbent is
	// overwhelmingly a proven-infeasible model rather than a time-out,
	// since the default solve budget comfortably covers it.
	return StatusInfeasible
}

// solverDriver submits a model to the configured branch-and-bound solver
// and interprets its status. It carries no state across solves: each call
// is independent, so the primary solve and every diagnostic bisection
// sub-solve can be issued without any shared mutable context.
type solverDriver struct {
	log *zap.Logger
}

// solve submits m to the HiGHS backend via mip.NewSolver(mip.Highs, ...)
// and returns its interpreted status alongside the raw solution, whatever
// the status (nil when the solver could not be constructed).
func (d solverDriver) solve(m mip.Model, opts mip.SolveOptions, phase string) (mip.Solution, Status) {
	runID := uuid.New().String()
	log := d.log.With(zap.String("run_id", runID), zap.String("phase", phase))

	solver, err := mip.NewSolver(mip.Highs, m)
	if err != nil {
		log.Error("failed to construct solver", zap.Error(err))
		return nil, StatusOther
	}

	sol, err := solver.Solve(opts)
	status := classify(sol, err)
	if err != nil {
		log.Error("solve failed", zap.Error(err))
	} else {
		log.Debug("solve finished", zap.Stringer("status", status))
	}
	return sol, status
}
