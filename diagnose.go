package main

import (
	"github.com/nextmv-io/sdk/mip"
	"go.uber.org/zap"
)

// noSingleCulprit is reported when no prefix solved during bisection comes
// back infeasible, so no single constraint can be named.
const noSingleCulprit = "complex interaction; no single culprit"

// Diagnose runs only after a primary solve reports StatusInfeasible. It
// performs an ordered bisection over PlanConstraints' deterministic output:
// construct a fresh sub-model containing only the first mid+1 constraints,
// solve it silently, and narrow toward the smallest infeasible prefix. It
// returns the name of the culprit constraint, or noSingleCulprit if no
// prefix bisection isolated one.
func Diagnose(
	c Catalog,
	internCount, externalCap int,
	bigM float64,
	driver solverDriver,
	solveOpts mip.SolveOptions,
) string {
	plan := PlanConstraints(c, internCount, externalCap, bigM)
	driver.log.Info("starting infeasibility diagnosis",
		zap.Int("constraint_count", len(plan)))

	lo, hi, culprit := 0, len(plan)-1, -1
	for lo <= hi {
		mid := (lo + hi) / 2
		subModel, _, _ := Materialize(c, internCount, externalCap, bigM, mid+1)
		_, status := driver.solve(subModel, solveOpts, "diagnose")
		if status == StatusInfeasible {
			culprit = mid
			hi = mid - 1
		} else {
			lo = mid + 1
		}
	}

	if culprit < 0 {
		driver.log.Warn("bisection found no single culprit", zap.Int("constraint_count", len(plan)))
		return noSingleCulprit
	}

	name := plan[culprit].Name
	driver.log.Info("diagnosis concluded", zap.String("culprit", name), zap.Int("culprit_index", culprit))
	return name
}
