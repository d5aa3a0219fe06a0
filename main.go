// package main holds the implementation of the intern rotation scheduler.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/nextmv-io/sdk/mip"
	"github.com/nextmv-io/sdk/run"
	"github.com/nextmv-io/sdk/run/schema"
	"go.uber.org/zap"
)

func main() {
	runner := run.CLI(solve)
	if err := runner.Run(context.Background()); err != nil {
		log.Fatal(err)
	}
}

// solve is the entrypoint wired to run.CLI. Input-malformed errors and a
// solver that fails to produce a solution object at all are returned
// immediately as plain errors; every other outcome (optimal, infeasible, or
// otherwise) is captured into the returned result's ErrorLog field instead.
func solve(_ context.Context, in input, opts options) (schema.Output, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return schema.Output{}, fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	catalog, err := NewCatalog(in.Rotations, in.InternCount)
	if err != nil {
		return schema.Output{}, err
	}

	driver := solverDriver{log: logger}

	m, v, plan := Materialize(catalog, in.InternCount, opts.ExternalCap, opts.BigM, -1)
	if opts.DebugLPPath != "" {
		if err := writeConstraintDebugDump(opts.DebugLPPath, plan); err != nil {
			logger.Warn("failed to write debug dump", zap.Error(err))
		}
	}

	sol, status := driver.solve(m, opts.Solve, "primary")
	if sol == nil {
		return schema.Output{}, fmt.Errorf("solver failed to produce a solution (status %s); see logs for detail", status)
	}

	res := formatResult(catalog, in.InternCount, opts, driver, sol, v, status)

	output := mip.Format(opts, res, sol)
	output.Statistics.Result.Custom = mip.DefaultCustomResultStatistics(m, sol)

	return output, nil
}

// formatResult maps a solve's status to a result: Optimal extracts and
// summarizes with an empty error log; Infeasible runs the diagnoser and
// reports its culprit; any other status reports a generic message naming
// it.
func formatResult(
	c Catalog,
	internCount int,
	opts options,
	driver solverDriver,
	sol mip.Solution,
	v *Variables,
	status Status,
) result {
	switch status {
	case StatusOptimal:
		assignment, err := ExtractAssignment(c, internCount, sol, v)
		if err != nil {
			return result{ErrorLog: err.Error()}
		}
		perIntern, perMonth := Summarize(c, internCount, assignment)
		return result{
			Assignment:      assignment,
			InternIDs:       internIDs(internCount),
			MonthLabels:     monthLabels(),
			PerInternCounts: perIntern,
			PerMonthCounts:  perMonth,
			RotationIDs:     rotationIDs(c),
		}
	case StatusInfeasible:
		culprit := Diagnose(c, internCount, opts.ExternalCap, opts.BigM, driver, opts.Solve)
		return result{ErrorLog: culprit}
	default:
		return result{ErrorLog: fmt.Sprintf("optimization failed: solver status %s", status)}
	}
}

func internIDs(internCount int) []string {
	ids := make([]string, internCount)
	for i := range ids {
		ids[i] = InternID(i)
	}
	return ids
}

func monthLabels() []string {
	labels := make([]string, monthsPerYear)
	for m := range labels {
		labels[m] = MonthLabel(m)
	}
	return labels
}

func rotationIDs(c Catalog) []string {
	ids := make([]string, len(c.Rotations))
	for i, r := range c.Rotations {
		ids[i] = r.ID
	}
	return ids
}

// writeConstraintDebugDump writes the ordered, named constraint plan to
// path, one name per line prefixed by its 0-based position. This mirrors
// model/intern_assign.py's prob.writeLP("intern_debug.lp") debug aid: the
// Go mip.Model/Constraint types expose no read-back API for coefficients
// once a term has been added, so the dump lists the deterministic
// ordering itself — exactly the information the bisection diagnoser's
// output (a constraint name) needs to be located in context.
func writeConstraintDebugDump(path string, plan []NamedConstraint) error {
	var b strings.Builder
	for i, nc := range plan {
		fmt.Fprintf(&b, "%d: %s\n", i, nc.Name)
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}
