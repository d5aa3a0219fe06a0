package main

import (
	"fmt"
	"math"

	"github.com/nextmv-io/sdk/mip"
)

// ExtractAssignment reads the solution values of an Optimal solve and
// produces the month × intern → rotation matrix, indexed [intern][month]
// in input/catalog order.
//
// If no rotation's variable rounds to 1 for some (intern, month) pair the
// extractor returns an error. The solver's feasibility guarantee should
// make this impossible for an Optimal solution; it is retained as a
// defensive check surfaced to the caller as an extraction-anomaly error.
func ExtractAssignment(c Catalog, internCount int, sol mip.Solution, v *Variables) ([][]string, error) {
	assignment := make([][]string, internCount)
	for i := 0; i < internCount; i++ {
		assignment[i] = make([]string, monthsPerYear)
		for mo := 0; mo < monthsPerYear; mo++ {
			assigned := ""
			for r, rot := range c.Rotations {
				if math.Round(sol.Value(v.X[i][mo][r])) == 1 {
					assigned = rot.ID
					break
				}
			}
			if assigned == "" {
				return nil, fmt.Errorf(
					"internal inconsistency: no rotation materialized for %s in month %s",
					InternID(i), MonthLabel(mo),
				)
			}
			assignment[i][mo] = assigned
		}
	}
	return assignment, nil
}
