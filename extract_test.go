package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestExtractAssignmentShape solves a small feasible model (11 interns, so
// every out1 start month has a starter; two main rotations to alternate
// between; two out1 sub-rotations for the block) and checks that
// ExtractAssignment returns a fully populated, well-formed intern × month
// matrix whose entries are all real rotation IDs.
func TestExtractAssignmentShape(t *testing.T) {
	rotations := []Rotation{
		{ID: "R1", DeptGroup: "A", LocationGroup: "main", StaffMin: 0, StaffMax: 12, MonthMin: 0, MonthMax: 11},
		{ID: "R2", DeptGroup: "B", LocationGroup: "main", StaffMin: 0, StaffMax: 12, MonthMin: 0, MonthMax: 11},
		{ID: "OUT1A", DeptGroup: "A", LocationGroup: "out1", StaffMin: 0, StaffMax: 2, MonthMin: 0, MonthMax: 2},
		{ID: "OUT1B", DeptGroup: "A", LocationGroup: "out1", StaffMin: 0, StaffMax: 2, MonthMin: 0, MonthMax: 2},
	}
	const w = 11
	c, err := NewCatalog(rotations, w)
	require.NoError(t, err)

	m, v, _ := Materialize(c, w, 2, 100, -1)
	driver := testDriver()
	sol, status := driver.solve(m, testSolveOptions(), "test")
	require.Equal(t, StatusOptimal, status)

	assignment, err := ExtractAssignment(c, w, sol, v)
	require.NoError(t, err)
	require.Len(t, assignment, w)

	valid := map[string]bool{"R1": true, "R2": true, "OUT1A": true, "OUT1B": true}
	for i, row := range assignment {
		require.Len(t, row, monthsPerYear)
		for mo, id := range row {
			require.True(t, valid[id], "intern %d month %d has unrecognized rotation %q", i, mo, id)
		}
		// Rule 5 (main) and the out1 cross rule: no rotation repeats on
		// consecutive months.
		for mo := 0; mo < monthsPerYear-1; mo++ {
			require.NotEqual(t, row[mo], row[mo+1], "intern %d repeats %q across months %d-%d", i, row[mo], mo, mo+1)
		}
	}
}
