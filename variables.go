package main

import (
	"strconv"

	"github.com/nextmv-io/sdk/mip"
)

const monthsPerYear = 12

// Variables holds the decision-variable families: x[i,m,r] and the out1
// start-indicator y[i,m]. Indices are 0-based: intern 0..W-1,
// month 0..11 (label = month+1), rotation 0..len(Rotations)-1, and y's
// start-month index runs 0..10 (start label = index+1, covering months
// index and index+1).
type Variables struct {
	X [][][]mip.Bool // X[intern][month][rotation]
	Y [][]mip.Bool   // Y[intern][startMonth], startMonth in 0..10
}

// NewVariables registers a fresh variable family with m. Every invocation
// creates brand-new mip.Bool variables bound to the given model; callers
// must not reuse a Variables value across models.
func NewVariables(m mip.Model, internCount, rotationCount int) *Variables {
	v := &Variables{
		X: make([][][]mip.Bool, internCount),
		Y: make([][]mip.Bool, internCount),
	}
	for i := 0; i < internCount; i++ {
		v.X[i] = make([][]mip.Bool, monthsPerYear)
		for mo := 0; mo < monthsPerYear; mo++ {
			v.X[i][mo] = make([]mip.Bool, rotationCount)
			for r := 0; r < rotationCount; r++ {
				v.X[i][mo][r] = m.NewBool()
			}
		}
		v.Y[i] = make([]mip.Bool, monthsPerYear-1)
		for s := 0; s < monthsPerYear-1; s++ {
			v.Y[i][s] = m.NewBool()
		}
	}
	return v
}

// MonthLabel renders the Korean month label used on the external
// interface: "1월" for month index 0, ... "12월" for index 11.
func MonthLabel(monthIndex int) string {
	digits := [...]string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11", "12"}
	return digits[monthIndex] + "월"
}

// InternID renders the stable intern identifier: "Worker_1".."Worker_W"
// for intern index 0..W-1.
func InternID(internIndex int) string {
	return "Worker_" + strconv.Itoa(internIndex+1)
}
