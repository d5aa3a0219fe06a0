// package main holds the implementation of the intern rotation scheduler.
package main

import (
	"github.com/nextmv-io/sdk/mip"
)

// input represents a struct definition that can read input.json: the
// rotation catalog and the intern headcount for the 12-month horizon.
type input struct {
	Rotations   []Rotation `json:"rotations" validate:"required,min=1,unique=ID,dive"`
	InternCount int        `json:"intern_count" validate:"required,gt=0"`
}

// options holds custom configuration data.
type options struct {
	ExternalCap int              `json:"external_cap" default:"3" usage:"max months any intern may spend across external (out) rotations"`
	BigM        float64          `json:"big_m" default:"100" usage:"big-M constant used to relax the out1 exclusivity constraint"`
	DebugLPPath string           `json:"debug_lp_path" usage:"if set, write the primary model's ordered constraint names to this path before solving"`
	Solve       mip.SolveOptions `json:"solve" usage:"holds fields to configure the solver"`
}

// result holds the output of a solve: either a populated assignment with
// its summaries, or an error log naming why no assignment was produced.
type result struct {
	Assignment      [][]string `json:"assignment,omitempty"`
	InternIDs       []string   `json:"intern_ids,omitempty"`
	MonthLabels     []string   `json:"month_labels,omitempty"`
	PerInternCounts [][]int    `json:"per_intern_counts,omitempty"`
	PerMonthCounts  [][]int    `json:"per_month_counts,omitempty"`
	RotationIDs     []string   `json:"rotation_ids,omitempty"`
	ErrorLog        string     `json:"error_log,omitempty"`
}
