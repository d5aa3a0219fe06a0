package main

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Rotation is a single row of the rotation catalog: a clinical assignment
// slot tied to a quota group (DeptGroup) and a work-site group
// (LocationGroup).
type Rotation struct {
	ID            string `json:"id" validate:"required"`
	DeptGroup     string `json:"dept_group" validate:"required"`
	LocationGroup string `json:"location_group" validate:"required"`
	StaffMin      int    `json:"staff_min" validate:"gte=0"`
	StaffMax      int    `json:"staff_max" validate:"gte=0,gtefield=StaffMin"`
	MonthMin      int    `json:"month_min" validate:"gte=0"`
	MonthMax      int    `json:"month_max" validate:"gte=0,gtefield=MonthMin"`
}

// IsOut reports whether a location group names an external placement:
// "out1" (the primary external hospital) or any other "outK" token.
func IsOut(locationGroup string) bool {
	return strings.HasPrefix(locationGroup, "out")
}

// IsOut1 reports whether a location group is the primary external hospital.
func IsOut1(locationGroup string) bool {
	return locationGroup == "out1"
}

// IsMain reports whether a location group is an internal rotation.
func IsMain(locationGroup string) bool {
	return locationGroup == "main"
}

// groupKey returns the quota-group key for a rotation: its own ID when
// DeptGroup is the ungrouped sentinel "A", otherwise the shared DeptGroup
// string.
func groupKey(r Rotation) string {
	if r.DeptGroup == "A" {
		return r.ID
	}
	return r.DeptGroup
}

// Catalog is the validated, indexed rotation catalog. All derived sets are
// materialized once, in catalog (insertion) order, so that downstream
// consumers (the model builder, the diagnoser) see a deterministic order
// across repeated builds of the same input.
type Catalog struct {
	Rotations []Rotation

	// groupOrder lists quota-group keys in first-appearance order;
	// groups maps a key to the indices (into Rotations) of its members.
	groupOrder []string
	groups     map[string][]int

	// locationOrder lists distinct location-group values in
	// first-appearance order.
	locationOrder []string
}

// NewCatalog validates a rotation catalog and the intern headcount, and
// builds the derived quota-group and location-group views the constraint
// builder needs. It returns an error immediately on any malformed input;
// no solve is attempted in that case.
func NewCatalog(rotations []Rotation, internCount int) (Catalog, error) {
	in := input{Rotations: rotations, InternCount: internCount}
	if err := validator.New().Struct(in); err != nil {
		return Catalog{}, fmt.Errorf("input is malformed: %w", err)
	}

	c := Catalog{
		Rotations: rotations,
		groups:    make(map[string][]int),
	}
	seenLocations := make(map[string]struct{})
	for i, r := range rotations {
		key := groupKey(r)
		if _, ok := c.groups[key]; !ok {
			c.groupOrder = append(c.groupOrder, key)
		}
		c.groups[key] = append(c.groups[key], i)

		if _, ok := seenLocations[r.LocationGroup]; !ok {
			seenLocations[r.LocationGroup] = struct{}{}
			c.locationOrder = append(c.locationOrder, r.LocationGroup)
		}
	}

	return c, nil
}

// GroupOrder returns the quota-group keys in deterministic, first-seen
// order.
func (c Catalog) GroupOrder() []string { return c.groupOrder }

// GroupMembers returns the rotation indices belonging to a quota-group
// key, in catalog order.
func (c Catalog) GroupMembers(key string) []int { return c.groups[key] }

// LocationOrder returns the distinct location-group values in
// first-appearance order.
func (c Catalog) LocationOrder() []string { return c.locationOrder }

// RotationsInLocation returns the indices of rotations sharing a location
// group, in catalog order.
func (c Catalog) RotationsInLocation(location string) []int {
	indices := make([]int, 0)
	for i, r := range c.Rotations {
		if r.LocationGroup == location {
			indices = append(indices, i)
		}
	}
	return indices
}

// Out1Indices returns the indices of the primary-external (out1)
// rotations, in catalog order.
func (c Catalog) Out1Indices() []int { return c.RotationsInLocation("out1") }

// OutIndices returns the indices of every external (out-prefixed)
// rotation, in catalog order.
func (c Catalog) OutIndices() []int {
	indices := make([]int, 0)
	for i, r := range c.Rotations {
		if IsOut(r.LocationGroup) {
			indices = append(indices, i)
		}
	}
	return indices
}
