package main

import (
	"fmt"

	"github.com/nextmv-io/sdk/mip"
)

// NamedConstraint is one named rule in the ordered constraint plan. Add
// materializes the rule against a model and the variable family that was
// built for that same model; it must not be called with variables
// belonging to a different model.
//
// Keeping the plan (name + Add closure) as a pure data structure — rather
// than calling m.NewConstraint directly while walking the catalog — is
// what lets the diagnoser re-materialize any prefix of the plan without
// re-deriving it.
type NamedConstraint struct {
	Name string
	Add  func(m mip.Model, v *Variables)
}

// PlanConstraints builds the ordered, named constraint list for a catalog,
// intern count, external cap, and big-M constant. It is a pure function of
// its inputs: calling it twice for the same arguments produces constraints
// in the same order with the same names, which is the determinism the
// bisection diagnoser (diagnose.go) depends on.
func PlanConstraints(c Catalog, internCount, externalCap int, bigM float64) []NamedConstraint {
	var plan []NamedConstraint
	rotations := c.Rotations

	// 1. One rotation per intern per month.
	for i := 0; i < internCount; i++ {
		for mo := 0; mo < monthsPerYear; mo++ {
			mo := mo
			i := i
			plan = append(plan, NamedConstraint{
				Name: fmt.Sprintf("Assignment_1Dept_Per_Month_%s_%s", InternID(i), MonthLabel(mo)),
				Add: func(m mip.Model, v *Variables) {
					ct := m.NewConstraint(mip.Equal, 1.0)
					for r := range rotations {
						ct.NewTerm(1.0, v.X[i][mo][r])
					}
				},
			})
		}
	}

	// 2. Monthly capacity, min then max, iterated by rotation then month.
	for r, rot := range rotations {
		for mo := 0; mo < monthsPerYear; mo++ {
			r := r
			mo := mo
			rot := rot
			plan = append(plan, NamedConstraint{
				Name: fmt.Sprintf("Dept_Capacity_Min_%s_%s", rot.ID, MonthLabel(mo)),
				Add: func(m mip.Model, v *Variables) {
					ct := m.NewConstraint(mip.GreaterThanOrEqual, float64(rot.MonthMin))
					for i := 0; i < internCount; i++ {
						ct.NewTerm(1.0, v.X[i][mo][r])
					}
				},
			})
			plan = append(plan, NamedConstraint{
				Name: fmt.Sprintf("Dept_Capacity_Max_%s_%s", rot.ID, MonthLabel(mo)),
				Add: func(m mip.Model, v *Variables) {
					ct := m.NewConstraint(mip.LessThanOrEqual, float64(rot.MonthMax))
					for i := 0; i < internCount; i++ {
						ct.NewTerm(1.0, v.X[i][mo][r])
					}
				},
			})
		}
	}

	// 3. Grouped per-intern quota, iterated by intern then group key;
	// group-key order is catalog insertion order.
	for i := 0; i < internCount; i++ {
		for _, key := range c.GroupOrder() {
			i := i
			members := c.GroupMembers(key)
			minI, maxI := 0, 0
			for _, r := range members {
				minI += rotations[r].StaffMin
				maxI += rotations[r].StaffMax
			}
			key := key
			minI, maxI := minI, maxI
			plan = append(plan, NamedConstraint{
				Name: fmt.Sprintf("Worker_Group_Min_%s_%s", InternID(i), key),
				Add: func(m mip.Model, v *Variables) {
					ct := m.NewConstraint(mip.GreaterThanOrEqual, float64(minI))
					for _, r := range members {
						for mo := 0; mo < monthsPerYear; mo++ {
							ct.NewTerm(1.0, v.X[i][mo][r])
						}
					}
				},
			})
			plan = append(plan, NamedConstraint{
				Name: fmt.Sprintf("Worker_Group_Max_%s_%s", InternID(i), key),
				Add: func(m mip.Model, v *Variables) {
					ct := m.NewConstraint(mip.LessThanOrEqual, float64(maxI))
					for _, r := range members {
						for mo := 0; mo < monthsPerYear; mo++ {
							ct.NewTerm(1.0, v.X[i][mo][r])
						}
					}
				},
			})
		}
	}

	// 4. Global external-placement count, max then min, iterated by
	// intern.
	outIndices := c.OutIndices()
	for i := 0; i < internCount; i++ {
		i := i
		plan = append(plan, NamedConstraint{
			Name: fmt.Sprintf("Global_Out_Max_%s", InternID(i)),
			Add: func(m mip.Model, v *Variables) {
				ct := m.NewConstraint(mip.LessThanOrEqual, float64(externalCap))
				for _, r := range outIndices {
					for mo := 0; mo < monthsPerYear; mo++ {
						ct.NewTerm(1.0, v.X[i][mo][r])
					}
				}
			},
		})
		plan = append(plan, NamedConstraint{
			Name: fmt.Sprintf("Global_Out_Min_%s", InternID(i)),
			Add: func(m mip.Model, v *Variables) {
				ct := m.NewConstraint(mip.GreaterThanOrEqual, float64(externalCap-2))
				for _, r := range outIndices {
					for mo := 0; mo < monthsPerYear; mo++ {
						ct.NewTerm(1.0, v.X[i][mo][r])
					}
				}
			},
		})
	}

	// 5. Continuity: for each intern, for each location group other than
	// out1, the per-rotation rule (main) or the per-group rule
	// (secondary externals), iterated over adjacent month pairs.
	// Location-group order is catalog first-appearance order, which keeps
	// the plan deterministic and repeatable across builds.
	for i := 0; i < internCount; i++ {
		i := i
		for _, loc := range c.LocationOrder() {
			if IsOut1(loc) {
				continue
			}
			members := c.RotationsInLocation(loc)
			if IsMain(loc) {
				for _, r := range members {
					r := r
					rotID := rotations[r].ID
					for mo := 0; mo < monthsPerYear-1; mo++ {
						mo := mo
						plan = append(plan, NamedConstraint{
							Name: fmt.Sprintf("No_Cont_Dept_%s_%s_%s", InternID(i), rotID, MonthLabel(mo)),
							Add: func(m mip.Model, v *Variables) {
								ct := m.NewConstraint(mip.LessThanOrEqual, 1.0)
								ct.NewTerm(1.0, v.X[i][mo][r])
								ct.NewTerm(1.0, v.X[i][mo+1][r])
							},
						})
					}
				}
			} else {
				loc := loc
				for mo := 0; mo < monthsPerYear-1; mo++ {
					mo := mo
					plan = append(plan, NamedConstraint{
						Name: fmt.Sprintf("No_Cont_Loc_%s_%s_%s", InternID(i), loc, MonthLabel(mo)),
						Add: func(m mip.Model, v *Variables) {
							ct := m.NewConstraint(mip.LessThanOrEqual, 1.0)
							for _, r := range members {
								ct.NewTerm(1.0, v.X[i][mo][r])
								ct.NewTerm(1.0, v.X[i][mo+1][r])
							}
						},
					})
				}
			}
		}
	}

	// 6. out1 constraints, per intern in the sub-order: start-max-once,
	// forced M1, forced M2, cross rule, exclusion of other externals;
	// then the monthly starter-count equality across interns.
	out1Indices := c.Out1Indices()
	for i := 0; i < internCount; i++ {
		i := i
		plan = append(plan, NamedConstraint{
			Name: fmt.Sprintf("Out1_Start_MaxOnce_%s", InternID(i)),
			Add: func(m mip.Model, v *Variables) {
				ct := m.NewConstraint(mip.LessThanOrEqual, 1.0)
				for s := 0; s < monthsPerYear-1; s++ {
					ct.NewTerm(1.0, v.Y[i][s])
				}
			},
		})

		for s := 0; s < monthsPerYear-1; s++ {
			s := s
			plan = append(plan, NamedConstraint{
				Name: fmt.Sprintf("Out1_ForcedM1_%s_%d", InternID(i), s),
				Add: func(m mip.Model, v *Variables) {
					ct := m.NewConstraint(mip.GreaterThanOrEqual, 0.0)
					for _, r := range out1Indices {
						ct.NewTerm(1.0, v.X[i][s][r])
					}
					ct.NewTerm(-1.0, v.Y[i][s])
				},
			})
			plan = append(plan, NamedConstraint{
				Name: fmt.Sprintf("Out1_ForcedM2_%s_%d", InternID(i), s),
				Add: func(m mip.Model, v *Variables) {
					ct := m.NewConstraint(mip.GreaterThanOrEqual, 0.0)
					for _, r := range out1Indices {
						ct.NewTerm(1.0, v.X[i][s+1][r])
					}
					ct.NewTerm(-1.0, v.Y[i][s])
				},
			})
			for _, r := range out1Indices {
				r := r
				plan = append(plan, NamedConstraint{
					Name: fmt.Sprintf("Out1_CrossRule_%s_%s_%d", InternID(i), rotations[r].ID, s),
					Add: func(m mip.Model, v *Variables) {
						ct := m.NewConstraint(mip.LessThanOrEqual, 2.0)
						ct.NewTerm(1.0, v.X[i][s][r])
						ct.NewTerm(1.0, v.X[i][s+1][r])
						ct.NewTerm(1.0, v.Y[i][s])
					},
				})
			}
			plan = append(plan, NamedConstraint{
				Name: fmt.Sprintf("Out1_Exclusion_OtherOuts_%s_%d", InternID(i), s),
				Add: func(m mip.Model, v *Variables) {
					ct := m.NewConstraint(mip.LessThanOrEqual, bigM)
					for om := 0; om < monthsPerYear; om++ {
						if om == s || om == s+1 {
							continue
						}
						for _, r := range outIndices {
							ct.NewTerm(1.0, v.X[i][om][r])
						}
					}
					ct.NewTerm(bigM, v.Y[i][s])
				},
			})
		}
	}

	for s := 0; s < monthsPerYear-1; s++ {
		s := s
		plan = append(plan, NamedConstraint{
			Name: fmt.Sprintf("Out1_Monthly_StarterCount_%d", s),
			Add: func(m mip.Model, v *Variables) {
				ct := m.NewConstraint(mip.Equal, 1.0)
				for i := 0; i < internCount; i++ {
					ct.NewTerm(1.0, v.Y[i][s])
				}
			},
		})
	}

	return plan
}
