package model

import "github.com/samber/lo"

// verify re-checks a build result against the input from scratch, without
// trusting any bookkeeping the search did: it rebuilds the occupancy table,
// recomputes the aggregates and tests every hard constraint.
func verify(result PlanResult, input PlannerInput) bool {
	if result.Status == StatusInfeasible {
		return len(result.SelectedOfferings) == 0
	}

	evaluator := newPlanEvaluator(&input)

	occupied := make(map[uint64]bool)
	selectedCourses := make(map[uint64]bool)
	var hours uint64
	var score int64

	for _, offeringId := range result.SelectedOfferings {
		offering, ok := input.OfferingIndex[offeringId]
		if !ok {
			return false
		}
		// Check that:
		// - At most one offering is selected per course
		// - No two selected offerings occupy the same time slot
		// - No selected offering occupies a blocked slot
		// - No selected offering belongs to an excluded course
		if selectedCourses[offering.Course] || input.ExcludedCourses[offering.Course] {
			return false
		}
		for _, slot := range offering.Slots {
			if occupied[slot] || input.SlotIndex[slot].Priority == BlockedPriority {
				return false
			}
			occupied[slot] = true
		}

		selectedCourses[offering.Course] = true
		hours += uint64(len(offering.Slots))
		score += evaluator.Mark(offeringId)
	}

	// Check mandatory slot coverage and mandatory course selection
	if lo.SomeBy(input.MandatorySlots, func(slot uint64) bool { return !occupied[slot] }) {
		return false
	}
	if lo.SomeBy(input.MandatoryCourses, func(course uint64) bool { return !selectedCourses[course] }) {
		return false
	}

	// Check bounds and that the reported aggregates match the selection
	constraints := input.Constraints
	courseCount := uint64(len(selectedCourses))
	if courseCount < constraints.MinCourses || courseCount > constraints.MaxCourses {
		return false
	}
	if hours < constraints.MinHours || hours > constraints.MaxHours {
		return false
	}
	return score == result.Score && hours == result.HourLoad && courseCount == result.CourseCount
}

// boundsSatisfiable reports whether the constraint configuration admits any
// plan at all. An unsatisfiable configuration is infeasible input, not a
// load error: the payload is structurally sound.
func boundsSatisfiable(constraints Constraints) bool {
	return constraints.MinCourses <= constraints.MaxCourses &&
		constraints.MinHours <= constraints.MaxHours
}
