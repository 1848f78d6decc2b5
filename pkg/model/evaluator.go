package model

import "github.com/samber/lo"

// planEvaluator holds the memoized marks and answers the hard-constraint
// and scoring queries both planners share. Marks depend only on static slot
// and course priorities, so they are computed once per offering and never
// recomputed mid-search.
type planEvaluator struct {
	input *PlannerInput
	marks map[uint64]int64
}

func newPlanEvaluator(input *PlannerInput) *planEvaluator {
	return &planEvaluator{
		input: input,
		marks: make(map[uint64]int64, len(input.Offerings)),
	}
}

// Mark is the quality score of an offering: the sum of the priorities of the
// slots it occupies plus the priority of its owning course.
func (evaluator *planEvaluator) Mark(offeringId uint64) int64 {
	if mark, ok := evaluator.marks[offeringId]; ok {
		return mark
	}

	offering := evaluator.input.OfferingIndex[offeringId]
	mark := evaluator.input.CourseIndex[offering.Course].Priority
	for _, slot := range offering.Slots {
		mark += evaluator.input.SlotIndex[slot].Priority
	}

	evaluator.marks[offeringId] = mark
	return mark
}

// Admissible reports whether an offering can appear in any valid plan at
// all: it must not occupy a blocked slot and its course must not be
// excluded. Inadmissible offerings are dropped before either search starts.
func (evaluator *planEvaluator) Admissible(offering Offering) bool {
	if evaluator.input.ExcludedCourses[offering.Course] {
		return false
	}
	return !lo.SomeBy(offering.Slots, func(slot uint64) bool {
		return evaluator.input.SlotIndex[slot].Priority == BlockedPriority
	})
}

// IsFeasibleAddition reports whether adding the offering to the plan keeps
// every constraint that is meaningful for a partial plan: one offering per
// course, no slot collisions, no blocked slots, and the hour-load and
// course-count ceilings. Lower bounds and mandatory coverage only apply to
// complete plans and are not checked here.
func (evaluator *planEvaluator) IsFeasibleAddition(plan *Plan, offering Offering) bool {
	if plan.hasCourse(offering.Course) {
		return false
	}
	if plan.CourseCount()+1 > evaluator.input.Constraints.MaxCourses {
		return false
	}
	if plan.HourLoad()+uint64(len(offering.Slots)) > evaluator.input.Constraints.MaxHours {
		return false
	}
	for _, slot := range offering.Slots {
		if plan.covers(slot) || evaluator.input.SlotIndex[slot].Priority == BlockedPriority {
			return false
		}
	}
	return true
}

// IsValidComplete checks every hard constraint a final plan must satisfy:
// course-count and hour-load bounds, mandatory slot coverage and mandatory
// course selection. Collisions and blocked slots cannot occur in a plan
// grown through IsFeasibleAddition, but Verify re-checks them from scratch.
func (evaluator *planEvaluator) IsValidComplete(plan *Plan) bool {
	constraints := evaluator.input.Constraints
	if plan.CourseCount() < constraints.MinCourses || plan.CourseCount() > constraints.MaxCourses {
		return false
	}
	if plan.HourLoad() < constraints.MinHours || plan.HourLoad() > constraints.MaxHours {
		return false
	}
	for _, slot := range evaluator.input.MandatorySlots {
		if !plan.covers(slot) {
			return false
		}
	}
	for _, course := range evaluator.input.MandatoryCourses {
		if !plan.hasCourse(course) {
			return false
		}
	}
	return true
}

// ScoreOf is the aggregate mark of the plan's selections. The plan tracks
// it incrementally; recomputing here keeps the evaluator the single source
// of scoring truth for callers holding only a selection set.
func (evaluator *planEvaluator) ScoreOf(plan *Plan) int64 {
	return lo.SumBy(plan.order, func(offeringId uint64) int64 {
		return evaluator.Mark(offeringId)
	})
}

// admissibleOfferings filters the input's offerings down to those that can
// appear in some valid plan, preserving ascending id order.
func (evaluator *planEvaluator) admissibleOfferings() []Offering {
	return lo.Filter(evaluator.input.Offerings, func(offering Offering, _ int) bool {
		return evaluator.Admissible(offering)
	})
}
