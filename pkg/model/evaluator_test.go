package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func markInput(t *testing.T) PlannerInput {
	return mustProcess(t, RawPlannerInput{
		Slots: []RawTimeSlot{
			{Id: 1, Day: 0, Period: 9, Priority: 50},
			{Id: 2, Day: 0, Period: 10, Priority: 75},
			{Id: 3, Day: 1, Period: 18, Priority: -50},
			{Id: 4, Day: 1, Period: 7, Priority: -100},
		},
		Courses: []RawCourse{
			{Id: 1, Priority: 20, Offerings: []uint64{10}},
			{Id: 2, Priority: -10, Offerings: []uint64{20}},
			{Id: 3, Priority: 0, Offerings: []uint64{30}},
		},
		Offerings: []RawOffering{
			{Id: 10, Course: 1, Group: "adp", Slots: []uint64{1, 2}},
			{Id: 20, Course: 2, Group: "bis", Slots: []uint64{3}},
			{Id: 30, Course: 3, Group: "bis", Slots: []uint64{4}},
		},
		Constraints: Constraints{MinCourses: 0, MaxCourses: 3, MinHours: 0, MaxHours: 10},
	})
}

func TestMark(t *testing.T) {
	input := markInput(t)
	evaluator := newPlanEvaluator(&input)

	// Slot priorities plus owning course priority
	assert.Equal(t, int64(50+75+20), evaluator.Mark(10))
	assert.Equal(t, int64(-50-10), evaluator.Mark(20))
}

func TestMarkIsIdempotentAcrossPlanState(t *testing.T) {
	input := markInput(t)
	evaluator := newPlanEvaluator(&input)

	before := evaluator.Mark(10)
	plan := NewPlan()
	plan.add(input.OfferingIndex[20], evaluator.Mark(20))

	assert.Equal(t, before, evaluator.Mark(10))
	plan.remove(input.OfferingIndex[20], evaluator.Mark(20))
	assert.Equal(t, before, evaluator.Mark(10))
}

func TestAdmissible(t *testing.T) {
	input := mustProcess(t, RawPlannerInput{
		Slots: []RawTimeSlot{
			{Id: 1, Day: 0, Period: 9, Priority: 0},
			{Id: 2, Day: 0, Period: 7, Priority: -100},
		},
		Courses: []RawCourse{
			{Id: 1, Priority: 0, Offerings: []uint64{10, 11}},
			{Id: 2, Priority: -100, Offerings: []uint64{20}},
		},
		Offerings: []RawOffering{
			{Id: 10, Course: 1, Group: "m", Slots: []uint64{1}},
			{Id: 11, Course: 1, Group: "m", Slots: []uint64{2}},
			{Id: 20, Course: 2, Group: "m", Slots: []uint64{1}},
		},
		Constraints: Constraints{MaxCourses: 2, MaxHours: 10},
	})
	evaluator := newPlanEvaluator(&input)

	assert.True(t, evaluator.Admissible(input.OfferingIndex[10]))
	// Occupies a blocked slot
	assert.False(t, evaluator.Admissible(input.OfferingIndex[11]))
	// Owning course is excluded
	assert.False(t, evaluator.Admissible(input.OfferingIndex[20]))
}

func TestIsFeasibleAddition(t *testing.T) {
	input := mustProcess(t, RawPlannerInput{
		Slots: flatSlots(4),
		Courses: []RawCourse{
			{Id: 1, Priority: 0, Offerings: []uint64{10, 11}},
			{Id: 2, Priority: 0, Offerings: []uint64{20}},
			{Id: 3, Priority: 0, Offerings: []uint64{30}},
		},
		Offerings: []RawOffering{
			{Id: 10, Course: 1, Group: "m", Slots: []uint64{1}},
			{Id: 11, Course: 1, Group: "m", Slots: []uint64{2}},
			{Id: 20, Course: 2, Group: "m", Slots: []uint64{1}},
			{Id: 30, Course: 3, Group: "m", Slots: []uint64{3, 4}},
		},
		Constraints: Constraints{MinCourses: 0, MaxCourses: 2, MinHours: 0, MaxHours: 2},
	})
	evaluator := newPlanEvaluator(&input)

	plan := NewPlan()
	assert.True(t, evaluator.IsFeasibleAddition(plan, input.OfferingIndex[10]))

	plan.add(input.OfferingIndex[10], evaluator.Mark(10))
	// Course already filled
	assert.False(t, evaluator.IsFeasibleAddition(plan, input.OfferingIndex[11]))
	// Slot collision
	assert.False(t, evaluator.IsFeasibleAddition(plan, input.OfferingIndex[20]))
	// Hour-load ceiling: 1 + 2 > 2
	assert.False(t, evaluator.IsFeasibleAddition(plan, input.OfferingIndex[30]))
}

func TestIsValidCompleteBounds(t *testing.T) {
	input := mustProcess(t, RawPlannerInput{
		Slots: flatSlots(4),
		Courses: []RawCourse{
			{Id: 1, Priority: 0, Offerings: []uint64{10}},
			{Id: 2, Priority: 0, Offerings: []uint64{20}},
			{Id: 3, Priority: 0, Offerings: []uint64{30}},
		},
		Offerings: []RawOffering{
			{Id: 10, Course: 1, Group: "m", Slots: []uint64{1}},
			{Id: 20, Course: 2, Group: "m", Slots: []uint64{2}},
			{Id: 30, Course: 3, Group: "m", Slots: []uint64{3}},
		},
		Constraints: Constraints{MinCourses: 1, MaxCourses: 2, MinHours: 1, MaxHours: 2},
	})
	evaluator := newPlanEvaluator(&input)
	plan := NewPlan()

	// One outside the lower bounds
	assert.False(t, evaluator.IsValidComplete(plan))

	// Boundary values themselves are accepted
	plan.add(input.OfferingIndex[10], evaluator.Mark(10))
	assert.True(t, evaluator.IsValidComplete(plan))
	plan.add(input.OfferingIndex[20], evaluator.Mark(20))
	assert.True(t, evaluator.IsValidComplete(plan))

	// One outside the upper bounds
	plan.add(input.OfferingIndex[30], evaluator.Mark(30))
	assert.False(t, evaluator.IsValidComplete(plan))
}

func TestIsValidCompleteMandatoryCoverage(t *testing.T) {
	input := mustProcess(t, RawPlannerInput{
		Slots: []RawTimeSlot{
			{Id: 1, Day: 0, Period: 9, Priority: 100},
			{Id: 2, Day: 0, Period: 10, Priority: 0},
		},
		Courses: []RawCourse{
			{Id: 1, Priority: 100, Offerings: []uint64{10}},
			{Id: 2, Priority: 0, Offerings: []uint64{20}},
		},
		Offerings: []RawOffering{
			{Id: 10, Course: 1, Group: "m", Slots: []uint64{1}},
			{Id: 20, Course: 2, Group: "m", Slots: []uint64{2}},
		},
		Constraints: Constraints{MinCourses: 0, MaxCourses: 2, MinHours: 0, MaxHours: 10},
	})
	evaluator := newPlanEvaluator(&input)
	plan := NewPlan()

	// Mandatory slot 1 uncovered and mandatory course 1 unselected
	plan.add(input.OfferingIndex[20], evaluator.Mark(20))
	assert.False(t, evaluator.IsValidComplete(plan))

	plan.add(input.OfferingIndex[10], evaluator.Mark(10))
	assert.True(t, evaluator.IsValidComplete(plan))
}

func TestScoreOf(t *testing.T) {
	input := markInput(t)
	evaluator := newPlanEvaluator(&input)
	plan := NewPlan()

	assert.Equal(t, int64(0), evaluator.ScoreOf(plan))

	plan.add(input.OfferingIndex[10], evaluator.Mark(10))
	plan.add(input.OfferingIndex[20], evaluator.Mark(20))
	assert.Equal(t, evaluator.Mark(10)+evaluator.Mark(20), evaluator.ScoreOf(plan))
	assert.Equal(t, plan.Score(), evaluator.ScoreOf(plan))
}
