package model

// Planner builds a weekly plan for one student. Both implementations accept
// the same input and return the same result shape, so callers can swap
// algorithms without changing anything else.
type Planner interface {
	Build(
		input PlannerInput,
	) (result PlanResult, stats SearchStats, err error)

	Verify(
		result PlanResult,
		input PlannerInput,
	) bool
}
