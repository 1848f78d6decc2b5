package model

import "slices"

type PlanStatus int

const (
	StatusValid PlanStatus = iota
	StatusInfeasible
)

var planStatuses = map[PlanStatus]string{
	StatusValid:      "valid",
	StatusInfeasible: "infeasible",
}

func (status PlanStatus) String() string {
	return planStatuses[status]
}

func (status PlanStatus) MarshalJSON() ([]byte, error) {
	return []byte(`"` + status.String() + `"`), nil
}

// PlanResult is the outcome of a build. Infeasibility is an expected
// outcome reported as data, not an error: a caller comparing algorithms
// needs to observe "no valid plan" the same way it observes a plan.
type PlanResult struct {
	Status            PlanStatus `json:"status"`
	SelectedOfferings []uint64   `json:"selectedOfferings,omitempty"`
	Score             int64      `json:"score"`
	HourLoad          uint64     `json:"hourLoad"`
	CourseCount       uint64     `json:"courseCount"`
}

// SearchStats describe how much work a build performed.
type SearchStats struct {
	Iterations uint64
	Candidates uint64
	Backtracks uint64
}

// Plan is the mutable search state. Both builders grow (and the backtracking
// builder retracts) a plan exclusively through add and remove, so backtrack
// is a pop plus an undone delta, never a full copy.
type Plan struct {
	selected map[uint64]uint64 // course id -> offering id
	occupied map[uint64]uint64 // slot id -> occupying offering id
	order    []uint64          // offering ids in selection order
	hours    uint64
	score    int64
}

func NewPlan() *Plan {
	return &Plan{
		selected: make(map[uint64]uint64),
		occupied: make(map[uint64]uint64),
	}
}

func (plan *Plan) add(offering Offering, mark int64) {
	plan.selected[offering.Course] = offering.Id
	for _, slot := range offering.Slots {
		plan.occupied[slot] = offering.Id
	}
	plan.order = append(plan.order, offering.Id)
	plan.hours += uint64(len(offering.Slots))
	plan.score += mark
}

func (plan *Plan) remove(offering Offering, mark int64) {
	delete(plan.selected, offering.Course)
	for _, slot := range offering.Slots {
		delete(plan.occupied, slot)
	}
	plan.order = plan.order[:len(plan.order)-1]
	plan.hours -= uint64(len(offering.Slots))
	plan.score -= mark
}

func (plan *Plan) CourseCount() uint64 {
	return uint64(len(plan.selected))
}

func (plan *Plan) HourLoad() uint64 {
	return plan.hours
}

func (plan *Plan) Score() int64 {
	return plan.score
}

func (plan *Plan) hasCourse(courseId uint64) bool {
	_, ok := plan.selected[courseId]
	return ok
}

func (plan *Plan) covers(slotId uint64) bool {
	_, ok := plan.occupied[slotId]
	return ok
}

// SelectedOfferings returns the selected offering ids in ascending order.
func (plan *Plan) SelectedOfferings() []uint64 {
	selected := slices.Clone(plan.order)
	slices.Sort(selected)
	return selected
}

func (plan *Plan) result() PlanResult {
	return PlanResult{
		Status:            StatusValid,
		SelectedOfferings: plan.SelectedOfferings(),
		Score:             plan.score,
		HourLoad:          plan.hours,
		CourseCount:       plan.CourseCount(),
	}
}

func infeasibleResult() PlanResult {
	return PlanResult{Status: StatusInfeasible}
}
