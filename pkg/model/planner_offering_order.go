package model

import (
	"slices"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// offeringOrderPlanner precomputes every mark once, fixes a selection order
// from them (groups by their best offering, courses within a group by their
// best offering, offerings within a course by mark) and then runs a
// depth-first forward-checking backtracking search over the course sequence.
// It returns the first complete valid plan under that order: the ordering is
// a heuristic proxy for quality, not an optimality guarantee.
type offeringOrderPlanner struct {
	logger zerolog.Logger
}

func NewOfferingOrderPlanner(logger zerolog.Logger) Planner {
	return &offeringOrderPlanner{logger: logger}
}

// courseEntry is one position of the flattened selection order: a course and
// its admissible offerings sorted by descending mark.
type courseEntry struct {
	courseId  uint64
	mandatory bool
	offerings []Offering
}

func (planner *offeringOrderPlanner) Build(input PlannerInput) (PlanResult, SearchStats, error) {
	var stats SearchStats
	if !boundsSatisfiable(input.Constraints) {
		return infeasibleResult(), stats, nil
	}

	evaluator := newPlanEvaluator(&input)

	sequence, ok := selectionOrder(&input, evaluator)
	if !ok {
		// A mandatory course has no admissible offering left
		return infeasibleResult(), stats, nil
	}
	planner.logger.Debug().Int("courses", len(sequence)).Msg("selection order fixed")

	search := &orderedSearch{
		input:     &input,
		evaluator: evaluator,
		sequence:  sequence,
		plan:      NewPlan(),
		stats:     &stats,
	}
	if !search.tryCourse(0) {
		// The tree is exhausted with no accepted leaf
		return infeasibleResult(), stats, nil
	}
	return search.plan.result(), stats, nil
}

func (planner *offeringOrderPlanner) Verify(result PlanResult, input PlannerInput) bool {
	return verify(result, input)
}

// selectionOrder runs the precompute-and-sort phase. It is fixed before the
// search and never re-run: marks depend only on static priorities.
func selectionOrder(input *PlannerInput, evaluator *planEvaluator) ([]courseEntry, bool) {
	mandatory := make(map[uint64]bool, len(input.MandatoryCourses))
	for _, courseId := range input.MandatoryCourses {
		mandatory[courseId] = true
	}

	//** Sort each course's admissible offerings by descending mark, ties by id
	entries := make([]courseEntry, 0, len(input.Courses))
	for _, course := range input.Courses {
		offerings := lo.Filter(input.CourseOfferings(course.Id), func(offering Offering, _ int) bool {
			return evaluator.Admissible(offering)
		})
		if len(offerings) == 0 {
			if mandatory[course.Id] {
				return nil, false
			}
			// A course without admissible offerings can only ever be skipped
			continue
		}
		slices.SortFunc(offerings, func(a, b Offering) int {
			if diff := evaluator.Mark(b.Id) - evaluator.Mark(a.Id); diff != 0 {
				return int(diff)
			}
			return compareIds(a.Id, b.Id)
		})
		entries = append(entries, courseEntry{
			courseId:  course.Id,
			mandatory: mandatory[course.Id],
			offerings: offerings,
		})
	}

	//** Partition courses into groups; a course joins the group of its best offering
	groupEntries := lo.GroupBy(entries, func(entry courseEntry) string {
		return entry.offerings[0].Group
	})

	//** Order courses inside each group by their best offering's mark
	for _, groupCourses := range groupEntries {
		slices.SortFunc(groupCourses, func(a, b courseEntry) int {
			if diff := evaluator.Mark(b.offerings[0].Id) - evaluator.Mark(a.offerings[0].Id); diff != 0 {
				return int(diff)
			}
			return compareIds(a.courseId, b.courseId)
		})
	}

	//** Order groups by their best course's best offering, then flatten
	groups := lo.Keys(groupEntries)
	slices.SortFunc(groups, func(a, b string) int {
		bestA, bestB := groupEntries[a][0].offerings[0], groupEntries[b][0].offerings[0]
		if diff := evaluator.Mark(bestB.Id) - evaluator.Mark(bestA.Id); diff != 0 {
			return int(diff)
		}
		return compareGroupIds(a, b)
	})

	sequence := make([]courseEntry, 0, len(entries))
	for _, group := range groups {
		sequence = append(sequence, groupEntries[group]...)
	}
	return sequence, true
}

func compareGroupIds(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

type orderedSearch struct {
	input     *PlannerInput
	evaluator *planEvaluator
	sequence  []courseEntry
	plan      *Plan
	stats     *SearchStats
}

// tryCourse explores the subtree rooted at one course position. Each frame
// holds only the course index and the tentatively added offering, so
// backtracking undoes a single delta. Recursion depth is bounded by the
// number of courses in the sequence.
func (search *orderedSearch) tryCourse(index int) bool {
	search.stats.Iterations++

	//** Forward checking: prune branches no completion can repair
	remaining := uint64(len(search.sequence) - index)
	if search.plan.CourseCount()+remaining < search.input.Constraints.MinCourses {
		return false
	}

	if index == len(search.sequence) {
		return search.evaluator.IsValidComplete(search.plan)
	}

	entry := search.sequence[index]
	for _, offering := range entry.offerings {
		search.stats.Candidates++
		if !search.evaluator.IsFeasibleAddition(search.plan, offering) {
			continue
		}

		mark := search.evaluator.Mark(offering.Id)
		search.plan.add(offering, mark)
		if search.tryCourse(index + 1) {
			return true
		}
		search.plan.remove(offering, mark)
		search.stats.Backtracks++
	}

	// Courses are optional plan points: skipping is always a branch, except
	// for mandatory courses
	if !entry.mandatory {
		return search.tryCourse(index + 1)
	}
	return false
}
