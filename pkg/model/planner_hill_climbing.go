package model

import (
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// hillClimbingPlanner grows a plan greedily: each iteration enumerates every
// feasible addition and adopts the one yielding the highest-scoring
// successor. It keeps climbing past the first valid plan as long as another
// offering strictly improves the score and the course ceiling is not
// reached. Hill climbing after R. Feldman and M.C. Golumbic, "Optimization
// Algorithms for Student Scheduling via Constraint Satisfiability".
type hillClimbingPlanner struct {
	logger zerolog.Logger
}

func NewHillClimbingPlanner(logger zerolog.Logger) Planner {
	return &hillClimbingPlanner{logger: logger}
}

func (planner *hillClimbingPlanner) Build(input PlannerInput) (PlanResult, SearchStats, error) {
	var stats SearchStats
	if !boundsSatisfiable(input.Constraints) {
		return infeasibleResult(), stats, nil
	}

	evaluator := newPlanEvaluator(&input)
	available := evaluator.admissibleOfferings()
	plan := NewPlan()

	//** Seed mandatory courses with their best feasible offering
	for _, courseId := range input.MandatoryCourses {
		candidates := lo.Filter(available, func(offering Offering, _ int) bool {
			return offering.Course == courseId && evaluator.IsFeasibleAddition(plan, offering)
		})
		best, ok := bestByMark(candidates, evaluator)
		if !ok {
			planner.logger.Debug().Uint64("course", courseId).Msg("mandatory course has no feasible offering")
			return infeasibleResult(), stats, nil
		}
		plan.add(best, evaluator.Mark(best.Id))
	}

	for {
		stats.Iterations++

		//** Enumerate every feasible addition for courses not yet filled
		candidates := lo.Filter(available, func(offering Offering, _ int) bool {
			return evaluator.IsFeasibleAddition(plan, offering)
		})
		stats.Candidates += uint64(len(candidates))

		best, ok := bestByMark(candidates, evaluator)

		//** Stop on a valid plan that cannot or should not grow further
		if evaluator.IsValidComplete(plan) {
			if plan.CourseCount() == input.Constraints.MaxCourses {
				return plan.result(), stats, nil
			}
			if !ok || evaluator.Mark(best.Id) <= 0 {
				return plan.result(), stats, nil
			}
		} else if !ok {
			// No feasible addition remains and the plan never became valid
			return infeasibleResult(), stats, nil
		}

		plan.add(best, evaluator.Mark(best.Id))
		planner.logger.Debug().
			Uint64("offering", best.Id).
			Int64("mark", evaluator.Mark(best.Id)).
			Int64("score", plan.Score()).
			Uint64("courses", plan.CourseCount()).
			Msg("scheduled offering")
	}
}

func (planner *hillClimbingPlanner) Verify(result PlanResult, input PlannerInput) bool {
	return verify(result, input)
}

// bestByMark picks the candidate with the maximum mark; ties break towards
// the lowest offering id so repeated runs pick the same successor.
func bestByMark(candidates []Offering, evaluator *planEvaluator) (Offering, bool) {
	if len(candidates) == 0 {
		return Offering{}, false
	}
	best := candidates[0]
	for _, candidate := range candidates[1:] {
		if evaluator.Mark(candidate.Id) > evaluator.Mark(best.Id) ||
			(evaluator.Mark(candidate.Id) == evaluator.Mark(best.Id) && candidate.Id < best.Id) {
			best = candidate
		}
	}
	return best, true
}
