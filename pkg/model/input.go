package model

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
)

const (
	// BlockedPriority marks a time slot no offering may occupy, or a course
	// whose offerings must never be selected.
	BlockedPriority int64 = -100
	// MandatoryPriority marks a time slot every valid plan must cover, or a
	// course every valid plan must select an offering of.
	MandatoryPriority int64 = 100
)

type RawTimeSlot struct {
	Id       uint64
	Day      uint64
	Period   uint64
	Priority int64
}

type RawCourse struct {
	Id        uint64
	Priority  int64
	Offerings []uint64
}

type RawOffering struct {
	Id     uint64
	Course uint64
	Group  string
	Slots  []uint64
}

type RawPlannerInput struct {
	Slots       []RawTimeSlot
	Courses     []RawCourse
	Offerings   []RawOffering
	Constraints Constraints
}

// TimeSlot is one (day, period) cell of the weekly grid. Priority ranges
// from -100 (blocked) to +100 (mandatory coverage); the grid is immutable
// once the input is processed.
type TimeSlot struct {
	Id       uint64
	Day      uint64
	Period   uint64
	Priority int64
}

// Course is a plan point: a requirement slot filled by at most one of its
// candidate offerings. Priority weighs the mark of whichever offering is
// chosen for it.
type Course struct {
	Id        uint64
	Priority  int64
	Offerings []uint64
}

// Offering is a concrete schedulable session. Offerings are immutable search
// input: they are selected or rejected, never mutated.
type Offering struct {
	Id     uint64
	Course uint64
	Group  string
	Slots  []uint64
}

// Constraints are the run-scoped bounds a complete plan must satisfy.
type Constraints struct {
	MinCourses uint64
	MaxCourses uint64
	MinHours   uint64
	MaxHours   uint64
}

// PlannerInput is the read-only domain model both planners operate on. The
// derived indexes are identifier relations built once here, so the same
// input can back any number of concurrent builds.
type PlannerInput struct {
	Slots       []TimeSlot
	Courses     []Course
	Offerings   []Offering
	Constraints Constraints

	SlotIndex     map[uint64]TimeSlot
	CourseIndex   map[uint64]Course
	OfferingIndex map[uint64]Offering
	Groups        []string

	MandatorySlots   []uint64
	MandatoryCourses []uint64
	ExcludedCourses  map[uint64]bool
}

func InputFromJson(file string) (PlannerInput, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return PlannerInput{}, err
	}
	var inputJson map[string]any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return PlannerInput{}, err
	}

	var rawInput RawPlannerInput
	if err := mapstructure.Decode(inputJson, &rawInput); err != nil {
		return PlannerInput{}, err
	}
	return ProcessRawInput(rawInput)
}

// ProcessRawInput validates the raw payload and derives the lookup indexes.
// Structural violations (dangling references, out-of-range priorities,
// duplicate identifiers) fail the load before any search starts.
func ProcessRawInput(rawInput RawPlannerInput) (PlannerInput, error) {
	input := PlannerInput{
		Constraints:     rawInput.Constraints,
		SlotIndex:       make(map[uint64]TimeSlot, len(rawInput.Slots)),
		CourseIndex:     make(map[uint64]Course, len(rawInput.Courses)),
		OfferingIndex:   make(map[uint64]Offering, len(rawInput.Offerings)),
		ExcludedCourses: make(map[uint64]bool),
	}

	//** Manage time slots
	for _, rawSlot := range rawInput.Slots {
		if _, ok := input.SlotIndex[rawSlot.Id]; ok {
			return PlannerInput{}, fmt.Errorf("duplicate time slot id %v", rawSlot.Id)
		}
		if rawSlot.Priority < BlockedPriority || rawSlot.Priority > MandatoryPriority {
			return PlannerInput{}, fmt.Errorf("time slot %v has priority %v outside [%v, %v]", rawSlot.Id, rawSlot.Priority, BlockedPriority, MandatoryPriority)
		}
		slot := TimeSlot(rawSlot)
		input.SlotIndex[slot.Id] = slot
		input.Slots = append(input.Slots, slot)
		if slot.Priority == MandatoryPriority {
			input.MandatorySlots = append(input.MandatorySlots, slot.Id)
		}
	}

	//** Manage courses
	for _, rawCourse := range rawInput.Courses {
		if _, ok := input.CourseIndex[rawCourse.Id]; ok {
			return PlannerInput{}, fmt.Errorf("duplicate course id %v", rawCourse.Id)
		}
		if rawCourse.Priority < BlockedPriority || rawCourse.Priority > MandatoryPriority {
			return PlannerInput{}, fmt.Errorf("course %v has priority %v outside [%v, %v]", rawCourse.Id, rawCourse.Priority, BlockedPriority, MandatoryPriority)
		}
		course := Course{
			Id:        rawCourse.Id,
			Priority:  rawCourse.Priority,
			Offerings: slices.Clone(rawCourse.Offerings),
		}
		input.CourseIndex[course.Id] = course
		input.Courses = append(input.Courses, course)
		if course.Priority == MandatoryPriority {
			input.MandatoryCourses = append(input.MandatoryCourses, course.Id)
		} else if course.Priority == BlockedPriority {
			input.ExcludedCourses[course.Id] = true
		}
	}

	//** Manage offerings
	for _, rawOffering := range rawInput.Offerings {
		if _, ok := input.OfferingIndex[rawOffering.Id]; ok {
			return PlannerInput{}, fmt.Errorf("duplicate offering id %v", rawOffering.Id)
		}
		course, ok := input.CourseIndex[rawOffering.Course]
		if !ok {
			return PlannerInput{}, fmt.Errorf("offering %v references non-existent course %v", rawOffering.Id, rawOffering.Course)
		}
		if !slices.Contains(course.Offerings, rawOffering.Id) {
			return PlannerInput{}, fmt.Errorf("offering %v is not listed as a candidate of its owning course %v", rawOffering.Id, course.Id)
		}

		seenSlots := make(map[uint64]bool, len(rawOffering.Slots))
		for _, slot := range rawOffering.Slots {
			if _, ok := input.SlotIndex[slot]; !ok {
				return PlannerInput{}, fmt.Errorf("offering %v references non-existent time slot %v", rawOffering.Id, slot)
			}
			if seenSlots[slot] {
				return PlannerInput{}, fmt.Errorf("offering %v occupies time slot %v more than once", rawOffering.Id, slot)
			}
			seenSlots[slot] = true
		}

		offering := Offering{
			Id:     rawOffering.Id,
			Course: rawOffering.Course,
			Group:  rawOffering.Group,
			Slots:  slices.Clone(rawOffering.Slots),
		}
		input.OfferingIndex[offering.Id] = offering
		input.Offerings = append(input.Offerings, offering)
	}

	//** Verify every candidate listed by a course exists and points back
	for _, course := range input.Courses {
		for _, candidate := range course.Offerings {
			offering, ok := input.OfferingIndex[candidate]
			if !ok {
				return PlannerInput{}, fmt.Errorf("course %v lists non-existent offering %v", course.Id, candidate)
			}
			if offering.Course != course.Id {
				return PlannerInput{}, fmt.Errorf("course %v lists offering %v owned by course %v", course.Id, candidate, offering.Course)
			}
		}
	}

	//** Sort by id so iteration order is deterministic regardless of payload order
	slices.SortFunc(input.Slots, func(a, b TimeSlot) int { return compareIds(a.Id, b.Id) })
	slices.SortFunc(input.Courses, func(a, b Course) int { return compareIds(a.Id, b.Id) })
	slices.SortFunc(input.Offerings, func(a, b Offering) int { return compareIds(a.Id, b.Id) })
	slices.Sort(input.MandatorySlots)
	slices.Sort(input.MandatoryCourses)

	input.Groups = lo.Uniq(lo.Map(input.Offerings, func(offering Offering, _ int) string { return offering.Group }))
	slices.Sort(input.Groups)

	return input, nil
}

// CourseOfferings returns the offerings of a course in ascending id order.
func (input *PlannerInput) CourseOfferings(courseId uint64) []Offering {
	offerings := lo.Map(input.CourseIndex[courseId].Offerings, func(id uint64, _ int) Offering {
		return input.OfferingIndex[id]
	})
	slices.SortFunc(offerings, func(a, b Offering) int { return compareIds(a.Id, b.Id) })
	return offerings
}

func compareIds(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
