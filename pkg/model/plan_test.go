package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlanAddRemoveRestoresAggregates(t *testing.T) {
	offering := Offering{Id: 10, Course: 1, Group: "m", Slots: []uint64{1, 2}}
	plan := NewPlan()

	plan.add(offering, 42)
	assert.Equal(t, uint64(1), plan.CourseCount())
	assert.Equal(t, uint64(2), plan.HourLoad())
	assert.Equal(t, int64(42), plan.Score())
	assert.True(t, plan.hasCourse(1))
	assert.True(t, plan.covers(1))
	assert.Equal(t, []uint64{10}, plan.SelectedOfferings())

	plan.remove(offering, 42)
	assert.Equal(t, uint64(0), plan.CourseCount())
	assert.Equal(t, uint64(0), plan.HourLoad())
	assert.Equal(t, int64(0), plan.Score())
	assert.False(t, plan.hasCourse(1))
	assert.False(t, plan.covers(1))
	assert.Empty(t, plan.SelectedOfferings())
}

func TestPlanStatusJson(t *testing.T) {
	valid, err := StatusValid.MarshalJSON()
	assert.Nil(t, err)
	assert.Equal(t, `"valid"`, string(valid))

	infeasible, err := StatusInfeasible.MarshalJSON()
	assert.Nil(t, err)
	assert.Equal(t, `"infeasible"`, string(infeasible))
}
