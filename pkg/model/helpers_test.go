package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mustProcess(t *testing.T, raw RawPlannerInput) PlannerInput {
	t.Helper()
	input, err := ProcessRawInput(raw)
	require.Nil(t, err)
	return input
}

// flatSlots builds a single-day grid of count slots with priority 0 and
// ids 1..count.
func flatSlots(count uint64) []RawTimeSlot {
	slots := make([]RawTimeSlot, 0, count)
	for period := uint64(0); period < count; period++ {
		slots = append(slots, RawTimeSlot{Id: period + 1, Day: 0, Period: period})
	}
	return slots
}
