package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	results := []BenchmarkResult{
		{Algorithm: "hillclimbing", DurationMs: 10},
		{Algorithm: "hillclimbing", DurationMs: 20},
		{Algorithm: "offeringorder", DurationMs: 5},
	}

	means := summarize(results)

	assert.Equal(t, 15.0, means["hillclimbing"])
	assert.Equal(t, 5.0, means["offeringorder"])
}
