package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/philippscheer/bachelorarbeit/pkg/model"
)

type BenchmarkResult struct {
	Test        string `csv:"test"`
	Algorithm   string `csv:"algorithm"`
	Run         int    `csv:"run"`
	DurationMs  int64  `csv:"duration_ms"`
	Status      string `csv:"status"`
	Score       int64  `csv:"score"`
	CourseCount uint64 `csv:"course_count"`
	HourLoad    uint64 `csv:"hour_load"`
	Iterations  uint64 `csv:"iterations"`
	Candidates  uint64 `csv:"candidates"`
	Backtracks  uint64 `csv:"backtracks"`
	Verified    bool   `csv:"verified"`
}

var planners = map[string]func(zerolog.Logger) model.Planner{
	"hillclimbing":  model.NewHillClimbingPlanner,
	"offeringorder": model.NewOfferingOrderPlanner,
}

func main() {
	directoryPtr := flag.String("dir", "testdata", "Directory holding JSON instance files")
	outPathPtr := flag.String("out", "benchmark.csv", "Path of the CSV file the results are written to")
	runsPtr := flag.Int("runs", 3, "Repetitions per instance and algorithm")
	flag.Parse()

	tests := getTests(*directoryPtr)
	if len(tests) == 0 {
		log.Fatalf("no instance files found in %v", *directoryPtr)
	}

	algorithms := lo.Keys(planners)
	slices.Sort(algorithms)
	results := make([]BenchmarkResult, 0, len(tests)*len(planners)**runsPtr)

	for _, test := range tests {
		input, err := model.InputFromJson(test)
		if err != nil {
			log.Fatalf("cannot parse instance file %v: %v", test, err)
		}

		for _, algorithm := range algorithms {
			planner := planners[algorithm](zerolog.Nop())
			for run := 0; run < *runsPtr; run++ {
				log.Printf("benchmarking %v with %v, run %v", filepath.Base(test), algorithm, run)

				start := time.Now()
				result, stats, err := planner.Build(input)
				duration := time.Since(start)
				if err != nil {
					log.Fatalf("build failed for %v with %v: %v", test, algorithm, err)
				}

				results = append(results, BenchmarkResult{
					Test:        strings.TrimSuffix(filepath.Base(test), ".json"),
					Algorithm:   algorithm,
					Run:         run,
					DurationMs:  duration.Milliseconds(),
					Status:      result.Status.String(),
					Score:       result.Score,
					CourseCount: result.CourseCount,
					HourLoad:    result.HourLoad,
					Iterations:  stats.Iterations,
					Candidates:  stats.Candidates,
					Backtracks:  stats.Backtracks,
					Verified:    planner.Verify(result, input),
				})
			}
		}
	}

	toCsv(results, *outPathPtr)

	for _, algorithm := range algorithms {
		log.Printf("%v: mean duration %.2fms", algorithm, summarize(results)[algorithm])
	}
}

func getTests(directory string) []string {
	entries, err := os.ReadDir(directory)
	if err != nil {
		log.Fatalf("cannot read directory: %v", err)
	}

	tests := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		tests = append(tests, filepath.Join(directory, entry.Name()))
	}
	return tests
}

// summarize computes the mean duration per algorithm in milliseconds.
func summarize(results []BenchmarkResult) map[string]float64 {
	grouped := lo.GroupBy(results, func(result BenchmarkResult) string { return result.Algorithm })
	return lo.MapValues(grouped, func(group []BenchmarkResult, _ string) float64 {
		total := lo.SumBy(group, func(result BenchmarkResult) int64 { return result.DurationMs })
		return float64(total) / float64(len(group))
	})
}

func toCsv(results []BenchmarkResult, path string) {
	file, err := os.Create(path)
	if err != nil {
		log.Fatalf("cannot create output file: %v", err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&results, file); err != nil {
		log.Fatalf("cannot write results: %v", err)
	}
}
