package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/philippscheer/bachelorarbeit/internal/config"
	"github.com/philippscheer/bachelorarbeit/internal/logging"
	"github.com/philippscheer/bachelorarbeit/pkg/model"
)

var planners = map[string]func(zerolog.Logger) model.Planner{
	"hillclimbing":  model.NewHillClimbingPlanner,
	"offeringorder": model.NewOfferingOrderPlanner,
}

func main() {
	// Define arguments
	algorithmPtr := flag.String("algorithm", "hillclimbing", `Algorithm to build the plan. Allowed values are:
- "hillclimbing" (greedy local search, keeps climbing while an additional offering strictly improves the score),
- "offeringorder" (mark-sorted forward-checking backtracking, returns the first valid plan), where "hillclimbing" is the default`)
	filePathPtr := flag.String("file", "", "Path to the JSON input file holding time slots, courses, offerings and constraints")
	configPathPtr := flag.String("config", "", "Path to an optional YAML config file; its values override the flags")
	outFilePathPtr := flag.String("out", "", "Path to the file where the plan will be written; if empty, it'll be written into the Standard Output")
	verbosePtr := flag.Bool("verbose", false, "Enable debug logging of the search")
	flag.Parse()

	runConfig := config.Default()
	runConfig.Algorithm = strings.ToLower(*algorithmPtr)
	runConfig.Input = *filePathPtr
	runConfig.Output = *outFilePathPtr
	if *verbosePtr {
		runConfig.Logging = config.LoggingConfig{Level: "debug", Pretty: true}
	}

	if *configPathPtr != "" {
		loaded, err := config.Load(*configPathPtr)
		if err != nil {
			log.Fatalf("cannot load config: %v", err)
		}
		runConfig = merge(runConfig, loaded)
	}

	// Validate arguments
	if err := runConfig.Validate(); err != nil {
		log.Fatal(err)
	}
	if runConfig.Input == "" {
		log.Fatal("an input file must be specified")
	}

	logger, err := logging.New(runConfig.Logging.Level, runConfig.Logging.Pretty)
	if err != nil {
		log.Fatalf("cannot configure logging: %v", err)
	}

	// Extract input
	input, err := model.InputFromJson(runConfig.Input)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot parse input file")
	}
	input.Constraints = runConfig.Constraints.Apply(input.Constraints)

	// Build plan
	planner := planners[runConfig.Algorithm](logger)
	result, stats, err := planner.Build(input)
	if err != nil {
		logger.Fatal().Err(err).Msg("an error occurred during plan construction")
	}

	logger.Info().
		Uint64("iterations", stats.Iterations).
		Uint64("candidates", stats.Candidates).
		Uint64("backtracks", stats.Backtracks).
		Msg("search finished")

	// Verify plan correctness
	if !planner.Verify(result, input) {
		logger.Fatal().Msg("built plan failed verification")
	}

	// Marshal output into json
	resultJson, err := json.Marshal(result)
	if err != nil {
		logger.Fatal().Err(err).Msg("an error occurred while building output json")
	}

	// Verify outfile is empty, if so then write the result to the Standard Output
	if runConfig.Output == "" {
		fmt.Println(string(resultJson))
	} else {
		if err := os.WriteFile(runConfig.Output, resultJson, 0666); err != nil {
			logger.Fatal().Err(err).Msg("an error occurred while writing to the output file")
		}
	}

	if result.Status == model.StatusInfeasible {
		os.Exit(20)
	}
}

// merge overlays the YAML config onto the flag-derived one; file values win
// where present.
func merge(flags config.Config, file config.Config) config.Config {
	merged := file
	if merged.Input == "" {
		merged.Input = flags.Input
	}
	if merged.Output == "" {
		merged.Output = flags.Output
	}
	if merged.Algorithm == "" {
		merged.Algorithm = flags.Algorithm
	}
	return merged
}
