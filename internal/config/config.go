// Package config loads the YAML run configuration shared by the cli and
// benchmark commands.
package config

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/philippscheer/bachelorarbeit/pkg/model"
)

var ValidAlgorithms = []string{"hillclimbing", "offeringorder"}

// Config describes one run: where the domain model payload lives, which
// algorithm builds the plan, optional constraint overrides and logging.
type Config struct {
	Input       string               `yaml:"input"`
	Output      string               `yaml:"output"`
	Algorithm   string               `yaml:"algorithm"`
	Constraints *ConstraintOverrides `yaml:"constraints"`
	Logging     LoggingConfig        `yaml:"logging"`
}

// ConstraintOverrides replace individual bounds from the payload when set.
type ConstraintOverrides struct {
	MinCourses *uint64 `yaml:"minCourses"`
	MaxCourses *uint64 `yaml:"maxCourses"`
	MinHours   *uint64 `yaml:"minHours"`
	MaxHours   *uint64 `yaml:"maxHours"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

func Default() Config {
	return Config{
		Algorithm: "hillclimbing",
		Logging:   LoggingConfig{Level: "info"},
	}
}

func Load(path string) (Config, error) {
	config := Default()

	bytes, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("cannot read config file: %w", err)
	}
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return Config{}, fmt.Errorf("cannot parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func (config Config) Validate() error {
	if !slices.Contains(ValidAlgorithms, config.Algorithm) {
		return fmt.Errorf("%v is not a valid algorithm, allowed values are %v", config.Algorithm, ValidAlgorithms)
	}
	return nil
}

// Apply overlays the configured constraint overrides onto the payload's
// constraint configuration.
func (overrides *ConstraintOverrides) Apply(constraints model.Constraints) model.Constraints {
	if overrides == nil {
		return constraints
	}
	if overrides.MinCourses != nil {
		constraints.MinCourses = *overrides.MinCourses
	}
	if overrides.MaxCourses != nil {
		constraints.MaxCourses = *overrides.MaxCourses
	}
	if overrides.MinHours != nil {
		constraints.MinHours = *overrides.MinHours
	}
	if overrides.MaxHours != nil {
		constraints.MaxHours = *overrides.MaxHours
	}
	return constraints
}
