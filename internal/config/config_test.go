package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philippscheer/bachelorarbeit/pkg/model"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.Nil(t, os.WriteFile(path, []byte(content), 0666))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "input: plan.json\n")

	config, err := Load(path)

	require.Nil(t, err)
	assert.Equal(t, "plan.json", config.Input)
	assert.Equal(t, "hillclimbing", config.Algorithm)
	assert.Equal(t, "info", config.Logging.Level)
	assert.Nil(t, config.Constraints)
}

func TestLoadRejectsUnknownAlgorithm(t *testing.T) {
	path := writeConfig(t, "algorithm: bruteforce\n")

	_, err := Load(path)

	assert.NotNil(t, err)
}

func TestConstraintOverrides(t *testing.T) {
	path := writeConfig(t, `
algorithm: offeringorder
constraints:
  maxCourses: 5
  maxHours: 20
logging:
  level: debug
  pretty: true
`)

	config, err := Load(path)
	require.Nil(t, err)

	constraints := config.Constraints.Apply(model.Constraints{
		MinCourses: 1, MaxCourses: 13, MinHours: 0, MaxHours: 45,
	})

	assert.Equal(t, model.Constraints{MinCourses: 1, MaxCourses: 5, MinHours: 0, MaxHours: 20}, constraints)
	assert.Equal(t, "debug", config.Logging.Level)
	assert.True(t, config.Logging.Pretty)
}

func TestNilOverridesAreIdentity(t *testing.T) {
	var overrides *ConstraintOverrides

	constraints := model.Constraints{MinCourses: 2, MaxCourses: 13, MinHours: 0, MaxHours: 45}
	assert.Equal(t, constraints, overrides.Apply(constraints))
}
