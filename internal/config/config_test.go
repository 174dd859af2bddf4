package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv()

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 10000, cfg.Simulation.Iterations)
	assert.Equal(t, []float64{0.80, 0.90, 0.95}, cfg.Simulation.ConfidenceLevels)
	assert.Equal(t, 5, cfg.Simulation.TopContributors)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "stdout", cfg.Logging.Output)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("SIM_ITERATIONS", "50000")
	t.Setenv("SIM_CONFIDENCE_LEVELS", "0.5, 0.99")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := FromEnv()
	assert.Equal(t, 50000, cfg.Simulation.Iterations)
	assert.Equal(t, []float64{0.5, 0.99}, cfg.Simulation.ConfidenceLevels)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestFromEnvMalformedFloats(t *testing.T) {
	t.Setenv("SIM_CONFIDENCE_LEVELS", "0.5,ninety")

	cfg := FromEnv()
	assert.Equal(t, []float64{0.80, 0.90, 0.95}, cfg.Simulation.ConfidenceLevels)
}
