package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds the application configuration.
type Config struct {
	Environment string

	Simulation SimulationConfig
	Logging    LoggingConfig
}

// SimulationConfig holds simulation defaults.
type SimulationConfig struct {
	Iterations       int
	ConfidenceLevels []float64
	TopContributors  int
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level    string
	Output   string
	FilePath string
}

// FromEnv builds the configuration from environment variables with defaults.
func FromEnv() *Config {
	return &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Simulation: SimulationConfig{
			Iterations:       getEnvInt("SIM_ITERATIONS", 10000),
			ConfidenceLevels: getEnvFloats("SIM_CONFIDENCE_LEVELS", []float64{0.80, 0.90, 0.95}),
			TopContributors:  getEnvInt("SIM_TOP_CONTRIBUTORS", 5),
		},
		Logging: LoggingConfig{
			Level:    getEnv("LOG_LEVEL", "info"),
			Output:   getEnv("LOG_OUTPUT", "stdout"),
			FilePath: getEnv("LOG_FILE", ""),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvFloats(key string, defaultValue []float64) []float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]float64, 0, len(parts))
	for _, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return defaultValue
		}
		out = append(out, f)
	}
	return out
}
