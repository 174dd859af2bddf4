package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/projectlens/risksim/internal/adapters/audit"
	"github.com/projectlens/risksim/internal/adapters/database"
	"github.com/projectlens/risksim/internal/config"
	"github.com/projectlens/risksim/internal/logging"
	"github.com/projectlens/risksim/internal/services/projectrisk"
	"github.com/projectlens/risksim/internal/services/simulation"
)

func main() {
	var (
		projectArg = flag.String("project", "", "project id to analyze (UUID)")
		kind       = flag.String("kind", "budget", "analysis kind: budget, schedule, or resources")
		seedArg    = flag.String("seed", "", "optional random seed for a reproducible run")
		iterations = flag.Int("iterations", 0, "iteration count (0 uses configured default)")
	)
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	cfg := config.FromEnv()

	projectID, err := uuid.Parse(*projectArg)
	if err != nil {
		logger.Fatal("Invalid project id", zap.String("project", *projectArg), zap.Error(err))
	}

	// Database configuration
	dbCfg := database.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnvInt("DB_PORT", 5432),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		Database: getEnv("DB_NAME", "riskstore"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	ctx := context.Background()
	pool, err := database.Connect(ctx, dbCfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	logger.Info("Connected to database successfully")

	if err := database.EnsureSchema(ctx, pool); err != nil {
		logger.Fatal("Failed to ensure schema", zap.Error(err))
	}

	auditLogger, err := logging.New(&logging.Config{
		Level:    cfg.Logging.Level,
		Output:   cfg.Logging.Output,
		FilePath: cfg.Logging.FilePath,
	})
	if err != nil {
		logger.Fatal("Failed to initialize audit logger", zap.Error(err))
	}

	repo := database.NewProjectRepository(pool)
	engine := simulation.NewEngine()
	analyzer := simulation.NewAnalyzer()
	sink := audit.NewLogSink(auditLogger)

	service := projectrisk.NewService(repo, engine, analyzer, sink, projectrisk.Options{
		Iterations:       cfg.Simulation.Iterations,
		ConfidenceLevels: cfg.Simulation.ConfidenceLevels,
		TopN:             cfg.Simulation.TopContributors,
	})

	opts := &projectrisk.Options{Iterations: *iterations}
	if *seedArg != "" {
		seed, err := strconv.ParseInt(*seedArg, 10, 64)
		if err != nil {
			logger.Fatal("Invalid seed", zap.String("seed", *seedArg), zap.Error(err))
		}
		opts.Seed = &seed
	}

	var result interface{}
	switch *kind {
	case "budget":
		result, err = service.AnalyzeBudgetVariance(ctx, projectID, opts)
	case "schedule":
		result, err = service.AnalyzeScheduleVariance(ctx, projectID, opts)
	case "resources":
		result, err = service.AnalyzeResourceRisks(ctx, projectID, opts)
	default:
		logger.Fatal("Unknown analysis kind", zap.String("kind", *kind))
	}
	if err != nil {
		logger.Fatal("Analysis failed", zap.String("kind", *kind), zap.Error(err))
	}

	encoded, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		logger.Fatal("Failed to encode result", zap.Error(err))
	}
	fmt.Println(string(encoded))
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
