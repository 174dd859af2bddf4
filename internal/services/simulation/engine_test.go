package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/projectlens/risksim/internal/domain/risk"
	"github.com/projectlens/risksim/pkg/stats"
)

func mustRisk(t *testing.T, id string, impactType risk.ImpactType, distType risk.DistributionType, params map[string]float64) risk.Risk {
	t.Helper()
	dist, err := risk.NewProbabilityDistribution(distType, params)
	require.NoError(t, err)
	return risk.Risk{
		ID:           id,
		Name:         id,
		Category:     risk.CategoryCost,
		ImpactType:   impactType,
		Distribution: dist,
	}
}

func testRiskSet(t *testing.T) []risk.Risk {
	t.Helper()
	return []risk.Risk{
		mustRisk(t, "vendor-overrun", risk.ImpactCost, risk.DistributionTriangular,
			map[string]float64{"min": 10000, "mode": 25000, "max": 80000}),
		mustRisk(t, "permit-delay", risk.ImpactSchedule, risk.DistributionUniform,
			map[string]float64{"min": 5, "max": 30}),
		mustRisk(t, "rework", risk.ImpactBoth, risk.DistributionNormal,
			map[string]float64{"mean": 15000, "std": 4000}),
	}
}

func int64Ptr(v int64) *int64 { return &v }

func TestEngine_EmptyRiskSet(t *testing.T) {
	engine := NewEngine()

	_, err := engine.Run(nil, DefaultIterationFloor, nil, int64Ptr(1))
	require.Error(t, err)
	assert.ErrorIs(t, err, risk.ErrEmptyRiskSet)

	var perr *risk.PreconditionError
	assert.ErrorAs(t, err, &perr)
}

func TestEngine_IterationFloor(t *testing.T) {
	engine := NewEngine()
	risks := testRiskSet(t)

	_, err := engine.Run(risks, DefaultIterationFloor-1, nil, int64Ptr(1))
	assert.ErrorIs(t, err, risk.ErrIterationsBelowFloor)

	_, err = engine.Run(risks, -5, nil, int64Ptr(1))
	assert.ErrorIs(t, err, risk.ErrIterationsBelowFloor)

	results, err := engine.Run(risks, DefaultIterationFloor, nil, int64Ptr(1))
	require.NoError(t, err)
	assert.Equal(t, DefaultIterationFloor, results.IterationCount)
}

func TestEngine_DuplicateRiskID(t *testing.T) {
	engine := NewEngine()
	risks := testRiskSet(t)
	risks = append(risks, risks[0])

	_, err := engine.Run(risks, DefaultIterationFloor, nil, int64Ptr(1))
	assert.ErrorIs(t, err, risk.ErrDuplicateRiskID)
}

func TestEngine_Determinism(t *testing.T) {
	engine := NewEngine()
	risks := testRiskSet(t)

	first, err := engine.Run(risks, DefaultIterationFloor, nil, int64Ptr(4242))
	require.NoError(t, err)
	second, err := engine.Run(risks, DefaultIterationFloor, nil, int64Ptr(4242))
	require.NoError(t, err)

	assert.Equal(t, first.CostOutcomes, second.CostOutcomes)
	assert.Equal(t, first.ScheduleOutcomes, second.ScheduleOutcomes)
	assert.Equal(t, first.Contributions, second.Contributions)

	// Different run ids despite identical outcomes.
	assert.NotEqual(t, first.SimulationID, second.SimulationID)
}

func TestEngine_DifferentSeedsDiffer(t *testing.T) {
	engine := NewEngine()
	risks := testRiskSet(t)

	first, err := engine.Run(risks, DefaultIterationFloor, nil, int64Ptr(1))
	require.NoError(t, err)
	second, err := engine.Run(risks, DefaultIterationFloor, nil, int64Ptr(2))
	require.NoError(t, err)

	assert.NotEqual(t, first.CostOutcomes, second.CostOutcomes)
}

func TestEngine_ImpactTypeRouting(t *testing.T) {
	engine := NewEngine()

	// A single schedule-only risk leaves the cost dimension at zero.
	scheduleOnly := []risk.Risk{
		mustRisk(t, "permit-delay", risk.ImpactSchedule, risk.DistributionUniform,
			map[string]float64{"min": 5, "max": 30}),
	}
	results, err := engine.Run(scheduleOnly, DefaultIterationFloor, nil, int64Ptr(3))
	require.NoError(t, err)

	require.Len(t, results.CostOutcomes, DefaultIterationFloor)
	require.Len(t, results.ScheduleOutcomes, DefaultIterationFloor)
	for _, v := range results.CostOutcomes {
		require.Zero(t, v)
	}
	for _, v := range results.ScheduleOutcomes {
		require.Positive(t, v)
	}
}

func TestEngine_BothImpactFeedsBothDimensions(t *testing.T) {
	engine := NewEngine()

	both := []risk.Risk{
		mustRisk(t, "rework", risk.ImpactBoth, risk.DistributionUniform,
			map[string]float64{"min": 10, "max": 20}),
	}
	results, err := engine.Run(both, DefaultIterationFloor, nil, int64Ptr(3))
	require.NoError(t, err)

	assert.Equal(t, results.CostOutcomes, results.ScheduleOutcomes)
}

func TestEngine_OutcomeAggregation(t *testing.T) {
	engine := NewEngine()
	risks := testRiskSet(t)

	results, err := engine.Run(risks, DefaultIterationFloor, nil, int64Ptr(5))
	require.NoError(t, err)

	// Cost = vendor-overrun + rework; expected mean is the sum of the two
	// distribution means.
	expectedCost := (10000.0+25000+80000)/3 + 15000
	assert.InDelta(t, expectedCost, stats.Mean(results.CostOutcomes), 500)

	// Schedule = permit-delay + rework.
	expectedSchedule := (5.0+30)/2 + 15000
	assert.InDelta(t, expectedSchedule, stats.Mean(results.ScheduleOutcomes), 200)
}

func TestEngine_ProbabilityGating(t *testing.T) {
	engine := NewEngine()

	gated := mustRisk(t, "rare-event", risk.ImpactCost, risk.DistributionUniform,
		map[string]float64{"min": 100, "max": 100})
	gated.Probability = 0.25

	results, err := engine.Run([]risk.Risk{gated}, DefaultIterationFloor, nil, int64Ptr(13))
	require.NoError(t, err)

	require.Len(t, results.Contributions, 1)
	contrib := results.Contributions[0]
	assert.InDelta(t, 0.25, float64(contrib.Occurrences)/float64(results.IterationCount), 0.02)
	assert.InDelta(t, 25.0, contrib.MeanImpact, 2)
}

func TestEngine_Contributions(t *testing.T) {
	engine := NewEngine()
	risks := testRiskSet(t)

	results, err := engine.Run(risks, DefaultIterationFloor, nil, int64Ptr(8))
	require.NoError(t, err)

	require.Len(t, results.Contributions, len(risks))
	for i, contrib := range results.Contributions {
		assert.Equal(t, risks[i].ID, contrib.RiskID)
		assert.Equal(t, DefaultIterationFloor, contrib.Occurrences)
		assert.LessOrEqual(t, contrib.MinImpact, contrib.MeanImpact)
		assert.GreaterOrEqual(t, contrib.MaxImpact, contrib.MeanImpact)
		assert.GreaterOrEqual(t, contrib.Variance, 0.0)
	}
}

func TestEngine_CorrelatedRun(t *testing.T) {
	engine := NewEngine()
	risks := testRiskSet(t)

	matrix, err := risk.NewCorrelationMatrix([]string{"vendor-overrun", "rework"})
	require.NoError(t, err)
	require.NoError(t, matrix.Set("vendor-overrun", "rework", 0.7))

	first, err := engine.Run(risks, DefaultIterationFloor, matrix, int64Ptr(21))
	require.NoError(t, err)
	second, err := engine.Run(risks, DefaultIterationFloor, matrix, int64Ptr(21))
	require.NoError(t, err)

	assert.Equal(t, first.CostOutcomes, second.CostOutcomes)

	// Positive correlation between the two largest cost risks widens the
	// combined spread compared to an independent run.
	independent, err := engine.Run(risks, DefaultIterationFloor, nil, int64Ptr(21))
	require.NoError(t, err)
	assert.Greater(t, stats.StdDev(first.CostOutcomes), stats.StdDev(independent.CostOutcomes))
}

func TestEngine_CorrelationMatrixUnknownRisk(t *testing.T) {
	engine := NewEngine()
	risks := testRiskSet(t)

	matrix, err := risk.NewCorrelationMatrix([]string{"vendor-overrun", "ghost"})
	require.NoError(t, err)
	require.NoError(t, matrix.Set("vendor-overrun", "ghost", 0.5))

	_, err = engine.Run(risks, DefaultIterationFloor, matrix, int64Ptr(1))
	assert.ErrorIs(t, err, risk.ErrUnknownRiskID)
}

func TestEngine_ExecutionTimeRecorded(t *testing.T) {
	engine := NewEngine()

	results, err := engine.Run(testRiskSet(t), DefaultIterationFloor, nil, int64Ptr(1))
	require.NoError(t, err)
	assert.Positive(t, results.ExecutionTime)
	assert.False(t, results.CompletedAt.IsZero())
}

func TestEngine_SeedRecordedInResults(t *testing.T) {
	engine := NewEngine()

	seeded, err := engine.Run(testRiskSet(t), DefaultIterationFloor, nil, int64Ptr(99))
	require.NoError(t, err)
	require.NotNil(t, seeded.RandomSeed)
	assert.Equal(t, int64(99), *seeded.RandomSeed)

	unseeded, err := engine.Run(testRiskSet(t), DefaultIterationFloor, nil, nil)
	require.NoError(t, err)
	assert.Nil(t, unseeded.RandomSeed)
}
