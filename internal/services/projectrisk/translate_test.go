package projectrisk

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/projectlens/risksim/internal/domain/project"
	"github.com/projectlens/risksim/internal/domain/risk"
)

func TestRiskFromRecord_ThreePoint(t *testing.T) {
	rec := &project.RiskRecord{
		ID:           uuid.New(),
		Name:         "vendor overrun",
		Category:     risk.CategoryCost,
		ImpactType:   risk.ImpactCost,
		Probability:  0.6,
		LowImpact:    floatPtr(10000),
		LikelyImpact: floatPtr(25000),
		HighImpact:   floatPtr(80000),
	}

	r, ok := RiskFromRecord(rec)
	require.True(t, ok)
	assert.Equal(t, risk.DistributionTriangular, r.Distribution.Type)
	assert.Equal(t, 10000.0, r.Distribution.Parameters["min"])
	assert.Equal(t, 25000.0, r.Distribution.Parameters["mode"])
	assert.Equal(t, 80000.0, r.Distribution.Parameters["max"])
	assert.Equal(t, 0.6, r.Probability)
	assert.Equal(t, 25000.0, r.BaselineImpact)
}

func TestRiskFromRecord_ThreePointReordered(t *testing.T) {
	// Values entered out of order still produce a valid triangular.
	rec := &project.RiskRecord{
		ID:           uuid.New(),
		Name:         "misordered entry",
		ImpactType:   risk.ImpactCost,
		LowImpact:    floatPtr(80000),
		LikelyImpact: floatPtr(10000),
		HighImpact:   floatPtr(25000),
	}

	r, ok := RiskFromRecord(rec)
	require.True(t, ok)
	assert.Equal(t, 10000.0, r.Distribution.Parameters["min"])
	assert.Equal(t, 25000.0, r.Distribution.Parameters["mode"])
	assert.Equal(t, 80000.0, r.Distribution.Parameters["max"])
}

func TestRiskFromRecord_Normal(t *testing.T) {
	rec := &project.RiskRecord{
		ID:         uuid.New(),
		Name:       "labor rate drift",
		ImpactType: risk.ImpactCost,
		MeanImpact: floatPtr(15000),
		StdImpact:  floatPtr(4000),
	}

	r, ok := RiskFromRecord(rec)
	require.True(t, ok)
	assert.Equal(t, risk.DistributionNormal, r.Distribution.Type)
	assert.Equal(t, 15000.0, r.Distribution.Parameters["mean"])
	assert.Equal(t, 4000.0, r.Distribution.Parameters["std"])
	assert.Equal(t, 15000.0, r.BaselineImpact)
}

func TestRiskFromRecord_NormalNeedsPositiveStd(t *testing.T) {
	rec := &project.RiskRecord{
		ID:         uuid.New(),
		Name:       "zero spread",
		ImpactType: risk.ImpactCost,
		MeanImpact: floatPtr(15000),
		StdImpact:  floatPtr(0),
	}

	_, ok := RiskFromRecord(rec)
	assert.False(t, ok)
}

func TestRiskFromRecord_LikelyOnly(t *testing.T) {
	rec := &project.RiskRecord{
		ID:           uuid.New(),
		Name:         "permit delay",
		ImpactType:   risk.ImpactSchedule,
		LikelyImpact: floatPtr(20),
	}

	r, ok := RiskFromRecord(rec)
	require.True(t, ok)
	assert.Equal(t, risk.DistributionTriangular, r.Distribution.Type)
	assert.InDelta(t, 16.0, r.Distribution.Parameters["min"], 1e-9)
	assert.InDelta(t, 20.0, r.Distribution.Parameters["mode"], 1e-9)
	assert.InDelta(t, 24.0, r.Distribution.Parameters["max"], 1e-9)
}

func TestRiskFromRecord_LikelyOnlyNegative(t *testing.T) {
	// Negative impact swaps the band bounds so min stays below max.
	rec := &project.RiskRecord{
		ID:           uuid.New(),
		Name:         "scope reduction",
		ImpactType:   risk.ImpactCost,
		LikelyImpact: floatPtr(-10000),
	}

	r, ok := RiskFromRecord(rec)
	require.True(t, ok)
	assert.InDelta(t, -12000.0, r.Distribution.Parameters["min"], 1e-9)
	assert.InDelta(t, -8000.0, r.Distribution.Parameters["max"], 1e-9)
}

func TestRiskFromRecord_Unquantified(t *testing.T) {
	rec := &project.RiskRecord{
		ID:         uuid.New(),
		Name:       "vague concern",
		ImpactType: risk.ImpactCost,
	}

	_, ok := RiskFromRecord(rec)
	assert.False(t, ok)
}

func TestRiskFromRecord_ProbabilityClamped(t *testing.T) {
	rec := &project.RiskRecord{
		ID:           uuid.New(),
		Name:         "overconfident entry",
		ImpactType:   risk.ImpactCost,
		Probability:  1.7,
		LikelyImpact: floatPtr(100),
	}

	r, ok := RiskFromRecord(rec)
	require.True(t, ok)
	assert.Equal(t, 1.0, r.Probability)

	rec.Probability = -0.4
	r, ok = RiskFromRecord(rec)
	require.True(t, ok)
	assert.Equal(t, 0.0, r.Probability)
}

func TestTranslateRecords_SkipsUnquantified(t *testing.T) {
	records := []*project.RiskRecord{
		{ID: uuid.New(), Name: "quantified", ImpactType: risk.ImpactCost, LikelyImpact: floatPtr(100)},
		{ID: uuid.New(), Name: "vague", ImpactType: risk.ImpactCost},
		{ID: uuid.New(), Name: "also quantified", ImpactType: risk.ImpactSchedule, MeanImpact: floatPtr(5), StdImpact: floatPtr(1)},
	}

	risks := translateRecords(records)
	require.Len(t, risks, 2)
	assert.Equal(t, "quantified", risks[0].Name)
	assert.Equal(t, "also quantified", risks[1].Name)
}

func TestFilters(t *testing.T) {
	risks := []risk.Risk{
		{ID: "c", ImpactType: risk.ImpactCost, Category: risk.CategoryCost},
		{ID: "s", ImpactType: risk.ImpactSchedule, Category: risk.CategorySchedule},
		{ID: "b", ImpactType: risk.ImpactBoth, Category: risk.CategoryResource},
	}

	cost := costRisks(risks)
	require.Len(t, cost, 2)
	assert.Equal(t, "c", cost[0].ID)
	assert.Equal(t, "b", cost[1].ID)

	schedule := scheduleRisks(risks)
	require.Len(t, schedule, 2)
	assert.Equal(t, "s", schedule[0].ID)
	assert.Equal(t, "b", schedule[1].ID)

	resource := resourceRisks(risks)
	require.Len(t, resource, 1)
	assert.Equal(t, "b", resource[0].ID)
}
