package simulation

import "github.com/google/uuid"

// Percentiles holds the fixed percentile markers reported for an outcome
// dimension, covering both median-style and tail reporting.
type Percentiles struct {
	P10 float64 `json:"p10"`
	P25 float64 `json:"p25"`
	P50 float64 `json:"p50"`
	P75 float64 `json:"p75"`
	P80 float64 `json:"p80"`
	P90 float64 `json:"p90"`
	P95 float64 `json:"p95"`
}

// OutcomeStatistics summarizes one simulated outcome distribution.
type OutcomeStatistics struct {
	Mean        float64     `json:"mean"`
	StdDev      float64     `json:"std_dev"`
	Min         float64     `json:"min"`
	Max         float64     `json:"max"`
	Percentiles Percentiles `json:"percentiles"`
}

// PercentileAnalysis is the percentile summary over both outcome dimensions
// of one simulation.
type PercentileAnalysis struct {
	SimulationID uuid.UUID         `json:"simulation_id"`
	Cost         OutcomeStatistics `json:"cost"`
	Schedule     OutcomeStatistics `json:"schedule"`
}

// ConfidenceInterval is an empirical central interval at a stated level.
type ConfidenceInterval struct {
	Level      float64 `json:"level"`
	LowerBound float64 `json:"lower_bound"`
	UpperBound float64 `json:"upper_bound"`
}

// DimensionComparison holds the descriptive deltas and significance test
// outcome for one outcome dimension across two scenarios.
type DimensionComparison struct {
	BaselineMean     float64 `json:"baseline_mean"`
	ComparisonMean   float64 `json:"comparison_mean"`
	MeanDelta        float64 `json:"mean_delta"`
	MeanDeltaPercent float64 `json:"mean_delta_percent"`
	MedianDelta      float64 `json:"median_delta"`
	P90Delta         float64 `json:"p90_delta"`
	TStatistic       float64 `json:"t_statistic"`
	DegreesOfFreedom float64 `json:"degrees_of_freedom"`
	PValue           float64 `json:"p_value"`
	Significant      bool    `json:"significant"`
}

// ScenarioComparison compares two simulation result sets. The two runs may
// have different iteration counts.
type ScenarioComparison struct {
	BaselineID        uuid.UUID           `json:"baseline_id"`
	ComparisonID      uuid.UUID           `json:"comparison_id"`
	SignificanceLevel float64             `json:"significance_level"`
	Cost              DimensionComparison `json:"cost"`
	Schedule          DimensionComparison `json:"schedule"`
}
