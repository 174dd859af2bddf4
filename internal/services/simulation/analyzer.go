package simulation

import (
	"errors"
	"fmt"
	"sort"

	"github.com/projectlens/risksim/internal/domain/risk"
	simdomain "github.com/projectlens/risksim/internal/domain/simulation"
	"github.com/projectlens/risksim/pkg/stats"
)

// DefaultSignificanceLevel is the two-tailed alpha used by scenario
// comparison.
const DefaultSignificanceLevel = 0.05

// ErrNilResults is returned when an analyzer operation receives nil results.
var ErrNilResults = errors.New("simulation results cannot be nil")

// Analyzer derives summaries from simulation results. All methods are pure:
// they never mutate the results they read.
type Analyzer struct{}

// NewAnalyzer creates an analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Percentiles computes mean, standard deviation, and the fixed percentile
// markers for both outcome dimensions.
func (a *Analyzer) Percentiles(results *simdomain.SimulationResults) (*simdomain.PercentileAnalysis, error) {
	if results == nil {
		return nil, ErrNilResults
	}
	if results.IterationCount == 0 {
		return nil, risk.NewPreconditionError("calculate_percentiles", risk.ErrEmptyRiskSet, "results contain no iterations")
	}
	return &simdomain.PercentileAnalysis{
		SimulationID: results.SimulationID,
		Cost:         outcomeStatistics(results.CostOutcomes),
		Schedule:     outcomeStatistics(results.ScheduleOutcomes),
	}, nil
}

func outcomeStatistics(outcomes []float64) simdomain.OutcomeStatistics {
	sorted := stats.SortedCopy(outcomes)
	return simdomain.OutcomeStatistics{
		Mean:   stats.Mean(outcomes),
		StdDev: stats.StdDev(outcomes),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Percentiles: simdomain.Percentiles{
			P10: stats.PercentileSorted(sorted, 10),
			P25: stats.PercentileSorted(sorted, 25),
			P50: stats.PercentileSorted(sorted, 50),
			P75: stats.PercentileSorted(sorted, 75),
			P80: stats.PercentileSorted(sorted, 80),
			P90: stats.PercentileSorted(sorted, 90),
			P95: stats.PercentileSorted(sorted, 95),
		},
	}
}

// ConfidenceIntervals computes one empirical central interval per requested
// level in a single call. Levels are fractions in (0, 1), e.g. 0.90.
func (a *Analyzer) ConfidenceIntervals(results *simdomain.SimulationResults, outcome simdomain.Outcome, levels []float64) ([]simdomain.ConfidenceInterval, error) {
	if results == nil {
		return nil, ErrNilResults
	}
	if len(levels) == 0 {
		return nil, risk.NewValidationError("confidence_levels", "at least one level is required")
	}
	for _, level := range levels {
		if level <= 0 || level >= 1 {
			return nil, risk.NewValidationError("confidence_levels", fmt.Sprintf("level %v must be in (0, 1)", level))
		}
	}

	sorted := stats.SortedCopy(results.OutcomesFor(outcome))
	intervals := make([]simdomain.ConfidenceInterval, len(levels))
	for i, level := range levels {
		tail := (1 - level) / 2 * 100
		intervals[i] = simdomain.ConfidenceInterval{
			Level:      level,
			LowerBound: stats.PercentileSorted(sorted, tail),
			UpperBound: stats.PercentileSorted(sorted, 100-tail),
		}
	}
	return intervals, nil
}

// TopContributors ranks risks by mean absolute contribution to outcome
// magnitude and returns at most topN entries.
func (a *Analyzer) TopContributors(results *simdomain.SimulationResults, topN int) ([]simdomain.RiskContribution, error) {
	if results == nil {
		return nil, ErrNilResults
	}
	if topN <= 0 {
		return nil, risk.NewValidationError("top_n", "must be positive")
	}

	ranked := append([]simdomain.RiskContribution(nil), results.Contributions...)
	sort.SliceStable(ranked, func(i, j int) bool {
		mi, mj := abs(ranked[i].MeanImpact), abs(ranked[j].MeanImpact)
		if mi != mj {
			return mi > mj
		}
		return ranked[i].Variance > ranked[j].Variance
	})
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked, nil
}

// CompareScenarios computes descriptive deltas between two result sets and a
// statistical significance indicator per dimension: Welch's two-sample
// t-test, two-tailed, at DefaultSignificanceLevel. The two runs may have
// different iteration counts.
func (a *Analyzer) CompareScenarios(baseline, comparison *simdomain.SimulationResults) (*simdomain.ScenarioComparison, error) {
	if baseline == nil || comparison == nil {
		return nil, ErrNilResults
	}

	cost, err := compareDimension(baseline.CostOutcomes, comparison.CostOutcomes)
	if err != nil {
		return nil, fmt.Errorf("cost comparison: %w", err)
	}
	schedule, err := compareDimension(baseline.ScheduleOutcomes, comparison.ScheduleOutcomes)
	if err != nil {
		return nil, fmt.Errorf("schedule comparison: %w", err)
	}

	return &simdomain.ScenarioComparison{
		BaselineID:        baseline.SimulationID,
		ComparisonID:      comparison.SimulationID,
		SignificanceLevel: DefaultSignificanceLevel,
		Cost:              cost,
		Schedule:          schedule,
	}, nil
}

func compareDimension(baseline, comparison []float64) (simdomain.DimensionComparison, error) {
	test, err := stats.WelchTTest(baseline, comparison)
	if err != nil {
		return simdomain.DimensionComparison{}, err
	}

	baseMean := stats.Mean(baseline)
	compMean := stats.Mean(comparison)
	delta := compMean - baseMean

	deltaPercent := 0.0
	if baseMean != 0 {
		deltaPercent = delta / abs(baseMean) * 100
	}

	sortedBase := stats.SortedCopy(baseline)
	sortedComp := stats.SortedCopy(comparison)

	return simdomain.DimensionComparison{
		BaselineMean:     baseMean,
		ComparisonMean:   compMean,
		MeanDelta:        delta,
		MeanDeltaPercent: deltaPercent,
		MedianDelta:      stats.PercentileSorted(sortedComp, 50) - stats.PercentileSorted(sortedBase, 50),
		P90Delta:         stats.PercentileSorted(sortedComp, 90) - stats.PercentileSorted(sortedBase, 90),
		TStatistic:       test.TStatistic,
		DegreesOfFreedom: test.DegreesOfFreedom,
		PValue:           test.PValue,
		Significant:      test.PValue < DefaultSignificanceLevel,
	}, nil
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
