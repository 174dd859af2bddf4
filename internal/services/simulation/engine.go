// Package simulation orchestrates Monte Carlo runs over risk sets and
// analyzes their outcome distributions.
package simulation

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/projectlens/risksim/internal/domain/risk"
	simdomain "github.com/projectlens/risksim/internal/domain/simulation"
	"github.com/projectlens/risksim/internal/services/sampling"
)

// DefaultIterationFloor is the minimum iteration count the engine accepts.
// Requests below the floor are rejected, not raised.
const DefaultIterationFloor = 10000

// Engine runs Monte Carlo simulations. It is stateless across calls: every
// run is a pure function of its inputs plus the seeded RNG, so identical
// seeded inputs reproduce identical outcome arrays.
type Engine struct {
	floor int
}

// NewEngine creates an engine with the default iteration floor.
func NewEngine() *Engine {
	return &Engine{floor: DefaultIterationFloor}
}

// IterationFloor returns the enforced minimum iteration count.
func (e *Engine) IterationFloor() int {
	return e.floor
}

type contribAccumulator struct {
	riskID      string
	riskName    string
	impactType  risk.ImpactType
	sum         float64
	sumSq       float64
	min         float64
	max         float64
	occurrences int
}

// Run simulates the risk set for the given iteration count and returns the
// raw outcome arrays plus per-risk contribution aggregates. All precondition
// failures surface before any randomness is consumed. A nil seed yields a
// time-seeded, non-reproducible run; an explicit seed makes the run fully
// deterministic.
func (e *Engine) Run(risks []risk.Risk, iterations int, correlations *risk.CorrelationMatrix, seed *int64) (*simdomain.SimulationResults, error) {
	if len(risks) == 0 {
		return nil, risk.NewPreconditionError("run_simulation", risk.ErrEmptyRiskSet, "")
	}
	if iterations < e.floor {
		return nil, risk.NewPreconditionError("run_simulation", risk.ErrIterationsBelowFloor,
			fmt.Sprintf("requested %d, floor %d", iterations, e.floor))
	}
	seen := make(map[string]struct{}, len(risks))
	for _, r := range risks {
		if r.ID == "" {
			return nil, risk.NewValidationError("id", "risk id cannot be empty")
		}
		if _, dup := seen[r.ID]; dup {
			return nil, risk.NewPreconditionError("run_simulation", risk.ErrDuplicateRiskID, r.ID)
		}
		seen[r.ID] = struct{}{}
	}
	if correlations != nil {
		for _, id := range correlations.RiskIDs() {
			if _, ok := seen[id]; !ok {
				return nil, risk.NewPreconditionError("run_simulation", risk.ErrUnknownRiskID, id)
			}
		}
	}

	// Sampler construction re-validates every distribution before the loop.
	var joint *sampling.CorrelatedSampler
	var independent []*sampling.Sampler
	if correlations != nil && correlations.PairCount() > 0 {
		cs, err := sampling.NewCorrelatedSampler(risks, correlations)
		if err != nil {
			return nil, err
		}
		joint = cs
	} else {
		independent = make([]*sampling.Sampler, len(risks))
		for i, r := range risks {
			s, err := sampling.NewSampler(r.Distribution)
			if err != nil {
				return nil, fmt.Errorf("risk %q: %w", r.ID, err)
			}
			independent[i] = s
		}
	}

	var seedValue int64
	if seed != nil {
		seedValue = *seed
	} else {
		seedValue = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seedValue))

	k := len(risks)
	accums := make([]contribAccumulator, k)
	for i, r := range risks {
		accums[i] = contribAccumulator{
			riskID:     r.ID,
			riskName:   r.Name,
			impactType: r.ImpactType,
			min:        math.Inf(1),
			max:        math.Inf(-1),
		}
	}

	costOutcomes := make([]float64, iterations)
	scheduleOutcomes := make([]float64, iterations)
	draws := make([]float64, k)

	start := time.Now()
	for iter := 0; iter < iterations; iter++ {
		if joint != nil {
			joint.Draw(rng, draws)
		} else {
			for i := range independent {
				draws[i] = independent[i].Draw(rng)
			}
		}

		costTotal, scheduleTotal := 0.0, 0.0
		for i, r := range risks {
			impact := draws[i]
			occurred := true
			if !r.AlwaysOccurs() {
				occurred = rng.Float64() < r.Probability
			}
			if !occurred {
				impact = 0
			}

			acc := &accums[i]
			acc.sum += impact
			acc.sumSq += impact * impact
			if occurred {
				acc.occurrences++
				if impact < acc.min {
					acc.min = impact
				}
				if impact > acc.max {
					acc.max = impact
				}
			}

			if r.AffectsCost() {
				costTotal += impact
			}
			if r.AffectsSchedule() {
				scheduleTotal += impact
			}
		}
		costOutcomes[iter] = costTotal
		scheduleOutcomes[iter] = scheduleTotal
	}
	elapsed := time.Since(start)

	n := float64(iterations)
	contributions := make([]simdomain.RiskContribution, k)
	for i := range accums {
		acc := &accums[i]
		mean := acc.sum / n
		variance := acc.sumSq/n - mean*mean
		if variance < 0 {
			variance = 0
		}
		minImpact, maxImpact := acc.min, acc.max
		if acc.occurrences == 0 {
			minImpact, maxImpact = 0, 0
		}
		contributions[i] = simdomain.RiskContribution{
			RiskID:      acc.riskID,
			RiskName:    acc.riskName,
			ImpactType:  acc.impactType,
			TotalImpact: acc.sum,
			MeanImpact:  mean,
			Variance:    variance,
			MinImpact:   minImpact,
			MaxImpact:   maxImpact,
			Occurrences: acc.occurrences,
		}
	}

	results := &simdomain.SimulationResults{
		SimulationID:     uuid.New(),
		IterationCount:   iterations,
		ExecutionTime:    elapsed,
		CostOutcomes:     costOutcomes,
		ScheduleOutcomes: scheduleOutcomes,
		Contributions:    contributions,
		CompletedAt:      time.Now(),
	}
	if seed != nil {
		seedCopy := *seed
		results.RandomSeed = &seedCopy
	}
	return results, nil
}
