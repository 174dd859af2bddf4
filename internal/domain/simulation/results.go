package simulation

import (
	"time"

	"github.com/google/uuid"

	"github.com/projectlens/risksim/internal/domain/risk"
)

// Outcome selects a simulated outcome dimension.
type Outcome string

const (
	OutcomeCost     Outcome = "cost"
	OutcomeSchedule Outcome = "schedule"
)

// RiskContribution aggregates one risk's per-iteration impacts. The engine
// keeps running aggregates rather than the full impact array, which is
// sufficient for contributor ranking.
type RiskContribution struct {
	RiskID      string          `json:"risk_id"`
	RiskName    string          `json:"risk_name"`
	ImpactType  risk.ImpactType `json:"impact_type"`
	TotalImpact float64         `json:"total_impact"`
	MeanImpact  float64         `json:"mean_impact"`
	Variance    float64         `json:"variance"`
	MinImpact   float64         `json:"min_impact"`
	MaxImpact   float64         `json:"max_impact"`
	Occurrences int             `json:"occurrences"`
}

// SimulationResults holds the raw outcome arrays and run metadata of one
// simulation. Results are never mutated after creation; analyzers treat them
// as read-only input.
type SimulationResults struct {
	SimulationID   uuid.UUID          `json:"simulation_id"`
	IterationCount int                `json:"iteration_count"`
	ExecutionTime  time.Duration      `json:"execution_time"`
	RandomSeed     *int64             `json:"random_seed,omitempty"`
	CostOutcomes   []float64          `json:"cost_outcomes"`
	ScheduleOutcomes []float64        `json:"schedule_outcomes"`
	Contributions  []RiskContribution `json:"contributions"`
	CompletedAt    time.Time          `json:"completed_at"`
}

// OutcomesFor returns the outcome array for a dimension.
func (r *SimulationResults) OutcomesFor(outcome Outcome) []float64 {
	if outcome == OutcomeSchedule {
		return r.ScheduleOutcomes
	}
	return r.CostOutcomes
}
