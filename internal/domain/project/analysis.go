package project

import (
	"github.com/google/uuid"

	"github.com/projectlens/risksim/internal/domain/simulation"
)

// BudgetVarianceAnalysis is the domain-shaped output of a budget analysis.
// When Degenerate is true no simulation ran: baseline and current values are
// passed through, ProbabilityWithinBudget is fixed at 1.0, and Note explains
// why.
type BudgetVarianceAnalysis struct {
	ProjectID               uuid.UUID                       `json:"project_id"`
	BaselineBudget          float64                         `json:"baseline_budget"`
	CurrentSpend            float64                         `json:"current_spend"`
	ExpectedFinalCost       float64                         `json:"expected_final_cost"`
	VarianceFromBaseline    float64                         `json:"variance_from_baseline"`
	ProbabilityWithinBudget float64                         `json:"probability_within_budget"`
	Percentiles             *simulation.OutcomeStatistics   `json:"percentiles,omitempty"`
	TopContributors         []simulation.RiskContribution   `json:"top_contributors,omitempty"`
	ConfidenceIntervals     []simulation.ConfidenceInterval `json:"confidence_intervals,omitempty"`
	SimulationID            *uuid.UUID                      `json:"simulation_id,omitempty"`
	Degenerate              bool                            `json:"degenerate"`
	Note                    string                          `json:"note,omitempty"`
}

// ScheduleVarianceAnalysis is the domain-shaped output of a schedule analysis.
type ScheduleVarianceAnalysis struct {
	ProjectID                 uuid.UUID                       `json:"project_id"`
	PlannedDurationDays       float64                         `json:"planned_duration_days"`
	ElapsedDays               float64                         `json:"elapsed_days"`
	ExpectedFinalDurationDays float64                         `json:"expected_final_duration_days"`
	VarianceDays              float64                         `json:"variance_days"`
	ProbabilityOnSchedule     float64                         `json:"probability_on_schedule"`
	Percentiles               *simulation.OutcomeStatistics   `json:"percentiles,omitempty"`
	TopContributors           []simulation.RiskContribution   `json:"top_contributors,omitempty"`
	ConfidenceIntervals       []simulation.ConfidenceInterval `json:"confidence_intervals,omitempty"`
	SimulationID              *uuid.UUID                      `json:"simulation_id,omitempty"`
	Degenerate                bool                            `json:"degenerate"`
	Note                      string                          `json:"note,omitempty"`
}

// ResourceRiskAnalysis is the domain-shaped output of a resource analysis.
type ResourceRiskAnalysis struct {
	ProjectID           uuid.UUID                     `json:"project_id"`
	Utilization         float64                       `json:"utilization"`
	ConflictProbability float64                       `json:"conflict_probability"`
	CostPercentiles     *simulation.OutcomeStatistics `json:"cost_percentiles,omitempty"`
	SchedulePercentiles *simulation.OutcomeStatistics `json:"schedule_percentiles,omitempty"`
	TopContributors     []simulation.RiskContribution `json:"top_contributors,omitempty"`
	Recommendations     []string                      `json:"recommendations"`
	SimulationID        *uuid.UUID                    `json:"simulation_id,omitempty"`
	Degenerate          bool                          `json:"degenerate"`
	Note                string                        `json:"note,omitempty"`
}
