package projectrisk

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/projectlens/risksim/internal/domain/project"
	"github.com/projectlens/risksim/internal/domain/risk"
	simdomain "github.com/projectlens/risksim/internal/domain/simulation"
	"github.com/projectlens/risksim/internal/services/simulation"
)

// SimulationRunner abstracts the Monte Carlo engine so the adapter can be
// tested without running simulations.
type SimulationRunner interface {
	Run(risks []risk.Risk, iterations int, correlations *risk.CorrelationMatrix, seed *int64) (*simdomain.SimulationResults, error)
	IterationFloor() int
}

// Options tunes one analysis request. Zero values fall back to the service
// defaults.
type Options struct {
	Iterations       int
	Seed             *int64
	ConfidenceLevels []float64
	TopN             int
}

// Service is the project risk adapter: it fetches stored project data,
// derives simulation inputs, delegates to the engine and analyzer, and shapes
// domain output. All repository access happens before the engine is invoked,
// outside the timed path.
type Service struct {
	repo     project.Repository
	engine   SimulationRunner
	analyzer *simulation.Analyzer
	audit    project.AuditSink
	defaults Options
}

// NewService creates the adapter. The audit sink may be nil.
func NewService(repo project.Repository, engine SimulationRunner, analyzer *simulation.Analyzer, audit project.AuditSink, defaults Options) *Service {
	if defaults.Iterations == 0 {
		defaults.Iterations = engine.IterationFloor()
	}
	if defaults.TopN == 0 {
		defaults.TopN = 5
	}
	if len(defaults.ConfidenceLevels) == 0 {
		defaults.ConfidenceLevels = []float64{0.80, 0.90, 0.95}
	}
	return &Service{
		repo:     repo,
		engine:   engine,
		analyzer: simulationAnalyzerOrDefault(analyzer),
		audit:    audit,
		defaults: defaults,
	}
}

func simulationAnalyzerOrDefault(a *simulation.Analyzer) *simulation.Analyzer {
	if a == nil {
		return simulation.NewAnalyzer()
	}
	return a
}

func (s *Service) resolve(opts *Options) (Options, error) {
	resolved := s.defaults
	if opts != nil {
		if opts.Iterations != 0 {
			resolved.Iterations = opts.Iterations
		}
		if opts.Seed != nil {
			resolved.Seed = opts.Seed
		}
		if len(opts.ConfidenceLevels) > 0 {
			resolved.ConfidenceLevels = opts.ConfidenceLevels
		}
		if opts.TopN != 0 {
			resolved.TopN = opts.TopN
		}
	}
	if resolved.Iterations <= 0 {
		return Options{}, risk.NewValidationError("iterations", "must be positive")
	}
	if resolved.TopN <= 0 {
		return Options{}, risk.NewValidationError("top_n", "must be positive")
	}
	return resolved, nil
}

func (s *Service) fetchProject(ctx context.Context, projectID uuid.UUID) (*project.Baseline, *project.Status, []*project.RiskRecord, error) {
	baseline, err := s.repo.GetBaseline(ctx, projectID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("fetch baseline: %w", err)
	}
	status, err := s.repo.GetStatus(ctx, projectID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("fetch status: %w", err)
	}
	records, err := s.repo.ListRiskRecords(ctx, projectID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("fetch risk records: %w", err)
	}
	return baseline, status, records, nil
}

// AnalyzeBudgetVariance simulates the cost exposure of a project against its
// approved budget. With zero qualifying cost risks it returns the degenerate
// result without invoking the simulation engine.
func (s *Service) AnalyzeBudgetVariance(ctx context.Context, projectID uuid.UUID, opts *Options) (*project.BudgetVarianceAnalysis, error) {
	resolved, err := s.resolve(opts)
	if err != nil {
		return nil, err
	}
	baseline, status, records, err := s.fetchProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	risks := costRisks(translateRecords(records))
	if len(risks) == 0 {
		out := &project.BudgetVarianceAnalysis{
			ProjectID:               projectID,
			BaselineBudget:          baseline.BudgetAtCompletion,
			CurrentSpend:            status.ActualCost,
			ExpectedFinalCost:       status.ActualCost,
			VarianceFromBaseline:    status.ActualCost - baseline.BudgetAtCompletion,
			ProbabilityWithinBudget: 1.0,
			Degenerate:              true,
			Note:                    "no quantifiable cost risks recorded; simulation skipped",
		}
		s.recordAudit(ctx, "budget_variance", projectID, nil, 0, 0, true)
		return out, nil
	}

	results, err := s.engine.Run(risks, resolved.Iterations, nil, resolved.Seed)
	if err != nil {
		return nil, err
	}
	percentiles, err := s.analyzer.Percentiles(results)
	if err != nil {
		return nil, err
	}
	intervals, err := s.analyzer.ConfidenceIntervals(results, simdomain.OutcomeCost, resolved.ConfidenceLevels)
	if err != nil {
		return nil, err
	}
	contributors, err := s.analyzer.TopContributors(results, resolved.TopN)
	if err != nil {
		return nil, err
	}

	remaining := baseline.BudgetAtCompletion - status.ActualCost
	expectedFinal := status.ActualCost + percentiles.Cost.Mean

	out := &project.BudgetVarianceAnalysis{
		ProjectID:               projectID,
		BaselineBudget:          baseline.BudgetAtCompletion,
		CurrentSpend:            status.ActualCost,
		ExpectedFinalCost:       expectedFinal,
		VarianceFromBaseline:    expectedFinal - baseline.BudgetAtCompletion,
		ProbabilityWithinBudget: fractionAtOrBelow(results.CostOutcomes, remaining),
		Percentiles:             &percentiles.Cost,
		TopContributors:         contributors,
		ConfidenceIntervals:     intervals,
		SimulationID:            &results.SimulationID,
		Degenerate:              false,
	}
	s.recordAudit(ctx, "budget_variance", projectID, results, len(risks), resolved.Iterations, false)
	return out, nil
}

// AnalyzeScheduleVariance simulates schedule exposure against the planned
// duration. Mirrors AnalyzeBudgetVariance for the schedule dimension.
func (s *Service) AnalyzeScheduleVariance(ctx context.Context, projectID uuid.UUID, opts *Options) (*project.ScheduleVarianceAnalysis, error) {
	resolved, err := s.resolve(opts)
	if err != nil {
		return nil, err
	}
	baseline, status, records, err := s.fetchProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	risks := scheduleRisks(translateRecords(records))
	if len(risks) == 0 {
		out := &project.ScheduleVarianceAnalysis{
			ProjectID:                 projectID,
			PlannedDurationDays:       baseline.PlannedDurationDays,
			ElapsedDays:               status.ElapsedDays,
			ExpectedFinalDurationDays: status.ElapsedDays,
			VarianceDays:              status.ElapsedDays - baseline.PlannedDurationDays,
			ProbabilityOnSchedule:     1.0,
			Degenerate:                true,
			Note:                      "no quantifiable schedule risks recorded; simulation skipped",
		}
		s.recordAudit(ctx, "schedule_variance", projectID, nil, 0, 0, true)
		return out, nil
	}

	results, err := s.engine.Run(risks, resolved.Iterations, nil, resolved.Seed)
	if err != nil {
		return nil, err
	}
	percentiles, err := s.analyzer.Percentiles(results)
	if err != nil {
		return nil, err
	}
	intervals, err := s.analyzer.ConfidenceIntervals(results, simdomain.OutcomeSchedule, resolved.ConfidenceLevels)
	if err != nil {
		return nil, err
	}
	contributors, err := s.analyzer.TopContributors(results, resolved.TopN)
	if err != nil {
		return nil, err
	}

	remaining := baseline.PlannedDurationDays - status.ElapsedDays
	expectedFinal := status.ElapsedDays + percentiles.Schedule.Mean

	out := &project.ScheduleVarianceAnalysis{
		ProjectID:                 projectID,
		PlannedDurationDays:       baseline.PlannedDurationDays,
		ElapsedDays:               status.ElapsedDays,
		ExpectedFinalDurationDays: expectedFinal,
		VarianceDays:              expectedFinal - baseline.PlannedDurationDays,
		ProbabilityOnSchedule:     fractionAtOrBelow(results.ScheduleOutcomes, remaining),
		Percentiles:               &percentiles.Schedule,
		TopContributors:           contributors,
		ConfidenceIntervals:       intervals,
		SimulationID:              &results.SimulationID,
		Degenerate:                false,
	}
	s.recordAudit(ctx, "schedule_variance", projectID, results, len(risks), resolved.Iterations, false)
	return out, nil
}

// AnalyzeResourceRisks simulates resource-category risks and reports
// utilization, conflict probability, and rule-based recommendations.
func (s *Service) AnalyzeResourceRisks(ctx context.Context, projectID uuid.UUID, opts *Options) (*project.ResourceRiskAnalysis, error) {
	resolved, err := s.resolve(opts)
	if err != nil {
		return nil, err
	}
	baseline, status, records, err := s.fetchProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	utilization := resourceUtilization(baseline, status)

	risks := resourceRisks(translateRecords(records))
	if len(risks) == 0 {
		out := &project.ResourceRiskAnalysis{
			ProjectID:           projectID,
			Utilization:         utilization,
			ConflictProbability: 0,
			Recommendations:     recommendations(utilization, 0, nil),
			Degenerate:          true,
			Note:                "no quantifiable resource risks recorded; simulation skipped",
		}
		s.recordAudit(ctx, "resource_risks", projectID, nil, 0, 0, true)
		return out, nil
	}

	results, err := s.engine.Run(risks, resolved.Iterations, nil, resolved.Seed)
	if err != nil {
		return nil, err
	}
	percentiles, err := s.analyzer.Percentiles(results)
	if err != nil {
		return nil, err
	}
	contributors, err := s.analyzer.TopContributors(results, resolved.TopN)
	if err != nil {
		return nil, err
	}

	remainingBudget := baseline.BudgetAtCompletion - status.ActualCost
	remainingDays := baseline.PlannedDurationDays - status.ElapsedDays
	conflictProb := conflictProbability(results, remainingBudget, remainingDays)

	out := &project.ResourceRiskAnalysis{
		ProjectID:           projectID,
		Utilization:         utilization,
		ConflictProbability: conflictProb,
		CostPercentiles:     &percentiles.Cost,
		SchedulePercentiles: &percentiles.Schedule,
		TopContributors:     contributors,
		Recommendations:     recommendations(utilization, conflictProb, contributors),
		SimulationID:        &results.SimulationID,
		Degenerate:          false,
	}
	s.recordAudit(ctx, "resource_risks", projectID, results, len(risks), resolved.Iterations, false)
	return out, nil
}

// resourceUtilization relates schedule burn to reported progress: above 1.0
// the project consumes time faster than it completes work. With no reported
// progress the plain schedule-burn fraction is returned.
func resourceUtilization(baseline *project.Baseline, status *project.Status) float64 {
	if baseline.PlannedDurationDays <= 0 {
		return 0
	}
	burn := status.ElapsedDays / baseline.PlannedDurationDays
	if status.PercentComplete <= 0 {
		return burn
	}
	return burn / (status.PercentComplete / 100)
}

// conflictProbability is the share of iterations in which simulated resource
// impact exceeds either the remaining budget or the remaining schedule.
func conflictProbability(results *simdomain.SimulationResults, remainingBudget, remainingDays float64) float64 {
	n := results.IterationCount
	if n == 0 {
		return 0
	}
	conflicts := 0
	for i := 0; i < n; i++ {
		if results.CostOutcomes[i] > remainingBudget || results.ScheduleOutcomes[i] > remainingDays {
			conflicts++
		}
	}
	return float64(conflicts) / float64(n)
}

func recommendations(utilization, conflictProb float64, contributors []simdomain.RiskContribution) []string {
	var out []string
	if utilization > 1.1 {
		out = append(out, fmt.Sprintf("resource utilization at %.0f%% of plan; rebalance assignments or extend the schedule", utilization*100))
	}
	if conflictProb > 0.25 {
		out = append(out, fmt.Sprintf("resource conflict probability is %.0f%%; add schedule buffer or level over-allocated resources", conflictProb*100))
	}
	if len(contributors) > 0 && contributors[0].MeanImpact != 0 {
		out = append(out, fmt.Sprintf("prioritize mitigation of %q, the largest resource risk contributor", contributors[0].RiskName))
	}
	if len(out) == 0 {
		out = append(out, "resource risk exposure is within tolerance; no action required")
	}
	return out
}

func fractionAtOrBelow(outcomes []float64, threshold float64) float64 {
	if len(outcomes) == 0 {
		return 1
	}
	count := 0
	for _, v := range outcomes {
		if v <= threshold {
			count++
		}
	}
	return float64(count) / float64(len(outcomes))
}

func (s *Service) recordAudit(ctx context.Context, kind string, projectID uuid.UUID, results *simdomain.SimulationResults, riskCount, iterations int, degenerate bool) {
	if s.audit == nil {
		return
	}
	entry := project.AnalysisAudit{
		ID:         uuid.New(),
		ProjectID:  projectID,
		Kind:       kind,
		RiskCount:  riskCount,
		Iterations: iterations,
		Degenerate: degenerate,
		OccurredAt: time.Now(),
	}
	if results != nil {
		entry.SimulationID = &results.SimulationID
		entry.Duration = results.ExecutionTime
	}
	s.audit.RecordAnalysis(ctx, entry)
}
