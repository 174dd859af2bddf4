package project

import (
	"time"

	"github.com/google/uuid"

	"github.com/projectlens/risksim/internal/domain/risk"
)

// Baseline is the originally approved plan a project is measured against.
type Baseline struct {
	ProjectID           uuid.UUID
	BudgetAtCompletion  float64
	PlannedDurationDays float64
	ApprovedAt          time.Time
}

// Status is the latest reported state of a project.
type Status struct {
	ProjectID       uuid.UUID
	ActualCost      float64
	ElapsedDays     float64
	PercentComplete float64
	ReportedAt      time.Time
}

// RiskRecord is a stored risk-like entry attached to a project. Impact fields
// are nullable; which ones are populated decides the distribution the
// translation heuristic derives (see projectrisk).
type RiskRecord struct {
	ID         uuid.UUID
	ProjectID  uuid.UUID
	Name       string
	Category   risk.Category
	ImpactType risk.ImpactType

	// Probability of the risk materializing, in [0, 1]. Zero means unknown
	// and is treated as always-occurs by the engine.
	Probability float64

	LowImpact    *float64
	LikelyImpact *float64
	HighImpact   *float64
	MeanImpact   *float64
	StdImpact    *float64

	MitigationStrategies []string
	CreatedAt            time.Time
}
