package project

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository supplies the stored project data the risk adapter translates
// into simulation inputs. Implementations may hit a database; all calls happen
// before the simulation engine is invoked, outside the timed path.
type Repository interface {
	GetBaseline(ctx context.Context, projectID uuid.UUID) (*Baseline, error)

	GetStatus(ctx context.Context, projectID uuid.UUID) (*Status, error)

	ListRiskRecords(ctx context.Context, projectID uuid.UUID) ([]*RiskRecord, error)
}

// AnalysisAudit describes one completed analysis run for the audit trail.
type AnalysisAudit struct {
	ID           uuid.UUID
	ProjectID    uuid.UUID
	Kind         string
	SimulationID *uuid.UUID
	RiskCount    int
	Iterations   int
	Duration     time.Duration
	Degenerate   bool
	OccurredAt   time.Time
}

// AuditSink is notified of analysis runs. Fire-and-forget: implementations
// must not fail the analysis, and callers ignore any delivery outcome.
type AuditSink interface {
	RecordAnalysis(ctx context.Context, entry AnalysisAudit)
}
