// Package audit implements the analysis audit sink over the structured
// logger.
package audit

import (
	"context"

	"github.com/projectlens/risksim/internal/domain/project"
	"github.com/projectlens/risksim/internal/logging"
)

// LogSink records analysis runs as structured log entries. Delivery is
// best-effort; a dropped entry never affects the analysis that produced it.
type LogSink struct {
	logger *logging.Logger
}

// NewLogSink creates a sink writing to the given logger.
func NewLogSink(logger *logging.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// RecordAnalysis implements project.AuditSink.
func (s *LogSink) RecordAnalysis(ctx context.Context, entry project.AnalysisAudit) {
	fields := logging.Fields{
		"audit_id":   entry.ID.String(),
		"project_id": entry.ProjectID.String(),
		"kind":       entry.Kind,
		"risk_count": entry.RiskCount,
		"iterations": entry.Iterations,
		"degenerate": entry.Degenerate,
	}
	if entry.SimulationID != nil {
		fields["simulation_id"] = entry.SimulationID.String()
		fields["duration_ms"] = entry.Duration.Milliseconds()
	}
	s.logger.Info(ctx, "risk analysis completed", fields)
}
