package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/projectlens/risksim/internal/domain/project"
	"github.com/projectlens/risksim/internal/domain/risk"
)

// ProjectRepository implements project.Repository with PostgreSQL.
type ProjectRepository struct {
	db *pgxpool.Pool
}

// NewProjectRepository creates a new PostgreSQL project repository.
func NewProjectRepository(db *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// GetBaseline retrieves the approved baseline for a project.
func (r *ProjectRepository) GetBaseline(ctx context.Context, projectID uuid.UUID) (*project.Baseline, error) {
	query := `
		SELECT project_id, budget_at_completion, planned_duration_days, approved_at
		FROM project_baselines
		WHERE project_id = $1`

	var b project.Baseline
	err := r.db.QueryRow(ctx, query, projectID).Scan(
		&b.ProjectID,
		&b.BudgetAtCompletion,
		&b.PlannedDurationDays,
		&b.ApprovedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, project.ErrBaselineNotFound
		}
		return nil, fmt.Errorf("failed to get baseline: %w", err)
	}
	return &b, nil
}

// GetStatus retrieves the latest reported status for a project.
func (r *ProjectRepository) GetStatus(ctx context.Context, projectID uuid.UUID) (*project.Status, error) {
	query := `
		SELECT project_id, actual_cost, elapsed_days, percent_complete, reported_at
		FROM project_status
		WHERE project_id = $1`

	var s project.Status
	err := r.db.QueryRow(ctx, query, projectID).Scan(
		&s.ProjectID,
		&s.ActualCost,
		&s.ElapsedDays,
		&s.PercentComplete,
		&s.ReportedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, project.ErrStatusNotFound
		}
		return nil, fmt.Errorf("failed to get status: %w", err)
	}
	return &s, nil
}

// ListRiskRecords retrieves all risk records for a project in creation order.
func (r *ProjectRepository) ListRiskRecords(ctx context.Context, projectID uuid.UUID) ([]*project.RiskRecord, error) {
	query := `
		SELECT
			id, project_id, name, category, impact_type, probability,
			low_impact, likely_impact, high_impact, mean_impact, std_impact,
			mitigation_strategies, created_at
		FROM project_risk_records
		WHERE project_id = $1
		ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list risk records: %w", err)
	}
	defer rows.Close()

	var records []*project.RiskRecord
	for rows.Next() {
		var rec project.RiskRecord
		var category, impactType string
		err := rows.Scan(
			&rec.ID,
			&rec.ProjectID,
			&rec.Name,
			&category,
			&impactType,
			&rec.Probability,
			&rec.LowImpact,
			&rec.LikelyImpact,
			&rec.HighImpact,
			&rec.MeanImpact,
			&rec.StdImpact,
			&rec.MitigationStrategies,
			&rec.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan risk record: %w", err)
		}
		rec.Category = risk.Category(category)
		rec.ImpactType = risk.ImpactType(impactType)
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate risk records: %w", err)
	}
	return records, nil
}

// InsertRiskRecord stores a risk record; used by fixtures and imports.
func (r *ProjectRepository) InsertRiskRecord(ctx context.Context, rec *project.RiskRecord) error {
	query := `
		INSERT INTO project_risk_records (
			id, project_id, name, category, impact_type, probability,
			low_impact, likely_impact, high_impact, mean_impact, std_impact,
			mitigation_strategies, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.db.Exec(ctx, query,
		rec.ID,
		rec.ProjectID,
		rec.Name,
		string(rec.Category),
		string(rec.ImpactType),
		rec.Probability,
		rec.LowImpact,
		rec.LikelyImpact,
		rec.HighImpact,
		rec.MeanImpact,
		rec.StdImpact,
		rec.MitigationStrategies,
		rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert risk record: %w", err)
	}
	return nil
}

// UpsertBaseline stores or replaces a project baseline.
func (r *ProjectRepository) UpsertBaseline(ctx context.Context, b *project.Baseline) error {
	query := `
		INSERT INTO project_baselines (project_id, budget_at_completion, planned_duration_days, approved_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (project_id) DO UPDATE SET
			budget_at_completion = EXCLUDED.budget_at_completion,
			planned_duration_days = EXCLUDED.planned_duration_days,
			approved_at = EXCLUDED.approved_at`

	_, err := r.db.Exec(ctx, query, b.ProjectID, b.BudgetAtCompletion, b.PlannedDurationDays, b.ApprovedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert baseline: %w", err)
	}
	return nil
}

// UpsertStatus stores or replaces a project status.
func (r *ProjectRepository) UpsertStatus(ctx context.Context, s *project.Status) error {
	query := `
		INSERT INTO project_status (project_id, actual_cost, elapsed_days, percent_complete, reported_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (project_id) DO UPDATE SET
			actual_cost = EXCLUDED.actual_cost,
			elapsed_days = EXCLUDED.elapsed_days,
			percent_complete = EXCLUDED.percent_complete,
			reported_at = EXCLUDED.reported_at`

	_, err := r.db.Exec(ctx, query, s.ProjectID, s.ActualCost, s.ElapsedDays, s.PercentComplete, s.ReportedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert status: %w", err)
	}
	return nil
}
