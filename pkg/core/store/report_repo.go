package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"execresearch/pkg/core/pipeline"
	"execresearch/pkg/core/report"
)

// ReportRepo archives finished report runs.
type ReportRepo struct{}

// NewReportRepo creates a new repository instance.
func NewReportRepo() *ReportRepo {
	return &ReportRepo{}
}

// ArchivedReport is one stored run.
type ArchivedReport struct {
	ID          string           `json:"id"`
	CompanyName string           `json:"company_name"`
	Role        string           `json:"role"`
	Result      *pipeline.Result `json:"result"`
	CreatedAt   time.Time        `json:"created_at"`
}

// Save persists a finished run as a JSONB blob and returns the new row ID.
//
// Schema assumption:
//
//	CREATE TABLE IF NOT EXISTS executive_reports (
//	  id UUID PRIMARY KEY,
//	  company_name TEXT,
//	  role TEXT,
//	  result_json JSONB,
//	  created_at TIMESTAMPTZ
//	);
func (r *ReportRepo) Save(ctx context.Context, companyName string, role report.Role, result *pipeline.Result) (string, error) {
	pool := GetPool()
	if pool == nil {
		return "", fmt.Errorf("database pool not initialized")
	}

	jsonData, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}

	id := uuid.NewString()
	query := `
		INSERT INTO executive_reports (id, company_name, role, result_json, created_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	if _, err := pool.Exec(ctx, query, id, companyName, string(role), jsonData, time.Now()); err != nil {
		return "", fmt.Errorf("failed to save report: %w", err)
	}
	return id, nil
}

// ListRecent returns the most recent archived runs, newest first.
func (r *ReportRepo) ListRecent(ctx context.Context, limit int) ([]ArchivedReport, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := pool.Query(ctx, `
		SELECT id, company_name, role, result_json, created_at
		FROM executive_reports
		ORDER BY created_at DESC
		LIMIT $1;
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer rows.Close()

	var out []ArchivedReport
	for rows.Next() {
		var rec ArchivedReport
		var payload []byte
		if err := rows.Scan(&rec.ID, &rec.CompanyName, &rec.Role, &payload, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		if err := json.Unmarshal(payload, &rec.Result); err != nil {
			return nil, fmt.Errorf("failed to decode report %s: %w", rec.ID, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
