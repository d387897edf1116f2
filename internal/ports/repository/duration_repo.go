package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"sla.service/internal/core/model"
)

// PostgresRepository is the concrete implementation for a PostgreSQL database.
type PostgresRepository struct {
	DB *sql.DB
}

// NewPostgresRepository create new instance
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

// CreateDuration stores a duration record.
func (r *PostgresRepository) CreateDuration(ctx context.Context, rec model.DurationRecord) error {
	trace.SpanFromContext(ctx).SetAttributes(
		attribute.String("app.workspaceId", rec.WorkspaceID),
		attribute.String("app.workerId", rec.WorkerID),
	)

	query := `INSERT INTO duration_records (id, workspace_id, worker_id, event_id, work_date, duration_minutes, created_at)
              VALUES ($1, $2, $3, $4, $5::date, $6, $7)`

	_, err := r.DB.ExecContext(ctx, query,
		rec.ID, rec.WorkspaceID, rec.WorkerID, nullString(rec.EventID), rec.WorkDate, rec.DurationMinutes, rec.CreatedAt)
	return err
}

// GetDuration fetches one record of a workspace. Returns model.ErrNotFound when absent.
func (r *PostgresRepository) GetDuration(ctx context.Context, workspaceID, id string) (*model.DurationRecord, error) {
	query := `SELECT id, workspace_id, worker_id, COALESCE(event_id, ''), to_char(work_date, 'YYYY-MM-DD'), duration_minutes, created_at
              FROM duration_records
              WHERE workspace_id = $1 AND id = $2`

	rec := &model.DurationRecord{}
	err := r.DB.QueryRowContext(ctx, query, workspaceID, id).Scan(
		&rec.ID, &rec.WorkspaceID, &rec.WorkerID, &rec.EventID, &rec.WorkDate, &rec.DurationMinutes, &rec.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// DeleteDuration removes one record of a workspace.
func (r *PostgresRepository) DeleteDuration(ctx context.Context, workspaceID, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM duration_records WHERE workspace_id = $1 AND id = $2`, workspaceID, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return model.ErrNotFound
	}
	return nil
}

// FetchDurationRecords lists the records of a workspace matching the filter.
// Date bounds are inclusive; an empty worker matches every worker.
func (r *PostgresRepository) FetchDurationRecords(ctx context.Context, workspaceID string, filter model.Filter) ([]model.DurationRecord, error) {
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("app.workspaceId", workspaceID))

	var sb strings.Builder
	sb.WriteString(`SELECT id, workspace_id, worker_id, COALESCE(event_id, ''), to_char(work_date, 'YYYY-MM-DD'), duration_minutes, created_at
              FROM duration_records
              WHERE workspace_id = $1`)
	args := []any{workspaceID}

	if filter.WorkerID != "" {
		args = append(args, filter.WorkerID)
		fmt.Fprintf(&sb, " AND worker_id = $%d", len(args))
	}
	if filter.From != "" {
		args = append(args, filter.From)
		fmt.Fprintf(&sb, " AND work_date >= $%d::date", len(args))
	}
	if filter.To != "" {
		args = append(args, filter.To)
		fmt.Fprintf(&sb, " AND work_date <= $%d::date", len(args))
	}
	sb.WriteString(" ORDER BY work_date DESC, worker_id, created_at")

	rows, err := r.DB.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.DurationRecord, 0)
	for rows.Next() {
		var rec model.DurationRecord
		if err := rows.Scan(&rec.ID, &rec.WorkspaceID, &rec.WorkerID, &rec.EventID, &rec.WorkDate, &rec.DurationMinutes, &rec.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
