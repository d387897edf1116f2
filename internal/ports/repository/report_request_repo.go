package repository

import (
	"context"
	"database/sql"
	"errors"

	"sla.service/internal/core/model"
)

// CreateReportRequest stores a pending emailed report request.
func (r *PostgresRepository) CreateReportRequest(ctx context.Context, req model.ReportRequest) error {
	query := `INSERT INTO report_requests (id, workspace_id, recipient, worker_id, date_from, date_to, status, retry_count, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, 0, $8)`

	_, err := r.DB.ExecContext(ctx, query,
		req.ID, req.WorkspaceID, req.Recipient,
		req.Filter.WorkerID, req.Filter.From, req.Filter.To,
		model.StatusReportPending, req.CreatedAt)
	return err
}

// GetReportRequest fetches a complete report_requests record by its ID.
func (r *PostgresRepository) GetReportRequest(ctx context.Context, id string) (*model.ReportRequest, error) {
	query := `SELECT id, workspace_id, recipient, worker_id, date_from, date_to, status, retry_count, created_at
	          FROM report_requests WHERE id = $1`

	req := &model.ReportRequest{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&req.ID, &req.WorkspaceID, &req.Recipient,
		&req.Filter.WorkerID, &req.Filter.From, &req.Filter.To,
		&req.Status, &req.RetryCount, &req.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

// UpdateReportStatus updates the status and retry count for a report job.
func (r *PostgresRepository) UpdateReportStatus(ctx context.Context, id string, status model.ReportStatus, retryCount int) error {
	query := `UPDATE report_requests
              SET status = $1,
                  retry_count = $2
              WHERE id = $3`

	_, err := r.DB.ExecContext(ctx, query, status, retryCount, id)
	return err
}
