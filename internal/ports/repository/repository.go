package repository

import (
	"context"

	"sla.service/internal/core/model"
)

// Repository contract
type Repository interface {
	CreateDuration(ctx context.Context, rec model.DurationRecord) error
	GetDuration(ctx context.Context, workspaceID, id string) (*model.DurationRecord, error)
	DeleteDuration(ctx context.Context, workspaceID, id string) error
	FetchDurationRecords(ctx context.Context, workspaceID string, filter model.Filter) ([]model.DurationRecord, error)

	CreateReportRequest(ctx context.Context, req model.ReportRequest) error
	GetReportRequest(ctx context.Context, id string) (*model.ReportRequest, error)
	UpdateReportStatus(ctx context.Context, id string, status model.ReportStatus, retryCount int) error
}

var _ Repository = (*PostgresRepository)(nil)
