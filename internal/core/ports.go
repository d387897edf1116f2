package core

import (
	"context"

	"sla.service/internal/core/model"
)

// DurationStore persists duration records.
type DurationStore interface {
	CreateDuration(ctx context.Context, rec model.DurationRecord) error
	GetDuration(ctx context.Context, workspaceID, id string) (*model.DurationRecord, error)
	DeleteDuration(ctx context.Context, workspaceID, id string) error
	FetchDurationRecords(ctx context.Context, workspaceID string, filter model.Filter) ([]model.DurationRecord, error)
}

// ReportRequestStore tracks emailed report requests.
type ReportRequestStore interface {
	CreateReportRequest(ctx context.Context, req model.ReportRequest) error
	GetReportRequest(ctx context.Context, id string) (*model.ReportRequest, error)
	UpdateReportStatus(ctx context.Context, id string, status model.ReportStatus, retryCount int) error
}

// ReportBuilder produces an aggregated report for a workspace.
type ReportBuilder interface {
	BuildReport(ctx context.Context, workspaceID string, filter model.Filter) (*model.Report, error)
}
