package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"sla.service/internal/core/model"
	"sla.service/internal/core/sla"
	"sla.service/internal/ports/source"
)

type ReportService struct {
	source source.RecordSource
	now    func() time.Time
}

// NewReportService creates the service that turns records from src into SLA reports.
func NewReportService(src source.RecordSource) *ReportService {
	return &ReportService{
		source: src,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// BuildReport fetches the workspace records matching filter and aggregates
// them. The workspace is always passed explicitly by the caller.
func (s *ReportService) BuildReport(ctx context.Context, workspaceID string, filter model.Filter) (*model.Report, error) {
	ctx, span := otel.Tracer("sla-report").Start(ctx, "build_report")
	defer span.End()
	span.SetAttributes(attribute.String("app.workspaceId", workspaceID))

	if workspaceID == "" {
		return nil, errors.Join(model.ErrInvalidFilter, errors.New("workspace is required"))
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	records, err := s.source.FetchDurationRecords(ctx, workspaceID, filter)
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, model.ErrUpstreamFetch) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", model.ErrUpstreamFetch, err)
	}

	rows := sla.Aggregate(records)
	span.SetAttributes(attribute.Int("app.rows", len(rows)))

	return &model.Report{
		WorkspaceID:  workspaceID,
		Filter:       filter,
		Rows:         rows,
		TotalMinutes: sla.TotalMinutes(rows),
		TotalHours:   sla.TotalHours(rows),
		GeneratedAt:  s.now(),
	}, nil
}
