package source

import (
	"context"

	"sla.service/internal/core/model"
)

// RecordSource supplies the duration records of a workspace that match a filter.
// Implementations must honour inclusive date bounds and treat an empty worker
// as every worker; callers do not re-filter.
type RecordSource interface {
	FetchDurationRecords(ctx context.Context, workspaceID string, filter model.Filter) ([]model.DurationRecord, error)
}
