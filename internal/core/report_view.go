package core

import (
	"context"
	"sync"
	"sync/atomic"

	"sla.service/internal/core/model"
)

// ReportView holds the report currently shown to a consumer. Every refresh is
// tagged with an increasing sequence number and a response older than the one
// already applied is dropped, so overlapping fetches cannot roll the view back.
type ReportView struct {
	builder ReportBuilder
	issued  atomic.Uint64

	mu      sync.Mutex
	applied uint64
	current *model.Report
}

func NewReportView(builder ReportBuilder) *ReportView {
	return &ReportView{builder: builder}
}

// Refresh builds a report and applies it unless a newer refresh already
// landed. The returned bool reports whether the view changed.
func (v *ReportView) Refresh(ctx context.Context, workspaceID string, filter model.Filter) (*model.Report, bool, error) {
	seq := v.issued.Add(1)

	report, err := v.builder.BuildReport(ctx, workspaceID, filter)
	if err != nil {
		return nil, false, err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if seq < v.applied {
		return report, false, nil
	}
	v.applied = seq
	v.current = report
	return report, true, nil
}

// Current returns the last applied report, or nil before the first refresh.
func (v *ReportView) Current() *model.Report {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current
}
