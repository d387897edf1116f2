package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"sla.service/internal/core/model"
)

// gatedBuilder answers each BuildReport call only when its gate is released.
type gatedBuilder struct {
	gates map[string]chan struct{}
}

func (g *gatedBuilder) BuildReport(_ context.Context, workspaceID string, filter model.Filter) (*model.Report, error) {
	<-g.gates[filter.WorkerID]
	return &model.Report{WorkspaceID: workspaceID, Filter: filter}, nil
}

func TestReportView_DiscardsStaleResponse(t *testing.T) {
	b := &gatedBuilder{gates: map[string]chan struct{}{
		"old": make(chan struct{}),
		"new": make(chan struct{}),
	}}
	view := NewReportView(b)

	type result struct {
		applied bool
		err     error
	}
	oldDone := make(chan result, 1)
	newDone := make(chan result, 1)

	go func() {
		_, applied, err := view.Refresh(context.Background(), "ws1", model.Filter{WorkerID: "old"})
		oldDone <- result{applied, err}
	}()
	require.Eventually(t, func() bool { return view.issued.Load() == 1 }, time.Second, time.Millisecond)

	go func() {
		_, applied, err := view.Refresh(context.Background(), "ws1", model.Filter{WorkerID: "new"})
		newDone <- result{applied, err}
	}()
	require.Eventually(t, func() bool { return view.issued.Load() == 2 }, time.Second, time.Millisecond)

	// Newer request resolves first, older one afterwards.
	close(b.gates["new"])
	r := <-newDone
	require.NoError(t, r.err)
	assert.True(t, r.applied)

	close(b.gates["old"])
	r = <-oldDone
	require.NoError(t, r.err)
	assert.False(t, r.applied)

	assert.Equal(t, "new", view.Current().Filter.WorkerID)
}

func TestReportView_InOrderResponsesAllApply(t *testing.T) {
	src := new(MockRecordSource)
	src.On("FetchDurationRecords", mock.Anything, "ws1", model.Filter{}).Return([]model.DurationRecord{
		{WorkerID: "u1", WorkDate: "2024-01-01", DurationMinutes: 30},
	}, nil)
	view := NewReportView(NewReportService(src))
	assert.Nil(t, view.Current())

	for i := 0; i < 3; i++ {
		_, applied, err := view.Refresh(context.Background(), "ws1", model.Filter{})
		require.NoError(t, err)
		assert.True(t, applied)
	}
	require.NotNil(t, view.Current())
	assert.Equal(t, int64(30), view.Current().TotalMinutes)
}
