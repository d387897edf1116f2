package core

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"sla.service/internal/core/model"
)

type DurationService struct {
	store DurationStore
	now   func() time.Time
}

// NewDurationService wires the duration record store.
func NewDurationService(store DurationStore) *DurationService {
	return &DurationService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// DurationInput is the caller supplied part of a new record.
type DurationInput struct {
	WorkerID        string
	EventID         string
	WorkDate        string
	DurationMinutes int64
}

// RecordDuration validates and stores a new record in workspaceID.
func (s *DurationService) RecordDuration(ctx context.Context, workspaceID string, in DurationInput) (*model.DurationRecord, error) {
	switch {
	case workspaceID == "":
		return nil, errors.Join(model.ErrInvalidRecord, errors.New("workspace is required"))
	case in.WorkerID == "":
		return nil, errors.Join(model.ErrInvalidRecord, errors.New("workerId is required"))
	case in.DurationMinutes < 0:
		return nil, errors.Join(model.ErrInvalidRecord, errors.New("durationMinutes must not be negative"))
	}
	if _, err := time.Parse(model.DateLayout, in.WorkDate); err != nil {
		return nil, errors.Join(model.ErrInvalidRecord, errors.New("workDate must be YYYY-MM-DD"))
	}

	rec := model.DurationRecord{
		ID:              uuid.NewString(),
		WorkspaceID:     workspaceID,
		WorkerID:        in.WorkerID,
		EventID:         in.EventID,
		WorkDate:        in.WorkDate,
		DurationMinutes: in.DurationMinutes,
		CreatedAt:       s.now(),
	}
	if err := s.store.CreateDuration(ctx, rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListDurations returns the raw records of a workspace matching filter.
func (s *DurationService) ListDurations(ctx context.Context, workspaceID string, filter model.Filter) ([]model.DurationRecord, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	return s.store.FetchDurationRecords(ctx, workspaceID, filter)
}

// DeleteDuration removes a record. model.ErrNotFound when it does not exist.
func (s *DurationService) DeleteDuration(ctx context.Context, workspaceID, id string) error {
	return s.store.DeleteDuration(ctx, workspaceID, id)
}
