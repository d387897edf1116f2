package core

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"

	"sla.service/internal/core/model"
	"sla.service/internal/ports/messaging"
)

type EmailReportService struct {
	store    ReportRequestStore
	producer messaging.QueueProducer
}

// NewEmailReportService wires the request store and the report queue producer.
func NewEmailReportService(store ReportRequestStore, p messaging.QueueProducer) *EmailReportService {
	return &EmailReportService{store: store, producer: p}
}

// RequestReport records a pending report request and hands it to the worker
// queue. The report itself is built asynchronously.
func (s *EmailReportService) RequestReport(ctx context.Context, workspaceID, recipient string, filter model.Filter) (*model.ReportRequest, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	if _, err := mail.ParseAddress(recipient); err != nil {
		return nil, errors.Join(model.ErrInvalidFilter, errors.New("recipient must be an email address"))
	}

	req := model.ReportRequest{
		ID:          uuid.NewString(),
		WorkspaceID: workspaceID,
		Recipient:   recipient,
		Filter:      filter,
		Status:      model.StatusReportPending,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.store.CreateReportRequest(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to create report request: %w", err)
	}

	event := messaging.ReportRequestedEvent{
		RequestID:   req.ID,
		WorkspaceID: req.WorkspaceID,
		Recipient:   req.Recipient,
		Filter:      req.Filter,
		RequestedAt: req.CreatedAt,
	}
	if err := s.producer.PublishReportRequested(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to publish report request to queue: %w", err)
	}
	return &req, nil
}
