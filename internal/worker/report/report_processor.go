package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/rs/zerolog/log"

	"sla.service/internal/core"
	"sla.service/internal/core/model"
	"sla.service/internal/ports/messaging"
)

// maxRetries is the number of failed sends after which a request is marked FAILED.
const maxRetries = 8

type ReportProcessor struct {
	builder      core.ReportBuilder
	emailService core.EmailService
	requests     core.ReportRequestStore
}

// NewProcessor sets up a processor for emailed report jobs. It builds the
// report, sends it and keeps the request status current.
func NewProcessor(builder core.ReportBuilder, emailService core.EmailService, requests core.ReportRequestStore) *ReportProcessor {
	return &ReportProcessor{
		builder:      builder,
		emailService: emailService,
		requests:     requests,
	}
}

// Process handles one message from the report queue.
func (p *ReportProcessor) Process(ctx context.Context, msg types.Message) (bool, int32, error) {
	if msg.Body == nil {
		return false, 0, errors.New("empty report message")
	}
	var event messaging.ReportRequestedEvent
	if err := json.Unmarshal([]byte(*msg.Body), &event); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("Failed to unmarshal report event")
		return false, 0, err // Do not retry on malformed message
	}

	logger := log.Ctx(ctx).With().Str("report_request_id", event.RequestID).Str("workspace_id", event.WorkspaceID).Logger()

	record, err := p.requests.GetReportRequest(ctx, event.RequestID)
	if errors.Is(err, model.ErrNotFound) {
		logger.Error().Msg("Report request not found. Dropping message.")
		return false, 0, err
	}
	if err != nil {
		return true, 10, fmt.Errorf("failed to get report request from db: %w", err)
	}

	switch record.Status {
	case model.StatusReportCompleted, model.StatusReportFailed:
		logger.Info().Str("status", string(record.Status)).Msg("Report already handled. Skipping.")
		return false, 0, nil
	}

	if err := p.requests.UpdateReportStatus(ctx, record.ID, model.StatusReportProcessing, record.RetryCount); err != nil {
		return true, 10, fmt.Errorf("failed to mark report processing: %w", err)
	}

	report, err := p.builder.BuildReport(ctx, record.WorkspaceID, record.Filter)
	if errors.Is(err, model.ErrInvalidFilter) {
		_ = p.requests.UpdateReportStatus(ctx, record.ID, model.StatusReportFailed, record.RetryCount)
		return false, 0, err
	}
	if err == nil {
		err = p.emailService.SendReportSummary(ctx, record.Recipient, report)
	}
	if err != nil {
		return p.retry(ctx, record, err)
	}

	logger.Info().Int("rows", len(report.Rows)).Float64("total_hours", report.TotalHours).Msg("Report emailed")
	err = p.requests.UpdateReportStatus(ctx, record.ID, model.StatusReportCompleted, record.RetryCount)
	return false, 0, err
}

func (p *ReportProcessor) retry(ctx context.Context, record *model.ReportRequest, cause error) (bool, int32, error) {
	newCount := record.RetryCount + 1
	if newCount > maxRetries {
		_ = p.requests.UpdateReportStatus(ctx, record.ID, model.StatusReportFailed, newCount)
		return false, 0, fmt.Errorf("giving up after %d attempts: %w", newCount, cause)
	}
	if err := p.requests.UpdateReportStatus(ctx, record.ID, model.StatusReportPending, newCount); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("Failed to record report retry")
	}
	return true, calculateBackoff(newCount), cause
}

// calculateBackoff doubles the delay with each retry, capped at one hour.
func calculateBackoff(retryCount int) int32 {
	backoff := math.Pow(2, float64(retryCount)) * 10
	if backoff > 3600 {
		return 3600
	}
	return int32(backoff)
}
