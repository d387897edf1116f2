package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type Producer struct {
	sender         MessageSender
	reportQueueURL string
}

func NewProducer(sender MessageSender, reportQueueURL string) *Producer {
	return &Producer{
		sender:         sender,
		reportQueueURL: reportQueueURL,
	}
}

func NewSQSProducer(client SQSClient, reportQueueURL string) *Producer {
	return NewProducer(&SQSSender{client: client}, reportQueueURL)
}

func (p *Producer) PublishReportRequested(ctx context.Context, event ReportRequestedEvent) error {
	b, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal body: %w", err)
	}

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(
			attribute.String("app.workspaceId", event.WorkspaceID),
			attribute.String("app.reportRequestId", event.RequestID),
		)
	}

	if err := p.sender.SendMessage(ctx, p.reportQueueURL, EventTypeReportRequested, b); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}
