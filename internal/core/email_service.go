package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"sla.service/internal/core/model"
	"sla.service/internal/core/sla"
	"sla.service/pkg/telemetry"
)

type EmailService interface {
	SendReportSummary(ctx context.Context, to string, report *model.Report) error
}

// SESClient is the part of the SES API the email service uses.
type SESClient interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SESEmailService struct {
	client SESClient
	sender string
}

func NewSESEmailService(client SESClient, sender string) *SESEmailService {
	return &SESEmailService{client: client, sender: sender}
}

func (s *SESEmailService) SendReportSummary(ctx context.Context, to string, report *model.Report) error {
	tracer := otel.Tracer("ses-email-service")
	ctx, span := tracer.Start(ctx, "send_email", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	if wsID := telemetry.GetWorkspaceIDFromContext(ctx); wsID != "" {
		span.SetAttributes(attribute.String("app.workspaceId", wsID))
	}

	input := &ses.SendEmailInput{
		Source: aws.String(s.sender),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String("SLA Report " + report.WorkspaceID),
			},
			Body: &types.Body{
				Text: &types.Content{
					Data: aws.String(FormatReportText(report)),
				},
			},
		},
	}

	_, err := s.client.SendEmail(ctx, input)
	return err
}

// FormatReportText renders a report as plain text, one line per row plus a total.
func FormatReportText(report *model.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello,\n\nSLA report for workspace %s", report.WorkspaceID)
	if report.Filter.From != "" || report.Filter.To != "" {
		fmt.Fprintf(&b, " (%s to %s)", orAny(report.Filter.From), orAny(report.Filter.To))
	}
	b.WriteString(".\n\n")
	if len(report.Rows) == 0 {
		b.WriteString("No recorded durations.\n")
	}
	for _, row := range report.Rows {
		fmt.Fprintf(&b, "%-32s %6d min %8.2f h\n", sla.RowKey(row), row.TotalMinutes, row.TotalHours)
	}
	fmt.Fprintf(&b, "\nTotal: %.2f hours\n", report.TotalHours)
	return b.String()
}

func orAny(s string) string {
	if s == "" {
		return "any"
	}
	return s
}
