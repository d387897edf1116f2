package messaging

import (
	"time"

	"sla.service/internal/core/model"
)

// ReportRequestedEvent is the JSON payload sent via SQS for the report queue
type ReportRequestedEvent struct {
	RequestID   string       `json:"requestId"`
	WorkspaceID string       `json:"workspaceId"`
	Recipient   string       `json:"recipient"`
	Filter      model.Filter `json:"filter"`
	RequestedAt time.Time    `json:"requestedAt"`
}

// EventTypeReportRequested tags report messages in their SQS attributes.
const EventTypeReportRequested = "SLA_REPORT_REQUESTED"
