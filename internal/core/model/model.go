package model

import (
	"errors"
	"time"
)

// DateLayout is the calendar date format used for work dates and filter bounds.
const DateLayout = "2006-01-02"

var (
	ErrInvalidFilter = errors.New("invalid filter")
	ErrInvalidRecord = errors.New("invalid duration record")
	ErrNotFound      = errors.New("not found")
	ErrUpstreamFetch = errors.New("upstream fetch failed")
)

// ReportStatus defines the state of an emailed report request.
type ReportStatus string

const (
	StatusReportPending    ReportStatus = "PENDING"
	StatusReportProcessing ReportStatus = "PROCESSING"
	StatusReportCompleted  ReportStatus = "COMPLETED"
	StatusReportFailed     ReportStatus = "FAILED"
)

// DurationRecord is one unit of attributable work time for a worker on a date.
type DurationRecord struct {
	ID              string    `json:"id"`
	WorkspaceID     string    `json:"workspaceId"`
	WorkerID        string    `json:"workerId"`
	EventID         string    `json:"eventId,omitempty"`
	WorkDate        string    `json:"workDate"`
	DurationMinutes int64     `json:"durationMinutes"`
	CreatedAt       time.Time `json:"createdAt"`
}

// AggregatedRow is the per (worker, date) projection of duration records.
type AggregatedRow struct {
	WorkerID     string  `json:"workerId"`
	WorkDate     string  `json:"workDate"`
	TotalMinutes int64   `json:"totalMinutes"`
	TotalHours   float64 `json:"totalHours"`
}

// Filter narrows the records fetched from a source. Empty fields mean no bound.
// From and To are inclusive.
type Filter struct {
	WorkerID string `json:"workerId,omitempty"`
	From     string `json:"from,omitempty"`
	To       string `json:"to,omitempty"`
}

// Validate checks the date bounds are well formed and ordered.
func (f Filter) Validate() error {
	var from, to time.Time
	var err error
	if f.From != "" {
		if from, err = time.Parse(DateLayout, f.From); err != nil {
			return errors.Join(ErrInvalidFilter, errors.New("from must be YYYY-MM-DD"))
		}
	}
	if f.To != "" {
		if to, err = time.Parse(DateLayout, f.To); err != nil {
			return errors.Join(ErrInvalidFilter, errors.New("to must be YYYY-MM-DD"))
		}
	}
	if f.From != "" && f.To != "" && from.After(to) {
		return errors.Join(ErrInvalidFilter, errors.New("from is after to"))
	}
	return nil
}

// Matches reports whether a record falls inside the filter bounds.
func (f Filter) Matches(r DurationRecord) bool {
	if f.WorkerID != "" && r.WorkerID != f.WorkerID {
		return false
	}
	// ISO dates order lexicographically.
	if f.From != "" && r.WorkDate < f.From {
		return false
	}
	if f.To != "" && r.WorkDate > f.To {
		return false
	}
	return true
}

// Report is the aggregated view handed to report consumers.
type Report struct {
	WorkspaceID  string          `json:"workspaceId"`
	Filter       Filter          `json:"filter"`
	Rows         []AggregatedRow `json:"rows"`
	TotalMinutes int64           `json:"totalMinutes"`
	TotalHours   float64         `json:"totalHours"`
	GeneratedAt  time.Time       `json:"generatedAt"`
}

// ReportRequest tracks an emailed report through the async worker.
type ReportRequest struct {
	ID          string       `json:"id"`
	WorkspaceID string       `json:"workspaceId"`
	Recipient   string       `json:"recipient"`
	Filter      Filter       `json:"filter"`
	Status      ReportStatus `json:"status"`
	RetryCount  int          `json:"retryCount"`
	CreatedAt   time.Time    `json:"createdAt"`
}
