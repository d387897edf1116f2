package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"sla.service/internal/core"
	"sla.service/internal/core/model"
	"sla.service/internal/core/sla"
)

// DurationService is the record CRUD the handlers need.
type DurationService interface {
	RecordDuration(ctx context.Context, workspaceID string, in core.DurationInput) (*model.DurationRecord, error)
	ListDurations(ctx context.Context, workspaceID string, filter model.Filter) ([]model.DurationRecord, error)
	DeleteDuration(ctx context.Context, workspaceID, id string) error
}

// EmailReportService queues emailed reports.
type EmailReportService interface {
	RequestReport(ctx context.Context, workspaceID, recipient string, filter model.Filter) (*model.ReportRequest, error)
}

type SLAHandler struct {
	Durations DurationService
	Reports   core.ReportBuilder
	Emails    EmailReportService
}

type CreateDurationRequest struct {
	WorkerID        string `json:"workerId"`
	EventID         string `json:"eventId"`
	WorkDate        string `json:"workDate"`
	DurationMinutes int64  `json:"durationMinutes"`
}

type EmailReportRequest struct {
	Recipient string `json:"recipient"`
}

// ReportRow is an aggregated row with the composite key consumers render by.
type ReportRow struct {
	Key string `json:"key"`
	model.AggregatedRow
}

type ReportResponse struct {
	WorkspaceID  string       `json:"workspaceId"`
	Filter       model.Filter `json:"filter"`
	Rows         []ReportRow  `json:"rows"`
	TotalMinutes int64        `json:"totalMinutes"`
	TotalHours   float64      `json:"totalHours"`
	GeneratedAt  string       `json:"generatedAt"`
}

func (h *SLAHandler) CreateDuration(w http.ResponseWriter, r *http.Request) {
	var req CreateDurationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	rec, err := h.Durations.RecordDuration(r.Context(), mux.Vars(r)["workspaceId"], core.DurationInput{
		WorkerID:        req.WorkerID,
		EventID:         req.EventID,
		WorkDate:        req.WorkDate,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (h *SLAHandler) ListDurations(w http.ResponseWriter, r *http.Request) {
	recs, err := h.Durations.ListDurations(r.Context(), mux.Vars(r)["workspaceId"], filterFromQuery(r))
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

func (h *SLAHandler) DeleteDuration(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := h.Durations.DeleteDuration(r.Context(), vars["workspaceId"], vars["id"]); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SLAHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.Reports.BuildReport(r.Context(), mux.Vars(r)["workspaceId"], filterFromQuery(r))
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, NewReportResponse(report))
}

func (h *SLAHandler) EmailReport(w http.ResponseWriter, r *http.Request) {
	var req EmailReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	rr, err := h.Emails.RequestReport(r.Context(), mux.Vars(r)["workspaceId"], req.Recipient, filterFromQuery(r))
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]any{
		"requestId": rr.ID,
		"message":   "Report request recorded for asynchronous processing.",
	})
}

// NewReportResponse adds row keys to a report for rendering.
func NewReportResponse(report *model.Report) ReportResponse {
	rows := make([]ReportRow, 0, len(report.Rows))
	for _, row := range report.Rows {
		rows = append(rows, ReportRow{Key: sla.RowKey(row), AggregatedRow: row})
	}
	return ReportResponse{
		WorkspaceID:  report.WorkspaceID,
		Filter:       report.Filter,
		Rows:         rows,
		TotalMinutes: report.TotalMinutes,
		TotalHours:   report.TotalHours,
		GeneratedAt:  report.GeneratedAt.Format(time.RFC3339),
	}
}

func filterFromQuery(r *http.Request) model.Filter {
	q := r.URL.Query()
	return model.Filter{
		WorkerID: q.Get("workerId"),
		From:     q.Get("from"),
		To:       q.Get("to"),
	}
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidFilter), errors.Is(err, model.ErrInvalidRecord):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, model.ErrNotFound):
		http.Error(w, "Not found", http.StatusNotFound)
	case errors.Is(err, model.ErrUpstreamFetch):
		log.Ctx(ctx).Error().Err(err).Msg("Record source failed")
		http.Error(w, "Record source unavailable", http.StatusBadGateway)
	default:
		log.Ctx(ctx).Error().Err(err).Msg("Service error")
		http.Error(w, "Service error processing request", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
