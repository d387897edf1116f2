package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"sla.service/internal/core/model"
)

// HTTPSource reads duration records from a remote WorklyHub API. Calls go
// through a circuit breaker so a failing upstream is not hammered.
type HTTPSource struct {
	client  *http.Client
	baseURL string
	token   string
	cb      *gobreaker.CircuitBreaker
}

// NewHTTPSource creates a source for baseURL authenticating with a bearer token.
func NewHTTPSource(baseURL, token string) *HTTPSource {
	settings := gobreaker.Settings{
		Name:        "Record-Source",
		MaxRequests: 5,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			// Trip if failure rate is at least 50% after 10 requests
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 10 && failureRatio >= 0.5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("Circuit breaker state changed")
		},
	}

	return &HTTPSource{
		client: &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		cb:      gobreaker.NewCircuitBreaker(settings),
	}
}

// FetchDurationRecords calls GET /api/v1/workspaces/{ws}/durations. Every
// failure is wrapped with model.ErrUpstreamFetch.
func (s *HTTPSource) FetchDurationRecords(ctx context.Context, workspaceID string, filter model.Filter) ([]model.DurationRecord, error) {
	out, err := s.cb.Execute(func() (interface{}, error) {
		return s.fetch(ctx, workspaceID, filter)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			log.Ctx(ctx).Warn().Msg("Circuit breaker is open; skipping record source call")
		}
		return nil, fmt.Errorf("%w: %w", model.ErrUpstreamFetch, err)
	}
	return out.([]model.DurationRecord), nil
}

func (s *HTTPSource) fetch(ctx context.Context, workspaceID string, filter model.Filter) ([]model.DurationRecord, error) {
	q := url.Values{}
	if filter.WorkerID != "" {
		q.Set("workerId", filter.WorkerID)
	}
	if filter.From != "" {
		q.Set("from", filter.From)
	}
	if filter.To != "" {
		q.Set("to", filter.To)
	}
	endpoint := s.baseURL + "/api/v1/workspaces/" + url.PathEscape(workspaceID) + "/durations"
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create record source request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call record source: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("record source returned non-successful status code: %d", resp.StatusCode)
	}

	var records []model.DurationRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode record source response: %w", err)
	}
	if records == nil {
		records = []model.DurationRecord{}
	}
	return records, nil
}
