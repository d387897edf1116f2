package source

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sla.service/internal/core/model"
)

func TestHTTPSource_FetchDurationRecords(t *testing.T) {
	var gotPath, gotQuery, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]model.DurationRecord{
			{ID: "r1", WorkspaceID: "ws1", WorkerID: "u1", WorkDate: "2024-03-05", DurationMinutes: 40},
		})
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL+"/", "tok")
	recs, err := src.FetchDurationRecords(context.Background(), "ws1", model.Filter{WorkerID: "u1", From: "2024-03-01", To: "2024-03-31"})

	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, int64(40), recs[0].DurationMinutes)
	assert.Equal(t, "/api/v1/workspaces/ws1/durations", gotPath)
	assert.Equal(t, "from=2024-03-01&to=2024-03-31&workerId=u1", gotQuery)
	assert.Equal(t, "Bearer tok", gotAuth)
}

func TestHTTPSource_EmptyBodyIsEmptySlice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("null"))
	}))
	defer srv.Close()

	recs, err := NewHTTPSource(srv.URL, "").FetchDurationRecords(context.Background(), "ws1", model.Filter{})

	require.NoError(t, err)
	assert.NotNil(t, recs)
	assert.Empty(t, recs)
}

func TestHTTPSource_UpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := NewHTTPSource(srv.URL, "bad").FetchDurationRecords(context.Background(), "ws1", model.Filter{})

	assert.ErrorIs(t, err, model.ErrUpstreamFetch)
}

func TestHTTPSource_BreakerOpensAfterRepeatedFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL, "")
	for i := 0; i < 15; i++ {
		_, err := src.FetchDurationRecords(context.Background(), "ws1", model.Filter{})
		assert.ErrorIs(t, err, model.ErrUpstreamFetch)
	}

	assert.Equal(t, int32(10), calls.Load())
}
