package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"sla.service/internal/core/model"
	"sla.service/pkg/logger"
)

// Serves random duration records for any workspace so slactl and the report
// service can be exercised without a database.

func durationsHandler(w http.ResponseWriter, r *http.Request) {
	ws := mux.Vars(r)["workspaceId"]
	q := r.URL.Query()
	filter := model.Filter{WorkerID: q.Get("workerId"), From: q.Get("from"), To: q.Get("to")}
	if err := filter.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	today := time.Now().UTC()
	records := make([]model.DurationRecord, 0, 50)
	for i := 0; i < 50; i++ {
		rec := model.DurationRecord{
			ID:              fmt.Sprintf("mock-%d", i),
			WorkspaceID:     ws,
			WorkerID:        fmt.Sprintf("worker-%d", rng.Intn(5)),
			WorkDate:        today.AddDate(0, 0, -rng.Intn(14)).Format(model.DateLayout),
			DurationMinutes: int64(5 + rng.Intn(120)),
			CreatedAt:       today,
		}
		if filter.Matches(rec) {
			records = append(records, rec)
		}
	}

	log.Info().Str("workspace", ws).Int("records", len(records)).Msg("Served mock durations")
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(records)
}

func main() {
	logger.Setup(true)

	r := mux.NewRouter()
	r.HandleFunc("/api/v1/workspaces/{workspaceId}/durations", durationsHandler).Methods(http.MethodGet)

	log.Info().Msg("Record source mock server starting on port 8081...")
	if err := http.ListenAndServe(":8081", r); err != nil {
		log.Fatal().Err(err).Msg("listen")
	}
}
