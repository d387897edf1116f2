package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"sla.service/internal/session"
)

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "SLA API base URL")
	workspace := flag.String("workspace", "load-test-ws", "Workspace to write into")
	secret := flag.String("secret", "", "JWT secret of the API")
	numWorkers := flag.Int("workers", 500, "Distinct worker IDs")
	recordsPerWorker := flag.Int("records", 10, "Records posted per worker")
	concurrency := flag.Int("concurrency", 50, "Concurrent requests")
	flag.Parse()

	token, err := session.Issue([]byte(*secret), session.Session{WorkspaceID: *workspace, UserID: "load-test"}, time.Hour)
	if err != nil {
		fmt.Printf("Could not mint token: %v\n", err)
		return
	}

	url := *baseURL + "/api/v1/workspaces/" + *workspace + "/durations"
	totalRequests := *numWorkers * *recordsPerWorker

	fmt.Printf("Starting load test: %d workers (%d records each) to %s with concurrency %d\n", *numWorkers, *recordsPerWorker, url, *concurrency)

	var wg sync.WaitGroup
	sem := make(chan struct{}, *concurrency) // Semaphore to limit concurrency

	var successCount int64
	var failCount int64

	startTime := time.Now()
	today := time.Now().UTC()

	for i := 0; i < *numWorkers; i++ {
		wg.Add(1)
		sem <- struct{}{}

		go func(workerID string) {
			defer wg.Done()
			defer func() { <-sem }()

			for j := 0; j < *recordsPerWorker; j++ {
				payload, _ := json.Marshal(map[string]any{
					"workerId":        workerID,
					"workDate":        today.AddDate(0, 0, -(j % 7)).Format("2006-01-02"),
					"durationMinutes": 15 + j,
				})
				req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
				req.Header.Set("Content-Type", "application/json")
				req.Header.Set("Authorization", "Bearer "+token)

				resp, err := http.DefaultClient.Do(req)
				if err != nil {
					atomic.AddInt64(&failCount, 1)
					continue
				}

				if resp.StatusCode >= 200 && resp.StatusCode < 300 {
					atomic.AddInt64(&successCount, 1)
				} else {
					atomic.AddInt64(&failCount, 1)
				}
				resp.Body.Close()
			}
		}(fmt.Sprintf("load-test-worker-%d", i))
	}

	wg.Wait()
	duration := time.Since(startTime)

	fmt.Println("\n--- Load Test Results ---")
	fmt.Printf("Total Duration: %v\n", duration)
	fmt.Printf("Total Requests: %d\n", totalRequests)
	fmt.Printf("Successful:     %d\n", successCount)
	fmt.Printf("Failed:         %d\n", failCount)
	fmt.Printf("Requests/Sec:   %.2f\n", float64(totalRequests)/duration.Seconds())
}
