package main

import (
	"net/http"

	"smartlibrary-backend/pkg/container"
	"smartlibrary-backend/pkg/logger"
)

// startHealthCheckServer exposes liveness and readiness probes for the
// worker process.
func startHealthCheckServer(c *container.Container) {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"UP","service":"smartlibrary-worker"}`))
	})

	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := c.DB.HealthCheck(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"NOT_READY"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"READY"}`))
	})

	logger.Info("worker health server starting on :9999", nil)
	if err := http.ListenAndServe(":9999", mux); err != nil {
		logger.Error("worker health server failed", err)
	}
}
