package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"
)

// HealthHandler handles health check endpoints
type HealthHandler struct{}

// NewHealthHandler creates a new health handler
func NewHealthHandler() *HealthHandler { return &HealthHandler{} }

// global health flag (1 = healthy, 0 = unhealthy)
var healthyFlag atomic.Int32

// lastProbeErr keeps the most recent dependency failure details.
var lastProbeErr atomic.Value // string

func init() {
	healthyFlag.Store(1)
	lastProbeErr.Store("")
}

// StartHealthMonitor launches a background goroutine that probes the
// upstream law API host every `interval`. The service stays up when the
// upstream is down; only the health report changes.
func StartHealthMonitor(ctx context.Context, upstreamBaseURL string, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		client := &http.Client{Timeout: 5 * time.Second}
		probe := func() {
			req, err := http.NewRequestWithContext(ctx, http.MethodHead, upstreamBaseURL, nil)
			if err != nil {
				healthyFlag.Store(0)
				lastProbeErr.Store(fmt.Sprintf("upstream %s: %v", upstreamBaseURL, err))
				return
			}
			resp, err := client.Do(req)
			if err != nil {
				healthyFlag.Store(0)
				lastProbeErr.Store(fmt.Sprintf("upstream %s: %v", upstreamBaseURL, err))
				return
			}
			_ = resp.Body.Close()
			healthyFlag.Store(1)
			lastProbeErr.Store("")
		}

		probe()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				probe()
			}
		}
	}()
}

// CheckHealth GET /v0/health
func (h *HealthHandler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	code := http.StatusOK
	if healthyFlag.Load() == 0 {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}
	body := map[string]interface{}{
		"status":  status,
		"service": "hourei-service",
		"time":    time.Now().UTC().Format(time.RFC3339),
	}
	if msg, _ := lastProbeErr.Load().(string); msg != "" {
		body["lastError"] = msg
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
