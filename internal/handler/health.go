// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"runtime"
	"syscall"
	"time"

	"github.com/olegiv/portfolio-go/internal/middleware"
	"github.com/olegiv/portfolio-go/internal/store"
)

// Check statuses
const (
	checkHealthy   = "healthy"
	checkUnhealthy = "unhealthy"
	checkDegraded  = "degraded"
	checkSkipped   = "skipped"
)

// minDiskSpace is the free space below which the disk check degrades.
const minDiskSpace = 100 * 1024 * 1024 // 100MB

// HealthHandler handles health check requests.
type HealthHandler struct {
	health     *store.HealthMonitor
	sessions   middleware.SessionChecker
	uploadsDir string
	version    string
	startTime  time.Time
	statfs     func(path string, stat *syscall.Statfs_t) error
}

// NewHealthHandler creates a new health handler. An empty uploadsDir skips
// the disk check.
func NewHealthHandler(health *store.HealthMonitor, sessions middleware.SessionChecker, uploadsDir, version string) *HealthHandler {
	return &HealthHandler{
		health:     health,
		sessions:   sessions,
		uploadsDir: uploadsDir,
		version:    version,
		startTime:  time.Now(),
		statfs:     syscall.Statfs,
	}
}

// HealthStatusPublic is the minimal health response for anonymous callers.
type HealthStatusPublic struct {
	Status string `json:"status"`
}

// HealthStatus represents the overall health status (admin callers only).
type HealthStatus struct {
	Status    string           `json:"status"`
	Timestamp time.Time        `json:"timestamp"`
	Uptime    string           `json:"uptime"`
	Version   string           `json:"version"`
	Checks    map[string]Check `json:"checks"`
	System    *SystemInfo      `json:"system,omitempty"`
}

// Check represents a single health check result.
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// SystemInfo contains system-level information.
type SystemInfo struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutines"`
	NumCPU       int    `json:"num_cpus"`
	MemAlloc     string `json:"mem_alloc"`
	MemSys       string `json:"mem_sys"`
}

// Health handles GET /health requests.
// Returns minimal status for anonymous callers, full details for the admin.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	storeCheck := h.checkStore(r)
	diskCheck := h.checkDiskSpace()

	overallStatus := checkHealthy
	if !passing(storeCheck) || !passing(diskCheck) {
		overallStatus = checkDegraded
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")

	if overallStatus != checkHealthy {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}

	if h.sessions == nil || !h.sessions.IsActive(r) {
		_ = json.NewEncoder(w).Encode(HealthStatusPublic{Status: overallStatus})
		return
	}

	status := HealthStatus{
		Status:    overallStatus,
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Version:   h.version,
		Checks: map[string]Check{
			"store": storeCheck,
			"disk":  diskCheck,
		},
	}

	if r.URL.Query().Get("verbose") == "true" {
		status.System = getSystemInfo()
	}

	_ = json.NewEncoder(w).Encode(status)
}

// Liveness handles GET /health/live - simple liveness check.
func (h *HealthHandler) Liveness(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status": "alive",
	})
}

// Readiness handles GET /health/ready. The site can serve in fallback mode,
// so a missing store is ready; a configured store must answer.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	storeCheck := h.checkStore(r)

	w.Header().Set("Content-Type", "application/json")

	if passing(storeCheck) {
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status": "ready",
		})
		return
	}

	w.WriteHeader(http.StatusServiceUnavailable)
	resp := map[string]string{
		"status": "not_ready",
	}
	if h.sessions != nil && h.sessions.IsActive(r) {
		resp["message"] = storeCheck.Message
	}
	_ = json.NewEncoder(w).Encode(resp)
}

func passing(c Check) bool {
	return c.Status == checkHealthy || c.Status == checkSkipped
}

// checkStore pings the configured store.
func (h *HealthHandler) checkStore(r *http.Request) Check {
	start := time.Now()
	health := h.health.Probe(r.Context())
	latency := time.Since(start)

	switch {
	case !health.Configured:
		return Check{Status: checkSkipped, Message: "Not configured, serving static data"}
	case !health.Connected:
		return Check{Status: checkUnhealthy, Message: health.LastError, Latency: latency.String()}
	default:
		return Check{Status: checkHealthy, Message: "Connected", Latency: latency.String()}
	}
}

// checkDiskSpace checks available disk space in the uploads directory.
func (h *HealthHandler) checkDiskSpace() Check {
	if h.uploadsDir == "" {
		return Check{Status: checkSkipped, Message: "Uploads disabled"}
	}

	if _, err := os.Stat(h.uploadsDir); os.IsNotExist(err) {
		return Check{
			Status:  checkHealthy,
			Message: "Uploads directory does not exist yet",
		}
	}

	var stat syscall.Statfs_t
	if err := h.statfs(h.uploadsDir, &stat); err != nil {
		return Check{
			Status:  checkUnhealthy,
			Message: "Failed to check disk space: " + err.Error(),
		}
	}

	availableBytes := stat.Bavail * uint64(stat.Bsize) // #nosec G115 -- block size is positive
	available := formatBytes(availableBytes)

	if availableBytes < minDiskSpace {
		return Check{
			Status:  checkDegraded,
			Message: "Low disk space: " + available + " available",
		}
	}

	return Check{
		Status:  checkHealthy,
		Message: available + " available",
	}
}

// getSystemInfo returns system-level metrics.
func getSystemInfo() *SystemInfo {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return &SystemInfo{
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
		NumCPU:       runtime.NumCPU(),
		MemAlloc:     formatBytes(m.Alloc),
		MemSys:       formatBytes(m.Sys),
	}
}

// formatBytes converts bytes to a human-readable string.
func formatBytes(bytes uint64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/GB)
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/KB)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
