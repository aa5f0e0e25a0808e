package services

import (
	"context"
	"time"

	"courtside/internal/dataset"
	"courtside/pkg/contracts"
)

// HealthService reports process and dataset readiness.
type HealthService struct {
	store     *dataset.Store
	path      string
	startedAt time.Time
}

// NewHealthService creates a health service
func NewHealthService(store *dataset.Store, datasetPath string) *HealthService {
	return &HealthService{
		store:     store,
		path:      datasetPath,
		startedAt: time.Now(),
	}
}

// HealthStatus is the /api/health payload.
type HealthStatus struct {
	Status    string            `json:"status"`
	Uptime    string            `json:"uptime"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// HealthCheck reports overall process health including dataset state.
func (s *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	checks := map[string]string{"dataset": "not_loaded"}
	status := "degraded"

	if stats, ok := s.store.Stats(s.path); ok {
		checks["dataset"] = "loaded"
		if stats.Retained > 0 {
			status = "healthy"
		}
	}

	return HealthStatus{
		Status:    status,
		Uptime:    time.Since(s.startedAt).Round(time.Second).String(),
		Timestamp: time.Now(),
		Checks:    checks,
	}
}

// ReadinessCheck reports whether the dashboard can serve views. Ready means
// the dataset is cached; until then selections would block on the parse.
func (s *HealthService) ReadinessCheck(ctx context.Context) HealthStatus {
	if _, ok := s.store.Stats(s.path); ok {
		return HealthStatus{Status: "ready", Timestamp: time.Now()}
	}
	return HealthStatus{Status: "not_ready", Timestamp: time.Now()}
}

// LivenessCheck reports that the process is responsive.
func (s *HealthService) LivenessCheck(ctx context.Context) HealthStatus {
	return HealthStatus{Status: "alive", Timestamp: time.Now()}
}

// Version returns build/version information.
func (s *HealthService) Version() contracts.VersionInfo {
	return contracts.GetVersionInfo()
}
