package usecase

import (
	"context"
	"log/slog"

	"diarybook/src/core/ports"
)

// HealthService reports whether the service and its storage are usable.
type HealthService struct {
	log *slog.Logger
	db  ports.Repository
}

// NewHealthService creates a new HealthService. db may be nil when no storage is wired.
func NewHealthService(log *slog.Logger, db ports.Repository) *HealthService {
	return &HealthService{
		log: log,
		db:  db,
	}
}

// HealthStatus represents the health of the application.
type HealthStatus struct {
	Status     string                     `json:"status"`
	Components map[string]ComponentHealth `json:"components,omitempty"`
}

// ComponentHealth represents the health of a single component.
type ComponentHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Check performs a health check of all application components.
// Returns the overall health status.
func (s *HealthService) Check(ctx context.Context) *HealthStatus {
	status := &HealthStatus{
		Status:     "ok",
		Components: make(map[string]ComponentHealth),
	}

	if s.db != nil {
		if err := s.db.Health(ctx); err != nil {
			s.log.WarnContext(ctx, "database health check failed", "error", err)
			status.Status = "degraded"
			status.Components["database"] = ComponentHealth{
				Status:  "unhealthy",
				Message: "database unreachable",
			}
		} else {
			status.Components["database"] = ComponentHealth{Status: "healthy"}
		}
	}

	return status
}

// Healthy reports whether Check would return "ok".
func (s *HealthService) Healthy(ctx context.Context) bool {
	return s.Check(ctx).Status == "ok"
}
