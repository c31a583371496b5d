// Package handler provides HTTP handlers for the wildpost API.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/wildpost/wildpost/internal/api/models"
	"github.com/wildpost/wildpost/internal/api/response"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version   string
	buildTime string
	db        Pinger
}

// NewOpsHandler creates a new OpsHandler. db may be nil when no database
// is wired (readiness then only reports the process itself).
func NewOpsHandler(version, buildTime string, db Pinger) *OpsHandler {
	return &OpsHandler{
		version:   version,
		buildTime: buildTime,
		db:        db,
	}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]interface{}{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// ReadinessCheck handles GET /v1/ops/ready - readiness check.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	ready := models.Readiness{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
	}

	if h.db != nil {
		status := models.HealthStatusOK
		var detail *string
		if err := h.db.Ping(r.Context()); err != nil {
			status = models.HealthStatusFail
			msg := err.Error()
			detail = &msg
			ready.Status = models.HealthStatusFail
		}
		ready.Subsystems = append(ready.Subsystems, models.SubsystemStatus{
			Name:   "postgres",
			Status: status,
			Detail: detail,
		})
	}

	code := http.StatusOK
	if ready.Status != models.HealthStatusOK {
		code = http.StatusServiceUnavailable
	}
	response.JSON(w, r, code, ready)
}
