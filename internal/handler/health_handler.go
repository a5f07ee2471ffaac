package handler

import (
	"net/http"
	"time"

	"github.com/fabiofilipe/pizzaria-api/pkg/database"
	"github.com/fabiofilipe/pizzaria-api/pkg/logger"
)

type HealthHandler struct {
	db     *database.DB
	logger *logger.Logger
}

func NewHealthHandler(db *database.DB, logger *logger.Logger) *HealthHandler {
	return &HealthHandler{
		db:     db,
		logger: logger.WithComponent("health_handler"),
	}
}

// Health handles GET /health, reporting process and database state.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	payload := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	if h.db == nil {
		status = http.StatusServiceUnavailable
		payload["status"] = "degraded"
		payload["database"] = "not connected"
	} else if err := h.db.HealthCheck(); err != nil {
		h.logger.Warn("Database health check failed", "error", err)
		status = http.StatusServiceUnavailable
		payload["status"] = "degraded"
		payload["database"] = "unreachable"
	} else {
		payload["database"] = "ok"
	}

	writeJSONResponse(h.logger, w, status, payload)
}
