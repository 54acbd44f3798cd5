package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Pinger is satisfied by *sqlx.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	db Pinger
	years func() []int
}

// NewHealthHandler creates a new HealthHandler. years lists the tax years with
// a loaded rate table.
func NewHealthHandler(db Pinger, years func() []int) *HealthHandler {
	return &HealthHandler{db: db, years: years}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz. The service is ready once the database
// answers and at least one rate table is loaded.
func (h *HealthHandler) Readiness(c *gin.Context) {
	if err := h.db.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "database not reachable"})
		return
	}
	years := h.years()
	if len(years) == 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "no rate tables loaded"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "rate_table_years": years})
}
