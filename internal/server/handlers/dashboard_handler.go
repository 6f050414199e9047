package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/flockbook/internal/domain/models"
)

// DashboardService is the aggregation surface used by the dashboard routes.
type DashboardService interface {
	MonthlySummary(ctx context.Context) (models.MonthlySummary, error)
	PopulationSummary(ctx context.Context) ([]models.FarmPopulation, error)
}

// DashboardHandler serves the read-only dashboard views.
type DashboardHandler struct {
	svc    DashboardService
	logger *zap.Logger
}

// NewDashboardHandler constructs the dashboard HTTP adapter.
func NewDashboardHandler(svc DashboardService, logger *zap.Logger) *DashboardHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardHandler{svc: svc, logger: logger}
}

// Summary returns the monthly operational counts.
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.svc.MonthlySummary(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// PopulationSummary returns living animals per farm by life stage and gender.
func (h *DashboardHandler) PopulationSummary(c *gin.Context) {
	rows, err := h.svc.PopulationSummary(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "")
		return
	}
	c.JSON(http.StatusOK, rows)
}
