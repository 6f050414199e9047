package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/mamadbah2/flockbook/internal/domain/models"
)

type fakeDashboard struct {
	summary    models.MonthlySummary
	population []models.FarmPopulation
	err        error
}

func (f *fakeDashboard) MonthlySummary(context.Context) (models.MonthlySummary, error) {
	return f.summary, f.err
}

func (f *fakeDashboard) PopulationSummary(context.Context) ([]models.FarmPopulation, error) {
	return f.population, f.err
}

func newDashboardRouter(svc DashboardService) *gin.Engine {
	r := gin.New()
	h := NewDashboardHandler(svc, zap.NewNop())
	r.GET("/api/dashboard/summary", h.Summary)
	r.GET("/api/dashboard/population-summary", h.PopulationSummary)
	return r
}

func TestDashboardHandler_Summary(t *testing.T) {
	svc := &fakeDashboard{summary: models.MonthlySummary{
		Lambs: 4, Weaners: 3, Hoggets: 2, Adults: 10, DeathsThisMonth: 1, TotalDeaths: 6, TransfersThisMonth: 2,
	}}

	rec := do(t, newDashboardRouter(svc), http.MethodGet, "/api/dashboard/summary", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"lambs":4,"weaners":3,"hoggets":2,"adults":10,"deathsThisMonth":1,"totalDeaths":6,"transfersThisMonth":2}`,
		rec.Body.String())
}

func TestDashboardHandler_PopulationSummary(t *testing.T) {
	svc := &fakeDashboard{population: []models.FarmPopulation{
		{FarmName: "North Field", Lambs: 1, Adults: 1, Males: 1, Females: 1},
	}}

	rec := do(t, newDashboardRouter(svc), http.MethodGet, "/api/dashboard/population-summary", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`[{"farm_name":"North Field","lambs":1,"weaners":0,"hoggets":0,"adults":1,"males":1,"females":1}]`,
		rec.Body.String())
}

func TestDashboardHandler_Failure(t *testing.T) {
	svc := &fakeDashboard{err: errors.New("monthly summary: lambs: connection reset")}

	rec := do(t, newDashboardRouter(svc), http.MethodGet, "/api/dashboard/summary", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "monthly summary: lambs: connection reset", errorBody(t, rec))
}
