package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/mamadbah2/flockbook/internal/domain/models"
	"github.com/mamadbah2/flockbook/internal/metrics"
	"github.com/mamadbah2/flockbook/internal/server/handlers"
)

// Stores groups the record stores behind the /api resources.
type Stores struct {
	Farms        handlers.RecordStore[models.Farm]
	Breeds       handlers.RecordStore[models.Breed]
	Branding     handlers.RecordStore[models.BrandingRecord]
	Lambings     handlers.RecordStore[models.Lambing]
	Lambs        handlers.RecordStore[models.Lamb]
	Growth       handlers.RecordStore[models.GrowthRecord]
	HealthEvents handlers.RecordStore[models.HealthEvent]
	WoolRecords  handlers.RecordStore[models.WoolRecord]
	Mortality    handlers.RecordStore[models.MortalityRecord]
	Transfers    handlers.RecordStore[models.Transfer]
}

// Options carries everything the router needs besides the stores.
type Options struct {
	Dashboard      handlers.DashboardService
	DB             handlers.Pinger
	RequestTimeout time.Duration
	AllowedOrigins []string
}

// New wires the Gin engine with required routes and middlewares and wraps it in CORS.
func New(stores Stores, opts Options, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))
	r.Use(timeoutMiddleware(opts.RequestTimeout))

	health := handlers.NewHealthHandler(opts.DB, logger.Named("handlers.health"))
	r.GET("/", health.Root)
	r.GET("/healthz", health.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	mount(api, "farms", stores.Farms, "Farm", logger)
	mount(api, "breeds", stores.Breeds, "Breed", logger)
	mount(api, "branding", stores.Branding, "Animal", logger)
	mount(api, "lambings", stores.Lambings, "Lambing", logger)
	mount(api, "lambs", stores.Lambs, "Lamb", logger)
	mount(api, "growth", stores.Growth, "Growth record", logger)
	mount(api, "healthevents", stores.HealthEvents, "Health event", logger)
	mount(api, "woolrecords", stores.WoolRecords, "Wool record", logger)
	mount(api, "mortality", stores.Mortality, "Mortality record", logger)
	mount(api, "transfers", stores.Transfers, "Transfer record", logger)

	if opts.Dashboard != nil {
		dashboard := handlers.NewDashboardHandler(opts.Dashboard, logger.Named("handlers.dashboard"))
		api.GET("/dashboard/summary", dashboard.Summary)
		api.GET("/dashboard/population-summary", dashboard.PopulationSummary)
	}

	logger.Info("router initialized")

	return corsMiddleware(opts.AllowedOrigins)(r)
}

func mount[T any](api *gin.RouterGroup, path string, store handlers.RecordStore[T], label string, logger *zap.Logger) {
	if store == nil {
		return
	}
	handlers.NewResourceHandler(store, label, logger.Named("handlers."+path)).Register(api.Group("/" + path))
}

func corsMiddleware(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	})
}

func timeoutMiddleware(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if timeout <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		elapsed := time.Since(start)
		metrics.ObserveRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), elapsed)

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", elapsed),
			zap.String("client_ip", c.ClientIP()))
	}
}
