package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/flockbook/internal/config"
	"github.com/mamadbah2/flockbook/internal/repository/mongodb"
	"github.com/mamadbah2/flockbook/internal/repository/postgres"
	"github.com/mamadbah2/flockbook/internal/repository/sheets"
	"github.com/mamadbah2/flockbook/internal/scheduler"
	"github.com/mamadbah2/flockbook/internal/server/router"
	dashboardsvc "github.com/mamadbah2/flockbook/internal/service/dashboard"
	reportingsvc "github.com/mamadbah2/flockbook/internal/service/reporting"
	whatsappclient "github.com/mamadbah2/flockbook/pkg/clients/whatsapp"
	"github.com/mamadbah2/flockbook/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Database.AutoMigrate {
		if err := postgres.RunMigrations(cfg.Database.URL, baseLogger.Named("repo.migrations")); err != nil {
			baseLogger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	connectCtx, cancelConnect := context.WithTimeout(ctx, 30*time.Second)
	db, err := postgres.NewConnection(connectCtx, postgres.Config{
		URL:            cfg.Database.URL,
		MaxConnections: cfg.Database.MaxConns,
	})
	cancelConnect()
	if err != nil {
		baseLogger.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	loc := cfg.Location()
	repos := postgres.NewRepositories(db, baseLogger.Named("repo.postgres"))
	dashboardRepo := postgres.NewDashboardRepository(db, baseLogger.Named("repo.dashboard"))
	dashboardSvc := dashboardsvc.NewService(dashboardRepo, loc, baseLogger.Named("svc.dashboard"))

	sinks := reportingsvc.Sinks{}

	if cfg.MongoDB.URI != "" {
		mongoRepo, err := mongodb.NewMongoDBRepository(ctx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := mongoRepo.Close(closeCtx); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		sinks.Archive = mongoRepo
		baseLogger.Info("report archive enabled")
	}

	if cfg.Sheets.Enabled() {
		sheetsRepo, err := sheets.NewGoogleSheetRepository(ctx, cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		sinks.Sheet = sheetsRepo
		baseLogger.Info("sheets export enabled")
	}

	if cfg.WhatsApp.Enabled() {
		sinks.Messenger = whatsappclient.NewClient(cfg.WhatsApp)
		sinks.Recipient = cfg.WhatsApp.ReportRecipient
		baseLogger.Info("whatsapp delivery enabled")
	} else {
		baseLogger.Warn("whatsapp credentials missing, report delivery disabled")
	}

	reportingSvc := reportingsvc.NewService(dashboardSvc, sinks, loc, baseLogger.Named("svc.reporting"))

	sched := scheduler.NewScheduler(cfg.Reporting.CronSchedule, loc, reportingSvc, baseLogger.Named("scheduler"))
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}

	handler := router.New(router.Stores{
		Farms:        repos.Farms,
		Breeds:       repos.Breeds,
		Branding:     repos.Branding,
		Lambings:     repos.Lambings,
		Lambs:        repos.Lambs,
		Growth:       repos.Growth,
		HealthEvents: repos.HealthEvents,
		WoolRecords:  repos.WoolRecords,
		Mortality:    repos.Mortality,
		Transfers:    repos.Transfers,
	}, router.Options{
		Dashboard:      dashboardSvc,
		DB:             db,
		RequestTimeout: cfg.Server.RequestTimeout,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}, baseLogger.Named("router"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Server.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
	sched.Stop(shutdownCtx)
}
