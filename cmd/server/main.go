package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chabatake/backend/internal/application/accounting"
	exportapp "github.com/chabatake/backend/internal/application/export"
	reportapp "github.com/chabatake/backend/internal/application/report"
	"github.com/chabatake/backend/internal/infrastructure/config"
	"github.com/chabatake/backend/internal/infrastructure/logger"
	"github.com/chabatake/backend/internal/infrastructure/persistence"
	"github.com/chabatake/backend/internal/interfaces/http/handler"
	"github.com/chabatake/backend/internal/interfaces/http/middleware"
	"github.com/chabatake/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting tea production ledger",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

	// Open the ledger store
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to open ledger store", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing ledger store", zap.Error(err))
		}
	}()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to migrate ledger store", zap.Error(err))
	}
	log.Info("Ledger store ready", zap.String("driver", cfg.Database.Driver))

	// Application services
	accountingService := accounting.NewService(persistence.NewGormTransactionScope(db.DB))
	reportService := reportapp.NewService(persistence.NewGormLedgerReportRepository(db.DB))
	exportService := exportapp.NewService(
		persistence.NewGormProductionBatchRepository(db.DB),
		persistence.NewGormInventoryBalanceRepository(db.DB),
		persistence.NewGormShipmentRepository(db.DB),
	)

	// Gin engine and middleware
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	engine.Use(middleware.CORSWithConfig(corsCfg))

	// Handlers and routes
	systemHandler := handler.NewSystemHandler(db.Ping)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewProductionHandler(accountingService)).
		Register(handler.NewShipmentHandler(accountingService)).
		Register(handler.NewReportHandler(reportService)).
		Register(handler.NewExportHandler(exportService, cfg.Export.Dir)).
		Register(systemHandler)
	r.Setup()

	// Unversioned health endpoint for probes
	engine.GET("/health", systemHandler.Health)

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
