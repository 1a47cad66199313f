package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/chabatake/backend/internal/infrastructure/config"
	"github.com/chabatake/backend/internal/infrastructure/logger"
	"github.com/chabatake/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

// Applies the ledger schema to the configured store and exits. The server
// migrates on startup too; this exists for provisioning a store ahead of
// time or from CI.
func main() {
	var logLevel string
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to open ledger store", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	if err := db.Migrate(); err != nil {
		log.Fatal("Migration failed", zap.Error(err))
	}

	log.Info("Ledger schema up to date", zap.String("driver", cfg.Database.Driver))
}
