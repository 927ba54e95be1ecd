// Command dbupdate adds the feedback text columns that older stores may be missing.
// It is safe to run repeatedly.
package main

import (
	"context"
	"log"

	"github.com/touristfeedback/backend/internal/config"
	"github.com/touristfeedback/backend/internal/database"
	"github.com/touristfeedback/backend/internal/logger"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadDatabase()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	db, err := database.Open(cfg.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to open database", zap.Error(err))
	}
	defer db.Close()

	added, err := database.EnsureFeedbackColumns(context.Background(), db)
	if err != nil {
		logger.Logger.Fatal("Failed to update feedback table", zap.Strings("added", added), zap.Error(err))
	}

	if len(added) == 0 {
		logger.Logger.Info("Feedback table is up to date", zap.String("path", cfg.Database.Path))
		return
	}
	logger.Logger.Info("Feedback table updated", zap.String("path", cfg.Database.Path), zap.Strings("added", added))
}
