// main.go
package main

import (
	"context"
	"log"

	"github.com/dustinvannguyen13-max/sparkandmend-api/cmd"
	"github.com/dustinvannguyen13-max/sparkandmend-api/internal/data/repository"
	"github.com/dustinvannguyen13-max/sparkandmend-api/internal/wire"
	"github.com/dustinvannguyen13-max/sparkandmend-api/pkg/supabase"
	"github.com/dustinvannguyen13-max/sparkandmend-api/pkg/utils"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Supabase REST client
	db := supabase.NewClient(config.Supabase.URL, config.Supabase.ServiceKey, logger)

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, config, logger)

	// Scheduled calendar sync, disabled when no schedule is configured
	if config.Sync.Schedule != "" {
		scheduler := cron.New()
		_, err := scheduler.AddFunc(config.Sync.Schedule, func() {
			if _, err := app.Service.Sync.Sync(context.Background()); err != nil {
				logger.Error("Scheduled calendar sync failed", zap.Error(err))
			}
		})
		if err != nil {
			logger.Fatal("Invalid sync schedule",
				zap.Error(err),
				zap.String("schedule", config.Sync.Schedule),
			)
		}
		scheduler.Start()
		defer scheduler.Stop()

		logger.Info("Calendar sync scheduled", zap.String("schedule", config.Sync.Schedule))
	}

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
