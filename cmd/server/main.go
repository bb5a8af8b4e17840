package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/dylbow/clawdgod/internal/cache"
	"github.com/dylbow/clawdgod/internal/clients/kalshi"
	"github.com/dylbow/clawdgod/internal/clients/monday"
	"github.com/dylbow/clawdgod/internal/config"
	"github.com/dylbow/clawdgod/internal/database"
	"github.com/dylbow/clawdgod/internal/modules/channel"
	"github.com/dylbow/clawdgod/internal/modules/history"
	"github.com/dylbow/clawdgod/internal/modules/portfolio"
	"github.com/dylbow/clawdgod/internal/modules/roi"
	"github.com/dylbow/clawdgod/internal/modules/status"
	"github.com/dylbow/clawdgod/internal/modules/tasks"
	"github.com/dylbow/clawdgod/internal/scheduler"
	"github.com/dylbow/clawdgod/internal/server"
	"github.com/dylbow/clawdgod/internal/storage"
	"github.com/dylbow/clawdgod/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		errLog := logger.New(logger.Config{Level: "error"})
		errLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().Msg("Starting Command Center")

	totalDeposited, err := decimal.NewFromString(cfg.TotalDeposited)
	if err != nil {
		log.Fatal().Err(err).Str("value", cfg.TotalDeposited).Msg("Invalid TOTAL_DEPOSITED")
	}

	launchDate, err := time.Parse("2006-01-02", cfg.LaunchDate)
	if err != nil {
		log.Fatal().Err(err).Str("value", cfg.LaunchDate).Msg("Invalid LAUNCH_DATE")
	}

	// Upstream credentials. Both are optional: the dashboard starts in a
	// degraded mode and the affected panels surface per-call errors.
	signer, err := kalshi.LoadSigner(cfg.KalshiKeyPath)
	if err != nil {
		log.Warn().Err(err).Msg("No Kalshi private key, trading panels degraded")
		signer = nil
	}
	mondayToken := loadToken(cfg.MondayTokenPath, log)

	kalshiClient := kalshi.NewClient(cfg.KalshiBaseURL, cfg.KalshiAPIKey, signer, log)
	mondayClient := monday.NewClient(cfg.MondayURL, mondayToken, log)

	// Shared infrastructure.
	c := cache.New(nil)
	docs := storage.New(cfg.DataDir)

	db, err := database.New(filepath.Join(cfg.DataDir, "history.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open history database")
	}
	defer db.Close()

	historyRepo := history.NewRepository(db, log)
	if err := historyRepo.EnsureSchema(); err != nil {
		log.Fatal().Err(err).Msg("Failed to prepare history schema")
	}

	// Services.
	portfolioSvc := portfolio.NewService(kalshiClient, c, totalDeposited, log)
	tasksSvc := tasks.NewService(mondayClient, c, cfg.MondayBoardID, nil, log)
	channelSvc := channel.NewService(docs, log)
	roiSvc := roi.NewService(docs, portfolioSvc, launchDate, nil, log)
	statusSvc := status.NewService(docs, log)

	// Background snapshots of the portfolio value.
	sched := scheduler.New(log)
	snapshotJob := history.NewSnapshotJob(portfolioSvc, historyRepo, log)
	if err := sched.AddJob(cfg.SnapshotSchedule, snapshotJob); err != nil {
		log.Fatal().Err(err).Msg("Failed to register snapshot job")
	}
	sched.Start()
	defer sched.Stop()

	if err := sched.RunNow(snapshotJob); err != nil {
		log.Warn().Err(err).Msg("Initial snapshot failed")
	}

	srv := server.New(server.Config{
		Port:      cfg.Port,
		StaticDir: cfg.StaticDir,
		Log:       log,
		DevMode:   cfg.DevMode,
		Handlers: server.Handlers{
			Portfolio: portfolio.NewHandler(portfolioSvc, log),
			Tasks:     tasks.NewHandler(tasksSvc, log),
			Channel:   channel.NewHandler(channelSvc, log),
			ROI:       roi.NewHandler(roiSvc, log),
			Status:    status.NewHandler(statusSvc, log),
			History:   history.NewHandler(historyRepo, log),
		},
	})

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}

// loadToken reads a bearer token file, tolerating its absence.
func loadToken(path string, log zerolog.Logger) string {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn().Err(err).Msg("No Monday token, task panel degraded")
		return ""
	}
	return strings.TrimSpace(string(data))
}
