package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"RivalEdge/internal/usecase"
	"RivalEdge/pkg/config"
	xhttp "RivalEdge/pkg/http"
	applogger "RivalEdge/pkg/logger"

	"github.com/robfig/cron/v3"
)

// App encapsulates the application lifecycle: initial data load,
// scheduled snapshot refreshes, and the HTTP server.
type App struct {
	cfg      *config.Config
	logger   *applogger.Logger
	analyzer *usecase.TeamAnalyzer
	handler  xhttp.Handler

	httpServer *xhttp.Server
	scheduler  *cron.Cron
}

// New creates a new App instance with all dependencies.
func New(cfg *config.Config, logger *applogger.Logger, analyzer *usecase.TeamAnalyzer, handler xhttp.Handler) *App {
	return &App{
		cfg:      cfg,
		logger:   logger,
		analyzer: analyzer,
		handler:  handler,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Warm the snapshot before serving. A failure here is not fatal:
	// the first request triggers a lazy retry.
	if err := a.analyzer.Snapshots().Refresh(ctx); err != nil {
		a.logger.Warn("initial reference data load failed", applogger.Error(err))
	}

	if schedule := a.cfg.Snapshot.RefreshSchedule; schedule != "" {
		a.scheduler = cron.New()
		if _, err := a.scheduler.AddFunc(schedule, func() {
			if err := a.analyzer.Snapshots().Refresh(ctx); err != nil {
				a.logger.Error("scheduled refresh failed", applogger.Error(err))
			}
		}); err != nil {
			return err
		}
		a.scheduler.Start()
		a.logger.Info("refresh scheduler started", applogger.String("schedule", schedule))
	}

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)
	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown()
}

func (a *App) shutdown() error {
	if a.scheduler != nil {
		<-a.scheduler.Stop().Done()
	}

	timeout := a.cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := a.httpServer.Stop(ctx); err != nil {
		a.logger.Error("http server stop error", applogger.Error(err))
		return err
	}
	a.logger.Info("shutdown complete")
	return nil
}
