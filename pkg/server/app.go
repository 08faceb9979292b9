package server

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"MomentumReport/internal/domain/models"
	"MomentumReport/internal/usecase"
	"MomentumReport/pkg/config"
	xhttp "MomentumReport/pkg/http"
	applogger "MomentumReport/pkg/logger"
)

// App encapsulates the application lifecycle for one-shot runs and the
// long-running scheduler.
type App struct {
	cfg       *config.Config
	log       *applogger.Logger
	generator *usecase.ReportGenerator
	service   *usecase.ReportService
	pipeline  *usecase.ReportPipeline
	scheduler *usecase.Scheduler
	handler   xhttp.Handler
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	log *applogger.Logger,
	generator *usecase.ReportGenerator,
	service *usecase.ReportService,
	pipeline *usecase.ReportPipeline,
	scheduler *usecase.Scheduler,
	handler xhttp.Handler,
) *App {
	return &App{
		cfg:       cfg,
		log:       log,
		generator: generator,
		service:   service,
		pipeline:  pipeline,
		scheduler: scheduler,
		handler:   handler,
	}
}

// Logger returns the application logger.
func (a *App) Logger() *applogger.Logger { return a.log }

// Location returns the report timezone.
func (a *App) Location() *time.Location { return a.cfg.Location() }

// Generate runs the pipeline once for date and optionally delivers the result.
func (a *App) Generate(ctx context.Context, date time.Time, send bool) (*usecase.RunResult, error) {
	return a.pipeline.Run(ctx, date, send)
}

// Send delivers the report for date, generating it if needed.
func (a *App) Send(ctx context.Context, date time.Time, force bool) (models.DeliveryResult, error) {
	doc, err := a.generator.Report(ctx, date)
	if err != nil {
		return models.DeliveryResult{}, err
	}
	return a.service.Send(ctx, doc, force), nil
}

// Run starts the HTTP API and the daily schedule and blocks until
// interrupted or ctx ends.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []xhttp.ServerOption{
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	}
	metricsPath := ""
	if a.cfg.Metrics.Enabled {
		metricsPath = a.cfg.Metrics.Path
	}
	opts = append(opts, xhttp.WithMetrics(metricsPath, nil, nil))
	httpServer := xhttp.NewServer(a.handler, a.log, opts...)

	if err := a.scheduler.Start(); err != nil {
		return err
	}
	if err := httpServer.Start(); err != nil {
		a.scheduler.Stop(context.Background())
		return err
	}

	<-ctx.Done()
	a.log.Info("Shutdown signal received")
	return a.shutdown(httpServer)
}

// shutdown gracefully stops all services.
func (a *App) shutdown(httpServer *xhttp.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	var errs []error
	if err := httpServer.Stop(ctx); err != nil {
		a.log.Error("HTTP shutdown error", applogger.Error(err))
		errs = append(errs, err)
	}
	a.scheduler.Stop(ctx)

	a.log.Info("Shutdown complete")
	return errors.Join(errs...)
}

// Close releases the report publisher. Infrastructure clients are released
// by the cleanup function returned from the injector.
func (a *App) Close() {
	if err := a.service.Close(); err != nil {
		a.log.Warn("Publisher close error", applogger.Error(err))
	}
}
