package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"

	"gridiron-data-service/internal/aggregator"
	"gridiron-data-service/internal/config"
	httpserver "gridiron-data-service/internal/http"
	"gridiron-data-service/internal/logging"
	"gridiron-data-service/internal/metrics"
	"gridiron-data-service/internal/poller"
	"gridiron-data-service/internal/snapshots"
	"gridiron-data-service/internal/store"
)

var metricsSetup = metrics.Setup

// Server owns the aggregation pipeline: providers, poller, snapshot
// writer, line history, and the HTTP surface.
type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	store         *store.MemoryStore
	lineHistory   *store.LineHistory
	poller        *poller.Poller
	cron          *cron.Cron
	httpServer    httpServer
	metricsServer httpServer
	metricsStop   func(context.Context) error
}

// New constructs a fully wired server from configuration.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.NewLogger()
	}

	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger)

	set := newProviderFactory(logger, recorder).build(cfg)
	agg := aggregator.New(aggregator.Config{
		Games:   set.games,
		Odds:    set.odds,
		Weather: set.weather,
		Logger:  logger,
	})

	memoryStore := store.NewMemoryStore()
	writer := snapshots.NewWriter(cfg.Snapshots.Dir, cfg.Snapshots.RetentionDays)

	var lineHistory *store.LineHistory
	if cfg.LineHistoryURL != "" {
		var err error
		lineHistory, err = store.OpenLineHistory(cfg.LineHistoryURL)
		if err != nil {
			return nil, fmt.Errorf("open line history: %w", err)
		}
	}

	plr := poller.New(poller.Config{
		Fetcher:  agg,
		Store:    memoryStore,
		Writer:   writer,
		Lines:    lineRecorder(lineHistory),
		Leagues:  cfg.Leagues,
		Logger:   logger,
		Metrics:  recorder,
		Interval: cfg.PollInterval,
	})

	srv := &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		store:         memoryStore,
		lineHistory:   lineHistory,
		poller:        plr,
		cron:          buildPruneCron(cfg, writer, logger),
		httpServer:    buildHTTPServer(cfg, memoryStore, plr, lineHistory, logger, recorder),
		metricsServer: metricsSrv,
		metricsStop:   metricsShutdown,
	}
	return srv, nil
}

// lineRecorder keeps the poller's LineRecorder nil when history is
// disabled so no recording is attempted.
func lineRecorder(h *store.LineHistory) poller.LineRecorder {
	if h == nil {
		return nil
	}
	return h
}

func buildHTTPServer(cfg config.Config, memoryStore *store.MemoryStore, plr *poller.Poller, lineHistory *store.LineHistory, logger *slog.Logger, recorder *metrics.Recorder) httpServer {
	handlerCfg := httpserver.HandlerConfig{
		Boards:     memoryStore,
		History:    snapshots.NewFSStore(cfg.Snapshots.Dir),
		Readiness:  plr,
		Refresher:  plr,
		AdminToken: cfg.Snapshots.AdminToken,
		Logger:     logger,
	}
	if lineHistory != nil {
		handlerCfg.Lines = lineHistory
	}

	router := httpserver.NewRouter(httpserver.NewHandler(handlerCfg))
	wrapped := httpserver.LoggingMiddleware(logger, recorder, router)

	return stdServer{srv: &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      wrapped,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}}
}

// buildPruneCron schedules the daily snapshot prune at the configured
// UTC hour.
func buildPruneCron(cfg config.Config, writer *snapshots.Writer, logger *slog.Logger) *cron.Cron {
	c := cron.New(cron.WithLocation(time.UTC))
	spec := fmt.Sprintf("0 %d * * *", cfg.Snapshots.PruneHourUTC)
	_, err := c.AddFunc(spec, func() {
		if err := writer.Prune(); err != nil {
			logging.Error(logger, "snapshot prune failed", err)
			return
		}
		logging.Info(logger, "snapshot prune complete")
	})
	if err != nil {
		logging.Error(logger, "failed to schedule snapshot prune", err, slog.String("spec", spec))
		return nil
	}
	return c
}

func buildMetrics(cfg config.Config, logger *slog.Logger) (*metrics.Recorder, httpServer, func(context.Context) error) {
	telCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), telCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "err", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && telCfg.Enabled {
		metricsSrv = stdServer{srv: &http.Server{
			Addr:    ":" + telCfg.Port,
			Handler: handler,
		}}
	}
	return rec, metricsSrv, shutdown
}

// Run starts the poller, cron, and HTTP servers, then waits for
// context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	if s.cron != nil {
		s.cron.Start()
	}
	s.poller.Start(ctx)

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")
	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	launchServer("http", s.httpServer, s.logger, func(error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
	s.poller.Stop()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", "err", err)
		}
	}
	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", "err", err)
		}
	}
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}
	if s.lineHistory != nil {
		if err := s.lineHistory.Close(); err != nil {
			logging.Warn(s.logger, "line history close failed", "err", err)
		}
	}
	logging.Info(s.logger, "shutdown complete")
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		logging.Info(logger, "starting "+name+" server", slog.String("addr", srv.Addr()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Warn(logger, name+" server failed", "error", err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}
