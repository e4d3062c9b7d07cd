package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	appdashboard "github.com/preston-bernstein/mlb-travel-picks/internal/app/dashboard"
	"github.com/preston-bernstein/mlb-travel-picks/internal/config"
	"github.com/preston-bernstein/mlb-travel-picks/internal/dashboard"
	httpserver "github.com/preston-bernstein/mlb-travel-picks/internal/http"
	"github.com/preston-bernstein/mlb-travel-picks/internal/http/handlers"
	"github.com/preston-bernstein/mlb-travel-picks/internal/http/middleware"
	"github.com/preston-bernstein/mlb-travel-picks/internal/krate"
	"github.com/preston-bernstein/mlb-travel-picks/internal/logging"
	"github.com/preston-bernstein/mlb-travel-picks/internal/metrics"
	"github.com/preston-bernstein/mlb-travel-picks/internal/outs"
	"github.com/preston-bernstein/mlb-travel-picks/internal/picks"
	"github.com/preston-bernstein/mlb-travel-picks/internal/poller"
	"github.com/preston-bernstein/mlb-travel-picks/internal/providers"
	"github.com/preston-bernstein/mlb-travel-picks/internal/providers/oddsapi"
	"github.com/preston-bernstein/mlb-travel-picks/internal/snapshots"
	"github.com/preston-bernstein/mlb-travel-picks/internal/store"
	"github.com/preston-bernstein/mlb-travel-picks/internal/timeutil"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	service       *appdashboard.Service
	httpServer    httpServer
	metricsServer httpServer
	poller        Poller
	syncer        *snapshots.Syncer
	metricsStop   func(context.Context) error
	closers       []func()
}

// New constructs a server with default provider and poller wiring.
func New(cfg config.Config, logger *slog.Logger) *Server {
	return newServerWithMetrics(cfg, logger, nil, nil)
}

func newServerWithProvider(cfg config.Config, logger *slog.Logger, provider providers.DataProvider) *Server {
	return newServerWithMetrics(cfg, logger, provider, nil)
}

// newServerWithMetrics builds the full graph. A nil provider is selected from
// cfg; an injected one still gets the shared wrappers.
func newServerWithMetrics(cfg config.Config, logger *slog.Logger, provider providers.DataProvider, recorder *metrics.Recorder) *Server {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	}
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)
	loc := timeutil.ResolveTimezone(cfg.Timezone)

	factory := newProviderFactory(logger, recorder)
	var built builtProvider
	if provider == nil {
		built = factory.build(cfg)
	} else {
		built = factory.wrap(cfg, provider)
	}

	snaps := buildSnapshots(cfg, built.provider, loc, logger)
	svc := appdashboard.NewService(store.NewMemoryStore())

	deps := poller.Deps{
		Schedule: snaps.archive,
		Stats:    krate.NewCollector(built.provider, cfg.MLBStats.PitcherRequestDelay, cfg.Strategy.KRate.LookbackDays, logger),
		Sink:     svc,
		Logger:   logger,
		Metrics:  recorder,
	}
	deps.Odds, deps.Props = oddsSources(cfg.Odds)
	plr := poller.New(deps, poller.Options{
		Interval:    cfg.PollInterval,
		Location:    loc,
		SeasonStart: cfg.SeasonStart,
		Strategy:    strategyFromConfig(cfg.Strategy),
	})

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		service:       svc,
		httpServer:    buildHTTPServer(cfg, svc, snaps.refresher, loc, logger, recorder, plr),
		metricsServer: metricsSrv,
		poller:        plr,
		syncer:        snaps.syncer,
		metricsStop:   metricsShutdown,
		closers:       built.closers,
	}
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, svc *appdashboard.Service, httpSrv httpServer, plr Poller) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		service:    svc,
		httpServer: httpSrv,
		poller:     plr,
	}
}

// oddsSources returns the quote and prop sources the config enables. The
// interfaces stay nil, not typed-nil, when a lookup is off.
func oddsSources(cfg config.OddsConfig) (poller.OddsSource, poller.PropsSource) {
	if cfg.APIKey == "" {
		return nil, nil
	}
	client := oddsapi.NewClient(oddsapi.Config{APIKey: cfg.APIKey, BaseURL: cfg.BaseURL})
	if !cfg.PlayerProps {
		return client, nil
	}
	return client, client
}

// strategyFromConfig maps the YAML-friendly strategy onto the pipeline's types.
func strategyFromConfig(s config.Strategy) dashboard.Strategy {
	return dashboard.Strategy{
		LookbackDays: s.LookbackDays,
		WeakTeam: picks.WeakTeam{
			TeamID:     s.WeakTeam.TeamID,
			Spread:     s.WeakTeam.Spread,
			HomeReason: s.WeakTeam.HomeReason,
			AwayReason: s.WeakTeam.AwayReason,
		},
		Doubleheader: s.Sweep.DoubleheaderRule,
		KRate: krate.Params{
			Threshold:         s.KRate.Threshold,
			HighThreshold:     s.KRate.HighThreshold,
			MinAppearances:    s.KRate.MinAppearances,
			LookbackDays:      s.KRate.LookbackDays,
			DefaultTeamRate:   s.KRate.DefaultTeamRate,
			AssumedTotal:      s.KRate.AssumedTotal,
			AssumedFirstFive:  s.KRate.AssumedFirstFive,
			RecentAppearances: s.KRate.RecentAppearances,
		},
		Outs: outs.Params{
			Baseline:       s.Outs.Baseline,
			RecentGames:    s.Outs.RecentGames,
			MinRecentGames: s.Outs.MinRecentGames,
			RecentWeight:   s.Outs.RecentWeight,
			LeagueOPS:      s.Outs.LeagueOPS,
			OPSWeight:      s.Outs.OPSWeight,
			LeagueWHIP:     s.Outs.LeagueWHIP,
			WHIPWeight:     s.Outs.WHIPWeight,
			HomeEdge:       s.Outs.HomeEdge,
			HighKRate:      s.Outs.HighKRate,
			GoodKRate:      s.Outs.GoodKRate,
			LowKRate:       s.Outs.LowKRate,
			MinEdge:        s.Outs.MinEdge,
			MinOuts:        s.Outs.MinOuts,
			MaxOuts:        s.Outs.MaxOuts,
		},
		BacktestOdds:  decimal.NewFromFloat(s.Sweep.BacktestOdds),
		BacktestStake: decimal.NewFromFloat(s.Sweep.BacktestStake),
	}
}

func buildHTTPServer(cfg config.Config, svc *appdashboard.Service, snaps handlers.SnapshotRefresher, loc *time.Location, logger *slog.Logger, recorder *metrics.Recorder, plr Poller) httpServer {
	var statusFn func() poller.Status
	if plr != nil {
		statusFn = plr.Status
	}
	handler := handlers.NewHandler(svc, logger, statusFn)

	var admin *handlers.AdminHandler
	if cfg.AdminToken != "" {
		admin = handlers.NewAdminHandler(plr, snaps, cfg.AdminToken, loc, logger)
	}
	router := httpserver.NewRouter(handler, admin)
	wrapped := middleware.LoggingMiddleware(logger, recorder, router)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      wrapped,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run starts the snapshot sync, poller and HTTP server, then waits for context
// cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	if err := s.syncer.Start(ctx); err != nil {
		logging.Warn(s.logger, "snapshot sync disabled", "err", err)
	}
	s.poller.Start(ctx)

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	logging.Info(s.logger, "http server starting", "addr", s.httpServer.Addr())
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	logging.Info(s.logger, "metrics server starting", "addr", s.metricsServer.Addr())
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

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

	s.syncer.Stop()

	if err := s.poller.Stop(shutdownCtx); err != nil {
		logging.Error(s.logger, "failed to stop poller", err)
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	// Rate limiter tickers and the redis client.
	for _, closeFn := range s.closers {
		closeFn()
	}

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "err", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:    ":" + recCfg.Port,
				Handler: handler,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Warn(logger, name+" server failed", "err", err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
