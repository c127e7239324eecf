// Package api implements app.Runner for the transfer API server process.
package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	apphttp "github.com/chainsafe/settle-rebalancer/pkg/app/http"
	"github.com/chainsafe/settle-rebalancer/pkg/app/httpserver"
	"github.com/chainsafe/settle-rebalancer/pkg/attestation"
	"github.com/chainsafe/settle-rebalancer/pkg/chain"
	"github.com/chainsafe/settle-rebalancer/pkg/config"
	"github.com/chainsafe/settle-rebalancer/pkg/ethereum"
	"github.com/chainsafe/settle-rebalancer/pkg/keys"
	"github.com/chainsafe/settle-rebalancer/pkg/pgutil"
	"github.com/chainsafe/settle-rebalancer/pkg/reconciler"
	"github.com/chainsafe/settle-rebalancer/pkg/transfer"
	transferservice "github.com/chainsafe/settle-rebalancer/pkg/transfer/service"
	"github.com/chainsafe/settle-rebalancer/pkg/transferstore"
)

const defaultRequestTimeout = 60 * time.Second

// Server holds cfg to init the api server.
type Server struct {
	cfg *config.Config
}

// NewServer initializes new api server.
func NewServer(cfg *config.Config) *Server {
	return &Server{cfg: cfg}
}

// Run wires the orchestrator and serves its HTTP API until SIGINT/SIGTERM.
// Running transfers are cancelled and recorded as failed before Run returns.
func (s *Server) Run() error {
	if s.cfg == nil {
		return fmt.Errorf("api server config is nil")
	}
	cfg := s.cfg

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting transfer API server",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
	)

	components, err := Wire(ctx, cfg, logger, func(rec *transfer.Record) {
		logger.Info("Transfer progress",
			zap.String("transfer_id", rec.ID),
			zap.String("status", string(rec.Status)),
		)
	})
	if err != nil {
		return err
	}
	defer components.Close()
	svc := components.Service

	if cfg.Bridge.ReconcileOnStart {
		if _, err := reconciler.New(components.Store, logger).FailOrphaned(ctx); err != nil {
			return fmt.Errorf("reconcile transfers: %w", err)
		}
	}

	router := s.setupRouter(svc, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return apphttp.ServeAndWait(gctx, router, logger, &cfg.Server)
	})
	if s.separateMetricsServer() {
		g.Go(func() error {
			return s.serveMetrics(gctx, logger)
		})
	}
	err = g.Wait()

	// Stop flows before deferred client and store closes kick in.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if shutdownErr := svc.Shutdown(shutdownCtx); shutdownErr != nil {
		logger.Error("Transfers still running at shutdown", zap.Error(shutdownErr))
	}

	return err
}

// Components holds the wired orchestrator and the resources it owns.
type Components struct {
	Service  transferservice.Service
	Store    transferservice.Store
	Registry *chain.Registry
	Signer   common.Address

	closers []func()
}

// Close releases the chain connections and the database, in reverse order of opening.
func (c *Components) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

// Wire builds the transfer orchestrator from configuration: the state store,
// the chain registry, the signing chain client and the attestation client.
func Wire(ctx context.Context, cfg *config.Config, logger *zap.Logger, progress transferservice.ProgressFunc) (*Components, error) {
	c := &Components{}

	store, closeStore, err := openStore(ctx, &cfg.Database, logger)
	if err != nil {
		return nil, err
	}
	c.closers = append(c.closers, closeStore)
	c.Store = store

	registry, err := chain.NewRegistryFromConfig(cfg.Registry)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("build chain registry: %w", err)
	}
	c.Registry = registry

	client, err := openChainClient(cfg, registry, logger)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.closers = append(c.closers, client.Close)
	c.Signer = client.Address()

	opts, err := transferservice.OptionsFromConfig(&cfg.Bridge)
	if err != nil {
		c.Close()
		return nil, err
	}
	opts.Progress = progress

	attester := attestation.NewClient(&cfg.Attestation, logger)
	svc := transferservice.NewService(store, registry, client, attester, opts, logger)
	c.Service = transferservice.NewLog(svc, logger)
	return c, nil
}

func openStore(ctx context.Context, cfg *config.DatabaseConfig, logger *zap.Logger) (transferservice.Store, func(), error) {
	if cfg.Driver == config.DriverMemory {
		logger.Warn("Using in-memory transfer store, records will not survive a restart")
		return transferstore.NewMemoryStore(), func() {}, nil
	}

	db, err := pgutil.ConnectDB(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return transferstore.NewStore(db), func() { _ = db.Close() }, nil
}

func openChainClient(cfg *config.Config, registry *chain.Registry, logger *zap.Logger) (*ethereum.Client, error) {
	key, err := keys.LoadSigner(cfg.Signer, os.Getenv)
	if err != nil {
		return nil, fmt.Errorf("load signer key: %w", err)
	}
	opts, err := ethereum.OptionsFromConfig(&cfg.Bridge)
	if err != nil {
		return nil, err
	}

	chains := registry.List()
	client := ethereum.NewClient(key, chains, opts, logger)
	logger.Info("Chain client ready",
		zap.String("signer", client.Address().Hex()),
		zap.Int("chains", len(chains)),
	)
	return client, nil
}

func (s *Server) separateMetricsServer() bool {
	m := s.cfg.Monitoring
	return m.Enabled && m.MetricsPort != 0 && m.MetricsPort != s.cfg.Server.Port
}

func (s *Server) serveMetrics(ctx context.Context, logger *zap.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Monitoring.MetricsPort),
		Handler:           mux,
		ReadHeaderTimeout: s.cfg.Server.ReadTimeout,
	}
	logger.Info("Metrics enabled", zap.String("address", srv.Addr), zap.String("path", "/metrics"))
	return httpserver.ServeAndWait(ctx, logger.Named("metrics"), srv, s.cfg.Server.ShutdownTimeout)
}

func (s *Server) setupRouter(svc transferservice.Service, logger *zap.Logger) chi.Router {
	requestTimeout := s.cfg.Server.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeout
	}

	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	if s.cfg.Monitoring.Enabled && !s.separateMetricsServer() {
		r.Handle("/metrics", promhttp.Handler())
		logger.Info("Metrics enabled", zap.String("path", "/metrics"))
	}

	r.Route("/api/v1", func(r chi.Router) {
		transferservice.RegisterRoutes(r, svc, logger)
	})

	return r
}
