// Package memoservice wires configuration, gateways, and the HTTP surface
// into a runnable memo service.
package memoservice

import (
	"context"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/memoflow/memoflow/internal/api"
	"github.com/memoflow/memoflow/internal/api/recovery"
	"github.com/memoflow/memoflow/internal/config"
	"github.com/memoflow/memoflow/internal/exporter"
	"github.com/memoflow/memoflow/internal/factory"
	"github.com/memoflow/memoflow/internal/health"
	"github.com/memoflow/memoflow/internal/identity"
	"github.com/memoflow/memoflow/internal/logger"
	"github.com/memoflow/memoflow/internal/services"
	"github.com/memoflow/memoflow/internal/store"
	summ "github.com/memoflow/memoflow/internal/summarizer"
)

// Run starts the memo service HTTP server and blocks until shutdown or error.
func Run() error {
	log := logger.New("memo-service")

	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}

	log.Info().
		Str("db_driver", cfg.DBDriver).
		Str("identity_provider", cfg.IdentityProvider).
		Int("http_port", cfg.HTTPPort).
		Bool("summarizer_enabled", cfg.SummarizerEnabled()).
		Msg("Memo service starting")

	ctx, stop := newServerContext()
	defer stop()

	st, provider, sum, err := initDependencies(ctx, cfg, log)
	if err != nil {
		return err
	}

	router := buildRouter(st, provider, sum, startHealthChecker(ctx, cfg, log, st), log)

	server := newHTTPServer(ctx, cfg, router)
	errCh := serveHTTP(server, log, cfg)

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Stack().Err(err).Msg("Server forced to shutdown")
			return err
		}
		log.Info().Msg("Server exited")
		return nil
	case err := <-errCh:
		log.Error().Stack().Err(err).Msg("HTTP server failed")
		return err
	}
}

// initDependencies constructs required components and enforces fail-fast on missing deps.
func initDependencies(ctx context.Context, cfg *config.Config, log zerolog.Logger) (store.Store, identity.Provider, summ.Summarizer, error) {
	st, err := factory.NewStore(ctx, cfg, log)
	if err != nil {
		log.Error().Stack().Err(err).Msg("Store adapter unavailable")
		return nil, nil, nil, err
	}

	provider, err := factory.NewIdentityProvider(cfg, log)
	if err != nil {
		log.Error().Stack().Err(err).Msg("Identity provider unavailable")
		return nil, nil, nil, err
	}

	sum, err := factory.NewSummarizer(ctx, cfg, log)
	if err != nil {
		log.Error().Stack().Err(err).Msg("Summarizer unavailable")
		return nil, nil, nil, err
	}
	return st, provider, sum, nil
}

// buildRouter wires HTTP routes to handlers.
func buildRouter(st store.Store, provider identity.Provider, sum summ.Summarizer, isHealthy func() bool, log zerolog.Logger) *mux.Router {
	root := mux.NewRouter()
	root.Use(recovery.Middleware)

	healthHandler := api.NewHealthHandler(isHealthy)
	root.HandleFunc("/api/health", healthHandler.CheckHealth).Methods("GET")

	memoSvc := services.NewMemoService(st)
	memo := api.NewMemoHandler(memoSvc, sum, exporter.NewPDF(), log)

	authed := root.PathPrefix("/api").Subrouter()
	authed.Use(api.Authenticate(provider))
	authed.HandleFunc("/memos", memo.CreateMemo).Methods("POST")
	authed.HandleFunc("/memos", memo.ListMemos).Methods("GET")
	authed.HandleFunc("/memos/{memoId}", memo.GetMemo).Methods("GET")
	authed.HandleFunc("/memos/{memoId}", memo.UpdateMemo).Methods("PATCH")
	authed.HandleFunc("/memos/{memoId}", memo.DeleteMemo).Methods("DELETE")
	authed.HandleFunc("/memos/{memoId}/summary", memo.SummarizeMemo).Methods("POST")
	authed.HandleFunc("/memos/{memoId}/export", memo.ExportMemo).Methods("GET")

	return root
}

// startHealthChecker probes the store on an interval and returns the
// cached-health accessor for the health endpoint.
func startHealthChecker(ctx context.Context, cfg *config.Config, log zerolog.Logger, st store.Store) func() bool {
	pinger, ok := st.(health.Pinger)
	if !ok {
		return func() bool { return true }
	}
	checker := health.NewChecker("store", pinger,
		time.Duration(cfg.HealthProbeTimeoutSeconds)*time.Second, log)
	go checker.Start(ctx, time.Duration(cfg.HealthIntervalSeconds)*time.Second)
	return checker.IsHealthy
}

func newHTTPServer(ctx context.Context, cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.GetHTTPAddr(),
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
}

func serveHTTP(server *http.Server, log zerolog.Logger, cfg *config.Config) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	return errCh
}

// newServerContext returns a cancellable context that is cancelled on SIGINT/SIGTERM.
func newServerContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
