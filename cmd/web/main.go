package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"newsbridge/internal/common/pagination"
	"newsbridge/internal/config"
	"newsbridge/internal/infra/assistant"
	"newsbridge/internal/infra/upstream"
	"newsbridge/internal/observability/logging"
	"newsbridge/internal/observability/tracing"
	chatUC "newsbridge/internal/usecase/chat"
	"newsbridge/internal/usecase/listview"
	"newsbridge/internal/usecase/mapview"

	hhttp "newsbridge/internal/handler/http"
	harticle "newsbridge/internal/handler/http/article"
	hchat "newsbridge/internal/handler/http/chat"
	hpage "newsbridge/internal/handler/http/page"
	"newsbridge/internal/handler/http/requestid"
	huser "newsbridge/internal/handler/http/user"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logger := logging.NewLogger()
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration invalid", slog.Any("error", err))
		os.Exit(1)
	}

	tiers, err := mapview.LoadTiersFile(cfg.TiersFile)
	if err != nil {
		logger.Error("map tiers configuration invalid", slog.Any("error", err))
		os.Exit(1)
	}

	handler, cleanup, err := setupServer(logger, cfg, tiers)
	if err != nil {
		logger.Error("server setup failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer cleanup()

	runServer(logger, cfg, handler)
}

// setupServer wires the upstream client, use cases and HTTP handlers into
// one root handler. The returned cleanup stops background jobs.
func setupServer(logger *slog.Logger, cfg *config.Config, tiers mapview.Tiers) (http.Handler, func(), error) {
	client := upstream.New(cfg.Upstream.BaseURL,
		upstream.WithHTTPClient(&http.Client{Timeout: cfg.Upstream.Timeout}),
		upstream.WithRateLimit(cfg.Upstream.RateLimit, cfg.Upstream.RateBurst),
		upstream.WithLogger(logger),
	)

	cache := listview.NewCache(listview.DefaultTTL)
	listSvc := listview.NewService(client, cache, logger)

	provider := assistant.FromEnv(logger)
	chatSvc := chatUC.NewService(provider, logger)

	paginationCfg := pagination.LoadFromEnv()

	pages, err := hpage.New(listSvc, client, tiers, paginationCfg, logger)
	if err != nil {
		return nil, nil, err
	}

	// Credential endpoints get 5 attempts a minute per IP; the assistant
	// endpoint 20, since every turn is a paid provider call.
	authLimiter := hhttp.NewRateLimiter(5, time.Minute)
	chatLimiter := hhttp.NewRateLimiter(20, time.Minute)

	mux := http.NewServeMux()
	harticle.Register(mux, listSvc, client, tiers, paginationCfg, logger)
	huser.Register(mux, client, authLimiter, logger)
	hchat.Register(mux, chatSvc, chatLimiter, logger)
	pages.Register(mux)

	mux.Handle("GET /healthz", &hhttp.HealthHandler{
		Upstream:          client,
		Version:           cfg.Server.Version,
		AssistantProvider: os.Getenv("ASSISTANT_PROVIDER"),
	})
	mux.Handle("GET /livez", hhttp.LivenessHandler())
	mux.Handle("GET /metrics", hhttp.MetricsHandler())

	janitor := startJanitor(logger, cache)
	cleanup := func() {
		ctx := janitor.Stop()
		<-ctx.Done()
	}

	return applyMiddleware(logger, cfg, mux), cleanup, nil
}

// startJanitor schedules periodic eviction of expired listing cache entries.
func startJanitor(logger *slog.Logger, cache *listview.Cache) *cron.Cron {
	c := cron.New()
	_, err := c.AddFunc("@every 1m", func() {
		if n := cache.PurgeExpired(); n > 0 {
			logger.Debug("purged expired listing cache entries", slog.Int("count", n))
		}
	})
	if err != nil {
		logger.Error("cache janitor schedule invalid", slog.Any("error", err))
		os.Exit(1)
	}
	c.Start()
	return c
}

// applyMiddleware wraps the root handler.
// Order: Request ID → IP Rate Limit → Recovery → Tracing → Logging →
// Security Headers → Input Validation → Timeout → Metrics.
func applyMiddleware(logger *slog.Logger, cfg *config.Config, handler http.Handler) http.Handler {
	rateLimiter := hhttp.NewRateLimiter(300, time.Minute)

	chain := handler
	chain = hhttp.MetricsMiddleware(chain)
	chain = hhttp.Timeout(30 * time.Second)(chain)
	chain = hhttp.InputValidation()(chain)
	chain = hhttp.SecurityHeaders()(chain)
	chain = hhttp.Logging(logger)(chain)
	chain = tracing.Middleware(chain)
	chain = hhttp.Recover(logger)(chain)
	chain = rateLimiter.Limit(chain)
	chain = requestid.Middleware(chain)
	return chain
}

// runServer starts the HTTP server and blocks until shutdown completes.
func runServer(logger *slog.Logger, cfg *config.Config, handler http.Handler) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", cfg.Server.Addr),
			slog.String("version", cfg.Server.Version),
			slog.String("upstream", cfg.Upstream.BaseURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
