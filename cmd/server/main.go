package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/debtplanner/internal/auth"
	"github.com/mmynk/debtplanner/internal/config"
	"github.com/mmynk/debtplanner/internal/metrics"
	"github.com/mmynk/debtplanner/internal/middleware"
	"github.com/mmynk/debtplanner/internal/models"
	"github.com/mmynk/debtplanner/internal/service"
	"github.com/mmynk/debtplanner/internal/storage"
	"github.com/mmynk/debtplanner/internal/storage/redis"
	"github.com/mmynk/debtplanner/internal/storage/sqlite"
	"github.com/mmynk/debtplanner/pkg/logging"
)

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	store, err := openStore(ctx, cfg)
	if err != nil {
		slog.Error("Failed to initialize storage", "store", cfg.Store, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	defaults := models.Settings{Strategy: cfg.DefaultStrategy, ExtraContribution: cfg.DefaultExtra}
	planner, err := service.NewPlanner(ctx, store, defaults, metrics.NewRecorder(reg))
	if err != nil {
		slog.Error("Failed to load planner state", "error", err)
		os.Exit(1)
	}

	interceptors := []connect.Interceptor{middleware.LoggingInterceptor()}
	if cfg.JWTSecret != "" {
		interceptors = append(interceptors, middleware.RequireAuth(auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)))
		slog.Info("Bearer token auth enabled")
	} else {
		slog.Warn("JWT_SECRET not set, API is unauthenticated")
	}

	mux := http.NewServeMux()
	path, handler := service.NewPlannerService(planner).Handler(connect.WithInterceptors(interceptors...))
	mux.Handle(path, handler)
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", "Connect-Protocol-Version", "Connect-Timeout-Ms", middleware.RequestIDHeader},
		ExposedHeaders: []string{"Connect-Protocol-Version", "Connect-Timeout-Ms", middleware.RequestIDHeader},
	}).Handler(mux)

	// h2c serves HTTP/2 without TLS, which Connect's gRPC protocol needs.
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           h2c.NewHandler(corsHandler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Connect server starting", "address", server.Addr, "url", fmt.Sprintf("http://localhost%s", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		slog.Error("Server failed", "error", err)
		return
	case <-quit:
		slog.Info("Shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Shutdown failed", "error", err)
	}
}

func openStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	switch cfg.Store {
	case config.StoreRedis:
		store, err := redis.New(ctx, cfg.RedisAddr, cfg.RedisPrefix)
		if err != nil {
			return nil, err
		}
		slog.Info("Storage initialized", "store", "redis", "address", cfg.RedisAddr, "prefix", cfg.RedisPrefix)
		return store, nil
	default:
		store, err := sqlite.New(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		slog.Info("Storage initialized", "store", "sqlite", "database", cfg.DBPath)
		return store, nil
	}
}
