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

	"cloud.google.com/go/spanner"
	"github.com/go-chi/chi/v5"
	grpcprom "github.com/grpc-ecosystem/go-grpc-middleware/providers/prometheus"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"

	"github.com/murkotick/storefront-sequencer/internal/config"
	"github.com/murkotick/storefront-sequencer/internal/pkg/clock"
	"github.com/murkotick/storefront-sequencer/internal/platform/memory"
	"github.com/murkotick/storefront-sequencer/internal/platform/spannerdb"
	"github.com/murkotick/storefront-sequencer/internal/transport/grpc/commerce"
	commercev1 "github.com/murkotick/storefront-sequencer/internal/transport/grpc/commercev1"
)

// The server exposes a commerce platform (in memory or on Spanner) over commerce.v1.Platform,
// plus /metrics and /healthz on a separate HTTP listener.
func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}
	logger := cfg.Logger()
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle SIGINT/SIGTERM.
	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		<-ch
		logger.Info("shutdown signal received")
		cancel()
	}()

	var h *commerce.Handler
	switch cfg.Backend {
	case config.BackendMemory:
		store := memory.New(clock.RealClock{})
		h = commerce.NewHandler(store, store, store)
	case config.BackendSpanner:
		client, err := spanner.NewClient(ctx, cfg.SpannerDatabase)
		if err != nil {
			logger.Error("spanner.NewClient", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		store := spannerdb.New(client, clock.RealClock{})
		h = commerce.NewHandler(store, store, store)
	default:
		logger.Error("the server needs a memory or spanner backend", "backend", cfg.Backend)
		os.Exit(1)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	srvMetrics := grpcprom.NewServerMetrics(grpcprom.WithServerHandlingTimeHistogram())
	reg.MustRegister(srvMetrics)

	// gRPC server
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(srvMetrics.UnaryServerInterceptor()))
	commercev1.RegisterPlatformServer(srv, h)
	healthSrv := commercev1.RegisterHealth(srv)
	srvMetrics.InitializeMetrics(srv)

	lis, err := net.Listen("tcp", cfg.GrpcListenAddress)
	if err != nil {
		logger.Error("listen", "addr", cfg.GrpcListenAddress, "error", err)
		os.Exit(1)
	}

	httpSrv := &http.Server{
		Addr:              cfg.MetricsListenAddress,
		Handler:           newHTTPRouter(reg),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("gRPC server listening", "addr", cfg.GrpcListenAddress, "backend", cfg.Backend)
		if err := srv.Serve(lis); err != nil {
			logger.Error("grpc serve", "error", err)
			cancel()
		}
	}()
	go func() {
		logger.Info("metrics listening", "addr", cfg.MetricsListenAddress)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics serve", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()
	healthSrv.Shutdown()
	stopped := make(chan struct{})
	go func() {
		srv.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		srv.Stop()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = httpSrv.Shutdown(shutdownCtx)

	logger.Info("server stopped")
}

func newHTTPRouter(reg *prometheus.Registry) http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	return r
}
