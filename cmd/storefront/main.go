package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"cloud.google.com/go/spanner"

	"github.com/murkotick/storefront-sequencer/internal/app/commerce/storefront"
	"github.com/murkotick/storefront-sequencer/internal/config"
	"github.com/murkotick/storefront-sequencer/internal/pkg/clock"
	"github.com/murkotick/storefront-sequencer/internal/platform/grpcclient"
	"github.com/murkotick/storefront-sequencer/internal/platform/memory"
	"github.com/murkotick/storefront-sequencer/internal/platform/spannerdb"
)

// storefront runs one storefront command against the configured platform.
//
//	PLATFORM_BACKEND=grpc PLATFORM_ADDR=localhost:50051 storefront checkout -email a@b.c -password pw lamp:2
//
// The memory backend lives only as long as the process, so it is seeded with the demo catalog first.
func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}
	logger := cfg.Logger()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var (
		backend storefront.Backend
		seed    bool
	)
	switch cfg.Backend {
	case config.BackendMemory:
		backend, seed = memory.New(clock.RealClock{}), true
	case config.BackendGRPC:
		client, conn, err := grpcclient.Dial(cfg.PlatformAddress)
		if err != nil {
			logger.Error("dial platform", "addr", cfg.PlatformAddress, "error", err)
			os.Exit(1)
		}
		defer conn.Close()
		backend = client
	case config.BackendSpanner:
		client, err := spanner.NewClient(ctx, cfg.SpannerDatabase)
		if err != nil {
			logger.Error("spanner.NewClient", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		backend = spannerdb.New(client, clock.RealClock{})
	}

	a := newApp(cfg, backend, logger, os.Stdout)
	if seed {
		if err := a.seed(ctx, defaultAdminPassword); err != nil {
			logger.Error("seed", "error", err)
			os.Exit(1)
		}
	}
	if err := a.run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
