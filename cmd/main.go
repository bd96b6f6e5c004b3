// Command wonfolio consolidates cryptocurrency balances from Korean and
// global venues into a single KRW-valued report. It reads venue credentials
// from environment variables and the rest of its settings from a YAML file.
//
// Usage:
//
//	wonfolio --config wonfolio.yaml
//	wonfolio --setup           (interactive configuration wizard)
//	wonfolio --manual          (value the configured manual holdings)
//	wonfolio --once            (one report, then exit)
//	wonfolio --dashboard       (serve the web dashboard alongside the loop)
//
// Credential environment variables per venue:
//
//	Upbit:   UPBIT_ACCESS_KEY, UPBIT_SECRET_KEY
//	Bithumb: BITHUMB_ACCESS_KEY, BITHUMB_SECRET_KEY
//	Coinone: COINONE_ACCESS_KEY, COINONE_SECRET_KEY
//	Korbit:  KORBIT_ACCESS_KEY, KORBIT_SECRET_KEY
//	Binance: BINANCE_API_KEY, BINANCE_API_SECRET
//	Bybit:   BYBIT_API_KEY, BYBIT_API_SECRET
//
// Wallet addresses (no secrets) may come from the environment too:
// PHANTOM_SOLANA_ACCOUNT, ETH_WALLET_ADDRESS, HYPERLIQUID_WALLET_ADDRESS.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/hyunwoolee/wonfolio/config"
	"github.com/hyunwoolee/wonfolio/internal"
	"github.com/hyunwoolee/wonfolio/internal/events"
	"github.com/hyunwoolee/wonfolio/internal/services/render"
	"github.com/hyunwoolee/wonfolio/internal/setup"
	"github.com/hyunwoolee/wonfolio/internal/web"
)

func main() {
	_ = godotenv.Load()

	cfg, flags, err := config.Get()
	if err != nil {
		log.Fatal(err)
	}

	if flags.Setup {
		if err := setup.RunTUI(flags.ConfigPath); err != nil {
			log.Fatal(err)
		}
		return
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	agg := internal.NewAggregator(cfg, logger)

	if flags.Manual {
		holdings, err := cfg.Holdings()
		if err != nil {
			logger.Fatal("invalid manual holdings", zap.Error(err))
		}
		report := agg.BuildManualReport(ctx, holdings)
		render.Report(os.Stdout, report)
		return
	}

	broadcaster := events.NewReportBroadcaster(4)

	if flags.Dashboard {
		srv := web.NewServer(cfg.DashboardAddr, broadcaster)
		go func() {
			if err := srv.Start(ctx); err != nil {
				logger.Error("dashboard server stopped", zap.Error(err))
			}
		}()
		logger.Info("dashboard available", zap.String("addr", cfg.DashboardAddr))
	}

	runOnce := func() {
		report := agg.BuildReport(ctx)
		render.Report(os.Stdout, report)
		broadcaster.Publish(report)
	}

	runOnce()
	if flags.Once {
		return
	}

	runLoop(ctx, logger, cfg.Interval, runOnce)
}

func runLoop(ctx context.Context, logger *zap.Logger, interval time.Duration, run func()) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info("polling started", zap.Duration("interval", interval))
	for {
		select {
		case <-ctx.Done():
			logger.Info("shutting down")
			return
		case <-ticker.C:
			run()
		}
	}
}
