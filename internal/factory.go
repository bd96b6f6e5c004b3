package internal

import (
	"go.uber.org/zap"

	"github.com/hyunwoolee/wonfolio/config"
	"github.com/hyunwoolee/wonfolio/internal/clients"
	"github.com/hyunwoolee/wonfolio/internal/services/aggregator"
	"github.com/hyunwoolee/wonfolio/internal/services/balance"
	"github.com/hyunwoolee/wonfolio/internal/services/pricer"
)

// NewAggregator wires providers and the price resolver from configuration.
// This is the single point of truth for which venues participate in a run: a
// venue with missing credentials is disabled with a warning, never fatal to
// the other venues.
func NewAggregator(cfg *config.Config, logger *zap.Logger) *aggregator.Aggregator {
	resolver := pricer.NewResolver(logger, newPriceSources(cfg, logger)...)

	var providers []balance.Provider

	if cfg.Upbit.Configured() {
		providers = append(providers,
			balance.NewUpbitProvider(clients.NewUpbitClient(cfg.Upbit.Key, cfg.Upbit.Secret), logger))
	} else {
		logger.Warn("upbit disabled: UPBIT_ACCESS_KEY/UPBIT_SECRET_KEY not set")
	}

	if cfg.Bithumb.Configured() {
		providers = append(providers,
			balance.NewBithumbProvider(clients.NewBithumbClient(cfg.Bithumb.Key, cfg.Bithumb.Secret), logger))
	} else {
		logger.Warn("bithumb disabled: BITHUMB_ACCESS_KEY/BITHUMB_SECRET_KEY not set")
	}

	if cfg.Coinone.Configured() {
		providers = append(providers,
			balance.NewCoinoneProvider(clients.NewCoinoneClient(cfg.Coinone.Key, cfg.Coinone.Secret), logger))
	} else {
		logger.Warn("coinone disabled: COINONE_ACCESS_KEY/COINONE_SECRET_KEY not set")
	}

	if cfg.Korbit.Configured() {
		providers = append(providers,
			balance.NewKorbitProvider(clients.NewKorbitClient(cfg.Korbit.Key, cfg.Korbit.Secret), logger))
	} else {
		logger.Warn("korbit disabled: KORBIT_ACCESS_KEY/KORBIT_SECRET_KEY not set")
	}

	if cfg.Binance.Configured() {
		providers = append(providers,
			balance.NewBinanceProvider(clients.NewBinanceClient(cfg.Binance.Key, cfg.Binance.Secret)))
	}

	if cfg.Bybit.Configured() {
		providers = append(providers,
			balance.NewBybitProvider(clients.NewBybitClient(cfg.Bybit.Key, cfg.Bybit.Secret)))
	}

	if cfg.SolanaAccount != "" {
		mints := map[string]string{"SOL": ""}
		for sym, mint := range cfg.SolanaTokens {
			mints[sym] = mint
		}
		providers = append(providers,
			balance.NewPhantomProvider(clients.NewSolanaClient(cfg.SolanaRPCURLs, logger), cfg.SolanaAccount, mints))
	}

	if cfg.HyperliquidAddress != "" {
		providers = append(providers,
			balance.NewHyperliquidProvider(clients.NewHyperliquidClient(), cfg.HyperliquidAddress))
	}

	if cfg.EthereumAddress != "" {
		rpcURL := cfg.EthereumRPCURL
		if rpcURL == "" {
			rpcURL = "https://cloudflare-eth.com"
		}
		eth, err := clients.NewEthereumClient(rpcURL)
		if err != nil {
			logger.Warn("ethereum wallet disabled: rpc dial failed", zap.Error(err))
		} else {
			providers = append(providers,
				balance.NewEthWalletProvider(eth, cfg.EthereumAddress, cfg.EthereumTokens))
		}
	}

	if len(providers) == 0 {
		logger.Warn("no balance providers configured; reports will be empty")
	}

	return aggregator.New(logger, resolver, providers...)
}

// newPriceSources builds the resolution chain in the configured order.
// Public ticker endpoints need no credentials.
func newPriceSources(cfg *config.Config, logger *zap.Logger) []pricer.Source {
	var sources []pricer.Source
	for _, name := range cfg.PriceSources {
		switch name {
		case "upbit":
			sources = append(sources, pricer.NewExchangeSource("Upbit", clients.NewUpbitClient("", "")))
		case "bithumb":
			sources = append(sources, pricer.NewExchangeSource("Bithumb", clients.NewBithumbClient("", "")))
		case "coinone":
			sources = append(sources, pricer.NewExchangeSource("Coinone", clients.NewCoinoneClient("", "")))
		case "korbit":
			sources = append(sources, pricer.NewExchangeSource("Korbit", clients.NewKorbitClient("", "")))
		case "coingecko":
			sources = append(sources, pricer.NewCoingeckoSource(clients.NewCoingeckoClient(cfg.CoingeckoIDs)))
		default:
			logger.Warn("unknown price source in config, skipping", zap.String("source", name))
		}
	}
	return sources
}
