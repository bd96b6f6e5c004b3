package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wonfolio.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute, cfg.Interval)
	assert.Equal(t, DefaultPriceSources, cfg.PriceSources)
}

func TestLoadYaml(t *testing.T) {
	path := writeConfig(t, `
interval: 5m
price_sources: [Bithumb, CoinGecko]
solana_account: WaLLetAddr
solana_tokens:
  USDC: EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v
manual_holdings:
  btc: "1.5"
  ETH: "10"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, cfg.Interval)
	assert.Equal(t, []string{"bithumb", "coingecko"}, cfg.PriceSources, "source names are normalized")
	assert.Equal(t, "WaLLetAddr", cfg.SolanaAccount)

	holdings, err := cfg.Holdings()
	require.NoError(t, err)
	require.Len(t, holdings, 2)
	assert.True(t, holdings["BTC"].Equal(decimal.RequireFromString("1.5")), "symbols are uppercased")
	assert.True(t, holdings["ETH"].Equal(decimal.NewFromInt(10)))
}

func TestLoadNeverAliasesDefaultSources(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	cfg.PriceSources[0] = "mutated"
	assert.Equal(t, []string{"upbit", "bithumb", "coinone", "coingecko"}, DefaultPriceSources)
}

func TestLoadEnvCredentialOverlay(t *testing.T) {
	t.Setenv("UPBIT_ACCESS_KEY", "ak")
	t.Setenv("UPBIT_SECRET_KEY", "sk")
	t.Setenv("KORBIT_ACCESS_KEY", "only-half")
	t.Setenv("PHANTOM_SOLANA_ACCOUNT", "EnvWallet")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.True(t, cfg.Upbit.Configured())
	assert.False(t, cfg.Korbit.Configured(), "a half-set key pair is not usable")
	assert.Equal(t, "EnvWallet", cfg.SolanaAccount)
}

func TestHoldingsRejectsGarbage(t *testing.T) {
	cfg := &Config{ManualHoldings: map[string]string{"BTC": "a lot"}}
	_, err := cfg.Holdings()
	require.Error(t, err)
}

func TestLoadRejectsMalformedYaml(t *testing.T) {
	path := writeConfig(t, "interval: [not a duration")
	_, err := Load(path)
	require.Error(t, err)
}
