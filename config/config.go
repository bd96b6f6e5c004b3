package config

import (
	"flag"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Credentials hold one venue's API key pair, sourced from the environment
// only; the yaml file never carries secrets.
type Credentials struct {
	Key    string
	Secret string
}

// Configured reports whether both halves of the key pair are present.
func (c Credentials) Configured() bool {
	return c.Key != "" && c.Secret != ""
}

// Config is the process-wide configuration, built once at entry and passed
// down explicitly.
type Config struct {
	Interval      time.Duration     `yaml:"interval"`
	DashboardAddr string            `yaml:"dashboard_addr"`
	PriceSources  []string          `yaml:"price_sources"`
	CoingeckoIDs  map[string]string `yaml:"coingecko_ids"`

	SolanaAccount string            `yaml:"solana_account"`
	SolanaRPCURLs []string          `yaml:"solana_rpc_urls"`
	SolanaTokens  map[string]string `yaml:"solana_tokens"`

	EthereumAddress string            `yaml:"ethereum_address"`
	EthereumRPCURL  string            `yaml:"ethereum_rpc_url"`
	EthereumTokens  map[string]string `yaml:"ethereum_tokens"`

	HyperliquidAddress string `yaml:"hyperliquid_address"`

	ManualHoldings map[string]string `yaml:"manual_holdings"`

	// credentials, environment only
	Upbit   Credentials `yaml:"-"`
	Bithumb Credentials `yaml:"-"`
	Coinone Credentials `yaml:"-"`
	Korbit  Credentials `yaml:"-"`
	Binance Credentials `yaml:"-"`
	Bybit   Credentials `yaml:"-"`
}

// Flags are the command-line switches selecting the run mode.
type Flags struct {
	ConfigPath string
	Setup      bool
	Manual     bool
	Once       bool
	Dashboard  bool
}

// DefaultPriceSources is the resolution order when the config names none:
// domestic exchanges first, the fee-less aggregator last.
var DefaultPriceSources = []string{"upbit", "bithumb", "coinone", "coingecko"}

// defaultPriceSources returns a fresh copy so normalization never writes
// through to the package-level slice.
func defaultPriceSources() []string {
	sources := make([]string, len(DefaultPriceSources))
	copy(sources, DefaultPriceSources)
	return sources
}

// Get parses flags, reads the optional yaml file and overlays environment
// credentials.
func Get() (*Config, Flags, error) {
	var flags Flags
	flag.StringVar(&flags.ConfigPath, "config", "wonfolio.yaml", "path to yaml config")
	flag.BoolVar(&flags.Setup, "setup", false, "run the interactive configuration wizard")
	flag.BoolVar(&flags.Manual, "manual", false, "value the configured manual holdings instead of live balances")
	flag.BoolVar(&flags.Once, "once", false, "produce one report and exit instead of polling")
	flag.BoolVar(&flags.Dashboard, "dashboard", false, "serve the web dashboard")
	flag.Parse()

	cfg, err := Load(flags.ConfigPath)
	if err != nil {
		return nil, Flags{}, err
	}
	return cfg, flags, nil
}

// Load reads the yaml file at path (a missing file yields defaults) and
// overlays environment credentials.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Interval:      10 * time.Minute,
		DashboardAddr: "localhost:8877",
		PriceSources:  defaultPriceSources(),
	}

	raw, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// run on defaults plus environment
	case err != nil:
		return nil, errors.Wrapf(err, "failed to read config %s", path)
	default:
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, errors.Wrapf(err, "failed to parse config %s", path)
		}
	}

	if cfg.Interval <= 0 {
		cfg.Interval = 10 * time.Minute
	}
	if len(cfg.PriceSources) == 0 {
		cfg.PriceSources = defaultPriceSources()
	}
	for i, src := range cfg.PriceSources {
		cfg.PriceSources[i] = strings.ToLower(src)
	}

	cfg.Upbit = credentialsFromEnv("UPBIT_ACCESS_KEY", "UPBIT_SECRET_KEY")
	cfg.Bithumb = credentialsFromEnv("BITHUMB_ACCESS_KEY", "BITHUMB_SECRET_KEY")
	cfg.Coinone = credentialsFromEnv("COINONE_ACCESS_KEY", "COINONE_SECRET_KEY")
	cfg.Korbit = credentialsFromEnv("KORBIT_ACCESS_KEY", "KORBIT_SECRET_KEY")
	cfg.Binance = credentialsFromEnv("BINANCE_API_KEY", "BINANCE_API_SECRET")
	cfg.Bybit = credentialsFromEnv("BYBIT_API_KEY", "BYBIT_API_SECRET")

	if account := os.Getenv("PHANTOM_SOLANA_ACCOUNT"); account != "" {
		cfg.SolanaAccount = account
	}
	if address := os.Getenv("ETH_WALLET_ADDRESS"); address != "" {
		cfg.EthereumAddress = address
	}
	if address := os.Getenv("HYPERLIQUID_WALLET_ADDRESS"); address != "" {
		cfg.HyperliquidAddress = address
	}

	return cfg, nil
}

// Holdings parses the manual holdings map into decimal quantities.
func (c *Config) Holdings() (map[string]decimal.Decimal, error) {
	holdings := make(map[string]decimal.Decimal, len(c.ManualHoldings))
	for sym, qty := range c.ManualHoldings {
		d, err := decimal.NewFromString(qty)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid quantity %q for manual holding %s", qty, sym)
		}
		holdings[strings.ToUpper(sym)] = d
	}
	return holdings, nil
}

// Save writes the yaml-serializable part of the config to path.
func (c *Config) Save(path string) error {
	raw, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}
	return os.WriteFile(path, raw, 0o600)
}

func credentialsFromEnv(keyVar, secretVar string) Credentials {
	return Credentials{Key: os.Getenv(keyVar), Secret: os.Getenv(secretVar)}
}
