package pricer

import (
	"context"

	"github.com/shopspring/decimal"
)

// tickerAPI is the shape shared by the exchange clients' public ticker calls.
type tickerAPI interface {
	Ticker(ctx context.Context, symbol string) (decimal.Decimal, error)
}

// ExchangeSource adapts an exchange ticker endpoint to the Source interface.
type ExchangeSource struct {
	name string
	api  tickerAPI
}

func NewExchangeSource(name string, api tickerAPI) *ExchangeSource {
	return &ExchangeSource{name: name, api: api}
}

func (s *ExchangeSource) Name() string { return s.name }

func (s *ExchangeSource) GetPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	return s.api.Ticker(ctx, symbol)
}

type simplePriceAPI interface {
	SimplePrice(ctx context.Context, symbol string) (decimal.Decimal, error)
}

// CoingeckoSource is the fee-less aggregator fallback, queried last so that
// domestic exchanges answer for common assets first.
type CoingeckoSource struct {
	api simplePriceAPI
}

func NewCoingeckoSource(api simplePriceAPI) *CoingeckoSource {
	return &CoingeckoSource{api: api}
}

func (s *CoingeckoSource) Name() string { return "CoinGecko" }

func (s *CoingeckoSource) GetPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	return s.api.SimplePrice(ctx, symbol)
}
