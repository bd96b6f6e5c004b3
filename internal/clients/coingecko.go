package clients

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const coingeckoBaseURL = "https://api.coingecko.com"

// coingeckoIDs maps exchange tickers to CoinGecko coin ids for the assets the
// tracker is expected to hold. Unknown symbols can be added via config.
var coingeckoIDs = map[string]string{
	"BTC":   "bitcoin",
	"ETH":   "ethereum",
	"SOL":   "solana",
	"XRP":   "ripple",
	"DOGE":  "dogecoin",
	"USDT":  "tether",
	"USDC":  "usd-coin",
	"AI16Z": "ai16z",
	"JUP":   "jupiter-exchange-solana",
}

// CoingeckoClient quotes KRW prices from the public CoinGecko API. It needs
// no key, which makes it the natural last-resort source.
type CoingeckoClient struct {
	baseURL string
	ids     map[string]string
	http    *http.Client
}

// NewCoingeckoClient builds a client; extraIDs extends or overrides the
// built-in symbol-to-id table.
func NewCoingeckoClient(extraIDs map[string]string) *CoingeckoClient {
	ids := make(map[string]string, len(coingeckoIDs)+len(extraIDs))
	for sym, id := range coingeckoIDs {
		ids[sym] = id
	}
	for sym, id := range extraIDs {
		ids[strings.ToUpper(sym)] = id
	}
	return &CoingeckoClient{baseURL: coingeckoBaseURL, ids: ids, http: newHTTPClient()}
}

// SimplePrice returns the KRW price for the given ticker symbol.
func (c *CoingeckoClient) SimplePrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	id, ok := c.ids[strings.ToUpper(symbol)]
	if !ok {
		return decimal.Zero, errors.Errorf("no coingecko id known for %s", symbol)
	}

	query := url.Values{"ids": {id}, "vs_currencies": {"krw"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, joinURL(c.baseURL, "/api/v3/simple/price", query), nil)
	if err != nil {
		return decimal.Zero, err
	}

	var resp map[string]map[string]decimal.Decimal
	if err := doJSON(c.http, req, &resp); err != nil {
		return decimal.Zero, err
	}
	price, ok := resp[id]["krw"]
	if !ok {
		return decimal.Zero, errors.Errorf("coingecko returned no krw price for %s", id)
	}
	return price, nil
}
