package clients

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const korbitBaseURL = "https://api.korbit.co.kr"

// KorbitClient talks to the Korbit REST API. Private endpoints carry the API
// key, a millisecond timestamp and an HMAC-SHA256 signature over both.
type KorbitClient struct {
	baseURL   string
	apiKey    string
	apiSecret string
	http      *http.Client
}

func NewKorbitClient(apiKey, apiSecret string) *KorbitClient {
	return &KorbitClient{
		baseURL:   korbitBaseURL,
		apiKey:    apiKey,
		apiSecret: apiSecret,
		http:      newHTTPClient(),
	}
}

// KorbitBalance is one row of the balance response.
type KorbitBalance struct {
	Currency   string          `json:"currency"`
	Available  decimal.Decimal `json:"available"`
	TradeInUse decimal.Decimal `json:"tradeInUse"`
}

type korbitBalanceResponse struct {
	Success bool            `json:"success"`
	Data    []KorbitBalance `json:"data"`
}

// Balances returns all holdings of the authenticated account.
func (c *KorbitClient) Balances(ctx context.Context) ([]KorbitBalance, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, joinURL(c.baseURL, "/v2/balance", nil), nil)
	if err != nil {
		return nil, err
	}
	ts := fmt.Sprintf("%d", time.Now().UnixMilli())
	req.Header.Set("X-KAPI-KEY", c.apiKey)
	req.Header.Set("X-KAPI-TIMESTAMP", ts)
	req.Header.Set("X-KAPI-SIGNATURE", c.sign(ts+req.URL.Path))

	var resp korbitBalanceResponse
	if err := doJSON(c.http, req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, errors.New("korbit balance request was not successful")
	}
	return resp.Data, nil
}

type korbitTickerResponse struct {
	Last decimal.Decimal `json:"last"`
}

// Ticker returns the last trade price of the symbol's KRW pair.
func (c *KorbitClient) Ticker(ctx context.Context, symbol string) (decimal.Decimal, error) {
	query := url.Values{"currency_pair": {strings.ToLower(symbol) + "_krw"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, joinURL(c.baseURL, "/v1/ticker/detailed", query), nil)
	if err != nil {
		return decimal.Zero, err
	}

	var resp korbitTickerResponse
	if err := doJSON(c.http, req, &resp); err != nil {
		return decimal.Zero, err
	}
	if resp.Last.IsZero() {
		return decimal.Zero, errors.Errorf("korbit returned no last price for %s_krw", strings.ToLower(symbol))
	}
	return resp.Last, nil
}

func (c *KorbitClient) sign(data string) string {
	mac := hmac.New(sha256.New, []byte(c.apiSecret))
	mac.Write([]byte(data))
	return hex.EncodeToString(mac.Sum(nil))
}
