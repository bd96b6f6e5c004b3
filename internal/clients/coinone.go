package clients

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const coinoneBaseURL = "https://api.coinone.co.kr"

// CoinoneClient talks to the Coinone v2.1 REST API. Private endpoints carry a
// base64 payload header and its HMAC-SHA512 hex signature.
type CoinoneClient struct {
	baseURL     string
	accessToken string
	secretKey   string
	http        *http.Client
}

func NewCoinoneClient(accessToken, secretKey string) *CoinoneClient {
	return &CoinoneClient{
		baseURL:     coinoneBaseURL,
		accessToken: accessToken,
		secretKey:   secretKey,
		http:        newHTTPClient(),
	}
}

// CoinoneBalance is one row of the account balance response.
type CoinoneBalance struct {
	Currency     string          `json:"currency"`
	Available    decimal.Decimal `json:"available"`
	Limit        decimal.Decimal `json:"limit"`
	AveragePrice decimal.Decimal `json:"average_price"`
}

type coinoneBalanceResponse struct {
	Result    string           `json:"result"`
	ErrorCode string           `json:"error_code"`
	Balances  []CoinoneBalance `json:"balances"`
}

// Balances returns all holdings of the authenticated account.
func (c *CoinoneClient) Balances(ctx context.Context) ([]CoinoneBalance, error) {
	payload, err := json.Marshal(map[string]string{
		"access_token": c.accessToken,
		"nonce":        uuid.NewString(),
	})
	if err != nil {
		return nil, err
	}
	encoded := base64.StdEncoding.EncodeToString(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		joinURL(c.baseURL, "/v2.1/account/balance/all", nil), strings.NewReader(encoded))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-COINONE-PAYLOAD", encoded)
	req.Header.Set("X-COINONE-SIGNATURE", c.sign(encoded))

	var resp coinoneBalanceResponse
	if err := doJSON(c.http, req, &resp); err != nil {
		return nil, err
	}
	if resp.Result != "success" {
		return nil, errors.Errorf("coinone balance request failed: result=%s error_code=%s", resp.Result, resp.ErrorCode)
	}
	return resp.Balances, nil
}

type coinoneTickerResponse struct {
	Result  string `json:"result"`
	Tickers []struct {
		Last decimal.Decimal `json:"last"`
	} `json:"tickers"`
}

// Ticker returns the last trade price of the symbol's KRW market.
func (c *CoinoneClient) Ticker(ctx context.Context, symbol string) (decimal.Decimal, error) {
	path := fmt.Sprintf("/public/v2/ticker_new/KRW/%s", strings.ToUpper(symbol))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, joinURL(c.baseURL, path, nil), nil)
	if err != nil {
		return decimal.Zero, err
	}

	var resp coinoneTickerResponse
	if err := doJSON(c.http, req, &resp); err != nil {
		return decimal.Zero, err
	}
	if resp.Result != "success" || len(resp.Tickers) == 0 {
		return decimal.Zero, errors.Errorf("coinone returned no ticker for KRW/%s", symbol)
	}
	return resp.Tickers[0].Last, nil
}

func (c *CoinoneClient) sign(encodedPayload string) string {
	mac := hmac.New(sha512.New, []byte(c.secretKey))
	mac.Write([]byte(encodedPayload))
	return hex.EncodeToString(mac.Sum(nil))
}
