package clients

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const bithumbBaseURL = "https://api.bithumb.com"

// BithumbClient talks to the Bithumb REST API. Private endpoints are signed
// with HMAC-SHA512 over endpoint, form body and nonce, joined by NUL bytes.
type BithumbClient struct {
	baseURL   string
	apiKey    string
	apiSecret string
	http      *http.Client
}

func NewBithumbClient(apiKey, apiSecret string) *BithumbClient {
	return &BithumbClient{
		baseURL:   bithumbBaseURL,
		apiKey:    apiKey,
		apiSecret: apiSecret,
		http:      newHTTPClient(),
	}
}

type bithumbBalanceResponse struct {
	Status string                     `json:"status"`
	Data   map[string]decimal.Decimal `json:"data"`
}

// Balances returns total holdings per currency. Bithumb reports every
// currency in one flat map keyed total_<sym>/available_<sym>/in_use_<sym>;
// only the total_ entries are returned here, keyed by uppercase symbol.
func (c *BithumbClient) Balances(ctx context.Context) (map[string]decimal.Decimal, error) {
	const endpoint = "/info/balance"

	form := url.Values{"endpoint": {endpoint}, "currency": {"ALL"}}
	nonce := fmt.Sprintf("%d", time.Now().UnixMilli())

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		joinURL(c.baseURL, endpoint, nil), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Api-Key", c.apiKey)
	req.Header.Set("Api-Sign", c.sign(endpoint, form.Encode(), nonce))
	req.Header.Set("Api-Nonce", nonce)

	var resp bithumbBalanceResponse
	if err := doJSON(c.http, req, &resp); err != nil {
		return nil, err
	}
	if resp.Status != "0000" {
		return nil, errors.Errorf("bithumb balance request failed with status %s", resp.Status)
	}

	balances := make(map[string]decimal.Decimal)
	for key, amount := range resp.Data {
		sym, ok := strings.CutPrefix(key, "total_")
		if !ok {
			continue
		}
		balances[strings.ToUpper(sym)] = amount
	}
	return balances, nil
}

type bithumbTickerResponse struct {
	Status string `json:"status"`
	Data   struct {
		ClosingPrice decimal.Decimal `json:"closing_price"`
	} `json:"data"`
}

// Ticker returns the closing price of the symbol's KRW market.
func (c *BithumbClient) Ticker(ctx context.Context, symbol string) (decimal.Decimal, error) {
	path := fmt.Sprintf("/public/ticker/%s_KRW", strings.ToUpper(symbol))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, joinURL(c.baseURL, path, nil), nil)
	if err != nil {
		return decimal.Zero, err
	}

	var resp bithumbTickerResponse
	if err := doJSON(c.http, req, &resp); err != nil {
		return decimal.Zero, err
	}
	if resp.Status != "0000" {
		return decimal.Zero, errors.Errorf("bithumb ticker for %s failed with status %s", symbol, resp.Status)
	}
	return resp.Data.ClosingPrice, nil
}

func (c *BithumbClient) sign(endpoint, encodedForm, nonce string) string {
	data := endpoint + "\x00" + encodedForm + "\x00" + nonce
	mac := hmac.New(sha512.New, []byte(c.apiSecret))
	mac.Write([]byte(data))
	return base64.StdEncoding.EncodeToString([]byte(hex.EncodeToString(mac.Sum(nil))))
}
