package clients

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const upbitBaseURL = "https://api.upbit.com"

// UpbitClient talks to the Upbit REST API. Private endpoints are signed with
// an HS256 JWT built from the access key and a per-request nonce.
type UpbitClient struct {
	baseURL   string
	accessKey string
	secretKey string
	http      *http.Client
}

func NewUpbitClient(accessKey, secretKey string) *UpbitClient {
	return &UpbitClient{
		baseURL:   upbitBaseURL,
		accessKey: accessKey,
		secretKey: secretKey,
		http:      newHTTPClient(),
	}
}

// UpbitAccount is one row of the /v1/accounts response.
type UpbitAccount struct {
	Currency     string          `json:"currency"`
	Balance      decimal.Decimal `json:"balance"`
	Locked       decimal.Decimal `json:"locked"`
	AvgBuyPrice  decimal.Decimal `json:"avg_buy_price"`
	UnitCurrency string          `json:"unit_currency"`
}

// Accounts returns all holdings of the authenticated account.
func (c *UpbitClient) Accounts(ctx context.Context) ([]UpbitAccount, error) {
	token, err := c.signJWT()
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign upbit request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, joinURL(c.baseURL, "/v1/accounts", nil), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	var accounts []UpbitAccount
	if err := doJSON(c.http, req, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// Ticker returns the last trade price of the KRW market for the symbol.
func (c *UpbitClient) Ticker(ctx context.Context, symbol string) (decimal.Decimal, error) {
	query := url.Values{"markets": {"KRW-" + symbol}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, joinURL(c.baseURL, "/v1/ticker", query), nil)
	if err != nil {
		return decimal.Zero, err
	}

	var tickers []struct {
		Market     string          `json:"market"`
		TradePrice decimal.Decimal `json:"trade_price"`
	}
	if err := doJSON(c.http, req, &tickers); err != nil {
		return decimal.Zero, err
	}
	if len(tickers) == 0 {
		return decimal.Zero, errors.Errorf("upbit returned no ticker for KRW-%s", symbol)
	}
	return tickers[0].TradePrice, nil
}

// signJWT builds the HS256 token Upbit expects for query-less requests:
// base64url(header).base64url({access_key, nonce}) signed with the secret.
func (c *UpbitClient) signJWT() (string, error) {
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))

	payload, err := json.Marshal(map[string]string{
		"access_key": c.accessKey,
		"nonce":      uuid.NewString(),
	})
	if err != nil {
		return "", err
	}
	claims := base64.RawURLEncoding.EncodeToString(payload)

	mac := hmac.New(sha256.New, []byte(c.secretKey))
	mac.Write([]byte(header + "." + claims))
	sig := base64.RawURLEncoding.EncodeToString(mac.Sum(nil))

	return header + "." + claims + "." + sig, nil
}
