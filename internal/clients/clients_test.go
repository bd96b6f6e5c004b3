package clients

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestUpbitAccountsDecoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/accounts", r.URL.Path)
		auth := r.Header.Get("Authorization")
		assert.Contains(t, auth, "Bearer ")
		w.Write([]byte(`[
			{"currency":"KRW","balance":"1000000","locked":"0","avg_buy_price":"0","unit_currency":"KRW"},
			{"currency":"btc","balance":"0.5","locked":"0.1","avg_buy_price":"80000000","unit_currency":"KRW"}
		]`))
	}))
	defer srv.Close()

	client := NewUpbitClient("key", "secret")
	client.baseURL = srv.URL

	accounts, err := client.Accounts(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "btc", accounts[1].Currency)
	assert.True(t, accounts[1].Balance.Equal(decimal.NewFromFloat(0.5)))
	assert.True(t, accounts[1].Locked.Equal(decimal.NewFromFloat(0.1)))
}

func TestUpbitTickerDecoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/ticker", r.URL.Path)
		require.Equal(t, "KRW-BTC", r.URL.Query().Get("markets"))
		w.Write([]byte(`[{"market":"KRW-BTC","trade_price":150000000}]`))
	}))
	defer srv.Close()

	client := NewUpbitClient("", "")
	client.baseURL = srv.URL

	price, err := client.Ticker(context.Background(), "BTC")
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.NewFromInt(150_000_000)))
}

func TestBithumbBalancesKeepsOnlyTotals(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/info/balance", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("Api-Sign"))
		assert.NotEmpty(t, r.Header.Get("Api-Nonce"))
		w.Write([]byte(`{"status":"0000","data":{
			"total_btc":"1.5","available_btc":"1.0","in_use_btc":"0.5",
			"total_krw":"500000","available_krw":"500000","in_use_krw":"0"
		}}`))
	}))
	defer srv.Close()

	client := NewBithumbClient("key", "secret")
	client.baseURL = srv.URL

	balances, err := client.Balances(context.Background())
	require.NoError(t, err)
	require.Len(t, balances, 2)
	assert.True(t, balances["BTC"].Equal(decimal.NewFromFloat(1.5)))
	assert.True(t, balances["KRW"].Equal(decimal.NewFromInt(500_000)))
}

func TestBithumbBalancesErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"status":"5300","data":{}}`))
	}))
	defer srv.Close()

	client := NewBithumbClient("key", "secret")
	client.baseURL = srv.URL

	_, err := client.Balances(context.Background())
	assert.Error(t, err)
}

func TestCoinoneTickerDecoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/public/v2/ticker_new/KRW/SOL", r.URL.Path)
		w.Write([]byte(`{"result":"success","tickers":[{"last":"350000"}]}`))
	}))
	defer srv.Close()

	client := NewCoinoneClient("", "")
	client.baseURL = srv.URL

	price, err := client.Ticker(context.Background(), "sol")
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.NewFromInt(350_000)))
}

func TestKorbitBalancesDecoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v2/balance", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-KAPI-KEY"))
		assert.NotEmpty(t, r.Header.Get("X-KAPI-SIGNATURE"))
		w.Write([]byte(`{"success":true,"data":[
			{"currency":"eth","available":"10","tradeInUse":"2"}
		]}`))
	}))
	defer srv.Close()

	client := NewKorbitClient("key", "secret")
	client.baseURL = srv.URL

	balances, err := client.Balances(context.Background())
	require.NoError(t, err)
	require.Len(t, balances, 1)
	assert.True(t, balances[0].Available.Equal(decimal.NewFromInt(10)))
	assert.True(t, balances[0].TradeInUse.Equal(decimal.NewFromInt(2)))
}

func TestCoingeckoSimplePrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v3/simple/price", r.URL.Path)
		require.Equal(t, "bitcoin", r.URL.Query().Get("ids"))
		require.Equal(t, "krw", r.URL.Query().Get("vs_currencies"))
		w.Write([]byte(`{"bitcoin":{"krw":150000000}}`))
	}))
	defer srv.Close()

	client := NewCoingeckoClient(nil)
	client.baseURL = srv.URL

	price, err := client.SimplePrice(context.Background(), "btc")
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.NewFromInt(150_000_000)))
}

func TestCoingeckoUnknownSymbol(t *testing.T) {
	client := NewCoingeckoClient(nil)
	_, err := client.SimplePrice(context.Background(), "NOPE")
	assert.Error(t, err)
}

func TestSolanaBalance(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":{"context":{"slot":1},"value":2500000000}}`))
	}))
	defer srv.Close()

	client := NewSolanaClient([]string{srv.URL}, zap.NewNop())

	balance, err := client.Balance(context.Background(), "someaccount")
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromFloat(2.5)), "lamports scale to SOL")
}

func TestSolanaFailsOverToNextEndpoint(t *testing.T) {
	var downCalls int
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		downCalls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer down.Close()

	up := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":{"value":1000000000}}`))
	}))
	defer up.Close()

	client := NewSolanaClient([]string{down.URL, up.URL}, zap.NewNop())

	balance, err := client.Balance(context.Background(), "someaccount")
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(1)))
	assert.Equal(t, 1, downCalls, "server errors are not retried, they fail over")

	// the endpoint that answered is preferred on the next request
	_, err = client.Balance(context.Background(), "someaccount")
	require.NoError(t, err)
	assert.Equal(t, 1, downCalls)
}

func TestSolanaAllEndpointsFailing(t *testing.T) {
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer down.Close()

	client := NewSolanaClient([]string{down.URL, down.URL}, zap.NewNop())

	_, err := client.Balance(context.Background(), "someaccount")
	assert.Error(t, err)
}

func TestSolanaTokenBalanceNoAccountMeansZero(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":{"value":[]}}`))
	}))
	defer srv.Close()

	client := NewSolanaClient([]string{srv.URL}, zap.NewNop())

	balance, err := client.TokenBalance(context.Background(), "someaccount", "somemint")
	require.NoError(t, err)
	assert.True(t, balance.IsZero())
}
