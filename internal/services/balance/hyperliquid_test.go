package balance

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyunwoolee/wonfolio/internal/clients"
)

type fakeHyperliquidAPI struct {
	balances []clients.HyperliquidBalance
	err      error
	gotAddr  string
}

func (f *fakeHyperliquidAPI) SpotBalances(_ context.Context, accountAddr string) ([]clients.HyperliquidBalance, error) {
	f.gotAddr = accountAddr
	return f.balances, f.err
}

func TestHyperliquidProviderLeavesPricesUnresolved(t *testing.T) {
	api := &fakeHyperliquidAPI{balances: []clients.HyperliquidBalance{
		{Coin: "HYPE", Total: decimal.NewFromInt(25)},
		{Coin: "usdc", Total: decimal.NewFromFloat(100.5)},
	}}
	provider := NewHyperliquidProvider(api, "0xabc")

	records, err := provider.FetchBalances(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "0xabc", api.gotAddr)
	assert.Equal(t, "HYPE", records[0].Asset)
	assert.Equal(t, "USDC", records[1].Asset, "symbols are uppercased")
	for _, rec := range records {
		assert.False(t, rec.Priced(), "usd venue cannot price in krw inline")
		assert.Equal(t, "Hyperliquid", rec.Source)
	}
}

func TestHyperliquidProviderFiltersZeroBalances(t *testing.T) {
	api := &fakeHyperliquidAPI{balances: []clients.HyperliquidBalance{
		{Coin: "HYPE", Total: decimal.Zero},
		{Coin: "UBTC", Total: decimal.NewFromFloat(0.2)},
	}}
	provider := NewHyperliquidProvider(api, "0xabc")

	records, err := provider.FetchBalances(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "UBTC", records[0].Asset)
}

func TestHyperliquidProviderPropagatesFetchError(t *testing.T) {
	api := &fakeHyperliquidAPI{err: errors.New("info api down")}
	provider := NewHyperliquidProvider(api, "0xabc")

	_, err := provider.FetchBalances(context.Background())
	assert.Error(t, err)
}
