package clients

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	hyperliquid "github.com/sonirico/go-hyperliquid"
)

const hyperliquidAPIURL = "https://api.hyperliquid.xyz"

// HyperliquidClient reads spot balances through the public Info API. User
// state lookups are keyed by account address only; no signing key is needed
// for read access.
type HyperliquidClient struct {
	info *hyperliquid.Info
}

func NewHyperliquidClient() *HyperliquidClient {
	return &HyperliquidClient{
		info: hyperliquid.NewInfo(context.Background(), hyperliquidAPIURL, true, nil, nil),
	}
}

// HyperliquidBalance is one spot balance row.
type HyperliquidBalance struct {
	Coin  string
	Total decimal.Decimal
}

// SpotBalances returns the total spot balance per coin for the account.
func (c *HyperliquidClient) SpotBalances(ctx context.Context, accountAddr string) ([]HyperliquidBalance, error) {
	st, err := c.info.SpotUserState(ctx, accountAddr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get hyperliquid spot user state")
	}

	balances := make([]HyperliquidBalance, 0, len(st.Balances))
	for _, b := range st.Balances {
		total, err := decimal.NewFromString(b.Total)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse hyperliquid balance for %s", b.Coin)
		}
		balances = append(balances, HyperliquidBalance{Coin: b.Coin, Total: total})
	}
	return balances, nil
}
