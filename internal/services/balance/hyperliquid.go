package balance

import (
	"context"

	"github.com/pkg/errors"

	"github.com/hyunwoolee/wonfolio/internal/clients"
	"github.com/hyunwoolee/wonfolio/internal/domain"
)

type hyperliquidAPI interface {
	SpotBalances(ctx context.Context, accountAddr string) ([]clients.HyperliquidBalance, error)
}

// HyperliquidProvider reports spot holdings on Hyperliquid for an account
// address. The venue quotes in USD, so prices are left unresolved for the
// resolver chain.
type HyperliquidProvider struct {
	api     hyperliquidAPI
	account string
}

func NewHyperliquidProvider(api hyperliquidAPI, account string) *HyperliquidProvider {
	return &HyperliquidProvider{api: api, account: account}
}

func (p *HyperliquidProvider) Name() string { return "Hyperliquid" }

func (p *HyperliquidProvider) FetchBalances(ctx context.Context) ([]domain.BalanceRecord, error) {
	balances, err := p.api.SpotBalances(ctx, p.account)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch hyperliquid balances")
	}

	var records []domain.BalanceRecord
	for _, bal := range balances {
		if !bal.Total.IsPositive() {
			continue
		}
		records = append(records, domain.NewBalanceRecord(bal.Coin, bal.Total, p.Name()))
	}
	return records, nil
}
