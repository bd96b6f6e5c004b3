package balance

import (
	"context"

	"github.com/hirokisan/bybit/v2"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/hyunwoolee/wonfolio/internal/domain"
)

// BybitProvider reports unified-account holdings on Bybit. Bybit quotes no
// KRW markets, so prices are left unresolved for the resolver to fill.
type BybitProvider struct {
	client *bybit.Client
}

func NewBybitProvider(client *bybit.Client) *BybitProvider {
	return &BybitProvider{client: client}
}

func (p *BybitProvider) Name() string { return "Bybit" }

func (p *BybitProvider) FetchBalances(ctx context.Context) ([]domain.BalanceRecord, error) {
	res, err := p.client.V5().Account().GetWalletBalance(bybit.AccountTypeV5("UNIFIED"), nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get bybit wallet balance")
	}
	if len(res.Result.List) == 0 {
		return nil, nil
	}

	var records []domain.BalanceRecord
	for _, coin := range res.Result.List[0].Coin {
		qty, err := decimal.NewFromString(coin.WalletBalance)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse bybit balance for %s", coin.Coin)
		}
		if !qty.IsPositive() {
			continue
		}
		records = append(records, domain.NewBalanceRecord(string(coin.Coin), qty, p.Name()))
	}
	return records, nil
}
