package balance

import (
	"context"

	"github.com/adshao/go-binance/v2"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/hyunwoolee/wonfolio/internal/domain"
)

// BinanceProvider reports spot holdings on Binance. Binance has no KRW
// markets, so prices are left unresolved for the resolver to fill.
type BinanceProvider struct {
	client *binance.Client
}

func NewBinanceProvider(client *binance.Client) *BinanceProvider {
	return &BinanceProvider{client: client}
}

func (p *BinanceProvider) Name() string { return "Binance" }

func (p *BinanceProvider) FetchBalances(ctx context.Context) ([]domain.BalanceRecord, error) {
	account, err := p.client.NewGetAccountService().Do(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get binance account")
	}

	var records []domain.BalanceRecord
	for _, bal := range account.Balances {
		free, err := decimal.NewFromString(bal.Free)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse free balance for %s", bal.Asset)
		}
		locked, err := decimal.NewFromString(bal.Locked)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse locked balance for %s", bal.Asset)
		}

		qty := free.Add(locked)
		if !qty.IsPositive() {
			continue
		}
		records = append(records, domain.NewBalanceRecord(bal.Asset, qty, p.Name()))
	}
	return records, nil
}
