package balance

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/hyunwoolee/wonfolio/internal/clients"
	"github.com/hyunwoolee/wonfolio/internal/domain"
)

type coinoneAPI interface {
	Balances(ctx context.Context) ([]clients.CoinoneBalance, error)
	Ticker(ctx context.Context, symbol string) (decimal.Decimal, error)
}

// CoinoneProvider reports holdings on Coinone, priced inline from Coinone's
// public ticker.
type CoinoneProvider struct {
	api    coinoneAPI
	logger *zap.Logger
}

func NewCoinoneProvider(api coinoneAPI, logger *zap.Logger) *CoinoneProvider {
	return &CoinoneProvider{api: api, logger: logger}
}

func (p *CoinoneProvider) Name() string { return "Coinone" }

func (p *CoinoneProvider) FetchBalances(ctx context.Context) ([]domain.BalanceRecord, error) {
	balances, err := p.api.Balances(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch coinone balances")
	}

	var records []domain.BalanceRecord
	for _, bal := range balances {
		qty := bal.Available.Add(bal.Limit)
		if !qty.IsPositive() {
			continue
		}

		rec := domain.NewBalanceRecord(bal.Currency, qty, p.Name())
		if rec.Asset == "KRW" {
			rec.SetPrice(decimal.NewFromInt(1))
		} else if price, err := p.api.Ticker(ctx, rec.Asset); err != nil || !price.IsPositive() {
			p.logger.Debug("no coinone ticker, price left unresolved",
				zap.String("asset", rec.Asset), zap.Error(err))
		} else {
			rec.SetPrice(price)
		}
		records = append(records, rec)
	}
	return records, nil
}
