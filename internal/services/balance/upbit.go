package balance

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/hyunwoolee/wonfolio/internal/clients"
	"github.com/hyunwoolee/wonfolio/internal/domain"
)

type upbitAPI interface {
	Accounts(ctx context.Context) ([]clients.UpbitAccount, error)
	Ticker(ctx context.Context, symbol string) (decimal.Decimal, error)
}

// UpbitProvider reports holdings on Upbit, priced inline from Upbit's own
// KRW markets.
type UpbitProvider struct {
	api    upbitAPI
	logger *zap.Logger
}

func NewUpbitProvider(api upbitAPI, logger *zap.Logger) *UpbitProvider {
	return &UpbitProvider{api: api, logger: logger}
}

func (p *UpbitProvider) Name() string { return "Upbit" }

func (p *UpbitProvider) FetchBalances(ctx context.Context) ([]domain.BalanceRecord, error) {
	accounts, err := p.api.Accounts(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch upbit accounts")
	}

	var records []domain.BalanceRecord
	for _, acc := range accounts {
		qty := acc.Balance.Add(acc.Locked)
		if !qty.IsPositive() {
			continue
		}

		rec := domain.NewBalanceRecord(acc.Currency, qty, p.Name())
		switch {
		case rec.Asset == "KRW":
			rec.SetPrice(decimal.NewFromInt(1))
		default:
			price, err := p.api.Ticker(ctx, rec.Asset)
			if err != nil || !price.IsPositive() {
				p.logger.Debug("no upbit ticker, price left unresolved",
					zap.String("asset", rec.Asset), zap.Error(err))
			} else {
				rec.SetPrice(price)
			}
		}
		records = append(records, rec)
	}
	return records, nil
}
