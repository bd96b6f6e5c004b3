package balance

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/hyunwoolee/wonfolio/internal/clients"
	"github.com/hyunwoolee/wonfolio/internal/domain"
)

type korbitAPI interface {
	Balances(ctx context.Context) ([]clients.KorbitBalance, error)
	Ticker(ctx context.Context, symbol string) (decimal.Decimal, error)
}

// KorbitProvider reports holdings on Korbit, priced inline from Korbit's
// public ticker.
type KorbitProvider struct {
	api    korbitAPI
	logger *zap.Logger
}

func NewKorbitProvider(api korbitAPI, logger *zap.Logger) *KorbitProvider {
	return &KorbitProvider{api: api, logger: logger}
}

func (p *KorbitProvider) Name() string { return "Korbit" }

func (p *KorbitProvider) FetchBalances(ctx context.Context) ([]domain.BalanceRecord, error) {
	balances, err := p.api.Balances(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch korbit balances")
	}

	var records []domain.BalanceRecord
	for _, bal := range balances {
		qty := bal.Available.Add(bal.TradeInUse)
		if !qty.IsPositive() {
			continue
		}

		rec := domain.NewBalanceRecord(bal.Currency, qty, p.Name())
		if rec.Asset == "KRW" {
			rec.SetPrice(decimal.NewFromInt(1))
		} else if price, err := p.api.Ticker(ctx, rec.Asset); err != nil || !price.IsPositive() {
			p.logger.Debug("no korbit ticker, price left unresolved",
				zap.String("asset", rec.Asset), zap.Error(err))
		} else {
			rec.SetPrice(price)
		}
		records = append(records, rec)
	}
	return records, nil
}
