package balance

import (
	"context"
	"sort"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/hyunwoolee/wonfolio/internal/domain"
)

type bithumbAPI interface {
	Balances(ctx context.Context) (map[string]decimal.Decimal, error)
	Ticker(ctx context.Context, symbol string) (decimal.Decimal, error)
}

// BithumbProvider reports holdings on Bithumb, priced inline from Bithumb's
// public ticker.
type BithumbProvider struct {
	api    bithumbAPI
	logger *zap.Logger
}

func NewBithumbProvider(api bithumbAPI, logger *zap.Logger) *BithumbProvider {
	return &BithumbProvider{api: api, logger: logger}
}

func (p *BithumbProvider) Name() string { return "Bithumb" }

func (p *BithumbProvider) FetchBalances(ctx context.Context) ([]domain.BalanceRecord, error) {
	balances, err := p.api.Balances(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch bithumb balances")
	}

	// map iteration order is random; keep record order deterministic
	symbols := make([]string, 0, len(balances))
	for sym := range balances {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)

	var records []domain.BalanceRecord
	for _, sym := range symbols {
		qty := balances[sym]
		if !qty.IsPositive() {
			continue
		}

		rec := domain.NewBalanceRecord(sym, qty, p.Name())
		if rec.Asset == "KRW" {
			rec.SetPrice(decimal.NewFromInt(1))
		} else if price, err := p.api.Ticker(ctx, rec.Asset); err != nil || !price.IsPositive() {
			p.logger.Debug("no bithumb ticker, price left unresolved",
				zap.String("asset", rec.Asset), zap.Error(err))
		} else {
			rec.SetPrice(price)
		}
		records = append(records, rec)
	}
	return records, nil
}
