// Package aggregator consolidates provider balances and resolved prices into
// one valued portfolio report.
package aggregator

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/hyunwoolee/wonfolio/internal/domain"
	"github.com/hyunwoolee/wonfolio/internal/services/balance"
	"github.com/hyunwoolee/wonfolio/internal/services/pricer"
)

type priceResolver interface {
	Resolve(ctx context.Context, symbol string) (domain.PriceQuote, error)
}

// Aggregator builds consolidated reports. Providers are invoked in the order
// they were registered; a failing provider degrades the report (logged, empty
// contribution) and never aborts the run.
type Aggregator struct {
	providers []balance.Provider
	resolver  priceResolver
	logger    *zap.Logger
}

// New creates an Aggregator. The resolver may be nil, in which case records
// without an inline price stay unresolved.
func New(logger *zap.Logger, resolver priceResolver, providers ...balance.Provider) *Aggregator {
	return &Aggregator{providers: providers, resolver: resolver, logger: logger}
}

// BuildReport fetches every provider, fills missing prices through the
// resolver and consolidates the result. It always returns a report; when
// every source fails the report is empty, which is a meaningful outcome
// ("nothing could be retrieved this run"), not an error.
func (a *Aggregator) BuildReport(ctx context.Context) domain.Report {
	var records []domain.BalanceRecord

	for _, provider := range a.providers {
		recs, err := provider.FetchBalances(ctx)
		if err != nil {
			a.logger.Warn("balance provider failed, skipping",
				zap.String("source", provider.Name()),
				zap.Error(err))
			continue
		}
		records = append(records, recs...)
	}

	a.resolvePrices(ctx, records)
	return domain.NewReport(records)
}

func (a *Aggregator) resolvePrices(ctx context.Context, records []domain.BalanceRecord) {
	if a.resolver == nil {
		return
	}

	for i := range records {
		if records[i].Priced() {
			continue
		}

		quote, err := a.resolver.Resolve(ctx, records[i].Asset)
		if err != nil {
			// kept in the report with an unresolved value so the operator
			// sees the holding exists even without a KRW quote
			if errors.Is(err, pricer.ErrUnavailable) {
				a.logger.Warn("no price source could quote asset",
					zap.String("asset", records[i].Asset),
					zap.String("source", records[i].Source))
			} else {
				a.logger.Warn("price resolution failed",
					zap.String("asset", records[i].Asset),
					zap.Error(err))
			}
			continue
		}
		records[i].SetPrice(quote.Price)
	}
}
