package pricer

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hyunwoolee/wonfolio/internal/domain"
)

// Resolver queries its sources in order and returns the first valid positive
// quote. Intermediate failures are logged at debug level and swallowed; only
// the all-sources-failed case surfaces, as ErrUnavailable. Quotes are never
// cached: each report run re-resolves to reflect the current market.
type Resolver struct {
	sources []Source
	logger  *zap.Logger
}

func NewResolver(logger *zap.Logger, sources ...Source) *Resolver {
	return &Resolver{sources: sources, logger: logger}
}

// Resolve returns the first source's valid KRW quote for the symbol.
func (r *Resolver) Resolve(ctx context.Context, symbol string) (domain.PriceQuote, error) {
	symbol = strings.ToUpper(symbol)

	for _, src := range r.sources {
		price, err := src.GetPrice(ctx, symbol)
		if err != nil {
			r.logger.Debug("price source failed, trying next",
				zap.String("source", src.Name()),
				zap.String("symbol", symbol),
				zap.Error(err))
			continue
		}
		if !price.IsPositive() {
			r.logger.Debug("price source returned non-positive price, trying next",
				zap.String("source", src.Name()),
				zap.String("symbol", symbol),
				zap.String("price", price.String()))
			continue
		}

		return domain.PriceQuote{
			Asset:       symbol,
			Price:       price,
			Source:      src.Name(),
			RetrievedAt: time.Now(),
		}, nil
	}

	return domain.PriceQuote{}, ErrUnavailable
}
