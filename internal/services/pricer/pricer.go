// Package pricer resolves KRW prices by querying sources in priority order.
package pricer

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// ErrUnavailable is returned by a Source when it cannot quote the symbol
// (not listed, bad response), and by the Resolver when every source failed.
// It is an explicit "could not determine" marker, never a zero price.
var ErrUnavailable = errors.New("price unavailable")

// Source quotes a current KRW price for a ticker symbol.
type Source interface {
	Name() string
	GetPrice(ctx context.Context, symbol string) (decimal.Decimal, error)
}
