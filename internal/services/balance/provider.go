// Package balance defines the Provider abstraction over venues that can
// report holdings: Korean exchanges, global exchanges and chain wallets.
package balance

import (
	"context"

	"github.com/hyunwoolee/wonfolio/internal/domain"
)

// Provider reports the non-zero holdings of one venue. Implementations must
// filter out zero-quantity positions and uppercase symbols. A provider either
// returns complete records or an error; it never returns partial data
// silently.
type Provider interface {
	Name() string
	FetchBalances(ctx context.Context) ([]domain.BalanceRecord, error)
}
