package balance

import (
	"context"
	"sort"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/hyunwoolee/wonfolio/internal/domain"
)

type solanaAPI interface {
	Balance(ctx context.Context, account string) (decimal.Decimal, error)
	TokenBalance(ctx context.Context, account, mint string) (decimal.Decimal, error)
}

// PhantomProvider reports a Solana wallet's native SOL balance plus the SPL
// tokens listed in its mint table. Prices are left unresolved; a chain knows
// quantities, not KRW quotes.
type PhantomProvider struct {
	api     solanaAPI
	account string
	// mints maps ticker symbol to SPL mint address; an empty address means
	// the native SOL balance.
	mints map[string]string
}

func NewPhantomProvider(api solanaAPI, account string, mints map[string]string) *PhantomProvider {
	return &PhantomProvider{api: api, account: account, mints: mints}
}

func (p *PhantomProvider) Name() string { return "Phantom" }

func (p *PhantomProvider) FetchBalances(ctx context.Context) ([]domain.BalanceRecord, error) {
	symbols := make([]string, 0, len(p.mints))
	for sym := range p.mints {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)

	var records []domain.BalanceRecord
	for _, sym := range symbols {
		mint := p.mints[sym]

		var (
			qty decimal.Decimal
			err error
		)
		if mint == "" {
			qty, err = p.api.Balance(ctx, p.account)
		} else {
			qty, err = p.api.TokenBalance(ctx, p.account, mint)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to fetch solana balance for %s", sym)
		}
		if !qty.IsPositive() {
			continue
		}
		records = append(records, domain.NewBalanceRecord(sym, qty, p.Name()))
	}
	return records, nil
}
