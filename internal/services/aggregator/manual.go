package aggregator

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/hyunwoolee/wonfolio/internal/domain"
)

// ManualSource tags records built from user-supplied quantities.
const ManualSource = "Manual"

// BuildManualReport values a static symbol-to-quantity map through the same
// resolution and consolidation path as live providers. It exists so holdings
// outside any tracked venue can still be valued, and it keeps the pricing
// logic honest about not depending on exchange-fetched data.
func (a *Aggregator) BuildManualReport(ctx context.Context, holdings map[string]decimal.Decimal) domain.Report {
	symbols := make([]string, 0, len(holdings))
	for sym := range holdings {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)

	var records []domain.BalanceRecord
	for _, sym := range symbols {
		qty := holdings[sym]
		if !qty.IsPositive() {
			continue
		}
		records = append(records, domain.NewBalanceRecord(sym, qty, ManualSource))
	}

	a.resolvePrices(ctx, records)
	return domain.NewReport(records)
}
