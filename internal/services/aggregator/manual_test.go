package aggregator

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBuildManualReport(t *testing.T) {
	resolver := &stubResolver{prices: map[string]decimal.Decimal{
		"BTC": decimal.NewFromInt(50_000_000),
		"ETH": decimal.NewFromInt(3_000_000),
	}}
	agg := New(zap.NewNop(), resolver)

	report := agg.BuildManualReport(context.Background(), map[string]decimal.Decimal{
		"BTC": decimal.RequireFromString("1.5"),
		"ETH": decimal.NewFromInt(10),
	})

	require.Len(t, report.Records, 2)
	assert.Equal(t, ManualSource, report.Records[0].Source)

	btc, eth := report.Records[0], report.Records[1]
	require.Equal(t, "BTC", btc.Asset)
	assert.True(t, btc.Value.Decimal.Equal(decimal.NewFromInt(75_000_000)))
	require.Equal(t, "ETH", eth.Asset)
	assert.True(t, eth.Value.Decimal.Equal(decimal.NewFromInt(30_000_000)))

	assert.True(t, report.Total.Equal(decimal.NewFromInt(105_000_000)))
}

func TestBuildManualReportSkipsNonPositiveQuantities(t *testing.T) {
	resolver := &stubResolver{prices: map[string]decimal.Decimal{"BTC": decimal.NewFromInt(1)}}
	agg := New(zap.NewNop(), resolver)

	report := agg.BuildManualReport(context.Background(), map[string]decimal.Decimal{
		"BTC":  decimal.NewFromInt(1),
		"DUST": decimal.Zero,
	})

	require.Len(t, report.Records, 1)
	assert.Equal(t, "BTC", report.Records[0].Asset)
}

func TestBuildManualReportUnresolvedSymbolRetained(t *testing.T) {
	resolver := &stubResolver{prices: map[string]decimal.Decimal{}}
	agg := New(zap.NewNop(), resolver)

	report := agg.BuildManualReport(context.Background(), map[string]decimal.Decimal{
		"OBSCURE": decimal.NewFromInt(42),
	})

	require.Len(t, report.Records, 1)
	assert.False(t, report.Records[0].Priced())
	assert.True(t, report.Total.IsZero())
}
