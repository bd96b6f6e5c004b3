package aggregator

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hyunwoolee/wonfolio/internal/domain"
	"github.com/hyunwoolee/wonfolio/internal/services/pricer"
)

type stubProvider struct {
	name    string
	records []domain.BalanceRecord
	err     error
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) FetchBalances(context.Context) ([]domain.BalanceRecord, error) {
	return s.records, s.err
}

type stubResolver struct {
	prices map[string]decimal.Decimal
	calls  int
}

func (s *stubResolver) Resolve(_ context.Context, symbol string) (domain.PriceQuote, error) {
	s.calls++
	price, ok := s.prices[symbol]
	if !ok {
		return domain.PriceQuote{}, pricer.ErrUnavailable
	}
	return domain.PriceQuote{Asset: symbol, Price: price, Source: "stub"}, nil
}

func pricedRecord(asset string, qty, price int64, source string) domain.BalanceRecord {
	rec := domain.NewBalanceRecord(asset, decimal.NewFromInt(qty), source)
	rec.SetPrice(decimal.NewFromInt(price))
	return rec
}

func TestBuildReportSurvivesFailingProvider(t *testing.T) {
	korbit := &stubProvider{name: "Korbit", err: errors.New("auth error")}
	upbit := &stubProvider{name: "Upbit", records: []domain.BalanceRecord{
		pricedRecord("BTC", 1, 150_000_000, "Upbit"),
	}}
	coinone := &stubProvider{name: "Coinone", records: []domain.BalanceRecord{
		pricedRecord("SOL", 10, 350_000, "Coinone"),
	}}

	agg := New(zap.NewNop(), nil, korbit, upbit, coinone)
	report := agg.BuildReport(context.Background())

	require.Len(t, report.Records, 2, "failing provider contributes zero records, others unaffected")
	assert.True(t, report.Total.Equal(decimal.NewFromInt(153_500_000)))
}

func TestBuildReportAllProvidersFailYieldsEmptyReport(t *testing.T) {
	a := &stubProvider{name: "A", err: errors.New("down")}
	b := &stubProvider{name: "B", err: errors.New("down too")}

	agg := New(zap.NewNop(), nil, a, b)
	report := agg.BuildReport(context.Background())

	assert.True(t, report.Empty(), "all-empty report is a valid outcome, not a crash")
	assert.True(t, report.Total.IsZero())
}

func TestBuildReportResolvesOnlyUnpricedRecords(t *testing.T) {
	wallet := &stubProvider{name: "Phantom", records: []domain.BalanceRecord{
		domain.NewBalanceRecord("SOL", decimal.NewFromInt(10), "Phantom"),
		domain.NewBalanceRecord("AI16Z", decimal.NewFromInt(100), "Phantom"),
	}}
	exchange := &stubProvider{name: "Upbit", records: []domain.BalanceRecord{
		pricedRecord("BTC", 1, 150_000_000, "Upbit"),
	}}
	resolver := &stubResolver{prices: map[string]decimal.Decimal{
		"SOL": decimal.NewFromInt(350_000),
	}}

	agg := New(zap.NewNop(), resolver, wallet, exchange)
	report := agg.BuildReport(context.Background())

	require.Len(t, report.Records, 3)
	assert.Equal(t, 2, resolver.calls, "inline-priced records must not be re-resolved")

	// SOL resolved, AI16Z stays unresolved but listed
	var ai16z domain.BalanceRecord
	for _, rec := range report.Records {
		if rec.Asset == "AI16Z" {
			ai16z = rec
		}
	}
	assert.False(t, ai16z.Priced())
	assert.True(t, report.Total.Equal(decimal.NewFromInt(153_500_000)))
}

func TestBuildReportKeepsProviderInsertionOrder(t *testing.T) {
	first := &stubProvider{name: "Korbit", records: []domain.BalanceRecord{
		pricedRecord("BTC", 1, 150_000_000, "Korbit"),
	}}
	second := &stubProvider{name: "Upbit", records: []domain.BalanceRecord{
		pricedRecord("SOL", 5, 350_000, "Upbit"),
		pricedRecord("BTC", 2, 150_000_000, "Upbit"),
	}}

	agg := New(zap.NewNop(), nil, first, second)
	report := agg.BuildReport(context.Background())

	require.Len(t, report.Records, 3)
	assert.Equal(t, "Korbit", report.Records[0].Source)
	assert.Equal(t, "SOL", report.Records[1].Asset, "order within a provider's results is preserved")
	assert.Equal(t, "Upbit", report.Records[2].Source)
}

func TestBuildReportIdempotentModuloTimestamps(t *testing.T) {
	provider := &stubProvider{name: "Upbit", records: []domain.BalanceRecord{
		pricedRecord("BTC", 1, 150_000_000, "Upbit"),
		pricedRecord("ETH", 10, 3_000_000, "Upbit"),
	}}
	agg := New(zap.NewNop(), nil, provider)

	first := agg.BuildReport(context.Background())
	second := agg.BuildReport(context.Background())

	require.Equal(t, len(first.Records), len(second.Records))
	for i := range first.Records {
		assert.Equal(t, first.Records[i].Asset, second.Records[i].Asset)
		assert.True(t, first.Records[i].Quantity.Equal(second.Records[i].Quantity))
		assert.True(t, first.Records[i].Value.Decimal.Equal(second.Records[i].Value.Decimal))
	}
	assert.True(t, first.Total.Equal(second.Total))
	assert.NotEqual(t, first.ID, second.ID)
}
