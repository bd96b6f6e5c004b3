package events

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyunwoolee/wonfolio/internal/domain"
)

func TestBroadcasterPublishAndLatest(t *testing.T) {
	b := NewReportBroadcaster(4)
	require.Nil(t, b.Latest())

	sub := b.Subscribe()
	defer b.Unsubscribe(sub)

	rec := domain.NewBalanceRecord("BTC", decimal.NewFromInt(1), "Upbit")
	rec.SetPrice(decimal.NewFromInt(150_000_000))
	report := domain.NewReport([]domain.BalanceRecord{rec})

	b.Publish(report)

	got := <-sub
	assert.Equal(t, report.ID, got.ID)

	latest := b.Latest()
	require.NotNil(t, latest)
	assert.Equal(t, report.ID, latest.ID)
}

func TestBroadcasterDropsSlowConsumer(t *testing.T) {
	b := NewReportBroadcaster(1)
	sub := b.Subscribe()
	defer b.Unsubscribe(sub)

	first := domain.NewReport(nil)
	second := domain.NewReport(nil)
	b.Publish(first)
	b.Publish(second) // buffer full, dropped rather than blocking

	got := <-sub
	assert.Equal(t, first.ID, got.ID)
	latest := b.Latest()
	assert.Equal(t, second.ID, latest.ID)
}
