package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// BalanceRecord is one holding reported by a single source, valued in KRW.
// Price and Value use NullDecimal: an invalid value means "could not be
// determined this run", which is distinct from a genuine zero.
type BalanceRecord struct {
	Asset       string              `json:"asset"`
	Quantity    decimal.Decimal     `json:"quantity"`
	Price       decimal.NullDecimal `json:"price_krw"`
	Value       decimal.NullDecimal `json:"value_krw"`
	Source      string              `json:"source"`
	RetrievedAt time.Time           `json:"retrieved_at"`
}

// NewBalanceRecord builds an unpriced record. Symbols are uppercased so that
// records from different venues group together regardless of venue casing.
func NewBalanceRecord(asset string, quantity decimal.Decimal, source string) BalanceRecord {
	return BalanceRecord{
		Asset:       strings.ToUpper(asset),
		Quantity:    quantity,
		Source:      source,
		RetrievedAt: time.Now(),
	}
}

// SetPrice fills in the KRW price and derives the record value from it.
func (r *BalanceRecord) SetPrice(price decimal.Decimal) {
	r.Price = decimal.NewNullDecimal(price)
	r.Value = decimal.NewNullDecimal(r.Quantity.Mul(price))
}

// Priced reports whether the record carries a resolved KRW value.
func (r *BalanceRecord) Priced() bool {
	return r.Price.Valid && r.Value.Valid
}

func (r *BalanceRecord) String() string {
	price, value := "-", "-"
	if r.Price.Valid {
		price = r.Price.Decimal.String()
	}
	if r.Value.Valid {
		value = r.Value.Decimal.String()
	}
	return fmt.Sprintf("%s %s @%s = %s (%s)", r.Asset, r.Quantity.String(), price, value, r.Source)
}

// PriceQuote is a transient quote produced by the price resolver.
type PriceQuote struct {
	Asset       string          `json:"asset"`
	Price       decimal.Decimal `json:"price_krw"`
	Source      string          `json:"source"`
	RetrievedAt time.Time       `json:"retrieved_at"`
}
