package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AssetTotal is the per-asset aggregate across all sources.
type AssetTotal struct {
	Asset    string          `json:"asset"`
	Quantity decimal.Decimal `json:"quantity"`
	Value    decimal.Decimal `json:"value_krw"`
}

// SourceTotal is the per-source aggregate.
type SourceTotal struct {
	Source string          `json:"source"`
	Value  decimal.Decimal `json:"value_krw"`
}

// Report is the consolidated portfolio view for one run. It is built once and
// never mutated afterwards. Records keep provider insertion order; the
// groupings are sorted by value descending. Rows without a resolved value are
// listed but contribute nothing to Total or to the groupings' value sums.
type Report struct {
	ID        uuid.UUID       `json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	Records   []BalanceRecord `json:"records"`
	Total     decimal.Decimal `json:"total_krw"`
	ByAsset   []AssetTotal    `json:"by_asset"`
	BySource  []SourceTotal   `json:"by_source"`
}

// NewReport consolidates records into a report, computing the grand total and
// the by-asset / by-source groupings over resolved values only.
func NewReport(records []BalanceRecord) Report {
	r := Report{
		ID:        uuid.New(),
		CreatedAt: time.Now(),
		Records:   records,
		Total:     decimal.Zero,
	}

	assetIdx := make(map[string]int)
	sourceIdx := make(map[string]int)

	for _, rec := range records {
		if i, ok := assetIdx[rec.Asset]; ok {
			r.ByAsset[i].Quantity = r.ByAsset[i].Quantity.Add(rec.Quantity)
		} else {
			assetIdx[rec.Asset] = len(r.ByAsset)
			r.ByAsset = append(r.ByAsset, AssetTotal{Asset: rec.Asset, Quantity: rec.Quantity, Value: decimal.Zero})
		}
		if _, ok := sourceIdx[rec.Source]; !ok {
			sourceIdx[rec.Source] = len(r.BySource)
			r.BySource = append(r.BySource, SourceTotal{Source: rec.Source, Value: decimal.Zero})
		}

		if !rec.Priced() {
			continue
		}
		v := rec.Value.Decimal
		r.Total = r.Total.Add(v)
		r.ByAsset[assetIdx[rec.Asset]].Value = r.ByAsset[assetIdx[rec.Asset]].Value.Add(v)
		r.BySource[sourceIdx[rec.Source]].Value = r.BySource[sourceIdx[rec.Source]].Value.Add(v)
	}

	sort.SliceStable(r.ByAsset, func(i, j int) bool {
		return r.ByAsset[i].Value.GreaterThan(r.ByAsset[j].Value)
	})
	sort.SliceStable(r.BySource, func(i, j int) bool {
		return r.BySource[i].Value.GreaterThan(r.BySource[j].Value)
	})

	return r
}

// Empty reports whether the run produced no records at all.
func (r *Report) Empty() bool {
	return len(r.Records) == 0
}
