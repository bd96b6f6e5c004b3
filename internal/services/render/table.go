// Package render prints consolidated reports to the console.
package render

import (
	"fmt"
	"io"
	"sort"

	"github.com/Rhymond/go-money"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"

	"github.com/hyunwoolee/wonfolio/internal/domain"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			MarginTop(1)

	totalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}).
			Bold(true).
			MarginTop(1)

	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// KRW formats a KRW amount with the won sign and thousands separators.
// KRW has no minor units, so the decimal is rounded to whole won.
func KRW(v decimal.Decimal) string {
	return money.New(v.Round(0).IntPart(), money.KRW).Display()
}

func nullKRW(v decimal.NullDecimal) string {
	if !v.Valid {
		return "-"
	}
	return KRW(v.Decimal)
}

// Report writes the full consolidated view: record table, by-asset and
// by-source groupings, grand total. Records are shown sorted by value
// descending; rows with no resolved value sink to the bottom.
func Report(w io.Writer, report domain.Report) {
	if report.Empty() {
		fmt.Fprintln(w, "No data available")
		return
	}

	records := make([]domain.BalanceRecord, len(report.Records))
	copy(records, report.Records)
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Value.Valid != records[j].Value.Valid {
			return records[i].Value.Valid
		}
		if !records[i].Value.Valid {
			return false
		}
		return records[i].Value.Decimal.GreaterThan(records[j].Value.Decimal)
	})

	recordTable := newTable("ASSET", "QUANTITY", "PRICE", "VALUE", "SOURCE", "RETRIEVED")
	for _, rec := range records {
		price := "-"
		if rec.Price.Valid {
			price = KRW(rec.Price.Decimal)
		}
		recordTable.Row(
			rec.Asset,
			rec.Quantity.StringFixed(4),
			price,
			nullKRW(rec.Value),
			rec.Source,
			rec.RetrievedAt.Format("2006-01-02 15:04:05"),
		)
	}
	fmt.Fprintln(w, titleStyle.Render("Portfolio"))
	fmt.Fprintln(w, recordTable.Render())

	assetTable := newTable("ASSET", "QUANTITY", "VALUE")
	for _, at := range report.ByAsset {
		assetTable.Row(at.Asset, at.Quantity.StringFixed(4), KRW(at.Value))
	}
	fmt.Fprintln(w, titleStyle.Render("By asset"))
	fmt.Fprintln(w, assetTable.Render())

	sourceTable := newTable("SOURCE", "VALUE")
	for _, st := range report.BySource {
		sourceTable.Row(st.Source, KRW(st.Value))
	}
	fmt.Fprintln(w, titleStyle.Render("By source"))
	fmt.Fprintln(w, sourceTable.Render())

	fmt.Fprintln(w, totalStyle.Render(fmt.Sprintf("Total: %s", KRW(report.Total))))
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)
}
