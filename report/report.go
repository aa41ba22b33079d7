// Package report renders matched lots into the gain/loss report rows.
// Building rows only reads lot state, so a report can be regenerated any
// number of times after a matching pass.
package report

import (
	"encoding/csv"
	"io"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	a "github.com/kramach/lifo-taxes/accounting"
)

// Row is one line of the gain/loss report.  A carry-forward row describes
// units still held for future tax years and leaves the sell-side fields
// blank.
type Row struct {
	BuyDate      time.Time
	Asset        string
	Units        decimal.Decimal
	CostBasis    decimal.Decimal
	SellDate     time.Time
	Proceeds     decimal.Decimal
	GainLoss     decimal.Decimal
	Term         a.Term
	CarryForward bool
}

// Build returns report rows for the given lots in ascending acquisition-date
// order: one row per allocation, plus a carry-forward row for any lot with
// at least dust units remaining
func Build(lots []*a.Lot, dust decimal.Decimal) []Row {
	sorted := make([]*a.Lot, len(lots))
	copy(sorted, lots)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].AcquiredAt.Before(sorted[j].AcquiredAt)
	})

	rows := make([]Row, 0, len(sorted))
	for _, lot := range sorted {
		for _, alloc := range lot.Allocations() {
			basis := lot.CostBasis(alloc.Units)
			rows = append(rows, Row{
				BuyDate:   lot.AcquiredAt,
				Asset:     lot.Asset,
				Units:     alloc.Units,
				CostBasis: basis,
				SellDate:  alloc.SoldAt,
				Proceeds:  basis.Add(alloc.Amount),
				GainLoss:  alloc.Amount,
				Term:      alloc.Term,
			})
		}
		if lot.Remaining().GreaterThanOrEqual(dust) {
			rows = append(rows, Row{
				BuyDate:      lot.AcquiredAt,
				Asset:        lot.Asset,
				Units:        lot.Remaining(),
				CostBasis:    lot.CostBasis(lot.Remaining()),
				CarryForward: true,
			})
		}
	}
	return rows
}

var header = []string{"Buy Date", "Asset", "Units", "Cost Basis", "Sell Date", "Proceeds", "Gain/Loss", "Gain/Loss Type"}

// WriteCSV writes the report rows to w as csv, one header row first.
// Sell-side fields of carry-forward rows are written as "-".
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			r.BuyDate.Format("2006-01-02"),
			r.Asset,
			r.Units.String(),
			r.CostBasis.String(),
			"-", "-", "-", "-",
		}
		if !r.CarryForward {
			record[4] = r.SellDate.Format("2006-01-02")
			record[5] = r.Proceeds.String()
			record[6] = r.GainLoss.String()
			record[7] = r.Term.String()
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
