package parser

import (
	"encoding/csv"
	"io"
	"os"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	a "github.com/kramach/lifo-taxes/accounting"
)

// Column positions in a Coinbase consolidated report row
const (
	dateField   = 0
	kindField   = 1
	assetField  = 2
	unitsField  = 3
	amountField = 5
)

// minFields is the narrowest row worth parsing; shorter rows are report
// preamble or section headers
const minFields = 8

const dateLayout = "1/2/2006"

// ReadConsolidatedFile reads a consolidated report csv file exported from
// Coinbase, returning the purchases and sales it contains.  Rows that are
// not well-formed Buy or Sell records are skipped.
func ReadConsolidatedFile(filename string) ([]*a.Lot, []*a.Disposal, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	return ReadConsolidated(file)
}

// ReadConsolidated parses consolidated report rows from r.  Buy rows become
// Lots and Sell rows become Disposals, both in file order.  Send rows are
// intentionally dropped: the destination of a send and what is done with it
// afterward is unknown to the exchange, so they must be accounted for
// manually.  A Buy or Sell row with zero units fails the whole read.
func ReadConsolidated(r io.Reader) ([]*a.Lot, []*a.Disposal, error) {
	lots := make([]*a.Lot, 0)
	disposals := make([]*a.Disposal, 0)

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}

		log.Debug(record)
		if len(record) < minFields {
			continue
		}

		date, err := time.Parse(dateLayout, record[dateField])
		if err != nil {
			// Header row or other non-transaction line
			continue
		}

		units, err := decimal.NewFromString(record[unitsField])
		if err != nil {
			log.Debugf("skipping %s row with bad units %q", record[dateField], record[unitsField])
			continue
		}
		amount, err := decimal.NewFromString(record[amountField])
		if err != nil {
			log.Debugf("skipping %s row with bad amount %q", record[dateField], record[amountField])
			continue
		}

		asset := record[assetField]
		switch record[kindField] {
		case "Buy":
			lot, err := a.NewLot(asset, date, units, amount)
			if err != nil {
				return nil, nil, err
			}
			lots = append(lots, lot)
		case "Sell":
			d, err := a.NewDisposal(asset, date, units, amount)
			if err != nil {
				return nil, nil, err
			}
			disposals = append(disposals, d)
		case "Send":
			// Sends are accounted for manually, the destination is unknown
			log.Debugf("ignoring %s Send of %s %s", record[dateField], record[unitsField], asset)
		default:
			log.Debugf("ignoring %s %s row", record[dateField], record[kindField])
		}
	}

	return lots, disposals, nil
}
