package accounting

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultLongTermDays is the holding period, in whole days, beyond which a
// gain or loss is long term.
const DefaultLongTermDays = 365

// DefaultDust is the smallest tracked sub-unit of the supported assets
// (1/10^8 for BTC, ETH and LTC).  A remaining balance below it is treated
// as fully consumed.
var DefaultDust = decimal.New(1, -8)

// Period is a reporting date range, inclusive of Start and exclusive of End
type Period struct {
	Start time.Time
	End   time.Time
}

// Year returns the Period covering one calendar year
func Year(y int) Period {
	return Period{
		Start: time.Date(y, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(y+1, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// Contains reports whether t falls within the period
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// Warning flags a disposal that could not be fully matched against prior
// lots.  It indicates missing purchase history or a short sale, not a
// processing failure.
type Warning struct {
	Disposal  *Disposal
	Unmatched decimal.Decimal
}

func (w Warning) String() string {
	return fmt.Sprintf("%s sale of %s %s has %s units with no covering purchase",
		w.Disposal.SoldAt.Format("2006-01-02"), w.Disposal.Units, w.Disposal.Asset, w.Unmatched)
}

// Matcher allocates disposals against lots of the same asset, most recently
// acquired lot first (LIFO), restricted to disposals within Period.  It is
// the only mutator of the lots and disposals handed to Match.
type Matcher struct {
	Period       Period
	Dust         decimal.Decimal
	LongTermDays int
}

// NewMatcher returns a Matcher for the given reporting period with the
// default dust threshold and long-term holding period
func NewMatcher(period Period) *Matcher {
	return &Matcher{
		Period:       period,
		Dust:         DefaultDust,
		LongTermDays: DefaultLongTermDays,
	}
}

// Match allocates each in-period disposal against the most recently acquired
// lots of its asset whose purchase precedes the sale, splitting lots and
// disposals as needed.  Both slices are sorted by date descending on entry;
// lots sharing an acquisition date are consumed in input order.  Lots and
// disposals are mutated in place, the caller reads lot state afterward.
// Disposals left partially or fully unmatched are returned as warnings.
func (m *Matcher) Match(lots []*Lot, disposals []*Disposal) []Warning {
	sort.SliceStable(lots, func(i, j int) bool {
		return lots[i].AcquiredAt.After(lots[j].AcquiredAt)
	})
	sort.SliceStable(disposals, func(i, j int) bool {
		return disposals[i].SoldAt.After(disposals[j].SoldAt)
	})

	var warnings []Warning
	for _, d := range disposals {
		if !m.Period.Contains(d.SoldAt) {
			continue
		}

		for _, lot := range lots {
			if d.remaining.LessThan(m.Dust) {
				break
			}
			if lot.Asset != d.Asset {
				continue
			}
			if lot.AcquiredAt.After(d.SoldAt) {
				continue
			}
			if lot.remaining.LessThan(m.Dust) {
				continue
			}

			m.allocate(lot, d)
		}

		if d.remaining.GreaterThanOrEqual(m.Dust) {
			warnings = append(warnings, Warning{Disposal: d, Unmatched: d.remaining})
		}
	}
	return warnings
}

// allocate consumes as much of d as lot can cover, recording the realized
// gain or loss on the lot
func (m *Matcher) allocate(lot *Lot, d *Disposal) {
	take := decimal.Min(lot.remaining, d.remaining)

	lot.allocations = append(lot.allocations, Allocation{
		Units:  take,
		SoldAt: d.SoldAt,
		Amount: take.Mul(d.UnitPrice.Sub(lot.UnitCost)),
		Term:   classify(lot.AcquiredAt, d.SoldAt, m.LongTermDays),
	})
	lot.remaining = lot.remaining.Sub(take)
	d.remaining = d.remaining.Sub(take)
}

// classify returns the holding-period classification for units acquired at
// acquiredAt and sold at soldAt.  Strictly more than longTermDays whole days
// between the two dates is long term.
func classify(acquiredAt, soldAt time.Time, longTermDays int) Term {
	days := int(soldAt.Sub(acquiredAt).Hours() / 24)
	if days > longTermDays {
		return LongTerm
	}
	return ShortTerm
}
