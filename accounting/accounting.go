package accounting

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ZeroQuantityErr is an error for a record with zero or negative units.
// A unit price cannot be derived from such a record.
type ZeroQuantityErr struct {
	Asset string
}

func (e *ZeroQuantityErr) Error() string {
	return fmt.Sprintf("%s record has no units, unit price is undefined", e.Asset)
}

// NegativeAmountErr is an error for a record with a negative total amount
type NegativeAmountErr struct {
	Asset string
}

func (e *NegativeAmountErr) Error() string {
	return fmt.Sprintf("%s record amount must be >= 0", e.Asset)
}

// Term is the holding-period classification of a realized gain or loss
type Term int

const (
	// ShortTerm is a disposal of units held for the long-term day threshold or less
	ShortTerm Term = iota
	// LongTerm is a disposal of units held for more than the long-term day threshold
	LongTerm
)

func (t Term) String() string {
	if t == LongTerm {
		return "long term"
	}
	return "short term"
}

// Allocation records the matching of a quantity between one Lot and one
// Disposal.  Amount is the realized gain, negative for a loss.
type Allocation struct {
	Units  decimal.Decimal
	SoldAt time.Time
	Amount decimal.Decimal
	Term   Term
}

// Lot is an amount of an asset purchased in a single event.  Used for
// calculating cost basis and date purchased for accounting purposes.
// Its remaining units and allocations are mutated only by a Matcher.
type Lot struct {
	Asset         string
	AcquiredAt    time.Time
	OriginalUnits decimal.Decimal
	AmountSpent   decimal.Decimal
	UnitCost      decimal.Decimal

	remaining   decimal.Decimal
	allocations []Allocation
}

// NewLot validates a purchase record and derives its fixed unit cost
func NewLot(asset string, acquiredAt time.Time, units, amountSpent decimal.Decimal) (*Lot, error) {
	if units.LessThanOrEqual(decimal.Zero) {
		return nil, &ZeroQuantityErr{Asset: asset}
	}
	if amountSpent.LessThan(decimal.Zero) {
		return nil, &NegativeAmountErr{Asset: asset}
	}

	return &Lot{
		Asset:         asset,
		AcquiredAt:    acquiredAt,
		OriginalUnits: units,
		AmountSpent:   amountSpent,
		UnitCost:      amountSpent.Div(units),
		remaining:     units,
	}, nil
}

// Remaining returns the units of the lot not yet consumed by a disposal
func (l *Lot) Remaining() decimal.Decimal {
	return l.remaining
}

// Allocations returns the gains and losses realized against this lot, in
// the order the disposals consumed it
func (l *Lot) Allocations() []Allocation {
	return l.allocations
}

// CostBasis is the cost (in USD) of the given number of units from this lot
func (l *Lot) CostBasis(units decimal.Decimal) decimal.Decimal {
	return units.Mul(l.UnitCost)
}

// Disposal is a sale of an amount of an asset in a single event
type Disposal struct {
	Asset     string
	SoldAt    time.Time
	Units     decimal.Decimal
	Proceeds  decimal.Decimal
	UnitPrice decimal.Decimal

	remaining decimal.Decimal
}

// NewDisposal validates a sale record and derives its fixed unit price
func NewDisposal(asset string, soldAt time.Time, units, proceeds decimal.Decimal) (*Disposal, error) {
	if units.LessThanOrEqual(decimal.Zero) {
		return nil, &ZeroQuantityErr{Asset: asset}
	}
	if proceeds.LessThan(decimal.Zero) {
		return nil, &NegativeAmountErr{Asset: asset}
	}

	return &Disposal{
		Asset:     asset,
		SoldAt:    soldAt,
		Units:     units,
		Proceeds:  proceeds,
		UnitPrice: proceeds.Div(units),
		remaining: units,
	}, nil
}

// Remaining returns the units of the disposal not yet matched to a lot.
// A nonzero value after matching means purchase history is missing.
func (d *Disposal) Remaining() decimal.Decimal {
	return d.remaining
}
