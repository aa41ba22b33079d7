package accounting

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewLot(t *testing.T) {
	bought := time.Date(2016, 1, 1, 0, 0, 0, 0, time.UTC)

	lot, err := NewLot("BTC", bought, decimal.NewFromFloat(2), decimal.NewFromFloat(1000))
	assert.Nil(t, err)
	assert.Equal(t, "BTC", lot.Asset)
	assert.True(t, lot.UnitCost.Equal(decimal.NewFromFloat(500)))
	assert.True(t, lot.Remaining().Equal(lot.OriginalUnits))
	assert.Empty(t, lot.Allocations())
}

func TestNewLotRejectsZeroUnits(t *testing.T) {
	bought := time.Date(2016, 1, 1, 0, 0, 0, 0, time.UTC)

	lot, err := NewLot("BTC", bought, decimal.Zero, decimal.NewFromFloat(1000))
	assert.Nil(t, lot)
	assert.Error(t, err)

	_, ok := err.(*ZeroQuantityErr)
	assert.True(t, ok)
}

func TestNewLotRejectsNegativeAmount(t *testing.T) {
	bought := time.Date(2016, 1, 1, 0, 0, 0, 0, time.UTC)

	lot, err := NewLot("BTC", bought, decimal.NewFromFloat(1), decimal.NewFromFloat(-10))
	assert.Nil(t, lot)

	_, ok := err.(*NegativeAmountErr)
	assert.True(t, ok)
}

func TestNewDisposal(t *testing.T) {
	sold := time.Date(2017, 6, 1, 0, 0, 0, 0, time.UTC)

	d, err := NewDisposal("ETH", sold, decimal.NewFromFloat(0.4), decimal.NewFromFloat(800))
	assert.Nil(t, err)
	assert.True(t, d.UnitPrice.Equal(decimal.NewFromFloat(2000)))
	assert.True(t, d.Remaining().Equal(d.Units))
}

func TestNewDisposalRejectsZeroUnits(t *testing.T) {
	sold := time.Date(2017, 6, 1, 0, 0, 0, 0, time.UTC)

	d, err := NewDisposal("ETH", sold, decimal.Zero, decimal.NewFromFloat(800))
	assert.Nil(t, d)

	_, ok := err.(*ZeroQuantityErr)
	assert.True(t, ok)
}

func TestTermString(t *testing.T) {
	assert.Equal(t, "short term", ShortTerm.String())
	assert.Equal(t, "long term", LongTerm.String())
}
