package order

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestComputeTotals(t *testing.T) {
	o := NewOrder(1, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	o.AddLine(10, 2, decimal.RequireFromString("19.99"))
	o.AddLine(11, 3, decimal.RequireFromString("5.50"))

	o.ComputeTotals()

	assert.Len(t, o.Lines, 2)
	assert.True(t, o.Lines[0].LineTotal.Equal(decimal.RequireFromString("39.98")))
	assert.True(t, o.Lines[1].LineTotal.Equal(decimal.RequireFromString("16.50")))
	assert.True(t, o.TotalAmount.Equal(decimal.RequireFromString("56.48")))
}

func TestComputeTotalsEmpty(t *testing.T) {
	o := NewOrder(1, time.Now())
	o.ComputeTotals()
	assert.True(t, o.TotalAmount.IsZero())
}

func TestNewOrderDefaults(t *testing.T) {
	o := NewOrder(7, time.Now())
	assert.Equal(t, StatusNew, o.Status)
	assert.Equal(t, uint(7), o.CustomerID)
	assert.Empty(t, o.Lines)
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(StatusNew))
	assert.True(t, ValidStatus(StatusCompleted))
	assert.True(t, ValidStatus(StatusCancelled))
	assert.False(t, ValidStatus("SHIPPED"))
	assert.False(t, ValidStatus(""))
}
