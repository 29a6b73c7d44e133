package repository

import (
	"testing"

	"printpack/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmountByCurrency(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		currency string
		want     float64
		wantErr  bool
	}{
		{"usd grouped", "1,234.56", "USD", 1234.56, false},
		{"inr lakh grouping", "12,34,567", "INR", 1234567, false},
		{"gbp plain", "99.99", "GBP", 99.99, false},
		{"eur decimal comma", "1.234,56", "EUR", 1234.56, false},
		{"eur no grouping", "42,5", "EUR", 42.5, false},
		{"unknown currency drops separators", "1.234,56", "CHF", 123456, false},
		{"empty is zero", "", "USD", 0, false},
		{"whitespace is zero", "   ", "EUR", 0, false},
		{"garbage", "abc", "USD", 0, true},
		{"garbage after cleaning", "12x34", "EUR", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmountByCurrency(tt.raw, tt.currency)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrValidation)
				assert.Contains(t, err.Error(), "Invalid amount format for currency: "+tt.currency)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestComputeLineItemTotals(t *testing.T) {
	items := []models.LineItem{
		{Description: "Sleeves", Quantity: models.FlexFloat{Raw: "1000"}, Rate: models.FlexFloat{Raw: "0.25"}},
		{Description: "Plates", Quantity: models.FlexFloat{Raw: "4"}, Rate: models.FlexFloat{Raw: "1,250.00"}},
	}

	totals, err := ComputeLineItemTotals(items, "USD", 5)
	require.NoError(t, err)

	assert.InDelta(t, 250, totals.Items[0].Amount, 1e-9)
	assert.InDelta(t, 5000, totals.Items[1].Amount, 1e-9)
	assert.InDelta(t, 5250, totals.Subtotal, 1e-9)
	assert.InDelta(t, 262.5, totals.VatAmount, 1e-9)
	assert.InDelta(t, totals.Subtotal+totals.VatAmount, totals.Total, 1e-9)
}

func TestComputeLineItemTotalsIgnoresClientAmounts(t *testing.T) {
	items := []models.LineItem{
		{Description: "Sleeves", Quantity: models.FlexFloat{Raw: "10"}, Rate: models.FlexFloat{Raw: "2"}, Amount: 999999},
	}

	totals, err := ComputeLineItemTotals(items, "USD", 0)
	require.NoError(t, err)
	assert.InDelta(t, 20, totals.Items[0].Amount, 1e-9)
	assert.InDelta(t, 20, totals.Total, 1e-9)
}

func TestComputeLineItemTotalsInvalidQuantity(t *testing.T) {
	for _, qty := range []string{"", "abc", "0", "-3"} {
		items := []models.LineItem{
			{Description: "Sleeves", Quantity: models.FlexFloat{Raw: qty}, Rate: models.FlexFloat{Raw: "2"}},
		}
		_, err := ComputeLineItemTotals(items, "USD", 0)
		require.Error(t, err, "quantity %q", qty)
		assert.Contains(t, err.Error(), "Invalid quantity")
	}
}

func TestComputeLineItemTotalsBadRateFailsWhole(t *testing.T) {
	items := []models.LineItem{
		{Description: "Good", Quantity: models.FlexFloat{Raw: "1"}, Rate: models.FlexFloat{Raw: "10"}},
		{Description: "Bad", Quantity: models.FlexFloat{Raw: "1"}, Rate: models.FlexFloat{Raw: "ten"}},
	}
	totals, err := ComputeLineItemTotals(items, "USD", 0)
	require.Error(t, err)
	assert.Empty(t, totals.Items)
}

func TestComputeEstimateFlags(t *testing.T) {
	tests := []struct {
		po, inv string
		want    EstimateFlags
	}{
		{"pending", "pending", EstimateFlags{ToBeInvoiced: true}},
		{"received", "pending", EstimateFlags{Invoice: true}},
		{"received", "received", EstimateFlags{Invoiced: true}},
		{"pending", "received", EstimateFlags{}},
		{"", "", EstimateFlags{ToBeInvoiced: true}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ComputeEstimateFlags(tt.po, tt.inv), "po=%q inv=%q", tt.po, tt.inv)
	}
}

func TestEstimateFlagTransitions(t *testing.T) {
	assert.Equal(t, EstimateFlags{Invoiced: true}, EstimateFlagsInvoiceReceived())
	assert.Equal(t, EstimateFlags{Invoice: true}, EstimateFlagsOnPoCreate("pending"))
	assert.Equal(t, EstimateFlags{Invoice: true}, EstimateFlagsOnPoCreate(""))
	assert.Equal(t, EstimateFlags{Invoiced: true}, EstimateFlagsOnPoCreate("received"))
	assert.Equal(t, EstimateFlags{ToBeInvoiced: true}, EstimateFlagsPoReset())
}

func TestComputeInvoiceFlags(t *testing.T) {
	assert.Equal(t, InvoiceFlags{ToBePaid: true}, ComputeInvoiceFlags("Active", "Unpaid"))
	assert.Equal(t, InvoiceFlags{ToBePaid: true}, ComputeInvoiceFlags("Active", ""))
	assert.Equal(t, InvoiceFlags{Paid: true}, ComputeInvoiceFlags("Active", "Paid"))
	assert.Equal(t, InvoiceFlags{}, ComputeInvoiceFlags("Cancelled", "Unpaid"))
	assert.Equal(t, InvoiceFlags{Paid: true}, ComputeInvoiceFlags("Cancelled", "Paid"))
}
