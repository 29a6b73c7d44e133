package repository

import (
	"strconv"
	"strings"

	"printpack/models"
)

// Currencies whose amounts use "," purely as a thousands separator.
var commaGroupedCurrencies = map[string]bool{
	"INR": true,
	"USD": true,
	"GBP": true,
	"AED": true,
	"SAR": true,
	"JPY": true,
}

// ParseAmountByCurrency converts a locale-formatted amount token into a
// float. EUR uses "." for grouping and "," as the decimal mark; the listed
// currencies use "," for grouping; any other currency has both separators
// stripped, which drops fractional parts for those currencies. That quirk is
// long-standing and downstream data depends on it, so it stays.
func ParseAmountByCurrency(raw string, currency string) (float64, error) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return 0, nil
	}

	switch {
	case commaGroupedCurrencies[currency]:
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	case currency == "EUR":
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.Replace(cleaned, ",", ".", 1)
	default:
		cleaned = strings.ReplaceAll(cleaned, ",", "")
		cleaned = strings.ReplaceAll(cleaned, ".", "")
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, Validationf("Invalid amount format for currency: %s", currency)
	}
	return value, nil
}

// LineItemTotals is the recomputed money summary of a document.
type LineItemTotals struct {
	Items     models.LineItems
	Subtotal  float64
	VatAmount float64
	Total     float64
}

// ComputeLineItemTotals parses every rate through the currency normalizer,
// validates quantities, and recomputes amount/subtotal/VAT/total. Client
// supplied per-item amounts are ignored. Any bad rate or quantity fails the
// whole computation so nothing partial is ever persisted.
func ComputeLineItemTotals(items []models.LineItem, currency string, vatRate float64) (LineItemTotals, error) {
	out := LineItemTotals{Items: make(models.LineItems, 0, len(items))}

	for _, item := range items {
		rate, err := ParseAmountByCurrency(item.Rate.Raw, currency)
		if err != nil {
			return LineItemTotals{}, err
		}

		qty, err := strconv.ParseFloat(strings.TrimSpace(item.Quantity.Raw), 64)
		if err != nil || qty <= 0 {
			return LineItemTotals{}, Validationf("Invalid quantity")
		}

		item.Amount = rate * qty
		out.Subtotal += item.Amount
		out.Items = append(out.Items, item)
	}

	out.VatAmount = out.Subtotal * vatRate / 100
	out.Total = out.Subtotal + out.VatAmount
	return out, nil
}

// EstimateFlags are the derived booleans that tell the office which document
// action is expected next for a cost estimate.
type EstimateFlags struct {
	ToBeInvoiced bool
	Invoice      bool
	Invoiced     bool
}

// ComputeEstimateFlags derives the estimate flags from the PO/invoice status
// pair. Empty statuses default to "pending". The (pending, received) pair
// legitimately yields all-false: the invoice arrived before the PO.
func ComputeEstimateFlags(poStatus, invoiceStatus string) EstimateFlags {
	if poStatus == "" {
		poStatus = "pending"
	}
	if invoiceStatus == "" {
		invoiceStatus = "pending"
	}
	return EstimateFlags{
		ToBeInvoiced: poStatus == "pending" && invoiceStatus == "pending",
		Invoice:      poStatus == "received" && invoiceStatus == "pending",
		Invoiced:     poStatus == "received" && invoiceStatus == "received",
	}
}

// EstimateFlagsInvoiceReceived is the forced end state written when an
// invoice referencing the estimate is created.
func EstimateFlagsInvoiceReceived() EstimateFlags {
	return EstimateFlags{ToBeInvoiced: false, Invoice: false, Invoiced: true}
}

// EstimateFlagsOnPoCreate is the state written when a purchase order is
// raised against the estimate: the PO side is received, so only the invoice
// status decides which of invoice/invoiced holds.
func EstimateFlagsOnPoCreate(invoiceStatus string) EstimateFlags {
	if invoiceStatus == "" {
		invoiceStatus = "pending"
	}
	return EstimateFlags{
		ToBeInvoiced: false,
		Invoice:      invoiceStatus == "pending",
		Invoiced:     invoiceStatus == "received",
	}
}

// EstimateFlagsPoReset is the unconditional rollback written when the PO is
// deleted, regardless of the invoice status at that moment.
func EstimateFlagsPoReset() EstimateFlags {
	return EstimateFlags{ToBeInvoiced: true, Invoice: false, Invoiced: false}
}

// InvoiceFlags are the derived payment booleans of an invoice.
type InvoiceFlags struct {
	ToBePaid bool
	Paid     bool
}

// ComputeInvoiceFlags derives the invoice flags. An empty payment status
// defaults to "Unpaid".
func ComputeInvoiceFlags(invoiceStatus, paymentStatus string) InvoiceFlags {
	if paymentStatus == "" {
		paymentStatus = "Unpaid"
	}
	return InvoiceFlags{
		ToBePaid: invoiceStatus == "Active" && paymentStatus == "Unpaid",
		Paid:     paymentStatus == "Paid",
	}
}
