package repository

import (
	"context"
	"testing"

	"printpack/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedEstimate(t *testing.T, db *gorm.DB) *models.Estimate {
	t.Helper()
	estimate, err := CreateEstimate(context.Background(), db, models.EstimateRequest{
		ClientID:     1,
		EstimateDate: "2025-02-14",
		Currency:     "USD",
		VatRate:      5,
		LineItems: []models.LineItem{
			{Description: "Sleeves", Quantity: models.FlexFloat{Raw: "1000"}, Rate: models.FlexFloat{Raw: "0.25"}},
		},
	})
	require.NoError(t, err)
	return estimate
}

func TestCreateEstimateDefaults(t *testing.T) {
	db := newTestDB(t)
	estimate := seedEstimate(t, db)

	assert.Equal(t, 6608, estimate.EstimateNo)
	assert.Equal(t, "Draft", estimate.CeStatus)
	assert.Equal(t, LinkPending, estimate.CePoStatus)
	assert.Equal(t, LinkPending, estimate.CeInvoiceStatus)
	assert.True(t, estimate.ToBeInvoiced)
	assert.False(t, estimate.Invoice)
	assert.False(t, estimate.Invoiced)
	assert.InDelta(t, 250, estimate.Subtotal, 1e-9)
	assert.InDelta(t, 262.5, estimate.TotalAmount, 1e-9)
}

func TestCreateEstimateValidation(t *testing.T) {
	db := newTestDB(t)
	_, err := CreateEstimate(context.Background(), db, models.EstimateRequest{ClientID: 1, Currency: "USD"})
	require.Error(t, err)
	assert.Equal(t, "Required fields missing", UserMessage(err))
}

func TestPurchaseOrderFlagRoundTrip(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	estimate := seedEstimate(t, db)

	po, err := CreatePurchaseOrder(ctx, db, models.PurchaseOrderRequest{
		PoNumber:         "PO-2025-001",
		CostEstimationID: estimate.ID,
		ClientID:         1,
		PoAmount:         262.5,
		PoDate:           "2025-02-20",
	})
	require.NoError(t, err)

	after := loadEstimate(t, db, estimate.ID)
	assert.Equal(t, LinkReceived, after.CePoStatus)
	assert.False(t, after.ToBeInvoiced)
	assert.True(t, after.Invoice)
	assert.False(t, after.Invoiced)

	require.NoError(t, DeletePurchaseOrder(ctx, db, po.ID))

	reset := loadEstimate(t, db, estimate.ID)
	assert.Equal(t, LinkPending, reset.CePoStatus)
	assert.True(t, reset.ToBeInvoiced)
	assert.False(t, reset.Invoice)
	assert.False(t, reset.Invoiced)
}

func TestCreatePurchaseOrderUnknownEstimate(t *testing.T) {
	db := newTestDB(t)
	_, err := CreatePurchaseOrder(context.Background(), db, models.PurchaseOrderRequest{
		CostEstimationID: 99,
	})
	require.Error(t, err)
	assert.Equal(t, "Linked cost estimate not found", UserMessage(err))

	// The failed transaction must not leave a PO row behind.
	var count int64
	require.NoError(t, db.Model(&models.PurchaseOrder{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestPoDeleteResetsEvenWhenInvoiced(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	estimate := seedEstimate(t, db)

	po, err := CreatePurchaseOrder(ctx, db, models.PurchaseOrderRequest{CostEstimationID: estimate.ID})
	require.NoError(t, err)

	_, err = CreateInvoiceFromEstimate(ctx, db, estimate.ID, "2025-03-01", "2025-03-31")
	require.NoError(t, err)
	require.True(t, loadEstimate(t, db, estimate.ID).Invoiced)

	// The reset is unconditional: the invoice side stays received but the
	// derived flags roll all the way back.
	require.NoError(t, DeletePurchaseOrder(ctx, db, po.ID))

	after := loadEstimate(t, db, estimate.ID)
	assert.Equal(t, LinkReceived, after.CeInvoiceStatus)
	assert.True(t, after.ToBeInvoiced)
	assert.False(t, after.Invoiced)
}

func TestCreateInvoiceForcesEstimateInvoiced(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	estimate := seedEstimate(t, db)

	invoice, err := CreateInvoice(ctx, db, models.InvoiceRequest{
		ClientID:    1,
		EstimateID:  &estimate.ID,
		InvoiceDate: "2025-03-01",
		Currency:    "USD",
		VatRate:     5,
		LineItems: []models.LineItem{
			{Description: "Sleeves", Quantity: models.FlexFloat{Raw: "1000"}, Rate: models.FlexFloat{Raw: "0.25"}},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 5001, invoice.InvoiceNo)
	assert.Equal(t, "Active", invoice.InvoiceStatus)
	assert.Equal(t, "Unpaid", invoice.PaymentStatus)
	assert.True(t, invoice.ToBePaid)
	assert.False(t, invoice.Paid)

	after := loadEstimate(t, db, estimate.ID)
	assert.Equal(t, LinkReceived, after.CeInvoiceStatus)
	assert.False(t, after.ToBeInvoiced)
	assert.False(t, after.Invoice)
	assert.True(t, after.Invoiced)
}

func TestCreateInvoiceUnknownEstimateRollsBack(t *testing.T) {
	db := newTestDB(t)
	missing := 99
	_, err := CreateInvoice(context.Background(), db, models.InvoiceRequest{
		ClientID:    1,
		EstimateID:  &missing,
		InvoiceDate: "2025-03-01",
		Currency:    "USD",
		LineItems: []models.LineItem{
			{Description: "Sleeves", Quantity: models.FlexFloat{Raw: "1"}, Rate: models.FlexFloat{Raw: "10"}},
		},
	})
	require.Error(t, err)
	assert.Equal(t, "Linked cost estimate not found", UserMessage(err))

	var count int64
	require.NoError(t, db.Model(&models.Invoice{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateInvoiceFromEstimateCopiesTerms(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	estimate := seedEstimate(t, db)

	invoice, err := CreateInvoiceFromEstimate(ctx, db, estimate.ID, "2025-03-01", "2025-03-31")
	require.NoError(t, err)

	assert.Equal(t, estimate.ClientID, invoice.ClientID)
	assert.Equal(t, estimate.Currency, invoice.Currency)
	assert.InDelta(t, estimate.TotalAmount, invoice.TotalAmount, 1e-9)
	require.NotNil(t, invoice.EstimateID)
	assert.Equal(t, estimate.ID, *invoice.EstimateID)
	assert.Len(t, invoice.LineItems, len(estimate.LineItems))
}

func TestUpdateInvoicePaidFlags(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	invoice, err := CreateInvoice(ctx, db, models.InvoiceRequest{
		ClientID:    1,
		InvoiceDate: "2025-03-01",
		Currency:    "USD",
		LineItems: []models.LineItem{
			{Description: "Sleeves", Quantity: models.FlexFloat{Raw: "1"}, Rate: models.FlexFloat{Raw: "10"}},
		},
	})
	require.NoError(t, err)
	require.True(t, invoice.ToBePaid)

	updated, err := UpdateInvoice(ctx, db, invoice.ID, models.InvoiceRequest{
		Currency:      "USD",
		PaymentStatus: "Paid",
		LineItems: []models.LineItem{
			{Description: "Sleeves", Quantity: models.FlexFloat{Raw: "1"}, Rate: models.FlexFloat{Raw: "10"}},
		},
	})
	require.NoError(t, err)
	assert.True(t, updated.Paid)
	assert.False(t, updated.ToBePaid)
	// The untouched invoice status survives a partial update.
	assert.Equal(t, "Active", updated.InvoiceStatus)
}

func TestDeleteEstimateCascadesPurchaseOrders(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	estimate := seedEstimate(t, db)

	_, err := CreatePurchaseOrder(ctx, db, models.PurchaseOrderRequest{CostEstimationID: estimate.ID})
	require.NoError(t, err)

	require.NoError(t, DeleteEstimate(ctx, db, estimate.ID))

	var count int64
	require.NoError(t, db.Model(&models.PurchaseOrder{}).Where("cost_estimation_id = ?", estimate.ID).Count(&count).Error)
	assert.Zero(t, count)

	err = DeleteEstimate(ctx, db, estimate.ID)
	require.Error(t, err)
	assert.Equal(t, "Cost estimate not found", UserMessage(err))
}

func TestUpdateEstimateKeepsFlagPair(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	estimate := seedEstimate(t, db)

	_, err := CreatePurchaseOrder(ctx, db, models.PurchaseOrderRequest{CostEstimationID: estimate.ID})
	require.NoError(t, err)

	updated, err := UpdateEstimate(ctx, db, estimate.ID, models.EstimateRequest{
		Currency: "USD",
		VatRate:  10,
		LineItems: []models.LineItem{
			{Description: "Cartons", Quantity: models.FlexFloat{Raw: "200"}, Rate: models.FlexFloat{Raw: "1.50"}},
		},
	})
	require.NoError(t, err)

	// Flags rederive from the stored status pair, not reset to defaults.
	assert.Equal(t, LinkReceived, updated.CePoStatus)
	assert.True(t, updated.Invoice)
	assert.False(t, updated.ToBeInvoiced)
	assert.InDelta(t, 300, updated.Subtotal, 1e-9)
	assert.InDelta(t, 330, updated.TotalAmount, 1e-9)
}

func TestProjectScopedFinanceLists(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	projectID := 12

	estimate, err := CreateEstimate(ctx, db, models.EstimateRequest{
		ClientID:     1,
		ProjectID:    &projectID,
		EstimateDate: "2025-02-14",
		Currency:     "USD",
		LineItems: []models.LineItem{
			{Description: "Sleeves", Quantity: models.FlexFloat{Raw: "1000"}, Rate: models.FlexFloat{Raw: "0.25"}},
		},
	})
	require.NoError(t, err)
	// An estimate on another project must not leak in.
	seedEstimate(t, db)

	estimates, err := ListEstimatesByProject(ctx, db, projectID)
	require.NoError(t, err)
	require.Len(t, estimates, 1)
	assert.Equal(t, estimate.ID, estimates[0].ID)

	po, err := CreatePurchaseOrder(ctx, db, models.PurchaseOrderRequest{
		PoNumber:         "PO-2025-044",
		CostEstimationID: estimate.ID,
		ClientID:         1,
		ProjectID:        &projectID,
	})
	require.NoError(t, err)

	pos, err := ListPurchaseOrdersByProject(ctx, db, projectID)
	require.NoError(t, err)
	require.Len(t, pos, 1)
	assert.Equal(t, po.ID, pos[0].ID)

	invoice, err := CreateInvoiceFromEstimate(ctx, db, estimate.ID, "2025-03-01", "2025-03-31")
	require.NoError(t, err)

	invoices, err := ListInvoicesByProject(ctx, db, projectID)
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	assert.Equal(t, invoice.ID, invoices[0].ID)

	empty, err := ListInvoicesByProject(ctx, db, 999)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
