package repository

import (
	"context"
	"errors"

	"printpack/models"

	"gorm.io/gorm"
)

// Status values for the estimate linkage columns.
const (
	LinkPending  = "pending"
	LinkReceived = "received"
)

// CreateEstimate validates and inserts a cost estimate with recomputed
// totals and freshly derived flags.
func CreateEstimate(ctx context.Context, db *gorm.DB, req models.EstimateRequest) (*models.Estimate, error) {
	if req.ClientID == 0 || req.EstimateDate == "" || req.Currency == "" || len(req.LineItems) == 0 {
		return nil, Validationf("Required fields missing")
	}

	totals, err := ComputeLineItemTotals(req.LineItems, req.Currency, req.VatRate)
	if err != nil {
		return nil, err
	}

	ceStatus := req.CeStatus
	if ceStatus == "" {
		ceStatus = "Draft"
	}
	flags := ComputeEstimateFlags(LinkPending, LinkPending)

	estimate := models.Estimate{
		ClientID:        req.ClientID,
		ProjectID:       req.ProjectID,
		EstimateDate:    req.EstimateDate,
		Currency:        req.Currency,
		LineItems:       totals.Items,
		Subtotal:        totals.Subtotal,
		VatRate:         req.VatRate,
		VatAmount:       totals.VatAmount,
		TotalAmount:     totals.Total,
		Notes:           req.Notes,
		CeStatus:        ceStatus,
		CePoStatus:      LinkPending,
		CeInvoiceStatus: LinkPending,
		ToBeInvoiced:    flags.ToBeInvoiced,
		Invoice:         flags.Invoice,
		Invoiced:        flags.Invoiced,
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		estimateNo, err := NextDocumentNumber(tx, CounterEstimate)
		if err != nil {
			return err
		}
		estimate.EstimateNo = estimateNo
		return tx.Create(&estimate).Error
	})
	if err != nil {
		return nil, err
	}
	return &estimate, nil
}

// UpdateEstimate recomputes totals from the submitted line items and
// re-derives the flags from the estimate's current status pair.
func UpdateEstimate(ctx context.Context, db *gorm.DB, estimateID int, req models.EstimateRequest) (*models.Estimate, error) {
	if len(req.LineItems) == 0 || req.Currency == "" {
		return nil, Validationf("Required fields missing")
	}

	var estimate models.Estimate
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&estimate, estimateID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundf("Cost estimate not found")
			}
			return err
		}

		totals, err := ComputeLineItemTotals(req.LineItems, req.Currency, req.VatRate)
		if err != nil {
			return err
		}
		flags := ComputeEstimateFlags(estimate.CePoStatus, estimate.CeInvoiceStatus)

		updates := map[string]interface{}{
			"currency":       req.Currency,
			"line_items":     totals.Items,
			"subtotal":       totals.Subtotal,
			"vat_rate":       req.VatRate,
			"vat_amount":     totals.VatAmount,
			"total_amount":   totals.Total,
			"notes":          req.Notes,
			"to_be_invoiced": flags.ToBeInvoiced,
			"invoice":        flags.Invoice,
			"invoiced":       flags.Invoiced,
		}
		if req.EstimateDate != "" {
			updates["estimate_date"] = req.EstimateDate
		}
		if req.CeStatus != "" {
			updates["ce_status"] = req.CeStatus
		}
		if err := tx.Model(&estimate).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&estimate, estimateID).Error
	})
	if err != nil {
		return nil, err
	}
	return &estimate, nil
}

// DeleteEstimate removes an estimate and every purchase order raised against
// it, atomically.
func DeleteEstimate(ctx context.Context, db *gorm.DB, estimateID int) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cost_estimation_id = ?", estimateID).Delete(&models.PurchaseOrder{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Estimate{}, estimateID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return NotFoundf("Cost estimate not found")
		}
		return nil
	})
}

// GetEstimate loads one estimate.
func GetEstimate(ctx context.Context, db *gorm.DB, estimateID int) (*models.Estimate, error) {
	var estimate models.Estimate
	if err := db.WithContext(ctx).First(&estimate, estimateID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundf("Cost estimate not found")
		}
		return nil, err
	}
	return &estimate, nil
}

// ListEstimates returns all estimates, newest first.
func ListEstimates(ctx context.Context, db *gorm.DB) ([]models.Estimate, error) {
	var estimates []models.Estimate
	if err := db.WithContext(ctx).Order("id DESC").Find(&estimates).Error; err != nil {
		return nil, err
	}
	return estimates, nil
}

// ListEstimatesByProject returns a project's estimates, newest first.
func ListEstimatesByProject(ctx context.Context, db *gorm.DB, projectID int) ([]models.Estimate, error) {
	estimates := []models.Estimate{}
	if err := db.WithContext(ctx).Where("project_id = ?", projectID).Order("id DESC").Find(&estimates).Error; err != nil {
		return nil, err
	}
	return estimates, nil
}

// CreateInvoice validates and inserts an invoice. When the invoice references
// an estimate, the estimate's invoice side is marked received and its flags
// are forced to the invoiced end state in the same transaction.
func CreateInvoice(ctx context.Context, db *gorm.DB, req models.InvoiceRequest) (*models.Invoice, error) {
	if req.ClientID == 0 || req.InvoiceDate == "" || req.Currency == "" {
		return nil, Validationf("Required fields missing")
	}
	if len(req.LineItems) == 0 {
		return nil, Validationf("Line items are required")
	}

	totals, err := ComputeLineItemTotals(req.LineItems, req.Currency, req.VatRate)
	if err != nil {
		return nil, err
	}

	invoiceStatus := req.InvoiceStatus
	if invoiceStatus == "" {
		invoiceStatus = "Active"
	}
	paymentStatus := req.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = "Unpaid"
	}
	flags := ComputeInvoiceFlags(invoiceStatus, paymentStatus)

	invoice := models.Invoice{
		ClientID:      req.ClientID,
		ProjectID:     req.ProjectID,
		EstimateID:    req.EstimateID,
		PoID:          req.PoID,
		InvoiceDate:   req.InvoiceDate,
		DueDate:       req.DueDate,
		Currency:      req.Currency,
		LineItems:     totals.Items,
		Subtotal:      totals.Subtotal,
		VatRate:       req.VatRate,
		VatAmount:     totals.VatAmount,
		TotalAmount:   totals.Total,
		Notes:         req.Notes,
		InvoiceStatus: invoiceStatus,
		PaymentStatus: paymentStatus,
		ToBePaid:      flags.ToBePaid,
		Paid:          flags.Paid,
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		invoiceNo, err := NextDocumentNumber(tx, CounterInvoice)
		if err != nil {
			return err
		}
		invoice.InvoiceNo = invoiceNo

		if err := tx.Create(&invoice).Error; err != nil {
			return err
		}

		if req.EstimateID != nil {
			var estimate models.Estimate
			if err := tx.First(&estimate, *req.EstimateID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return NotFoundf("Linked cost estimate not found")
				}
				return err
			}
			forced := EstimateFlagsInvoiceReceived()
			return tx.Model(&estimate).Updates(map[string]interface{}{
				"ce_invoice_status": LinkReceived,
				"to_be_invoiced":    forced.ToBeInvoiced,
				"invoice":           forced.Invoice,
				"invoiced":          forced.Invoiced,
			}).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// CreateInvoiceFromEstimate copies an estimate's commercial terms into a new
// invoice and runs it through CreateInvoice, which also flips the estimate's
// invoice status.
func CreateInvoiceFromEstimate(ctx context.Context, db *gorm.DB, estimateID int, invoiceDate, dueDate string) (*models.Invoice, error) {
	estimate, err := GetEstimate(ctx, db, estimateID)
	if err != nil {
		return nil, err
	}

	req := models.InvoiceRequest{
		ClientID:      estimate.ClientID,
		ProjectID:     estimate.ProjectID,
		EstimateID:    &estimate.ID,
		InvoiceDate:   invoiceDate,
		DueDate:       dueDate,
		Currency:      estimate.Currency,
		VatRate:       estimate.VatRate,
		LineItems:     estimate.LineItems,
		Notes:         estimate.Notes,
		InvoiceStatus: "Active",
		PaymentStatus: "Unpaid",
	}
	return CreateInvoice(ctx, db, req)
}

// UpdateInvoice recomputes totals and payment flags.
func UpdateInvoice(ctx context.Context, db *gorm.DB, invoiceID int, req models.InvoiceRequest) (*models.Invoice, error) {
	if len(req.LineItems) == 0 || req.Currency == "" {
		return nil, Validationf("Required fields missing")
	}

	var invoice models.Invoice
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&invoice, invoiceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundf("Invoice not found")
			}
			return err
		}

		totals, err := ComputeLineItemTotals(req.LineItems, req.Currency, req.VatRate)
		if err != nil {
			return err
		}

		invoiceStatus := req.InvoiceStatus
		if invoiceStatus == "" {
			invoiceStatus = invoice.InvoiceStatus
		}
		paymentStatus := req.PaymentStatus
		if paymentStatus == "" {
			paymentStatus = invoice.PaymentStatus
		}
		flags := ComputeInvoiceFlags(invoiceStatus, paymentStatus)

		updates := map[string]interface{}{
			"currency":       req.Currency,
			"line_items":     totals.Items,
			"subtotal":       totals.Subtotal,
			"vat_rate":       req.VatRate,
			"vat_amount":     totals.VatAmount,
			"total_amount":   totals.Total,
			"notes":          req.Notes,
			"invoice_status": invoiceStatus,
			"payment_status": paymentStatus,
			"to_be_paid":     flags.ToBePaid,
			"paid":           flags.Paid,
		}
		if req.InvoiceDate != "" {
			updates["invoice_date"] = req.InvoiceDate
		}
		if req.DueDate != "" {
			updates["due_date"] = req.DueDate
		}
		if err := tx.Model(&invoice).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&invoice, invoiceID).Error
	})
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// DeleteInvoice removes an invoice. The linked estimate keeps its invoiced
// state; only purchase-order deletion rolls an estimate back.
func DeleteInvoice(ctx context.Context, db *gorm.DB, invoiceID int) error {
	res := db.WithContext(ctx).Delete(&models.Invoice{}, invoiceID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return NotFoundf("Invoice not found")
	}
	return nil
}

// GetInvoice loads one invoice.
func GetInvoice(ctx context.Context, db *gorm.DB, invoiceID int) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := db.WithContext(ctx).First(&invoice, invoiceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundf("Invoice not found")
		}
		return nil, err
	}
	return &invoice, nil
}

// ListInvoices returns all invoices, newest first.
func ListInvoices(ctx context.Context, db *gorm.DB) ([]models.Invoice, error) {
	var invoices []models.Invoice
	if err := db.WithContext(ctx).Order("id DESC").Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// ListInvoicesByProject returns a project's invoices, newest first.
func ListInvoicesByProject(ctx context.Context, db *gorm.DB, projectID int) ([]models.Invoice, error) {
	invoices := []models.Invoice{}
	if err := db.WithContext(ctx).Where("project_id = ?", projectID).Order("id DESC").Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// CreatePurchaseOrder inserts a purchase order and marks the linked
// estimate's PO side received, rederiving the invoice/invoiced flags from
// the estimate's current invoice status. One transaction covers both writes.
func CreatePurchaseOrder(ctx context.Context, db *gorm.DB, req models.PurchaseOrderRequest) (*models.PurchaseOrder, error) {
	if req.CostEstimationID == 0 {
		return nil, Validationf("Required fields missing")
	}

	po := models.PurchaseOrder{
		PoNumber:         req.PoNumber,
		CostEstimationID: req.CostEstimationID,
		ClientID:         req.ClientID,
		ProjectID:        req.ProjectID,
		PoAmount:         req.PoAmount,
		PoDate:           req.PoDate,
		PoDocument:       req.PoDocument,
		Notes:            req.Notes,
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var estimate models.Estimate
		if err := tx.First(&estimate, req.CostEstimationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundf("Linked cost estimate not found")
			}
			return err
		}

		if err := tx.Create(&po).Error; err != nil {
			return err
		}

		flags := EstimateFlagsOnPoCreate(estimate.CeInvoiceStatus)
		return tx.Model(&estimate).Updates(map[string]interface{}{
			"ce_po_status":   LinkReceived,
			"to_be_invoiced": flags.ToBeInvoiced,
			"invoice":        flags.Invoice,
			"invoiced":       flags.Invoiced,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &po, nil
}

// UpdatePurchaseOrder overwrites mutable PO fields. The estimate linkage is
// fixed at creation and cannot be repointed.
func UpdatePurchaseOrder(ctx context.Context, db *gorm.DB, poID int, req models.PurchaseOrderRequest) (*models.PurchaseOrder, error) {
	var po models.PurchaseOrder
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&po, poID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundf("Purchase order not found")
			}
			return err
		}

		if err := tx.Model(&po).Updates(map[string]interface{}{
			"po_number":   req.PoNumber,
			"po_amount":   req.PoAmount,
			"po_date":     req.PoDate,
			"po_document": req.PoDocument,
			"notes":       req.Notes,
		}).Error; err != nil {
			return err
		}
		return tx.First(&po, poID).Error
	})
	if err != nil {
		return nil, err
	}
	return &po, nil
}

// DeletePurchaseOrder removes a PO and unconditionally rolls the linked
// estimate back to the to-be-invoiced state, whatever its invoice status is
// at that moment. An estimate that was deleted in the meantime is tolerated.
func DeletePurchaseOrder(ctx context.Context, db *gorm.DB, poID int) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var po models.PurchaseOrder
		if err := tx.First(&po, poID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundf("Purchase order not found")
			}
			return err
		}

		if err := tx.Delete(&po).Error; err != nil {
			return err
		}

		flags := EstimateFlagsPoReset()
		return tx.Model(&models.Estimate{}).
			Where("id = ?", po.CostEstimationID).
			Updates(map[string]interface{}{
				"ce_po_status":   LinkPending,
				"to_be_invoiced": flags.ToBeInvoiced,
				"invoice":        flags.Invoice,
				"invoiced":       flags.Invoiced,
			}).Error
	})
}

// GetPurchaseOrder loads one purchase order.
func GetPurchaseOrder(ctx context.Context, db *gorm.DB, poID int) (*models.PurchaseOrder, error) {
	var po models.PurchaseOrder
	if err := db.WithContext(ctx).First(&po, poID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundf("Purchase order not found")
		}
		return nil, err
	}
	return &po, nil
}

// ListPurchaseOrders returns all purchase orders, newest first.
func ListPurchaseOrders(ctx context.Context, db *gorm.DB) ([]models.PurchaseOrder, error) {
	var pos []models.PurchaseOrder
	if err := db.WithContext(ctx).Order("id DESC").Find(&pos).Error; err != nil {
		return nil, err
	}
	return pos, nil
}

// ListPurchaseOrdersByProject returns a project's purchase orders, newest
// first.
func ListPurchaseOrdersByProject(ctx context.Context, db *gorm.DB, projectID int) ([]models.PurchaseOrder, error) {
	pos := []models.PurchaseOrder{}
	if err := db.WithContext(ctx).Where("project_id = ?", projectID).Order("id DESC").Find(&pos).Error; err != nil {
		return nil, err
	}
	return pos, nil
}
