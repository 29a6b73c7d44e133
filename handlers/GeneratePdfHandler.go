package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"printpack/models"
	"printpack/utils"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"gorm.io/gorm"
)

// GenerateInvoicePDF godoc
// @Summary      Render an invoice as a PDF document
// @Tags         invoices
// @Produce      application/pdf
// @Param        id  path  int  true  "Invoice ID"
// @Success      200  {file}  file
// @Failure      404  {object}  models.APIResponse
// @Router       /api/s1/invoices/{id}/pdf [get]
func GenerateInvoicePDF(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		invoiceID, ok := pathID(c, "id")
		if !ok {
			return
		}

		ctx, cancel := utils.SlowQueryContext(c.Request.Context())
		defer cancel()

		data, err := loadInvoicePDFData(db.WithContext(ctx), invoiceID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Invoice not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
			return
		}

		pdf := buildInvoicePDF(data)

		c.Header("Content-Type", "application/pdf")
		c.Header("Content-Disposition",
			fmt.Sprintf(`inline; filename="invoice-%d.pdf"`, data.Invoice.InvoiceNo))
		if err := pdf.Output(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to render PDF"})
		}
	}
}

func loadInvoicePDFData(db *gorm.DB, invoiceID int) (*models.InvoicePDFData, error) {
	var data models.InvoicePDFData
	if err := db.First(&data.Invoice, invoiceID).Error; err != nil {
		return nil, err
	}
	if err := db.First(&data.Client, data.Invoice.ClientID).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	// A missing company profile only blanks the letterhead.
	if err := db.First(&data.Company).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if data.Invoice.ProjectID != nil {
		var project models.Project
		if err := db.First(&project, *data.Invoice.ProjectID).Error; err == nil {
			data.ProjectName = project.ProjectName
		}
	}
	return &data, nil
}

func buildInvoicePDF(data *models.InvoicePDFData) *gofpdf.Fpdf {
	inv := data.Invoice

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	// Letterhead
	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(120, 10, data.Company.CompanyName)
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(60, 10, "INVOICE", "", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 9)
	for _, line := range []string{data.Company.Address, data.Company.Email, data.Company.PhoneNo} {
		if line != "" {
			pdf.CellFormat(0, 4.5, line, "", 1, "L", false, 0, "")
		}
	}
	if data.Company.TaxNumber != "" {
		pdf.CellFormat(0, 4.5, "Tax No: "+data.Company.TaxNumber, "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	// Billing block and invoice metadata side by side
	topY := pdf.GetY()
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(95, 5, "Bill To:", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(95, 4.5, data.Client.ClientName, "", 1, "L", false, 0, "")
	for _, line := range []string{data.Client.ContactName, data.Client.Address, data.Client.City, data.Client.Country} {
		if line != "" {
			pdf.CellFormat(95, 4.5, line, "", 1, "L", false, 0, "")
		}
	}
	if data.Client.TaxNumber != "" {
		pdf.CellFormat(95, 4.5, "Tax No: "+data.Client.TaxNumber, "", 1, "L", false, 0, "")
	}
	leftBottom := pdf.GetY()

	pdf.SetXY(110, topY)
	pdf.SetFont("Arial", "", 9)
	meta := [][2]string{
		{"Invoice No:", strconv.Itoa(inv.InvoiceNo)},
		{"Invoice Date:", inv.InvoiceDate},
		{"Due Date:", inv.DueDate},
		{"Status:", titleCaser.String(strings.ToLower(inv.PaymentStatus))},
	}
	if data.ProjectName != "" {
		meta = append(meta, [2]string{"Project:", data.ProjectName})
	}
	for _, row := range meta {
		pdf.SetX(110)
		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(30, 4.5, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		pdf.CellFormat(55, 4.5, row[1], "", 1, "L", false, 0, "")
	}
	if pdf.GetY() < leftBottom {
		pdf.SetY(leftBottom)
	}
	pdf.Ln(8)

	// Line item table
	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(235, 235, 235)
	pdf.CellFormat(90, 7, "Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 7, "Qty", "1", 0, "R", true, 0, "")
	pdf.CellFormat(30, 7, "Rate", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 7, "Amount", "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 9)
	for _, item := range inv.LineItems {
		pdf.CellFormat(90, 6, item.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, item.Quantity.Raw, "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, item.Rate.Raw, "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, formatAmount(item.Amount, inv.Currency), "1", 1, "R", false, 0, "")
	}

	// Totals
	pdf.Ln(2)
	totals := [][2]string{
		{"Subtotal", formatAmount(inv.Subtotal, inv.Currency)},
		{fmt.Sprintf("VAT (%.1f%%)", inv.VatRate), formatAmount(inv.VatAmount, inv.Currency)},
	}
	pdf.SetFont("Arial", "", 9)
	for _, row := range totals {
		pdf.CellFormat(145, 6, row[0], "", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, row[1], "", 1, "R", false, 0, "")
	}
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(145, 7, "Total", "T", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, formatAmount(inv.TotalAmount, inv.Currency), "T", 1, "R", false, 0, "")

	if inv.Notes != "" {
		pdf.Ln(8)
		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(0, 5, "Notes", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		pdf.MultiCell(0, 4.5, inv.Notes, "", "L", false)
	}

	if data.Company.BankName != "" || data.Company.BankIBAN != "" {
		pdf.Ln(8)
		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(0, 5, "Payment Details", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		for _, row := range [][2]string{
			{"Bank", data.Company.BankName},
			{"Account", data.Company.BankAccount},
			{"IBAN", data.Company.BankIBAN},
		} {
			if row[1] != "" {
				pdf.CellFormat(0, 4.5, row[0]+": "+row[1], "", 1, "L", false, 0, "")
			}
		}
	}

	return pdf
}

func formatAmount(v float64, currency string) string {
	return fmt.Sprintf("%s %.2f", currency, v)
}
