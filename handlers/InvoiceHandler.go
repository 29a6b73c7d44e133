package handlers

import (
	"net/http"

	"printpack/models"
	"printpack/repository"
	"printpack/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateInvoice godoc
// @Summary      Create an invoice, optionally linked to a cost estimate
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        body  body  models.InvoiceRequest  true  "Invoice payload"
// @Success      201  {object}  models.APIResponse
// @Failure      400  {object}  models.APIResponse
// @Failure      404  {object}  models.APIResponse
// @Router       /api/s1/invoices [post]
func CreateInvoice(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.InvoiceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
			return
		}

		ctx, cancel := utils.SlowQueryContext(c.Request.Context())
		defer cancel()

		invoice, err := repository.CreateInvoice(ctx, db, req)
		if err != nil {
			repoError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Invoice created", "data": invoice})
	}
}

// CreateInvoiceFromEstimate godoc
// @Summary      Create an invoice prefilled from a cost estimate
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        estimateId  path  int  true  "Estimate ID"
// @Success      201  {object}  models.APIResponse
// @Failure      404  {object}  models.APIResponse
// @Router       /api/s1/invoices/from-estimate/{estimateId} [post]
func CreateInvoiceFromEstimate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		estimateID, ok := pathID(c, "estimateId")
		if !ok {
			return
		}

		var body struct {
			InvoiceDate string `json:"invoice_date"`
			DueDate     string `json:"due_date"`
		}
		_ = c.ShouldBindJSON(&body)

		ctx, cancel := utils.SlowQueryContext(c.Request.Context())
		defer cancel()

		invoice, err := repository.CreateInvoiceFromEstimate(ctx, db, estimateID, body.InvoiceDate, body.DueDate)
		if err != nil {
			repoError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Invoice created from estimate", "data": invoice})
	}
}

// UpdateInvoice godoc
// @Summary      Update an invoice and recompute totals and payment flags
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id    path  int                    true  "Invoice ID"
// @Param        body  body  models.InvoiceRequest  true  "Invoice payload"
// @Success      200  {object}  models.APIResponse
// @Failure      404  {object}  models.APIResponse
// @Router       /api/s1/invoices/{id} [put]
func UpdateInvoice(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		invoiceID, ok := pathID(c, "id")
		if !ok {
			return
		}
		var req models.InvoiceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
			return
		}

		ctx, cancel := utils.DefaultQueryContext(c.Request.Context())
		defer cancel()

		invoice, err := repository.UpdateInvoice(ctx, db, invoiceID, req)
		if err != nil {
			repoError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Invoice updated", "data": invoice})
	}
}

// DeleteInvoice godoc
// @Summary      Delete an invoice
// @Tags         invoices
// @Produce      json
// @Param        id  path  int  true  "Invoice ID"
// @Success      200  {object}  models.APIResponse
// @Failure      404  {object}  models.APIResponse
// @Router       /api/s1/invoices/{id} [delete]
func DeleteInvoice(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		invoiceID, ok := pathID(c, "id")
		if !ok {
			return
		}

		ctx, cancel := utils.DefaultQueryContext(c.Request.Context())
		defer cancel()

		if err := repository.DeleteInvoice(ctx, db, invoiceID); err != nil {
			repoError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Invoice deleted"})
	}
}

// GetInvoice godoc
// @Summary      Get one invoice
// @Tags         invoices
// @Produce      json
// @Param        id  path  int  true  "Invoice ID"
// @Success      200  {object}  models.APIResponse
// @Failure      404  {object}  models.APIResponse
// @Router       /api/s1/invoices/{id} [get]
func GetInvoice(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		invoiceID, ok := pathID(c, "id")
		if !ok {
			return
		}

		ctx, cancel := utils.DefaultQueryContext(c.Request.Context())
		defer cancel()

		invoice, err := repository.GetInvoice(ctx, db, invoiceID)
		if err != nil {
			repoError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": invoice})
	}
}

// GetInvoices godoc
// @Summary      List all invoices
// @Tags         invoices
// @Produce      json
// @Success      200  {object}  models.APIResponse
// @Router       /api/s1/invoices [get]
func GetInvoices(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := utils.DefaultQueryContext(c.Request.Context())
		defer cancel()

		invoices, err := repository.ListInvoices(ctx, db)
		if err != nil {
			repoError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": invoices})
	}
}

// GetInvoicesByProject godoc
// @Summary      List a project's invoices
// @Tags         invoices
// @Produce      json
// @Param        project_id  path  int  true  "Project ID"
// @Success      200  {object}  models.APIResponse
// @Router       /api/s1/invoices/project/{project_id} [get]
func GetInvoicesByProject(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, ok := pathID(c, "project_id")
		if !ok {
			return
		}

		ctx, cancel := utils.DefaultQueryContext(c.Request.Context())
		defer cancel()

		invoices, err := repository.ListInvoicesByProject(ctx, db, projectID)
		if err != nil {
			repoError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "count": len(invoices), "data": invoices})
	}
}
