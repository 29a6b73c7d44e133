package handlers

import (
	"net/http"

	"printpack/models"
	"printpack/repository"
	"printpack/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreatePurchaseOrder godoc
// @Summary      Create a purchase order against a cost estimate
// @Tags         purchaseorders
// @Accept       json
// @Produce      json
// @Param        body  body  models.PurchaseOrderRequest  true  "Purchase order payload"
// @Success      201  {object}  models.APIResponse
// @Failure      400  {object}  models.APIResponse
// @Failure      404  {object}  models.APIResponse
// @Router       /api/s1/purchaseorders [post]
func CreatePurchaseOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.PurchaseOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
			return
		}

		ctx, cancel := utils.SlowQueryContext(c.Request.Context())
		defer cancel()

		po, err := repository.CreatePurchaseOrder(ctx, db, req)
		if err != nil {
			repoError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Purchase order created", "data": po})
	}
}

// UpdatePurchaseOrder godoc
// @Summary      Update a purchase order's mutable fields
// @Tags         purchaseorders
// @Accept       json
// @Produce      json
// @Param        id    path  int                          true  "Purchase order ID"
// @Param        body  body  models.PurchaseOrderRequest  true  "Purchase order payload"
// @Success      200  {object}  models.APIResponse
// @Failure      404  {object}  models.APIResponse
// @Router       /api/s1/purchaseorders/{id} [put]
func UpdatePurchaseOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		poID, ok := pathID(c, "id")
		if !ok {
			return
		}
		var req models.PurchaseOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
			return
		}

		ctx, cancel := utils.DefaultQueryContext(c.Request.Context())
		defer cancel()

		po, err := repository.UpdatePurchaseOrder(ctx, db, poID, req)
		if err != nil {
			repoError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Purchase order updated", "data": po})
	}
}

// DeletePurchaseOrder godoc
// @Summary      Delete a purchase order and roll the estimate back
// @Tags         purchaseorders
// @Produce      json
// @Param        id  path  int  true  "Purchase order ID"
// @Success      200  {object}  models.APIResponse
// @Failure      404  {object}  models.APIResponse
// @Router       /api/s1/purchaseorders/{id} [delete]
func DeletePurchaseOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		poID, ok := pathID(c, "id")
		if !ok {
			return
		}

		ctx, cancel := utils.SlowQueryContext(c.Request.Context())
		defer cancel()

		if err := repository.DeletePurchaseOrder(ctx, db, poID); err != nil {
			repoError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Purchase order deleted"})
	}
}

// GetPurchaseOrder godoc
// @Summary      Get one purchase order
// @Tags         purchaseorders
// @Produce      json
// @Param        id  path  int  true  "Purchase order ID"
// @Success      200  {object}  models.APIResponse
// @Failure      404  {object}  models.APIResponse
// @Router       /api/s1/purchaseorders/{id} [get]
func GetPurchaseOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		poID, ok := pathID(c, "id")
		if !ok {
			return
		}

		ctx, cancel := utils.DefaultQueryContext(c.Request.Context())
		defer cancel()

		po, err := repository.GetPurchaseOrder(ctx, db, poID)
		if err != nil {
			repoError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": po})
	}
}

// GetPurchaseOrders godoc
// @Summary      List all purchase orders
// @Tags         purchaseorders
// @Produce      json
// @Success      200  {object}  models.APIResponse
// @Router       /api/s1/purchaseorders [get]
func GetPurchaseOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := utils.DefaultQueryContext(c.Request.Context())
		defer cancel()

		pos, err := repository.ListPurchaseOrders(ctx, db)
		if err != nil {
			repoError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": pos})
	}
}

// GetPurchaseOrdersByProject godoc
// @Summary      List a project's purchase orders
// @Tags         purchaseorders
// @Produce      json
// @Param        project_id  path  int  true  "Project ID"
// @Success      200  {object}  models.APIResponse
// @Router       /api/s1/purchaseorders/project/{project_id} [get]
func GetPurchaseOrdersByProject(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, ok := pathID(c, "project_id")
		if !ok {
			return
		}

		ctx, cancel := utils.DefaultQueryContext(c.Request.Context())
		defer cancel()

		pos, err := repository.ListPurchaseOrdersByProject(ctx, db, projectID)
		if err != nil {
			repoError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "count": len(pos), "data": pos})
	}
}
