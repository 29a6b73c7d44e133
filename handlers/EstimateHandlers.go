package handlers

import (
	"net/http"

	"printpack/models"
	"printpack/repository"
	"printpack/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateEstimate godoc
// @Summary      Create a cost estimate
// @Tags         costestimates
// @Accept       json
// @Produce      json
// @Param        body  body  models.EstimateRequest  true  "Estimate payload"
// @Success      201  {object}  models.APIResponse
// @Failure      400  {object}  models.APIResponse
// @Router       /api/s1/costestimates [post]
func CreateEstimate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.EstimateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
			return
		}

		ctx, cancel := utils.DefaultQueryContext(c.Request.Context())
		defer cancel()

		estimate, err := repository.CreateEstimate(ctx, db, req)
		if err != nil {
			repoError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Cost estimate created", "data": estimate})
	}
}

// UpdateEstimate godoc
// @Summary      Update a cost estimate and recompute totals and flags
// @Tags         costestimates
// @Accept       json
// @Produce      json
// @Param        id    path  int                     true  "Estimate ID"
// @Param        body  body  models.EstimateRequest  true  "Estimate payload"
// @Success      200  {object}  models.APIResponse
// @Failure      404  {object}  models.APIResponse
// @Router       /api/s1/costestimates/{id} [put]
func UpdateEstimate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		estimateID, ok := pathID(c, "id")
		if !ok {
			return
		}
		var req models.EstimateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
			return
		}

		ctx, cancel := utils.DefaultQueryContext(c.Request.Context())
		defer cancel()

		estimate, err := repository.UpdateEstimate(ctx, db, estimateID, req)
		if err != nil {
			repoError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cost estimate updated", "data": estimate})
	}
}

// DeleteEstimate godoc
// @Summary      Delete a cost estimate and its purchase orders
// @Tags         costestimates
// @Produce      json
// @Param        id  path  int  true  "Estimate ID"
// @Success      200  {object}  models.APIResponse
// @Failure      404  {object}  models.APIResponse
// @Router       /api/s1/costestimates/{id} [delete]
func DeleteEstimate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		estimateID, ok := pathID(c, "id")
		if !ok {
			return
		}

		ctx, cancel := utils.SlowQueryContext(c.Request.Context())
		defer cancel()

		if err := repository.DeleteEstimate(ctx, db, estimateID); err != nil {
			repoError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cost estimate deleted"})
	}
}

// GetEstimate godoc
// @Summary      Get one cost estimate
// @Tags         costestimates
// @Produce      json
// @Param        id  path  int  true  "Estimate ID"
// @Success      200  {object}  models.APIResponse
// @Failure      404  {object}  models.APIResponse
// @Router       /api/s1/costestimates/{id} [get]
func GetEstimate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		estimateID, ok := pathID(c, "id")
		if !ok {
			return
		}

		ctx, cancel := utils.DefaultQueryContext(c.Request.Context())
		defer cancel()

		estimate, err := repository.GetEstimate(ctx, db, estimateID)
		if err != nil {
			repoError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": estimate})
	}
}

// GetEstimates godoc
// @Summary      List all cost estimates
// @Tags         costestimates
// @Produce      json
// @Success      200  {object}  models.APIResponse
// @Router       /api/s1/costestimates [get]
func GetEstimates(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := utils.DefaultQueryContext(c.Request.Context())
		defer cancel()

		estimates, err := repository.ListEstimates(ctx, db)
		if err != nil {
			repoError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": estimates})
	}
}

// GetEstimatesByProject godoc
// @Summary      List a project's cost estimates
// @Tags         costestimates
// @Produce      json
// @Param        project_id  path  int  true  "Project ID"
// @Success      200  {object}  models.APIResponse
// @Router       /api/s1/costestimates/project/{project_id} [get]
func GetEstimatesByProject(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, ok := pathID(c, "project_id")
		if !ok {
			return
		}

		ctx, cancel := utils.DefaultQueryContext(c.Request.Context())
		defer cancel()

		estimates, err := repository.ListEstimatesByProject(ctx, db, projectID)
		if err != nil {
			repoError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "count": len(estimates), "data": estimates})
	}
}
