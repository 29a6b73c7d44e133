package handlers

import (
	"context"
	"net/http"
	"strconv"

	"printpack/models"
	"printpack/repository"
	"printpack/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateAssignJob godoc
// @Summary      Assign jobs to a production user and/or employee
// @Tags         assignjobs
// @Accept       json
// @Produce      json
// @Param        body  body  models.CreateAssignJobRequest  true  "Assignment payload"
// @Success      201  {object}  models.APIResponse
// @Failure      400  {object}  models.APIResponse
// @Router       /api/s1/assignjobs [post]
func CreateAssignJob(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CreateAssignJobRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
			return
		}

		ctx, cancel := utils.SlowQueryContext(c.Request.Context())
		defer cancel()

		assign, err := repository.CreateAssignment(ctx, db, req)
		if err != nil {
			repoError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "Jobs assigned successfully",
			"data":    gin.H{"assignment_id": assign.ID},
		})
	}
}

// ProductionAssignToEmployee godoc
// @Summary      Hand a batch of assignments from production to an employee
// @Tags         assignjobs
// @Accept       json
// @Produce      json
// @Param        body  body  models.ProductionAssignRequest  true  "Batch payload"
// @Success      200  {object}  models.APIResponse
// @Failure      400  {object}  models.APIResponse
// @Router       /api/s1/assignjobs/production-assign [put]
func ProductionAssignToEmployee(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ProductionAssignRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
			return
		}

		ctx, cancel := utils.SlowQueryContext(c.Request.Context())
		defer cancel()

		if err := repository.AssignToEmployee(ctx, db, req.AssignJobIDs, req.EmployeeID); err != nil {
			repoError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Jobs assigned to employee"})
	}
}

// EmployeeCompleteJob godoc
// @Summary      Employee completes one job of an assignment
// @Tags         assignjobs
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "Assign job ID"
// @Param        body  body  models.EmployeeJobActionRequest  true  "Job reference"
// @Success      200  {object}  models.APIResponse
// @Failure      404  {object}  models.APIResponse
// @Router       /api/s1/assignjobs/employee-complete/{id} [put]
func EmployeeCompleteJob(db *gorm.DB) gin.HandlerFunc {
	return employeeJobAction(db, repository.EmployeeComplete, "Job completed")
}

// EmployeeRejectJob godoc
// @Summary      Employee rejects one job of an assignment
// @Tags         assignjobs
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "Assign job ID"
// @Param        body  body  models.EmployeeJobActionRequest  true  "Job reference"
// @Success      200  {object}  models.APIResponse
// @Failure      404  {object}  models.APIResponse
// @Router       /api/s1/assignjobs/employee-reject/{id} [put]
func EmployeeRejectJob(db *gorm.DB) gin.HandlerFunc {
	return employeeJobAction(db, repository.EmployeeReject, "Job rejected")
}

func employeeJobAction(db *gorm.DB, action func(ctx context.Context, db *gorm.DB, assignJobID, jobID int) error, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		assignJobID, ok := pathID(c, "id")
		if !ok {
			return
		}
		var req models.EmployeeJobActionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
			return
		}

		ctx, cancel := utils.SlowQueryContext(c.Request.Context())
		defer cancel()

		if err := action(ctx, db, assignJobID, req.JobID); err != nil {
			repoError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
	}
}

// ProductionCompleteJob godoc
// @Summary      Production closes its side of an assignment
// @Tags         assignjobs
// @Produce      json
// @Param        id  path  int  true  "Assign job ID"
// @Success      200  {object}  models.APIResponse
// @Failure      404  {object}  models.APIResponse
// @Router       /api/s1/assignjobs/production-complete/{id} [put]
func ProductionCompleteJob(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		assignJobID, ok := pathID(c, "id")
		if !ok {
			return
		}

		ctx, cancel := utils.SlowQueryContext(c.Request.Context())
		defer cancel()

		if err := repository.ProductionComplete(ctx, db, assignJobID); err != nil {
			repoError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Assignment completed"})
	}
}

// ProductionReturnJob godoc
// @Summary      Production returns a batch of assignments
// @Tags         assignjobs
// @Accept       json
// @Produce      json
// @Param        id    path  int  false  "Assign job ID fallback when the body list is empty"
// @Param        body  body  models.BatchAssignActionRequest  false  "Batch payload"
// @Success      200  {object}  models.APIResponse
// @Failure      400  {object}  models.APIResponse
// @Router       /api/s1/assignjobs/production-return/{id} [put]
func ProductionReturnJob(db *gorm.DB) gin.HandlerFunc {
	return productionBatchAction(db, repository.ProductionReturn, "Assignments returned")
}

// ProductionRejectJob godoc
// @Summary      Production rejects a batch of assignments
// @Tags         assignjobs
// @Accept       json
// @Produce      json
// @Param        id    path  int  false  "Assign job ID fallback when the body list is empty"
// @Param        body  body  models.BatchAssignActionRequest  false  "Batch payload"
// @Success      200  {object}  models.APIResponse
// @Failure      400  {object}  models.APIResponse
// @Router       /api/s1/assignjobs/production-reject/{id} [put]
func ProductionRejectJob(db *gorm.DB) gin.HandlerFunc {
	return productionBatchAction(db, repository.ProductionReject, "Assignments rejected")
}

func productionBatchAction(db *gorm.DB, action func(ctx context.Context, db *gorm.DB, ids []int) error, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.BatchAssignActionRequest
		// Body is optional: a bare path-param call is a single-row batch.
		_ = c.ShouldBindJSON(&req)

		ids := req.AssignJobIDs
		if len(ids) == 0 {
			if id, err := strconv.Atoi(c.Param("id")); err == nil && id > 0 {
				ids = []int{id}
			}
		}

		ctx, cancel := utils.SlowQueryContext(c.Request.Context())
		defer cancel()

		if err := action(ctx, db, ids); err != nil {
			repoError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
	}
}

// DeleteAssignJob godoc
// @Summary      Delete an assignment
// @Tags         assignjobs
// @Produce      json
// @Param        id  path  int  true  "Assign job ID"
// @Success      200  {object}  models.APIResponse
// @Failure      404  {object}  models.APIResponse
// @Router       /api/s1/assignjobs/{id} [delete]
func DeleteAssignJob(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		assignJobID, ok := pathID(c, "id")
		if !ok {
			return
		}

		ctx, cancel := utils.DefaultQueryContext(c.Request.Context())
		defer cancel()

		if err := repository.DeleteAssignment(ctx, db, assignJobID); err != nil {
			repoError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Assignment deleted"})
	}
}

// GetAssignJobs godoc
// @Summary      List assignments with expanded job membership
// @Tags         assignjobs
// @Produce      json
// @Success      200  {object}  models.APIResponse
// @Router       /api/s1/assignjobs [get]
func GetAssignJobs(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := utils.DefaultQueryContext(c.Request.Context())
		defer cancel()

		assignments, err := repository.ListAssignments(ctx, db)
		if err != nil {
			repoError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": assignments})
	}
}

// GetAssignJobsByEmployee godoc
// @Summary      List one employee's assignments
// @Tags         assignjobs
// @Produce      json
// @Param        employee_id  path  int  true  "Employee ID"
// @Success      200  {object}  models.APIResponse
// @Router       /api/s1/assignjobs/employee/{employee_id} [get]
func GetAssignJobsByEmployee(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		employeeID, ok := pathID(c, "employee_id")
		if !ok {
			return
		}

		ctx, cancel := utils.DefaultQueryContext(c.Request.Context())
		defer cancel()

		assignments, err := repository.ListAssignmentsByEmployee(ctx, db, employeeID)
		if err != nil {
			repoError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": assignments})
	}
}

// GetAssignJobsByProduction godoc
// @Summary      List one production user's assignments
// @Tags         assignjobs
// @Produce      json
// @Param        production_id  path  int  true  "Production ID"
// @Success      200  {object}  models.APIResponse
// @Router       /api/s1/assignjobs/production/{production_id} [get]
func GetAssignJobsByProduction(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		productionID, ok := pathID(c, "production_id")
		if !ok {
			return
		}

		ctx, cancel := utils.DefaultQueryContext(c.Request.Context())
		defer cancel()

		assignments, err := repository.ListAssignmentsByProduction(ctx, db, productionID)
		if err != nil {
			repoError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": assignments})
	}
}

// GetProductionJobsInProgress godoc
// @Summary      In-progress worklist for one production user
// @Tags         assignjobs
// @Produce      json
// @Param        production_id  path  int  true  "Production ID"
// @Success      200  {object}  models.APIResponse
// @Router       /api/s1/assignjobs/production/{production_id}/in-progress [get]
func GetProductionJobsInProgress(db *gorm.DB) gin.HandlerFunc {
	return productionWorklist(db, repository.StatusInProgress)
}

// GetProductionJobsComplete godoc
// @Summary      Completed worklist for one production user
// @Tags         assignjobs
// @Produce      json
// @Param        production_id  path  int  true  "Production ID"
// @Success      200  {object}  models.APIResponse
// @Router       /api/s1/assignjobs/production/{production_id}/complete [get]
func GetProductionJobsComplete(db *gorm.DB) gin.HandlerFunc {
	return productionWorklist(db, repository.StatusComplete)
}

// GetProductionJobsRejected godoc
// @Summary      Rejected worklist for one production user
// @Tags         assignjobs
// @Produce      json
// @Param        production_id  path  int  true  "Production ID"
// @Success      200  {object}  models.APIResponse
// @Router       /api/s1/assignjobs/production/{production_id}/reject [get]
func GetProductionJobsRejected(db *gorm.DB) gin.HandlerFunc {
	return productionWorklist(db, repository.StatusReject)
}

func productionWorklist(db *gorm.DB, status string) gin.HandlerFunc {
	return func(c *gin.Context) {
		productionID, ok := pathID(c, "production_id")
		if !ok {
			return
		}

		ctx, cancel := utils.DefaultQueryContext(c.Request.Context())
		defer cancel()

		rows, err := repository.ListProductionJobsByStatus(ctx, db, productionID, status)
		if err != nil {
			repoError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "count": len(rows), "data": rows})
	}
}
