package handlers

import (
	"net/http"

	"printpack/models"
	"printpack/repository"
	"printpack/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateJob godoc
// @Summary      Create a job under a project
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        body  body  models.Job  true  "Job payload"
// @Success      201  {object}  models.APIResponse
// @Failure      400  {object}  models.APIResponse
// @Failure      404  {object}  models.APIResponse
// @Router       /api/s1/jobs [post]
func CreateJob(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var job models.Job
		if err := c.ShouldBindJSON(&job); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
			return
		}

		ctx, cancel := utils.DefaultQueryContext(c.Request.Context())
		defer cancel()

		if err := repository.CreateJob(ctx, db, &job); err != nil {
			repoError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Job created", "data": job})
	}
}

// UpdateJob godoc
// @Summary      Update a job's descriptive fields
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id    path  int         true  "Job ID"
// @Param        body  body  models.Job  true  "Job payload"
// @Success      200  {object}  models.APIResponse
// @Failure      404  {object}  models.APIResponse
// @Router       /api/s1/jobs/{id} [put]
func UpdateJob(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		jobID, ok := pathID(c, "id")
		if !ok {
			return
		}
		var job models.Job
		if err := c.ShouldBindJSON(&job); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
			return
		}

		ctx, cancel := utils.DefaultQueryContext(c.Request.Context())
		defer cancel()

		updated, err := repository.UpdateJob(ctx, db, jobID, &job)
		if err != nil {
			repoError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Job updated", "data": updated})
	}
}

// DeleteJob godoc
// @Summary      Delete a job with its time logs and assignment references
// @Tags         jobs
// @Produce      json
// @Param        id  path  int  true  "Job ID"
// @Success      200  {object}  models.APIResponse
// @Failure      404  {object}  models.APIResponse
// @Router       /api/s1/jobs/{id} [delete]
func DeleteJob(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		jobID, ok := pathID(c, "id")
		if !ok {
			return
		}

		ctx, cancel := utils.SlowQueryContext(c.Request.Context())
		defer cancel()

		if err := repository.DeleteJob(ctx, db, jobID); err != nil {
			repoError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Job deleted"})
	}
}

// GetJob godoc
// @Summary      Get one job
// @Tags         jobs
// @Produce      json
// @Param        id  path  int  true  "Job ID"
// @Success      200  {object}  models.APIResponse
// @Failure      404  {object}  models.APIResponse
// @Router       /api/s1/jobs/{id} [get]
func GetJob(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		jobID, ok := pathID(c, "id")
		if !ok {
			return
		}

		ctx, cancel := utils.DefaultQueryContext(c.Request.Context())
		defer cancel()

		job, err := repository.GetJob(ctx, db, jobID)
		if err != nil {
			repoError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": job})
	}
}

// GetJobs godoc
// @Summary      List all jobs
// @Tags         jobs
// @Produce      json
// @Success      200  {object}  models.APIResponse
// @Router       /api/s1/jobs [get]
func GetJobs(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := utils.DefaultQueryContext(c.Request.Context())
		defer cancel()

		jobs, err := repository.ListJobs(ctx, db)
		if err != nil {
			repoError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": jobs})
	}
}

// GetJobsByProject godoc
// @Summary      List a project's jobs with their latest assignment details
// @Tags         jobs
// @Produce      json
// @Param        project_id  path  int  true  "Project ID"
// @Success      200  {object}  models.APIResponse
// @Router       /api/s1/jobs/project/{project_id} [get]
func GetJobsByProject(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, ok := pathID(c, "project_id")
		if !ok {
			return
		}

		ctx, cancel := utils.DefaultQueryContext(c.Request.Context())
		defer cancel()

		jobs, err := repository.ListJobsByProject(ctx, db, projectID)
		if err != nil {
			repoError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": jobs})
	}
}

// GetJobHistoryByProduction godoc
// @Summary      Job history for one production user
// @Tags         jobs
// @Produce      json
// @Param        production_id  path  int  true  "Production ID"
// @Success      200  {object}  models.APIResponse
// @Router       /api/s1/jobs/history/production/{production_id} [get]
func GetJobHistoryByProduction(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		productionID, ok := pathID(c, "production_id")
		if !ok {
			return
		}

		ctx, cancel := utils.DefaultQueryContext(c.Request.Context())
		defer cancel()

		rows, err := repository.JobHistoryByProduction(ctx, db, productionID)
		if err != nil {
			repoError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": rows})
	}
}

// GetJobHistoryByEmployee godoc
// @Summary      Job history for one employee
// @Tags         jobs
// @Produce      json
// @Param        employee_id  path  int  true  "Employee ID"
// @Success      200  {object}  models.APIResponse
// @Router       /api/s1/jobs/history/employee/{employee_id} [get]
func GetJobHistoryByEmployee(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		employeeID, ok := pathID(c, "employee_id")
		if !ok {
			return
		}

		ctx, cancel := utils.DefaultQueryContext(c.Request.Context())
		defer cancel()

		rows, err := repository.JobHistoryByEmployee(ctx, db, employeeID)
		if err != nil {
			repoError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": rows})
	}
}
