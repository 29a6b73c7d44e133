package handlers

import (
	"net/http"
	"strconv"

	"printpack/models"
	"printpack/repository"
	"printpack/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateTimeLog godoc
// @Summary      Log time against a job, snapshotting its current assignment
// @Tags         timelogs
// @Accept       json
// @Produce      json
// @Param        body  body  models.TimeWorkLogRequest  true  "Time log payload"
// @Success      201  {object}  models.APIResponse
// @Failure      400  {object}  models.APIResponse
// @Router       /api/s1/timelogs [post]
func CreateTimeLog(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.TimeWorkLogRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
			return
		}

		ctx, cancel := utils.DefaultQueryContext(c.Request.Context())
		defer cancel()

		entry, err := repository.CreateTimeLog(ctx, db, req)
		if err != nil {
			repoError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Time log created", "data": entry})
	}
}

// UpdateTimeLog godoc
// @Summary      Update a time log's hours; snapshots stay frozen
// @Tags         timelogs
// @Accept       json
// @Produce      json
// @Param        id    path  int                        true  "Time log ID"
// @Param        body  body  models.TimeWorkLogRequest  true  "Time log payload"
// @Success      200  {object}  models.APIResponse
// @Failure      404  {object}  models.APIResponse
// @Router       /api/s1/timelogs/{id} [put]
func UpdateTimeLog(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		logID, ok := pathID(c, "id")
		if !ok {
			return
		}
		var req models.TimeWorkLogRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
			return
		}

		ctx, cancel := utils.DefaultQueryContext(c.Request.Context())
		defer cancel()

		entry, err := repository.UpdateTimeLog(ctx, db, logID, req)
		if err != nil {
			repoError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Time log updated", "data": entry})
	}
}

// DeleteTimeLog godoc
// @Summary      Delete a time log
// @Tags         timelogs
// @Produce      json
// @Param        id  path  int  true  "Time log ID"
// @Success      200  {object}  models.APIResponse
// @Failure      404  {object}  models.APIResponse
// @Router       /api/s1/timelogs/{id} [delete]
func DeleteTimeLog(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		logID, ok := pathID(c, "id")
		if !ok {
			return
		}

		ctx, cancel := utils.DefaultQueryContext(c.Request.Context())
		defer cancel()

		if err := repository.DeleteTimeLog(ctx, db, logID); err != nil {
			repoError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Time log deleted"})
	}
}

// GetTimeLog godoc
// @Summary      Get one time log
// @Tags         timelogs
// @Produce      json
// @Param        id  path  int  true  "Time log ID"
// @Success      200  {object}  models.APIResponse
// @Failure      404  {object}  models.APIResponse
// @Router       /api/s1/timelogs/{id} [get]
func GetTimeLog(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		logID, ok := pathID(c, "id")
		if !ok {
			return
		}

		ctx, cancel := utils.DefaultQueryContext(c.Request.Context())
		defer cancel()

		entry, err := repository.GetTimeLog(ctx, db, logID)
		if err != nil {
			repoError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": entry})
	}
}

// GetTimeLogs godoc
// @Summary      List time logs, optionally filtered by job
// @Tags         timelogs
// @Produce      json
// @Param        job_id  query  int  false  "Job ID filter"
// @Success      200  {object}  models.APIResponse
// @Router       /api/s1/timelogs [get]
func GetTimeLogs(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var jobID *int
		if raw := c.Query("job_id"); raw != "" {
			id, err := strconv.Atoi(raw)
			if err != nil || id <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid job_id"})
				return
			}
			jobID = &id
		}

		ctx, cancel := utils.DefaultQueryContext(c.Request.Context())
		defer cancel()

		entries, err := repository.ListTimeLogs(ctx, db, jobID)
		if err != nil {
			repoError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": entries})
	}
}
