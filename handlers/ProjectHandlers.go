package handlers

import (
	"net/http"

	"printpack/models"
	"printpack/repository"
	"printpack/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateProject godoc
// @Summary      Create a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        body  body  models.Project  true  "Project payload"
// @Success      201  {object}  models.APIResponse
// @Failure      400  {object}  models.APIResponse
// @Router       /api/s1/projects [post]
func CreateProject(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var project models.Project
		if err := c.ShouldBindJSON(&project); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
			return
		}

		ctx, cancel := utils.DefaultQueryContext(c.Request.Context())
		defer cancel()

		if err := repository.CreateProject(ctx, db, &project); err != nil {
			repoError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Project created", "data": project})
	}
}

// UpdateProject godoc
// @Summary      Update a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        id    path  int             true  "Project ID"
// @Param        body  body  models.Project  true  "Project payload"
// @Success      200  {object}  models.APIResponse
// @Failure      404  {object}  models.APIResponse
// @Router       /api/s1/projects/{id} [put]
func UpdateProject(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, ok := pathID(c, "id")
		if !ok {
			return
		}
		var project models.Project
		if err := c.ShouldBindJSON(&project); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
			return
		}

		ctx, cancel := utils.DefaultQueryContext(c.Request.Context())
		defer cancel()

		updated, err := repository.UpdateProject(ctx, db, projectID, &project)
		if err != nil {
			repoError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Project updated", "data": updated})
	}
}

// DeleteProject godoc
// @Summary      Delete a project and everything under it
// @Tags         projects
// @Produce      json
// @Param        id  path  int  true  "Project ID"
// @Success      200  {object}  models.APIResponse
// @Failure      404  {object}  models.APIResponse
// @Router       /api/s1/projects/{id} [delete]
func DeleteProject(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, ok := pathID(c, "id")
		if !ok {
			return
		}

		ctx, cancel := utils.SlowQueryContext(c.Request.Context())
		defer cancel()

		if err := repository.DeleteProject(ctx, db, projectID); err != nil {
			repoError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Project deleted"})
	}
}

// GetProject godoc
// @Summary      Get one project
// @Tags         projects
// @Produce      json
// @Param        id  path  int  true  "Project ID"
// @Success      200  {object}  models.APIResponse
// @Failure      404  {object}  models.APIResponse
// @Router       /api/s1/projects/{id} [get]
func GetProject(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, ok := pathID(c, "id")
		if !ok {
			return
		}

		ctx, cancel := utils.DefaultQueryContext(c.Request.Context())
		defer cancel()

		project, err := repository.GetProject(ctx, db, projectID)
		if err != nil {
			repoError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": project})
	}
}

// GetProjects godoc
// @Summary      List all projects
// @Tags         projects
// @Produce      json
// @Success      200  {object}  models.APIResponse
// @Router       /api/s1/projects [get]
func GetProjects(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := utils.DefaultQueryContext(c.Request.Context())
		defer cancel()

		projects, err := repository.ListProjects(ctx, db, "")
		if err != nil {
			repoError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": projects})
	}
}

// GetProjectsByStatus godoc
// @Summary      List projects filtered by status
// @Tags         projects
// @Produce      json
// @Param        status  path  string  true  "Project status"
// @Success      200  {object}  models.APIResponse
// @Router       /api/s1/projects/status/{status} [get]
func GetProjectsByStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := c.Param("status")
		if status == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid status"})
			return
		}

		ctx, cancel := utils.DefaultQueryContext(c.Request.Context())
		defer cancel()

		projects, err := repository.ListProjects(ctx, db, status)
		if err != nil {
			repoError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": projects})
	}
}
