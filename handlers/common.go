package handlers

import (
	"net/http"
	"strconv"

	"printpack/repository"

	"github.com/gin-gonic/gin"
)

// repoError maps a repository error to the API envelope.
func repoError(c *gin.Context, err error) {
	c.JSON(repository.StatusForError(err), gin.H{
		"success": false,
		"message": repository.UserMessage(err),
	})
}

// pathID parses a numeric path parameter, answering 400 itself on garbage.
func pathID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid " + name,
		})
		return 0, false
	}
	return id, true
}
