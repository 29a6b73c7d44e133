package handlers

import (
	"database/sql"
	"net/http"
	"strings"

	"printpack/storage"
	"printpack/utils"

	"github.com/gin-gonic/gin"
)

// AuthRequired verifies the Authorization bearer token, resolves its session
// and stores the user on the context for downstream handlers.
func AuthRequired(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Missing bearer token"})
			return
		}

		token, err := utils.ValidateJWT(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid or expired token"})
			return
		}

		sessionID, err := utils.SessionIDFromToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid token claims"})
			return
		}

		user, err := storage.GetUserBySessionID(db, sessionID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Session expired, please log in again"})
			return
		}

		c.Set("user", user)
		c.Set("session_id", sessionID)
		c.Next()
	}
}

// ValidateSession godoc
// @Summary      Check whether the current token is still valid
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  models.APIResponse
// @Failure      401  {object}  models.APIResponse
// @Router       /api/s1/validate-session [get]
func ValidateSession(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := c.Get("user")
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Session valid", "data": user})
	}
}
