package handlers

import (
	"database/sql"
	"net/http"
	"strings"
	"time"

	"printpack/models"
	"printpack/storage"
	"printpack/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const sessionLifetime = 12 * time.Hour

// Register godoc
// @Summary      Create a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  models.RegisterRequest  true  "Account payload"
// @Success      201  {object}  models.APIResponse
// @Failure      409  {object}  models.APIResponse
// @Router       /api/s1/register [post]
func Register(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
			return
		}
		req.Email = strings.TrimSpace(strings.ToLower(req.Email))
		if req.Email == "" || req.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Required fields missing"})
			return
		}
		if len(req.Password) < 8 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Password must be at least 8 characters"})
			return
		}

		if _, err := storage.GetUserByEmail(db, req.Email); err == nil {
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Email already registered"})
			return
		}

		hashed, err := utils.HashPassword(req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to hash password"})
			return
		}

		role := req.Role
		if role == "" {
			role = "staff"
		}
		user := models.User{
			Email:     req.Email,
			Password:  hashed,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Role:      role,
		}
		id, err := storage.CreateUser(db, &user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create account"})
			return
		}
		user.ID = id
		user.Password = ""

		c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Account created", "data": user})
	}
}

// Login godoc
// @Summary      Authenticate and obtain a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  models.LoginRequest  true  "Credentials"
// @Success      200  {object}  models.LoginResponse
// @Failure      401  {object}  models.APIResponse
// @Router       /api/s1/login [post]
func Login(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
			return
		}

		user, err := storage.GetUserByEmail(db, strings.TrimSpace(req.Email))
		if err != nil || !utils.ValidatePassword(user.Password, req.Password) {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid email or password"})
			return
		}
		if user.Suspended {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Account suspended"})
			return
		}

		session := models.Session{
			UserID:    user.ID,
			SessionID: uuid.NewString(),
			HostName:  c.Request.Host,
			IPAddress: c.ClientIP(),
			Timestamp: time.Now(),
			ExpiresAt: time.Now().Add(sessionLifetime),
		}
		if err := storage.SaveSession(db, &session, true); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create session"})
			return
		}

		token, err := utils.GenerateJWT(user.Email, session.SessionID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to issue token"})
			return
		}

		user.Password = ""
		c.JSON(http.StatusOK, models.LoginResponse{
			Token:     token,
			SessionID: session.SessionID,
			ExpiresAt: session.ExpiresAt,
			User:      *user,
		})
	}
}

// Logout godoc
// @Summary      Revoke the current session
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  models.APIResponse
// @Router       /api/s1/logout [post]
func Logout(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetString("session_id")
		if sessionID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "No active session"})
			return
		}
		if err := storage.DeleteSessionByID(db, sessionID); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Session not found or already deleted"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out"})
	}
}

// GetSessions godoc
// @Summary      List active sessions for the current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  models.APIResponse
// @Router       /api/s1/sessions [get]
func GetSessions(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := c.Get("user")
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
			return
		}
		user := raw.(*models.User)

		sessions, err := storage.GetUserSessions(db, user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load sessions"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": sessions})
	}
}
