package storage

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"printpack/models"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// InitDB opens the plain database/sql connection used by the auth layer.
func InitDB() *sql.DB {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on process environment")
	}
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	sslmode := os.Getenv("DB_SSLMODE")
	if sslmode == "" {
		sslmode = "disable"
	}

	connStr := fmt.Sprintf("user=%s password=%s dbname=%s host=%s port=%s sslmode=%s",
		user, password, dbname, host, port, sslmode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	return db
}

// EnsureAuthTables creates the users and sessions tables when missing.
func EnsureAuthTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			first_name TEXT NOT NULL DEFAULT '',
			last_name TEXT NOT NULL DEFAULT '',
			role TEXT NOT NULL DEFAULT 'staff',
			suspended BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return fmt.Errorf("ensure users table: %w", err)
	}
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS sessions (
			session_id TEXT PRIMARY KEY,
			user_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			host_name TEXT NOT NULL DEFAULT '',
			ip_address TEXT NOT NULL DEFAULT '',
			timestp TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			expires_at TIMESTAMPTZ NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("ensure sessions table: %w", err)
	}
	return nil
}

// SaveSession stores a new session. When allowMultipleSessions is false every
// existing session for the user is dropped first.
func SaveSession(db *sql.DB, session *models.Session, allowMultipleSessions bool) error {
	if !allowMultipleSessions {
		if _, err := db.Exec(`DELETE FROM sessions WHERE user_id = $1`, session.UserID); err != nil {
			return fmt.Errorf("failed to delete existing user sessions: %w", err)
		}
	}

	_, err := db.Exec(`INSERT INTO sessions (session_id, user_id, host_name, ip_address, timestp, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		session.SessionID, session.UserID, session.HostName, session.IPAddress, session.Timestamp, session.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to insert new session: %w", err)
	}
	return nil
}

// DeleteSessionByID removes a specific session (logout).
func DeleteSessionByID(db *sql.DB, sessionID string) error {
	result, err := db.Exec(`DELETE FROM sessions WHERE session_id = $1`, sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("session not found or already deleted")
	}
	return nil
}

// GetUserByEmail looks an account up by email, case-insensitively.
func GetUserByEmail(db *sql.DB, email string) (*models.User, error) {
	var user models.User
	err := db.QueryRow(`SELECT id, email, password, first_name, last_name, role, suspended
		FROM users WHERE LOWER(email) = LOWER($1)`, email).
		Scan(&user.ID, &user.Email, &user.Password, &user.FirstName, &user.LastName, &user.Role, &user.Suspended)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user with email %s not found", email)
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &user, nil
}

// CreateUser inserts a new account and returns its id.
func CreateUser(db *sql.DB, user *models.User) (int, error) {
	var id int
	err := db.QueryRow(`INSERT INTO users (email, password, first_name, last_name, role)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		user.Email, user.Password, user.FirstName, user.LastName, user.Role).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create user: %w", err)
	}
	return id, nil
}

// GetUserBySessionID resolves a session to its (non-suspended) user.
func GetUserBySessionID(db *sql.DB, sessionID string) (*models.User, error) {
	var user models.User
	err := db.QueryRow(`
		SELECT u.id, u.email, u.first_name, u.last_name, u.role, u.suspended
		FROM sessions s
		JOIN users u ON s.user_id = u.id
		WHERE s.session_id = $1 AND s.expires_at > NOW()`, sessionID).
		Scan(&user.ID, &user.Email, &user.FirstName, &user.LastName, &user.Role, &user.Suspended)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("session not found or expired")
		}
		return nil, err
	}
	if user.Suspended {
		return nil, fmt.Errorf("account suspended")
	}
	return &user, nil
}

// GetUserSessions returns all active sessions for a user, newest first.
func GetUserSessions(db *sql.DB, userID int) ([]models.Session, error) {
	rows, err := db.Query(`SELECT session_id, user_id, host_name, ip_address, timestp, expires_at
		FROM sessions WHERE user_id = $1 AND expires_at > NOW()
		ORDER BY timestp DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []models.Session
	for rows.Next() {
		var s models.Session
		if err := rows.Scan(&s.SessionID, &s.UserID, &s.HostName, &s.IPAddress, &s.Timestamp, &s.ExpiresAt); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// CleanupExpiredSessions drops sessions whose expiry is older than a day.
// Called from the maintenance cron.
func CleanupExpiredSessions(db *sql.DB) error {
	threshold := time.Now().Add(-24 * time.Hour)
	_, err := db.Exec(`DELETE FROM sessions WHERE expires_at < $1`, threshold)
	return err
}
