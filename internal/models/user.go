package models

import "database/sql"

// User represents a user row.
type User struct {
	UserID       string `db:"user_id"`
	Email        string `db:"email"`
	FullName     string `db:"full_name"`
	PasswordHash string `db:"password_hash"`
	AuditFields

	// Refresh token fields; only the hash is ever stored.
	RefreshTokenHash       sql.NullString `db:"refresh_token_hash"`
	RefreshTokenExpiryTime sql.NullTime   `db:"refresh_token_expiry_time"`
}
