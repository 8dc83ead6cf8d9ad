package models

import (
	"database/sql"
	"time"
)

// User is the database row shape for the users table.
type User struct {
	UserID         string         `db:"user_id"`
	Username       string         `db:"username"`
	PasswordHash   sql.NullString `db:"password_hash"`
	Name           string         `db:"name"`
	Email          sql.NullString `db:"email"`
	AuthProvider   string         `db:"auth_provider"`
	ProviderUserID sql.NullString `db:"provider_user_id"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`

	RefreshTokenHash       sql.NullString `db:"refresh_token_hash"`
	RefreshTokenExpiryTime sql.NullTime   `db:"refresh_token_expiry_time"`
}
