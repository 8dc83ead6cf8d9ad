package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ryumonX/uangku/internal/apperrors"
	"github.com/ryumonX/uangku/internal/core/domain"
	portsrepo "github.com/ryumonX/uangku/internal/core/ports/repositories"
	"github.com/ryumonX/uangku/internal/models"
)

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(db *pgxpool.Pool) portsrepo.UserRepository {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: db}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepository
var _ portsrepo.UserRepository = (*PgxUserRepository)(nil)

func toModelUser(d domain.User) models.User {
	m := models.User{
		UserID:         d.UserID,
		Username:       d.Username,
		PasswordHash:   nullable(d.PasswordHash),
		Name:           d.Name,
		Email:          nullable(d.Email),
		AuthProvider:   string(d.AuthProvider),
		ProviderUserID: nullable(d.ProviderUserID),
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			LastUpdatedAt: d.LastUpdatedAt,
		},
		DeletedAt:        d.DeletedAt,
		RefreshTokenHash: nullable(d.RefreshTokenHash),
	}
	if d.RefreshTokenExpiryTime != nil {
		m.RefreshTokenExpiryTime = sql.NullTime{Time: *d.RefreshTokenExpiryTime, Valid: true}
	}
	return m
}

func toDomainUser(m models.User) domain.User {
	d := domain.User{
		UserID:         m.UserID,
		Username:       m.Username,
		PasswordHash:   m.PasswordHash.String,
		Name:           m.Name,
		Email:          m.Email.String,
		AuthProvider:   domain.AuthProvider(m.AuthProvider),
		ProviderUserID: m.ProviderUserID.String,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
		DeletedAt:        m.DeletedAt,
		RefreshTokenHash: m.RefreshTokenHash.String,
	}
	if m.RefreshTokenExpiryTime.Valid {
		t := m.RefreshTokenExpiryTime.Time
		d.RefreshTokenExpiryTime = &t
	}
	return d
}

const userColumns = `user_id, username, password_hash, name, email, auth_provider, provider_user_id, created_at, last_updated_at, deleted_at, refresh_token_hash, refresh_token_expiry_time`

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := toModelUser(user)
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.UserID,
		m.Username,
		m.PasswordHash,
		m.Name,
		m.Email,
		m.AuthProvider,
		m.ProviderUserID,
		m.CreatedAt,
		m.LastUpdatedAt,
		m.DeletedAt,
		m.RefreshTokenHash,
		m.RefreshTokenExpiryTime,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *PgxUserRepository) findUserBy(ctx context.Context, whereClause string, args ...interface{}) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE deleted_at IS NULL AND ` + whereClause + `;`

	var m models.User
	err := r.Pool.QueryRow(ctx, query, args...).Scan(
		&m.UserID,
		&m.Username,
		&m.PasswordHash,
		&m.Name,
		&m.Email,
		&m.AuthProvider,
		&m.ProviderUserID,
		&m.CreatedAt,
		&m.LastUpdatedAt,
		&m.DeletedAt,
		&m.RefreshTokenHash,
		&m.RefreshTokenExpiryTime,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	d := toDomainUser(m)
	return &d, nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findUserBy(ctx, "user_id = $1", userID)
}

func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findUserBy(ctx, "username = $1", username)
}

func (r *PgxUserRepository) FindUserByProviderDetails(ctx context.Context, authProvider, providerUserID string) (*domain.User, error) {
	return r.findUserBy(ctx, "auth_provider = $1 AND provider_user_id = $2", authProvider, providerUserID)
}

func (r *PgxUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error {
	query := `
		UPDATE users SET
			refresh_token_hash = $2,
			refresh_token_expiry_time = $3,
			last_updated_at = $4
		WHERE user_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query, userID, refreshTokenHash, refreshTokenExpiryTime, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update refresh token for user %s: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	query := `
		UPDATE users SET
			refresh_token_hash = NULL,
			refresh_token_expiry_time = NULL,
			last_updated_at = $2
		WHERE user_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query, userID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to clear refresh token for user %s: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time) error {
	// Revoking the refresh token in the same statement keeps the soft delete
	// atomic; a deactivated session must not be renewable.
	query := `
		UPDATE users SET
			deleted_at = $2,
			last_updated_at = $2,
			refresh_token_hash = NULL,
			refresh_token_expiry_time = NULL
		WHERE user_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query, userID, deletedAt)
	if err != nil {
		return fmt.Errorf("failed to mark user %s deleted: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
