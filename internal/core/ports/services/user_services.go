package services

import (
	"context"
	"time"

	"github.com/ryumonX/uangku/internal/core/domain"
	"github.com/ryumonX/uangku/internal/dto"
)

// UserSvcFacade defines the business operations over users.
type UserSvcFacade interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	// FindOrCreateGoogleUser resolves a validated Google identity to a local
	// user, creating one on first sign-in.
	FindOrCreateGoogleUser(ctx context.Context, info domain.GoogleUserInfo) (*domain.User, error)
	// DeactivateUser soft-deletes the account and revokes its refresh token.
	// Deactivated users disappear from every lookup.
	DeactivateUser(ctx context.Context, userID string) error
	UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error
	ClearRefreshToken(ctx context.Context, userID string) error
}
