package repositories

import (
	"context"
	"time"

	"github.com/ryumonX/uangku/internal/core/domain"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	SaveUser(ctx context.Context, user domain.User) error
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
	FindUserByProviderDetails(ctx context.Context, authProvider, providerUserID string) (*domain.User, error)
	UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error
	ClearRefreshToken(ctx context.Context, userID string) error
	MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time) error
}
