package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/ryumonX/uangku/internal/apperrors"
	"github.com/ryumonX/uangku/internal/core/domain"
	"github.com/ryumonX/uangku/internal/core/services"
	"github.com/ryumonX/uangku/internal/dto"
	"github.com/ryumonX/uangku/internal/platform/config"
	"github.com/ryumonX/uangku/internal/utils"
)

// --- Mock UserRepository (based on UserService usage) ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByProviderDetails(ctx context.Context, authProvider, providerUserID string) (*domain.User, error) {
	args := m.Called(ctx, authProvider, providerUserID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error {
	args := m.Called(ctx, userID, refreshTokenHash, refreshTokenExpiryTime)
	return args.Error(0)
}

func (m *MockUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time) error {
	args := m.Called(ctx, userID, deletedAt)
	return args.Error(0)
}

// --- UserService ---
type UserServiceTestSuite struct {
	suite.Suite
	mockRepo *MockUserRepository
	ctx      context.Context
}

func (s *UserServiceTestSuite) SetupTest() {
	s.mockRepo = new(MockUserRepository)
	s.ctx = context.Background()
}

func (s *UserServiceTestSuite) TestCreateUser_Success() {
	req := dto.CreateUserRequest{Username: "admin", Password: "password123", Name: "Admin"}

	s.mockRepo.On("FindUserByUsername", s.ctx, "admin").Return(nil, apperrors.ErrNotFound).Once()
	s.mockRepo.On("SaveUser", s.ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Username == "admin" &&
			u.AuthProvider == domain.ProviderLocal &&
			u.UserID != "" &&
			u.PasswordHash != "" && u.PasswordHash != "password123"
	})).Return(nil).Once()

	svc := services.NewUserService(s.mockRepo)
	user, err := svc.CreateUser(s.ctx, req)

	s.NoError(err)
	s.NotNil(user)
	s.True(utils.CheckPasswordHash("password123", user.PasswordHash))
	s.mockRepo.AssertExpectations(s.T())
}

func (s *UserServiceTestSuite) TestCreateUser_DuplicateUsername() {
	existing := &domain.User{UserID: "u1", Username: "admin"}
	s.mockRepo.On("FindUserByUsername", s.ctx, "admin").Return(existing, nil).Once()

	svc := services.NewUserService(s.mockRepo)
	user, err := svc.CreateUser(s.ctx, dto.CreateUserRequest{Username: "admin", Password: "password123"})

	s.Nil(user)
	s.ErrorIs(err, apperrors.ErrDuplicate)
	s.mockRepo.AssertNotCalled(s.T(), "SaveUser")
}

func (s *UserServiceTestSuite) TestFindOrCreateGoogleUser_ExistingUser() {
	existing := &domain.User{UserID: "u1", AuthProvider: domain.ProviderGoogle, ProviderUserID: "goog-1"}
	s.mockRepo.On("FindUserByProviderDetails", s.ctx, "google", "goog-1").Return(existing, nil).Once()

	svc := services.NewUserService(s.mockRepo)
	user, err := svc.FindOrCreateGoogleUser(s.ctx, domain.GoogleUserInfo{ID: "goog-1", Email: "a@b.com"})

	s.NoError(err)
	s.Equal("u1", user.UserID)
	s.mockRepo.AssertNotCalled(s.T(), "SaveUser")
}

func (s *UserServiceTestSuite) TestFindOrCreateGoogleUser_FirstSignIn() {
	s.mockRepo.On("FindUserByProviderDetails", s.ctx, "google", "goog-2").Return(nil, apperrors.ErrNotFound).Once()
	s.mockRepo.On("SaveUser", s.ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.AuthProvider == domain.ProviderGoogle &&
			u.ProviderUserID == "goog-2" &&
			u.Username == "new@example.com"
	})).Return(nil).Once()

	svc := services.NewUserService(s.mockRepo)
	user, err := svc.FindOrCreateGoogleUser(s.ctx, domain.GoogleUserInfo{ID: "goog-2", Email: "new@example.com", Name: "New User"})

	s.NoError(err)
	s.Equal("New User", user.Name)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *UserServiceTestSuite) TestDeactivateUser_MarksDeleted() {
	s.mockRepo.On("MarkUserDeleted", s.ctx, "u1", mock.MatchedBy(func(ts time.Time) bool {
		return time.Since(ts) < 5*time.Second
	})).Return(nil).Once()

	svc := services.NewUserService(s.mockRepo)
	err := svc.DeactivateUser(s.ctx, "u1")

	s.NoError(err)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *UserServiceTestSuite) TestDeactivateUser_UnknownUser() {
	s.mockRepo.On("MarkUserDeleted", s.ctx, "ghost", mock.Anything).Return(apperrors.ErrNotFound).Once()

	svc := services.NewUserService(s.mockRepo)
	err := svc.DeactivateUser(s.ctx, "ghost")

	s.ErrorIs(err, apperrors.ErrNotFound)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

// --- TokenService ---
func tokenTestConfig() *config.Config {
	return &config.Config{
		JWTSecret:                  "test-secret",
		JWTExpiryDuration:          time.Hour,
		JWTIssuer:                  "uangku-backend",
		RefreshTokenExpiryDuration: 168 * time.Hour,
	}
}

func TestTokenService_AccessTokenRoundTrip(t *testing.T) {
	cfg := tokenTestConfig()
	svc := services.NewTokenService(cfg, services.NewUserService(new(MockUserRepository)))

	user := &domain.User{UserID: "u1"}
	token, expiry, err := svc.GenerateAccessToken(context.Background(), user)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiry, 5*time.Second)

	claims, err := utils.ParseAndValidateJWT(token, cfg.JWTSecret)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.Subject)
	assert.Equal(t, "uangku-backend", claims.Issuer)
}

func TestTokenService_ValidateRefreshToken(t *testing.T) {
	cfg := tokenTestConfig()
	mockRepo := new(MockUserRepository)
	userSvc := services.NewUserService(mockRepo)
	svc := services.NewTokenService(cfg, userSvc)
	ctx := context.Background()

	raw := "raw-refresh-token"
	hash, err := utils.HashRefreshToken(raw)
	require.NoError(t, err)

	future := time.Now().Add(time.Hour)
	user := &domain.User{UserID: "u1", RefreshTokenHash: hash, RefreshTokenExpiryTime: &future}

	mockRepo.On("FindUserByID", ctx, "u1").Return(user, nil)

	got, err := svc.ValidateAndParseRefreshToken(ctx, "u1", raw)
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)

	_, err = svc.ValidateAndParseRefreshToken(ctx, "u1", "wrong-token")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestTokenService_ExpiredRefreshToken(t *testing.T) {
	cfg := tokenTestConfig()
	mockRepo := new(MockUserRepository)
	svc := services.NewTokenService(cfg, services.NewUserService(mockRepo))
	ctx := context.Background()

	hash, err := utils.HashRefreshToken("raw")
	require.NoError(t, err)
	past := time.Now().Add(-time.Hour)
	user := &domain.User{UserID: "u1", RefreshTokenHash: hash, RefreshTokenExpiryTime: &past}

	mockRepo.On("FindUserByID", ctx, "u1").Return(user, nil)

	_, err = svc.ValidateAndParseRefreshToken(ctx, "u1", "raw")
	assert.ErrorIs(t, err, apperrors.ErrRefreshTokenExpired)
}
