package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/ryumonX/uangku/internal/apperrors"
	"github.com/ryumonX/uangku/internal/core/domain"
	portssvc "github.com/ryumonX/uangku/internal/core/ports/services"
	"github.com/ryumonX/uangku/internal/dto"
	"github.com/ryumonX/uangku/internal/handlers"
	"github.com/ryumonX/uangku/internal/platform/config"
	"github.com/ryumonX/uangku/internal/utils"
)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) FindOrCreateGoogleUser(ctx context.Context, info domain.GoogleUserInfo) (*domain.User, error) {
	args := m.Called(ctx, info)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) DeactivateUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserService) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error {
	args := m.Called(ctx, userID, refreshTokenHash, refreshTokenExpiryTime)
	return args.Error(0)
}

func (m *MockUserService) ClearRefreshToken(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock TokenService ---
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockTokenService) GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockTokenService) ValidateAndParseRefreshToken(ctx context.Context, userID string, refreshTokenString string) (*domain.User, error) {
	args := m.Called(ctx, userID, refreshTokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.TokenSvcFacade = (*MockTokenService)(nil)

// --- Test Suite ---
type AuthHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockUserSvc  *MockUserService
	mockTokenSvc *MockTokenService
	cfg          *config.Config
}

func (suite *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.mockUserSvc = new(MockUserService)
	suite.mockTokenSvc = new(MockTokenService)
	suite.cfg = &config.Config{
		JWTSecret:                  "test-secret",
		JWTExpiryDuration:          time.Hour,
		RefreshTokenExpiryDuration: 168 * time.Hour,
		RefreshTokenCookieName:     "rtid",
		RefreshTokenCookiePath:     "/api/v1/auth",
	}

	h := handlers.NewAuthHandler(suite.mockUserSvc, suite.mockTokenSvc, suite.cfg)
	auth := suite.router.Group("/api/v1/auth")
	auth.POST("/login", h.Login)
	auth.POST("/register", h.Register)
	auth.POST("/refresh", h.Refresh)
	auth.POST("/logout", h.Logout)
}

func (suite *AuthHandlerTestSuite) postJSON(path string, payload interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *AuthHandlerTestSuite) TestLogin_Success() {
	passwordHash, err := utils.HashPassword("password123")
	suite.Require().NoError(err)
	user := &domain.User{UserID: "u1", Username: "admin", PasswordHash: passwordHash}
	expiry := time.Now().Add(time.Hour)

	suite.mockUserSvc.On("GetUserByUsername", mock.Anything, "admin").Return(user, nil).Once()
	suite.mockTokenSvc.On("GenerateAccessToken", mock.Anything, user).Return("access-token", expiry, nil).Once()
	suite.mockTokenSvc.On("GenerateRefreshToken", mock.Anything, user).
		Return("raw-refresh", time.Now().Add(168*time.Hour), nil).Once()
	suite.mockUserSvc.On("UpdateRefreshToken", mock.Anything, "u1", mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	w := suite.postJSON("/api/v1/auth/login", dto.LoginRequest{Username: "admin", Password: "password123"})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.LoginResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("access-token", resp.Token)
	suite.Equal("admin", resp.User.Username)

	// refresh token travels only as a cookie
	cookies := w.Result().Cookies()
	var refreshCookie *http.Cookie
	for _, c := range cookies {
		if c.Name == "rtid" {
			refreshCookie = c
		}
	}
	suite.Require().NotNil(refreshCookie)
	suite.Equal("raw-refresh", refreshCookie.Value)
	suite.True(refreshCookie.HttpOnly)
	suite.mockUserSvc.AssertExpectations(suite.T())
	suite.mockTokenSvc.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestLogin_WrongPassword() {
	passwordHash, err := utils.HashPassword("correct-password")
	suite.Require().NoError(err)
	user := &domain.User{UserID: "u1", Username: "admin", PasswordHash: passwordHash}

	suite.mockUserSvc.On("GetUserByUsername", mock.Anything, "admin").Return(user, nil).Once()

	w := suite.postJSON("/api/v1/auth/login", dto.LoginRequest{Username: "admin", Password: "wrong"})

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockTokenSvc.AssertNotCalled(suite.T(), "GenerateAccessToken")
}

func (suite *AuthHandlerTestSuite) TestLogin_UnknownUser() {
	suite.mockUserSvc.On("GetUserByUsername", mock.Anything, "ghost").
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.postJSON("/api/v1/auth/login", dto.LoginRequest{Username: "ghost", Password: "whatever"})

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *AuthHandlerTestSuite) TestRegister_DuplicateUsername() {
	suite.mockUserSvc.On("CreateUser", mock.Anything, mock.AnythingOfType("dto.CreateUserRequest")).
		Return(nil, apperrors.ErrDuplicate).Once()

	w := suite.postJSON("/api/v1/auth/register", dto.CreateUserRequest{Username: "admin", Password: "password123"})

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *AuthHandlerTestSuite) TestRefresh_MissingCookie() {
	w := suite.postJSON("/api/v1/auth/refresh", dto.RefreshRequest{UserID: "u1"})

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockTokenSvc.AssertNotCalled(suite.T(), "ValidateAndParseRefreshToken")
}

func (suite *AuthHandlerTestSuite) TestRefresh_ExpiredToken() {
	suite.mockTokenSvc.On("ValidateAndParseRefreshToken", mock.Anything, "u1", "stale-token").
		Return(nil, apperrors.ErrRefreshTokenExpired).Once()

	w := suite.postJSON("/api/v1/auth/refresh", dto.RefreshRequest{UserID: "u1"},
		&http.Cookie{Name: "rtid", Value: "stale-token"})

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *AuthHandlerTestSuite) TestLogout_ClearsCookie() {
	suite.mockUserSvc.On("ClearRefreshToken", mock.Anything, "u1").Return(nil).Once()

	w := suite.postJSON("/api/v1/auth/logout", dto.RefreshRequest{UserID: "u1"})

	suite.Equal(http.StatusNoContent, w.Code)
	var cleared bool
	for _, c := range w.Result().Cookies() {
		if c.Name == "rtid" && c.MaxAge < 0 {
			cleared = true
		}
	}
	suite.True(cleared)
	suite.mockUserSvc.AssertExpectations(suite.T())
}

func TestAuthHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}
