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
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/ryumonX/uangku/internal/apperrors"
	"github.com/ryumonX/uangku/internal/core/domain"
	portssvc "github.com/ryumonX/uangku/internal/core/ports/services"
	"github.com/ryumonX/uangku/internal/dto"
	"github.com/ryumonX/uangku/internal/handlers"
	"github.com/ryumonX/uangku/internal/middleware"
)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) GetTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) ListTransactions(ctx context.Context, userID string, filter domain.TransactionFilter, page int) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, userID, filter, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}

func (m *MockTransactionService) UpdateTransaction(ctx context.Context, userID, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, transactionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	args := m.Called(ctx, userID, transactionID)
	return args.Error(0)
}

func (m *MockTransactionService) ListCategories(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockTransactionService) GetSummary(ctx context.Context, userID string) (*domain.TransactionSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionSummary), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

// --- Test Suite ---
type TransactionHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockTransactionService
	jwtSecret   string
	userID      string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *TransactionHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "uangku-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tsignedString, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return tsignedString
}

func (suite *TransactionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.userID = uuid.NewString()

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockService = new(MockTransactionService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterTransactionRoutes(v1, suite.mockService)
}

func (suite *TransactionHandlerTestSuite) doRequest(method, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.userID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_Success() {
	reqBody := dto.CreateTransactionRequest{
		Date:    "2024-07-14",
		Amount:  decimal.NewFromInt(5000000),
		Type:    "pemasukan",
		Country: "Jepang",
	}
	created := &domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        suite.userID,
		Date:          time.Date(2024, time.July, 14, 0, 0, 0, 0, time.UTC),
		Amount:        reqBody.Amount,
		Type:          domain.Income,
		Country:       "Jepang",
	}

	suite.mockService.On("CreateTransaction", mock.Anything, suite.userID, mock.AnythingOfType("dto.CreateTransactionRequest")).
		Return(created, nil).Once()

	body, _ := json.Marshal(reqBody)
	w := suite.doRequest(http.MethodPost, "/api/v1/transactions", body)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.TransactionResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.TransactionID, resp.TransactionID)
	suite.Equal("2024-07-14", resp.Date)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_InvalidType() {
	body := []byte(`{"date":"2024-07-14","amount":100,"type":"invalid"}`)
	w := suite.doRequest(http.MethodPost, "/api/v1/transactions", body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "CreateTransaction")
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_Unauthorized() {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", bytes.NewReader([]byte(`{}`)))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestListTransactions_PassesFilterAndPage() {
	expected := &dto.ListTransactionsResponse{
		Transactions: []dto.TransactionResponse{},
		TotalCount:   0,
		Page:         1,
		PageSize:     10,
	}

	suite.mockService.On("ListTransactions", mock.Anything, suite.userID,
		mock.MatchedBy(func(f domain.TransactionFilter) bool {
			return f.Type == "pengeluaran" && f.Country == "Turki" && f.Search == "sewa" &&
				f.DateFrom != nil && f.DateFrom.Equal(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))
		}), 2).
		Return(expected, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/transactions?page=2&type=pengeluaran&country=Turki&search=sewa&dateFrom=2024-01-01", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestListTransactions_BadDateFilter() {
	w := suite.doRequest(http.MethodGet, "/api/v1/transactions?dateFrom=January", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "ListTransactions")
}

func (suite *TransactionHandlerTestSuite) TestGetTransaction_NotFound() {
	txnID := uuid.NewString()
	suite.mockService.On("GetTransactionByID", mock.Anything, suite.userID, txnID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/transactions/"+txnID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestDeleteTransaction_Success() {
	txnID := uuid.NewString()
	suite.mockService.On("DeleteTransaction", mock.Anything, suite.userID, txnID).
		Return(nil).Once()

	w := suite.doRequest(http.MethodDelete, "/api/v1/transactions/"+txnID, nil)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestCategories_Success() {
	suite.mockService.On("ListCategories", mock.Anything, suite.userID).
		Return([]string{"Gaji", "Logistik"}, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/transactions/categories", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.CategoriesResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal([]string{"Gaji", "Logistik"}, resp.Categories)
}

func (suite *TransactionHandlerTestSuite) TestSummary_Success() {
	suite.mockService.On("GetSummary", mock.Anything, suite.userID).
		Return(&domain.TransactionSummary{Total: 12, ThisMonth: 3, Income: 5, Expense: 7}, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/transactions/summary", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.SummaryResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(int64(12), resp.Total)
	suite.Equal(int64(3), resp.ThisMonth)
}

func TestTransactionHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}
