package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/ryumonX/uangku/internal/core/ports/services"
	"github.com/ryumonX/uangku/internal/dto"
)

// TransactionHandler handles ledger CRUD and read-model requests.
type TransactionHandler struct {
	txnService portssvc.TransactionSvcFacade
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(ts portssvc.TransactionSvcFacade) *TransactionHandler {
	return &TransactionHandler{txnService: ts}
}

// RegisterTransactionRoutes sets up the ledger routes on the authenticated group.
func RegisterTransactionRoutes(rg *gin.RouterGroup, ts portssvc.TransactionSvcFacade) {
	h := NewTransactionHandler(ts)

	txns := rg.Group("/transactions")
	{
		txns.POST("", h.Create)
		txns.GET("", h.List)
		txns.GET("/summary", h.Summary)
		txns.GET("/categories", h.Categories)
		txns.GET("/:transactionID", h.Get)
		txns.PUT("/:transactionID", h.Update)
		txns.DELETE("/:transactionID", h.Delete)
	}
}

// Create godoc
// @Summary Record a transaction
// @Description Records a new income or expense entry in the caller's ledger.
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction body dto.CreateTransactionRequest true "Transaction"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /transactions [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	txn, err := h.txnService.CreateTransaction(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// List godoc
// @Summary List ledger page
// @Description Returns one page of the caller's ledger under the given filters, newest first. A page beyond the end clamps to the last valid page.
// @Tags transactions
// @Produce json
// @Param page query int false "1-based page" default(1)
// @Param type query string false "pemasukan, pengeluaran or all"
// @Param category query string false "Category filter"
// @Param dateFrom query string false "Inclusive lower date bound (YYYY-MM-DD)"
// @Param dateTo query string false "Inclusive upper date bound (YYYY-MM-DD)"
// @Param search query string false "Substring match against notes"
// @Param pos query string false "Cost-center filter"
// @Param country query string false "Country-program filter"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /transactions [get]
func (h *TransactionHandler) List(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	filter, err := params.ToFilter()
	if err != nil {
		respondError(c, err)
		return
	}

	resp, err := h.txnService.ListTransactions(c.Request.Context(), userID, filter, params.Page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Get a transaction
// @Tags transactions
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} ErrorResponse
// @Router /transactions/{transactionID} [get]
func (h *TransactionHandler) Get(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	txn, err := h.txnService.GetTransactionByID(c.Request.Context(), userID, c.Param("transactionID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// Update godoc
// @Summary Update a transaction
// @Description Applies the provided fields to an existing entry; omitted fields keep their values.
// @Tags transactions
// @Accept json
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Param transaction body dto.UpdateTransactionRequest true "Fields to update"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /transactions/{transactionID} [put]
func (h *TransactionHandler) Update(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	txn, err := h.txnService.UpdateTransaction(c.Request.Context(), userID, c.Param("transactionID"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// Delete godoc
// @Summary Delete a transaction
// @Tags transactions
// @Param transactionID path string true "Transaction ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /transactions/{transactionID} [delete]
func (h *TransactionHandler) Delete(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	if err := h.txnService.DeleteTransaction(c.Request.Context(), userID, c.Param("transactionID")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Categories godoc
// @Summary List used categories
// @Description Returns the distinct categories present in the caller's ledger, for filter dropdowns.
// @Tags transactions
// @Produce json
// @Success 200 {object} dto.CategoriesResponse
// @Failure 401 {object} ErrorResponse
// @Router /transactions/categories [get]
func (h *TransactionHandler) Categories(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	categories, err := h.txnService.ListCategories(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CategoriesResponse{Categories: categories})
}

// Summary godoc
// @Summary Dashboard counters
// @Description Returns the transaction totals shown on the dashboard.
// @Tags transactions
// @Produce json
// @Success 200 {object} dto.SummaryResponse
// @Failure 401 {object} ErrorResponse
// @Router /transactions/summary [get]
func (h *TransactionHandler) Summary(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	summary, err := h.txnService.GetSummary(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSummaryResponse(summary))
}
