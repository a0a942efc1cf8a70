package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/business_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/business_tracker/internal/core/ports/services"
	"github.com/SscSPs/business_tracker/internal/dto"
	"github.com/SscSPs/business_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles income and expense entries and the summary.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
	loc                *time.Location
}

// registerTransactionRoutes sets up transaction routes. Date filters are read as calendar days in loc.
func registerTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade, loc *time.Location) {
	h := &transactionHandler{transactionService: transactionService, loc: loc}

	txns := rg.Group("/transactions")
	{
		txns.POST("", h.createTransaction)
		txns.GET("", h.listTransactions)
		txns.GET("/:transactionID", h.getTransaction)
		txns.PUT("/:transactionID", h.updateTransaction)
		txns.DELETE("/:transactionID", h.deleteTransaction)
	}

	rg.GET("/summary", h.getSummary)
}

// createTransaction godoc
// @Summary Record income or expense
// @Description Moves the account balance by the signed amount in the same unit of work.
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction body dto.CreateTransactionRequest true "Transaction"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Account, category or payment mode not found"
// @Failure 412 {object} ErrorResponse "No active business"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	sess, ok := sessionFrom(c)
	if !ok {
		return
	}
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "create transaction request", err)
		return
	}

	txn, err := h.transactionService.CreateTransaction(c.Request.Context(), sess, req)
	if err != nil {
		respondError(c, err, "Failed to create transaction")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Transaction created",
		slog.String("transaction_id", txn.TransactionID), slog.String("type", string(txn.Type)))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// listTransactions godoc
// @Summary List transactions, newest first
// @Tags transactions
// @Produce json
// @Param from query string false "First day, YYYY-MM-DD"
// @Param to query string false "Last day, YYYY-MM-DD"
// @Param accountId query string false "Account filter"
// @Param categoryId query string false "Category filter"
// @Param paymentModeId query string false "Payment mode filter"
// @Success 200 {array} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	sess, ok := sessionFrom(c)
	if !ok {
		return
	}
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, "query parameters", err)
		return
	}
	rng, err := toDateRange(params.DateRangeParams, h.loc)
	if err != nil {
		respondError(c, err, "Invalid date range")
		return
	}

	filter := domain.TransactionFilter{
		AccountID:     params.AccountID,
		CategoryID:    params.CategoryID,
		PaymentModeID: params.PaymentModeID,
	}
	if rng != nil {
		filter.Range = *rng
	}

	txns, err := h.transactionService.ListTransactions(c.Request.Context(), sess, filter)
	if err != nil {
		respondError(c, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ToListTransactionResponse(txns))
}

// getTransaction godoc
// @Summary Get a transaction
// @Tags transactions
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{transactionID} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	sess, ok := sessionFrom(c)
	if !ok {
		return
	}
	txn, err := h.transactionService.GetTransactionByID(c.Request.Context(), sess, c.Param("transactionID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// updateTransaction godoc
// @Summary Edit a transaction
// @Description Admins may always edit. Others only their own entries inside the edit window.
// @Tags transactions
// @Accept json
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Param transaction body dto.UpdateTransactionRequest true "New values"
// @Success 200 {object} dto.TransactionResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{transactionID} [put]
func (h *transactionHandler) updateTransaction(c *gin.Context) {
	sess, ok := sessionFrom(c)
	if !ok {
		return
	}
	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "update transaction request", err)
		return
	}
	txn, err := h.transactionService.UpdateTransaction(c.Request.Context(), sess, c.Param("transactionID"), req)
	if err != nil {
		respondError(c, err, "Failed to update transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// deleteTransaction godoc
// @Summary Delete a transaction
// @Description Reverses the balance effect.
// @Tags transactions
// @Param transactionID path string true "Transaction ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{transactionID} [delete]
func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	sess, ok := sessionFrom(c)
	if !ok {
		return
	}
	transactionID := c.Param("transactionID")
	if err := h.transactionService.DeleteTransaction(c.Request.Context(), sess, transactionID); err != nil {
		respondError(c, err, "Failed to delete transaction")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Transaction deleted", slog.String("transaction_id", transactionID))
	c.Status(http.StatusNoContent)
}

// getSummary godoc
// @Summary Income, expense and balance totals
// @Tags transactions
// @Produce json
// @Param from query string false "First day, YYYY-MM-DD"
// @Param to query string false "Last day, YYYY-MM-DD"
// @Success 200 {object} domain.Summary
// @Failure 400 {object} ErrorResponse
// @Failure 412 {object} ErrorResponse
// @Security BearerAuth
// @Router /summary [get]
func (h *transactionHandler) getSummary(c *gin.Context) {
	sess, ok := sessionFrom(c)
	if !ok {
		return
	}
	var params dto.DateRangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, "query parameters", err)
		return
	}
	rng, err := toDateRange(params, h.loc)
	if err != nil {
		respondError(c, err, "Invalid date range")
		return
	}
	summary, err := h.transactionService.GetSummary(c.Request.Context(), sess, rng)
	if err != nil {
		respondError(c, err, "Failed to compute summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}
