package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/business_tracker/internal/core/ports/services"
	"github.com/SscSPs/business_tracker/internal/dto"
	"github.com/SscSPs/business_tracker/internal/middleware"
	"github.com/SscSPs/business_tracker/internal/utils"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to accounts and transfers.
type accountHandler struct {
	accountService  portssvc.AccountSvcFacade
	businessService portssvc.BusinessReaderSvc
}

// registerAccountRoutes registers account and transfer routes on a session-scoped group.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade, businessService portssvc.BusinessReaderSvc) {
	h := &accountHandler{accountService: accountService, businessService: businessService}

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/balance", h.getTotalBalance)
		accounts.GET("/:accountID", h.getAccount)
		accounts.PUT("/:accountID", h.updateAccount)
		accounts.DELETE("/:accountID", h.deleteAccount)
	}

	transfers := rg.Group("/transfers")
	{
		transfers.POST("", h.transferFunds)
		transfers.GET("", h.listTransfers)
	}
}

// createAccount godoc
// @Summary Create a new account
// @Description Creates an account in the active business. The running balance starts at the opening balance.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or validation error"
// @Failure 412 {object} ErrorResponse "No active business"
// @Failure 500 {object} ErrorResponse "Failed to create account"
// @Security BearerAuth
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	sess, ok := sessionFrom(c)
	if !ok {
		return
	}
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "create account request", err)
		return
	}

	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request to create account", slog.String("account_name", req.Name))

	account, err := h.accountService.CreateAccount(c.Request.Context(), sess, req)
	if err != nil {
		respondError(c, err, "Failed to create account")
		return
	}

	logger.Info("Account created successfully", slog.String("account_id", account.AccountID))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// getAccount godoc
// @Summary Get an account by ID
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} ErrorResponse "Account not found"
// @Failure 500 {object} ErrorResponse "Failed to retrieve account"
// @Security BearerAuth
// @Router /accounts/{accountID} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	sess, ok := sessionFrom(c)
	if !ok {
		return
	}
	account, err := h.accountService.GetAccountByID(c.Request.Context(), sess, c.Param("accountID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List accounts of the active business
// @Tags accounts
// @Produce  json
// @Success 200 {array} dto.AccountResponse
// @Failure 412 {object} ErrorResponse "No active business"
// @Failure 500 {object} ErrorResponse "Failed to list accounts"
// @Security BearerAuth
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	sess, ok := sessionFrom(c)
	if !ok {
		return
	}
	accounts, err := h.accountService.ListAccounts(c.Request.Context(), sess)
	if err != nil {
		respondError(c, err, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ToListAccountResponse(accounts))
}

// getTotalBalance godoc
// @Summary Total balance across accounts
// @Tags accounts
// @Produce json
// @Success 200 {object} dto.TotalBalanceResponse
// @Failure 412 {object} ErrorResponse "No active business"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/balance [get]
func (h *accountHandler) getTotalBalance(c *gin.Context) {
	sess, ok := sessionFrom(c)
	if !ok {
		return
	}
	total, err := h.accountService.GetTotalBalance(c.Request.Context(), sess)
	if err != nil {
		respondError(c, err, "Failed to compute total balance")
		return
	}
	business, err := h.businessService.GetBusinessByID(c.Request.Context(), sess.BusinessID)
	if err != nil {
		respondError(c, err, "Failed to compute total balance")
		return
	}
	c.JSON(http.StatusOK, dto.TotalBalanceResponse{
		TotalBalance: total,
		CurrencyCode: business.CurrencyCode,
		Formatted:    utils.FormatAmountByCode(total, business.CurrencyCode),
	})
}

// updateAccount godoc
// @Summary Update an account
// @Description Changing the opening balance moves the running balance by the same difference.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   accountID path string true "Account ID to update"
// @Param   account body dto.UpdateAccountRequest true "Account details to update"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Failure 500 {object} ErrorResponse "Failed to update account"
// @Security BearerAuth
// @Router /accounts/{accountID} [put]
func (h *accountHandler) updateAccount(c *gin.Context) {
	sess, ok := sessionFrom(c)
	if !ok {
		return
	}
	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "update account request", err)
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), sess, c.Param("accountID"), req)
	if err != nil {
		respondError(c, err, "Failed to update account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// deleteAccount godoc
// @Summary Delete an account
// @Description Refused while transactions reference the account.
// @Tags accounts
// @Param   accountID path string true "Account ID to delete"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Failure 409 {object} ErrorResponse "Account still has transactions"
// @Failure 500 {object} ErrorResponse "Failed to delete account"
// @Security BearerAuth
// @Router /accounts/{accountID} [delete]
func (h *accountHandler) deleteAccount(c *gin.Context) {
	sess, ok := sessionFrom(c)
	if !ok {
		return
	}
	accountID := c.Param("accountID")
	if err := h.accountService.DeleteAccount(c.Request.Context(), sess, accountID); err != nil {
		respondError(c, err, "Failed to delete account")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Account deleted successfully", slog.String("account_id", accountID))
	c.Status(http.StatusNoContent)
}

// transferFunds godoc
// @Summary Transfer funds between accounts
// @Tags transfers
// @Accept json
// @Produce json
// @Param transfer body dto.TransferFundsRequest true "Transfer details"
// @Success 201 {object} dto.FundTransferResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Account not found"
// @Failure 422 {object} ErrorResponse "Insufficient funds"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transfers [post]
func (h *accountHandler) transferFunds(c *gin.Context) {
	sess, ok := sessionFrom(c)
	if !ok {
		return
	}
	var req dto.TransferFundsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "transfer request", err)
		return
	}

	transfer, err := h.accountService.TransferFunds(c.Request.Context(), sess, req)
	if err != nil {
		respondError(c, err, "Failed to transfer funds")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Funds transferred", slog.String("fund_transfer_id", transfer.FundTransferID))
	c.JSON(http.StatusCreated, dto.ToFundTransferResponse(transfer))
}

// listTransfers godoc
// @Summary List fund transfers
// @Tags transfers
// @Produce json
// @Param accountId query string false "Only transfers touching this account"
// @Success 200 {array} dto.FundTransferResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transfers [get]
func (h *accountHandler) listTransfers(c *gin.Context) {
	sess, ok := sessionFrom(c)
	if !ok {
		return
	}
	transfers, err := h.accountService.ListFundTransfers(c.Request.Context(), sess, c.Query("accountId"))
	if err != nil {
		respondError(c, err, "Failed to list fund transfers")
		return
	}
	c.JSON(http.StatusOK, dto.ToListFundTransferResponse(transfers))
}
