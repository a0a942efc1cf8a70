package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/business_tracker/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// currencyHandler serves the static currency catalog.
type currencyHandler struct {
	currencyService portssvc.CurrencySvcFacade
}

func registerCurrencyRoutes(rg *gin.RouterGroup, currencyService portssvc.CurrencySvcFacade) {
	h := &currencyHandler{currencyService: currencyService}

	currencies := rg.Group("/currencies")
	{
		currencies.GET("", h.listCurrencies)
		currencies.GET("/:code", h.getCurrencyByCode)
	}
}

// listCurrencies godoc
// @Summary List supported currencies
// @Tags currencies
// @Produce json
// @Success 200 {array} domain.Currency
// @Router /currencies [get]
func (h *currencyHandler) listCurrencies(c *gin.Context) {
	c.JSON(http.StatusOK, h.currencyService.ListCurrencies(c.Request.Context()))
}

// getCurrencyByCode godoc
// @Summary Get a currency by code
// @Tags currencies
// @Produce json
// @Param code path string true "ISO 4217 code, case insensitive"
// @Success 200 {object} domain.Currency
// @Failure 404 {object} ErrorResponse
// @Router /currencies/{code} [get]
func (h *currencyHandler) getCurrencyByCode(c *gin.Context) {
	currency, err := h.currencyService.GetCurrency(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, err, "Failed to retrieve currency")
		return
	}
	c.JSON(http.StatusOK, currency)
}
