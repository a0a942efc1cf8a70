package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/business_tracker/internal/core/ports/services"
	"github.com/SscSPs/business_tracker/internal/dto"
	"github.com/gin-gonic/gin"
)

type catalogHandler struct {
	catalogService portssvc.CatalogSvcFacade
}

// registerCatalogRoutes sets up category and payment mode routes.
func registerCatalogRoutes(rg *gin.RouterGroup, catalogService portssvc.CatalogSvcFacade) {
	h := &catalogHandler{catalogService: catalogService}

	categories := rg.Group("/categories")
	{
		categories.POST("", h.createCategory)
		categories.GET("", h.listCategories)
		categories.PUT("/:categoryID", h.updateCategory)
		categories.DELETE("/:categoryID", h.deleteCategory)
	}

	modes := rg.Group("/payment-modes")
	{
		modes.POST("", h.createPaymentMode)
		modes.GET("", h.listPaymentModes)
		modes.DELETE("/:paymentModeID", h.deletePaymentMode)
	}
}

// createCategory godoc
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Param category body dto.CreateCategoryRequest true "Category"
// @Success 201 {object} dto.CategoryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Name already used in this business"
// @Security BearerAuth
// @Router /categories [post]
func (h *catalogHandler) createCategory(c *gin.Context) {
	sess, ok := sessionFrom(c)
	if !ok {
		return
	}
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "create category request", err)
		return
	}
	category, err := h.catalogService.CreateCategory(c.Request.Context(), sess, req)
	if err != nil {
		respondError(c, err, "Failed to create category")
		return
	}
	c.JSON(http.StatusCreated, dto.CategoryResponse{CategoryID: category.CategoryID, Name: category.Name, Color: category.Color})
}

// listCategories godoc
// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {array} dto.CategoryResponse
// @Security BearerAuth
// @Router /categories [get]
func (h *catalogHandler) listCategories(c *gin.Context) {
	sess, ok := sessionFrom(c)
	if !ok {
		return
	}
	categories, err := h.catalogService.ListCategories(c.Request.Context(), sess)
	if err != nil {
		respondError(c, err, "Failed to list categories")
		return
	}
	c.JSON(http.StatusOK, dto.ToListCategoryResponse(categories))
}

// updateCategory godoc
// @Summary Rename or recolour a category
// @Tags categories
// @Accept json
// @Produce json
// @Param categoryID path string true "Category ID"
// @Param category body dto.UpdateCategoryRequest true "Fields to change"
// @Success 200 {object} dto.CategoryResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /categories/{categoryID} [put]
func (h *catalogHandler) updateCategory(c *gin.Context) {
	sess, ok := sessionFrom(c)
	if !ok {
		return
	}
	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "update category request", err)
		return
	}
	category, err := h.catalogService.UpdateCategory(c.Request.Context(), sess, c.Param("categoryID"), req)
	if err != nil {
		respondError(c, err, "Failed to update category")
		return
	}
	c.JSON(http.StatusOK, dto.CategoryResponse{CategoryID: category.CategoryID, Name: category.Name, Color: category.Color})
}

// deleteCategory godoc
// @Summary Delete a category
// @Description Refused while transactions use the category.
// @Tags categories
// @Param categoryID path string true "Category ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /categories/{categoryID} [delete]
func (h *catalogHandler) deleteCategory(c *gin.Context) {
	sess, ok := sessionFrom(c)
	if !ok {
		return
	}
	if err := h.catalogService.DeleteCategory(c.Request.Context(), sess, c.Param("categoryID")); err != nil {
		respondError(c, err, "Failed to delete category")
		return
	}
	c.Status(http.StatusNoContent)
}

// createPaymentMode godoc
// @Summary Create a payment mode
// @Tags payment-modes
// @Accept json
// @Produce json
// @Param paymentMode body dto.CreatePaymentModeRequest true "Payment mode"
// @Success 201 {object} dto.PaymentModeResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /payment-modes [post]
func (h *catalogHandler) createPaymentMode(c *gin.Context) {
	sess, ok := sessionFrom(c)
	if !ok {
		return
	}
	var req dto.CreatePaymentModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "create payment mode request", err)
		return
	}
	mode, err := h.catalogService.CreatePaymentMode(c.Request.Context(), sess, req)
	if err != nil {
		respondError(c, err, "Failed to create payment mode")
		return
	}
	c.JSON(http.StatusCreated, dto.PaymentModeResponse{PaymentModeID: mode.PaymentModeID, Name: mode.Name})
}

// listPaymentModes godoc
// @Summary List payment modes
// @Tags payment-modes
// @Produce json
// @Success 200 {array} dto.PaymentModeResponse
// @Security BearerAuth
// @Router /payment-modes [get]
func (h *catalogHandler) listPaymentModes(c *gin.Context) {
	sess, ok := sessionFrom(c)
	if !ok {
		return
	}
	modes, err := h.catalogService.ListPaymentModes(c.Request.Context(), sess)
	if err != nil {
		respondError(c, err, "Failed to list payment modes")
		return
	}
	c.JSON(http.StatusOK, dto.ToListPaymentModeResponse(modes))
}

// deletePaymentMode godoc
// @Summary Delete a payment mode
// @Tags payment-modes
// @Param paymentModeID path string true "Payment mode ID"
// @Success 204 "No Content"
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /payment-modes/{paymentModeID} [delete]
func (h *catalogHandler) deletePaymentMode(c *gin.Context) {
	sess, ok := sessionFrom(c)
	if !ok {
		return
	}
	if err := h.catalogService.DeletePaymentMode(c.Request.Context(), sess, c.Param("paymentModeID")); err != nil {
		respondError(c, err, "Failed to delete payment mode")
		return
	}
	c.Status(http.StatusNoContent)
}
