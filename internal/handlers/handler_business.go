package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/business_tracker/internal/core/ports/services"
	"github.com/SscSPs/business_tracker/internal/dto"
	"github.com/SscSPs/business_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// businessHandler handles HTTP requests related to businesses.
type businessHandler struct {
	businessService portssvc.BusinessSvcFacade
}

// registerBusinessRoutes registers routes related to businesses.
func registerBusinessRoutes(rg *gin.RouterGroup, businessService portssvc.BusinessSvcFacade) {
	h := &businessHandler{businessService: businessService}

	businesses := rg.Group("/businesses")
	{
		businesses.POST("", h.createBusiness)
		businesses.GET("", h.listBusinesses)
		businesses.GET("/active", h.getActiveBusiness)
		businesses.GET("/:businessID", h.getBusiness)
		businesses.PUT("/:businessID", h.updateBusiness)
		businesses.DELETE("/:businessID", h.deleteBusiness)
		businesses.POST("/:businessID/activate", h.activateBusiness)
	}
}

// createBusiness godoc
// @Summary Create a business
// @Description Creates a business seeded with default categories and payment modes. The first business becomes active.
// @Tags businesses
// @Accept json
// @Produce json
// @Param business body dto.CreateBusinessRequest true "Business details"
// @Success 201 {object} dto.BusinessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses [post]
func (h *businessHandler) createBusiness(c *gin.Context) {
	sess, ok := sessionFrom(c)
	if !ok {
		return
	}
	var req dto.CreateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "create business request", err)
		return
	}

	business, err := h.businessService.CreateBusiness(c.Request.Context(), sess, req)
	if err != nil {
		respondError(c, err, "Failed to create business")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Business created", slog.String("business_id", business.BusinessID))
	c.JSON(http.StatusCreated, dto.ToBusinessResponse(business))
}

// listBusinesses godoc
// @Summary List businesses
// @Tags businesses
// @Produce json
// @Success 200 {array} dto.BusinessResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses [get]
func (h *businessHandler) listBusinesses(c *gin.Context) {
	businesses, err := h.businessService.ListBusinesses(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list businesses")
		return
	}
	c.JSON(http.StatusOK, dto.ToListBusinessResponse(businesses))
}

// getActiveBusiness godoc
// @Summary Get the active business
// @Tags businesses
// @Produce json
// @Success 200 {object} dto.BusinessResponse
// @Failure 412 {object} ErrorResponse "No active business"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/active [get]
func (h *businessHandler) getActiveBusiness(c *gin.Context) {
	business, err := h.businessService.GetActiveBusiness(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to get active business")
		return
	}
	c.JSON(http.StatusOK, dto.ToBusinessResponse(business))
}

// getBusiness godoc
// @Summary Get a business by ID
// @Tags businesses
// @Produce json
// @Param businessID path string true "Business ID"
// @Success 200 {object} dto.BusinessResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{businessID} [get]
func (h *businessHandler) getBusiness(c *gin.Context) {
	business, err := h.businessService.GetBusinessByID(c.Request.Context(), c.Param("businessID"))
	if err != nil {
		respondError(c, err, "Failed to get business")
		return
	}
	c.JSON(http.StatusOK, dto.ToBusinessResponse(business))
}

// updateBusiness godoc
// @Summary Update a business
// @Tags businesses
// @Accept json
// @Produce json
// @Param businessID path string true "Business ID"
// @Param business body dto.UpdateBusinessRequest true "Fields to change"
// @Success 200 {object} dto.BusinessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{businessID} [put]
func (h *businessHandler) updateBusiness(c *gin.Context) {
	sess, ok := sessionFrom(c)
	if !ok {
		return
	}
	var req dto.UpdateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "update business request", err)
		return
	}

	business, err := h.businessService.UpdateBusiness(c.Request.Context(), sess, c.Param("businessID"), req)
	if err != nil {
		respondError(c, err, "Failed to update business")
		return
	}
	c.JSON(http.StatusOK, dto.ToBusinessResponse(business))
}

// activateBusiness godoc
// @Summary Make a business the active one
// @Tags businesses
// @Produce json
// @Param businessID path string true "Business ID"
// @Success 200 {object} dto.BusinessResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{businessID}/activate [post]
func (h *businessHandler) activateBusiness(c *gin.Context) {
	sess, ok := sessionFrom(c)
	if !ok {
		return
	}
	business, err := h.businessService.SetActiveBusiness(c.Request.Context(), sess, c.Param("businessID"))
	if err != nil {
		respondError(c, err, "Failed to activate business")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Active business switched", slog.String("business_id", business.BusinessID))
	c.JSON(http.StatusOK, dto.ToBusinessResponse(business))
}

// deleteBusiness godoc
// @Summary Delete a business and everything it owns
// @Tags businesses
// @Param businessID path string true "Business ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{businessID} [delete]
func (h *businessHandler) deleteBusiness(c *gin.Context) {
	sess, ok := sessionFrom(c)
	if !ok {
		return
	}
	businessID := c.Param("businessID")
	if err := h.businessService.DeleteBusiness(c.Request.Context(), sess, businessID); err != nil {
		respondError(c, err, "Failed to delete business")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Business deleted", slog.String("business_id", businessID))
	c.Status(http.StatusNoContent)
}
