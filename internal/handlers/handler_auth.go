package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/business_tracker/internal/core/ports/services"
	"github.com/SscSPs/business_tracker/internal/dto"
	"github.com/SscSPs/business_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// authHandler handles login.
type authHandler struct {
	accessService portssvc.AccessSvcFacade
}

// registerAuthRoutes sets up the public authentication routes. Login is rate limited per client IP.
func registerAuthRoutes(rg *gin.RouterGroup, accessService portssvc.AccessSvcFacade, loginLimiter *limiter.Limiter) {
	h := &authHandler{accessService: accessService}

	auth := rg.Group("/auth")
	if loginLimiter != nil {
		auth.POST("/login", middleware.RateLimit(loginLimiter), h.login)
	} else {
		auth.POST("/login", h.login)
	}
}

// login godoc
// @Summary User login
// @Description Authenticates a local user and returns a JWT token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "login request", err)
		return
	}

	resp, err := h.accessService.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to log in")
		return
	}

	logger.Info("User logged in", slog.String("user_id", resp.User.UserID))
	c.JSON(http.StatusOK, resp)
}
