package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/business_tracker/internal/core/ports/services"
	"github.com/SscSPs/business_tracker/internal/dto"
	"github.com/SscSPs/business_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// userHandler manages local users. Permission checks live in the access service.
type userHandler struct {
	accessService portssvc.AccessSvcFacade
}

func registerUserRoutes(rg *gin.RouterGroup, accessService portssvc.AccessSvcFacade) {
	h := &userHandler{accessService: accessService}

	users := rg.Group("/users")
	{
		users.POST("", h.createUser)
		users.GET("", h.listUsers)
		users.DELETE("/:userID", h.deleteUser)
		users.PUT("/me/password", h.changePassword)
	}
}

// createUser godoc
// @Summary Create a user
// @Description Creates a local user. Requires the manage_users permission.
// @Tags users
// @Accept json
// @Produce json
// @Param user body dto.CreateUserRequest true "User details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Username taken"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /users [post]
func (h *userHandler) createUser(c *gin.Context) {
	sess, ok := sessionFrom(c)
	if !ok {
		return
	}
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "create user request", err)
		return
	}

	user, err := h.accessService.CreateUser(c.Request.Context(), sess, req)
	if err != nil {
		respondError(c, err, "Failed to create user")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("User created", slog.String("new_user_id", user.UserID))
	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// listUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {array} dto.UserResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /users [get]
func (h *userHandler) listUsers(c *gin.Context) {
	sess, ok := sessionFrom(c)
	if !ok {
		return
	}
	users, err := h.accessService.ListUsers(c.Request.Context(), sess)
	if err != nil {
		respondError(c, err, "Failed to list users")
		return
	}
	c.JSON(http.StatusOK, dto.ToListUserResponse(users))
}

// deleteUser godoc
// @Summary Delete a user
// @Description Callers cannot delete themselves.
// @Tags users
// @Param userID path string true "User ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{userID} [delete]
func (h *userHandler) deleteUser(c *gin.Context) {
	sess, ok := sessionFrom(c)
	if !ok {
		return
	}
	userID := c.Param("userID")
	if err := h.accessService.DeleteUser(c.Request.Context(), sess, userID); err != nil {
		respondError(c, err, "Failed to delete user")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("User deleted", slog.String("target_user_id", userID))
	c.Status(http.StatusNoContent)
}

// changePassword godoc
// @Summary Change own password
// @Tags users
// @Accept json
// @Param body body dto.ChangePasswordRequest true "Current and new password"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse "Current password wrong"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/me/password [put]
func (h *userHandler) changePassword(c *gin.Context) {
	sess, ok := sessionFrom(c)
	if !ok {
		return
	}
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "change password request", err)
		return
	}
	if err := h.accessService.ChangePassword(c.Request.Context(), sess, req); err != nil {
		respondError(c, err, "Failed to change password")
		return
	}
	c.Status(http.StatusNoContent)
}
