package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/business_tracker/internal/core/ports/services"
	"github.com/SscSPs/business_tracker/internal/dto"
	"github.com/gin-gonic/gin"
)

type activityHandler struct {
	activityService portssvc.ActivitySvcFacade
}

func registerActivityRoutes(rg *gin.RouterGroup, activityService portssvc.ActivitySvcFacade) {
	h := &activityHandler{activityService: activityService}
	rg.GET("/activity", h.listActivity)
}

// listActivity godoc
// @Summary Activity feed of the active business
// @Description Newest first. Pass nextToken from the previous page to continue.
// @Tags activity
// @Produce json
// @Param limit query int false "Page size, 1 to 500"
// @Param nextToken query string false "Cursor from the previous page"
// @Success 200 {object} dto.ListActivityResponse
// @Failure 400 {object} ErrorResponse "Bad limit or cursor"
// @Failure 412 {object} ErrorResponse
// @Security BearerAuth
// @Router /activity [get]
func (h *activityHandler) listActivity(c *gin.Context) {
	sess, ok := sessionFrom(c)
	if !ok {
		return
	}
	var params dto.ListActivityParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, "query parameters", err)
		return
	}
	page, err := h.activityService.ListActivity(c.Request.Context(), sess, params)
	if err != nil {
		respondError(c, err, "Failed to list activity")
		return
	}
	c.JSON(http.StatusOK, page)
}
