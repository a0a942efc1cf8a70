package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/business_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/business_tracker/internal/core/ports/services"
	"github.com/SscSPs/business_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

type backupHandler struct {
	backupService portssvc.BackupSvcFacade
}

// registerBackupRoutes sets up backup and restore. Every route needs the backup permission.
func registerBackupRoutes(rg *gin.RouterGroup, backupService portssvc.BackupSvcFacade, authorizer portssvc.PermissionAuthorizerSvc) {
	h := &backupHandler{backupService: backupService}

	backup := rg.Group("/backup", middleware.RequirePermission(authorizer, domain.PermBackupRestore))
	{
		backup.GET("", h.exportBackup)
		backup.POST("/restore", h.restoreBackup)
		backup.GET("/snapshot", h.exportSnapshot)
	}
}

// exportBackup godoc
// @Summary Download a backup of the active business
// @Tags backup
// @Produce json
// @Success 200 {object} dto.BusinessBackup
// @Failure 403 {object} ErrorResponse
// @Failure 412 {object} ErrorResponse
// @Security BearerAuth
// @Router /backup [get]
func (h *backupHandler) exportBackup(c *gin.Context) {
	sess, ok := sessionFrom(c)
	if !ok {
		return
	}
	data, err := h.backupService.ExportBackup(c.Request.Context(), sess)
	if err != nil {
		respondError(c, err, "Failed to create backup")
		return
	}
	sendFile(c, contentTypeJSON, datedFilename("backup", "json"), data)
}

// restoreBackup godoc
// @Summary Restore a backup as a new business
// @Description The restored business becomes the active one.
// @Tags backup
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Param file formData file false "Backup file"
// @Success 201 {object} domain.RestoreResult
// @Failure 400 {object} ErrorResponse "Malformed backup"
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /backup/restore [post]
func (h *backupHandler) restoreBackup(c *gin.Context) {
	sess, ok := sessionFrom(c)
	if !ok {
		return
	}
	data, err := readUpload(c)
	if err != nil {
		respondError(c, err, "Failed to read upload")
		return
	}
	result, err := h.backupService.RestoreBackup(c.Request.Context(), sess, data)
	if err != nil {
		respondError(c, err, "Failed to restore backup")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Backup restored",
		slog.String("business_id", result.Business.BusinessID),
		slog.Int("transactions", result.Transactions),
		slog.Int("skipped_transfers", result.SkippedTransfers))
	c.JSON(http.StatusCreated, result)
}

// exportSnapshot godoc
// @Summary Download the flat shop snapshot
// @Description Inspection format. It cannot be restored.
// @Tags backup
// @Produce json
// @Success 200 {object} dto.ShopSnapshot
// @Security BearerAuth
// @Router /backup/snapshot [get]
func (h *backupHandler) exportSnapshot(c *gin.Context) {
	sess, ok := sessionFrom(c)
	if !ok {
		return
	}
	data, err := h.backupService.ExportShopSnapshot(c.Request.Context(), sess)
	if err != nil {
		respondError(c, err, "Failed to create snapshot")
		return
	}
	sendFile(c, contentTypeJSON, datedFilename("snapshot", "json"), data)
}
