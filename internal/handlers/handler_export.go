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

const (
	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF  = "application/pdf"
	contentTypeJSON = "application/json"
)

// exportHandler serves file downloads and the CSV import.
type exportHandler struct {
	csvService    portssvc.CSVSvcFacade
	reportService portssvc.ReportSvcFacade
	loc           *time.Location
}

// registerExportRoutes sets up export and import routes. Exports need the export permission;
// importing only needs a session.
func registerExportRoutes(rg *gin.RouterGroup, csvService portssvc.CSVSvcFacade, reportService portssvc.ReportSvcFacade, authorizer portssvc.PermissionAuthorizerSvc, loc *time.Location) {
	h := &exportHandler{csvService: csvService, reportService: reportService, loc: loc}

	export := rg.Group("/export", middleware.RequirePermission(authorizer, domain.PermExportData))
	{
		export.GET("/transactions.csv", h.exportTransactionsCSV)
		export.GET("/transactions.xlsx", h.exportTransactionsXLSX)
		export.GET("/statement.pdf", h.exportStatementPDF)
		export.GET("/employees.csv", h.exportEmployeesCSV)
		export.GET("/parts.csv", h.exportPartsCSV)
	}

	rg.POST("/import/transactions", h.importTransactions)
}

// rangeFromQuery binds from/to and answers 400 itself on failure.
func (h *exportHandler) rangeFromQuery(c *gin.Context) (*domain.DateRange, bool) {
	var params dto.DateRangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, "query parameters", err)
		return nil, false
	}
	rng, err := toDateRange(params, h.loc)
	if err != nil {
		respondError(c, err, "Invalid date range")
		return nil, false
	}
	return rng, true
}

// exportTransactionsCSV godoc
// @Summary Export transactions as CSV
// @Tags export
// @Produce text/csv
// @Param from query string false "First day, YYYY-MM-DD"
// @Param to query string false "Last day, YYYY-MM-DD"
// @Success 200 {file} file
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /export/transactions.csv [get]
func (h *exportHandler) exportTransactionsCSV(c *gin.Context) {
	sess, ok := sessionFrom(c)
	if !ok {
		return
	}
	rng, ok := h.rangeFromQuery(c)
	if !ok {
		return
	}
	data, err := h.csvService.ExportTransactionsCSV(c.Request.Context(), sess, rng)
	if err != nil {
		respondError(c, err, "Failed to export transactions")
		return
	}
	sendFile(c, contentTypeCSV, datedFilename("transactions", "csv"), data)
}

// exportTransactionsXLSX godoc
// @Summary Export transactions as a spreadsheet
// @Tags export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param from query string false "First day, YYYY-MM-DD"
// @Param to query string false "Last day, YYYY-MM-DD"
// @Success 200 {file} file
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /export/transactions.xlsx [get]
func (h *exportHandler) exportTransactionsXLSX(c *gin.Context) {
	sess, ok := sessionFrom(c)
	if !ok {
		return
	}
	rng, ok := h.rangeFromQuery(c)
	if !ok {
		return
	}
	data, err := h.reportService.ExportTransactionsXLSX(c.Request.Context(), sess, rng)
	if err != nil {
		respondError(c, err, "Failed to export transactions")
		return
	}
	sendFile(c, contentTypeXLSX, datedFilename("transactions", "xlsx"), data)
}

// exportStatementPDF godoc
// @Summary Printable statement
// @Tags export
// @Produce application/pdf
// @Param from query string false "First day, YYYY-MM-DD"
// @Param to query string false "Last day, YYYY-MM-DD"
// @Success 200 {file} file
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /export/statement.pdf [get]
func (h *exportHandler) exportStatementPDF(c *gin.Context) {
	sess, ok := sessionFrom(c)
	if !ok {
		return
	}
	rng, ok := h.rangeFromQuery(c)
	if !ok {
		return
	}
	data, err := h.reportService.StatementPDF(c.Request.Context(), sess, rng)
	if err != nil {
		respondError(c, err, "Failed to render statement")
		return
	}
	sendFile(c, contentTypePDF, datedFilename("statement", "pdf"), data)
}

// exportEmployeesCSV godoc
// @Summary Export employees as CSV
// @Tags export
// @Produce text/csv
// @Success 200 {file} file
// @Security BearerAuth
// @Router /export/employees.csv [get]
func (h *exportHandler) exportEmployeesCSV(c *gin.Context) {
	sess, ok := sessionFrom(c)
	if !ok {
		return
	}
	data, err := h.csvService.ExportEmployeesCSV(c.Request.Context(), sess)
	if err != nil {
		respondError(c, err, "Failed to export employees")
		return
	}
	sendFile(c, contentTypeCSV, datedFilename("employees", "csv"), data)
}

// exportPartsCSV godoc
// @Summary Export parts as CSV
// @Tags export
// @Produce text/csv
// @Success 200 {file} file
// @Security BearerAuth
// @Router /export/parts.csv [get]
func (h *exportHandler) exportPartsCSV(c *gin.Context) {
	sess, ok := sessionFrom(c)
	if !ok {
		return
	}
	data, err := h.csvService.ExportPartsCSV(c.Request.Context(), sess)
	if err != nil {
		respondError(c, err, "Failed to export parts")
		return
	}
	sendFile(c, contentTypeCSV, datedFilename("parts", "csv"), data)
}

// importTransactions godoc
// @Summary Import transactions from CSV
// @Description Rows are imported independently. Bad rows are skipped and reported.
// @Tags import
// @Accept multipart/form-data
// @Accept text/csv
// @Produce json
// @Param file formData file false "CSV file"
// @Success 200 {object} domain.ImportResult
// @Failure 400 {object} ErrorResponse "Header mismatch or unreadable upload"
// @Failure 412 {object} ErrorResponse
// @Security BearerAuth
// @Router /import/transactions [post]
func (h *exportHandler) importTransactions(c *gin.Context) {
	sess, ok := sessionFrom(c)
	if !ok {
		return
	}
	data, err := readUpload(c)
	if err != nil {
		respondError(c, err, "Failed to read upload")
		return
	}

	result, err := h.csvService.ImportTransactionsCSV(c.Request.Context(), sess, string(data))
	if err != nil {
		respondError(c, err, "Failed to import transactions")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Transactions imported",
		slog.Int("imported", result.ImportedCount), slog.Int("skipped", result.SkippedCount))
	c.JSON(http.StatusOK, result)
}
