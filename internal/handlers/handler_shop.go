package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/business_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/business_tracker/internal/core/ports/services"
	"github.com/SscSPs/business_tracker/internal/dto"
	"github.com/SscSPs/business_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// shopHandler serves the payroll and stock records of a shop.
type shopHandler struct {
	employeeService portssvc.EmployeeSvcFacade
	partService     portssvc.PartSvcFacade
}

// registerShopRoutes sets up employee and part routes. Employee records are admin only.
func registerShopRoutes(rg *gin.RouterGroup, employeeService portssvc.EmployeeSvcFacade, partService portssvc.PartSvcFacade, authorizer portssvc.PermissionAuthorizerSvc) {
	h := &shopHandler{employeeService: employeeService, partService: partService}

	employees := rg.Group("/employees", middleware.RequirePermission(authorizer, domain.PermManageEmployees))
	{
		employees.POST("", h.createEmployee)
		employees.GET("", h.listEmployees)
		employees.GET("/:employeeID", h.getEmployee)
		employees.PUT("/:employeeID", h.updateEmployee)
		employees.DELETE("/:employeeID", h.deleteEmployee)
	}

	parts := rg.Group("/parts")
	{
		parts.POST("", h.createPart)
		parts.GET("", h.listParts)
		parts.GET("/:partID", h.getPart)
		parts.PUT("/:partID", h.updatePart)
		parts.DELETE("/:partID", h.deletePart)
	}
}

// createEmployee godoc
// @Summary Add an employee
// @Tags employees
// @Accept json
// @Produce json
// @Param employee body dto.EmployeeRequest true "Employee"
// @Success 201 {object} domain.Employee
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /employees [post]
func (h *shopHandler) createEmployee(c *gin.Context) {
	sess, ok := sessionFrom(c)
	if !ok {
		return
	}
	var req dto.EmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "employee request", err)
		return
	}
	employee, err := h.employeeService.CreateEmployee(c.Request.Context(), sess, req)
	if err != nil {
		respondError(c, err, "Failed to create employee")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Employee created", slog.String("employee_id", employee.EmployeeID))
	c.JSON(http.StatusCreated, employee)
}

// listEmployees godoc
// @Summary List employees
// @Tags employees
// @Produce json
// @Success 200 {array} domain.Employee
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /employees [get]
func (h *shopHandler) listEmployees(c *gin.Context) {
	sess, ok := sessionFrom(c)
	if !ok {
		return
	}
	employees, err := h.employeeService.ListEmployees(c.Request.Context(), sess)
	if err != nil {
		respondError(c, err, "Failed to list employees")
		return
	}
	c.JSON(http.StatusOK, employees)
}

// getEmployee godoc
// @Summary Get an employee
// @Tags employees
// @Produce json
// @Param employeeID path string true "Employee ID"
// @Success 200 {object} domain.Employee
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /employees/{employeeID} [get]
func (h *shopHandler) getEmployee(c *gin.Context) {
	sess, ok := sessionFrom(c)
	if !ok {
		return
	}
	employee, err := h.employeeService.GetEmployee(c.Request.Context(), sess, c.Param("employeeID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve employee")
		return
	}
	c.JSON(http.StatusOK, employee)
}

// updateEmployee godoc
// @Summary Update an employee
// @Tags employees
// @Accept json
// @Produce json
// @Param employeeID path string true "Employee ID"
// @Param employee body dto.EmployeeRequest true "Employee"
// @Success 200 {object} domain.Employee
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /employees/{employeeID} [put]
func (h *shopHandler) updateEmployee(c *gin.Context) {
	sess, ok := sessionFrom(c)
	if !ok {
		return
	}
	var req dto.EmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "employee request", err)
		return
	}
	employee, err := h.employeeService.UpdateEmployee(c.Request.Context(), sess, c.Param("employeeID"), req)
	if err != nil {
		respondError(c, err, "Failed to update employee")
		return
	}
	c.JSON(http.StatusOK, employee)
}

// deleteEmployee godoc
// @Summary Remove an employee
// @Tags employees
// @Param employeeID path string true "Employee ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /employees/{employeeID} [delete]
func (h *shopHandler) deleteEmployee(c *gin.Context) {
	sess, ok := sessionFrom(c)
	if !ok {
		return
	}
	if err := h.employeeService.DeleteEmployee(c.Request.Context(), sess, c.Param("employeeID")); err != nil {
		respondError(c, err, "Failed to delete employee")
		return
	}
	c.Status(http.StatusNoContent)
}

// createPart godoc
// @Summary Add a part
// @Tags parts
// @Accept json
// @Produce json
// @Param part body dto.PartRequest true "Part"
// @Success 201 {object} domain.Part
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /parts [post]
func (h *shopHandler) createPart(c *gin.Context) {
	sess, ok := sessionFrom(c)
	if !ok {
		return
	}
	var req dto.PartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "part request", err)
		return
	}
	part, err := h.partService.CreatePart(c.Request.Context(), sess, req)
	if err != nil {
		respondError(c, err, "Failed to create part")
		return
	}
	c.JSON(http.StatusCreated, part)
}

// listParts godoc
// @Summary List parts
// @Tags parts
// @Produce json
// @Success 200 {array} domain.Part
// @Security BearerAuth
// @Router /parts [get]
func (h *shopHandler) listParts(c *gin.Context) {
	sess, ok := sessionFrom(c)
	if !ok {
		return
	}
	parts, err := h.partService.ListParts(c.Request.Context(), sess)
	if err != nil {
		respondError(c, err, "Failed to list parts")
		return
	}
	c.JSON(http.StatusOK, parts)
}

// getPart godoc
// @Summary Get a part
// @Tags parts
// @Produce json
// @Param partID path string true "Part ID"
// @Success 200 {object} domain.Part
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /parts/{partID} [get]
func (h *shopHandler) getPart(c *gin.Context) {
	sess, ok := sessionFrom(c)
	if !ok {
		return
	}
	part, err := h.partService.GetPart(c.Request.Context(), sess, c.Param("partID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve part")
		return
	}
	c.JSON(http.StatusOK, part)
}

// updatePart godoc
// @Summary Update a part
// @Tags parts
// @Accept json
// @Produce json
// @Param partID path string true "Part ID"
// @Param part body dto.PartRequest true "Part"
// @Success 200 {object} domain.Part
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /parts/{partID} [put]
func (h *shopHandler) updatePart(c *gin.Context) {
	sess, ok := sessionFrom(c)
	if !ok {
		return
	}
	var req dto.PartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "part request", err)
		return
	}
	part, err := h.partService.UpdatePart(c.Request.Context(), sess, c.Param("partID"), req)
	if err != nil {
		respondError(c, err, "Failed to update part")
		return
	}
	c.JSON(http.StatusOK, part)
}

// deletePart godoc
// @Summary Remove a part
// @Tags parts
// @Param partID path string true "Part ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /parts/{partID} [delete]
func (h *shopHandler) deletePart(c *gin.Context) {
	sess, ok := sessionFrom(c)
	if !ok {
		return
	}
	if err := h.partService.DeletePart(c.Request.Context(), sess, c.Param("partID")); err != nil {
		respondError(c, err, "Failed to delete part")
		return
	}
	c.Status(http.StatusNoContent)
}
