package handler

import (
	"net/http"

	"github.com/DiegoMeloCoder/FidelizDiego/internal/middleware"
	"github.com/DiegoMeloCoder/FidelizDiego/internal/service"

	"github.com/gin-gonic/gin"
)

type HistoryHandler struct{ svc service.HistoryService }

func NewHistoryHandler(svc service.HistoryService) *HistoryHandler {
	return &HistoryHandler{svc: svc}
}

// Employee godoc
// @Summary Points history of one employee (assignments and redemptions, newest first)
// @Tags history
// @Produce json
// @Security BearerAuth
// @Param id path string true "Employee ID"
// @Success 200 {object} dto.EmployeeHistoryResponse
// @Failure 403 {object} apierror.APIError
// @Router /v1/history/employees/{id} [get]
func (h *HistoryHandler) Employee(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.GetEmployeeHistory(c.Request.Context(), middleware.GetSession(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *HistoryHandler) Statement(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	pdf, filename, err := h.svc.ExportStatementPDF(c.Request.Context(), middleware.GetSession(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// Tenant godoc
// @Summary      List the tenant's point assignments, newest first
// @Description  Paginated. Without parameters only the first page (page=1, limit=100)
// @Description  is returned; read total and has_more and request further pages to get
// @Description  the complete history. limit is capped at 500.
// @Tags         history
// @Produce      json
// @Security     BearerAuth
// @Param        tenant_id query string false "Tenant (Managers only)"
// @Param        page      query int    false "Page number" default(1)
// @Param        limit     query int    false "Page size"   default(100)
// @Success      200 {object} dto.AssignmentListResponse
// @Failure      403 {object} apierror.APIError
// @Router       /v1/history/tenant [get]
func (h *HistoryHandler) Tenant(c *gin.Context) {
	tenantID, ok := queryTenant(c)
	if !ok {
		return
	}
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 100)
	resp, err := h.svc.GetTenantAssignmentHistory(c.Request.Context(), middleware.GetSession(c), tenantID, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
