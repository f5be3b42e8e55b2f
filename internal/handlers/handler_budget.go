package handlers

import (
	"net/http"
	"strconv"

	portssvc "github.com/finanzap/finanzap_backend/internal/core/ports/services"
	"github.com/finanzap/finanzap_backend/internal/dto"
	"github.com/finanzap/finanzap_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// budgetHandler handles HTTP requests related to budgets.
type budgetHandler struct {
	budgetService portssvc.BudgetSvcFacade
}

func newBudgetHandler(bs portssvc.BudgetSvcFacade) *budgetHandler {
	return &budgetHandler{
		budgetService: bs,
	}
}

// registerBudgetRoutes registers budget routes under a specific tenant.
func registerBudgetRoutes(rg *gin.RouterGroup, budgetService portssvc.BudgetSvcFacade) {
	h := newBudgetHandler(budgetService)

	budgets := rg.Group("/budgets")
	{
		budgets.PUT("", h.upsertBudget)
		budgets.GET("", h.listBudgets)
		budgets.GET("/summary", h.budgetSummary)
	}
}

// queryInt reads an integer query parameter, returning 0 when absent.
func queryInt(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

// upsertBudget godoc
// @Summary Create or replace a monthly budget
// @Description Sets the allocation for a (year, month, category); replaces any existing allocation.
// @Tags budgets
// @Accept json
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param budget body dto.UpsertBudgetRequest true "Budget details"
// @Success 200 {object} dto.BudgetResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenant_id}/budgets [put]
func (h *budgetHandler) upsertBudget(c *gin.Context) {
	tenantID := c.Param("tenant_id")

	var req dto.UpsertBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	budget, err := h.budgetService.UpsertBudget(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		respondError(c, err, "Failed to save budget")
		return
	}

	c.JSON(http.StatusOK, dto.ToBudgetResponse(budget))
}

// listBudgets godoc
// @Summary List budgets for a month
// @Tags budgets
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param year query int true "Year"
// @Param month query int true "Month (1-12)"
// @Success 200 {array} dto.BudgetResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenant_id}/budgets [get]
func (h *budgetHandler) listBudgets(c *gin.Context) {
	tenantID := c.Param("tenant_id")

	year, okYear := queryInt(c, "year")
	month, okMonth := queryInt(c, "month")
	if !okYear || !okMonth || year == 0 || month == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "year and month query parameters are required"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	budgets, err := h.budgetService.ListBudgets(c.Request.Context(), tenantID, year, month, userID)
	if err != nil {
		respondError(c, err, "Failed to list budgets")
		return
	}

	resp := make([]dto.BudgetResponse, len(budgets))
	for i := range budgets {
		resp[i] = dto.ToBudgetResponse(&budgets[i])
	}
	c.JSON(http.StatusOK, resp)
}

// budgetSummary godoc
// @Summary Budget consumption summary
// @Description Aggregates non-deleted expense postings of a category against its monthly budget.
// @Tags budgets
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param categoryID query string true "Category ID"
// @Param year query int true "Year"
// @Param month query int true "Month (1-12)"
// @Success 200 {object} dto.BudgetSummaryResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenant_id}/budgets/summary [get]
func (h *budgetHandler) budgetSummary(c *gin.Context) {
	tenantID := c.Param("tenant_id")
	categoryID := c.Query("categoryID")

	year, okYear := queryInt(c, "year")
	month, okMonth := queryInt(c, "month")
	if categoryID == "" || !okYear || !okMonth || year == 0 || month == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "categoryID, year and month query parameters are required"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	summary, err := h.budgetService.ComputeSummary(c.Request.Context(), tenantID, categoryID, year, month, userID)
	if err != nil {
		respondError(c, err, "Failed to compute budget summary")
		return
	}

	c.JSON(http.StatusOK, summary)
}
