package handlers

import (
	"net/http"

	portssvc "github.com/finanzap/finanzap_backend/internal/core/ports/services"
	"github.com/finanzap/finanzap_backend/internal/dto"
	"github.com/finanzap/finanzap_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// fxRateHandler handles HTTP requests related to tenant-stored exchange rates.
type fxRateHandler struct {
	fxRateService portssvc.FxRateSvcFacade
}

func newFxRateHandler(fs portssvc.FxRateSvcFacade) *fxRateHandler {
	return &fxRateHandler{
		fxRateService: fs,
	}
}

// registerFxRateRoutes registers stored-rate routes under a specific tenant.
func registerFxRateRoutes(rg *gin.RouterGroup, fxRateService portssvc.FxRateSvcFacade) {
	h := newFxRateHandler(fxRateService)

	rates := rg.Group("/fx-rates")
	{
		rates.POST("", h.saveRate)
		rates.GET("", h.listRates)
	}
}

// saveRate godoc
// @Summary Store a tenant exchange rate
// @Description Stores a sell rate. Stored rates take precedence over the external provider.
// @Tags fx-rates
// @Accept json
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param rate body dto.SaveFxRateRequest true "Rate details"
// @Success 201 {object} dto.FxRateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenant_id}/fx-rates [post]
func (h *fxRateHandler) saveRate(c *gin.Context) {
	tenantID := c.Param("tenant_id")

	var req dto.SaveFxRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	rate, err := h.fxRateService.SaveRate(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		respondError(c, err, "Failed to save rate")
		return
	}

	c.JSON(http.StatusCreated, dto.ToFxRateResponse(rate))
}

// listRates godoc
// @Summary List tenant-stored exchange rates
// @Tags fx-rates
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Success 200 {object} dto.ListFxRatesResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenant_id}/fx-rates [get]
func (h *fxRateHandler) listRates(c *gin.Context) {
	tenantID := c.Param("tenant_id")
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	rates, err := h.fxRateService.ListRates(c.Request.Context(), tenantID, userID)
	if err != nil {
		respondError(c, err, "Failed to list rates")
		return
	}

	c.JSON(http.StatusOK, dto.ListFxRatesResponse{Rates: dto.ToFxRateResponses(rates)})
}
