package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/finanzap/finanzap_backend/internal/core/ports/services"
	"github.com/finanzap/finanzap_backend/internal/dto"
	"github.com/finanzap/finanzap_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// postingHandler handles HTTP requests related to ledger postings.
type postingHandler struct {
	postingService portssvc.PostingSvcFacade
}

func newPostingHandler(ps portssvc.PostingSvcFacade) *postingHandler {
	return &postingHandler{
		postingService: ps,
	}
}

// registerPostingRoutes registers posting routes under a specific tenant.
func registerPostingRoutes(rg *gin.RouterGroup, postingService portssvc.PostingSvcFacade) {
	h := newPostingHandler(postingService)

	postings := rg.Group("/postings")
	{
		postings.POST("", h.recordPosting)
		postings.GET("", h.listPostings)
		postings.GET("/:posting_id", h.getPosting)
		postings.DELETE("/:posting_id", h.deletePosting)
	}
}

// recordPosting godoc
// @Summary Record an entered transaction
// @Description Records one transaction as one or more postings, expanding installments, normalizing currency and resolving the counterparty.
// @Tags postings
// @Accept json
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param posting body dto.RecordPostingRequest true "Transaction details"
// @Success 201 {object} dto.RecordPostingResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Tenant not active"
// @Failure 502 {object} ErrorResponse "Exchange rate unavailable"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/postings [post]
func (h *postingHandler) recordPosting(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenant_id")

	var req dto.RecordPostingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	postings, err := h.postingService.Record(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		logger.Error("Failed to record posting", slog.String("error", err.Error()))
		respondError(c, err, "Failed to record posting")
		return
	}

	logger.Info("Postings recorded",
		slog.String("tenant_id", tenantID),
		slog.Int("count", len(postings)),
	)
	c.JSON(http.StatusCreated, dto.RecordPostingResponse{Postings: dto.ToPostingResponses(postings)})
}

// listPostings godoc
// @Summary List postings of a tenant
// @Description Retrieves a paginated list of postings, optionally filtered by kind, category and month.
// @Tags postings
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param kind query string false "EXPENSE or INCOME"
// @Param categoryID query string false "Category filter"
// @Param year query int false "Year filter"
// @Param month query int false "Month filter (requires year)"
// @Param limit query int false "Page size"
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListPostingsResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenant_id}/postings [get]
func (h *postingHandler) listPostings(c *gin.Context) {
	tenantID := c.Param("tenant_id")

	var params dto.ListPostingsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	resp, err := h.postingService.ListPostings(c.Request.Context(), tenantID, params, userID)
	if err != nil {
		respondError(c, err, "Failed to list postings")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getPosting godoc
// @Summary Get a posting
// @Tags postings
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param posting_id path string true "Posting ID"
// @Success 200 {object} dto.PostingResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenant_id}/postings/{posting_id} [get]
func (h *postingHandler) getPosting(c *gin.Context) {
	tenantID := c.Param("tenant_id")
	postingID := c.Param("posting_id")
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	posting, err := h.postingService.FindPostingByID(c.Request.Context(), tenantID, postingID, userID)
	if err != nil {
		respondError(c, err, "Posting not found")
		return
	}

	c.JSON(http.StatusOK, dto.ToPostingResponse(posting))
}

// deletePosting godoc
// @Summary Soft-delete a posting
// @Description Marks a posting deleted. Postings are never removed from storage.
// @Tags postings
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param posting_id path string true "Posting ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Already deleted"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/postings/{posting_id} [delete]
func (h *postingHandler) deletePosting(c *gin.Context) {
	tenantID := c.Param("tenant_id")
	postingID := c.Param("posting_id")
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.postingService.SoftDeletePosting(c.Request.Context(), tenantID, postingID, userID); err != nil {
		respondError(c, err, "Failed to delete posting")
		return
	}

	c.Status(http.StatusNoContent)
}
