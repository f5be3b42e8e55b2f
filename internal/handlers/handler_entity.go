package handlers

import (
	"net/http"

	"github.com/finanzap/finanzap_backend/internal/core/domain"
	portssvc "github.com/finanzap/finanzap_backend/internal/core/ports/services"
	"github.com/finanzap/finanzap_backend/internal/dto"
	"github.com/finanzap/finanzap_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// entityHandler handles HTTP requests related to counterparties.
type entityHandler struct {
	entityService portssvc.EntitySvcFacade
}

func newEntityHandler(es portssvc.EntitySvcFacade) *entityHandler {
	return &entityHandler{
		entityService: es,
	}
}

// registerEntityRoutes registers counterparty routes under a specific tenant.
func registerEntityRoutes(rg *gin.RouterGroup, entityService portssvc.EntitySvcFacade) {
	h := newEntityHandler(entityService)

	entities := rg.Group("/entities")
	{
		entities.POST("/resolve", h.resolveEntity)
		entities.GET("", h.listEntities)
		entities.GET("/:entity_id", h.getEntity)
	}
}

// resolveEntity godoc
// @Summary Resolve a counterparty
// @Description Finds the tenant's entity by tax ID or exact name, creating one when no match exists.
// @Tags entities
// @Accept json
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param entity body dto.ResolveEntityRequest true "Counterparty details"
// @Success 200 {object} dto.EntityResponse
// @Failure 400 {object} ErrorResponse "Invalid tax ID"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenant_id}/entities/resolve [post]
func (h *entityHandler) resolveEntity(c *gin.Context) {
	tenantID := c.Param("tenant_id")

	var req dto.ResolveEntityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	entityType := domain.EntityType(req.EntityType)
	if entityType == "" {
		entityType = domain.EntityOther
	}

	entity, err := h.entityService.Resolve(c.Request.Context(), tenantID, req.Name, req.TaxID, entityType, userID)
	if err != nil {
		respondError(c, err, "Failed to resolve entity")
		return
	}

	c.JSON(http.StatusOK, dto.ToEntityResponse(entity))
}

// listEntities godoc
// @Summary List counterparties of a tenant
// @Tags entities
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Success 200 {object} dto.ListEntitiesResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenant_id}/entities [get]
func (h *entityHandler) listEntities(c *gin.Context) {
	tenantID := c.Param("tenant_id")
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	entities, err := h.entityService.ListEntities(c.Request.Context(), tenantID, userID)
	if err != nil {
		respondError(c, err, "Failed to list entities")
		return
	}

	c.JSON(http.StatusOK, dto.ListEntitiesResponse{Entities: dto.ToEntityResponses(entities)})
}

// getEntity godoc
// @Summary Get a counterparty
// @Tags entities
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param entity_id path string true "Entity ID"
// @Success 200 {object} dto.EntityResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenant_id}/entities/{entity_id} [get]
func (h *entityHandler) getEntity(c *gin.Context) {
	tenantID := c.Param("tenant_id")
	entityID := c.Param("entity_id")
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	entity, err := h.entityService.FindEntityByID(c.Request.Context(), tenantID, entityID, userID)
	if err != nil {
		respondError(c, err, "Entity not found")
		return
	}

	c.JSON(http.StatusOK, dto.ToEntityResponse(entity))
}
