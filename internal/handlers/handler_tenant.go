package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/finanzap/finanzap_backend/internal/core/ports/services"
	"github.com/finanzap/finanzap_backend/internal/dto"
	"github.com/finanzap/finanzap_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// tenantHandler handles HTTP requests related to tenants and memberships.
type tenantHandler struct {
	tenantService portssvc.TenantSvcFacade
}

// newTenantHandler creates a new tenantHandler.
func newTenantHandler(ts portssvc.TenantSvcFacade) *tenantHandler {
	return &tenantHandler{
		tenantService: ts,
	}
}

// registerTenantRoutes registers routes related to tenants and their members.
// Entity, posting, budget, taxonomy and fx-rate routes are nested under a
// specific tenant.
func registerTenantRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newTenantHandler(services.Tenant)

	tenantsTopLevel := rg.Group("/tenants")
	{
		tenantsTopLevel.POST("", h.provisionTenant)
		tenantsTopLevel.GET("", h.listUserTenants)
	}

	tenantSpecific := rg.Group("/tenants/:tenant_id")
	{
		tenantSpecific.GET("", h.getTenant)
		tenantSpecific.POST("/complete-provisioning", h.completeProvisioning)

		tenantMembers := tenantSpecific.Group("/members")
		{
			tenantMembers.GET("", h.listTenantMembers)
			tenantMembers.POST("", h.inviteUser)
		}

		registerEntityRoutes(tenantSpecific, services.Entity)
		registerPostingRoutes(tenantSpecific, services.Posting)
		registerBudgetRoutes(tenantSpecific, services.Budget)
		registerCategoryRoutes(tenantSpecific, services.Category)
		registerFxRateRoutes(tenantSpecific, services.FxRate)
	}
}

// provisionTenant godoc
// @Summary Provision a new tenant
// @Description Creates a tenant with its owner membership, license and default taxonomy.
// @Tags tenants
// @Accept json
// @Produce json
// @Param tenant body dto.ProvisionTenantRequest true "Tenant details"
// @Success 201 {object} dto.TenantResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Provisioning incomplete; retry with the returned tenantID"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants [post]
func (h *tenantHandler) provisionTenant(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ProvisionTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	ownerUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	tenant, err := h.tenantService.Provision(c.Request.Context(), req, ownerUserID)
	if err != nil {
		logger.Error("Failed to provision tenant", slog.String("error", err.Error()))
		respondError(c, err, "Failed to provision tenant")
		return
	}

	logger.Info("Tenant provisioned", slog.String("tenant_id", tenant.TenantID))
	c.JSON(http.StatusCreated, dto.ToTenantResponse(tenant))
}

// completeProvisioning godoc
// @Summary Resume a partially provisioned tenant
// @Description Retries phase two of provisioning for a tenant stuck in PENDING.
// @Tags tenants
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Success 200 {object} dto.TenantResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenant_id}/complete-provisioning [post]
func (h *tenantHandler) completeProvisioning(c *gin.Context) {
	tenantID := c.Param("tenant_id")
	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	tenant, err := h.tenantService.CompleteProvisioning(c.Request.Context(), tenantID, actorUserID)
	if err != nil {
		respondError(c, err, "Failed to complete provisioning")
		return
	}

	c.JSON(http.StatusOK, dto.ToTenantResponse(tenant))
}

// listUserTenants godoc
// @Summary List tenants for current user
// @Description Retrieves the tenants the authenticated user belongs to.
// @Tags tenants
// @Produce json
// @Success 200 {object} dto.ListTenantsResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants [get]
func (h *tenantHandler) listUserTenants(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	tenants, err := h.tenantService.ListUserTenants(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to list tenants")
		return
	}

	resp := dto.ListTenantsResponse{Tenants: make([]dto.TenantResponse, len(tenants))}
	for i := range tenants {
		resp.Tenants[i] = dto.ToTenantResponse(&tenants[i])
	}
	c.JSON(http.StatusOK, resp)
}

// getTenant godoc
// @Summary Get tenant details
// @Tags tenants
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Success 200 {object} dto.TenantResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenant_id} [get]
func (h *tenantHandler) getTenant(c *gin.Context) {
	tenantID := c.Param("tenant_id")
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	tenant, err := h.tenantService.FindTenantByID(c.Request.Context(), tenantID, userID)
	if err != nil {
		respondError(c, err, "Tenant not found")
		return
	}

	c.JSON(http.StatusOK, dto.ToTenantResponse(tenant))
}

// listTenantMembers godoc
// @Summary List members of a tenant
// @Tags tenants
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Success 200 {array} dto.MembershipResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenant_id}/members [get]
func (h *tenantHandler) listTenantMembers(c *gin.Context) {
	tenantID := c.Param("tenant_id")
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	members, err := h.tenantService.ListTenantMembers(c.Request.Context(), tenantID, userID)
	if err != nil {
		respondError(c, err, "Failed to list members")
		return
	}

	resp := make([]dto.MembershipResponse, len(members))
	for i := range members {
		resp[i] = dto.ToMembershipResponse(&members[i])
	}
	c.JSON(http.StatusOK, resp)
}

// inviteUser godoc
// @Summary Invite a user into a tenant
// @Description Adds a user with role ADMIN or MEMBER, enforcing the license seat limit.
// @Tags tenants
// @Accept json
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param invite body dto.InviteUserRequest true "Invitation details"
// @Success 201 {object} dto.MembershipResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Seat limit reached or already a member"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/members [post]
func (h *tenantHandler) inviteUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenant_id")

	var req dto.InviteUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	invitingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	membership, err := h.tenantService.InviteUser(c.Request.Context(), tenantID, req, invitingUserID)
	if err != nil {
		respondError(c, err, "Failed to invite user")
		return
	}

	logger.Info("User invited", slog.String("tenant_id", tenantID), slog.String("invited_user_id", req.UserID))
	c.JSON(http.StatusCreated, dto.ToMembershipResponse(membership))
}
