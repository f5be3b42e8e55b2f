package handlers

import (
	"net/http"

	portssvc "github.com/finanzap/finanzap_backend/internal/core/ports/services"
	"github.com/finanzap/finanzap_backend/internal/dto"
	"github.com/finanzap/finanzap_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// categoryHandler handles HTTP requests related to the tenant taxonomy.
type categoryHandler struct {
	categoryService portssvc.CategorySvcFacade
}

func newCategoryHandler(cs portssvc.CategorySvcFacade) *categoryHandler {
	return &categoryHandler{
		categoryService: cs,
	}
}

// registerCategoryRoutes registers taxonomy routes under a specific tenant.
func registerCategoryRoutes(rg *gin.RouterGroup, categoryService portssvc.CategorySvcFacade) {
	h := newCategoryHandler(categoryService)

	categories := rg.Group("/categories")
	{
		categories.GET("", h.listTaxonomy)
		categories.POST("", h.createCategory)
		categories.POST("/:category_id/subcategories", h.createSubcategory)
		categories.DELETE("/:category_id", h.deleteCategory)
	}
}

// listTaxonomy godoc
// @Summary List the tenant taxonomy
// @Description Retrieves the ordered categories of a tenant with their subcategories.
// @Tags categories
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Success 200 {object} dto.TaxonomyResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenant_id}/categories [get]
func (h *categoryHandler) listTaxonomy(c *gin.Context) {
	tenantID := c.Param("tenant_id")
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	categories, subcategories, err := h.categoryService.ListTaxonomy(c.Request.Context(), tenantID, userID)
	if err != nil {
		respondError(c, err, "Failed to list taxonomy")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaxonomyResponse(categories, subcategories))
}

// createCategory godoc
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param category body dto.CreateCategoryRequest true "Category details"
// @Success 201 {object} dto.CategoryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenant_id}/categories [post]
func (h *categoryHandler) createCategory(c *gin.Context) {
	tenantID := c.Param("tenant_id")

	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		respondError(c, err, "Failed to create category")
		return
	}

	c.JSON(http.StatusCreated, dto.ToCategoryResponse(category))
}

// createSubcategory godoc
// @Summary Create a subcategory
// @Tags categories
// @Accept json
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param category_id path string true "Category ID"
// @Param subcategory body dto.CreateSubcategoryRequest true "Subcategory details"
// @Success 201 {object} dto.SubcategoryResponse
// @Failure 400 {object} ErrorResponse "Parent category does not exist"
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenant_id}/categories/{category_id}/subcategories [post]
func (h *categoryHandler) createSubcategory(c *gin.Context) {
	tenantID := c.Param("tenant_id")
	categoryID := c.Param("category_id")

	var req dto.CreateSubcategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	subcategory, err := h.categoryService.CreateSubcategory(c.Request.Context(), tenantID, categoryID, req, userID)
	if err != nil {
		respondError(c, err, "Failed to create subcategory")
		return
	}

	c.JSON(http.StatusCreated, dto.ToSubcategoryResponse(subcategory))
}

// deleteCategory godoc
// @Summary Delete a category
// @Description Removes a category. Fails while subcategories still reference it.
// @Tags categories
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param category_id path string true "Category ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Subcategories still reference the category"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/categories/{category_id} [delete]
func (h *categoryHandler) deleteCategory(c *gin.Context) {
	tenantID := c.Param("tenant_id")
	categoryID := c.Param("category_id")
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.categoryService.DeleteCategory(c.Request.Context(), tenantID, categoryID, userID); err != nil {
		respondError(c, err, "Failed to delete category")
		return
	}

	c.Status(http.StatusNoContent)
}
