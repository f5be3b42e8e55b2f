package dto

import "github.com/finanzap/finanzap_backend/internal/core/domain"

// CreateCategoryRequest defines the payload for creating a category.
type CreateCategoryRequest struct {
	Name         string `json:"name" binding:"required"`
	Color        string `json:"color" binding:"omitempty,hexcolor"`
	DisplayOrder int    `json:"displayOrder"`
}

// CreateSubcategoryRequest defines the payload for creating a subcategory.
type CreateSubcategoryRequest struct {
	Name         string `json:"name" binding:"required"`
	DisplayOrder int    `json:"displayOrder"`
}

// CategoryResponse is the API representation of a category.
type CategoryResponse struct {
	CategoryID    string                `json:"categoryID"`
	TenantID      string                `json:"tenantID"`
	Name          string                `json:"name"`
	Color         string                `json:"color,omitempty"`
	DisplayOrder  int                   `json:"displayOrder"`
	Subcategories []SubcategoryResponse `json:"subcategories,omitempty"`
}

// SubcategoryResponse is the API representation of a subcategory.
type SubcategoryResponse struct {
	SubcategoryID string `json:"subcategoryID"`
	CategoryID    string `json:"categoryID"`
	Name          string `json:"name"`
	DisplayOrder  int    `json:"displayOrder"`
}

// TaxonomyResponse is the full ordered taxonomy of a tenant.
type TaxonomyResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// ToCategoryResponse converts a domain Category to its API representation.
func ToCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID:   c.CategoryID,
		TenantID:     c.TenantID,
		Name:         c.Name,
		Color:        c.Color,
		DisplayOrder: c.DisplayOrder,
	}
}

// ToSubcategoryResponse converts a domain Subcategory to its API representation.
func ToSubcategoryResponse(s *domain.Subcategory) SubcategoryResponse {
	return SubcategoryResponse{
		SubcategoryID: s.SubcategoryID,
		CategoryID:    s.CategoryID,
		Name:          s.Name,
		DisplayOrder:  s.DisplayOrder,
	}
}

// ToTaxonomyResponse groups subcategories under their ordered categories.
func ToTaxonomyResponse(categories []domain.Category, subcategories []domain.Subcategory) TaxonomyResponse {
	byCategory := make(map[string][]SubcategoryResponse)
	for i := range subcategories {
		sub := ToSubcategoryResponse(&subcategories[i])
		byCategory[sub.CategoryID] = append(byCategory[sub.CategoryID], sub)
	}

	resp := TaxonomyResponse{Categories: make([]CategoryResponse, len(categories))}
	for i := range categories {
		cat := ToCategoryResponse(&categories[i])
		cat.Subcategories = byCategory[cat.CategoryID]
		resp.Categories[i] = cat
	}
	return resp
}
