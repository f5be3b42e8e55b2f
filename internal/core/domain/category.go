package domain

// Category is a tenant-scoped spending/income category.
type Category struct {
	CategoryID   string `json:"categoryID"` // Primary Key (e.g., UUID)
	TenantID     string `json:"tenantID"`   // FK -> tenants.tenant_id
	Name         string `json:"name"`
	Color        string `json:"color"`        // Display color, e.g. "#4CAF50"
	DisplayOrder int    `json:"displayOrder"` // Position within the tenant's ordered list
	AuditFields
}

// Subcategory refines a Category. A category cannot be removed while
// subcategories still reference it.
type Subcategory struct {
	SubcategoryID string `json:"subcategoryID"` // Primary Key (e.g., UUID)
	CategoryID    string `json:"categoryID"`    // FK -> categories.category_id
	TenantID      string `json:"tenantID"`      // FK -> tenants.tenant_id
	Name          string `json:"name"`
	DisplayOrder  int    `json:"displayOrder"`
	AuditFields
}
