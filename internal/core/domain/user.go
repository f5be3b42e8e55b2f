package domain

import "time"

// User represents a user of the application in the domain.
type User struct {
	UserID          string  `json:"userID"` // Primary Key (e.g., UUID)
	Email           string  `json:"email"`  // Unique login identifier
	Name            string  `json:"name"`
	PasswordHash    string  `json:"-"`
	DefaultTenantID *string `json:"defaultTenantID,omitempty"` // Set when the user provisions a tenant
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Used for soft delete
}
