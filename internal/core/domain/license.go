package domain

import "time"

// PlanID identifies a billing plan.
type PlanID string

const (
	PlanDemo     PlanID = "demo"
	PlanPersonal PlanID = "personal"
	PlanFamiliar PlanID = "familiar"
	PlanEmpresa  PlanID = "empresa"
)

// SeatLimit returns the maximum number of members a plan allows.
func (p PlanID) SeatLimit() int {
	switch p {
	case PlanFamiliar:
		return 4
	case PlanEmpresa:
		return 10
	default: // demo, personal
		return 1
	}
}

// Term returns the license duration from its start date.
// Demo licenses run 15 days; every paid plan runs one year.
func (p PlanID) Term(start time.Time) time.Time {
	if p == PlanDemo {
		return start.AddDate(0, 0, 15)
	}
	return start.AddDate(1, 0, 0)
}

// IsValid reports whether p is a known plan.
func (p PlanID) IsValid() bool {
	switch p {
	case PlanDemo, PlanPersonal, PlanFamiliar, PlanEmpresa:
		return true
	}
	return false
}

// LicenseStatus is the state of a tenant license.
type LicenseStatus string

const (
	LicenseActive  LicenseStatus = "ACTIVE"
	LicenseExpired LicenseStatus = "EXPIRED"
)

// License represents the billing state of a tenant.
// The seat limit is enforced at invite time, never retroactively.
type License struct {
	LicenseID string        `json:"licenseID"` // Primary Key (e.g., UUID)
	TenantID  string        `json:"tenantID"`  // FK -> tenants.tenant_id
	Plan      PlanID        `json:"plan"`
	Status    LicenseStatus `json:"status"`
	StartDate time.Time     `json:"startDate"`
	EndDate   time.Time     `json:"endDate"`
	MaxUsers  int           `json:"maxUsers"`
	AuditFields
}
