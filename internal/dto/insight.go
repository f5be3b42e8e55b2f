package dto

import "encoding/json"

// InsightRequest is the structured contract sent to the external LLM-backed
// insight service. Payload fields carry JSON-serialized ledger data; this
// core only guarantees the shape, never the generation.
type InsightRequest struct {
	TenantID     string          `json:"tenantID"`
	Transactions json.RawMessage `json:"transactions"`
	Budgets      json.RawMessage `json:"budgets"`
	Categories   json.RawMessage `json:"categories"`
}

// InsightRecommendation is one item of the fixed response schema.
type InsightRecommendation struct {
	Title      string `json:"title"`
	Body       string `json:"body"`
	CategoryID string `json:"categoryID,omitempty"`
	Severity   string `json:"severity"` // info, warning, critical
}

// InsightResponse is the fixed schema returned by the insight service.
type InsightResponse struct {
	Summary         string                  `json:"summary"`
	Recommendations []InsightRecommendation `json:"recommendations"`
}
