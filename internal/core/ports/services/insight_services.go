package services

import (
	"context"

	"github.com/finanzap/finanzap_backend/internal/dto"
)

// InsightSvc is the contract of the external LLM-backed insight/OCR service.
// The core only depends on the shape: JSON-serialized ledger data in, a fixed
// recommendation schema out. Implementations live outside this repository.
type InsightSvc interface {
	GenerateInsights(ctx context.Context, req dto.InsightRequest) (*dto.InsightResponse, error)
}
